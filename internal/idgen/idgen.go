// Package idgen provides the stable-identifier generation capability used
// when a quiz first enters the shared store. The generator is injected so
// tests can supply deterministic identifiers.
package idgen

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Generator produces unique stable identifiers.
type Generator interface {
	NewID() string
}

// UUID generates random RFC 4122 identifiers.
type UUID struct{}

func (UUID) NewID() string {
	return uuid.NewString()
}

// Sequential generates predictable identifiers for tests.
type Sequential struct {
	Prefix string

	mu sync.Mutex
	n  int
}

func (g *Sequential) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s-%d", g.Prefix, g.n)
}

package quiz

import "sort"

// Classes partitions a collection into equivalence classes, each holding the
// records judged to represent the same logical quiz.
//
// Three tiers apply in priority order. Tier 1 groups records sharing a
// non-empty StableID. Tier 2 groups records still unclaimed by equal content
// fingerprint. Tier 3 groups the remaining records by normalized title and
// merges pairs the similarity matcher judges duplicate (transitive closure
// within the title group, at the given threshold). A record that matches
// nothing forms a singleton class and is never removed downstream.
//
// Class order follows the first appearance of each class member in the
// input; members keep input order. The partition is deterministic.
func Classes(quizzes []Quiz, threshold float64) [][]Quiz {
	n := len(quizzes)
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}

	var find func(int) int
	find = func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}
	// The smaller index stays the root, so a class root is always the
	// first-seen member.
	union := func(i, j int) {
		ri, rj := find(i), find(j)
		if ri == rj {
			return
		}
		if rj < ri {
			ri, rj = rj, ri
		}
		parent[rj] = ri
	}

	// Tier 1: stable identifier.
	byStableID := make(map[string]int)
	for i, q := range quizzes {
		if q.StableID == "" {
			continue
		}
		if first, ok := byStableID[q.StableID]; ok {
			union(i, first)
		} else {
			byStableID[q.StableID] = i
		}
	}

	classSize := func() []int {
		size := make([]int, n)
		for i := range quizzes {
			size[find(i)]++
		}
		return size
	}

	// Tier 2: content fingerprint, among records not already claimed by a
	// multi-member identifier class. Singleton identifier classes fall
	// through: a re-created copy that lost its identity still deserves a
	// content match.
	size := classSize()
	byFingerprint := make(map[string]int)
	for i, q := range quizzes {
		if size[find(i)] > 1 {
			continue
		}
		fp := Fingerprint(q)
		if first, ok := byFingerprint[fp]; ok {
			union(i, first)
		} else {
			byFingerprint[fp] = i
		}
	}

	// Tier 3: fuzzy similarity within normalized-title groups, among records
	// still unclaimed.
	size = classSize()
	byTitle := make(map[string][]int)
	for i, q := range quizzes {
		if size[find(i)] > 1 {
			continue
		}
		title := Normalize(q.Title)
		byTitle[title] = append(byTitle[title], i)
	}
	for _, group := range byTitle {
		for x := 0; x < len(group); x++ {
			for y := x + 1; y < len(group); y++ {
				i, j := group[x], group[y]
				if find(i) == find(j) {
					continue
				}
				if _, dup := Match(quizzes[i], quizzes[j], threshold); dup {
					union(i, j)
				}
			}
		}
	}

	// Assemble classes in first-seen order.
	members := make(map[int][]int)
	roots := make([]int, 0, n)
	for i := range quizzes {
		r := find(i)
		if _, ok := members[r]; !ok {
			roots = append(roots, r)
		}
		members[r] = append(members[r], i)
	}
	sort.Ints(roots)

	classes := make([][]Quiz, 0, len(roots))
	for _, r := range roots {
		class := make([]Quiz, 0, len(members[r]))
		for _, i := range members[r] {
			class = append(class, quizzes[i])
		}
		classes = append(classes, class)
	}
	return classes
}

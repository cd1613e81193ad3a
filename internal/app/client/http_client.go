package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/exp/slog"

	"quizshare/internal/app/client/config"
	"quizshare/internal/domain/sync"
)

type httpClient struct {
	client    *http.Client
	config    *config.Config
	log       *slog.Logger
	baseURL   string
	userAgent string
}

func NewHTTPClient(cfg *config.Config, log *slog.Logger) (*httpClient, error) {
	client := &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			IdleConnTimeout:     90 * time.Second,
			MaxIdleConnsPerHost: 10,
		},
	}

	scheme := "http://"
	if cfg.EnableTLS {
		scheme = "https://"
	}
	baseURL := scheme + cfg.ServerAddress

	return &httpClient{
		client:    client,
		config:    cfg,
		log:       log,
		baseURL:   baseURL,
		userAgent: "Quizshare-Client/1.0",
	}, nil
}

// HealthCheck verifies that the server is reachable.
func (h *httpClient) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, "GET", h.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("User-Agent", h.userAgent)

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("server unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	return nil
}

// Sync submits the batch and returns the server's full public set.
func (h *httpClient) Sync(ctx context.Context, req sync.SyncRequest) (*sync.SyncResponse, error) {
	resp, err := h.doRequest(ctx, "POST", "/api/sync", req)
	if err != nil {
		return nil, err
	}

	var syncResp sync.SyncResponse
	if err := h.parseResponse(resp, &syncResp); err != nil {
		return nil, err
	}
	if syncResp.Status == "Error" {
		return nil, fmt.Errorf("server error: %s", syncResp.Error)
	}

	return &syncResp, nil
}

// FetchPublic retrieves the server's full public set without submitting anything.
func (h *httpClient) FetchPublic(ctx context.Context) (*sync.ListResponse, error) {
	resp, err := h.doRequest(ctx, "GET", "/api/quizzes", nil)
	if err != nil {
		return nil, err
	}

	var listResp sync.ListResponse
	if err := h.parseResponse(resp, &listResp); err != nil {
		return nil, err
	}
	if listResp.Status == "Error" {
		return nil, fmt.Errorf("server error: %s", listResp.Error)
	}

	return &listResp, nil
}

// DeleteShared removes the shared record under the stable id.
func (h *httpClient) DeleteShared(ctx context.Context, stableID string) (bool, error) {
	resp, err := h.doRequest(ctx, "DELETE", "/api/quizzes/"+stableID, nil)
	if err != nil {
		return false, err
	}

	var delResp sync.DeleteResponse
	if err := h.parseResponse(resp, &delResp); err != nil {
		return false, err
	}
	if delResp.Status == "Error" {
		return false, fmt.Errorf("server error: %s", delResp.Error)
	}

	return delResp.Found, nil
}

func (h *httpClient) doRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", h.userAgent)

	h.log.Debug("sending request",
		"method", method,
		"url", req.URL.String(),
	)

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	return resp, nil
}

func (h *httpClient) parseResponse(resp *http.Response, result any) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	h.log.Debug("received response",
		"status", resp.StatusCode,
	)

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
			return fmt.Errorf("server error: %s", errResp.Error)
		}
		return fmt.Errorf("server error: status %d", resp.StatusCode)
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return nil
}

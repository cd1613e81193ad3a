package sync

import (
	"context"
	"encoding/json"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"quizshare/internal/domain/sync"
)

type Handler struct {
	service    sync.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service sync.Servicer, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.syncOp(), h.sync)
	huma.Register(api, h.cleanupOp(), h.cleanup)
}

func (h *Handler) sync(ctx context.Context, input *syncInput) (*syncOutput, error) {
	var req sync.SyncRequest
	if err := json.Unmarshal(input.RawBody, &req); err != nil {
		return &syncOutput{
			Body: sync.SyncResponse{
				Status: "Error",
				Error:  "unreadable sync request: " + err.Error(),
			},
		}, nil
	}

	response, err := h.service.Sync(ctx, req)
	if err != nil {
		return &syncOutput{
			Body: sync.SyncResponse{
				Status: "Error",
				Error:  err.Error(),
			},
		}, nil
	}

	return &syncOutput{
		Body: *response,
	}, nil
}

func (h *Handler) cleanup(ctx context.Context, _ *cleanupInput) (*cleanupOutput, error) {
	response, err := h.service.Cleanup(ctx)
	if err != nil {
		return &cleanupOutput{
			Body: sync.CleanupResponse{
				Status: "Error",
				Error:  err.Error(),
			},
		}, nil
	}

	return &cleanupOutput{
		Body: *response,
	}, nil
}

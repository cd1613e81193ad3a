package quiz

import (
	"context"

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
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.deleteOp(), h.delete)
}

func (h *Handler) list(ctx context.Context, _ *listInput) (*listOutput, error) {
	response, err := h.service.ListPublic(ctx)
	if err != nil {
		return &listOutput{
			Body: sync.ListResponse{
				Status: "Error",
				Error:  err.Error(),
			},
		}, nil
	}

	return &listOutput{
		Body: *response,
	}, nil
}

func (h *Handler) delete(ctx context.Context, input *deleteInput) (*deleteOutput, error) {
	response, err := h.service.Delete(ctx, input.StableID)
	if err != nil {
		return &deleteOutput{
			Body: sync.DeleteResponse{
				Status: "Error",
				Error:  err.Error(),
			},
		}, nil
	}

	return &deleteOutput{
		Body: *response,
	}, nil
}

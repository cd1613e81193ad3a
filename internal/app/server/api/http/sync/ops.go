package sync

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) syncOp() huma.Operation {
	return huma.Operation{
		OperationID: "sync-batch",
		Method:      http.MethodPost,
		Path:        "/api/sync",
		Summary:     "Reconcile a quiz batch",
		Description: "Accepts a batch of quizzes, reconciles it against the shared store and returns the full public set",
		Tags:        []string{"sync"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) cleanupOp() huma.Operation {
	return huma.Operation{
		OperationID: "sync-cleanup",
		Method:      http.MethodPost,
		Path:        "/api/cleanup",
		Summary:     "Deduplicate the shared store",
		Description: "Collapses equivalent quizzes in the shared store and reports the count removed",
		Tags:        []string{"sync"},
		Middlewares: h.middleware,
	}
}

package quiz

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "quiz-list-public",
		Method:      http.MethodGet,
		Path:        "/api/quizzes",
		Summary:     "List public quizzes",
		Description: "Returns the full current public set of the shared store",
		Tags:        []string{"quiz"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID: "quiz-delete",
		Method:      http.MethodDelete,
		Path:        "/api/quizzes/{stableId}",
		Summary:     "Delete a shared quiz",
		Description: "Removes the shared record under the stable identifier if present",
		Tags:        []string{"quiz"},
		Middlewares: h.middleware,
	}
}

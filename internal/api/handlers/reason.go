package handlers

import (
	"net/http"

	"github.com/AlexLecu/LLMKGraph/internal/service"
)

type ReasonHandler struct {
	svc *service.ReasonService
}

func NewReasonHandler(svc *service.ReasonService) *ReasonHandler {
	return &ReasonHandler{svc: svc}
}

// Refresh replaces the stored graph with its reasoned closure.
func (h *ReasonHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	count, err := h.svc.Refresh(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, "reasoning refresh failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "Successfully completed",
		"relations": count,
	})
}

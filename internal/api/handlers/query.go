package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/AlexLecu/LLMKGraph/internal/domain"
	"github.com/AlexLecu/LLMKGraph/internal/service"
)

const (
	maxQuestionChars = 500

	defaultSearchLimit = 100
	maxSearchLimit     = 1000
)

type QueryHandler struct {
	svc       *service.QueryService
	relations domain.RelationStore
}

func NewQueryHandler(svc *service.QueryService, relations domain.RelationStore) *QueryHandler {
	return &QueryHandler{svc: svc, relations: relations}
}

// Query answers a natural-language question with assembled graph context.
// Degraded and empty results are still HTTP 200; the error field inside
// the result carries the signal.
func (h *QueryHandler) Query(w http.ResponseWriter, r *http.Request) {
	question := strings.TrimSpace(r.URL.Query().Get("q"))
	if question == "" {
		writeError(w, http.StatusBadRequest, "q is required")
		return
	}
	if len(question) > maxQuestionChars {
		writeError(w, http.StatusBadRequest, "question too long")
		return
	}

	result := h.svc.Query(r.Context(), question)
	writeJSON(w, http.StatusOK, result)
}

// validSearchFilters enumerates where a graph search may match.
var validSearchFilters = map[string]bool{
	"node":     true,
	"relation": true,
	"entity":   true,
	"any":      true,
	"":         true,
}

// GraphSearch runs a raw substring search over the stored triples.
func (h *QueryHandler) GraphSearch(w http.ResponseWriter, r *http.Request) {
	text := strings.TrimSpace(r.URL.Query().Get("q"))
	if text == "" {
		writeError(w, http.StatusBadRequest, "q is required")
		return
	}

	filter := r.URL.Query().Get("filter")
	if !validSearchFilters[filter] {
		writeError(w, http.StatusBadRequest, "filter must be one of: node, relation, entity, any")
		return
	}

	limit := defaultSearchLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxSearchLimit {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	triples, err := h.relations.SearchPattern(r.Context(), text, filter, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "graph search failed")
		return
	}
	if triples == nil {
		triples = []domain.Triple{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": triples})
}

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/AlexLecu/LLMKGraph/internal/service"
)

// maxAbstractChars bounds one ingestion text; extraction prompts past
// this size stop paying for themselves.
const maxAbstractChars = 50000

type RelationsHandler struct {
	svc *service.IngestService
}

func NewRelationsHandler(svc *service.IngestService) *RelationsHandler {
	return &RelationsHandler{svc: svc}
}

type ingestRequest struct {
	Text  string `json:"text"`
	PubID string `json:"pub_id,omitempty"`
}

// Preview extracts and refines relations from text without touching the
// graph, so a curator can inspect the batch before committing it.
func (h *RelationsHandler) Preview(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeIngestRequest(w, r)
	if !ok {
		return
	}

	relations, err := h.svc.Preview(r.Context(), req.Text)
	if err != nil {
		writeError(w, http.StatusBadGateway, "relation extraction failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"relations": relations})
}

// Ingest extracts relations from one text and persists them.
func (h *RelationsHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeIngestRequest(w, r)
	if !ok {
		return
	}

	count, err := h.svc.Ingest(r.Context(), req.Text, req.PubID)
	if err != nil {
		writeError(w, http.StatusBadGateway, "relation ingestion failed")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"status":    "Successfully completed",
		"relations": count,
	})
}

type bulkIngestRequest struct {
	Abstracts []service.Abstract `json:"abstracts"`
}

// IngestBulk processes a batch of publication abstracts.
func (h *RelationsHandler) IngestBulk(w http.ResponseWriter, r *http.Request) {
	var req bulkIngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Abstracts) == 0 {
		writeError(w, http.StatusBadRequest, "abstracts are required")
		return
	}
	for _, abstract := range req.Abstracts {
		if abstract.Text == "" {
			writeError(w, http.StatusBadRequest, "abstract text is required")
			return
		}
		if len(abstract.Text) > maxAbstractChars {
			writeError(w, http.StatusBadRequest, "abstract too large")
			return
		}
	}

	result, err := h.svc.IngestBulk(r.Context(), req.Abstracts)
	if err != nil {
		writeError(w, http.StatusBadGateway, "bulk ingestion failed")
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func decodeIngestRequest(w http.ResponseWriter, r *http.Request) (ingestRequest, bool) {
	var req ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return req, false
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return req, false
	}
	if len(req.Text) > maxAbstractChars {
		writeError(w, http.StatusBadRequest, "text too large")
		return req, false
	}
	return req, true
}

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/tripweave/tripweave/internal/consolidate"
	"github.com/tripweave/tripweave/internal/database"
	"github.com/tripweave/tripweave/internal/extraction"
	"github.com/tripweave/tripweave/internal/models"
	"github.com/tripweave/tripweave/internal/report"
	"log/slog"
)

// ItineraryStore persists consolidated itineraries. Nil when persistence is
// disabled.
type ItineraryStore interface {
	Store(ctx context.Context, result *consolidate.Result) (*database.StoredItinerary, error)
	Get(ctx context.Context, id string) (*database.StoredItinerary, error)
	List(ctx context.Context, limit int) ([]database.StoredItinerary, error)
}

// ConsolidationObserver records consolidation run outcomes. Nil disables
// recording.
type ConsolidationObserver interface {
	ObserveConsolidation(dropped, warnings int)
}

type Handler struct {
	consolidator *consolidate.Consolidator
	extractor    extraction.Extractor
	store        ItineraryStore
	observer     ConsolidationObserver
	assembler    *report.Assembler
	logger       *slog.Logger
	startTime    time.Time
}

func NewHandler(consolidator *consolidate.Consolidator, extractor extraction.Extractor, store ItineraryStore, observer ConsolidationObserver, logger *slog.Logger) *Handler {
	return &Handler{
		consolidator: consolidator,
		extractor:    extractor,
		store:        store,
		observer:     observer,
		assembler:    report.NewAssembler(),
		logger:       logger,
		startTime:    time.Now(),
	}
}

// ConsolidateRequest carries per-document extractions to merge.
type ConsolidateRequest struct {
	Documents []models.DocumentExtract `json:"documents"`
}

// ConsolidateResponse returns the merged itinerary together with a rendered
// plain-text report.
type ConsolidateResponse struct {
	Result *consolidate.Result `json:"result"`
	Report string              `json:"report"`
}

// ExtractRequest carries raw document text for extraction.
type ExtractRequest struct {
	Document string `json:"document"`
}

// ConsolidateHandler handles POST /api/itineraries/consolidate
func (h *Handler) ConsolidateHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ConsolidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := ValidateConsolidateRequest(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result := h.consolidator.Consolidate(req.Documents)
	h.observeRun(result)

	writeJSON(w, http.StatusOK, ConsolidateResponse{
		Result: result,
		Report: h.assembler.Render(result),
	}, h.logger)
}

// CreateItineraryHandler handles POST /api/itineraries
func (h *Handler) CreateItineraryHandler(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		http.Error(w, "Persistence not configured", http.StatusServiceUnavailable)
		return
	}

	var req ConsolidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := ValidateConsolidateRequest(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result := h.consolidator.Consolidate(req.Documents)
	h.observeRun(result)

	stored, err := h.store.Store(r.Context(), result)
	if err != nil {
		h.logger.Error("failed to store itinerary", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, stored, h.logger)
}

// ListItinerariesHandler handles GET /api/itineraries
func (h *Handler) ListItinerariesHandler(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		http.Error(w, "Persistence not configured", http.StatusServiceUnavailable)
		return
	}

	itineraries, err := h.store.List(r.Context(), 50)
	if err != nil {
		h.logger.Error("failed to list itineraries", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if itineraries == nil {
		itineraries = []database.StoredItinerary{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"itineraries": itineraries,
		"count":       len(itineraries),
	}, h.logger)
}

// GetItineraryHandler handles GET /api/itineraries/:id
func (h *Handler) GetItineraryHandler(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		http.Error(w, "Persistence not configured", http.StatusServiceUnavailable)
		return
	}

	parts := strings.Split(r.URL.Path, "/")
	if len(parts) < 4 || parts[3] == "" {
		http.Error(w, "Itinerary ID required", http.StatusBadRequest)
		return
	}
	id := parts[3]

	stored, err := h.store.Get(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to get itinerary", "id", id, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if stored == nil {
		http.Error(w, "Itinerary not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, stored, h.logger)
}

// ExtractHandler handles POST /api/extract
func (h *Handler) ExtractHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := ValidateExtractRequest(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	extract, err := h.extractor.Extract(r.Context(), req.Document)
	if err != nil {
		h.logger.Error("extraction failed", "error", err)
		http.Error(w, "Extraction failed", http.StatusBadGateway)
		return
	}

	writeJSON(w, http.StatusOK, extract, h.logger)
}

// HealthzHandler handles GET /healthz
func (h *Handler) HealthzHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":         "ok",
		"uptime_seconds": int64(time.Since(h.startTime).Seconds()),
	}, h.logger)
}

func (h *Handler) observeRun(result *consolidate.Result) {
	if h.observer == nil {
		return
	}
	h.observer.ObserveConsolidation(len(result.Dropped), len(result.Timeline.Warnings))
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/ayusman/drishti/internal/engine"
	"github.com/ayusman/drishti/internal/store"
)

// SamplesHandler handles HTTP requests for calibration sample resources.
type SamplesHandler struct {
	store *store.Store
	tuner *engine.Tuner
	// onBaseline is called with the freshly trained baseline when samples
	// are recorded for the active profile. May be nil.
	onBaseline func(profileID string, b engine.Baseline)
}

// NewSamplesHandler creates a new SamplesHandler with the given store.
func NewSamplesHandler(s *store.Store, onBaseline func(string, engine.Baseline)) *SamplesHandler {
	return &SamplesHandler{
		store:      s,
		tuner:      engine.NewTuner(),
		onBaseline: onBaseline,
	}
}

// ServeHTTP implements the http.Handler interface.
// Expected paths: /api/profiles/{id}/samples
func (h *SamplesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Parse profile ID from path: /api/profiles/{id}/samples
	path := strings.TrimPrefix(r.URL.Path, "/api/profiles/")
	parts := strings.Split(path, "/")

	if len(parts) != 2 || parts[1] != "samples" {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}

	profileID := parts[0]

	switch r.Method {
	case http.MethodGet:
		h.list(w, r, profileID)
	case http.MethodPost:
		h.create(w, r, profileID)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Request types

type createSamplesRequest struct {
	Samples []json.RawMessage `json:"samples"`
}

// Response types

type sampleResponse struct {
	ID          int64           `json:"id"`
	ProfileID   string          `json:"profile_id"`
	SampleIndex int             `json:"sample_index"`
	Data        json.RawMessage `json:"data"`
	CreatedAt   string          `json:"created_at"`
}

type listSamplesResponse struct {
	Samples []sampleResponse `json:"samples"`
}

type createSamplesResponse struct {
	Status   string          `json:"status"`
	Baseline engine.Baseline `json:"baseline"`
}

// list handles GET /api/profiles/{id}/samples
func (h *SamplesHandler) list(w http.ResponseWriter, r *http.Request, profileID string) {
	samples, err := h.store.Samples().GetByProfileID(profileID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list samples")
		return
	}

	response := listSamplesResponse{
		Samples: make([]sampleResponse, 0, len(samples)),
	}

	for _, s := range samples {
		response.Samples = append(response.Samples, sampleResponse{
			ID:          s.ID,
			ProfileID:   s.ProfileID,
			SampleIndex: s.SampleIndex,
			Data:        s.Data,
			CreatedAt:   s.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	writeJSON(w, http.StatusOK, response)
}

// create handles POST /api/profiles/{id}/samples. It replaces the stored
// samples, trains a baseline from them, and reports the result.
func (h *SamplesHandler) create(w http.ResponseWriter, r *http.Request, profileID string) {
	// Verify profile exists
	profile, err := h.store.Profiles().GetByID(profileID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Profile not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to verify profile")
		return
	}

	var req createSamplesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if len(req.Samples) == 0 {
		writeError(w, http.StatusBadRequest, "At least one sample is required")
		return
	}

	baseline, err := h.tuner.Train(req.Samples)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Samples are not valid signal frames")
		return
	}

	// Recording replaces any previous calibration run
	if err := h.store.Samples().DeleteByProfileID(profileID); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to clear old samples")
		return
	}
	if err := h.store.Samples().Create(profileID, req.Samples); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save samples")
		return
	}

	if profile.Active && h.onBaseline != nil {
		h.onBaseline(profileID, baseline)
	}

	writeJSON(w, http.StatusCreated, createSamplesResponse{
		Status:   "ok",
		Baseline: baseline,
	})
}

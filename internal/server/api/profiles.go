// Package api provides HTTP API handlers for the Drishti head tracking system.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/ayusman/drishti/internal/engine"
	"github.com/ayusman/drishti/internal/store"
)

// ProfileHandler handles HTTP requests for calibration profile resources.
type ProfileHandler struct {
	store *store.Store
	// onActivate is called after a profile becomes active so the host can
	// apply its calibration to the running engine.
	onActivate func(*store.Profile)
}

// NewProfileHandler creates a new ProfileHandler with the given store.
// The onActivate callback may be nil.
func NewProfileHandler(s *store.Store, onActivate func(*store.Profile)) *ProfileHandler {
	return &ProfileHandler{store: s, onActivate: onActivate}
}

// ServeHTTP implements the http.Handler interface and routes requests to appropriate methods.
func (h *ProfileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Parse the path to determine if this is a collection or item request
	// Expected paths: /api/profiles, /api/profiles/{id}, /api/profiles/{id}/activate
	path := strings.TrimPrefix(r.URL.Path, "/api/profiles")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		// Collection endpoint: /api/profiles
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.create(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	if id, ok := strings.CutSuffix(path, "/activate"); ok {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.activate(w, r, id)
		return
	}

	// Item endpoint: /api/profiles/{id}
	id := path
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodPut:
		h.update(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Request and response types

type createProfileRequest struct {
	Name        string   `json:"name"`
	Sensitivity *float64 `json:"sensitivity"`
	Smoothing   *float64 `json:"smoothing"`
	DwellTimeMs *int     `json:"dwell_time_ms"`
	ClickMethod string   `json:"click_method"`
}

type updateProfileRequest struct {
	Name        string   `json:"name"`
	Sensitivity *float64 `json:"sensitivity"`
	Smoothing   *float64 `json:"smoothing"`
	DwellTimeMs *int     `json:"dwell_time_ms"`
	ClickMethod string   `json:"click_method"`
}

type profileResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Sensitivity float64 `json:"sensitivity"`
	Smoothing   float64 `json:"smoothing"`
	DwellTimeMs int     `json:"dwell_time_ms"`
	ClickMethod string  `json:"click_method"`
	Active      bool    `json:"active"`
	Samples     int     `json:"samples"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

type listProfilesResponse struct {
	Profiles []profileResponse `json:"profiles"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// toResponse converts a store.Profile to a profileResponse.
func toResponse(p *store.Profile) profileResponse {
	return profileResponse{
		ID:          p.ID,
		Name:        p.Name,
		Sensitivity: p.Sensitivity,
		Smoothing:   p.Smoothing,
		DwellTimeMs: p.DwellTimeMs,
		ClickMethod: string(p.ClickMethod),
		Active:      p.Active,
		Samples:     p.Samples,
		CreatedAt:   p.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:   p.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// validClickMethod reports whether the string names a known click method.
func validClickMethod(m string) bool {
	return m == string(engine.ClickBlink) || m == string(engine.ClickMouth)
}

// list handles GET /api/profiles and returns all profiles.
func (h *ProfileHandler) list(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.store.Profiles().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list profiles")
		return
	}

	response := listProfilesResponse{
		Profiles: make([]profileResponse, 0, len(profiles)),
	}

	for _, p := range profiles {
		response.Profiles = append(response.Profiles, toResponse(p))
	}

	writeJSON(w, http.StatusOK, response)
}

// get handles GET /api/profiles/{id} and returns a single profile.
func (h *ProfileHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	profile, err := h.store.Profiles().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Profile not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get profile")
		return
	}

	writeJSON(w, http.StatusOK, toResponse(profile))
}

// create handles POST /api/profiles and creates a new profile.
// Omitted tuning fields fall back to the engine defaults.
func (h *ProfileHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Validate required fields
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}

	defaults := engine.DefaultCalibration()

	profile := &store.Profile{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Sensitivity: defaults.Sensitivity,
		Smoothing:   defaults.Smoothing,
		DwellTimeMs: defaults.DwellTimeMs,
		ClickMethod: defaults.ClickMethod,
	}

	if req.Sensitivity != nil {
		profile.Sensitivity = *req.Sensitivity
	}
	if req.Smoothing != nil {
		profile.Smoothing = *req.Smoothing
	}
	if req.DwellTimeMs != nil {
		profile.DwellTimeMs = *req.DwellTimeMs
	}
	if req.ClickMethod != "" {
		if !validClickMethod(req.ClickMethod) {
			writeError(w, http.StatusBadRequest, "Invalid click method")
			return
		}
		profile.ClickMethod = engine.ClickMethod(req.ClickMethod)
	}

	if err := h.store.Profiles().Create(profile); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create profile")
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(profile))
}

// update handles PUT /api/profiles/{id} and updates an existing profile.
func (h *ProfileHandler) update(w http.ResponseWriter, r *http.Request, id string) {
	// First, get the existing profile
	profile, err := h.store.Profiles().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Profile not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get profile")
		return
	}

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Update fields if provided
	if req.Name != "" {
		profile.Name = req.Name
	}
	if req.Sensitivity != nil {
		profile.Sensitivity = *req.Sensitivity
	}
	if req.Smoothing != nil {
		profile.Smoothing = *req.Smoothing
	}
	if req.DwellTimeMs != nil {
		profile.DwellTimeMs = *req.DwellTimeMs
	}
	if req.ClickMethod != "" {
		if !validClickMethod(req.ClickMethod) {
			writeError(w, http.StatusBadRequest, "Invalid click method")
			return
		}
		profile.ClickMethod = engine.ClickMethod(req.ClickMethod)
	}

	if err := h.store.Profiles().Update(profile); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	// Live-apply changes to the active profile
	if profile.Active && h.onActivate != nil {
		h.onActivate(profile)
	}

	writeJSON(w, http.StatusOK, toResponse(profile))
}

// activate handles POST /api/profiles/{id}/activate and makes the profile
// the single active one.
func (h *ProfileHandler) activate(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.store.Profiles().Activate(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Profile not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to activate profile")
		return
	}

	profile, err := h.store.Profiles().GetByID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get profile")
		return
	}

	if h.onActivate != nil {
		h.onActivate(profile)
	}

	writeJSON(w, http.StatusOK, toResponse(profile))
}

// delete handles DELETE /api/profiles/{id} and removes a profile.
func (h *ProfileHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	err := h.store.Profiles().Delete(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Profile not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete profile")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

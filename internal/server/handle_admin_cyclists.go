package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/zimmerfann/cyclingimposter/internal/imposter"
)

// CyclistRequest is the admin create/update body for a rider record.
type CyclistRequest struct {
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
	Country  string `json:"country"`
	Team     string `json:"team"`
	Status   string `json:"status"`
}

func (req *CyclistRequest) validate() string {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return "name is required"
	}
	if req.Status == "" {
		req.Status = string(imposter.StatusActive)
	}
	if req.Status != string(imposter.StatusActive) && req.Status != string(imposter.StatusRetired) {
		return "status must be active or retired"
	}
	return ""
}

func (req CyclistRequest) toCyclist(id string) imposter.Cyclist {
	return imposter.Cyclist{
		ID:          id,
		Name:        req.Name,
		ImageURL:    req.ImageURL,
		Country:     req.Country,
		Team:        req.Team,
		Status:      imposter.CyclistStatus(req.Status),
		LastUpdated: imposter.Today(time.Now()),
	}
}

func handleAdminListCyclists(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cyclists, err := store.ListCyclists(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if cyclists == nil {
			cyclists = []imposter.Cyclist{}
		}
		writeJSON(w, http.StatusOK, cyclists)
	}
}

func handleAdminCreateCyclist(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CyclistRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if msg := req.validate(); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}

		c, err := store.CreateCyclist(r.Context(), req.toCyclist(""))
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusCreated, c)
	}
}

func handleAdminUpdateCyclist(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CyclistRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if msg := req.validate(); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}

		c, err := store.UpdateCyclist(r.Context(), req.toCyclist(chi.URLParam(r, "id")))
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "cyclist not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, c)
	}
}

func handleAdminDeleteCyclist(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := store.DeleteCyclist(r.Context(), chi.URLParam(r, "id"))
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "cyclist not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

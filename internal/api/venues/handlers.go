// internal/api/venues/handlers.go
package venues

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/rs/zerolog/log"

	"github.com/codr1/leagus/internal/api/apiutil"
	"github.com/codr1/leagus/internal/models"
	"github.com/codr1/leagus/internal/store"
	venueviews "github.com/codr1/leagus/internal/templates/components/venues"
)

const (
	venueQueryTimeout = 5 * time.Second
	venueNotFound     = "Venue not found"
)

var (
	st store.Store
)

type venueRequest struct {
	Name string `json:"name" form:"name" validate:"required,max=100"`
}

func InitHandlers(s store.Store) {
	if s == nil {
		return
	}
	st = s
}

func loadStore(w http.ResponseWriter, r *http.Request) (store.Store, bool) {
	if st == nil {
		log.Ctx(r.Context()).Error().Msg("Venue store not initialized")
		http.Error(w, apiutil.GenericErrorMessage, http.StatusInternalServerError)
		return nil, false
	}
	return st, true
}

// GET /venues
// GET /api/v1/venues
func HandleVenuesList(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	s, ok := loadStore(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), venueQueryTimeout)
	defer cancel()

	venues, err := s.ListVenues(ctx)
	if err != nil {
		apiutil.WriteError(w, r, err, venueNotFound, "Failed to list venues")
		return
	}

	if strings.HasPrefix(r.URL.Path, "/api/") {
		if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"venues": venues}); err != nil {
			logger.Error().Err(err).Msg("Failed to write venues response")
		}
		return
	}
	apiutil.RenderPage(w, r, "Venues", venueviews.VenuesPage(venues), nil)
}

// GET /venues/create
func HandleVenueCreateForm(w http.ResponseWriter, r *http.Request) {
	apiutil.RenderPage(w, r, "New venue", venueviews.FormPage(venueviews.Form{}), nil)
}

// POST /venues/create
// POST /api/v1/venues
func HandleVenueCreate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	s, ok := loadStore(w, r)
	if !ok {
		return
	}

	req, err := decodeVenueRequest(r)
	if err == nil {
		err = apiutil.ValidateForm(req)
	}
	if err != nil {
		renderFormError(w, r, req, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), venueQueryTimeout)
	defer cancel()

	venue := models.NewVenue(req.Name)
	if err := s.CreateVenue(ctx, venue); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			renderFormError(w, r, req, err)
			return
		}
		apiutil.WriteError(w, r, err, venueNotFound, "Failed to create venue")
		return
	}
	logger.Info().Str("venue_id", venue.ID.String()).Str("name", venue.Name).Msg("Venue created")

	if apiutil.IsJSONRequest(r) {
		if err := apiutil.WriteJSON(w, http.StatusCreated, venue); err != nil {
			logger.Error().Err(err).Str("venue_id", venue.ID.String()).Msg("Failed to write venue response")
		}
		return
	}

	apiutil.RespondCreated(w, r, "/venues", "Venues", func() (templ.Component, error) {
		venues, err := s.ListVenues(ctx)
		return venueviews.VenuesPage(venues), err
	})
}

func decodeVenueRequest(r *http.Request) (venueRequest, error) {
	if apiutil.IsJSONRequest(r) {
		var req venueRequest
		if err := apiutil.DecodeJSON(r, &req); err != nil {
			return req, apiutil.BadRequest("Invalid JSON body", err)
		}
		req.Name = apiutil.FirstNonEmpty(req.Name)
		return req, nil
	}

	if err := r.ParseForm(); err != nil {
		return venueRequest{}, apiutil.BadRequest("Invalid form", err)
	}
	return venueRequest{Name: apiutil.FirstNonEmpty(r.FormValue("name"))}, nil
}

func renderFormError(w http.ResponseWriter, r *http.Request, req venueRequest, err error) {
	handlerErr := apiutil.ClassifyError(err, venueNotFound)
	if handlerErr.Status >= http.StatusInternalServerError || apiutil.IsJSONRequest(r) {
		apiutil.WriteError(w, r, err, venueNotFound, "Failed to create venue")
		return
	}
	form := venueviews.Form{Name: req.Name, Error: handlerErr.Message}
	apiutil.RenderFormError(w, r, handlerErr.Status, "New venue", venueviews.FormPage(form), "#content")
}

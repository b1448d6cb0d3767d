// internal/api/participants/handlers.go
package participants

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/rs/zerolog/log"

	"github.com/codr1/leagus/internal/api/apiutil"
	"github.com/codr1/leagus/internal/models"
	"github.com/codr1/leagus/internal/store"
	participantviews "github.com/codr1/leagus/internal/templates/components/participants"
)

const (
	participantQueryTimeout = 5 * time.Second
	participantNotFound     = "Participant not found"
)

var (
	st store.Store
)

type participantRequest struct {
	Name string `json:"name" form:"name" validate:"required,max=100"`
}

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(s store.Store) {
	if s == nil {
		return
	}
	st = s
}

func loadStore(w http.ResponseWriter, r *http.Request) (store.Store, bool) {
	if st == nil {
		log.Ctx(r.Context()).Error().Msg("Participant store not initialized")
		http.Error(w, apiutil.GenericErrorMessage, http.StatusInternalServerError)
		return nil, false
	}
	return st, true
}

// GET /participants
// GET /api/v1/participants
func HandleParticipantsList(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	s, ok := loadStore(w, r)
	if !ok {
		return
	}

	query := apiutil.FirstNonEmpty(r.URL.Query().Get("query_name"))

	ctx, cancel := context.WithTimeout(r.Context(), participantQueryTimeout)
	defer cancel()

	participants, err := s.ListParticipants(ctx, query)
	if err != nil {
		apiutil.WriteError(w, r, err, participantNotFound, "Failed to list participants")
		return
	}

	if strings.HasPrefix(r.URL.Path, "/api/") {
		if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"participants": participants}); err != nil {
			logger.Error().Err(err).Msg("Failed to write participants response")
		}
		return
	}
	apiutil.RenderPage(w, r, "Participants", participantviews.ParticipantsPage(participants, query), nil)
}

// GET /participants/create
func HandleParticipantCreateForm(w http.ResponseWriter, r *http.Request) {
	apiutil.RenderPage(w, r, "New participant", participantviews.FormPage(participantviews.Form{}), nil)
}

// POST /participants/create
// POST /api/v1/participants
func HandleParticipantCreate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	s, ok := loadStore(w, r)
	if !ok {
		return
	}

	req, err := decodeParticipantRequest(r)
	if err == nil {
		err = apiutil.ValidateForm(req)
	}
	if err != nil {
		renderFormError(w, r, req, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), participantQueryTimeout)
	defer cancel()

	participant := models.NewParticipant(req.Name)
	if err := s.CreateParticipant(ctx, participant); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			renderFormError(w, r, req, err)
			return
		}
		apiutil.WriteError(w, r, err, participantNotFound, "Failed to create participant")
		return
	}
	logger.Info().Str("participant_id", participant.ID.String()).Str("name", participant.Name).Msg("Participant created")

	if apiutil.IsJSONRequest(r) {
		if err := apiutil.WriteJSON(w, http.StatusCreated, participant); err != nil {
			logger.Error().Err(err).Str("participant_id", participant.ID.String()).Msg("Failed to write participant response")
		}
		return
	}

	apiutil.RespondCreated(w, r, "/participants", "Participants", func() (templ.Component, error) {
		participants, err := s.ListParticipants(ctx, "")
		return participantviews.ParticipantsPage(participants, ""), err
	})
}

func decodeParticipantRequest(r *http.Request) (participantRequest, error) {
	if apiutil.IsJSONRequest(r) {
		var req participantRequest
		if err := apiutil.DecodeJSON(r, &req); err != nil {
			return req, apiutil.BadRequest("Invalid JSON body", err)
		}
		req.Name = strings.TrimSpace(req.Name)
		return req, nil
	}

	if err := r.ParseForm(); err != nil {
		return participantRequest{}, apiutil.BadRequest("Invalid form", err)
	}
	return participantRequest{Name: apiutil.FirstNonEmpty(r.FormValue("name"))}, nil
}

func renderFormError(w http.ResponseWriter, r *http.Request, req participantRequest, err error) {
	handlerErr := apiutil.ClassifyError(err, participantNotFound)
	if handlerErr.Status >= http.StatusInternalServerError || apiutil.IsJSONRequest(r) {
		apiutil.WriteError(w, r, err, participantNotFound, fmt.Sprintf("Failed to create participant %q", req.Name))
		return
	}
	form := participantviews.Form{Name: req.Name, Error: handlerErr.Message}
	apiutil.RenderFormError(w, r, handlerErr.Status, "New participant", participantviews.FormPage(form), "#content")
}

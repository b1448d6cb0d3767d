// internal/api/sessions/handlers.go
package sessions

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/codr1/leagus/internal/api/apiutil"
	"github.com/codr1/leagus/internal/models"
	"github.com/codr1/leagus/internal/store"
	sessionviews "github.com/codr1/leagus/internal/templates/components/sessions"
)

const (
	sessionQueryTimeout = 5 * time.Second
	sessionNotFound     = "Session not found"
	roundIDQueryKey     = "round_id"
)

var (
	st store.Store
)

type sessionRequest struct {
	Date       string `json:"date" form:"date"`
	MakeActive bool   `json:"makeActive" form:"make_active"`
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
		log.Ctx(r.Context()).Error().Msg("Session store not initialized")
		http.Error(w, apiutil.GenericErrorMessage, http.StatusInternalServerError)
		return nil, false
	}
	return st, true
}

// GET /sessions
// GET /api/v1/sessions
func HandleSessionsList(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	s, ok := loadStore(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), sessionQueryTimeout)
	defer cancel()

	sessions, err := s.ListSessions(ctx)
	if err != nil {
		apiutil.WriteError(w, r, err, sessionNotFound, "Failed to list sessions")
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"sessions": sessions}); err != nil {
		logger.Error().Err(err).Msg("Failed to write sessions response")
	}
}

// POST /sessions/create/{season_id}
func HandleSessionCreate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	s, ok := loadStore(w, r)
	if !ok {
		return
	}

	seasonID, err := apiutil.PathID[models.Season](r, "season_id", "season")
	if err != nil {
		apiutil.WriteError(w, r, err, "Season not found", "Invalid season ID")
		return
	}

	req, err := decodeSessionRequest(r)
	if err != nil {
		apiutil.WriteError(w, r, err, sessionNotFound, "Invalid session request")
		return
	}
	date, err := apiutil.ParseDateOrNow(req.Date, time.Now())
	if err != nil {
		apiutil.WriteError(w, r, err, sessionNotFound, "Invalid session date")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), sessionQueryTimeout)
	defer cancel()

	session := models.NewSession(seasonID, date)
	if err := s.CreateSession(ctx, session, req.MakeActive); err != nil {
		apiutil.WriteError(w, r, err, "Season not found", "Failed to create session")
		return
	}
	logger.Info().
		Str("season_id", seasonID.String()).
		Str("session_id", session.ID.String()).
		Bool("make_active", req.MakeActive).
		Msg("Session created")

	if apiutil.IsJSONRequest(r) {
		if err := apiutil.WriteJSON(w, http.StatusCreated, session); err != nil {
			logger.Error().Err(err).Str("session_id", session.ID.String()).Msg("Failed to write session response")
		}
		return
	}

	apiutil.RespondCreated(w, r, fmt.Sprintf("/sessions/%s", session.ID), "Session", func() (templ.Component, error) {
		detail, err := LoadSessionDetail(ctx, s, session.ID, nil)
		return sessionviews.SessionPage(detail), err
	})
}

// GET /sessions/{session_id}
func HandleSessionDetail(w http.ResponseWriter, r *http.Request) {
	s, ok := loadStore(w, r)
	if !ok {
		return
	}

	sessionID, err := apiutil.PathID[models.Session](r, "session_id", "session")
	if err != nil {
		apiutil.WriteError(w, r, err, sessionNotFound, "Invalid session ID")
		return
	}
	roundID, err := apiutil.OptionalQueryID[models.Round](r, roundIDQueryKey, "round")
	if err != nil {
		apiutil.WriteError(w, r, err, sessionNotFound, "Invalid round ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), sessionQueryTimeout)
	defer cancel()

	detail, err := LoadSessionDetail(ctx, s, sessionID, roundID)
	if err != nil {
		apiutil.WriteError(w, r, err, sessionNotFound, "Failed to load session")
		return
	}

	title := "Session of " + apiutil.FormatDate(detail.Session.Date)
	apiutil.RenderPage(w, r, title, sessionviews.SessionPage(detail), nil)
}

// LoadSessionDetail loads a session with its season and rounds. The active
// round is the requested one when it belongs to the session, else the most
// recently created round.
func LoadSessionDetail(ctx context.Context, s store.Store, sessionID models.SessionID, requestedRound *models.RoundID) (sessionviews.SessionDetail, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return sessionviews.SessionDetail{}, err
	}

	var (
		season models.Season
		rounds []models.Round
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		season, err = s.GetSeason(gctx, session.SeasonID)
		return err
	})
	g.Go(func() error {
		var err error
		rounds, err = s.ListRoundsForSession(gctx, sessionID)
		return err
	})
	if err := g.Wait(); err != nil {
		return sessionviews.SessionDetail{}, err
	}

	detail := sessionviews.SessionDetail{Session: session, Season: season, Rounds: rounds}
	var last *models.RoundID
	if len(rounds) > 0 {
		last = rounds[len(rounds)-1].ID.Ptr()
	}
	round, ok := models.PickActive(requestedRound, last, rounds, models.RoundIDOf)
	if !ok {
		return detail, nil
	}

	roundDetail, err := LoadRoundDetail(ctx, s, round, "")
	if err != nil {
		return sessionviews.SessionDetail{}, err
	}
	detail.ActiveRound = &roundDetail
	return detail, nil
}

// LoadRoundDetail gathers what the round panel shows. query narrows the
// participants offered for adding by a case-insensitive name substring.
func LoadRoundDetail(ctx context.Context, s store.Store, round models.Round, query string) (sessionviews.RoundDetail, error) {
	var (
		attached []models.Participant
		everyone []models.Participant
		matching []models.Participant
		matches  []models.Match
		venues   []models.Venue
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		attached, err = s.ListParticipantsForRound(gctx, round.ID)
		return err
	})
	g.Go(func() error {
		var err error
		everyone, err = s.ListParticipants(gctx, "")
		return err
	})
	if query != "" {
		g.Go(func() error {
			var err error
			matching, err = s.ListParticipants(gctx, query)
			return err
		})
	}
	g.Go(func() error {
		var err error
		matches, err = s.ListMatchesForRound(gctx, round.ID)
		return err
	})
	g.Go(func() error {
		var err error
		venues, err = s.ListVenues(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return sessionviews.RoundDetail{}, err
	}
	if query == "" {
		matching = everyone
	}

	names := make(map[models.ParticipantID]string, len(everyone))
	for _, p := range everyone {
		names[p.ID] = p.Name
	}
	venueNames := make(map[models.VenueID]string, len(venues))
	for _, v := range venues {
		venueNames[v.ID] = v.Name
	}

	return sessionviews.RoundDetail{
		Round:        round,
		Participants: attached,
		Available:    models.AvailableParticipants(matching, attached),
		Query:        query,
		Matches:      matches,
		Names:        names,
		Venues:       venueNames,
	}, nil
}

func decodeSessionRequest(r *http.Request) (sessionRequest, error) {
	if apiutil.IsJSONRequest(r) {
		var req sessionRequest
		if err := apiutil.DecodeJSON(r, &req); err != nil {
			return req, apiutil.BadRequest("Invalid JSON body", err)
		}
		return req, nil
	}

	if err := r.ParseForm(); err != nil {
		return sessionRequest{}, apiutil.BadRequest("Invalid form", err)
	}
	return sessionRequest{
		Date:       apiutil.FirstNonEmpty(r.FormValue("date")),
		MakeActive: apiutil.FormChecked(r.FormValue("make_active")),
	}, nil
}

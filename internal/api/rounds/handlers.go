// internal/api/rounds/handlers.go
package rounds

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/rs/zerolog/log"

	"github.com/codr1/leagus/internal/api/apiutil"
	"github.com/codr1/leagus/internal/api/sessions"
	leaguesvc "github.com/codr1/leagus/internal/leagues"
	"github.com/codr1/leagus/internal/metrics"
	"github.com/codr1/leagus/internal/models"
	"github.com/codr1/leagus/internal/store"
	sessionviews "github.com/codr1/leagus/internal/templates/components/sessions"
)

const (
	roundQueryTimeout = 5 * time.Second
	roundNotFound     = "Round not found"
	matchNotFound     = "Match not found"

	createSegment        = "create"
	generateMatchesPath  = "generate_matches"
	pointsUpdatedTrigger = "pointsTableUpdated"
)

var (
	st    store.Store
	rules = leaguesvc.DefaultPointsRules

	errMatchesGenerated = apiutil.HandlerError{
		Status:  http.StatusConflict,
		Message: "Matches have already been generated for this round",
		Err:     store.ErrRoundHasMatches,
	}
)

// InitHandlers must be called during server startup before handling
// requests. pointsRules scores recorded results.
func InitHandlers(s store.Store, pointsRules leaguesvc.PointsRules) {
	if s == nil {
		return
	}
	st = s
	rules = pointsRules
}

func loadStore(w http.ResponseWriter, r *http.Request) (store.Store, bool) {
	if st == nil {
		log.Ctx(r.Context()).Error().Msg("Round store not initialized")
		http.Error(w, apiutil.GenericErrorMessage, http.StatusInternalServerError)
		return nil, false
	}
	return st, true
}

// POST /rounds/{round_id}/{action}
//
// /rounds/create/{session_id} and /rounds/{round_id}/generate_matches share
// a shape, so one pattern serves both.
func HandleRoundPost(w http.ResponseWriter, r *http.Request) {
	first, action := r.PathValue("round_id"), r.PathValue("action")
	switch {
	case first == createSegment:
		r.SetPathValue("session_id", action)
		HandleRoundCreate(w, r)
	case action == generateMatchesPath:
		HandleGenerateMatches(w, r)
	default:
		http.NotFound(w, r)
	}
}

// POST /rounds/create/{session_id}
func HandleRoundCreate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	s, ok := loadStore(w, r)
	if !ok {
		return
	}

	sessionID, err := apiutil.PathID[models.Session](r, "session_id", "session")
	if err != nil {
		apiutil.WriteError(w, r, err, "Session not found", "Invalid session ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), roundQueryTimeout)
	defer cancel()

	round := models.NewRound(sessionID)
	if err := s.CreateRound(ctx, round); err != nil {
		apiutil.WriteError(w, r, err, "Session not found", "Failed to create round")
		return
	}
	logger.Info().Str("session_id", sessionID.String()).Str("round_id", round.ID.String()).Msg("Round created")

	if apiutil.IsJSONRequest(r) {
		if err := apiutil.WriteJSON(w, http.StatusCreated, round); err != nil {
			logger.Error().Err(err).Str("round_id", round.ID.String()).Msg("Failed to write round response")
		}
		return
	}

	location := fmt.Sprintf("/sessions/%s?round_id=%s", sessionID, round.ID)
	apiutil.RespondCreated(w, r, location, "Round", func() (templ.Component, error) {
		detail, err := sessions.LoadSessionDetail(ctx, s, sessionID, round.ID.Ptr())
		return sessionviews.SessionPage(detail), err
	})
}

// GET /rounds/{round_id}
func HandleRoundDetail(w http.ResponseWriter, r *http.Request) {
	s, ok := loadStore(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), roundQueryTimeout)
	defer cancel()

	round, err := loadRound(ctx, r, s)
	if err != nil {
		apiutil.WriteError(w, r, err, roundNotFound, "Failed to load round")
		return
	}

	detail, err := sessions.LoadSessionDetail(ctx, s, round.SessionID, round.ID.Ptr())
	if err != nil {
		apiutil.WriteError(w, r, err, roundNotFound, "Failed to load session")
		return
	}

	apiutil.RenderPage(w, r, "Round", sessionviews.SessionPage(detail), nil)
}

// GET /rounds/{round_id}/update_participants?query_name=
func HandleUpdateParticipants(w http.ResponseWriter, r *http.Request) {
	s, ok := loadStore(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), roundQueryTimeout)
	defer cancel()

	round, err := loadRound(ctx, r, s)
	if err != nil {
		apiutil.WriteError(w, r, err, roundNotFound, "Failed to load round")
		return
	}

	query := apiutil.FirstNonEmpty(r.URL.Query().Get("query_name"))
	detail, err := sessions.LoadRoundDetail(ctx, s, round, query)
	if err != nil {
		apiutil.WriteError(w, r, err, roundNotFound, "Failed to search participants")
		return
	}

	apiutil.RenderHTMLComponent(r.Context(), w, sessionviews.AvailableList(round.ID, detail.Available), nil, "Failed to render available participants", "Failed to render list")
}

// POST /rounds/{round_id}/add_participant/{participant_id}
func HandleAddParticipant(w http.ResponseWriter, r *http.Request) {
	changeParticipants(w, r, true)
}

// POST /rounds/{round_id}/remove_participant/{participant_id}
func HandleRemoveParticipant(w http.ResponseWriter, r *http.Request) {
	changeParticipants(w, r, false)
}

func changeParticipants(w http.ResponseWriter, r *http.Request, add bool) {
	logger := log.Ctx(r.Context())
	s, ok := loadStore(w, r)
	if !ok {
		return
	}

	participantID, err := apiutil.PathID[models.Participant](r, "participant_id", "participant")
	if err != nil {
		apiutil.WriteError(w, r, err, "Participant not found", "Invalid participant ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), roundQueryTimeout)
	defer cancel()

	round, err := loadRound(ctx, r, s)
	if err != nil {
		apiutil.WriteError(w, r, err, roundNotFound, "Failed to load round")
		return
	}
	if _, err := s.GetParticipant(ctx, participantID); err != nil {
		apiutil.WriteError(w, r, err, "Participant not found", "Failed to load participant")
		return
	}

	if add {
		err = s.AddParticipantToRound(ctx, participantID, round.ID)
	} else {
		err = s.RemoveParticipantFromRound(ctx, participantID, round.ID)
	}
	if err != nil {
		apiutil.WriteError(w, r, err, roundNotFound, "Failed to update round participants")
		return
	}
	logger.Info().
		Str("round_id", round.ID.String()).
		Str("participant_id", participantID.String()).
		Bool("added", add).
		Msg("Round participants updated")

	detail, err := sessions.LoadRoundDetail(ctx, s, round, "")
	if err != nil {
		apiutil.WriteError(w, r, err, roundNotFound, "Failed to load round")
		return
	}
	apiutil.RenderHTMLComponent(r.Context(), w, sessionviews.ParticipantsPanel(detail), nil, "Failed to render round participants", "Failed to render participants")
}

// POST /rounds/{round_id}/generate_matches
func HandleGenerateMatches(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	s, ok := loadStore(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), roundQueryTimeout)
	defer cancel()

	round, err := loadRound(ctx, r, s)
	if err != nil {
		apiutil.WriteError(w, r, err, roundNotFound, "Failed to load round")
		return
	}

	existing, err := s.ListMatchesForRound(ctx, round.ID)
	if err != nil {
		apiutil.WriteError(w, r, err, roundNotFound, "Failed to list matches")
		return
	}
	if len(existing) > 0 {
		apiutil.WriteError(w, r, errMatchesGenerated, roundNotFound, "Matches already generated")
		return
	}

	participants, err := s.ListParticipantsForRound(ctx, round.ID)
	if err != nil {
		apiutil.WriteError(w, r, err, roundNotFound, "Failed to list round participants")
		return
	}
	venues, err := s.ListVenues(ctx)
	if err != nil {
		apiutil.WriteError(w, r, err, roundNotFound, "Failed to list venues")
		return
	}

	matches, err := leaguesvc.GenerateRoundMatches(round, participants, venues)
	if err != nil {
		if errors.Is(err, leaguesvc.ErrNotEnoughParticipants) || errors.Is(err, leaguesvc.ErrNoVenues) {
			err = apiutil.BadRequest(err.Error(), err)
		}
		apiutil.WriteError(w, r, err, roundNotFound, "Failed to generate matches")
		return
	}
	if err := s.CreateMatches(ctx, round.ID, matches); err != nil {
		if errors.Is(err, store.ErrRoundHasMatches) {
			err = errMatchesGenerated
		}
		apiutil.WriteError(w, r, err, roundNotFound, "Failed to create matches")
		return
	}
	metrics.MatchesGenerated.Add(float64(len(matches)))

	event := logger.Info().Str("round_id", round.ID.String()).Int("matches", len(matches))
	if out, ok := leaguesvc.SittingOut(participants); ok {
		event = event.Str("sitting_out", out.ID.String())
	}
	event.Msg("Matches generated")

	if apiutil.IsJSONRequest(r) {
		if err := apiutil.WriteJSON(w, http.StatusCreated, map[string]any{"matches": matches}); err != nil {
			logger.Error().Err(err).Msg("Failed to write matches response")
		}
		return
	}

	detail, err := sessions.LoadRoundDetail(ctx, s, round, "")
	if err != nil {
		apiutil.WriteError(w, r, err, roundNotFound, "Failed to load round")
		return
	}
	apiutil.RenderHTMLComponent(r.Context(), w, sessionviews.MatchesList(detail), nil, "Failed to render matches", "Failed to render matches")
}

// GET /api/v1/rounds/{round_id}/matches
func HandleRoundMatches(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	s, ok := loadStore(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), roundQueryTimeout)
	defer cancel()

	round, err := loadRound(ctx, r, s)
	if err != nil {
		apiutil.WriteError(w, r, err, roundNotFound, "Failed to load round")
		return
	}
	matches, err := s.ListMatchesForRound(ctx, round.ID)
	if err != nil {
		apiutil.WriteError(w, r, err, roundNotFound, "Failed to list matches")
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"matches": matches}); err != nil {
		logger.Error().Err(err).Str("round_id", round.ID.String()).Msg("Failed to write matches response")
	}
}

// POST /matches/{match_id}/result?winner_id=
func HandleMatchResult(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	s, ok := loadStore(w, r)
	if !ok {
		return
	}

	matchID, err := apiutil.PathID[models.Match](r, "match_id", "match")
	if err != nil {
		apiutil.WriteError(w, r, err, matchNotFound, "Invalid match ID")
		return
	}
	if err := r.ParseForm(); err != nil {
		apiutil.WriteError(w, r, apiutil.BadRequest("Invalid form", err), matchNotFound, "Invalid match result")
		return
	}
	winnerID, err := models.ParseID[models.Participant](apiutil.FirstNonEmpty(r.FormValue("winner_id")))
	if err != nil {
		apiutil.WriteError(w, r, apiutil.BadRequest("Invalid winner ID", err), matchNotFound, "Invalid match result")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), roundQueryTimeout)
	defer cancel()

	match, err := s.GetMatch(ctx, matchID)
	if err != nil {
		apiutil.WriteError(w, r, err, matchNotFound, "Failed to load match")
		return
	}
	result, err := match.NewResult(winnerID, time.Now())
	if err != nil {
		apiutil.WriteError(w, r, err, matchNotFound, "Invalid match result")
		return
	}
	if err := s.RecordMatchResult(ctx, match.ID, result); err != nil {
		apiutil.WriteError(w, r, err, matchNotFound, "Failed to record match result")
		return
	}
	match.Result = &result
	metrics.MatchResultsRecorded.Inc()

	round, err := s.GetRound(ctx, match.RoundID)
	if err != nil {
		apiutil.WriteError(w, r, err, roundNotFound, "Failed to load round")
		return
	}
	session, err := s.GetSession(ctx, round.SessionID)
	if err != nil {
		apiutil.WriteError(w, r, err, "Session not found", "Failed to load session")
		return
	}
	table, err := leaguesvc.RecalculateSeason(ctx, s, session.SeasonID, rules)
	if err != nil {
		apiutil.WriteError(w, r, err, "Season not found", "Failed to recalculate points table")
		return
	}
	logger.Info().
		Str("match_id", match.ID.String()).
		Str("winner_id", winnerID.String()).
		Str("season_id", session.SeasonID.String()).
		Int("table_entries", len(table.Entries)).
		Msg("Match result recorded")

	if apiutil.IsJSONRequest(r) {
		if err := apiutil.WriteJSON(w, http.StatusOK, match); err != nil {
			logger.Error().Err(err).Str("match_id", match.ID.String()).Msg("Failed to write match response")
		}
		return
	}

	detail, err := sessions.LoadRoundDetail(ctx, s, round, "")
	if err != nil {
		apiutil.WriteError(w, r, err, roundNotFound, "Failed to load round")
		return
	}
	headers := map[string]string{"HX-Trigger": pointsUpdatedTrigger}
	apiutil.RenderHTMLComponent(r.Context(), w, sessionviews.MatchCard(match, detail), headers, "Failed to render match", "Failed to render match")
}

func loadRound(ctx context.Context, r *http.Request, s store.Store) (models.Round, error) {
	roundID, err := apiutil.PathID[models.Round](r, "round_id", "round")
	if err != nil {
		return models.Round{}, err
	}
	return s.GetRound(ctx, roundID)
}

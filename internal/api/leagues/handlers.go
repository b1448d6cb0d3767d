// internal/api/leagues/handlers.go
package leagues

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/codr1/leagus/internal/api/apiutil"
	"github.com/codr1/leagus/internal/models"
	"github.com/codr1/leagus/internal/store"
	leagueviews "github.com/codr1/leagus/internal/templates/components/leagues"
)

const (
	leagueQueryTimeout = 5 * time.Second
	leagueIDPathKey    = "league_id"
	seasonIDQueryKey   = "season_id"
	sessionIDQueryKey  = "session_id"
	leagueNotFound     = "League not found"
)

var (
	st store.Store
)

type leagueRequest struct {
	Name        string `json:"name" form:"name" validate:"required,max=100"`
	Description string `json:"description" form:"description" validate:"max=1000"`
}

type seasonRequest struct {
	Name       string `json:"name" form:"name" validate:"max=100"`
	Start      string `json:"start" form:"start"`
	End        string `json:"end" form:"end"`
	MakeActive bool   `json:"makeActive" form:"make_active"`
}

type leagueDetailResponse struct {
	League        models.League    `json:"league"`
	Seasons       []models.Season  `json:"seasons"`
	ActiveSeason  *models.Season   `json:"activeSeason,omitempty"`
	Sessions      []models.Session `json:"sessions"`
	ActiveSession *models.Session  `json:"activeSession,omitempty"`
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
		log.Ctx(r.Context()).Error().Msg("League store not initialized")
		http.Error(w, apiutil.GenericErrorMessage, http.StatusInternalServerError)
		return nil, false
	}
	return st, true
}

// GET /leagues
func HandleLeaguesPage(w http.ResponseWriter, r *http.Request) {
	s, ok := loadStore(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), leagueQueryTimeout)
	defer cancel()

	leagues, err := s.ListLeagues(ctx)
	if err != nil {
		apiutil.WriteError(w, r, err, leagueNotFound, "Failed to list leagues")
		return
	}

	apiutil.RenderPage(w, r, "Leagues", leagueviews.LeaguesPage(leagues), nil)
}

// GET /leagues/create
func HandleLeagueCreateForm(w http.ResponseWriter, r *http.Request) {
	apiutil.RenderPage(w, r, "New league", leagueviews.LeagueFormPage(leagueviews.LeagueForm{}), nil)
}

// POST /leagues/create
func HandleLeagueCreate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	s, ok := loadStore(w, r)
	if !ok {
		return
	}

	req, err := decodeLeagueRequest(r)
	if err == nil {
		err = apiutil.ValidateForm(req)
	}
	if err != nil {
		renderLeagueFormError(w, r, req, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), leagueQueryTimeout)
	defer cancel()

	league := models.NewLeague(req.Name, req.Description)
	if err := s.CreateLeague(ctx, league); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			renderLeagueFormError(w, r, req, err)
			return
		}
		apiutil.WriteError(w, r, err, leagueNotFound, "Failed to create league")
		return
	}
	logger.Info().Str("league_id", league.ID.String()).Str("name", league.Name).Msg("League created")

	if apiutil.IsJSONRequest(r) {
		if err := apiutil.WriteJSON(w, http.StatusCreated, league); err != nil {
			logger.Error().Err(err).Str("league_id", league.ID.String()).Msg("Failed to write league response")
		}
		return
	}

	apiutil.RespondCreated(w, r, fmt.Sprintf("/leagues/%s", league.ID), league.Name, func() (templ.Component, error) {
		detail, err := LoadLeagueDetail(ctx, s, league.ID, nil, nil)
		return leagueviews.LeagueDetailPage(detail), err
	})
}

// GET /leagues/{league_id}
func HandleLeagueDetail(w http.ResponseWriter, r *http.Request) {
	s, ok := loadStore(w, r)
	if !ok {
		return
	}

	leagueID, seasonID, sessionID, err := leagueDetailParams(r)
	if err != nil {
		apiutil.WriteError(w, r, err, leagueNotFound, "Invalid league request")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), leagueQueryTimeout)
	defer cancel()

	detail, err := LoadLeagueDetail(ctx, s, leagueID, seasonID, sessionID)
	if err != nil {
		apiutil.WriteError(w, r, err, leagueNotFound, "Failed to load league")
		return
	}

	apiutil.RenderPage(w, r, detail.League.Name, leagueviews.LeagueDetailPage(detail), nil)
}

// GET /leagues/{league_id}/seasons
func HandleLeagueSeasons(w http.ResponseWriter, r *http.Request) {
	s, ok := loadStore(w, r)
	if !ok {
		return
	}

	leagueID, err := apiutil.PathID[models.League](r, leagueIDPathKey, "league")
	if err != nil {
		apiutil.WriteError(w, r, err, leagueNotFound, "Invalid league ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), leagueQueryTimeout)
	defer cancel()

	detail, err := LoadLeagueDetail(ctx, s, leagueID, nil, nil)
	if err != nil {
		apiutil.WriteError(w, r, err, leagueNotFound, "Failed to load seasons")
		return
	}

	component := leagueviews.SeasonsList(leagueID, detail.Seasons, detail.League.ActiveSeason)
	apiutil.RenderPage(w, r, detail.League.Name+" seasons", component, nil)
}

// GET /seasons/create/{league_id}
func HandleSeasonCreateForm(w http.ResponseWriter, r *http.Request) {
	s, ok := loadStore(w, r)
	if !ok {
		return
	}

	leagueID, err := apiutil.PathID[models.League](r, leagueIDPathKey, "league")
	if err != nil {
		apiutil.WriteError(w, r, err, leagueNotFound, "Invalid league ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), leagueQueryTimeout)
	defer cancel()

	league, err := s.GetLeague(ctx, leagueID)
	if err != nil {
		apiutil.WriteError(w, r, err, leagueNotFound, "Failed to load league")
		return
	}

	start, end := models.SeasonDates("", "", time.Now())
	form := leagueviews.SeasonForm{
		League: league,
		Start:  start.Format(models.SeasonDateLayout),
		End:    end.Format(models.SeasonDateLayout),
	}
	apiutil.RenderPage(w, r, "New season", leagueviews.SeasonFormModal(form), nil)
}

// POST /seasons/create/{league_id}
func HandleSeasonCreate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	s, ok := loadStore(w, r)
	if !ok {
		return
	}

	leagueID, err := apiutil.PathID[models.League](r, leagueIDPathKey, "league")
	if err != nil {
		apiutil.WriteError(w, r, err, leagueNotFound, "Invalid league ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), leagueQueryTimeout)
	defer cancel()

	league, err := s.GetLeague(ctx, leagueID)
	if err != nil {
		apiutil.WriteError(w, r, err, leagueNotFound, "Failed to load league")
		return
	}

	req, err := decodeSeasonRequest(r)
	if err == nil {
		err = apiutil.ValidateForm(req)
	}
	if err != nil {
		renderSeasonFormError(w, r, league, req, err)
		return
	}

	start, end := models.SeasonDates(req.Start, req.End, time.Now())
	season := models.NewSeason(league.ID, start, end, req.Name)
	if err := season.Validate(); err != nil {
		renderSeasonFormError(w, r, league, req, err)
		return
	}

	if err := s.CreateSeason(ctx, season, req.MakeActive); err != nil {
		apiutil.WriteError(w, r, err, leagueNotFound, "Failed to create season")
		return
	}
	logger.Info().
		Str("league_id", league.ID.String()).
		Str("season_id", season.ID.String()).
		Bool("make_active", req.MakeActive).
		Msg("Season created")

	if apiutil.IsJSONRequest(r) {
		if err := apiutil.WriteJSON(w, http.StatusCreated, season); err != nil {
			logger.Error().Err(err).Str("season_id", season.ID.String()).Msg("Failed to write season response")
		}
		return
	}

	location := fmt.Sprintf("/leagues/%s?%s=%s", league.ID, seasonIDQueryKey, season.ID)
	apiutil.RespondCreated(w, r, location, league.Name, func() (templ.Component, error) {
		detail, err := LoadLeagueDetail(ctx, s, league.ID, season.ID.Ptr(), nil)
		return leagueviews.LeagueDetailPage(detail), err
	})
}

// GET /seasons
// GET /api/v1/seasons
func HandleSeasonsList(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	s, ok := loadStore(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), leagueQueryTimeout)
	defer cancel()

	seasons, err := s.ListSeasons(ctx)
	if err != nil {
		apiutil.WriteError(w, r, err, "Season not found", "Failed to list seasons")
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"seasons": seasons}); err != nil {
		logger.Error().Err(err).Msg("Failed to write seasons response")
	}
}

// GET /api/v1/leagues
func HandleLeaguesList(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	s, ok := loadStore(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), leagueQueryTimeout)
	defer cancel()

	leagues, err := s.ListLeagues(ctx)
	if err != nil {
		apiutil.WriteError(w, r, err, leagueNotFound, "Failed to list leagues")
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"leagues": leagues}); err != nil {
		logger.Error().Err(err).Msg("Failed to write leagues response")
	}
}

// GET /api/v1/leagues/{league_id}
func HandleLeagueJSON(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	s, ok := loadStore(w, r)
	if !ok {
		return
	}

	leagueID, seasonID, sessionID, err := leagueDetailParams(r)
	if err != nil {
		apiutil.WriteError(w, r, err, leagueNotFound, "Invalid league request")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), leagueQueryTimeout)
	defer cancel()

	detail, err := LoadLeagueDetail(ctx, s, leagueID, seasonID, sessionID)
	if err != nil {
		apiutil.WriteError(w, r, err, leagueNotFound, "Failed to load league")
		return
	}

	resp := leagueDetailResponse{
		League:        detail.League,
		Seasons:       detail.Seasons,
		ActiveSeason:  detail.ActiveSeason,
		Sessions:      detail.Sessions,
		ActiveSession: detail.ActiveSession,
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, resp); err != nil {
		logger.Error().Err(err).Str("league_id", leagueID.String()).Msg("Failed to write league response")
	}
}

// LoadLeagueDetail gathers a league with its seasons, picks the active
// season (requested first, then the league's pointer) and, within it, the
// active session (requested first, then the season's pointer).
func LoadLeagueDetail(ctx context.Context, s store.Store, leagueID models.LeagueID, requestedSeason *models.SeasonID, requestedSession *models.SessionID) (leagueviews.LeagueDetail, error) {
	var (
		league  models.League
		seasons []models.Season
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		league, err = s.GetLeague(gctx, leagueID)
		return err
	})
	g.Go(func() error {
		var err error
		seasons, err = s.ListSeasonsForLeague(gctx, leagueID)
		return err
	})
	if err := g.Wait(); err != nil {
		return leagueviews.LeagueDetail{}, err
	}

	detail := leagueviews.LeagueDetail{League: league, Seasons: seasons, Sessions: []models.Session{}}
	season, ok := models.PickActive(requestedSeason, league.ActiveSeason, seasons, models.SeasonIDOf)
	if !ok {
		return detail, nil
	}
	detail.ActiveSeason = &season

	sessions, err := s.ListSessionsForSeason(ctx, season.ID)
	if err != nil {
		return leagueviews.LeagueDetail{}, err
	}
	detail.Sessions = sessions
	if session, ok := models.PickActive(requestedSession, season.ActiveSession, sessions, models.SessionIDOf); ok {
		detail.ActiveSession = &session
	}
	return detail, nil
}

func leagueDetailParams(r *http.Request) (models.LeagueID, *models.SeasonID, *models.SessionID, error) {
	leagueID, err := apiutil.PathID[models.League](r, leagueIDPathKey, "league")
	if err != nil {
		return models.LeagueID{}, nil, nil, err
	}
	seasonID, err := apiutil.OptionalQueryID[models.Season](r, seasonIDQueryKey, "season")
	if err != nil {
		return models.LeagueID{}, nil, nil, err
	}
	sessionID, err := apiutil.OptionalQueryID[models.Session](r, sessionIDQueryKey, "session")
	if err != nil {
		return models.LeagueID{}, nil, nil, err
	}
	return leagueID, seasonID, sessionID, nil
}

func decodeLeagueRequest(r *http.Request) (leagueRequest, error) {
	if apiutil.IsJSONRequest(r) {
		var req leagueRequest
		if err := apiutil.DecodeJSON(r, &req); err != nil {
			return req, apiutil.BadRequest("Invalid JSON body", err)
		}
		return req, nil
	}

	if err := r.ParseForm(); err != nil {
		return leagueRequest{}, apiutil.BadRequest("Invalid form", err)
	}
	return leagueRequest{
		Name:        apiutil.FirstNonEmpty(r.FormValue("name")),
		Description: apiutil.FirstNonEmpty(r.FormValue("description")),
	}, nil
}

func decodeSeasonRequest(r *http.Request) (seasonRequest, error) {
	if apiutil.IsJSONRequest(r) {
		var req seasonRequest
		if err := apiutil.DecodeJSON(r, &req); err != nil {
			return req, apiutil.BadRequest("Invalid JSON body", err)
		}
		return req, nil
	}

	if err := r.ParseForm(); err != nil {
		return seasonRequest{}, apiutil.BadRequest("Invalid form", err)
	}
	return seasonRequest{
		Name:       apiutil.FirstNonEmpty(r.FormValue("name"), r.FormValue("season_name")),
		Start:      apiutil.FirstNonEmpty(r.FormValue("start"), r.FormValue("start_date")),
		End:        apiutil.FirstNonEmpty(r.FormValue("end"), r.FormValue("end_date")),
		MakeActive: apiutil.FormChecked(r.FormValue("make_active")),
	}, nil
}

func renderLeagueFormError(w http.ResponseWriter, r *http.Request, req leagueRequest, err error) {
	handlerErr := apiutil.ClassifyError(err, leagueNotFound)
	if handlerErr.Status >= http.StatusInternalServerError || apiutil.IsJSONRequest(r) {
		apiutil.WriteError(w, r, err, leagueNotFound, "Failed to create league")
		return
	}
	form := leagueviews.LeagueForm{Name: req.Name, Description: req.Description, Error: handlerErr.Message}
	apiutil.RenderFormError(w, r, handlerErr.Status, "New league", leagueviews.LeagueFormPage(form), "#content")
}

func renderSeasonFormError(w http.ResponseWriter, r *http.Request, league models.League, req seasonRequest, err error) {
	handlerErr := apiutil.ClassifyError(err, leagueNotFound)
	if handlerErr.Status >= http.StatusInternalServerError || apiutil.IsJSONRequest(r) {
		apiutil.WriteError(w, r, err, leagueNotFound, "Failed to create season")
		return
	}
	form := leagueviews.SeasonForm{League: league, Name: req.Name, Start: req.Start, End: req.End, Error: handlerErr.Message}
	apiutil.RenderFormError(w, r, handlerErr.Status, "New season", leagueviews.SeasonFormModal(form), "#modal")
}

// GET /points/{season_id}
// GET /api/v1/seasons/{season_id}/points
func HandleSeasonPoints(w http.ResponseWriter, r *http.Request) {
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

	ctx, cancel := context.WithTimeout(r.Context(), leagueQueryTimeout)
	defer cancel()

	season, err := s.GetSeason(ctx, seasonID)
	if err != nil {
		apiutil.WriteError(w, r, err, "Season not found", "Failed to load season")
		return
	}

	if strings.HasPrefix(r.URL.Path, "/api/") {
		if err := apiutil.WriteJSON(w, http.StatusOK, season.Table); err != nil {
			logger.Error().Err(err).Str("season_id", seasonID.String()).Msg("Failed to write points table")
		}
		return
	}
	apiutil.RenderPage(w, r, season.Name+" points", leagueviews.PointsTable(season.Table), nil)
}

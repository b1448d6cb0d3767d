// cmd/server/server.go
package main

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/codr1/leagus/internal/api"
	"github.com/codr1/leagus/internal/api/apiutil"
	"github.com/codr1/leagus/internal/api/leagues"
	"github.com/codr1/leagus/internal/api/nav"
	"github.com/codr1/leagus/internal/api/participants"
	"github.com/codr1/leagus/internal/api/rounds"
	"github.com/codr1/leagus/internal/api/sessions"
	"github.com/codr1/leagus/internal/api/venues"
	"github.com/codr1/leagus/internal/config"
	leaguesvc "github.com/codr1/leagus/internal/leagues"
	"github.com/codr1/leagus/internal/store"
	"github.com/codr1/leagus/internal/templates/components/home"
)

func newServer(cfg *config.Config, st store.Store, rules leaguesvc.PointsRules) *http.Server {
	router := http.NewServeMux()

	// WithMetrics must stay first so it sees the pattern the router matched.
	handler := api.ChainMiddleware(
		router,
		api.WithMetrics,
		api.WithLogging,
		api.WithRecovery,
		api.WithRequestID,
		api.WithContentType,
	)

	leagues.InitHandlers(st)
	sessions.InitHandlers(st)
	rounds.InitHandlers(st, rules)
	participants.InitHandlers(st)
	venues.InitHandlers(st)
	nav.InitHandlers(st)

	registerRoutes(router, cfg)

	return &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.App.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func registerRoutes(mux *http.ServeMux, cfg *config.Config) {
	// Main page handler
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		apiutil.RenderPage(w, r, "Leagus", home.Index(), nil)
	})

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			log.Ctx(r.Context()).Error().Err(err).Msg("Failed to write health response")
		}
	})

	if cfg.Features.EnableMetrics {
		mux.Handle("GET /metrics", promhttp.Handler())
	}

	// Navigation search
	mux.HandleFunc("GET /api/v1/nav/search", nav.HandleSearch)

	// League and season routes
	mux.HandleFunc("GET /leagues", leagues.HandleLeaguesPage)
	mux.HandleFunc("GET /leagues/create", leagues.HandleLeagueCreateForm)
	mux.HandleFunc("POST /leagues/create", leagues.HandleLeagueCreate)
	mux.HandleFunc("GET /leagues/{league_id}", leagues.HandleLeagueDetail)
	mux.HandleFunc("GET /leagues/{league_id}/seasons", leagues.HandleLeagueSeasons)
	mux.HandleFunc("GET /seasons", leagues.HandleSeasonsList)
	mux.HandleFunc("GET /seasons/create/{league_id}", leagues.HandleSeasonCreateForm)
	mux.HandleFunc("POST /seasons/create/{league_id}", leagues.HandleSeasonCreate)
	mux.HandleFunc("GET /points/{season_id}", leagues.HandleSeasonPoints)

	// Session routes
	mux.HandleFunc("GET /sessions", sessions.HandleSessionsList)
	mux.HandleFunc("POST /sessions/create/{season_id}", sessions.HandleSessionCreate)
	mux.HandleFunc("GET /sessions/{session_id}", sessions.HandleSessionDetail)

	// Round and match routes
	mux.HandleFunc("POST /rounds/{round_id}/{action}", rounds.HandleRoundPost)
	mux.HandleFunc("GET /rounds/{round_id}", rounds.HandleRoundDetail)
	mux.HandleFunc("GET /rounds/{round_id}/update_participants", rounds.HandleUpdateParticipants)
	mux.HandleFunc("POST /rounds/{round_id}/add_participant/{participant_id}", rounds.HandleAddParticipant)
	mux.HandleFunc("POST /rounds/{round_id}/remove_participant/{participant_id}", rounds.HandleRemoveParticipant)
	mux.HandleFunc("POST /matches/{match_id}/result", rounds.HandleMatchResult)

	// Participant and venue routes
	mux.HandleFunc("GET /participants", participants.HandleParticipantsList)
	mux.HandleFunc("GET /participants/create", participants.HandleParticipantCreateForm)
	mux.HandleFunc("POST /participants/create", participants.HandleParticipantCreate)
	mux.HandleFunc("GET /venues", venues.HandleVenuesList)
	mux.HandleFunc("GET /venues/create", venues.HandleVenueCreateForm)
	mux.HandleFunc("POST /venues/create", venues.HandleVenueCreate)

	// JSON API
	mux.HandleFunc("GET /api/v1/leagues", leagues.HandleLeaguesList)
	mux.HandleFunc("POST /api/v1/leagues", leagues.HandleLeagueCreate)
	mux.HandleFunc("GET /api/v1/leagues/{league_id}", leagues.HandleLeagueJSON)
	mux.HandleFunc("GET /api/v1/seasons", leagues.HandleSeasonsList)
	mux.HandleFunc("GET /api/v1/seasons/{season_id}/points", leagues.HandleSeasonPoints)
	mux.HandleFunc("GET /api/v1/sessions", sessions.HandleSessionsList)
	mux.HandleFunc("GET /api/v1/rounds/{round_id}/matches", rounds.HandleRoundMatches)
	mux.HandleFunc("GET /api/v1/participants", participants.HandleParticipantsList)
	mux.HandleFunc("POST /api/v1/participants", participants.HandleParticipantCreate)
	mux.HandleFunc("GET /api/v1/venues", venues.HandleVenuesList)
	mux.HandleFunc("POST /api/v1/venues", venues.HandleVenueCreate)

	fs := http.FileServer(http.Dir(cfg.App.StaticDir))

	// Add logging middleware for static files
	mux.Handle("GET /static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Ctx(r.Context()).Debug().
			Str("path", r.URL.Path).
			Str("static_dir", cfg.App.StaticDir).
			Msg("Static file request")
		http.StripPrefix("/static/", fs).ServeHTTP(w, r)
	}))
}

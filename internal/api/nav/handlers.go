// internal/api/nav/handlers.go
package nav

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/codr1/leagus/internal/api/apiutil"
	"github.com/codr1/leagus/internal/models"
	"github.com/codr1/leagus/internal/store"
)

const (
	searchTimeout = 3 * time.Second
	searchLimit   = 10
)

var st store.Store

// SearchResult is one hit of the navigation search box.
type SearchResult struct {
	Kind string `json:"kind"`
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

func InitHandlers(s store.Store) {
	st = s
}

// GET /api/v1/nav/search?q=
// Matches league and participant names case-insensitively.
func HandleSearch(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" || st == nil {
		if err := apiutil.WriteJSON(w, http.StatusOK, []SearchResult{}); err != nil {
			logger.Error().Err(err).Msg("Failed to write search response")
		}
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), searchTimeout)
	defer cancel()

	var (
		leagues      []models.League
		participants []models.Participant
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		leagues, err = st.ListLeagues(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		participants, err = st.ListParticipants(gctx, q)
		return err
	})
	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Str("query", q).Msg("Search failed")
		http.Error(w, "Search failed", http.StatusInternalServerError)
		return
	}

	results := make([]SearchResult, 0, searchLimit)
	needle := strings.ToLower(q)
	for _, league := range leagues {
		if len(results) == searchLimit {
			break
		}
		if strings.Contains(strings.ToLower(league.Name), needle) {
			results = append(results, SearchResult{Kind: "league", ID: league.ID.String(), Name: league.Name, URL: "/leagues/" + league.ID.String()})
		}
	}
	for _, p := range participants {
		if len(results) == searchLimit {
			break
		}
		results = append(results, SearchResult{Kind: "participant", ID: p.ID.String(), Name: p.Name, URL: "/participants?query_name=" + url.QueryEscape(p.Name)})
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, results); err != nil {
		logger.Error().Err(err).Msg("Failed to write search response")
	}
}

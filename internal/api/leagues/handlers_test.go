package leagues

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/codr1/leagus/internal/db"
	"github.com/codr1/leagus/internal/models"
	"github.com/codr1/leagus/internal/testutil"
)

func newLeagueMux(t *testing.T) (*http.ServeMux, *db.DB) {
	t.Helper()

	database := testutil.NewTestDB(t)
	InitHandlers(database)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /leagues", HandleLeaguesPage)
	mux.HandleFunc("GET /leagues/create", HandleLeagueCreateForm)
	mux.HandleFunc("POST /leagues/create", HandleLeagueCreate)
	mux.HandleFunc("GET /leagues/{league_id}", HandleLeagueDetail)
	mux.HandleFunc("GET /leagues/{league_id}/seasons", HandleLeagueSeasons)
	mux.HandleFunc("GET /seasons", HandleSeasonsList)
	mux.HandleFunc("GET /seasons/create/{league_id}", HandleSeasonCreateForm)
	mux.HandleFunc("POST /seasons/create/{league_id}", HandleSeasonCreate)
	mux.HandleFunc("GET /points/{season_id}", HandleSeasonPoints)
	mux.HandleFunc("GET /api/v1/leagues", HandleLeaguesList)
	mux.HandleFunc("GET /api/v1/leagues/{league_id}", HandleLeagueJSON)
	mux.HandleFunc("GET /api/v1/seasons/{season_id}/points", HandleSeasonPoints)
	return mux, database
}

func postForm(mux http.Handler, target string, form url.Values, partial bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if partial {
		req.Header.Set("HX-Request", "true")
	}
	recorder := httptest.NewRecorder()
	mux.ServeHTTP(recorder, req)
	return recorder
}

func get(mux http.Handler, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	recorder := httptest.NewRecorder()
	mux.ServeHTTP(recorder, req)
	return recorder
}

func seedLeague(t *testing.T, database *db.DB, name string) models.League {
	t.Helper()
	league := models.NewLeague(name, "")
	if err := database.CreateLeague(context.Background(), league); err != nil {
		t.Fatalf("create league: %v", err)
	}
	return league
}

func TestHandleLeagueCreateRedirects(t *testing.T) {
	mux, database := newLeagueMux(t)

	recorder := postForm(mux, "/leagues/create", url.Values{"name": {"Tuesday Ladder"}}, false)
	if recorder.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d: %s", http.StatusSeeOther, recorder.Code, recorder.Body.String())
	}

	league, err := database.GetLeagueByName(context.Background(), "Tuesday Ladder")
	if err != nil {
		t.Fatalf("league not stored: %v", err)
	}
	if got, want := recorder.Header().Get("Location"), "/leagues/"+league.ID.String(); got != want {
		t.Fatalf("expected location %q, got %q", want, got)
	}
}

func TestHandleLeagueCreateHTMXRendersDetail(t *testing.T) {
	mux, _ := newLeagueMux(t)

	recorder := postForm(mux, "/leagues/create", url.Values{"name": {"Doubles"}}, true)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, recorder.Code)
	}
	if !strings.HasPrefix(recorder.Header().Get("HX-Push-Url"), "/leagues/") {
		t.Fatalf("expected HX-Push-Url, got %q", recorder.Header().Get("HX-Push-Url"))
	}
	body := recorder.Body.String()
	if strings.Contains(body, "<html") {
		t.Fatalf("expected fragment, got full page")
	}
	if !strings.Contains(body, "Doubles") {
		t.Fatalf("expected league name in body")
	}
}

func TestHandleLeagueCreateErrors(t *testing.T) {
	mux, database := newLeagueMux(t)
	seedLeague(t, database, "Taken")

	tests := []struct {
		name       string
		form       url.Values
		wantStatus int
		wantBody   string
	}{
		{name: "missing name", form: url.Values{"name": {"  "}}, wantStatus: http.StatusBadRequest, wantBody: "name is required"},
		{name: "duplicate", form: url.Values{"name": {"Taken"}}, wantStatus: http.StatusConflict, wantBody: "already exists"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := postForm(mux, "/leagues/create", tt.form, true)
			if recorder.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, recorder.Code)
			}
			if !strings.Contains(recorder.Body.String(), tt.wantBody) {
				t.Fatalf("expected body to contain %q, got %s", tt.wantBody, recorder.Body.String())
			}
			if !strings.Contains(recorder.Body.String(), `action="/leagues/create"`) {
				t.Fatalf("expected the form to be rendered again")
			}
			if got := recorder.Header().Get("HX-Retarget"); got != "#content" {
				t.Fatalf("expected HX-Retarget #content, got %q", got)
			}
			if got := recorder.Header().Get("HX-Reswap"); got != "innerHTML" {
				t.Fatalf("expected HX-Reswap innerHTML, got %q", got)
			}
		})
	}
}

func TestHandleLeagueCreateJSON(t *testing.T) {
	mux, _ := newLeagueMux(t)

	req := httptest.NewRequest(http.MethodPost, "/leagues/create", strings.NewReader(`{"name":"Json League","description":"via api"}`))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	mux.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, recorder.Code)
	}
	var league models.League
	if err := json.Unmarshal(recorder.Body.Bytes(), &league); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if league.Name != "Json League" || league.Description != "via api" || league.ID.IsZero() {
		t.Fatalf("unexpected league: %+v", league)
	}
}

func TestHandleLeagueDetail(t *testing.T) {
	mux, database := newLeagueMux(t)
	ctx := context.Background()
	league := seedLeague(t, database, "Detail League")

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	first := models.NewSeason(league.ID, start, start.AddDate(0, 1, 0), "")
	second := models.NewSeason(league.ID, start.AddDate(0, 1, 0), start.AddDate(0, 2, 0), "Spring")
	if err := database.CreateSeason(ctx, first, false); err != nil {
		t.Fatalf("create season: %v", err)
	}
	if err := database.CreateSeason(ctx, second, true); err != nil {
		t.Fatalf("create season: %v", err)
	}

	t.Run("stored active season", func(t *testing.T) {
		recorder := get(mux, "/leagues/"+league.ID.String())
		if recorder.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, recorder.Code)
		}
		body := recorder.Body.String()
		if !strings.Contains(body, "<html") {
			t.Fatalf("expected full page for a plain request")
		}
		if !strings.Contains(body, `id="active-season" class="space-y-4" data-season-id="`+second.ID.String()) {
			t.Fatalf("expected the league's active season to be shown")
		}
	})

	t.Run("requested season wins", func(t *testing.T) {
		recorder := get(mux, "/leagues/"+league.ID.String()+"?season_id="+first.ID.String())
		if !strings.Contains(recorder.Body.String(), `id="active-season" class="space-y-4" data-season-id="`+first.ID.String()) {
			t.Fatalf("expected requested season to be active")
		}
		if !strings.Contains(recorder.Body.String(), "March - 2024") {
			t.Fatalf("expected default season name")
		}
	})

	t.Run("bad season id", func(t *testing.T) {
		recorder := get(mux, "/leagues/"+league.ID.String()+"?season_id=nope")
		if recorder.Code != http.StatusBadRequest {
			t.Fatalf("expected status %d, got %d", http.StatusBadRequest, recorder.Code)
		}
	})

	t.Run("unknown league", func(t *testing.T) {
		recorder := get(mux, "/leagues/"+models.NewID[models.League]().String())
		if recorder.Code != http.StatusNotFound {
			t.Fatalf("expected status %d, got %d", http.StatusNotFound, recorder.Code)
		}
	})

	t.Run("json", func(t *testing.T) {
		recorder := get(mux, "/api/v1/leagues/"+league.ID.String())
		if recorder.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, recorder.Code)
		}
		var resp leagueDetailResponse
		if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(resp.Seasons) != 2 {
			t.Fatalf("expected 2 seasons, got %d", len(resp.Seasons))
		}
		if resp.ActiveSeason == nil || resp.ActiveSeason.ID != second.ID {
			t.Fatalf("expected active season %s, got %+v", second.ID, resp.ActiveSeason)
		}
	})
}

func TestHandleSeasonCreate(t *testing.T) {
	mux, database := newLeagueMux(t)
	ctx := context.Background()
	league := seedLeague(t, database, "Season League")

	form := url.Values{
		"name":        {""},
		"start":       {"2024-05-01"},
		"end":         {"2024-05-31"},
		"make_active": {"on"},
	}
	recorder := postForm(mux, "/seasons/create/"+league.ID.String(), form, false)
	if recorder.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d: %s", http.StatusSeeOther, recorder.Code, recorder.Body.String())
	}

	seasons, err := database.ListSeasonsForLeague(ctx, league.ID)
	if err != nil {
		t.Fatalf("list seasons: %v", err)
	}
	if len(seasons) != 1 {
		t.Fatalf("expected 1 season, got %d", len(seasons))
	}
	if seasons[0].Name != "May - 2024" {
		t.Fatalf("expected default name, got %q", seasons[0].Name)
	}

	stored, err := database.GetLeague(ctx, league.ID)
	if err != nil {
		t.Fatalf("get league: %v", err)
	}
	if !models.SameID(stored.ActiveSeason, seasons[0].ID.Ptr()) {
		t.Fatalf("expected new season to be active")
	}
}

func TestHandleSeasonCreateRejectsBackwardsDates(t *testing.T) {
	mux, database := newLeagueMux(t)
	league := seedLeague(t, database, "Backwards")

	form := url.Values{"start": {"2024-05-31"}, "end": {"2024-05-01"}}
	recorder := postForm(mux, "/seasons/create/"+league.ID.String(), form, true)
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), "season-modal") {
		t.Fatalf("expected the season form to be rendered again")
	}
	if got := recorder.Header().Get("HX-Retarget"); got != "#modal" {
		t.Fatalf("expected HX-Retarget #modal, got %q", got)
	}
}

func TestHandleSeasonCreateAcceptsLongFieldNames(t *testing.T) {
	mux, database := newLeagueMux(t)
	league := seedLeague(t, database, "Long Names")

	form := url.Values{
		"season_name": {"Autumn"},
		"start_date":  {"2024-09-01"},
		"end_date":    {"2024-11-30"},
	}
	recorder := postForm(mux, "/seasons/create/"+league.ID.String(), form, false)
	if recorder.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d: %s", http.StatusSeeOther, recorder.Code, recorder.Body.String())
	}

	seasons, err := database.ListSeasonsForLeague(context.Background(), league.ID)
	if err != nil {
		t.Fatalf("list seasons: %v", err)
	}
	if len(seasons) != 1 {
		t.Fatalf("expected 1 season, got %d", len(seasons))
	}
	if seasons[0].Name != "Autumn" {
		t.Fatalf("expected name Autumn, got %q", seasons[0].Name)
	}
	if got := seasons[0].End.Format("2006-01-02"); got != "2024-11-30" {
		t.Fatalf("expected end 2024-11-30, got %s", got)
	}
}

func TestHandleSeasonCreateForm(t *testing.T) {
	mux, database := newLeagueMux(t)
	league := seedLeague(t, database, "Form League")

	req := httptest.NewRequest(http.MethodGet, "/seasons/create/"+league.ID.String(), nil)
	req.Header.Set("HX-Request", "true")
	recorder := httptest.NewRecorder()
	mux.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, recorder.Code)
	}
	today := models.TruncateDay(time.Now()).Format(models.SeasonDateLayout)
	if !strings.Contains(recorder.Body.String(), `value="`+today+`"`) {
		t.Fatalf("expected start date to default to today")
	}
}

func TestHandleListsJSON(t *testing.T) {
	mux, database := newLeagueMux(t)
	league := seedLeague(t, database, "Listed")
	now := time.Now()
	if err := database.CreateSeason(context.Background(), models.NewSeason(league.ID, now, now, "Only"), false); err != nil {
		t.Fatalf("create season: %v", err)
	}

	recorder := get(mux, "/api/v1/leagues")
	var leagues struct {
		Leagues []models.League `json:"leagues"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &leagues); err != nil {
		t.Fatalf("decode leagues: %v", err)
	}
	if len(leagues.Leagues) != 1 || leagues.Leagues[0].ID != league.ID {
		t.Fatalf("unexpected leagues: %+v", leagues.Leagues)
	}

	recorder = get(mux, "/seasons")
	var seasons struct {
		Seasons []models.Season `json:"seasons"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &seasons); err != nil {
		t.Fatalf("decode seasons: %v", err)
	}
	if len(seasons.Seasons) != 1 || seasons.Seasons[0].Name != "Only" {
		t.Fatalf("unexpected seasons: %+v", seasons.Seasons)
	}
}

func TestHandleSeasonPoints(t *testing.T) {
	mux, database := newLeagueMux(t)
	ctx := context.Background()
	league := seedLeague(t, database, "Points League")
	now := time.Now()
	season := models.NewSeason(league.ID, now, now, "Pts")
	if err := database.CreateSeason(ctx, season, true); err != nil {
		t.Fatalf("create season: %v", err)
	}
	table := models.PointsTable{Entries: []models.PointsTableEntry{{
		ParticipantID: models.NewID[models.Participant](), ParticipantName: "Ann", Points: 3, Wins: 1,
	}}}
	if err := database.UpdatePointsTable(ctx, season.ID, table); err != nil {
		t.Fatalf("update table: %v", err)
	}

	recorder := get(mux, "/api/v1/seasons/"+season.ID.String()+"/points")
	var got models.PointsTable
	if err := json.Unmarshal(recorder.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.Entries) != 1 || got.Entries[0].Points != 3 {
		t.Fatalf("unexpected table: %+v", got)
	}

	req := httptest.NewRequest(http.MethodGet, "/points/"+season.ID.String(), nil)
	req.Header.Set("HX-Request", "true")
	htmlRecorder := httptest.NewRecorder()
	mux.ServeHTTP(htmlRecorder, req)
	if !strings.Contains(htmlRecorder.Body.String(), `id="points-table"`) {
		t.Fatalf("expected points table fragment, got %s", htmlRecorder.Body.String())
	}
}

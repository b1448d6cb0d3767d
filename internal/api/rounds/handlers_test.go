package rounds

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/codr1/leagus/internal/db"
	leaguesvc "github.com/codr1/leagus/internal/leagues"
	"github.com/codr1/leagus/internal/metrics"
	"github.com/codr1/leagus/internal/models"
	dbtestutil "github.com/codr1/leagus/internal/testutil"
)

type fixture struct {
	mux          *http.ServeMux
	db           *db.DB
	season       models.Season
	session      models.Session
	participants []models.Participant
	venue        models.Venue
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()

	database := dbtestutil.NewTestDB(t)
	InitHandlers(database, leaguesvc.DefaultPointsRules)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /rounds/{round_id}/{action}", HandleRoundPost)
	mux.HandleFunc("GET /rounds/{round_id}", HandleRoundDetail)
	mux.HandleFunc("GET /rounds/{round_id}/update_participants", HandleUpdateParticipants)
	mux.HandleFunc("POST /rounds/{round_id}/add_participant/{participant_id}", HandleAddParticipant)
	mux.HandleFunc("POST /rounds/{round_id}/remove_participant/{participant_id}", HandleRemoveParticipant)
	mux.HandleFunc("POST /matches/{match_id}/result", HandleMatchResult)
	mux.HandleFunc("GET /api/v1/rounds/{round_id}/matches", HandleRoundMatches)

	league := models.NewLeague("Round League", "")
	if err := database.CreateLeague(ctx, league); err != nil {
		t.Fatalf("create league: %v", err)
	}
	now := time.Now()
	season := models.NewSeason(league.ID, now, now.AddDate(0, 1, 0), "")
	if err := database.CreateSeason(ctx, season, true); err != nil {
		t.Fatalf("create season: %v", err)
	}
	session := models.NewSession(season.ID, now)
	if err := database.CreateSession(ctx, session, true); err != nil {
		t.Fatalf("create session: %v", err)
	}

	var participants []models.Participant
	for _, name := range []string{"Ann", "Bob", "Cat"} {
		p := models.NewParticipant(name)
		if err := database.CreateParticipant(ctx, p); err != nil {
			t.Fatalf("create participant: %v", err)
		}
		participants = append(participants, p)
	}
	venue := models.NewVenue("Court 1")
	if err := database.CreateVenue(ctx, venue); err != nil {
		t.Fatalf("create venue: %v", err)
	}

	return fixture{mux: mux, db: database, season: season, session: session, participants: participants, venue: venue}
}

func (f fixture) do(method, target string, partial bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if partial {
		req.Header.Set("HX-Request", "true")
	}
	recorder := httptest.NewRecorder()
	f.mux.ServeHTTP(recorder, req)
	return recorder
}

func (f fixture) newRound(t *testing.T, participants ...models.Participant) models.Round {
	t.Helper()
	round := models.NewRound(f.session.ID)
	for _, p := range participants {
		round.Participants = append(round.Participants, p.ID)
	}
	if err := f.db.CreateRound(context.Background(), round); err != nil {
		t.Fatalf("create round: %v", err)
	}
	return round
}

func TestHandleRoundCreate(t *testing.T) {
	f := newFixture(t)

	recorder := f.do(http.MethodPost, "/rounds/create/"+f.session.ID.String(), true)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, recorder.Code, recorder.Body.String())
	}

	rounds, err := f.db.ListRoundsForSession(context.Background(), f.session.ID)
	if err != nil {
		t.Fatalf("list rounds: %v", err)
	}
	if len(rounds) != 1 {
		t.Fatalf("expected 1 round, got %d", len(rounds))
	}
	wantPush := "/sessions/" + f.session.ID.String() + "?round_id=" + rounds[0].ID.String()
	if got := recorder.Header().Get("HX-Push-Url"); got != wantPush {
		t.Fatalf("expected HX-Push-Url %q, got %q", wantPush, got)
	}
	if !strings.Contains(recorder.Body.String(), `data-round-id="`+rounds[0].ID.String()) {
		t.Fatalf("expected the new round to be rendered active")
	}
}

func TestHandleRoundPostUnknownAction(t *testing.T) {
	f := newFixture(t)
	round := f.newRound(t)

	recorder := f.do(http.MethodPost, "/rounds/"+round.ID.String()+"/shuffle", false)
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, recorder.Code)
	}
}

func TestHandleRoundCreateUnknownSession(t *testing.T) {
	f := newFixture(t)

	recorder := f.do(http.MethodPost, "/rounds/create/"+models.NewID[models.Session]().String(), false)
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, recorder.Code)
	}
}

func TestHandleRoundDetail(t *testing.T) {
	f := newFixture(t)
	round := f.newRound(t, f.participants[0])

	recorder := f.do(http.MethodGet, "/rounds/"+round.ID.String(), false)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), "Ann") {
		t.Fatalf("expected round participant in page")
	}

	recorder = f.do(http.MethodGet, "/rounds/"+models.NewID[models.Round]().String(), false)
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, recorder.Code)
	}
}

func TestHandleAddAndRemoveParticipant(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	round := f.newRound(t)
	bob := f.participants[1]

	for i := 0; i < 2; i++ {
		recorder := f.do(http.MethodPost, "/rounds/"+round.ID.String()+"/add_participant/"+bob.ID.String(), true)
		if recorder.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, recorder.Code)
		}
		if !strings.Contains(recorder.Body.String(), `id="round-participants"`) {
			t.Fatalf("expected participants panel")
		}
	}

	stored, err := f.db.GetRound(ctx, round.ID)
	if err != nil {
		t.Fatalf("get round: %v", err)
	}
	if len(stored.Participants) != 1 || stored.Participants[0] != bob.ID {
		t.Fatalf("expected Bob attached once, got %v", stored.Participants)
	}

	recorder := f.do(http.MethodPost, "/rounds/"+round.ID.String()+"/remove_participant/"+bob.ID.String(), true)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, recorder.Code)
	}
	stored, err = f.db.GetRound(ctx, round.ID)
	if err != nil {
		t.Fatalf("get round: %v", err)
	}
	if len(stored.Participants) != 0 {
		t.Fatalf("expected no participants, got %v", stored.Participants)
	}

	recorder = f.do(http.MethodPost, "/rounds/"+round.ID.String()+"/add_participant/"+models.NewID[models.Participant]().String(), true)
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("expected status %d for unknown participant, got %d", http.StatusNotFound, recorder.Code)
	}
}

func TestHandleUpdateParticipants(t *testing.T) {
	f := newFixture(t)
	round := f.newRound(t, f.participants[0])

	tests := []struct {
		name    string
		query   string
		want    []string
		notWant []string
	}{
		{name: "no query lists everyone not attached", query: "", want: []string{"Bob", "Cat"}, notWant: []string{"Ann"}},
		{name: "query filters", query: "b", want: []string{"Bob"}, notWant: []string{"Ann", "Cat"}},
		{name: "no match", query: "zed", want: []string{"No one else to add."}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := f.do(http.MethodGet, "/rounds/"+round.ID.String()+"/update_participants?query_name="+tt.query, true)
			if recorder.Code != http.StatusOK {
				t.Fatalf("expected status %d, got %d", http.StatusOK, recorder.Code)
			}
			body := recorder.Body.String()
			if !strings.Contains(body, `id="available-participants"`) {
				t.Fatalf("expected available list")
			}
			for _, name := range tt.want {
				if !strings.Contains(body, name) {
					t.Fatalf("expected %q in %s", name, body)
				}
			}
			for _, name := range tt.notWant {
				if strings.Contains(body, "<span>"+name+"</span>") {
					t.Fatalf("did not expect %q in %s", name, body)
				}
			}
		})
	}
}

func TestHandleGenerateMatches(t *testing.T) {
	f := newFixture(t)
	round := f.newRound(t, f.participants...)
	before := testutil.ToFloat64(metrics.MatchesGenerated)

	recorder := f.do(http.MethodPost, "/rounds/"+round.ID.String()+"/generate_matches", true)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, recorder.Code, recorder.Body.String())
	}
	if !strings.Contains(recorder.Body.String(), `id="round-matches"`) {
		t.Fatalf("expected matches list")
	}

	matches, err := f.db.ListMatchesForRound(context.Background(), round.ID)
	if err != nil {
		t.Fatalf("list matches: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 match for 3 participants, got %d", len(matches))
	}
	if matches[0].VenueID != f.venue.ID {
		t.Fatalf("expected venue %s, got %s", f.venue.ID, matches[0].VenueID)
	}
	if got := testutil.ToFloat64(metrics.MatchesGenerated) - before; got != 1 {
		t.Fatalf("expected 1 generated match counted, got %v", got)
	}

	recorder = f.do(http.MethodPost, "/rounds/"+round.ID.String()+"/generate_matches", true)
	if recorder.Code != http.StatusConflict {
		t.Fatalf("expected status %d on second generation, got %d", http.StatusConflict, recorder.Code)
	}
}

func TestHandleGenerateMatchesNeedsParticipants(t *testing.T) {
	f := newFixture(t)
	round := f.newRound(t, f.participants[0])

	recorder := f.do(http.MethodPost, "/rounds/"+round.ID.String()+"/generate_matches", true)
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, recorder.Code)
	}
}

func TestHandleMatchResult(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	round := f.newRound(t, f.participants[0], f.participants[1])
	ann, bob := f.participants[0], f.participants[1]

	match := models.NewMatch(round.ID, f.venue.ID, []models.ParticipantID{ann.ID, bob.ID})
	if err := f.db.CreateMatch(ctx, match); err != nil {
		t.Fatalf("create match: %v", err)
	}

	recorder := f.do(http.MethodPost, "/matches/"+match.ID.String()+"/result?winner_id="+f.participants[2].ID.String(), true)
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d for a winner outside the match, got %d", http.StatusBadRequest, recorder.Code)
	}

	recorder = f.do(http.MethodPost, "/matches/"+match.ID.String()+"/result?winner_id="+ann.ID.String(), true)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, recorder.Code, recorder.Body.String())
	}
	if recorder.Header().Get("HX-Trigger") != pointsUpdatedTrigger {
		t.Fatalf("expected HX-Trigger header")
	}
	if !strings.Contains(recorder.Body.String(), `data-winner="true">Ann<`) {
		t.Fatalf("expected Ann marked as winner: %s", recorder.Body.String())
	}

	season, err := f.db.GetSeason(ctx, f.season.ID)
	if err != nil {
		t.Fatalf("get season: %v", err)
	}
	if len(season.Table.Entries) != 2 {
		t.Fatalf("expected 2 table entries, got %+v", season.Table.Entries)
	}
	top := season.Table.Entries[0]
	if top.ParticipantID != ann.ID || top.Points != leaguesvc.DefaultPointsRules.Win {
		t.Fatalf("expected Ann on top with %d points, got %+v", leaguesvc.DefaultPointsRules.Win, top)
	}
}

func TestHandleRoundMatchesJSON(t *testing.T) {
	f := newFixture(t)
	round := f.newRound(t, f.participants[0], f.participants[1])
	match := models.NewMatch(round.ID, f.venue.ID, []models.ParticipantID{f.participants[0].ID, f.participants[1].ID})
	if err := f.db.CreateMatch(context.Background(), match); err != nil {
		t.Fatalf("create match: %v", err)
	}

	recorder := f.do(http.MethodGet, "/api/v1/rounds/"+round.ID.String()+"/matches", false)
	var resp struct {
		Matches []models.Match `json:"matches"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Matches) != 1 || resp.Matches[0].ID != match.ID {
		t.Fatalf("unexpected matches: %+v", resp.Matches)
	}
}

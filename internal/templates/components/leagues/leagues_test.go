package leagues

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/codr1/leagus/internal/models"
)

func TestLeagueDetailPageEscapes(t *testing.T) {
	league := models.NewLeague(`<script>alert("x")</script>`, "Fish & Chips")
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	season := models.NewSeason(league.ID, start, start.AddDate(0, 0, 30), "")
	session := models.NewSession(season.ID, start)

	detail := LeagueDetail{
		League:        league,
		Seasons:       []models.Season{season},
		ActiveSeason:  &season,
		Sessions:      []models.Session{session},
		ActiveSession: &session,
	}

	var buf bytes.Buffer
	if err := LeagueDetailPage(detail).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()

	if strings.Contains(out, "<script>") {
		t.Fatalf("league name was not escaped: %s", out)
	}
	for _, want := range []string{
		"&lt;script&gt;",
		"Fish &amp; Chips",
		`href="/leagues/` + league.ID.String() + `?season_id=` + season.ID.String() + `&amp;session_id=` + session.ID.String() + `"`,
		`hx-get="/points/` + season.ID.String() + `"`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output", want)
		}
	}
}

func TestPageURL(t *testing.T) {
	tests := []struct {
		name   string
		format string
		args   []any
		want   string
	}{
		{name: "path", format: "/sessions/%s", args: []any{"abc"}, want: "/sessions/abc"},
		{name: "query", format: "/leagues/%s?season_id=%s&session_id=%s", args: []any{"a", "b", "c"}, want: "/leagues/a?season_id=b&amp;session_id=c"},
		{name: "script scheme", format: "javascript:%s", args: []any{"alert(1)"}, want: "about:invalid#TemplFailedSanitizationURL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pageURL(tt.format, tt.args...); got != tt.want {
				t.Fatalf("pageURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

package main

import (
	"bytes"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")}, args...))
	err := root.Execute()
	return out.String(), err
}

func setupCLI(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_FILENAME", filepath.Join(t.TempDir(), "cli.db"))
}

var uuidPattern = regexp.MustCompile(`[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`)

func TestCLILeagueAndSeasonFlow(t *testing.T) {
	setupCLI(t)

	out, err := runCLI(t, "leagues", "create", "--name", "Tuesday Ladder", "--description", "weekly")
	if err != nil {
		t.Fatalf("leagues create: %v\n%s", err, out)
	}
	if !strings.Contains(out, `Created new league: "Tuesday Ladder"`) {
		t.Fatalf("unexpected output: %s", out)
	}

	out, err = runCLI(t, "leagues", "add-season", "--league", "Tuesday Ladder", "--start", "2024-03-01")
	if err != nil {
		t.Fatalf("leagues add-season: %v\n%s", err, out)
	}
	if !strings.Contains(out, `"March - 2024"`) || !strings.Contains(out, "2024-03-01 to 2024-03-31") {
		t.Fatalf("unexpected output: %s", out)
	}
	seasonID := uuidPattern.FindString(out)

	out, err = runCLI(t, "sessions", "create", "--season", seasonID, "--date", "2024-03-05", "--active")
	if err != nil {
		t.Fatalf("sessions create: %v\n%s", err, out)
	}
	if !strings.Contains(out, "2024-03-05") {
		t.Fatalf("unexpected output: %s", out)
	}

	out, err = runCLI(t, "sessions", "list", "--season", seasonID)
	if err != nil {
		t.Fatalf("sessions list: %v\n%s", err, out)
	}
	if !strings.Contains(out, "2024-03-05") {
		t.Fatalf("expected session listed: %s", out)
	}

	out, err = runCLI(t, "database", "list")
	if err != nil {
		t.Fatalf("database list: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Tuesday Ladder") || !strings.Contains(out, seasonID) {
		t.Fatalf("expected league with its active season: %s", out)
	}
}

func TestCLIUnknownLeague(t *testing.T) {
	setupCLI(t)

	if _, err := runCLI(t, "seasons", "create", "--league", "Nobody"); err == nil {
		t.Fatalf("expected an error for an unknown league")
	}
}

func TestCLIParticipantsAndVenues(t *testing.T) {
	setupCLI(t)

	for _, name := range []string{"Ann", "Annabel", "Bob"} {
		if out, err := runCLI(t, "participants", "create", "--name", name); err != nil {
			t.Fatalf("participants create: %v\n%s", err, out)
		}
	}
	if _, err := runCLI(t, "participants", "create", "--name", "Ann"); err == nil {
		t.Fatalf("expected duplicate participant to fail")
	}

	out, err := runCLI(t, "participants", "list", "--name", "ann")
	if err != nil {
		t.Fatalf("participants list: %v", err)
	}
	if !strings.Contains(out, "Annabel") || strings.Contains(out, "Bob") {
		t.Fatalf("unexpected participants: %s", out)
	}

	if out, err := runCLI(t, "venues", "create", "--name", "Court 1"); err != nil {
		t.Fatalf("venues create: %v\n%s", err, out)
	}
	out, err = runCLI(t, "venues", "list")
	if err != nil {
		t.Fatalf("venues list: %v", err)
	}
	if !strings.Contains(out, "Court 1") {
		t.Fatalf("expected venue listed: %s", out)
	}
}

func TestCLIMigrateAndPoints(t *testing.T) {
	setupCLI(t)

	if out, err := runCLI(t, "database", "bootstrap"); err != nil {
		t.Fatalf("bootstrap: %v\n%s", err, out)
	}
	out, err := runCLI(t, "database", "migrate", "version")
	if err != nil {
		t.Fatalf("migrate version: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Version: 1, Dirty: false") {
		t.Fatalf("unexpected version output: %s", out)
	}

	out, err = runCLI(t, "points", "refresh")
	if err != nil {
		t.Fatalf("points refresh: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Refreshed 0 points tables") {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestSeasonSpan(t *testing.T) {
	now := time.Date(2024, 7, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		start     string
		end       string
		wantStart time.Time
		wantEnd   time.Time
		wantErr   bool
	}{
		{name: "defaults", wantStart: now, wantEnd: now.AddDate(0, 0, 30)},
		{name: "start only", start: "2024-01-01", wantStart: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), wantEnd: time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)},
		{name: "rfc3339", start: "2024-01-01T10:00:00Z", end: "2024-02-01", wantStart: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC), wantEnd: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
		{name: "bad", start: "yesterday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := seasonSpan(tt.start, tt.end, now)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !start.Equal(tt.wantStart) || !end.Equal(tt.wantEnd) {
				t.Fatalf("expected %s..%s, got %s..%s", tt.wantStart, tt.wantEnd, start, end)
			}
		})
	}
}

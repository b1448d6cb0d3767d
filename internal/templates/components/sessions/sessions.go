package sessions

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/a-h/templ"

	"github.com/codr1/leagus/internal/models"
)

func SessionPage(detail SessionDetail) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		session := detail.Session
		if _, err := io.WriteString(w, fmt.Sprintf(
			`<div class="space-y-6" data-session-id="%s">
				<div class="flex items-center justify-between">
					<div>
						<a href="%s" class="text-sm text-blue-700 underline">%s</a>
						<h1 class="text-2xl font-semibold">Session of %s</h1>
					</div>
					<form method="post" action="/rounds/create/%s" hx-post="/rounds/create/%s" hx-target="#content">
						<button type="submit" class="rounded bg-blue-600 px-3 py-2 text-sm text-white">New round</button>
					</form>
				</div>`,
			session.ID,
			pageURL("/leagues/%s?season_id=%s&session_id=%s", detail.Season.LeagueID, detail.Season.ID, session.ID),
			templ.EscapeString(detail.Season.Name),
			formatDate(session.Date),
			session.ID,
			session.ID,
		)); err != nil {
			return err
		}

		var activeID *models.RoundID
		if detail.ActiveRound != nil {
			activeID = detail.ActiveRound.Round.ID.Ptr()
		}
		if _, err := io.WriteString(w, buildRoundTabsHTML(session.ID, detail.Rounds, activeID)); err != nil {
			return err
		}

		if detail.ActiveRound == nil {
			_, err := io.WriteString(w, `<p class="text-sm text-gray-500">No rounds yet.</p></div>`)
			return err
		}
		if err := RoundPanel(*detail.ActiveRound).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

// RoundPanel is the body of a round: its participants, the pool to add
// from, and its matches.
func RoundPanel(detail RoundDetail) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, fmt.Sprintf(`<section id="round-panel" class="grid gap-6 md:grid-cols-2" data-round-id="%s">`, detail.Round.ID)); err != nil {
			return err
		}
		if err := ParticipantsPanel(detail).Render(ctx, w); err != nil {
			return err
		}
		if err := MatchesList(detail).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</section>`)
		return err
	})
}

// ParticipantsPanel is swapped as a whole after adding or removing someone.
func ParticipantsPanel(detail RoundDetail) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		roundID := detail.Round.ID
		var builder strings.Builder
		builder.WriteString(fmt.Sprintf(`<div id="round-participants" class="space-y-4"><h2 class="text-lg font-semibold">Participants (%d)</h2>`, len(detail.Participants)))
		if len(detail.Participants) == 0 {
			builder.WriteString(`<p class="text-sm text-gray-500">Nobody has joined this round.</p>`)
		} else {
			builder.WriteString(`<ul class="divide-y rounded border bg-white">`)
			for _, p := range detail.Participants {
				builder.WriteString(fmt.Sprintf(
					`<li class="flex items-center justify-between p-2" data-participant-id="%s"><span>%s</span><button class="text-xs text-red-700" hx-post="/rounds/%s/remove_participant/%s" hx-target="#round-participants" hx-swap="outerHTML">Remove</button></li>`,
					p.ID,
					templ.EscapeString(p.Name),
					roundID,
					p.ID,
				))
			}
			builder.WriteString(`</ul>`)
		}

		builder.WriteString(fmt.Sprintf(
			`<input type="search" name="query_name" value="%s" placeholder="Find participants" class="w-full rounded border p-2 text-sm" hx-get="/rounds/%s/update_participants" hx-trigger="input changed delay:300ms, search" hx-target="#available-participants" hx-swap="outerHTML">`,
			templ.EscapeString(detail.Query),
			roundID,
		))
		builder.WriteString(buildAvailableHTML(roundID, detail.Available))
		builder.WriteString(`</div>`)

		_, err := io.WriteString(w, builder.String())
		return err
	})
}

// AvailableList is the result of a participant search for a round.
func AvailableList(roundID models.RoundID, available []models.Participant) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, buildAvailableHTML(roundID, available))
		return err
	})
}

func MatchesList(detail RoundDetail) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var builder strings.Builder
		builder.WriteString(fmt.Sprintf(
			`<div id="round-matches" class="space-y-4"><div class="flex items-center justify-between"><h2 class="text-lg font-semibold">Matches</h2><button class="rounded border px-3 py-1 text-sm" hx-post="/rounds/%s/generate_matches" hx-target="#round-matches" hx-swap="outerHTML">Generate matches</button></div>`,
			detail.Round.ID,
		))
		if len(detail.Matches) == 0 {
			builder.WriteString(`<p class="text-sm text-gray-500">No matches yet.</p>`)
		}
		for _, match := range detail.Matches {
			builder.WriteString(buildMatchCardHTML(match, detail))
		}
		builder.WriteString(`</div>`)
		_, err := io.WriteString(w, builder.String())
		return err
	})
}

func MatchCard(match models.Match, detail RoundDetail) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, buildMatchCardHTML(match, detail))
		return err
	})
}

func buildRoundTabsHTML(sessionID models.SessionID, rounds []models.Round, active *models.RoundID) string {
	if len(rounds) == 0 {
		return ""
	}
	var builder strings.Builder
	builder.WriteString(`<ul id="rounds-list" class="flex flex-wrap gap-2">`)
	for i, round := range rounds {
		class := "rounded border px-3 py-1 text-sm"
		if models.SameID(active, round.ID.Ptr()) {
			class += " border-blue-600 bg-blue-50 font-semibold"
		}
		builder.WriteString(fmt.Sprintf(
			`<li><a href="%s" class="%s" data-round-id="%s">Round %d</a></li>`,
			pageURL("/sessions/%s?round_id=%s", sessionID, round.ID),
			class,
			round.ID,
			i+1,
		))
	}
	builder.WriteString(`</ul>`)
	return builder.String()
}

func buildAvailableHTML(roundID models.RoundID, available []models.Participant) string {
	if len(available) == 0 {
		return `<div id="available-participants" class="text-sm text-gray-500">No one else to add.</div>`
	}
	var builder strings.Builder
	builder.WriteString(`<ul id="available-participants" class="divide-y rounded border bg-white">`)
	for _, p := range available {
		builder.WriteString(fmt.Sprintf(
			`<li class="flex items-center justify-between p-2" data-participant-id="%s"><span>%s</span><button class="text-xs text-blue-700" hx-post="/rounds/%s/add_participant/%s" hx-target="#round-participants" hx-swap="outerHTML">Add</button></li>`,
			p.ID,
			templ.EscapeString(p.Name),
			roundID,
			p.ID,
		))
	}
	builder.WriteString(`</ul>`)
	return builder.String()
}

func buildMatchCardHTML(match models.Match, detail RoundDetail) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf(
		`<div id="match-%s" class="rounded border bg-white p-3" data-match-id="%s"><div class="text-xs text-gray-500">%s</div><ul class="mt-2 space-y-1">`,
		match.ID,
		match.ID,
		templ.EscapeString(detail.VenueName(match.VenueID)),
	))
	for _, id := range match.Participants {
		name := templ.EscapeString(detail.NameOf(id))
		switch {
		case match.Result != nil && match.Result.WinnerID == id:
			builder.WriteString(fmt.Sprintf(`<li class="font-semibold text-green-700" data-winner="true">%s</li>`, name))
		case match.Result != nil:
			builder.WriteString(fmt.Sprintf(`<li class="text-gray-600">%s</li>`, name))
		default:
			vals := url.Values{"winner_id": {id.String()}}
			builder.WriteString(fmt.Sprintf(
				`<li class="flex items-center justify-between"><span>%s</span><button class="text-xs text-blue-700" hx-post="/matches/%s/result?%s" hx-target="#match-%s" hx-swap="outerHTML">Won</button></li>`,
				name,
				match.ID,
				templ.EscapeString(vals.Encode()),
				match.ID,
			))
		}
	}
	builder.WriteString(`</ul></div>`)
	return builder.String()
}

func formatDate(date time.Time) string {
	return date.UTC().Format("Mon, Jan 2, 2006")
}

func pageURL(format string, args ...any) string {
	return templ.EscapeString(string(templ.URL(fmt.Sprintf(format, args...))))
}

package leagues

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/a-h/templ"

	"github.com/codr1/leagus/internal/models"
)

func LeaguesPage(leagues []models.League) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div class="space-y-6">`); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<div class="flex items-center justify-between"><h1 class="text-2xl font-semibold">Leagues</h1><a href="/leagues/create" class="rounded bg-blue-600 px-3 py-2 text-sm text-white">New league</a></div>`); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<div id="leagues-list">`+buildLeaguesListHTML(leagues)+`</div></div>`); err != nil {
			return err
		}
		return nil
	})
}

func LeagueFormPage(form LeagueForm) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, fmt.Sprintf(
			`<form method="post" action="/leagues/create" hx-post="/leagues/create" class="space-y-4">
				<h1 class="text-2xl font-semibold">New league</h1>
				%s
				<label class="block text-sm">Name<input name="name" value="%s" required class="mt-1 block w-full rounded border p-2"></label>
				<label class="block text-sm">Description<textarea name="description" class="mt-1 block w-full rounded border p-2">%s</textarea></label>
				<button type="submit" class="rounded bg-blue-600 px-3 py-2 text-sm text-white">Create</button>
			</form>`,
			formErrorHTML(form.Error),
			templ.EscapeString(form.Name),
			templ.EscapeString(form.Description),
		))
		return err
	})
}

func LeagueDetailPage(detail LeagueDetail) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		league := detail.League
		if _, err := io.WriteString(w, fmt.Sprintf(
			`<div class="space-y-6" data-league-id="%s">
				<div class="flex items-center justify-between">
					<div><h1 class="text-2xl font-semibold">%s</h1><p class="text-sm text-gray-600">%s</p></div>
					<button class="rounded bg-blue-600 px-3 py-2 text-sm text-white" hx-get="/seasons/create/%s" hx-target="#modal">New season</button>
				</div>`,
			league.ID,
			templ.EscapeString(league.Name),
			templ.EscapeString(league.Description),
			league.ID,
		)); err != nil {
			return err
		}

		if _, err := io.WriteString(w, `<section><h2 class="text-lg font-semibold">Seasons</h2>`); err != nil {
			return err
		}
		if _, err := io.WriteString(w, buildSeasonsListHTML(league.ID, detail.Seasons, detail.activeSeasonID())); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `</section>`); err != nil {
			return err
		}

		if detail.ActiveSeason == nil {
			_, err := io.WriteString(w, `<p class="text-sm text-gray-500">No active season.</p></div>`)
			return err
		}

		if _, err := io.WriteString(w, buildActiveSeasonHTML(detail)); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

func SeasonsList(leagueID models.LeagueID, seasons []models.Season, active *models.SeasonID) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, buildSeasonsListHTML(leagueID, seasons, active))
		return err
	})
}

func SeasonFormModal(form SeasonForm) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		action := fmt.Sprintf("/seasons/create/%s", form.League.ID)
		_, err := io.WriteString(w, fmt.Sprintf(
			`<div class="fixed inset-0 flex items-center justify-center bg-black/40" id="season-modal">
				<form method="post" action="%s" hx-post="%s" hx-target="#content" hx-on::after-request="if (event.detail.successful) document.getElementById('season-modal').remove()" class="w-96 space-y-4 rounded bg-white p-6">
					<h2 class="text-lg font-semibold">New season for %s</h2>
					%s
					<label class="block text-sm">Name<input name="name" value="%s" placeholder="Defaults to the start month" class="mt-1 block w-full rounded border p-2"></label>
					<label class="block text-sm">Start<input type="date" name="start" value="%s" class="mt-1 block w-full rounded border p-2"></label>
					<label class="block text-sm">End<input type="date" name="end" value="%s" class="mt-1 block w-full rounded border p-2"></label>
					<label class="flex items-center gap-2 text-sm"><input type="checkbox" name="make_active" checked> Make active</label>
					<div class="flex justify-end gap-2">
						<button type="button" onclick="document.getElementById('season-modal').remove()" class="rounded border px-3 py-2 text-sm">Cancel</button>
						<button type="submit" class="rounded bg-blue-600 px-3 py-2 text-sm text-white">Create</button>
					</div>
				</form>
			</div>`,
			action,
			action,
			templ.EscapeString(form.League.Name),
			formErrorHTML(form.Error),
			templ.EscapeString(form.Name),
			templ.EscapeString(form.Start),
			templ.EscapeString(form.End),
		))
		return err
	})
}

func PointsTable(table models.PointsTable) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, buildPointsTableHTML(table))
		return err
	})
}

func buildLeaguesListHTML(leagues []models.League) string {
	if len(leagues) == 0 {
		return `<div class="rounded border border-dashed p-6 text-center text-sm text-gray-500">No leagues found.</div>`
	}

	var builder strings.Builder
	builder.WriteString(`<div class="grid gap-4">`)
	for _, league := range leagues {
		builder.WriteString(fmt.Sprintf(
			`<a href="%s" class="block rounded border bg-white p-4 shadow-sm" data-league-id="%s">
				<div class="text-lg font-semibold">%s</div>
				<div class="text-sm text-gray-600">%s</div>
			</a>`,
			pageURL("/leagues/%s", league.ID),
			league.ID,
			templ.EscapeString(league.Name),
			templ.EscapeString(league.Description),
		))
	}
	builder.WriteString(`</div>`)
	return builder.String()
}

func buildSeasonsListHTML(leagueID models.LeagueID, seasons []models.Season, active *models.SeasonID) string {
	if len(seasons) == 0 {
		return `<div id="seasons-list" class="text-sm text-gray-500">No seasons yet.</div>`
	}

	var builder strings.Builder
	builder.WriteString(`<ul id="seasons-list" class="flex flex-wrap gap-2">`)
	for _, season := range seasons {
		class := "rounded border px-3 py-1 text-sm"
		if models.SameID(active, season.ID.Ptr()) {
			class += " border-blue-600 bg-blue-50 font-semibold"
		}
		builder.WriteString(fmt.Sprintf(
			`<li><a href="%s" class="%s" data-season-id="%s">%s <span class="text-gray-500">%s - %s</span></a></li>`,
			pageURL("/leagues/%s?season_id=%s", leagueID, season.ID),
			class,
			season.ID,
			templ.EscapeString(season.Name),
			formatDate(season.Start),
			formatDate(season.End),
		))
	}
	builder.WriteString(`</ul>`)
	return builder.String()
}

func buildActiveSeasonHTML(detail LeagueDetail) string {
	season := detail.ActiveSeason
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf(
		`<section id="active-season" class="space-y-4" data-season-id="%s">
			<div class="flex items-center justify-between">
				<h2 class="text-lg font-semibold">%s</h2>
				<form method="post" action="/sessions/create/%s" hx-post="/sessions/create/%s" hx-target="#content" class="flex items-center gap-2">
					<input type="date" name="date" class="rounded border p-1 text-sm">
					<label class="flex items-center gap-1 text-sm"><input type="checkbox" name="make_active" checked> Active</label>
					<button type="submit" class="rounded bg-blue-600 px-3 py-1 text-sm text-white">New session</button>
				</form>
			</div>`,
		season.ID,
		templ.EscapeString(season.Name),
		season.ID,
		season.ID,
	))

	builder.WriteString(`<div><h3 class="font-medium">Sessions</h3>`)
	if len(detail.Sessions) == 0 {
		builder.WriteString(`<p class="text-sm text-gray-500">No sessions yet.</p>`)
	} else {
		activeID := detail.activeSessionID()
		builder.WriteString(`<ul id="sessions-list" class="flex flex-wrap gap-2">`)
		for _, session := range detail.Sessions {
			class := "rounded border px-3 py-1 text-sm"
			if models.SameID(activeID, session.ID.Ptr()) {
				class += " border-blue-600 bg-blue-50 font-semibold"
			}
			builder.WriteString(fmt.Sprintf(
				`<li><a href="%s" class="%s" data-session-id="%s">%s</a></li>`,
				pageURL("/leagues/%s?season_id=%s&session_id=%s", detail.League.ID, season.ID, session.ID),
				class,
				session.ID,
				formatDate(session.Date),
			))
		}
		builder.WriteString(`</ul>`)
	}
	builder.WriteString(`</div>`)

	if detail.ActiveSession != nil {
		builder.WriteString(fmt.Sprintf(
			`<a href="%s" class="inline-block text-sm text-blue-700 underline" data-active-session-id="%s">Open session of %s</a>`,
			pageURL("/sessions/%s", detail.ActiveSession.ID),
			detail.ActiveSession.ID,
			formatDate(detail.ActiveSession.Date),
		))
	}

	builder.WriteString(fmt.Sprintf(
		`<div><h3 class="font-medium">Points table</h3><div hx-get="/points/%s" hx-trigger="pointsTableUpdated from:body">`,
		season.ID,
	))
	builder.WriteString(buildPointsTableHTML(season.Table))
	builder.WriteString(`</div>`)
	builder.WriteString(`</div></section>`)
	return builder.String()
}

func buildPointsTableHTML(table models.PointsTable) string {
	if len(table.Entries) == 0 {
		return `<div id="points-table" class="text-sm text-gray-500">No results recorded yet.</div>`
	}

	var builder strings.Builder
	builder.WriteString(`<table id="points-table" class="min-w-full text-sm"><thead><tr class="text-left text-gray-600"><th>#</th><th>Participant</th><th>Points</th><th>W</th><th>L</th></tr></thead><tbody>`)
	for i, entry := range table.Entries {
		builder.WriteString(fmt.Sprintf(
			`<tr data-participant-id="%s"><td>%d</td><td>%s</td><td>%d</td><td>%d</td><td>%d</td></tr>`,
			entry.ParticipantID,
			i+1,
			templ.EscapeString(entry.ParticipantName),
			entry.Points,
			entry.Wins,
			entry.Losses,
		))
	}
	builder.WriteString(`</tbody></table>`)
	return builder.String()
}

func formErrorHTML(message string) string {
	if message == "" {
		return ""
	}
	return fmt.Sprintf(`<p class="rounded bg-red-50 p-2 text-sm text-red-700" role="alert">%s</p>`, templ.EscapeString(message))
}

func formatDate(date time.Time) string {
	return date.UTC().Format("Jan 2, 2006")
}

// pageURL formats an internal link, sanitized and escaped for an href.
func pageURL(format string, args ...any) string {
	return templ.EscapeString(string(templ.URL(fmt.Sprintf(format, args...))))
}

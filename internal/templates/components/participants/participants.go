package participants

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/codr1/leagus/internal/models"
)

type Form struct {
	Name  string
	Error string
}

func ParticipantsPage(participants []models.Participant, query string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, fmt.Sprintf(
			`<div class="space-y-6">
				<div class="flex items-center justify-between"><h1 class="text-2xl font-semibold">Participants</h1><a href="/participants/create" class="rounded bg-blue-600 px-3 py-2 text-sm text-white">New participant</a></div>
				<input type="search" name="query_name" value="%s" placeholder="Search" class="w-full rounded border p-2 text-sm" hx-get="/participants" hx-trigger="input changed delay:300ms, search" hx-target="#participants-list" hx-select="#participants-list" hx-swap="outerHTML">
				%s
			</div>`,
			templ.EscapeString(query),
			buildParticipantsListHTML(participants),
		))
		return err
	})
}

func FormPage(form Form) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		errHTML := ""
		if form.Error != "" {
			errHTML = fmt.Sprintf(`<p class="rounded bg-red-50 p-2 text-sm text-red-700" role="alert">%s</p>`, templ.EscapeString(form.Error))
		}
		_, err := io.WriteString(w, fmt.Sprintf(
			`<form method="post" action="/participants/create" hx-post="/participants/create" class="space-y-4">
				<h1 class="text-2xl font-semibold">New participant</h1>
				%s
				<label class="block text-sm">Name<input name="name" value="%s" required class="mt-1 block w-full rounded border p-2"></label>
				<button type="submit" class="rounded bg-blue-600 px-3 py-2 text-sm text-white">Create</button>
			</form>`,
			errHTML,
			templ.EscapeString(form.Name),
		))
		return err
	})
}

func buildParticipantsListHTML(participants []models.Participant) string {
	if len(participants) == 0 {
		return `<div id="participants-list" class="rounded border border-dashed p-6 text-center text-sm text-gray-500">No participants found.</div>`
	}
	var builder strings.Builder
	builder.WriteString(`<ul id="participants-list" class="divide-y rounded border bg-white">`)
	for _, p := range participants {
		builder.WriteString(fmt.Sprintf(`<li class="p-2" data-participant-id="%s">%s</li>`, p.ID, templ.EscapeString(p.Name)))
	}
	builder.WriteString(`</ul>`)
	return builder.String()
}

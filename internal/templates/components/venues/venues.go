package venues

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

func VenuesPage(venues []models.Venue) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div class="space-y-6"><div class="flex items-center justify-between"><h1 class="text-2xl font-semibold">Venues</h1><a href="/venues/create" class="rounded bg-blue-600 px-3 py-2 text-sm text-white">New venue</a></div>`); err != nil {
			return err
		}
		if len(venues) == 0 {
			_, err := io.WriteString(w, `<div id="venues-list" class="rounded border border-dashed p-6 text-center text-sm text-gray-500">No venues yet.</div></div>`)
			return err
		}
		var builder strings.Builder
		builder.WriteString(`<ul id="venues-list" class="divide-y rounded border bg-white">`)
		for _, v := range venues {
			builder.WriteString(fmt.Sprintf(`<li class="p-2" data-venue-id="%s">%s</li>`, v.ID, templ.EscapeString(v.Name)))
		}
		builder.WriteString(`</ul></div>`)
		_, err := io.WriteString(w, builder.String())
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
			`<form method="post" action="/venues/create" hx-post="/venues/create" class="space-y-4">
				<h1 class="text-2xl font-semibold">New venue</h1>
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

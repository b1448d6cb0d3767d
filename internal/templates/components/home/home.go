package home

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

func Index() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<div class="space-y-4">
	<h1 class="text-3xl font-semibold">Leagus</h1>
	<p class="text-gray-700">Run leagues, seasons and match days.</p>
	<div class="flex gap-3">
		<a href="/leagues" class="rounded bg-blue-600 px-3 py-2 text-sm text-white">Leagues</a>
		<a href="/participants" class="rounded border px-3 py-2 text-sm">Participants</a>
		<a href="/venues" class="rounded border px-3 py-2 text-sm">Venues</a>
	</div>
</div>`)
		return err
	})
}

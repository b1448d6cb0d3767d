package layouts

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
)

const appName = "Leagus"

type navLink struct {
	Href  string
	Label string
}

var navLinks = []navLink{
	{Href: "/leagues", Label: "Leagues"},
	{Href: "/participants", Label: "Participants"},
	{Href: "/venues", Label: "Venues"},
}

// Base wraps content in the full HTML document. Content is rendered into
// #content, which is also the target of boosted navigation.
func Base(title string, content templ.Component) templ.Component {
	return BaseWithTheme(title, content, DefaultTheme())
}

func BaseWithTheme(title string, content templ.Component, theme Theme) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		pageTitle := appName
		if title != "" {
			pageTitle = title + " | " + appName
		}

		if _, err := io.WriteString(w, fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="utf-8">
	<meta name="viewport" content="width=device-width, initial-scale=1">
	<meta name="htmx-config" content='{"responseHandling":[{"code":"204","swap":false},{"code":"[23]..","swap":true},{"code":"40[09]","swap":true,"error":false},{"code":"[45]..","swap":false,"error":true}]}'>
	<title>%s</title>
	<link rel="stylesheet" href="/static/css/main.css">
	<style>%s</style>
	<script src="https://unpkg.com/htmx.org@2.0.4" defer></script>
</head>
<body class="min-h-screen bg-gray-50 text-gray-900" hx-boost="true" hx-target="#content">
`, templ.EscapeString(pageTitle), getThemeCssVars(theme))); err != nil {
			return err
		}
		if _, err := io.WriteString(w, buildNavHTML()); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<main id="content" class="mx-auto max-w-5xl p-6">`); err != nil {
			return err
		}
		if content != nil {
			if err := content.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</main>
<div id="modal"></div>
</body>
</html>`)
		return err
	})
}

func buildNavHTML() string {
	var builder strings.Builder
	builder.WriteString(`<nav class="border-b bg-white"><div class="mx-auto flex max-w-5xl items-center gap-6 p-4">`)
	builder.WriteString(fmt.Sprintf(`<a href="/" class="text-lg font-semibold">%s</a>`, appName))
	for _, link := range navLinks {
		builder.WriteString(fmt.Sprintf(`<a href="%s" class="text-sm text-gray-700 hover:text-gray-900">%s</a>`, templ.EscapeString(string(templ.URL(link.Href))), templ.EscapeString(link.Label)))
	}
	builder.WriteString(`</div></nav>`)
	return builder.String()
}

package apiutil

import (
	"net/http"

	"github.com/a-h/templ"

	"github.com/codr1/leagus/internal/api/htmx"
	"github.com/codr1/leagus/internal/templates/layouts"
)

// RenderPage writes content as a fragment for htmx and boosted requests and
// wrapped in the base layout otherwise.
func RenderPage(w http.ResponseWriter, r *http.Request, title string, content templ.Component, headers map[string]string) bool {
	return RenderPageStatus(w, r, http.StatusOK, title, content, headers)
}

func RenderPageStatus(w http.ResponseWriter, r *http.Request, status int, title string, content templ.Component, headers map[string]string) bool {
	component := content
	if !htmx.IsPartial(r) {
		component = layouts.Base(title, content)
	}
	return RenderHTMLStatus(r.Context(), w, status, component, headers, "Failed to render "+title, "Failed to render page")
}

// RespondCreated finishes a successful form post. htmx callers get the new
// page, built by load, rendered in place with the URL pushed. Plain form
// posts are redirected so a reload does not resubmit.
func RespondCreated(w http.ResponseWriter, r *http.Request, location, title string, load func() (templ.Component, error)) {
	if !htmx.IsPartial(r) {
		http.Redirect(w, r, location, http.StatusSeeOther)
		return
	}
	content, err := load()
	if err != nil {
		WriteError(w, r, err, "Not found", "Failed to load created record")
		return
	}
	RenderPage(w, r, title, content, map[string]string{"HX-Push-Url": location})
}

// RenderFormError re-renders a rejected form with its error status. htmx
// callers are pointed at target with HX-Retarget and HX-Reswap so the form
// replaces itself in place.
func RenderFormError(w http.ResponseWriter, r *http.Request, status int, title string, form templ.Component, target string) bool {
	var headers map[string]string
	if htmx.IsPartial(r) {
		headers = map[string]string{
			"HX-Retarget": target,
			"HX-Reswap":   "innerHTML",
		}
	}
	return RenderPageStatus(w, r, status, title, form, headers)
}

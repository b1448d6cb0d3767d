package apiutil

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/codr1/leagus/internal/models"
)

// PathID parses the named path value as a typed ID. label is used in the
// error, e.g. "league".
func PathID[T any](r *http.Request, key, label string) (models.ID[T], error) {
	raw := strings.TrimSpace(r.PathValue(key))
	if raw == "" {
		return models.ID[T]{}, BadRequest(fmt.Sprintf("Invalid %s ID", label), nil)
	}
	id, err := models.ParseID[T](raw)
	if err != nil {
		return models.ID[T]{}, BadRequest(fmt.Sprintf("Invalid %s ID", label), err)
	}
	return id, nil
}

// OptionalQueryID parses an optional query parameter. An empty parameter
// gives nil; a malformed one is an error.
func OptionalQueryID[T any](r *http.Request, key, label string) (*models.ID[T], error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	id, err := models.ParseID[T](raw)
	if err != nil {
		return nil, BadRequest(fmt.Sprintf("Invalid %s ID", label), err)
	}
	return &id, nil
}

// FormChecked reports whether an HTML checkbox was ticked.
func FormChecked(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "on", "true", "1", "yes":
		return true
	default:
		return false
	}
}

// ParseDateOrNow parses YYYY-MM-DD or RFC 3339. An empty value gives now.
func ParseDateOrNow(raw string, now time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return now.UTC(), nil
	}
	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		return parsed.UTC(), nil
	}
	parsed, err := time.Parse(models.SeasonDateLayout, raw)
	if err != nil {
		return time.Time{}, FieldError{Field: "date", Reason: "must be YYYY-MM-DD"}
	}
	return parsed, nil
}

func FormatDate(t time.Time) string {
	return t.UTC().Format("Jan 2, 2006")
}

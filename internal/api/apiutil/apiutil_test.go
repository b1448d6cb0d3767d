package apiutil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"

	"github.com/codr1/leagus/internal/models"
	"github.com/codr1/leagus/internal/store"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{name: "not found", err: fmt.Errorf("get league: %w", store.ErrNotFound), wantStatus: http.StatusNotFound, wantMsg: "League not found"},
		{name: "duplicate", err: fmt.Errorf("create: %w", store.ErrDuplicate), wantStatus: http.StatusConflict},
		{name: "field", err: FieldError{Field: "name", Reason: "is required"}, wantStatus: http.StatusBadRequest, wantMsg: "name is required"},
		{name: "model validation", err: models.ErrSeasonEndsBeforeStart, wantStatus: http.StatusBadRequest},
		{name: "handler error passes through", err: HandlerError{Status: http.StatusTeapot, Message: "short"}, wantStatus: http.StatusTeapot, wantMsg: "short"},
		{name: "unexpected", err: errors.New("disk on fire"), wantStatus: http.StatusInternalServerError, wantMsg: GenericErrorMessage},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ClassifyError(tc.err, "League not found")
			if got.Status != tc.wantStatus {
				t.Fatalf("status = %d, want %d", got.Status, tc.wantStatus)
			}
			if tc.wantMsg != "" && got.Message != tc.wantMsg {
				t.Fatalf("message = %q, want %q", got.Message, tc.wantMsg)
			}
		})
	}
}

func TestPathID(t *testing.T) {
	id := models.NewID[models.League]()

	req := httptest.NewRequest(http.MethodGet, "/leagues/"+id.String(), nil)
	req.SetPathValue("league_id", id.String())
	got, err := PathID[models.League](req, "league_id", "league")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got != id {
		t.Fatalf("id = %s, want %s", got, id)
	}

	bad := httptest.NewRequest(http.MethodGet, "/leagues/nope", nil)
	bad.SetPathValue("league_id", "nope")
	_, err = PathID[models.League](bad, "league_id", "league")
	var handlerErr HandlerError
	if !errors.As(err, &handlerErr) || handlerErr.Status != http.StatusBadRequest {
		t.Fatalf("expected 400 handler error, got %v", err)
	}
}

func TestOptionalQueryID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/leagues/x", nil)
	got, err := OptionalQueryID[models.Season](req, "season_id", "season")
	if err != nil || got != nil {
		t.Fatalf("expected nil, nil for missing param; got %v, %v", got, err)
	}

	req = httptest.NewRequest(http.MethodGet, "/leagues/x?season_id=garbage", nil)
	if _, err := OptionalQueryID[models.Season](req, "season_id", "season"); err == nil {
		t.Fatalf("expected error for malformed id")
	}
}

func TestParseDateOrNow(t *testing.T) {
	now := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)

	got, err := ParseDateOrNow("", now)
	if err != nil || !got.Equal(now) {
		t.Fatalf("empty: got %v, %v", got, err)
	}
	got, err = ParseDateOrNow("2024-02-03", now)
	if err != nil || !got.Equal(time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("date: got %v, %v", got, err)
	}
	if _, err := ParseDateOrNow("03/02/2024", now); err == nil {
		t.Fatalf("expected error for unsupported layout")
	}
}

func TestValidateForm(t *testing.T) {
	type form struct {
		Name string `form:"name" validate:"required,max=10"`
	}

	if err := ValidateForm(form{Name: "ok"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := ValidateForm(form{})
	var fieldErr FieldError
	if !errors.As(err, &fieldErr) || fieldErr.Field != "name" || fieldErr.Reason != "is required" {
		t.Fatalf("expected name is required, got %v", err)
	}

	err = ValidateForm(form{Name: "much too long for this"})
	if !errors.As(err, &fieldErr) || fieldErr.Reason != "is too long" {
		t.Fatalf("expected too long, got %v", err)
	}
}

func TestRenderHTMLComponentError(t *testing.T) {
	failing := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, _ = io.WriteString(w, "partial output")
		return errors.New("render failed")
	})

	rec := httptest.NewRecorder()
	if RenderHTMLComponent(context.Background(), rec, failing, nil, "log", "Failed to render") {
		t.Fatalf("expected render to fail")
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

func TestRenderHTMLComponentHeaders(t *testing.T) {
	ok := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<p>hi</p>")
		return err
	})

	rec := httptest.NewRecorder()
	if !RenderHTMLComponent(context.Background(), rec, ok, map[string]string{"HX-Trigger": "refresh"}, "log", "err") {
		t.Fatalf("expected render to succeed")
	}
	if rec.Header().Get("HX-Trigger") != "refresh" {
		t.Fatalf("missing HX-Trigger header")
	}
	if rec.Body.String() != "<p>hi</p>" {
		t.Fatalf("body = %q", rec.Body.String())
	}
}

func TestRenderFormError(t *testing.T) {
	form := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<form id="f"></form>`)
		return err
	})

	tests := []struct {
		name       string
		partial    bool
		wantTarget string
		wantSwap   string
		wantLayout bool
	}{
		{name: "htmx", partial: true, wantTarget: "#modal", wantSwap: "innerHTML"},
		{name: "plain form post", partial: false, wantLayout: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/seasons/create/x", nil)
			if tt.partial {
				req.Header.Set("HX-Request", "true")
			}
			rec := httptest.NewRecorder()
			RenderFormError(rec, req, http.StatusConflict, "New season", form, "#modal")

			if rec.Code != http.StatusConflict {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusConflict)
			}
			if got := rec.Header().Get("HX-Retarget"); got != tt.wantTarget {
				t.Fatalf("HX-Retarget = %q, want %q", got, tt.wantTarget)
			}
			if got := rec.Header().Get("HX-Reswap"); got != tt.wantSwap {
				t.Fatalf("HX-Reswap = %q, want %q", got, tt.wantSwap)
			}
			if got := strings.Contains(rec.Body.String(), "<!DOCTYPE html>"); got != tt.wantLayout {
				t.Fatalf("full page = %v, want %v", got, tt.wantLayout)
			}
		})
	}
}

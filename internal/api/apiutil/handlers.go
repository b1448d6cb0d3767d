package apiutil

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/rs/zerolog/log"

	"github.com/codr1/leagus/internal/models"
	"github.com/codr1/leagus/internal/store"
)

// GenericErrorMessage is the only detail an unexpected failure exposes.
const GenericErrorMessage = "Something went wrong"

type FieldError struct {
	Field  string
	Reason string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

type HandlerError struct {
	Status  int
	Message string
	Err     error
}

func (e HandlerError) Error() string {
	return e.Message
}

func (e HandlerError) Unwrap() error {
	return e.Err
}

func BadRequest(message string, err error) HandlerError {
	return HandlerError{Status: http.StatusBadRequest, Message: message, Err: err}
}

// ClassifyError maps an error onto the status and message returned to the
// client. notFound names the missing thing, e.g. "League not found".
func ClassifyError(err error, notFound string) HandlerError {
	var handlerErr HandlerError
	var fieldErr FieldError
	switch {
	case errors.As(err, &handlerErr):
		return handlerErr
	case errors.As(err, &fieldErr):
		return BadRequest(fieldErr.Error(), err)
	case errors.Is(err, store.ErrNotFound):
		return HandlerError{Status: http.StatusNotFound, Message: notFound, Err: err}
	case errors.Is(err, store.ErrDuplicate):
		return HandlerError{Status: http.StatusConflict, Message: "A record with that name already exists", Err: err}
	case errors.Is(err, models.ErrNameRequired),
		errors.Is(err, models.ErrSeasonEndsBeforeStart),
		errors.Is(err, models.ErrWinnerNotInMatch):
		return BadRequest(err.Error(), err)
	default:
		return HandlerError{Status: http.StatusInternalServerError, Message: GenericErrorMessage, Err: err}
	}
}

// WriteError classifies err and writes it. Server errors are logged with
// logMsg; client errors are logged at debug.
func WriteError(w http.ResponseWriter, r *http.Request, err error, notFound, logMsg string) {
	handlerErr := ClassifyError(err, notFound)
	logger := log.Ctx(r.Context())
	if handlerErr.Status >= http.StatusInternalServerError {
		logger.Error().Err(err).Msg(logMsg)
	} else {
		logger.Debug().Err(err).Int("status", handlerErr.Status).Msg(logMsg)
	}
	http.Error(w, handlerErr.Message, handlerErr.Status)
}

func IsJSONRequest(r *http.Request) bool {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	return err == nil && mediaType == "application/json"
}

func FirstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func DecodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return fmt.Errorf("missing request body")
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return err
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return fmt.Errorf("invalid JSON body")
	}
	return nil
}

func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	if err := encoder.Encode(payload); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err := w.Write(buf.Bytes())
	return err
}

// RenderHTMLComponent buffers component so a render failure can still become
// a 500. It reports whether the response was written successfully.
func RenderHTMLComponent(ctx context.Context, w http.ResponseWriter, component templ.Component, headers map[string]string, logMsg, errMsg string) bool {
	return RenderHTMLStatus(ctx, w, http.StatusOK, component, headers, logMsg, errMsg)
}

// RenderHTMLStatus is RenderHTMLComponent with an explicit status, used to
// send a form back with its validation error.
func RenderHTMLStatus(ctx context.Context, w http.ResponseWriter, status int, component templ.Component, headers map[string]string, logMsg, errMsg string) bool {
	var buf bytes.Buffer
	if err := component.Render(ctx, &buf); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg(logMsg)
		http.Error(w, errMsg, http.StatusInternalServerError)
		return false
	}

	for key, value := range headers {
		w.Header().Set(key, value)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("Failed to write HTML response")
		return false
	}
	return true
}

package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/carbontrack-backend/internal/domain"
)

// maxBodyBytes bounds every JSON request body.
const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error  string              `json:"error"`
	Fields []domain.FieldError `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// decodeJSON reads a single JSON object from the request body. Unknown
// fields are rejected so typos surface as 400 instead of silent no-ops.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("invalid request body: trailing data")
	}
	return nil
}

// handleError maps domain errors onto HTTP statuses. Anything unrecognised
// is logged and reported as 500 without leaking the cause.
func handleError(log *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "validation error", Fields: ve.Errors})
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "already exists")
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, "conflict")
	default:
		log.ErrorContext(r.Context(), "internal error",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// pathID parses the {id} wildcard. It writes a 400 and reports false when the
// value is not a UUID.
func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:  "validation error",
			Fields: []domain.FieldError{{Field: "id", Message: "must be a UUID"}},
		})
		return uuid.Nil, false
	}
	return id, true
}

// queryParams collects typed query values and the errors met while parsing
// them, so a handler can report every bad parameter at once.
type queryParams struct {
	r    *http.Request
	errs []domain.FieldError
}

func newQueryParams(r *http.Request) *queryParams {
	return &queryParams{r: r}
}

func (q *queryParams) Int(key string, def int) int {
	v := q.r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		q.errs = append(q.errs, domain.FieldError{Field: key, Message: "must be an integer"})
		return def
	}
	return n
}

func (q *queryParams) Bool(key string) *bool {
	v := q.r.URL.Query().Get(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		q.errs = append(q.errs, domain.FieldError{Field: key, Message: "must be true or false"})
		return nil
	}
	return &b
}

// date accepts either a calendar date (2006-01-02) or an RFC 3339 timestamp.
func (q *queryParams) Date(key string) *time.Time {
	v := q.r.URL.Query().Get(key)
	if v == "" {
		return nil
	}
	t, err := parseDate(v)
	if err != nil {
		q.errs = append(q.errs, domain.FieldError{Field: key, Message: "must be YYYY-MM-DD or RFC 3339"})
		return nil
	}
	return &t
}

// DateEnd is Date for an inclusive upper bound: a calendar date covers the
// whole day.
func (q *queryParams) DateEnd(key string) *time.Time {
	v := q.r.URL.Query().Get(key)
	t := q.Date(key)
	if t == nil {
		return nil
	}
	if _, err := time.Parse(time.DateOnly, v); err == nil {
		end := t.Add(24*time.Hour - time.Nanosecond)
		return &end
	}
	return t
}

func (q *queryParams) Category(key string) *domain.Category {
	v := q.r.URL.Query().Get(key)
	if v == "" {
		return nil
	}
	c := domain.Category(v)
	return &c
}

func (q *queryParams) Err() error {
	if len(q.errs) == 0 {
		return nil
	}
	return &domain.ValidationError{Errors: q.errs}
}

func parseDate(v string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, v); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, v)
}

// handleBodyError reports a decodeJSON failure. Field-level errors raised by
// custom unmarshalers keep their field list.
func handleBodyError(log *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrValidation) {
		handleError(log, w, r, err)
		return
	}
	writeError(w, http.StatusBadRequest, err.Error())
}

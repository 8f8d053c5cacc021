package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/carbontrack-backend/internal/carbon"
	"github.com/heartmarshall/carbontrack-backend/internal/domain"
	"github.com/heartmarshall/carbontrack-backend/internal/service/footprint"
)

type footprintService interface {
	Create(ctx context.Context, input footprint.CreateInput) (*domain.Footprint, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Footprint, error)
	List(ctx context.Context, input footprint.ListInput) (*footprint.ListResult, error)
	Update(ctx context.Context, id uuid.UUID, input footprint.UpdateInput) (*domain.Footprint, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Summary(ctx context.Context) (*domain.Summary, error)
	Insights(ctx context.Context) (*footprint.Insights, error)
	Estimate(input footprint.EstimateInput) (float64, error)
}

// FootprintHandler serves /api/footprints.
type FootprintHandler struct {
	svc footprintService
	log *slog.Logger
}

// NewFootprintHandler creates a FootprintHandler.
func NewFootprintHandler(svc footprintService, logger *slog.Logger) *FootprintHandler {
	return &FootprintHandler{svc: svc, log: logger.With("handler", "footprint")}
}

// jsonDate accepts "2006-01-02" as well as RFC 3339 timestamps.
type jsonDate struct {
	time.Time
}

func (d *jsonDate) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	t, err := parseDate(s)
	if err != nil {
		return domain.NewValidationError("date", "must be YYYY-MM-DD or RFC 3339")
	}
	d.Time = t
	return nil
}

func (d *jsonDate) ptr() *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}

type createFootprintRequest struct {
	Category       string         `json:"category"`
	Activity       string         `json:"activity"`
	Date           *jsonDate      `json:"date"`
	CarbonEmission *float64       `json:"carbonEmission"`
	Unit           string         `json:"unit"`
	Details        map[string]any `json:"details"`
	Source         string         `json:"source"`
}

type updateFootprintRequest struct {
	Category       *string        `json:"category"`
	Activity       *string        `json:"activity"`
	Date           *jsonDate      `json:"date"`
	CarbonEmission *float64       `json:"carbonEmission"`
	Unit           *string        `json:"unit"`
	Details        map[string]any `json:"details"`
	Source         *string        `json:"source"`
}

type estimateRequest struct {
	Category string         `json:"category"`
	Details  map[string]any `json:"details"`
}

type estimateResponse struct {
	CarbonEmission float64 `json:"carbonEmission"`
	Unit           string  `json:"unit"`
	Comparison     string  `json:"comparison"`
}

// List handles GET /api/footprints?category=&from=&to=&limit=&offset=.
func (h *FootprintHandler) List(w http.ResponseWriter, r *http.Request) {
	q := newQueryParams(r)
	input := footprint.ListInput{
		Category: q.Category("category"),
		From:     q.Date("from"),
		To:       q.DateEnd("to"),
		Limit:    q.Int("limit", 0),
		Offset:   q.Int("offset", 0),
	}
	if err := q.Err(); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	result, err := h.svc.List(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := footprintListResponse{
		Items: make([]footprintResponse, 0, len(result.Items)),
		Total: result.Total,
	}
	for i := range result.Items {
		resp.Items = append(resp.Items, toFootprintResponse(&result.Items[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Create handles POST /api/footprints.
func (h *FootprintHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createFootprintRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleBodyError(h.log, w, r, err)
		return
	}

	fp, err := h.svc.Create(r.Context(), footprint.CreateInput{
		Category:       domain.Category(req.Category),
		Activity:       req.Activity,
		Date:           req.Date.ptr(),
		CarbonEmission: req.CarbonEmission,
		Unit:           req.Unit,
		Details:        req.Details,
		Source:         domain.FootprintSource(req.Source),
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toFootprintResponse(fp))
}

// Get handles GET /api/footprints/{id}.
func (h *FootprintHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	fp, err := h.svc.Get(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toFootprintResponse(fp))
}

// Update handles PUT /api/footprints/{id}.
func (h *FootprintHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req updateFootprintRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleBodyError(h.log, w, r, err)
		return
	}

	input := footprint.UpdateInput{
		Activity:       req.Activity,
		Date:           req.Date.ptr(),
		CarbonEmission: req.CarbonEmission,
		Unit:           req.Unit,
		Details:        req.Details,
	}
	if req.Category != nil {
		c := domain.Category(*req.Category)
		input.Category = &c
	}
	if req.Source != nil {
		src := domain.FootprintSource(*req.Source)
		input.Source = &src
	}

	fp, err := h.svc.Update(r.Context(), id, input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toFootprintResponse(fp))
}

// Delete handles DELETE /api/footprints/{id}.
func (h *FootprintHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, deleteResponse{ID: id.String()})
}

// Summary handles GET /api/footprints/summary.
func (h *FootprintHandler) Summary(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.Summary(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSummaryResponse(*s))
}

// Insights handles GET /api/footprints/insights.
func (h *FootprintHandler) Insights(w http.ResponseWriter, r *http.Request) {
	in, err := h.svc.Insights(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toInsightsResponse(in))
}

// Estimate handles POST /api/footprints/estimate. Nothing is stored.
func (h *FootprintHandler) Estimate(w http.ResponseWriter, r *http.Request) {
	var req estimateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleBodyError(h.log, w, r, err)
		return
	}

	kg, err := h.svc.Estimate(footprint.EstimateInput{
		Category: domain.Category(req.Category),
		Details:  req.Details,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, estimateResponse{
		CarbonEmission: kg,
		Unit:           domain.DefaultEmissionUnit,
		Comparison:     carbon.CompareEmission(kg),
	})
}

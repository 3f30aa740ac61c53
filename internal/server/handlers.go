package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rshade/binderlca/internal/catalog"
	"github.com/rshade/binderlca/internal/engine"
	"github.com/rshade/binderlca/internal/export"
	"github.com/rshade/binderlca/internal/greenops"
	"github.com/rshade/binderlca/internal/logging"
)

// Handlers provides the API endpoints.
type Handlers struct {
	holder   *Holder
	defaults engine.DesignInputs
	pageSize int
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(holder *Holder, defaults engine.DesignInputs, pageSize int) *Handlers {
	return &Handlers{holder: holder, defaults: defaults, pageSize: pageSize}
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status     string    `json:"status"`
	Materials  int       `json:"materials"`
	Sources    []string  `json:"sources"`
	LoadedAt   time.Time `json:"loaded_at"`
	Reloads    int64     `json:"reloads"`
	BaselineID string    `json:"baseline_id,omitempty"`
}

// Health reports the catalog currently served.
func (h *Handlers) Health(w http.ResponseWriter, _ *http.Request) {
	s := h.holder.Session()
	b, _ := s.Baseline()
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:     "ok",
		Materials:  s.Catalog().Len(),
		Sources:    s.Catalog().Sources(),
		LoadedAt:   s.CreatedAt().UTC(),
		Reloads:    h.holder.Reloads(),
		BaselineID: b.MaterialID,
	})
}

// BaselineResponse is the body of GET /api/v1/baseline.
type BaselineResponse struct {
	Baseline    *engine.Baseline `json:"baseline"`
	HasBaseline bool             `json:"has_baseline"`
}

// Baseline returns the catalog-wide reference material.
func (h *Handlers) Baseline(w http.ResponseWriter, _ *http.Request) {
	resp := BaselineResponse{}
	if b, ok := h.holder.Session().Baseline(); ok {
		resp.Baseline = &b
		resp.HasBaseline = true
	}
	writeJSON(w, http.StatusOK, resp)
}

// Materials lists the catalog in load order.
func (h *Handlers) Materials(w http.ResponseWriter, _ *http.Request) {
	materials := h.holder.Session().Catalog().Materials()
	if materials == nil {
		materials = []catalog.Material{}
	}
	writeJSON(w, http.StatusOK, materials)
}

// Material returns one material by ID.
func (h *Handlers) Material(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	m, ok := h.holder.Session().Catalog().Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("material %q not found", id))
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// Rows computes, filters, sorts and pages the comparison rows.
func (h *Handlers) Rows(w http.ResponseWriter, r *http.Request) {
	in, err := parseInputs(r.URL.Query(), h.defaults)
	if err != nil {
		badRequest(w, err)
		return
	}
	q, err := parseQuery(r.URL.Query(), h.pageSize)
	if err != nil {
		badRequest(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.holder.Session().Evaluate(r.Context(), in, q))
}

// ExportCSV streams the delimited export of the full filtered and sorted set.
func (h *Handlers) ExportCSV(w http.ResponseWriter, r *http.Request) {
	res, ok := h.evaluateAll(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+strconv.Quote(export.DefaultFilename))
	if err := export.Write(w, res.View.All, res.Inputs); err != nil {
		logging.FromContext(r.Context()).Warn().Ctx(r.Context()).
			Str("operation", "export").
			Err(err).
			Msg("export write failed")
	}
}

// ExportJSON returns the JSON export document.
func (h *Handlers) ExportJSON(w http.ResponseWriter, r *http.Request) {
	res, ok := h.evaluateAll(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, export.NewDocument(res))
}

func (h *Handlers) evaluateAll(w http.ResponseWriter, r *http.Request) (engine.Result, bool) {
	in, err := parseInputs(r.URL.Query(), h.defaults)
	if err != nil {
		badRequest(w, err)
		return engine.Result{}, false
	}
	q, err := parseQuery(r.URL.Query(), 0)
	if err != nil {
		badRequest(w, err)
		return engine.Result{}, false
	}
	q.Offset, q.Limit = 0, 0
	return h.holder.Session().Evaluate(r.Context(), in, q), true
}

// SensitivityResponse is the body of GET /api/v1/sensitivity.
type SensitivityResponse struct {
	Inputs     engine.DesignInputs        `json:"inputs"`
	Distances  []float64                  `json:"distances_km"`
	Series     []engine.SensitivitySeries `json:"series"`
	Crossovers []engine.Crossover         `json:"crossovers"`
}

// Sensitivity returns element totals over a range of haul distances for the
// chosen materials, or for the lowest-total rows when ids is absent, with the
// break-even distances between them.
func (h *Handlers) Sensitivity(w http.ResponseWriter, r *http.Request) {
	v := r.URL.Query()
	in, err := parseInputs(v, h.defaults)
	if err != nil {
		badRequest(w, err)
		return
	}
	q, err := parseQuery(v, 0)
	if err != nil {
		badRequest(w, err)
		return
	}
	q.Offset, q.Limit = 0, 0

	maxKm := engine.DefaultSensitivityMaxKm
	if s := v.Get("max_km"); s != "" {
		if maxKm, err = parseNonNegative("max_km", s); err != nil {
			badRequest(w, err)
			return
		}
	}
	var stepKm float64
	if s := v.Get("step_km"); s != "" {
		if stepKm, err = parseNonNegative("step_km", s); err != nil {
			badRequest(w, err)
			return
		}
	}

	res := h.holder.Session().Evaluate(r.Context(), in, q)
	rows := engine.SensitivityRows(res.View.All, parseIDs(v))
	series := engine.Sensitivity(rows, res.Inputs, maxKm, stepKm)
	crossovers := engine.Crossovers(series, maxKm)
	if crossovers == nil {
		crossovers = []engine.Crossover{}
	}
	writeJSON(w, http.StatusOK, SensitivityResponse{
		Inputs:     res.Inputs,
		Distances:  engine.SensitivityDistances(maxKm, stepKm),
		Series:     series,
		Crossovers: crossovers,
	})
}

// CompareResponse is the body of GET /api/v1/compare.
type CompareResponse struct {
	IDs         []string            `json:"ids"`
	Baseline    *engine.Baseline    `json:"baseline,omitempty"`
	Comparisons []engine.Comparison `json:"comparisons"`
}

// Compare returns up to three materials side by side.
func (h *Handlers) Compare(w http.ResponseWriter, r *http.Request) {
	v := r.URL.Query()
	ids := parseIDs(v)
	if len(ids) == 0 {
		badRequest(w, errors.New("ids is required (comma-separated material IDs)"))
		return
	}
	in, err := parseInputs(v, h.defaults)
	if err != nil {
		badRequest(w, err)
		return
	}

	s := h.holder.Session()
	rows := s.Recompute(r.Context(), in)
	set := engine.NewCompareSet(ids...)
	b, ok := s.Baseline()

	resp := CompareResponse{IDs: set.IDs(), Comparisons: engine.SideBySide(rows, set, b)}
	if ok {
		resp.Baseline = &b
	}
	writeJSON(w, http.StatusOK, resp)
}

// Savings expresses the element-level saving of one material against the
// baseline as everyday equivalencies.
func (h *Handlers) Savings(w http.ResponseWriter, r *http.Request) {
	v := r.URL.Query()
	id := v.Get("id")
	if id == "" {
		badRequest(w, errors.New("id is required"))
		return
	}
	in, err := parseInputs(v, h.defaults)
	if err != nil {
		badRequest(w, err)
		return
	}

	s := h.holder.Session()
	b, _ := s.Baseline()
	savings, err := greenops.SavingsVsBaseline(s.Recompute(r.Context(), in), b, id)
	switch {
	case errors.Is(err, greenops.ErrNoBaseline):
		writeError(w, http.StatusUnprocessableEntity, err)
	case errors.Is(err, greenops.ErrUnknownMaterial):
		writeError(w, http.StatusNotFound, err)
	case err != nil:
		writeError(w, http.StatusInternalServerError, err)
	default:
		writeJSON(w, http.StatusOK, savings)
	}
}

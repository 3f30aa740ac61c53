package engine

import (
	"context"
	"time"

	"github.com/rshade/binderlca/internal/catalog"
	"github.com/rshade/binderlca/internal/logging"
)

// Session pairs a catalog snapshot with the baseline chosen from it. The
// baseline is selected once; every recomputation rebuilds all rows from
// scratch, so a Session is safe to share between goroutines.
type Session struct {
	catalog     *catalog.Catalog
	materials   []catalog.Material
	baseline    Baseline
	hasBaseline bool
	createdAt   time.Time
}

// Result is one full computation pass.
type Result struct {
	Inputs      DesignInputs `json:"inputs"`
	Baseline    Baseline     `json:"baseline"`
	HasBaseline bool         `json:"has_baseline"`
	View        View         `json:"view"`
}

// NewSession snapshots cat and selects its baseline.
func NewSession(cat *catalog.Catalog) *Session {
	materials := cat.Materials()
	baseline, ok := SelectBaseline(materials)
	return &Session{
		catalog:     cat,
		materials:   materials,
		baseline:    baseline,
		hasBaseline: ok,
		createdAt:   time.Now(),
	}
}

// Catalog returns the catalog the session was built from.
func (s *Session) Catalog() *catalog.Catalog {
	return s.catalog
}

// Baseline returns the catalog-wide baseline and whether one exists.
func (s *Session) Baseline() (Baseline, bool) {
	return s.baseline, s.hasBaseline
}

// CreatedAt returns when the session was built.
func (s *Session) CreatedAt() time.Time {
	return s.createdAt
}

// Recompute builds the rows for every material under in, in catalog order.
func (s *Session) Recompute(ctx context.Context, in DesignInputs) []Row {
	start := time.Now()
	in = in.Normalized()
	rows := ComputeRows(s.materials, in, s.baseline)

	compatible := 0
	for _, r := range rows {
		if r.ExposureCompatible {
			compatible++
		}
	}

	log := logging.FromContext(ctx)
	log.Debug().
		Ctx(ctx).
		Str("component", "engine").
		Str("operation", "recompute").
		Str("baseline_id", s.baseline.MaterialID).
		Str("policy", string(in.Policy)).
		Int("rows", len(rows)).
		Int("compatible", compatible).
		Dur("duration_ms", time.Since(start)).
		Msg("rows recomputed")

	return rows
}

// Evaluate recomputes the rows and runs q over them.
func (s *Session) Evaluate(ctx context.Context, in DesignInputs, q Query) Result {
	in = in.Normalized()
	return Result{
		Inputs:      in,
		Baseline:    s.baseline,
		HasBaseline: s.hasBaseline,
		View:        Run(s.Recompute(ctx, in), q),
	}
}

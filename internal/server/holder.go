package server

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rshade/binderlca/internal/catalog"
	"github.com/rshade/binderlca/internal/engine"
	"github.com/rshade/binderlca/internal/logging"
)

// Holder owns the session requests compute from. Reload swaps in a new
// session built from a fresh catalog; requests already running keep the
// snapshot they started with.
type Holder struct {
	paths   []string
	session atomic.Pointer[engine.Session]
	reloads atomic.Int64
}

// NewHolder wraps an initial session. paths are the catalog files Reload reads;
// empty means the embedded catalog.
func NewHolder(s *engine.Session, paths []string) *Holder {
	h := &Holder{paths: append([]string(nil), paths...)}
	h.session.Store(s)
	return h
}

// Session returns the current snapshot.
func (h *Holder) Session() *engine.Session {
	return h.session.Load()
}

// Reloads returns how many reloads have succeeded.
func (h *Holder) Reloads() int64 {
	return h.reloads.Load()
}

// Reload rebuilds the session from the catalog files. On failure the previous
// session stays in place and the error is returned.
func (h *Holder) Reload(ctx context.Context) error {
	start := time.Now()
	log := logging.FromContext(ctx)

	cat, report, err := catalog.Load(ctx, h.paths...)
	if err != nil {
		log.Error().Ctx(ctx).
			Str("component", "server").
			Str("operation", "reload").
			Err(err).
			Msg("catalog reload failed, keeping previous catalog")
		return fmt.Errorf("reloading catalog: %w", err)
	}

	next := engine.NewSession(cat)
	h.session.Store(next)
	h.reloads.Add(1)

	baseline, _ := next.Baseline()
	log.Info().Ctx(ctx).
		Str("component", "server").
		Str("operation", "reload").
		Int("materials", report.Loaded).
		Int("dropped", report.Dropped).
		Str("baseline_id", baseline.MaterialID).
		Dur("duration_ms", time.Since(start)).
		Msg("catalog reloaded")
	return nil
}

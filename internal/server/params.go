package server

import (
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rshade/binderlca/internal/engine"
)

// Upper bounds on numeric query parameters.
const (
	maxLimit      = 10000
	maxDistanceKm = 100000.0
)

// parseInputs overlays the design parameters of the query string on defaults.
// Absent parameters keep their default.
func parseInputs(v url.Values, defaults engine.DesignInputs) (engine.DesignInputs, error) {
	in := defaults
	var err error

	if s := v.Get("volume"); s != "" {
		if in.VolumeM3, err = parseNonNegative("volume", s); err != nil {
			return in, err
		}
	}
	if s := v.Get("distance"); s != "" {
		if in.DistanceKm, err = parseNonNegative("distance", s); err != nil {
			return in, err
		}
	}
	if s := v.Get("a4"); s != "" {
		if in.IncludeA4, err = strconv.ParseBool(s); err != nil {
			return in, fmt.Errorf("invalid a4 %q (want true or false)", s)
		}
	}
	if s := strings.TrimSpace(v.Get("exposure")); s != "" {
		in.ExposureClass = s
	}
	policy := v.Get("policy")
	if policy == "" {
		policy = v.Get("dosage_mode")
	}
	if policy != "" {
		if in.Policy, err = engine.ParsePolicy(policy); err != nil {
			return in, err
		}
	}
	if s := v.Get("dosage"); s != "" {
		if in.GlobalDosage, err = parseNonNegative("dosage", s); err != nil {
			return in, err
		}
	}
	if s := strings.TrimSpace(v.Get("strength")); s != "" {
		if _, ok := engine.StrengthDosage(s); !ok {
			return in, fmt.Errorf("unknown concrete strength %q (want one of %s)",
				s, strings.Join(engine.StrengthClasses(), ", "))
		}
		in.ConcreteStrength = s
	}
	for _, o := range v["override"] {
		id, kg, oerr := engine.ParseOverride(o)
		if oerr != nil {
			return in, oerr
		}
		in = in.WithOverride(id, kg)
	}
	return in.Normalized(), nil
}

// parseQuery reads scope, search, sort, paging. sort accepts "field" or
// "field:order"; a separate dir parameter wins over the suffix.
func parseQuery(v url.Values, pageSize int) (engine.Query, error) {
	q := engine.DefaultQuery()
	q.Limit = pageSize

	var err error
	if q.Scope, err = engine.ParseScope(v.Get("scope")); err != nil {
		return q, err
	}
	q.Search = strings.TrimSpace(v.Get("q"))

	if s := strings.TrimSpace(v.Get("sort")); s != "" {
		field, order, hasOrder := strings.Cut(s, ":")
		if q.Sort, err = engine.ParseSortKey(field); err != nil {
			return q, err
		}
		q.Dir = engine.Asc
		if q.Sort == engine.SortReduction {
			q.Dir = engine.Desc
		}
		if hasOrder {
			if q.Dir, err = engine.ParseSortDir(order); err != nil {
				return q, err
			}
		}
	}
	if s := v.Get("dir"); s != "" {
		if q.Dir, err = engine.ParseSortDir(s); err != nil {
			return q, err
		}
	}

	if s := v.Get("limit"); s != "" {
		if q.Limit, err = parseBoundedInt("limit", s, maxLimit); err != nil {
			return q, err
		}
	}
	if s := v.Get("offset"); s != "" {
		if q.Offset, err = parseBoundedInt("offset", s, math.MaxInt32); err != nil {
			return q, err
		}
	}
	return q, nil
}

// parseIDs collects ids from repeated and comma-separated "ids" parameters.
func parseIDs(v url.Values) []string {
	var ids []string
	for _, raw := range v["ids"] {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
	}
	return ids
}

func parseNonNegative(name, s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0, fmt.Errorf("invalid %s %q (want a number >= 0)", name, s)
	}
	if name == "distance" && f > maxDistanceKm {
		return 0, fmt.Errorf("invalid %s %q (max %.0f)", name, s, maxDistanceKm)
	}
	return f, nil
}

func parseBoundedInt(name, s string, upper int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 || n > upper {
		return 0, fmt.Errorf("invalid %s %q (want 0..%d)", name, s, upper)
	}
	return n, nil
}

// badRequest writes err as a 400 JSON error.
func badRequest(w http.ResponseWriter, err error) {
	writeError(w, http.StatusBadRequest, err)
}

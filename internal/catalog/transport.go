package catalog

import "fmt"

// TransportKind tells which transport emission factor a material declares.
type TransportKind int

const (
	// TransportNone means no transport factor is known; A4 is zero for the material.
	TransportNone TransportKind = iota
	// TransportPerKgKm is a mass-based factor in kg CO2e per kg binder per km.
	TransportPerKgKm
	// TransportPerM3Km is the legacy volumetric factor in kg CO2e per m3 concrete per km.
	TransportPerM3Km
)

// String implements fmt.Stringer.
func (k TransportKind) String() string {
	switch k {
	case TransportNone:
		return "none"
	case TransportPerKgKm:
		return "per_kg_km"
	case TransportPerM3Km:
		return "per_m3_km"
	default:
		return fmt.Sprintf("TransportKind(%d)", int(k))
	}
}

// Transport is the transport emission factor of a material, resolved once at load time.
// The zero value is TransportNone.
type Transport struct {
	kind   TransportKind
	factor float64
}

// PerKgKm returns a mass-based transport factor.
func PerKgKm(factor float64) Transport {
	return Transport{kind: TransportPerKgKm, factor: factor}
}

// PerM3Km returns a legacy volumetric transport factor.
func PerM3Km(factor float64) Transport {
	return Transport{kind: TransportPerM3Km, factor: factor}
}

// NoTransport returns the empty transport variant.
func NoTransport() Transport {
	return Transport{}
}

// Kind returns which variant is set.
func (t Transport) Kind() TransportKind {
	return t.kind
}

// Factor returns the factor value; it is 0 for TransportNone.
func (t Transport) Factor() float64 {
	return t.factor
}

// String implements fmt.Stringer.
func (t Transport) String() string {
	if t.kind == TransportNone {
		return "none"
	}
	return fmt.Sprintf("%s=%g", t.kind, t.factor)
}

// resolveTransport picks the mass-based factor when it is usable, then the legacy one.
func resolveTransport(perKgKm, perM3Km *float64) Transport {
	if perKgKm != nil && isUsable(*perKgKm) {
		return PerKgKm(*perKgKm)
	}
	if perM3Km != nil && isUsable(*perM3Km) {
		return PerM3Km(*perM3Km)
	}
	return NoTransport()
}

// MarshalJSON renders the variant as {"kind": ..., "factor": ...}.
func (t Transport) MarshalJSON() ([]byte, error) {
	factor := t.factor
	if !isUsable(factor) {
		factor = 0
	}
	return []byte(fmt.Sprintf(`{"kind":%q,"factor":%g}`, t.kind.String(), factor)), nil
}

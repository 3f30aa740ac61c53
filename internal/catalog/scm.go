package catalog

import (
	"fmt"
	"strings"
)

// SCMType is a supplementary cementitious material code.
type SCMType int

const (
	// SCMSlag is ground granulated blast-furnace slag (EN 197-1 code S).
	SCMSlag SCMType = iota
	// SCMFlyAsh is siliceous fly ash (code V).
	SCMFlyAsh
	// SCMPozzolana is natural pozzolana (code P).
	SCMPozzolana
	// SCMLimestone is limestone filler (code LL).
	SCMLimestone
	// SCMCalcinedClay is calcined clay as used in LC3 binders (code CC).
	SCMCalcinedClay
	// SCMOther is any code the catalog uses that is not listed above.
	SCMOther
)

// AllSCMTypes lists the known types in tag order.
//
//nolint:gochecknoglobals // Fixed lookup order.
var AllSCMTypes = []SCMType{SCMSlag, SCMFlyAsh, SCMPozzolana, SCMLimestone, SCMCalcinedClay, SCMOther}

// ParseSCMType maps a catalog code to an SCMType. Matching is case-insensitive.
// Unknown codes return SCMOther and false.
func ParseSCMType(code string) (SCMType, bool) {
	switch strings.ToUpper(strings.TrimSpace(code)) {
	case "S":
		return SCMSlag, true
	case "V":
		return SCMFlyAsh, true
	case "P":
		return SCMPozzolana, true
	case "LL":
		return SCMLimestone, true
	case "CC":
		return SCMCalcinedClay, true
	default:
		return SCMOther, false
	}
}

// Code returns the catalog code for the type.
func (t SCMType) Code() string {
	switch t {
	case SCMSlag:
		return "S"
	case SCMFlyAsh:
		return "V"
	case SCMPozzolana:
		return "P"
	case SCMLimestone:
		return "LL"
	case SCMCalcinedClay:
		return "CC"
	case SCMOther:
		return "X"
	default:
		return fmt.Sprintf("SCMType(%d)", int(t))
	}
}

// Label returns the short display tag for the type.
func (t SCMType) Label() string {
	switch t {
	case SCMSlag:
		return "Slag"
	case SCMFlyAsh:
		return "FlyAsh"
	case SCMPozzolana:
		return "Pozzolana"
	case SCMLimestone:
		return "Limestone"
	case SCMCalcinedClay:
		return "CalcinedClay"
	case SCMOther:
		return "Other"
	default:
		return fmt.Sprintf("SCMType(%d)", int(t))
	}
}

// String implements fmt.Stringer.
func (t SCMType) String() string {
	return t.Label()
}

// MarshalText renders the type as its display label.
func (t SCMType) MarshalText() ([]byte, error) {
	return []byte(t.Label()), nil
}

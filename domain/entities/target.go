package entities

import "strings"

// TargetFamily is the architecture family token every amdgcn target carries.
const TargetFamily = "gfx"

// TargetIdentifier names the accelerator architecture, e.g. "gfx906" or
// "gfx1100". It is derived once from the build configuration.
type TargetIdentifier string

// Generation classifies the version suffix of a TargetIdentifier.
type Generation int

const (
	// GenerationOther covers suffixes that are neither numeric generations nor generic variants.
	GenerationOther Generation = iota
	// GenerationNumeric is a three character generation such as "906" or "90a".
	GenerationNumeric
	// GenerationGeneric is a "<digits>-generic" variant such as "9-generic" or "10-3-generic".
	GenerationGeneric
)

func (g Generation) String() string {
	switch g {
	case GenerationNumeric:
		return "numeric"
	case GenerationGeneric:
		return "generic"
	default:
		return "other"
	}
}

// Family returns the family prefix, or "" if the identifier does not carry one.
func (t TargetIdentifier) Family() string {
	if strings.HasPrefix(string(t), TargetFamily) {
		return TargetFamily
	}
	return ""
}

// Version returns the suffix following the family prefix ("906" for "gfx906").
func (t TargetIdentifier) Version() string {
	return strings.TrimPrefix(string(t), TargetFamily)
}

// Generation classifies the version suffix.
func (t TargetIdentifier) Generation() Generation {
	v := t.Version()
	if v == "" || !isDigit(v[0]) {
		return GenerationOther
	}
	switch {
	case strings.HasSuffix(v, "-generic"):
		return GenerationGeneric
	case len(v) == 3:
		return GenerationNumeric
	default:
		return GenerationOther
	}
}

// Is9xx reports whether the suffix is a three character generation starting with "9".
// Those parts only ran in wave64 mode.
func (t TargetIdentifier) Is9xx() bool {
	v := t.Version()
	return len(v) == 3 && v[0] == '9'
}

// Is9Generic reports whether the target is one of the "9-...-generic" variants.
func (t TargetIdentifier) Is9Generic() bool {
	v := t.Version()
	return strings.HasPrefix(v, "9-") && strings.HasSuffix(v, "-generic")
}

func (t TargetIdentifier) String() string {
	return string(t)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

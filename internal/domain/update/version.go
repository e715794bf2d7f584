package update

import (
	"strconv"
	"strings"
)

// Version is an ordered tuple of numeric components parsed from a dotted
// string such as "114.0.5735.199". A Version that could not be parsed is
// invalid and orders strictly below every valid Version, which is what
// lets a first-time install proceed on hosts where the product is absent.
// Immutable once parsed.
type Version struct {
	raw   string
	parts []int
	valid bool
}

// ParseVersion parses a dotted numeric string into a Version.
// Malformed or empty input yields an invalid Version, never an error:
// an unreadable installed version means "not installed", not a failure.
func ParseVersion(s string) Version {
	s = strings.TrimSpace(s)
	if s == "" {
		return Version{}
	}

	components := strings.Split(s, ".")
	parts := make([]int, 0, len(components))

	for _, component := range components {
		n, err := strconv.Atoi(component)
		if err != nil || n < 0 {
			return Version{raw: s}
		}

		parts = append(parts, n)
	}

	return Version{raw: s, parts: parts, valid: true}
}

// Valid reports whether the version was parsed successfully.
func (v Version) Valid() bool {
	return v.valid
}

// String returns the original dotted string, or "" for an invalid version.
func (v Version) String() string {
	if !v.valid {
		return ""
	}

	return v.raw
}

// Compare orders two versions, returning -1, 0 or +1.
// Components are compared numerically from the left; missing trailing
// components count as zero, so "114.0" equals "114.0.0.0".
// An invalid version is less than any valid one and equal to another
// invalid one.
func (v Version) Compare(other Version) int {
	switch {
	case !v.valid && !other.valid:
		return 0
	case !v.valid:
		return -1
	case !other.valid:
		return 1
	}

	length := len(v.parts)
	if len(other.parts) > length {
		length = len(other.parts)
	}

	for i := 0; i < length; i++ {
		a, b := v.component(i), other.component(i)
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		}
	}

	return 0
}

// Equal reports whether both versions order the same.
func (v Version) Equal(other Version) bool {
	return v.Compare(other) == 0
}

// component returns the i-th numeric component, zero when absent.
func (v Version) component(i int) int {
	if i >= len(v.parts) {
		return 0
	}

	return v.parts[i]
}

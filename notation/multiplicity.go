package notation

import "github.com/teranos/xcore/ecore"

// OneOrMore is the reserved single-element encoding of 1..*.
const OneOrMore = -2

// Multiplicity is the compact encoding of a lower/upper bound pair:
//
//	0..*  []
//	0..1  nil (omitted)
//	0..N  [0, N]
//	L..L  [L]
//	1..*  [-2]
//	1..N  [1, N]
//	L..U  [L, U]
//
// nil and an empty non-nil slice are different values.
type Multiplicity []int

// Bounds is the expanded form of a multiplicity plus its collection flags.
type Bounds struct {
	Lower   int
	Upper   int
	Ordered bool
	Unique  bool
}

// Encoded is the compact form of Bounds.
type Encoded struct {
	Multiplicity Multiplicity
	Unordered    bool
	Unique       bool
}

// EncodeBounds returns the compact form of b.
func EncodeBounds(b Bounds) Encoded {
	return Encoded{
		Multiplicity: encodeMultiplicity(b.Lower, b.Upper),
		Unordered:    !b.Ordered,
		Unique:       b.Unique,
	}
}

// DecodeBounds is the inverse of EncodeBounds.
func DecodeBounds(e Encoded) Bounds {
	lower, upper := e.Multiplicity.Bounds()
	return Bounds{Lower: lower, Upper: upper, Ordered: !e.Unordered, Unique: e.Unique}
}

func encodeMultiplicity(lower, upper int) Multiplicity {
	switch {
	case lower == 0 && upper == ecore.Unbounded:
		return Multiplicity{}
	case lower == 0 && upper == 1:
		return nil
	case lower == 1 && upper == ecore.Unbounded:
		return Multiplicity{OneOrMore}
	case lower == upper && lower > 0:
		return Multiplicity{lower}
	}
	return Multiplicity{lower, upper}
}

// Bounds returns the lower and upper bound m encodes.
func (m Multiplicity) Bounds() (lower, upper int) {
	switch {
	case m == nil:
		return 0, 1
	case len(m) == 0:
		return 0, ecore.Unbounded
	case len(m) == 1 && m[0] == OneOrMore:
		return 1, ecore.Unbounded
	case len(m) == 1:
		return m[0], m[0]
	}
	return m[0], m[1]
}

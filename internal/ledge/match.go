package ledge

import (
	gomath "math"

	"github.com/Faultbox/ledgefinder/pkg/math"
)

// PointKey identifies a position for endpoint matching.
type PointKey struct {
	X, Y, Z float64
}

// Matcher decides when two positions are the same endpoint.
//
// The zero Matcher uses exact equality. A positive Tolerance snaps every
// component to a grid of that spacing before comparing, which welds
// near-duplicate vertices; two points closer than Tolerance can still land
// in neighbouring cells, so it is not a true distance test.
type Matcher struct {
	Tolerance float32
}

// Key returns the matching key for p.
func (m Matcher) Key(p math.Vec3) PointKey {
	if m.Tolerance <= 0 {
		return PointKey{float64(p.X), float64(p.Y), float64(p.Z)}
	}
	t := float64(m.Tolerance)
	return PointKey{
		gomath.Round(float64(p.X) / t),
		gomath.Round(float64(p.Y) / t),
		gomath.Round(float64(p.Z) / t),
	}
}

// Equal reports whether a and b match.
func (m Matcher) Equal(a, b math.Vec3) bool {
	return m.Key(a) == m.Key(b)
}

func (k PointKey) less(o PointKey) bool {
	if k.X != o.X {
		return k.X < o.X
	}
	if k.Y != o.Y {
		return k.Y < o.Y
	}
	return k.Z < o.Z
}

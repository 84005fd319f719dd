package ledge

import (
	"encoding/hex"
	"fmt"
	"strings"

	"go.uber.org/multierr"

	"github.com/Faultbox/ledgefinder/pkg/math"
)

// Color is a vertex color tag. Colors are compared exactly, so colors from
// different sources should be passed through Quantize first.
type Color struct {
	R, G, B, A float32
}

// Quantize snaps every channel to the nearest 8-bit step, the same values
// ParseColor produces. Colors that print the same with String are equal
// after Quantize.
func (c Color) Quantize() Color {
	return Color{
		R: float32(channel(c.R)) / 255,
		G: float32(channel(c.G)) / 255,
		B: float32(channel(c.B)) / 255,
		A: float32(channel(c.A)) / 255,
	}
}

// White is the default unmarked sentinel color.
var White = Color{1, 1, 1, 1}

// String returns the color as #RRGGBB, or #RRGGBBAA when not opaque.
func (c Color) String() string {
	s := fmt.Sprintf("#%02X%02X%02X", channel(c.R), channel(c.G), channel(c.B))
	if c.A != 1 {
		s += fmt.Sprintf("%02X", channel(c.A))
	}
	return s
}

func channel(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	default:
		return uint8(v*255 + 0.5)
	}
}

// ParseColor parses #RRGGBB or #RRGGBBAA (the leading # is optional).
func ParseColor(s string) (Color, error) {
	raw, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(s), "#"))
	if err != nil || (len(raw) != 3 && len(raw) != 4) {
		return Color{}, fmt.Errorf("invalid color %q: want #RRGGBB or #RRGGBBAA", s)
	}
	c := Color{
		R: float32(raw[0]) / 255,
		G: float32(raw[1]) / 255,
		B: float32(raw[2]) / 255,
		A: 1,
	}
	if len(raw) == 4 {
		c.A = float32(raw[3]) / 255
	}
	return c, nil
}

// Mesh is the raw input: positions, parallel vertex colors, and a flat
// triangle index buffer. Colors may be empty, in which case the mesh
// carries no markup.
type Mesh struct {
	Positions []math.Vec3
	Colors    []Color
	Triangles []int
}

// TriangleCount returns the number of complete triangles.
func (m Mesh) TriangleCount() int {
	return len(m.Triangles) / 3
}

// Validate checks the index buffer and color array against the vertex
// count. All problems are reported together, each wrapping ErrInvalidMesh.
func (m Mesh) Validate() error {
	var err error
	if len(m.Triangles)%3 != 0 {
		err = multierr.Append(err, fmt.Errorf("%w: index count %d is not a multiple of 3", ErrInvalidMesh, len(m.Triangles)))
	}
	if len(m.Colors) != 0 && len(m.Colors) != len(m.Positions) {
		err = multierr.Append(err, fmt.Errorf("%w: %d colors for %d vertices", ErrInvalidMesh, len(m.Colors), len(m.Positions)))
	}

	bad, first := 0, -1
	for i, idx := range m.Triangles {
		if idx < 0 || idx >= len(m.Positions) {
			if bad == 0 {
				first = i
			}
			bad++
		}
	}
	if bad > 0 {
		err = multierr.Append(err, fmt.Errorf("%w: %d indices out of range [0,%d), first at %d (%d)",
			ErrInvalidMesh, bad, len(m.Positions), first, m.Triangles[first]))
	}
	return err
}

// Transformed returns a copy of the mesh with every position mapped
// through t. Colors and triangles are shared with the receiver.
func (m Mesh) Transformed(t math.Mat4) Mesh {
	out := Mesh{
		Positions: make([]math.Vec3, len(m.Positions)),
		Colors:    m.Colors,
		Triangles: m.Triangles,
	}
	for i, p := range m.Positions {
		out.Positions[i] = t.TransformPoint(p)
	}
	return out
}

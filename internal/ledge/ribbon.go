package ledge

import (
	"fmt"

	"github.com/Faultbox/ledgefinder/pkg/math"
)

// RibbonMesh is a collision-only quad strip: no normals, no UVs.
type RibbonMesh struct {
	Vertices []math.Vec3
	Indices  []uint32
}

// QuadCount returns the number of quads in the strip.
func (r RibbonMesh) QuadCount() int {
	return len(r.Vertices) / 4
}

// Empty reports whether the ribbon has no geometry.
func (r RibbonMesh) Empty() bool {
	return len(r.Vertices) == 0
}

// BuildRibbon emits one quad per consecutive point pair. Quad i uses the
// vertices top[i], top[i+1], bottom[i], bottom[i+1] and the triangles
// (0,1,2) and (1,3,2). Vertices are not shared between quads, so K points
// give exactly 4(K-1) vertices and 6(K-1) indices.
func BuildRibbon(top, bottom []math.Vec3) (RibbonMesh, error) {
	if len(top) != len(bottom) {
		return RibbonMesh{}, fmt.Errorf("%w: %d top, %d bottom", ErrRibbonMismatch, len(top), len(bottom))
	}
	if len(top) < 2 {
		return RibbonMesh{}, fmt.Errorf("%w: got %d", ErrRibbonTooShort, len(top))
	}

	quads := len(top) - 1
	mesh := RibbonMesh{
		Vertices: make([]math.Vec3, 0, 4*quads),
		Indices:  make([]uint32, 0, 6*quads),
	}
	for i := 0; i < quads; i++ {
		base := uint32(len(mesh.Vertices))
		mesh.Vertices = append(mesh.Vertices, top[i], top[i+1], bottom[i], bottom[i+1])
		mesh.Indices = append(mesh.Indices,
			base, base+1, base+2,
			base+1, base+3, base+2,
		)
	}
	return mesh, nil
}

// OffsetPoints moves every point by height against normal, producing the
// bottom row of a ribbon whose top row is points.
func OffsetPoints(points []math.Vec3, normal math.Vec3, height float32) []math.Vec3 {
	d := normal.Normalize().Scale(height)
	out := make([]math.Vec3, len(points))
	for i, p := range points {
		out[i] = p.Sub(d)
	}
	return out
}

// OffsetAlong is OffsetPoints with a separate normal per point, such as the
// normal samples of a fitted curve.
func OffsetAlong(points, normals []math.Vec3, height float32) ([]math.Vec3, error) {
	if len(points) != len(normals) {
		return nil, fmt.Errorf("offset: %d points, %d normals", len(points), len(normals))
	}
	out := make([]math.Vec3, len(points))
	for i, p := range points {
		out[i] = p.Sub(normals[i].Normalize().Scale(height))
	}
	return out, nil
}

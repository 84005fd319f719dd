package ledge

import "github.com/Faultbox/ledgefinder/pkg/math"

var (
	red   = Color{1, 0, 0, 1}
	green = Color{0, 1, 0, 1}
	blue  = Color{0, 0, 1, 1}
)

// quadMesh is a unit quad in the XZ plane at origin, two triangles.
func quadMesh(origin math.Vec3, c Color) Mesh {
	return Mesh{
		Positions: []math.Vec3{
			origin,
			origin.Add(math.Vec3{X: 1}),
			origin.Add(math.Vec3{X: 1, Z: 1}),
			origin.Add(math.Vec3{Z: 1}),
		},
		Colors:    []Color{c, c, c, c},
		Triangles: []int{0, 1, 2, 0, 2, 3},
	}
}

// merge concatenates meshes, rebasing triangle indices.
func merge(meshes ...Mesh) Mesh {
	var out Mesh
	for _, m := range meshes {
		base := len(out.Positions)
		out.Positions = append(out.Positions, m.Positions...)
		out.Colors = append(out.Colors, m.Colors...)
		for _, idx := range m.Triangles {
			out.Triangles = append(out.Triangles, base+idx)
		}
	}
	return out
}

// gridMesh is an n x n grid of quads with (n+1)^2 shared vertices.
func gridMesh(n int, c Color) Mesh {
	var m Mesh
	for z := 0; z <= n; z++ {
		for x := 0; x <= n; x++ {
			m.Positions = append(m.Positions, math.Vec3{X: float32(x), Z: float32(z)})
			m.Colors = append(m.Colors, c)
		}
	}
	row := n + 1
	for z := 0; z < n; z++ {
		for x := 0; x < n; x++ {
			i := z*row + x
			m.Triangles = append(m.Triangles,
				i, i+1, i+row+1,
				i, i+row+1, i+row,
			)
		}
	}
	return m
}

// tetrahedron is a closed manifold surface.
func tetrahedron() Mesh {
	return Mesh{
		Positions: []math.Vec3{{}, {X: 1}, {Y: 1}, {Z: 1}},
		Colors:    []Color{red, red, red, red},
		Triangles: []int{
			0, 2, 1,
			0, 1, 3,
			0, 3, 2,
			1, 2, 3,
		},
	}
}

// linePositions returns n points along +X.
func linePositions(n int) []math.Vec3 {
	out := make([]math.Vec3, n)
	for i := range out {
		out[i] = math.Vec3{X: float32(i)}
	}
	return out
}

// segmentSet returns the unordered position pairs of edges.
func segmentSet(edges []Edge, positions []math.Vec3) map[[2]math.Vec3]int {
	set := make(map[[2]math.Vec3]int)
	for _, e := range edges {
		set[orderedPair(positions[e.V1], positions[e.V2])]++
	}
	return set
}

func orderedPair(a, b math.Vec3) [2]math.Vec3 {
	ka, kb := Matcher{}.Key(a), Matcher{}.Key(b)
	if kb.less(ka) {
		return [2]math.Vec3{b, a}
	}
	return [2]math.Vec3{a, b}
}

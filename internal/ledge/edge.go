package ledge

// Edge is an unordered pair of vertex indices.
type Edge struct {
	V1, V2 int
}

// Canonical returns the edge with the lower index first.
func (e Edge) Canonical() Edge {
	if e.V2 < e.V1 {
		return Edge{e.V2, e.V1}
	}
	return e
}

// FindBoundaryEdges returns the edges that belong to exactly one triangle,
// in the order they were first seen. Edges are returned in canonical form.
//
// Each edge's uniqueness flag is toggled on: the first sighting marks it
// unique and any later sighting clears it. That is correct for manifold
// meshes (one or two triangles per edge) only; a trailing partial triangle
// is ignored.
func FindBoundaryEdges(triangles []int) []Edge {
	unique := make(map[Edge]bool, len(triangles))
	order := make([]Edge, 0, len(triangles))

	see := func(a, b int) {
		e := Edge{a, b}.Canonical()
		if _, ok := unique[e]; ok {
			unique[e] = false
			return
		}
		unique[e] = true
		order = append(order, e)
	}

	for i := 0; i+2 < len(triangles); i += 3 {
		t0, t1, t2 := triangles[i], triangles[i+1], triangles[i+2]
		see(t0, t1)
		see(t1, t2)
		see(t2, t0)
	}

	var boundary []Edge
	for _, e := range order {
		if unique[e] {
			boundary = append(boundary, e)
		}
	}
	return boundary
}

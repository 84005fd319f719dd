package ledge

import (
	"testing"
)

func TestEdgeCanonical(t *testing.T) {
	if got := (Edge{5, 2}).Canonical(); got != (Edge{2, 5}) {
		t.Errorf("Canonical() = %v, want {2 5}", got)
	}
	if got := (Edge{2, 5}).Canonical(); got != (Edge{2, 5}) {
		t.Errorf("Canonical() = %v, want {2 5}", got)
	}
}

func TestFindBoundaryEdges_ClosedMesh(t *testing.T) {
	edges := FindBoundaryEdges(tetrahedron().Triangles)
	if len(edges) != 0 {
		t.Errorf("closed mesh should have no boundary, got %v", edges)
	}
}

func TestFindBoundaryEdges_Quad(t *testing.T) {
	edges := FindBoundaryEdges(quadMesh(zeroVec, red).Triangles)

	want := []Edge{{0, 1}, {1, 2}, {2, 3}, {0, 3}}
	if len(edges) != len(want) {
		t.Fatalf("expected %d edges, got %d: %v", len(want), len(edges), edges)
	}
	for i := range want {
		if edges[i] != want[i] {
			t.Errorf("edge %d = %v, want %v", i, edges[i], want[i])
		}
	}
}

func TestFindBoundaryEdges_GridPerimeter(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{1, 4},
		{2, 8},
		{5, 20},
	}

	for _, tt := range tests {
		m := gridMesh(tt.n, red)
		edges := FindBoundaryEdges(m.Triangles)
		if len(edges) != tt.want {
			t.Errorf("grid %d: expected %d boundary edges, got %d", tt.n, tt.want, len(edges))
		}

		seen := make(map[Edge]bool)
		for _, e := range edges {
			if seen[e] {
				t.Errorf("grid %d: edge %v returned twice", tt.n, e)
			}
			seen[e] = true

			// Every boundary vertex lies on the outer rim of the grid.
			for _, v := range []int{e.V1, e.V2} {
				p := m.Positions[v]
				onRim := p.X == 0 || p.Z == 0 || p.X == float32(tt.n) || p.Z == float32(tt.n)
				if !onRim {
					t.Errorf("grid %d: interior vertex %v on boundary edge %v", tt.n, p, e)
				}
			}
		}
	}
}

func TestFindBoundaryEdges_IgnoresPartialTriangle(t *testing.T) {
	edges := FindBoundaryEdges([]int{0, 1, 2, 3, 4})
	if len(edges) != 3 {
		t.Errorf("expected 3 edges from the one complete triangle, got %v", edges)
	}
}

func TestFindBoundaryEdges_Deterministic(t *testing.T) {
	tris := gridMesh(4, red).Triangles
	first := FindBoundaryEdges(tris)
	for i := 0; i < 10; i++ {
		again := FindBoundaryEdges(tris)
		for j := range first {
			if first[j] != again[j] {
				t.Fatalf("run %d differs at %d: %v vs %v", i, j, again[j], first[j])
			}
		}
	}
}

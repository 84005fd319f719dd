package ledge

import (
	"testing"

	"github.com/Faultbox/ledgefinder/pkg/math"
)

func TestDeduplicate(t *testing.T) {
	// Vertices 4..7 duplicate the positions of 0..3.
	positions := []math.Vec3{
		{X: 0}, {X: 1}, {X: 2}, {X: 3},
		{X: 0}, {X: 1}, {X: 2}, {X: 3},
	}

	tests := []struct {
		name  string
		edges []Edge
		want  []Edge
	}{
		{
			name:  "distinct edges kept",
			edges: []Edge{{0, 1}, {1, 2}, {2, 3}},
			want:  []Edge{{0, 1}, {1, 2}, {2, 3}},
		},
		{
			name:  "coincident edge dropped",
			edges: []Edge{{0, 1}, {4, 5}},
			want:  []Edge{{0, 1}},
		},
		{
			name:  "reversed coincident edge dropped",
			edges: []Edge{{0, 1}, {5, 4}},
			want:  []Edge{{0, 1}},
		},
		{
			name:  "shared single endpoint kept",
			edges: []Edge{{0, 1}, {5, 2}},
			want:  []Edge{{0, 1}, {5, 2}},
		},
		{
			name:  "first occurrence wins",
			edges: []Edge{{6, 7}, {2, 3}, {0, 1}},
			want:  []Edge{{6, 7}, {0, 1}},
		},
		{
			name:  "zero length dropped",
			edges: []Edge{{0, 4}, {1, 2}},
			want:  []Edge{{1, 2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Deduplicate(tt.edges, positions, Matcher{})
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("edge %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestDeduplicate_Idempotent(t *testing.T) {
	m := merge(quadMesh(zeroVec, red), quadMesh(zeroVec, red), gridMesh(3, red))
	edges := FindBoundaryEdges(m.Triangles)

	once := Deduplicate(edges, m.Positions, Matcher{})
	twice := Deduplicate(once, m.Positions, Matcher{})
	if len(once) != len(twice) {
		t.Fatalf("second pass changed length: %d -> %d", len(once), len(twice))
	}
	for i := range once {
		if once[i] != twice[i] {
			t.Errorf("edge %d changed: %v -> %v", i, once[i], twice[i])
		}
	}
}

func TestDeduplicate_Tolerance(t *testing.T) {
	positions := []math.Vec3{{X: 0}, {X: 1}, {X: 0.0004}, {X: 1.0004}}
	edges := []Edge{{0, 1}, {2, 3}}

	if got := Deduplicate(edges, positions, Matcher{}); len(got) != 2 {
		t.Errorf("exact matching should keep both edges, got %v", got)
	}
	if got := Deduplicate(edges, positions, Matcher{Tolerance: 0.01}); len(got) != 1 {
		t.Errorf("tolerance matching should weld the edges, got %v", got)
	}
}

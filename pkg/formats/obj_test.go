package formats

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/ledgefinder/pkg/math"
)

const coloredQuad = `# unit quad, red ledge
o Ledge
v 0 0 0 1 0 0
v 1 0 0 1 0 0
v 1 0 1 1 0 0
v 0 0 1 1 0 0
vn 0 1 0
f 1//1 2//1 3//1 4//1
`

func TestParseOBJ_ColoredQuad(t *testing.T) {
	obj, err := ParseOBJ(strings.NewReader(coloredQuad))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}

	if len(obj.Positions) != 4 {
		t.Errorf("expected 4 vertices, got %d", len(obj.Positions))
	}
	if !obj.HasColors() {
		t.Fatal("expected vertex colors")
	}
	if obj.Colors[2] != [4]float32{1, 0, 0, 1} {
		t.Errorf("color 2 = %v, want red", obj.Colors[2])
	}

	want := []int{0, 1, 2, 0, 2, 3}
	if len(obj.Triangles) != len(want) {
		t.Fatalf("triangles = %v, want %v", obj.Triangles, want)
	}
	for i := range want {
		if obj.Triangles[i] != want[i] {
			t.Errorf("index %d = %d, want %d", i, obj.Triangles[i], want[i])
		}
	}
	if len(obj.Objects) != 1 || obj.Objects[0] != "Ledge" {
		t.Errorf("objects = %v", obj.Objects)
	}
}

func TestParseOBJ_MixedColorsAndNegativeIndices(t *testing.T) {
	src := `v 0 0 0
v 1 0 0 0 0 1 0.5
v 0 1 0
f -3 -2 -1
`
	obj, err := ParseOBJ(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}
	if obj.Colors[0] != [4]float32{1, 1, 1, 1} {
		t.Errorf("uncolored vertex should default to white, got %v", obj.Colors[0])
	}
	if obj.Colors[1] != [4]float32{0, 0, 1, 0.5} {
		t.Errorf("color 1 = %v", obj.Colors[1])
	}
	if len(obj.Colored) != 3 || obj.Colored[0] || !obj.Colored[1] || obj.Colored[2] {
		t.Errorf("colored flags = %v, want [false true false]", obj.Colored)
	}
	if obj.Triangles[0] != 0 || obj.Triangles[1] != 1 || obj.Triangles[2] != 2 {
		t.Errorf("triangles = %v, want [0 1 2]", obj.Triangles)
	}
}

func TestParseOBJ_NoColors(t *testing.T) {
	obj, err := ParseOBJ(strings.NewReader("v 0 0 0\nv 1 0 0\nv 0 1 0 1.0\nf 1 2 3\n"))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}
	if obj.HasColors() || obj.Colored != nil {
		t.Error("expected no colors")
	}
}

func TestParseOBJ_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"bad float", "v 0 x 0\n", ErrInvalidOBJVertex},
		{"too few components", "v 0 0\n", ErrInvalidOBJVertex},
		{"short face", "v 0 0 0\nf 1 1\n", ErrInvalidOBJFace},
		{"zero index", "v 0 0 0\nf 0 1 1\n", ErrInvalidOBJFace},
		{"index out of range", "v 0 0 0\nf 1 2 3\n", ErrInvalidOBJFace},
		{"relative before start", "v 0 0 0\nf -1 -2 -3\n", ErrInvalidOBJFace},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOBJ(strings.NewReader(tt.src))
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestWriteOBJ_RoundTrip(t *testing.T) {
	objects := []OBJObject{
		{
			Name:     "first",
			Vertices: []math.Vec3{{X: 0.1}, {X: 1, Y: -0.25}, {Z: 3}},
			Indices:  []uint32{0, 1, 2},
		},
		{
			Name:     "second",
			Vertices: []math.Vec3{{}, {X: 1}, {Y: 1}, {X: 1, Y: 1}},
			Indices:  []uint32{0, 1, 2, 1, 3, 2},
		},
	}

	var buf bytes.Buffer
	if err := WriteOBJ(&buf, objects); err != nil {
		t.Fatalf("WriteOBJ failed: %v", err)
	}

	obj, err := ParseOBJ(&buf)
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}
	if len(obj.Positions) != 7 {
		t.Fatalf("expected 7 vertices, got %d", len(obj.Positions))
	}
	if obj.Positions[0] != (math.Vec3{X: 0.1}) {
		t.Errorf("vertex 0 = %v, want exact 0.1", obj.Positions[0])
	}
	// The second object's indices are rebased past the first object.
	if obj.Triangles[3] != 3 || obj.Triangles[8] != 5 {
		t.Errorf("triangles = %v", obj.Triangles)
	}
	if len(obj.Objects) != 2 || obj.Objects[1] != "second" {
		t.Errorf("objects = %v", obj.Objects)
	}
}

func TestWriteOBJFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.obj")
	err := WriteOBJFile(path, []OBJObject{{Name: "tri", Vertices: []math.Vec3{{}, {X: 1}, {Y: 1}}, Indices: []uint32{0, 1, 2}}})
	if err != nil {
		t.Fatalf("WriteOBJFile failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !strings.Contains(string(data), "f 1 2 3") {
		t.Errorf("unexpected output:\n%s", data)
	}

	if err := WriteOBJ(&bytes.Buffer{}, []OBJObject{{Name: "bad", Indices: []uint32{0, 1}}}); err == nil {
		t.Error("expected error for partial triangle")
	}
}

func TestParseOBJFileMissing(t *testing.T) {
	if _, err := ParseOBJFile("/nonexistent/mesh.obj"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestParseOBJFile_Testdata(t *testing.T) {
	obj, err := ParseOBJFile(filepath.Join("testdata", "ledge_strip.obj"))
	if err != nil {
		t.Fatalf("ParseOBJFile failed: %v", err)
	}
	if len(obj.Positions) != 9 {
		t.Errorf("expected 9 vertices, got %d", len(obj.Positions))
	}
	// quad (2 tris) + tri + quad (2 tris)
	if len(obj.Triangles) != 15 {
		t.Errorf("expected 15 indices, got %d", len(obj.Triangles))
	}
	if obj.Colors[3] != [4]float32{0, 0, 1, 1} {
		t.Errorf("vertex 4 should be blue, got %v", obj.Colors[3])
	}
}

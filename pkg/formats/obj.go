package formats

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Faultbox/ledgefinder/pkg/math"
)

// OBJ format errors.
var (
	ErrInvalidOBJVertex = errors.New("invalid OBJ vertex")
	ErrInvalidOBJFace   = errors.New("invalid OBJ face")
)

// OBJ is a triangulated Wavefront OBJ mesh.
//
// Vertex colors use the common "v x y z r g b [a]" extension. Colors is nil
// when no vertex in the file carries a color; otherwise it is parallel to
// Positions, with uncolored vertices set to opaque white. Colored is
// parallel to Colors and tells the two apart.
type OBJ struct {
	Positions []math.Vec3
	Colors    [][4]float32
	Colored   []bool
	Triangles []int
	// Objects lists the "o" names in file order.
	Objects []string
}

// HasColors reports whether the file carried vertex colors.
func (o *OBJ) HasColors() bool {
	return o.Colors != nil
}

// ParseOBJ reads an OBJ mesh. Polygons are fan-triangulated; texture,
// normal, material and smoothing statements are ignored.
func ParseOBJ(r io.Reader) (*OBJ, error) {
	obj := &OBJ{}
	var colors [][4]float32
	var flags []bool
	colored := false

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "v":
			pos, col, hasColor, err := parseOBJVertex(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			obj.Positions = append(obj.Positions, pos)
			colors = append(colors, col)
			flags = append(flags, hasColor)
			colored = colored || hasColor
		case "f":
			tris, err := parseOBJFace(fields[1:], len(obj.Positions))
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			obj.Triangles = append(obj.Triangles, tris...)
		case "o":
			if len(fields) > 1 {
				obj.Objects = append(obj.Objects, strings.Join(fields[1:], " "))
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading OBJ: %w", err)
	}

	for i, idx := range obj.Triangles {
		if idx >= len(obj.Positions) {
			return nil, fmt.Errorf("%w: index %d at position %d exceeds %d vertices",
				ErrInvalidOBJFace, idx+1, i, len(obj.Positions))
		}
	}
	if colored {
		obj.Colors = colors
		obj.Colored = flags
	}
	return obj, nil
}

// ParseOBJFile parses an OBJ file from disk.
func ParseOBJFile(path string) (*OBJ, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening OBJ file: %w", err)
	}
	defer f.Close()
	return ParseOBJ(f)
}

func parseOBJVertex(args []string) (math.Vec3, [4]float32, bool, error) {
	white := [4]float32{1, 1, 1, 1}

	// x y z, x y z w, x y z r g b, x y z r g b a
	switch len(args) {
	case 3, 4, 6, 7:
	default:
		return math.Vec3{}, white, false, fmt.Errorf("%w: %d components", ErrInvalidOBJVertex, len(args))
	}

	vals := make([]float32, len(args))
	for i, a := range args {
		f, err := strconv.ParseFloat(a, 32)
		if err != nil {
			return math.Vec3{}, white, false, fmt.Errorf("%w: %q", ErrInvalidOBJVertex, a)
		}
		vals[i] = float32(f)
	}

	pos := math.Vec3{X: vals[0], Y: vals[1], Z: vals[2]}
	if len(vals) < 6 {
		return pos, white, false, nil
	}
	col := [4]float32{vals[3], vals[4], vals[5], 1}
	if len(vals) == 7 {
		col[3] = vals[6]
	}
	return pos, col, true, nil
}

// parseOBJFace returns 0-based triangle indices for one face. count is the
// number of vertices read so far, used to resolve negative indices.
func parseOBJFace(args []string, count int) ([]int, error) {
	if len(args) < 3 {
		return nil, fmt.Errorf("%w: %d vertices", ErrInvalidOBJFace, len(args))
	}

	idx := make([]int, len(args))
	for i, a := range args {
		ref, _, _ := strings.Cut(a, "/")
		n, err := strconv.Atoi(ref)
		if err != nil || n == 0 {
			return nil, fmt.Errorf("%w: vertex reference %q", ErrInvalidOBJFace, a)
		}
		if n < 0 {
			n += count
			if n < 0 {
				return nil, fmt.Errorf("%w: relative reference %q before start of file", ErrInvalidOBJFace, a)
			}
		} else {
			n--
		}
		idx[i] = n
	}

	tris := make([]int, 0, 3*(len(idx)-2))
	for i := 1; i+1 < len(idx); i++ {
		tris = append(tris, idx[0], idx[i], idx[i+1])
	}
	return tris, nil
}

// OBJObject is one named mesh for WriteOBJ.
type OBJObject struct {
	Name     string
	Vertices []math.Vec3
	Indices  []uint32
}

// WriteOBJ writes objects as a single OBJ file, one "o" block each.
// Coordinates are written with enough precision to read back exactly.
func WriteOBJ(w io.Writer, objects []OBJObject) error {
	bw := bufio.NewWriter(w)
	base := 1
	for _, o := range objects {
		if len(o.Indices)%3 != 0 {
			return fmt.Errorf("object %q: index count %d is not a multiple of 3", o.Name, len(o.Indices))
		}
		fmt.Fprintf(bw, "o %s\n", o.Name)
		for _, v := range o.Vertices {
			fmt.Fprintf(bw, "v %s %s %s\n", formatOBJFloat(v.X), formatOBJFloat(v.Y), formatOBJFloat(v.Z))
		}
		for i := 0; i < len(o.Indices); i += 3 {
			fmt.Fprintf(bw, "f %d %d %d\n",
				base+int(o.Indices[i]), base+int(o.Indices[i+1]), base+int(o.Indices[i+2]))
		}
		base += len(o.Vertices)
	}
	return bw.Flush()
}

// WriteOBJFile writes objects to path.
func WriteOBJFile(path string, objects []OBJObject) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating OBJ file: %w", err)
	}
	if err := WriteOBJ(f, objects); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func formatOBJFloat(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}

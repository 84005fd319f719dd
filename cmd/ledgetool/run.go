package main

import (
	"fmt"
	"io"
	"sort"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/ledgefinder/internal/config"
	"github.com/Faultbox/ledgefinder/internal/ledge"
	"github.com/Faultbox/ledgefinder/internal/logger"
	"github.com/Faultbox/ledgefinder/pkg/formats"
)

// loadMesh reads an OBJ file into a ledge mesh. File colors are quantized to
// 8-bit channels so they compare equal to hex colors, and vertices without a
// color in a colored file take the sentinel.
func loadMesh(path string, sentinel ledge.Color) (ledge.Mesh, error) {
	obj, err := formats.ParseOBJFile(path)
	if err != nil {
		return ledge.Mesh{}, err
	}

	mesh := ledge.Mesh{
		Positions: obj.Positions,
		Triangles: obj.Triangles,
	}
	if obj.HasColors() {
		mesh.Colors = make([]ledge.Color, len(obj.Colors))
		for i, c := range obj.Colors {
			if !obj.Colored[i] {
				mesh.Colors[i] = sentinel
				continue
			}
			mesh.Colors[i] = ledge.Color{R: c[0], G: c[1], B: c[2], A: c[3]}.Quantize()
		}
	}
	return mesh, nil
}

// extract loads path and runs the pipeline with cfg's options.
func extract(cfg *config.Config, path string) (*ledge.Result, error) {
	opts, err := cfg.ExtractOptions()
	if err != nil {
		return nil, err
	}
	mesh, err := loadMesh(path, opts.Sentinel)
	if err != nil {
		return nil, err
	}

	log := logger.Named("extract").With(zap.String("mesh", path))
	res, err := ledge.NewExtractor(opts, log).Extract(mesh)
	if err != nil {
		return nil, fmt.Errorf("extracting %s: %w", path, err)
	}
	return res, nil
}

func runInfo(cfg *config.Config, path string, w io.Writer) error {
	sentinel, err := ledge.ParseColor(cfg.Extract.Sentinel)
	if err != nil {
		return err
	}
	mesh, err := loadMesh(path, sentinel)
	if err != nil {
		return err
	}

	boundary := ledge.FindBoundaryEdges(mesh.Triangles)

	fmt.Fprintf(w, "Mesh:      %s\n", path)
	fmt.Fprintf(w, "Vertices:  %d\n", len(mesh.Positions))
	fmt.Fprintf(w, "Triangles: %d\n", mesh.TriangleCount())
	fmt.Fprintf(w, "Boundary:  %d edges\n", len(boundary))
	if err := mesh.Validate(); err != nil {
		fmt.Fprintf(w, "Invalid:   %v\n", err)
	}

	counts := make(map[ledge.Color]int)
	for _, c := range mesh.Colors {
		counts[c]++
	}
	type colorStat struct {
		color ledge.Color
		count int
	}
	var stats []colorStat
	for c, n := range counts {
		stats = append(stats, colorStat{c, n})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].count != stats[j].count {
			return stats[i].count > stats[j].count
		}
		return stats[i].color.String() < stats[j].color.String()
	})

	fmt.Fprintln(w)
	if len(stats) == 0 {
		fmt.Fprintln(w, "No vertex colors.")
		return nil
	}
	fmt.Fprintln(w, "Vertex colors:")
	for _, s := range stats {
		mark := ""
		if s.color == sentinel {
			mark = " (sentinel)"
		}
		fmt.Fprintf(w, "  %-10s %d%s\n", s.color, s.count, mark)
	}
	return nil
}

// extractDoc is the YAML document written by the extract command.
type extractDoc struct {
	Mesh          string      `yaml:"mesh"`
	BoundaryEdges int         `yaml:"boundary_edges"`
	Regions       []regionDoc `yaml:"regions"`
	Empty         []string    `yaml:"empty_regions,omitempty"`
	Warnings      []string    `yaml:"warnings,omitempty"`
}

type regionDoc struct {
	Color    string          `yaml:"color"`
	Boundary int             `yaml:"boundary_edges"`
	Edges    int             `yaml:"edges"`
	Dropped  int             `yaml:"dropped_edges,omitempty"`
	Paths    []pathDoc       `yaml:"paths"`
	Debug    [][2][3]float32 `yaml:"debug_segments,omitempty,flow"`
}

type pathDoc struct {
	Closed bool         `yaml:"closed"`
	Edges  int          `yaml:"edges"`
	Points [][3]float32 `yaml:"points,flow"`
}

func newExtractDoc(path string, res *ledge.Result) extractDoc {
	doc := extractDoc{
		Mesh:          path,
		BoundaryEdges: res.BoundaryEdges,
		Regions:       make([]regionDoc, 0, len(res.Regions)),
	}
	for _, c := range res.Empty {
		doc.Empty = append(doc.Empty, c.String())
	}
	for _, w := range res.Warnings {
		doc.Warnings = append(doc.Warnings, w.Error())
	}

	for _, r := range res.Regions {
		rd := regionDoc{
			Color:    r.Color.String(),
			Boundary: len(r.Boundary),
			Edges:    len(r.Edges),
			Dropped:  r.Dropped,
		}
		for _, p := range r.Paths {
			pd := pathDoc{Closed: p.Closed, Edges: p.Edges}
			for _, pt := range p.Points {
				pd.Points = append(pd.Points, pt.Array())
			}
			rd.Paths = append(rd.Paths, pd)
		}
		for _, seg := range r.Debug {
			rd.Debug = append(rd.Debug, [2][3]float32{seg[0].Array(), seg[1].Array()})
		}
		doc.Regions = append(doc.Regions, rd)
	}
	return doc
}

func runExtract(cfg *config.Config, path string, w io.Writer) error {
	res, err := extract(cfg, path)
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(newExtractDoc(path, res)); err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	return enc.Close()
}

// runConfig saves cfg to path, or to the user config file when path is
// empty, and reports the file written.
func runConfig(cfg *config.Config, path string, w io.Writer) error {
	if path == "" {
		path = config.DefaultPath()
	}
	if err := cfg.SaveTo(path); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	fmt.Fprintf(w, "Wrote %s\n", path)
	return nil
}

func runRibbon(cfg *config.Config, path, out string) error {
	if !cfg.Ribbon.Enabled {
		return fmt.Errorf("ribbon generation is disabled in config")
	}
	res, err := extract(cfg, path)
	if err != nil {
		return err
	}

	var objects []formats.OBJObject
	for _, r := range res.Regions {
		for i, rib := range r.Ribbons {
			if rib.Empty() {
				continue
			}
			objects = append(objects, formats.OBJObject{
				Name:     fmt.Sprintf("Ledge.%s.%d", r.Color.String()[1:], i),
				Vertices: rib.Vertices,
				Indices:  rib.Indices,
			})
		}
	}
	if err := formats.WriteOBJFile(out, objects); err != nil {
		return err
	}

	logger.Info("ribbons written", zap.String("path", out), zap.Int("objects", len(objects)))
	return nil
}

package ledge

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/ledgefinder/pkg/math"
)

// Options controls an Extractor.
type Options struct {
	// Sentinel is the unmarked vertex color.
	Sentinel Color
	// Mode selects how disconnected edges within a region are handled.
	Mode Mode
	// Tolerance is the endpoint matching grid; 0 means exact equality.
	Tolerance float32
	// Transform places the mesh in world space before extraction.
	Transform math.Transform
	// RibbonHeight is how far the bottom row of each ribbon sits below the
	// path. 0 disables ribbon generation.
	RibbonHeight float32
	// RibbonNormal is the offset direction; the zero vector means +Y.
	RibbonNormal math.Vec3
	// Workers bounds how many regions are processed at once.
	Workers int
	// DebugSegments keeps the raw endpoint pairs of each region's
	// boundary edges in Region.Debug.
	DebugSegments bool
}

// DefaultOptions returns the settings used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Sentinel:     White,
		Mode:         ModeComponents,
		Transform:    math.IdentityTransform(),
		RibbonHeight: 0.1,
		RibbonNormal: math.Up,
		Workers:      1,
	}
}

// Region is everything derived from one marker color.
type Region struct {
	Color Color
	// Boundary holds the region's boundary edges before deduplication.
	Boundary []Edge
	// Edges holds the deduplicated edges that were assembled.
	Edges []Edge
	Paths []Path
	// Ribbons is parallel to Paths. An entry is empty when the ribbon
	// could not be built.
	Ribbons []RibbonMesh
	// Dropped counts edges left out of every path.
	Dropped int
	// Debug holds the endpoint positions of Boundary when requested.
	Debug [][2]math.Vec3
}

// Result is the output of one Extract call.
type Result struct {
	// Regions are ordered by the first vertex carrying each color.
	Regions []Region
	// Empty lists marker colors that produced no boundary edges.
	Empty []Color
	// Warnings holds non-fatal problems such as ErrNoMarkup.
	Warnings []error
	// BoundaryEdges is the mesh-wide boundary edge count.
	BoundaryEdges int
}

// Extractor runs the ledge pipeline over meshes.
type Extractor struct {
	opts  Options
	match Matcher
	log   *zap.Logger
}

// NewExtractor creates an extractor. A nil logger disables logging.
func NewExtractor(opts Options, log *zap.Logger) *Extractor {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.RibbonNormal == math.Zero {
		opts.RibbonNormal = math.Up
	}
	return &Extractor{
		opts:  opts,
		match: Matcher{Tolerance: opts.Tolerance},
		log:   log,
	}
}

// Options returns the extractor's effective options.
func (x *Extractor) Options() Options {
	return x.opts
}

// Extract runs the pipeline on mesh. It fails only when the mesh itself is
// malformed; problems confined to markup or to one region are reported in
// the Result.
func (x *Extractor) Extract(mesh Mesh) (*Result, error) {
	if err := mesh.Validate(); err != nil {
		return nil, err
	}
	if m := x.opts.Transform.Matrix(); !m.IsIdentity() {
		mesh = mesh.Transformed(m)
	}

	boundary := FindBoundaryEdges(mesh.Triangles)
	res := &Result{BoundaryEdges: len(boundary)}
	x.log.Debug("boundary edges found",
		zap.Int("vertices", len(mesh.Positions)),
		zap.Int("triangles", mesh.TriangleCount()),
		zap.Int("boundary", len(boundary)))

	buckets, err := Partition(boundary, mesh.Colors, x.opts.Sentinel)
	if err != nil {
		x.log.Warn("no climbable markup on mesh", zap.Error(err))
		res.Warnings = append(res.Warnings, err)
		return res, nil
	}

	var work []Bucket
	for _, b := range buckets {
		if len(b.Edges) == 0 {
			x.log.Debug("skipping empty region", zap.Stringer("color", b.Color))
			res.Empty = append(res.Empty, b.Color)
			res.Warnings = append(res.Warnings, fmt.Errorf("%w: %s", ErrEmptyRegion, b.Color))
			continue
		}
		work = append(work, b)
	}

	res.Regions = make([]Region, len(work))
	if x.opts.Workers == 1 || len(work) < 2 {
		for i, b := range work {
			res.Regions[i] = x.region(b, mesh.Positions)
		}
	} else {
		var wg sync.WaitGroup
		sem := make(chan struct{}, x.opts.Workers)
		for i, b := range work {
			wg.Add(1)
			sem <- struct{}{}
			go func(i int, b Bucket) {
				defer wg.Done()
				defer func() { <-sem }()
				res.Regions[i] = x.region(b, mesh.Positions)
			}(i, b)
		}
		wg.Wait()
	}

	x.log.Info("ledges extracted",
		zap.Int("regions", len(res.Regions)),
		zap.Int("empty", len(res.Empty)))
	return res, nil
}

// region deduplicates, assembles and builds ribbons for one bucket.
func (x *Extractor) region(b Bucket, positions []math.Vec3) Region {
	log := x.log.With(zap.Stringer("color", b.Color))

	r := Region{Color: b.Color, Boundary: b.Edges}
	if x.opts.DebugSegments {
		r.Debug = make([][2]math.Vec3, len(b.Edges))
		for i, e := range b.Edges {
			r.Debug[i] = [2]math.Vec3{positions[e.V1], positions[e.V2]}
		}
	}

	r.Edges = Deduplicate(b.Edges, positions, x.match)
	asm := Assemble(r.Edges, positions, x.opts.Mode, x.match)
	r.Paths = asm.Paths
	r.Dropped = asm.Dropped
	if r.Dropped > 0 {
		log.Warn("edges not connected to the seed path were dropped",
			zap.Int("dropped", r.Dropped),
			zap.Int("edges", len(r.Edges)))
	}

	if x.opts.RibbonHeight > 0 {
		r.Ribbons = make([]RibbonMesh, len(r.Paths))
		for i, p := range r.Paths {
			bottom := OffsetPoints(p.Points, x.opts.RibbonNormal, x.opts.RibbonHeight)
			rib, err := BuildRibbon(p.Points, bottom)
			if err != nil {
				log.Error("ribbon build failed", zap.Int("path", i), zap.Error(err))
				continue
			}
			r.Ribbons[i] = rib
		}
	}

	log.Debug("region assembled",
		zap.Int("boundary", len(b.Edges)),
		zap.Int("edges", len(r.Edges)),
		zap.Int("paths", len(r.Paths)))
	return r
}

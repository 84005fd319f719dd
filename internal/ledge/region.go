package ledge

// Bucket holds the boundary edges whose endpoints both carry Color.
type Bucket struct {
	Color Color
	Edges []Edge
}

// Partition groups boundary edges by marker color.
//
// Colors are discovered from the full vertex color array in order of first
// appearance, skipping sentinel, so a color that marks vertices but no
// boundary edge still gets an (empty) bucket. When no non-sentinel color
// exists Partition returns no buckets and ErrNoMarkup; callers should treat
// that as a warning.
func Partition(edges []Edge, colors []Color, sentinel Color) ([]Bucket, error) {
	index := make(map[Color]int)
	var buckets []Bucket
	for _, c := range colors {
		if c == sentinel {
			continue
		}
		if _, ok := index[c]; !ok {
			index[c] = len(buckets)
			buckets = append(buckets, Bucket{Color: c})
		}
	}
	if len(buckets) == 0 {
		return nil, ErrNoMarkup
	}

	for _, e := range edges {
		if e.V1 < 0 || e.V2 < 0 || e.V1 >= len(colors) || e.V2 >= len(colors) {
			continue
		}
		c := colors[e.V1]
		if c != colors[e.V2] {
			continue
		}
		if i, ok := index[c]; ok {
			buckets[i].Edges = append(buckets[i].Edges, e)
		}
	}
	return buckets, nil
}

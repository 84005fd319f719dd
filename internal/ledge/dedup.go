package ledge

import "github.com/Faultbox/ledgefinder/pkg/math"

// Deduplicate removes edges whose endpoint positions coincide with an
// earlier kept edge, in either orientation. The first occurrence wins.
// Sharing a single endpoint does not make an edge redundant. Zero-length
// edges, whose two endpoints match each other, are dropped as well.
//
// Applying Deduplicate to its own output returns the same edges.
func Deduplicate(edges []Edge, positions []math.Vec3, match Matcher) []Edge {
	seen := make(map[[2]PointKey]struct{}, len(edges))
	kept := make([]Edge, 0, len(edges))
	for _, e := range edges {
		a, b := match.Key(positions[e.V1]), match.Key(positions[e.V2])
		if a == b {
			continue
		}
		if b.less(a) {
			a, b = b, a
		}
		k := [2]PointKey{a, b}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		kept = append(kept, e)
	}
	return kept
}

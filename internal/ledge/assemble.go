package ledge

import (
	"fmt"

	"github.com/Faultbox/ledgefinder/pkg/math"
)

// Mode selects what Assemble does with edges that are not connected to the
// seed edge.
type Mode int

const (
	// ModeComponents keeps seeding until every edge is used, emitting one
	// path per maximal chain. A branching component yields several paths.
	ModeComponents Mode = iota
	// ModeSeedOnly emits only the chain grown from the first edge and counts
	// the rest as dropped.
	ModeSeedOnly
)

// String returns the config name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeComponents:
		return "components"
	case ModeSeedOnly:
		return "seed"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses a mode name as produced by Mode.String.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "components":
		return ModeComponents, nil
	case "seed", "seed-only":
		return ModeSeedOnly, nil
	default:
		return 0, fmt.Errorf("unknown assembly mode %q (want components or seed)", s)
	}
}

// Path is one contiguous point sequence. Consecutive points are the
// endpoints of an input edge.
type Path struct {
	Points []math.Vec3
	// Edges is the number of input edges stitched into the path.
	Edges int
	// Closed is set when the first and last points match.
	Closed bool
}

// Assembly is the result of stitching one region's edges.
type Assembly struct {
	Paths []Path
	// Dropped counts edges left out of every path (ModeSeedOnly only).
	Dropped int
}

// Assemble stitches edges into contiguous paths.
//
// Starting from the lowest-indexed unused edge (front = V1, back = V2), it
// repeatedly links the lowest-indexed unused edge that touches the current
// front or back, preferring the front when an edge touches both, and
// pushes that edge's other endpoint onto the matching end. This is the
// same choice a full rescan from the start of the list after every link
// would make, found through a per-position index in amortised linear time.
func Assemble(edges []Edge, positions []math.Vec3, mode Mode, match Matcher) Assembly {
	if len(edges) == 0 {
		return Assembly{}
	}

	keys := make([][2]PointKey, len(edges))
	incident := make(map[PointKey][]int)
	for i, e := range edges {
		a, b := match.Key(positions[e.V1]), match.Key(positions[e.V2])
		keys[i] = [2]PointKey{a, b}
		incident[a] = append(incident[a], i)
		if b != a {
			incident[b] = append(incident[b], i)
		}
	}

	used := make([]bool, len(edges))
	cursor := make(map[PointKey]int)

	// next returns the lowest unused edge incident to k, or -1.
	next := func(k PointKey) int {
		list := incident[k]
		c := cursor[k]
		for c < len(list) && used[list[c]] {
			c++
		}
		cursor[k] = c
		if c == len(list) {
			return -1
		}
		return list[c]
	}

	var out Assembly
	seed := 0
	for {
		for seed < len(edges) && used[seed] {
			seed++
		}
		if seed == len(edges) {
			break
		}

		e := edges[seed]
		used[seed] = true
		dq := newPointDeque(positions[e.V1], positions[e.V2])
		frontKey, backKey := keys[seed][0], keys[seed][1]
		count := 1

		for {
			i := next(frontKey)
			if j := next(backKey); j >= 0 && (i < 0 || j < i) {
				i = j
			}
			if i < 0 {
				break
			}
			used[i] = true
			count++

			k, ed := keys[i], edges[i]
			switch {
			case k[0] == frontKey:
				dq.PushFront(positions[ed.V2])
				frontKey = k[1]
			case k[1] == frontKey:
				dq.PushFront(positions[ed.V1])
				frontKey = k[0]
			case k[0] == backKey:
				dq.PushBack(positions[ed.V2])
				backKey = k[1]
			default:
				dq.PushBack(positions[ed.V1])
				backKey = k[0]
			}
		}

		out.Paths = append(out.Paths, newPath(dq, count, frontKey == backKey))

		if mode == ModeSeedOnly {
			for _, u := range used {
				if !u {
					out.Dropped++
				}
			}
			break
		}
	}
	return out
}

func newPath(dq *pointDeque, edges int, ends bool) Path {
	return Path{
		Points: dq.Points(),
		Edges:  edges,
		Closed: ends && edges > 1,
	}
}

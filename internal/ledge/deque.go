package ledge

import "github.com/Faultbox/ledgefinder/pkg/math"

// pointDeque is a double-ended point sequence. head holds the prepended
// points in reverse order, tail the appended ones.
type pointDeque struct {
	head []math.Vec3
	tail []math.Vec3
}

func newPointDeque(front, back math.Vec3) *pointDeque {
	return &pointDeque{
		head: []math.Vec3{front},
		tail: []math.Vec3{back},
	}
}

func (d *pointDeque) PushFront(p math.Vec3) { d.head = append(d.head, p) }
func (d *pointDeque) PushBack(p math.Vec3)  { d.tail = append(d.tail, p) }

func (d *pointDeque) Front() math.Vec3 {
	if len(d.head) > 0 {
		return d.head[len(d.head)-1]
	}
	return d.tail[0]
}

func (d *pointDeque) Back() math.Vec3 {
	if len(d.tail) > 0 {
		return d.tail[len(d.tail)-1]
	}
	return d.head[0]
}

func (d *pointDeque) Len() int { return len(d.head) + len(d.tail) }

// Points returns the sequence from front to back.
func (d *pointDeque) Points() []math.Vec3 {
	out := make([]math.Vec3, 0, d.Len())
	for i := len(d.head) - 1; i >= 0; i-- {
		out = append(out, d.head[i])
	}
	return append(out, d.tail...)
}

package physics

import "github.com/san-kum/planetarium/internal/dynamo"

// Trail is the ordered position history of a body, oldest first.
// A capacity of 0 keeps every point; otherwise the trail is a ring
// buffer that drops the oldest point once full.
type Trail struct {
	points   []dynamo.Vec2
	capacity int
	start    int
	total    int
}

func NewTrail(capacity int) *Trail {
	if capacity < 0 {
		capacity = 0
	}
	t := &Trail{capacity: capacity}
	if capacity > 0 {
		t.points = make([]dynamo.Vec2, 0, capacity)
	}
	return t
}

func (t *Trail) Append(p dynamo.Vec2) {
	t.total++
	if t.capacity == 0 || len(t.points) < t.capacity {
		t.points = append(t.points, p)
		return
	}
	t.points[t.start] = p
	t.start = (t.start + 1) % t.capacity
}

// Len is the number of retained points.
func (t *Trail) Len() int { return len(t.points) }

// Total counts every point ever appended, including evicted ones.
func (t *Trail) Total() int { return t.total }

func (t *Trail) Cap() int { return t.capacity }

// At returns the i-th retained point, oldest first.
func (t *Trail) At(i int) dynamo.Vec2 {
	if t.capacity == 0 {
		return t.points[i]
	}
	return t.points[(t.start+i)%len(t.points)]
}

func (t *Trail) Last() (dynamo.Vec2, bool) {
	if len(t.points) == 0 {
		return dynamo.Vec2{}, false
	}
	return t.At(len(t.points) - 1), true
}

// Points returns a copy of the retained points, oldest first.
func (t *Trail) Points() []dynamo.Vec2 {
	out := make([]dynamo.Vec2, len(t.points))
	for i := range out {
		out[i] = t.At(i)
	}
	return out
}

func (t *Trail) Reset() {
	t.points = t.points[:0]
	t.start = 0
	t.total = 0
}

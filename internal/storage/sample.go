package storage

import (
	"strconv"

	"github.com/san-kum/planetarium/internal/physics"
)

// Sample is the state of one body at one recorded tick.
type Sample struct {
	Tick       int     `json:"tick"`
	Time       float64 `json:"time"`
	Body       string  `json:"body"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	VX         float64 `json:"vx"`
	VY         float64 `json:"vy"`
	Separation float64 `json:"separation"`
}

func (s Sample) record() []string {
	return []string{
		strconv.Itoa(s.Tick),
		formatFloat(s.Time),
		s.Body,
		formatFloat(s.X),
		formatFloat(s.Y),
		formatFloat(s.VX),
		formatFloat(s.VY),
		formatFloat(s.Separation),
	}
}

func parseSample(rec []string) (Sample, error) {
	var (
		s   Sample
		err error
	)
	if s.Tick, err = strconv.Atoi(rec[0]); err != nil {
		return s, err
	}
	s.Body = rec[2]
	fields := []*float64{&s.Time, nil, &s.X, &s.Y, &s.VX, &s.VY, &s.Separation}
	for i, dst := range fields {
		if dst == nil {
			continue
		}
		if *dst, err = strconv.ParseFloat(rec[i+1], 64); err != nil {
			return s, err
		}
	}
	return s, nil
}

// Recorder samples every body each time the tick counter reaches a
// multiple of every.
type Recorder struct {
	every   int
	samples []Sample
}

func NewRecorder(every int) *Recorder {
	if every < 1 {
		every = 1
	}
	return &Recorder{every: every}
}

// Capture records the bodies unconditionally, typically once before the
// first tick.
func (r *Recorder) Capture(tick int, t float64, bodies []*physics.Body) {
	for _, b := range bodies {
		r.samples = append(r.samples, Sample{
			Tick:       tick,
			Time:       t,
			Body:       b.Name,
			X:          b.Pos.X,
			Y:          b.Pos.Y,
			VX:         b.Vel.X,
			VY:         b.Vel.Y,
			Separation: b.Separation,
		})
	}
}

func (r *Recorder) OnTick(tick int, t float64, bodies []*physics.Body) {
	if tick%r.every == 0 {
		r.Capture(tick, t, bodies)
	}
}

func (r *Recorder) Every() int        { return r.every }
func (r *Recorder) Samples() []Sample { return r.samples }

// BodyNames lists the bodies in first-seen order.
func BodyNames(samples []Sample) []string {
	seen := make(map[string]bool)
	var names []string
	for _, s := range samples {
		if !seen[s.Body] {
			seen[s.Body] = true
			names = append(names, s.Body)
		}
	}
	return names
}

// ForBody returns the samples of one body, in recorded order.
func ForBody(samples []Sample, body string) []Sample {
	var out []Sample
	for _, s := range samples {
		if s.Body == body {
			out = append(out, s)
		}
	}
	return out
}

// Separations is the separation series of one body.
func Separations(samples []Sample, body string) []float64 {
	var out []float64
	for _, s := range samples {
		if s.Body == body {
			out = append(out, s.Separation)
		}
	}
	return out
}

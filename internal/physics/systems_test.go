package physics

import (
	"math"
	"testing"

	"github.com/san-kum/planetarium/internal/dynamo"
)

func TestInnerSolarSystem(t *testing.T) {
	bodies := InnerSolarSystem()
	if len(bodies) != 5 {
		t.Fatalf("expected 5 bodies, got %d", len(bodies))
	}
	if !bodies[0].IsAnchor() {
		t.Error("expected the sun to be an anchor")
	}
	for _, b := range bodies[1:] {
		if b.IsAnchor() {
			t.Errorf("%s should be movable", b.Name)
		}
		if b.Mass <= 0 {
			t.Errorf("%s has non-positive mass", b.Name)
		}
	}
}

func TestCircularVelocity(t *testing.T) {
	sun := NewAnchor("sun", dynamo.Vec2{}, SunMass, Appearance{})

	tests := []struct {
		name string
		pos  dynamo.Vec2
		sign dynamo.Vec2
	}{
		{"negative x", dynamo.Vec2{X: -AU}, dynamo.Vec2{Y: 1}},
		{"positive x", dynamo.Vec2{X: AU}, dynamo.Vec2{Y: -1}},
		{"positive y", dynamo.Vec2{Y: AU}, dynamo.Vec2{X: 1}},
	}

	expected := math.Sqrt(G * SunMass / AU)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := CircularVelocity(sun, tt.pos)
			if math.Abs(v.Norm()-expected) > 1e-6 {
				t.Errorf("speed %f, expected %f", v.Norm(), expected)
			}
			if v.X*tt.sign.X < 0 || v.Y*tt.sign.Y < 0 {
				t.Errorf("unexpected direction %v", v)
			}
			if math.Abs(v.X*tt.pos.X+v.Y*tt.pos.Y) > 1e-3*AU {
				t.Errorf("velocity %v not perpendicular to %v", v, tt.pos)
			}
		})
	}

	if v := CircularVelocity(sun, dynamo.Vec2{}); v != (dynamo.Vec2{}) {
		t.Errorf("expected zero velocity at the anchor, got %v", v)
	}
}

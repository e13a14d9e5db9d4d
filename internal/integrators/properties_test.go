package integrators

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/planetarium/internal/dynamo"
	"github.com/san-kum/planetarium/internal/physics"
)

func mustRegistry(dt float64, bodies ...*physics.Body) *physics.Registry {
	reg, err := physics.NewRegistry(dt, 0, bodies...)
	Expect(err).NotTo(HaveOccurred())
	return reg
}

func advance(integ *SemiImplicitEuler, reg *physics.Registry, ticks int) {
	for i := 0; i < ticks; i++ {
		Expect(integ.Step(reg, reg.TimeStep())).To(Succeed())
	}
}

var _ = Describe("SemiImplicitEuler", func() {
	var integ *SemiImplicitEuler

	BeforeEach(func() {
		integ = NewSemiImplicitEuler()
	})

	Context("without anchors", func() {
		It("moves a lone body in a straight line", func() {
			p0 := dynamo.Vec2{X: 1e11, Y: -2e10}
			v0 := dynamo.Vec2{X: 1000, Y: -500}
			reg := mustRegistry(3600, physics.NewPlanet("probe", p0, v0, 1e3, physics.Appearance{}))
			probe := reg.MustBody("probe")

			const ticks = 500
			advance(integ, reg, ticks)

			Expect(probe.Vel).To(Equal(v0))
			Expect(probe.Pos.X).To(BeNumerically("~", p0.X+v0.X*ticks*3600, 1))
			Expect(probe.Pos.Y).To(BeNumerically("~", p0.Y+v0.Y*ticks*3600, 1))
		})
	})

	Context("on a circular orbit", func() {
		It("keeps the radius within a small bounded drift", func() {
			sun := physics.NewAnchor("sun", dynamo.Vec2{}, physics.SunMass, physics.Appearance{})
			pos := dynamo.Vec2{X: -physics.AU}
			earth := physics.NewPlanet("earth", pos, physics.CircularVelocity(sun, pos), physics.EarthMass, physics.Appearance{})
			reg := mustRegistry(3600, sun, earth)

			for i := 0; i < 1000; i++ {
				Expect(integ.Step(reg, reg.TimeStep())).To(Succeed())
				r := earth.Pos.Sub(sun.Pos).Norm()
				Expect(r).To(BeNumerically("~", physics.AU, physics.AU*0.01))
			}
		})
	})

	Context("with mirrored bodies", func() {
		It("produces mirrored trajectories", func() {
			const x, v = 1.2 * physics.AU, 27000.0
			reg := mustRegistry(3600,
				physics.NewAnchor("sun", dynamo.Vec2{}, physics.SunMass, physics.Appearance{}),
				physics.NewPlanet("a", dynamo.Vec2{X: x}, dynamo.Vec2{Y: v}, physics.EarthMass, physics.Appearance{}),
				physics.NewPlanet("b", dynamo.Vec2{X: -x}, dynamo.Vec2{Y: -v}, physics.EarthMass, physics.Appearance{}),
			)
			a, b := reg.MustBody("a"), reg.MustBody("b")

			tol := x * 1e-9
			for i := 0; i < 2000; i++ {
				Expect(integ.Step(reg, reg.TimeStep())).To(Succeed())
				Expect(a.Pos.X).To(BeNumerically("~", -b.Pos.X, tol))
				Expect(a.Pos.Y).To(BeNumerically("~", -b.Pos.Y, tol))
			}
		})
	})

	Context("trail accumulation", func() {
		It("grows one point per tick for movers only", func() {
			reg := mustRegistry(3600, physics.InnerSolarSystem()...)

			for n := 1; n <= 50; n++ {
				Expect(integ.Step(reg, reg.TimeStep())).To(Succeed())
				for _, body := range reg.Bodies() {
					if body.IsAnchor() {
						Expect(body.Trail.Len()).To(BeZero())
						Expect(body.Pos).To(Equal(dynamo.Vec2{}))
					} else {
						Expect(body.Trail.Len()).To(Equal(n))
						last, _ := body.Trail.Last()
						Expect(last).To(Equal(body.Pos))
					}
				}
			}
		})
	})

	Context("time-step reversal", func() {
		It("returns close to the starting state", func() {
			reg := mustRegistry(3600, physics.InnerSolarSystem()...)

			start := make(map[string][2]dynamo.Vec2)
			for _, b := range reg.Movers() {
				start[b.Name] = [2]dynamo.Vec2{b.Pos, b.Vel}
			}

			const ticks = 100
			advance(integ, reg, ticks)
			reg.SetTimeStep(-reg.TimeStep())
			advance(integ, reg, ticks)

			for _, b := range reg.Movers() {
				p0, v0 := start[b.Name][0], start[b.Name][1]
				Expect(b.Pos.Sub(p0).Norm()).To(BeNumerically("<", p0.Norm()*5e-3), b.Name)
				Expect(b.Vel.Sub(v0).Norm()).To(BeNumerically("<", v0.Norm()*5e-3), b.Name)
			}
		})
	})

	Context("when paused", func() {
		It("leaves positions unchanged but still records the tick", func() {
			reg := mustRegistry(0, physics.SunEarth()...)
			earth := reg.MustBody("earth")
			p0 := earth.Pos

			advance(integ, reg, 10)

			Expect(earth.Pos).To(Equal(p0))
			Expect(earth.Trail.Len()).To(Equal(10))
		})
	})

	Context("with coincident bodies", func() {
		It("fails with a degenerate separation error", func() {
			reg := mustRegistry(3600,
				physics.NewAnchor("sun", dynamo.Vec2{}, physics.SunMass, physics.Appearance{}),
				physics.NewPlanet("rogue", dynamo.Vec2{}, dynamo.Vec2{}, 1, physics.Appearance{}),
			)

			err := integ.Step(reg, reg.TimeStep())
			Expect(err).To(MatchError(dynamo.ErrDegenerateSeparation))
			Expect(reg.MustBody("rogue").Trail.Len()).To(BeZero())
		})
	})

	It("is bit-reproducible", func() {
		run := func() []dynamo.Vec2 {
			reg := mustRegistry(3600, physics.InnerSolarSystem()...)
			advance(NewSemiImplicitEuler(), reg, 300)
			out := make([]dynamo.Vec2, 0, reg.Len())
			for _, b := range reg.Bodies() {
				out = append(out, b.Pos, b.Vel)
			}
			return out
		}

		first, second := run(), run()
		Expect(second).To(Equal(first))
		for _, v := range first {
			Expect(math.IsNaN(v.X) || math.IsNaN(v.Y)).To(BeFalse())
		}
	})
})

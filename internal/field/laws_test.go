package field_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/tyl-create/elec-n/internal/charge"
	"github.com/tyl-create/elec-n/internal/field"
)

var _ = Describe("Evaluator", func() {
	var eval field.Evaluator

	BeforeEach(func() {
		eval = field.New(1.0, field.DefaultRingSamples())
	})

	Describe("point sources", func() {
		It("follows the inverse square law", func() {
			src := charge.NewPoint(r3.Vec{}, 4.0)

			_, near := eval.FieldAt(r3.Vec{X: 1}, []charge.Source{src})
			_, far := eval.FieldAt(r3.Vec{X: 2}, []charge.Source{src})

			Expect(near).To(BeNumerically("~", 4.0, 1e-12))
			Expect(far).To(BeNumerically("~", 1.0, 1e-12))
		})

		It("points away from positive and toward negative charge", func() {
			pos := charge.NewPoint(r3.Vec{}, 1.0)
			neg := charge.NewPoint(r3.Vec{}, -1.0)
			probe := r3.Vec{X: 2}

			e1, _ := eval.FieldAt(probe, []charge.Source{pos})
			e2, _ := eval.FieldAt(probe, []charge.Source{neg})

			Expect(e1.X).To(BeNumerically(">", 0))
			Expect(e2.X).To(BeNumerically("<", 0))
		})

		It("scales potential as 1/d", func() {
			src := charge.NewPoint(r3.Vec{}, 6.0)

			Expect(eval.PotentialAt(r3.Vec{X: 2}, []charge.Source{src})).
				To(BeNumerically("~", 3.0, 1e-12))
			Expect(eval.PotentialAt(r3.Vec{X: 3}, []charge.Source{src})).
				To(BeNumerically("~", 2.0, 1e-12))
		})

		It("scales with the Coulomb constant", func() {
			src := charge.NewPoint(r3.Vec{}, 1.0)
			strong := field.New(2.0, field.DefaultRingSamples())

			_, weak := eval.FieldAt(r3.Vec{X: 1}, []charge.Source{src})
			_, double := strong.FieldAt(r3.Vec{X: 1}, []charge.Source{src})

			Expect(double).To(BeNumerically("~", 2*weak, 1e-12))
		})
	})

	Describe("conducting spheres", func() {
		var shell charge.Source

		BeforeEach(func() {
			var err error
			shell, err = charge.New(charge.ConductingSphere, r3.Vec{}, 5.0, 1.0, 1.0)
			Expect(err).NotTo(HaveOccurred())
		})

		It("has zero field everywhere inside the shell", func() {
			ev, mag := eval.FieldAt(r3.Vec{X: 0.5}, []charge.Source{shell})

			Expect(ev).To(Equal(r3.Vec{}))
			Expect(mag).To(BeZero())
		})

		It("matches the point law outside", func() {
			_, mag := eval.FieldAt(r3.Vec{X: 2}, []charge.Source{shell})

			Expect(mag).To(BeNumerically("~", 1.25, 1e-12))
		})

		It("holds the surface potential throughout the interior", func() {
			inner := eval.PotentialAt(r3.Vec{Y: 0.5}, []charge.Source{shell})
			surface := eval.PotentialAt(r3.Vec{Y: 1.0}, []charge.Source{shell})

			Expect(inner).To(BeNumerically("~", 5.0, 1e-12))
			Expect(surface).To(BeNumerically("~", 5.0, 1e-12))
		})
	})

	Describe("nonconducting spheres", func() {
		var ball charge.Source

		BeforeEach(func() {
			var err error
			ball, err = charge.New(charge.NonConductingSphere, r3.Vec{}, 5.0, 1.0, 1.0)
			Expect(err).NotTo(HaveOccurred())
		})

		It("grows linearly with depth inside the volume", func() {
			_, half := eval.FieldAt(r3.Vec{X: 0.5}, []charge.Source{ball})
			_, surface := eval.FieldAt(r3.Vec{X: 1.0}, []charge.Source{ball})

			Expect(half).To(BeNumerically("~", 2.5, 1e-12))
			Expect(surface).To(BeNumerically("~", 5.0, 1e-12))
		})

		It("falls off as a point charge outside", func() {
			_, mag := eval.FieldAt(r3.Vec{X: 2}, []charge.Source{ball})

			Expect(mag).To(BeNumerically("~", 1.25, 1e-12))
		})

		It("keeps the potential continuous across the surface", func() {
			just := 1e-9
			inner := eval.PotentialAt(r3.Vec{X: 1 - just}, []charge.Source{ball})
			outer := eval.PotentialAt(r3.Vec{X: 1 + just}, []charge.Source{ball})

			Expect(inner).To(BeNumerically("~", outer, 1e-6))
			Expect(inner).To(BeNumerically("~", 5.0, 1e-6))
		})

		It("peaks the interior potential at the center", func() {
			center := eval.PotentialAt(r3.Vec{X: 0.1}, []charge.Source{ball})
			surface := eval.PotentialAt(r3.Vec{X: 1.0}, []charge.Source{ball})

			// V(0) = 3/2 · kq/R for a uniform ball.
			Expect(center).To(BeNumerically(">", surface))
			Expect(center).To(BeNumerically("~", 7.5, 0.1))
		})
	})

	Describe("rings", func() {
		var ring charge.Source

		BeforeEach(func() {
			var err error
			ring, err = charge.New(charge.Ring, r3.Vec{}, 3.0, 2.0, 1.0)
			Expect(err).NotTo(HaveOccurred())
		})

		It("matches the on-axis closed form within 1%", func() {
			z := 1.5
			want := ring.Charge * z / math.Pow(ring.Radius*ring.Radius+z*z, 1.5)

			ev, mag := eval.FieldAt(r3.Vec{Z: z}, []charge.Source{ring})

			Expect(mag).To(BeNumerically("~", want, want*0.01))
			Expect(ev.X).To(BeNumerically("~", 0, 1e-9))
			Expect(ev.Y).To(BeNumerically("~", 0, 1e-9))
			Expect(ev.Z).To(BeNumerically("~", want, want*0.01))
		})

		It("reproduces the on-axis potential kq/sqrt(R²+z²)", func() {
			z := 1.5
			want := ring.Charge / math.Hypot(ring.Radius, z)

			// Every sample sits at the same distance from an axis point, so
			// the discretization is exact here.
			Expect(eval.PotentialAt(r3.Vec{Z: z}, []charge.Source{ring})).
				To(BeNumerically("~", want, 1e-12))
		})

		It("cancels the field at the ring center", func() {
			_, mag := eval.FieldAt(r3.Vec{}, []charge.Source{ring})

			Expect(mag).To(BeNumerically("~", 0, 1e-12))
		})

		It("stays finite for a probe on the ring itself", func() {
			on := r3.Vec{X: ring.Radius}

			ev, mag := eval.FieldAt(on, []charge.Source{ring})

			Expect(math.IsNaN(mag)).To(BeFalse())
			Expect(math.IsInf(mag, 0)).To(BeFalse())
			Expect(math.IsNaN(ev.X)).To(BeFalse())
		})

		It("honors configured sample counts", func() {
			coarse := field.New(1.0, field.RingSamples{Field: 8, Potential: 8, Force: 8})

			z := 1.5
			want := ring.Charge * z / math.Pow(ring.Radius*ring.Radius+z*z, 1.5)
			_, mag := coarse.FieldAt(r3.Vec{Z: z}, []charge.Source{ring})

			// On-axis symmetry holds for any sample count.
			Expect(mag).To(BeNumerically("~", want, want*0.01))
		})
	})

	Describe("superposition", func() {
		It("sums fields of independent sources component-wise", func() {
			a := charge.NewPoint(r3.Vec{X: -1}, 2.0)
			b := charge.NewPoint(r3.Vec{X: 1, Y: 1}, -3.0)
			probe := r3.Vec{Y: 2}

			ea, _ := eval.FieldAt(probe, []charge.Source{a})
			eb, _ := eval.FieldAt(probe, []charge.Source{b})
			both, _ := eval.FieldAt(probe, []charge.Source{a, b})

			Expect(both.X).To(BeNumerically("~", ea.X+eb.X, 1e-12))
			Expect(both.Y).To(BeNumerically("~", ea.Y+eb.Y, 1e-12))
			Expect(both.Z).To(BeNumerically("~", ea.Z+eb.Z, 1e-12))
		})

		It("sums potentials as scalars", func() {
			a := charge.NewPoint(r3.Vec{X: -1}, 2.0)
			b := charge.NewPoint(r3.Vec{X: 1}, 2.0)
			probe := r3.Vec{Y: 1}

			va := eval.PotentialAt(probe, []charge.Source{a})
			vb := eval.PotentialAt(probe, []charge.Source{b})

			Expect(eval.PotentialAt(probe, []charge.Source{a, b})).
				To(BeNumerically("~", va+vb, 1e-12))
		})

		It("cancels the midpoint field of an equal pair exactly", func() {
			a := charge.NewPoint(r3.Vec{X: -1}, 3.0)
			b := charge.NewPoint(r3.Vec{X: 1}, 3.0)

			ev, _ := eval.FieldAt(r3.Vec{}, []charge.Source{a, b})

			Expect(ev).To(Equal(r3.Vec{}))
		})
	})

	Describe("singularity guard", func() {
		It("zeroes the contribution of a colocated point source", func() {
			src := charge.NewPoint(r3.Vec{X: 1}, 5.0)

			ev, mag := eval.FieldAt(r3.Vec{X: 1}, []charge.Source{src})

			Expect(ev).To(Equal(r3.Vec{}))
			Expect(mag).To(BeZero())
			Expect(eval.PotentialAt(r3.Vec{X: 1}, []charge.Source{src})).To(BeZero())
		})

		It("zeroes contributions just inside the guard distance", func() {
			src := charge.NewPoint(r3.Vec{}, 5.0)

			_, inside := eval.FieldAt(r3.Vec{X: 0.049}, []charge.Source{src})
			_, outside := eval.FieldAt(r3.Vec{X: 0.051}, []charge.Source{src})

			Expect(inside).To(BeZero())
			Expect(outside).To(BeNumerically(">", 0))
		})

		It("applies before geometry dispatch", func() {
			tiny, err := charge.New(charge.ConductingSphere, r3.Vec{}, 5.0, 0.02, 1.0)
			Expect(err).NotTo(HaveOccurred())

			// d = 0.03 is outside the shell but inside the guard.
			_, mag := eval.FieldAt(r3.Vec{X: 0.03}, []charge.Source{tiny})

			Expect(mag).To(BeZero())
		})

		It("keeps untouched sources contributing", func() {
			near := charge.NewPoint(r3.Vec{}, 5.0)
			far := charge.NewPoint(r3.Vec{X: 2}, 1.0)

			ev, _ := eval.FieldAt(r3.Vec{}, []charge.Source{near, far})

			// Only the far source survives the guard.
			Expect(ev.X).To(BeNumerically("~", -0.25, 1e-12))
		})
	})
})

package field_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/tyl-create/elec-n/internal/charge"
	"github.com/tyl-create/elec-n/internal/field"
)

var _ = Describe("NetForce", func() {
	var eval field.Evaluator

	BeforeEach(func() {
		eval = field.New(1.0, field.DefaultRingSamples())
	})

	It("returns an exact zero with no other sources", func() {
		lone := charge.NewPoint(r3.Vec{X: 3}, 7.0)

		f, mag := eval.NetForce(lone, []charge.Source{lone})

		Expect(f).To(Equal(r3.Vec{}))
		Expect(mag).To(BeZero())

		f, mag = eval.NetForce(lone, nil)
		Expect(f).To(Equal(r3.Vec{}))
		Expect(mag).To(BeZero())
	})

	It("excludes the target from its own field", func() {
		a := charge.NewPoint(r3.Vec{}, 2.0)
		b := charge.NewPoint(r3.Vec{X: 2}, 3.0)
		scene := []charge.Source{a, b}

		_, mag := eval.NetForce(a, scene)

		// Coulomb force between the pair only: k·qa·qb/d².
		Expect(mag).To(BeNumerically("~", 1.5, 1e-12))
	})

	It("obeys Newton's third law for a symmetric pair", func() {
		a := charge.NewPoint(r3.Vec{X: -1}, 2.0)
		b := charge.NewPoint(r3.Vec{X: 1}, 2.0)
		scene := []charge.Source{a, b}

		fa, _ := eval.NetForce(a, scene)
		fb, _ := eval.NetForce(b, scene)

		Expect(fa.X).To(Equal(-fb.X))
		Expect(fa.Y).To(BeZero())
		Expect(fb.Y).To(BeZero())
	})

	It("attracts opposite charges and repels like charges", func() {
		pos := charge.NewPoint(r3.Vec{}, 1.0)
		neg := charge.NewPoint(r3.Vec{X: 2}, -1.0)
		pos2 := charge.NewPoint(r3.Vec{X: 2}, 1.0)

		attract, _ := eval.NetForce(pos, []charge.Source{pos, neg})
		repel, _ := eval.NetForce(pos, []charge.Source{pos, pos2})

		Expect(attract.X).To(BeNumerically(">", 0))
		Expect(repel.X).To(BeNumerically("<", 0))
	})

	It("treats sphere targets by their centers", func() {
		ball, err := charge.New(charge.NonConductingSphere, r3.Vec{}, 2.0, 0.5, 1.0)
		Expect(err).NotTo(HaveOccurred())
		point := charge.NewPoint(r3.Vec{X: 3}, 4.0)

		_, mag := eval.NetForce(ball, []charge.Source{ball, point})

		Expect(mag).To(BeNumerically("~", 2.0*4.0/9.0, 1e-12))
	})

	It("samples ring targets around their circumference", func() {
		ring, err := charge.New(charge.Ring, r3.Vec{}, 2.0, 1.0, 1.0)
		Expect(err).NotTo(HaveOccurred())
		above := charge.NewPoint(r3.Vec{Z: 2}, -3.0)

		f, mag := eval.NetForce(ring, []charge.Source{ring, above})

		// Net pull is straight up toward the negative charge; the closed
		// form for a ring in a point field applies on-axis.
		want := math.Abs(ring.Charge*above.Charge) * 2 / math.Pow(1+4, 1.5)
		Expect(f.Z).To(BeNumerically(">", 0))
		Expect(f.X).To(BeNumerically("~", 0, 1e-9))
		Expect(f.Y).To(BeNumerically("~", 0, 1e-9))
		Expect(mag).To(BeNumerically("~", want, want*0.01))
	})

	It("ignores the guard-protected region like any field query", func() {
		a := charge.NewPoint(r3.Vec{}, 5.0)
		b := charge.NewPoint(r3.Vec{X: 0.01}, 5.0)

		f, mag := eval.NetForce(a, []charge.Source{a, b})

		Expect(f).To(Equal(r3.Vec{}))
		Expect(mag).To(BeZero())
	})
})

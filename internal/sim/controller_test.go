package sim_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/fieldsim/internal/charge"
	"github.com/san-kum/fieldsim/internal/fieldlines"
	"github.com/san-kum/fieldsim/internal/metrics"
	"github.com/san-kum/fieldsim/internal/sim"
)

var _ = Describe("Simulation", func() {
	var s *sim.Simulation

	BeforeEach(func() {
		var err error
		s, err = sim.New(800, 600, sim.Params{Dt: 2, Dx: 5})
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("stability status", func() {
		DescribeTable("classifies the step pair",
			func(dt, dx, cfl float64, status metrics.Status) {
				Expect(s.SetParameters(dt, dx)).To(Succeed())
				report := s.CFLStatus()
				Expect(report.Number).To(BeNumerically("~", cfl, 1e-12))
				Expect(report.Status).To(Equal(status))
			},
			Entry("unit Courant number", 5.0, 5.0, 1.0, metrics.PossiblyUnstable),
			Entry("comfortably stable", 4.0, 5.0, 0.8, metrics.Stable),
			Entry("stable band edge", 4.5, 5.0, 0.9, metrics.Stable),
			Entry("over the limit", 5.5, 5.0, 1.1, metrics.Unstable),
		)

		It("is advisory only", func() {
			Expect(s.SetParameters(6, 5)).To(Succeed())
			Expect(s.CFLStatus().Status).To(Equal(metrics.Unstable))
			_, err := s.Tick()
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("pulses", func() {
		It("writes exactly one cell", func() {
			Expect(s.InjectPulse(5, 5, 10)).To(BeTrue())

			snap := s.Snapshot()
			Expect(snap.Ez.At(5, 5)).To(Equal(10.0))
			nonZero := 0
			for _, v := range snap.Ez.Data() {
				if v != 0 {
					nonZero++
				}
			}
			Expect(nonZero).To(Equal(1))
		})
	})

	Describe("advancing", func() {
		It("leaves an empty vacuum untouched", func() {
			for i := 0; i < 5; i++ {
				_, err := s.Tick()
				Expect(err).NotTo(HaveOccurred())
			}
			snap := s.Snapshot()
			for _, b := range [][]float64{snap.Ez.Data(), snap.Hx.Data(), snap.Hy.Data()} {
				Expect(b).To(HaveEach(0.0))
			}
		})

		It("mirrors the edges after a tick", func() {
			s.AddCharge(20, 30, 5)
			s.InjectPulse(40, 40, 10)
			_, err := s.Tick()
			Expect(err).NotTo(HaveOccurred())

			snap := s.Snapshot()
			lastX, lastY := snap.NX-1, snap.NY-1
			for j := 0; j < snap.NY; j++ {
				Expect(snap.Ez.At(0, j)).To(Equal(snap.Ez.At(1, j)))
				Expect(snap.Ez.At(lastX, j)).To(Equal(snap.Ez.At(lastX-1, j)))
			}
			for i := 0; i < snap.NX; i++ {
				Expect(snap.Ez.At(i, 0)).To(Equal(snap.Ez.At(i, 1)))
				Expect(snap.Ez.At(i, lastY)).To(Equal(snap.Ez.At(i, lastY-1)))
			}
		})

		It("advances the clock by dt per tick", func() {
			s.Tick()
			s.Advance(0.5)
			Expect(s.Time()).To(BeNumerically("~", 2.5, 1e-12))
		})
	})

	Describe("erasing", func() {
		var nearest charge.ID

		BeforeEach(func() {
			s.AddCharge(60, 50, 1)
			nearest = s.AddCharge(50, 53, 1)
			s.AddCharge(57, 50, 1)
		})

		It("removes the nearest charge inside the threshold", func() {
			c, ok := s.RemoveNearestCharge(50, 50, 5)
			Expect(ok).To(BeTrue())
			Expect(c.ID).To(Equal(nearest))
			Expect(s.Charges()).To(HaveLen(2))
		})

		It("is a no-op when nothing is close enough", func() {
			_, ok := s.RemoveNearestCharge(50, 50, 2)
			Expect(ok).To(BeFalse())
			Expect(s.Charges()).To(HaveLen(3))
		})
	})

	Describe("potential", func() {
		It("superposes charge sets", func() {
			a, err := sim.New(800, 600, sim.Params{Dt: 2, Dx: 5})
			Expect(err).NotTo(HaveOccurred())
			b, err := sim.New(800, 600, sim.Params{Dt: 2, Dx: 5})
			Expect(err).NotTo(HaveOccurred())

			for _, c := range [][3]float64{{10, 10, 4}, {40, 80, -3}} {
				a.AddCharge(int(c[0]), int(c[1]), c[2])
				s.AddCharge(int(c[0]), int(c[1]), c[2])
			}
			for _, c := range [][3]float64{{100, 20, 2}, {70, 70, -1}} {
				b.AddCharge(int(c[0]), int(c[1]), c[2])
				s.AddCharge(int(c[0]), int(c[1]), c[2])
			}

			for _, p := range [][2]float64{{0, 0}, {35.5, 12.25}, {10, 10}, {150, 110}} {
				Expect(s.PotentialAt(p[0], p[1])).To(
					BeNumerically("~", a.PotentialAt(p[0], p[1])+b.PotentialAt(p[0], p[1]), 1e-9))
			}

			m := s.PotentialMap()
			Expect(m.NX).To(Equal(160))
			Expect(m.NY).To(Equal(120))
			Expect(m.Min).To(BeNumerically("<=", m.Max))
			for _, v := range m.Values {
				Expect(math.IsNaN(v) || math.IsInf(v, 0)).To(BeFalse())
			}
		})
	})

	Describe("field lines", func() {
		It("never stops on a weak field near an isolated positive charge", func() {
			s.AddCharge(80, 60, 10)
			s.AddCharge(150, 100, 0)

			lines := s.TraceFieldLines(fieldlines.DefaultDensity)
			Expect(lines).To(HaveLen(fieldlines.DefaultDensity))
			for _, l := range lines {
				Expect(l.Reason).To(SatisfyAny(Equal(fieldlines.LeftGrid), Equal(fieldlines.MaxSteps)))
			}
		})

		It("seeds nothing from negative charges", func() {
			s.AddCharge(80, 60, -10)
			Expect(s.TraceFieldLines(8)).To(BeEmpty())
		})
	})

	Describe("drag lease", func() {
		var held charge.ID

		BeforeEach(func() {
			held = s.AddCharge(10, 10, 1)
			s.AddCharge(30, 30, -1)
		})

		It("moves the held charge to the pointer cell", func() {
			id, err := s.Select(11, 11.5, 5)
			Expect(err).NotTo(HaveOccurred())
			Expect(id).To(Equal(held))

			Expect(s.Drag(20.7, 14.2)).To(Succeed())
			Expect(s.Charges()[0].X).To(Equal(20))
			Expect(s.Charges()[0].Y).To(Equal(14))

			s.Release()
			_, ok := s.Selected()
			Expect(ok).To(BeFalse())
			Expect(s.Drag(1, 1)).To(MatchError(sim.ErrNoSelection))
		})

		It("admits a single holder", func() {
			_, err := s.Select(10, 10, 5)
			Expect(err).NotTo(HaveOccurred())
			_, err = s.Select(30, 30, 5)
			Expect(err).To(MatchError(sim.ErrSelectionHeld))
		})

		It("still allows erasing and adding other charges", func() {
			_, err := s.Select(10, 10, 5)
			Expect(err).NotTo(HaveOccurred())

			_, ok := s.RemoveNearestCharge(30, 30, 5)
			Expect(ok).To(BeTrue())
			s.AddCharge(50, 50, 2)

			id, ok := s.Selected()
			Expect(ok).To(BeTrue())
			Expect(id).To(Equal(held))
		})

		It("is released when the held charge is erased", func() {
			_, err := s.Select(10, 10, 5)
			Expect(err).NotTo(HaveOccurred())
			s.RemoveNearestCharge(10, 10, 5)

			_, ok := s.Selected()
			Expect(ok).To(BeFalse())
		})

		It("misses when nothing is in reach", func() {
			_, err := s.Select(100, 100, 5)
			Expect(err).To(MatchError(sim.ErrNoSelection))
		})
	})
})

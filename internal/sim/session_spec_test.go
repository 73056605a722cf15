package sim_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/plexus/internal/particle"
	"github.com/san-kum/plexus/internal/sim"
)

var _ = Describe("Session", func() {
	var (
		params  sim.Params
		session *sim.Session
	)

	BeforeEach(func() {
		params = sim.DefaultParams()
		params.Count = 4
		session = sim.New(params, 2024)
	})

	Context("when idle", func() {
		It("renders nothing", func() {
			Expect(session.Render().Commands).To(BeEmpty())
		})

		It("reports done so the clock stays off", func() {
			Expect(session.Done()).To(BeTrue())
			Expect(session.Running()).To(BeFalse())
		})

		It("accepts reconfiguration", func() {
			session.Reconfigure(42)
			Expect(session.EdgeDistance()).To(Equal(42))
		})
	})

	Context("with four placed particles", func() {
		BeforeEach(func() {
			Expect(session.Start(800, 600)).To(Succeed())
			session.Place([]particle.Particle{
				{X: 100, Y: 100, R: 5, Angle: 0},
				{X: 104, Y: 100, R: 5, Angle: math.Pi / 2},
				{X: 600, Y: 100, R: 3, Angle: 0},
				{X: 100, Y: 500, R: 3, Angle: math.Pi},
			})
		})

		It("draws four disks and one edge after a tick", func() {
			session.Tick()
			Expect(session.RedrawDue()).To(BeTrue())

			frame := session.Render()
			Expect(frame.Count(sim.KindDisk)).To(Equal(4))
			Expect(frame.Count(sim.KindLine)).To(Equal(1))
			Expect(session.RedrawDue()).To(BeFalse())

			edge := frame.Commands[4]
			Expect(edge.Kind).To(Equal(sim.KindLine))
			Expect(edge.X).To(Equal(107.0))
			Expect(edge.Y).To(Equal(105.0))
			Expect(edge.X2).To(Equal(109.0))
			Expect(edge.Y2).To(Equal(107.0))
			Expect(edge.Width).To(BeNumerically("~", 5.5*(1-math.Sqrt(8)/100), 1e-9))
		})

		It("reflects only the colliding pair from the original headings", func() {
			session.Tick()
			session.Render()

			ps := session.Particles()
			Expect(ps[0].Angle).To(Equal(math.Pi))
			Expect(ps[1].Angle).To(Equal(-math.Pi / 2))
			Expect(ps[2].Angle).To(Equal(0.0))
			Expect(ps[3].Angle).To(Equal(math.Pi))
		})

		It("keeps radii through ticks, deflections and collisions", func() {
			session.OnMouseMove(110, 110)
			for i := 0; i < 50; i++ {
				session.Tick()
				session.Render()
			}
			radii := []int{5, 5, 3, 3}
			for i, p := range session.Particles() {
				Expect(p.R).To(Equal(radii[i]))
				Expect(math.IsNaN(p.Angle)).To(BeFalse())
			}
		})

		It("draws disks before edges", func() {
			frame := session.Render()
			seenLine := false
			for _, c := range frame.Commands {
				if c.Kind == sim.KindLine {
					seenLine = true
					continue
				}
				Expect(seenLine).To(BeFalse(), "disk emitted after an edge")
			}
		})

		It("stops rendering after stop", func() {
			session.Stop()
			Expect(session.Done()).To(BeTrue())
			Expect(session.Render().Empty()).To(BeTrue())
		})
	})

	Context("edge threshold", func() {
		BeforeEach(func() {
			params.Count = 2
			session = sim.New(params, 1)
			Expect(session.Start(1000, 1000)).To(Succeed())
		})

		place := func(d int) {
			session.Place([]particle.Particle{
				{X: 100, Y: 100, R: 2},
				{X: 100 + d, Y: 100, R: 2},
			})
		}

		It("emits an edge iff the distance is below the threshold", func() {
			for _, d := range []int{10, 50, 99} {
				place(d)
				Expect(session.Render().Count(sim.KindLine)).To(Equal(1), "d=%d", d)
			}
			for _, d := range []int{100, 150} {
				place(d)
				Expect(session.Render().Count(sim.KindLine)).To(BeZero(), "d=%d", d)
			}
		})

		It("thins edges as the distance grows", func() {
			prev := math.Inf(1)
			for _, d := range []int{10, 30, 60, 90, 99} {
				place(d)
				frame := session.Render()
				w := frame.Commands[2].Width
				Expect(w).To(BeNumerically("<", prev))
				prev = w
			}
		})

		It("uses a reconfigured threshold on the next render", func() {
			place(200)
			Expect(session.Render().Count(sim.KindLine)).To(BeZero())
			session.Reconfigure(250)
			Expect(session.Render().Count(sim.KindLine)).To(Equal(1))
			session.Reconfigure(9)
			Expect(session.EdgeDistance()).To(Equal(250))
		})
	})

	Context("with a random population", func() {
		It("keeps every particle inside the canvas", func() {
			params.Count = 120
			session = sim.New(params, 77)
			Expect(session.Start(400, 300)).To(Succeed())
			session.OnMouseMove(200, 150)
			for i := 0; i < 200; i++ {
				session.Tick()
				for _, p := range session.Particles() {
					Expect(p.X).To(BeNumerically(">=", 0))
					Expect(p.X).To(BeNumerically("<=", 400))
					Expect(p.Y).To(BeNumerically(">=", 0))
					Expect(p.Y).To(BeNumerically("<=", 300))
				}
				session.Render()
			}
		})
	})
})

package wake

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Exporter", func() {
	It("should zero-pad vessel arrays past the live count", func() {
		e := seededBuilder(20).
			WithMaxVessels(2).
			WithSpawnInterval(0.5).
			Build()

		e.Update(0, 0.1)
		e.Update(0.5, 0.1)
		Expect(e.Stats().ActiveVesselCount).To(Equal(2))

		a := e.VesselArrays(5)

		Expect(a.Count).To(Equal(2))
		Expect(a.Weights).To(HaveLen(5))
		Expect(a.Positions).To(HaveLen(15))

		for slot := 2; slot < 5; slot++ {
			Expect(a.Weights[slot]).To(Equal(float32(0)))
			Expect(a.HullLengths[slot]).To(Equal(float32(0)))
			Expect(a.States[slot]).To(Equal(float32(0)))
			for i := 0; i < 3; i++ {
				Expect(a.Positions[3*slot+i]).To(Equal(float32(0)))
				Expect(a.Velocities[3*slot+i]).To(Equal(float32(0)))
			}
		}
	})

	It("should be stable across repeated calls with no state change", func() {
		e := seededBuilder(20).
			WithMaxVessels(2).
			WithSpawnInterval(0.5).
			Build()

		e.Update(0, 0.1)
		e.Update(0.5, 0.1)

		first := e.VesselArrays(5)
		positions := append([]float32(nil), first.Positions...)
		weights := append([]float32(nil), first.Weights...)
		states := append([]float32(nil), first.States...)

		second := e.VesselArrays(5)

		Expect(second.Count).To(Equal(2))
		Expect(second.Positions).To(Equal(positions))
		Expect(second.Weights).To(Equal(weights))
		Expect(second.States).To(Equal(states))
	})

	It("should encode ghost and fading states as scalars", func() {
		e := seededBuilder(21).WithFadeDuration(2).Build()
		e.now = 10

		ghost := &Vessel{ID: "g", Class: ClassCargo, State: VesselGhost}
		fading := &Vessel{
			ID:        "f",
			Class:     ClassBarge,
			State:     VesselFading,
			fadeSince: 9, // halfway through the 2s fade
		}
		e.vessels = append(e.vessels, ghost, fading)

		a := e.VesselArrays(2)

		Expect(a.States[0]).To(Equal(float32(1)))
		Expect(a.States[1]).To(BeNumerically("~", 2.5, 1e-6))
	})

	It("should drop the oldest wake samples when truncating", func() {
		e := seededBuilder(22).
			WithMaxVessels(3).
			WithSpawnInterval(0.5).
			Build()

		for now := Seconds(0); now < 5; now += 0.05 {
			e.Update(now, 0.05)
		}

		all := e.pool.GetAll()
		Expect(len(all)).To(BeNumerically(">", 4))

		a := e.WakeArrays(4)

		Expect(a.Count).To(Equal(4))
		newest := all[len(all)-4:]
		for i, pt := range newest {
			Expect(a.Intensities[i]).
				To(Equal(float32(pt.Intensity)))
			Expect(a.Positions[3*i]).
				To(Equal(float32(pt.Position.X)))
		}
	})

	It("should mark orphaned samples and their orphan time", func() {
		e := seededBuilder(23).
			WithMaxVessels(1).
			WithSpawnInterval(1000).
			WithVesselLifetime(1).
			WithOrphanLifetime(5).
			Build()

		for now := Seconds(0); now < 1.2; now += 0.1 {
			e.Update(now, 0.1)
		}
		Expect(e.Stats().ActiveVesselCount).To(Equal(0))

		a := e.WakeArrays(64)
		Expect(a.Count).To(BeNumerically(">", 0))

		for i := 0; i < a.Count; i++ {
			Expect(a.Orphaned[i]).To(Equal(float32(1)))
			Expect(a.OrphanTimes[i]).To(BeNumerically(">", 1))
		}
	})

	It("should produce identical traces for identically seeded engines", func() {
		build := func() *Engine {
			return seededBuilder(42).
				WithMaxVessels(4).
				WithSpawnInterval(0.5).
				Build()
		}

		e1 := build()
		e2 := build()

		for now := Seconds(0); now < 10; now += 0.05 {
			e1.Update(now, 0.05)
			e2.Update(now, 0.05)
		}

		Expect(e1.Stats()).To(Equal(e2.Stats()))

		a1 := e1.VesselArrays(8)
		a2 := e2.VesselArrays(8)
		Expect(a1.Positions).To(Equal(a2.Positions))
		Expect(a1.States).To(Equal(a2.States))

		w1 := e1.WakeArrays(64)
		w2 := e2.WakeArrays(64)
		Expect(w1.Count).To(Equal(w2.Count))
		Expect(w1.Intensities).To(Equal(w2.Intensities))
	})
})

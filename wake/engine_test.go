package wake

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func seededBuilder(seed int64) Builder {
	return MakeBuilder().
		WithRand(rand.New(rand.NewSource(seed))).
		WithIDGenerator(NewSequentialIDGenerator())
}

var _ = Describe("Engine", func() {
	Context("spawning", func() {
		It("should spawn immediately and then honor the interval", func() {
			e := seededBuilder(1).
				WithMaxVessels(1).
				WithSpawnInterval(1).
				Build()

			for _, now := range []Seconds{0, 0.5, 1.0, 1.5} {
				e.Update(now, 0.5)

				Expect(e.Stats().ActiveVesselCount).To(Equal(1))
			}

			_, found := e.FindVessel("1")
			Expect(found).To(BeTrue())

			_, found = e.FindVessel("2")
			Expect(found).To(BeFalse())
		})

		It("should spawn at most once per interval", func() {
			e := seededBuilder(1).
				WithMaxVessels(3).
				WithSpawnInterval(1).
				Build()

			for now := Seconds(0); now < 2.3; now += 0.25 {
				e.Update(now, 0.25)
			}

			// Spawns land at t=0, 1.0, 2.0.
			Expect(e.Stats().ActiveVesselCount).To(Equal(3))
		})

		It("should never exceed the vessel cap", func() {
			e := seededBuilder(2).
				WithMaxVessels(2).
				WithSpawnInterval(0.1).
				Build()

			for now := Seconds(0); now < 30; now += 0.05 {
				e.Update(now, 0.05)

				count := e.Stats().ActiveVesselCount
				Expect(count).To(BeNumerically(">=", 0))
				Expect(count).To(BeNumerically("<=", 2))
			}
		})
	})

	Context("wake sampling", func() {
		It("should cap emission at the configured sample rate", func() {
			e := seededBuilder(3).
				WithMaxVessels(1).
				WithSpawnInterval(1000).
				WithSampleRate(2).
				Build()

			for now := Seconds(0); now < 0.45; now += 0.1 {
				e.Update(now, 0.1)

				// Less than half a second since the spawn sample, so
				// every further tick is suppressed.
				Expect(e.Stats().TotalWakePointCount).To(Equal(1))
			}

			e.Update(0.5, 0.1)
			Expect(e.Stats().TotalWakePointCount).To(Equal(2))

			e.Update(0.6, 0.1)
			Expect(e.Stats().TotalWakePointCount).To(Equal(2))
		})
	})

	Context("observer snapshots", func() {
		It("should hand out copies detached from the live state", func() {
			e := seededBuilder(11).
				WithMaxVessels(1).
				WithSpawnInterval(1000).
				Build()
			e.Update(0, 0.1)

			vessels := e.VesselSummaries()
			Expect(vessels).To(HaveLen(1))
			Expect(vessels[0].ID).To(Equal("1"))
			Expect(vessels[0].State).To(Equal("active"))
			Expect(vessels[0].Speed).To(BeNumerically(">", 0))

			samples := e.WakeSamples()
			Expect(samples).To(HaveLen(e.pool.Size()))
			Expect(samples[0].VesselID).To(Equal("1"))

			// Mutating the copy must not reach back into the pool.
			samples[0].Intensity = -1
			Expect(e.WakeSamples()[0].Intensity).
				To(BeNumerically(">=", 0))
		})
	})

	Context("wake pool bounds", func() {
		It("should never exceed the pool capacity", func() {
			e := seededBuilder(3).
				WithMaxVessels(4).
				WithSpawnInterval(0.5).
				WithMaxWakePoints(16).
				Build()

			for now := Seconds(0); now < 20; now += 0.05 {
				e.Update(now, 0.05)

				Expect(e.Stats().TotalWakePointCount).
					To(BeNumerically("<=", 16))
			}
		})
	})

	Context("vessel lifecycle", func() {
		It("should walk states one-directionally to removal", func() {
			e := seededBuilder(4).
				WithMaxVessels(1).
				WithSpawnInterval(1000).
				WithVesselLifetime(1000).
				WithBounds(Bounds{MinX: -5, MaxX: 5, MinZ: -5, MaxZ: 5}).
				WithBoundsMargin(0.5).
				WithGhostDuration(0.3).
				WithFadeDuration(0.3).
				Build()

			var observed []VesselState
			for now := Seconds(0); now < 60; now += 0.05 {
				e.Update(now, 0.05)

				v, found := e.FindVessel("1")
				if !found {
					break
				}

				if len(observed) == 0 ||
					observed[len(observed)-1] != v.State {
					observed = append(observed, v.State)
				}
			}

			Expect(observed).To(Equal([]VesselState{
				VesselActive, VesselGhost, VesselFading,
			}))

			_, found := e.FindVessel("1")
			Expect(found).To(BeFalse())
		})

		It("should retire vessels when the lifetime budget runs out", func() {
			e := seededBuilder(5).
				WithMaxVessels(1).
				WithSpawnInterval(1000).
				WithVesselLifetime(1).
				Build()

			e.Update(0, 0.1)
			Expect(e.Stats().ActiveVesselCount).To(Equal(1))

			e.Update(1.0, 0.1)
			Expect(e.Stats().ActiveVesselCount).To(Equal(1))

			e.Update(1.1, 0.1)
			Expect(e.Stats().ActiveVesselCount).To(Equal(0))
		})
	})

	Context("wake decay", func() {
		It("should never raise a sample's intensity over its timeline", func() {
			e := seededBuilder(6).
				WithMaxVessels(2).
				WithSpawnInterval(0.5).
				Build()

			e.Update(0, 0.1)
			Expect(e.pool.Size()).To(BeNumerically(">", 0))

			first := e.pool.GetAll()[0]
			id, stamp := first.VesselID, first.Timestamp
			last := first.Intensity

			for now := Seconds(0.1); now < 30; now += 0.1 {
				e.Update(now, 0.1)

				var current *GlobalWakePoint
				e.pool.ForEach(func(pt *GlobalWakePoint) {
					if pt.VesselID == id && pt.Timestamp == stamp {
						current = pt
					}
				})

				if current == nil {
					return // decayed away, as it should
				}

				Expect(current.Intensity).To(BeNumerically("<=", last))
				last = current.Intensity
			}
		})
	})

	Context("orphaned wakes", func() {
		It("should orphan a retired vessel's samples in the same tick", func() {
			e := seededBuilder(7).
				WithMaxVessels(1).
				WithSpawnInterval(1000).
				WithVesselLifetime(1).
				WithOrphanLifetime(2).
				Build()

			var orphanTick Seconds
			for now := Seconds(0); now < 1.5; now += 0.1 {
				e.Update(now, 0.1)

				if _, found := e.FindVessel("1"); !found {
					orphanTick = now
					break
				}
			}

			Expect(orphanTick).To(BeNumerically(">", 1))
			Expect(e.Stats().OrphanedTrailCount).To(Equal(1))
			Expect(e.pool.Size()).To(BeNumerically(">", 0))

			e.pool.ForEach(func(pt *GlobalWakePoint) {
				Expect(pt.State).To(Equal(WakeOrphaned))
				Expect(pt.OrphanedAt).To(Equal(orphanTick))
			})
		})

		It("should record a trail even with no surviving samples", func() {
			e := seededBuilder(10).Build()

			v := &Vessel{
				ID:       "solo",
				Class:    ClassBarge,
				Position: Vec3{X: 12, Z: -4},
			}

			// Every one of the vessel's pool samples has already been
			// evicted; the departure is still recorded.
			e.orphanWakesOf(v, 3)

			trails := e.OrphanedTrails()
			Expect(trails).To(HaveLen(1))
			Expect(trails[0].VesselID).To(Equal("solo"))
			Expect(trails[0].Class).To(Equal(ClassBarge))
			Expect(trails[0].Weight).To(Equal(0.85))
			Expect(trails[0].OrphanStart).To(Equal(Seconds(3)))
		})

		It("should fade orphans out and discard the trail", func() {
			e := seededBuilder(8).
				WithMaxVessels(1).
				WithSpawnInterval(1000).
				WithVesselLifetime(1).
				WithOrphanLifetime(2).
				Build()

			for now := Seconds(0); now < 6; now += 0.1 {
				e.Update(now, 0.1)
			}

			Expect(e.Stats().TotalWakePointCount).To(Equal(0))
			Expect(e.Stats().OrphanedTrailCount).To(Equal(0))
		})

		It("should keep a heavier wake stronger than a lighter one", func() {
			e := seededBuilder(9).Build()

			light := makePoint("light", 0)
			light.VesselWeight = 0.3
			light.DistanceFromVessel = 20

			heavy := makePoint("heavy", 0)
			heavy.VesselWeight = 1.0
			heavy.DistanceFromVessel = 20

			e.pool.Push(light)
			e.pool.Push(heavy)

			// No vessel backs either sample, so the first update orphans
			// both in the same tick.
			e.updateActiveWakes(5)

			for now := Seconds(5); now < 18; now += 0.25 {
				e.updateOrphanedWakes(now)
				e.sweepExpiredWakes(now)

				if e.pool.Size() == 0 {
					break
				}

				var lightI, heavyI float64
				e.pool.ForEach(func(pt *GlobalWakePoint) {
					switch pt.VesselID {
					case "light":
						lightI = pt.Intensity
					case "heavy":
						heavyI = pt.Intensity
					}
				})

				Expect(heavyI).To(BeNumerically(">", lightI))
			}

			Expect(e.pool.Size()).To(Equal(0))
		})
	})
})

package wake

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	gomock "go.uber.org/mock/gomock"
)

var _ = Describe("Engine hooks", func() {
	var (
		mockCtrl *gomock.Controller
		hook     *MockHook
		counts   map[*HookPos]int
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		hook = NewMockHook(mockCtrl)
		counts = make(map[*HookPos]int)

		hook.EXPECT().
			Func(gomock.Any()).
			Do(func(ctx HookCtx) {
				counts[ctx.Pos]++
			}).
			AnyTimes()
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should report one spawn per vessel", func() {
		e := seededBuilder(30).
			WithMaxVessels(3).
			WithSpawnInterval(1).
			Build()
		e.AcceptHook(hook)

		for now := Seconds(0); now < 2.3; now += 0.25 {
			e.Update(now, 0.25)
		}

		Expect(counts[HookPosVesselSpawn]).To(Equal(3))
	})

	It("should report retirement and one orphan event per sample", func() {
		e := seededBuilder(31).
			WithMaxVessels(1).
			WithSpawnInterval(1000).
			WithVesselLifetime(1).
			WithOrphanLifetime(2).
			Build()
		e.AcceptHook(hook)

		orphanedInPool := 0
		for now := Seconds(0); now < 1.5; now += 0.1 {
			e.Update(now, 0.1)

			if e.Stats().ActiveVesselCount == 0 {
				orphanedInPool = e.pool.Size()
				break
			}
		}

		Expect(counts[HookPosVesselRetire]).To(Equal(1))
		Expect(counts[HookPosWakeOrphan]).To(Equal(orphanedInPool))
		Expect(counts[HookPosWakeEmit]).
			To(BeNumerically(">=", orphanedInPool))
	})

	It("should report evictions once the pool wraps", func() {
		e := seededBuilder(32).
			WithMaxVessels(2).
			WithSpawnInterval(0.5).
			WithMaxWakePoints(8).
			Build()
		e.AcceptHook(hook)

		for now := Seconds(0); now < 5; now += 0.05 {
			e.Update(now, 0.05)
		}

		Expect(counts[HookPosWakeEvict]).To(BeNumerically(">", 0))
	})
})

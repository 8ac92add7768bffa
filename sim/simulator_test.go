package sim_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/csim/cache"
	"github.com/sarchlab/csim/sim"
)

func access(addr uint64) sim.Access {
	return sim.Access{Address: addr}
}

func newSimulator(setIndexBits, blockOffsetBits, ways int) *sim.Simulator {
	d := cache.MakeBuilder().
		WithSetIndexBits(setIndexBits).
		WithBlockOffsetBits(blockOffsetBits).
		WithWayAssociativity(ways).
		MustBuild()

	return sim.NewSimulator(d)
}

var _ = Describe("Simulator", func() {
	var s *sim.Simulator

	Describe("with a direct-mapped cache", func() {
		BeforeEach(func() {
			s = newSimulator(4, 4, 1)
		})

		It("should miss on a cold cache and hit afterwards", func() {
			Expect(s.Process(access(0x10))).To(Equal(sim.OutcomeMiss))
			Expect(s.Process(access(0x10))).To(Equal(sim.OutcomeHit))
			Expect(s.Process(access(0x10))).To(Equal(sim.OutcomeHit))

			stats := s.Stats()
			Expect(stats.Accesses).To(Equal(uint64(3)))
			Expect(stats.Hits).To(Equal(uint64(2)))
			Expect(stats.Misses).To(Equal(uint64(1)))
			Expect(stats.Evictions).To(Equal(uint64(0)))
		})

		It("should hit anywhere within a cached block", func() {
			Expect(s.Process(access(0x10))).To(Equal(sim.OutcomeMiss))
			Expect(s.Process(access(0x13))).To(Equal(sim.OutcomeHit))
			Expect(s.Process(access(0x1F))).To(Equal(sim.OutcomeHit))
		})

		It("should evict when a second tag maps to the same set", func() {
			Expect(s.Process(access(0x10))).To(Equal(sim.OutcomeMiss))
			Expect(s.Process(access(0x110))).To(Equal(sim.OutcomeMissEvict))

			stats := s.Stats()
			Expect(stats.Misses).To(Equal(uint64(2)))
			Expect(stats.Evictions).To(Equal(uint64(1)))
		})
	})

	Describe("with a two-way cache", func() {
		BeforeEach(func() {
			s = newSimulator(1, 1, 2)
		})

		It("should fill every way before evicting", func() {
			// Both addresses map to set 0 with distinct tags.
			Expect(s.Process(access(0x0))).To(Equal(sim.OutcomeMiss))
			Expect(s.Process(access(0x4))).To(Equal(sim.OutcomeMiss))
			Expect(s.Stats().Evictions).To(Equal(uint64(0)))

			Expect(s.Process(access(0x8))).To(Equal(sim.OutcomeMissEvict))

			stats := s.Stats()
			Expect(stats.Misses).To(Equal(uint64(3)))
			Expect(stats.Evictions).To(Equal(uint64(1)))
		})

		It("should evict the least recently used tag, not the oldest", func() {
			a, b, c := access(0x0), access(0x4), access(0x8)

			Expect(s.Process(a)).To(Equal(sim.OutcomeMiss))
			Expect(s.Process(b)).To(Equal(sim.OutcomeMiss))
			Expect(s.Process(a)).To(Equal(sim.OutcomeHit))
			Expect(s.Process(c)).To(Equal(sim.OutcomeMissEvict))

			// B was evicted, A survived.
			Expect(s.Process(a)).To(Equal(sim.OutcomeHit))
			Expect(s.Process(b)).To(Equal(sim.OutcomeMissEvict))
		})
	})

	Describe("counting across sets", func() {
		BeforeEach(func() {
			s = newSimulator(1, 1, 1)
		})

		It("should reproduce the three-access reference scenario", func() {
			// 0x0 and 0x4 map to set 0 with different tags, 0x2 to set 1.
			Expect(s.Process(access(0x0))).To(Equal(sim.OutcomeMiss))
			Expect(s.Process(access(0x2))).To(Equal(sim.OutcomeMiss))
			Expect(s.Process(access(0x4))).To(Equal(sim.OutcomeMissEvict))

			stats := s.Stats()
			Expect(stats.Hits).To(Equal(uint64(0)))
			Expect(stats.Misses).To(Equal(uint64(3)))
			Expect(stats.Evictions).To(Equal(uint64(1)))
			Expect(s.Summary()).To(Equal("hits:0 misses:3 evictions:1"))
		})
	})

	Describe("resetting", func() {
		BeforeEach(func() {
			s = newSimulator(2, 2, 2)
		})

		It("should forget the cache state and the counters", func() {
			s.Process(access(0x40))
			s.Process(access(0x40))

			s.Reset()

			Expect(s.Stats()).To(Equal(sim.Stats{}))
			Expect(s.Process(access(0x40))).To(Equal(sim.OutcomeMiss))
		})
	})
})

// A collectingHook keeps every hook invocation it sees.
type collectingHook struct {
	ctxs []sim.HookCtx
}

func (h *collectingHook) Func(ctx sim.HookCtx) {
	h.ctxs = append(h.ctxs, ctx)
}

var _ = Describe("Simulator hooks", func() {
	var (
		s    *sim.Simulator
		hook *collectingHook
	)

	BeforeEach(func() {
		s = newSimulator(1, 1, 1)
		hook = new(collectingHook)
		s.AcceptHook(hook)
	})

	It("should describe each access at HookPosAccessDone", func() {
		s.Process(sim.Access{Address: 0x4, Label: "L 4,1"})

		Expect(hook.ctxs).To(HaveLen(1))
		Expect(hook.ctxs[0].Pos).To(BeIdenticalTo(sim.HookPosAccessDone))

		result := hook.ctxs[0].Item.(sim.AccessResult)
		Expect(result.Seq).To(Equal(uint64(1)))
		Expect(result.Access.Label).To(Equal("L 4,1"))
		Expect(result.SetID).To(Equal(0))
		Expect(result.Tag).To(Equal(uint64(1)))
		Expect(result.Outcome).To(Equal(sim.OutcomeMiss))
	})

	It("should number accesses sequentially", func() {
		s.Process(access(0x0))
		s.Process(access(0x2))
		s.Process(access(0x0))

		Expect(hook.ctxs).To(HaveLen(3))
		for i, ctx := range hook.ctxs {
			result := ctx.Item.(sim.AccessResult)
			Expect(result.Seq).To(Equal(uint64(i + 1)))
		}
	})
})

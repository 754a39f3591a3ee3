package variable

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Policy", func() {
	DescribeTable("IsDue",
		func(ts float64, tick uint64, nextTime float64, nextTick uint64, want bool) {
			Expect(IsDue(ts, tick, nextTime, nextTick)).To(Equal(want))
		},
		Entry("both thresholds passed", 1.0, uint64(2), 0.5, uint64(1), true),
		Entry("only time passed", 1.0, uint64(1), 0.5, uint64(1), false),
		Entry("only tick passed", 0.5, uint64(2), 0.5, uint64(1), false),
		Entry("nothing passed", 0.0, uint64(0), 0.0, uint64(0), false),
	)

	It("should stamp from the current values", func() {
		p := NewPolicy(0.5, 3)

		p.Stamp(10, 100)

		Expect(p.TimeStamp()).To(Equal(10.0))
		Expect(p.TickStamp()).To(Equal(uint64(100)))
		Expect(p.NextUpdateTime()).To(Equal(10.5))
		Expect(p.NextUpdateTick()).To(Equal(uint64(103)))
	})

	It("should not accumulate drift", func() {
		p := NewPolicy(1, 1)

		p.Stamp(0, 0)
		p.Stamp(5, 7)

		Expect(p.NextUpdateTime()).To(Equal(6.0))
		Expect(p.NextUpdateTick()).To(Equal(uint64(8)))
	})

	It("should refresh at most once per tick with zero max age", func() {
		p := NewPolicy(0, 0)
		p.Stamp(1, 1)

		Expect(p.Due(1, 1)).To(BeFalse())
		Expect(p.Due(2, 2)).To(BeTrue())
	})
})

var _ = Describe("UpdateMode", func() {
	It("should combine flags", func() {
		Expect(ModeOf(true, true)).To(Equal(AutoReadWrite))
		Expect(ModeOf(false, true)).To(Equal(AutoWrite))
		Expect(AutoRead.Reads()).To(BeTrue())
		Expect(AutoRead.Writes()).To(BeFalse())
		Expect(AutoReadWrite.String()).To(Equal("read|write"))
		Expect(NoAutoUpdate.String()).To(Equal("none"))
	})
})

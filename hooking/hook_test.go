package hooking

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = Describe("HookableBase", func() {
	var (
		mockCtrl *gomock.Controller
		base     *HookableBase
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		base = NewHookableBase()
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should invoke hooks in order", func() {
		h1 := NewMockHook(mockCtrl)
		h2 := NewMockHook(mockCtrl)
		base.AcceptHook(h1)
		base.AcceptHook(h2)

		pos := &HookPos{Name: "Test"}
		ctx := HookCtx{Domain: base, Pos: pos, Item: 1}

		gomock.InOrder(
			h1.EXPECT().Func(ctx),
			h2.EXPECT().Func(ctx),
		)

		base.InvokeHook(ctx)

		Expect(base.NumHooks()).To(Equal(2))
	})

	It("should panic on a duplicated hook", func() {
		h := NewMockHook(mockCtrl)
		base.AcceptHook(h)

		Expect(func() { base.AcceptHook(h) }).To(Panic())
	})

	It("should adapt functions", func() {
		var got any
		base.AcceptHook(NewFuncHook(func(ctx HookCtx) { got = ctx.Item }))

		base.InvokeHook(HookCtx{Item: "x"})

		Expect(got).To(Equal("x"))
	})
})

package notify_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/simsync/idgen"
	"github.com/sarchlab/simsync/notify"
)

var _ = Describe("List", func() {
	var l *notify.List[string]

	BeforeEach(func() {
		l = notify.NewList[string]()
	})

	It("should hand out increasing ids", func() {
		a := l.Add("a")
		b := l.Add("b")

		Expect(b).To(BeNumerically(">", a))
		Expect(l.Len()).To(Equal(2))
		Expect(l.IDs()).To(Equal([]notify.CallbackID{a, b}))
	})

	It("should not reuse a removed id", func() {
		a := l.Add("a")
		Expect(l.Remove(a)).To(BeTrue())

		b := l.Add("b")

		Expect(b).NotTo(Equal(a))
	})

	It("should draw ids from a shared generator", func() {
		ids := idgen.New()
		first := notify.NewListWithIDs[string](ids)
		a := first.Add("a")

		second := notify.NewListWithIDs[string](ids)
		b := second.Add("b")

		Expect(b).NotTo(Equal(a))
		Expect(second.Remove(a)).To(BeFalse())
		Expect(second.Len()).To(Equal(1))
	})

	It("should report a missing id", func() {
		Expect(l.Remove(42)).To(BeFalse())
	})

	It("should visit in insertion order", func() {
		l.Add("a")
		l.Add("b")
		l.Add("c")

		visited := []string{}
		l.Each(func(_ notify.CallbackID, s string) {
			visited = append(visited, s)
		})

		Expect(visited).To(Equal([]string{"a", "b", "c"}))
	})
})

var _ = Describe("Notifier", func() {
	var n *notify.Notifier

	BeforeEach(func() {
		n = &notify.Notifier{}
	})

	It("should fire callbacks in order when set", func() {
		calls := []int{}
		n.AddCallback(func() { calls = append(calls, 1) })
		n.AddCallback(func() { calls = append(calls, 2) })

		n.SetChanged(true)

		Expect(n.HasChanged()).To(BeTrue())
		Expect(calls).To(Equal([]int{1, 2}))
	})

	It("should not fire callbacks when cleared", func() {
		count := 0
		n.AddCallback(func() { count++ })

		n.SetChanged(false)

		Expect(n.HasChanged()).To(BeFalse())
		Expect(count).To(Equal(0))
	})

	It("should fire on every set", func() {
		count := 0
		n.AddCallback(func() { count++ })

		n.SetChanged(true)
		n.SetChanged(true)

		Expect(count).To(Equal(2))
	})

	It("should stop calling a removed callback", func() {
		count := 0
		id := n.AddCallback(func() { count++ })

		Expect(n.RemoveCallback(id)).To(BeTrue())
		n.SetChanged(true)

		Expect(count).To(Equal(0))
		Expect(n.NumCallbacks()).To(Equal(0))
	})

	It("should fail to remove an unknown callback", func() {
		Expect(n.RemoveCallback(7)).To(BeFalse())
	})

	It("should tolerate a callback that adds another callback", func() {
		added := 0
		n.AddCallback(func() {
			n.AddCallback(func() { added++ })
		})

		n.SetChanged(true)
		Expect(added).To(Equal(0))
		Expect(n.NumCallbacks()).To(Equal(2))

		n.SetChanged(true)
		Expect(added).To(Equal(1))
	})

	It("should tolerate a callback that removes itself and a later one", func() {
		var first, second notify.CallbackID
		secondCalled := false

		first = n.AddCallback(func() {
			n.RemoveCallback(first)
			n.RemoveCallback(second)
		})
		second = n.AddCallback(func() { secondCalled = true })

		n.SetChanged(true)

		Expect(secondCalled).To(BeFalse())
		Expect(n.NumCallbacks()).To(Equal(0))
	})
})

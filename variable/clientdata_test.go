package variable

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/sarchlab/simsync/host"
	"github.com/sarchlab/simsync/idgen"
)

type sharedFlags struct {
	Mode  float64 `cbor:"mode"`
	Armed bool    `cbor:"armed"`
}

var _ = Describe("ClientDataArea", func() {
	var (
		mockCtrl *gomock.Controller
		h        *MockClientData
		logBuf   *bytes.Buffer
		ids      = ObjectIDs{DataDefID: 1, RequestID: 2, ClientDataID: 5}
	)

	newArea := func(size int) *ClientDataArea[sharedFlags] {
		h.EXPECT().MapClientDataNameToID("SIMSYNC_FLAGS", idgen.ID(5)).Return(nil)
		h.EXPECT().AddToClientDataDefinition(idgen.ID(1), size).Return(nil)

		logger, buf := newTestLogger()
		logBuf = buf

		return NewClientDataArea[sharedFlags](h, ids, size, nil, Params{
			Name:   "SIMSYNC_FLAGS",
			Mode:   AutoRead,
			Logger: logger,
		})
	}

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		h = NewMockClientData(mockCtrl)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should allocate the area", func() {
		v := newArea(64)
		h.EXPECT().CreateClientData(idgen.ID(5), 64, true).Return(nil)

		Expect(v.Allocate(true)).To(BeTrue())
		Expect(v.ClientDataID()).To(Equal(idgen.ID(5)))
	})

	It("should report a failed allocation", func() {
		v := newArea(64)
		h.EXPECT().CreateClientData(idgen.ID(5), 64, false).
			Return(host.ExceptionAlreadyCreated)

		Expect(v.Allocate(false)).To(BeFalse())
		Expect(logBuf.String()).To(ContainSubstring("ALREADY_CREATED"))
	})

	It("should use the default size", func() {
		v := newArea(DefaultClientDataSize)

		Expect(v.Size()).To(Equal(DefaultClientDataSize))
	})

	It("should request and decode content", func() {
		v := newArea(64)
		h.EXPECT().
			RequestClientData(idgen.ID(5), idgen.ID(2), idgen.ID(1), host.ClientDataPeriodOnce).
			Return(nil)

		v.RequestUpdate(0, 0)

		payload, err := CBOR.Marshal(sharedFlags{Mode: 2, Armed: true})
		Expect(err).NotTo(HaveOccurred())
		v.Process(payload, 0, 0)

		Expect(v.Data()).To(Equal(sharedFlags{Mode: 2, Armed: true}))
		Expect(v.HasChanged()).To(BeTrue())
	})

	It("should write local changes", func() {
		v := newArea(64)
		h.EXPECT().SetClientData(idgen.ID(5), idgen.ID(1), gomock.Any()).Return(nil)

		v.SetData(sharedFlags{Armed: true})
		v.FlushIfDirty()

		Expect(v.IsDirty()).To(BeFalse())
	})

	It("should let an unchanged host payload override local data under host-wins", func() {
		v := newArea(64)

		payload, err := CBOR.Marshal(sharedFlags{Mode: 1})
		Expect(err).NotTo(HaveOccurred())
		v.Process(payload, 0, 1)

		v.SetData(sharedFlags{Mode: 3, Armed: true})
		Expect(v.IsDirty()).To(BeTrue())

		v.Process(payload, 0.1, 2)

		Expect(v.Data()).To(Equal(sharedFlags{Mode: 1}))
		Expect(v.IsDirty()).To(BeFalse())
		Expect(v.HasChanged()).To(BeTrue())
		Expect(logBuf.String()).To(ContainSubstring(ErrDirtyRefresh.Error()))
	})

	It("should keep local data under local-wins", func() {
		v := newArea(64)
		v.dirtyPolicy = LocalWins

		payload, err := CBOR.Marshal(sharedFlags{Mode: 1})
		Expect(err).NotTo(HaveOccurred())
		v.Process(payload, 0, 1)

		v.SetData(sharedFlags{Mode: 3})
		v.Process(payload, 0.1, 2)

		Expect(v.Data()).To(Equal(sharedFlags{Mode: 3}))
		Expect(v.IsDirty()).To(BeTrue())
		Expect(v.HasChanged()).To(BeFalse())
	})

	It("should refuse content larger than the area", func() {
		v := newArea(2)

		v.SetData(sharedFlags{Mode: 12345.5, Armed: true})

		Expect(v.WriteData()).To(BeFalse())
		Expect(logBuf.String()).To(ContainSubstring("exceeds client data area"))
	})
})

var _ = Describe("BufferedClientDataArea", func() {
	var (
		mockCtrl *gomock.Controller
		h        *MockClientData
		v        *BufferedClientDataArea
		ids      = ObjectIDs{DataDefID: 1, RequestID: 2, ClientDataID: 5}
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		h = NewMockClientData(mockCtrl)

		h.EXPECT().MapClientDataNameToID("SIMSYNC_BLOB", idgen.ID(5)).Return(nil)
		h.EXPECT().AddToClientDataDefinition(idgen.ID(1), 4).Return(nil)

		logger, _ := newTestLogger()
		v = NewBufferedClientDataArea(h, ids, 4, Params{
			Name:   "SIMSYNC_BLOB",
			Logger: logger,
		})
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should change only after the last chunk", func() {
		calls := 0
		v.AddCallback(func() { calls++ })

		v.Reserve(10)

		v.Process([]byte{0, 1, 2, 3}, 0, 1)
		Expect(v.HasChanged()).To(BeFalse())
		Expect(v.ReceivedBytes()).To(Equal(4))

		v.Process([]byte{4, 5, 6, 7}, 0, 2)
		Expect(v.HasChanged()).To(BeFalse())

		v.Process([]byte{8, 9, 0, 0}, 0, 3)
		Expect(v.Complete()).To(BeTrue())
		Expect(v.HasChanged()).To(BeTrue())
		Expect(v.ReceivedChunks()).To(Equal(3))
		Expect(v.Data()).To(Equal([]byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}))
		Expect(calls).To(Equal(1))
	})

	It("should ignore chunks without a reservation", func() {
		v.Process([]byte{1, 2}, 0, 1)

		Expect(v.ReceivedBytes()).To(Equal(0))
	})

	It("should request chunks while a transfer is open", func() {
		h.EXPECT().
			RequestClientData(idgen.ID(5), idgen.ID(2), idgen.ID(1), host.ClientDataPeriodOnce).
			Return(nil)

		v.RequestUpdate(0, 0)
		v.Reserve(8)
		v.RequestUpdate(0, 0)
	})

	It("should write content chunk by chunk", func() {
		gomock.InOrder(
			h.EXPECT().SetClientData(idgen.ID(5), idgen.ID(1), []byte{1, 2, 3, 4}),
			h.EXPECT().SetClientData(idgen.ID(5), idgen.ID(1), []byte{5, 6, 7, 8}),
			h.EXPECT().SetClientData(idgen.ID(5), idgen.ID(1), []byte{9}),
		)

		v.SetContent([]byte{1, 2, 3, 4, 5, 6, 7, 8, 9})
		v.FlushIfDirty()

		Expect(v.IsDirty()).To(BeFalse())
	})
})

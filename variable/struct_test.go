package variable

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/sarchlab/simsync/host"
	"github.com/sarchlab/simsync/idgen"
)

type engineData struct {
	Altitude float64 `cbor:"PLANE ALTITUDE"`
	Throttle float64 `cbor:"GENERAL ENG THROTTLE LEVER POSITION:1"`
}

func encodeFields(values map[string]float64) []byte {
	payload, err := CBOR.Marshal(values)
	Expect(err).NotTo(HaveOccurred())

	return payload
}

var _ = Describe("Struct", func() {
	var (
		mockCtrl *gomock.Controller
		h        *MockDataDefinitions
		logBuf   *bytes.Buffer
		v        *Struct[engineData]
		ids      = ObjectIDs{DataDefID: 1, RequestID: 2}
	)

	fields := []FieldDef{
		{Name: "PLANE ALTITUDE", Unit: host.Feet},
		{Name: "GENERAL ENG THROTTLE LEVER POSITION", Index: 1, Unit: host.Percent},
	}

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		h = NewMockDataDefinitions(mockCtrl)

		h.EXPECT().AddToDataDefinition(idgen.ID(1), "PLANE ALTITUDE", host.Feet, float32(0))
		h.EXPECT().AddToDataDefinition(idgen.ID(1),
			"GENERAL ENG THROTTLE LEVER POSITION:1", host.Percent, float32(0))

		logger, buf := newTestLogger()
		logBuf = buf
		v = NewStruct[engineData](h, ids, fields, nil, Params{
			Name:   "ENGINE",
			Mode:   AutoReadWrite,
			Logger: logger,
		})
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should build full field names", func() {
		Expect(fields[0].FullName()).To(Equal("PLANE ALTITUDE"))
		Expect(fields[1].FullName()).
			To(Equal("GENERAL ENG THROTTLE LEVER POSITION:1"))
		Expect(v.RequestID()).To(Equal(idgen.ID(2)))
		Expect(v.DataDefID()).To(Equal(idgen.ID(1)))
	})

	It("should request data until the first response", func() {
		h.EXPECT().
			RequestDataOnSimObject(idgen.ID(2), idgen.ID(1), host.PeriodOnce).
			Return(nil).Times(2)

		v.RequestUpdate(0, 0)
		v.RequestUpdate(0, 0)
	})

	It("should request again only when due", func() {
		v.Process(encodeFields(map[string]float64{"PLANE ALTITUDE": 1}), 0.1, 1)

		v.RequestUpdate(0.1, 1)

		h.EXPECT().
			RequestDataOnSimObject(idgen.ID(2), idgen.ID(1), host.PeriodOnce).
			Return(nil)
		v.RequestUpdate(0.2, 2)
	})

	It("should decode a response and fire callbacks once", func() {
		calls := 0
		v.AddCallback(func() { calls++ })

		payload := encodeFields(map[string]float64{
			"PLANE ALTITUDE":                        3000,
			"GENERAL ENG THROTTLE LEVER POSITION:1": 45,
		})

		v.Process(payload, 0, 1)

		Expect(v.HasData()).To(BeTrue())
		Expect(v.HasChanged()).To(BeTrue())
		Expect(v.Data()).To(Equal(engineData{Altitude: 3000, Throttle: 45}))
		Expect(calls).To(Equal(1))

		v.Process(payload, 0.1, 2)

		Expect(v.HasChanged()).To(BeFalse())
		Expect(calls).To(Equal(1))
		Expect(v.TickStamp()).To(Equal(uint64(2)))
	})

	It("should report equal payloads when skipping the change check", func() {
		v.SetSkipChangeCheck(true)
		payload := encodeFields(map[string]float64{"PLANE ALTITUDE": 1})

		v.Process(payload, 0, 1)
		v.Process(payload, 0, 2)

		Expect(v.HasChanged()).To(BeTrue())
	})

	It("should log undecodable payloads", func() {
		v.Process([]byte{0xff}, 0, 1)

		Expect(v.HasData()).To(BeFalse())
		Expect(v.HasChanged()).To(BeFalse())
		Expect(logBuf.String()).To(ContainSubstring("cannot decode host data"))
	})

	It("should refuse periodic requests while auto-reading", func() {
		Expect(v.RequestPeriodic(host.PeriodSimFrame)).To(BeFalse())
		Expect(logBuf.String()).To(ContainSubstring(ErrPeriodicRequest.Error()))
	})

	It("should accept periodic requests without auto-read", func() {
		v.SetAutoRead(false)
		h.EXPECT().
			RequestDataOnSimObject(idgen.ID(2), idgen.ID(1), host.PeriodSimFrame).
			Return(nil)

		Expect(v.RequestPeriodic(host.PeriodSimFrame)).To(BeTrue())
	})

	It("should write local changes once", func() {
		var written []byte
		h.EXPECT().SetDataOnSimObject(idgen.ID(1), gomock.Any()).
			DoAndReturn(func(_ idgen.ID, payload []byte) error {
				written = payload
				return nil
			}).Times(1)

		v.SetData(engineData{Altitude: 500, Throttle: 10})
		Expect(v.IsDirty()).To(BeTrue())

		v.FlushIfDirty()
		v.FlushIfDirty()

		values := map[string]float64{}
		Expect(CBOR.Unmarshal(written, &values)).To(Succeed())
		Expect(values).To(HaveKeyWithValue("PLANE ALTITUDE", 500.0))
		Expect(v.IsDirty()).To(BeFalse())
	})

	It("should not mark equal data dirty", func() {
		v.SetData(engineData{})

		Expect(v.IsDirty()).To(BeFalse())
	})

	It("should keep local data under local-wins", func() {
		v.dirtyPolicy = LocalWins
		v.SetData(engineData{Altitude: 500})

		v.Process(encodeFields(map[string]float64{"PLANE ALTITUDE": 1}), 0, 1)

		Expect(v.Data().Altitude).To(Equal(500.0))
		Expect(v.IsDirty()).To(BeTrue())
	})

	It("should let an unchanged host payload override local data under host-wins", func() {
		payload := encodeFields(map[string]float64{"PLANE ALTITUDE": 100})
		v.Process(payload, 0, 1)

		v.SetData(engineData{Altitude: 500})
		Expect(v.IsDirty()).To(BeTrue())

		v.Process(payload, 0.1, 2)

		Expect(v.Data().Altitude).To(Equal(100.0))
		Expect(v.IsDirty()).To(BeFalse())
		Expect(v.HasChanged()).To(BeTrue())
		Expect(logBuf.String()).To(ContainSubstring(ErrDirtyRefresh.Error()))
	})

	It("should report an unchanged payload without a local write", func() {
		payload := encodeFields(map[string]float64{"PLANE ALTITUDE": 100})
		v.Process(payload, 0, 1)
		v.Process(payload, 0.1, 2)

		Expect(v.HasChanged()).To(BeFalse())
	})

	It("should clear the data definition on release", func() {
		h.EXPECT().ClearDataDefinition(idgen.ID(1)).Return(nil)

		v.Release()
	})
})

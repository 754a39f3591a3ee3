package monitoring_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/sarchlab/simsync/handler"
	"github.com/sarchlab/simsync/host"
	"github.com/sarchlab/simsync/host/memhost"
	"github.com/sarchlab/simsync/logging"
	"github.com/sarchlab/simsync/monitoring"
	"github.com/sarchlab/simsync/registry"
	"github.com/sarchlab/simsync/timing"
	"github.com/sarchlab/simsync/variable"
)

var _ = Describe("Monitor", func() {
	var (
		h       *memhost.Host
		hd      *handler.Handler
		engine  *timing.SerialEngine
		reg     *prometheus.Registry
		monitor *monitoring.Monitor
	)

	get := func(path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		monitor.Router().ServeHTTP(rec, req)

		return rec
	}

	getJSON := func(path string, out any) {
		rec := get(path)
		Expect(rec.Code).To(Equal(http.StatusOK), rec.Body.String())
		Expect(json.Unmarshal(rec.Body.Bytes(), out)).To(Succeed())
	}

	BeforeEach(func() {
		h = memhost.New(logging.Discard())
		reg = prometheus.NewRegistry()
		engine = timing.NewSerialEngine()

		hd = handler.MakeBuilder().
			WithHost(h).
			WithLogger(logging.Discard()).
			WithMetricsRegisterer(reg).
			Build("Handler")
		Expect(hd.Initialize()).To(BeTrue())

		h.SetNamed("ALTITUDE", 3000)
		hd.Inspect(func(r *registry.Registry) {
			r.MakeNamedVar("ALTITUDE", host.Feet, variable.AutoRead, 0, 0)
		})

		h.SetSimValue("SIMULATION TIME", 1)
		h.Step()
		Expect(hd.Update(handler.FrameData{Frame: 1})).To(BeTrue())

		monitor = monitoring.NewMonitor().
			WithLogger(logging.Discard()).
			WithGatherer(reg)
		monitor.RegisterEngine(engine)
		monitor.RegisterTarget(hd)
	})

	It("should list targets", func() {
		var names []string
		getJSON("/api/list_targets", &names)

		Expect(names).To(Equal([]string{"Handler"}))
	})

	It("should report the frame state", func() {
		var rsp map[string]any
		getJSON("/api/frame/Handler", &rsp)

		Expect(rsp["tick_counter"]).To(BeEquivalentTo(1))
		Expect(rsp["time_stamp"]).To(BeEquivalentTo(1))
		Expect(rsp["paused"]).To(BeFalse())
	})

	It("should return 404 for unknown targets", func() {
		Expect(get("/api/variables/Nobody").Code).To(Equal(http.StatusNotFound))
	})

	It("should list variables", func() {
		var vars []variable.Snapshot
		getJSON("/api/variables/Handler", &vars)

		names := []string{}
		for _, v := range vars {
			names = append(names, v.Name)
		}

		Expect(names).To(ContainElements("DEVELOPER_STATE", "IS_READY", "ALTITUDE"))

		for _, v := range vars {
			if v.Name == "ALTITUDE" {
				Expect(v.Value).To(Equal(3000.0))
				Expect(v.AutoRead).To(BeTrue())
			}
		}
	})

	It("should list sim objects and events", func() {
		var objs []variable.Snapshot
		getJSON("/api/simobjects/Handler", &objs)
		Expect(objs).To(HaveLen(1))
		Expect(objs[0].Name).To(Equal("BASE DATA"))

		var events []map[string]any
		getJSON("/api/events/Handler", &events)
		Expect(events).To(HaveLen(1))
	})

	It("should report stats", func() {
		var stats map[string]any
		getJSON("/api/stats/Handler", &stats)

		Expect(stats["sim_objects"]).To(BeEquivalentTo(1))
		Expect(stats["routed"]).To(BeNumerically(">=", 1))
	})

	It("should serialize a variable", func() {
		rec := get("/api/variable/Handler/ALTITUDE")

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).NotTo(BeEmpty())
		Expect(get("/api/variable/Handler/NOTHING").Code).
			To(Equal(http.StatusNotFound))
	})

	It("should reject malformed field requests", func() {
		rec := get("/api/field/" + url.PathEscape("{not json"))

		Expect(rec.Code).To(Equal(http.StatusBadRequest))
	})

	It("should expose the registry metrics", func() {
		rec := get("/metrics")

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(ContainSubstring("simsync_messages_routed_total"))
		Expect(rec.Body.String()).To(ContainSubstring("simsync_host_calls_total"))
	})

	It("should pause and continue the engine", func() {
		Expect(get("/api/pause").Code).To(Equal(http.StatusOK))
		Expect(get("/api/continue").Code).To(Equal(http.StatusOK))

		var now map[string]float64
		getJSON("/api/now", &now)
		Expect(now["now"]).To(Equal(0.0))
	})

	It("should track progress bars", func() {
		bar := monitor.CreateProgressBar("frames", 10)
		bar.IncrementInProgress(3)
		bar.MoveInProgressToFinished(2)

		var bars []map[string]any
		getJSON("/api/progress", &bars)
		Expect(bars).To(HaveLen(1))
		Expect(bars[0]["name"]).To(Equal("frames"))
		Expect(bars[0]["finished"]).To(BeEquivalentTo(2))
		Expect(bars[0]["in_progress"]).To(BeEquivalentTo(1))

		monitor.CompleteProgressBar(bar)
		getJSON("/api/progress", &bars)
		Expect(bars).To(BeEmpty())
	})

	It("should serve the page", func() {
		rec := get("/")

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(HavePrefix("<!DOCTYPE html>"))
	})
})

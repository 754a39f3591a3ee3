package registry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/sarchlab/simsync/host"
	"github.com/sarchlab/simsync/idgen"
)

type metrics struct {
	routed     *prometheus.CounterVec
	dropped    *prometheus.CounterVec
	exceptions *prometheus.CounterVec
	changes    prometheus.Counter
	flushes    prometheus.Counter
	registered *prometheus.GaugeVec
	pending    prometheus.Gauge
	drained    prometheus.Histogram
	hostCalls  *prometheus.CounterVec
	hostErrors *prometheus.CounterVec
}

// newMetrics creates the registry collectors. With a nil registerer they
// are created but not registered.
func newMetrics(reg prometheus.Registerer, name string) *metrics {
	f := promauto.With(reg)
	labels := prometheus.Labels{"registry": name}

	return &metrics{
		routed: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "simsync_messages_routed_total",
			Help:        "Dispatch messages delivered to their owner",
			ConstLabels: labels,
		}, []string{"kind"}),
		dropped: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "simsync_messages_dropped_total",
			Help:        "Dispatch messages without an owner",
			ConstLabels: labels,
		}, []string{"kind"}),
		exceptions: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "simsync_host_exceptions_total",
			Help:        "Exceptions reported by the host",
			ConstLabels: labels,
		}, []string{"exception"}),
		changes: f.NewCounter(prometheus.CounterOpts{
			Name:        "simsync_variable_changes_total",
			Help:        "Refreshes and responses that changed a variable",
			ConstLabels: labels,
		}),
		flushes: f.NewCounter(prometheus.CounterOpts{
			Name:        "simsync_variable_flushes_total",
			Help:        "Auto-write flushes of dirty variables",
			ConstLabels: labels,
		}),
		registered: f.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "simsync_registered",
			Help:        "Variables and events held by the registry",
			ConstLabels: labels,
		}, []string{"kind"}),
		pending: f.NewGauge(prometheus.GaugeOpts{
			Name:        "simsync_routable_requests",
			Help:        "Request IDs the registry routes responses for",
			ConstLabels: labels,
		}),
		drained: f.NewHistogram(prometheus.HistogramOpts{
			Name:        "simsync_messages_per_drain",
			Help:        "Messages handled by one drain of the dispatch queue",
			ConstLabels: labels,
			Buckets:     []float64{0, 1, 2, 5, 10, 20, 50, 100},
		}),
		hostCalls: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "simsync_host_calls_total",
			Help:        "Calls into the host API",
			ConstLabels: labels,
		}, []string{"method"}),
		hostErrors: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "simsync_host_call_errors_total",
			Help:        "Calls into the host API that failed",
			ConstLabels: labels,
		}, []string{"method"}),
	}
}

// instrumentedHost counts every host call and failure.
type instrumentedHost struct {
	host.Host
	metrics *metrics
}

func (h *instrumentedHost) observe(method string, err error) error {
	h.metrics.hostCalls.WithLabelValues(method).Inc()

	if err != nil {
		h.metrics.hostErrors.WithLabelValues(method).Inc()
	}

	return err
}

func (h *instrumentedHost) RegisterNamedVar(name string) host.DataID {
	id := h.Host.RegisterNamedVar(name)
	h.observe("RegisterNamedVar", nil)

	return id
}

func (h *instrumentedHost) NamedVarValue(id host.DataID, unit host.Unit) (float64, error) {
	v, err := h.Host.NamedVarValue(id, unit)
	return v, h.observe("NamedVarValue", err)
}

func (h *instrumentedHost) SetNamedVarValue(id host.DataID, unit host.Unit, value float64) error {
	return h.observe("SetNamedVarValue", h.Host.SetNamedVarValue(id, unit, value))
}

func (h *instrumentedHost) AircraftVarEnum(name string) host.DataID {
	id := h.Host.AircraftVarEnum(name)

	var err error
	if !id.Valid() {
		err = host.ExceptionNameUnrecognized
	}

	h.observe("AircraftVarEnum", err)

	return id
}

func (h *instrumentedHost) AircraftVarValue(id host.DataID, unit host.Unit, index int) (float64, error) {
	v, err := h.Host.AircraftVarValue(id, unit, index)
	return v, h.observe("AircraftVarValue", err)
}

func (h *instrumentedHost) ExecuteCalculatorCode(code string) error {
	return h.observe("ExecuteCalculatorCode", h.Host.ExecuteCalculatorCode(code))
}

func (h *instrumentedHost) AddToDataDefinition(defID idgen.ID, name string, unit host.Unit, epsilon float32) error {
	return h.observe("AddToDataDefinition",
		h.Host.AddToDataDefinition(defID, name, unit, epsilon))
}

func (h *instrumentedHost) RequestDataOnSimObject(reqID, defID idgen.ID, period host.Period) error {
	return h.observe("RequestDataOnSimObject",
		h.Host.RequestDataOnSimObject(reqID, defID, period))
}

func (h *instrumentedHost) SetDataOnSimObject(defID idgen.ID, payload []byte) error {
	return h.observe("SetDataOnSimObject", h.Host.SetDataOnSimObject(defID, payload))
}

func (h *instrumentedHost) ClearDataDefinition(defID idgen.ID) error {
	return h.observe("ClearDataDefinition", h.Host.ClearDataDefinition(defID))
}

func (h *instrumentedHost) MapClientDataNameToID(name string, clientDataID idgen.ID) error {
	return h.observe("MapClientDataNameToID",
		h.Host.MapClientDataNameToID(name, clientDataID))
}

func (h *instrumentedHost) CreateClientData(clientDataID idgen.ID, size int, readOnly bool) error {
	return h.observe("CreateClientData",
		h.Host.CreateClientData(clientDataID, size, readOnly))
}

func (h *instrumentedHost) AddToClientDataDefinition(defID idgen.ID, size int) error {
	return h.observe("AddToClientDataDefinition",
		h.Host.AddToClientDataDefinition(defID, size))
}

func (h *instrumentedHost) RequestClientData(
	clientDataID, reqID, defID idgen.ID,
	period host.ClientDataPeriod,
) error {
	return h.observe("RequestClientData",
		h.Host.RequestClientData(clientDataID, reqID, defID, period))
}

func (h *instrumentedHost) SetClientData(clientDataID, defID idgen.ID, payload []byte) error {
	return h.observe("SetClientData", h.Host.SetClientData(clientDataID, defID, payload))
}

func (h *instrumentedHost) ClearClientDataDefinition(defID idgen.ID) error {
	return h.observe("ClearClientDataDefinition", h.Host.ClearClientDataDefinition(defID))
}

func (h *instrumentedHost) MapClientEventToSimEvent(eventID idgen.ID, name string) error {
	return h.observe("MapClientEventToSimEvent",
		h.Host.MapClientEventToSimEvent(eventID, name))
}

func (h *instrumentedHost) TransmitClientEvent(eventID idgen.ID, data [5]uint32) error {
	return h.observe("TransmitClientEvent", h.Host.TransmitClientEvent(eventID, data))
}

func (h *instrumentedHost) AddClientEventToNotificationGroup(
	group host.GroupID,
	eventID idgen.ID,
	mask bool,
) error {
	return h.observe("AddClientEventToNotificationGroup",
		h.Host.AddClientEventToNotificationGroup(group, eventID, mask))
}

func (h *instrumentedHost) RemoveClientEvent(group host.GroupID, eventID idgen.ID) error {
	return h.observe("RemoveClientEvent", h.Host.RemoveClientEvent(group, eventID))
}

func (h *instrumentedHost) SubscribeToSystemEvent(eventID idgen.ID, name string) error {
	return h.observe("SubscribeToSystemEvent", h.Host.SubscribeToSystemEvent(eventID, name))
}

func (h *instrumentedHost) UnsubscribeFromSystemEvent(eventID idgen.ID) error {
	return h.observe("UnsubscribeFromSystemEvent", h.Host.UnsubscribeFromSystemEvent(eventID))
}

func (h *instrumentedHost) TriggerKeyEvent(id host.KeyEventID, params [5]uint32) error {
	return h.observe("TriggerKeyEvent", h.Host.TriggerKeyEvent(id, params))
}

// Package memhost provides an in-memory host. It answers data requests
// through its dispatch queue like a real simulator would, records every
// call, and lets tests inject values, events and exceptions.
package memhost

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/fxamacker/cbor/v2"

	"github.com/sarchlab/simsync/host"
	"github.com/sarchlab/simsync/idgen"
)

type aircraftKey struct {
	id    host.DataID
	index int
}

type dataDefField struct {
	name    string
	unit    host.Unit
	epsilon float32
}

type periodicRequest struct {
	reqID idgen.ID
	defID idgen.ID
}

type clientArea struct {
	name     string
	id       idgen.ID
	size     int
	readOnly bool
	created  bool
	data     []byte
}

type clientRequest struct {
	clientDataID idgen.ID
	reqID        idgen.ID
	defID        idgen.ID
	period       host.ClientDataPeriod
}

type eventMapping struct {
	name    string
	grouped bool
	mask    bool
	system  bool
}

// Transmission records one event sent to the host.
type Transmission struct {
	EventID idgen.ID
	Name    string
	Data    [5]uint32
}

// Host is an in-memory host.Host.
type Host struct {
	logger *slog.Logger
	enc    cbor.EncMode

	namedIDs    map[string]host.DataID
	namedValues map[host.DataID]float64

	aircraftIDs    map[string]host.DataID
	aircraftValues map[aircraftKey]float64
	calcCodes      []string

	fieldValues map[string]float64
	dataDefs    map[idgen.ID][]dataDefField
	periodic    []periodicRequest

	clientAreas    map[idgen.ID]*clientArea
	clientNames    map[string]idgen.ID
	clientDefs     map[idgen.ID]int
	clientRequests []clientRequest

	events        map[idgen.ID]*eventMapping
	transmissions []Transmission
	keyEvents     []KeyPress

	queue    []host.Message
	calls    map[string]int
	failures map[string]host.Exception
}

// KeyPress records one triggered key event.
type KeyPress struct {
	ID     host.KeyEventID
	Params [5]uint32
}

// New creates an empty in-memory host.
func New(logger *slog.Logger) *Host {
	if logger == nil {
		logger = slog.Default()
	}

	enc, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}

	return &Host{
		logger:         logger,
		enc:            enc,
		namedIDs:       make(map[string]host.DataID),
		namedValues:    make(map[host.DataID]float64),
		aircraftIDs:    make(map[string]host.DataID),
		aircraftValues: make(map[aircraftKey]float64),
		fieldValues:    make(map[string]float64),
		dataDefs:       make(map[idgen.ID][]dataDefField),
		clientAreas:    make(map[idgen.ID]*clientArea),
		clientNames:    make(map[string]idgen.ID),
		clientDefs:     make(map[idgen.ID]int),
		events:         make(map[idgen.ID]*eventMapping),
		calls:          make(map[string]int),
		failures:       make(map[string]host.Exception),
	}
}

func (h *Host) call(method string) error {
	h.calls[method]++

	if exc, ok := h.failures[method]; ok {
		h.logger.Debug("memhost failing call",
			"method", method, "exception", exc.String())
		return exc
	}

	return nil
}

// Calls returns how many times a host method was invoked.
func (h *Host) Calls(method string) int {
	return h.calls[method]
}

// ResetCalls clears the call counters.
func (h *Host) ResetCalls() {
	h.calls = make(map[string]int)
}

// FailOn makes every later call of the named method return exc.
func (h *Host) FailOn(method string, exc host.Exception) {
	h.failures[method] = exc
}

// ClearFailures removes all injected failures.
func (h *Host) ClearFailures() {
	h.failures = make(map[string]host.Exception)
}

// Enqueue appends an arbitrary message to the dispatch queue.
func (h *Host) Enqueue(msg host.Message) {
	h.queue = append(h.queue, msg)
}

// Pending returns the number of queued messages.
func (h *Host) Pending() int {
	return len(h.queue)
}

// NextDispatch pops the oldest queued message.
func (h *Host) NextDispatch() (host.Message, bool) {
	h.calls["NextDispatch"]++

	if len(h.queue) == 0 {
		return host.Message{}, false
	}

	msg := h.queue[0]
	h.queue = h.queue[1:]

	return msg, true
}

// Step answers periodic requests, as the host does once per frame.
func (h *Host) Step() {
	for _, r := range h.periodic {
		h.enqueueSimObjectData(r.reqID, r.defID)
	}

	for _, r := range h.clientRequests {
		if r.period == host.ClientDataPeriodVisualFrame {
			h.enqueueClientData(r)
		}
	}
}

// InjectException queues an exception message.
func (h *Host) InjectException(exc host.Exception, sendID, index uint32) {
	h.Enqueue(host.Message{
		Kind:      host.MsgException,
		Exception: exc,
		SendID:    sendID,
		Index:     index,
	})
}

// RegisterNamedVar returns the ID of a named variable, creating it on first
// use.
func (h *Host) RegisterNamedVar(name string) host.DataID {
	h.calls["RegisterNamedVar"]++

	if id, ok := h.namedIDs[name]; ok {
		return id
	}

	id := host.DataID(len(h.namedIDs))
	h.namedIDs[name] = id
	h.namedValues[id] = 0

	return id
}

// NamedVarValue reads a named variable.
func (h *Host) NamedVarValue(id host.DataID, _ host.Unit) (float64, error) {
	if err := h.call("NamedVarValue"); err != nil {
		return 0, err
	}

	v, ok := h.namedValues[id]
	if !ok {
		return 0, host.ExceptionUnrecognizedID
	}

	return v, nil
}

// SetNamedVarValue writes a named variable.
func (h *Host) SetNamedVarValue(id host.DataID, _ host.Unit, value float64) error {
	if err := h.call("SetNamedVarValue"); err != nil {
		return err
	}

	if _, ok := h.namedValues[id]; !ok {
		return host.ExceptionUnrecognizedID
	}

	h.namedValues[id] = value

	return nil
}

// UnregisterAllNamedVars is a no-op that is counted.
func (h *Host) UnregisterAllNamedVars() {
	h.calls["UnregisterAllNamedVars"]++
}

// SetNamed changes a named variable from the host side.
func (h *Host) SetNamed(name string, value float64) {
	id, ok := h.namedIDs[name]
	if !ok {
		id = host.DataID(len(h.namedIDs))
		h.namedIDs[name] = id
	}

	h.namedValues[id] = value
}

// Named reads a named variable from the host side.
func (h *Host) Named(name string) (float64, bool) {
	id, ok := h.namedIDs[name]
	if !ok {
		return 0, false
	}

	return h.namedValues[id], true
}

// DefineAircraftVar makes an aircraft variable name known.
func (h *Host) DefineAircraftVar(name string) host.DataID {
	if id, ok := h.aircraftIDs[name]; ok {
		return id
	}

	id := host.DataID(len(h.aircraftIDs))
	h.aircraftIDs[name] = id

	return id
}

// SetAircraft sets an aircraft variable value, defining the name if needed.
func (h *Host) SetAircraft(name string, index int, value float64) {
	id := h.DefineAircraftVar(name)
	h.aircraftValues[aircraftKey{id: id, index: index}] = value
}

// AircraftVarEnum looks up an aircraft variable. Unknown names yield
// host.InvalidDataID.
func (h *Host) AircraftVarEnum(name string) host.DataID {
	h.calls["AircraftVarEnum"]++

	id, ok := h.aircraftIDs[name]
	if !ok {
		return host.InvalidDataID
	}

	return id
}

// AircraftVarValue reads an aircraft variable.
func (h *Host) AircraftVarValue(
	id host.DataID,
	_ host.Unit,
	index int,
) (float64, error) {
	if err := h.call("AircraftVarValue"); err != nil {
		return 0, err
	}

	if !id.Valid() {
		return 0, host.ExceptionUnrecognizedID
	}

	return h.aircraftValues[aircraftKey{id: id, index: index}], nil
}

// ExecuteCalculatorCode records the code.
func (h *Host) ExecuteCalculatorCode(code string) error {
	if err := h.call("ExecuteCalculatorCode"); err != nil {
		return err
	}

	h.calcCodes = append(h.calcCodes, code)

	return nil
}

// CalculatorCodes returns the executed calculator code strings.
func (h *Host) CalculatorCodes() []string {
	return h.calcCodes
}

// SetSimValue sets the value of a sim object field by its full name.
func (h *Host) SetSimValue(fieldName string, value float64) {
	h.fieldValues[fieldName] = value
}

// SimValue reads a sim object field by its full name.
func (h *Host) SimValue(fieldName string) float64 {
	return h.fieldValues[fieldName]
}

// AddToDataDefinition appends a field to a data definition.
func (h *Host) AddToDataDefinition(
	defID idgen.ID,
	name string,
	unit host.Unit,
	epsilon float32,
) error {
	if err := h.call("AddToDataDefinition"); err != nil {
		return err
	}

	h.dataDefs[defID] = append(h.dataDefs[defID],
		dataDefField{name: name, unit: unit, epsilon: epsilon})

	return nil
}

// DataDefinitionFields lists the field names of a data definition.
func (h *Host) DataDefinitionFields(defID idgen.ID) []string {
	names := make([]string, 0, len(h.dataDefs[defID]))
	for _, f := range h.dataDefs[defID] {
		names = append(names, f.name)
	}

	return names
}

// RequestDataOnSimObject answers once right away, or on every Step for
// periodic requests.
func (h *Host) RequestDataOnSimObject(
	reqID, defID idgen.ID,
	period host.Period,
) error {
	if err := h.call("RequestDataOnSimObject"); err != nil {
		return err
	}

	if _, ok := h.dataDefs[defID]; !ok {
		return host.ExceptionUnrecognizedID
	}

	h.removePeriodic(reqID)

	switch period {
	case host.PeriodNever:
	case host.PeriodOnce:
		h.enqueueSimObjectData(reqID, defID)
	default:
		h.periodic = append(h.periodic,
			periodicRequest{reqID: reqID, defID: defID})
	}

	return nil
}

func (h *Host) removePeriodic(reqID idgen.ID) {
	kept := h.periodic[:0]
	for _, r := range h.periodic {
		if r.reqID != reqID {
			kept = append(kept, r)
		}
	}

	h.periodic = kept
}

func (h *Host) enqueueSimObjectData(reqID, defID idgen.ID) {
	values := make(map[string]float64, len(h.dataDefs[defID]))
	for _, f := range h.dataDefs[defID] {
		values[f.name] = h.fieldValues[f.name]
	}

	payload, err := h.enc.Marshal(values)
	if err != nil {
		h.logger.Error("memhost cannot encode sim object data",
			"request", reqID, "error", err)
		return
	}

	h.Enqueue(host.Message{
		Kind:      host.MsgSimObjectData,
		RequestID: reqID,
		Payload:   payload,
	})
}

// SetDataOnSimObject decodes the payload as a map of field names to values
// and stores every field that belongs to the definition.
func (h *Host) SetDataOnSimObject(defID idgen.ID, payload []byte) error {
	if err := h.call("SetDataOnSimObject"); err != nil {
		return err
	}

	fields, ok := h.dataDefs[defID]
	if !ok {
		return host.ExceptionUnrecognizedID
	}

	values := map[string]any{}
	if err := cbor.Unmarshal(payload, &values); err != nil {
		return host.ExceptionDataError
	}

	for _, f := range fields {
		v, found := values[f.name]
		if !found {
			continue
		}

		num, ok := toFloat(v)
		if !ok {
			return host.ExceptionInvalidDataType
		}

		h.fieldValues[f.name] = num
	}

	return nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case int64:
		return float64(n), true
	case bool:
		if n {
			return 1, true
		}

		return 0, true
	default:
		return 0, false
	}
}

// ClearDataDefinition drops a data definition and its periodic requests.
func (h *Host) ClearDataDefinition(defID idgen.ID) error {
	if err := h.call("ClearDataDefinition"); err != nil {
		return err
	}

	delete(h.dataDefs, defID)

	kept := h.periodic[:0]
	for _, r := range h.periodic {
		if r.defID != defID {
			kept = append(kept, r)
		}
	}

	h.periodic = kept

	return nil
}

// MapClientDataNameToID binds a client data area name to an ID.
func (h *Host) MapClientDataNameToID(name string, clientDataID idgen.ID) error {
	if err := h.call("MapClientDataNameToID"); err != nil {
		return err
	}

	if existing, ok := h.clientNames[name]; ok && existing != clientDataID {
		return host.ExceptionAlreadyCreated
	}

	h.clientNames[name] = clientDataID

	area, ok := h.clientAreas[clientDataID]
	if !ok {
		area = &clientArea{name: name, id: clientDataID}
		h.clientAreas[clientDataID] = area
	}

	area.name = name

	return nil
}

// CreateClientData allocates the memory of a mapped area.
func (h *Host) CreateClientData(clientDataID idgen.ID, size int, readOnly bool) error {
	if err := h.call("CreateClientData"); err != nil {
		return err
	}

	area, ok := h.clientAreas[clientDataID]
	if !ok {
		return host.ExceptionUnrecognizedID
	}

	if area.created {
		return host.ExceptionAlreadyCreated
	}

	area.created = true
	area.size = size
	area.readOnly = readOnly

	return nil
}

// AddToClientDataDefinition records the size of a client data definition.
func (h *Host) AddToClientDataDefinition(defID idgen.ID, size int) error {
	if err := h.call("AddToClientDataDefinition"); err != nil {
		return err
	}

	h.clientDefs[defID] = size

	return nil
}

// RequestClientData answers once right away, on every Step for visual
// frame requests, or on every write for on-set requests.
func (h *Host) RequestClientData(
	clientDataID, reqID, defID idgen.ID,
	period host.ClientDataPeriod,
) error {
	if err := h.call("RequestClientData"); err != nil {
		return err
	}

	if _, ok := h.clientAreas[clientDataID]; !ok {
		return host.ExceptionUnrecognizedID
	}

	kept := h.clientRequests[:0]
	for _, r := range h.clientRequests {
		if r.reqID != reqID {
			kept = append(kept, r)
		}
	}

	h.clientRequests = kept

	r := clientRequest{
		clientDataID: clientDataID,
		reqID:        reqID,
		defID:        defID,
		period:       period,
	}

	switch period {
	case host.ClientDataPeriodNever:
	case host.ClientDataPeriodOnce:
		h.enqueueClientData(r)
	default:
		h.clientRequests = append(h.clientRequests, r)
	}

	return nil
}

func (h *Host) enqueueClientData(r clientRequest) {
	area := h.clientAreas[r.clientDataID]

	payload := make([]byte, len(area.data))
	copy(payload, area.data)

	h.Enqueue(host.Message{
		Kind:      host.MsgClientData,
		RequestID: r.reqID,
		Payload:   payload,
	})
}

// SetClientData writes a client data area.
func (h *Host) SetClientData(clientDataID, defID idgen.ID, payload []byte) error {
	if err := h.call("SetClientData"); err != nil {
		return err
	}

	area, ok := h.clientAreas[clientDataID]
	if !ok {
		return host.ExceptionUnrecognizedID
	}

	if size, ok := h.clientDefs[defID]; ok && len(payload) > size {
		return host.ExceptionInvalidDataSize
	}

	h.storeClientData(area, payload)

	return nil
}

// WriteClientData writes a client data area from the host side, as another
// add-on sharing the area would.
func (h *Host) WriteClientData(name string, payload []byte) error {
	id, ok := h.clientNames[name]
	if !ok {
		return fmt.Errorf("client data area %q is not mapped", name)
	}

	h.storeClientData(h.clientAreas[id], payload)

	return nil
}

// ClientDataBytes returns the current content of a client data area.
func (h *Host) ClientDataBytes(name string) []byte {
	id, ok := h.clientNames[name]
	if !ok {
		return nil
	}

	return h.clientAreas[id].data
}

func (h *Host) storeClientData(area *clientArea, payload []byte) {
	area.data = make([]byte, len(payload))
	copy(area.data, payload)

	for _, r := range h.clientRequests {
		if r.clientDataID == area.id &&
			r.period == host.ClientDataPeriodOnSet {
			h.enqueueClientData(r)
		}
	}
}

// ClearClientDataDefinition drops a client data definition.
func (h *Host) ClearClientDataDefinition(defID idgen.ID) error {
	if err := h.call("ClearClientDataDefinition"); err != nil {
		return err
	}

	delete(h.clientDefs, defID)

	kept := h.clientRequests[:0]
	for _, r := range h.clientRequests {
		if r.defID != defID {
			kept = append(kept, r)
		}
	}

	h.clientRequests = kept

	return nil
}

// MapClientEventToSimEvent binds an event ID to a host event name.
func (h *Host) MapClientEventToSimEvent(eventID idgen.ID, name string) error {
	if err := h.call("MapClientEventToSimEvent"); err != nil {
		return err
	}

	if _, ok := h.events[eventID]; ok {
		return host.ExceptionEventIDDuplicate
	}

	h.events[eventID] = &eventMapping{name: name}

	return nil
}

// TransmitClientEvent records the event and notifies subscribers of the
// same host event.
func (h *Host) TransmitClientEvent(eventID idgen.ID, data [5]uint32) error {
	if err := h.call("TransmitClientEvent"); err != nil {
		return err
	}

	m, ok := h.events[eventID]
	if !ok {
		return host.ExceptionUnrecognizedID
	}

	h.transmissions = append(h.transmissions,
		Transmission{EventID: eventID, Name: m.name, Data: data})

	h.FireEvent(m.name, data[:]...)

	return nil
}

// Transmissions returns every transmitted event.
func (h *Host) Transmissions() []Transmission {
	return h.transmissions
}

// AddClientEventToNotificationGroup subscribes an event.
func (h *Host) AddClientEventToNotificationGroup(
	_ host.GroupID,
	eventID idgen.ID,
	mask bool,
) error {
	if err := h.call("AddClientEventToNotificationGroup"); err != nil {
		return err
	}

	m, ok := h.events[eventID]
	if !ok {
		return host.ExceptionUnrecognizedID
	}

	if m.grouped {
		return host.ExceptionAlreadySubscribed
	}

	m.grouped = true
	m.mask = mask

	return nil
}

// RemoveClientEvent unsubscribes an event.
func (h *Host) RemoveClientEvent(_ host.GroupID, eventID idgen.ID) error {
	if err := h.call("RemoveClientEvent"); err != nil {
		return err
	}

	m, ok := h.events[eventID]
	if !ok || !m.grouped {
		return host.ExceptionUnrecognizedID
	}

	m.grouped = false

	return nil
}

// SubscribeToSystemEvent subscribes an event ID to a system event.
func (h *Host) SubscribeToSystemEvent(eventID idgen.ID, name string) error {
	if err := h.call("SubscribeToSystemEvent"); err != nil {
		return err
	}

	if _, ok := h.events[eventID]; ok {
		return host.ExceptionEventIDDuplicate
	}

	h.events[eventID] = &eventMapping{name: name, system: true, grouped: true}

	return nil
}

// UnsubscribeFromSystemEvent drops a system event subscription.
func (h *Host) UnsubscribeFromSystemEvent(eventID idgen.ID) error {
	if err := h.call("UnsubscribeFromSystemEvent"); err != nil {
		return err
	}

	m, ok := h.events[eventID]
	if !ok || !m.system {
		return host.ExceptionUnrecognizedID
	}

	delete(h.events, eventID)

	return nil
}

// IsSubscribed tells if an event ID is in the notification group or
// subscribed to a system event.
func (h *Host) IsSubscribed(eventID idgen.ID) bool {
	m, ok := h.events[eventID]
	return ok && m.grouped
}

// FireEvent queues an event message for every subscribed event ID mapped to
// the host event name, in ID order.
func (h *Host) FireEvent(name string, data ...uint32) {
	if len(data) > 5 {
		data = data[:5]
	}

	kind := host.MsgEvent
	if len(data) > 1 {
		kind = host.MsgEventEx1
	}

	msg := host.Message{Kind: kind, NumParams: len(data)}
	copy(msg.Data[:], data)

	ids := make([]idgen.ID, 0)
	for id, m := range h.events {
		if m.name == name && m.grouped {
			ids = append(ids, id)
		}
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		msg.EventID = id
		h.Enqueue(msg)
	}
}

// TriggerKeyEvent records the key press and echoes it to the dispatch
// queue.
func (h *Host) TriggerKeyEvent(id host.KeyEventID, params [5]uint32) error {
	if err := h.call("TriggerKeyEvent"); err != nil {
		return err
	}

	h.keyEvents = append(h.keyEvents, KeyPress{ID: id, Params: params})
	h.PressKey(id, params[:]...)

	return nil
}

// KeyPresses returns every key event triggered through the host API.
func (h *Host) KeyPresses() []KeyPress {
	return h.keyEvents
}

// PressKey queues a key event as if the user pressed it.
func (h *Host) PressKey(id host.KeyEventID, params ...uint32) {
	if len(params) > 5 {
		params = params[:5]
	}

	msg := host.Message{
		Kind:       host.MsgKeyEvent,
		KeyEventID: id,
		NumParams:  len(params),
	}
	copy(msg.Data[:], params)

	h.Enqueue(msg)
}

var _ host.Host = (*Host)(nil)

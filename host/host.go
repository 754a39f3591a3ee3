// Package host describes the boundary to the simulator that owns the
// authoritative values. Every call is non-blocking: data requests are
// answered later through the dispatch queue.
package host

import "github.com/sarchlab/simsync/idgen"

// DataID is the host's handle for a named or aircraft variable. A negative
// value means the host does not know the name.
type DataID int64

// InvalidDataID is returned for unknown names.
const InvalidDataID DataID = -1

// Valid tells if the host recognized the name.
func (id DataID) Valid() bool {
	return id >= 0
}

// GroupID identifies a notification group that events are added to.
type GroupID uint32

// DefaultGroup is the notification group all events subscribe through.
const DefaultGroup GroupID = 0

// KeyEventID identifies a low-level input event.
type KeyEventID uint32

// Period controls how often the host sends sim object data.
type Period uint32

// Periods for sim object data requests.
const (
	PeriodNever Period = iota
	PeriodOnce
	PeriodVisualFrame
	PeriodSimFrame
	PeriodSecond
)

// ClientDataPeriod controls how often the host sends client data.
type ClientDataPeriod uint32

// Periods for client data requests.
const (
	ClientDataPeriodNever ClientDataPeriod = iota
	ClientDataPeriodOnce
	ClientDataPeriodVisualFrame
	ClientDataPeriodOnSet
	ClientDataPeriodSecond
)

// NamedVars accesses the host's named (local) variables.
type NamedVars interface {
	RegisterNamedVar(name string) DataID
	NamedVarValue(id DataID, unit Unit) (float64, error)
	SetNamedVarValue(id DataID, unit Unit, value float64) error
	UnregisterAllNamedVars()
}

// AircraftVars accesses indexed aircraft variables and calculator code.
type AircraftVars interface {
	AircraftVarEnum(name string) DataID
	AircraftVarValue(id DataID, unit Unit, index int) (float64, error)
	ExecuteCalculatorCode(code string) error
}

// DataDefinitions manages structured data definitions on sim objects.
type DataDefinitions interface {
	AddToDataDefinition(defID idgen.ID, name string, unit Unit, epsilon float32) error
	RequestDataOnSimObject(reqID, defID idgen.ID, period Period) error
	SetDataOnSimObject(defID idgen.ID, payload []byte) error
	ClearDataDefinition(defID idgen.ID) error
}

// ClientData manages named shared memory areas.
type ClientData interface {
	MapClientDataNameToID(name string, clientDataID idgen.ID) error
	CreateClientData(clientDataID idgen.ID, size int, readOnly bool) error
	AddToClientDataDefinition(defID idgen.ID, size int) error
	RequestClientData(clientDataID, reqID, defID idgen.ID, period ClientDataPeriod) error
	SetClientData(clientDataID, defID idgen.ID, payload []byte) error
	ClearClientDataDefinition(defID idgen.ID) error
}

// Events maps client events to host events and delivers them.
type Events interface {
	MapClientEventToSimEvent(eventID idgen.ID, name string) error
	TransmitClientEvent(eventID idgen.ID, data [5]uint32) error
	AddClientEventToNotificationGroup(group GroupID, eventID idgen.ID, mask bool) error
	RemoveClientEvent(group GroupID, eventID idgen.ID) error
	SubscribeToSystemEvent(eventID idgen.ID, name string) error
	UnsubscribeFromSystemEvent(eventID idgen.ID) error
}

// KeyEvents triggers low-level input events.
type KeyEvents interface {
	TriggerKeyEvent(id KeyEventID, params [5]uint32) error
}

// Dispatcher hands out inbound messages one at a time. It returns false
// when the queue is empty.
type Dispatcher interface {
	NextDispatch() (Message, bool)
}

// Host is the full collaborator the registry talks to.
type Host interface {
	NamedVars
	AircraftVars
	DataDefinitions
	ClientData
	Events
	KeyEvents
	Dispatcher
}

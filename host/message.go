package host

import (
	"fmt"

	"github.com/sarchlab/simsync/idgen"
)

// MsgKind tells what an inbound message carries.
type MsgKind uint32

// Message kinds delivered by the dispatch queue.
const (
	MsgNull MsgKind = iota
	MsgException
	MsgOpen
	MsgQuit
	MsgEvent
	MsgEventEx1
	MsgSimObjectData
	MsgClientData
	MsgKeyEvent
)

var msgKindNames = map[MsgKind]string{
	MsgNull:          "null",
	MsgException:     "exception",
	MsgOpen:          "open",
	MsgQuit:          "quit",
	MsgEvent:         "event",
	MsgEventEx1:      "event-ex1",
	MsgSimObjectData: "sim-object-data",
	MsgClientData:    "client-data",
	MsgKeyEvent:      "key-event",
}

func (k MsgKind) String() string {
	if name, ok := msgKindNames[k]; ok {
		return name
	}

	return fmt.Sprintf("unknown(%d)", uint32(k))
}

// Message is one inbound dispatch entry. Which fields are meaningful depends
// on Kind.
type Message struct {
	Kind MsgKind

	// RequestID correlates sim object and client data with the request
	// that asked for it.
	RequestID idgen.ID

	// EventID is set on event messages.
	EventID idgen.ID

	// KeyEventID is set on key event messages.
	KeyEventID KeyEventID

	// NumParams is the number of meaningful entries in Data.
	NumParams int
	Data      [5]uint32

	// Payload is the encoded body of a data message.
	Payload []byte

	// Exception, SendID and Index describe a host exception.
	Exception Exception
	SendID    uint32
	Index     uint32
}

// IsData tells if the message answers a data request.
func (m Message) IsData() bool {
	return m.Kind == MsgSimObjectData || m.Kind == MsgClientData
}

func (m Message) String() string {
	switch m.Kind {
	case MsgSimObjectData, MsgClientData:
		return fmt.Sprintf("%s request=%d bytes=%d", m.Kind, m.RequestID, len(m.Payload))
	case MsgEvent, MsgEventEx1:
		return fmt.Sprintf("%s event=%d data=%v", m.Kind, m.EventID, m.Data[:m.NumParams])
	case MsgKeyEvent:
		return fmt.Sprintf("%s key=%d data=%v", m.Kind, m.KeyEventID, m.Data[:m.NumParams])
	case MsgException:
		return fmt.Sprintf("%s %s send=%d index=%d", m.Kind, m.Exception, m.SendID, m.Index)
	default:
		return m.Kind.String()
	}
}

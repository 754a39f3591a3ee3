package idgen

import "fmt"

// Namespace names one of the independent correlation ID spaces.
type Namespace int

// The namespaces used by the registry. An ID from one namespace is never
// compared with an ID from another.
const (
	DataDefinition Namespace = iota
	Request
	ClientData
	Event
	numNamespaces
)

func (n Namespace) String() string {
	switch n {
	case DataDefinition:
		return "data-definition"
	case Request:
		return "request"
	case ClientData:
		return "client-data"
	case Event:
		return "event"
	default:
		return fmt.Sprintf("namespace(%d)", int(n))
	}
}

// Namespaces holds one sequential generator per namespace. IDs are never
// recycled, so a late response to a retired entity can only miss.
type Namespaces struct {
	gens [numNamespaces]Generator
}

// NewNamespaces creates the generators. Every namespace starts right after
// floor, which leaves the low IDs to the host.
func NewNamespaces(floor ID) *Namespaces {
	n := &Namespaces{}
	for i := range n.gens {
		n.gens[i] = NewAfter(floor)
	}

	return n
}

// Next returns the next ID of the given namespace.
func (n *Namespaces) Next(ns Namespace) ID {
	if ns < 0 || ns >= numNamespaces {
		panic(fmt.Sprintf("unknown id namespace %d", int(ns)))
	}

	return n.gens[ns].Generate()
}

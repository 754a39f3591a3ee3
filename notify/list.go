// Package notify keeps ordered callback lists and the change flag shared by
// every synchronized value.
package notify

import "github.com/sarchlab/simsync/idgen"

// CallbackID identifies a callback inside one list.
type CallbackID idgen.ID

// List stores callbacks in insertion order. Adding or removing callbacks
// while Each is running is allowed.
type List[F any] struct {
	ids     idgen.Generator
	order   []CallbackID
	entries map[CallbackID]F
}

// NewList creates an empty list.
func NewList[F any]() *List[F] {
	l := &List[F]{}
	l.init()

	return l
}

// NewListWithIDs creates an empty list that takes its IDs from ids. Lists
// sharing a generator never hand out the same ID, even after one of them is
// dropped and recreated.
func NewListWithIDs[F any](ids idgen.Generator) *List[F] {
	return &List[F]{
		ids:     ids,
		entries: make(map[CallbackID]F),
	}
}

func (l *List[F]) init() {
	if l.entries != nil {
		return
	}

	if l.ids == nil {
		l.ids = idgen.New()
	}

	l.entries = make(map[CallbackID]F)
}

// Add stores fn and returns its ID. It never fails.
func (l *List[F]) Add(fn F) CallbackID {
	l.init()

	id := CallbackID(l.ids.Generate())
	l.entries[id] = fn
	l.order = append(l.order, id)

	return id
}

// Remove deletes the callback with the given ID. It returns false if no
// such callback exists.
func (l *List[F]) Remove(id CallbackID) bool {
	if _, found := l.entries[id]; !found {
		return false
	}

	delete(l.entries, id)

	for i, existing := range l.order {
		if existing == id {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}

	return true
}

// Len returns the number of callbacks.
func (l *List[F]) Len() int {
	return len(l.entries)
}

// Has tells if a callback with the given ID is stored.
func (l *List[F]) Has(id CallbackID) bool {
	_, found := l.entries[id]
	return found
}

// IDs returns the callback IDs in insertion order.
func (l *List[F]) IDs() []CallbackID {
	ids := make([]CallbackID, len(l.order))
	copy(ids, l.order)

	return ids
}

// Each calls visit for every callback in insertion order. The ID order is
// captured before the first call. Callbacks added during the iteration are
// not visited, and callbacks removed during the iteration are skipped if
// they have not been visited yet.
func (l *List[F]) Each(visit func(id CallbackID, fn F)) {
	for _, id := range l.IDs() {
		fn, found := l.entries[id]
		if !found {
			continue
		}

		visit(id, fn)
	}
}

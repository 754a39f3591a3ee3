// Package idgen provides the sequential ID generators used to correlate host
// requests, subscriptions and callbacks.
package idgen

import "sync/atomic"

// ID is a unique identifier represented as a uint64.
type ID uint64

// Generator produces unique identifiers.
type Generator interface {
	Generate() ID
}

// New returns a sequential generator whose first emitted ID is "1".
func New() Generator {
	return &sequentialGenerator{}
}

// NewAfter returns a sequential generator whose first emitted ID is
// floor+1. IDs at or below floor are never produced.
func NewAfter(floor ID) Generator {
	return &sequentialGenerator{next: uint64(floor)}
}

type sequentialGenerator struct {
	next uint64
}

func (g *sequentialGenerator) Generate() ID {
	return ID(atomic.AddUint64(&g.next, 1))
}

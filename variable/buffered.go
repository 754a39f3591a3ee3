package variable

import (
	"fmt"

	"github.com/sarchlab/simsync/host"
)

// BufferedClientDataArea receives content larger than one client data
// area in fixed-size chunks. The receiver reserves the expected size, then
// every response appends one chunk. The change flag is set once all bytes
// arrived.
type BufferedClientDataArea struct {
	simObject

	host      host.ClientData
	chunkSize int
	content   []byte
	expected  int
	chunks    int
}

// NewBufferedClientDataArea maps the area name and defines one chunk.
func NewBufferedClientDataArea(
	h host.ClientData,
	ids ObjectIDs,
	chunkSize int,
	p Params,
) *BufferedClientDataArea {
	if chunkSize <= 0 {
		chunkSize = DefaultClientDataSize
	}

	v := &BufferedClientDataArea{
		simObject: newSimObject(p, "buffered-client-data", ids, nil),
		host:      h,
		chunkSize: chunkSize,
	}

	if err := h.MapClientDataNameToID(p.Name, ids.ClientDataID); err != nil {
		v.logger.Error("cannot map client data name", "error", err)
	}

	if err := h.AddToClientDataDefinition(ids.DataDefID, chunkSize); err != nil {
		v.logger.Error("cannot define client data", "error", err)
	}

	return v
}

// ChunkSize returns the size of one chunk.
func (v *BufferedClientDataArea) ChunkSize() int {
	return v.chunkSize
}

// Allocate creates the area.
func (v *BufferedClientDataArea) Allocate(readOnly bool) bool {
	err := v.host.CreateClientData(v.ids.ClientDataID, v.chunkSize, readOnly)
	if err != nil {
		v.logger.Error("cannot allocate client data", "error", err)
		return false
	}

	return true
}

// Reserve starts a new transfer of expected bytes, dropping any previous
// content.
func (v *BufferedClientDataArea) Reserve(expected int) {
	v.content = make([]byte, 0, expected)
	v.expected = expected
	v.chunks = 0
	v.SetChanged(false)
}

// Data returns the received content.
func (v *BufferedClientDataArea) Data() []byte {
	return v.content
}

// ExpectedBytes returns the reserved size.
func (v *BufferedClientDataArea) ExpectedBytes() int {
	return v.expected
}

// ReceivedBytes returns the number of bytes received so far.
func (v *BufferedClientDataArea) ReceivedBytes() int {
	return len(v.content)
}

// ReceivedChunks returns the number of chunks received so far.
func (v *BufferedClientDataArea) ReceivedChunks() int {
	return v.chunks
}

// Complete tells if all reserved bytes arrived.
func (v *BufferedClientDataArea) Complete() bool {
	return v.expected > 0 && len(v.content) >= v.expected
}

// SetContent replaces the content to be written and marks it dirty.
func (v *BufferedClientDataArea) SetContent(content []byte) {
	v.content = append([]byte(nil), content...)
	v.expected = len(content)
	v.dirty = true
}

// RequestData asks the host for the next chunk.
func (v *BufferedClientDataArea) RequestData() bool {
	return v.RequestPeriodic(host.ClientDataPeriodOnce)
}

// RequestPeriodic asks the host to send chunks on its own schedule,
// typically every time the sender writes one.
func (v *BufferedClientDataArea) RequestPeriodic(period host.ClientDataPeriod) bool {
	err := v.host.RequestClientData(
		v.ids.ClientDataID, v.ids.RequestID, v.ids.DataDefID, period)
	if err != nil {
		v.logger.Error("client data request failed", "error", err)
		return false
	}

	return true
}

// RequestUpdate requests a chunk while a transfer is incomplete.
func (v *BufferedClientDataArea) RequestUpdate(timeStamp float64, tickCounter uint64) {
	if v.expected == 0 || v.Complete() {
		return
	}

	if v.chunks > 0 && !v.Due(timeStamp, tickCounter) {
		return
	}

	v.RequestData()
}

// Process appends one chunk. Bytes beyond the reserved size are ignored.
func (v *BufferedClientDataArea) Process(payload []byte, timeStamp float64, tickCounter uint64) {
	if v.expected == 0 || v.Complete() {
		v.logger.Warn("chunk received without a reserved transfer",
			"bytes", len(payload))
		return
	}

	take := len(payload)
	if take > v.chunkSize {
		take = v.chunkSize
	}

	if remaining := v.expected - len(v.content); take > remaining {
		take = remaining
	}

	v.content = append(v.content, payload[:take]...)
	v.chunks++
	v.Stamp(timeStamp, tickCounter)

	if v.Complete() {
		v.received = true
		v.SetChanged(true)
	}
}

// WriteData sends the content to the host chunk by chunk.
func (v *BufferedClientDataArea) WriteData() bool {
	v.dirty = false

	for offset := 0; offset < len(v.content); offset += v.chunkSize {
		end := offset + v.chunkSize
		if end > len(v.content) {
			end = len(v.content)
		}

		err := v.host.SetClientData(
			v.ids.ClientDataID, v.ids.DataDefID, v.content[offset:end])
		if err != nil {
			v.logger.Error("client data write failed",
				"offset", offset, "error", err)
			return false
		}
	}

	return true
}

// FlushIfDirty writes local content.
func (v *BufferedClientDataArea) FlushIfDirty() {
	if v.dirty {
		v.WriteData()
	}
}

// Release clears the client data definition.
func (v *BufferedClientDataArea) Release() {
	if err := v.host.ClearClientDataDefinition(v.ids.DataDefID); err != nil {
		v.logger.Warn("cannot clear client data definition", "error", err)
	}
}

// Snapshot describes the variable for monitoring.
func (v *BufferedClientDataArea) Snapshot() Snapshot {
	s := v.snapshot()
	s.Bytes = len(v.content)

	return s
}

func (v *BufferedClientDataArea) String() string {
	return fmt.Sprintf("buffered-client-data %s received=%d/%d chunks=%d",
		v.name, len(v.content), v.expected, v.chunks)
}

var (
	_ SimObject = (*Struct[struct{}])(nil)
	_ SimObject = (*ClientDataArea[struct{}])(nil)
	_ SimObject = (*BufferedClientDataArea)(nil)
)

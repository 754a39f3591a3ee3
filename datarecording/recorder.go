package datarecording

import (
	"log/slog"

	"github.com/sarchlab/simsync/handler"
	"github.com/sarchlab/simsync/hooking"
	"github.com/sarchlab/simsync/host"
	"github.com/sarchlab/simsync/registry"
	"github.com/sarchlab/simsync/variable"
)

// Table names written by the Recorder.
const (
	MessageTableName   = "dispatch_messages"
	VariableTableName  = "variable_changes"
	ExceptionTableName = "host_exceptions"
	FrameTableName     = "frames"
)

// MessageEntry is one routed or dropped dispatch message.
type MessageEntry struct {
	Tick       uint64
	SimTime    float64
	Kind       string
	RequestID  uint64
	EventID    uint64
	KeyEventID uint32
	Owner      string
	Dropped    bool
}

// VariableEntry is one change or flush of a variable.
type VariableEntry struct {
	Tick     uint64
	SimTime  float64
	Action   string
	VarKind  string
	Name     string
	VarIndex int
	Value    float64
	Bytes    int
}

// ExceptionEntry is one host exception.
type ExceptionEntry struct {
	Tick      uint64
	SimTime   float64
	Exception string
	SendID    uint32
	ExcIndex  uint32
}

// FrameEntry is one frame seen by the handler.
type FrameEntry struct {
	Frame   uint64
	Tick    uint64
	SimTime float64
	Skipped bool
	Reason  string
}

// Clock tells the recorder the tick and simulation time of an entry.
type Clock interface {
	TimeStamp() float64
	TickCounter() uint64
}

// Recorder is a hook that records what the registry and the handler
// report. Attach it with AcceptHook.
type Recorder struct {
	backend DataRecorder
	clock   Clock
	logger  *slog.Logger
	exec    *execRecorder
	errors  int
}

// NewRecorder creates the tables and starts the session record.
func NewRecorder(backend DataRecorder, clock Clock, logger *slog.Logger) (*Recorder, error) {
	if logger == nil {
		logger = slog.Default()
	}

	tables := []struct {
		name   string
		sample any
	}{
		{MessageTableName, MessageEntry{}},
		{VariableTableName, VariableEntry{}},
		{ExceptionTableName, ExceptionEntry{}},
		{FrameTableName, FrameEntry{}},
	}

	for _, t := range tables {
		if err := backend.CreateTable(t.name, t.sample); err != nil {
			return nil, err
		}
	}

	exec, err := newExecRecorder(backend)
	if err != nil {
		return nil, err
	}

	exec.Start()

	return &Recorder{
		backend: backend,
		clock:   clock,
		logger:  logger.With("recorder", exec.sessionID),
		exec:    exec,
	}, nil
}

// SessionID returns the unique ID of the recorded session.
func (r *Recorder) SessionID() string {
	return r.exec.sessionID
}

// Errors returns the number of entries that could not be stored.
func (r *Recorder) Errors() int {
	return r.errors
}

// Func records one hook invocation.
func (r *Recorder) Func(ctx hooking.HookCtx) {
	switch ctx.Pos {
	case registry.HookPosMsgRouted:
		owner, _ := ctx.Detail.(string)
		r.message(ctx.Item.(host.Message), owner, false)
	case registry.HookPosMsgDropped:
		r.message(ctx.Item.(host.Message), "", true)
	case registry.HookPosHostException:
		r.exception(ctx.Item.(host.Message))
	case registry.HookPosVarChanged:
		r.variable("changed", ctx.Item.(variable.Snapshot))
	case registry.HookPosVarFlushed:
		r.variable("flushed", ctx.Item.(variable.Snapshot))
	case handler.HookPosFrameProcessed:
		r.frame(ctx.Item.(handler.FrameData), false, "")
	case handler.HookPosFrameSkipped:
		reason, _ := ctx.Detail.(string)
		r.frame(ctx.Item.(handler.FrameData), true, reason)
	}
}

func (r *Recorder) insert(table string, entry any) {
	if err := r.backend.InsertData(table, entry); err != nil {
		r.errors++
		r.logger.Error("cannot record entry", "table", table, "error", err)
	}
}

func (r *Recorder) message(msg host.Message, owner string, dropped bool) {
	r.insert(MessageTableName, MessageEntry{
		Tick:       r.clock.TickCounter(),
		SimTime:    r.clock.TimeStamp(),
		Kind:       msg.Kind.String(),
		RequestID:  uint64(msg.RequestID),
		EventID:    uint64(msg.EventID),
		KeyEventID: uint32(msg.KeyEventID),
		Owner:      owner,
		Dropped:    dropped,
	})
}

func (r *Recorder) exception(msg host.Message) {
	r.insert(ExceptionTableName, ExceptionEntry{
		Tick:      r.clock.TickCounter(),
		SimTime:   r.clock.TimeStamp(),
		Exception: msg.Exception.String(),
		SendID:    msg.SendID,
		ExcIndex:  msg.Index,
	})
}

func (r *Recorder) variable(action string, s variable.Snapshot) {
	r.insert(VariableTableName, VariableEntry{
		Tick:     r.clock.TickCounter(),
		SimTime:  r.clock.TimeStamp(),
		Action:   action,
		VarKind:  s.Kind,
		Name:     s.Name,
		VarIndex: s.Index,
		Value:    s.Value,
		Bytes:    s.Bytes,
	})
}

func (r *Recorder) frame(fd handler.FrameData, skipped bool, reason string) {
	r.insert(FrameTableName, FrameEntry{
		Frame:   fd.Frame,
		Tick:    r.clock.TickCounter(),
		SimTime: r.clock.TimeStamp(),
		Skipped: skipped,
		Reason:  reason,
	})
}

// Flush writes buffered entries.
func (r *Recorder) Flush() error {
	return r.backend.Flush()
}

// Close writes the session end and closes the database.
func (r *Recorder) Close() error {
	if err := r.exec.End(); err != nil {
		return err
	}

	return r.backend.Close()
}

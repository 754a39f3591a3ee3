package datarecording

import (
	"os"
	"strings"
	"time"

	"github.com/rs/xid"
)

// ExecInfo is one property of a recorded session.
type ExecInfo struct {
	Property string
	Value    string
}

// ExecTableName is the table holding session properties.
const ExecTableName = "exec_info"

// execRecorder records the session ID, the command line and the wall
// clock start and end of a session.
type execRecorder struct {
	recorder  DataRecorder
	sessionID string
	entries   []ExecInfo
}

func newExecRecorder(recorder DataRecorder) (*execRecorder, error) {
	if err := recorder.CreateTable(ExecTableName, ExecInfo{}); err != nil {
		return nil, err
	}

	return &execRecorder{
		recorder:  recorder,
		sessionID: xid.New().String(),
	}, nil
}

// Start remembers the start properties.
func (e *execRecorder) Start() {
	e.entries = append(e.entries,
		ExecInfo{"Session", e.sessionID},
		ExecInfo{"Start Time", now()},
		ExecInfo{"Command", strings.Join(os.Args, " ")},
	)

	if wd, err := os.Getwd(); err == nil {
		e.entries = append(e.entries, ExecInfo{"Working Directory", wd})
	}
}

// End writes the properties along with the end time.
func (e *execRecorder) End() error {
	e.entries = append(e.entries, ExecInfo{"End Time", now()})

	for _, entry := range e.entries {
		if err := e.recorder.InsertData(ExecTableName, entry); err != nil {
			return err
		}
	}

	e.entries = nil

	return e.recorder.Flush()
}

func now() string {
	return time.Now().Format("2006-01-02 15:04:05.000000000")
}

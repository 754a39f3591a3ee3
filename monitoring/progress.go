package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/sarchlab/simsync/idgen"
)

// ProgressBar tracks how many of a known number of items, usually frames,
// are running or done.
type ProgressBar struct {
	mu         sync.Mutex
	id         string
	name       string
	start      time.Time
	total      uint64
	finished   uint64
	inProgress uint64
}

func newProgressBar(id idgen.ID, name string, total uint64) *ProgressBar {
	return &ProgressBar{
		id:    strconv.FormatUint(uint64(id), 10),
		name:  name,
		start: time.Now(),
		total: total,
	}
}

type progressBarRsp struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	StartTime  time.Time `json:"start_time"`
	Total      uint64    `json:"total"`
	Finished   uint64    `json:"finished"`
	InProgress uint64    `json:"in_progress"`
}

func (b *ProgressBar) snapshot() progressBarRsp {
	b.mu.Lock()
	defer b.mu.Unlock()

	return progressBarRsp{
		ID:         b.id,
		Name:       b.name,
		StartTime:  b.start,
		Total:      b.total,
		Finished:   b.finished,
		InProgress: b.inProgress,
	}
}

// ID identifies the bar in the progress API.
func (b *ProgressBar) ID() string {
	return b.id
}

// IncrementInProgress marks items as started.
func (b *ProgressBar) IncrementInProgress(amount uint64) {
	b.mu.Lock()
	b.inProgress += amount
	b.mu.Unlock()
}

// IncrementFinished marks items as done without them having started.
func (b *ProgressBar) IncrementFinished(amount uint64) {
	b.mu.Lock()
	b.finished += amount
	b.mu.Unlock()
}

// MoveInProgressToFinished marks started items as done. It never takes
// more than what is in progress.
func (b *ProgressBar) MoveInProgressToFinished(amount uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	amount = min(amount, b.inProgress)
	b.inProgress -= amount
	b.finished += amount
}

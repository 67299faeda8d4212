package monitoring

import (
	"sync"
	"time"
)

// A ProgressBar is a tracker of the progress of a timed simulation run.
type ProgressBar struct {
	sync.Mutex
	Name      string    `json:"name"`
	StartTime time.Time `json:"start_time"`
	Total     uint64    `json:"total"`
	Finished  uint64    `json:"finished"`
}

// IncrementFinished adds a certain amount to the finished element.
func (b *ProgressBar) IncrementFinished(amount uint64) {
	b.Lock()
	defer b.Unlock()

	b.Finished += amount
}

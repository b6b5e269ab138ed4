package scanner

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/pokerjest/animateRenamer/internal/event"
	"github.com/pokerjest/animateRenamer/internal/model"
	log "github.com/sirupsen/logrus"
)

// TaskKind names what a coordinated task computes.
type TaskKind string

const (
	TaskMediaScan TaskKind = "media_scan"
	TaskSizes     TaskKind = "sizes"
)

// TaskStatus is the payload of scan_complete and scan_cancelled events.
type TaskStatus struct {
	ID   string   `json:"id"`
	Kind TaskKind `json:"kind"`
	Err  string   `json:"error,omitempty"`
}

type task struct {
	id     string
	kind   TaskKind
	cancel context.CancelFunc
}

// Coordinator 保证同一时间只有一个扫描任务: starting a task cancels the one in flight.
type Coordinator struct {
	mu      sync.Mutex
	current *task
	bus     event.Bus
}

func NewCoordinator(bus event.Bus) *Coordinator {
	return &Coordinator{bus: bus}
}

// Run cancels any in-flight task, then runs fn with a context that the next
// Run or Cancel will cancel. fn's error is returned unchanged; callers discard
// partial results on error.
func (c *Coordinator) Run(ctx context.Context, kind TaskKind, fn func(ctx context.Context) error) error {
	taskCtx, cancel := context.WithCancel(ctx)
	t := &task{id: uuid.New().String(), kind: kind, cancel: cancel}

	c.mu.Lock()
	if c.current != nil {
		log.Infof("Scanner: cancelling %s task %s", c.current.kind, c.current.id)
		c.current.cancel()
	}
	c.current = t
	c.mu.Unlock()

	err := fn(taskCtx)

	c.mu.Lock()
	if c.current == t {
		c.current = nil
	}
	c.mu.Unlock()
	cancel()

	status := TaskStatus{ID: t.id, Kind: kind}
	switch {
	case err == nil:
		event.Publish(c.bus, event.EventScanComplete, status)
	case IsCancelled(err):
		status.Err = err.Error()
		event.Publish(c.bus, event.EventScanCancelled, status)
	default:
		status.Err = err.Error()
		event.Publish(c.bus, event.EventScanComplete, status)
	}
	return err
}

// Cancel aborts the in-flight task. It is an input error when nothing runs.
func (c *Coordinator) Cancel() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return model.InputError("no ongoing task to cancel")
	}
	c.current.cancel()
	c.current = nil
	return nil
}

// Running reports the kind of the in-flight task, if any.
func (c *Coordinator) Running() (TaskKind, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return "", false
	}
	return c.current.kind, true
}

package index

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

// Queue hands index actions to the asynchronous work queue. Enqueue is
// called strictly after the owning transaction committed; enqueue failures
// are logged by the caller and never propagated into the primary operation.
type Queue interface {
	// Enqueue appends an action to the work queue.
	Enqueue(ctx context.Context, action Action) error
	// Dequeue pops the next action, blocking up to the backend's poll
	// interval. Returns nil when no action is available.
	Dequeue(ctx context.Context) (*Action, error)
	// Close releases the backend connection.
	Close() error
}

// NoopQueue is used when no search index backend is configured. Dispatch
// becomes a logged no-op, which is not an error.
type NoopQueue struct{}

func NewNoopQueue() *NoopQueue {
	return &NoopQueue{}
}

func (n *NoopQueue) Enqueue(ctx context.Context, action Action) error {
	logrus.Infof("index dispatch skipped, no search service configured: %s %s %s", action.Op, action.Kind, action.UUID)
	return nil
}

func (n *NoopQueue) Dequeue(ctx context.Context) (*Action, error) {
	return nil, nil
}

func (n *NoopQueue) Close() error {
	return nil
}

// MemoryQueue is an in-process queue for tests and single-node setups.
type MemoryQueue struct {
	mu      sync.Mutex
	actions []Action
}

func NewMemoryQueue() *MemoryQueue {
	return &MemoryQueue{}
}

func (m *MemoryQueue) Enqueue(ctx context.Context, action Action) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.actions = append(m.actions, action)
	return nil
}

func (m *MemoryQueue) Dequeue(ctx context.Context) (*Action, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.actions) == 0 {
		return nil, nil
	}
	action := m.actions[0]
	m.actions = m.actions[1:]
	return &action, nil
}

// Pending returns a copy of the queued actions without consuming them.
func (m *MemoryQueue) Pending() []Action {
	m.mu.Lock()
	defer m.mu.Unlock()
	pending := make([]Action, len(m.actions))
	copy(pending, m.actions)
	return pending
}

func (m *MemoryQueue) Close() error {
	return nil
}

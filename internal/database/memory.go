package database

import (
	"context"
	"sync"
)

// memoryTxKey is a context key type for in-memory transactions.
type memoryTxKey struct{}

type memoryTx struct{}

// Snapshotter is implemented by in-memory repositories that take part in a MemoryTxManager
// transaction. Snapshot captures the current state and returns a function that restores it.
type Snapshotter interface {
	Snapshot() func()
}

// Committer is implemented by participants whose Snapshot starts an undo log instead of
// copying their state. Commit discards the log once the transaction succeeds.
type Committer interface {
	Commit()
}

// MemoryTxManager implements TxManager for in-memory repositories.
//
// Transactions are fully serialized: WithTx holds a single mutex for the whole callback, which
// gives every participant the same exclusive scope a row lock gives the SQL backends. On error
// every registered participant is restored to its state before the callback ran.
type MemoryTxManager struct {
	mu           sync.Mutex
	participants []Snapshotter
}

// NewMemoryTxManager creates a MemoryTxManager for the given participants.
func NewMemoryTxManager(participants ...Snapshotter) *MemoryTxManager {
	return &MemoryTxManager{participants: participants}
}

// Register adds participants after construction. It must not be called while a transaction
// is running.
func (m *MemoryTxManager) Register(participants ...Snapshotter) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.participants = append(m.participants, participants...)
}

// WithTx executes fn exclusively and rolls back all participants when fn fails or panics.
func (m *MemoryTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(memoryTxKey{}).(*memoryTx); ok {
		return fn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	restores := make([]func(), 0, len(m.participants))
	for _, p := range m.participants {
		restores = append(restores, p.Snapshot())
	}

	defer func() {
		if p := recover(); p != nil {
			rollback(restores)
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, memoryTxKey{}, &memoryTx{})); err != nil {
		rollback(restores)
		return err
	}

	for _, p := range m.participants {
		if c, ok := p.(Committer); ok {
			c.Commit()
		}
	}
	return nil
}

func rollback(restores []func()) {
	for i := len(restores) - 1; i >= 0; i-- {
		restores[i]()
	}
}

package lock

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrNotHeld is returned when releasing a lock that is no longer owned.
var ErrNotHeld = errors.New("lock not held")

// Locker serializes work on a named resource.
type Locker interface {
	// Acquire blocks until the resource is free or ctx ends.
	Acquire(ctx context.Context, key string) (Lease, error)
}

// Lease is a held lock. Release must be called exactly once.
type Lease interface {
	Release(ctx context.Context) error
}

// New builds the Locker selected by cfg. The redis driver dials rcfg.
func New(cfg Config, rcfg RedisConfig) (Locker, error) {
	switch cfg.Driver {
	case DriverLocal, "":
		return NewLocal(), nil
	case DriverRedis:
		client, err := Dial(rcfg)
		if err != nil {
			return nil, err
		}
		return NewRedis(client, cfg), nil
	default:
		return nil, fmt.Errorf("unsupported lock driver: %s", cfg.Driver)
	}
}

// Local is an in-process Locker backed by one buffered channel per key.
type Local struct {
	mu    sync.Mutex
	slots map[string]chan struct{}
}

// NewLocal creates an empty in-process locker.
func NewLocal() *Local {
	return &Local{slots: make(map[string]chan struct{})}
}

func (l *Local) slot(key string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	ch, ok := l.slots[key]
	if !ok {
		ch = make(chan struct{}, 1)
		l.slots[key] = ch
	}
	return ch
}

// Acquire implements Locker.
func (l *Local) Acquire(ctx context.Context, key string) (Lease, error) {
	ch := l.slot(key)
	select {
	case ch <- struct{}{}:
		return &localLease{ch: ch}, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("acquire %s: %w", key, ctx.Err())
	}
}

type localLease struct {
	once sync.Once
	ch   chan struct{}
}

func (l *localLease) Release(_ context.Context) error {
	released := false
	l.once.Do(func() {
		<-l.ch
		released = true
	})
	if !released {
		return ErrNotHeld
	}
	return nil
}

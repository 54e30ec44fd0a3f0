// Package memory provides an in-process token tier.
//
// Records carry an expiration time and are dropped lazily on read or by
// PeriodicCleanUp. Nothing is shared across processes.
package memory

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// ErrUnavailable is returned by every call while the store is marked unavailable.
var ErrUnavailable = errors.New("memory store unavailable")

// Store is an in-memory token tier. Safe for concurrent use.
type Store struct {
	records     sync.Map
	unavailable atomic.Bool
	now         func() time.Time
}

type record struct {
	value     string
	expiresAt time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates an empty Store.
func New(opts ...Option) *Store {
	s := &Store{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetUnavailable makes every subsequent call fail with ErrUnavailable, the way a
// disabled browser storage would. Used to exercise degraded paths.
func (s *Store) SetUnavailable(v bool) {
	s.unavailable.Store(v)
}

// Get returns the value under key unless it is missing or expired.
func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	if s.unavailable.Load() {
		return "", false, ErrUnavailable
	}

	v, ok := s.records.Load(key)
	if !ok {
		return "", false, nil
	}
	rec := v.(record)
	if s.expired(rec) {
		s.records.Delete(key)
		return "", false, nil
	}
	return rec.value, true, nil
}

// Set stores value under key. A zero expiresAt never expires.
func (s *Store) Set(_ context.Context, key, value string, expiresAt time.Time) error {
	if s.unavailable.Load() {
		return ErrUnavailable
	}
	s.records.Store(key, record{value: value, expiresAt: expiresAt})
	return nil
}

// Delete removes key. Missing keys are ignored.
func (s *Store) Delete(_ context.Context, key string) error {
	if s.unavailable.Load() {
		return ErrUnavailable
	}
	s.records.Delete(key)
	return nil
}

// PeriodicCleanUp deletes expired records every interval until ctx is done.
//
//	go store.PeriodicCleanUp(ctx, time.Minute)
func (s *Store) PeriodicCleanUp(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.deleteExpired()
		case <-ctx.Done():
			return
		}
	}
}

func (s *Store) deleteExpired() {
	s.records.Range(func(key, value any) bool {
		if s.expired(value.(record)) {
			s.records.Delete(key)
		}
		return true
	})
}

func (s *Store) expired(rec record) bool {
	return !rec.expiresAt.IsZero() && s.now().After(rec.expiresAt)
}

// Package lock provides named, expiring locks used to serialize work that
// must not run twice at the same time, such as a tenant's dunning run.
package lock

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bsm/redislock"
	"github.com/faktura/backend/internal/domain/shared"
	"github.com/redis/go-redis/v9"
)

// RedisLocker implements shared.Locker with bsm/redislock
type RedisLocker struct {
	client *redislock.Client
	prefix string
}

// NewRedisLocker creates a locker on a Redis client
func NewRedisLocker(rdb redis.UniversalClient) *RedisLocker {
	return &RedisLocker{
		client: redislock.New(rdb),
		prefix: "faktura:lock:",
	}
}

// Obtain tries once to take the lock; a held lock yields shared.ErrLocked
func (l *RedisLocker) Obtain(ctx context.Context, key string, ttl time.Duration) (shared.Lock, error) {
	lk, err := l.client.Obtain(ctx, l.prefix+key, ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, shared.ErrLocked
	}
	if err != nil {
		return nil, err
	}
	return &redisLock{lock: lk}, nil
}

type redisLock struct {
	lock *redislock.Lock
}

// Release ignores locks that already expired
func (r *redisLock) Release(ctx context.Context) error {
	err := r.lock.Release(ctx)
	if errors.Is(err, redislock.ErrLockNotHeld) {
		return nil
	}
	return err
}

// MemoryLocker implements shared.Locker within one process
type MemoryLocker struct {
	mu   sync.Mutex
	held map[string]memoryHold
	now  func() time.Time
	seq  uint64
}

type memoryHold struct {
	token   uint64
	expires time.Time
}

// NewMemoryLocker creates an in-process locker
func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{held: make(map[string]memoryHold), now: time.Now}
}

// Obtain takes the lock unless an unexpired holder exists
func (l *MemoryLocker) Obtain(_ context.Context, key string, ttl time.Duration) (shared.Lock, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if h, ok := l.held[key]; ok && now.Before(h.expires) {
		return nil, shared.ErrLocked
	}
	l.seq++
	l.held[key] = memoryHold{token: l.seq, expires: now.Add(ttl)}
	return &memoryLock{locker: l, key: key, token: l.seq}, nil
}

type memoryLock struct {
	locker *MemoryLocker
	key    string
	token  uint64
}

// Release frees the lock if this holder still owns it
func (m *memoryLock) Release(context.Context) error {
	m.locker.mu.Lock()
	defer m.locker.mu.Unlock()
	if h, ok := m.locker.held[m.key]; ok && h.token == m.token {
		delete(m.locker.held, m.key)
	}
	return nil
}

var (
	_ shared.Locker = (*RedisLocker)(nil)
	_ shared.Locker = (*MemoryLocker)(nil)
)

package cache

import (
	"errors"

	"github.com/faktura/backend/internal/domain/shared"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrRedisRequired is returned when Redis is missing and fallback is disabled
var ErrRedisRequired = errors.New("redis is required for idempotency but not configured")

// IdempotencyStoreFactory picks the idempotency store for the deployment
type IdempotencyStoreFactory struct {
	logger                *zap.Logger
	keyPrefix             string
	allowInMemoryFallback bool
}

// IdempotencyStoreFactoryOption is a functional option for configuring the factory
type IdempotencyStoreFactoryOption func(*IdempotencyStoreFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) IdempotencyStoreFactoryOption {
	return func(f *IdempotencyStoreFactory) {
		f.logger = logger
	}
}

// WithKeyPrefix overrides DefaultKeyPrefix
func WithKeyPrefix(prefix string) IdempotencyStoreFactoryOption {
	return func(f *IdempotencyStoreFactory) {
		f.keyPrefix = prefix
	}
}

// WithInMemoryFallback controls whether a missing Redis client falls back to
// the in-memory store. Default is true.
func WithInMemoryFallback(allow bool) IdempotencyStoreFactoryOption {
	return func(f *IdempotencyStoreFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewIdempotencyStoreFactory creates a new factory
func NewIdempotencyStoreFactory(opts ...IdempotencyStoreFactoryOption) *IdempotencyStoreFactory {
	f := &IdempotencyStoreFactory{
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateStore returns a Redis store when client is set, the in-memory store otherwise
func (f *IdempotencyStoreFactory) CreateStore(client redis.UniversalClient) (shared.IdempotencyStore, error) {
	if client != nil {
		f.logger.Info("using Redis idempotency store")
		return NewRedisIdempotencyStore(client, f.keyPrefix), nil
	}
	if !f.allowInMemoryFallback {
		return nil, ErrRedisRequired
	}
	f.logger.Warn("Redis not configured, using in-memory idempotency store; " +
		"dunning runs are only deduplicated within this instance")
	return NewInMemoryIdempotencyStore(), nil
}

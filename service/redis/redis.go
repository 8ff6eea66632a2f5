package redis

import (
	"errors"
	"time"

	"github.com/x-xyz/stakeview/base/ctx"
)

const (
	// Forever stores a key without expiration
	Forever = time.Duration(-1)
)

var (
	ErrNotFound = errors.New("redis: key not found")
	ErrNoTTL    = errors.New("redis: key has no ttl")
)

// Service is the subset of redis commands the caches are built on
type Service interface {
	Ping(context ctx.Ctx) error
	Get(context ctx.Ctx, key string) ([]byte, error)
	Set(context ctx.Ctx, key string, val []byte, expire time.Duration) error
	Del(context ctx.Ctx, keys ...string) (int, error)
	Exists(context ctx.Ctx, key string) (bool, error)
	// TTL returns the remaining seconds of key
	TTL(context ctx.Ctx, key string) (int, error)
}

package cache

import (
	"errors"
	"time"

	"github.com/x-xyz/stakeview/base/ctx"
	"github.com/x-xyz/stakeview/base/metrics"
	"github.com/x-xyz/stakeview/service/cache/provider"
)

var (
	ErrNotFound = errors.New("Cache not found")
)

// OneTimeGetter loads the value on a cache miss, it must return a pointer
// of the same type as the container passed to GetByFunc
type OneTimeGetter func() (interface{}, error)

type Serializer func(interface{}) ([]byte, error)

type Deserializer func([]byte, interface{}) error

// high order cache service
type Service interface {
	// GetByFunc fills container from cache, or from getter on a miss.
	// Concurrent misses on one key share a single getter call.
	GetByFunc(c ctx.Ctx, key string, container interface{}, getter OneTimeGetter) error
	Get(c ctx.Ctx, key string, container interface{}) error
	Set(c ctx.Ctx, key string, value interface{}) error
	Del(c ctx.Ctx, key string) error
}

type ServiceConfig struct {
	Ttl         time.Duration
	Pfx         string
	Cache       provider.Provider
	Metrics     metrics.Service
	Serialize   Serializer
	Deserialize Deserializer
}

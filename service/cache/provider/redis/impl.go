package redis

import (
	"time"

	"github.com/x-xyz/stakeview/base/ctx"
	"github.com/x-xyz/stakeview/service/cache/provider"
	"github.com/x-xyz/stakeview/service/redis"
)

type impl struct {
	redis redis.Service
}

func NewRedis(redis redis.Service) provider.Provider {
	return &impl{redis}
}

func (im *impl) Get(c ctx.Ctx, key string) ([]byte, time.Duration, error) {
	if val, err := im.redis.Get(c, key); err != nil {
		if err == redis.ErrNotFound {
			return nil, 0, provider.ErrNotFound
		}
		c.WithField("err", err).WithField("key", key).Error("redis.Get failed")
		return nil, 0, err
	} else if ttl, err := im.redis.TTL(c, key); err == redis.ErrNoTTL {
		return val, 0, nil
	} else if err == redis.ErrNotFound {
		// expired between GET and TTL
		return nil, 0, provider.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).WithField("key", key).Error("redis.TTL failed")
		return nil, 0, err
	} else {
		return val, time.Duration(ttl) * time.Second, nil
	}
}

func (im *impl) Set(c ctx.Ctx, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = redis.Forever
	}
	if err := im.redis.Set(c, key, value, ttl); err != nil {
		c.WithField("err", err).WithField("key", key).Error("redis.Set failed")
		return err
	}
	return nil
}

func (im *impl) Del(c ctx.Ctx, key string) error {
	if _, err := im.redis.Del(c, key); err != nil {
		c.WithField("err", err).WithField("key", key).Error("redis.Del failed")
		return err
	}
	return nil
}

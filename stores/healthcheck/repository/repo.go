package repository

import (
	"time"

	"github.com/x-xyz/stakeview/base/ctx"
	hcdomain "github.com/x-xyz/stakeview/domain/healthcheck"
	"github.com/x-xyz/stakeview/domain/keys"
	"github.com/x-xyz/stakeview/service/chain"
	"github.com/x-xyz/stakeview/service/redis"
)

const pingTimeout = 2 * time.Second

type impl struct {
	chainClient chain.Client
	redisCache  redis.Service
}

// New creates the health check repo, redisCache may be nil when no shared cache is configured
func New(
	chainClient chain.Client,
	redisCache redis.Service,
) hcdomain.HealthCheckRepo {
	return &impl{
		chainClient: chainClient,
		redisCache:  redisCache,
	}
}

func (im *impl) PingChain(context ctx.Ctx) error {
	ctx, cancel := ctx.WithTimeout(context, pingTimeout)
	defer cancel()
	if _, err := im.chainClient.BlockNumber(ctx); err != nil {
		context.WithField("err", err).Error("ping chain error")
		return err
	}
	return nil
}

func (im *impl) PingCache(context ctx.Ctx) error {
	if im.redisCache == nil {
		return nil
	}
	ctx, cancel := ctx.WithTimeout(context, pingTimeout)
	defer cancel()
	if err := im.redisCache.Set(ctx, keys.RedisKey(keys.PfxHealthCheck, "testset"), []byte("1"), 30*time.Second); err != nil {
		context.WithField("err", err).Error("test redis set failed")
		return err
	}
	return nil
}

package healthcheck

import (
	"github.com/x-xyz/stakeview/base/ctx"
)

// HealthCheckUsecase represents the healthCheck's usecases
type HealthCheckUsecase interface {
	Check(context ctx.Ctx) error
}

// HealthCheckRepo is repository layer of healthCheck
type HealthCheckRepo interface {
	PingChain(context ctx.Ctx) error
	PingCache(context ctx.Ctx) error
}

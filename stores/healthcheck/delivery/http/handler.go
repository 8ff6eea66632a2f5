package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/stakeview/base/ctx"
	"github.com/x-xyz/stakeview/base/delivery"
	hcdomain "github.com/x-xyz/stakeview/domain/healthcheck"
)

type handler struct {
	usecase hcdomain.HealthCheckUsecase
}

func New(e *echo.Echo, us hcdomain.HealthCheckUsecase) {
	h := &handler{usecase: us}
	e.GET("/health", h.check)
}

// check reports 503 while the rpc node or the cache cannot be reached
func (h *handler) check(c echo.Context) error {
	context := c.Get("ctx").(ctx.Ctx)
	if err := h.usecase.Check(context); err != nil {
		context.WithField("err", err).Warn("healthCheck.Check failed")
		return delivery.MakeJsonResp(c, http.StatusServiceUnavailable, map[string]string{
			"healthy": "unavailable",
			"error":   err.Error(),
		})
	}
	return delivery.MakeJsonResp(c, http.StatusOK, map[string]string{"healthy": "ok"})
}

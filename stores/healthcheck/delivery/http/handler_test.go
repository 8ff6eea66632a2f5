package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/x-xyz/stakeview/base/ctx"
	"github.com/x-xyz/stakeview/middleware"
)

type fakeHealthCheck struct {
	err error
}

func (f *fakeHealthCheck) Check(ctx.Ctx) error {
	return f.err
}

func TestCheck(t *testing.T) {
	tests := []struct {
		desc      string
		err       error
		expStatus int
		expResp   string
	}{
		{
			desc:      "healthy",
			expStatus: http.StatusOK,
			expResp:   `{"data":{"healthy":"ok"},"status":"success"}`,
		},
		{
			desc:      "rpc node down",
			err:       errors.New("dial tcp: connection refused"),
			expStatus: http.StatusServiceUnavailable,
			expResp:   `{"data":{"healthy":"unavailable","error":"dial tcp: connection refused"},"status":"fail"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			req := require.New(t)
			e := echo.New()
			e.Use(middleware.InitMiddleware(nil).AddContext())
			New(e, &fakeHealthCheck{err: tt.err})

			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			req.Equal(tt.expStatus, rec.Code)
			req.True(json.Valid(rec.Body.Bytes()))
			req.JSONEq(tt.expResp, rec.Body.String())
		})
	}
}

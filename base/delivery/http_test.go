package delivery

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"

	"github.com/x-xyz/stakeview/domain"
)

func TestMakeJsonResp(t *testing.T) {
	tests := []struct {
		desc      string
		status    int
		data      interface{}
		expStatus int
		expResp   JsonResponse
	}{
		{
			desc:      "success",
			status:    http.StatusOK,
			data:      "ok",
			expStatus: http.StatusOK,
			expResp:   JsonResponse{Data: "ok", Status: JsonResponseStatusSuccess},
		},
		{
			desc:      "precondition",
			status:    http.StatusInternalServerError,
			data:      xerrors.Errorf("no wallet: %w", domain.ErrPreconditionUnmet),
			expStatus: http.StatusConflict,
			expResp:   JsonResponse{Data: "no wallet: precondition unmet", Status: JsonResponseStatusFail, Kind: "preconditionUnmet"},
		},
		{
			desc:      "reverted",
			status:    http.StatusInternalServerError,
			data:      domain.ErrTransactionReverted,
			expStatus: http.StatusUnprocessableEntity,
			expResp:   JsonResponse{Data: "transaction reverted", Status: JsonResponseStatusFail, Kind: "transactionReverted"},
		},
		{
			desc:      "fetch failure",
			status:    http.StatusInternalServerError,
			data:      domain.ErrFetchFailure,
			expStatus: http.StatusBadGateway,
			expResp:   JsonResponse{Data: "fetch failure", Status: JsonResponseStatusFail, Kind: "fetchFailure"},
		},
		{
			desc:      "unknown error keeps status",
			status:    http.StatusInternalServerError,
			data:      xerrors.New("boom"),
			expStatus: http.StatusInternalServerError,
			expResp:   JsonResponse{Data: "boom", Status: JsonResponseStatusFail},
		},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			req := require.New(t)
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			req.NoError(MakeJsonResp(c, tt.status, tt.data))
			req.Equal(tt.expStatus, rec.Code)

			var resp JsonResponse
			req.NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
			req.Equal(tt.expResp, resp)
		})
	}
}

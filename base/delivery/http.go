package delivery

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/stakeview/domain"
)

type JsonResponseStatus string

const (
	JsonResponseStatusSuccess JsonResponseStatus = "success"
	JsonResponseStatusFail    JsonResponseStatus = "fail"
)

type JsonResponse struct {
	Data   interface{}        `json:"data"`
	Status JsonResponseStatus `json:"status"`
	Kind   string             `json:"kind,omitempty"`
}

// StatusOf maps an error to the http status reported for it
func StatusOf(err error, fallback int) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrBadParamInput), errors.Is(err, domain.ErrInvalidAddress):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrPreconditionUnmet):
		return http.StatusConflict
	case errors.Is(err, domain.ErrTransactionRejected), errors.Is(err, domain.ErrTransactionReverted):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrFetchFailure):
		return http.StatusBadGateway
	}
	return fallback
}

func MakeJsonResp(c echo.Context, status int, data interface{}) error {
	if err, ok := data.(error); ok {
		status = StatusOf(err, status)
		return c.JSON(status, JsonResponse{err.Error(), JsonResponseStatusFail, domain.ErrorKind(err)})
	}

	if status >= 400 {
		return c.JSON(status, JsonResponse{Data: data, Status: JsonResponseStatusFail})
	}

	if status >= 200 && status < 300 {
		return c.JSON(status, JsonResponse{Data: data, Status: JsonResponseStatusSuccess})
	}

	return c.JSON(status, data)
}

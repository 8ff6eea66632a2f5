package notice

import (
	"time"

	bCtx "github.com/x-xyz/stakeview/base/ctx"
)

type Level string

const (
	LevelInfo  Level = "info"
	LevelError Level = "error"
)

// Notice is a user visible, dismissible message
type Notice struct {
	Id        string    `json:"id"`
	Level     Level     `json:"level"`
	Kind      string    `json:"kind,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

type UseCase interface {
	Info(ctx bCtx.Ctx, message string) *Notice
	// Error derives the notice kind from the staking error taxonomy
	Error(ctx bCtx.Ctx, message string, err error) *Notice
	List(ctx bCtx.Ctx) []*Notice
	Dismiss(ctx bCtx.Ctx, id string) error
}

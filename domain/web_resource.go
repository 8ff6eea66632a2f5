package domain

import (
	"github.com/x-xyz/stakeview/base/ctx"
)

// WebResourceReaderRepository fetches the raw content behind one kind of uri
type WebResourceReaderRepository interface {
	Get(ctx.Ctx, string) ([]byte, error)
}

type WebResourceUseCase interface {
	Get(ctx.Ctx, string) ([]byte, error)
	// GetJson fetches the uri and verifies the content is valid json
	GetJson(ctx.Ctx, string) ([]byte, error)
}

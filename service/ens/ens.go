package ens

import (
	"github.com/x-xyz/stakeview/base/ctx"
	"github.com/x-xyz/stakeview/domain"
)

type ENS interface {
	// Resolve returns the address of name, ErrNotFound if the name is unregistered
	Resolve(ctx ctx.Ctx, name string) (domain.Address, error)
	// ReverseResolve returns the primary name of address, "" if it has none
	ReverseResolve(ctx ctx.Ctx, address domain.Address) (string, error)
}

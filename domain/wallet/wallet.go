package wallet

import (
	"math/big"

	"github.com/ethereum/go-ethereum/core/types"
	bCtx "github.com/x-xyz/stakeview/base/ctx"
	"github.com/x-xyz/stakeview/domain"
)

// Session holds the connected account, empty when disconnected
type Session interface {
	CurrentAddress() domain.Address
	// Subscribe registers fn for address changes and returns the unsubscribe func.
	// fn may be called again with an unchanged address.
	Subscribe(fn func(address domain.Address)) func()
}

type SessionUseCase interface {
	Session
	Connect(ctx bCtx.Ctx, address domain.Address) error
	Disconnect(ctx bCtx.Ctx)
}

// Signer signs transactions on behalf of the accounts it holds keys for
type Signer interface {
	Accounts() []domain.Address
	SignTx(ctx bCtx.Ctx, from domain.Address, tx *types.Transaction, chainId *big.Int) (*types.Transaction, error)
}

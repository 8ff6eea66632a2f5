package staking

import (
	"math/big"

	bCtx "github.com/x-xyz/stakeview/base/ctx"
	"github.com/x-xyz/stakeview/domain"
)

type SliceStatus string

const (
	SliceStatusIdle    SliceStatus = "idle"
	SliceStatusLoading SliceStatus = "loading"
	SliceStatusReady   SliceStatus = "ready"
	SliceStatusFailed  SliceStatus = "failed"
)

type SliceState struct {
	Status SliceStatus `json:"status"`
	Error  string      `json:"error,omitempty"`
}

func (s SliceState) IsLoading() bool {
	return s.Status == SliceStatusLoading
}

// Snapshot is a read only copy of the synchronizer state
type Snapshot struct {
	Address         domain.Address
	OwnedNfts       []*OwnedNft
	StakedTokens    []domain.TokenId
	ClaimableReward *big.Int

	OwnedNftsState       SliceState
	StakedTokensState    SliceState
	ClaimableRewardState SliceState
}

// SyncUseCase keeps the owned/staked/reward slices consistent with the connected wallet
type SyncUseCase interface {
	// Start subscribes to the wallet session and contract registry
	Start(ctx bCtx.Ctx)
	// Stop unsubscribes and waits for in-flight fetches
	Stop()
	Snapshot() *Snapshot
	RefreshOwnedNfts(ctx bCtx.Ctx, address domain.Address)
	RefreshStakeInfo(ctx bCtx.Ctx, address domain.Address)
}

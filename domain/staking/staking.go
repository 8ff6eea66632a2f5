package staking

import (
	"math/big"

	"github.com/ethereum/go-ethereum/core/types"

	bCtx "github.com/x-xyz/stakeview/base/ctx"
	"github.com/x-xyz/stakeview/domain"
)

type ContractKind string

const (
	ContractCollection ContractKind = "collection"
	ContractStaking    ContractKind = "staking"
)

// OwnedNft is one token of the collection held by the connected wallet
type OwnedNft struct {
	TokenId      domain.TokenId `json:"id"`
	MetadataName string         `json:"metadataName"`
	MetadataUrl  string         `json:"metadataUrl"`
	Image        string         `json:"image,omitempty"`
}

// Stakeable reports whether the token can be offered for staking, tokens
// without a metadata url are listed only.
func (n *OwnedNft) Stakeable() bool {
	return n.MetadataUrl != ""
}

// StakeInfo is the getStakeInfo result, staked tokens and rewards always come together
type StakeInfo struct {
	TokensStaked []domain.TokenId
	Rewards      *big.Int
}

// Receipt of a settled transaction
type Receipt struct {
	TxHash      domain.TxHash      `json:"txHash"`
	BlockNumber domain.BlockNumber `json:"blockNumber"`
	GasUsed     uint64             `json:"gasUsed"`
	Logs        []*types.Log       `json:"-"`
}

// CollectionUseCase is the read/write surface of the NFT collection contract
type CollectionUseCase interface {
	Address() domain.Address
	OwnedTokens(ctx bCtx.Ctx, owner domain.Address) ([]*OwnedNft, error)
	TokenMetadata(ctx bCtx.Ctx, tokenId domain.TokenId) (*OwnedNft, error)
	IsApprovedForAll(ctx bCtx.Ctx, owner, operator domain.Address) (bool, error)
	// SetApprovalForAll returns once the transaction is mined
	SetApprovalForAll(ctx bCtx.Ctx, owner, operator domain.Address, approved bool) (*Receipt, error)
}

// StakingUseCase is the read/write surface of the staking contract
type StakingUseCase interface {
	Address() domain.Address
	GetStakeInfo(ctx bCtx.Ctx, staker domain.Address) (*StakeInfo, error)
	// Stake returns once the transaction is mined
	Stake(ctx bCtx.Ctx, owner domain.Address, tokenIds []domain.TokenId) (*Receipt, error)
	// ClaimRewards returns once the transaction is mined
	ClaimRewards(ctx bCtx.Ctx, owner domain.Address) (*Receipt, error)
}

// ContractRegistry tracks whether each configured contract is resolved on chain
type ContractRegistry interface {
	IsReady(kind ContractKind) bool
	// Subscribe registers fn for readiness changes and returns the unsubscribe func
	Subscribe(fn func(kind ContractKind, ready bool)) func()
}

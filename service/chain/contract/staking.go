package contract

import (
	"math/big"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	baseabi "github.com/x-xyz/stakeview/base/abi"
	bCtx "github.com/x-xyz/stakeview/base/ctx"
	"github.com/x-xyz/stakeview/service/chain"
)

type StakingContract interface {
	Address() common.Address
	// GetStakeInfo returns the staked token ids and the claimable rewards of staker
	GetStakeInfo(ctx bCtx.Ctx, staker common.Address) ([]*big.Int, *big.Int, error)
	Stake(ctx bCtx.Ctx, from common.Address, tokenIds []*big.Int) (common.Hash, error)
	ClaimRewards(ctx bCtx.Ctx, from common.Address) (common.Hash, error)
}

type staking struct {
	chainService chain.Client
	abi          ethabi.ABI
	addr         common.Address
}

func NewStaking(chainService chain.Client, addr common.Address) StakingContract {
	return &staking{
		abi:          baseabi.StakingABI,
		chainService: chainService,
		addr:         addr,
	}
}

func (s *staking) Address() common.Address {
	return s.addr
}

func (s *staking) GetStakeInfo(ctx bCtx.Ctx, staker common.Address) ([]*big.Int, *big.Int, error) {
	unpacked, err := s.chainService.Call(ctx, s.addr, nil, s.abi, "getStakeInfo", staker)
	if err != nil {
		return nil, nil, err
	}
	return unpacked[0].([]*big.Int), unpacked[1].(*big.Int), nil
}

func (s *staking) Stake(ctx bCtx.Ctx, from common.Address, tokenIds []*big.Int) (common.Hash, error) {
	return s.chainService.Transact(ctx, from, s.addr, s.abi, "stake", tokenIds)
}

func (s *staking) ClaimRewards(ctx bCtx.Ctx, from common.Address) (common.Hash, error) {
	return s.chainService.Transact(ctx, from, s.addr, s.abi, "claimRewards")
}

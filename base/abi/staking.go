package abi

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

var StakingABI abi.ABI

// ERC721 staking contract: stake token ids, accrue an ERC20 reward
var stakingABI = `[
{"type":"function","name":"getStakeInfo","stateMutability":"view","inputs":[{"type":"address","name":"_staker"}],"outputs":[{"type":"uint256[]","name":"_tokensStaked"},{"type":"uint256","name":"_rewards"}]},
{"type":"function","name":"stake","stateMutability":"nonpayable","inputs":[{"type":"uint256[]","name":"_tokenIds"}],"outputs":[]},
{"type":"function","name":"claimRewards","stateMutability":"nonpayable","inputs":[],"outputs":[]},
{"type":"event","anonymous":false,"name":"TokensStaked","inputs":[{"type":"address","name":"staker","indexed":true},{"type":"uint256[]","name":"tokenIds","indexed":true}]},
{"type":"event","anonymous":false,"name":"RewardsClaimed","inputs":[{"type":"address","name":"staker","indexed":true},{"type":"uint256","name":"rewardAmount"}]}
]`

func init() {
	_abi, err := abi.JSON(strings.NewReader(stakingABI))
	if err != nil {
		panic("Failed to parse staking abi")
	}
	StakingABI = _abi
}

type RewardsClaimedLog struct {
	Staker       common.Address // indexed
	RewardAmount *big.Int
}

func ToRewardsClaimedLog(log *types.Log) (*RewardsClaimedLog, error) {
	var claimed RewardsClaimedLog
	if err := StakingABI.UnpackIntoInterface(&claimed, "RewardsClaimed", log.Data); err != nil {
		return nil, err
	}
	claimed.Staker = common.BytesToAddress(log.Topics[1].Bytes())
	return &claimed, nil
}

// FindRewardsClaimed returns the first RewardsClaimed event emitted by contract, or nil
func FindRewardsClaimed(logs []*types.Log, contract common.Address) (*RewardsClaimedLog, error) {
	sig := StakingABI.Events["RewardsClaimed"].ID
	for _, l := range logs {
		if l.Address != contract || len(l.Topics) < 2 || l.Topics[0] != sig {
			continue
		}
		return ToRewardsClaimedLog(l)
	}
	return nil, nil
}

package usecase

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/xerrors"

	bCtx "github.com/x-xyz/stakeview/base/ctx"
	"github.com/x-xyz/stakeview/base/log"
	"github.com/x-xyz/stakeview/domain"
	"github.com/x-xyz/stakeview/domain/staking"
	"github.com/x-xyz/stakeview/service/chain"
	"github.com/x-xyz/stakeview/service/chain/contract"
)

type StakingUseCaseCfg struct {
	ChainClient    chain.Client
	Contract       contract.StakingContract
	ReceiptTimeout time.Duration
}

type impl struct {
	client         chain.Client
	contract       contract.StakingContract
	receiptTimeout time.Duration
}

func NewStaking(cfg *StakingUseCaseCfg) staking.StakingUseCase {
	if cfg.ReceiptTimeout <= 0 {
		cfg.ReceiptTimeout = contract.DefaultReceiptTimeout
	}
	return &impl{
		client:         cfg.ChainClient,
		contract:       cfg.Contract,
		receiptTimeout: cfg.ReceiptTimeout,
	}
}

func (im *impl) Address() domain.Address {
	return domain.Address(im.contract.Address().Hex())
}

func (im *impl) GetStakeInfo(c bCtx.Ctx, staker domain.Address) (*staking.StakeInfo, error) {
	ids, rewards, err := im.contract.GetStakeInfo(c, common.HexToAddress(staker.String()))
	if err != nil {
		c.WithFields(log.Fields{"err": err, "staker": staker}).Error("contract.GetStakeInfo failed")
		return nil, xerrors.Errorf("getStakeInfo %s: %v: %w", staker, err, domain.ErrFetchFailure)
	}

	info := &staking.StakeInfo{
		TokensStaked: make([]domain.TokenId, 0, len(ids)),
		Rewards:      rewards,
	}
	for _, id := range ids {
		info.TokensStaked = append(info.TokensStaked, domain.TokenIdFromBigInt(id))
	}
	if info.Rewards == nil {
		info.Rewards = big.NewInt(0)
	}
	return info, nil
}

func (im *impl) Stake(c bCtx.Ctx, owner domain.Address, tokenIds []domain.TokenId) (*staking.Receipt, error) {
	ids := make([]*big.Int, 0, len(tokenIds))
	for _, tokenId := range tokenIds {
		id, err := tokenId.ToBigInt()
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	hash, err := im.contract.Stake(c, common.HexToAddress(owner.String()), ids)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "owner": owner, "tokenIds": tokenIds}).Error("contract.Stake failed")
		return nil, err
	}
	return contract.Settle(c, im.client, hash, im.receiptTimeout)
}

func (im *impl) ClaimRewards(c bCtx.Ctx, owner domain.Address) (*staking.Receipt, error) {
	hash, err := im.contract.ClaimRewards(c, common.HexToAddress(owner.String()))
	if err != nil {
		c.WithFields(log.Fields{"err": err, "owner": owner}).Error("contract.ClaimRewards failed")
		return nil, err
	}
	return contract.Settle(c, im.client, hash, im.receiptTimeout)
}

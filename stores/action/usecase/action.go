package usecase

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/xerrors"

	"github.com/x-xyz/stakeview/base/abi"
	bCtx "github.com/x-xyz/stakeview/base/ctx"
	"github.com/x-xyz/stakeview/base/log"
	"github.com/x-xyz/stakeview/base/metrics"
	"github.com/x-xyz/stakeview/base/units"
	"github.com/x-xyz/stakeview/domain"
	"github.com/x-xyz/stakeview/domain/notice"
	"github.com/x-xyz/stakeview/domain/staking"
	"github.com/x-xyz/stakeview/domain/wallet"
)

type ActionUseCaseCfg struct {
	Session        wallet.Session
	Registry       staking.ContractRegistry
	Collection     staking.CollectionUseCase
	Staking        staking.StakingUseCase
	Sync           staking.SyncUseCase
	Notices        notice.UseCase
	RewardDecimals int32
	RewardSymbol   string
	Metrics        metrics.Service
}

type impl struct {
	session        wallet.Session
	registry       staking.ContractRegistry
	collection     staking.CollectionUseCase
	staking        staking.StakingUseCase
	sync           staking.SyncUseCase
	notices        notice.UseCase
	rewardDecimals int32
	rewardSymbol   string
	met            metrics.Service
}

func NewAction(cfg *ActionUseCaseCfg) staking.ActionUseCase {
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.NewNop()
	}
	return &impl{
		session:        cfg.Session,
		registry:       cfg.Registry,
		collection:     cfg.Collection,
		staking:        cfg.Staking,
		sync:           cfg.Sync,
		notices:        cfg.Notices,
		rewardDecimals: cfg.RewardDecimals,
		rewardSymbol:   cfg.RewardSymbol,
		met:            cfg.Metrics,
	}
}

// Stake approves the staking contract as operator when needed, then stakes
// tokenId. A failed step stops the saga and leaves the later steps notRun.
func (im *impl) Stake(c bCtx.Ctx, tokenId domain.TokenId) (*staking.StakeOutcome, error) {
	defer im.met.BumpTime("tx.time", "action", "stake").End()

	if _, err := tokenId.ToBigInt(); err != nil {
		return nil, err
	}
	owner, err := im.precondition(staking.ContractCollection, staking.ContractStaking)
	if err != nil {
		im.report(c, "Staking unavailable", err)
		return nil, err
	}
	c = bCtx.WithLogFields(c, log.Fields{"owner": owner, "tokenId": tokenId})

	outcome := &staking.StakeOutcome{
		TokenId:  tokenId,
		Approval: staking.NotRun(staking.StepEnsureApproved),
		Stake:    staking.NotRun(staking.StepSubmitStake),
	}

	outcome.Approval = im.ensureApproved(c, owner)
	if outcome.Approval.Failed() {
		im.report(c, "Approval failed", outcome.Approval.Err)
		return outcome, outcome.Approval.Err
	}

	outcome.Stake = im.submitStake(c, owner, tokenId)
	if outcome.Stake.Failed() {
		im.report(c, fmt.Sprintf("Staking #%s failed", tokenId), outcome.Stake.Err)
		return outcome, outcome.Stake.Err
	}

	c.WithField("tx", outcome.Stake.Receipt.TxHash).Info("token staked")
	im.notices.Info(c, fmt.Sprintf("Staked #%s", tokenId))
	im.sync.RefreshOwnedNfts(c, owner)
	im.sync.RefreshStakeInfo(c, owner)
	return outcome, nil
}

func (im *impl) ensureApproved(c bCtx.Ctx, owner domain.Address) staking.StepOutcome {
	step := staking.StepOutcome{Step: staking.StepEnsureApproved}
	operator := im.staking.Address()

	approved, err := im.collection.IsApprovedForAll(c, owner, operator)
	if err != nil {
		step.Status, step.Err = staking.StepStatusFailed, err
		return step
	}
	if approved {
		step.Status = staking.StepStatusSkipped
		return step
	}

	receipt, err := im.collection.SetApprovalForAll(c, owner, operator, true)
	step.Receipt = receipt
	if err != nil {
		step.Status, step.Err = staking.StepStatusFailed, err
		return step
	}
	step.Status = staking.StepStatusSucceeded
	return step
}

func (im *impl) submitStake(c bCtx.Ctx, owner domain.Address, tokenId domain.TokenId) staking.StepOutcome {
	step := staking.StepOutcome{Step: staking.StepSubmitStake}
	receipt, err := im.staking.Stake(c, owner, []domain.TokenId{tokenId})
	step.Receipt = receipt
	if err != nil {
		step.Status, step.Err = staking.StepStatusFailed, err
		return step
	}
	step.Status = staking.StepStatusSucceeded
	return step
}

func (im *impl) ClaimRewards(c bCtx.Ctx) (*staking.ClaimOutcome, error) {
	defer im.met.BumpTime("tx.time", "action", "claimRewards").End()

	owner, err := im.precondition(staking.ContractStaking)
	if err != nil {
		im.report(c, "Claiming unavailable", err)
		return nil, err
	}
	c = bCtx.WithLogFields(c, log.Fields{"owner": owner})

	outcome := &staking.ClaimOutcome{Claim: staking.StepOutcome{Step: staking.StepClaimRewards}}
	receipt, err := im.staking.ClaimRewards(c, owner)
	outcome.Claim.Receipt = receipt
	if err != nil {
		outcome.Claim.Status, outcome.Claim.Err = staking.StepStatusFailed, err
		im.report(c, "Claiming rewards failed", err)
		return outcome, err
	}
	outcome.Claim.Status = staking.StepStatusSucceeded

	im.notices.Info(c, im.claimedMessage(c, receipt))
	im.sync.RefreshStakeInfo(c, owner)
	return outcome, nil
}

func (im *impl) claimedMessage(c bCtx.Ctx, receipt *staking.Receipt) string {
	claimed, err := abi.FindRewardsClaimed(receipt.Logs, common.HexToAddress(im.staking.Address().String()))
	if err != nil {
		c.WithFields(log.Fields{"err": err, "tx": receipt.TxHash}).Warn("abi.FindRewardsClaimed failed")
	}
	if err != nil || claimed == nil {
		return "Rewards claimed"
	}
	return fmt.Sprintf("Claimed %s %s", units.FormatUnits(claimed.RewardAmount, im.rewardDecimals), im.rewardSymbol)
}

// precondition returns the connected address if every contract in kinds is ready
func (im *impl) precondition(kinds ...staking.ContractKind) (domain.Address, error) {
	owner := im.session.CurrentAddress()
	if owner.IsEmpty() {
		return "", xerrors.Errorf("no wallet connected: %w", domain.ErrPreconditionUnmet)
	}
	for _, kind := range kinds {
		if !im.registry.IsReady(kind) {
			return "", xerrors.Errorf("%s contract not ready: %w", kind, domain.ErrPreconditionUnmet)
		}
	}
	return owner, nil
}

func (im *impl) report(c bCtx.Ctx, message string, err error) {
	im.met.BumpSum("tx.err", 1, "kind", domain.ErrorKind(err))
	c.WithField("err", err).Error(message)
	im.notices.Error(c, message, err)
}

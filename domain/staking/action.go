package staking

import (
	bCtx "github.com/x-xyz/stakeview/base/ctx"
	"github.com/x-xyz/stakeview/domain"
)

type Step string

const (
	StepEnsureApproved Step = "ensureApproved"
	StepSubmitStake    Step = "submitStake"
	StepClaimRewards   Step = "claimRewards"
)

type StepStatus string

const (
	StepStatusNotRun    StepStatus = "notRun"
	StepStatusSkipped   StepStatus = "skipped"
	StepStatusSucceeded StepStatus = "succeeded"
	StepStatusFailed    StepStatus = "failed"
)

type StepOutcome struct {
	Step    Step       `json:"step"`
	Status  StepStatus `json:"status"`
	Receipt *Receipt   `json:"receipt,omitempty"`
	Err     error      `json:"-"`
}

func NotRun(step Step) StepOutcome {
	return StepOutcome{Step: step, Status: StepStatusNotRun}
}

func (o StepOutcome) Failed() bool {
	return o.Status == StepStatusFailed
}

// StakeOutcome reports each step of the approve-then-stake saga
type StakeOutcome struct {
	TokenId  domain.TokenId `json:"tokenId"`
	Approval StepOutcome    `json:"approval"`
	Stake    StepOutcome    `json:"stake"`
}

type ClaimOutcome struct {
	Claim StepOutcome `json:"claim"`
}

// ActionUseCase runs the state changing user actions
type ActionUseCase interface {
	Stake(ctx bCtx.Ctx, tokenId domain.TokenId) (*StakeOutcome, error)
	ClaimRewards(ctx bCtx.Ctx) (*ClaimOutcome, error)
}

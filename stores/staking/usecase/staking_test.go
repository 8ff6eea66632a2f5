package usecase

import (
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/xerrors"

	bCtx "github.com/x-xyz/stakeview/base/ctx"
	"github.com/x-xyz/stakeview/domain"
	"github.com/x-xyz/stakeview/domain/staking"
	"github.com/x-xyz/stakeview/service/chain/contract"
	"github.com/x-xyz/stakeview/service/chain/mocks"
)

var (
	stakingAddr = common.HexToAddress("0xcEf4E7efCC70A33C8dd32001Da9425946e0f6C61")
	stakerAddr  = common.HexToAddress("0x0000000000000000000000000000000000000abc")
)

type stakingSuite struct {
	suite.Suite

	ctx    bCtx.Ctx
	client *mocks.Client
	im     staking.StakingUseCase
}

func (s *stakingSuite) SetupTest() {
	s.ctx = bCtx.Background()
	s.client = &mocks.Client{}
	s.im = NewStaking(&StakingUseCaseCfg{
		ChainClient:    s.client,
		Contract:       contract.NewStaking(s.client, stakingAddr),
		ReceiptTimeout: time.Second,
	})
}

func (s *stakingSuite) TearDownTest() {
	s.client.AssertExpectations(s.T())
}

func TestStakingSuite(t *testing.T) {
	suite.Run(t, new(stakingSuite))
}

func (s *stakingSuite) TestGetStakeInfo() {
	reward, _ := new(big.Int).SetString("1500000000000000000", 10)
	s.client.On("Call", mock.Anything, stakingAddr, (*big.Int)(nil), mock.Anything, "getStakeInfo", stakerAddr).
		Return([]interface{}{[]*big.Int{big.NewInt(3), big.NewInt(1)}, reward}, nil).Once()

	info, err := s.im.GetStakeInfo(s.ctx, domain.Address(stakerAddr.Hex()))
	s.Require().NoError(err)
	s.Equal([]domain.TokenId{"3", "1"}, info.TokensStaked)
	s.Equal(0, reward.Cmp(info.Rewards))
}

func (s *stakingSuite) TestGetStakeInfoFailure() {
	s.client.On("Call", mock.Anything, stakingAddr, (*big.Int)(nil), mock.Anything, "getStakeInfo", stakerAddr).
		Return(nil, errors.New("502 bad gateway")).Once()

	info, err := s.im.GetStakeInfo(s.ctx, domain.Address(stakerAddr.Hex()))
	s.Nil(info)
	s.True(errors.Is(err, domain.ErrFetchFailure))
}

func (s *stakingSuite) TestStake() {
	hash := common.HexToHash("0xbeef")
	s.client.On("Transact", mock.Anything, stakerAddr, stakingAddr, mock.Anything, "stake", []*big.Int{big.NewInt(1)}).
		Return(hash, nil).Once()
	s.client.On("WaitMined", mock.Anything, hash).
		Return(&types.Receipt{TxHash: hash, Status: types.ReceiptStatusSuccessful, BlockNumber: big.NewInt(100)}, nil).Once()

	receipt, err := s.im.Stake(s.ctx, domain.Address(stakerAddr.Hex()), []domain.TokenId{"1"})
	s.Require().NoError(err)
	s.Equal(domain.BlockNumber(100), receipt.BlockNumber)
}

func (s *stakingSuite) TestStakeRejected() {
	s.client.On("Transact", mock.Anything, stakerAddr, stakingAddr, mock.Anything, "stake", []*big.Int{big.NewInt(1)}).
		Return(common.Hash{}, xerrors.Errorf("user denied: %w", domain.ErrTransactionRejected)).Once()

	_, err := s.im.Stake(s.ctx, domain.Address(stakerAddr.Hex()), []domain.TokenId{"1"})
	s.True(errors.Is(err, domain.ErrTransactionRejected))
}

func (s *stakingSuite) TestStakeBadTokenId() {
	_, err := s.im.Stake(s.ctx, domain.Address(stakerAddr.Hex()), []domain.TokenId{"-1"})
	s.True(errors.Is(err, domain.ErrBadParamInput))
}

func (s *stakingSuite) TestClaimRewardsReverted() {
	hash := common.HexToHash("0xcafe")
	s.client.On("Transact", mock.Anything, stakerAddr, stakingAddr, mock.Anything, "claimRewards").
		Return(hash, nil).Once()
	s.client.On("WaitMined", mock.Anything, hash).
		Return(&types.Receipt{TxHash: hash, Status: types.ReceiptStatusFailed, BlockNumber: big.NewInt(101)}, nil).Once()

	receipt, err := s.im.ClaimRewards(s.ctx, domain.Address(stakerAddr.Hex()))
	s.True(errors.Is(err, domain.ErrTransactionReverted))
	s.NotNil(receipt)
}

func (s *stakingSuite) TestDefaultReceiptTimeout() {
	s.im = NewStaking(&StakingUseCaseCfg{
		ChainClient: s.client,
		Contract:    contract.NewStaking(s.client, stakingAddr),
	})
	hash := common.HexToHash("0xd00d")
	s.client.On("Transact", mock.Anything, stakerAddr, stakingAddr, mock.Anything, "claimRewards").
		Return(hash, nil).Once()
	s.client.On("WaitMined", mock.MatchedBy(func(c bCtx.Ctx) bool {
		deadline, ok := c.Deadline()
		return ok && time.Until(deadline) > time.Minute
	}), hash).
		Return(&types.Receipt{TxHash: hash, Status: types.ReceiptStatusSuccessful, BlockNumber: big.NewInt(102)}, nil).Once()

	receipt, err := s.im.ClaimRewards(s.ctx, domain.Address(stakerAddr.Hex()))
	s.Require().NoError(err)
	s.Equal(domain.BlockNumber(102), receipt.BlockNumber)
}

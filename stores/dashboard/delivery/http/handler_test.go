package http

import (
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/xerrors"

	bCtx "github.com/x-xyz/stakeview/base/ctx"
	"github.com/x-xyz/stakeview/base/validator"
	"github.com/x-xyz/stakeview/domain"
	"github.com/x-xyz/stakeview/domain/notice"
	"github.com/x-xyz/stakeview/domain/staking"
	stakingmocks "github.com/x-xyz/stakeview/domain/staking/mocks"
	walletmocks "github.com/x-xyz/stakeview/domain/wallet/mocks"
	"github.com/x-xyz/stakeview/middleware"
	"github.com/x-xyz/stakeview/service/cache/provider/primitive"
	"github.com/x-xyz/stakeview/service/ens"
	noticeusecase "github.com/x-xyz/stakeview/stores/notice/usecase"
)

const owner = domain.Address("0x5324a98b506F3265c500f978F3943A1fC6A55fa4")

type response struct {
	Data   json.RawMessage `json:"data"`
	Status string          `json:"status"`
	Kind   string          `json:"kind"`
}

type handlerSuite struct {
	suite.Suite

	e          *echo.Echo
	sync       *stakingmocks.SyncUseCase
	action     *stakingmocks.ActionUseCase
	session    *walletmocks.SessionUseCase
	collection *stakingmocks.CollectionUseCase
	notices    notice.UseCase
}

func (s *handlerSuite) SetupTest() {
	s.sync = &stakingmocks.SyncUseCase{}
	s.action = &stakingmocks.ActionUseCase{}
	s.session = &walletmocks.SessionUseCase{}
	s.collection = &stakingmocks.CollectionUseCase{}
	s.notices = noticeusecase.New(10)

	s.e = echo.New()
	s.e.Validator = validator.NewCustomValidator(validator.New())
	m := middleware.InitMiddleware(nil)
	s.e.Use(m.AddContext())
	New(s.e, &HandlerCfg{
		Sync:           s.sync,
		Action:         s.action,
		Session:        s.session,
		Collection:     s.collection,
		Notices:        s.notices,
		Ens:            ens.NewNop(),
		RewardDecimals: 18,
		RewardSymbol:   "MTC",
		TokenCache:     primitive.NewPrimitive("tokens", 1),
		TokenCacheTtl:  time.Minute,
	})
}

func (s *handlerSuite) TearDownTest() {
	s.sync.AssertExpectations(s.T())
	s.action.AssertExpectations(s.T())
	s.session.AssertExpectations(s.T())
	s.collection.AssertExpectations(s.T())
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(handlerSuite))
}

func (s *handlerSuite) do(method, path, body string) (int, *response) {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	res := &response{}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), res), rec.Body.String())
	return rec.Code, res
}

func readySnapshot() *staking.Snapshot {
	reward, _ := new(big.Int).SetString("1000000000000000000", 10)
	ready := staking.SliceState{Status: staking.SliceStatusReady}
	return &staking.Snapshot{
		Address: owner,
		OwnedNfts: []*staking.OwnedNft{
			{TokenId: "1", MetadataName: "#1", MetadataUrl: "https://ipfs.io/ipfs/Qm/1"},
			{TokenId: "2", MetadataName: "#2"},
		},
		StakedTokens:         []domain.TokenId{"7"},
		ClaimableReward:      reward,
		OwnedNftsState:       ready,
		StakedTokensState:    ready,
		ClaimableRewardState: ready,
	}
}

func (s *handlerSuite) TestDashboard() {
	s.sync.On("Snapshot").Return(readySnapshot()).Once()

	code, res := s.do(http.MethodGet, "/dashboard", "")
	s.Equal(http.StatusOK, code)
	s.Equal("success", res.Status)

	v := dashboardView{}
	s.Require().NoError(json.Unmarshal(res.Data, &v))
	s.Equal(owner, v.Address)
	s.Require().Len(v.OwnedNfts, 2)
	s.True(v.OwnedNfts[0].Stakeable)
	s.False(v.OwnedNfts[1].Stakeable)
	s.Equal([]domain.TokenId{"7"}, v.StakedTokens)
	s.Equal("1000000000000000000", v.ClaimableReward)
	s.Equal("1.0", v.ClaimableRewardDisplay)
	s.Equal("MTC", v.RewardSymbol)
	s.False(v.Loading.OwnedNfts)
}

func (s *handlerSuite) TestDashboardDisconnected() {
	idle := staking.SliceState{Status: staking.SliceStatusIdle}
	s.sync.On("Snapshot").Return(&staking.Snapshot{
		OwnedNftsState: idle, StakedTokensState: idle, ClaimableRewardState: idle,
	}).Once()

	code, res := s.do(http.MethodGet, "/dashboard", "")
	s.Equal(http.StatusOK, code)
	s.JSONEq(`{
		"address": "",
		"ownedNfts": [],
		"stakedTokens": [],
		"claimableReward": "",
		"claimableRewardDisplay": "",
		"rewardSymbol": "MTC",
		"loading": {"ownedNfts": false, "stakedTokens": false, "claimableReward": false},
		"errors": {}
	}`, string(res.Data))
}

func (s *handlerSuite) TestConnect() {
	s.session.On("Connect", mock.Anything, owner).Return(nil).Once()
	loading := staking.SliceState{Status: staking.SliceStatusLoading}
	s.sync.On("Snapshot").Return(&staking.Snapshot{
		Address: owner, OwnedNftsState: loading, StakedTokensState: loading, ClaimableRewardState: loading,
	}).Once()

	code, res := s.do(http.MethodPost, "/wallet/connect", `{"address":"`+owner.String()+`"}`)
	s.Equal(http.StatusOK, code)
	v := dashboardView{}
	s.Require().NoError(json.Unmarshal(res.Data, &v))
	s.True(v.Loading.OwnedNfts)
	s.True(v.Loading.ClaimableReward)

	code, _ = s.do(http.MethodPost, "/wallet/connect", `{}`)
	s.Equal(http.StatusBadRequest, code)
}

func (s *handlerSuite) TestConnectInvalid() {
	s.session.On("Connect", mock.Anything, domain.Address("0x12")).Return(xerrors.Errorf("connect: %w", domain.ErrInvalidAddress)).Once()
	code, res := s.do(http.MethodPost, "/wallet/connect", `{"address":"0x12"}`)
	s.Equal(http.StatusBadRequest, code)
	s.Equal("fail", res.Status)

	// ens lookups are disabled
	code, _ = s.do(http.MethodPost, "/wallet/connect", `{"ens":"vitalik.eth"}`)
	s.Equal(http.StatusNotFound, code)
}

func (s *handlerSuite) TestStake() {
	outcome := &staking.StakeOutcome{
		TokenId:  "1",
		Approval: staking.StepOutcome{Step: staking.StepEnsureApproved, Status: staking.StepStatusSkipped},
		Stake:    staking.StepOutcome{Step: staking.StepSubmitStake, Status: staking.StepStatusSucceeded, Receipt: &staking.Receipt{TxHash: "0x02"}},
	}
	s.action.On("Stake", mock.Anything, domain.TokenId("1")).Return(outcome, nil).Once()

	code, res := s.do(http.MethodPost, "/stake", `{"tokenId":"1"}`)
	s.Equal(http.StatusOK, code)
	s.JSONEq(`{
		"tokenId": "1",
		"approval": {"step": "ensureApproved", "status": "skipped"},
		"stake": {"step": "submitStake", "status": "succeeded", "receipt": {"txHash": "0x02", "blockNumber": 0, "gasUsed": 0}}
	}`, string(res.Data))

	code, _ = s.do(http.MethodPost, "/stake", `{"tokenId":"abc"}`)
	s.Equal(http.StatusBadRequest, code)
}

func (s *handlerSuite) TestStakeFailed() {
	err := xerrors.Errorf("approve: %w", domain.ErrTransactionRejected)
	outcome := &staking.StakeOutcome{
		TokenId:  "1",
		Approval: staking.StepOutcome{Step: staking.StepEnsureApproved, Status: staking.StepStatusFailed, Err: err},
		Stake:    staking.NotRun(staking.StepSubmitStake),
	}
	s.action.On("Stake", mock.Anything, domain.TokenId("1")).Return(outcome, err).Once()

	code, res := s.do(http.MethodPost, "/stake", `{"tokenId":"1"}`)
	s.Equal(http.StatusUnprocessableEntity, code)
	s.Equal("fail", res.Status)
	s.Equal("transactionRejected", res.Kind)
	s.Contains(string(res.Data), `"status":"notRun"`)
}

func (s *handlerSuite) TestClaimPrecondition() {
	s.action.On("ClaimRewards", mock.Anything).Return(nil, xerrors.Errorf("no wallet: %w", domain.ErrPreconditionUnmet)).Once()

	code, res := s.do(http.MethodPost, "/claim", "")
	s.Equal(http.StatusConflict, code)
	s.Equal("preconditionUnmet", res.Kind)
}

func (s *handlerSuite) TestRefresh() {
	s.session.On("CurrentAddress").Return(owner).Once()
	s.sync.On("RefreshOwnedNfts", mock.Anything, owner).Once()
	s.sync.On("RefreshStakeInfo", mock.Anything, owner).Once()
	s.sync.On("Snapshot").Return(readySnapshot()).Once()

	code, _ := s.do(http.MethodPost, "/refresh", "")
	s.Equal(http.StatusOK, code)

	s.session.On("CurrentAddress").Return(domain.Address("")).Once()
	code, res := s.do(http.MethodPost, "/refresh", "")
	s.Equal(http.StatusConflict, code)
	s.Equal("preconditionUnmet", res.Kind)
}

func (s *handlerSuite) TestNotices() {
	n := s.notices.Error(bCtx.Background(), "Staking #1 failed", domain.ErrTransactionReverted)

	code, res := s.do(http.MethodGet, "/notices", "")
	s.Equal(http.StatusOK, code)
	list := []*notice.Notice{}
	s.Require().NoError(json.Unmarshal(res.Data, &list))
	s.Require().Len(list, 1)
	s.Equal(n.Id, list[0].Id)
	s.Equal("transactionReverted", list[0].Kind)

	code, _ = s.do(http.MethodDelete, "/notices/"+n.Id, "")
	s.Equal(http.StatusOK, code)
	code, _ = s.do(http.MethodDelete, "/notices/"+n.Id, "")
	s.Equal(http.StatusNotFound, code)
	code, _ = s.do(http.MethodDelete, "/notices/not-a-uuid", "")
	s.Equal(http.StatusBadRequest, code)
}

func (s *handlerSuite) TestToken() {
	s.collection.On("TokenMetadata", mock.Anything, domain.TokenId("7")).Return(&staking.OwnedNft{
		TokenId: "7", MetadataName: "Staker #7", MetadataUrl: "https://ipfs.io/ipfs/Qm/7", Image: "https://ipfs.io/ipfs/Qm/7.png",
	}, nil).Once()

	for i := 0; i < 2; i++ {
		code, res := s.do(http.MethodGet, "/tokens/7", "")
		s.Equal(http.StatusOK, code)
		v := nftView{}
		s.Require().NoError(json.Unmarshal(res.Data, &v))
		s.Equal("Staker #7", v.MetadataName)
		s.True(v.Stakeable)
	}

	s.collection.On("TokenMetadata", mock.Anything, domain.TokenId("404")).Return(nil, xerrors.Errorf("token: %w", domain.ErrNotFound)).Once()
	code, _ := s.do(http.MethodGet, "/tokens/404", "")
	s.Equal(http.StatusNotFound, code)

	code, _ = s.do(http.MethodGet, "/tokens/0x1", "")
	s.Equal(http.StatusBadRequest, code)
}

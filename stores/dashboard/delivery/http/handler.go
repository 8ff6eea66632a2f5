package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/xerrors"

	"github.com/x-xyz/stakeview/base/ctx"
	"github.com/x-xyz/stakeview/base/delivery"
	"github.com/x-xyz/stakeview/base/log"
	"github.com/x-xyz/stakeview/base/units"
	"github.com/x-xyz/stakeview/domain"
	"github.com/x-xyz/stakeview/domain/notice"
	"github.com/x-xyz/stakeview/domain/staking"
	"github.com/x-xyz/stakeview/domain/wallet"
	"github.com/x-xyz/stakeview/middleware"
	"github.com/x-xyz/stakeview/service/cache/provider"
	"github.com/x-xyz/stakeview/service/ens"
)

type HandlerCfg struct {
	Sync           staking.SyncUseCase
	Action         staking.ActionUseCase
	Session        wallet.SessionUseCase
	Collection     staking.CollectionUseCase
	Notices        notice.UseCase
	Ens            ens.ENS
	RewardDecimals int32
	RewardSymbol   string
	// TokenCache backs the http cache of GET /tokens/:tokenId
	TokenCache    provider.Provider
	TokenCacheTtl time.Duration
}

type handler struct {
	sync           staking.SyncUseCase
	action         staking.ActionUseCase
	session        wallet.SessionUseCase
	collection     staking.CollectionUseCase
	notices        notice.UseCase
	ens            ens.ENS
	rewardDecimals int32
	rewardSymbol   string
}

func New(e *echo.Echo, cfg *HandlerCfg) {
	h := &handler{
		sync:           cfg.Sync,
		action:         cfg.Action,
		session:        cfg.Session,
		collection:     cfg.Collection,
		notices:        cfg.Notices,
		ens:            cfg.Ens,
		rewardDecimals: cfg.RewardDecimals,
		rewardSymbol:   cfg.RewardSymbol,
	}

	e.GET("/dashboard", h.getDashboard)
	e.POST("/refresh", h.refresh)

	w := e.Group("/wallet")
	w.POST("/connect", h.connect)
	w.POST("/disconnect", h.disconnect)

	e.POST("/stake", h.stake)
	e.POST("/claim", h.claim)

	n := e.Group("/notices")
	n.GET("", h.listNotices)
	n.DELETE("/:id", h.dismissNotice)

	e.GET("/tokens/:tokenId", h.getToken,
		middleware.IsValidTokenId("tokenId"),
		middleware.CacheHttp(cfg.TokenCache, cfg.TokenCacheTtl),
	)
}

type nftView struct {
	Id           domain.TokenId `json:"id"`
	MetadataName string         `json:"metadataName"`
	MetadataUrl  string         `json:"metadataUrl"`
	Image        string         `json:"image,omitempty"`
	Stakeable    bool           `json:"stakeable"`
}

type flagsView struct {
	OwnedNfts       bool `json:"ownedNfts"`
	StakedTokens    bool `json:"stakedTokens"`
	ClaimableReward bool `json:"claimableReward"`
}

type errorsView struct {
	OwnedNfts       string `json:"ownedNfts,omitempty"`
	StakedTokens    string `json:"stakedTokens,omitempty"`
	ClaimableReward string `json:"claimableReward,omitempty"`
}

type dashboardView struct {
	Address                domain.Address   `json:"address"`
	EnsName                string           `json:"ensName,omitempty"`
	OwnedNfts              []*nftView       `json:"ownedNfts"`
	StakedTokens           []domain.TokenId `json:"stakedTokens"`
	ClaimableReward        string           `json:"claimableReward"`
	ClaimableRewardDisplay string           `json:"claimableRewardDisplay"`
	RewardSymbol           string           `json:"rewardSymbol"`
	Loading                flagsView        `json:"loading"`
	Errors                 errorsView       `json:"errors"`
}

func (h *handler) view(c ctx.Ctx, s *staking.Snapshot) *dashboardView {
	v := &dashboardView{
		Address:      s.Address,
		OwnedNfts:    []*nftView{},
		StakedTokens: []domain.TokenId{},
		RewardSymbol: h.rewardSymbol,
		Loading: flagsView{
			OwnedNfts:       s.OwnedNftsState.IsLoading(),
			StakedTokens:    s.StakedTokensState.IsLoading(),
			ClaimableReward: s.ClaimableRewardState.IsLoading(),
		},
		Errors: errorsView{
			OwnedNfts:       s.OwnedNftsState.Error,
			StakedTokens:    s.StakedTokensState.Error,
			ClaimableReward: s.ClaimableRewardState.Error,
		},
	}
	for _, nft := range s.OwnedNfts {
		v.OwnedNfts = append(v.OwnedNfts, &nftView{
			Id:           nft.TokenId,
			MetadataName: nft.MetadataName,
			MetadataUrl:  nft.MetadataUrl,
			Image:        nft.Image,
			Stakeable:    nft.Stakeable(),
		})
	}
	if s.StakedTokens != nil {
		v.StakedTokens = s.StakedTokens
	}
	if s.ClaimableReward != nil {
		v.ClaimableReward = s.ClaimableReward.String()
		v.ClaimableRewardDisplay = units.FormatUnits(s.ClaimableReward, h.rewardDecimals)
	}
	if !s.Address.IsEmpty() {
		name, err := h.ens.ReverseResolve(c, s.Address)
		if err != nil {
			c.WithFields(log.Fields{"err": err, "address": s.Address}).Warn("ens.ReverseResolve failed")
		}
		v.EnsName = name
	}
	return v
}

func (h *handler) getDashboard(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	return delivery.MakeJsonResp(c, http.StatusOK, h.view(ctx, h.sync.Snapshot()))
}

func (h *handler) refresh(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	address := h.session.CurrentAddress()
	if address.IsEmpty() {
		return delivery.MakeJsonResp(c, http.StatusConflict, xerrors.Errorf("no wallet connected: %w", domain.ErrPreconditionUnmet))
	}
	h.sync.RefreshOwnedNfts(ctx, address)
	h.sync.RefreshStakeInfo(ctx, address)
	return delivery.MakeJsonResp(c, http.StatusOK, h.view(ctx, h.sync.Snapshot()))
}

func (h *handler) connect(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type payload struct {
		Address domain.Address `json:"address" validate:"required_without=Ens"`
		Ens     string         `json:"ens" validate:"required_without=Address"`
	}

	p := payload{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	address := p.Address
	if address.IsEmpty() {
		resolved, err := h.ens.Resolve(ctx, p.Ens)
		if err != nil {
			ctx.WithFields(log.Fields{"err": err, "ens": p.Ens}).Warn("ens.Resolve failed")
			return delivery.MakeJsonResp(c, http.StatusBadGateway, err)
		}
		address = resolved
	}

	if err := h.session.Connect(ctx, address); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, h.view(ctx, h.sync.Snapshot()))
}

func (h *handler) disconnect(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	h.session.Disconnect(ctx)
	return delivery.MakeJsonResp(c, http.StatusOK, h.view(ctx, h.sync.Snapshot()))
}

func (h *handler) stake(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type payload struct {
		TokenId domain.TokenId `json:"tokenId" validate:"required,tokenid"`
	}

	p := payload{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	outcome, err := h.action.Stake(ctx, p.TokenId)
	if err != nil {
		return outcomeResp(c, err, outcome)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, outcome)
}

func (h *handler) claim(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	outcome, err := h.action.ClaimRewards(ctx)
	if err != nil {
		return outcomeResp(c, err, outcome)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, outcome)
}

// outcomeResp reports a failed action with the per step outcome when one exists
func outcomeResp(c echo.Context, err error, outcome interface{}) error {
	status := delivery.StatusOf(err, http.StatusInternalServerError)
	switch o := outcome.(type) {
	case *staking.StakeOutcome:
		if o == nil {
			return delivery.MakeJsonResp(c, status, err)
		}
	case *staking.ClaimOutcome:
		if o == nil {
			return delivery.MakeJsonResp(c, status, err)
		}
	}
	return c.JSON(status, delivery.JsonResponse{
		Data:   map[string]interface{}{"error": err.Error(), "outcome": outcome},
		Status: delivery.JsonResponseStatusFail,
		Kind:   domain.ErrorKind(err),
	})
}

func (h *handler) listNotices(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	return delivery.MakeJsonResp(c, http.StatusOK, h.notices.List(ctx))
}

func (h *handler) dismissNotice(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type payload struct {
		Id string `param:"id" validate:"required,uuid"`
	}

	p := payload{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.notices.Dismiss(ctx, p.Id); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, nil)
}

func (h *handler) getToken(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type payload struct {
		TokenId domain.TokenId `param:"tokenId"`
	}

	p := payload{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	nft, err := h.collection.TokenMetadata(ctx, p.TokenId)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, &nftView{
		Id:           nft.TokenId,
		MetadataName: nft.MetadataName,
		MetadataUrl:  nft.MetadataUrl,
		Image:        nft.Image,
		Stakeable:    nft.Stakeable(),
	})
}

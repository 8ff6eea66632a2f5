package usecase

import (
	"math/big"
	"sync"
	"time"

	"golang.org/x/xerrors"

	bCtx "github.com/x-xyz/stakeview/base/ctx"
	"github.com/x-xyz/stakeview/base/goroutine"
	"github.com/x-xyz/stakeview/base/log"
	"github.com/x-xyz/stakeview/base/metrics"
	"github.com/x-xyz/stakeview/domain"
	"github.com/x-xyz/stakeview/domain/notice"
	"github.com/x-xyz/stakeview/domain/staking"
	"github.com/x-xyz/stakeview/domain/wallet"
)

const defaultFetchTimeout = 30 * time.Second

// group is a set of slices filled by one fetch
type group int

const (
	groupOwned group = iota
	groupStake
)

var groups = []group{groupOwned, groupStake}

func (g group) String() string {
	if g == groupOwned {
		return "ownedNfts"
	}
	return "stakeInfo"
}

func (g group) contract() staking.ContractKind {
	if g == groupOwned {
		return staking.ContractCollection
	}
	return staking.ContractStaking
}

func groupOf(kind staking.ContractKind) (group, bool) {
	switch kind {
	case staking.ContractCollection:
		return groupOwned, true
	case staking.ContractStaking:
		return groupStake, true
	}
	return 0, false
}

// fetchKey identifies what a fetch was issued for. A result is only
// committed while its key is still the current key of the group.
type fetchKey struct {
	address domain.Address
	ready   bool
	epoch   uint64
}

type SyncUseCaseCfg struct {
	Session      wallet.Session
	Registry     staking.ContractRegistry
	Collection   staking.CollectionUseCase
	Staking      staking.StakingUseCase
	Notices      notice.UseCase
	FetchTimeout time.Duration
	Metrics      metrics.Service
}

type impl struct {
	session      wallet.Session
	registry     staking.ContractRegistry
	collection   staking.CollectionUseCase
	staking      staking.StakingUseCase
	notices      notice.UseCase
	fetchTimeout time.Duration
	met          metrics.Service

	mu      sync.Mutex
	ctx     bCtx.Ctx
	stopped bool
	unsubs  []func()
	address domain.Address
	keys    map[group]*fetchKey
	epochs  map[group]uint64

	ownedNfts       []*staking.OwnedNft
	stakedTokens    []domain.TokenId
	claimableReward *big.Int

	ownedState  staking.SliceState
	stakedState staking.SliceState
	rewardState staking.SliceState

	wg sync.WaitGroup
}

func NewSync(cfg *SyncUseCaseCfg) staking.SyncUseCase {
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = defaultFetchTimeout
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.NewNop()
	}
	idle := staking.SliceState{Status: staking.SliceStatusIdle}
	return &impl{
		session:      cfg.Session,
		registry:     cfg.Registry,
		collection:   cfg.Collection,
		staking:      cfg.Staking,
		notices:      cfg.Notices,
		fetchTimeout: cfg.FetchTimeout,
		met:          cfg.Metrics,
		ctx:          bCtx.Background(),
		keys:         make(map[group]*fetchKey),
		epochs:       make(map[group]uint64),
		ownedState:   idle,
		stakedState:  idle,
		rewardState:  idle,
	}
}

func (im *impl) Start(ctx bCtx.Ctx) {
	im.mu.Lock()
	im.ctx = bCtx.WithLogFields(bCtx.Detach(ctx), log.Fields{"module": "sync"})
	im.mu.Unlock()

	unsubs := []func(){
		im.session.Subscribe(im.onAddress),
		im.registry.Subscribe(im.onContract),
	}
	im.mu.Lock()
	im.unsubs = append(im.unsubs, unsubs...)
	im.mu.Unlock()

	im.onAddress(im.session.CurrentAddress())
}

func (im *impl) Stop() {
	im.mu.Lock()
	im.stopped = true
	unsubs := im.unsubs
	im.unsubs = nil
	im.mu.Unlock()

	for _, unsub := range unsubs {
		unsub()
	}
	im.wg.Wait()
}

func (im *impl) Snapshot() *staking.Snapshot {
	im.mu.Lock()
	defer im.mu.Unlock()

	s := &staking.Snapshot{
		Address:              im.address,
		OwnedNftsState:       im.ownedState,
		StakedTokensState:    im.stakedState,
		ClaimableRewardState: im.rewardState,
	}
	if im.ownedNfts != nil {
		s.OwnedNfts = make([]*staking.OwnedNft, 0, len(im.ownedNfts))
		for _, nft := range im.ownedNfts {
			cp := *nft
			s.OwnedNfts = append(s.OwnedNfts, &cp)
		}
	}
	if im.stakedTokens != nil {
		s.StakedTokens = make([]domain.TokenId, len(im.stakedTokens))
		copy(s.StakedTokens, im.stakedTokens)
	}
	if im.claimableReward != nil {
		s.ClaimableReward = new(big.Int).Set(im.claimableReward)
	}
	return s
}

func (im *impl) RefreshOwnedNfts(ctx bCtx.Ctx, address domain.Address) {
	im.refresh(ctx, groupOwned, address)
}

func (im *impl) RefreshStakeInfo(ctx bCtx.Ctx, address domain.Address) {
	im.refresh(ctx, groupStake, address)
}

// refresh bumps the epoch of g so that an identical key is fetched again
// and any result still in flight is dropped
func (im *impl) refresh(ctx bCtx.Ctx, g group, address domain.Address) {
	im.mu.Lock()
	defer im.mu.Unlock()
	if im.stopped {
		return
	}
	if address.IsEmpty() {
		im.epochs[g]++
		im.keys[g] = &fetchKey{epoch: im.epochs[g], ready: im.registry.IsReady(g.contract())}
		im.setIdleLocked(g)
		return
	}
	if !address.Equals(im.address) {
		ctx.WithFields(log.Fields{"address": address, "current": im.address, "slice": g.String()}).Warn("refresh for a disconnected address ignored")
		return
	}
	im.epochs[g]++
	im.reconcileLocked(g)
}

func (im *impl) onAddress(address domain.Address) {
	im.mu.Lock()
	defer im.mu.Unlock()
	if im.stopped {
		return
	}
	if !address.Equals(im.address) {
		im.ctx.WithFields(log.Fields{"from": im.address, "to": address}).Info("wallet address changed")
		im.address = address
		// data of the previous account is never shown for the new one, and
		// fetches issued before the switch never commit after it
		for _, g := range groups {
			im.epochs[g]++
			im.setIdleLocked(g)
		}
	}
	for _, g := range groups {
		im.reconcileLocked(g)
	}
}

func (im *impl) onContract(kind staking.ContractKind, ready bool) {
	g, ok := groupOf(kind)
	if !ok {
		return
	}
	im.mu.Lock()
	defer im.mu.Unlock()
	if im.stopped {
		return
	}
	im.ctx.WithFields(log.Fields{"contract": kind, "ready": ready}).Info("contract readiness changed")
	im.reconcileLocked(g)
}

// reconcileLocked issues a fetch for g unless the current key is unchanged
func (im *impl) reconcileLocked(g group) {
	key := fetchKey{
		address: im.address,
		ready:   im.registry.IsReady(g.contract()),
		epoch:   im.epochs[g],
	}
	if cur := im.keys[g]; cur != nil && *cur == key {
		return
	}
	im.keys[g] = &key

	if key.address.IsEmpty() || !key.ready {
		im.setIdleLocked(g)
		return
	}
	im.setStateLocked(g, staking.SliceState{Status: staking.SliceStatusLoading})
	im.launchLocked(g, key)
}

func (im *impl) launchLocked(g group, key fetchKey) {
	ctx, cancel := bCtx.WithTimeout(bCtx.WithLogFields(im.ctx, log.Fields{
		"slice":   g.String(),
		"address": key.address,
		"epoch":   key.epoch,
	}), im.fetchTimeout)

	im.wg.Add(1)
	goroutine.RecoverableGo(func() {
		im.fetch(ctx, g, key)
		im.wg.Done()
	},
		goroutine.WithLogger(ctx.Logger),
		goroutine.WithAfterEnded(cancel),
		goroutine.WithAfterRecovered(func(p interface{}, _ []byte) {
			defer im.wg.Done()
			im.fail(ctx, g, key, xerrors.Errorf("fetch panicked: %v", p))
		}),
	)
}

func (im *impl) fetch(ctx bCtx.Ctx, g group, key fetchKey) {
	defer im.met.BumpTime("fetch.time", "slice", g.String()).End()

	switch g {
	case groupOwned:
		nfts, err := im.collection.OwnedTokens(ctx, key.address)
		if err != nil {
			im.fail(ctx, g, key, err)
			return
		}
		im.commit(ctx, g, key, func() {
			im.ownedNfts = nfts
			im.ownedState = staking.SliceState{Status: staking.SliceStatusReady}
		})

	case groupStake:
		info, err := im.staking.GetStakeInfo(ctx, key.address)
		if err != nil {
			im.fail(ctx, g, key, err)
			return
		}
		im.commit(ctx, g, key, func() {
			im.stakedTokens = info.TokensStaked
			im.claimableReward = info.Rewards
			im.stakedState = staking.SliceState{Status: staking.SliceStatusReady}
			im.rewardState = staking.SliceState{Status: staking.SliceStatusReady}
		})
	}
}

// commit applies fn if key is still current and reports whether it did
func (im *impl) commit(ctx bCtx.Ctx, g group, key fetchKey, fn func()) bool {
	im.mu.Lock()
	defer im.mu.Unlock()
	if cur := im.keys[g]; cur == nil || *cur != key {
		im.met.BumpSum("fetch.stale", 1, "slice", g.String())
		ctx.Debug("stale fetch result dropped")
		return false
	}
	fn()
	return true
}

func (im *impl) fail(ctx bCtx.Ctx, g group, key fetchKey, err error) {
	ctx.WithField("err", err).Warn("fetch failed")
	committed := im.commit(ctx, g, key, func() {
		im.clearLocked(g)
		im.setStateLocked(g, staking.SliceState{Status: staking.SliceStatusFailed, Error: err.Error()})
	})
	if !committed {
		return
	}
	im.met.BumpSum("fetch.err", 1, "slice", g.String())
	ctx.WithField("err", err).Error(g.String() + " fetch failed")
	if im.notices != nil {
		im.notices.Error(ctx, failureMessage(g), err)
	}
}

func failureMessage(g group) string {
	if g == groupOwned {
		return "Could not load your NFTs"
	}
	return "Could not load staked NFTs and rewards"
}

func (im *impl) setIdleLocked(g group) {
	im.clearLocked(g)
	im.setStateLocked(g, staking.SliceState{Status: staking.SliceStatusIdle})
}

func (im *impl) clearLocked(g group) {
	switch g {
	case groupOwned:
		im.ownedNfts = nil
	case groupStake:
		im.stakedTokens = nil
		im.claimableReward = nil
	}
}

func (im *impl) setStateLocked(g group, state staking.SliceState) {
	switch g {
	case groupOwned:
		im.ownedState = state
	case groupStake:
		im.stakedState = state
		im.rewardState = state
	}
}

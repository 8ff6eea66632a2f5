package usecase

import (
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/x-xyz/stakeview/base/backoff"
	bCtx "github.com/x-xyz/stakeview/base/ctx"
	"github.com/x-xyz/stakeview/base/goroutine"
	"github.com/x-xyz/stakeview/base/log"
	"github.com/x-xyz/stakeview/domain/staking"
	"github.com/x-xyz/stakeview/service/chain"
)

type ResolverCfg struct {
	ChainClient chain.Client
	Contracts   map[staking.ContractKind]common.Address
	// Verifiers are optional per contract checks run once code is deployed,
	// a contract failing its check is polled again
	Verifiers map[staking.ContractKind]Verifier
	// Interval is the first retry delay, doubled up to MaxInterval
	Interval    time.Duration
	MaxInterval time.Duration
}

// Verifier reports whether the deployed contract is the expected one
type Verifier func(ctx bCtx.Ctx) (bool, error)

// Resolver marks a contract ready once code is deployed at its address
type Resolver struct {
	client      chain.Client
	contracts   map[staking.ContractKind]common.Address
	verifiers   map[staking.ContractKind]Verifier
	interval    time.Duration
	maxInterval time.Duration

	mu     sync.RWMutex
	ready  map[staking.ContractKind]bool
	subs   map[int]func(kind staking.ContractKind, ready bool)
	nextId int

	notifyMu sync.Mutex
	cancel   func()
	wg       sync.WaitGroup
}

func NewResolver(cfg *ResolverCfg) *Resolver {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Second
	}
	if cfg.MaxInterval < cfg.Interval {
		cfg.MaxInterval = 30 * cfg.Interval
	}
	return &Resolver{
		client:      cfg.ChainClient,
		contracts:   cfg.Contracts,
		verifiers:   cfg.Verifiers,
		interval:    cfg.Interval,
		maxInterval: cfg.MaxInterval,
		ready:       make(map[staking.ContractKind]bool),
		subs:        make(map[int]func(staking.ContractKind, bool)),
		cancel:      func() {},
	}
}

func (r *Resolver) IsReady(kind staking.ContractKind) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.ready[kind]
}

func (r *Resolver) Subscribe(fn func(kind staking.ContractKind, ready bool)) func() {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextId
	r.nextId++
	r.subs[id] = fn
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.subs, id)
	}
}

// Start polls every configured contract until it resolves or Stop is called
func (r *Resolver) Start(ctx bCtx.Ctx) {
	ctx, cancel := bCtx.WithCancel(bCtx.Detach(ctx))
	r.cancel = cancel
	for kind, addr := range r.contracts {
		kind, addr := kind, addr
		r.wg.Add(1)
		goroutine.RecoverableGo(func() {
			r.resolve(ctx, kind, addr)
		}, goroutine.WithLogger(ctx.Logger), goroutine.WithAfterEnded(r.wg.Done))
	}
}

func (r *Resolver) Stop() {
	r.cancel()
	r.wg.Wait()
}

func (r *Resolver) resolve(ctx bCtx.Ctx, kind staking.ContractKind, addr common.Address) {
	ctx = bCtx.WithLogFields(ctx, log.Fields{"contract": kind, "address": addr.Hex()})
	b := backoff.NewExponential(r.interval, r.maxInterval)
	err := b.Until(ctx, func() (bool, error) {
		code, err := r.client.CodeAt(ctx, addr)
		if err != nil {
			ctx.WithFields(log.Fields{"err": err, "attempt": b.Count()}).Warn("client.CodeAt failed")
			return false, nil
		}
		if len(code) == 0 {
			ctx.WithField("attempt", b.Count()).Warn("no code at contract address")
			return false, nil
		}
		verify, ok := r.verifiers[kind]
		if !ok {
			return true, nil
		}
		ok, err = verify(ctx)
		if err != nil {
			ctx.WithFields(log.Fields{"err": err, "attempt": b.Count()}).Warn("contract verification failed")
			return false, nil
		}
		if !ok {
			ctx.WithField("attempt", b.Count()).Warn("contract does not implement the expected interface")
		}
		return ok, nil
	})
	if err != nil {
		ctx.WithField("err", err).Info("contract resolution stopped")
		return
	}
	ctx.Info("contract resolved")
	r.setReady(kind)
}

func (r *Resolver) setReady(kind staking.ContractKind) {
	r.notifyMu.Lock()
	defer r.notifyMu.Unlock()

	r.mu.Lock()
	r.ready[kind] = true
	subs := make([]func(staking.ContractKind, bool), 0, len(r.subs))
	for _, fn := range r.subs {
		subs = append(subs, fn)
	}
	r.mu.Unlock()

	for _, fn := range subs {
		fn(kind, true)
	}
}

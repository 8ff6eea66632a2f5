package usecase

import (
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/xerrors"

	bCtx "github.com/x-xyz/stakeview/base/ctx"
	"github.com/x-xyz/stakeview/base/log"
	"github.com/x-xyz/stakeview/base/validator"
	"github.com/x-xyz/stakeview/domain"
	"github.com/x-xyz/stakeview/domain/wallet"
)

type subscriber struct {
	id int
	fn func(domain.Address)
}

type session struct {
	mu      sync.RWMutex
	address domain.Address
	subs    []subscriber
	nextId  int

	// serializes notifications so subscribers observe changes in order
	notifyMu sync.Mutex
}

// NewSession returns a disconnected in-memory session
func NewSession() wallet.SessionUseCase {
	return &session{}
}

func (s *session) CurrentAddress() domain.Address {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.address
}

func (s *session) Subscribe(fn func(address domain.Address)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextId
	s.nextId++
	s.subs = append(s.subs, subscriber{id, fn})

	var once sync.Once
	return func() {
		once.Do(func() { s.unsubscribe(id) })
	}
}

func (s *session) unsubscribe(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sub := range s.subs {
		if sub.id == id {
			s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
			return
		}
	}
}

// Connect switches the session to address, stored in checksum form
func (s *session) Connect(c bCtx.Ctx, address domain.Address) error {
	if !validator.IsValidAddress(address.String()) {
		return xerrors.Errorf("connect %q: %w", address, domain.ErrInvalidAddress)
	}
	s.set(c, domain.Address(common.HexToAddress(address.String()).Hex()))
	return nil
}

func (s *session) Disconnect(c bCtx.Ctx) {
	s.set(c, "")
}

func (s *session) set(c bCtx.Ctx, address domain.Address) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	prev := s.address
	s.address = address
	subs := make([]subscriber, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	c.WithFields(log.Fields{"from": prev, "to": address}).Info("wallet address set")
	for _, sub := range subs {
		sub.fn(address)
	}
}

package ens

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	goens "github.com/wealdtech/go-ens/v3"
	"golang.org/x/xerrors"

	"github.com/x-xyz/stakeview/base/ctx"
	"github.com/x-xyz/stakeview/base/log"
	"github.com/x-xyz/stakeview/base/ptr"
	"github.com/x-xyz/stakeview/domain"
	"github.com/x-xyz/stakeview/domain/keys"
	"github.com/x-xyz/stakeview/service/cache"
)

type resolveFunc func(backend bind.ContractBackend, name string) (common.Address, error)
type reverseResolveFunc func(backend bind.ContractBackend, address common.Address) (string, error)

type impl struct {
	backend        bind.ContractBackend
	cache          cache.Service
	resolve        resolveFunc
	reverseResolve reverseResolveFunc
}

func New(backend bind.ContractBackend, cache cache.Service) ENS {
	return &impl{
		backend:        backend,
		cache:          cache,
		resolve:        goens.Resolve,
		reverseResolve: goens.ReverseResolve,
	}
}

func (im *impl) Resolve(ctx ctx.Ctx, name string) (domain.Address, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	res := domain.Address("")
	key := keys.RedisKey(keys.PfxEnsAddress, name)
	err := im.cache.GetByFunc(ctx, key, &res, func() (interface{}, error) {
		addr, err := im.resolve(im.backend, name)
		if isUnregistered(err) {
			val := domain.Address("")
			return &val, nil
		}
		if err != nil {
			ctx.WithFields(log.Fields{
				"err":  err,
				"name": name,
			}).Error("failed to goens.Resolve")
			return nil, err
		}
		val := domain.Address(addr.Hex())
		return &val, nil
	})

	if err != nil {
		return "", xerrors.Errorf("resolve %s: %v: %w", name, err, domain.ErrFetchFailure)
	}
	if res.IsEmpty() {
		return "", xerrors.Errorf("ens name %s: %w", name, domain.ErrNotFound)
	}

	return res, nil
}

func (im *impl) ReverseResolve(ctx ctx.Ctx, address domain.Address) (string, error) {
	res := ""
	key := keys.RedisKey(keys.PfxEnsName, address.ToLowerStr())
	err := im.cache.GetByFunc(ctx, key, &res, func() (interface{}, error) {
		name, err := im.reverseResolve(im.backend, common.HexToAddress(string(address)))
		if isUnregistered(err) {
			return ptr.String(""), nil
		}
		if err != nil {
			ctx.WithFields(log.Fields{
				"err":     err,
				"address": address,
			}).Error("failed to goens.ReverseResolve")
			return nil, err
		}
		return &name, nil
	})

	if err != nil {
		return "", xerrors.Errorf("reverse resolve %s: %v: %w", address, err, domain.ErrFetchFailure)
	}

	return res, nil
}

func isUnregistered(err error) bool {
	if err == nil {
		return false
	}
	switch err.Error() {
	case "unregistered name", "not a resolver", "no resolution", "no address":
		return true
	}
	return false
}

type nop struct{}

// NewNop is used when ens lookups are disabled
func NewNop() ENS {
	return nop{}
}

func (nop) Resolve(ctx ctx.Ctx, name string) (domain.Address, error) {
	return "", xerrors.Errorf("ens disabled, cannot resolve %s: %w", name, domain.ErrNotFound)
}

func (nop) ReverseResolve(ctx.Ctx, domain.Address) (string, error) {
	return "", nil
}

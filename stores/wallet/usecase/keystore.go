package usecase

import (
	"crypto/ecdsa"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"golang.org/x/xerrors"

	bCtx "github.com/x-xyz/stakeview/base/ctx"
	"github.com/x-xyz/stakeview/base/ethereum"
	"github.com/x-xyz/stakeview/base/log"
	"github.com/x-xyz/stakeview/domain"
	"github.com/x-xyz/stakeview/domain/wallet"
)

var ErrNoKey = xerrors.New("no key for account")

type keystore struct {
	mu       sync.RWMutex
	keys     map[common.Address]*ecdsa.PrivateKey
	accounts []domain.Address
}

// NewKeystore loads hex encoded private keys. Accounts keep the order of hexKeys.
func NewKeystore(hexKeys []string) (wallet.Signer, error) {
	ks := &keystore{keys: make(map[common.Address]*ecdsa.PrivateKey)}
	for i, hexKey := range hexKeys {
		key, addr, err := ethereum.ParsePrivateKey(hexKey)
		if err != nil {
			return nil, xerrors.Errorf("private key #%d: %w", i, err)
		}
		if _, ok := ks.keys[addr]; ok {
			continue
		}
		ks.keys[addr] = key
		ks.accounts = append(ks.accounts, domain.Address(addr.Hex()))
	}
	return ks, nil
}

func (ks *keystore) Accounts() []domain.Address {
	ks.mu.RLock()
	defer ks.mu.RUnlock()
	res := make([]domain.Address, len(ks.accounts))
	copy(res, ks.accounts)
	return res
}

func (ks *keystore) SignTx(c bCtx.Ctx, from domain.Address, tx *types.Transaction, chainId *big.Int) (*types.Transaction, error) {
	ks.mu.RLock()
	key, ok := ks.keys[common.HexToAddress(from.String())]
	ks.mu.RUnlock()
	if !ok {
		return nil, xerrors.Errorf("%s: %w", from, ErrNoKey)
	}

	signed, err := types.SignTx(tx, types.LatestSignerForChainID(chainId), key)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "from": from}).Error("types.SignTx failed")
		return nil, err
	}
	return signed, nil
}

package chain

import (
	"context"
	"errors"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"golang.org/x/xerrors"

	"github.com/x-xyz/stakeview/base/backoff"
	bCtx "github.com/x-xyz/stakeview/base/ctx"
	"github.com/x-xyz/stakeview/base/log"
	"github.com/x-xyz/stakeview/base/metrics"
	"github.com/x-xyz/stakeview/domain"
	"github.com/x-xyz/stakeview/domain/wallet"
)

// gas estimates are padded since state may move between estimate and inclusion
const gasLimitPaddingPercent = 20

var (
	ErrUnknownAccount = errors.New("no signing key for account")
)

// Backend is the rpc surface the client needs, satisfied by ethclient and ethereum.ThrottledClient
type Backend interface {
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
	CodeAt(ctx context.Context, account common.Address, blockNumber *big.Int) ([]byte, error)
	CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasTipCap(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, call ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

type ClientCfg struct {
	ChainId      int64
	Backend      Backend
	Signer       wallet.Signer
	PollInterval time.Duration
	PollLimit    time.Duration
	Metrics      metrics.Service
}

type Client interface {
	ChainId() *big.Int
	BlockNumber(ctx bCtx.Ctx) (uint64, error)
	CodeAt(ctx bCtx.Ctx, addr common.Address) ([]byte, error)
	// Call runs a read only method, blk nil means latest
	Call(ctx bCtx.Ctx, addr common.Address, blk *big.Int, _abi abi.ABI, method string, params ...interface{}) ([]interface{}, error)
	// Transact builds, signs and sends a dynamic fee transaction from `from`
	Transact(ctx bCtx.Ctx, from, addr common.Address, _abi abi.ABI, method string, params ...interface{}) (common.Hash, error)
	// WaitMined polls until the receipt of hash is available or ctx is done
	WaitMined(ctx bCtx.Ctx, hash common.Hash) (*types.Receipt, error)
}

type clientImpl struct {
	chainId      *big.Int
	backend      Backend
	signer       wallet.Signer
	pollInterval time.Duration
	pollLimit    time.Duration
	met          metrics.Service
}

func NewClient(cfg *ClientCfg) Client {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = time.Second
	}
	if cfg.PollLimit <= 0 {
		cfg.PollLimit = 8 * cfg.PollInterval
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.NewNop()
	}
	return &clientImpl{
		chainId:      big.NewInt(cfg.ChainId),
		backend:      cfg.Backend,
		signer:       cfg.Signer,
		pollInterval: cfg.PollInterval,
		pollLimit:    cfg.PollLimit,
		met:          cfg.Metrics,
	}
}

func (c *clientImpl) ChainId() *big.Int {
	return new(big.Int).Set(c.chainId)
}

func (c *clientImpl) BlockNumber(ctx bCtx.Ctx) (uint64, error) {
	header, err := c.backend.HeaderByNumber(ctx, nil)
	if err != nil {
		ctx.WithField("err", err).Error("backend.HeaderByNumber failed")
		return 0, err
	}
	return header.Number.Uint64(), nil
}

func (c *clientImpl) CodeAt(ctx bCtx.Ctx, addr common.Address) ([]byte, error) {
	return c.backend.CodeAt(ctx, addr, nil)
}

func (c *clientImpl) Call(ctx bCtx.Ctx, addr common.Address, blk *big.Int, _abi abi.ABI, method string, params ...interface{}) ([]interface{}, error) {
	defer c.met.BumpTime("call.time", "method", method).End()

	data, err := _abi.Pack(method, params...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"method": method,
			"params": params,
			"err":    err,
		}).Error("abi.Pack failed")
		return nil, err
	}
	msg := ethereum.CallMsg{
		To:   &addr,
		Data: data,
	}
	res, err := c.backend.CallContract(ctx, msg, blk)
	if err != nil {
		c.met.BumpSum("call.err", 1, "method", method)
		ctx.WithFields(log.Fields{"err": err, "method": method}).Error("backend.CallContract failed")
		return nil, err
	}
	unpacked, err := _abi.Unpack(method, res)
	if err != nil {
		ctx.WithFields(log.Fields{"err": err, "method": method}).Error("abi.Unpack failed")
		return nil, err
	}
	return unpacked, nil
}

func (c *clientImpl) Transact(ctx bCtx.Ctx, from, addr common.Address, _abi abi.ABI, method string, params ...interface{}) (common.Hash, error) {
	defer c.met.BumpTime("transact.time", "method", method).End()
	ctx = bCtx.WithLogFields(ctx, log.Fields{"method": method, "from": from.Hex(), "to": addr.Hex()})

	if !c.hasAccount(from) {
		return common.Hash{}, xerrors.Errorf("%s: %v: %w", method, ErrUnknownAccount, domain.ErrTransactionRejected)
	}

	data, err := _abi.Pack(method, params...)
	if err != nil {
		ctx.WithFields(log.Fields{"err": err, "params": params}).Error("abi.Pack failed")
		return common.Hash{}, err
	}

	nonce, err := c.backend.PendingNonceAt(ctx, from)
	if err != nil {
		ctx.WithField("err", err).Error("backend.PendingNonceAt failed")
		return common.Hash{}, xerrors.Errorf("nonce: %v: %w", err, domain.ErrTransactionRejected)
	}
	tip, err := c.backend.SuggestGasTipCap(ctx)
	if err != nil {
		ctx.WithField("err", err).Error("backend.SuggestGasTipCap failed")
		return common.Hash{}, xerrors.Errorf("gas tip: %v: %w", err, domain.ErrTransactionRejected)
	}
	head, err := c.backend.HeaderByNumber(ctx, nil)
	if err != nil {
		ctx.WithField("err", err).Error("backend.HeaderByNumber failed")
		return common.Hash{}, xerrors.Errorf("head: %v: %w", err, domain.ErrTransactionRejected)
	}
	feeCap := new(big.Int).Set(tip)
	if head.BaseFee != nil {
		feeCap.Add(feeCap, new(big.Int).Mul(head.BaseFee, big.NewInt(2)))
	}

	gas, err := c.backend.EstimateGas(ctx, ethereum.CallMsg{
		From:      from,
		To:        &addr,
		GasFeeCap: feeCap,
		GasTipCap: tip,
		Data:      data,
	})
	if err != nil {
		ctx.WithField("err", err).Warn("backend.EstimateGas failed")
		if IsExecutionReverted(err) {
			return common.Hash{}, xerrors.Errorf("%s: %v: %w", method, err, domain.ErrTransactionReverted)
		}
		return common.Hash{}, xerrors.Errorf("%s: %v: %w", method, err, domain.ErrTransactionRejected)
	}
	gas += gas * gasLimitPaddingPercent / 100

	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   c.chainId,
		Nonce:     nonce,
		GasTipCap: tip,
		GasFeeCap: feeCap,
		Gas:       gas,
		To:        &addr,
		Data:      data,
	})
	signed, err := c.signer.SignTx(ctx, domain.Address(from.Hex()), tx, c.chainId)
	if err != nil {
		ctx.WithField("err", err).Error("signer.SignTx failed")
		return common.Hash{}, xerrors.Errorf("sign %s: %v: %w", method, err, domain.ErrTransactionRejected)
	}

	if err := c.backend.SendTransaction(ctx, signed); err != nil {
		c.met.BumpSum("transact.err", 1, "method", method)
		ctx.WithField("err", err).Error("backend.SendTransaction failed")
		return common.Hash{}, xerrors.Errorf("send %s: %v: %w", method, err, domain.ErrTransactionRejected)
	}

	ctx.WithFields(log.Fields{"tx": signed.Hash().Hex(), "nonce": nonce, "gas": gas}).Info("transaction sent")
	return signed.Hash(), nil
}

func (c *clientImpl) WaitMined(ctx bCtx.Ctx, hash common.Hash) (*types.Receipt, error) {
	defer c.met.BumpTime("waitmined.time").End()

	var receipt *types.Receipt
	b := backoff.NewExponential(c.pollInterval, c.pollLimit)
	err := b.Until(ctx, func() (bool, error) {
		r, err := c.backend.TransactionReceipt(ctx, hash)
		if err == ethereum.NotFound || (err == nil && r == nil) {
			return false, nil
		} else if err != nil {
			ctx.WithFields(log.Fields{"err": err, "tx": hash.Hex(), "attempt": b.Count()}).Warn("backend.TransactionReceipt failed")
			return false, nil
		}
		receipt = r
		return true, nil
	})
	if err != nil {
		ctx.WithFields(log.Fields{"err": err, "tx": hash.Hex()}).Error("wait mined failed")
		return nil, xerrors.Errorf("receipt of %s: %v: %w", hash.Hex(), err, domain.ErrFetchFailure)
	}
	return receipt, nil
}

func (c *clientImpl) hasAccount(from common.Address) bool {
	if c.signer == nil {
		return false
	}
	for _, a := range c.signer.Accounts() {
		if a.Equals(domain.Address(from.Hex())) {
			return true
		}
	}
	return false
}

// IsExecutionReverted reports whether err is the node's revert error for a call or estimate
func IsExecutionReverted(err error) bool {
	return err != nil && strings.Contains(err.Error(), "execution reverted")
}

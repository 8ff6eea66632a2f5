package contract

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"golang.org/x/xerrors"

	bCtx "github.com/x-xyz/stakeview/base/ctx"
	"github.com/x-xyz/stakeview/base/log"
	"github.com/x-xyz/stakeview/domain"
	domainstaking "github.com/x-xyz/stakeview/domain/staking"
	"github.com/x-xyz/stakeview/service/chain"
)

// DefaultReceiptTimeout bounds the wait for a receipt when none is configured
const DefaultReceiptTimeout = 5 * time.Minute

// Settle waits up to timeout for hash to be mined. A receipt with a failed
// status is returned together with ErrTransactionReverted.
func Settle(ctx bCtx.Ctx, client chain.Client, hash common.Hash, timeout time.Duration) (*domainstaking.Receipt, error) {
	wctx, cancel := bCtx.WithTimeout(ctx, timeout)
	defer cancel()

	r, err := client.WaitMined(wctx, hash)
	if err != nil {
		return nil, err
	}

	receipt := &domainstaking.Receipt{
		TxHash:  domain.TxHash(r.TxHash.Hex()),
		GasUsed: r.GasUsed,
		Logs:    r.Logs,
	}
	if r.BlockNumber != nil {
		receipt.BlockNumber = domain.BlockNumber(r.BlockNumber.Uint64())
	}
	if r.Status != types.ReceiptStatusSuccessful {
		ctx.WithFields(log.Fields{"tx": hash.Hex(), "block": receipt.BlockNumber}).Warn("transaction reverted")
		return receipt, xerrors.Errorf("tx %s: %w", hash.Hex(), domain.ErrTransactionReverted)
	}
	return receipt, nil
}

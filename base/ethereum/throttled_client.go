package ethereum

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/x-xyz/stakeview/base/log"
)

// ThrottledClient bounds the number of concurrent rpc requests sent through client
type ThrottledClient struct {
	*ethclient.Client
	tokens chan int
}

func NewThrottledClient(client *ethclient.Client, n int) *ThrottledClient {
	if n <= 0 {
		n = 1
	}
	tokens := make(chan int, n)
	for i := 0; i < n; i++ {
		tokens <- i + 1
	}
	return &ThrottledClient{
		Client: client,
		tokens: tokens,
	}
}

func (c *ThrottledClient) BlockNumber(ctx context.Context) (uint64, error) {
	token, err := c.before(ctx)
	if err != nil {
		return 0, err
	}
	defer c.after(token)
	return c.Client.BlockNumber(ctx)
}

func (c *ThrottledClient) HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error) {
	token, err := c.before(ctx)
	if err != nil {
		return nil, err
	}
	defer c.after(token)
	return c.Client.HeaderByNumber(ctx, number)
}

func (c *ThrottledClient) CodeAt(ctx context.Context, address common.Address, number *big.Int) ([]byte, error) {
	token, err := c.before(ctx)
	if err != nil {
		return nil, err
	}
	defer c.after(token)
	return c.Client.CodeAt(ctx, address, number)
}

func (c *ThrottledClient) CallContract(ctx context.Context, msg ethereum.CallMsg, number *big.Int) ([]byte, error) {
	token, err := c.before(ctx)
	if err != nil {
		return nil, err
	}
	defer c.after(token)
	return c.Client.CallContract(ctx, msg, number)
}

func (c *ThrottledClient) EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error) {
	token, err := c.before(ctx)
	if err != nil {
		return 0, err
	}
	defer c.after(token)
	return c.Client.EstimateGas(ctx, msg)
}

func (c *ThrottledClient) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	token, err := c.before(ctx)
	if err != nil {
		return err
	}
	defer c.after(token)
	return c.Client.SendTransaction(ctx, tx)
}

func (c *ThrottledClient) TransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	token, err := c.before(ctx)
	if err != nil {
		return nil, err
	}
	defer c.after(token)
	return c.Client.TransactionReceipt(ctx, hash)
}

func (c *ThrottledClient) before(ctx context.Context) (int, error) {
	now := time.Now()
	select {
	case <-ctx.Done():
		log.Log().WithField("waited", time.Since(now)).Debug("throttle ctx done")
		return 0, ctx.Err()
	case token := <-c.tokens:
		log.Log().WithFields(log.Fields{"token": token, "free": len(c.tokens), "waited": time.Since(now)}).Debug("throttle acquired")
		return token, nil
	}
}

func (c *ThrottledClient) after(token int) {
	if token != 0 {
		c.tokens <- token
	}
}

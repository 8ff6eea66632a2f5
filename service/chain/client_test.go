package chain

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	baseabi "github.com/x-xyz/stakeview/base/abi"
	bCtx "github.com/x-xyz/stakeview/base/ctx"
	"github.com/x-xyz/stakeview/domain"
)

type fakeBackend struct {
	mu          sync.Mutex
	callResult  []byte
	callErr     error
	estimateErr error
	sendErr     error
	sent        []*types.Transaction
	receipts    map[common.Hash]*types.Receipt
	receiptErrs int
}

func (b *fakeBackend) HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error) {
	return &types.Header{Number: big.NewInt(100), BaseFee: big.NewInt(10)}, nil
}

func (b *fakeBackend) CodeAt(ctx context.Context, account common.Address, blockNumber *big.Int) ([]byte, error) {
	return []byte{0x60}, nil
}

func (b *fakeBackend) CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	return b.callResult, b.callErr
}

func (b *fakeBackend) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	return 7, nil
}

func (b *fakeBackend) SuggestGasTipCap(ctx context.Context) (*big.Int, error) {
	return big.NewInt(2), nil
}

func (b *fakeBackend) EstimateGas(ctx context.Context, call ethereum.CallMsg) (uint64, error) {
	return 100000, b.estimateErr
}

func (b *fakeBackend) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.sendErr != nil {
		return b.sendErr
	}
	b.sent = append(b.sent, tx)
	return nil
}

func (b *fakeBackend) TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.receiptErrs > 0 {
		b.receiptErrs--
		return nil, errors.New("connection reset")
	}
	if r, ok := b.receipts[txHash]; ok {
		return r, nil
	}
	return nil, ethereum.NotFound
}

func (b *fakeBackend) mine(hash common.Hash, status uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.receipts[hash] = &types.Receipt{TxHash: hash, Status: status, BlockNumber: big.NewInt(101)}
}

type keySigner struct {
	key  *ecdsa.PrivateKey
	addr common.Address
	err  error
}

func (s *keySigner) Accounts() []domain.Address {
	return []domain.Address{domain.Address(s.addr.Hex())}
}

func (s *keySigner) SignTx(ctx bCtx.Ctx, from domain.Address, tx *types.Transaction, chainId *big.Int) (*types.Transaction, error) {
	if s.err != nil {
		return nil, s.err
	}
	return types.SignTx(tx, types.LatestSignerForChainID(chainId), s.key)
}

type clientSuite struct {
	suite.Suite

	ctx     bCtx.Ctx
	backend *fakeBackend
	signer  *keySigner
	im      *clientImpl
	to      common.Address
}

func (s *clientSuite) SetupTest() {
	key, err := crypto.GenerateKey()
	s.Require().NoError(err)
	s.ctx = bCtx.Background()
	s.backend = &fakeBackend{receipts: map[common.Hash]*types.Receipt{}}
	s.signer = &keySigner{key: key, addr: crypto.PubkeyToAddress(key.PublicKey)}
	s.to = common.HexToAddress("0xcEf4E7efCC70A33C8dd32001Da9425946e0f6C61")
	s.im = NewClient(&ClientCfg{
		ChainId:      5,
		Backend:      s.backend,
		Signer:       s.signer,
		PollInterval: 5 * time.Millisecond,
		PollLimit:    20 * time.Millisecond,
	}).(*clientImpl)
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(clientSuite))
}

func (s *clientSuite) TestCall() {
	out, err := baseabi.ERC721TokenABI.Methods["balanceOf"].Outputs.Pack(big.NewInt(3))
	s.Require().NoError(err)
	s.backend.callResult = out

	res, err := s.im.Call(s.ctx, s.to, nil, baseabi.ERC721TokenABI, "balanceOf", s.signer.addr)
	s.Require().NoError(err)
	s.Equal(big.NewInt(3), res[0].(*big.Int))

	s.backend.callErr = errors.New("dial tcp: timeout")
	_, err = s.im.Call(s.ctx, s.to, nil, baseabi.ERC721TokenABI, "balanceOf", s.signer.addr)
	s.Error(err)

	_, err = s.im.Call(s.ctx, s.to, nil, baseabi.ERC721TokenABI, "noSuchMethod")
	s.Error(err)
}

func (s *clientSuite) TestTransact() {
	hash, err := s.im.Transact(s.ctx, s.signer.addr, s.to, baseabi.StakingABI, "claimRewards")
	s.Require().NoError(err)
	s.Require().Len(s.backend.sent, 1)

	tx := s.backend.sent[0]
	s.Equal(hash, tx.Hash())
	s.Equal(uint8(types.DynamicFeeTxType), tx.Type())
	s.Equal(uint64(7), tx.Nonce())
	s.Equal(uint64(120000), tx.Gas())
	s.Equal(big.NewInt(2), tx.GasTipCap())
	s.Equal(big.NewInt(22), tx.GasFeeCap())
	s.Equal(s.to, *tx.To())
	s.Equal(baseabi.StakingABI.Methods["claimRewards"].ID, tx.Data()[:4])

	sender, err := types.Sender(types.LatestSignerForChainID(big.NewInt(5)), tx)
	s.Require().NoError(err)
	s.Equal(s.signer.addr, sender)
}

func (s *clientSuite) TestTransactErrors() {
	stranger := common.HexToAddress("0x0000000000000000000000000000000000000001")
	_, err := s.im.Transact(s.ctx, stranger, s.to, baseabi.StakingABI, "claimRewards")
	s.True(errors.Is(err, domain.ErrTransactionRejected))

	s.backend.estimateErr = errors.New("execution reverted: nothing to claim")
	_, err = s.im.Transact(s.ctx, s.signer.addr, s.to, baseabi.StakingABI, "claimRewards")
	s.True(errors.Is(err, domain.ErrTransactionReverted))
	s.backend.estimateErr = nil

	s.signer.err = errors.New("user denied")
	_, err = s.im.Transact(s.ctx, s.signer.addr, s.to, baseabi.StakingABI, "claimRewards")
	s.True(errors.Is(err, domain.ErrTransactionRejected))
	s.signer.err = nil

	s.backend.sendErr = errors.New("insufficient funds for gas * price + value")
	_, err = s.im.Transact(s.ctx, s.signer.addr, s.to, baseabi.StakingABI, "claimRewards")
	s.True(errors.Is(err, domain.ErrTransactionRejected))
	s.Empty(s.backend.sent)
}

func (s *clientSuite) TestWaitMined() {
	hash := common.HexToHash("0x01")
	s.backend.receiptErrs = 1
	go func() {
		time.Sleep(30 * time.Millisecond)
		s.backend.mine(hash, types.ReceiptStatusSuccessful)
	}()

	receipt, err := s.im.WaitMined(s.ctx, hash)
	s.Require().NoError(err)
	s.Equal(hash, receipt.TxHash)
	s.Equal(types.ReceiptStatusSuccessful, receipt.Status)
}

func (s *clientSuite) TestWaitMinedTimeout() {
	ctx, cancel := bCtx.WithTimeout(s.ctx, 30*time.Millisecond)
	defer cancel()

	_, err := s.im.WaitMined(ctx, common.HexToHash("0x02"))
	s.True(errors.Is(err, domain.ErrFetchFailure))
}

func (s *clientSuite) TestBlockNumber() {
	n, err := s.im.BlockNumber(s.ctx)
	s.NoError(err)
	s.Equal(uint64(100), n)
}

func TestIsExecutionReverted(t *testing.T) {
	req := require.New(t)
	req.True(IsExecutionReverted(errors.New("execution reverted")))
	req.False(IsExecutionReverted(errors.New("nonce too low")))
	req.False(IsExecutionReverted(nil))
}

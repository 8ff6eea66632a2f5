package contract

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	bCtx "github.com/x-xyz/stakeview/base/ctx"
	"github.com/x-xyz/stakeview/service/chain/mocks"
)

func TestStaking(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()
	client := &mocks.Client{}
	defer client.AssertExpectations(t)
	im := NewStaking(client, stakingAddr)

	client.On("Call", ctx, stakingAddr, (*big.Int)(nil), mock.Anything, "getStakeInfo", ownerAddr).
		Return([]interface{}{[]*big.Int{big.NewInt(3), big.NewInt(9)}, big.NewInt(500)}, nil).Once()
	ids, rewards, err := im.GetStakeInfo(ctx, ownerAddr)
	req.NoError(err)
	req.Equal([]*big.Int{big.NewInt(3), big.NewInt(9)}, ids)
	req.Equal(big.NewInt(500), rewards)

	client.On("Transact", ctx, ownerAddr, stakingAddr, mock.Anything, "stake", []*big.Int{big.NewInt(1)}).
		Return(common.HexToHash("0x01"), nil).Once()
	hash, err := im.Stake(ctx, ownerAddr, []*big.Int{big.NewInt(1)})
	req.NoError(err)
	req.Equal(common.HexToHash("0x01"), hash)

	client.On("Transact", ctx, ownerAddr, stakingAddr, mock.Anything, "claimRewards").
		Return(common.HexToHash("0x02"), nil).Once()
	hash, err = im.ClaimRewards(ctx, ownerAddr)
	req.NoError(err)
	req.Equal(common.HexToHash("0x02"), hash)
}

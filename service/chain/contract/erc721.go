package contract

import (
	"math/big"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	baseabi "github.com/x-xyz/stakeview/base/abi"
	bCtx "github.com/x-xyz/stakeview/base/ctx"
	"github.com/x-xyz/stakeview/service/chain"
)

// Erc721Contract is the enumerable ERC721 surface of the collection
type Erc721Contract interface {
	Address() common.Address
	Supports721Interface(ctx bCtx.Ctx) (bool, error)
	BalanceOf(ctx bCtx.Ctx, owner common.Address) (*big.Int, error)
	TokenOfOwnerByIndex(ctx bCtx.Ctx, owner common.Address, index *big.Int) (*big.Int, error)
	TokenURI(ctx bCtx.Ctx, tokenId *big.Int) (string, error)
	IsApprovedForAll(ctx bCtx.Ctx, owner, operator common.Address) (bool, error)
	SetApprovalForAll(ctx bCtx.Ctx, from, operator common.Address, approved bool) (common.Hash, error)
}

type Erc721 struct {
	chainService      chain.Client
	abi               ethabi.ABI
	addr              common.Address
	erc721InterfaceId [4]byte
}

func NewErc721(chainService chain.Client, addr common.Address) *Erc721 {
	var interfaceId [4]byte
	copy(interfaceId[:], common.Hex2Bytes("80ac58cd"))
	return &Erc721{
		abi:               baseabi.ERC721TokenABI,
		chainService:      chainService,
		addr:              addr,
		erc721InterfaceId: interfaceId,
	}
}

func (e *Erc721) Address() common.Address {
	return e.addr
}

func (e *Erc721) Supports721Interface(ctx bCtx.Ctx) (bool, error) {
	unpacked, err := e.chainService.Call(ctx, e.addr, nil, e.abi, "supportsInterface", e.erc721InterfaceId)
	if err != nil {
		return false, err
	}
	return unpacked[0].(bool), nil
}

func (e *Erc721) BalanceOf(ctx bCtx.Ctx, owner common.Address) (*big.Int, error) {
	unpacked, err := e.chainService.Call(ctx, e.addr, nil, e.abi, "balanceOf", owner)
	if err != nil {
		return nil, err
	}
	return unpacked[0].(*big.Int), nil
}

func (e *Erc721) TokenOfOwnerByIndex(ctx bCtx.Ctx, owner common.Address, index *big.Int) (*big.Int, error) {
	unpacked, err := e.chainService.Call(ctx, e.addr, nil, e.abi, "tokenOfOwnerByIndex", owner, index)
	if err != nil {
		return nil, err
	}
	return unpacked[0].(*big.Int), nil
}

func (e *Erc721) TokenURI(ctx bCtx.Ctx, tokenId *big.Int) (string, error) {
	unpacked, err := e.chainService.Call(ctx, e.addr, nil, e.abi, "tokenURI", tokenId)
	if err != nil {
		return "", err
	}
	return unpacked[0].(string), nil
}

func (e *Erc721) IsApprovedForAll(ctx bCtx.Ctx, owner, operator common.Address) (bool, error) {
	unpacked, err := e.chainService.Call(ctx, e.addr, nil, e.abi, "isApprovedForAll", owner, operator)
	if err != nil {
		return false, err
	}
	return unpacked[0].(bool), nil
}

func (e *Erc721) SetApprovalForAll(ctx bCtx.Ctx, from, operator common.Address, approved bool) (common.Hash, error) {
	return e.chainService.Transact(ctx, from, e.addr, e.abi, "setApprovalForAll", operator, approved)
}

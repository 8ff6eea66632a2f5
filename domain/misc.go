package domain

import (
	"math/big"
	"strings"

	"golang.org/x/xerrors"
)

type Address string

func (a Address) ToLowerStr() string {
	return strings.ToLower(string(a))
}

func (a Address) IsEmpty() bool {
	return len(a) == 0
}

func (a Address) Equals(b Address) bool {
	return a.ToLowerStr() == b.ToLowerStr()
}

func (a Address) String() string {
	return string(a)
}

type TokenId string

func (i TokenId) String() string {
	return string(i)
}

// ToBigInt parses the decimal token id
func (i TokenId) ToBigInt() (*big.Int, error) {
	id, ok := new(big.Int).SetString(i.String(), 10)
	if !ok || id.Sign() < 0 {
		return nil, xerrors.Errorf("invalid token id %q: %w", string(i), ErrBadParamInput)
	}
	return id, nil
}

func TokenIdFromBigInt(id *big.Int) TokenId {
	return TokenId(id.String())
}

type TxHash string

type BlockNumber uint64

package ethereum

import (
	"crypto/ecdsa"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// ParsePrivateKey accepts a hex private key with or without 0x prefix
func ParsePrivateKey(hexKey string) (*ecdsa.PrivateKey, common.Address, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(hexKey), "0x"))
	if err != nil {
		return nil, common.Address{}, err
	}
	return key, crypto.PubkeyToAddress(key.PublicKey), nil
}

// IsValidAddress reports whether address is a 20 byte hex address, with a
// matching checksum if it is mixed case
func IsValidAddress(address string) bool {
	if !common.IsHexAddress(address) {
		return false
	}
	body := strings.TrimPrefix(strings.TrimPrefix(address, "0x"), "0X")
	if body == strings.ToLower(body) || body == strings.ToUpper(body) {
		return true
	}
	return common.HexToAddress(address).Hex() == "0x"+body
}

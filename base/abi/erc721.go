package abi

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

var ERC721TokenABI abi.ABI

// erc721 + enumerable + metadata extension, only the members we call
var erc721ABI = `[
{"type":"function","name":"supportsInterface","stateMutability":"view","inputs":[{"type":"bytes4","name":"interfaceId"}],"outputs":[{"type":"bool"}]},
{"type":"function","name":"balanceOf","stateMutability":"view","inputs":[{"type":"address","name":"owner"}],"outputs":[{"type":"uint256"}]},
{"type":"function","name":"tokenOfOwnerByIndex","stateMutability":"view","inputs":[{"type":"address","name":"owner"},{"type":"uint256","name":"index"}],"outputs":[{"type":"uint256"}]},
{"type":"function","name":"tokenURI","stateMutability":"view","inputs":[{"type":"uint256","name":"tokenId"}],"outputs":[{"type":"string"}]},
{"type":"function","name":"isApprovedForAll","stateMutability":"view","inputs":[{"type":"address","name":"owner"},{"type":"address","name":"operator"}],"outputs":[{"type":"bool"}]},
{"type":"function","name":"setApprovalForAll","stateMutability":"nonpayable","inputs":[{"type":"address","name":"operator"},{"type":"bool","name":"approved"}],"outputs":[]},
{"type":"event","anonymous":false,"name":"ApprovalForAll","inputs":[{"type":"address","name":"owner","indexed":true},{"type":"address","name":"operator","indexed":true},{"type":"bool","name":"approved"}]}
]`

func init() {
	_abi, err := abi.JSON(strings.NewReader(erc721ABI))
	if err != nil {
		panic("Failed to parse erc721 abi")
	}
	ERC721TokenABI = _abi
}

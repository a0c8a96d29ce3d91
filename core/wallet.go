package core

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// NormalizeWallet trims w and rewrites hex addresses in their EIP-55 checksum form.
// Anything that is not a hex address is kept as is.
func NormalizeWallet(w string) string {
	w = strings.TrimSpace(w)
	if common.IsHexAddress(w) {
		return common.HexToAddress(w).Hex()
	}
	return w
}

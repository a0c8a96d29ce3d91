package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeWallet(t *testing.T) {
	checksummed := "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"

	assert.Equal(t, checksummed, NormalizeWallet("0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"))
	assert.Equal(t, checksummed, NormalizeWallet("0x5AAEB6053F3E94C9B9A09F33669435E7EF1BEAED"))
	assert.Equal(t, checksummed, NormalizeWallet("  "+checksummed+"\n"))

	// not an address
	assert.Equal(t, "0xabc", NormalizeWallet("0xabc"))
	assert.Equal(t, "0xdef", NormalizeWallet(" 0xdef "))
	assert.Equal(t, "", NormalizeWallet("   "))
}

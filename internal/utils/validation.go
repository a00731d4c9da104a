package utils

import (
	"encoding/hex"
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

var (
	xrplAddressRegex = regexp.MustCompile(`^r[1-9A-HJ-NP-Za-km-z]{24,34}$`)
	isoCurrencyRegex = regexp.MustCompile(`^[A-Za-z0-9?!@#$%^&*<>(){}\[\]|]{3}$`)
)

// IsValidXrplAddress checks the shape of a classic XRPL address.
// Note: it does not verify the base58 checksum.
func IsValidXrplAddress(address string) bool {
	return xrplAddressRegex.MatchString(address)
}

// IsValidTxHash checks if the given string is a 256-bit hex transaction hash.
func IsValidTxHash(txHash string) bool {
	if len(txHash) != 64 {
		return false
	}
	_, err := hex.DecodeString(txHash)
	return err == nil
}

// IsValidCurrencyCode accepts the two XRPL issued-currency forms: a 3
// character standard code other than XRP, or a 40 character hex code.
func IsValidCurrencyCode(code string) bool {
	if len(code) == 40 {
		_, err := hex.DecodeString(code)
		return err == nil
	}
	return isoCurrencyRegex.MatchString(code) && strings.ToUpper(code) != "XRP"
}

func IsValidEvmAddress(address string) bool {
	return common.IsHexAddress(address)
}

// ParsePositiveAmount parses a decimal amount and rejects zero and negative values.
func ParsePositiveAmount(amount string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(amount)
	if err != nil || !d.IsPositive() {
		return decimal.Zero, false
	}
	return d, true
}

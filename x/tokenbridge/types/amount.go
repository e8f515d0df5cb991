package types

import (
	"github.com/holiman/uint256"
)

func decimalShift(decimals uint8) *uint256.Int {
	return new(uint256.Int).Exp(uint256.NewInt(10), uint256.NewInt(uint64(decimals-MaxDecimals)))
}

// Normalize drops the precision of amount beyond MaxDecimals.
func Normalize(amount *uint256.Int, decimals uint8) *uint256.Int {
	if decimals <= MaxDecimals {
		return new(uint256.Int).Set(amount)
	}
	return new(uint256.Int).Div(amount, decimalShift(decimals))
}

// Denormalize scales a normalized amount back to the mint's precision.
func Denormalize(norm *uint256.Int, decimals uint8) *uint256.Int {
	if decimals <= MaxDecimals {
		return new(uint256.Int).Set(norm)
	}
	return new(uint256.Int).Mul(norm, decimalShift(decimals))
}

// TruncateAmount removes the dust Normalize would drop, so exactly the
// bridged value is moved into custody.
func TruncateAmount(amount uint64, decimals uint8) uint64 {
	return Denormalize(Normalize(uint256.NewInt(amount), decimals), decimals).Uint64()
}

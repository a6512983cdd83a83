package money

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Money represents a monetary amount in atomic units for a specific asset.
// All arithmetic is performed on int64 to avoid floating-point precision issues.
//
// Examples:
//   - $10.50 USD = Money{Asset: USD, Atomic: 1050} // 1050 cents
type Money struct {
	Asset  Asset // The currency
	Atomic int64 // Amount in smallest unit (cents)
}

var (
	// ErrOverflow occurs when an operation would exceed int64 capacity.
	ErrOverflow = errors.New("money: arithmetic overflow")

	// ErrAssetMismatch occurs when operating on different assets.
	ErrAssetMismatch = errors.New("money: asset mismatch")
)

// Zero returns a zero amount for the given asset.
func Zero(asset Asset) Money {
	return Money{Asset: asset, Atomic: 0}
}

// New creates a Money from atomic units.
func New(asset Asset, atomic int64) Money {
	return Money{Asset: asset, Atomic: atomic}
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.Atomic == 0
}

// Add returns m + other, checking asset compatibility and overflow.
func (m Money) Add(other Money) (Money, error) {
	if m.Asset.Code != other.Asset.Code {
		return Money{}, ErrAssetMismatch
	}
	if other.Atomic > 0 && m.Atomic > math.MaxInt64-other.Atomic {
		return Money{}, ErrOverflow
	}
	if other.Atomic < 0 && m.Atomic < math.MinInt64-other.Atomic {
		return Money{}, ErrOverflow
	}
	return Money{Asset: m.Asset, Atomic: m.Atomic + other.Atomic}, nil
}

// MulInt returns m * n for non-negative operands, checking overflow.
// Used for extending a unit price by quantity.
func (m Money) MulInt(n int64) (Money, error) {
	if m.Atomic < 0 || n < 0 {
		return Money{}, fmt.Errorf("money: negative operand in MulInt (%d * %d)", m.Atomic, n)
	}
	if n > 0 && m.Atomic > math.MaxInt64/n {
		return Money{}, ErrOverflow
	}
	return Money{Asset: m.Asset, Atomic: m.Atomic * n}, nil
}

// Sum adds multiple Money values together. All values must share an asset.
func Sum(amounts ...Money) (Money, error) {
	if len(amounts) == 0 {
		return Money{}, nil
	}
	result := amounts[0]
	for i := 1; i < len(amounts); i++ {
		var err error
		result, err = result.Add(amounts[i])
		if err != nil {
			return Money{}, err
		}
	}
	return result, nil
}

// ToMajor converts Money to a major-unit string with proper decimal places.
//
// Example: Money{USD, 1050}.ToMajor() -> "10.50"
func (m Money) ToMajor() string {
	divisor := int64(math.Pow10(int(m.Asset.Decimals)))
	if divisor <= 1 {
		return fmt.Sprintf("%d", m.Atomic)
	}
	atomic := m.Atomic
	sign := ""
	if atomic < 0 {
		sign = "-"
		atomic = -atomic
	}
	whole := atomic / divisor
	frac := atomic % divisor
	return fmt.Sprintf("%s%d.%0*d", sign, whole, m.Asset.Decimals, frac)
}

// String renders the amount with its asset code, e.g. "10.50 USD".
func (m Money) String() string {
	return strings.TrimSpace(m.ToMajor() + " " + m.Asset.Code)
}

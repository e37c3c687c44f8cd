package clmm

import (
	"math/big"
)

var q96 = new(big.Int).Lsh(big.NewInt(1), 96)

// LiquidityForAmounts returns the maximum liquidity obtainable for a deposit
// of amount0/amount1 into the range [sqrtRatioAX96, sqrtRatioBX96] at the
// current price. Bounds may be passed in either order. When the current price
// sits inside the range, the result is the minimum of the liquidity each
// token could fund on its half of the range, so neither deposit is exceeded.
func LiquidityForAmounts(sqrtRatioCurrentX96, sqrtRatioAX96, sqrtRatioBX96, amount0, amount1 *big.Int) (*big.Int, error) {
	low, high, err := sortSqrtRatios(sqrtRatioAX96, sqrtRatioBX96)
	if err != nil {
		return nil, err
	}
	if amount0 == nil || amount0.Sign() < 0 || amount1 == nil || amount1.Sign() < 0 {
		return nil, ErrInvalidInput
	}
	if sqrtRatioCurrentX96 == nil || sqrtRatioCurrentX96.Sign() <= 0 {
		return nil, ErrInvalidInput
	}

	switch {
	case sqrtRatioCurrentX96.Cmp(low) <= 0:
		return liquidityForAmount0(low, high, amount0), nil
	case sqrtRatioCurrentX96.Cmp(high) < 0:
		liquidity0 := liquidityForAmount0(sqrtRatioCurrentX96, high, amount0)
		liquidity1 := liquidityForAmount1(low, sqrtRatioCurrentX96, amount1)
		if liquidity0.Cmp(liquidity1) < 0 {
			return liquidity0, nil
		}
		return liquidity1, nil
	default:
		return liquidityForAmount1(low, high, amount1), nil
	}
}

// AmountsForLiquidity returns the token amounts represented by a liquidity
// quantity in the range [sqrtRatioAX96, sqrtRatioBX96] at the current price.
// Bounds may be passed in either order. A position entirely below the current
// price holds only token1; entirely above, only token0.
func AmountsForLiquidity(sqrtRatioCurrentX96, sqrtRatioAX96, sqrtRatioBX96, liquidity *big.Int) (*big.Int, *big.Int, error) {
	low, high, err := sortSqrtRatios(sqrtRatioAX96, sqrtRatioBX96)
	if err != nil {
		return nil, nil, err
	}
	if liquidity == nil || liquidity.Sign() < 0 {
		return nil, nil, ErrInvalidInput
	}
	if sqrtRatioCurrentX96 == nil || sqrtRatioCurrentX96.Sign() <= 0 {
		return nil, nil, ErrInvalidInput
	}

	amount0 := big.NewInt(0)
	amount1 := big.NewInt(0)

	switch {
	case sqrtRatioCurrentX96.Cmp(low) <= 0:
		amount0 = amount0InRange(low, high, liquidity)
	case sqrtRatioCurrentX96.Cmp(high) < 0:
		amount0 = amount0InRange(sqrtRatioCurrentX96, high, liquidity)
		amount1 = amount1InRange(low, sqrtRatioCurrentX96, liquidity)
	default:
		amount1 = amount1InRange(low, high, liquidity)
	}

	return amount0, amount1, nil
}

// sortSqrtRatios orders the range bounds and rejects zero-width or
// non-positive ranges before any division can occur.
func sortSqrtRatios(a, b *big.Int) (*big.Int, *big.Int, error) {
	if a == nil || b == nil {
		return nil, nil, ErrInvalidRange
	}
	low, high := a, b
	if low.Cmp(high) > 0 {
		low, high = high, low
	}
	if low.Sign() <= 0 || low.Cmp(high) == 0 {
		return nil, nil, ErrInvalidRange
	}
	return low, high, nil
}

// liquidityForAmount0 computes amount0 * low * high / ((high - low) * 2^96).
func liquidityForAmount0(low, high, amount0 *big.Int) *big.Int {
	numerator := new(big.Int).Mul(amount0, low)
	numerator.Mul(numerator, high)
	denominator := new(big.Int).Sub(high, low)
	denominator.Mul(denominator, q96)
	return numerator.Div(numerator, denominator)
}

// liquidityForAmount1 computes amount1 * 2^96 / (high - low).
func liquidityForAmount1(low, high, amount1 *big.Int) *big.Int {
	numerator := new(big.Int).Mul(amount1, q96)
	denominator := new(big.Int).Sub(high, low)
	return numerator.Div(numerator, denominator)
}

// amount0InRange computes liquidity * 2^96 * (high - low) / (high * low).
func amount0InRange(low, high, liquidity *big.Int) *big.Int {
	numerator := new(big.Int).Mul(liquidity, q96)
	numerator.Mul(numerator, new(big.Int).Sub(high, low))
	denominator := new(big.Int).Mul(high, low)
	return numerator.Div(numerator, denominator)
}

// amount1InRange computes liquidity * (high - low) / 2^96.
func amount1InRange(low, high, liquidity *big.Int) *big.Int {
	numerator := new(big.Int).Mul(liquidity, new(big.Int).Sub(high, low))
	return numerator.Div(numerator, q96)
}

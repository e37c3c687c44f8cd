package clmm

import (
	"errors"
	"math"
	"math/big"
)

// Tick bounds supported by the pool pricing curve. One tick is a 1 basis
// point price step: price = 1.0001^tick.
const (
	MinTick int32 = -887272
	MaxTick int32 = 887272
)

var (
	// MinSqrtRatio is sqrt(1.0001^MinTick) * 2^96.
	MinSqrtRatio = big.NewInt(4295128739)

	// MaxSqrtRatio is sqrt(1.0001^MaxTick) * 2^96.
	MaxSqrtRatio = mustBigInt("1461446703485210103287273052203988822378723970342")
)

var (
	// ErrOutOfDomain reports a tick outside [MinTick, MaxTick]. Out-of-domain
	// ticks are rejected rather than clamped.
	ErrOutOfDomain = errors.New("tick out of domain")

	// ErrInvalidInput reports a malformed numeric argument.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidRange reports a zero-width or unusable price range.
	ErrInvalidRange = errors.New("invalid price range")
)

var maxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

// Per-bit factors sqrt(1.0001^-(2^i)) in Q128, i = 0..19.
var tickFactors = [20]*big.Int{
	mustBigIntHex("fffcb933bd6fad37aa2d162d1a594001"),
	mustBigIntHex("fff97272373d413259a46990580e213a"),
	mustBigIntHex("fff2e50f5f656932ef12357cf3c7fdcc"),
	mustBigIntHex("ffe5caca7e10e4e61c3624eaa0941cd0"),
	mustBigIntHex("ffcb9843d60f6159c9db58835c926644"),
	mustBigIntHex("ff973b41fa98c081472e6896dfb254c0"),
	mustBigIntHex("ff2ea16466c96a3843ec78b326b52861"),
	mustBigIntHex("fe5dee046a99a2a811c461f1969c3053"),
	mustBigIntHex("fcbe86c7900a88aedcffc83b479aa3a4"),
	mustBigIntHex("f987a7253ac413176f2b074cf7815e54"),
	mustBigIntHex("f3392b0822b70005940c7a398e4b70f3"),
	mustBigIntHex("e7159475a2c29b7443b29c7fa6e889d9"),
	mustBigIntHex("d097f3bdfd2022b8845ad8f792aa5825"),
	mustBigIntHex("a9f746462d870fdf8a65dc1f90e061e5"),
	mustBigIntHex("70d869a156d2a1b890bb3df62baf32f7"),
	mustBigIntHex("31be135f97d08fd981231505542fcfa6"),
	mustBigIntHex("9aa508b5b7a84e1c677de54f3e99bc9"),
	mustBigIntHex("5d6af8dedb81196699c329225ee604"),
	mustBigIntHex("2216e584f5fa1ea926041bedfe98"),
	mustBigIntHex("48a170391f7dc42444e8fa2"),
}

// SqrtRatioAtTick computes floor(sqrt(1.0001^tick) * 2^96) as an exact
// integer, bit-compatible with the on-chain tick math. Ticks outside
// [MinTick, MaxTick] return ErrOutOfDomain.
func SqrtRatioAtTick(tick int32) (*big.Int, error) {
	if tick < MinTick || tick > MaxTick {
		return nil, ErrOutOfDomain
	}

	absTick := uint32(tick)
	if tick < 0 {
		absTick = uint32(-tick)
	}

	ratio := new(big.Int).Lsh(big.NewInt(1), 128)
	for i, factor := range tickFactors {
		if absTick&(1<<uint(i)) != 0 {
			ratio.Mul(ratio, factor)
			ratio.Rsh(ratio, 128)
		}
	}

	if tick > 0 {
		ratio.Div(maxUint256, ratio)
	}

	// Q128 -> Q96, rounding up.
	rem := new(big.Int).And(ratio, big.NewInt((1<<32)-1))
	ratio.Rsh(ratio, 32)
	if rem.Sign() != 0 {
		ratio.Add(ratio, big.NewInt(1))
	}
	return ratio, nil
}

// TickAtPrice returns floor(log(price) / log(1.0001)), the highest tick whose
// price does not exceed the given price. The price is the display-side
// token1-per-token0 ratio, not its square root.
func TickAtPrice(price float64) (int32, error) {
	if price <= 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, ErrInvalidInput
	}
	tick := math.Floor(math.Log(price) / math.Log(1.0001))
	if tick < float64(MinTick) || tick > float64(MaxTick) {
		return 0, ErrOutOfDomain
	}
	return int32(tick), nil
}

// PriceFromTick returns 1.0001^tick in double precision. This path feeds
// display and input parsing only, never settlement amounts.
func PriceFromTick(tick int32) float64 {
	return math.Pow(1.0001, float64(tick))
}

func mustBigInt(s string) *big.Int {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("clmm: bad integer literal: " + s)
	}
	return n
}

func mustBigIntHex(s string) *big.Int {
	n, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("clmm: bad hex literal: " + s)
	}
	return n
}

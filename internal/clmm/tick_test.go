package clmm

import (
	"errors"
	"math"
	"math/big"
	"testing"
)

func TestSqrtRatioAtTickZero(t *testing.T) {
	got, err := SqrtRatioAtTick(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := new(big.Int).Lsh(big.NewInt(1), 96)
	if got.Cmp(want) != 0 {
		t.Fatalf("sqrt ratio at tick 0: %s != %s", got, want)
	}
}

func TestSqrtRatioAtTickBounds(t *testing.T) {
	got, err := SqrtRatioAtTick(MinTick)
	if err != nil {
		t.Fatalf("unexpected error at min tick: %v", err)
	}
	if got.Cmp(MinSqrtRatio) != 0 {
		t.Fatalf("sqrt ratio at min tick: %s != %s", got, MinSqrtRatio)
	}

	got, err = SqrtRatioAtTick(MaxTick)
	if err != nil {
		t.Fatalf("unexpected error at max tick: %v", err)
	}
	if got.Cmp(MaxSqrtRatio) != 0 {
		t.Fatalf("sqrt ratio at max tick: %s != %s", got, MaxSqrtRatio)
	}
}

func TestSqrtRatioAtTickOutOfDomain(t *testing.T) {
	if _, err := SqrtRatioAtTick(MinTick - 1); !errors.Is(err, ErrOutOfDomain) {
		t.Fatalf("expected ErrOutOfDomain below min tick, got %v", err)
	}
	if _, err := SqrtRatioAtTick(MaxTick + 1); !errors.Is(err, ErrOutOfDomain) {
		t.Fatalf("expected ErrOutOfDomain above max tick, got %v", err)
	}
}

func TestSqrtRatioAtTickMonotonic(t *testing.T) {
	ticks := []int32{MinTick, -887200, -100000, -1000, -60, -1, 0, 1, 60, 1000, 100000, 887200, MaxTick}

	prev, err := SqrtRatioAtTick(ticks[0])
	if err != nil {
		t.Fatalf("unexpected error at tick %d: %v", ticks[0], err)
	}
	for _, tick := range ticks[1:] {
		cur, err := SqrtRatioAtTick(tick)
		if err != nil {
			t.Fatalf("unexpected error at tick %d: %v", tick, err)
		}
		if cur.Cmp(prev) <= 0 {
			t.Fatalf("sqrt ratio not increasing at tick %d: %s <= %s", tick, cur, prev)
		}
		prev = cur
	}
}

func TestSqrtRatioSquaredTracksPrice(t *testing.T) {
	for _, tick := range []int32{-5000, -60, 0, 60, 5000} {
		ratio, err := SqrtRatioAtTick(tick)
		if err != nil {
			t.Fatalf("unexpected error at tick %d: %v", tick, err)
		}

		sqrt, _ := new(big.Float).SetInt(ratio).Float64()
		scaled := sqrt / math.Pow(2, 96)
		got := scaled * scaled
		want := PriceFromTick(tick)

		if diff := math.Abs(got-want) / want; diff > 1e-6 {
			t.Fatalf("price mismatch at tick %d: %g != %g (rel %g)", tick, got, want, diff)
		}
	}
}

func TestTickAtPriceRoundTrip(t *testing.T) {
	for _, tick := range []int32{-100000, -1234, -1, 0, 1, 1234, 100000} {
		price := PriceFromTick(tick)
		got, err := TickAtPrice(price)
		if err != nil {
			t.Fatalf("unexpected error at tick %d: %v", tick, err)
		}
		diff := got - tick
		if diff < -1 || diff > 1 {
			t.Fatalf("round trip at tick %d: got %d", tick, got)
		}
	}
}

func TestTickAtPriceInvalid(t *testing.T) {
	for _, price := range []float64{0, -1, math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := TickAtPrice(price); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for %v, got %v", price, err)
		}
	}
}

func TestTickAtPriceOutOfDomain(t *testing.T) {
	if _, err := TickAtPrice(1e300); !errors.Is(err, ErrOutOfDomain) {
		t.Fatalf("expected ErrOutOfDomain for huge price, got %v", err)
	}
	if _, err := TickAtPrice(1e-300); !errors.Is(err, ErrOutOfDomain) {
		t.Fatalf("expected ErrOutOfDomain for tiny price, got %v", err)
	}
}

func TestPriceFromTickMonotonic(t *testing.T) {
	prev := PriceFromTick(-1000)
	for tick := int32(-999); tick <= 1000; tick++ {
		cur := PriceFromTick(tick)
		if cur <= prev {
			t.Fatalf("price not increasing at tick %d: %g <= %g", tick, cur, prev)
		}
		prev = cur
	}
}

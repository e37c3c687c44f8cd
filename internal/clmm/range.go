package clmm

import "fmt"

// FeeTier pairs a pool fee (in hundredths of a basis point) with the tick
// spacing that governs position boundaries at that tier.
type FeeTier struct {
	Fee         uint32
	TickSpacing int32
}

// DefaultFeeTiers returns the standard fee tier set. Callers that index pools
// with non-standard tiers supply their own table instead.
func DefaultFeeTiers() []FeeTier {
	return []FeeTier{
		{Fee: 100, TickSpacing: 2},
		{Fee: 500, TickSpacing: 10},
		{Fee: 3000, TickSpacing: 60},
		{Fee: 10000, TickSpacing: 200},
	}
}

// TickSpacingForFee looks up the tick spacing for a fee in the given tier
// table. Unknown fees are an error, never a silent default.
func TickSpacingForFee(tiers []FeeTier, fee uint32) (int32, error) {
	for _, tier := range tiers {
		if tier.Fee == fee {
			return tier.TickSpacing, nil
		}
	}
	return 0, fmt.Errorf("unknown fee tier: %d", fee)
}

// AlignRange snaps a tick range onto the spacing grid and clamps it into the
// supported tick domain. If alignment collapses or inverts the range, the
// upper bound is widened by one spacing so the result is always a valid
// range with tickLower < tickUpper.
func AlignRange(tickLower, tickUpper, spacing int32) (int32, int32, error) {
	if spacing <= 0 {
		return 0, 0, ErrInvalidInput
	}
	if tickLower > tickUpper {
		tickLower, tickUpper = tickUpper, tickLower
	}

	lower := floorToSpacing(tickLower, spacing)
	upper := floorToSpacing(tickUpper, spacing)

	minAligned := ceilToSpacing(MinTick, spacing)
	maxAligned := floorToSpacing(MaxTick, spacing)
	if lower < minAligned {
		lower = minAligned
	}
	if upper > maxAligned {
		upper = maxAligned
	}

	if lower >= upper {
		upper = lower + spacing
		if upper > maxAligned {
			upper = maxAligned
			lower = upper - spacing
		}
	}
	return lower, upper, nil
}

// FullRange returns the widest tick range aligned to the spacing grid.
func FullRange(spacing int32) (int32, int32, error) {
	if spacing <= 0 {
		return 0, 0, ErrInvalidInput
	}
	return ceilToSpacing(MinTick, spacing), floorToSpacing(MaxTick, spacing), nil
}

// floorToSpacing rounds toward negative infinity onto the spacing grid.
func floorToSpacing(tick, spacing int32) int32 {
	q := tick / spacing
	if tick%spacing != 0 && tick < 0 {
		q--
	}
	return q * spacing
}

// ceilToSpacing rounds toward positive infinity onto the spacing grid.
func ceilToSpacing(tick, spacing int32) int32 {
	q := tick / spacing
	if tick%spacing != 0 && tick > 0 {
		q++
	}
	return q * spacing
}

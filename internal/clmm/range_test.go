package clmm

import (
	"errors"
	"testing"
)

func TestTickSpacingForFee(t *testing.T) {
	tiers := DefaultFeeTiers()

	cases := map[uint32]int32{100: 2, 500: 10, 3000: 60, 10000: 200}
	for fee, want := range cases {
		got, err := TickSpacingForFee(tiers, fee)
		if err != nil {
			t.Fatalf("fee %d: %v", fee, err)
		}
		if got != want {
			t.Fatalf("fee %d: spacing %d != %d", fee, got, want)
		}
	}

	if _, err := TickSpacingForFee(tiers, 1234); err == nil {
		t.Fatalf("expected error for unknown fee tier")
	}
}

func TestAlignRange(t *testing.T) {
	cases := []struct {
		name      string
		lower     int32
		upper     int32
		spacing   int32
		wantLower int32
		wantUpper int32
	}{
		{"already aligned", -120, 120, 60, -120, 120},
		{"floors both bounds", -125, 125, 60, -180, 120},
		{"swaps inverted bounds", 120, -120, 60, -120, 120},
		{"widens collapsed range", 30, 50, 60, 0, 60},
		{"clamps to domain", MinTick - 0, MaxTick, 60, -887220, 887220},
		{"widens at domain top", MaxTick, MaxTick, 60, 887160, 887220},
	}

	for _, tc := range cases {
		lower, upper, err := AlignRange(tc.lower, tc.upper, tc.spacing)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if lower != tc.wantLower || upper != tc.wantUpper {
			t.Fatalf("%s: got (%d, %d), want (%d, %d)", tc.name, lower, upper, tc.wantLower, tc.wantUpper)
		}
		if lower >= upper {
			t.Fatalf("%s: range not ascending: %d >= %d", tc.name, lower, upper)
		}
		if lower%tc.spacing != 0 || upper%tc.spacing != 0 {
			t.Fatalf("%s: range not on spacing grid: (%d, %d)", tc.name, lower, upper)
		}
	}

	if _, _, err := AlignRange(0, 60, 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for zero spacing")
	}
}

func TestFullRange(t *testing.T) {
	lower, upper, err := FullRange(60)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lower != -887220 || upper != 887220 {
		t.Fatalf("full range at spacing 60: got (%d, %d)", lower, upper)
	}

	lower, upper, err = FullRange(200)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lower != -887200 || upper != 887200 {
		t.Fatalf("full range at spacing 200: got (%d, %d)", lower, upper)
	}

	if _, _, err := FullRange(-1); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative spacing")
	}
}

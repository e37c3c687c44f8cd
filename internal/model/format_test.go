package model

import (
	"math/big"
	"testing"
)

func TestFormatTokenAmount(t *testing.T) {
	cases := []struct {
		value    string
		decimals uint8
		want     string
	}{
		{"0", 18, "0.000000000000000000"},
		{"1000000000000000000", 18, "1.000000000000000000"},
		{"1500000", 6, "1.500000"},
		{"123", 6, "0.000123"},
		{"-2500000", 6, "-2.500000"},
		{"42", 0, "42"},
	}

	for _, tc := range cases {
		value, ok := new(big.Int).SetString(tc.value, 10)
		if !ok {
			t.Fatalf("bad test value: %s", tc.value)
		}
		got := FormatTokenAmount(value, tc.decimals)
		if got != tc.want {
			t.Fatalf("format %s with %d decimals: %s != %s", tc.value, tc.decimals, got, tc.want)
		}
	}

	if got := FormatTokenAmount(nil, 18); got != "0" {
		t.Fatalf("nil value: %s", got)
	}
}

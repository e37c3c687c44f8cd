package config

import (
	"github.com/spf13/pflag"
)

// QuoteConfig holds configuration for liquidity quoting.
type QuoteConfig struct {
	RPCURL    string
	Pool      string
	Fee       uint32
	Spacing   int32
	TickLower int32
	TickUpper int32
	MinPrice  float64
	MaxPrice  float64
	SqrtPrice string
	Amount0   string
	Amount1   string
	Decimals0 uint8
	Decimals1 uint8
	LogLevel  string
}

// LoadQuote merges config file, environment variables, and flags into QuoteConfig.
func LoadQuote(cfgFile string, flags *pflag.FlagSet) (QuoteConfig, error) {
	v, err := newViper(cfgFile, flags, map[string]interface{}{
		"fee":       uint32(3000),
		"amount0":   "0",
		"amount1":   "0",
		"decimals0": uint8(18),
		"decimals1": uint8(18),
		"log-level": "info",
	})
	if err != nil {
		return QuoteConfig{}, err
	}

	cfg := QuoteConfig{
		RPCURL:    v.GetString("rpc"),
		Pool:      v.GetString("pool"),
		Fee:       uint32(v.GetUint("fee")),
		Spacing:   int32(v.GetInt("spacing")),
		TickLower: int32(v.GetInt("tick-lower")),
		TickUpper: int32(v.GetInt("tick-upper")),
		MinPrice:  v.GetFloat64("min-price"),
		MaxPrice:  v.GetFloat64("max-price"),
		SqrtPrice: v.GetString("sqrt-price"),
		Amount0:   v.GetString("amount0"),
		Amount1:   v.GetString("amount1"),
		Decimals0: uint8(v.GetUint("decimals0")),
		Decimals1: uint8(v.GetUint("decimals1")),
		LogLevel:  v.GetString("log-level"),
	}

	return cfg, nil
}

package config

import (
	"github.com/spf13/pflag"
)

// BookConfig holds configuration for order-book aggregation.
type BookConfig struct {
	Input    string
	Depth    int
	PGDSN    string
	LogLevel string
}

// LoadBook merges config file, environment variables, and flags into BookConfig.
func LoadBook(cfgFile string, flags *pflag.FlagSet) (BookConfig, error) {
	v, err := newViper(cfgFile, flags, map[string]interface{}{
		"in":        "./data/orders.jsonl",
		"depth":     0,
		"log-level": "info",
	})
	if err != nil {
		return BookConfig{}, err
	}

	cfg := BookConfig{
		Input:    v.GetString("in"),
		Depth:    v.GetInt("depth"),
		PGDSN:    v.GetString("pg-dsn"),
		LogLevel: v.GetString("log-level"),
	}

	return cfg, nil
}

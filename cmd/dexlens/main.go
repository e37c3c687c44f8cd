package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	root := &cobra.Command{
		Use:          "dexlens",
		Short:        "DEX order-book and liquidity toolkit",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	scanCmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan an order book contract for active orders",
		RunE:  runScan,
	}

	scanCmd.Flags().String("rpc", "", "RPC URL")
	scanCmd.Flags().String("orderbook", "", "order book contract address")
	scanCmd.Flags().Uint64("from", 0, "start block (inclusive)")
	scanCmd.Flags().Uint64("to", 0, "end block (inclusive), 0 means latest")
	scanCmd.Flags().Uint64("batch-size", 2000, "blocks per batch")
	scanCmd.Flags().String("out", "./data/orders.jsonl", "output JSONL path")
	scanCmd.Flags().String("checkpoint", "./data/checkpoint.json", "checkpoint file path")
	scanCmd.Flags().Bool("checkpoint-enabled", true, "enable checkpointing")
	scanCmd.Flags().Int("max-retries", 5, "maximum retry attempts")
	scanCmd.Flags().Duration("retry-backoff", 500*time.Millisecond, "initial retry backoff")
	scanCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(scanCmd)

	bookCmd := &cobra.Command{
		Use:   "book",
		Short: "Aggregate scanned orders into an order book",
		RunE:  runBook,
	}

	bookCmd.Flags().String("in", "./data/orders.jsonl", "input orders JSONL")
	bookCmd.Flags().Int("depth", 0, "levels per side to print, 0 means all")
	bookCmd.Flags().String("pg-dsn", "", "Postgres DSN for snapshot persistence")
	bookCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(bookCmd)

	quoteCmd := &cobra.Command{
		Use:   "quote",
		Short: "Compute liquidity and amounts for a price range",
		RunE:  runQuote,
	}

	quoteCmd.Flags().String("rpc", "", "RPC URL (only needed with --pool)")
	quoteCmd.Flags().String("pool", "", "pool contract address to read slot0 from")
	quoteCmd.Flags().Uint32("fee", 3000, "fee tier in hundredths of a bip")
	quoteCmd.Flags().Int("spacing", 0, "explicit tick spacing, 0 means derive from fee")
	quoteCmd.Flags().Int("tick-lower", 0, "explicit lower tick")
	quoteCmd.Flags().Int("tick-upper", 0, "explicit upper tick")
	quoteCmd.Flags().Float64("min-price", 0, "range lower bound as a price")
	quoteCmd.Flags().Float64("max-price", 0, "range upper bound as a price")
	quoteCmd.Flags().String("sqrt-price", "", "current sqrt price X96 as a decimal string")
	quoteCmd.Flags().String("amount0", "0", "token0 deposit in smallest units")
	quoteCmd.Flags().String("amount1", "0", "token1 deposit in smallest units")
	quoteCmd.Flags().Uint8("decimals0", 18, "token0 decimals for display")
	quoteCmd.Flags().Uint8("decimals1", 18, "token1 decimals for display")
	quoteCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(quoteCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}

package main

import (
	"context"
	"fmt"
	"math/big"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"dexlens/internal/chain"
	"dexlens/internal/clmm"
	"dexlens/internal/config"
	"dexlens/internal/dex"
	"dexlens/internal/model"
	"dexlens/internal/scrape"
)

func runQuote(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadQuote(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	spacing := cfg.Spacing
	if spacing <= 0 {
		spacing, err = clmm.TickSpacingForFee(clmm.DefaultFeeTiers(), cfg.Fee)
		if err != nil {
			return err
		}
	}

	tickLower, tickUpper, err := resolveRange(cfg, spacing)
	if err != nil {
		return err
	}

	sqrtA, err := clmm.SqrtRatioAtTick(tickLower)
	if err != nil {
		return err
	}
	sqrtB, err := clmm.SqrtRatioAtTick(tickUpper)
	if err != nil {
		return err
	}

	sqrtCurrent, err := resolveSqrtPrice(cfg, logger)
	if err != nil {
		return err
	}

	amount0, ok := new(big.Int).SetString(cfg.Amount0, 10)
	if !ok {
		return fmt.Errorf("invalid amount0: %s", cfg.Amount0)
	}
	amount1, ok := new(big.Int).SetString(cfg.Amount1, 10)
	if !ok {
		return fmt.Errorf("invalid amount1: %s", cfg.Amount1)
	}

	liquidity, err := clmm.LiquidityForAmounts(sqrtCurrent, sqrtA, sqrtB, amount0, amount1)
	if err != nil {
		return err
	}

	used0, used1, err := clmm.AmountsForLiquidity(sqrtCurrent, sqrtA, sqrtB, liquidity)
	if err != nil {
		return err
	}

	fmt.Printf("range: tick %d .. %d (spacing %d)\n", tickLower, tickUpper, spacing)
	fmt.Printf("price: %.10g .. %.10g\n", clmm.PriceFromTick(tickLower), clmm.PriceFromTick(tickUpper))
	fmt.Printf("sqrt price X96: %s\n", sqrtCurrent)
	fmt.Printf("liquidity: %s\n", liquidity)
	fmt.Printf("amount0 used: %s (%s)\n", used0, model.FormatTokenAmount(used0, cfg.Decimals0))
	fmt.Printf("amount1 used: %s (%s)\n", used1, model.FormatTokenAmount(used1, cfg.Decimals1))

	return nil
}

// resolveRange picks the range source in priority order: explicit prices,
// explicit ticks, then the widest usable range for the spacing. The result
// is always aligned to the spacing.
func resolveRange(cfg config.QuoteConfig, spacing int32) (int32, int32, error) {
	if cfg.MinPrice > 0 || cfg.MaxPrice > 0 {
		if cfg.MinPrice <= 0 || cfg.MaxPrice <= 0 {
			return 0, 0, fmt.Errorf("both min-price and max-price are required")
		}
		lower, err := clmm.TickAtPrice(cfg.MinPrice)
		if err != nil {
			return 0, 0, err
		}
		upper, err := clmm.TickAtPrice(cfg.MaxPrice)
		if err != nil {
			return 0, 0, err
		}
		return clmm.AlignRange(lower, upper, spacing)
	}

	if cfg.TickLower != 0 || cfg.TickUpper != 0 {
		return clmm.AlignRange(cfg.TickLower, cfg.TickUpper, spacing)
	}

	return clmm.FullRange(spacing)
}

func resolveSqrtPrice(cfg config.QuoteConfig, logger *zap.Logger) (*big.Int, error) {
	if cfg.SqrtPrice != "" {
		sqrt, ok := new(big.Int).SetString(cfg.SqrtPrice, 10)
		if !ok {
			return nil, fmt.Errorf("invalid sqrt price: %s", cfg.SqrtPrice)
		}
		return sqrt, nil
	}

	if cfg.Pool == "" {
		return nil, fmt.Errorf("either sqrt-price or pool is required")
	}
	if cfg.RPCURL == "" {
		return nil, fmt.Errorf("rpc url is required to read pool state")
	}

	pool, err := scrape.ParseAddress(cfg.Pool)
	if err != nil {
		return nil, err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	chainClient, err := chain.NewClient(ctx, cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("connect rpc: %w", err)
	}
	defer chainClient.Close()

	state, err := dex.FetchPoolState(ctx, chainClient, pool)
	if err != nil {
		return nil, fmt.Errorf("fetch pool state: %w", err)
	}

	logger.Info("pool state",
		zap.String("pool", pool.Hex()),
		zap.String("sqrt_price_x96", state.SqrtPriceX96),
		zap.Int32("tick", state.Tick),
	)

	sqrt, ok := new(big.Int).SetString(state.SqrtPriceX96, 10)
	if !ok {
		return nil, fmt.Errorf("invalid pool sqrt price: %s", state.SqrtPriceX96)
	}
	return sqrt, nil
}

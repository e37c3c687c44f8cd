package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"dexlens/internal/book"
	"dexlens/internal/config"
	"dexlens/internal/model"
	"dexlens/internal/storage/postgres"
)

func runBook(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadBook(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	records, err := readOrderRecords(cfg.Input)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		logger.Info("no orders to aggregate", zap.String("in", cfg.Input))
		return nil
	}

	orders := make([]book.Order, 0, len(records))
	for _, record := range records {
		order, err := orderFromRecord(record)
		if err != nil {
			return fmt.Errorf("order %s: %w", record.OrderHash, err)
		}
		orders = append(orders, order)
	}

	aggregated, err := book.Aggregate(orders)
	if err != nil {
		return err
	}

	logger.Info("book aggregated",
		zap.Int("orders", len(orders)),
		zap.Int("bid_levels", len(aggregated.Bids)),
		zap.Int("ask_levels", len(aggregated.Asks)),
	)

	printBook(aggregated, cfg.Depth)

	if cfg.PGDSN != "" {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		store, err := postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer store.Close()

		snapshot := snapshotFromBook(aggregated, records[0].ChainID, records[0].OrderBook, len(orders))
		if err := store.UpsertBookSnapshot(ctx, snapshot); err != nil {
			return fmt.Errorf("store snapshot: %w", err)
		}
		logger.Info("snapshot stored", zap.String("order_book", snapshot.OrderBook), zap.Int("levels", len(snapshot.Levels)))
	}

	return nil
}

func readOrderRecords(path string) ([]model.OrderRecord, error) {
	if path == "" {
		return nil, fmt.Errorf("input path is required")
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer file.Close()

	var records []model.OrderRecord
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var record model.OrderRecord
		if err := json.Unmarshal(raw, &record); err != nil {
			return nil, fmt.Errorf("parse line %d: %w", line, err)
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return records, nil
}

func orderFromRecord(record model.OrderRecord) (book.Order, error) {
	price, ok := new(big.Int).SetString(record.LimitPrice, 10)
	if !ok {
		return book.Order{}, fmt.Errorf("invalid limit price: %s", record.LimitPrice)
	}
	amount, ok := new(big.Int).SetString(record.Remaining, 10)
	if !ok {
		return book.Order{}, fmt.Errorf("invalid remaining amount: %s", record.Remaining)
	}
	return book.Order{
		Price:  price,
		Amount: amount,
		Side:   book.Side(record.Side),
	}, nil
}

func printBook(aggregated book.Book, depth int) {
	fmt.Println("asks (price ascending):")
	printLevels(aggregated.Asks, depth)
	fmt.Println("bids (price descending):")
	printLevels(aggregated.Bids, depth)

	if aggregated.BestBid != nil {
		fmt.Printf("best bid: %s\n", aggregated.BestBid)
	}
	if aggregated.BestAsk != nil {
		fmt.Printf("best ask: %s\n", aggregated.BestAsk)
	}
	if aggregated.Spread != nil {
		fmt.Printf("spread: %s (%.2f%%)\n", aggregated.Spread, *aggregated.SpreadPercent)
	}
}

func printLevels(levels []book.PriceLevel, depth int) {
	if depth <= 0 || depth > len(levels) {
		depth = len(levels)
	}
	for i := 0; i < depth; i++ {
		level := levels[i]
		fmt.Printf("  %s  amount=%s  cumulative=%s  orders=%d\n",
			level.Price, level.Amount, level.CumulativeAmount, level.OrderCount)
	}
}

func snapshotFromBook(aggregated book.Book, chainID uint64, orderBook string, orderCount int) model.BookSnapshot {
	snapshot := model.BookSnapshot{
		ChainID:    chainID,
		OrderBook:  orderBook,
		TakenAt:    time.Now().UTC(),
		OrderCount: orderCount,
	}

	if aggregated.BestBid != nil {
		text := aggregated.BestBid.String()
		snapshot.BestBid = &text
	}
	if aggregated.BestAsk != nil {
		text := aggregated.BestAsk.String()
		snapshot.BestAsk = &text
	}
	if aggregated.Spread != nil {
		text := aggregated.Spread.String()
		snapshot.Spread = &text
		snapshot.SpreadPercent = aggregated.SpreadPercent
	}

	snapshot.Levels = append(
		snapshotLevels(aggregated.Bids, model.OrderSideBuy),
		snapshotLevels(aggregated.Asks, model.OrderSideSell)...,
	)

	return snapshot
}

func snapshotLevels(levels []book.PriceLevel, side uint8) []model.SnapshotLevel {
	out := make([]model.SnapshotLevel, 0, len(levels))
	for i, level := range levels {
		out = append(out, model.SnapshotLevel{
			Side:             side,
			Position:         i,
			Price:            level.Price.String(),
			Amount:           level.Amount.String(),
			CumulativeAmount: level.CumulativeAmount.String(),
			OrderCount:       level.OrderCount,
		})
	}
	return out
}

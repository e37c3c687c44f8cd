package scrape

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"dexlens/internal/chain"
	"dexlens/internal/dex"
	"dexlens/internal/model"
	"dexlens/internal/storage"
)

// RunConfig holds runtime settings for the order scraper.
type RunConfig struct {
	FromBlock         uint64
	ToBlock           uint64
	OrderBook         common.Address
	BatchSize         uint64
	CheckpointPath    string
	CheckpointEnabled bool
	MaxRetries        int
	RetryBackoff      time.Duration
}

// Runner streams OrderPlaced logs from the chain, resolves each order's
// current status, and writes the still-active orders to storage.
type Runner struct {
	cfg        RunConfig
	chain      *chain.Client
	storage    storage.Storage
	decoder    *dex.OrderDecoder
	logger     *zap.Logger
	seen       map[common.Hash]struct{}
	checkpoint *CheckpointStore
}

// NewRunner builds a Runner with its dependencies.
func NewRunner(cfg RunConfig, chainClient *chain.Client, storageSink storage.Storage, decoder *dex.OrderDecoder, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		cfg:        cfg,
		chain:      chainClient,
		storage:    storageSink,
		decoder:    decoder,
		logger:     logger,
		seen:       make(map[common.Hash]struct{}),
		checkpoint: NewCheckpointStore(cfg.CheckpointPath, cfg.CheckpointEnabled),
	}
}

// Run executes the scraping loop.
func (r *Runner) Run(ctx context.Context) error {
	if r.chain == nil {
		return fmt.Errorf("chain client is nil")
	}
	if r.storage == nil {
		return fmt.Errorf("storage is nil")
	}
	if r.decoder == nil {
		return fmt.Errorf("decoder is nil")
	}
	if r.cfg.BatchSize == 0 {
		return fmt.Errorf("batch size must be greater than zero")
	}
	if r.cfg.OrderBook == (common.Address{}) {
		return fmt.Errorf("order book address is required")
	}

	chainID, err := r.chain.GetChainID(ctx)
	if err != nil {
		return fmt.Errorf("get chain id: %w", err)
	}
	if !chainID.IsUint64() {
		return fmt.Errorf("chain id does not fit in uint64: %s", chainID)
	}
	chainIDValue := chainID.Uint64()

	r.logTokenPair(ctx)

	from := r.cfg.FromBlock
	to := r.cfg.ToBlock
	if to == 0 {
		latest, err := r.chain.LatestBlockNumber(ctx)
		if err != nil {
			return fmt.Errorf("get latest block: %w", err)
		}
		to = latest
	}

	if r.checkpoint != nil {
		cp, ok, err := r.checkpoint.Load()
		if err != nil {
			return err
		}
		switch {
		case !ok:
		case !cp.Matches(chainIDValue, r.cfg.OrderBook.Hex()):
			r.logger.Warn("checkpoint belongs to a different target, ignoring",
				zap.Uint64("checkpoint_chain_id", cp.ChainID),
				zap.String("checkpoint_order_book", cp.OrderBook),
			)
		case cp.LastProcessedBlock >= from:
			from = cp.LastProcessedBlock + 1
			r.logger.Info("resume from checkpoint", zap.Uint64("last_processed", cp.LastProcessedBlock), zap.Uint64("from", from))
		}
	}

	if from > to {
		r.logger.Info("nothing to scrape", zap.Uint64("from", from), zap.Uint64("to", to))
		return nil
	}

	ranges, err := SplitRange(from, to, r.cfg.BatchSize)
	if err != nil {
		return err
	}

	topic0 := []common.Hash{r.decoder.OrderPlacedTopic()}

	for _, blockRange := range ranges {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		r.logger.Info("fetch order logs", zap.Uint64("from", blockRange.From), zap.Uint64("to", blockRange.To))

		logs, err := r.filterLogsWithRetry(ctx, blockRange.From, blockRange.To, topic0)
		if err != nil {
			return fmt.Errorf("filter logs: %w", err)
		}

		scrapedAt := time.Now().UTC()
		records := make([]model.OrderRecord, 0, len(logs))
		var skipped int
		for _, log := range logs {
			placed, err := r.decoder.DecodeOrderPlaced(log)
			if err != nil {
				r.logger.Warn("decode order log", zap.Error(err), zap.Uint64("block", log.BlockNumber), zap.Uint64("log_index", uint64(log.Index)))
				continue
			}

			orderHash := common.HexToHash(placed.OrderHash)
			if r.isDuplicate(orderHash) {
				continue
			}

			record, active, err := r.resolveOrder(ctx, chainIDValue, orderHash, log, scrapedAt)
			if err != nil {
				return fmt.Errorf("resolve order %s: %w", placed.OrderHash, err)
			}
			if !active {
				skipped++
				continue
			}
			records = append(records, record)
		}

		if err := r.storage.PutOrderBatch(records); err != nil {
			return fmt.Errorf("store orders: %w", err)
		}

		if r.checkpoint != nil {
			if err := r.checkpoint.Save(chainIDValue, r.cfg.OrderBook.Hex(), blockRange.To); err != nil {
				return err
			}
		}

		r.logger.Info("batch complete",
			zap.Int("active", len(records)),
			zap.Int("inactive", skipped),
			zap.Uint64("from", blockRange.From),
			zap.Uint64("to", blockRange.To),
		)
	}

	return nil
}

// logTokenPair resolves the book's token pair metadata for the startup log.
// Metadata is informational only, so failures are warned about, not fatal.
func (r *Runner) logTokenPair(ctx context.Context) {
	token0, token1, err := dex.FetchBookTokens(ctx, r.chain, r.cfg.OrderBook)
	if err != nil {
		r.logger.Warn("fetch book tokens", zap.Error(err))
		return
	}

	meta0, err := dex.FetchTokenMeta(ctx, r.chain, token0, r.logger)
	if err != nil {
		r.logger.Warn("fetch token0 meta", zap.String("token", token0.Hex()), zap.Error(err))
		return
	}
	meta1, err := dex.FetchTokenMeta(ctx, r.chain, token1, r.logger)
	if err != nil {
		r.logger.Warn("fetch token1 meta", zap.String("token", token1.Hex()), zap.Error(err))
		return
	}

	r.logger.Info("order book pair",
		zap.String("token0", meta0.Symbol),
		zap.String("token1", meta1.Symbol),
		zap.Uint8("decimals0", meta0.Decimals),
		zap.Uint8("decimals1", meta1.Decimals),
	)
}

// resolveOrder fetches the current status of an order and converts it into a
// record when the order is still live: it exists, is not cancelled, and has
// unfilled amount remaining.
func (r *Runner) resolveOrder(ctx context.Context, chainID uint64, orderHash common.Hash, log types.Log, scrapedAt time.Time) (model.OrderRecord, bool, error) {
	status, err := r.orderStatusWithRetry(ctx, orderHash)
	if err != nil {
		return model.OrderRecord{}, false, err
	}
	if !status.Exists || status.Cancelled {
		return model.OrderRecord{}, false, nil
	}

	remaining, err := remainingAmount(status)
	if err != nil {
		return model.OrderRecord{}, false, err
	}
	if remaining.Sign() <= 0 {
		return model.OrderRecord{}, false, nil
	}

	ts, err := r.blockTimestampWithRetry(ctx, log.BlockNumber)
	if err != nil {
		return model.OrderRecord{}, false, fmt.Errorf("block timestamp %d: %w", log.BlockNumber, err)
	}

	return buildOrderRecord(chainID, r.cfg.OrderBook, orderHash, status, remaining, log.BlockNumber, ts, scrapedAt), true, nil
}

func remainingAmount(status model.OrderStatus) (*big.Int, error) {
	total, ok := new(big.Int).SetString(status.TotalAmount, 10)
	if !ok {
		return nil, fmt.Errorf("invalid total amount: %s", status.TotalAmount)
	}
	filled, ok := new(big.Int).SetString(status.FilledAmount, 10)
	if !ok {
		return nil, fmt.Errorf("invalid filled amount: %s", status.FilledAmount)
	}
	return total.Sub(total, filled), nil
}

func (r *Runner) filterLogsWithRetry(ctx context.Context, fromBlock, toBlock uint64, topic0 []common.Hash) ([]types.Log, error) {
	var logs []types.Log
	err := withRetry(ctx, r.cfg.MaxRetries, r.cfg.RetryBackoff, func(ctx context.Context) error {
		var err error
		logs, err = r.chain.FilterLogs(ctx, fromBlock, toBlock, []common.Address{r.cfg.OrderBook}, topic0)
		if err != nil {
			r.logger.Warn("filter logs failed", zap.Error(err), zap.Uint64("from", fromBlock), zap.Uint64("to", toBlock))
		}
		return err
	})
	return logs, err
}

func (r *Runner) orderStatusWithRetry(ctx context.Context, orderHash common.Hash) (model.OrderStatus, error) {
	var status model.OrderStatus
	err := withRetry(ctx, r.cfg.MaxRetries, r.cfg.RetryBackoff, func(ctx context.Context) error {
		var err error
		status, err = dex.FetchOrderStatus(ctx, r.chain, r.cfg.OrderBook, orderHash)
		if err != nil {
			r.logger.Warn("order status fetch failed", zap.Error(err), zap.String("order_hash", orderHash.Hex()))
		}
		return err
	})
	return status, err
}

func (r *Runner) blockTimestampWithRetry(ctx context.Context, blockNumber uint64) (uint64, error) {
	var ts uint64
	err := withRetry(ctx, r.cfg.MaxRetries, r.cfg.RetryBackoff, func(ctx context.Context) error {
		var err error
		ts, err = r.chain.BlockTimestamp(ctx, blockNumber)
		if err != nil {
			r.logger.Warn("block timestamp fetch failed", zap.Error(err), zap.Uint64("block_number", blockNumber))
		}
		return err
	})
	return ts, err
}

func (r *Runner) isDuplicate(orderHash common.Hash) bool {
	if _, ok := r.seen[orderHash]; ok {
		return true
	}
	r.seen[orderHash] = struct{}{}
	return false
}

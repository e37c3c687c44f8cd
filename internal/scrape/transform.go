package scrape

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"dexlens/internal/model"
)

func buildOrderRecord(chainID uint64, book common.Address, orderHash common.Hash, status model.OrderStatus, remaining *big.Int, blockNumber, timestamp uint64, scrapedAt time.Time) model.OrderRecord {
	return model.OrderRecord{
		ChainID:     chainID,
		OrderBook:   book.Hex(),
		OrderHash:   orderHash.Hex(),
		Maker:       status.Maker,
		Side:        status.Side,
		LimitPrice:  status.LimitPrice,
		Remaining:   remaining.String(),
		Expiry:      status.Expiry,
		BlockNumber: blockNumber,
		Timestamp:   timestamp,
		ScrapedAt:   scrapedAt.UTC().Format(time.RFC3339Nano),
	}
}

package book

import (
	"errors"
	"math/big"
	"sort"
)

// Side marks which half of the book an order belongs to.
type Side uint8

const (
	SideBuy  Side = 0
	SideSell Side = 1
)

// ErrInvalidOrder reports an order with a missing price or a negative amount.
var ErrInvalidOrder = errors.New("invalid order")

// Order is a single resting limit order: its exact limit price and the
// amount still unfilled.
type Order struct {
	Price  *big.Int
	Amount *big.Int
	Side   Side
}

// PriceLevel aggregates every order resting at one exact price.
// CumulativeAmount is the running depth from the top of that side of the
// book through this level.
type PriceLevel struct {
	Price            *big.Int
	Amount           *big.Int
	CumulativeAmount *big.Int
	OrderCount       int
}

// Book is the depth-aggregated view of an order set. Bids are sorted by
// price descending, asks ascending. BestBid, BestAsk, and Spread are nil
// when the respective side (or either side, for Spread) is empty.
//
// Spread is bestAsk - bestBid and is surfaced as-is: a crossed or stale
// book yields a negative spread, which callers treat as an anomaly signal
// rather than a value to clamp.
type Book struct {
	Bids          []PriceLevel
	Asks          []PriceLevel
	BestBid       *big.Int
	BestAsk       *big.Int
	Spread        *big.Int
	SpreadPercent *float64
}

// Aggregate groups orders into price levels, one level per exact price, and
// derives best bid/ask and spread. It is pure and idempotent: the same order
// set always produces the same book.
func Aggregate(orders []Order) (Book, error) {
	var bids, asks []Order
	for _, order := range orders {
		if order.Price == nil || order.Price.Sign() <= 0 {
			return Book{}, ErrInvalidOrder
		}
		if order.Amount == nil || order.Amount.Sign() < 0 {
			return Book{}, ErrInvalidOrder
		}
		switch order.Side {
		case SideBuy:
			bids = append(bids, order)
		case SideSell:
			asks = append(asks, order)
		default:
			return Book{}, ErrInvalidOrder
		}
	}

	result := Book{
		Bids: buildLevels(bids, true),
		Asks: buildLevels(asks, false),
	}

	if len(result.Bids) > 0 {
		result.BestBid = result.Bids[0].Price
	}
	if len(result.Asks) > 0 {
		result.BestAsk = result.Asks[0].Price
	}

	if result.BestBid != nil && result.BestAsk != nil {
		result.Spread = new(big.Int).Sub(result.BestAsk, result.BestBid)

		// Percent in steps of 0.01, truncated: (spread * 10000 / bestBid) / 100.
		bps := new(big.Int).Mul(result.Spread, big.NewInt(10000))
		bps.Quo(bps, result.BestBid)
		percent := float64(bps.Int64()) / 100
		result.SpreadPercent = &percent
	}

	return result, nil
}

// buildLevels groups one side of the book by exact price and walks the
// sorted levels accumulating depth.
func buildLevels(orders []Order, descending bool) []PriceLevel {
	grouped := make(map[string]*PriceLevel, len(orders))
	for _, order := range orders {
		key := order.Price.String()
		level := grouped[key]
		if level == nil {
			level = &PriceLevel{
				Price:  new(big.Int).Set(order.Price),
				Amount: big.NewInt(0),
			}
			grouped[key] = level
		}
		level.Amount.Add(level.Amount, order.Amount)
		level.OrderCount++
	}

	levels := make([]PriceLevel, 0, len(grouped))
	for _, level := range grouped {
		levels = append(levels, *level)
	}

	sort.Slice(levels, func(i, j int) bool {
		cmp := levels[i].Price.Cmp(levels[j].Price)
		if descending {
			return cmp > 0
		}
		return cmp < 0
	})

	cumulative := big.NewInt(0)
	for i := range levels {
		cumulative = new(big.Int).Add(cumulative, levels[i].Amount)
		levels[i].CumulativeAmount = cumulative
	}

	return levels
}

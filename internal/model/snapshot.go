package model

import "time"

// SnapshotLevel is one aggregated price level of a stored book snapshot.
type SnapshotLevel struct {
	Side             uint8  `json:"side"`
	Position         int    `json:"position"`
	Price            string `json:"price"`
	Amount           string `json:"amount"`
	CumulativeAmount string `json:"cumulative_amount"`
	OrderCount       int    `json:"order_count"`
}

// BookSnapshot stores one aggregated order-book view for persistence.
type BookSnapshot struct {
	ChainID       uint64          `json:"chain_id"`
	OrderBook     string          `json:"order_book"`
	TakenAt       time.Time       `json:"taken_at"`
	OrderCount    int             `json:"order_count"`
	BestBid       *string         `json:"best_bid,omitempty"`
	BestAsk       *string         `json:"best_ask,omitempty"`
	Spread        *string         `json:"spread,omitempty"`
	SpreadPercent *float64        `json:"spread_percent,omitempty"`
	Levels        []SnapshotLevel `json:"levels"`
}

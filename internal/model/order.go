package model

const (
	OrderSideBuy  uint8 = 0
	OrderSideSell uint8 = 1
)

// OrderPlacedEvent is the decoded OrderPlaced event payload.
type OrderPlacedEvent struct {
	OrderHash  string `json:"order_hash"`
	Trader     string `json:"trader"`
	Side       uint8  `json:"side"`
	Amount     string `json:"amount"`
	LimitPrice string `json:"limit_price"`
	Expiry     uint64 `json:"expiry"`
}

// OrderStatus is the current on-chain state of a limit order.
type OrderStatus struct {
	Exists           bool   `json:"exists"`
	Cancelled        bool   `json:"cancelled"`
	FilledAmount     string `json:"filled_amount"`
	TotalAmount      string `json:"total_amount"`
	Maker            string `json:"maker"`
	LimitPrice       string `json:"limit_price"`
	Expiry           uint64 `json:"expiry"`
	Side             uint8  `json:"side"`
	AllowPartialFill bool   `json:"allow_partial_fill"`
}

// OrderRecord is the normalized representation of an active order for
// storage. Remaining is the unfilled amount at scrape time; amounts and
// prices are decimal strings in each token's smallest unit.
type OrderRecord struct {
	ChainID     uint64 `json:"chain_id"`
	OrderBook   string `json:"order_book"`
	OrderHash   string `json:"order_hash"`
	Maker       string `json:"maker"`
	Side        uint8  `json:"side"`
	LimitPrice  string `json:"limit_price"`
	Remaining   string `json:"remaining"`
	Expiry      uint64 `json:"expiry"`
	BlockNumber uint64 `json:"block_number"`
	Timestamp   uint64 `json:"timestamp"`
	ScrapedAt   string `json:"scraped_at"`
}

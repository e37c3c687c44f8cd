package book

import (
	"errors"
	"math/big"
	"reflect"
	"testing"
)

func order(price, amount int64, side Side) Order {
	return Order{Price: big.NewInt(price), Amount: big.NewInt(amount), Side: side}
}

func TestAggregateGroupsSamePrice(t *testing.T) {
	orders := []Order{
		order(100, 5, SideBuy),
		order(100, 3, SideBuy),
		order(100, 2, SideBuy),
	}

	got, err := Aggregate(orders)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got.Bids) != 1 {
		t.Fatalf("expected a single bid level, got %d", len(got.Bids))
	}
	level := got.Bids[0]
	if level.Price.Cmp(big.NewInt(100)) != 0 {
		t.Fatalf("level price mismatch: %s", level.Price)
	}
	if level.Amount.Cmp(big.NewInt(10)) != 0 {
		t.Fatalf("level amount mismatch: %s", level.Amount)
	}
	if level.CumulativeAmount.Cmp(big.NewInt(10)) != 0 {
		t.Fatalf("cumulative amount mismatch: %s", level.CumulativeAmount)
	}
	if level.OrderCount != 3 {
		t.Fatalf("order count mismatch: %d", level.OrderCount)
	}
	if len(got.Asks) != 0 {
		t.Fatalf("expected no ask levels, got %d", len(got.Asks))
	}
	if got.BestAsk != nil || got.Spread != nil || got.SpreadPercent != nil {
		t.Fatalf("one-sided book must not have ask-side stats")
	}
}

func TestAggregateSortsAndDerivesSpread(t *testing.T) {
	orders := []Order{
		order(100, 1, SideBuy),
		order(90, 1, SideBuy),
		order(95, 1, SideBuy),
		order(105, 1, SideSell),
		order(101, 1, SideSell),
		order(110, 1, SideSell),
	}

	got, err := Aggregate(orders)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantBids := []int64{100, 95, 90}
	for i, price := range wantBids {
		if got.Bids[i].Price.Cmp(big.NewInt(price)) != 0 {
			t.Fatalf("bid %d: %s != %d", i, got.Bids[i].Price, price)
		}
	}
	wantAsks := []int64{101, 105, 110}
	for i, price := range wantAsks {
		if got.Asks[i].Price.Cmp(big.NewInt(price)) != 0 {
			t.Fatalf("ask %d: %s != %d", i, got.Asks[i].Price, price)
		}
	}

	if got.BestBid.Cmp(big.NewInt(100)) != 0 {
		t.Fatalf("best bid mismatch: %s", got.BestBid)
	}
	if got.BestAsk.Cmp(big.NewInt(101)) != 0 {
		t.Fatalf("best ask mismatch: %s", got.BestAsk)
	}
	if got.Spread.Cmp(big.NewInt(1)) != 0 {
		t.Fatalf("spread mismatch: %s", got.Spread)
	}
	if got.SpreadPercent == nil || *got.SpreadPercent != 1.0 {
		t.Fatalf("spread percent mismatch: %v", got.SpreadPercent)
	}
}

func TestAggregateIdempotent(t *testing.T) {
	orders := []Order{
		order(100, 5, SideBuy),
		order(95, 7, SideBuy),
		order(101, 2, SideSell),
		order(101, 4, SideSell),
		order(110, 1, SideSell),
	}

	first, err := Aggregate(orders)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Aggregate(orders)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("aggregation is not idempotent: %+v != %+v", first, second)
	}
}

func TestAggregateCumulativeMonotonic(t *testing.T) {
	orders := []Order{
		order(100, 5, SideBuy),
		order(99, 0, SideBuy),
		order(98, 3, SideBuy),
		order(101, 2, SideSell),
		order(102, 6, SideSell),
		order(103, 1, SideSell),
	}

	got, err := Aggregate(orders)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, side := range [][]PriceLevel{got.Bids, got.Asks} {
		for i := 1; i < len(side); i++ {
			prev, cur := side[i-1], side[i]
			if cur.CumulativeAmount.Cmp(prev.CumulativeAmount) < 0 {
				t.Fatalf("cumulative decreased at level %d: %s < %s", i, cur.CumulativeAmount, prev.CumulativeAmount)
			}
			if cur.Amount.Sign() > 0 && cur.CumulativeAmount.Cmp(prev.CumulativeAmount) <= 0 {
				t.Fatalf("cumulative not strictly increasing at level %d", i)
			}
		}
	}
}

func TestAggregateCrossedBookNegativeSpread(t *testing.T) {
	orders := []Order{
		order(105, 1, SideBuy),
		order(100, 1, SideSell),
	}

	got, err := Aggregate(orders)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Spread.Cmp(big.NewInt(-5)) != 0 {
		t.Fatalf("crossed book spread mismatch: %s", got.Spread)
	}
	if got.SpreadPercent == nil || *got.SpreadPercent >= 0 {
		t.Fatalf("crossed book spread percent should be negative: %v", got.SpreadPercent)
	}
}

func TestAggregateSpreadPercentTruncates(t *testing.T) {
	orders := []Order{
		order(300, 1, SideBuy),
		order(301, 1, SideSell),
	}

	got, err := Aggregate(orders)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 1/300 is 0.333..%, truncated to hundredths.
	if got.SpreadPercent == nil || *got.SpreadPercent != 0.33 {
		t.Fatalf("spread percent mismatch: %v", got.SpreadPercent)
	}
}

func TestAggregateRejectsInvalidOrders(t *testing.T) {
	cases := []Order{
		{Price: nil, Amount: big.NewInt(1), Side: SideBuy},
		{Price: big.NewInt(0), Amount: big.NewInt(1), Side: SideBuy},
		{Price: big.NewInt(-5), Amount: big.NewInt(1), Side: SideSell},
		{Price: big.NewInt(100), Amount: nil, Side: SideBuy},
		{Price: big.NewInt(100), Amount: big.NewInt(-1), Side: SideSell},
		{Price: big.NewInt(100), Amount: big.NewInt(1), Side: Side(7)},
	}

	for i, bad := range cases {
		if _, err := Aggregate([]Order{bad}); !errors.Is(err, ErrInvalidOrder) {
			t.Fatalf("case %d: expected ErrInvalidOrder, got %v", i, err)
		}
	}
}

func TestAggregateEmpty(t *testing.T) {
	got, err := Aggregate(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Bids) != 0 || len(got.Asks) != 0 {
		t.Fatalf("empty input must produce an empty book: %+v", got)
	}
	if got.BestBid != nil || got.BestAsk != nil || got.Spread != nil {
		t.Fatalf("empty book must not have stats")
	}
}

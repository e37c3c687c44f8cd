package dex

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

func TestOrderDecoderOrderPlaced(t *testing.T) {
	bookABI, err := OrderBookABI()
	if err != nil {
		t.Fatalf("abi parse: %v", err)
	}

	decoder, err := NewOrderDecoder()
	if err != nil {
		t.Fatalf("decoder: %v", err)
	}

	orderHash := common.HexToHash("0xdeadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeef")
	trader := common.HexToAddress("0x2222222222222222222222222222222222222222")

	data, err := bookABI.Events["OrderPlaced"].Inputs.NonIndexed().Pack(
		uint8(1),
		big.NewInt(5_000_000),
		big.NewInt(123_456),
		uint64(1_900_000_000),
	)
	if err != nil {
		t.Fatalf("pack OrderPlaced: %v", err)
	}

	log := types.Log{
		Address: common.HexToAddress("0x1111111111111111111111111111111111111111"),
		Topics: []common.Hash{
			decoder.OrderPlacedTopic(),
			orderHash,
			common.BytesToHash(trader.Bytes()),
		},
		Data:        data,
		BlockNumber: 42,
	}

	event, err := decoder.DecodeOrderPlaced(log)
	if err != nil {
		t.Fatalf("decode OrderPlaced: %v", err)
	}

	if event.OrderHash != orderHash.Hex() {
		t.Fatalf("order hash mismatch: %s", event.OrderHash)
	}
	if event.Trader != trader.Hex() {
		t.Fatalf("trader mismatch: %s", event.Trader)
	}
	if event.Side != 1 {
		t.Fatalf("side mismatch: %d", event.Side)
	}
	if event.Amount != "5000000" || event.LimitPrice != "123456" {
		t.Fatalf("amounts mismatch: %+v", event)
	}
	if event.Expiry != 1_900_000_000 {
		t.Fatalf("expiry mismatch: %d", event.Expiry)
	}
}

func TestOrderDecoderRejectsForeignLog(t *testing.T) {
	decoder, err := NewOrderDecoder()
	if err != nil {
		t.Fatalf("decoder: %v", err)
	}

	log := types.Log{
		Topics: []common.Hash{common.HexToHash("0x01")},
	}
	if _, err := decoder.DecodeOrderPlaced(log); err == nil {
		t.Fatalf("expected error for foreign log")
	}

	if decoder.CanDecode(common.HexToHash("0x01")) {
		t.Fatalf("foreign topic must not be decodable")
	}
}

func TestOrderDecoderEventNames(t *testing.T) {
	bookABI, err := OrderBookABI()
	if err != nil {
		t.Fatalf("abi parse: %v", err)
	}
	decoder, err := NewOrderDecoder()
	if err != nil {
		t.Fatalf("decoder: %v", err)
	}

	name, ok := decoder.EventName(bookABI.Events["OrderCancelled"].ID)
	if !ok || name != "OrderCancelled" {
		t.Fatalf("event name mismatch: %s %v", name, ok)
	}
	if !decoder.CanDecode(bookABI.Events["OrderPlaced"].ID) {
		t.Fatalf("OrderPlaced must be decodable")
	}
}

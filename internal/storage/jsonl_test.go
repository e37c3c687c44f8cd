package storage

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"dexlens/internal/model"
)

func TestJsonlStorageAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.jsonl")
	sink := NewJsonlStorage(path)

	first := model.OrderRecord{
		ChainID:    56,
		OrderBook:  "0x1111111111111111111111111111111111111111",
		OrderHash:  "0xaaaa",
		Side:       model.OrderSideBuy,
		LimitPrice: "100",
		Remaining:  "5",
	}
	second := model.OrderRecord{
		ChainID:    56,
		OrderBook:  "0x1111111111111111111111111111111111111111",
		OrderHash:  "0xbbbb",
		Side:       model.OrderSideSell,
		LimitPrice: "101",
		Remaining:  "3",
	}

	if err := sink.PutOrderBatch([]model.OrderRecord{first}); err != nil {
		t.Fatalf("first batch: %v", err)
	}
	if err := sink.PutOrderBatch(nil); err != nil {
		t.Fatalf("empty batch: %v", err)
	}
	if err := sink.PutOrderBatch([]model.OrderRecord{second}); err != nil {
		t.Fatalf("second batch: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer file.Close()

	var records []model.OrderRecord
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var record model.OrderRecord
		if err := json.Unmarshal(scanner.Bytes(), &record); err != nil {
			t.Fatalf("parse line: %v", err)
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("scan output: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].OrderHash != "0xaaaa" || records[1].OrderHash != "0xbbbb" {
		t.Fatalf("records out of order: %+v", records)
	}
}

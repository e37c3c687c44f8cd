package dex

import (
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"dexlens/internal/model"
)

// OrderDecoder decodes limit order book events.
type OrderDecoder struct {
	bookABI     abi.ABI
	topicToName map[common.Hash]string
}

// NewOrderDecoder builds an order book event decoder.
func NewOrderDecoder() (*OrderDecoder, error) {
	bookABI, err := OrderBookABI()
	if err != nil {
		return nil, err
	}

	return &OrderDecoder{
		bookABI: bookABI,
		topicToName: map[common.Hash]string{
			bookABI.Events["OrderPlaced"].ID:    "OrderPlaced",
			bookABI.Events["OrderCancelled"].ID: "OrderCancelled",
		},
	}, nil
}

// OrderPlacedTopic returns the topic0 hash of the OrderPlaced event.
func (d *OrderDecoder) OrderPlacedTopic() common.Hash {
	return d.bookABI.Events["OrderPlaced"].ID
}

// CanDecode checks if the topic0 is a supported order book event.
func (d *OrderDecoder) CanDecode(topic0 common.Hash) bool {
	_, ok := d.topicToName[topic0]
	return ok
}

// EventName resolves a topic0 hash to its event name.
func (d *OrderDecoder) EventName(topic0 common.Hash) (string, bool) {
	name, ok := d.topicToName[topic0]
	return name, ok
}

// DecodeOrderPlaced converts an OrderPlaced log into its typed payload.
func (d *OrderDecoder) DecodeOrderPlaced(log types.Log) (model.OrderPlacedEvent, error) {
	event := d.bookABI.Events["OrderPlaced"]
	if len(log.Topics) == 0 || log.Topics[0] != event.ID {
		return model.OrderPlacedEvent{}, fmt.Errorf("not an OrderPlaced log")
	}
	if len(log.Topics) != 3 {
		return model.OrderPlacedEvent{}, fmt.Errorf("expected 3 topics, got %d", len(log.Topics))
	}

	var indexed struct {
		OrderHash [32]byte
		Trader    common.Address
	}
	if err := abi.ParseTopics(&indexed, indexedArguments(event.Inputs), log.Topics[1:]); err != nil {
		return model.OrderPlacedEvent{}, fmt.Errorf("parse topics: %w", err)
	}

	values, err := event.Inputs.NonIndexed().Unpack(log.Data)
	if err != nil {
		return model.OrderPlacedEvent{}, fmt.Errorf("unpack OrderPlaced: %w", err)
	}
	if len(values) != 4 {
		return model.OrderPlacedEvent{}, fmt.Errorf("unexpected OrderPlaced values: %d", len(values))
	}

	side, err := asUint8(values[0])
	if err != nil {
		return model.OrderPlacedEvent{}, fmt.Errorf("side: %w", err)
	}
	amount, err := asBigInt(values[1])
	if err != nil {
		return model.OrderPlacedEvent{}, fmt.Errorf("amount: %w", err)
	}
	limitPrice, err := asBigInt(values[2])
	if err != nil {
		return model.OrderPlacedEvent{}, fmt.Errorf("limit price: %w", err)
	}
	expiry, err := asUint64(values[3])
	if err != nil {
		return model.OrderPlacedEvent{}, fmt.Errorf("expiry: %w", err)
	}

	return model.OrderPlacedEvent{
		OrderHash:  common.Hash(indexed.OrderHash).Hex(),
		Trader:     indexed.Trader.Hex(),
		Side:       side,
		Amount:     amount.String(),
		LimitPrice: limitPrice.String(),
		Expiry:     expiry,
	}, nil
}

func indexedArguments(args abi.Arguments) abi.Arguments {
	indexed := make(abi.Arguments, 0, len(args))
	for _, arg := range args {
		if arg.Indexed {
			indexed = append(indexed, arg)
		}
	}
	return indexed
}

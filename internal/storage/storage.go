package storage

import "dexlens/internal/model"

// Storage defines a sink for scraped order records.
type Storage interface {
	PutOrderBatch(orders []model.OrderRecord) error
}

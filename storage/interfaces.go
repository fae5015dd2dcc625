package storage

import "estate-explorer/models"

// PageWriter is the interface any export backend must satisfy.
type PageWriter interface {
	WritePage(page []models.TransactionRecord, info models.PageInfo) error
	Close() error
}

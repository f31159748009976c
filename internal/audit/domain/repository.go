package domain

import (
	"context"

	"github.com/roomledger/roomledger/pkg/db/pagination"
	"gorm.io/gorm"
)

// ListFilter narrows the audit listing. Zero values mean no constraint.
type ListFilter struct {
	RecordID  string
	Operation string
	StartAt   string
	EndAt     string
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, entry *Entry) error
	List(ctx context.Context, db *gorm.DB, filter ListFilter, p pagination.Pagination) ([]Entry, error)
	Count(ctx context.Context, db *gorm.DB, filter ListFilter) (int64, error)
}

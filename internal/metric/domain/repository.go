package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/roomledger/roomledger/pkg/db/pagination"
	"gorm.io/gorm"
)

// ListFilter narrows a listing by arrival-date window and kind. Zero values
// mean no constraint.
type ListFilter struct {
	StartDate string
	EndDate   string
	Kind      string
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, record *Record) error
	Update(ctx context.Context, db *gorm.DB, record *Record) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Record, error)
	List(ctx context.Context, db *gorm.DB, filter ListFilter, p pagination.Pagination, orderBy string) ([]Record, error)
	Count(ctx context.Context, db *gorm.DB, filter ListFilter) (int64, error)
}

package repository

import (
	"context"

	"github.com/roomledger/roomledger/internal/audit/domain"
	"github.com/roomledger/roomledger/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, entry *domain.Entry) error {
	return db.WithContext(ctx).Create(entry).Error
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListFilter, p pagination.Pagination) ([]domain.Entry, error) {
	var entries []domain.Entry
	err := applyFilter(db.WithContext(ctx).Model(&domain.Entry{}), filter).
		Order("created_at DESC, id DESC").
		Limit(p.PageSize).
		Offset(p.Offset()).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *repo) Count(ctx context.Context, db *gorm.DB, filter domain.ListFilter) (int64, error) {
	var total int64
	err := applyFilter(db.WithContext(ctx).Model(&domain.Entry{}), filter).
		Count(&total).Error
	return total, err
}

func applyFilter(tx *gorm.DB, filter domain.ListFilter) *gorm.DB {
	if filter.RecordID != "" {
		tx = tx.Where("record_id = ?", filter.RecordID)
	}
	if filter.Operation != "" {
		tx = tx.Where("operation = ?", filter.Operation)
	}
	if filter.StartAt != "" {
		tx = tx.Where("created_at >= ?", filter.StartAt)
	}
	if filter.EndAt != "" {
		tx = tx.Where("created_at <= ?", filter.EndAt)
	}
	return tx
}

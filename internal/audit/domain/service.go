package domain

import (
	"context"

	"github.com/roomledger/roomledger/pkg/db/pagination"
	"gorm.io/gorm"
)

// ListRequest pages the audit listing.
type ListRequest struct {
	Filter     ListFilter
	Pagination pagination.Pagination
}

// ListResponse is a single page of audit entries plus paging metadata.
type ListResponse struct {
	Data     []Entry             `json:"data"`
	PageInfo pagination.PageInfo `json:"page_info"`
}

// Service records and reads the change history. Record takes the caller's
// transaction handle so the history row commits or rolls back with the edit
// it describes.
type Service interface {
	Record(ctx context.Context, tx *gorm.DB, entry *Entry) error
	List(ctx context.Context, req ListRequest) (*ListResponse, error)
}

package service

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/roomledger/roomledger/internal/audit/domain"
	"github.com/roomledger/roomledger/internal/observability/logger"
	"github.com/roomledger/roomledger/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	defaultPageSize = 50
	maxPageSize     = 500
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type auditService struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &auditService{
		db:    p.DB,
		log:   p.Log,
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *auditService) Record(ctx context.Context, tx *gorm.DB, entry *domain.Entry) error {
	if entry.ID == 0 {
		entry.ID = s.genID.Generate()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	if err := s.repo.Insert(ctx, tx, entry); err != nil {
		logger.FromContext(ctx).Error("failed to record audit entry",
			zap.String("record_id", entry.RecordID.String()),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (s *auditService) List(ctx context.Context, req domain.ListRequest) (*domain.ListResponse, error) {
	p := req.Pagination.Normalize(defaultPageSize, maxPageSize)

	total, err := s.repo.Count(ctx, s.db, req.Filter)
	if err != nil {
		return nil, err
	}

	entries, err := s.repo.List(ctx, s.db, req.Filter, p)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []domain.Entry{}
	}

	return &domain.ListResponse{
		Data:     entries,
		PageInfo: pagination.BuildPageInfo(p, total),
	}, nil
}

package service

import (
	"context"

	"github.com/roomledger/roomledger/internal/summary/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB  *gorm.DB
	Log *zap.Logger
}

type summaryService struct {
	db  *gorm.DB
	log *zap.Logger
}

func New(p Params) domain.Service {
	return &summaryService{
		db:  p.DB,
		log: p.Log,
	}
}

// Monthly rolls metric rows up by calendar month of arrival, split by kind so
// realized and forecast numbers never mix in one aggregate.
func (s *summaryService) Monthly(ctx context.Context, req domain.Request) (*domain.Response, error) {
	query := s.db.WithContext(ctx).
		Table("hotel_metrics").
		Select(`month_key,
			kind,
			AVG(occupancy_percentage) AS avg_occupancy,
			AVG(arr) AS avg_room_rate,
			SUM(room_revenue) AS total_revenue,
			SUM(rooms_sold) AS total_rooms_sold,
			AVG(total_room_inventory) AS avg_inventory,
			COUNT(*) AS total_entries`)

	if req.StartMonth != "" {
		query = query.Where("month_key >= ?", req.StartMonth)
	}
	if req.EndMonth != "" {
		query = query.Where("month_key <= ?", req.EndMonth)
	}
	if req.Kind != "" {
		query = query.Where("kind = ?", req.Kind)
	}

	var rows []domain.MonthlySummary
	err := query.
		Group("month_key, kind").
		Order("month_key DESC, kind ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []domain.MonthlySummary{}
	}

	return &domain.Response{Data: rows}, nil
}

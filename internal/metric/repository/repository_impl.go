package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/roomledger/roomledger/internal/metric/domain"
	"github.com/roomledger/roomledger/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, record *domain.Record) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO hotel_metrics (
			id, total_room_inventory, rooms_sold, arrival_rooms, compliment_rooms,
			house_use, individual_confirm, departure_rooms, ooo_rooms, pax,
			occupancy_percentage, room_revenue, arr, revenue_diff,
			snapshot_date, arrival_date, kind, day_of_week,
			arrival_year, arrival_month, arrival_quarter, month_key,
			created_by, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.TotalRoomInventory,
		record.RoomsSold,
		record.ArrivalRooms,
		record.ComplimentRooms,
		record.HouseUse,
		record.IndividualConfirm,
		record.DepartureRooms,
		record.OOORooms,
		record.Pax,
		record.OccupancyPercentage,
		record.RoomRevenue,
		record.ARR,
		record.RevenueDiff,
		record.SnapshotDate,
		record.ArrivalDate,
		record.Kind,
		record.DayOfWeek,
		record.ArrivalYear,
		record.ArrivalMonth,
		record.ArrivalQuarter,
		record.MonthKey,
		record.CreatedBy,
		record.CreatedAt,
		record.UpdatedAt,
	).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, record *domain.Record) error {
	return db.WithContext(ctx).Exec(
		`UPDATE hotel_metrics SET
			total_room_inventory = ?, rooms_sold = ?, arrival_rooms = ?,
			compliment_rooms = ?, house_use = ?, individual_confirm = ?,
			departure_rooms = ?, ooo_rooms = ?, pax = ?,
			occupancy_percentage = ?, room_revenue = ?, arr = ?, revenue_diff = ?,
			snapshot_date = ?, arrival_date = ?, kind = ?, day_of_week = ?,
			arrival_year = ?, arrival_month = ?, arrival_quarter = ?, month_key = ?,
			updated_at = ?
		WHERE id = ?`,
		record.TotalRoomInventory,
		record.RoomsSold,
		record.ArrivalRooms,
		record.ComplimentRooms,
		record.HouseUse,
		record.IndividualConfirm,
		record.DepartureRooms,
		record.OOORooms,
		record.Pax,
		record.OccupancyPercentage,
		record.RoomRevenue,
		record.ARR,
		record.RevenueDiff,
		record.SnapshotDate,
		record.ArrivalDate,
		record.Kind,
		record.DayOfWeek,
		record.ArrivalYear,
		record.ArrivalMonth,
		record.ArrivalQuarter,
		record.MonthKey,
		record.UpdatedAt,
		record.ID,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Record, error) {
	var record domain.Record
	err := db.WithContext(ctx).
		Model(&domain.Record{}).
		Where("id = ?", id).
		Take(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListFilter, p pagination.Pagination, orderBy string) ([]domain.Record, error) {
	var records []domain.Record
	err := applyFilter(db.WithContext(ctx).Model(&domain.Record{}), filter).
		Order(orderBy).
		Limit(p.PageSize).
		Offset(p.Offset()).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *repo) Count(ctx context.Context, db *gorm.DB, filter domain.ListFilter) (int64, error) {
	var total int64
	err := applyFilter(db.WithContext(ctx).Model(&domain.Record{}), filter).
		Count(&total).Error
	return total, err
}

func applyFilter(tx *gorm.DB, filter domain.ListFilter) *gorm.DB {
	if filter.StartDate != "" {
		tx = tx.Where("arrival_date >= ?", filter.StartDate)
	}
	if filter.EndDate != "" {
		tx = tx.Where("arrival_date <= ?", filter.EndDate)
	}
	if filter.Kind != "" {
		tx = tx.Where("kind = ?", filter.Kind)
	}
	return tx
}

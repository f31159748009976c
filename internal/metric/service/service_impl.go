package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	auditdomain "github.com/roomledger/roomledger/internal/audit/domain"
	"github.com/roomledger/roomledger/internal/metric/domain"
	"github.com/roomledger/roomledger/internal/observability/logger"
	userdomain "github.com/roomledger/roomledger/internal/user/domain"
	"github.com/roomledger/roomledger/pkg/db"
	"github.com/roomledger/roomledger/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	defaultPageSize = 50
	maxPageSize     = 500

	defaultSortBy  = "arrival_date"
	defaultSortDir = "desc"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
	Users userdomain.Repository
	Audit auditdomain.Service
}

type metricService struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
	users userdomain.Repository
	audit auditdomain.Service
}

func New(p Params) domain.Service {
	return &metricService{
		db:    p.DB,
		log:   p.Log,
		genID: p.GenID,
		repo:  p.Repo,
		users: p.Users,
		audit: p.Audit,
	}
}

func (s *metricService) Submit(ctx context.Context, actorID snowflake.ID, req domain.CreateRequest) (*domain.Record, error) {
	result := domain.Validate(candidateFromCreate(req))
	if !result.Valid {
		return nil, &domain.ValidationFailedError{Errors: result.Errors}
	}

	creator, err := s.users.FindByID(ctx, s.db, actorID)
	if err != nil {
		return nil, err
	}
	if creator == nil || !creator.IsActive {
		return nil, domain.ErrUnknownCreator
	}

	now := time.Now().UTC()
	record := domain.Record{
		ID:                  s.genID.Generate(),
		TotalRoomInventory:  *req.TotalRoomInventory,
		RoomsSold:           *req.RoomsSold,
		ArrivalRooms:        intOrZero(req.ArrivalRooms),
		ComplimentRooms:     intOrZero(req.ComplimentRooms),
		HouseUse:            intOrZero(req.HouseUse),
		IndividualConfirm:   intOrZero(req.IndividualConfirm),
		DepartureRooms:      intOrZero(req.DepartureRooms),
		OOORooms:            intOrZero(req.OOORooms),
		Pax:                 intOrZero(req.Pax),
		OccupancyPercentage: floatOrZero(req.OccupancyPercentage),
		RoomRevenue:         floatOrZero(req.RoomRevenue),
		ARR:                 floatOrZero(req.ARR),
		RevenueDiff:         floatOrZero(req.RevenueDiff),
		SnapshotDate:        domain.DateOnly(*req.SnapshotDate),
		ArrivalDate:         domain.DateOnly(*req.ArrivalDate),
		Kind:                domain.KindActual,
		CreatedBy:           actorID,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if req.Kind != nil {
		record.Kind = *req.Kind
	}
	if req.DayOfWeek != nil {
		record.DayOfWeek = *req.DayOfWeek
	} else {
		record.DayOfWeek = record.ArrivalDate.Weekday().String()
	}
	record.RefreshDerived()

	if err := s.repo.Insert(ctx, s.db, &record); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrDuplicateRecord
		}
		logger.FromContext(ctx).Error("failed to insert metric record",
			zap.String("record_id", record.ID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	return &record, nil
}

func (s *metricService) Update(ctx context.Context, id snowflake.ID, req domain.UpdateRequest) (*domain.Record, error) {
	record, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.ErrRecordNotFound
	}

	oldValues := trackedValues(record)

	applyUpdate(record, req)
	record.SnapshotDate = domain.DateOnly(record.SnapshotDate)
	record.ArrivalDate = domain.DateOnly(record.ArrivalDate)
	record.RefreshDerived()
	if req.ArrivalDate != nil && req.DayOfWeek == nil {
		record.DayOfWeek = record.ArrivalDate.Weekday().String()
	}
	record.UpdatedAt = time.Now().UTC()

	result := domain.Validate(candidateFromRecord(record))
	if !result.Valid {
		return nil, &domain.ValidationFailedError{Errors: result.Errors}
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Update(ctx, tx, record); err != nil {
			return err
		}
		return s.audit.Record(ctx, tx, &auditdomain.Entry{
			SourceTable: record.TableName(),
			Operation:   auditdomain.OperationUpdate,
			RecordID:    record.ID,
			OldValues:   oldValues,
			NewValues:   trackedValues(record),
			ChangedBy:   record.CreatedBy,
		})
	})
	if err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrDuplicateRecord
		}
		logger.FromContext(ctx).Error("failed to update metric record",
			zap.String("record_id", record.ID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	return record, nil
}

func (s *metricService) Get(ctx context.Context, id snowflake.ID) (*domain.Record, error) {
	record, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.ErrRecordNotFound
	}
	return record, nil
}

func (s *metricService) List(ctx context.Context, req domain.ListRequest) (*domain.ListResponse, error) {
	p := req.Pagination.Normalize(defaultPageSize, maxPageSize)

	filter := domain.ListFilter{Kind: req.Kind}
	if req.StartDate != nil {
		filter.StartDate = req.StartDate.Format(time.DateOnly)
	}
	if req.EndDate != nil {
		filter.EndDate = req.EndDate.Format(time.DateOnly)
	}

	total, err := s.repo.Count(ctx, s.db, filter)
	if err != nil {
		return nil, err
	}

	records, err := s.repo.List(ctx, s.db, filter, p, orderClause(req.SortBy, req.SortDir))
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []domain.Record{}
	}

	return &domain.ListResponse{
		Data:     records,
		PageInfo: pagination.BuildPageInfo(p, total),
	}, nil
}

// orderClause falls back to the default ordering when the requested column is
// not whitelisted.
func orderClause(sortBy, sortDir string) string {
	if _, ok := domain.SortableFields[sortBy]; !ok {
		sortBy = defaultSortBy
	}
	dir := strings.ToLower(sortDir)
	if dir != "asc" && dir != "desc" {
		dir = defaultSortDir
	}
	return fmt.Sprintf("%s %s", sortBy, strings.ToUpper(dir))
}

// trackedValues snapshots the audited fields of a record.
func trackedValues(r *domain.Record) datatypes.JSONMap {
	return datatypes.JSONMap{
		"total_room_inventory": r.TotalRoomInventory,
		"rooms_sold":           r.RoomsSold,
		"occupancy_percentage": r.OccupancyPercentage,
		"room_revenue":         r.RoomRevenue,
		"arr":                  r.ARR,
	}
}

func applyUpdate(r *domain.Record, req domain.UpdateRequest) {
	if req.TotalRoomInventory != nil {
		r.TotalRoomInventory = *req.TotalRoomInventory
	}
	if req.RoomsSold != nil {
		r.RoomsSold = *req.RoomsSold
	}
	if req.ArrivalRooms != nil {
		r.ArrivalRooms = *req.ArrivalRooms
	}
	if req.ComplimentRooms != nil {
		r.ComplimentRooms = *req.ComplimentRooms
	}
	if req.HouseUse != nil {
		r.HouseUse = *req.HouseUse
	}
	if req.IndividualConfirm != nil {
		r.IndividualConfirm = *req.IndividualConfirm
	}
	if req.DepartureRooms != nil {
		r.DepartureRooms = *req.DepartureRooms
	}
	if req.OOORooms != nil {
		r.OOORooms = *req.OOORooms
	}
	if req.Pax != nil {
		r.Pax = *req.Pax
	}
	if req.OccupancyPercentage != nil {
		r.OccupancyPercentage = *req.OccupancyPercentage
	}
	if req.RoomRevenue != nil {
		r.RoomRevenue = *req.RoomRevenue
	}
	if req.ARR != nil {
		r.ARR = *req.ARR
	}
	if req.RevenueDiff != nil {
		r.RevenueDiff = *req.RevenueDiff
	}
	if req.SnapshotDate != nil {
		r.SnapshotDate = *req.SnapshotDate
	}
	if req.ArrivalDate != nil {
		r.ArrivalDate = *req.ArrivalDate
	}
	if req.Kind != nil {
		r.Kind = *req.Kind
	}
	if req.DayOfWeek != nil {
		r.DayOfWeek = *req.DayOfWeek
	}
}

func candidateFromCreate(req domain.CreateRequest) domain.Candidate {
	return domain.Candidate{
		TotalRoomInventory:  req.TotalRoomInventory,
		RoomsSold:           req.RoomsSold,
		ArrivalRooms:        req.ArrivalRooms,
		ComplimentRooms:     req.ComplimentRooms,
		HouseUse:            req.HouseUse,
		IndividualConfirm:   req.IndividualConfirm,
		DepartureRooms:      req.DepartureRooms,
		OOORooms:            req.OOORooms,
		Pax:                 req.Pax,
		OccupancyPercentage: req.OccupancyPercentage,
		RoomRevenue:         req.RoomRevenue,
		ARR:                 req.ARR,
		RevenueDiff:         req.RevenueDiff,
		SnapshotDate:        req.SnapshotDate,
		ArrivalDate:         req.ArrivalDate,
		Kind:                req.Kind,
		DayOfWeek:           req.DayOfWeek,
	}
}

func candidateFromRecord(r *domain.Record) domain.Candidate {
	return domain.Candidate{
		TotalRoomInventory:  &r.TotalRoomInventory,
		RoomsSold:           &r.RoomsSold,
		ArrivalRooms:        &r.ArrivalRooms,
		ComplimentRooms:     &r.ComplimentRooms,
		HouseUse:            &r.HouseUse,
		IndividualConfirm:   &r.IndividualConfirm,
		DepartureRooms:      &r.DepartureRooms,
		OOORooms:            &r.OOORooms,
		Pax:                 &r.Pax,
		OccupancyPercentage: &r.OccupancyPercentage,
		RoomRevenue:         &r.RoomRevenue,
		ARR:                 &r.ARR,
		RevenueDiff:         &r.RevenueDiff,
		SnapshotDate:        &r.SnapshotDate,
		ArrivalDate:         &r.ArrivalDate,
		Kind:                &r.Kind,
		DayOfWeek:           &r.DayOfWeek,
	}
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func floatOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

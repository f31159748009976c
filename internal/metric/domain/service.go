package domain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/roomledger/roomledger/pkg/db/pagination"
)

var (
	// ErrDuplicateRecord means a row already exists for the same
	// (snapshot_date, arrival_date, kind) triple.
	ErrDuplicateRecord = errors.New("metric record already exists for this snapshot, arrival date and kind")
	// ErrUnknownCreator means the submitted created_by does not resolve to an
	// active user.
	ErrUnknownCreator = errors.New("creator is not a known active user")
	// ErrRecordNotFound means no metric row matches the requested id.
	ErrRecordNotFound = errors.New("metric record not found")
)

// ValidationFailedError wraps the field-level findings of a rejected submit
// or update.
type ValidationFailedError struct {
	Errors []FieldError
}

func (e *ValidationFailedError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s)", len(e.Errors))
}

// CreateRequest is a full submission. Pointer fields distinguish absent from
// zero; validation decides which absences are fatal.
type CreateRequest struct {
	TotalRoomInventory  *int       `json:"total_room_inventory"`
	RoomsSold           *int       `json:"rooms_sold"`
	ArrivalRooms        *int       `json:"arrival_rooms"`
	ComplimentRooms     *int       `json:"compliment_rooms"`
	HouseUse            *int       `json:"house_use"`
	IndividualConfirm   *int       `json:"individual_confirm"`
	DepartureRooms      *int       `json:"departure_rooms"`
	OOORooms            *int       `json:"ooo_rooms"`
	Pax                 *int       `json:"pax"`
	OccupancyPercentage *float64   `json:"occupancy_percentage"`
	RoomRevenue         *float64   `json:"room_revenue"`
	ARR                 *float64   `json:"arr"`
	RevenueDiff         *float64   `json:"revenue_diff"`
	SnapshotDate        *time.Time `json:"snapshot_date"`
	ArrivalDate         *time.Time `json:"arrival_date"`
	Kind                *string    `json:"kind"`
	DayOfWeek           *string    `json:"day_of_week"`
}

// UpdateRequest carries a partial edit. Only non-nil fields are applied; the
// merged record is re-validated as a whole.
type UpdateRequest struct {
	TotalRoomInventory  *int       `json:"total_room_inventory"`
	RoomsSold           *int       `json:"rooms_sold"`
	ArrivalRooms        *int       `json:"arrival_rooms"`
	ComplimentRooms     *int       `json:"compliment_rooms"`
	HouseUse            *int       `json:"house_use"`
	IndividualConfirm   *int       `json:"individual_confirm"`
	DepartureRooms      *int       `json:"departure_rooms"`
	OOORooms            *int       `json:"ooo_rooms"`
	Pax                 *int       `json:"pax"`
	OccupancyPercentage *float64   `json:"occupancy_percentage"`
	RoomRevenue         *float64   `json:"room_revenue"`
	ARR                 *float64   `json:"arr"`
	RevenueDiff         *float64   `json:"revenue_diff"`
	SnapshotDate        *time.Time `json:"snapshot_date"`
	ArrivalDate         *time.Time `json:"arrival_date"`
	Kind                *string    `json:"kind"`
	DayOfWeek           *string    `json:"day_of_week"`
}

// ListRequest filters and pages the record listing.
type ListRequest struct {
	StartDate  *time.Time
	EndDate    *time.Time
	Kind       string
	SortBy     string
	SortDir    string
	Pagination pagination.Pagination
}

// ListResponse is a single page of records plus paging metadata.
type ListResponse struct {
	Data     []Record            `json:"data"`
	PageInfo pagination.PageInfo `json:"page_info"`
}

// Service is the metric-record use-case surface.
type Service interface {
	Submit(ctx context.Context, actorID snowflake.ID, req CreateRequest) (*Record, error)
	Update(ctx context.Context, id snowflake.ID, req UpdateRequest) (*Record, error)
	Get(ctx context.Context, id snowflake.ID) (*Record, error)
	List(ctx context.Context, req ListRequest) (*ListResponse, error)
}

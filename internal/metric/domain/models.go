// Package domain contains persistence models and validation rules for daily
// hotel occupancy/revenue metric records.
package domain

import (
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Kind says whether a metric row holds realized or projected numbers.
const (
	KindActual   = "actual"
	KindForecast = "forecast"
)

// Record is one daily hotel metric entry. The grain is
// (snapshot_date, arrival_date, kind): one row per reported arrival day per
// capture day, for either realized or forecast numbers.
type Record struct {
	ID snowflake.ID `gorm:"primaryKey" json:"id"`

	TotalRoomInventory int `gorm:"not null" json:"total_room_inventory"`
	RoomsSold          int `gorm:"not null" json:"rooms_sold"`
	ArrivalRooms       int `gorm:"not null;default:0" json:"arrival_rooms"`
	ComplimentRooms    int `gorm:"not null;default:0" json:"compliment_rooms"`
	HouseUse           int `gorm:"not null;default:0" json:"house_use"`
	IndividualConfirm  int `gorm:"not null;default:0" json:"individual_confirm"`
	DepartureRooms     int `gorm:"not null;default:0" json:"departure_rooms"`
	OOORooms           int `gorm:"column:ooo_rooms;not null;default:0" json:"ooo_rooms"`
	Pax                int `gorm:"not null;default:0" json:"pax"`

	OccupancyPercentage float64 `gorm:"not null" json:"occupancy_percentage"`
	RoomRevenue         float64 `gorm:"not null;default:0" json:"room_revenue"`
	ARR                 float64 `gorm:"column:arr;not null;default:0" json:"arr"`
	RevenueDiff         float64 `gorm:"not null;default:0" json:"revenue_diff"`

	SnapshotDate time.Time `gorm:"type:date;not null;uniqueIndex:ux_hotel_metrics_entry,priority:1" json:"snapshot_date"`
	ArrivalDate  time.Time `gorm:"type:date;not null;uniqueIndex:ux_hotel_metrics_entry,priority:2" json:"arrival_date"`
	Kind         string    `gorm:"type:text;not null;uniqueIndex:ux_hotel_metrics_entry,priority:3" json:"kind"`
	DayOfWeek    string    `gorm:"type:text;not null" json:"day_of_week"`

	// Derived from ArrivalDate at write time; refreshed whenever the arrival
	// date changes.
	ArrivalYear    int    `gorm:"not null" json:"arrival_year"`
	ArrivalMonth   int    `gorm:"not null" json:"arrival_month"`
	ArrivalQuarter int    `gorm:"not null" json:"arrival_quarter"`
	MonthKey       string `gorm:"type:text;not null;index" json:"month_key"`

	CreatedBy snowflake.ID `gorm:"not null;index" json:"created_by"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Record) TableName() string { return "hotel_metrics" }

// RefreshDerived recomputes the arrival-date projections.
func (r *Record) RefreshDerived() {
	year, month, _ := r.ArrivalDate.Date()
	r.ArrivalYear = year
	r.ArrivalMonth = int(month)
	r.ArrivalQuarter = (int(month)-1)/3 + 1
	r.MonthKey = fmt.Sprintf("%04d-%02d", year, int(month))
}

// DateOnly truncates a timestamp to a UTC calendar date.
func DateOnly(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// SortableFields whitelists the columns the list endpoint may order by.
var SortableFields = map[string]struct{}{
	"id":                   {},
	"arrival_date":         {},
	"snapshot_date":        {},
	"occupancy_percentage": {},
	"room_revenue":         {},
	"arr":                  {},
	"rooms_sold":           {},
	"total_room_inventory": {},
	"created_at":           {},
	"updated_at":           {},
}

package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Field names as they appear on the wire and in error payloads.
const (
	FieldTotalRoomInventory  = "total_room_inventory"
	FieldRoomsSold           = "rooms_sold"
	FieldArrivalRooms        = "arrival_rooms"
	FieldComplimentRooms     = "compliment_rooms"
	FieldHouseUse            = "house_use"
	FieldIndividualConfirm   = "individual_confirm"
	FieldDepartureRooms      = "departure_rooms"
	FieldOOORooms            = "ooo_rooms"
	FieldPax                 = "pax"
	FieldOccupancyPercentage = "occupancy_percentage"
	FieldRoomRevenue         = "room_revenue"
	FieldARR                 = "arr"
	FieldSnapshotDate        = "snapshot_date"
	FieldArrivalDate         = "arrival_date"
	FieldKind                = "kind"
	FieldDayOfWeek           = "day_of_week"
)

// Error codes attached to validation findings.
const (
	CodeRequired          = "required"
	CodeNegative          = "must_be_positive"
	CodeOutOfRange        = "out_of_range"
	CodeInvalidEnum       = "invalid_enum"
	CodeDateOrder         = "invalid_date_order"
	CodeCapacityExceeded  = "capacity_exceeded"
	CodeOccupancyMismatch = "occupancy_mismatch"
)

// OccupancyTolerance is the allowed absolute gap between the reported
// occupancy percentage and the one implied by rooms sold over inventory.
const OccupancyTolerance = 1.0

// Weekdays are the accepted day_of_week labels.
var Weekdays = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// FieldError is one validation finding attributed to a single field.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Result is the outcome of validating a candidate record. Errors preserve
// rule-check order.
type Result struct {
	Valid  bool
	Errors []FieldError
}

// Candidate carries the caller-supplied fields of a metric record before any
// persistence. Nil means the field was not supplied.
type Candidate struct {
	TotalRoomInventory  *int
	RoomsSold           *int
	ArrivalRooms        *int
	ComplimentRooms     *int
	HouseUse            *int
	IndividualConfirm   *int
	DepartureRooms      *int
	OOORooms            *int
	Pax                 *int
	OccupancyPercentage *float64
	RoomRevenue         *float64
	ARR                 *float64
	RevenueDiff         *float64
	SnapshotDate        *time.Time
	ArrivalDate         *time.Time
	Kind                *string
	DayOfWeek           *string
}

// Validate checks a candidate record against every business rule and collects
// all findings; it never short-circuits and never returns an error for rule
// violations. Rules, in order: required fields, non-negativity, occupancy
// bound, enum membership, date ordering, capacity, rooms-sold/occupancy
// consistency.
func Validate(c Candidate) Result {
	var errs []FieldError

	if c.TotalRoomInventory == nil {
		errs = append(errs, required(FieldTotalRoomInventory))
	}
	if c.RoomsSold == nil {
		errs = append(errs, required(FieldRoomsSold))
	}
	if c.SnapshotDate == nil {
		errs = append(errs, required(FieldSnapshotDate))
	}
	if c.ArrivalDate == nil {
		errs = append(errs, required(FieldArrivalDate))
	}

	for _, check := range []struct {
		field string
		value *int
	}{
		{FieldTotalRoomInventory, c.TotalRoomInventory},
		{FieldRoomsSold, c.RoomsSold},
		{FieldArrivalRooms, c.ArrivalRooms},
		{FieldComplimentRooms, c.ComplimentRooms},
		{FieldHouseUse, c.HouseUse},
		{FieldIndividualConfirm, c.IndividualConfirm},
		{FieldDepartureRooms, c.DepartureRooms},
		{FieldOOORooms, c.OOORooms},
		{FieldPax, c.Pax},
	} {
		if check.value != nil && *check.value < 0 {
			errs = append(errs, negative(check.field))
		}
	}
	if c.RoomRevenue != nil && *c.RoomRevenue < 0 {
		errs = append(errs, negative(FieldRoomRevenue))
	}
	if c.ARR != nil && *c.ARR < 0 {
		errs = append(errs, negative(FieldARR))
	}

	if c.OccupancyPercentage != nil && (*c.OccupancyPercentage < 0 || *c.OccupancyPercentage > 100) {
		errs = append(errs, FieldError{
			Field:   FieldOccupancyPercentage,
			Code:    CodeOutOfRange,
			Message: fmt.Sprintf("%s must be between 0 and 100, got %.2f", FieldOccupancyPercentage, *c.OccupancyPercentage),
		})
	}

	if c.Kind != nil && *c.Kind != KindActual && *c.Kind != KindForecast {
		errs = append(errs, FieldError{
			Field:   FieldKind,
			Code:    CodeInvalidEnum,
			Message: fmt.Sprintf("%s must be %q or %q, got %q", FieldKind, KindActual, KindForecast, *c.Kind),
		})
	}
	if c.DayOfWeek != nil && !isWeekday(*c.DayOfWeek) {
		errs = append(errs, FieldError{
			Field:   FieldDayOfWeek,
			Code:    CodeInvalidEnum,
			Message: fmt.Sprintf("%s must be a weekday name, got %q", FieldDayOfWeek, *c.DayOfWeek),
		})
	}

	if c.SnapshotDate != nil && c.ArrivalDate != nil && c.ArrivalDate.Before(*c.SnapshotDate) {
		errs = append(errs, FieldError{
			Field:   FieldArrivalDate,
			Code:    CodeDateOrder,
			Message: fmt.Sprintf("%s must not be before %s", FieldArrivalDate, FieldSnapshotDate),
		})
	}

	if c.TotalRoomInventory != nil && c.RoomsSold != nil && *c.RoomsSold > *c.TotalRoomInventory {
		errs = append(errs, FieldError{
			Field:   FieldRoomsSold,
			Code:    CodeCapacityExceeded,
			Message: fmt.Sprintf("%s (%d) cannot exceed %s (%d)", FieldRoomsSold, *c.RoomsSold, FieldTotalRoomInventory, *c.TotalRoomInventory),
		})
	}

	if c.TotalRoomInventory != nil && *c.TotalRoomInventory > 0 &&
		c.RoomsSold != nil && c.OccupancyPercentage != nil &&
		*c.OccupancyPercentage >= 0 && *c.OccupancyPercentage <= 100 {
		expected := float64(*c.RoomsSold) / float64(*c.TotalRoomInventory) * 100
		if math.Abs(expected-*c.OccupancyPercentage) > OccupancyTolerance {
			errs = append(errs, FieldError{
				Field:   FieldOccupancyPercentage,
				Code:    CodeOccupancyMismatch,
				Message: fmt.Sprintf("%s mismatch: expected %.2f, got %.2f", FieldOccupancyPercentage, round2(expected), *c.OccupancyPercentage),
			})
		}
	}

	return Result{Valid: len(errs) == 0, Errors: errs}
}

// ValidateRooms is the backward-compatible three-field variant: it runs the
// same rules over inventory, rooms sold and occupancy only, and flattens the
// findings into a single semicolon-joined message.
func ValidateRooms(inventory, roomsSold *int, occupancy *float64) (bool, string) {
	result := Validate(Candidate{
		TotalRoomInventory:  inventory,
		RoomsSold:           roomsSold,
		OccupancyPercentage: occupancy,
	})

	messages := make([]string, 0, len(result.Errors))
	for _, fieldErr := range result.Errors {
		// The three-field path has no date input; required-date findings do
		// not apply to it.
		if fieldErr.Code == CodeRequired &&
			(fieldErr.Field == FieldSnapshotDate || fieldErr.Field == FieldArrivalDate) {
			continue
		}
		messages = append(messages, fieldErr.Message)
	}

	return len(messages) == 0, strings.Join(messages, "; ")
}

func required(field string) FieldError {
	return FieldError{
		Field:   field,
		Code:    CodeRequired,
		Message: fmt.Sprintf("%s is required", field),
	}
}

func negative(field string) FieldError {
	return FieldError{
		Field:   field,
		Code:    CodeNegative,
		Message: fmt.Sprintf("%s must be positive", field),
	}
}

func isWeekday(value string) bool {
	for _, day := range Weekdays {
		if value == day {
			return true
		}
	}
	return false
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}

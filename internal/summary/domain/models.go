// Package domain holds the monthly rollup shapes computed from hotel metric
// rows.
package domain

// MonthlySummary is one aggregate row per (month_key, kind) group.
type MonthlySummary struct {
	MonthKey       string  `json:"month_key"`
	Kind           string  `json:"kind"`
	AvgOccupancy   float64 `json:"avg_occupancy"`
	AvgRoomRate    float64 `json:"avg_room_rate"`
	TotalRevenue   float64 `json:"total_revenue"`
	TotalRoomsSold int64   `json:"total_rooms_sold"`
	AvgInventory   float64 `json:"avg_inventory"`
	TotalEntries   int64   `json:"total_entries"`
}

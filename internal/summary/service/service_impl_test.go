package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/roomledger/roomledger/internal/summary/domain"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	err = conn.Exec(`CREATE TABLE hotel_metrics (
		id INTEGER PRIMARY KEY,
		total_room_inventory INTEGER NOT NULL,
		rooms_sold INTEGER NOT NULL,
		occupancy_percentage REAL NOT NULL,
		room_revenue REAL NOT NULL DEFAULT 0,
		arr REAL NOT NULL DEFAULT 0,
		month_key TEXT NOT NULL,
		kind TEXT NOT NULL
	)`).Error
	if err != nil {
		t.Fatalf("prepare schema: %v", err)
	}
	return conn
}

func seedRow(t *testing.T, conn *gorm.DB, id int, monthKey, kind string, inventory, roomsSold int, occupancy, revenue, arr float64) {
	t.Helper()
	err := conn.Exec(
		`INSERT INTO hotel_metrics (id, total_room_inventory, rooms_sold, occupancy_percentage, room_revenue, arr, month_key, kind)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, inventory, roomsSold, occupancy, revenue, arr, monthKey, kind,
	).Error
	if err != nil {
		t.Fatalf("seed row: %v", err)
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestMonthlyAggregatesByMonthAndKind(t *testing.T) {
	conn := openTestDB(t)
	svc := New(Params{DB: conn, Log: zap.NewNop()})

	seedRow(t, conn, 1, "2026-08", "actual", 100, 50, 50, 100, 200)
	seedRow(t, conn, 2, "2026-08", "actual", 100, 70, 70, 200, 210)
	seedRow(t, conn, 3, "2026-08", "forecast", 100, 60, 60, 150, 205)
	seedRow(t, conn, 4, "2026-07", "actual", 100, 40, 40, 80, 190)

	resp, err := svc.Monthly(context.Background(), domain.Request{})
	if err != nil {
		t.Fatalf("monthly: %v", err)
	}
	if len(resp.Data) != 3 {
		t.Fatalf("expected 3 groups, got %+v", resp.Data)
	}

	// Newest month first, kinds in lexical order within a month.
	first := resp.Data[0]
	if first.MonthKey != "2026-08" || first.Kind != "actual" {
		t.Fatalf("ordering: %+v", resp.Data)
	}
	if first.TotalEntries != 2 || first.TotalRoomsSold != 120 {
		t.Fatalf("totals: %+v", first)
	}
	if !almostEqual(first.AvgOccupancy, 60) {
		t.Fatalf("avg occupancy: %v", first.AvgOccupancy)
	}
	if !almostEqual(first.TotalRevenue, 300) {
		t.Fatalf("total revenue: %v", first.TotalRevenue)
	}
	if !almostEqual(first.AvgRoomRate, 205) {
		t.Fatalf("avg room rate: %v", first.AvgRoomRate)
	}
	if !almostEqual(first.AvgInventory, 100) {
		t.Fatalf("avg inventory: %v", first.AvgInventory)
	}

	if resp.Data[1].MonthKey != "2026-08" || resp.Data[1].Kind != "forecast" {
		t.Fatalf("ordering: %+v", resp.Data)
	}
	if resp.Data[2].MonthKey != "2026-07" {
		t.Fatalf("ordering: %+v", resp.Data)
	}
}

func TestMonthlyFiltersByWindowAndKind(t *testing.T) {
	conn := openTestDB(t)
	svc := New(Params{DB: conn, Log: zap.NewNop()})

	seedRow(t, conn, 1, "2026-06", "actual", 100, 40, 40, 80, 190)
	seedRow(t, conn, 2, "2026-07", "actual", 100, 50, 50, 100, 200)
	seedRow(t, conn, 3, "2026-08", "forecast", 100, 60, 60, 150, 205)

	resp, err := svc.Monthly(context.Background(), domain.Request{
		StartMonth: "2026-07",
		EndMonth:   "2026-08",
		Kind:       "actual",
	})
	if err != nil {
		t.Fatalf("monthly: %v", err)
	}
	if len(resp.Data) != 1 {
		t.Fatalf("expected 1 group, got %+v", resp.Data)
	}
	if resp.Data[0].MonthKey != "2026-07" || resp.Data[0].Kind != "actual" {
		t.Fatalf("unexpected group: %+v", resp.Data[0])
	}
}

func TestMonthlyEmptyResult(t *testing.T) {
	conn := openTestDB(t)
	svc := New(Params{DB: conn, Log: zap.NewNop()})

	resp, err := svc.Monthly(context.Background(), domain.Request{})
	if err != nil {
		t.Fatalf("monthly: %v", err)
	}
	if resp.Data == nil || len(resp.Data) != 0 {
		t.Fatalf("expected empty non-nil slice, got %+v", resp.Data)
	}
}

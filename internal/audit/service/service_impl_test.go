package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/roomledger/roomledger/internal/audit/domain"
	"github.com/roomledger/roomledger/internal/audit/repository"
	"github.com/roomledger/roomledger/pkg/db/pagination"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestService(t *testing.T) (domain.Service, *gorm.DB, *snowflake.Node) {
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

	err = conn.Exec(`CREATE TABLE metric_audit_entries (
		id INTEGER PRIMARY KEY,
		table_name TEXT NOT NULL,
		operation TEXT NOT NULL,
		record_id INTEGER NOT NULL,
		old_values TEXT,
		new_values TEXT,
		changed_by INTEGER NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`).Error
	if err != nil {
		t.Fatalf("prepare schema: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}

	svc := New(Params{
		DB:    conn,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})
	return svc, conn, node
}

func TestRecordAssignsIDAndTimestamp(t *testing.T) {
	svc, conn, node := newTestService(t)
	ctx := context.Background()

	entry := &domain.Entry{
		SourceTable: "hotel_metrics",
		Operation:   domain.OperationUpdate,
		RecordID:    node.Generate(),
		OldValues:   datatypes.JSONMap{"rooms_sold": 45},
		NewValues:   datatypes.JSONMap{"rooms_sold": 60},
		ChangedBy:   node.Generate(),
	}
	if err := svc.Record(ctx, conn, entry); err != nil {
		t.Fatalf("record: %v", err)
	}
	if entry.ID == 0 {
		t.Fatal("expected generated id")
	}
	if entry.CreatedAt.IsZero() {
		t.Fatal("expected created_at to be set")
	}
}

func TestRecordRollsBackWithTransaction(t *testing.T) {
	svc, conn, node := newTestService(t)
	ctx := context.Background()

	err := conn.Transaction(func(tx *gorm.DB) error {
		entry := &domain.Entry{
			SourceTable: "hotel_metrics",
			Operation:   domain.OperationUpdate,
			RecordID:    node.Generate(),
			ChangedBy:   node.Generate(),
		}
		if err := svc.Record(ctx, tx, entry); err != nil {
			return err
		}
		return fmt.Errorf("boom")
	})
	if err == nil {
		t.Fatal("expected rollback error")
	}

	var count int64
	if err := conn.Table("metric_audit_entries").Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("entry survived rollback: %d", count)
	}
}

func TestListFiltersAndPages(t *testing.T) {
	svc, conn, node := newTestService(t)
	ctx := context.Background()

	recordA := node.Generate()
	recordB := node.Generate()
	for i := 0; i < 3; i++ {
		err := svc.Record(ctx, conn, &domain.Entry{
			SourceTable: "hotel_metrics",
			Operation:   domain.OperationUpdate,
			RecordID:    recordA,
			ChangedBy:   node.Generate(),
		})
		if err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
	}
	err := svc.Record(ctx, conn, &domain.Entry{
		SourceTable: "hotel_metrics",
		Operation:   domain.OperationUpdate,
		RecordID:    recordB,
		ChangedBy:   node.Generate(),
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}

	resp, err := svc.List(ctx, domain.ListRequest{
		Filter:     domain.ListFilter{RecordID: recordA.String()},
		Pagination: pagination.Pagination{Page: 1, PageSize: 2},
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if resp.PageInfo.TotalRecords != 3 || resp.PageInfo.TotalPages != 2 {
		t.Fatalf("page info: %+v", resp.PageInfo)
	}
	if len(resp.Data) != 2 {
		t.Fatalf("expected 2 entries on page 1, got %d", len(resp.Data))
	}
	for _, entry := range resp.Data {
		if entry.RecordID != recordA {
			t.Fatalf("filter leaked record %v", entry.RecordID)
		}
	}
}

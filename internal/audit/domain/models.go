// Package domain holds the change-history model for metric edits.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Operations recorded in the audit trail.
const (
	OperationUpdate = "UPDATE"
)

// Entry is one immutable change-history row. OldValues and NewValues hold
// the tracked field snapshots before and after the edit.
type Entry struct {
	ID          snowflake.ID      `gorm:"primaryKey" json:"id"`
	SourceTable string            `gorm:"column:table_name;type:text;not null" json:"table_name"`
	Operation   string            `gorm:"type:text;not null" json:"operation"`
	RecordID    snowflake.ID      `gorm:"not null;index" json:"record_id"`
	OldValues   datatypes.JSONMap `json:"old_values"`
	NewValues   datatypes.JSONMap `json:"new_values"`
	ChangedBy   snowflake.ID      `gorm:"not null" json:"changed_by"`
	CreatedAt   time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (Entry) TableName() string { return "metric_audit_entries" }

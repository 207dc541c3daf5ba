package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// AuditLog captures an immutable record of a login or document action.
type AuditLog struct {
	ID         snowflake.ID      `gorm:"primaryKey"`
	Actor      *string           `gorm:"type:text"`
	Action     string            `gorm:"type:text;not null;index"`
	TargetType string            `gorm:"type:text;not null"`
	TargetID   *string           `gorm:"type:text"`
	Metadata   datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'"`
	IPAddress  *string           `gorm:"type:text"`
	CreatedAt  time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (AuditLog) TableName() string { return "audit_logs" }

// Service records audit entries best-effort: a failed write is logged
// and swallowed, never surfaced to the request.
type Service interface {
	Record(ctx context.Context, actor *string, action, targetType string, targetID *string, metadata map[string]any)
}

package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// EventRate is a per-event price for a single deliverable.
type EventRate struct {
	ID          snowflake.ID    `gorm:"primaryKey"`
	Deliverable string          `gorm:"type:text;uniqueIndex;not null"`
	Amount      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	CreatedAt   time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (EventRate) TableName() string { return "event_rates" }

// DayRate is a per-day price for a single deliverable, multiplied by the
// inclusive day count of the event window.
type DayRate struct {
	ID          snowflake.ID    `gorm:"primaryKey"`
	Deliverable string          `gorm:"type:text;uniqueIndex;not null"`
	Amount      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	CreatedAt   time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (DayRate) TableName() string { return "day_rates" }

// EventCode maps an event type to the suffix printed in event codes.
type EventCode struct {
	ID        snowflake.ID `gorm:"primaryKey"`
	EventType string       `gorm:"type:text;uniqueIndex;not null"`
	Code      string       `gorm:"type:text;not null"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (EventCode) TableName() string { return "event_codes" }

// DeliverableRate is one resolved (deliverable, amount) pair.
type DeliverableRate struct {
	Deliverable string
	Amount      decimal.Decimal
}

// Resolution holds everything the calculator needs for one quote. Rates
// are fetched fresh per calculation and never cached.
type Resolution struct {
	PerEvent        []DeliverableRate
	PerDay          []DeliverableRate
	EventCodeSuffix string
}

type Service interface {
	Resolve(ctx context.Context, deliverables []string, eventType string) (*Resolution, error)
}

var ErrStoreUnavailable = errors.New("rate_store_unavailable")

package domain

import (
	"context"
	"errors"

	ratedomain "github.com/mrigajana-makstark/makstarkrepo2/internal/rate/domain"
	"github.com/shopspring/decimal"
)

// QuoteRequest is the raw pricing input posted by the dashboard. Discount
// arrives as either a JSON number or a string; anything unparsable is
// treated as zero.
type QuoteRequest struct {
	EventType    string   `json:"eventType"`
	Deliverables []string `json:"deliverables"`
	Discount     any      `json:"discount"`
	StartTime    string   `json:"startTime"`
	EndTime      string   `json:"endTime"`
	ClientName   string   `json:"clientName"`
}

// Quote is the derived, immutable pricing result.
type Quote struct {
	Amount    decimal.Decimal
	EventCode string
}

type Service interface {
	Calculate(ctx context.Context, req QuoteRequest, rates ratedomain.Resolution) (*Quote, error)
}

var (
	ErrNoDeliverables   = errors.New("no_deliverables")
	ErrInvalidDateRange = errors.New("invalid_date_range")
)

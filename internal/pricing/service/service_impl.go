package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	pricingdomain "github.com/mrigajana-makstark/makstarkrepo2/internal/pricing/domain"
	ratedomain "github.com/mrigajana-makstark/makstarkrepo2/internal/rate/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	dateLayout = "2006-01-02"

	// Event codes are pinned to this year/month pair. Deriving them from
	// the event start date is commented out upstream; keep the literal
	// behaviour until product confirms the intent.
	eventCodePrefix = "MSS"
	eventCodeYear   = "25"
	eventCodeMonth  = "01"
)

var hundred = decimal.NewFromInt(100)

type Service struct {
	log *zap.Logger
}

type ServiceParam struct {
	fx.In

	Log *zap.Logger
}

func NewService(p ServiceParam) pricingdomain.Service {
	return &Service{
		log: p.Log.Named("pricing.service"),
	}
}

// Calculate combines per-event and per-day rates with the event window
// and discount into a single billed total plus the printable event code.
func (s *Service) Calculate(ctx context.Context, req pricingdomain.QuoteRequest, rates ratedomain.Resolution) (*pricingdomain.Quote, error) {
	if len(req.Deliverables) == 0 {
		return nil, pricingdomain.ErrNoDeliverables
	}

	total := decimal.Zero
	for _, rate := range rates.PerEvent {
		total = total.Add(rate.Amount)
	}

	perDay := decimal.Zero
	for _, rate := range rates.PerDay {
		perDay = perDay.Add(rate.Amount)
	}

	if req.StartTime != "" && req.EndTime != "" && perDay.IsPositive() {
		days, err := inclusiveDays(req.StartTime, req.EndTime)
		if err != nil {
			return nil, pricingdomain.ErrInvalidDateRange
		}
		perDay = perDay.Mul(decimal.NewFromInt(int64(days)))
	}
	total = total.Add(perDay)

	discount := parseDiscount(req.Discount)
	if !discount.IsZero() {
		total = total.Sub(total.Mul(discount).Div(hundred))
	}

	s.log.Debug("calculated quote",
		zap.String("event_type", req.EventType),
		zap.Int("deliverables", len(req.Deliverables)),
		zap.String("amount", total.String()),
	)

	return &pricingdomain.Quote{
		Amount:    total,
		EventCode: eventCodePrefix + eventCodeYear + eventCodeMonth + rates.EventCodeSuffix,
	}, nil
}

// inclusiveDays counts both endpoints: a one-day event spans 1 day.
func inclusiveDays(start, end string) (int, error) {
	startDate, err := time.Parse(dateLayout, strings.TrimSpace(start))
	if err != nil {
		return 0, err
	}
	endDate, err := time.Parse(dateLayout, strings.TrimSpace(end))
	if err != nil {
		return 0, err
	}
	return int(endDate.Sub(startDate).Hours()/24) + 1, nil
}

// parseDiscount accepts numbers or numeric strings; anything else counts
// as no discount. Negative values pass through and increase the total.
func parseDiscount(raw any) decimal.Decimal {
	switch value := raw.(type) {
	case nil:
		return decimal.Zero
	case float64:
		return decimal.NewFromFloat(value)
	case int:
		return decimal.NewFromInt(int64(value))
	case int64:
		return decimal.NewFromInt(value)
	case string:
		parsed, err := decimal.NewFromString(strings.TrimSpace(value))
		if err != nil {
			return decimal.Zero
		}
		return parsed
	default:
		parsed, err := decimal.NewFromString(fmt.Sprint(value))
		if err != nil {
			return decimal.Zero
		}
		return parsed
	}
}

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mrigajana-makstark/makstarkrepo2/internal/clock"
	entrydomain "github.com/mrigajana-makstark/makstarkrepo2/internal/entry/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	dateLayout     = "2006-01-02"
	completionDays = 30
)

var (
	gstRate = decimal.NewFromFloat(0.18)
	hundred = decimal.NewFromInt(100)
)

const termsAndConditions = `1. A 50% advance payment is required to confirm the booking; the balance is due on delivery of the final deliverables.
2. The quoted amount covers only the deliverables listed in this document. Additional requests are billed separately.
3. Raw footage and unedited material remain the property of Mak Stark Creative Agency.
4. Cancellations within 7 days of the event forfeit the advance payment.
5. Delivery timelines are counted from the event end date and exclude client review cycles.
6. Mak Stark Creative Agency may use selected deliverables for portfolio and promotional purposes unless agreed otherwise in writing.`

type Service struct {
	log   *zap.Logger
	clock clock.Clock
}

type ServiceParam struct {
	fx.In

	Log   *zap.Logger
	Clock clock.Clock
}

func NewService(p ServiceParam) entrydomain.Service {
	return &Service{
		log:   p.Log.Named("entry.service"),
		clock: p.Clock,
	}
}

// Process derives the invoice metadata for a submitted entry. PDF
// rendering is a separate path; this output feeds the dashboard's review
// step directly.
func (s *Service) Process(ctx context.Context, entry entrydomain.ProjectEntry) (*entrydomain.ProcessedEntry, error) {
	if strings.TrimSpace(entry.ClientName) == "" {
		return nil, entrydomain.ErrMissingClient
	}
	if strings.TrimSpace(entry.EventName) == "" {
		return nil, entrydomain.ErrMissingEvent
	}

	breakdown := Financials(entry.Amount, entry.Discount)
	invoiceNumber := s.newInvoiceNumber()

	return &entrydomain.ProcessedEntry{
		ID:                     invoiceNumber,
		FormData:               entry,
		GeneratedInvoiceNumber: invoiceNumber,
		TotalAmount:            breakdown.Subtotal.StringFixed(2),
		TaxAmount:              breakdown.Tax.StringFixed(2),
		FinalAmount:            breakdown.Final.StringFixed(2),
		TermsAndConditions:     termsAndConditions,
		ProjectTimeline:        Timeline(entry.EventStartDate, entry.EventEndDate),
		EstimatedCompletion:    CompletionDate(entry.EventEndDate),
		Status:                 "processed",
	}, nil
}

// newInvoiceNumber combines the wall clock with a random suffix. There is
// no collision check or persistence; uniqueness is probabilistic, which
// is acceptable at the agency's volume.
func (s *Service) newInvoiceNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("INV-%d-%s", s.clock.Now().UnixMilli(), suffix)
}

// Breakdown is the GST financial breakdown for an entry.
type Breakdown struct {
	Base           decimal.Decimal
	DiscountAmount decimal.Decimal
	Subtotal       decimal.Decimal
	Tax            decimal.Decimal
	Final          decimal.Decimal
}

// Financials applies the discount and the fixed 18% GST. Unparsable
// amounts or discounts count as zero rather than failing.
func Financials(amount, discount string) Breakdown {
	base := lenientDecimal(amount)
	disc := lenientDecimal(discount)

	discountAmount := base.Mul(disc).Div(hundred)
	subtotal := base.Sub(discountAmount)
	tax := subtotal.Mul(gstRate)

	return Breakdown{
		Base:           base,
		DiscountAmount: discountAmount,
		Subtotal:       subtotal,
		Tax:            tax,
		Final:          subtotal.Add(tax),
	}
}

// Timeline renders the fixed narrative shown on project documents.
func Timeline(startDate, endDate string) string {
	duration := 0
	start, startErr := time.Parse(dateLayout, strings.TrimSpace(startDate))
	end, endErr := time.Parse(dateLayout, strings.TrimSpace(endDate))
	if startErr == nil && endErr == nil {
		duration = int(end.Sub(start).Hours() / 24)
	}
	return strings.Join([]string{
		fmt.Sprintf("Event Duration: %d day(s)", duration),
		"Pre-production: 7-14 days before event",
		fmt.Sprintf("Event Coverage: %s to %s", startDate, endDate),
		"Post-production: 30-45 business days after event",
	}, "\n")
}

// CompletionDate returns the event end date plus 30 days. When the end
// date does not parse, the original value passes through untouched; the
// dashboard treats that as a degraded display, not a failure.
func CompletionDate(endDate string) string {
	end, err := time.Parse(dateLayout, strings.TrimSpace(endDate))
	if err != nil {
		return endDate
	}
	return end.AddDate(0, 0, completionDays).Format(dateLayout)
}

func lenientDecimal(raw string) decimal.Decimal {
	parsed, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero
	}
	return parsed
}

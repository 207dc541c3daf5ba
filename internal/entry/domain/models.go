package domain

import (
	"context"
	"errors"
)

// ProjectEntry is the full dashboard entry for a booked event.
type ProjectEntry struct {
	ClientName        string   `json:"clientName"`
	EventName         string   `json:"eventName"`
	ClientContact     string   `json:"clientContact"`
	ClientEmail       string   `json:"clientEmail"`
	EventStartDate    string   `json:"eventStartDate"`
	EventEndDate      string   `json:"eventEndDate"`
	InvoiceDate       string   `json:"invoiceDate"`
	EventType         string   `json:"eventType"`
	Amount            string   `json:"amount"`
	Discount          string   `json:"discount"`
	Referral          string   `json:"referral"`
	EmpPointOfContact string   `json:"empPointOfContact"`
	Deliverables      []string `json:"deliverables"`
	AdditionalNotes   string   `json:"additionalNotes"`
	EventCode         string   `json:"eventCode"`
}

// ProcessedEntry is the entry plus its derived invoice metadata. The
// invoice number is freshly generated on every call; everything else is
// deterministic given the inputs.
type ProcessedEntry struct {
	ID                     string       `json:"id"`
	FormData               ProjectEntry `json:"formData"`
	GeneratedInvoiceNumber string       `json:"generatedInvoiceNumber"`
	TotalAmount            string       `json:"totalAmount"`
	TaxAmount              string       `json:"taxAmount"`
	FinalAmount            string       `json:"finalAmount"`
	TermsAndConditions     string       `json:"termsAndConditions"`
	ProjectTimeline        string       `json:"projectTimeline"`
	EstimatedCompletion    string       `json:"estimatedCompletion"`
	Status                 string       `json:"status"`
}

type Service interface {
	Process(ctx context.Context, entry ProjectEntry) (*ProcessedEntry, error)
}

var (
	ErrMissingClient = errors.New("missing_client_name")
	ErrMissingEvent  = errors.New("missing_event_name")
)

package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mrigajana-makstark/makstarkrepo2/internal/document/render"
	entrydomain "github.com/mrigajana-makstark/makstarkrepo2/internal/entry/domain"
	entryservice "github.com/mrigajana-makstark/makstarkrepo2/internal/entry/service"
	"github.com/shopspring/decimal"
)

// ProcessEntry derives invoice metadata for a project entry without
// producing a document.
func (s *Server) ProcessEntry(c *gin.Context) {
	var entry entrydomain.ProjectEntry
	if err := c.ShouldBindJSON(&entry); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	processed, err := s.entries.Process(c.Request.Context(), entry)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, processed)
}

// GenerateEntryPDF renders the full project-entry document and streams
// it back as an attachment.
func (s *Server) GenerateEntryPDF(c *gin.Context) {
	var entry entrydomain.ProjectEntry
	if err := c.ShouldBindJSON(&entry); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	ctx := c.Request.Context()
	processed, err := s.entries.Process(ctx, entry)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	breakdown := entryservice.Financials(entry.Amount, entry.Discount)
	input := render.EntryInput{
		InvoiceNumber: processed.GeneratedInvoiceNumber,
		InvoiceDate:   entry.InvoiceDate,
		EventCode:     entry.EventCode,

		ClientName:    entry.ClientName,
		ClientContact: entry.ClientContact,
		ClientEmail:   entry.ClientEmail,
		EventName:     entry.EventName,

		EventType:      entry.EventType,
		EventStartDate: entry.EventStartDate,
		EventEndDate:   entry.EventEndDate,

		BaseAmount:      rupees(breakdown.Base),
		DiscountPercent: discountPercent(entry.Discount),
		DiscountAmount:  rupees(breakdown.DiscountAmount),
		Subtotal:        rupees(breakdown.Subtotal),
		TaxAmount:       rupees(breakdown.Tax),
		FinalAmount:     rupees(breakdown.Final),

		Deliverables: render.DeliverableRows(entry.Deliverables),

		Timeline:            processed.ProjectTimeline,
		EstimatedCompletion: processed.EstimatedCompletion,
		Terms:               processed.TermsAndConditions,
		AdditionalNotes:     entry.AdditionalNotes,
		PointOfContact:      entry.EmpPointOfContact,
		Referral:            entry.Referral,
	}

	html, err := s.renderer.RenderEntry(input)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	pdfBytes, err := s.pdf.Render(ctx, html)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit.Record(ctx, nil, "document.entry_pdf", "entry", &processed.GeneratedInvoiceNumber, map[string]any{
		"client": entry.ClientName,
	})

	disposition := "attachment"
	if c.Query("preview") == "true" {
		disposition = "inline"
	}
	c.Header("Content-Disposition", disposition+"; filename="+entryFileName(entry.ClientName, processed.GeneratedInvoiceNumber))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

func rupees(value decimal.Decimal) string {
	return "Rs. " + value.StringFixed(2)
}

func discountPercent(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "0"
	}
	return trimmed
}

func entryFileName(clientName, invoiceNumber string) string {
	client := strings.ReplaceAll(strings.TrimSpace(clientName), " ", "_")
	return fmt.Sprintf("ProjectDetails_%s_%s.pdf", client, invoiceNumber)
}

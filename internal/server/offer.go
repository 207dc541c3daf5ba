package server

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mrigajana-makstark/makstarkrepo2/internal/document/render"
)

const salaryUpliftFactor = 1.1

// GenerateOffer echoes the submitted payload with a derived salary figure.
// The dashboard uses it as a dry-run preview before committing to a PDF.
func (s *Server) GenerateOffer(c *gin.Context) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	fields := render.NormalizeOffer(body)
	name, _ := fields.Get("name")
	if strings.TrimSpace(name) == "" {
		name = "unknown"
	}

	c.JSON(http.StatusOK, gin.H{
		"data":              body,
		"message":           fmt.Sprintf("Processed offer payload for %s", name),
		"calculated_salary": calculatedSalary(body["salary"]),
	})
}

// calculatedSalary uplifts numbers and numeric strings; the dashboard
// submits salary as text input. Anything unparsable previews as null.
func calculatedSalary(raw any) any {
	switch typed := raw.(type) {
	case float64:
		return typed * salaryUpliftFactor
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(typed), 64)
		if err != nil {
			return nil
		}
		return parsed * salaryUpliftFactor
	default:
		return nil
	}
}

// GenerateOfferPDF renders one offer letter and streams it back. The
// preview query flag switches the disposition so browsers show it inline.
func (s *Server) GenerateOfferPDF(c *gin.Context) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	fields := render.NormalizeOffer(body)
	html, err := s.renderer.RenderOffer(fields)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	ctx := c.Request.Context()
	pdfBytes, err := s.pdf.Render(ctx, html)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	name, _ := fields.Get("name")
	s.audit.Record(ctx, nil, "document.offer_pdf", "offer", nil, map[string]any{
		"name": name,
	})

	disposition := "attachment"
	if c.Query("preview") == "true" {
		disposition = "inline"
	}
	c.Header("Content-Disposition", fmt.Sprintf("%s; filename=%s", disposition, offerFileName(name)))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

func offerFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "offer"
	}
	return "Offer_Letter_" + strings.ReplaceAll(name, " ", "_") + ".pdf"
}

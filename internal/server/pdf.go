package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// placeholderPDF is a minimal valid single-page document. The endpoint
// predates the HTML pipeline and is kept because the dashboard still
// probes it to confirm the token works before a real download.
var placeholderPDF = []byte("%PDF-1.4\n" +
	"1 0 obj<</Type/Catalog/Pages 2 0 R>>endobj\n" +
	"2 0 obj<</Type/Pages/Kids[3 0 R]/Count 1>>endobj\n" +
	"3 0 obj<</Type/Page/Parent 2 0 R/MediaBox[0 0 612 792]>>endobj\n" +
	"trailer<</Size 4/Root 1 0 R>>\n" +
	"%%EOF\n")

// GeneratePlaceholderPDF requires a bearer token and returns a static
// document.
func (s *Server) GeneratePlaceholderPDF(c *gin.Context) {
	raw := bearerToken(c)
	if raw == "" {
		AbortWithError(c, ErrUnauthorized)
		return
	}
	if !strings.HasPrefix(raw, s.cfg.DemoTokenPrefix) {
		if _, err := s.issuer.Verify(raw); err != nil {
			AbortWithError(c, err)
			return
		}
	}

	c.Header("Content-Disposition", "attachment; filename=generated.pdf")
	c.Data(http.StatusOK, "application/pdf", placeholderPDF)
}

package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type batchRequest struct {
	Items []map[string]any `json:"items"`
}

// GenerateOfferBatchZip renders every item into a PDF and returns one
// zip archive. The first failing item aborts the whole batch.
func (s *Server) GenerateOfferBatchZip(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if len(req.Items) == 0 {
		AbortWithError(c, newValidationError("items", "required", "No items provided"))
		return
	}

	ctx := c.Request.Context()
	archive, err := s.packager.Package(ctx, req.Items)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit.Record(ctx, nil, "document.offer_batch", "offer", nil, map[string]any{
		"items": len(req.Items),
	})

	c.Header("Content-Disposition", "attachment; filename=offer_letters.zip")
	c.Data(http.StatusOK, "application/zip", archive)
}

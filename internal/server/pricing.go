package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	pricingdomain "github.com/mrigajana-makstark/makstarkrepo2/internal/pricing/domain"
)

// CalculateAmount resolves current rates and prices a quote. Rates are
// read fresh on every call.
func (s *Server) CalculateAmount(c *gin.Context) {
	var req pricingdomain.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if len(req.Deliverables) == 0 {
		AbortWithError(c, pricingdomain.ErrNoDeliverables)
		return
	}

	ctx := c.Request.Context()
	rates, err := s.rates.Resolve(ctx, req.Deliverables, req.EventType)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	quote, err := s.pricing.Calculate(ctx, req, *rates)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	amount, _ := quote.Amount.Float64()
	c.JSON(http.StatusOK, gin.H{
		"amount":     amount,
		"event_code": quote.EventCode,
	})
}

package handlers

import (
	"net/http"
	"strconv"

	"github.com/andresuchdata/agarbatti/backend-go/internal/service"
	"github.com/gin-gonic/gin"
)

type InsightHandler struct {
	service *service.InsightService
}

func NewInsightHandler(service *service.InsightService) *InsightHandler {
	return &InsightHandler{service: service}
}

// LowStock takes an optional ?threshold= override.
func (h *InsightHandler) LowStock(c *gin.Context) {
	var threshold *int
	if raw := c.Query("threshold"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			badRequest(c, "threshold must be a non-negative integer")
			return
		}
		threshold = &v
	}
	report, err := h.service.LowStock(c.Request.Context(), threshold)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *InsightHandler) CustomerDeals(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	deals, err := h.service.CustomerDeals(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, deals)
}

func (h *InsightHandler) SupplierDeals(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	deals, err := h.service.SupplierDeals(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, deals)
}

func (h *InsightHandler) SupplierProducts(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	products, err := h.service.SupplierProducts(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *InsightHandler) BankAccountRevenue(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	revenue, err := h.service.BankAccountRevenue(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, revenue)
}

func (h *InsightHandler) BankAccountSummary(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	summary, err := h.service.BankAccountSummary(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *InsightHandler) Integrity(c *gin.Context) {
	refs, err := h.service.Integrity(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unresolved": refs, "count": len(refs)})
}

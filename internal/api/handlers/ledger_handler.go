package handlers

import (
	"net/http"

	"github.com/andresuchdata/agarbatti/backend-go/internal/domain"
	"github.com/andresuchdata/agarbatti/backend-go/internal/service"
	"github.com/gin-gonic/gin"
)

type LedgerHandler struct {
	service *service.LedgerService
}

func NewLedgerHandler(service *service.LedgerService) *LedgerHandler {
	return &LedgerHandler{service: service}
}

func (h *LedgerHandler) ListInvoices(c *gin.Context) {
	invoices, err := h.service.ListInvoices(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, invoices)
}

func (h *LedgerHandler) CreateInvoice(c *gin.Context) {
	var invoice domain.Invoice
	if !bindJSON(c, &invoice) {
		return
	}
	if err := h.service.CreateInvoice(c.Request.Context(), &invoice); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, invoice)
}

// UpdateInvoice only accepts status and dueDate.
func (h *LedgerHandler) UpdateInvoice(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var patch domain.InvoicePatch
	if !bindJSON(c, &patch) {
		return
	}
	invoice, err := h.service.UpdateInvoice(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, invoice)
}

func (h *LedgerHandler) ListTransactions(c *gin.Context) {
	transactions, err := h.service.ListTransactions(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, transactions)
}

func (h *LedgerHandler) CreateTransaction(c *gin.Context) {
	var txn domain.Transaction
	if !bindJSON(c, &txn) {
		return
	}
	if err := h.service.CreateTransaction(c.Request.Context(), &txn); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, txn)
}

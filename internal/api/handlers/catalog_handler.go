package handlers

import (
	"net/http"
	"strconv"

	"github.com/andresuchdata/agarbatti/backend-go/internal/domain"
	"github.com/andresuchdata/agarbatti/backend-go/internal/service"
	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	service *service.CatalogService
}

func NewCatalogHandler(service *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

func (h *CatalogHandler) ListProducts(c *gin.Context) {
	products, err := h.service.ListProducts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	product, err := h.service.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var product domain.Product
	if !bindJSON(c, &product) {
		return
	}
	if err := h.service.CreateProduct(c.Request.Context(), &product); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var patch domain.ProductPatch
	if !bindJSON(c, &patch) {
		return
	}
	product, err := h.service.UpdateProduct(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteProduct(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CatalogHandler) ListCustomers(c *gin.Context) {
	customers, err := h.service.ListCustomers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

func (h *CatalogHandler) GetCustomer(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	customer, err := h.service.GetCustomer(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *CatalogHandler) CreateCustomer(c *gin.Context) {
	var customer domain.Customer
	if !bindJSON(c, &customer) {
		return
	}
	if err := h.service.CreateCustomer(c.Request.Context(), &customer); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

func (h *CatalogHandler) UpdateCustomer(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var patch domain.CustomerPatch
	if !bindJSON(c, &patch) {
		return
	}
	customer, err := h.service.UpdateCustomer(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *CatalogHandler) DeleteCustomer(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteCustomer(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CatalogHandler) ListSuppliers(c *gin.Context) {
	suppliers, err := h.service.ListSuppliers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, suppliers)
}

func (h *CatalogHandler) GetSupplier(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	supplier, err := h.service.GetSupplier(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, supplier)
}

func (h *CatalogHandler) CreateSupplier(c *gin.Context) {
	var supplier domain.Supplier
	if !bindJSON(c, &supplier) {
		return
	}
	if err := h.service.CreateSupplier(c.Request.Context(), &supplier); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, supplier)
}

func (h *CatalogHandler) UpdateSupplier(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var patch domain.SupplierPatch
	if !bindJSON(c, &patch) {
		return
	}
	supplier, err := h.service.UpdateSupplier(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, supplier)
}

func (h *CatalogHandler) DeleteSupplier(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteSupplier(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListBankAccounts accepts ?ownerType=customer|supplier&ownerId=N.
func (h *CatalogHandler) ListBankAccounts(c *gin.Context) {
	var (
		ownerType domain.OwnerType
		ownerID   int64
	)
	if raw := c.Query("ownerType"); raw != "" {
		parsed, ok := domain.ParseOwnerType(raw)
		if !ok {
			badRequest(c, "ownerType must be customer or supplier")
			return
		}
		id, err := strconv.ParseInt(c.Query("ownerId"), 10, 64)
		if err != nil {
			badRequest(c, "ownerId is required with ownerType")
			return
		}
		ownerType, ownerID = parsed, id
	}

	accounts, err := h.service.ListBankAccounts(c.Request.Context(), ownerType, ownerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, accounts)
}

func (h *CatalogHandler) CreateBankAccount(c *gin.Context) {
	var account domain.BankAccount
	if !bindJSON(c, &account) {
		return
	}
	if err := h.service.CreateBankAccount(c.Request.Context(), &account); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, account)
}

func (h *CatalogHandler) UpdateBankAccount(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var patch domain.BankAccountPatch
	if !bindJSON(c, &patch) {
		return
	}
	account, err := h.service.UpdateBankAccount(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

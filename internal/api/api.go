// internal/api/api.go
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/andresuchdata/agarbatti/backend-go/internal/api/handlers"
	"github.com/andresuchdata/agarbatti/backend-go/internal/api/middleware"
	"github.com/andresuchdata/agarbatti/backend-go/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Services struct {
	Catalog   *service.CatalogService
	Orders    *service.OrderService
	Ledger    *service.LedgerService
	Insights  *service.InsightService
	Snapshots *service.SnapshotService
}

// NewRouter mounts every service that is set. A non-empty apiToken guards the
// /api group with bearer auth; /health stays open.
func NewRouter(services *Services, allowedOrigins []string, apiToken string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api", middleware.BearerAuth(apiToken))

	if services == nil {
		return router
	}

	if services.Catalog != nil {
		catalog := handlers.NewCatalogHandler(services.Catalog)

		apiGroup.GET("/products", catalog.ListProducts)
		apiGroup.POST("/products", catalog.CreateProduct)
		apiGroup.GET("/products/:id", catalog.GetProduct)
		apiGroup.PUT("/products/:id", catalog.UpdateProduct)
		apiGroup.DELETE("/products/:id", catalog.DeleteProduct)

		apiGroup.GET("/customers", catalog.ListCustomers)
		apiGroup.POST("/customers", catalog.CreateCustomer)
		apiGroup.GET("/customers/:id", catalog.GetCustomer)
		apiGroup.PUT("/customers/:id", catalog.UpdateCustomer)
		apiGroup.DELETE("/customers/:id", catalog.DeleteCustomer)

		apiGroup.GET("/suppliers", catalog.ListSuppliers)
		apiGroup.POST("/suppliers", catalog.CreateSupplier)
		apiGroup.GET("/suppliers/:id", catalog.GetSupplier)
		apiGroup.PUT("/suppliers/:id", catalog.UpdateSupplier)
		apiGroup.DELETE("/suppliers/:id", catalog.DeleteSupplier)

		apiGroup.GET("/bank-accounts", catalog.ListBankAccounts)
		apiGroup.POST("/bank-accounts", catalog.CreateBankAccount)
		apiGroup.PUT("/bank-accounts/:id", catalog.UpdateBankAccount)
	}

	if services.Orders != nil {
		orders := handlers.NewOrderHandler(services.Orders)
		apiGroup.GET("/sales-orders", orders.ListSalesOrders)
		apiGroup.POST("/sales-orders", orders.PlaceOrder)
		apiGroup.GET("/sales-orders/:id", orders.GetSalesOrder)
	}

	if services.Ledger != nil {
		ledger := handlers.NewLedgerHandler(services.Ledger)
		apiGroup.GET("/invoices", ledger.ListInvoices)
		apiGroup.POST("/invoices", ledger.CreateInvoice)
		apiGroup.PUT("/invoices/:id", ledger.UpdateInvoice)
		apiGroup.GET("/transactions", ledger.ListTransactions)
		apiGroup.POST("/transactions", ledger.CreateTransaction)
	}

	if services.Insights != nil {
		insights := handlers.NewInsightHandler(services.Insights)
		insightGroup := apiGroup.Group("/insights")
		{
			insightGroup.GET("/low-stock", insights.LowStock)
			insightGroup.GET("/customers/:id/deals", insights.CustomerDeals)
			insightGroup.GET("/suppliers/:id/deals", insights.SupplierDeals)
			insightGroup.GET("/suppliers/:id/products", insights.SupplierProducts)
			insightGroup.GET("/bank-accounts/:id/revenue", insights.BankAccountRevenue)
			insightGroup.GET("/bank-accounts/:id/summary", insights.BankAccountSummary)
			insightGroup.GET("/integrity", insights.Integrity)
		}
	}

	if services.Snapshots != nil {
		snapshots := handlers.NewSnapshotHandler(services.Snapshots)
		apiGroup.GET("/snapshot", snapshots.Export)
		apiGroup.POST("/snapshot", snapshots.Import)
		apiGroup.POST("/snapshot/archives", snapshots.Archive)
		apiGroup.GET("/snapshot/archives", snapshots.ListArchives)
		apiGroup.POST("/snapshot/archives/restore", snapshots.RestoreArchive)
		apiGroup.GET("/export/csv", snapshots.ExportCSV)
		apiGroup.GET("/export/xlsx", snapshots.ExportXLSX)
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}

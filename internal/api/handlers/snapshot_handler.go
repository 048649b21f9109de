package handlers

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/andresuchdata/agarbatti/backend-go/internal/domain"
	"github.com/andresuchdata/agarbatti/backend-go/internal/service"
	"github.com/gin-gonic/gin"
)

const maxSnapshotBytes = 32 << 20

type SnapshotHandler struct {
	service *service.SnapshotService
}

func NewSnapshotHandler(service *service.SnapshotService) *SnapshotHandler {
	return &SnapshotHandler{service: service}
}

func (h *SnapshotHandler) Export(c *gin.Context) {
	data, err := h.service.Export(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

func (h *SnapshotHandler) Import(c *gin.Context) {
	data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxSnapshotBytes))
	if err != nil {
		badRequest(c, "could not read request body")
		return
	}
	snap, err := h.service.Import(c.Request.Context(), data)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, importSummary(snap))
}

func importSummary(snap *domain.Snapshot) gin.H {
	return gin.H{
		"schemaVersion": snap.SchemaVersion,
		"products":      len(snap.Products),
		"salesOrders":   len(snap.SalesOrders),
		"invoices":      len(snap.Invoices),
		"customers":     len(snap.Customers),
		"suppliers":     len(snap.Suppliers),
		"bankAccounts":  len(snap.BankAccounts),
		"transactions":  len(snap.Transactions),
	}
}

// ExportCSV writes every collection, or one with ?collection=.
func (h *SnapshotHandler) ExportCSV(c *gin.Context) {
	var (
		buf  bytes.Buffer
		err  error
		name = "agarbatti"
	)
	if raw := c.Query("collection"); raw != "" {
		collection, ok := domain.ParseCollection(raw)
		if !ok {
			badRequest(c, "unknown collection "+raw)
			return
		}
		name = string(collection)
		err = h.service.ExportCollectionCSV(c.Request.Context(), collection, &buf)
	} else {
		err = h.service.ExportCSV(c.Request.Context(), &buf)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", attachment(name, "csv"))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func (h *SnapshotHandler) ExportXLSX(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.service.ExportXLSX(c.Request.Context(), &buf); err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", attachment("agarbatti", "xlsx"))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func attachment(name, ext string) string {
	return fmt.Sprintf(`attachment; filename="%s-%s.%s"`, name, time.Now().UTC().Format("20060102"), ext)
}

func (h *SnapshotHandler) Archive(c *gin.Context) {
	info, err := h.service.Archive(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, info)
}

func (h *SnapshotHandler) ListArchives(c *gin.Context) {
	archives, err := h.service.ListArchives(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, archives)
}

func (h *SnapshotHandler) RestoreArchive(c *gin.Context) {
	var req struct {
		Key string `json:"key"`
	}
	if !bindJSON(c, &req) {
		return
	}
	snap, err := h.service.RestoreArchive(c.Request.Context(), req.Key)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, importSummary(snap))
}

package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/FRANKLIN09020/smart-billing/internal/application/service"
	"github.com/FRANKLIN09020/smart-billing/internal/presentation/http/dto/request"
	"github.com/FRANKLIN09020/smart-billing/internal/presentation/http/dto/response"
	"github.com/FRANKLIN09020/smart-billing/pkg/pagination"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// BillHandler handles bill generation and the bill history
type BillHandler struct {
	billService   *service.BillService
	exportService *service.ExportService
}

// NewBillHandler creates a new bill handler
func NewBillHandler(billService *service.BillService, exportService *service.ExportService) *BillHandler {
	return &BillHandler{billService: billService, exportService: exportService}
}

// Generate commits the open cart as a bill
// @Summary Generate bill
// @Tags bills
// @Security BearerAuth
// @Param Idempotency-Key header string true "Unique key per bill attempt"
// @Success 201 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /bills [post]
func (h *BillHandler) Generate(c *gin.Context) {
	bill, err := h.billService.Generate(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, fmt.Sprintf("Bill %s generated successfully", bill.BillNumber), response.NewBillResponse(bill))
}

// List returns the bill history, newest first
func (h *BillHandler) List(c *gin.Context) {
	var filter request.BillFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	bills, meta := h.billService.List(c.Request.Context(), pagination.Params{
		Page:    filter.Page,
		PerPage: filter.PerPage,
	})

	response.SuccessWithPagination(c, "Bills retrieved successfully", response.NewBillSummaryList(bills), meta)
}

// Get returns a single bill by its number
func (h *BillHandler) Get(c *gin.Context) {
	bill, err := h.billService.GetByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill retrieved successfully", response.NewBillResponse(bill))
}

// Export downloads every bill as an Excel workbook
func (h *BillHandler) Export(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.exportService.ExportBills(c.Request.Context(), &buf); err != nil {
		_ = c.Error(err)
		response.InternalServerError(c, "Failed to export bills")
		return
	}

	filename := fmt.Sprintf("bills-%s.xlsx", time.Now().Format("20060102-150405"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// Snapshot returns the full terminal state: catalog, open cart and ledger
func (h *BillHandler) Snapshot(c *gin.Context) {
	response.OK(c, "Snapshot retrieved successfully", h.billService.Snapshot(c.Request.Context()))
}

package admin

import (
	"strconv"
	"strings"

	"github.com/laptopstore-next/internal/http/response"
	"github.com/laptopstore-next/internal/repository"
	"github.com/laptopstore-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ImportReceiptPayload 入库单创建请求
type ImportReceiptPayload struct {
	Supplier string              `json:"supplier"`
	Note     string              `json:"note"`
	Lines    []ImportLinePayload `json:"lines" binding:"required"`
}

// ImportLinePayload 入库单明细行
type ImportLinePayload struct {
	ProductID uint            `json:"product_id" binding:"required"`
	Quantity  int             `json:"quantity" binding:"required"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// CreateImportReceipt 创建入库单并提升库存
func (h *Handler) CreateImportReceipt(c *gin.Context) {
	actorID, ok := getActorID(c)
	if !ok {
		return
	}
	var req ImportReceiptPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	lines := make([]service.ImportLineInput, 0, len(req.Lines))
	for _, line := range req.Lines {
		lines = append(lines, service.ImportLineInput{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitCost:  line.UnitCost,
		})
	}
	receipt, err := h.InventoryService.CreateReceipt(service.ImportInput{
		Supplier:  req.Supplier,
		Note:      req.Note,
		CreatedBy: actorID,
		Lines:     lines,
	})
	if err != nil {
		respondWithMappedError(c, err, importAdminErrorRules, response.CodeInternal, "error.internal")
		return
	}
	requestLog(c).Infow("admin_import_receipt_created", "receipt_id", receipt.ID, "lines", len(req.Lines))
	response.Success(c, receipt)
}

// ListImportReceipts 入库单列表
func (h *Handler) ListImportReceipts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	createdFrom, err := parseTimeNullable(strings.TrimSpace(c.Query("created_from")))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	createdTo, err := parseTimeNullable(strings.TrimSpace(c.Query("created_to")))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	receipts, total, err := h.InventoryService.List(repository.ImportReceiptListFilter{
		Page:        page,
		PageSize:    pageSize,
		Keyword:     strings.TrimSpace(c.Query("keyword")),
		CreatedFrom: createdFrom,
		CreatedTo:   createdTo,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, receipts, pagination)
}

// GetImportReceipt 入库单详情
func (h *Handler) GetImportReceipt(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	receipt, err := h.InventoryService.Get(uint(id))
	if err != nil {
		respondWithMappedError(c, err, importAdminErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, receipt)
}

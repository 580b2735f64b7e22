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

// ProductPayload 商品创建/更新请求
type ProductPayload struct {
	Name           string                `json:"name" binding:"required"`
	Slug           string                `json:"slug"`
	Description    string                `json:"description"`
	Price          decimal.Decimal       `json:"price" binding:"required"`
	OriginalPrice  decimal.Decimal       `json:"original_price"`
	StockQuantity  *int                  `json:"stock_quantity"`
	CategoryID     uint                  `json:"category_id" binding:"required"`
	BrandID        uint                  `json:"brand_id" binding:"required"`
	CPU            string                `json:"cpu"`
	RAM            string                `json:"ram"`
	Storage        string                `json:"storage"`
	Screen         string                `json:"screen"`
	GPU            string                `json:"gpu"`
	WeightKG       string                `json:"weight_kg"`
	WarrantyMonths int                   `json:"warranty_months"`
	Status         string                `json:"status"`
	Images         []ProductImagePayload `json:"images"`
}

// ProductImagePayload 商品图片请求
type ProductImagePayload struct {
	URL     string `json:"url" binding:"required"`
	Sort    int    `json:"sort"`
	IsCover bool   `json:"is_cover"`
}

func (p ProductPayload) toInput() service.ProductInput {
	images := make([]service.ProductImageInput, 0, len(p.Images))
	for _, image := range p.Images {
		images = append(images, service.ProductImageInput{
			URL:     image.URL,
			Sort:    image.Sort,
			IsCover: image.IsCover,
		})
	}
	return service.ProductInput{
		Name:           p.Name,
		Slug:           p.Slug,
		Description:    p.Description,
		Price:          p.Price,
		OriginalPrice:  p.OriginalPrice,
		StockQuantity:  p.StockQuantity,
		CategoryID:     p.CategoryID,
		BrandID:        p.BrandID,
		CPU:            p.CPU,
		RAM:            p.RAM,
		Storage:        p.Storage,
		Screen:         p.Screen,
		GPU:            p.GPU,
		WeightKG:       p.WeightKG,
		WarrantyMonths: p.WarrantyMonths,
		Status:         p.Status,
		Images:         images,
	}
}

// ListProducts 后台商品列表
func (h *Handler) ListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.ProductListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   strings.TrimSpace(c.Query("search")),
		Sort:     strings.TrimSpace(c.Query("sort")),
	}
	if id, err := strconv.ParseUint(c.Query("category_id"), 10, 64); err == nil {
		filter.CategoryID = uint(id)
	}
	if id, err := strconv.ParseUint(c.Query("brand_id"), 10, 64); err == nil {
		filter.BrandID = uint(id)
	}

	products, total, err := h.ProductService.ListAdmin(filter)
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
	response.SuccessWithPage(c, products, pagination)
}

// GetProduct 后台商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	product, err := h.ProductService.GetAdminByID(uint(id))
	if err != nil {
		respondWithMappedError(c, err, catalogAdminErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, product)
}

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	product, err := h.ProductService.Create(req.toInput())
	if err != nil {
		respondWithMappedError(c, err, catalogAdminErrorRules, response.CodeInternal, "error.internal")
		return
	}
	requestLog(c).Infow("admin_product_created", "product_id", product.ID, "slug", product.Slug)
	response.Success(c, product)
}

// UpdateProduct 更新商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	var req ProductPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	product, err := h.ProductService.Update(uint(id), req.toInput())
	if err != nil {
		respondWithMappedError(c, err, catalogAdminErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, product)
}

// SetProductStatus 上下架商品
func (h *Handler) SetProductStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	product, err := h.ProductService.SetStatus(uint(id), req.Status)
	if err != nil {
		respondWithMappedError(c, err, catalogAdminErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, product)
}

// DeleteProduct 删除商品
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	if err := h.ProductService.Delete(uint(id)); err != nil {
		respondWithMappedError(c, err, catalogAdminErrorRules, response.CodeInternal, "error.internal")
		return
	}
	requestLog(c).Infow("admin_product_deleted", "product_id", id)
	response.Success(c, gin.H{"deleted": true})
}

package admin

import (
	"strconv"

	"github.com/laptopstore-next/internal/http/response"
	"github.com/laptopstore-next/internal/service"

	"github.com/gin-gonic/gin"
)

// BrandPayload 品牌创建/更新请求
type BrandPayload struct {
	Name      string `json:"name" binding:"required"`
	Slug      string `json:"slug"`
	Logo      string `json:"logo"`
	SortOrder int    `json:"sort_order"`
}

// ListBrands 后台品牌列表
func (h *Handler) ListBrands(c *gin.Context) {
	brands, err := h.BrandService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, brands)
}

// CreateBrand 创建品牌
func (h *Handler) CreateBrand(c *gin.Context) {
	var req BrandPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	brand, err := h.BrandService.Create(service.BrandInput{
		Name:      req.Name,
		Slug:      req.Slug,
		Logo:      req.Logo,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		respondWithMappedError(c, err, catalogAdminErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, brand)
}

// UpdateBrand 更新品牌
func (h *Handler) UpdateBrand(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	var req BrandPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	brand, err := h.BrandService.Update(uint(id), service.BrandInput{
		Name:      req.Name,
		Slug:      req.Slug,
		Logo:      req.Logo,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		respondWithMappedError(c, err, catalogAdminErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, brand)
}

// DeleteBrand 删除品牌
func (h *Handler) DeleteBrand(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	if err := h.BrandService.Delete(uint(id)); err != nil {
		respondWithMappedError(c, err, catalogAdminErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

package admin

import (
	"errors"

	"github.com/laptopstore-next/internal/http/response"
	"github.com/laptopstore-next/internal/service"

	"github.com/gin-gonic/gin"
)

// Upload 后台文件上传（商品图、品牌 Logo 等）
func (h *Handler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	scene := c.DefaultPostForm("scene", "common")

	path, err := h.UploadService.SaveFile(file, scene)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUploadTooLarge):
			respondError(c, response.CodeBadRequest, "error.upload_too_large", nil)
		case errors.Is(err, service.ErrUploadInvalidType):
			respondError(c, response.CodeBadRequest, "error.upload_type", nil)
		default:
			respondError(c, response.CodeInternal, "error.internal", err)
		}
		return
	}
	response.Success(c, gin.H{"path": path})
}

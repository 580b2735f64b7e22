package public

import (
	"github.com/laptopstore-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// CreateReviewRequest 创建商品评价请求
type CreateReviewRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Rating    int    `json:"rating" binding:"required"`
	Content   string `json:"content"`
}

// CreateReview 创建商品评价（仅限已收货的买家，每商品一条）
func (h *Handler) CreateReview(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	review, err := h.ReviewService.Create(userID, req.ProductID, req.Rating, req.Content)
	if err != nil {
		respondWithMappedError(c, err, reviewErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, review)
}

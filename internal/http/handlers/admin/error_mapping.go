package admin

import (
	"errors"

	"github.com/laptopstore-next/internal/http/response"
	"github.com/laptopstore-next/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	key    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackKey, err)
}

var catalogAdminErrorRules = []mappedHandlerError{
	{target: service.ErrProductNotFound, code: response.CodeNotFound, key: "error.product_not_found"},
	{target: service.ErrCategoryNotFound, code: response.CodeNotFound, key: "error.category_not_found"},
	{target: service.ErrBrandNotFound, code: response.CodeNotFound, key: "error.brand_not_found"},
	{target: service.ErrSlugExists, code: response.CodeBadRequest, key: "error.slug_exists"},
	{target: service.ErrInvalidParams, code: response.CodeBadRequest, key: "error.bad_request"},
}

var orderAdminErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, key: "error.order_not_found"},
	{target: service.ErrOrderTransition, code: response.CodeBadRequest, key: "error.order_transition"},
	{target: service.ErrInvalidParams, code: response.CodeBadRequest, key: "error.bad_request"},
}

var userAdminErrorRules = []mappedHandlerError{
	{target: service.ErrUserNotFound, code: response.CodeNotFound, key: "error.user_not_found"},
	{target: service.ErrInvalidEmail, code: response.CodeBadRequest, key: "error.invalid_email"},
	{target: service.ErrEmailExists, code: response.CodeBadRequest, key: "error.email_exists"},
	{target: service.ErrPhoneExists, code: response.CodeBadRequest, key: "error.phone_exists"},
	{target: service.ErrInvalidParams, code: response.CodeBadRequest, key: "error.bad_request"},
	{target: service.ErrEmailServiceDisabled, code: response.CodeInternal, key: "error.email_send_failed"},
	{target: service.ErrEmailServiceNotConfigured, code: response.CodeInternal, key: "error.email_send_failed"},
}

var couponAdminErrorRules = []mappedHandlerError{
	{target: service.ErrCouponNotFound, code: response.CodeNotFound, key: "error.coupon_not_found"},
	{target: service.ErrCouponCodeExists, code: response.CodeBadRequest, key: "error.coupon_code_exists"},
	{target: service.ErrInvalidParams, code: response.CodeBadRequest, key: "error.bad_request"},
}

var importAdminErrorRules = []mappedHandlerError{
	{target: service.ErrImportEmpty, code: response.CodeBadRequest, key: "error.import_empty"},
	{target: service.ErrImportNotFound, code: response.CodeNotFound, key: "error.import_not_found"},
	{target: service.ErrProductNotFound, code: response.CodeBadRequest, key: "error.product_not_found"},
	{target: service.ErrInvalidParams, code: response.CodeBadRequest, key: "error.bad_request"},
}

package public

import (
	"errors"

	"github.com/laptopstore-next/internal/http/response"
	"github.com/laptopstore-next/internal/i18n"
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
	var shortage *service.StockShortageError
	if errors.As(err, &shortage) {
		locale := i18n.ResolveLocale(c)
		msg := i18n.Sprintf(locale, "error.insufficient_stock", shortage.ProductName, shortage.Available)
		respondErrorWithMsg(c, response.CodeBadRequest, msg, nil)
		return
	}
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackKey, err)
}

var authCommonErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidCredentials, code: response.CodeBadRequest, key: "error.invalid_login"},
	{target: service.ErrEmailNotVerified, code: response.CodeBadRequest, key: "error.email_unverified"},
	{target: service.ErrUserDisabled, code: response.CodeForbidden, key: "error.account_inactive"},
	{target: service.ErrUserNotFound, code: response.CodeNotFound, key: "error.user_not_found"},
	{target: service.ErrInvalidEmail, code: response.CodeBadRequest, key: "error.invalid_email"},
	{target: service.ErrEmailExists, code: response.CodeBadRequest, key: "error.email_exists"},
	{target: service.ErrPhoneExists, code: response.CodeBadRequest, key: "error.phone_exists"},
	{target: service.ErrInvalidParams, code: response.CodeBadRequest, key: "error.bad_request"},
	{target: service.ErrVerifyTooFrequent, code: response.CodeTooManyRequests, key: "error.too_many_requests"},
	{target: service.ErrTokenInvalid, code: response.CodeBadRequest, key: "error.token_invalid"},
	{target: service.ErrTokenExpired, code: response.CodeBadRequest, key: "error.token_expired"},
	{target: service.ErrTokenUsed, code: response.CodeBadRequest, key: "error.token_used"},
	{target: service.ErrEmailServiceDisabled, code: response.CodeInternal, key: "error.email_send_failed"},
	{target: service.ErrEmailServiceNotConfigured, code: response.CodeInternal, key: "error.email_send_failed"},
	{target: service.ErrEmailRecipientRejected, code: response.CodeBadRequest, key: "error.email_send_failed"},
}

var cartErrorRules = []mappedHandlerError{
	{target: service.ErrProductNotFound, code: response.CodeNotFound, key: "error.product_not_found"},
	{target: service.ErrProductUnavailable, code: response.CodeBadRequest, key: "error.product_off_sale"},
	{target: service.ErrCartItemNotFound, code: response.CodeNotFound, key: "error.cart_item_missing"},
	{target: service.ErrInvalidQuantity, code: response.CodeBadRequest, key: "error.invalid_quantity"},
	{target: service.ErrInvalidParams, code: response.CodeBadRequest, key: "error.bad_request"},
}

var checkoutErrorRules = []mappedHandlerError{
	{target: service.ErrCartEmpty, code: response.CodeBadRequest, key: "error.cart_empty"},
	{target: service.ErrShippingInfoMissing, code: response.CodeBadRequest, key: "error.shipping_info_missing"},
	{target: service.ErrProductUnavailable, code: response.CodeBadRequest, key: "error.product_off_sale"},
	{target: service.ErrProductNotFound, code: response.CodeBadRequest, key: "error.product_not_found"},
	{target: service.ErrInvalidParams, code: response.CodeBadRequest, key: "error.bad_request"},
}

var userOrderErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, key: "error.order_not_found"},
	{target: service.ErrOrderTransition, code: response.CodeBadRequest, key: "error.order_transition"},
}

var reviewErrorRules = []mappedHandlerError{
	{target: service.ErrProductNotFound, code: response.CodeNotFound, key: "error.product_not_found"},
	{target: service.ErrInvalidRating, code: response.CodeBadRequest, key: "error.rating_invalid"},
	{target: service.ErrReviewExists, code: response.CodeBadRequest, key: "error.review_exists"},
	{target: service.ErrReviewNotAllowed, code: response.CodeForbidden, key: "error.review_not_allowed"},
	{target: service.ErrInvalidParams, code: response.CodeBadRequest, key: "error.bad_request"},
}

func respondAuthError(c *gin.Context, err error) {
	if respondPasswordPolicyError(c, err) {
		return
	}
	respondWithMappedError(c, err, authCommonErrorRules, response.CodeInternal, "error.internal")
}

// respondPasswordPolicyError 将密码策略错误译为具体提示，命中时返回 true。
func respondPasswordPolicyError(c *gin.Context, err error) bool {
	if !errors.Is(err, service.ErrWeakPassword) {
		return false
	}
	locale := i18n.ResolveLocale(c)
	if perr, ok := err.(interface {
		Key() string
		Args() []interface{}
	}); ok {
		msg := i18n.Sprintf(locale, perr.Key(), perr.Args()...)
		respondErrorWithMsg(c, response.CodeBadRequest, msg, nil)
		return true
	}
	respondError(c, response.CodeBadRequest, "error.weak_password", nil)
	return true
}

func respondCaptchaError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCaptchaRequired):
		respondError(c, response.CodeBadRequest, "error.captcha_required", nil)
	case errors.Is(err, service.ErrCaptchaInvalid):
		respondError(c, response.CodeBadRequest, "error.captcha_invalid", nil)
	default:
		respondError(c, response.CodeInternal, "error.internal", err)
	}
}

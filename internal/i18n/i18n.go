package i18n

import (
	"fmt"
	"strings"

	"github.com/laptopstore-next/internal/constants"

	"github.com/gin-gonic/gin"
)

// 站点语言常量
const (
	LocaleVI = constants.LocaleVi
	LocaleEN = constants.LocaleEn
)

// DefaultLocale 默认站点语言
const DefaultLocale = LocaleVI

// T 按语言取文案，缺失时回退默认语言，再缺失时返回 key
func T(locale, key string) string {
	if messages, ok := catalog[normalizeLocale(locale)]; ok {
		if message, ok := messages[key]; ok {
			return message
		}
	}
	if messages, ok := catalog[DefaultLocale]; ok {
		if message, ok := messages[key]; ok {
			return message
		}
	}
	return key
}

// Sprintf 按语言取文案并格式化参数
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}

// ResolveLocale 从请求解析站点语言（query lang 优先，其次 Accept-Language）
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return DefaultLocale
	}
	if lang := strings.TrimSpace(c.Query("lang")); lang != "" {
		if normalized := matchLocale(lang); normalized != "" {
			return normalized
		}
	}
	header := c.GetHeader("Accept-Language")
	for _, part := range strings.Split(header, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if normalized := matchLocale(tag); normalized != "" {
			return normalized
		}
	}
	return DefaultLocale
}

func normalizeLocale(locale string) string {
	if matched := matchLocale(locale); matched != "" {
		return matched
	}
	return DefaultLocale
}

func matchLocale(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		return ""
	}
	for _, supported := range constants.SupportedLocales {
		if tag == supported || strings.HasPrefix(tag, supported+"-") {
			return supported
		}
	}
	return ""
}

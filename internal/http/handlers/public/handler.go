package public

import "github.com/laptopstore-next/internal/provider"

// Handler 店面/用户侧接口处理器入口
// 说明：该处理器仅用于店面、游客、用户侧 API。
type Handler struct {
	*provider.Container
}

// New 创建店面处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}

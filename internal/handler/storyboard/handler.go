package storyboard

import (
	"historia/internal/service"
)

// Handler 分镜处理器
type Handler struct {
	storyboardService service.StoryboardService
}

// NewHandler 创建分镜处理器
func NewHandler(storyboardService service.StoryboardService) *Handler {
	return &Handler{storyboardService: storyboardService}
}

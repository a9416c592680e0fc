package narrative

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	httputil "historia/internal/pkg/http"
	sessionrepo "historia/internal/repository/session"
	"historia/internal/service"
)

// ErrorResponse 错误响应类型别名（使用共用的 http.ErrorResponse）
type ErrorResponse = httputil.ErrorResponse

// Handler 历史叙事处理器
type Handler struct {
	narrativeService service.NarrativeService
}

// NewHandler 创建历史叙事处理器
func NewHandler(narrativeService service.NarrativeService) *Handler {
	return &Handler{narrativeService: narrativeService}
}

// respondError 按错误分类输出统一错误响应
func respondError(c *gin.Context, err error) {
	if errors.Is(err, sessionrepo.ErrNotFound) {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Code:    httputil.CodeNotFound,
			Message: "session not found",
		})
		return
	}

	status, resp := httputil.FromError(err)
	c.JSON(status, resp)
}

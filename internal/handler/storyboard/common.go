package storyboard

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	httputil "historia/internal/pkg/http"
	sessionrepo "historia/internal/repository/session"
)

// ErrorResponse 错误响应类型别名（使用共用的 http.ErrorResponse）
type ErrorResponse = httputil.ErrorResponse

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

// streamNDJSON 以 NDJSON 形式流式输出事件
// 每个事件一行 JSON，写出后立即 flush，客户端按行消费
func streamNDJSON[T any](c *gin.Context, events <-chan T) {
	c.Header("Content-Type", "application/x-ndjson; charset=utf-8")
	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")

	c.Stream(func(w io.Writer) bool {
		ev, ok := <-events
		if !ok {
			return false
		}

		enc := json.NewEncoder(w)
		if err := enc.Encode(ev); err != nil {
			return false
		}
		return true
	})
}

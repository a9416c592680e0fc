package enhance

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	httputil "historia/internal/pkg/http"
)

// FormatRequest 语音稿格式化请求
type FormatRequest struct {
	Script string `json:"script" binding:"required"` // 待格式化的解说词
}

// Format 把解说词重排版为语音稿（原始文本流）
// @Summary      语音稿格式化
// @Description  流式输出重排版后的解说词（text/plain，只调整断行与分段，逐词保留）。流结束即完成，无结构化结尾事件；词级校验结果记录在会话上。
// @Tags         增强
// @Accept       json
// @Produce      plain
// @Param        id       path      string         true  "会话ID"
// @Param        request  body      FormatRequest  true  "格式化请求"
// @Success      200      {string}  string  "重排版后的解说词"
// @Failure      400      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Router       /api/v1/sessions/{id}/enhance/format [post]
func (h *Handler) Format(c *gin.Context) {
	var req FormatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    httputil.CodeInvalidRequest,
			Message: "invalid request body",
			Detail:  err.Error(),
		})
		return
	}

	chunks, err := h.enhanceService.FormatForTTS(c.Request.Context(), c.Param("id"), req.Script)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Type", "text/plain; charset=utf-8")
	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")

	c.Stream(func(w io.Writer) bool {
		chunk, ok := <-chunks
		if !ok {
			return false
		}
		// 流中途失败只能截断输出，错误已记录在会话上
		if chunk.Err != nil || chunk.Done {
			return false
		}

		if _, err := io.WriteString(w, chunk.Content); err != nil {
			return false
		}
		return true
	})
}

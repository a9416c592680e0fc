package storyboard

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httputil "historia/internal/pkg/http"
)

// RetryFailedResponseData 批量重试响应数据
type RetryFailedResponseData struct {
	Retried int `json:"retried"` // 实际重试的场景数
	Scenes  any `json:"scenes"`  // 重试后的场景状态列表
}

// RetryFailed 串行重试全部失败场景
// @Summary      重试失败场景
// @Description  对所有 error 状态的场景逐个发起一次重生成（串行，控制并发压力）
// @Tags         分镜
// @Produce      json
// @Param        id  path      string  true  "会话ID"
// @Success      200  {object}  httputil.SuccessResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/v1/sessions/{id}/storyboard/retry-failed [post]
func (h *Handler) RetryFailed(c *gin.Context) {
	scenes, err := h.storyboardService.RetryFailedScenes(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, httputil.NewSuccessResponse("retry completed", RetryFailedResponseData{
		Retried: len(scenes),
		Scenes:  scenes,
	}))
}

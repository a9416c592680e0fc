package storyboard

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httputil "historia/internal/pkg/http"
)

// BreakdownRequest 场景拆解请求
type BreakdownRequest struct {
	Script string `json:"script" binding:"required"` // 完整解说词（至少 50 字符）
}

// Breakdown 把解说词拆解为视觉场景（NDJSON 流）
// @Summary      场景拆解
// @Description  流式拆解解说词为场景列表。响应为 NDJSON 事件流：progress 事件携带累积文本，complete 事件携带场景数组与汇总，error 事件携带失败原因。
// @Tags         分镜
// @Accept       json
// @Produce      application/x-ndjson
// @Param        id       path      string            true  "会话ID"
// @Param        request  body      BreakdownRequest  true  "拆解请求"
// @Success      200      {object}  streamagg.Event
// @Failure      400      {object}  ErrorResponse  "脚本过短"
// @Failure      404      {object}  ErrorResponse  "会话不存在"
// @Router       /api/v1/sessions/{id}/breakdown [post]
func (h *Handler) Breakdown(c *gin.Context) {
	var req BreakdownRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    httputil.CodeInvalidRequest,
			Message: "invalid request body",
			Detail:  err.Error(),
		})
		return
	}

	events, err := h.storyboardService.Breakdown(c.Request.Context(), c.Param("id"), req.Script)
	if err != nil {
		respondError(c, err)
		return
	}

	streamNDJSON(c, events)
}

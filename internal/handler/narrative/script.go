package narrative

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httputil "historia/internal/pkg/http"
)

// ScriptRequest 最终解说词生成请求
type ScriptRequest struct {
	TargetDuration int `json:"target_duration" binding:"required"` // 目标视频时长（分钟）
}

// Script 生成最终解说词
// @Summary      生成最终解说词
// @Description  基于研究与大纲生成完整解说词。token 预算随目标时长收敛在 [2048, 16000]，词数报告但不强制。
// @Tags         叙事
// @Accept       json
// @Produce      json
// @Param        id       path      string         true  "会话ID"
// @Param        request  body      ScriptRequest  true  "生成请求"
// @Success      200      {object}  httputil.SuccessResponse
// @Failure      400      {object}  ErrorResponse  "缺少研究或大纲"
// @Failure      404      {object}  ErrorResponse
// @Failure      502      {object}  ErrorResponse
// @Router       /api/v1/sessions/{id}/narrative/script [post]
func (h *Handler) Script(c *gin.Context) {
	var req ScriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    httputil.CodeInvalidRequest,
			Message: "invalid request body",
			Detail:  err.Error(),
		})
		return
	}

	script, err := h.narrativeService.GenerateScript(c.Request.Context(), c.Param("id"), req.TargetDuration)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, httputil.NewSuccessResponse("script generated", script))
}

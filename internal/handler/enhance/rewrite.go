package enhance

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"historia/internal/model/storyboard"
	httputil "historia/internal/pkg/http"
)

// RewriteRequest 重写请求
type RewriteRequest struct {
	Script   string                     `json:"script" binding:"required"` // 原始解说词
	Analysis *storyboard.ScriptAnalysis `json:"analysis"`                  // 分析结果（可选，缺省使用会话里最近一次分析）
}

// Rewrite 按分析反馈重写解说词
// @Summary      解说词重写
// @Description  按质量分析反馈重写解说词，长度目标为原文 ±15%（提示词软约束）。旧版本进入 improvement_history。
// @Tags         增强
// @Accept       json
// @Produce      json
// @Param        id       path      string          true  "会话ID"
// @Param        request  body      RewriteRequest  true  "重写请求"
// @Success      200      {object}  httputil.SuccessResponse
// @Failure      400      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Failure      502      {object}  ErrorResponse
// @Router       /api/v1/sessions/{id}/enhance/rewrite [post]
func (h *Handler) Rewrite(c *gin.Context) {
	var req RewriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    httputil.CodeInvalidRequest,
			Message: "invalid request body",
			Detail:  err.Error(),
		})
		return
	}

	script, err := h.enhanceService.RewriteScript(c.Request.Context(), c.Param("id"), req.Script, req.Analysis)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, httputil.NewSuccessResponse("script rewritten", script))
}

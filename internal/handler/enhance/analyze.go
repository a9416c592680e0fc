package enhance

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httputil "historia/internal/pkg/http"
)

// AnalyzeRequest 质量分析请求
type AnalyzeRequest struct {
	Script string `json:"script" binding:"required"` // 待分析的解说词（至少 50 字符）
}

// Analyze 分析解说词质量
// @Summary      解说词质量分析
// @Description  从历史准确性、开场吸引力、留存策略三个维度打分（0-100），并给出哲学家视角洞察与改进建议
// @Tags         增强
// @Accept       json
// @Produce      json
// @Param        id       path      string          true  "会话ID"
// @Param        request  body      AnalyzeRequest  true  "分析请求"
// @Success      200      {object}  httputil.SuccessResponse
// @Failure      400      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Failure      502      {object}  ErrorResponse  "模型调用或解析失败"
// @Router       /api/v1/sessions/{id}/enhance/analyze [post]
func (h *Handler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    httputil.CodeInvalidRequest,
			Message: "invalid request body",
			Detail:  err.Error(),
		})
		return
	}

	analysis, err := h.enhanceService.AnalyzeScript(c.Request.Context(), c.Param("id"), req.Script)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, httputil.NewSuccessResponse("analysis completed", analysis))
}

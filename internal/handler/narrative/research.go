package narrative

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"historia/internal/model/storyboard"
	httputil "historia/internal/pkg/http"
	"historia/internal/service"
)

// ResearchRequest 历史研究请求
type ResearchRequest struct {
	Title       string `json:"title" binding:"required"`        // 历史主题
	Era         string `json:"era" binding:"required"`          // 时代
	ContentType string `json:"content_type" binding:"required"` // 内容类型
}

// Research 执行历史研究
// @Summary      历史研究
// @Description  两段式研究：先开放式检索原始材料，再结构化为时间线、人物、感官细节等固定结构。结果可选缓存。
// @Tags         叙事
// @Accept       json
// @Produce      json
// @Param        id       path      string           true  "会话ID"
// @Param        request  body      ResearchRequest  true  "研究请求"
// @Success      200      {object}  httputil.SuccessResponse
// @Failure      400      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Failure      502      {object}  ErrorResponse  "研究服务失败"
// @Router       /api/v1/sessions/{id}/narrative/research [post]
func (h *Handler) Research(c *gin.Context) {
	var req ResearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    httputil.CodeInvalidRequest,
			Message: "invalid request body",
			Detail:  err.Error(),
		})
		return
	}

	result, err := h.narrativeService.Research(c.Request.Context(), c.Param("id"), &service.ResearchInput{
		Title:       req.Title,
		Era:         storyboard.HistoricalEra(req.Era),
		ContentType: storyboard.ContentType(req.ContentType),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, httputil.NewSuccessResponse("research completed", result))
}

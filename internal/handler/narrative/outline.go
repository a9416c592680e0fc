package narrative

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"historia/internal/model/storyboard"
	httputil "historia/internal/pkg/http"
)

// OutlineRequest 叙事大纲请求
type OutlineRequest struct {
	Tone string `json:"tone" binding:"required"` // 叙事基调
}

// Outline 生成三幕结构大纲
// @Summary      叙事大纲
// @Description  基于会话中的研究结果生成三幕结构（铺垫/冲突/收束），每幕带场景列表、目标与情绪曲线
// @Tags         叙事
// @Accept       json
// @Produce      json
// @Param        id       path      string          true  "会话ID"
// @Param        request  body      OutlineRequest  true  "大纲请求"
// @Success      200      {object}  httputil.SuccessResponse
// @Failure      400      {object}  ErrorResponse  "缺少研究结果"
// @Failure      404      {object}  ErrorResponse
// @Failure      502      {object}  ErrorResponse
// @Router       /api/v1/sessions/{id}/narrative/outline [post]
func (h *Handler) Outline(c *gin.Context) {
	var req OutlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    httputil.CodeInvalidRequest,
			Message: "invalid request body",
			Detail:  err.Error(),
		})
		return
	}

	outline, err := h.narrativeService.Outline(c.Request.Context(), c.Param("id"), storyboard.NarrativeTone(req.Tone))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, httputil.NewSuccessResponse("outline completed", outline))
}

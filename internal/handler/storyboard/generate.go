package storyboard

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httputil "historia/internal/pkg/http"
)

// GenerateRequest 分镜图片生成请求
type GenerateRequest struct {
	Cap int `json:"cap"` // 图片池上限（可选，默认取配置的 max_pooled_images）
}

// Generate 生成分镜图片池并分配（NDJSON 流）
// @Summary      生成分镜图片
// @Description  按成本上限并发生成图片池，完成后洗牌分配给全部场景。响应为 NDJSON 的场景状态更新流，最后一条更新 done=true。
// @Tags         分镜
// @Accept       json
// @Produce      application/x-ndjson
// @Param        id       path      string           true   "会话ID"
// @Param        request  body      GenerateRequest  false  "生成参数"
// @Success      200      {object}  service.SceneUpdate
// @Failure      400      {object}  ErrorResponse  "会话无场景"
// @Failure      404      {object}  ErrorResponse  "会话不存在"
// @Router       /api/v1/sessions/{id}/storyboard [post]
func (h *Handler) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    httputil.CodeInvalidRequest,
			Message: "invalid request body",
			Detail:  err.Error(),
		})
		return
	}

	updates, err := h.storyboardService.GenerateStoryboard(c.Request.Context(), c.Param("id"), req.Cap)
	if err != nil {
		respondError(c, err)
		return
	}

	streamNDJSON(c, updates)
}

package storyboard

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	httputil "historia/internal/pkg/http"
)

// RegenerateRequest 单场景重生成请求
type RegenerateRequest struct {
	Prompt string `json:"prompt"` // 新的视觉提示词（可选，缺省沿用原 prompt）
}

// Regenerate 重新生成单个场景的图片
// @Summary      重新生成场景图片
// @Description  对指定场景发起一次图片重生成。失败时保留原有图片，只更新错误状态。
// @Tags         分镜
// @Accept       json
// @Produce      json
// @Param        id            path      string             true   "会话ID"
// @Param        scene_number  path      int                true   "场景编号"
// @Param        request       body      RegenerateRequest  false  "重生成参数"
// @Success      200           {object}  httputil.SuccessResponse
// @Failure      400           {object}  ErrorResponse
// @Failure      404           {object}  ErrorResponse
// @Failure      502           {object}  ErrorResponse  "图片服务失败"
// @Router       /api/v1/sessions/{id}/storyboard/scenes/{scene_number}/regenerate [post]
func (h *Handler) Regenerate(c *gin.Context) {
	sceneNumber, err := strconv.Atoi(c.Param("scene_number"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    httputil.CodeInvalidRequest,
			Message: "invalid scene_number",
			Detail:  err.Error(),
		})
		return
	}

	var req RegenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    httputil.CodeInvalidRequest,
			Message: "invalid request body",
			Detail:  err.Error(),
		})
		return
	}

	scene, err := h.storyboardService.RegenerateScene(c.Request.Context(), c.Param("id"), sceneNumber, req.Prompt)
	if err != nil {
		// 场景状态已落库，失败响应里仍带回最新状态
		if scene != nil {
			status, resp := httputil.FromError(err)
			resp.Detail = scene.ErrorMessage
			c.JSON(status, resp)
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, httputil.NewSuccessResponse("scene regenerated", scene))
}

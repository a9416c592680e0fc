package session

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	httputil "historia/internal/pkg/http"
	sessionrepo "historia/internal/repository/session"
)

// ErrorResponse 错误响应类型别名（使用共用的 http.ErrorResponse）
type ErrorResponse = httputil.ErrorResponse

// Handler 会话处理器
type Handler struct {
	repo sessionrepo.SessionRepository
}

// NewHandler 创建会话处理器
func NewHandler(repo sessionrepo.SessionRepository) *Handler {
	return &Handler{repo: repo}
}

// Create 创建会话
// @Summary      创建创作会话
// @Description  创建一个新的内存会话，后续所有流水线操作都挂在该会话下
// @Tags         会话
// @Produce      json
// @Success      200  {object}  httputil.SuccessResponse
// @Router       /api/v1/sessions [post]
func (h *Handler) Create(c *gin.Context) {
	sess, err := h.repo.Create(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    httputil.CodeInternal,
			Message: "failed to create session",
			Detail:  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, httputil.NewSuccessResponse("session created", sess))
}

// Get 查询会话
// @Summary      查询会话状态
// @Tags         会话
// @Produce      json
// @Param        id  path      string  true  "会话ID"
// @Success      200  {object}  httputil.SuccessResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/v1/sessions/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	sess, err := h.repo.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, sessionrepo.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Code:    httputil.CodeNotFound,
				Message: "session not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    httputil.CodeInternal,
			Message: "failed to load session",
			Detail:  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, httputil.NewSuccessResponse("ok", sess))
}

// Reset 重置会话
// @Summary      重置会话
// @Description  清空会话的全部流水线产物，会话本身保留
// @Tags         会话
// @Produce      json
// @Param        id  path      string  true  "会话ID"
// @Success      200  {object}  httputil.SuccessResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/v1/sessions/{id}/reset [post]
func (h *Handler) Reset(c *gin.Context) {
	if err := h.repo.Reset(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, sessionrepo.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Code:    httputil.CodeNotFound,
				Message: "session not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    httputil.CodeInternal,
			Message: "failed to reset session",
			Detail:  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, httputil.NewSuccessResponse("session reset", nil))
}

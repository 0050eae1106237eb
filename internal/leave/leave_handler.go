package leave

import (
	"net/http"
	"strconv"

	leaveerrors "github.com/Falasefemi2/hr-portal/internal/leave/errors"
	"github.com/Falasefemi2/hr-portal/internal/shared/apperror"
	"github.com/Falasefemi2/hr-portal/internal/shared/contextutil"
	"github.com/Falasefemi2/hr-portal/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("leave.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("leave request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) writeBindError(c *gin.Context, err error) {
	h.logger.Warn("leave validation failed", zap.Error(err))
	h.writeServiceError(c, apperror.MapValidationError(err))
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (h *Handler) writeList(c *gin.Context, resp []LeaveResponse) {
	page, pageSize := response.ParsePage(c)

	start, end := response.Window(len(resp), page, pageSize)
	meta := response.NewPaginationMeta(int64(len(resp)), page, pageSize)
	response.Success(c, http.StatusOK, resp[start:end], &meta)
}

func (h *Handler) ListAll(c *gin.Context) {
	ctx := c.Request.Context()
	resp, err := h.service.ListAll(ctx, contextutil.GetPrincipal(ctx))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	h.writeList(c, resp)
}

func (h *Handler) ListMine(c *gin.Context) {
	ctx := c.Request.Context()
	resp, err := h.service.ListMine(ctx, contextutil.GetPrincipal(ctx))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	h.writeList(c, resp)
}

func (h *Handler) ListPending(c *gin.Context) {
	ctx := c.Request.Context()
	resp, err := h.service.ListPendingForHOD(ctx, contextutil.GetPrincipal(ctx))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	h.writeList(c, resp)
}

func (h *Handler) GetById(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok := parseID(c)
	if !ok {
		h.writeServiceError(c, leaveerrors.ErrInvalidLeaveRequestID)
		return
	}

	resp, err := h.service.GetByID(ctx, contextutil.GetPrincipal(ctx), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req CreateLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}

	resp, err := h.service.Create(ctx, contextutil.GetPrincipal(ctx), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) ApproveOrReject(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok := parseID(c)
	if !ok {
		h.writeServiceError(c, leaveerrors.ErrInvalidLeaveRequestID)
		return
	}

	var req DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}

	resp, err := h.service.ApproveOrReject(ctx, contextutil.GetPrincipal(ctx), id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

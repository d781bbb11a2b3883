package web

import (
	"errors"
	"net/http"

	"gitee.com/flycash/vendor-dispatch/internal/domain"
	"gitee.com/flycash/vendor-dispatch/internal/errs"
	"gitee.com/flycash/vendor-dispatch/internal/service/dispatcher"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/core/elog"
)

type Handler struct {
	svc    dispatcher.Service
	logger *elog.Component
}

func NewHandler(svc dispatcher.Service) *Handler {
	return &Handler{
		svc:    svc,
		logger: elog.DefaultLogger,
	}
}

func (h *Handler) PublicRoutes(server *gin.Engine, middlewares ...gin.HandlerFunc) {
	g := server.Group("/channels", middlewares...)
	g.POST("/:key/:op", h.Dispatch)
}

// Dispatch 供应商结果一律以 200 返回，只有渠道或操作错误才返回 4xx
func (h *Handler) Dispatch(ctx *gin.Context) {
	key, err := domain.ParseChannelKey(ctx.Param("key"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResp{Msg: err.Error()})
		return
	}
	op := domain.Operation(ctx.Param("op"))
	if !op.IsValid() {
		ctx.JSON(http.StatusBadRequest, ErrorResp{Msg: "未知操作 " + string(op)})
		return
	}

	var req DispatchReq
	if err = ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResp{Msg: err.Error()})
		return
	}

	msg, err := h.svc.Dispatch(ctx.Request.Context(), key, op, req.Request, req.overrides()...)
	if err != nil {
		ctx.JSON(statusOf(err), ErrorResp{Msg: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, msg)
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrChannelNotRegistered):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidParameter):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

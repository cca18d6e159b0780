package router

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"miwalavie-store/internal/service"
	resp "miwalavie-store/internal/transport/http/response"
)

/* ================== 轻封装：分组 + 统一出参 ================== */

type EZ struct{ g *gin.RouterGroup }

func New(g *gin.RouterGroup) EZ { return EZ{g: g} }

func (e EZ) GET(path string, h func(c *gin.Context) (any, error)) {
	e.g.GET(path, func(c *gin.Context) {
		data, err := h(c)
		if err != nil {
			c.JSON(http.StatusOK, FromErr(err))
			return
		}
		c.JSON(http.StatusOK, resp.OK(data))
	})
}

// 绑定方式
type Binder string

const (
	BindJSON  Binder = "json"
	BindForm  Binder = "form" // 店面端表单提交
	BindQuery Binder = "query"
	BindNone  Binder = "none" // 自己从 c.Param / c.PostForm 取
)

// 统一错误对象
type AErr struct {
	Code int
	Msg  string
	Err  error
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "action error"
}

func BadRequest(msg string) error   { return &AErr{Code: 400, Msg: msg} }
func Unauthorized(msg string) error { return &AErr{Code: 401, Msg: msg} }
func NotFound(msg string) error     { return &AErr{Code: 404, Msg: msg} }
func Internal(msg string, err error) error {
	return &AErr{Code: 500, Msg: msg, Err: err}
}

// FromErr 业务错误 → 响应映射。软性授权失败不走 403，
// 而是带提示跳回商品页（和原店面 flash + redirect 同语义）
func FromErr(err error) resp.Resp {
	var ae *AErr
	if errors.As(err, &ae) {
		return resp.Error(ae.Code, ae.Error())
	}
	var ve *service.ValidationError
	if errors.As(err, &ve) {
		return resp.Error(resp.CodeBadRequest, ve.Msg)
	}
	var aue *service.AuthorizationError
	if errors.As(err, &aue) {
		if aue.Soft {
			return resp.Redirect(resp.CodeForbidden, aue.Msg, "/products")
		}
		return resp.Error(resp.CodeForbidden, aue.Msg)
	}
	var nfe *service.NotFoundError
	if errors.As(err, &nfe) {
		return resp.Redirect(resp.CodeNotFound, nfe.Msg, "/products")
	}
	var pe *service.PersistenceError
	if errors.As(err, &pe) {
		// 原因不外露
		return resp.Error(resp.CodeServerError, "Something went wrong. Please try again.")
	}
	return resp.Error(resp.CodeServerError, err.Error())
}

// 动作定义：I 入参，O 出参
type Action[I any, O any] struct {
	Method  string
	Path    string
	Binder  Binder
	Msg     string // 成功时给用户看的提示（可空）
	Handler func(c *gin.Context, in *I) (O, error)
}

func RegisterAction[I any, O any](e EZ, a Action[I, O]) {
	h := func(c *gin.Context) {
		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			bindErr = c.ShouldBindJSON(&in)
		case BindForm:
			bindErr = c.ShouldBind(&in)
		case BindQuery:
			bindErr = c.ShouldBindQuery(&in)
		default: // BindNone
		}
		if bindErr != nil {
			c.JSON(http.StatusOK, resp.Error(resp.CodeBadRequest, bindErr.Error()))
			return
		}

		out, err := a.Handler(c, &in)
		if err != nil {
			c.JSON(http.StatusOK, FromErr(err))
			return
		}
		if a.Msg != "" {
			c.JSON(http.StatusOK, resp.OKMsg(a.Msg, out))
			return
		}
		c.JSON(http.StatusOK, resp.OK(out))
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		e.g.GET(a.Path, h)
	case http.MethodPut:
		e.g.PUT(a.Path, h)
	case http.MethodDelete:
		e.g.DELETE(a.Path, h)
	default:
		e.g.POST(a.Path, h)
	}
}

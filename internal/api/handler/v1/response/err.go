package response

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Err struct {
	StatusCode int    `json:"-"`
	ErrorMsg   string `json:"error"`
}

func (e *Err) Error() string {
	return e.ErrorMsg
}

// RenderErr writes the error response and logs server-side failures with
// the request id for correlation.
func RenderErr(ctx *gin.Context, err *Err) {
	if err.StatusCode >= http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("request_id", requestid.Get(ctx)),
			zap.String("path", ctx.FullPath()),
			zap.Int("status", err.StatusCode),
			zap.String("error", err.ErrorMsg),
		)
	}

	ctx.AbortWithStatusJSON(err.StatusCode, err)
}

func ErrBadRequest(err error) *Err {
	return &Err{
		StatusCode: http.StatusBadRequest,
		ErrorMsg:   err.Error(),
	}
}

func ErrUnauthorized(err error) *Err {
	return &Err{
		StatusCode: http.StatusUnauthorized,
		ErrorMsg:   err.Error(),
	}
}

func ErrWrongCredentials(err error) *Err {
	return &Err{
		StatusCode: http.StatusUnauthorized,
		ErrorMsg:   err.Error(),
	}
}

func ErrPermissionDenied(err error) *Err {
	return &Err{
		StatusCode: http.StatusForbidden,
		ErrorMsg:   err.Error(),
	}
}

func ErrNotFound(resource, key string, value interface{}) *Err {
	return &Err{
		StatusCode: http.StatusNotFound,
		ErrorMsg:   fmt.Sprintf("%v not found (%v = %v)", resource, key, value),
	}
}

func ErrConflict(err error) *Err {
	return &Err{
		StatusCode: http.StatusConflict,
		ErrorMsg:   err.Error(),
	}
}

// ErrInternalServerError hides the failure detail unless gin is running in
// debug mode.
func ErrInternalServerError(err error) *Err {
	msg := "something went wrong"
	if gin.Mode() == gin.DebugMode {
		msg = err.Error()
	}

	return &Err{
		StatusCode: http.StatusInternalServerError,
		ErrorMsg:   msg,
	}
}

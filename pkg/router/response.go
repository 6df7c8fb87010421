package router

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/questx-lab/questboard/pkg/errorx"
)

type response struct {
	Code  int64  `json:"code"`
	Error string `json:"error,omitempty"`
	Data  any    `json:"data,omitempty"`
}

func newResponse(data any) response {
	return response{
		Code: 0,
		Data: data,
	}
}

func newErrorResponse(err error) response {
	errx := errorx.Error{}
	if errors.As(err, &errx) {
		return response{
			Code:  int64(errx.Code),
			Error: errx.Message,
		}
	}

	return response{
		Code:  int64(errorx.Unknown.Code),
		Error: errorx.Unknown.Message,
	}
}

// WriteError renders err in the response envelope and records it for the request logger.
func WriteError(c *gin.Context, status int, err error) {
	_ = c.Error(err)
	c.JSON(status, newErrorResponse(err))
}

package middleware

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/questx-lab/questboard/pkg/errorx"
	"github.com/questx-lab/questboard/pkg/xcontext"
)

// Logger logs every request once it is served, with the error code if it failed.
func Logger(ctx context.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		info := fmt.Sprintf("%s | %s | %d | %s",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))

		if err := c.Errors.Last(); err != nil {
			var errx errorx.Error
			if errors.As(err.Err, &errx) {
				xcontext.Logger(ctx).Warnf("%s | %d", info, errx.Code)
			} else {
				xcontext.Logger(ctx).Errorf("%s | %d", info, -1)
			}
			return
		}

		xcontext.Logger(ctx).Infof("%s", info)
	}
}

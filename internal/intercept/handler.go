package intercept

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const handlerBoundary = "ProductHandler"

// Handler is gin middleware that wraps the route handlers behind it with the
// interceptor logger. Errors the handlers push onto c.Errors are logged at error
// level and left there for the failure translator.
func Handler(logger *zap.Logger) gin.HandlerFunc {
	i := newInterceptor(logger)

	return func(c *gin.Context) {
		_, _ = call(c.Request.Context(), i, handlerBoundary, operationName(c.HandlerName()),
			successStatus,
			func(ctx context.Context) (int, error) {
				c.Request = c.Request.WithContext(ctx)
				c.Next()
				if err := c.Errors.Last(); err != nil {
					return c.Writer.Status(), err.Err
				}
				return c.Writer.Status(), nil
			},
			zap.String("method", c.Request.Method),
			zap.String("route", c.FullPath()))
	}
}

func successStatus(status int) (bool, string) {
	return status >= http.StatusOK && status < http.StatusMultipleChoices, "status " + strconv.Itoa(status)
}

// operationName turns "pkg/handler.(*ProductHandler).CreateProduct-fm" into "CreateProduct".
func operationName(handlerName string) string {
	name := strings.TrimSuffix(handlerName, "-fm")
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		name = name[idx+1:]
	}
	return name
}

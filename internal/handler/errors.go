package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cloud-wave-best-zizon/product-inventory/internal/domain"
)

// ErrorTranslator turns panics and errors left on c.Errors into the uniform 500
// envelope. It must be installed before every other middleware.
func ErrorTranslator(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				translate(c, logger, domain.FailurePanic, fmt.Sprint(r))
			}
		}()

		c.Next()

		if last := c.Errors.Last(); last != nil {
			translate(c, logger, domain.ClassifyFailure(last.Err), last.Error())
		}
	}
}

func translate(c *gin.Context, logger *zap.Logger, kind domain.FailureKind, message string) {
	logger.Error("Request failed",
		zap.String("kind", string(kind)),
		zap.String("message", message),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path))

	if c.Writer.Written() {
		return
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, domain.ProductEnvelope(domain.MessageInternalError))
}

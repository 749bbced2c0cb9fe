package middleware

import (
	"net/http"
	"time"

	"github.com/joshuakessell/club-ops-deploy-sub001/src/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RequestLogger logs every local API request with its latency and status.
func RequestLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
		}).Debug("Handled request")
	}
}

// DisplayAuthRequiredMiddleware gates the local API behind the static
// display token, so only the paired render process on this box can read
// state or submit actions.
func DisplayAuthRequiredMiddleware(displayToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("X-Display-Token")
		if token == "" {
			utils.SendError(c, http.StatusUnauthorized, "Unauthorized", "Display token missing", "https://checkin-kiosk.local/validation-error", c.FullPath())
			c.Abort()
			return
		}
		if token != displayToken {
			utils.SendError(c, http.StatusUnauthorized, "Unauthorized", "Invalid display token", "https://checkin-kiosk.local/validation-error", c.FullPath())
			c.Abort()
			return
		}
		c.Next()
	}
}

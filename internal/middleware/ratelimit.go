package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"tourtrack/internal/metrics"
	"tourtrack/internal/redis"
)

// RateLimitMiddleware allows each caller at most limit requests per minute on
// the route it guards. It fails open when the limiter is unavailable.
func RateLimitMiddleware(limiter redis.RateLimiterInterface, limit int, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil || limit <= 0 {
			c.Next()
			return
		}

		subject := c.ClientIP()
		if identity := IdentityFrom(c); identity != nil {
			subject = fmt.Sprintf("user:%d", identity.ID)
		}

		allowed, err := limiter.Allow(c.Request.Context(), c.FullPath()+":"+subject, limit, time.Minute)
		if err != nil {
			log.WithError(err).Warn("rate limiter unavailable")
			c.Next()
			return
		}

		if !allowed {
			metrics.RateLimitedTotal.WithLabelValues(c.FullPath()).Inc()
			c.Header("Retry-After", "60")
			abortWithMessage(c, http.StatusTooManyRequests, "too many requests")
			return
		}

		c.Next()
	}
}

package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"tourtrack/internal/redis"
)

const idempotencyHeader = "Idempotency-Key"

// responseWriter wraps gin.ResponseWriter to capture the response.
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// IdempotencyMiddleware replays the stored response when a caller repeats a
// mutating request with the same Idempotency-Key. Keys are scoped per caller,
// so it must run after AuthMiddleware. A key reused for a different method,
// path or body is rejected with 422. Cache failures fall through to the
// handler.
func IdempotencyMiddleware(cache redis.ResponseCacheInterface, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost && c.Request.Method != http.MethodPut && c.Request.Method != http.MethodPatch {
			c.Next()
			return
		}

		key := c.GetHeader(idempotencyHeader)
		if key == "" || cache == nil {
			c.Next()
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			abortWithMessage(c, http.StatusBadRequest, "invalid request body")
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		subject := "anonymous"
		if identity := IdentityFrom(c); identity != nil {
			subject = fmt.Sprintf("%d", identity.ID)
		}
		cacheKey := subject + ":" + key
		fingerprint := requestFingerprint(c.Request.Method, c.Request.URL.Path, body)

		ctx := c.Request.Context()
		cached, err := cache.Get(ctx, cacheKey)
		if err != nil {
			log.WithError(err).Warn("idempotency lookup failed")
			c.Next()
			return
		}

		if cached != nil {
			if cached.Fingerprint != fingerprint {
				abortWithMessage(c, http.StatusUnprocessableEntity, "Idempotency-Key was already used for a different request")
				return
			}
			c.Header("Idempotent-Replayed", "true")
			c.Data(cached.StatusCode, cached.ContentType, cached.Body)
			c.Abort()
			return
		}

		w := &responseWriter{
			ResponseWriter: c.Writer,
			body:           &bytes.Buffer{},
		}
		c.Writer = w

		c.Next()

		// Server failures are not replayed so the client can retry them.
		status := c.Writer.Status()
		if status >= 200 && status < 500 && status != http.StatusTooManyRequests {
			response := redis.CachedResponse{
				Fingerprint: fingerprint,
				StatusCode:  status,
				ContentType: c.Writer.Header().Get("Content-Type"),
				Body:        w.body.Bytes(),
			}
			if err := cache.Set(ctx, cacheKey, &response, redis.ResponseTTL); err != nil {
				log.WithError(err).Warn("idempotency store failed")
			}
		}
	}
}

// requestFingerprint identifies the request a key was first used for.
func requestFingerprint(method, path string, body []byte) string {
	h := sha256.New()
	h.Write([]byte(method))
	h.Write([]byte{0})
	h.Write([]byte(path))
	h.Write([]byte{0})
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}

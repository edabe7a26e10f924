package middleware

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/guastuci/Gerenciador-de-livraria/internal/infrastructure/ratelimit"
	apperrors "github.com/guastuci/Gerenciador-de-livraria/pkg/errors"
	"github.com/guastuci/Gerenciador-de-livraria/pkg/metrics"
	"github.com/guastuci/Gerenciador-de-livraria/pkg/response"
)

// RateLimit throttles requests per client IP.
// Design notes:
// 1. X-RateLimit-Limit and X-RateLimit-Remaining are set on every response
// 2. A rejected request gets 429 with Retry-After in whole seconds
// 3. When the limiter backend fails the request is let through and the failure logged
func RateLimit(limiter ratelimit.Limiter) gin.HandlerFunc {
	metrics.InitMetrics()
	return func(c *gin.Context) {
		decision, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			zerolog.Ctx(c.Request.Context()).Warn().Err(err).Msg("rate limiter unavailable, allowing request")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))

		if !decision.Allowed {
			seconds := int(math.Ceil(decision.RetryAfter.Seconds()))
			if seconds < 1 {
				seconds = 1
			}
			c.Header("Retry-After", strconv.Itoa(seconds))
			metrics.IncCounter(metrics.HTTPRequestsThrottled)
			response.Error(c, apperrors.ErrTooManyRequests.WithMessage(
				"rate limit exceeded, retry in "+strconv.Itoa(seconds)+"s",
			))
			return
		}
		c.Next()
	}
}

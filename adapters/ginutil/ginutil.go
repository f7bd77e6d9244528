// Package ginutil carries the small shared pieces of the gin adapter:
// error responders, the rate-limiter contract, and the named buckets.
package ginutil

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RateLimiter matches the limiter implementations under ratelimit/.
type RateLimiter interface {
	AllowNamed(bucket, key string) (bool, error)
}

// Named rate-limit buckets, one per endpoint.
const (
	RLAccountGet           = "account_get"
	RLMenuGet              = "menu_get"
	RLProjectsDashboardGet = "projects_dashboard_get"
)

// AllowNamed applies the limiter keyed by client IP. A nil limiter allows
// everything; limiter errors fail open.
func AllowNamed(c *gin.Context, rl RateLimiter, bucket string) bool {
	if rl == nil {
		return true
	}
	ok, err := rl.AllowNamed(bucket, c.ClientIP())
	if err != nil {
		return true
	}
	return ok
}

func BadRequest(c *gin.Context, code string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": code})
}

func Unauthorized(c *gin.Context, code string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": code})
}

func Forbidden(c *gin.Context, code string) {
	c.JSON(http.StatusForbidden, gin.H{"error": code})
}

// PaymentRequired signals a pro-gated surface; clients render the upgrade
// prompt on it.
func PaymentRequired(c *gin.Context, code string) {
	c.JSON(http.StatusPaymentRequired, gin.H{"error": code})
}

func TooMany(c *gin.Context) {
	c.JSON(http.StatusTooManyRequests, gin.H{"error": "rate_limited"})
}

func ServerErr(c *gin.Context, code string) {
	c.JSON(http.StatusInternalServerError, gin.H{"error": code})
}

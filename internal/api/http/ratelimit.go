package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// LoginRateLimiter caps login attempts per client IP over a one minute
// window using a redis counter. Lockout policy beyond this transport
// level throttle is deliberately absent from the auth core. Redis being
// unreachable fails open: login availability wins over throttling.
func LoginRateLimiter(client *redis.Client, attemptsPerMinute int, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if client == nil || attemptsPerMinute <= 0 {
			return c.Next()
		}

		ctx := c.UserContext()
		key := fmt.Sprintf("ratelimit:login:%s", c.IP())

		count, err := client.Incr(ctx, key).Result()
		if err != nil {
			logger.Warn("login rate limiter unavailable", zap.Error(err))
			return c.Next()
		}
		if count == 1 {
			if err := client.Expire(ctx, key, time.Minute).Err(); err != nil {
				logger.Warn("login rate limiter expire failed", zap.Error(err))
			}
		}
		if count > int64(attemptsPerMinute) {
			return fiber.NewError(http.StatusTooManyRequests, "too many login attempts, try again later")
		}
		return c.Next()
	}
}

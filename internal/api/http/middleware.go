package http

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/kirinho/cloud-file/internal/auth"
	"github.com/kirinho/cloud-file/internal/observability"
	"github.com/kirinho/cloud-file/pkg/util"
)

// RegisterMiddlewares attaches global middlewares: request timeout,
// failure translation and request logging.
func RegisterMiddlewares(app *fiber.App, logger *zap.Logger, metrics *observability.Metrics, timeout time.Duration) {
	if timeout > 0 {
		app.Use(requestTimeoutMiddleware(timeout))
	}
	app.Use(failureTranslatorMiddleware(logger, metrics))
	app.Use(observability.RequestLogger(logger, metrics))
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// failureTranslatorMiddleware converts every error into the stable
// {timestamp, message, description} body. Auth failures go through the
// total kind table; explicit fiber errors keep their status; anything
// else is an internal error. Raw error text never reaches the client.
func failureTranslatorMiddleware(logger *zap.Logger, metrics *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = auth.NewFailure(auth.FailureInternal)
			}
			if err == nil {
				return
			}

			description := fmt.Sprintf("%s %s", c.Method(), c.Path())

			var status int
			var body util.ErrorDetails
			var fiberErr *fiber.Error
			switch {
			case isFailure(err):
				status, body = util.Translate(err, description)
			case errors.As(err, &fiberErr):
				status = fiberErr.Code
				body = util.ErrorDetails{
					Timestamp:   time.Now().UTC(),
					Message:     fiberErr.Message,
					Description: description,
				}
			default:
				status, body = util.Translate(err, description)
			}

			metrics.RecordError(c.Path(), c.Method(), string(auth.KindOf(err)))
			if status >= 500 {
				logger.Error("request failed",
					zap.Error(err),
					zap.String("request_id", observability.RequestID(c)),
					zap.String("description", description))
			}

			c.Status(status)
			_ = c.JSON(body)
			err = nil
		}()
		return c.Next()
	}
}

func isFailure(err error) bool {
	var f *auth.Failure
	return errors.As(err, &f)
}

package mcp

import (
	"context"
	"errors"
	"log/slog"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/time/rate"
)

// ErrRateLimited is returned for tool calls rejected by RateLimitMiddleware.
var ErrRateLimited = errors.New("tool call rate limit exceeded")

// LoggingMiddleware returns middleware that logs all incoming method calls.
func LoggingMiddleware() sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			start := time.Now()

			result, err := next(ctx, method, req)

			attrs := []slog.Attr{
				slog.String("method", method),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()),
			}
			if ctr, ok := result.(*sdkmcp.CallToolResult); ok && ctr != nil && ctr.IsError {
				attrs = append(attrs, slog.Bool("tool_error", true))
			}

			if err != nil {
				attrs = append(attrs, slog.String("error", err.Error()))
				slog.LogAttrs(ctx, slog.LevelError, "method call failed", attrs...)
			} else {
				slog.LogAttrs(ctx, slog.LevelInfo, "method call completed", attrs...)
			}

			return result, err
		}
	}
}

// RateLimitMiddleware rejects tools/call requests that exceed limiter.
// Other methods pass through. A nil limiter disables the check.
func RateLimitMiddleware(limiter *rate.Limiter) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			if limiter != nil && method == "tools/call" && !limiter.Allow() {
				slog.WarnContext(ctx, "tool call rejected", slog.String("reason", "rate limited"))
				return nil, ErrRateLimited
			}
			return next(ctx, method, req)
		}
	}
}

// NewToolCallLimiter builds the limiter for RateLimitMiddleware.
// Returns nil (unlimited) when perSecond is not positive.
func NewToolCallLimiter(perSecond float64, burst int) *rate.Limiter {
	if perSecond <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(perSecond), burst)
}

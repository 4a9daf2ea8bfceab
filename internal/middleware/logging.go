package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"connectrpc.com/connect"
	"github.com/felixge/httpsnoop"

	"github.com/mmynk/moneymate/pkg/api"
)

// LoggingInterceptor returns a Connect interceptor that logs every RPC call
// with its procedure, caller, session and outcome. Client errors are
// logged at warn, internal ones at error.
func LoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			resp, err := next(ctx, req)

			attrs := []any{"procedure", req.Spec().Procedure}
			if scoped, ok := req.Any().(api.SessionScoped); ok && scoped.GetSessionID() != "" {
				attrs = append(attrs, "session_id", scoped.GetSessionID())
			}
			userID := GetUserID(ctx)
			attrs = append(attrs, "user_id", userID, "signed_in", userID != "")
			attrs = append(attrs, "duration_ms", time.Since(start).Milliseconds())

			var connectErr *connect.Error
			switch {
			case err == nil:
				slog.InfoContext(ctx, "RPC ok", attrs...)
			case errors.As(err, &connectErr) && connectErr.Code() != connect.CodeInternal:
				attrs = append(attrs, "code", connectErr.Code().String(), "error", connectErr.Message())
				slog.WarnContext(ctx, "RPC rejected", attrs...)
			default:
				attrs = append(attrs, "error", err)
				slog.ErrorContext(ctx, "RPC failed", attrs...)
			}
			return resp, err
		}
	}
}

// LogHTTP logs every plain HTTP request with its status and size.
// Connect procedures are logged again by LoggingInterceptor with their code.
func LogHTTP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m := httpsnoop.CaptureMetrics(next, w, r)

		level := slog.LevelDebug
		switch {
		case m.Code >= http.StatusInternalServerError:
			level = slog.LevelError
		case m.Code >= http.StatusBadRequest:
			level = slog.LevelWarn
		}
		slog.Log(r.Context(), level, "HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", m.Code,
			"bytes", m.Written,
			"duration_ms", m.Duration.Milliseconds(),
		)
	})
}

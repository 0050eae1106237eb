package contextutil

import (
	"context"

	"github.com/Falasefemi2/hr-portal/internal/identity"

	"go.uber.org/zap"
)

// contextKey is private so keys never collide with other packages.
type contextKey string

const (
	principalKey contextKey = "principal"
	loggerKey    contextKey = "logger"
	requestIDKey contextKey = "request_id"
)

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetRequestID returns the id set by the RequestID middleware, or "".
func GetRequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	requestID, _ := ctx.Value(requestIDKey).(string)
	return requestID
}

// WithPrincipal stores the identity resolved for this request together with
// the raw bearer credential needed for downstream identity calls.
func WithPrincipal(ctx context.Context, p identity.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// GetPrincipal returns the request principal. A request that never went
// through authentication yields an unauthenticated principal.
func GetPrincipal(ctx context.Context) identity.Principal {
	if ctx != nil {
		if p, ok := ctx.Value(principalKey).(identity.Principal); ok {
			return p
		}
	}
	return identity.Principal{}
}

func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// GetLogger returns the request-scoped logger, then defaultLogger, then a no-op logger.
func GetLogger(ctx context.Context, defaultLogger *zap.Logger) *zap.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey).(*zap.Logger); ok && l != nil {
			return l
		}
	}

	if defaultLogger != nil {
		return defaultLogger
	}
	return zap.NewNop()
}

type Metadata struct {
	RequestID  string
	EmployeeID string
}

func ExtractMetadata(ctx context.Context) Metadata {
	md := Metadata{RequestID: GetRequestID(ctx)}
	if p := GetPrincipal(ctx); p.Caller != nil {
		md.EmployeeID = p.Caller.EmployeeID
	}
	return md
}

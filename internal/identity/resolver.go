package identity

import (
	"context"

	"go.uber.org/zap"
)

// Resolver turns a raw bearer credential into a Principal, once per request.
type Resolver struct {
	gateway  Gateway
	verifier *TokenVerifier
	logger   *zap.Logger
}

func NewResolver(gateway Gateway, verifier *TokenVerifier, logger ...*zap.Logger) *Resolver {
	l := zap.L().Named("identity.resolver")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("identity.resolver")
	}
	return &Resolver{gateway: gateway, verifier: verifier, logger: l}
}

// Resolve never fails: a missing, invalid or inactive credential produces a
// principal without a caller, which the access gate reports as unauthenticated.
func (r *Resolver) Resolve(ctx context.Context, token string) Principal {
	if token == "" {
		return Principal{}
	}

	if err := r.verifier.Verify(token); err != nil {
		r.logger.Debug("token rejected locally", zap.Error(err))
		return Principal{Token: token}
	}

	caller := r.gateway.Validate(ctx, token)
	if caller == nil || !caller.IsActive {
		return Principal{Token: token}
	}

	return Principal{Caller: caller, Token: token}
}

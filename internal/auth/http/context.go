// Package http provides HTTP middleware and utilities for caller authentication.
package http

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/soulbound/internal/auth/domain"
	"github.com/allisson/soulbound/internal/httputil"
)

// callerKey is a context key type for storing the authenticated caller.
type callerKey struct{}

// WithCaller stores an authenticated caller in the context.
func WithCaller(ctx context.Context, caller *authDomain.Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, caller)
}

// GetCaller retrieves the authenticated caller from the context.
func GetCaller(ctx context.Context) (*authDomain.Caller, bool) {
	caller, ok := ctx.Value(callerKey{}).(*authDomain.Caller)
	return caller, ok && caller != nil
}

// CallerIdentity returns the authenticated caller identity or "" when the request is anonymous.
func CallerIdentity(ctx context.Context) string {
	caller, ok := GetCaller(ctx)
	if !ok {
		return ""
	}
	return caller.Identity
}

// RequireCaller returns the authenticated caller identity, or writes 401 Unauthorized and
// returns false when the request carries none.
func RequireCaller(c *gin.Context, logger *slog.Logger) (string, bool) {
	identity := CallerIdentity(c.Request.Context())
	if identity == "" {
		httputil.HandleErrorGin(c, authDomain.ErrMissingToken, logger)
		c.Abort()
		return "", false
	}
	return identity, true
}

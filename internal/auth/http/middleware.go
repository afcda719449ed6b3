package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/soulbound/internal/auth/domain"
	authService "github.com/allisson/soulbound/internal/auth/service"
	"github.com/allisson/soulbound/internal/httputil"
)

// AuthenticationMiddleware verifies the Bearer token in the Authorization header and stores
// the resulting caller in the request context.
//
// Authorization header format: "Bearer <token>" (case-insensitive "bearer").
// A missing, malformed, expired or foreign token yields 401 Unauthorized. Authorization
// decisions (issuer, owner, administrator) are made by the use cases, not here.
func AuthenticationMiddleware(tokenService authService.TokenService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Debug("authentication failed: missing authorization header")
			httputil.HandleErrorGin(c, authDomain.ErrMissingToken, logger)
			c.Abort()
			return
		}

		const bearerPrefix = "bearer "
		if len(authHeader) < len(bearerPrefix) ||
			!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			logger.Debug("authentication failed: malformed authorization header")
			httputil.HandleErrorGin(c, authDomain.ErrMissingToken, logger)
			c.Abort()
			return
		}

		token := strings.TrimSpace(authHeader[len(bearerPrefix):])
		if token == "" {
			logger.Debug("authentication failed: empty bearer token")
			httputil.HandleErrorGin(c, authDomain.ErrMissingToken, logger)
			c.Abort()
			return
		}

		caller, err := tokenService.Verify(token)
		if err != nil {
			logger.Debug("authentication failed", slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		c.Request = c.Request.WithContext(WithCaller(c.Request.Context(), caller))

		logger.Debug("authentication successful", slog.String("caller", caller.Identity))

		c.Next()
	}
}

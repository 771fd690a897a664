package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"beacon/internal/infrastructure/auth"
	"beacon/internal/shared/constants"
	"beacon/internal/shared/logger"
	"beacon/internal/shared/utils"
)

// Context keys for the optional bootstrap hints carried in the token.
const (
	ContextKeyDisplayName = "display_name"
	ContextKeyOrgName     = "org_name"
)

type AuthMiddleware struct {
	jwtService *auth.JWTService
	logger     logger.Interface
}

func NewAuthMiddleware(jwtService *auth.JWTService, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		logger:     logger,
	}
}

// RequireAuth verifies the bearer token and stores the principal in the
// request context. Tokens are issued by the identity collaborator.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(constants.HeaderAuthorization)
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := m.jwtService.Verify(parts[1])
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyDisplayName, claims.DisplayName)
		c.Set(ContextKeyOrgName, claims.OrgName)

		c.Next()
	}
}

package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"studio-ledger/internal/pkg/jwt"
	"studio-ledger/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type AuthMiddleware struct {
	tokens *jwt.Service
}

const ctxPrincipalKey = "principal"

var roleHierarchy = map[string]int{
	commands.RoleMember: 1,
	commands.RoleAdmin:  2,
}

func NewAuthMiddleware(tokens *jwt.Service) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimSpace(authHeader[len("Bearer "):])
		}

		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Access token required",
			})
			c.Abort()
			return
		}

		claims, err := m.tokens.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		principal := commands.Principal{
			ActorID:        claims.ActorID,
			OrganizationID: claims.OrganizationID,
			Role:           claims.Role,
		}
		c.Set(ctxPrincipalKey, principal)
		c.Set("jwt_claims", map[string]any{
			"actor_id": claims.ActorID.String(),
			"role":     claims.Role,
		})
		c.Next()
	}
}

func hasMinimumRole(role, minRole string) bool {
	roleLevel, roleExists := roleHierarchy[role]
	minLevel, minExists := roleHierarchy[minRole]
	return roleExists && minExists && roleLevel >= minLevel
}

func (m *AuthMiddleware) RequireRoleAtLeast(minRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			// Unexpected error: should be used after RequireAuth()
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
			c.Abort()
			return
		}

		if !hasMinimumRole(principal.Role, minRole) {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Insufficient permissions",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func GetPrincipal(c *gin.Context) (commands.Principal, bool) {
	v, exists := c.Get(ctxPrincipalKey)
	if !exists {
		return commands.Principal{}, false
	}

	principal, ok := v.(commands.Principal)
	return principal, ok
}

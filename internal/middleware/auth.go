package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"adops/internal/pkg/jwt"
	"adops/internal/pkg/response"
)

const (
	ctxStaffID = "staff_id"
	ctxRole    = "role"
)

// JWTAuth accepts "Authorization: Bearer <token>" and stores the staff id and
// role from a valid token on the context.
func JWTAuth(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Error(c, http.StatusUnauthorized, "AUTH_HEADER_MISSING", "Authorization header is required")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Error(c, http.StatusUnauthorized, "INVALID_AUTH_FORMAT", "Authorization header must be 'Bearer <token>'")
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateToken(strings.TrimSpace(parts[1]))
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ctxStaffID, claims.StaffID)
		c.Set(ctxRole, claims.Role)
		c.Next()
	}
}

// StaffID returns the authenticated staff id, or 0 outside JWTAuth.
func StaffID(c *gin.Context) int64 {
	return c.GetInt64(ctxStaffID)
}

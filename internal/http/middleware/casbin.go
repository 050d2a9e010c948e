package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AhmadAkmal83/jwt-sandbox/domain"
)

// CasbinMW enforces role-based access on guarded routes
type CasbinMW struct {
	policySvc domain.PolicyService
}

// NewCasbinMW creates new casbin middleware wrapper
func NewCasbinMW(policySvc domain.PolicyService) *CasbinMW {
	return &CasbinMW{policySvc: policySvc}
}

// Enforce returns the authorization middleware. A request is allowed when
// any of the caller's role claims grants the path/method pair.
func (mw *CasbinMW) Enforce() gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		rawRoles, exists := c.Get("user_roles")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Roles not found in token"})
			c.Abort()
			return
		}

		roles, ok := rawRoles.([]string)
		if !ok || len(roles) == 0 {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			c.Abort()
			return
		}

		path := c.Request.URL.Path
		method := c.Request.Method

		for _, role := range roles {
			// Casbin policies use role_ prefixed subjects.
			allowed, err := mw.policySvc.CheckPermission("role_"+role, path, method)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Authorization check failed"})
				c.Abort()
				return
			}
			if allowed {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		c.Abort()
	})
}

package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/AhmadAkmal83/jwt-sandbox/internal/http/handlers"
	"github.com/AhmadAkmal83/jwt-sandbox/internal/http/middleware"
)

func BuildRouter(ah *handlers.AuthHandlers, ph *handlers.PolicyHandlers, jwtmw *middleware.AuthMW, cb *middleware.CasbinMW) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	auth := r.Group("/api/v1/auth")
	auth.POST("/register", ah.Register)
	auth.GET("/verify-email", ah.VerifyEmail)
	auth.POST("/login", ah.Login)
	auth.POST("/refresh", ah.Refresh)
	auth.POST("/forgot-password", ah.ForgotPassword)
	auth.POST("/reset-password", ah.ResetPassword)

	v := r.Group("/api/v1").Use(jwtmw.WithJWT(), cb.Enforce())
	v.POST("/auth/logout", ah.Logout)
	v.GET("/users/me", ah.Me)

	adm := r.Group("/api/v1/admin").Use(jwtmw.WithJWT(), cb.Enforce())
	adm.GET("/policies", ph.List)
	adm.POST("/policies", ph.Add)
	adm.DELETE("/policies", ph.Remove)

	return r
}

package app

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AhmadAkmal83/jwt-sandbox/internal/config"
	httpx "github.com/AhmadAkmal83/jwt-sandbox/internal/http"
	"github.com/AhmadAkmal83/jwt-sandbox/internal/http/handlers"
	"github.com/AhmadAkmal83/jwt-sandbox/internal/http/middleware"
	"github.com/AhmadAkmal83/jwt-sandbox/internal/infrastructure/auth"
	"github.com/AhmadAkmal83/jwt-sandbox/internal/services"
)

func Run(cfg *config.Config) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	c, err := NewContainer(cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	if err := c.RedisClient.Ping(context.Background()).Err(); err != nil {
		return err
	}

	cas, err := auth.NewCasbinService(c.DB, cfg.CasbinModelPath)
	if err != nil {
		return err
	}
	c.PolicySvc = services.NewPolicyService(cas.E)

	authH := handlers.NewAuthHandlers(c.AuthSvc)
	polH := handlers.NewPolicyHandlers(c.PolicySvc)

	jwtMW := middleware.NewAuthMW(c.TokenSvc)
	casbinMW := middleware.NewCasbinMW(c.PolicySvc)

	r := httpx.BuildRouter(authH, polH, jwtMW, casbinMW)

	if policies := c.PolicySvc.GetPolicies(); len(policies) == 0 {
		_ = c.PolicySvc.AddPolicy("role_ADMIN", "/api/v1/admin/*", "(GET|POST|DELETE)")
		_ = c.PolicySvc.AddPolicy("role_USER", "/api/v1/auth/logout", "POST")
		_ = c.PolicySvc.AddPolicy("role_USER", "/api/v1/users/me", "GET")
		log.Println("casbin: seeded default policies")
	}

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, r)
}

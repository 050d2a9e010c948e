package app

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/AhmadAkmal83/jwt-sandbox/domain"
	"github.com/AhmadAkmal83/jwt-sandbox/internal/config"
	"github.com/AhmadAkmal83/jwt-sandbox/internal/infrastructure/auth"
	"github.com/AhmadAkmal83/jwt-sandbox/internal/infrastructure/database"
	"github.com/AhmadAkmal83/jwt-sandbox/internal/infrastructure/notifications"
	"github.com/AhmadAkmal83/jwt-sandbox/internal/infrastructure/repositories"
	"github.com/AhmadAkmal83/jwt-sandbox/internal/services"
)

// Container holds all dependencies
type Container struct {
	Config *config.Config

	DB          *gorm.DB
	RedisClient *redis.Client

	UserRepo         domain.UserRepository
	RefreshTokenRepo domain.RefreshTokenRepository

	PasswordSvc     domain.PasswordService
	TokenSvc        domain.TokenService
	MailSvc         domain.MailService
	RefreshTokenSvc domain.RefreshTokenService
	AuthSvc         domain.AuthService
	PolicySvc       domain.PolicyService

	Clock domain.Clock
}

// NewContainer creates and initializes all dependencies
func NewContainer(cfg *config.Config) (*Container, error) {
	container := &Container{Config: cfg}

	if err := container.initDatabase(); err != nil {
		return nil, err
	}
	container.initRedis()
	container.initRepositories()
	container.initServices()

	return container, nil
}

func (c *Container) initDatabase() error {
	db, err := database.Open(c.Config.DSN)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(db); err != nil {
		return err
	}
	c.DB = db
	return nil
}

func (c *Container) initRedis() {
	c.RedisClient = database.NewRedis(c.Config.RedisAddr, c.Config.RedisPassword, c.Config.RedisDB)
}

func (c *Container) initRepositories() {
	c.UserRepo = repositories.NewUserRepository(c.DB)
	c.RefreshTokenRepo = repositories.NewRefreshTokenRepository(c.DB)
}

func (c *Container) initServices() {
	c.Clock = services.NewSystemClock()
	c.PasswordSvc = auth.NewPasswordService()
	c.TokenSvc = auth.NewJWTService(c.Config.JWTSecret, c.Config.JWTIssuer, c.Config.AccessTTL, c.Clock)
	c.MailSvc = notifications.NewPostmarkService(notifications.Config{
		ServerToken:     c.Config.PostmarkServerToken,
		AccountToken:    c.Config.PostmarkAccountToken,
		SenderAddress:   c.Config.MailSenderAddress,
		VerificationURL: c.Config.VerificationURL,
		ResetURL:        c.Config.ResetURL,
	})

	c.RefreshTokenSvc = services.NewRefreshTokenService(
		c.RefreshTokenRepo,
		c.UserRepo,
		c.TokenSvc,
		c.RedisClient,
		c.Clock,
		c.Config.RefreshTTL,
	)

	c.AuthSvc = services.NewAuthService(
		c.UserRepo,
		c.RefreshTokenSvc,
		c.PasswordSvc,
		c.TokenSvc,
		c.MailSvc,
		c.Clock,
	)
}

// Close closes all connections
func (c *Container) Close() error {
	if c.RedisClient != nil {
		c.RedisClient.Close()
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	return nil
}

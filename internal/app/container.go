package app

import (
	"context"
	"log"

	"github.com/casbin/casbin/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Thebob0072/skillmatch-auth/domain"
	"github.com/Thebob0072/skillmatch-auth/internal/config"
	"github.com/Thebob0072/skillmatch-auth/internal/infrastructure/auth"
	"github.com/Thebob0072/skillmatch-auth/internal/infrastructure/database"
	"github.com/Thebob0072/skillmatch-auth/internal/infrastructure/notifications"
	"github.com/Thebob0072/skillmatch-auth/internal/infrastructure/repositories"
	"github.com/Thebob0072/skillmatch-auth/internal/services"
)

// Container holds all dependencies
type Container struct {
	Config *config.Config

	DB          *gorm.DB
	RedisClient *redis.Client
	Enforcer    *casbin.Enforcer

	UserRepo         domain.UserRepository
	SessionRepo      domain.SessionRepository
	VerificationRepo domain.VerificationRepository

	PasswordSvc     domain.PasswordService
	TokenSvc        domain.TokenService
	NotificationSvc domain.NotificationService
	IdentitySvc     domain.IdentityVerifier
	OTPSvc          domain.OTPService
	AuthSvc         domain.AuthService
	VerificationSvc domain.VerificationService
	PolicySvc       domain.PolicyService
	Audit           domain.AuditLogger
}

// NewContainer creates and initializes all dependencies
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	container := &Container{Config: cfg}

	if err := container.initDatabase(); err != nil {
		return nil, err
	}
	if err := container.initRedis(ctx); err != nil {
		return nil, err
	}

	container.initRepositories()

	if err := container.initServices(ctx); err != nil {
		return nil, err
	}

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

	cas, err := auth.NewCasbinService(db, c.Config.CasbinModelPath)
	if err != nil {
		return err
	}

	c.DB = db
	c.Enforcer = cas.E
	return nil
}

func (c *Container) initRedis(ctx context.Context) error {
	rdb := database.NewRedis(c.Config.RedisAddr, c.Config.RedisPassword, c.Config.RedisDB)
	if err := rdb.Ping(ctx); err != nil {
		return err
	}
	c.RedisClient = rdb.Client
	return nil
}

func (c *Container) initRepositories() {
	c.UserRepo = repositories.NewUserRepository(c.DB)
	c.SessionRepo = repositories.NewSessionRepository(c.RedisClient, c.Config.SessionTTL)
	c.VerificationRepo = repositories.NewVerificationRepository(c.DB)
}

func (c *Container) initServices(ctx context.Context) error {
	c.Audit = services.NewAuditLogger()
	c.PasswordSvc = auth.NewPasswordService()
	c.TokenSvc = auth.NewJWTService(
		c.Config.JWTSecret,
		c.Config.JWTIssuer,
		c.Config.AccessTTL,
		c.Config.RefreshTTL,
	)
	c.NotificationSvc = notifications.NewTwilioService(
		c.Config.TwilioSID,
		c.Config.TwilioToken,
		c.Config.TwilioFrom,
	)

	// Google sign-in is optional; without credentials the exchange
	// endpoint simply reports denial.
	if c.Config.GoogleClientID != "" {
		verifier, err := auth.NewGoogleVerifier(
			ctx,
			c.Config.GoogleIssuerURL,
			c.Config.GoogleClientID,
			c.Config.GoogleClientSecret,
			c.Config.GoogleRedirectURL,
		)
		if err != nil {
			return err
		}
		c.IdentitySvc = verifier
	} else {
		c.IdentitySvc = auth.DisabledVerifier{}
		log.Println("google sign-in disabled: no client credentials configured")
	}

	otpConfig := services.OTPConfig{
		Length:       c.Config.OTP_Length,
		TTL:          c.Config.OTP_TTL,
		MaxAttempts:  c.Config.OTP_MaxAttempts,
		ResendWindow: c.Config.OTP_ResendWindow,
	}
	c.OTPSvc = services.NewOTPService(c.NotificationSvc, c.UserRepo, c.RedisClient, otpConfig)

	c.PolicySvc = services.NewPolicyService(c.Enforcer)

	c.AuthSvc = services.NewAuthService(
		c.UserRepo,
		c.SessionRepo,
		c.PasswordSvc,
		c.TokenSvc,
		c.OTPSvc,
		c.IdentitySvc,
		c.Audit,
		c.Config.SessionTTL,
		c.Config.AccessTTL,
	)

	c.VerificationSvc = services.NewVerificationService(
		c.VerificationRepo,
		c.UserRepo,
		c.NotificationSvc,
		c.Audit,
	)

	return nil
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

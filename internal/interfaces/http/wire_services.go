package http

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/garagehq/repairshop/internal/application/ticket/usecases"
	"github.com/garagehq/repairshop/internal/infrastructure/auth"
	"github.com/garagehq/repairshop/internal/infrastructure/notification"
	"github.com/garagehq/repairshop/internal/infrastructure/permission"
	"github.com/garagehq/repairshop/internal/infrastructure/ratelimit"
	"github.com/garagehq/repairshop/internal/shared/services/markdown"
)

const redisPingTimeout = 3 * time.Second

// infraServices holds the infrastructure services shared by use cases and
// middlewares.
type infraServices struct {
	hasher       *auth.BcryptPasswordHasher
	jwt          *auth.JWTService
	enforcer     *permission.Enforcer
	loginLimiter ratelimit.Limiter
	markdown     markdown.MarkdownService
	// notifier stays nil when email is disabled.
	notifier usecases.ReceiptNotifier
	mailer   *notification.ReceiptMailer
}

func (c *Container) initInfrastructure() error {
	c.svcs = &infraServices{
		hasher:       auth.NewBcryptPasswordHasher(c.cfg.Auth.Password.BcryptCost),
		jwt:          auth.NewJWTService(c.cfg.Auth.JWT.Secret, c.cfg.Auth.JWT.Issuer, c.cfg.Auth.JWT.AccessTTL()),
		loginLimiter: ratelimit.Unlimited{},
		markdown:     markdown.NewMarkdownService(),
	}

	enforcer, err := permission.NewEnforcer(c.db, c.log)
	if err != nil {
		return fmt.Errorf("failed to create permission enforcer: %w", err)
	}
	if err := permission.InitDefaultPolicies(enforcer, c.log); err != nil {
		return fmt.Errorf("failed to seed default policies: %w", err)
	}
	c.svcs.enforcer = enforcer

	if c.cfg.Redis.Enabled {
		c.initRedis()
	}

	if c.cfg.Email.Enabled {
		c.svcs.mailer = notification.NewReceiptMailer(notification.SMTPConfig{
			Host:        c.cfg.Email.SMTPHost,
			Port:        c.cfg.Email.SMTPPort,
			Username:    c.cfg.Email.SMTPUser,
			Password:    c.cfg.Email.SMTPPassword,
			FromAddress: c.cfg.Email.FromAddress,
			FromName:    c.cfg.Email.FromName,
		}, c.log.Named("receipts"))
		c.svcs.notifier = c.svcs.mailer
		c.log.Infow("closing receipts enabled", "smtp_host", c.cfg.Email.SMTPHost)
	}

	return nil
}

// initRedis connects the login rate limiter. An unreachable Redis leaves
// login unlimited rather than blocking startup.
func (c *Container) initRedis() {
	client := redis.NewClient(&redis.Options{
		Addr:     c.cfg.Redis.GetAddr(),
		Password: c.cfg.Redis.Password,
		DB:       c.cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		c.log.Warnw("redis unavailable, login rate limiting disabled", "addr", c.cfg.Redis.GetAddr(), "error", err)
		_ = client.Close()
		return
	}

	c.redis = client
	c.svcs.loginLimiter = ratelimit.NewRedisRateLimiter(client, "login", ratelimit.Config{
		Limit:  c.cfg.RateLimit.LoginPerMinute,
		Window: time.Minute,
	})
	c.log.Infow("redis connected", "addr", c.cfg.Redis.GetAddr())
}

package http

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/garagehq/repairshop/internal/infrastructure/config"
	"github.com/garagehq/repairshop/internal/interfaces/http/middleware"
	"github.com/garagehq/repairshop/internal/shared/logger"
)

// Container holds the infrastructure components, repositories, use cases
// and handlers of the API process and wires them together.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	// Infrastructure services
	svcs *infraServices

	// Repositories
	repos *repositories

	// Use cases
	ucs *allUseCases

	// Handlers
	hdlrs *allHandlers

	// Middlewares
	authMiddleware *middleware.AuthMiddleware
}

// NewContainer builds every component. It fails when a required piece of
// infrastructure (tax configuration, permission store) cannot be set up.
func NewContainer(db *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
	}

	// Section 1: Infrastructure - Redis, tokens, permissions, mail
	if err := c.initInfrastructure(); err != nil {
		return nil, fmt.Errorf("failed to initialize infrastructure: %w", err)
	}

	// Section 2: Repositories
	c.initRepositories()

	// Section 3: Use cases
	if err := c.initUseCases(); err != nil {
		return nil, fmt.Errorf("failed to initialize use cases: %w", err)
	}

	// Section 4: Handlers and middlewares
	c.initHandlers()

	return c, nil
}

// Shutdown waits for pending receipt emails until ctx expires, then
// releases connections held by the container. The database is owned by the
// caller.
func (c *Container) Shutdown(ctx context.Context) {
	if c.svcs.mailer != nil {
		if err := c.svcs.mailer.Drain(ctx); err != nil {
			c.log.Warnw("closing receipts still pending at shutdown", "error", err)
		}
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Warnw("failed to close redis client", "error", err)
		}
	}
}

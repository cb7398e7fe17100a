package bootstrap

import (
	"context"
	"log"

	"coreclad-be/internal/config"
	"coreclad-be/internal/controller"
	"coreclad-be/internal/pkg/logger"
	"coreclad-be/internal/repository/memory"
	"coreclad-be/internal/repository/unitofwork"
	"coreclad-be/internal/service"
	"coreclad-be/pkg/admin/credential"
	adminEvents "coreclad-be/pkg/admin/events"
	"coreclad-be/pkg/catalog"
	pktNats "coreclad-be/pkg/nats"
	"coreclad-be/pkg/session"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController    controller.IAuthController
	AdminController   controller.IAdminController
	ProductController controller.IProductController

	// Background Services (Exposed for main.go to run)
	CatalogSyncService service.ICatalogSyncService
	AuditService       *service.AuditService

	Logger logger.ILogger

	closers []func()
}

// NewContainer wires every component. A nil db switches the repositories to
// the in-process memory store, which is meant for local development only.
func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	c := &Container{Logger: sysLogger}

	var uowFactory unitofwork.RepositoryFactory
	if db != nil {
		uowFactory = unitofwork.NewRepositoryFactory(db)
	} else {
		sysLogger.Warn("BOOTSTRAP", "No database configured, using in-memory repositories", nil)
		uowFactory = memory.NewRepositoryFactory(memory.NewStore())
	}

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	// NATS is optional; without it events are dropped and the audit trail is off
	var natsPub *pktNats.Publisher
	var natsSub *pktNats.Subscriber
	if cfg.App.NatsURL != "" {
		var err error
		natsPub, err = pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			c.closers = append(c.closers, natsPub.Close)
		}
		natsSub, err = pktNats.NewSubscriber(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
		} else {
			c.closers = append(c.closers, natsSub.Close)
		}
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	c.closers = append(c.closers, func() { _ = rdb.Close() })

	// relay stays off when Redis is unreachable at boot
	relay := rdb
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
		relay = nil
	}

	// 3. Session infrastructure
	var persister session.Persister
	switch cfg.Session.Backend {
	case "memory":
		persister = session.NewMemoryPersister(cfg.Session.IdleTTL)
	default:
		persister = session.NewRedisPersister(rdb, cfg.Session.IdleTTL)
	}

	verifier := credential.NewVerifier(uowFactory.NewUnitOfWork(context.Background()).AccountRepository(), sysLogger)
	remover := service.NewProductRemover(uowFactory)

	registry := session.NewRegistry(session.RegistryConfig[*catalog.View]{
		IdleTTL:        cfg.Session.IdleTTL,
		RestoreTimeout: cfg.Session.LoginTimeout,
		NewStore: func(clientID string) *session.Store {
			return session.NewStore(clientID, verifier, persister, sysLogger)
		},
		NewView: func(clientID string) *catalog.View {
			return catalog.NewView(nil, remover)
		},
	})

	// 4. Services
	adminEventPublisher := adminEvents.NewNatsPublisher(natsPub, sysLogger)
	catalogSync := service.NewCatalogSyncService(pubSub, service.CatalogSyncTopic, registry, relay, sysLogger)

	authService := service.NewAuthService(adminEventPublisher, sysLogger, cfg.Session.LoginTimeout)
	productService := service.NewProductService(uowFactory, catalogSync, adminEventPublisher, sysLogger)
	adminService := service.NewAdminService(uowFactory, sysLogger)

	c.CatalogSyncService = catalogSync
	c.AuditService = service.NewAuditService(natsSub, sysLogger)

	// 5. Controllers
	c.AuthController = controller.NewAuthController(authService, registry)
	c.AdminController = controller.NewAdminController(adminService, productService, registry, cfg.Session.LoginTimeout)
	c.ProductController = controller.NewProductController(productService)

	return c
}

// Close releases broker and cache connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	_ = c.Logger.Sync()
}

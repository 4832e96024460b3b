package main

import (
	"log"
	"strings"

	"freightdesk-backend/internal/audit"
	"freightdesk-backend/internal/auth"
	"freightdesk-backend/internal/cache"
	"freightdesk-backend/internal/config"
	"freightdesk-backend/internal/dashboard"
	"freightdesk-backend/internal/database"
	"freightdesk-backend/internal/logger"
	"freightdesk-backend/internal/resources"
	"freightdesk-backend/internal/sheetsync"
	"freightdesk-backend/internal/shipments"

	"github.com/gofiber/contrib/fiberzap/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()
	if err := logger.Init(cfg.Environment, cfg.LogLevel, cfg.LogDir); err != nil {
		log.Fatal("Could not initialize logger:", err)
	}
	defer logger.Sync()

	database.Init(cfg)
	sheetsync.Init(cfg.SheetPath)

	store := newCache(cfg)
	defer store.Close()

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.SheetSyncCron, func() {
		if err := sheetsync.RunFull(); err != nil {
			logger.Get().Error("Scheduled sheet sync failed", zap.Error(err))
		}
	}); err != nil {
		logger.Get().Fatal("Invalid SHEET_SYNC_CRON expression", zap.String("spec", cfg.SheetSyncCron), zap.Error(err))
	}
	scheduler.Start()
	defer scheduler.Stop()

	app := fiber.New(fiber.Config{
		AppName: "freightdesk-backend",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			logger.Get().Error("Unexpected error", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Unexpected server error",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	app.Use(requestid.New())
	app.Use(fiberzap.New(fiberzap.Config{
		Logger: logger.Get(),
	}))

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register-admin", auth.RegisterAdminHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Shipment records. The export route is registered before :id so the
	// literal path wins.
	protected.Post("/shipments", shipments.CreateShipmentHandler(store))
	protected.Get("/shipments", shipments.ListShipmentsHandler())
	protected.Get("/shipments/export", shipments.ExportShipmentsHandler())
	protected.Get("/shipments/:id", shipments.GetShipmentHandler())
	protected.Put("/shipments/:id", shipments.UpdateShipmentHandler(store))
	protected.Delete("/shipments/:id", shipments.DeleteShipmentHandler(store))

	// Dashboard
	protected.Get("/dashboard/metrics", dashboard.MetricsHandler(store))

	// Dropdown resource lists
	protected.Get("/resources", resources.ListResourcesHandler())
	protected.Post("/resources/:type", resources.AddResourceHandler())
	protected.Delete("/resources/:type", resources.RemoveResourceHandler())

	// Spreadsheet mirror
	protected.Post("/sheet-sync/run", sheetsync.RunSyncHandler())
	protected.Get("/sheet-sync/status", sheetsync.StatusHandler())

	// Audit logs
	protected.Get("/audit-logs", audit.ListAuditLogsHandler())
	protected.Post("/audit-logs/:id/undo", audit.UndoAuditLogHandler(store))

	logger.Get().Info("Server listening", zap.String("port", cfg.HTTPPort))
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		logger.Get().Fatal("Server stopped", zap.Error(err))
	}
}

// newCache picks redis when configured, otherwise the in-process fallback.
func newCache(cfg *config.Config) cache.Cache {
	if cfg.RedisURL == "" {
		logger.Get().Info("REDIS_URL not set, using in-memory cache")
		return cache.NewMemoryAdapter()
	}

	store, err := cache.NewRedisAdapter(cfg.RedisURL)
	if err != nil {
		logger.Get().Warn("Could not connect to redis, falling back to in-memory cache", zap.Error(err))
		return cache.NewMemoryAdapter()
	}
	logger.Get().Info("Redis cache connected")
	return store
}

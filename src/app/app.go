// Package app wires the store, services and HTTP layer into a Fiber app.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/theleywin/Backend-DevTinder/src/config"
	"github.com/theleywin/Backend-DevTinder/src/controllers"
	"github.com/theleywin/Backend-DevTinder/src/lib"
	"github.com/theleywin/Backend-DevTinder/src/logging"
	"github.com/theleywin/Backend-DevTinder/src/metrics"
	"github.com/theleywin/Backend-DevTinder/src/middleware"
	"github.com/theleywin/Backend-DevTinder/src/routes"
	"github.com/theleywin/Backend-DevTinder/src/services"
	"github.com/theleywin/Backend-DevTinder/src/store"
)

// New builds the Fiber app serving the API on top of st.
func New(cfg *config.Config, st store.Store, log logging.Logger) *fiber.App {
	creds := lib.NewCredentials(cfg.JWTSecret, cfg.TokenTTL, cfg.BcryptCost)
	validate := lib.NewValidator()

	notifications := services.NewNotificationService(st.Notifications(), st.Users(), log)
	h := controllers.New(controllers.Deps{
		Users:          services.NewUserService(st.Users(), creds, validate, log),
		Ledger:         services.NewLedger(st.Users(), st.Connections(), notifications, log),
		Aggregator:     services.NewAggregator(st.Users(), st.Connections()),
		Feed:           services.NewFeedResolver(st.Users(), log),
		Notifications:  notifications,
		Log:            log,
		RequestTimeout: cfg.RequestTimeout,
		TokenTTL:       cfg.TokenTTL,
		SecureCookie:   cfg.SecureCookie,
	})

	app := fiber.New(fiber.Config{
		AppName: "devtinder",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "Server error"

			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
				message = fe.Message
			} else {
				log.Error(c.UserContext(), "unhandled error", "path", c.Path(), "error", err)
			}
			return c.Status(code).JSON(lib.MessageResponse(message))
		},
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.RequestContext())
	app.Use(middleware.RequestLogger(log))
	app.Use(metrics.Middleware())
	app.Use(middleware.Cors(cfg.CORSOrigins))

	app.Get("/health", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), cfg.RequestTimeout)
		defer cancel()
		if err := st.Ping(ctx); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"ok": false})
		}
		return c.JSON(fiber.Map{"ok": true})
	})
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	protect := middleware.ProtectRoute(creds, st.Users(), cfg.RequestTimeout, log)
	routes.Register(app, h, protect, middleware.RateLimitAuth(cfg.AuthRateLimit))

	return app
}

// Run connects the store, migrates it when configured, and serves until
// ctx is cancelled.
func Run(ctx context.Context, cfg *config.Config, log logging.Logger) error {
	st, err := lib.ConnectDB(ctx, cfg.DB, log)
	if err != nil {
		return err
	}
	defer st.Close()

	if cfg.AutoMigrate {
		if err := lib.AutoMigrate(ctx, st, log); err != nil {
			return err
		}
	}

	app := New(cfg, st, log)

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "server is running", "port", cfg.Port)
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server stopped: %w", err)
	case <-ctx.Done():
	}

	log.Info(context.Background(), "shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// Migrate connects the store and runs the migrations only.
func Migrate(ctx context.Context, cfg *config.Config, log logging.Logger) error {
	st, err := lib.ConnectDB(ctx, cfg.DB, log)
	if err != nil {
		return err
	}
	defer st.Close()
	return lib.AutoMigrate(ctx, st, log)
}

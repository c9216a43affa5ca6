package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
	supa "github.com/supabase-community/supabase-go"
	fiberSwagger "github.com/swaggo/fiber-swagger"

	"practicehub/config"
	_ "practicehub/docs"
	"practicehub/handlers"
	"practicehub/internal/assignment"
	"practicehub/internal/auth"
	"practicehub/internal/session"
	"practicehub/internal/store"
	"practicehub/middleware"
)

const purgeInterval = 15 * time.Minute

// @title PracticeHub API
// @version 1.0
// @description Interns, projects, assignments, CSV import and exports.
// @BasePath /
func main() {
	cfg := config.Load()
	log := config.NewLogger(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("Invalid configuration")
	}

	client, err := openSupabase(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize Supabase")
	}

	st, err := openStore(cfg, log, client)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize store")
	}

	var authSvc *auth.Service
	if !cfg.AuthDisabled {
		sessions, err := session.Open(cfg.SessionDBPath, cfg.SessionSecret, cfg.SessionTTL)
		if err != nil {
			log.WithError(err).Fatal("Failed to open session store")
		}
		defer sessions.Close()
		sessions.Subscribe(func(ev session.Event) {
			log.WithFields(logrus.Fields{
				"event":   ev.Type,
				"user_id": ev.UserID,
				"email":   ev.Email,
			}).Info("Session changed")
		})
		authSvc = &auth.Service{
			Provider: auth.NewGoTrue(client.Auth),
			Sessions: sessions,
			Logger:   log,
		}
		stopPurge := purgeSessions(sessions, log)
		defer stopPurge()
	} else {
		log.Warn("AUTH_DISABLED=true: /api/v1 is served without sign in")
	}

	h := handlers.NewApplicationHandler(log, st, assignment.NewMatcher(cfg.NameFragmentMatching), authSvc, handlers.Options{
		ImportMaxBytes: int64(cfg.ImportMaxBytes),
		SecureCookies:  cfg.StoreBackend != config.BackendMemory,
	})

	app := fiber.New(fiber.Config{
		AppName:      "PracticeHub",
		ErrorHandler: middleware.ErrorHandler,
		BodyLimit:    cfg.ImportMaxBytes + 1<<20,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: cfg.CORSOrigins != "*",
	}))
	app.Use(middleware.RequestLogger(log))

	// Health check route
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "ok",
			"message": "PracticeHub is healthy",
			"backend": cfg.StoreBackend,
		})
	})
	app.Get("/swagger/*", fiberSwagger.WrapHandler)

	h.RegisterRoutes(app)

	go func() {
		log.WithField("port", cfg.Port).Info("Starting PracticeHub")
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.WithError(err).Fatal("Server stopped")
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info("Shutting down PracticeHub...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		log.WithError(err).Error("Shutdown did not complete cleanly")
	}
	log.Info("PracticeHub shut down gracefully.")
}

// openSupabase returns nil when no Supabase project is configured, which
// Validate only allows for the memory and postgres backends with auth off.
func openSupabase(cfg *config.Config, log *logrus.Logger) (*supa.Client, error) {
	if cfg.SupabaseURL == "" || cfg.SupabaseKey == "" {
		log.Info("Supabase not configured")
		return nil, nil
	}
	return config.NewSupabaseClient(cfg)
}

func openStore(cfg *config.Config, log *logrus.Logger, client store.Querier) (*store.Store, error) {
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		db, err := store.OpenPostgres(cfg.DatabaseURL, log)
		if err != nil {
			return nil, err
		}
		log.Info("Using postgres store")
		return store.NewGormStore(db), nil
	case config.BackendMemory:
		log.Warn("Using in-memory store; data is lost on restart")
		st, _ := store.NewMemoryStore()
		return st, nil
	default:
		if !cfg.ServiceRole {
			log.Warn("Using the anon key; row level security applies to every table read")
		}
		log.Info("Using Supabase store")
		return store.NewRestStore(client), nil
	}
}

// purgeSessions drops expired sessions on a ticker until the returned stop
// function is called.
func purgeSessions(sessions *session.Store, log *logrus.Logger) func() {
	ticker := time.NewTicker(purgeInterval)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ticker.C:
				n, err := sessions.PurgeExpired()
				if err != nil {
					log.WithError(err).Warn("Session purge failed")
					continue
				}
				if n > 0 {
					log.WithField("purged", n).Debug("Expired sessions purged")
				}
			case <-done:
				return
			}
		}
	}()
	return func() {
		ticker.Stop()
		close(done)
	}
}

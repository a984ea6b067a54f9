// Package server contains the HTTP handlers and route wiring for the API.
package server

import (
	"context"
	"fmt"
	"time"

	"vitrin/internal/cache"
	"vitrin/internal/config"
	"vitrin/internal/database"
	"vitrin/internal/middleware"
	"vitrin/internal/repository"
	"vitrin/internal/session"
	"vitrin/internal/uploads"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Login rate limit: 10 attempts per address per minute.
const (
	loginRateWindow = time.Minute
	loginRateMax    = 10
)

const sessionSweepInterval = time.Hour

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	sessions       session.Store
	loginLimiter   *middleware.LoginLimiter
	signer         *uploads.Signer
	userRepo       repository.UserRepository
	productRepo    repository.ProductRepository
	galleryRepo    repository.GalleryRepository
	contactRepo    repository.ContactRepository
	stopJanitor    context.CancelFunc
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	// Sessions live in a database table so that logins survive restarts and
	// are shared by horizontally scaled instances.
	store, err := session.NewGormStore(db, cfg.SessionTable)
	if err != nil {
		return nil, fmt.Errorf("session store setup failed: %w", err)
	}

	srv := NewServerWithDeps(cfg, db, redisClient, store)
	srv.startSessionJanitor(store)
	return srv, nil
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Tests and bootstrap layers use this with an in-memory session store or a
// sqlite database.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, store session.Store) *Server {
	return &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("vitrin-api"),
		sessions:       store,
		loginLimiter:   middleware.NewLoginLimiter(loginRateWindow, loginRateMax),
		signer: uploads.NewSigner(
			cfg.CloudinaryCloud,
			cfg.CloudinaryKey,
			cfg.CloudinarySecret,
			cfg.CloudinaryFolder,
		),
		userRepo:    repository.NewUserRepository(db),
		productRepo: repository.NewProductRepository(db),
		galleryRepo: repository.NewGalleryRepository(db),
		contactRepo: repository.NewContactRepository(db),
	}
}

// startSessionJanitor periodically removes expired session rows.
func (s *Server) startSessionJanitor(store *session.GormStore) {
	ctx, cancel := context.WithCancel(context.Background())
	s.stopJanitor = cancel

	go func() {
		ticker := time.NewTicker(sessionSweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := store.DeleteExpired(ctx); err != nil {
					middleware.Logger.Warn("session sweep failed", "error", err.Error())
				}
			}
		}
	}()
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context middleware to propagate request ID into slog records
	app.Use(middleware.ContextMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS middleware should run before middlewares that can short-circuit
	// (e.g. limiter) so browser clients still receive CORS headers on error
	// responses. Credentials must be allowed for the session cookie.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PATCH, DELETE, OPTIONS",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// Global coarse rate limiting (100 requests per minute per IP). The login
	// endpoint has its own, much tighter limiter.
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they should be handled by CORS.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"message": "Too many requests",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	app.Get("/health", s.HealthCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/login", s.loginLimiter.Handler(), s.Login)
	auth.Post("/logout", s.Logout)
	auth.Get("/me", s.Me)

	// Upload signing (admin only; the client talks to the media host directly)
	api.Post("/uploads/sign", s.AuthRequired(), s.SignUpload)

	// Product routes: public reads, guarded mutations
	products := api.Group("/products")
	products.Get("/", s.GetProducts)
	products.Get("/:id", s.GetProduct)
	products.Post("/", s.AuthRequired(), s.CreateProduct)
	products.Patch("/:id", s.AuthRequired(), s.UpdateProduct)
	products.Delete("/:id", s.AuthRequired(), s.DeleteProduct)

	// Gallery routes: public read, guarded mutations
	gallery := api.Group("/gallery")
	gallery.Get("/", s.GetGallery)
	gallery.Post("/", s.AuthRequired(), s.CreateGalleryItem)
	gallery.Delete("/:id", s.AuthRequired(), s.DeleteGalleryItem)

	// Contact routes: public create, guarded listing
	api.Post("/contact", s.CreateContactSubmission)
	api.Get("/contact", s.AuthRequired(), s.GetContactSubmissions)

	// Bundled-frontend mode; otherwise the API runs standalone.
	if s.config.ServeFrontend {
		s.SetupStatic(app)
	}
}

// HealthCheck reports database and cache connectivity.
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		// The cache is optional; the API serves without it.
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// App builds the fiber application with all middleware and routes attached.
func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "Vitrin API",
		// Behind Railway/Fly style proxies the client address arrives in
		// X-Forwarded-For; the login limiter keys on it.
		ProxyHeader: fiber.HeaderXForwardedFor,
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// Start builds the app and listens on the configured port.
func (s *Server) Start() error {
	app := s.App()
	middleware.Logger.Info("Server starting", "port", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server and its resources.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.stopJanitor != nil {
		s.stopJanitor()
	}

	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("error shutting down HTTP server", "error", err.Error())
		}
	}

	if ms, ok := s.sessions.(*session.MemoryStore); ok {
		ms.Close()
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			middleware.Logger.Error("error closing sql DB", "error", cerr.Error())
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			middleware.Logger.Error("error closing redis", "error", rerr.Error())
		}
	}

	middleware.Logger.Info("Server shutdown complete")
	return nil
}

// Package server contains the HTTP handlers and middleware wiring of the job board.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "jobboard/docs" // swagger docs
	"jobboard/internal/bootstrap"
	"jobboard/internal/config"
	"jobboard/internal/database"
	"jobboard/internal/events"
	"jobboard/internal/featureflags"
	"jobboard/internal/identity"
	"jobboard/internal/middleware"
	"jobboard/internal/models"
	"jobboard/internal/repository"
	"jobboard/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// passwordCost is the bcrypt cost for new accounts; zero means bcrypt.DefaultCost.
var passwordCost = 0

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	promMiddleware *fiberprometheus.FiberPrometheus
	shutdownCtx    context.Context
	shutdownFn     context.CancelFunc
	notifier       *events.Notifier
	featureFlags   *featureflags.Manager
	identity       *identity.Manager
	jobService     *service.JobService
	applications   *service.ApplicationService
	accounts       *service.AccountService
}

// NewServer connects to the database and Redis, runs startup seeding and builds the server.
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	db, redisClient, err := bootstrap.InitRuntime(ctx, cfg, bootstrap.Options{SeedSampleJobs: cfg.SeedSampleJobs})
	if err != nil {
		return nil, err
	}
	return NewServerWithDeps(cfg, db, redisClient)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	if cfg == nil || db == nil {
		return nil, errors.New("config and database are required")
	}

	jobRepo := repository.NewJobRepository(db)
	employerRepo := repository.NewEmployerRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)

	idm := identity.NewManager(repository.NewAccountRepository(db), redisClient, identity.Options{
		Secret:            cfg.SessionSecret,
		SessionTTL:        cfg.SessionTTL(),
		MaxFailedAttempts: cfg.LockoutMaxAttempts,
		LockoutDuration:   cfg.LockoutDuration(),
		PasswordCost:      passwordCost,
	})

	s := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("jobboard-api"),
		notifier:       events.NewNotifier(redisClient),
		featureFlags:   featureflags.NewManager(cfg.FeatureFlags),
		identity:       idm,
	}
	s.jobService = service.NewJobService(jobRepo, employerRepo, employeeRepo, s.notifier, s.featureFlags)
	s.applications = service.NewApplicationService(jobRepo, employeeRepo, s.notifier)
	s.accounts = service.NewAccountService(db, idm, s.featureFlags)
	return s, nil
}

// ErrorHandler renders errors that escape handlers. Unknown errors never leak their text.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(models.ErrorResponse{Error: fe.Message})
	}
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return respondAppError(c, appErr)
	}
	middleware.Logger.ErrorContext(c.UserContext(), "unhandled error", slog.String("error", err.Error()))
	return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
		Error: "An unexpected error occurred",
		Code:  models.CodeInternal,
	})
}

// NewApp returns a Fiber app with the full middleware chain and routes.
func (s *Server) NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Job Board",
		ErrorHandler: ErrorHandler,
		BodyLimit:    1 * 1024 * 1024,
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery; the ErrorHandler renders a generic body.
	app.Use(recover.New(recover.Config{EnableStackTrace: !s.config.IsProduction()}))

	app.Use(requestid.New())
	app.Use(middleware.TracingMiddleware())
	// Propagate request and trace IDs into the user context for logging.
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	// CORS runs before middlewares that can short-circuit so error responses carry CORS headers.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, " + csrfHeader,
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(models.ErrorResponse{
				Error: "Too many requests, please try again later.",
				Code:  models.CodeRateLimited,
			})
		},
	}))

	app.Use(csrf.New(csrf.Config{
		Next:           skipCSRF,
		CookieName:     csrfCookie,
		CookieSameSite: "Lax",
		CookieSecure:   s.config.CookieSecure,
		CookieHTTPOnly: true,
		Expiration:     2 * time.Hour,
		ContextKey:     csrfContextKey,
		Extractor:      csrfExtractor,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse{
				Error: "Invalid or missing anti-forgery token",
				Code:  models.CodeForbidden,
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	app.Get("/metrics/dashboard", monitor.New(monitor.Config{Title: "Job Board Metrics"}))
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect(service.LandingPage, fiber.StatusFound)
	})

	employer := []fiber.Handler{s.AuthRequired(), s.RoleRequired(models.RoleEmployer)}

	jobs := app.Group("/JobPost")
	jobs.Get("/", s.OptionalAuth(), s.ListJobs)
	jobs.Get("/Index", s.OptionalAuth(), s.ListJobs)
	jobs.Get("/Details/:id", s.AuthRequired(), s.JobDetails)
	jobs.Get("/Applicants/:id", append(employer, s.JobApplicants)...)
	jobs.Get("/Create", append(employer, s.CreateJobForm)...)
	jobs.Post("/Create", append(employer, s.CreateJob)...)
	jobs.Get("/Edit/:id", append(employer, s.EditJobForm)...)
	jobs.Post("/Edit/:id", append(employer, s.EditJob)...)
	jobs.Get("/Delete/:id", append(employer, s.DeleteJobConfirm)...)
	jobs.Post("/Delete/:id", append(employer, s.DeleteJob)...)

	applied := app.Group("/AppliedJobs", s.AuthRequired(), s.RoleRequired(models.RoleEmployee))
	applied.Get("/", s.MyApplications)
	applied.Post("/Apply", s.Apply)
	applied.Post("/CancelApply", s.CancelApply)

	login := app.Group("/LoginPage")
	login.Get("/Login", s.OptionalAuth(), s.LoginForm)
	login.Post("/Login", middleware.RateLimit(s.redis, 10, 5*time.Minute, "login"), s.Login)
	login.Get("/LoginWith2fa", s.LoginWithTwoFactor)
	login.Get("/RegisterEmployee", s.RegisterEmployeeForm)
	login.Post("/RegisterEmployee", middleware.RateLimit(s.redis, 5, 10*time.Minute, "register"), s.RegisterEmployee)
	login.Get("/RegisterEmployer", s.RegisterEmployerForm)
	login.Post("/RegisterEmployer", middleware.RateLimit(s.redis, 5, 10*time.Minute, "register"), s.RegisterEmployer)
	login.Get("/Logout", s.AuthRequired(), s.Logout)
	login.Post("/Logout", s.AuthRequired(), s.Logout)

	admin := app.Group("/admin", s.AuthRequired(), s.RoleRequired(models.RoleAdmin))
	admin.Get("/feature-flags", s.GetFeatureFlags)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests. Redis is optional and only reported.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	if err := database.Ping(ctx, s.db); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "unavailable"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	}

	status := fiber.StatusOK
	overall := "healthy"
	if dbStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
		overall = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overall,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// GetFeatureFlags handles GET /admin/feature-flags
func (s *Server) GetFeatureFlags(c *fiber.Ctx) error {
	p := currentPrincipal(c)
	return c.JSON(fiber.Map{
		"flags": s.featureFlags.Snapshot(p.AccountID),
	})
}

// Start subscribes to domain events and listens on the configured port.
func (s *Server) Start(app *fiber.App) error {
	ctx, cancel := context.WithCancel(context.Background())
	s.shutdownCtx = ctx
	s.shutdownFn = cancel

	if err := s.notifier.Subscribe(ctx, func(evt events.Event) {
		middleware.Logger.Info("job board event",
			slog.String("type", evt.Type),
			slog.Any("job_id", evt.JobID),
			slog.Any("employee_id", evt.EmployeeID),
		)
	}); err != nil {
		middleware.Logger.Warn("event subscription failed", slog.String("error", err.Error()))
	}

	middleware.Logger.Info(fmt.Sprintf("Server starting on port %s...", s.config.Port))
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context, app *fiber.App) error {
	if s.shutdownFn != nil {
		s.shutdownFn()
	}

	if app != nil {
		if err := app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("error shutting down HTTP server", slog.String("error", err.Error()))
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			middleware.Logger.Error("error closing sql DB", slog.String("error", cerr.Error()))
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			middleware.Logger.Error("error closing redis", slog.String("error", rerr.Error()))
		}
	}

	middleware.Logger.Info("Server shutdown complete")
	return nil
}

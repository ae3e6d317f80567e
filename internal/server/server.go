// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"happyhour/internal/cache"
	"happyhour/internal/config"
	"happyhour/internal/database"
	"happyhour/internal/middleware"
	"happyhour/internal/models"
	"happyhour/internal/repository"
	"happyhour/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus

	userRepo       repository.UserRepository
	categoryRepo   repository.CategoryRepository
	locationRepo   repository.LocationRepository
	spaceRepo      repository.SpaceRepository
	commentRepo    repository.CommentRepository
	ratingRepo     repository.RatingRepository
	engagementRepo repository.EngagementRepository

	userService       *service.UserService
	categoryService   *service.CategoryService
	locationService   *service.LocationService
	spaceService      *service.SpaceService
	commentService    *service.CommentService
	ratingService     *service.RatingService
	engagementService *service.EngagementService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	server, err := NewServerWithDeps(cfg, db, redisClient)
	if err != nil {
		return nil, err
	}

	// Registered here rather than in NewServerWithDeps: fiberprometheus uses
	// the default Prometheus registry, which tolerates only one registration
	// per process.
	server.promMiddleware = middleware.InitMetrics("happyhour-api")

	return server, nil
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis and
// optionally performs explicit seeding.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	locationRepo := repository.NewLocationRepository(db)
	spaceRepo := repository.NewSpaceRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	engagementRepo := repository.NewEngagementRepository(db)

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		userRepo:       userRepo,
		categoryRepo:   categoryRepo,
		locationRepo:   locationRepo,
		spaceRepo:      spaceRepo,
		commentRepo:    commentRepo,
		ratingRepo:     ratingRepo,
		engagementRepo: engagementRepo,
	}

	server.userService = service.NewUserService(userRepo, cfg.BcryptCost)
	server.categoryService = service.NewCategoryService(categoryRepo, spaceRepo)
	server.locationService = service.NewLocationService(locationRepo, spaceRepo)
	server.spaceService = service.NewSpaceService(spaceRepo)
	server.commentService = service.NewCommentService(commentRepo, userRepo, spaceRepo)
	server.ratingService = service.NewRatingService(ratingRepo, userRepo, spaceRepo)
	server.engagementService = service.NewEngagementService(engagementRepo, userRepo, spaceRepo)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context Middleware to propagate Request ID and User ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Tracing spans per request
	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS middleware should run before middlewares that can short-circuit
	// (e.g. limiter) so browser clients still receive CORS headers on error
	// responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// Global rate limiting (100 requests per minute per IP)
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
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	api := app.Group("/api")
	loggedIn := s.AuthRequired()
	admin := s.AdminRequired()

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "register"), s.Register)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Get("/me", loggedIn, s.Me)

	// User routes, all login-gated. Engagement routes with more segments must
	// be registered before the generic /:username routes.
	users := api.Group("/users", loggedIn)
	users.Post("/", admin, s.CreateUser)
	users.Get("/", admin, s.GetUsers)
	users.Post("/:username/like/:title", s.LikeSpace)
	users.Delete("/:username/like/:title", s.UnlikeSpace)
	users.Get("/:username/likes", s.GetUserLikes)
	users.Post("/:username/visit/:title", s.VisitSpace)
	users.Get("/:username/visits", s.GetUserVisits)
	users.Get("/:username", s.GetUser)
	users.Patch("/:username", s.UpdateUser)
	users.Delete("/:username", s.DeleteUser)

	// Category routes: reads are public, writes are admin-only.
	categories := api.Group("/categories")
	categories.Get("/", s.GetCategories)
	categories.Post("/", loggedIn, admin, s.CreateCategory)
	categories.Get("/:catType", s.GetCategory)
	categories.Patch("/:catType", loggedIn, admin, s.UpdateCategory)
	categories.Delete("/:catType", loggedIn, admin, s.DeleteCategory)

	// Location routes: reads are public, writes are admin-only. The /cities
	// and /neighborhoods routes go before the generic /:id.
	locations := api.Group("/locations")
	locations.Get("/", s.GetLocations)
	locations.Post("/", loggedIn, admin, s.CreateLocation)
	locations.Get("/cities/:city", s.GetLocationsByCity)
	locations.Delete("/neighborhoods/:neighborhood", loggedIn, admin, s.DeleteLocation)
	locations.Get("/neighborhoods/:neighborhood", s.GetLocationsByNeighborhood)
	locations.Get("/:id", s.GetLocation)
	locations.Patch("/:id", loggedIn, admin, s.UpdateLocation)

	// Space routes: reading the catalog requires a login, writes are
	// admin-only.
	spaces := api.Group("/spaces", loggedIn)
	spaces.Get("/", s.GetSpaces)
	spaces.Post("/", admin, s.CreateSpace)
	spaces.Get("/:title", s.GetSpace)
	spaces.Patch("/:title", admin, s.UpdateSpace)
	spaces.Delete("/:title", admin, s.DeleteSpace)

	// Comment routes: the per-space and per-user listings are public,
	// everything else requires a login. Listing routes before the
	// generic /:id.
	comments := api.Group("/comments")
	comments.Post("/:username/spaces/:title", loggedIn, s.CreateComment)
	comments.Get("/spaces/:title", s.GetSpaceComments)
	comments.Get("/users/:username", s.GetUserComments)
	comments.Get("/:id", loggedIn, s.GetComment)
	comments.Patch("/:id", loggedIn, s.UpdateComment)
	comments.Delete("/:id", loggedIn, s.DeleteComment)

	// Rating routes: reads are public, writes require a login.
	ratings := api.Group("/ratings")
	ratings.Post("/:username/spaces/:title", loggedIn, s.CreateRating)
	ratings.Get("/spaces/:title/average", s.GetAverageRating)
	ratings.Get("/:username/spaces/:title", s.GetUserSpaceRating)
	ratings.Get("/:id", s.GetRating)
	ratings.Patch("/:id", loggedIn, s.UpdateRating)
	ratings.Delete("/:id", loggedIn, s.DeleteRating)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
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
		// The API stays readable without Redis; caches just miss.
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

// AuthRequired returns the authentication middleware. It verifies the bearer
// token and attaches the resulting Principal to the request.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		tokenString := ""
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}

		if tokenString == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Unauthorized, must be logged-in!"))
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(s.config.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid or expired token"))
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token claims"))
		}

		if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != "happyhour-api" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token issuer"))
		}
		if audience, audienceOk := claims["aud"].(string); !audienceOk || audience != "happyhour-client" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token audience"))
		}

		sub, ok := claims["sub"].(string)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid subject claim"))
		}
		userID, err := strconv.ParseUint(sub, 10, 32)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid user ID in token"))
		}

		username, _ := claims["username"].(string)
		isAdmin, _ := claims["is_admin"].(bool)

		principal := models.Principal{
			UserID:   uint(userID),
			Username: username,
			IsAdmin:  isAdmin,
		}
		c.Locals("principal", principal)

		// Sync to UserContext for logging and downstream services
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, principal.UserID)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// AdminRequired returns middleware that rejects non-admin principals.
// Must be placed after AuthRequired so the principal is available in locals.
// Role failures are 401, the same class as ownership failures.
func (s *Server) AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := c.Locals("principal").(models.Principal)
		if !ok || !principal.IsAdmin {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Unauthorized, must be an admin!"))
		}
		return c.Next()
	}
}

// Start builds the fiber app and begins serving.
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName: "HappyHour API",
		// Titles and neighborhoods contain spaces, so path params arrive
		// percent-encoded and must be decoded before routing.
		UnescapePath: true,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	})

	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	s.app = app

	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app == nil {
		return nil
	}
	return s.app.ShutdownWithContext(ctx)
}

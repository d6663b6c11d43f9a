package main

import (
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"webstore-service/internal/api"
	"webstore-service/internal/config"
	"webstore-service/internal/repository"
	"webstore-service/internal/store"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("loading configuration")
	}
	if cfg.Auth.Secret == "" {
		logger.Fatal().Msg("AUTH_SECRET must be set")
	}

	s, err := store.Open(cfg.Database, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("connecting to database")
	}
	defer s.Close()

	// Repositories and handlers
	userHandler := api.NewUserHandler(repository.NewUserRepository(s, logger), []byte(cfg.Auth.Secret), cfg.Auth.AdminEmail)
	postHandler := api.NewPostHandler(repository.NewPostRepository(s, logger))
	productHandler := api.NewProductHandler(repository.NewProductRepository(s, logger))

	e := echo.New()

	rateConfig := middleware.RateLimiterConfig{
		Skipper: middleware.DefaultSkipper,
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(10),
				Burst:     30,
				ExpiresIn: 3 * time.Minute,
			}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(429, map[string]string{"error": "rate limit exceeded"})
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.JSON(429, map[string]string{"error": "rate limit exceeded"})
		},
	}

	// Middleware
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.RateLimiterWithConfig(rateConfig))

	// Mutating routes require a verified token; creation of users (signup)
	// and login stay open.
	auth := echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(cfg.Auth.Secret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(api.Claims)
		},
	})

	// Routes
	e.POST("/login", userHandler.Login)

	e.GET("/users", userHandler.GetAll)
	e.GET("/users/:id", userHandler.GetByID)
	e.GET("/users/email/:email", userHandler.GetByEmail)
	e.POST("/users", userHandler.Create)
	e.PUT("/users/:id", userHandler.Update, auth)
	e.DELETE("/users/:id", userHandler.Delete, auth)

	e.GET("/posts", postHandler.GetAll)
	e.GET("/posts/:id", postHandler.GetByID)
	e.GET("/posts/user/:user_id", postHandler.GetByUserID)
	e.POST("/posts", postHandler.Create, auth)
	e.PUT("/posts/:id", postHandler.Update, auth)
	e.DELETE("/posts/:id", postHandler.Delete, auth)

	e.GET("/products", productHandler.GetAll)
	e.GET("/products/:id", productHandler.GetByID)
	e.POST("/products", productHandler.Create, auth)
	e.PUT("/products/:id", productHandler.Update, auth)
	e.DELETE("/products/:id", productHandler.Delete, auth)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]interface{}{
			"status":  "ok",
			"service": "webstore-service",
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	// Start server
	e.Logger.Fatal(e.Start(cfg.Server.Addr))
}

package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/svara-ai/task-manager-api/internal/config"
	v1 "github.com/svara-ai/task-manager-api/internal/delivery/http/v1"
	"github.com/svara-ai/task-manager-api/internal/middleware"
	"github.com/svara-ai/task-manager-api/internal/services"
)

func MustListenAndServeHTTP() {
	cfg := config.Global()
	if cfg.Env != config.EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	httpCfg := cfg.HTTP

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.Metrics())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	registerRoutes(router)

	server := &http.Server{
		Addr:    net.JoinHostPort(httpCfg.Host, httpCfg.Port),
		Handler: router,
	}

	go func() {
		globalLogger.Info().
			Str("host", httpCfg.Host).
			Str("port", httpCfg.Port).
			Msg("setting up http server")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			globalLogger.Error().
				Err(err).
				Msg("failed to listen and serve http")
			panic(err)
		}
	}()

	// Wait for the interrupt signal to gracefully
	// shut down the server with a timeout.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	globalLogger.Info().
		Msg("shutting down http server")

	ctx, cancel := context.WithTimeout(context.Background(), httpCfg.ShutdownTimeout)
	defer cancel()

	err := server.Shutdown(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to shutdown http server")
		panic(err)
	}
	globalLogger.Info().Msg("shut down http server")
}

func registerRoutes(router gin.IRouter) {
	cfg := config.Global()

	authService := services.NewAuthService(
		globalLogger,
		globalPostgresPool,
		cfg.JWT.Issuer,
		[]byte(cfg.JWT.SigningKey),
		cfg.JWT.TokenTTL,
	)
	projectService := services.NewProjectService(globalLogger, globalPostgresPool)
	taskService := services.NewTaskService(globalLogger, globalPostgresPool)
	userService := services.NewUserService(globalLogger, globalPostgresPool, globalCache)

	handler := v1.New(
		globalLogger,
		authService,
		projectService,
		taskService,
		userService,
	)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	generalLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimit.RPS), cfg.RateLimit.Burst)
	authLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimit.AuthRPS), cfg.RateLimit.AuthBurst)

	api := router.Group("/api")
	api.Use(generalLimiter.Limit())

	authRouter := api.Group("/auth")
	authRouter.Use(authLimiter.Limit())
	authRouter.POST("/register", handler.HandleRegister)
	authRouter.POST("/login", handler.HandleLogin)
	authRouter.POST("/logout", handler.HandleLogout)

	protected := api.Group("")
	protected.Use(handler.HandleAuthMiddleware)

	projects := protected.Group("/projects")
	projects.POST("", handler.HandleCreateProject)
	projects.GET("", handler.HandleGetProjects)
	projects.PUT("/:id", handler.HandleUpdateProject)
	projects.DELETE("/:id", handler.HandleDeleteProject)

	tasks := protected.Group("/tasks")
	tasks.POST("", handler.HandleCreateTask)
	tasks.GET("/project/:projectId", handler.HandleGetTasksByProject)
	tasks.PUT("/:id", handler.HandleUpdateTask)
	tasks.DELETE("/:id", handler.HandleDeleteTask)
	tasks.PUT("/:id/assign", handler.HandleAssignTask)
	tasks.GET("/assignee/:assigneeId", handler.HandleGetTasksByAssignee)

	users := protected.Group("/users")
	users.GET("", handler.HandleGetAllUsers)
	users.GET("/:id", handler.HandleGetUserByID)
}

package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"budget-server/confs"
	"budget-server/db"
	httpHandler "budget-server/handlers/http"
	"budget-server/logging"
	"budget-server/repositories"
	"budget-server/usecases"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Server struct {
	app    *gin.Engine
	http   *http.Server
	db     db.Database
	cfg    confs.ServerConfig
	logger *slog.Logger
}

func NewServer(cfg confs.ServerConfig, database db.Database, logger *slog.Logger) *Server {
	gin.SetMode(cfg.GinMode)

	s := &Server{
		app:    gin.New(),
		db:     database,
		cfg:    cfg,
		logger: logger,
	}
	s.routes()

	s.http = &http.Server{
		Addr:              cfg.Addr(),
		Handler:           otelhttp.NewHandler(s.app, "budget-server"),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Handler exposes the fully wired HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

func (s *Server) routes() {
	s.app.Use(logging.RequestLogger(s.logger))
	s.app.Use(gin.Recovery())

	// Setup CORS middleware
	config := cors.DefaultConfig()
	if origins := s.cfg.Origins(); origins != nil {
		config.AllowOrigins = origins
	} else {
		config.AllowAllOrigins = true
	}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", logging.RequestIDHeader}
	config.ExposeHeaders = []string{logging.RequestIDHeader}
	s.app.Use(cors.New(config))

	// Initialize repositories
	userRepo := repositories.NewUserGormRepository(s.db)
	categoryRepo := repositories.NewCategoryGormRepository(s.db)
	transactionRepo := repositories.NewTransactionGormRepository(s.db)

	// Initialize use cases
	userUseCase := usecases.NewUserUseCase(userRepo)
	categoryUseCase := usecases.NewCategoryUseCase(categoryRepo)
	transactionUseCase := usecases.NewTransactionUseCase(transactionRepo)
	analyticsUseCase := usecases.NewAnalyticsUseCase(transactionRepo)

	// Initialize handlers
	userHandler := httpHandler.NewUserHandler(userUseCase)
	categoryHandler := httpHandler.NewCategoryHandler(categoryUseCase)
	transactionHandler := httpHandler.NewTransactionHandler(transactionUseCase)
	analyticsHandler := httpHandler.NewAnalyticsHandler(analyticsUseCase)

	api := s.app.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status": "ok",
			})
		})

		api.POST("/user", userHandler.GetOrCreateUser)
		api.PUT("/category/:id", categoryHandler.UpdateBudget)
		api.PUT("/transaction/:id", transactionHandler.UpdateTransaction)
		api.DELETE("/transaction/:id", transactionHandler.DeleteTransaction)

		users := api.Group("/user/:userId")
		{
			users.PUT("/income", userHandler.SetIncome)
			users.DELETE("/reset", userHandler.ResetUser)
			users.GET("/categories", categoryHandler.GetCategories)
			users.GET("/transactions", transactionHandler.GetTransactions)
			users.POST("/transactions", transactionHandler.CreateTransaction)
			users.GET("/weekly-expenses", analyticsHandler.GetWeeklyExpenses)
		}
	}

	s.staticRoutes()
}

// staticRoutes serves the bundled frontend when STATIC_DIR exists.
func (s *Server) staticRoutes() {
	dir := s.cfg.StaticDir
	if dir == "" {
		return
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		s.logger.Info("static directory not found, frontend disabled", "dir", dir)
		return
	}

	pages := map[string]string{
		"/":          "budget_tracker.html",
		"/analytics": "analytics.html",
	}
	for route, file := range pages {
		path := filepath.Join(dir, file)
		s.app.GET(route, func(c *gin.Context) {
			if _, err := os.Stat(path); err != nil {
				c.JSON(http.StatusNotFound, gin.H{
					"error": "page not found",
				})
				return
			}
			c.File(path)
		})
	}
	s.app.Static("/static", dir)

	// Assets linked relatively from the pages resolve against the site root.
	s.app.NoRoute(func(c *gin.Context) {
		method := c.Request.Method
		name := path.Clean("/" + c.Request.URL.Path)
		if (method != http.MethodGet && method != http.MethodHead) || strings.HasPrefix(name, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "not found",
			})
			return
		}
		file := filepath.Join(dir, filepath.FromSlash(name))
		if info, err := os.Stat(file); err != nil || info.IsDir() {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "not found",
			})
			return
		}
		c.File(file)
	})
}

// Start serves until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("server listening", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests, then closes the database.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.http.Shutdown(ctx)
	if closeErr := s.db.Close(); closeErr != nil {
		err = errors.Join(err, closeErr)
	}
	return err
}

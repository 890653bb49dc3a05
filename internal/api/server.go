package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"productapi/internal/api/handlers"
	"productapi/internal/api/middleware"
	"productapi/internal/config"
	woocommerceConnector "productapi/internal/connectors/woocommerce"
	"productapi/internal/events"
	"productapi/internal/logger"
	"productapi/internal/services/ai"
	"productapi/internal/services/bulk"
	"productapi/internal/services/woocommerce"

	"github.com/gin-gonic/gin"
)

// Dependencies are the services the routes call into.
type Dependencies struct {
	Products   handlers.ProductService
	Categories handlers.CategoryService
	Sequencer  handlers.BulkInserter
	Publisher  handlers.JobPublisher
	Generator  handlers.DraftGenerator

	closers []func() error
	logger  *logger.Logger
}

// NewDependencies builds the production services from cfg. The bulk job
// publisher is only created when Kafka brokers are configured.
func NewDependencies(cfg *config.Config, logger *logger.Logger) *Dependencies {
	client := woocommerce.NewClient(cfg.WooCommerce, logger)
	connector := woocommerceConnector.New(client, logger)

	deps := &Dependencies{
		Products:   connector,
		Categories: connector,
		Sequencer:  bulk.NewSequencer(connector, logger),
		Generator:  ai.New(cfg.OpenAI, logger),
		logger:     logger,
	}

	publisher, err := events.NewPublisher(cfg.Kafka, logger)
	if err != nil {
		logger.Warn("Async bulk jobs disabled: %v", err)
	} else {
		deps.Publisher = publisher
		deps.closers = append(deps.closers, publisher.Close)
	}

	return deps
}

// Close releases any connections held by the dependencies.
func (d *Dependencies) Close() {
	for _, closer := range d.closers {
		if err := closer(); err != nil && d.logger != nil {
			d.logger.Warn("Failed to close dependency: %v", err)
		}
	}
}

type Server struct {
	config *config.Config
	logger *logger.Logger
	deps   *Dependencies
	router *gin.Engine
	server *http.Server
}

func New(cfg *config.Config, logger *logger.Logger, deps *Dependencies) *Server {
	// Set Gin mode
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	// Initialize handlers
	productHandler := handlers.NewProductHandler(deps.Products, deps.Sequencer, deps.Publisher, logger)
	categoryHandler := handlers.NewCategoryHandler(deps.Categories, logger)
	aiHandler := handlers.NewAIHandler(deps.Generator, logger)

	router.GET("/", handlers.Health)
	router.GET("/health", handlers.Health)

	// Routes
	api := router.Group("/api")
	{
		// Products
		products := api.Group("/products")
		{
			products.GET("", productHandler.List)
			products.POST("", productHandler.Create)
			products.POST("/bulk", productHandler.Bulk)
			products.POST("/import", productHandler.Import)
		}

		// Categories
		categories := api.Group("/categories")
		{
			categories.GET("", categoryHandler.List)
			categories.POST("", categoryHandler.Create)
		}

		// AI drafts
		api.POST("/ai-generate", aiHandler.Generate)
	}

	return &Server{
		config: cfg,
		logger: logger,
		deps:   deps,
		router: router,
	}
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%s", s.config.APIHost, s.config.APIPort)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("Starting server on %s", addr)
	return s.server.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	defer s.deps.Close()
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// GetRouter returns the Gin router for serverless entry points.
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"catalog_service/config"
	"catalog_service/internal/delivery"
	grpcdelivery "catalog_service/internal/delivery/grpc"
	"catalog_service/internal/repository"
	"catalog_service/internal/seed"
	"catalog_service/internal/usecase"
	"catalog_service/migrations"
	"catalog_service/pkg/db"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// HTML content for the index page
const htmlIndexPageContent = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Catalog Service API</title>
    <style>
        body { font-family: Helvetica, Arial, sans-serif; line-height: 1.6; padding: 20px; background-color: #f9f9f9; color: #333; }
        h1, h2 { border-bottom: 1px solid #ccc; padding-bottom: 5px; }
        ul { list-style: none; padding-left: 0; }
        li { margin-bottom: 15px; background-color: #fff; padding: 10px; border: 1px solid #eee; border-radius: 4px; }
        code { background-color: #e8e8e8; padding: 3px 6px; border-radius: 3px; font-family: Consolas, Monaco, monospace; }
        .method { font-weight: bold; display: inline-block; width: 60px; }
    </style>
</head>
<body>
    <h1>Catalog Service API Endpoints</h1>

    <h2>Products</h2>
    <ul>
        <li><span class="method">GET</span> <code><a href="/products?page=0&size=10&sort=name,asc">/products</a></code> - Paged listing. Query: <code>page</code> (default 0), <code>size</code> (default 20, max 100), <code>sort=property[,asc|desc]</code> (repeatable; id, name, price, date), <code>name</code>, <code>categoryId</code>.</li>
        <li><span class="method">GET</span> <code>/products/{id}</code> - One product with its categories (e.g. <a href="/products/1">/products/1</a>).</li>
        <li><span class="method">POST</span> <code>/products</code> - Create. Body: <code>{"name", "description", "price", "imgUrl", "date", "categories": [{"id"}]}</code></li>
        <li><span class="method">PUT</span> <code>/products/{id}</code> - Replace a product. Same body as POST.</li>
        <li><span class="method">DELETE</span> <code>/products/{id}</code> - Delete a product.</li>
    </ul>

    <h2>Categories</h2>
    <ul>
        <li><span class="method">GET</span> <code><a href="/categories">/categories</a></code> - Paged listing (sort by id, name, createdAt).</li>
        <li><span class="method">GET</span> <code>/categories/{id}</code> - One category.</li>
        <li><span class="method">POST</span> <code>/categories</code> - Create. Body: <code>{"name": "string"}</code></li>
        <li><span class="method">PUT</span> <code>/categories/{id}</code> - Rename a category.</li>
        <li><span class="method">DELETE</span> <code>/categories/{id}</code> - Delete a category no product references.</li>
    </ul>

    <h2>Operations</h2>
    <ul>
        <li><span class="method">GET</span> <code><a href="/health">/health</a></code> - Liveness, pings the database.</li>
        <li><span class="method">GET</span> <code><a href="/metrics">/metrics</a></code> - Prometheus metrics.</li>
    </ul>
</body>
</html>
`

func serveIndexPage(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(htmlIndexPageContent))
}

func main() {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.JSONFormatter{})

	//  Configuration and Logging Setup
	cfg := config.LoadConfig(logger)
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Warnf("Invalid log level '%s', using info: %v", cfg.LogLevel, err)
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	gin.SetMode(cfg.GinMode)
	decimal.MarshalJSONWithoutQuotes = true

	logger.Info("Starting Catalog Service...")

	// --- Database Connection ---
	sqlDB, err := db.Connect(cfg.DatabaseURL, db.PoolConfig{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	})
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer sqlDB.Close()
	logger.Info("Database connection established.")

	if cfg.RunMigrations {
		if err := db.RunMigrations(sqlDB, migrations.FS, logger); err != nil {
			logger.Fatalf("Failed to migrate database: %v", err)
		}
	}

	gormDB, err := db.OpenGorm(sqlDB, logger)
	if err != nil {
		logger.Fatalf("Failed to initialise ORM: %v", err)
	}

	if cfg.SeedDemoData {
		if _, err := seed.Catalog(context.Background(), gormDB, logger); err != nil {
			logger.Fatalf("Failed to seed demo catalog: %v", err)
		}
	}

	// --- Dependency Injection ---
	store := repository.NewGormStore(gormDB, logger)
	productUseCase := usecase.NewProductUseCase(store, logger)
	categoryUseCase := usecase.NewCategoryUseCase(store, logger)
	logger.Info("Use cases initialized.")

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(sqlDB, "catalog"),
	)

	router := delivery.NewRouter(logger, delivery.NewMetrics(registry),
		delivery.NewProductHandler(productUseCase, logger),
		delivery.NewCategoryHandler(categoryUseCase, logger),
		delivery.NewHealthHandler(sqlDB, logger),
	)
	router.GET("/", serveIndexPage)
	logger.Info("API Routes registered.")

	httpServer := &http.Server{
		Addr:    cfg.HTTPPort,
		Handler: router,
	}
	go func() {
		logger.Infof("Starting HTTP server on port %s", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	lis, err := net.Listen("tcp", cfg.GrpcPort)
	if err != nil {
		logger.Fatalf("Failed to listen on port %s: %v", cfg.GrpcPort, err)
	}
	grpcServer := grpcdelivery.NewServer(logger)
	grpcServer.SetServing(true)
	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			logger.Fatalf("Failed to serve gRPC: %v", err)
		}
		logger.Info("gRPC server stopped serving.")
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Warn("Shutdown signal received...")

	grpcServer.GracefulStop()
	logger.Info("gRPC server gracefully stopped.")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Errorf("HTTP server forced to shut down: %v", err)
	}
	logger.Info("Catalog Service shut down gracefully.")
}

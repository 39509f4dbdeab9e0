package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"readmearchitect/app/config"
	"readmearchitect/app/usecase"
	"readmearchitect/internal/domain/repository"
	"readmearchitect/internal/infrastructure/auth"
	"readmearchitect/internal/infrastructure/llm"
	"readmearchitect/internal/infrastructure/metrics"
	"readmearchitect/internal/infrastructure/store/filesystem"
	mongorepo "readmearchitect/internal/infrastructure/store/mongodb"
	"readmearchitect/internal/infrastructure/transport"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// load config
	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.ValidateServer(); err != nil {
		log.Fatal(err)
	}

	// logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	wf := cfg.Workflow()
	if !wf.HasFlowID() || !wf.HasAPIKey() {
		// Basic mode still works; advanced calls fail with configuration_error.
		logger.Warn("langflow is not fully configured",
			"flow_id_set", wf.HasFlowID(),
			"api_key_set", wf.HasAPIKey(),
		)
	}

	// Connect to MongoDB
	mongoCtx, mongoCancel := context.WithTimeout(ctx, 30*time.Second)
	defer mongoCancel()
	mongoClient, err := mongo.Connect(mongoCtx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		logger.Error("mongo connect failed", "err", err)
		log.Fatalf("mongo connect: %v", err)
	}
	if err := mongoClient.Ping(mongoCtx, nil); err != nil {
		logger.Error("mongo ping failed", "err", err)
		log.Fatalf("mongo ping: %v", err)
	}
	logger.Info("connected to mongo", "db", cfg.Mongo.Database)
	db := mongoClient.Database(cfg.Mongo.Database)

	// Repositories
	userRepo := mongorepo.NewMongoUserRepo(db)
	projectRepo := mongorepo.NewMongoProjectRepo(db)

	var exporter repository.ReadmeExporter
	if cfg.Export.Dir != "" {
		readmeRepo, err := filesystem.NewReadmeRepository(cfg.Export.Dir)
		if err != nil {
			logger.Error("init readme export failed", "dir", cfg.Export.Dir, "err", err)
			return
		}
		exporter = readmeRepo
		logger.Info("readme export enabled", "dir", readmeRepo.GetBasePath())
	}

	// Workflow client
	invoker := llm.NewLangflowInvoker(cfg.Langflow.Timeout, logger)

	// Usecases / services
	generator := usecase.NewReadmeGeneratorService(invoker, logger)
	projectSvc := usecase.NewProjectService(generator, projectRepo, exporter, wf, logger)
	authSvc := usecase.NewAuthService(
		userRepo,
		auth.NewBcryptHasher(bcrypt.DefaultCost),
		auth.NewJWTIssuer(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL),
	)

	// Transport (HTTP handlers)
	handler := transport.NewHandler(authSvc, projectSvc, logger)

	// Router and server
	r := mux.NewRouter()
	handler.RegisterRoutes(r)
	corsHandler := handlers.CORS(
		handlers.AllowedOrigins(cfg.Server.CORSOrigins),
		handlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		handlers.AllowCredentials(),
	)(r)
	root := handlers.RecoveryHandler(
		handlers.RecoveryLogger(slog.NewLogLogger(logger.Handler(), slog.LevelError)),
	)(handlers.CompressHandler(corsHandler))

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      root,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("starting metrics server", "addr", cfg.MetricsAddr)
		if err := metrics.StartMetricsServer(cfg.MetricsAddr); err != nil {
			logger.Error("metrics server failed", "err", err)
		}
	}()

	// Start HTTP server
	go func() {
		logger.Info("starting HTTP server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server failed", "err", err)
			cancel()
		}
	}()

	// OS signal handling for graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		logger.Info("shutdown signal received")
	case <-ctx.Done():
		logger.Info("context cancelled")
	}

	// Shutdown sequence
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	logger.Info("shutting down http server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "err", err)
	}

	logger.Info("disconnecting mongo")
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		logger.Error("mongo disconnect error", "err", err)
	}

	logger.Info("service stopped")
}

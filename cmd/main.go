package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	grpcRouter "github.com/dtroode/rolodex/internal/api/grpc/router"
	grpcServer "github.com/dtroode/rolodex/internal/api/grpc/server"
	"github.com/dtroode/rolodex/internal/api/rest/handler"
	"github.com/dtroode/rolodex/internal/api/rest/middleware"
	"github.com/dtroode/rolodex/internal/api/rest/router"
	httpServer "github.com/dtroode/rolodex/internal/api/rest/server"
	"github.com/dtroode/rolodex/internal/api/web"
	"github.com/dtroode/rolodex/internal/config"
	"github.com/dtroode/rolodex/internal/logger"
	"github.com/dtroode/rolodex/internal/model"
	"github.com/dtroode/rolodex/internal/persistence"
	"github.com/dtroode/rolodex/internal/repository/postgres"
	"github.com/dtroode/rolodex/internal/server"
	"github.com/dtroode/rolodex/internal/service"
	"github.com/dtroode/rolodex/internal/storage/file"
	"github.com/dtroode/rolodex/internal/storage/memory"
	storage "github.com/dtroode/rolodex/internal/storage/minio"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel, cfg.LogFormat)

	logAppVersion()

	kv, pinger, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to initialize storage", "backend", cfg.Storage.Backend, "error", err)
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Error("failed to close storage", "error", err)
		}
	}()

	adapter := persistence.NewAdapter(kv, cfg.Storage.Key, logger.With("component", "persistence"))
	contacts, err := service.NewContacts(ctx, adapter, logger.With("component", "contacts"))
	if err != nil {
		logger.Fatal("failed to load contacts", "error", err)
	}

	mux := router.New(router.Options{
		Title:    cfg.HTTP.Title,
		Version:  buildVersion,
		Revision: buildCommit,
		Logger:   logger.With("component", "api"),
		Ready:    pinger,
		Contacts: contacts.Len,
	}, &handler.Contacts{
		Service:      contacts,
		ErrorHandler: middleware.ErrorHandler(logger),
	})
	web.NewHandler(cfg.HTTP.Title, contacts, logger.With("component", "web")).Register(mux)

	healthServer := health.NewServer()
	grpcSrv := grpcServer.NewGRPCServer(
		grpcRouter.New(healthServer, logger.With("component", "grpc")).Register(),
		fmt.Sprintf(":%s", cfg.GRPC.Port),
	)
	httpSrv := httpServer.NewHTTPServer(
		fmt.Sprintf(":%s", cfg.HTTP.Port),
		cfg.HTTP.ReadHeaderTimeout,
		mux,
		logger,
	)

	sl := server.NewSecurityLayer(cfg.GRPC.EnableHTTPS, cfg.GRPC.CertFileName, cfg.GRPC.PrivateKeyFileName)
	servers := []model.Server{httpSrv, grpcSrv}

	var wg sync.WaitGroup
	for _, s := range servers {
		wg.Add(1)
		go func(s model.Server) {
			defer wg.Done()
			logger.Info("starting server", "address", s.Address())
			if err := s.Start(sl); err != nil {
				logger.Error("failed to start server", "error", err, "address", s.Address())
				stop()
			}
		}(s)
	}
	healthServer.SetServingStatus(grpcRouter.ContactsService, healthpb.HealthCheckResponse_SERVING)

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")
	healthServer.SetServingStatus(grpcRouter.ContactsService, healthpb.HealthCheckResponse_NOT_SERVING)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	for _, s := range servers {
		if err := s.Stop(shutdownCtx); err != nil {
			logger.Error("error during server shutdown", "error", err, "address", s.Address())
		}
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}

// openStore connects the configured backend. The returned pinger is nil
// for backends without a health check.
func openStore(ctx context.Context, cfg *config.Config) (model.KeyValueStore, model.Pinger, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Storage.Backend {
	case config.BackendMemory:
		return memory.NewStore(), nil, noop, nil

	case config.BackendFile:
		s, err := file.NewStore(cfg.Storage.Dir)
		if err != nil {
			return nil, nil, nil, err
		}
		return s, s, noop, nil

	case config.BackendPostgres:
		conn, err := postgres.NewConection(ctx, cfg.Database.DSN)
		if err != nil {
			return nil, nil, nil, err
		}
		return postgres.NewKeyValueRepository(conn.DB()), conn, conn.Close, nil

	case config.BackendMinio:
		minioClient, err := minio.New(cfg.Minio.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.Minio.AccessKey, cfg.Minio.SecretKey, ""),
			Secure: cfg.Minio.UseSSL,
		})
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to create minio client: %w", err)
		}
		c, err := storage.NewClient(ctx, minioClient, cfg.Minio.Bucket)
		if err != nil {
			return nil, nil, nil, err
		}
		return c, c, noop, nil
	}

	return nil, nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
}

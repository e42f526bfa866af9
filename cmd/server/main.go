package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Skotchmaster/catalog_api/internal/config"
	pkgdb "github.com/Skotchmaster/catalog_api/internal/db"
	"github.com/Skotchmaster/catalog_api/internal/es"
	"github.com/Skotchmaster/catalog_api/internal/events"
	"github.com/Skotchmaster/catalog_api/internal/httpserver"
	"github.com/Skotchmaster/catalog_api/internal/logging"
	authmw "github.com/Skotchmaster/catalog_api/internal/middleware/auth"
	"github.com/Skotchmaster/catalog_api/internal/models"
	"github.com/Skotchmaster/catalog_api/internal/mykafka"
	"github.com/Skotchmaster/catalog_api/internal/repo"
	"github.com/Skotchmaster/catalog_api/internal/service"
	"github.com/Skotchmaster/catalog_api/internal/tokens"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(cfg.LogLevel).With("service", "catalog_api")
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var seed []models.Product
	if cfg.SeedProducts {
		seed = repo.SeedProducts()
	}

	var (
		products repo.ProductRepository
		ready    func(context.Context) error
		closers  []func() error
	)
	switch cfg.StoreDriver {
	case config.DriverSQLite:
		db, err := pkgdb.Open(ctx, cfg.SQLiteDSN)
		if err != nil {
			log.Fatalf("db open: %v", err)
		}
		closers = append(closers, func() error { return pkgdb.Close(db) })
		ready = func(ctx context.Context) error { return pkgdb.Ping(ctx, db) }

		gr, err := repo.NewGormRepo(ctx, db, seed...)
		if err != nil {
			log.Fatalf("product store: %v", err)
		}
		products = gr
	default:
		products = repo.NewMemoryRepo(seed...)
	}

	users, err := repo.HashSeedUsers(cfg.BcryptCost,
		repo.SeedUser{Username: cfg.AdminUsername, Password: cfg.AdminPassword, Role: models.RoleAdmin},
		repo.SeedUser{Username: cfg.UserUsername, Password: cfg.UserPassword, Role: models.RoleUser},
	)
	if err != nil {
		log.Fatalf("seed users: %v", err)
	}
	userStore, err := repo.NewUserRepo(users...)
	if err != nil {
		log.Fatalf("user store: %v", err)
	}

	var (
		publishers events.Multi
		searchHTTP *httpserver.SearchHTTP
	)

	if len(cfg.KafkaBrokers) > 0 {
		prod, err := mykafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			log.Fatalf("kafka: %v", err)
		}
		closers = append(closers, prod.Close)
		publishers = append(publishers, prod)
		logger.Info("kafka publisher enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}

	if cfg.ESURL != "" {
		esClient, err := es.NewClient(ctx, es.Config{URL: cfg.ESURL, Username: cfg.ESUser, Password: cfg.ESPassword})
		if err != nil {
			log.Fatalf("elasticsearch: %v", err)
		}
		indexer := es.NewIndexer(esClient, cfg.ESIndex)

		existing, err := products.GetProducts(ctx)
		if err != nil {
			log.Fatalf("list products: %v", err)
		}
		if err := indexer.Sync(ctx, existing); err != nil {
			log.Fatalf("elasticsearch sync: %v", err)
		}
		publishers = append(publishers, indexer)
		searchHTTP = &httpserver.SearchHTTP{Searcher: indexer}
		logger.Info("elasticsearch search enabled", "index", cfg.ESIndex, "synced", len(existing))
	}

	issuer := tokens.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)
	authSvc, err := service.NewAuthService(userStore, issuer, cfg.BcryptCost)
	if err != nil {
		log.Fatalf("auth service: %v", err)
	}

	e := httpserver.New(logger, &httpserver.Deps{
		CatalogHandler: &httpserver.CatalogHTTP{Svc: service.NewCatalogService(products, publishers)},
		AuthHandler:    &httpserver.AuthHTTP{Svc: authSvc},
		SearchHandler:  searchHTTP,
		Authenticator:  authmw.NewAuthenticator(issuer),
		Ready:          ready,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("Server running on port", "port", cfg.Port, "store", cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	for _, closeFn := range closers {
		if err := closeFn(); err != nil {
			logger.Error("close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}

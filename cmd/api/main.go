// @title        Doggy Daycare API
// @version      1.0
// @description  Reservas, check-in, facturación y reportes de un daycare canino.
// @BasePath     /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in           header
// @name         X-Api-Key
// @securityDefinitions.apikey BearerAuth
// @in           header
// @name         Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"doggy-daycare/internal/adapters/accounting/xero"
	"doggy-daycare/internal/adapters/auth/jwks"
	"doggy-daycare/internal/adapters/auth/jwtauth"
	"doggy-daycare/internal/adapters/notify/kafkapub"
	"doggy-daycare/internal/adapters/reports/xlsx"
	"doggy-daycare/internal/adapters/storage/memory"
	"doggy-daycare/internal/adapters/storage/postgres"
	"doggy-daycare/internal/daycare"
	"doggy-daycare/internal/platform/config"
	"doggy-daycare/internal/platform/logger"
	"doggy-daycare/internal/ports/auth"
	"doggy-daycare/internal/router"
)

func main() {
	log := logger.NewFromEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Error("config error", map[string]any{"err": err})
		os.Exit(1)
	}
	log = logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server error", map[string]any{"err": err})
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	log.Info("starting", cfg.Fields())

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	opts := daycare.Options{Logger: log}

	if len(cfg.KafkaBrokers) > 0 {
		pub, err := kafkapub.New(kafkapub.Config{
			Brokers: cfg.KafkaBrokers,
			Topic:   cfg.KafkaNotificationsTopic,
		}, log.With(map[string]any{"module": "kafkapub"}))
		if err != nil {
			return err
		}
		defer func() {
			if err := pub.Close(); err != nil {
				log.Warn("kafka writer close failed", map[string]any{"err": err})
			}
		}()
		opts.Dispatcher = pub
	}

	if cfg.AccountingBaseURL != "" {
		client, err := xero.NewClient(xero.Config{
			BaseURL: cfg.AccountingBaseURL,
			Token:   cfg.AccountingToken,
		})
		if err != nil {
			return err
		}
		opts.Accounting = client
	}

	sys := daycare.New(store, opts)

	if cfg.BootstrapEmail != "" {
		u, created, err := sys.Users.EnsureManager(ctx, cfg.BootstrapEmail, cfg.BootstrapPassword)
		if err != nil {
			return err
		}
		if created {
			log.Info("bootstrap manager created", map[string]any{"user_id": u.ID, "email": u.Email})
		}
	}

	ropts := router.Options{
		System:      sys,
		Logger:      log,
		DevAuth:     cfg.DevAuth,
		Spreadsheet: xlsx.New(),
	}

	// JWKS externo tiene prioridad para verificar; el secreto propio firma
	// los tokens de login en ambos casos.
	if cfg.JWTSecret != "" {
		signer, err := jwtauth.New(cfg.JWTSecret, cfg.JWTTTL, cfg.AppName)
		if err != nil {
			return err
		}
		ropts.Issuer = signer
		ropts.Verifier = signer
	}
	if cfg.JWKSURL != "" {
		v, err := jwks.New(ctx, cfg.JWKSURL, "", log.With(map[string]any{"module": "jwks"}))
		if err != nil {
			return err
		}
		defer v.Close()
		ropts.Verifier = v
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router.NewRouter(ropts),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", map[string]any{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openStore elige el adapter según DB_DSN.
func openStore(ctx context.Context, cfg *config.Config) (daycare.Store, func(), error) {
	if cfg.StorageKind() != "postgres" {
		return memory.NewStore(), func() {}, nil
	}

	db, err := postgres.Open(ctx, cfg.DBDSN)
	if err != nil {
		return nil, nil, err
	}
	migrateCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := postgres.Migrate(migrateCtx, db); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return postgres.NewStore(db), func() { _ = db.Close() }, nil
}

// compile-time: los adapters cumplen los puertos de auth.
var (
	_ auth.TokenIssuer  = (*jwtauth.Signer)(nil)
	_ auth.AuthVerifier = (*jwtauth.Signer)(nil)
	_ auth.AuthVerifier = (*jwks.Verifier)(nil)
)

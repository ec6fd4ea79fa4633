// @title           Recruiter Chat API
// @version         1.0
// @description     Direct messaging between recruiters and their candidates, with a candidate status pipeline and bulk campaigns.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
// @description     Type "Bearer" followed by a space and the JWT.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/codeK2004/Recruiters-Candidates-Chat-Application/internal/api"
	"github.com/codeK2004/Recruiters-Candidates-Chat-Application/internal/api/handler"
	"github.com/codeK2004/Recruiters-Candidates-Chat-Application/internal/api/metrics"
	"github.com/codeK2004/Recruiters-Candidates-Chat-Application/internal/core/ports"
	"github.com/codeK2004/Recruiters-Candidates-Chat-Application/internal/core/service"
	"github.com/codeK2004/Recruiters-Candidates-Chat-Application/internal/infrastructure/config"
	"github.com/codeK2004/Recruiters-Candidates-Chat-Application/internal/infrastructure/db/memory"
	mongostore "github.com/codeK2004/Recruiters-Candidates-Chat-Application/internal/infrastructure/db/mongo"
	redisstore "github.com/codeK2004/Recruiters-Candidates-Chat-Application/internal/infrastructure/db/redis"
	"github.com/codeK2004/Recruiters-Candidates-Chat-Application/internal/infrastructure/db/snapshot"
	"github.com/codeK2004/Recruiters-Candidates-Chat-Application/internal/infrastructure/eventbus"
	natsrelay "github.com/codeK2004/Recruiters-Candidates-Chat-Application/internal/infrastructure/nats"
	"github.com/codeK2004/Recruiters-Candidates-Chat-Application/internal/infrastructure/queue"
	"github.com/codeK2004/Recruiters-Candidates-Chat-Application/internal/infrastructure/token"
	"github.com/codeK2004/Recruiters-Candidates-Chat-Application/pkg/logger"
)

const (
	serviceName     = "recruiter-chat"
	devJWTSecret    = "dev-only-secret"
	shutdownTimeout = 10 * time.Second
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: serviceName,
		Env:     cfg.Env,
	})

	// --- Storage ---
	store, readiness, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	// --- Core ---
	bus := eventbus.New(logger.For(log, "eventbus"))
	users := snapshot.NewUserRepository(ctx, store, logger.For(log, "users"))
	messages := snapshot.NewMessageRepository(ctx, store, logger.For(log, "messages"))

	var secrets ports.SecretMatcher = service.PlaintextMatcher{}
	if cfg.SecretMode == config.SecretBcrypt {
		secrets = service.BcryptMatcher{}
	} else {
		log.Warn().Msg("SECRET_MODE=plaintext: credentials are stored unhashed")
	}

	directory := service.NewDirectoryService(users, bus, secrets, logger.For(log, "directory"))
	conversations := service.NewConversationService(users, messages, bus, logger.For(log, "conversations"))
	bulk := service.NewBulkService(directory, conversations, logger.For(log, "bulk"))

	detachMetrics := metrics.Observe(bus)
	defer detachMetrics()

	// --- Notification relay ---
	if cfg.NATS.URL != "" {
		pub, err := natsrelay.NewPublisher(ctx, natsrelay.Config{
			URL:           cfg.NATS.URL,
			SubjectPrefix: cfg.NATS.SubjectPrefix,
		}, logger.For(log, "nats"))
		if err != nil {
			return err
		}
		defer pub.Close()
		readiness["nats"] = pub

		relayCtx, cancelRelay := context.WithCancel(ctx)
		relay := queue.NewDispatcher(cfg.Relay.Workers, pub, logger.For(log, "relay"))
		relay.Start(relayCtx)
		detach := relay.Attach(bus)
		defer func() {
			detach()
			cancelRelay()
			relay.Wait()
		}()
		log.Info().Str("url", cfg.NATS.URL).Int("workers", cfg.Relay.Workers).Msg("notification relay enabled")
	}

	// --- HTTP ---
	secret := cfg.JWTSecret
	if secret == "" {
		log.Warn().Msg("JWT_SECRET not set, using development secret")
		secret = devJWTSecret
	}

	e := api.NewRouter(api.Dependencies{
		Directory:     directory,
		Conversations: conversations,
		Bulk:          bulk,
		Events:        bus,
		Tokens:        token.NewManager(secret, cfg.TokenTTL),
		Readiness:     readiness,
		Log:           logger.For(log, "http"),
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("backend", cfg.StoreBackend).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

// openStore connects the configured durable store. The returned map holds
// its readiness probe, if any; close releases the connection.
func openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (ports.KeyValueStore, map[string]handler.Pinger, func(), error) {
	readiness := map[string]handler.Pinger{}

	switch cfg.StoreBackend {
	case config.BackendRedis:
		client, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, nil, err
		}
		store := redisstore.NewStore(client, cfg.Redis.KeyPrefix)
		readiness["redis"] = store
		log.Info().Str("addr", cfg.Redis.Addr).Msg("redis store connected")
		return store, readiness, func() { _ = client.Close() }, nil

	case config.BackendMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			return nil, nil, nil, err
		}
		store := mongostore.NewStore(db, cfg.Mongo.Collection)
		readiness["mongo"] = store
		log.Info().Str("database", cfg.Mongo.Database).Msg("mongo store connected")
		return store, readiness, func() {
			dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = client.Disconnect(dctx)
		}, nil

	default:
		log.Warn().Msg("STORE_BACKEND=memory: state is lost on restart")
		return memory.NewStore(), readiness, func() {}, nil
	}
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/userorg/internal/application/auth"
	"github.com/amirhosseinghanipour/userorg/internal/application/organisation"
	"github.com/amirhosseinghanipour/userorg/internal/application/ports"
	"github.com/amirhosseinghanipour/userorg/internal/application/user"
	"github.com/amirhosseinghanipour/userorg/internal/config"
	infraauth "github.com/amirhosseinghanipour/userorg/internal/infrastructure/auth"
	httprouter "github.com/amirhosseinghanipour/userorg/internal/infrastructure/http"
	"github.com/amirhosseinghanipour/userorg/internal/infrastructure/http/handlers"
	"github.com/amirhosseinghanipour/userorg/internal/infrastructure/http/middleware"
	"github.com/amirhosseinghanipour/userorg/internal/infrastructure/persistence/postgres"
	"github.com/amirhosseinghanipour/userorg/internal/infrastructure/persistence/sqlite"
	"github.com/amirhosseinghanipour/userorg/internal/infrastructure/queue"
	"github.com/amirhosseinghanipour/userorg/internal/infrastructure/security"
	"github.com/amirhosseinghanipour/userorg/internal/infrastructure/webhook"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	log = newLogger(cfg)

	ctx := context.Background()

	var (
		stores ports.Stores
		tx     ports.Transactor
		db     handlers.Pinger
	)
	switch cfg.Database.Driver {
	case config.DriverSQLite:
		store, err := sqlite.Open(cfg.Database.SQLite)
		if err != nil {
			log.Fatal().Err(err).Msg("open sqlite")
		}
		defer store.Close()
		stores, tx, db = store.Stores(), store, store
	default:
		pool, err := postgres.Connect(ctx, cfg.Database.DSN(), cfg.Database.CACert)
		if err != nil {
			log.Fatal().Err(err).Msg("connect to database")
		}
		defer pool.Close()
		if err := postgres.Migrate(pool); err != nil {
			log.Fatal().Err(err).Msg("migrate database")
		}
		stores, tx, db = postgres.NewStores(pool), postgres.NewTransactor(pool), pool
	}
	log.Info().Str("driver", cfg.Database.Driver).Msg("database ready")

	var redisClient *redis.Client
	var taskEnqueuer ports.TaskEnqueuer = queue.NewNoopEnqueuer()
	var asynqWorker *queue.Worker
	if cfg.Redis.URL != "" {
		opt, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("parse REDIS_URL")
		}
		redisClient = redis.NewClient(opt)
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("redis ping failed; audit events will not be delivered")
			redisClient = nil
		}
	}
	if redisClient != nil {
		asynqOpt, err := asynq.ParseRedisURI(cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("parse REDIS_URL for asynq")
		}
		enq := queue.NewAsynqEnqueuer(asynqOpt, log)
		defer enq.Close()
		taskEnqueuer = enq

		var emitter ports.WebhookEmitter = webhook.NewNoopEmitter()
		if cfg.Webhook.URL != "" {
			var opts []webhook.HTTPEmitterOption
			if cfg.Webhook.Secret != "" {
				opts = append(opts, webhook.WithHeader("X-Webhook-Secret", cfg.Webhook.Secret))
			}
			emitter = webhook.NewHTTPEmitter(cfg.Webhook.URL, opts...)
		}
		asynqWorker = queue.NewWorker(asynqOpt, emitter, log)
		go func() {
			if err := asynqWorker.Run(); err != nil {
				log.Warn().Err(err).Msg("asynq worker stopped")
			}
		}()
	}

	hasher := security.NewBcryptHasher(cfg.Bcrypt.Cost)
	tokens := infraauth.NewTokenService(cfg.JWT.Secret, infraauth.WithTTL(cfg.JWT.Expiry))
	audit := handlers.NewAuditor(log, taskEnqueuer)

	registerUC := auth.NewRegisterUser(stores.Users, auth.NewProvisionUser(tx), hasher, tokens)
	loginUC := auth.NewLogin(stores.Users, hasher, tokens)

	authHandler := handlers.NewAuthHandler(registerUC, loginUC, audit, log)
	usersHandler := handlers.NewUsersHandler(user.NewGetUser(stores.Users), log)
	orgsHandler := handlers.NewOrganisationsHandler(
		organisation.NewCreateOrganisation(tx),
		organisation.NewGetOrganisation(stores.Organisations),
		organisation.NewListOrganisations(stores.Organisations),
		organisation.NewAddMember(stores.Organisations, stores.Users),
		audit,
		log,
	)

	router := httprouter.NewRouter(httprouter.RouterConfig{
		AuthHandler:          authHandler,
		UsersHandler:         usersHandler,
		OrganisationsHandler: orgsHandler,
		HealthHandler:        handlers.NewHealthHandler(db, redisClient),
		RequireJWT:           middleware.NewAuthValidator(tokens).Handler,
		UniqueEmail:          middleware.NewUniqueEmailGate(stores.Users).Handler,
		Log:                  log,
		Secure:               middleware.NewSecure(middleware.SecureOptions(cfg.Secure.IsDevelopment)),
		CORS:                 middleware.CORS(cfg.Secure.CORSAllowedOrigins, nil, nil),
		Metrics:              cfg.Metrics,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	if asynqWorker != nil {
		asynqWorker.Shutdown()
	}
	log.Info().Msg("server stopped")
}

func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	var log zerolog.Logger
	if cfg.Env == "development" {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		log = zerolog.New(os.Stderr)
	}
	return log.Level(level).With().Timestamp().Str("service", "userorg").Logger()
}

/**
 * @description
 * This is the main entry point for the payment-service. It loads configuration,
 * connects to PostgreSQL, RabbitMQ and Redis, wires the repository, intake
 * service, authentication gateway and QR builder into the HTTP router, and runs
 * the server until it receives a termination signal.
 *
 * @dependencies
 * - github.com/joho/godotenv: local .env loading.
 * - github.com/jackc/pgx/v5: PostgreSQL driver.
 * - github.com/redis/go-redis/v9: intake throttling backend.
 * - internal/api, internal/app, internal/auth, internal/config, internal/store.
 * - pkg/logger, pkg/qrencoder, pkg/rabbitmq.
 */

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/transfa/payment-service/internal/api"
	"github.com/transfa/payment-service/internal/app"
	"github.com/transfa/payment-service/internal/auth"
	"github.com/transfa/payment-service/internal/config"
	"github.com/transfa/payment-service/internal/store"
	"github.com/transfa/payment-service/pkg/logger"
	"github.com/transfa/payment-service/pkg/qrencoder"
	rmrabbit "github.com/transfa/payment-service/pkg/rabbitmq"
)

func main() {
	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("level=warn component=bootstrap msg=\".env load failed\" err=%v", err)
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("level=fatal component=bootstrap msg=\"config load failed\" err=%v", err)
	}

	root := logger.New(logger.Config{AppEnv: cfg.AppEnv, Level: cfg.LogLevel, Service: "payment-service"})
	bootLog := logger.Component(root, "bootstrap")
	bootLog.Info().Str("port", cfg.ServerPort).Str("env", cfg.AppEnv).Msg("starting payment-service")

	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		bootLog.Fatal().Err(err).Msg("database url parse failed")
	}
	poolConfig.MaxConns = 20
	poolConfig.MinConns = 2
	poolConfig.MaxConnLifetime = 30 * time.Minute
	poolConfig.MaxConnIdleTime = 5 * time.Minute
	// Disable prepared statement caching to stay compatible with poolers.
	poolConfig.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	dbpool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		bootLog.Fatal().Err(err).Msg("database connection failed")
	}
	defer dbpool.Close()

	repository := store.NewPostgresRepository(dbpool)
	schemaCtx, cancelSchema := context.WithTimeout(context.Background(), 15*time.Second)
	if err := repository.EnsureSchema(schemaCtx); err != nil {
		cancelSchema()
		bootLog.Fatal().Err(err).Msg("schema bootstrap failed")
	}
	cancelSchema()
	bootLog.Info().Msg("database connected")

	notifier := buildNotifier(cfg, root, bootLog)
	defer notifier.close()

	var limiter app.RateLimiter
	if redisClient := connectRedis(cfg, bootLog); redisClient != nil {
		defer redisClient.Close()
		limiter = app.NewRedisRateLimiter(redisClient, cfg.RedisRateLimitPrefix, cfg.PaymentRateLimitPerMinute)
	}

	sessions := auth.NewSessionStore(cfg.SessionTTL(), logger.Component(root, "auth"))
	defer sessions.Close()
	credentials := auth.NewStaticCredentials(cfg.DashboardUsername, cfg.DashboardPassword)
	if cfg.DashboardPasswordHash != "" {
		credentials = auth.NewHashedCredentials(cfg.DashboardUsername, cfg.DashboardPasswordHash)
	}
	if !credentials.Configured() {
		bootLog.Warn().Msg("dashboard credentials not configured; every login will be rejected")
	}
	gateway := auth.NewGateway(credentials, sessions, logger.Component(root, "auth"))

	paymentService := app.NewService(
		repository,
		notifier.notifier,
		cfg.NotificationTimeout(),
		logger.Component(root, "intake"),
	)
	qrBuilder := app.NewQRBuilder(qrencoder.New(), cfg.QRImageSize, logger.Component(root, "qr"))

	handlers := api.NewHandlers(paymentService, gateway, qrBuilder, logger.Component(root, "api"))
	router := api.NewRouter(handlers, api.RouterOptions{
		AllowedOrigins: cfg.AllowedOrigins(),
		RateLimiter:    limiter,
	})

	httpLog := logger.Component(root, "http")
	serverAddr := fmt.Sprintf(":%s", cfg.ServerPort)
	server := &http.Server{
		Addr:              serverAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		httpLog.Info().Str("addr", serverAddr).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			httpLog.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	httpLog.Info().Msg("shutdown started")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		httpLog.Error().Err(err).Msg("shutdown failed")
	}

	httpLog.Info().Msg("shutdown complete")
}

type notifierHandle struct {
	notifier  *app.EventNotifier
	publisher rmrabbit.Publisher
}

func (h notifierHandle) close() {
	if h.publisher != nil {
		h.publisher.Close()
	}
}

// buildNotifier returns an unconfigured notifier when RABBITMQ_URL is unset and
// a log-only fallback when the broker cannot be reached at startup.
func buildNotifier(cfg config.Config, root logger.Logger, bootLog logger.Logger) notifierHandle {
	if strings.TrimSpace(cfg.RabbitMQURL) == "" {
		bootLog.Warn().Str("env", "RABBITMQ_URL").Msg("rabbitmq url missing; payment notifications disabled")
		return notifierHandle{notifier: app.NewEventNotifier(nil, cfg.PaymentEventsExchange)}
	}

	brokerLog := logger.Component(root, "notifier")
	var publisher rmrabbit.Publisher
	producer, err := rmrabbit.NewEventProducer(cfg.RabbitMQURL, brokerLog)
	if err != nil {
		bootLog.Warn().Err(err).Str("url", rmrabbit.MaskURL(cfg.RabbitMQURL)).Msg("rabbitmq producer unavailable; using fallback")
		publisher = &rmrabbit.EventProducerFallback{Log: brokerLog}
	} else {
		bootLog.Info().Str("url", rmrabbit.MaskURL(cfg.RabbitMQURL)).Msg("rabbitmq producer connected")
		publisher = producer
	}

	return notifierHandle{
		notifier:  app.NewEventNotifier(publisher, cfg.PaymentEventsExchange),
		publisher: publisher,
	}
}

// connectRedis returns nil when throttling is disabled or Redis is unreachable.
func connectRedis(cfg config.Config, bootLog logger.Logger) *redis.Client {
	if cfg.PaymentRateLimitPerMinute <= 0 {
		bootLog.Info().Msg("payment rate limiting disabled")
		return nil
	}
	if strings.TrimSpace(cfg.RedisURL) == "" {
		bootLog.Warn().Str("env", "REDIS_URL").Msg("redis url missing; payment rate limiting disabled")
		return nil
	}

	redisOptions, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		bootLog.Warn().Err(err).Msg("redis url parse failed; payment rate limiting disabled")
		return nil
	}

	client := redis.NewClient(redisOptions)
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		bootLog.Warn().Err(err).Msg("redis ping failed; payment rate limiting disabled")
		client.Close()
		return nil
	}
	bootLog.Info().Msg("redis connected")
	return client
}

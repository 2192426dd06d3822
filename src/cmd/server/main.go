package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"zenumljpg/src/helper/env"
	"zenumljpg/src/infra/kafka"
	"zenumljpg/src/infra/postgres"
	"zenumljpg/src/infra/redis"
	"zenumljpg/src/repositories"
	"zenumljpg/src/server"
	"zenumljpg/src/services/auth"
	"zenumljpg/src/services/diagram"
	"zenumljpg/src/services/events"
	"zenumljpg/src/services/render"
	"zenumljpg/src/services/zenuml"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

// insecureDefaultSecret is the documented fallback when JWT_SECRET is unset.
// Startup logs a loud warning when it is in use.
const insecureDefaultSecret = "fallback_secret_key"

func main() {
	log.SetOutput(os.Stdout)
	log.Println("Starting ZenUML-to-JPG API server...")

	app := fx.New(
		// Providers
		fx.Provide(
			newLogger,
			newSQLClient,
			newRedisClient,
			newKafkaClient,
			newEventPublisher,
			newTokenIssuer,
			newDiagramRepository,
			newCachedDiagramRepository,
			newUserRepository,
			newDiagramService,
			newAuthService,
			newServer,
		),

		// Invocations
		fx.Invoke(registerServerHooks),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	<-app.Done()
}

func newLogger() *slog.Logger {
	logLevel := env.GetString("LOG_LEVEL", "info")
	var level slog.Level

	switch logLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	logger := slog.New(h)
	slog.SetDefault(logger)
	return logger
}

func newSQLClient() (*pgxpool.Pool, error) {
	dbHost := env.MustGetString("DB_HOST")
	dbPort := env.GetString("DB_PORT", "5432")
	dbname := env.MustGetString("DB_NAME")
	dbUser := env.MustGetString("DB_USER")
	dbPassword := env.MustGetString("DB_PASSWORD")
	maxConnections := env.GetInt("DB_MAX_POOL_CONNECTIONS", 25)

	return postgres.NewPostgresClient(dbHost, dbPort, dbname, dbUser, dbPassword, maxConnections)
}

// newRedisClient returns nil when REDIS_ADDRS is unset; reads then go
// straight to Postgres.
func newRedisClient(logger *slog.Logger) *redis.RedisClient {
	addrs := env.GetString("REDIS_ADDRS")
	if addrs == "" {
		logger.Info("REDIS_ADDRS not set, diagram read cache disabled")
		return nil
	}

	poolSize := env.GetInt("REDIS_POOL_SIZE", 50)
	ttl := time.Duration(env.GetInt("REDIS_CACHE_TTL_SECONDS", 3600)) * time.Second

	return redis.NewRedisClient(addrs, poolSize, ttl)
}

// newKafkaClient returns nil when KAFKA_BROKERS is unset; domain events are
// then disabled.
func newKafkaClient(logger *slog.Logger) (*kafka.KafkaClient, error) {
	brokers := env.GetString("KAFKA_BROKERS")
	if brokers == "" {
		logger.Info("KAFKA_BROKERS not set, domain events disabled")
		return nil, nil
	}

	return kafka.NewKafkaClient(brokers)
}

func newEventPublisher(logger *slog.Logger, kafkaClient *kafka.KafkaClient) *events.DomainEventPublisher {
	topic := env.GetString("KAFKA_EVENTS_TOPIC", "zenumljpg.domain-events")
	return events.NewDomainEventPublisher(logger, kafkaClient, topic)
}

func newTokenIssuer(logger *slog.Logger) *auth.TokenIssuer {
	secret := env.GetString("JWT_SECRET")
	if secret == "" {
		logger.Warn("JWT_SECRET not set, falling back to an INSECURE default; do not run this in production")
		secret = insecureDefaultSecret
	}

	ttl := time.Duration(env.GetInt("TOKEN_TTL_MINUTES", 30)) * time.Minute

	return auth.NewTokenIssuer(secret, ttl)
}

func newDiagramRepository(pool *pgxpool.Pool) *repositories.DiagramRepository {
	return repositories.NewDiagramRepository(pool)
}

func newCachedDiagramRepository(diagramRepository *repositories.DiagramRepository, redisClient *redis.RedisClient) *repositories.CachedDiagramRepository {
	return repositories.NewCachedDiagramRepository(diagramRepository, redisClient)
}

func newUserRepository(pool *pgxpool.Pool) *repositories.UserRepository {
	return repositories.NewUserRepository(pool)
}

func newDiagramService(
	logger *slog.Logger,
	cachedDiagramRepository *repositories.CachedDiagramRepository,
	eventPublisher *events.DomainEventPublisher,
) *diagram.DiagramService {
	publicBaseURL := env.GetString("PUBLIC_BASE_URL", "http://localhost:8888")

	return diagram.NewDiagramService(
		logger,
		zenuml.NewExtractor(),
		render.NewRenderer(),
		cachedDiagramRepository,
		eventPublisher,
		publicBaseURL,
	)
}

func newAuthService(
	logger *slog.Logger,
	userRepository *repositories.UserRepository,
	tokens *auth.TokenIssuer,
	eventPublisher *events.DomainEventPublisher,
) *auth.AuthService {
	return auth.NewAuthService(logger, userRepository, tokens, eventPublisher)
}

func newServer(
	logger *slog.Logger,
	pool *pgxpool.Pool,
	redisClient *redis.RedisClient,
	diagramService *diagram.DiagramService,
	authService *auth.AuthService,
	tokens *auth.TokenIssuer,
) *server.Server {
	port := env.GetInt("SERVER_PORT", 8888)

	healthChecks := []server.HealthCheck{
		{Name: "postgres", Check: pool.Ping},
	}
	if redisClient != nil {
		healthChecks = append(healthChecks, server.HealthCheck{Name: "redis", Check: redisClient.HealthCheck})
	}

	return server.NewServer(logger, port, diagramService, authService, tokens, healthChecks)
}

// registerServerHooks ties the HTTP server and the process-wide clients to
// the fx lifecycle: everything opens at process start and closes at shutdown.
func registerServerHooks(
	lc fx.Lifecycle,
	srv *server.Server,
	pool *pgxpool.Pool,
	redisClient *redis.RedisClient,
	kafkaClient *kafka.KafkaClient,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.Start(); err != nil && err != http.ErrServerClosed {
					log.Fatalf("Server failed: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()

			log.Println("Shutting down server...")
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Printf("Server forced to shutdown: %v", err)
				return err
			}

			pool.Close()
			if redisClient != nil {
				if err := redisClient.Close(); err != nil {
					log.Printf("Failed to close redis client: %v", err)
				}
			}
			if kafkaClient != nil {
				if err := kafkaClient.Close(); err != nil {
					log.Printf("Failed to close kafka client: %v", err)
				}
			}

			log.Println("Server exited gracefully")
			return nil
		},
	})
}

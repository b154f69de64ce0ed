package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"

	"github.com/sbilibin2017/warbler/internal/handlers"
	"github.com/sbilibin2017/warbler/internal/jwt"
	"github.com/sbilibin2017/warbler/internal/logger"
	"github.com/sbilibin2017/warbler/internal/metrics"
	"github.com/sbilibin2017/warbler/internal/middlewares"
	"github.com/sbilibin2017/warbler/internal/repositories"
	"github.com/sbilibin2017/warbler/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/sbilibin2017/warbler/docs"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// config holds everything read from the environment.
type config struct {
	AppHost     string
	AppPort     string
	AppEnv      string
	LogLevel    string
	DatabaseURL string

	PGMaxOpenConns int
	PGMaxIdleConns int

	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	RedisExpSecond int

	KafkaBrokers     []string
	KafkaFollowTopic string

	JWTSecretKey string
	JWTExpSecond int
}

// @title Warbler API
// @version 1.0.0
// @description Social network service: signup, sessions, follows and messages
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name warbler_session
func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Starting warbler version %s, commit %s, build %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns
// the application, database, Redis, Kafka, logging, and JWT configuration.
func parseConfig(path string) (cfg config, err error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}

	// Application config
	cfg.AppHost = getEnv("APP_HOST", "localhost")
	cfg.AppPort = getEnv("APP_PORT", "8080")
	cfg.AppEnv = getEnv("APP_ENV", "production")
	cfg.LogLevel = getEnv("APP_LOG_LEVEL", "info")

	// PostgreSQL config
	cfg.DatabaseURL = getEnv("DATABASE_URL", "postgres://localhost:5432/warbler?sslmode=disable")
	if cfg.PGMaxOpenConns, err = strconv.Atoi(getEnv("POSTGRES_MAX_OPEN_CONNS", "16")); err != nil {
		return
	}
	if cfg.PGMaxIdleConns, err = strconv.Atoi(getEnv("POSTGRES_MAX_IDLE_CONNS", "8")); err != nil {
		return
	}

	// Redis config, an empty address disables the user cache
	cfg.RedisAddr = getEnv("REDIS_ADDR", "")
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	if cfg.RedisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0")); err != nil {
		return
	}
	if cfg.RedisExpSecond, err = strconv.Atoi(getEnv("REDIS_EXP_SECOND", "300")); err != nil {
		return
	}

	// Kafka config, no brokers disables follow events
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}
	cfg.KafkaFollowTopic = getEnv("KAFKA_FOLLOW_TOPIC", "warbler.follows")

	// JWT config
	cfg.JWTSecretKey = getEnv("JWT_SECRET_KEY", "it's a secret")
	if cfg.JWTExpSecond, err = strconv.Atoi(getEnv("JWT_EXP_SECOND", "86400")); err != nil {
		return
	}

	return
}

// run initializes the logger, database, Redis, Kafka writer, and HTTP server.
// It sets up routes, applies middleware, and handles graceful shutdown.
func run(ctx context.Context, cfg config) error {
	// Initialize logger
	if err := logger.Initialize(cfg.LogLevel, cfg.AppEnv == "development"); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Sync()
	log := logger.Log
	log.Infof("Logger initialized with level %s", cfg.LogLevel)

	// Connect to PostgreSQL
	db, err := sqlx.ConnectContext(ctx, "pgx", cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("PostgreSQL connection error: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.PGMaxOpenConns)
	db.SetMaxIdleConns(cfg.PGMaxIdleConns)

	if err := repositories.Migrate(ctx, db, 5); err != nil {
		return fmt.Errorf("schema migration failed: %w", err)
	}

	// Connect to Redis
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("Redis connection error: %w", err)
		}
		defer rdb.Close()
	}

	// Kafka writer for follow events
	var kafkaWriter services.KafkaWriter
	if len(cfg.KafkaBrokers) > 0 {
		w := &kafka.Writer{
			Addr:                   kafka.TCP(cfg.KafkaBrokers...),
			Topic:                  cfg.KafkaFollowTopic,
			Balancer:               &kafka.Hash{},
			AllowAutoTopicCreation: true,
		}
		defer w.Close()
		kafkaWriter = w
	}

	tokens := jwt.New(
		jwt.WithSecretKey(cfg.JWTSecretKey),
		jwt.WithExpiration(time.Duration(cfg.JWTExpSecond)*time.Second),
	)

	r := newRouter(db, rdb, kafkaWriter, tokens, time.Duration(cfg.RedisExpSecond)*time.Second)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s:%s/swagger/doc.json", cfg.AppHost, cfg.AppPort)),
	))

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.AppHost, cfg.AppPort),
		Handler: r,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		log.Infof("HTTP server listening on %s:%s", cfg.AppHost, cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("HTTP server shutdown error", "error", err)
	}

	log.Info("HTTP server stopped gracefully")
	return nil
}

// newRouter wires repositories, services and handlers into the HTTP router.
// rdb and kafkaWriter may be nil.
func newRouter(
	db *sqlx.DB,
	rdb *redis.Client,
	kafkaWriter services.KafkaWriter,
	tokens *jwt.JWT,
	cacheExp time.Duration,
) *chi.Mux {
	// Initialize repositories
	userReadRepo := repositories.NewUserReadRepository(db, middlewares.GetTxFromContext)
	userWriteRepo := repositories.NewUserWriteRepository(db, middlewares.GetTxFromContext)
	followReadRepo := repositories.NewFollowReadRepository(db, middlewares.GetTxFromContext)
	followWriteRepo := repositories.NewFollowWriteRepository(db, middlewares.GetTxFromContext)
	messageReadRepo := repositories.NewMessageReadRepository(db, middlewares.GetTxFromContext)
	messageWriteRepo := repositories.NewMessageWriteRepository(db, middlewares.GetTxFromContext)

	var userCache services.UserCache
	if rdb != nil {
		userCache = repositories.NewUserCacheRepository(rdb, cacheExp)
	}

	// Initialize services
	authService := services.NewAuthService(userReadRepo, userWriteRepo, tokens)
	userService := services.NewUserService(userReadRepo, userWriteRepo, userCache)
	followService := services.NewFollowService(followReadRepo, followWriteRepo, kafkaWriter)
	messageService := services.NewMessageService(messageReadRepo, messageWriteRepo)

	// Setup router
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(logger.Log))
	r.Use(middlewares.MetricsMiddleware)

	r.Handle("/metrics", metrics.Handler())

	// Public routes
	r.With(middlewares.TxMiddleware(db)).Post("/signup", handlers.NewSignupHandler(authService, authService))
	r.Post("/login", handlers.NewLoginHandler(authService))
	r.Post("/logout", handlers.NewLogoutHandler())
	r.Get("/users/{user_id}", handlers.NewUserProfileHandler(userService, messageService))
	r.Get("/messages/{message_id}", handlers.NewGetMessageHandler(messageService))

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(middlewares.AuthMiddleware(tokens))

		r.Get("/", handlers.NewHomeHandler(messageService))
		r.Get("/users/{user_id}/following", handlers.NewFollowingHandler(userService, followService))
		r.Get("/users/{user_id}/followers", handlers.NewFollowersHandler(userService, followService))

		r.Group(func(r chi.Router) {
			r.Use(middlewares.TxMiddleware(db))

			r.Post("/users/follow/{follow_id}", handlers.NewFollowHandler(followService))
			r.Post("/users/stop-following/{follow_id}", handlers.NewStopFollowingHandler(followService))
			r.Post("/users/delete", handlers.NewDeleteUserHandler(userService))
			r.Post("/messages/new", handlers.NewCreateMessageHandler(messageService))
			r.Post("/messages/{message_id}/delete", handlers.NewDeleteMessageHandler(messageService))
		})
	})

	return r
}

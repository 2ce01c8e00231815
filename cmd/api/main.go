package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/Daksh-create349/stock-Master/internal/api/handlers"
	"github.com/Daksh-create349/stock-Master/internal/application"
	"github.com/Daksh-create349/stock-Master/internal/domain"
	"github.com/Daksh-create349/stock-Master/internal/infrastructure/gemini"
	kafkaPublisher "github.com/Daksh-create349/stock-Master/internal/infrastructure/kafka"
	"github.com/Daksh-create349/stock-Master/internal/infrastructure/memory"
	"github.com/Daksh-create349/stock-Master/internal/infrastructure/seed"
	"github.com/Daksh-create349/stock-Master/pkg/cloudevents"
	"github.com/Daksh-create349/stock-Master/pkg/kafka"
	"github.com/Daksh-create349/stock-Master/pkg/logging"
	"github.com/Daksh-create349/stock-Master/pkg/metrics"
	"github.com/Daksh-create349/stock-Master/pkg/middleware"
	"github.com/Daksh-create349/stock-Master/pkg/tracing"
)

const serviceName = "stockmaster"

func main() {
	// A missing .env file is fine; the environment still applies
	_ = godotenv.Load()

	config := loadConfig()

	logConfig := logging.DefaultConfig(serviceName)
	logConfig.Level = logging.ParseLevel(getEnv("LOG_LEVEL", "info"))
	logConfig.Environment = config.Environment
	logger := logging.New(logConfig)
	logger.SetDefault()

	logger.Info("Starting StockMaster API")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, config, logger, nil); err != nil {
		logger.WithError(err).Error("Server failed")
		os.Exit(1)
	}
	logger.Info("Server stopped")
}

// Config holds application configuration
type Config struct {
	ServerAddr        string
	Environment       string
	CORSOrigins       []string
	GeofencingEnabled bool
	NotificationTTL   time.Duration
	DemoProducts      int
	DemoContacts      int
	AI                *gemini.Config
	KafkaEnabled      bool
	Kafka             *kafka.Config
	Tracing           *tracing.Config
}

func loadConfig() *Config {
	kafkaConfig := kafka.DefaultConfig()
	kafkaConfig.Brokers = kafka.ParseBrokers(getEnv("KAFKA_BROKERS", "localhost:9092"))

	tracingConfig := tracing.DefaultConfig(serviceName)
	tracingConfig.OTLPEndpoint = getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317")
	tracingConfig.Environment = getEnv("ENVIRONMENT", "development")
	tracingConfig.Enabled = getEnvBool("TRACING_ENABLED", false)

	return &Config{
		ServerAddr:        getEnv("SERVER_ADDR", ":8080"),
		Environment:       getEnv("ENVIRONMENT", "development"),
		CORSOrigins:       splitList(getEnv("CORS_ALLOWED_ORIGINS", "")),
		GeofencingEnabled: getEnvBool("GEOFENCING_ENABLED", false),
		NotificationTTL:   getEnvDuration("NOTIFICATION_TTL", 5*time.Second),
		DemoProducts:      getEnvInt("SEED_DEMO_PRODUCTS", 150),
		DemoContacts:      getEnvInt("SEED_DEMO_CONTACTS", 80),
		AI: &gemini.Config{
			APIKey:  getEnv("API_KEY", ""),
			Model:   getEnv("AI_MODEL", gemini.DefaultModel),
			Timeout: getEnvDuration("AI_TIMEOUT", 30*time.Second),
		},
		KafkaEnabled: getEnvBool("KAFKA_ENABLED", false),
		Kafka:        kafkaConfig,
		Tracing:      tracingConfig,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func getEnvBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(getEnv(key, strconv.FormatBool(defaultValue)))
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	v, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

// app is the assembled service. close releases what build started.
type app struct {
	router *gin.Engine
	close  func()
}

// run serves until ctx is done. When ready is non-nil it receives the
// bound listener address once the server accepts connections.
func run(ctx context.Context, config *Config, logger *logging.Logger, ready chan<- string) error {
	if config.Tracing != nil && config.Tracing.Enabled {
		tracerProvider, err := tracing.Initialize(ctx, config.Tracing)
		if err != nil {
			// Continue without tracing
			logger.WithError(err).Error("Failed to initialize tracing")
		} else {
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
					logger.WithError(err).Error("Failed to shutdown tracer")
				}
			}()
			logger.Info("Tracing initialized", "endpoint", config.Tracing.OTLPEndpoint)
		}
	}

	m := metrics.New(metrics.DefaultConfig(serviceName))
	logger.Info("Metrics initialized")

	a, err := build(ctx, config, logger, m)
	if err != nil {
		return err
	}
	defer a.close()

	listener, err := net.Listen("tcp", config.ServerAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", config.ServerAddr, err)
	}

	srv := &http.Server{
		Handler:      a.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 45 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()
	logger.Info("Server started", "addr", listener.Addr().String())
	if ready != nil {
		ready <- listener.Addr().String()
	}

	select {
	case err := <-serveErr:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	<-serveErr
	return nil
}

// build seeds the store and wires services, handlers and middleware
func build(ctx context.Context, config *Config, logger *logging.Logger, m *metrics.Metrics) (*app, error) {
	opts := seed.DefaultOptions()
	opts.DemoProducts = config.DemoProducts
	opts.DemoContacts = config.DemoContacts
	opts.Now = time.Now()

	dataset, err := seed.Default(opts)
	if err != nil {
		return nil, fmt.Errorf("load seed data: %w", err)
	}

	store := memory.NewStore()
	if err := seed.Apply(ctx, store, dataset); err != nil {
		return nil, fmt.Errorf("apply seed data: %w", err)
	}
	products, operations, contacts := store.Counts()
	logger.Info("Store seeded", "products", products, "operations", operations, "contacts", contacts)

	registry := memory.NewWarehouseRegistry(dataset.Warehouses)

	notifyConfig := application.DefaultNotificationConfig()
	notifyConfig.TTL = config.NotificationTTL
	notifications := application.NewNotificationCenter(notifyConfig, logger, m)
	if err := notifications.Start(ctx); err != nil {
		return nil, err
	}
	closers := []func(){func() { _ = notifications.Stop() }}
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	workspace := application.NewWorkspace(application.WorkspaceConfig{
		GeofencingEnabled: config.GeofencingEnabled,
		Theme:             application.ThemeLight,
	}, registry, notifications, logger)

	var publisher domain.EventPublisher = application.NoopPublisher{}
	if config.KafkaEnabled {
		producer := kafka.NewResilientProducer(kafka.NewProducer(config.Kafka), m, logger)
		closers = append(closers, func() {
			if err := producer.Close(); err != nil {
				logger.WithError(err).Warn("Failed to close Kafka producer")
			}
		})
		publisher = kafkaPublisher.NewEventPublisher(producer, cloudevents.NewEventFactory(cloudevents.SourceStockMaster), workspace)
		logger.Info("Kafka producer initialized", "brokers", config.Kafka.Brokers)
	}

	inventory := application.NewInventoryService(store, store.Products(), registry, workspace, publisher, notifications, m, logger)
	catalog := application.NewCatalogService(store, store.Products(), store.Operations(), store.Contacts(), registry, workspace, publisher, notifications, logger)
	dashboard := application.NewDashboardService(store.Products(), store.Operations(), m)

	model, err := gemini.New(ctx, config.AI, logger)
	if err != nil {
		closeAll()
		return nil, err
	}
	assistant, err := application.NewAssistantService(model, catalog, store.Products(), store.Operations(), store.Contacts(), store.References(), workspace, m, logger)
	if err != nil {
		closeAll()
		return nil, err
	}

	routerConfig := middleware.DefaultConfig(serviceName, logger.Logger)
	routerConfig.CORSOrigins = config.CORSOrigins
	routerConfig.Metrics = m
	routerConfig.Tracing = middleware.DefaultTracingConfig(serviceName)
	routerConfig.Ready = func() error {
		if p, _, _ := store.Counts(); p == 0 {
			return errors.New("store is empty")
		}
		return nil
	}
	router := gin.New()
	middleware.Setup(router, routerConfig)

	api := router.Group("/api/v1", handlers.SessionUser(workspace))
	for _, h := range []interface{ RegisterRoutes(*gin.RouterGroup) }{
		handlers.NewProductHandlers(catalog, inventory, logger),
		handlers.NewOperationHandlers(catalog, inventory, logger),
		handlers.NewContactHandlers(catalog, logger),
		handlers.NewWorkspaceHandlers(workspace, logger),
		handlers.NewDashboardHandlers(dashboard, notifications, logger),
		handlers.NewAssistantHandlers(assistant, logger),
	} {
		h.RegisterRoutes(api)
	}

	return &app{router: router, close: closeAll}, nil
}

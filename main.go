package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Gobusters/ectoenv"
	"github.com/Gobusters/ectoinject"
	"github.com/Gobusters/ectologger"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/Ramsey-B/juniper/config"
	"github.com/Ramsey-B/juniper/internal/clients/defenceassociation"
	"github.com/Ramsey-B/juniper/internal/clients/listing"
	materialclient "github.com/Ramsey-B/juniper/internal/clients/material"
	"github.com/Ramsey-B/juniper/internal/clients/refdata"
	"github.com/Ramsey-B/juniper/internal/clients/usersgroups"
	"github.com/Ramsey-B/juniper/internal/handlers"
	"github.com/Ramsey-B/juniper/internal/repositories/casedefendant"
	"github.com/Ramsey-B/juniper/internal/repositories/courtapplication"
	"github.com/Ramsey-B/juniper/internal/repositories/courtdocument"
	"github.com/Ramsey-B/juniper/internal/repositories/courtform"
	"github.com/Ramsey-B/juniper/internal/repositories/defendantmatch"
	"github.com/Ramsey-B/juniper/internal/repositories/hearing"
	"github.com/Ramsey-B/juniper/internal/repositories/prosecutioncase"
	"github.com/Ramsey-B/juniper/internal/repositories/shareddocument"
	"github.com/Ramsey-B/juniper/internal/repositories/splitmergelink"
	"github.com/Ramsey-B/juniper/pkg/aggregation"
	"github.com/Ramsey-B/juniper/pkg/database"
	"github.com/Ramsey-B/juniper/pkg/httpclient"
	"github.com/Ramsey-B/juniper/pkg/jsontree"
	"github.com/Ramsey-B/juniper/pkg/kafka"
	"github.com/Ramsey-B/juniper/pkg/logging"
	"github.com/Ramsey-B/juniper/pkg/metrics"
	"github.com/Ramsey-B/juniper/pkg/middleware"
	"github.com/Ramsey-B/juniper/pkg/queries"
	"github.com/Ramsey-B/juniper/pkg/routes/health"
	"github.com/Ramsey-B/juniper/pkg/routes/query"
	"github.com/Ramsey-B/juniper/pkg/startup"
	"github.com/Ramsey-B/juniper/pkg/tracing"
	"github.com/Ramsey-B/juniper/pkg/tracing/exporters"
)

var version = "dev"

func main() {
	_ = godotenv.Load()

	var cfg config.Config
	if err := ectoenv.BindEnv(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, zapLogger, err := logging.NewLogger(logging.Config{
		AppName: cfg.AppName,
		Level:   cfg.LogLevel,
		Pretty:  cfg.PrettyLogs,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = zapLogger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.TracingEnabled {
		shutdown, err := setupTracing(ctx, cfg)
		if err != nil {
			logger.WithError(err).Error("Failed to set up tracing")
			os.Exit(1)
		}
		defer shutdown(context.Background())
	}

	db, err := database.Connect(database.ConnectionConfig{
		Driver:          cfg.DatabaseDriver,
		Host:            cfg.DatabaseHost,
		Port:            cfg.DatabasePort,
		UserName:        cfg.DatabaseUserName,
		Password:        cfg.DatabasePassword,
		Name:            cfg.DatabaseName,
		SSLMode:         cfg.DatabaseSSLMode,
		MaxOpenConns:    cfg.DatabaseMaxOpenConns,
		MaxIdleConns:    cfg.DatabaseMaxIdleConns,
		ConnMaxLifetime: cfg.DatabaseConnMaxLifetime,
	}, logger)
	if err != nil {
		logger.WithError(err).Error("Failed to connect to database")
		os.Exit(1)
	}
	defer db.Close()

	driver, err := migratepg.WithInstance(db.Unsafe().DB, &migratepg.Config{})
	if err != nil {
		logger.WithError(err).Error("Failed to create migration driver")
		os.Exit(1)
	}
	migrations := database.NewMigrationService(logger, &database.MigrationConfig{
		MigrationFolderPath: cfg.DatabaseMigrationFolderPath,
		Version:             uint(cfg.DatabaseMigrationVersion),
	})
	if err := migrations.Migrate(cfg.DatabaseName, driver); err != nil {
		logger.WithError(err).Error("Failed to apply migrations")
		os.Exit(1)
	}

	// Repositories
	caseRepo := prosecutioncase.NewRepository(db, logger)
	hearingRepo := hearing.NewRepository(db, logger)
	applicationRepo := courtapplication.NewRepository(db, logger)
	documentRepo := courtdocument.NewRepository(db, logger)
	sharedDocRepo := shareddocument.NewRepository(db, logger)
	matchRepo := defendantmatch.NewRepository(db, logger)
	linkRepo := splitmergelink.NewRepository(db, logger)
	formRepo := courtform.NewRepository(db, logger)
	caseDefendantRepo := casedefendant.NewRepository(db, logger)

	// Peer-service clients
	peerHTTP := httpclient.NewClient(httpclient.Config{
		Timeout:         cfg.PeerRequestTimeout,
		MaxIdleConns:    100,
		IdleConnTimeout: 90 * time.Second,
	}, logger)
	listingClient := listing.NewClient(peerHTTP, cfg.ListingServiceURL, logger)
	usersGroupsClient := usersgroups.NewClient(peerHTTP, cfg.UsersGroupsURL, logger)
	defenceClient := defenceassociation.NewClient(peerHTTP, cfg.DefenceServiceURL, logger)
	refDataClient := refdata.NewClient(peerHTTP, cfg.RefDataServiceURL, logger)
	materialStore := materialclient.NewClient(peerHTTP, cfg.MaterialServiceURL, logger)

	classifier := aggregation.NewClassifier(applicationRepo, refDataClient)
	converter := jsontree.NewConverter()

	// Query registry
	registry := queries.NewRegistry(logger, metrics.NewQueryRecorder())
	registry.Register(handlers.NewGetApplicationHandler(applicationRepo, documentRepo, logger))
	registry.Register(handlers.NewApplicationAtAGlanceHandler(applicationRepo, caseRepo, defenceClient, logger))
	registry.Register(handlers.NewCaseAtAGlanceHandler(caseRepo, listingClient, logger))
	registry.Register(handlers.NewGetHearingHandler(hearingRepo, caseRepo, logger))
	registry.Register(handlers.NewSearchCourtDocumentsHandler(documentRepo, usersGroupsClient, materialStore, logger))
	registry.Register(handlers.NewSearchSharedCourtDocumentsHandler(sharedDocRepo, documentRepo, classifier, cfg.DocumentBatchSize, logger))
	registry.Register(handlers.NewCaseLSMInfoHandler(caseDefendantRepo, matchRepo, linkRepo, caseRepo, logger))
	registry.Register(handlers.NewDefendantPartialMatchesHandler(matchRepo, converter, cfg.PartialMatchDefaultPage, logger))
	registry.Register(handlers.NewFormsForCaseHandler(formRepo, logger))
	registry.Register(handlers.NewGetFormHandler(formRepo, logger))

	// Dependency injection for route handlers
	container, err := ectoinject.NewDIDefaultContainer()
	if err != nil {
		logger.WithError(err).Error("Failed to create DI container")
		os.Exit(1)
	}
	if err := ectoinject.RegisterInstance[ectologger.Logger](container, logger); err != nil {
		logger.WithError(err).Error("Failed to register logger")
		os.Exit(1)
	}
	if err := ectoinject.RegisterInstance[database.DB](container, db); err != nil {
		logger.WithError(err).Error("Failed to register database")
		os.Exit(1)
	}
	if err := ectoinject.RegisterInstance[*queries.Registry](container, registry); err != nil {
		logger.WithError(err).Error("Failed to register query registry")
		os.Exit(1)
	}

	// Kafka transport
	producer := kafka.NewProducer(kafka.ProducerConfig{
		Brokers:      cfg.KafkaBrokers,
		Topic:        cfg.KafkaResponseTopic,
		BatchSize:    cfg.KafkaBatchSize,
		BatchTimeout: time.Duration(cfg.KafkaBatchTimeout) * time.Millisecond,
		RequiredAcks: cfg.KafkaRequiredAcks,
		Compression:  cfg.KafkaCompression,
	}, logger)
	defer producer.Close()

	var consumer *kafka.Consumer
	if cfg.KafkaConsumerEnabled {
		consumer = kafka.NewConsumer(kafka.ConsumerConfig{
			Brokers:       cfg.KafkaBrokers,
			Topic:         cfg.KafkaQueryTopic,
			ConsumerGroup: cfg.KafkaConsumerGroup,
		}, producer, registry, logger)
	}

	// HTTP surface
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = time.Duration(cfg.HttpServerReadTimeoutSeconds) * time.Second
	e.Server.WriteTimeout = time.Duration(cfg.HttpServerWriteTimeoutSeconds) * time.Second
	e.Server.IdleTimeout = time.Duration(cfg.HttpServerIdleTimeoutSeconds) * time.Second
	e.Server.MaxHeaderBytes = cfg.MaxHeaderBytes
	e.HTTPErrorHandler = middleware.Error(logger)
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: cfg.AllowMethods,
	}))
	e.Use(otelecho.Middleware(cfg.AppName))
	e.Use(middleware.Context())
	e.Use(middleware.Logger(logger))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	checker := health.NewChecker(db, producer, version)
	checker.RegisterRoutes(e)
	query.Register(e.Group("/api/v1"))

	// Lifecycle
	boot := startup.NewStartup(logger, cfg.StartupMaxAttempts)
	if consumer != nil {
		boot.AddDependency(&consumerDependency{consumer: consumer})
	}
	boot.AddDependency(&httpServerDependency{echo: e, port: cfg.Port, logger: logger})

	if err := boot.Start(ctx); err != nil {
		logger.WithError(err).Error("Startup failed")
		os.Exit(1)
	}
	checker.SetReady(true)
	logger.WithFields(map[string]any{"port": cfg.Port, "version": version}).Info("Service started")

	<-ctx.Done()
	checker.SetReady(false)
	logger.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := boot.Stop(shutdownCtx); err != nil {
		logger.WithError(err).Error("Shutdown failed")
		os.Exit(1)
	}
}

func setupTracing(ctx context.Context, cfg config.Config) (func(context.Context) error, error) {
	exporter, err := exporters.NewOTLPExporter(ctx, exporters.OTLPConfig{
		Endpoint: cfg.TracingOTLPEndpoint,
		Protocol: cfg.TracingOTLPProtocol,
	})
	if err != nil {
		return nil, err
	}

	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.AppName),
		semconv.ServiceVersion(version),
	))
	if err != nil {
		return nil, err
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(provider)
	tracing.SetTracer(provider.Tracer(cfg.AppName))

	return provider.Shutdown, nil
}

// httpServerDependency runs the echo server under the startup lifecycle
type httpServerDependency struct {
	echo   *echo.Echo
	port   int
	logger ectologger.Logger
}

func (d *httpServerDependency) GetName() string {
	return "http-server"
}

func (d *httpServerDependency) DependsOn() []string {
	return nil
}

func (d *httpServerDependency) Start(ctx context.Context) error {
	go func() {
		if err := d.echo.Start(fmt.Sprintf(":%d", d.port)); err != nil && err != http.ErrServerClosed {
			d.logger.WithError(err).Error("HTTP server stopped unexpectedly")
		}
	}()
	return nil
}

func (d *httpServerDependency) Stop(ctx context.Context) error {
	return d.echo.Shutdown(ctx)
}

// consumerDependency runs the Kafka query consumer under the startup
// lifecycle
type consumerDependency struct {
	consumer *kafka.Consumer
}

func (d *consumerDependency) GetName() string {
	return "kafka-consumer"
}

func (d *consumerDependency) DependsOn() []string {
	return nil
}

func (d *consumerDependency) Start(ctx context.Context) error {
	return d.consumer.Start(ctx)
}

func (d *consumerDependency) Stop(ctx context.Context) error {
	return d.consumer.Stop()
}

var _ kafka.Dispatcher = (*queries.Registry)(nil)

package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.7.0"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/ceptorclub/ceptor"
	"github.com/ceptorclub/ceptor/core"
	"github.com/ceptorclub/ceptor/x/auth"
	"github.com/ceptorclub/ceptor/x/campaign"
	"github.com/ceptorclub/ceptor/x/character"
	"github.com/ceptorclub/ceptor/x/submission"
	"github.com/ceptorclub/ceptor/x/user"
)

type CustomHandler struct {
	slog.Handler
}

func (h *CustomHandler) Handle(ctx context.Context, r slog.Record) error {

	r.AddAttrs(slog.String("type", "app"))

	span := trace.SpanFromContext(ctx)
	if span.SpanContext().IsValid() {
		r.AddAttrs(slog.String("traceID", span.SpanContext().TraceID().String()))
		r.AddAttrs(slog.String("spanID", span.SpanContext().SpanID().String()))
	}

	return h.Handler.Handle(ctx, r)
}

var (
	version = "unknown"
)

func main() {
	handler := &CustomHandler{Handler: slog.NewJSONHandler(os.Stdout, nil)}
	slogger := slog.New(handler)
	slog.SetDefault(slogger)

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "ceptor",
		Short:         "ceptor community api server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig()
			if err != nil {
				return err
			}
			return serve(cmd.Context(), config)
		},
	}

	root.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "create or update the database schema and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := openDB(config)
			if err != nil {
				return err
			}
			sqlDB, err := db.DB()
			if err == nil {
				defer sqlDB.Close()
			}
			return migrate(db, config)
		},
	})

	return root
}

func loadConfig() (Config, error) {
	config := Config{}
	configPath := os.Getenv("CEPTOR_CONFIG")
	if configPath == "" {
		configPath = "/etc/ceptor/config.yaml"
	}

	if err := config.Load(configPath); err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		return config, err
	}
	if err := config.LoadEnv(".env"); err != nil {
		slog.Error("Failed to load env", slog.String("error", err.Error()))
		return config, err
	}

	return config, nil
}

func openDB(config Config) (*gorm.DB, error) {
	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags), // io writer
		logger.Config{
			SlowThreshold:             300 * time.Millisecond, // Slow SQL threshold
			LogLevel:                  logger.Warn,            // Log level
			IgnoreRecordNotFoundError: true,                   // Ignore ErrRecordNotFound error for logger
			Colorful:                  true,                   // Enable color
		},
	)

	db, err := gorm.Open(postgres.Open(config.DSN()), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}
	return db, nil
}

func migrate(db *gorm.DB, config Config) error {
	slog.Info("start migrate")
	if err := core.Migrate(db, config.Ceptor.Collections); err != nil {
		slog.Error("failed to migrate", slog.String("error", err.Error()))
		return err
	}
	return nil
}

func serve(ctx context.Context, config Config) error {
	slog.Info(fmt.Sprintf("Ceptor %s starting...", version))

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	e := echo.New()
	e.HidePort = true
	e.HideBanner = true

	if config.Server.EnableTrace {
		cleanup, err := setupTraceProvider(config.Server.TraceEndpoint, "ceptor", version)
		if err != nil {
			return err
		}
		defer cleanup()

		skipper := otelecho.WithSkipper(
			func(c echo.Context) bool {
				return c.Path() == "/metrics" || c.Path() == "/health"
			},
		)
		e.Use(otelecho.Middleware("api", skipper))
	}

	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace: "ceptor",
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics" || c.Path() == "/health"
		},
	}))

	e.Use(middleware.Recover())
	origins := []string{"*"}
	if config.Ceptor.FrontendURL != "" {
		origins = []string{config.Ceptor.FrontendURL}
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: origins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, core.APIKeyHeader},
	}))
	e.Use(auth.APIKey(config.Ceptor))

	db, err := openDB(config)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB() // for pinging
	if err != nil {
		return fmt.Errorf("failed to connect database: %w", err)
	}
	defer sqlDB.Close()

	err = db.Use(tracing.NewPlugin(
		tracing.WithDBName("postgres"),
	))
	if err != nil {
		return fmt.Errorf("failed to setup tracing plugin: %w", err)
	}

	if err := migrate(db, config); err != nil {
		return err
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     config.Server.RedisAddr,
		Password: "", // no password set
		DB:       config.Server.RedisDB,
	})
	defer rdb.Close()
	err = redisotel.InstrumentTracing(
		rdb,
		redisotel.WithAttributes(
			attribute.KeyValue{
				Key:   "db.name",
				Value: attribute.StringValue("redis"),
			},
		),
	)
	if err != nil {
		return fmt.Errorf("failed to setup tracing plugin: %w", err)
	}

	var mc *memcache.Client
	if config.Server.MemcachedAddr != "" {
		mc = memcache.New(config.Server.MemcachedAddr)
		defer mc.Close()
	}

	socketManager := ceptor.SetupSocketManager(rdb)
	socketHandler := ceptor.SetupSocketHandler(mc, socketManager, config.Ceptor)

	agent := ceptor.SetupAgent(db, socketManager, config.Ceptor)

	userService := ceptor.SetupUserService(db, config.Ceptor)
	userHandler := user.NewHandler(userService)

	characterService := ceptor.SetupCharacterService(db, config.Ceptor)
	characterHandler := character.NewHandler(characterService)

	// misc
	e.GET("/", socketHandler.Broadcast)
	e.GET("/socket", socketHandler.Connect)

	// user
	e.GET("/user", userHandler.Get)
	e.GET("/user/:wallet", userHandler.Get)
	e.GET("/userData/:_id", userHandler.GetByID)
	e.GET("/users", userHandler.List)
	e.POST("/user", userHandler.Post)

	// character
	e.POST("/characterData", characterHandler.Post)
	e.GET("/characterData", characterHandler.List)
	e.GET("/characterData/:_id", characterHandler.Get)

	// voting
	if config.Ceptor.Modules.VotingEnabled() {
		submissionService := ceptor.SetupSubmissionService(db, config.Ceptor)
		submissionHandler := submission.NewHandler(submissionService)

		e.POST("/submission", submissionHandler.Post)
		e.GET("/submissions", submissionHandler.List)
		e.GET("/submissions/most-liked", submissionHandler.MostLiked)
		e.PUT("/update-nft-votes", submissionHandler.Vote)
		e.POST("/voteForSubmission", submissionHandler.Vote)
		e.GET("/highest-voted-nft/:weekTimestamp", submissionHandler.HighestVoted)
	}

	// scheduler
	if config.Ceptor.Modules.SchedulerEnabled() {
		campaignService := ceptor.SetupCampaignService(db, config.Ceptor)
		campaignHandler := campaign.NewHandler(campaignService)

		e.GET("/availableDates", campaignHandler.List)
		e.POST("/availableDates", campaignHandler.Post)
		e.GET("/campaign/:_id", campaignHandler.Get)
		e.PUT("/campaign/:_id/join", campaignHandler.Join)
	}

	e.GET("/health", func(c echo.Context) (err error) {
		ctx := c.Request().Context()

		err = sqlDB.Ping()
		if err != nil {
			return c.String(http.StatusInternalServerError, "db error")
		}

		err = rdb.Ping(ctx).Err()
		if err != nil {
			return c.String(http.StatusInternalServerError, "redis error")
		}

		return c.String(http.StatusOK, "ok")
	})

	e.GET("/metrics", echoprometheus.NewHandler())

	agent.Boot(ctx)

	go func() {
		slog.Info("server listening", slog.String("port", config.Server.Port))
		if err := e.Start(":" + config.Server.Port); err != nil && err != http.ErrServerClosed {
			slog.Error("server stopped", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func setupTraceProvider(endpoint string, serviceName string, serviceVersion string) (func(), error) {

	exporter, err := otlptracehttp.New(
		context.Background(),
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)

	if err != nil {
		return nil, err
	}

	resource := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(serviceName),
		semconv.ServiceVersionKey.String(serviceVersion),
	)

	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithResource(resource),
	)
	otel.SetTracerProvider(tracerProvider)

	propagator := propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	)
	otel.SetTextMapPropagator(propagator)

	cleanup := func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		if err := tracerProvider.Shutdown(ctx); err != nil {
			slog.Error(fmt.Sprintf("Failed to shutdown tracer provider: %v", err))
		}
	}
	return cleanup, nil
}

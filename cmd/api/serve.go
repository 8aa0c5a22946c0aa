package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"userapi/docs"
	"userapi/internal/config"
	handlers "userapi/internal/http/handler"
	"userapi/internal/http/middleware"
	"userapi/internal/logging"
	"userapi/internal/otel"
	"userapi/internal/repository"
	"userapi/internal/service"
	"userapi/internal/storage"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			if port != "" {
				cfg.Port = port
			}
			return serve(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (overrides PORT)")
	return cmd
}

func serve(ctx context.Context, cfg *config.AppConfig) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	loc := loadLocation(cfg.Timezone)

	shutdownTracing, err := otel.Init(ctx)
	if err != nil {
		return err
	}
	defer shutdownTracing(context.Background())

	b, err := openBackend(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer b.Close(context.Background())

	userRepo := repository.NewUserRepository(b.users)
	userSvc := service.NewUserService(userRepo)

	var exportSvc service.ExportService
	if cfg.MinIO.Enabled() {
		objStore, err := storage.NewMinIO(ctx, cfg.MinIO)
		if err != nil {
			return err
		}
		exportSvc = service.NewExportService(objStore, userRepo)
	} else {
		logging.Info("exports_disabled", map[string]any{"reason": "MINIO_ENDPOINT not set"})
	}

	app := newApp(cfg, loc)

	promMiddleware, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}
	app.Use(promMiddleware.Handler())

	handlers.RegisterRoutes(app, b, userSvc, exportSvc)
	app.Get("/swagger/*", swaggerHandler)

	errCh := make(chan error, 1)
	go func() {
		logging.Info("server_starting", map[string]any{"addr": ":" + cfg.Port, "store_driver": cfg.Store.Driver})
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logging.Info("server_stopping", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}

func newApp(cfg *config.AppConfig, loc *time.Location) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "userapi",
		ErrorHandler: handlers.ErrorHandler(),
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
	})

	// RequestID adds/propagates X-Request-ID; otelfiber starts the server span
	// before Logger so trace_id is available in request logs.
	app.Use(middleware.RequestID())
	app.Use(otelfiber.Middleware(otelfiber.WithNext(func(c *fiber.Ctx) bool {
		return c.Path() == "/metrics" || c.Path() == "/healthz"
	})))
	app.Use(middleware.LoggerWithWriter(os.Stdout, loc))

	docs.SwaggerInfo.Host = cfg.AppHost
	return app
}

// swaggerHandler serves the UI with the host and scheme the client used.
func swaggerHandler(c *fiber.Ctx) error {
	scheme := c.Protocol()
	if proto := c.Get("X-Forwarded-Proto"); proto != "" {
		scheme = strings.Split(proto, ",")[0]
	}

	docs.SwaggerInfo.Host = c.Get("Host")
	docs.SwaggerInfo.Schemes = []string{scheme}

	return swagger.HandlerDefault(c)
}

func loadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		logging.Error("invalid_timezone", err, map[string]any{"tz_location": name})
		loc = time.UTC
	}
	logging.SetLocation(loc)
	return loc
}

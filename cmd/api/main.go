package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/shopspring/decimal"

	appinv "github.com/jhoicas/inventario-planilla/internal/application/inventory"
	"github.com/jhoicas/inventario-planilla/internal/infrastructure/forward"
	"github.com/jhoicas/inventario-planilla/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-planilla/internal/infrastructure/sheet"
	httpRouter "github.com/jhoicas/inventario-planilla/internal/interfaces/http"
	"github.com/jhoicas/inventario-planilla/pkg/config"
	"github.com/jhoicas/inventario-planilla/pkg/logger"
	"github.com/jhoicas/inventario-planilla/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("sheet", cfg.Sheet.URL).
		Dur("ttl", cfg.Sheet.TTL()).
		Msg("iniciando aplicación")

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	invMetrics := metrics.NewInventoryMetrics(reg)

	fetcher := sheet.NewHTTPFetcher(sheet.Config{
		URL:       cfg.Sheet.URL,
		Format:    cfg.Sheet.Format,
		TableHint: cfg.Sheet.TableHint,
		Timeout:   cfg.Sheet.Timeout(),
	})

	// Destinos de los movimientos: log siempre; webhook y journal si están configurados.
	sinks := []forward.Sink{forward.NewLogForwarder(log)}
	if cfg.Forward.WebhookURL != "" {
		sinks = append(sinks, forward.NewWebhookForwarder(
			cfg.Forward.WebhookURL,
			time.Duration(cfg.Forward.TimeoutSeconds)*time.Second,
		))
	}

	ctx := context.Background()
	var journal httpRouter.MovementJournal
	if cfg.DB.Enabled() {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()

		j := postgres.NewMovementJournal(pool)
		if err := j.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("crear tabla del journal")
		}
		sinks = append(sinks, j)
		journal = j
	}
	forwarder := forward.NewMultiForwarder(sinks...)

	svc := appinv.NewService(fetcher, forwarder, log, invMetrics, appinv.Config{
		TTL:            cfg.Sheet.TTL(),
		LowStockBelow:  decimal.NewFromInt(int64(cfg.Sheet.LowStockBelow)),
		ForwardTimeout: time.Duration(cfg.Forward.TimeoutSeconds) * time.Second,
	})

	// La primera carga no es fatal: sin planilla se sirven los datos de ejemplo.
	initCtx, cancelInit := context.WithTimeout(ctx, cfg.Sheet.Timeout()+5*time.Second)
	if err := svc.Init(initCtx); err != nil {
		log.Warn().Err(err).Msg("carga inicial en modo degradado")
	}
	cancelInit()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.App.DocsPath); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.App.DocsPath,
			Path:     "docs",
			Title:    "Inventario Planilla API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		Inventory:   svc,
		Journal:     journal,
		Gatherer:    reg,
		ServiceName: cfg.App.Name,
		JWTSecret:   cfg.JWT.Secret,
		JWTIssuer:   cfg.JWT.Issuer,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	svc.Wait()

	log.Info().Msg("aplicación detenida")
}

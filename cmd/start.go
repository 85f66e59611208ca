package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blitz-stats/core/config"
	"blitz-stats/core/loader"
	"blitz-stats/core/logger"
	"blitz-stats/core/middleware/auth"
	"blitz-stats/core/middleware/rayid"
	"blitz-stats/core/server"

	"blitz-stats/feature/conversions"
	"blitz-stats/feature/integrity"
	"blitz-stats/feature/maps"
	"blitz-stats/feature/replay"
	"blitz-stats/feature/stats"
	"blitz-stats/feature/tankopedia"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "blitz-stats/docs/swagger"
)

// @title Blitz Stats API
// @version 1.0
// @description Reference catalogs and player statistics ingestion.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the stats server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		rt, err := newServices(cfg, logg, true)
		if err != nil {
			logg.Fatal("Failed to initialize services", zap.Error(err))
		}

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			BodyLimit:             cfg.Server.BodyLimit(),
		})

		mgr := loader.NewManager()
		mgr.Register(tankopedia.NewFeature(rt.tanks))
		mgr.Register(maps.NewFeature(rt.maps))
		mgr.Register(stats.NewFeature(rt.stats))
		mgr.Register(replay.NewFeature(rt.registry, logg.Named("replay")))
		mgr.Register(conversions.NewFeature(rt.registry))
		mgr.Register(integrity.NewFeature(rt.integrity))

		// RayID must be first so every log line can be traced.
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			start := time.Now()
			err := c.Next()
			fields := []zap.Field{
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
				zap.Int("status", c.Response().StatusCode()),
				zap.Duration("latency", time.Since(start)),
			}
			if err != nil {
				l.Error("Request error", append(fields, zap.Error(err))...)
				return err
			}
			l.Info("Request handled", fields...)
			return nil
		})

		// Public routes
		app.Get(server.PathHealth, func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"status": "ok"})
		})
		app.Get(server.PathMetrics, rt.metrics.Handler())
		app.Get(server.PathSwagger+"/*", swagger.HandlerDefault)

		app.Use(auth.New(auth.Config{
			ApiKey:         cfg.Server.ApiKey,
			PublicPrefixes: []string{server.PathHealth, server.PathMetrics, server.PathSwagger},
		}))
		if !cfg.Server.AuthEnabled() {
			logg.Warn("API key not configured, requests are not authenticated")
		}

		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}
		for _, f := range mgr.Features() {
			logg.Debug("Feature registered", zap.String("feature", f.Name()), zap.Bool("enabled", f.IsEnabled()))
		}

		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}

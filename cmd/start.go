package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"country-exchange/core/loader"
	"country-exchange/core/logger"
	"country-exchange/core/metrics"
	"country-exchange/core/middleware/rayid"
	"country-exchange/feature/countries"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "country-exchange/docs/swagger"
)

// @title Country Exchange API
// @version 1.0
// @description Cached country data with exchange rates and estimated GDP.
// @host localhost:8080
// @BasePath /api/v1

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the country exchange server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		rt, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		logg := rt.logger
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		metrics.Init()

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			ReadTimeout:           rt.cfg.Server.ReadTimeout(),
			WriteTimeout:          rt.cfg.Server.WriteTimeout(),
		})

		mgr := loader.NewManager()
		mgr.Register(countries.NewFeature(rt.service, logg))

		// RayID first so every later log line carries it.
		app.Use(rayid.New())
		app.Use(metrics.Middleware())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		app.Get("/swagger/*", swagger.HandlerDefault)
		app.Get("/metrics", metrics.Handler())

		if err := mgr.LoadAll(app.Group(rt.cfg.Server.NormalizedBasePath())); err != nil {
			return err
		}

		go func() {
			logg.Info("Starting server", zap.String("port", rt.cfg.Server.Port), zap.String("base_path", rt.cfg.Server.NormalizedBasePath()))
			if err := app.Listen(":" + rt.cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()

		// Let an in-flight summary image finish before exiting.
		waitCtx, cancel := context.WithTimeout(context.Background(), rt.cfg.Summary.Timeout()+5*time.Second)
		defer cancel()
		if err := rt.refresher.Wait(waitCtx); err != nil {
			logg.Warn("Pending summary generation abandoned", zap.Error(err))
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}

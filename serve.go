package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/example/shoe-catalog/config"
	"github.com/example/shoe-catalog/datasource"
	analyticsmod "github.com/example/shoe-catalog/modules/analytics"
	apimod "github.com/example/shoe-catalog/modules/api"
	cachemod "github.com/example/shoe-catalog/modules/cache"
	cartmod "github.com/example/shoe-catalog/modules/cart"
	catalogmod "github.com/example/shoe-catalog/modules/catalog"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the storefront HTTP API",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	// mono exposes info and error levels.
	logLevel := mono.LogLevelInfo
	if cfg.LogLevel == "error" {
		logLevel = mono.LogLevelError
	}

	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(cfg.ShutdownTimeout),
		mono.WithLogLevel(logLevel),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		return fmt.Errorf("failed to create mono application: %w", err)
	}
	logger := app.Logger()

	source, err := datasource.New(ctx, cfg.Source)
	if err != nil {
		return fmt.Errorf("failed to open catalog source: %w", err)
	}
	defer source.Close()

	if cfg.Cache.Enabled {
		cachePlugin := cachemod.NewPluginModule(cfg.Cache.RedisAddr, cfg.Cache.Prefix, cfg.Cache.TTL, logger)
		if err := app.RegisterPlugin(cachePlugin, cachemod.PluginName); err != nil {
			return fmt.Errorf("failed to register cache plugin: %w", err)
		}
	}

	app.Register(catalogmod.NewModule(source.Source, source.Kind, cfg.LowStockThreshold, logger))
	app.Register(cartmod.NewModule(logger))
	app.Register(analyticsmod.NewModule(logger))
	app.Register(apimod.NewModule(cfg.HTTPPort, apimod.RateLimit{
		Max:    cfg.Limit.Max,
		Window: cfg.Limit.Window,
	}, logger))

	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("failed to start application: %w", err)
	}

	logger.Info("Shoe catalog started",
		"port", cfg.HTTPPort,
		"source", source.Kind,
		"cache", cfg.Cache.Enabled)
	logger.Info("Press Ctrl+C to shutdown")

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				logger.Info("Graceful shutdown initiated")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	if exitCode != 0 {
		source.Close()
		os.Exit(exitCode)
	}
	return nil
}


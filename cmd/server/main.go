package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/9910597111/BlindSketch-Game/internal/api"
	"github.com/9910597111/BlindSketch-Game/internal/config"
	"github.com/9910597111/BlindSketch-Game/internal/factory"
	redisstorage "github.com/9910597111/BlindSketch-Game/internal/storage/redis"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "blindsketch-server",
		Short: "Multiplayer drawing and guessing game server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configPath)
		},
	}
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config file (optional)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	var handler slog.Handler
	if cfg.LogJSON {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	factoryCfg := factory.Config{
		Logger:        logger,
		StorageType:   cfg.Storage.Type,
		RoomRetention: cfg.Rooms.Retention,
	}
	if cfg.Storage.Type == factory.StorageTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.Storage.RedisURL
		factoryCfg.RedisConfig = &redisCfg
	}

	app, err := factory.New(factoryCfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Words come from storage if a previous run mirrored them there, else
	// from the bundled list.
	if err := app.WordsService.LoadFromStorage(ctx); err != nil || !app.WordsService.IsLoaded() || app.WordsService.WordCount() == 0 {
		if err := app.WordsService.LoadFromFile(ctx, cfg.Words.Path); err != nil {
			logger.Error("failed to load word list",
				slog.String("path", cfg.Words.Path),
				slog.String("error", err.Error()),
			)
			return err
		}
	}
	logger.Info("word list loaded", slog.Int("words", app.WordsService.WordCount()))

	router := api.NewRouter(api.RouterConfig{
		Logger:       logger,
		RoomRegistry: app.RoomRegistry,
		WSHandler:    app.WSHandler,
	})

	serverConfig := api.DefaultServerConfig()
	serverConfig.Host = cfg.Server.Host
	serverConfig.Port = cfg.Server.Port
	server := api.NewServer(router, serverConfig, logger)

	go app.RoomRegistry.Run(ctx, cfg.Rooms.SweepInterval)

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			return err
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			return err
		}
	}

	logger.Info("server stopped")
	return nil
}

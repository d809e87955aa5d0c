package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"aparecida-web/app/config"
	"aparecida-web/app/database"
	"aparecida-web/app/dates"
	"aparecida-web/app/logger"
	"aparecida-web/app/metrics"
	"aparecida-web/app/routes/auth"
	"aparecida-web/app/server"
	"aparecida-web/app/services"
	"aparecida-web/app/storage"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const settingsCacheTTL = time.Minute

func main() {
	var configPath string

	root := &cobra.Command{
		Use:           "aparecida",
		Short:         "Paróquia Nossa Senhora Aparecida web site and back-office",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(configPath)
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default ./aparecida.yaml)")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(configPath)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "init-config [path]",
		Short: "Write a config file with the default settings",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "aparecida.yaml"
			if len(args) == 1 {
				path = args[0]
			}
			if err := config.WriteDefaultConfig(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	})

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func serve(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log, err := logger.Init(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return err
	}
	defer log.Sync()

	// Dates are read and shown in the parish time zone
	dates.Location = cfg.Location()
	log.Info("Application time zone set", zap.String("zone", dates.Location.String()))
	if cfg.Auth.JWTSecret == config.DefaultJWTSecret {
		log.Warn("auth.jwt_secret is the development default; set APARECIDA_AUTH_JWT_SECRET in production")
	}

	// Initialize database
	db, err := database.Open(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	// Run database migrations
	if err := database.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	store, err := storage.NewOS(cfg.Storage.Root)
	if err != nil {
		return err
	}

	m := metrics.New()
	siteSettings := services.NewSiteSettings(db, settingsCacheTTL)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start background scheduler
	schedulerDone := services.StartScheduler(ctx, &services.Jobs{
		Settings: siteSettings,
		Store:    store,
		Metrics:  m,
	}, cfg.Scheduler.BannerCleanupHour)

	app := server.New(server.Deps{
		DB:              db,
		Auth:            auth.NewService(db, cfg.Auth),
		Settings:        siteSettings,
		CEP:             services.NewCEPClient(cfg.CEP.BaseURL, cfg.CEP.Timeout),
		Store:           store,
		Metrics:         m,
		ReloadTemplates: cfg.Server.ReloadTemplates,
		AccessLog:       true,
	})

	errc := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", cfg.Server.Addr))
		errc <- app.Listen(cfg.Server.Addr)
	}()

	select {
	case err := <-errc:
		stop()
		<-schedulerDone
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		log.Error("Server shutdown failed", zap.Error(err))
	}
	<-schedulerDone
	return nil
}

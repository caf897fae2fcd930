package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/deepeshsaheb-tal/bookcritic/config"
	"github.com/deepeshsaheb-tal/bookcritic/log"
	"github.com/deepeshsaheb-tal/bookcritic/metrics"
	"github.com/deepeshsaheb-tal/bookcritic/server"
	"github.com/deepeshsaheb-tal/bookcritic/store"
	"github.com/deepeshsaheb-tal/bookcritic/store/db"
	"github.com/deepeshsaheb-tal/bookcritic/worker"
)

const greetingBanner = `
██████   ██████   ██████  ██   ██  ██████ ██████  ██ ████████ ██  ██████
██   ██ ██    ██ ██    ██ ██  ██  ██      ██   ██ ██    ██    ██ ██
██████  ██    ██ ██    ██ █████   ██      ██████  ██    ██    ██ ██
██   ██ ██    ██ ██    ██ ██  ██  ██      ██   ██ ██    ██    ██ ██
██████   ██████   ██████  ██   ██  ██████ ██   ██ ██    ██    ██  ██████
`

var (
	host       string
	port       int
	data       string
	configFile string

	rootCmd = &cobra.Command{
		Use:   "bookcritic",
		Short: "BookCritic is a self-hosted book review service",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			if host != "" {
				config.Opts.Host = host
			}
			if port != 0 {
				config.Opts.Port = port
			}

			dbConn, err := db.NewDB(config.Opts.DSN)
			if err != nil {
				log.Error("Error connecting to database", zap.Error(err))
				return
			}
			defer dbConn.Close()
			if err := dbConn.Migrate(ctx); err != nil {
				log.Error("Error migrating database", zap.Error(err))
				return
			}

			s := store.NewStore(dbConn.DB)
			if err := s.Ping(); err != nil {
				log.Error("Error pinging database", zap.Error(err))
				return
			}

			securitySetting, err := s.GetOrUpsertSystemSecuritySetting()
			if err != nil {
				log.Error("Error loading security setting", zap.Error(err))
				return
			}

			pool := worker.NewAggregatePool(s, config.Opts.WorkerPoolSize)
			var collector *metrics.Collector
			if config.Opts.MetricsCollector {
				collector = metrics.NewCollector()
			}

			fmt.Print(greetingBanner)
			httpServer, err := server.StartServer(ctx, s, pool, collector, securitySetting.JWTSecret)
			if err != nil {
				log.Error("Error starting server", zap.Error(err))
				return
			}

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
			<-stop

			log.Info("Shutting down server")
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				log.Error("Error shutting down server", zap.Error(err))
			}
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&host, "host", "", "host to listen on")
	rootCmd.PersistentFlags().IntVar(&port, "port", 0, "port to listen on")
	rootCmd.PersistentFlags().StringVar(&data, "data", "", "data directory")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file")

	cobra.OnInitialize(func() {
		config.GetDefaultOptions()
		if data != "" {
			config.Opts.Data = data
		}
		if _, err := config.GetConfig(); err != nil {
			log.Fatal("Error loading config", zap.Error(err))
		}
		if configFile != "" {
			if _, err := config.ParseFile(configFile); err != nil {
				log.Fatal("Error parsing config file", zap.Error(err))
			}
		}
	})
}

func main() {
	defer log.Logger.Sync()

	if err := rootCmd.Execute(); err != nil {
		log.Fatal("Error executing command", zap.Error(err))
	}
}

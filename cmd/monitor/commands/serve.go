package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/linyc/twmonitor/internal/api"
	"github.com/linyc/twmonitor/internal/api/handlers"
	"github.com/linyc/twmonitor/internal/scheduler"
	"github.com/linyc/twmonitor/internal/scheduler/jobs"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "啟動 API 伺服器",
	Long: `Starts the HTTP API server.

Endpoints:
  GET  /health                 - Health check
  POST /api/monitor/run        - Trigger one monitor invocation (Bearer CRON_SECRET)
  GET  /api/market/snapshots   - Assembled snapshots with indicators
  POST /api/notify/token       - Save the LINE token

With --with-scheduler the monitor also runs on MONITOR_SCHEDULE inside
this process instead of relying on an external cron trigger.

Example:
  go run ./cmd/monitor serve
  go run ./cmd/monitor serve --with-scheduler --port 8087`,
	RunE: runServe,
}

var (
	servePort     string
	withScheduler bool
)

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&servePort, "port", "", "API server port (overrides PORT)")
	serveCmd.Flags().BoolVar(&withScheduler, "with-scheduler", false, "run the monitor on a cron schedule in-process")
}

func runServe(cmd *cobra.Command, args []string) error {
	application, err := buildApp()
	if err != nil {
		return err
	}
	defer application.Close()

	cfg, log := application.cfg, application.log

	if servePort != "" {
		cfg.Port = servePort
	}
	if cfg.CronSecret == "" {
		return fmt.Errorf("CRON_SECRET is required for the trigger endpoint")
	}

	monitorHandler := handlers.NewMonitorHandler(application.runner, cfg.CronSecret, log)
	marketHandler := handlers.NewMarketHandler(application.assembler, application.watchlist, log)
	tokenHandler := handlers.NewTokenHandler(application.store, log)

	router := api.NewRouter(monitorHandler, marketHandler, tokenHandler, log)
	server := api.New(cfg, log, router)

	var sched *scheduler.Scheduler
	if withScheduler {
		sched = scheduler.New(log)
		job := jobs.NewMonitorJob(application.runner, cfg.Monitor.Schedule, log)
		if err := sched.AddJob(job); err != nil {
			return fmt.Errorf("schedule monitor job: %w", err)
		}
		sched.Start()
	}

	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	log.Info("API server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	if sched != nil {
		sched.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}

package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/wonny/bandarscan/internal/api"
	"github.com/wonny/bandarscan/internal/api/handlers"
	"github.com/wonny/bandarscan/internal/scheduler"
	"github.com/wonny/bandarscan/internal/scheduler/jobs"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "API 서버 시작",
	Long: `REST API 서버를 시작합니다.

Endpoints:
  GET  /health          - Health check
  GET  /metrics         - Prometheus metrics (METRICS_ENABLED=true)
  GET  /api/ranking     - 랭킹 (mode, groupId, fromDate, toDate, refresh)
  GET  /api/indices     - 지수 목록

Example:
  go run ./cmd/quant api
  go run ./cmd/quant api --port 8080`,
	RunE: runAPIServer,
}

var (
	apiPort string
)

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API 서버 포트 (기본값: PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	fmt.Println("=== bandarscan API Server ===")

	d, err := buildDeps(os.Stdout)
	if err != nil {
		return err
	}
	defer d.Close()

	if apiPort != "" {
		d.cfg.Port = apiPort
	}

	var gatherer prometheus.Gatherer
	if d.cfg.MetricsEnabled {
		gatherer = d.metrics
	}

	router := api.NewRouter(
		handlers.NewRankingHandler(d.service, d.log),
		handlers.NewIndicesHandler(d.registry),
		gatherer,
		d.log,
	)
	server := api.New(d.cfg, d.log, router)

	if d.memory != nil {
		sched := scheduler.New(d.log)
		if err := sched.AddJob(jobs.NewCacheCleanupJob(d.memory, d.log)); err != nil {
			return err
		}
		sched.Start()
		defer sched.Stop()
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	fmt.Printf("\n✅ Server running on http://localhost:%s\n", d.cfg.Port)
	fmt.Println("\nAvailable endpoints:")
	PrintList(endpoints(gatherer != nil))
	fmt.Println("\nPress Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
		return nil
	case <-quit:
	}

	d.log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	d.log.Info("Server stopped")
	return nil
}

// endpoints lists the routes mounted by api.NewRouter
func endpoints(metrics bool) []string {
	list := []string{"GET  /health"}
	if metrics {
		list = append(list, "GET  /metrics")
	}
	return append(list,
		"GET  /api/ranking?mode=lq45&fromDate=2025-02-01&toDate=2025-02-14",
		"GET  /api/indices",
	)
}

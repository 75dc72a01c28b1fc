package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/bandarscan/internal/scheduler"
	"github.com/wonny/bandarscan/internal/scheduler/jobs"
)

// schedulerCmd represents the scheduler command
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "스케줄러 관리",
	Long: `랭킹 캐시 예열 스케줄러를 시작하거나 작업을 관리합니다.

Subcommands:
  start   - 스케줄러 시작
  list    - 등록된 작업 목록
  run     - 특정 작업 즉시 실행 (완료까지 대기)

Example:
  go run ./cmd/quant scheduler start
  go run ./cmd/quant scheduler list
  go run ./cmd/quant scheduler run ranking_warmup`,
}

var (
	schedulerStartCmd = &cobra.Command{
		Use:   "start",
		Short: "스케줄러 시작",
		Long: `스케줄러를 시작하고 등록된 모든 작업을 스케줄합니다.

등록되는 작업:
- ranking_warmup: RANKING_WARMUP_SCHEDULE (기본: 평일 9-16시 30분마다)
  모든 지수를 최근 RANKING_WARMUP_DAYS일 기준으로 랭킹해 캐시에 저장
- cache_cleanup: 5분마다 (Redis 비활성 시 메모리 캐시 정리)

스케줄러는 Ctrl+C로 종료할 수 있습니다.`,
		RunE: runScheduler,
	}

	schedulerListCmd = &cobra.Command{
		Use:   "list",
		Short: "등록된 작업 목록",
		RunE:  listJobs,
	}

	schedulerRunCmd = &cobra.Command{
		Use:   "run [job_name]",
		Short: "특정 작업 즉시 실행",
		Args:  cobra.ExactArgs(1),
		RunE:  runJob,
	}
)

func init() {
	rootCmd.AddCommand(schedulerCmd)
	schedulerCmd.AddCommand(schedulerStartCmd)
	schedulerCmd.AddCommand(schedulerListCmd)
	schedulerCmd.AddCommand(schedulerRunCmd)
}

func runScheduler(cmd *cobra.Command, args []string) error {
	fmt.Println("=== bandarscan Scheduler ===")

	sched, d, err := initScheduler()
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}
	defer d.Close()

	if !d.cfg.Redis.Enabled {
		PrintWarning(os.Stdout, "REDIS_ENABLED=false: warm-up results stay in this process only")
	}

	sched.Start()

	fmt.Println("\n✅ Scheduler started successfully")
	fmt.Println("\nRegistered jobs:")
	PrintList(sched.GetAllJobs())
	fmt.Println("\nPress Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	fmt.Println("\nShutting down scheduler...")
	sched.Stop()
	fmt.Println("Scheduler stopped")

	return nil
}

func listJobs(cmd *cobra.Command, args []string) error {
	sched, d, err := initScheduler()
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}
	defer d.Close()

	out := cmd.OutOrStdout()
	widths := []int{16, 22}
	PrintTableHeader(out, []string{"JOB", "SCHEDULE"}, widths)
	stats := sched.GetJobStats()
	for _, name := range sched.GetAllJobs() {
		PrintTableRow(out, []string{name, stats[name].Schedule}, widths)
	}

	return nil
}

func runJob(cmd *cobra.Command, args []string) error {
	jobName := args[0]

	sched, d, err := initScheduler()
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}
	defer d.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Running job: %s\n", jobName)

	result, err := sched.RunJobNow(ctx, jobName)
	if err != nil {
		return fmt.Errorf("run job: %w", err)
	}
	if !result.Success {
		return fmt.Errorf("job %s failed after %s: %s", jobName, result.Duration.Round(time.Millisecond), result.Error)
	}

	PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Job %s completed in %s", jobName, result.Duration.Round(time.Millisecond)))
	return nil
}

func initScheduler() (*scheduler.Scheduler, *deps, error) {
	d, err := buildDeps(os.Stdout)
	if err != nil {
		return nil, nil, err
	}

	sched := scheduler.New(d.log, scheduler.WithRetry(1, 30*time.Second))

	jobList := schedulerJobs(d)
	if len(jobList) == 0 {
		d.log.Warn("No shared result cache (REDIS_ENABLED=false or RANKING_CACHE_TTL=0), ranking warm-up disabled")
	}
	for _, job := range jobList {
		if err := sched.AddJob(job); err != nil {
			d.Close()
			return nil, nil, err
		}
	}

	return sched, d, nil
}

// schedulerJobs lists the jobs the standalone scheduler process runs. Warm-up
// only pays off when its results land in a cache the api process reads too.
func schedulerJobs(d *deps) []scheduler.Job {
	if !d.sharedCache {
		return nil
	}
	return []scheduler.Job{
		jobs.NewRankingWarmupJob(d.service, d.registry, d.cfg.Ranking.WarmupSchedule, d.cfg.Ranking.WarmupDays, d.log),
	}
}

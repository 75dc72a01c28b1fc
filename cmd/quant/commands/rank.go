package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/bandarscan/internal/ranking"
)

// rankCmd runs one ranking and prints it
var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "랭킹 1회 실행",
	Long: `워치리스트 그룹 또는 지수 구성종목을 한 번 랭킹합니다.

Modes:
  watchlist  - --group 필요
  idx30, lq45, idx80 (또는 INDICES_FILE에 정의된 지수)

Example:
  go run ./cmd/quant rank --mode lq45 --from 2025-02-01 --to 2025-02-14
  go run ./cmd/quant rank --group 12 --from 2025-02-01 --to 2025-02-14 --json`,
	RunE: runRank,
}

var (
	rankMode    string
	rankGroup   string
	rankFrom    string
	rankTo      string
	rankJSON    bool
	rankRefresh bool
)

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().StringVar(&rankMode, "mode", "watchlist", "watchlist | 지수 이름")
	rankCmd.Flags().StringVar(&rankGroup, "group", "", "워치리스트 그룹 ID")
	rankCmd.Flags().StringVar(&rankFrom, "from", "", "시작일 (YYYY-MM-DD)")
	rankCmd.Flags().StringVar(&rankTo, "to", "", "종료일 (YYYY-MM-DD)")
	rankCmd.Flags().BoolVar(&rankJSON, "json", false, "JSON 출력")
	rankCmd.Flags().BoolVar(&rankRefresh, "refresh", false, "캐시 무시")
}

func runRank(cmd *cobra.Command, args []string) error {
	d, err := buildDeps(os.Stderr)
	if err != nil {
		return err
	}
	defer d.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	result, err := d.service.Rank(ctx, ranking.RankRequest{
		Mode:     rankMode,
		GroupID:  rankGroup,
		FromDate: rankFrom,
		ToDate:   rankTo,
		NoCache:  rankRefresh,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if rankJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	PrintRunHeader(out, RunMetadata{
		Title:  "Bandar Proximity Ranking",
		RunID:  result.RunID,
		Mode:   result.Mode,
		Period: &Period{StartDate: rankFrom, EndDate: rankTo},
	})
	PrintRanking(out, result.Items)
	fmt.Fprintln(out)
	PrintSuccess(out, fmt.Sprintf("%d symbols ranked, %d failed in %.2fs",
		result.Total, result.Failures(), time.Since(start).Seconds()))

	return nil
}

package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "quant",
	Short: "bandarscan - 세력 매집가 대비 목표가 근접도 랭킹",
	Long: `bandarscan Unified CLI

Broker accumulation (bandar) + order book 기반 목표가 계산 후
워치리스트 / 지수 구성종목을 목표가 근접도 순으로 정렬합니다.

Usage:
  go run ./cmd/quant [command]

Examples:
  go run ./cmd/quant api
  go run ./cmd/quant rank --mode lq45 --from 2025-02-01 --to 2025-02-14
  go run ./cmd/quant rank --group 12 --from 2025-02-01 --to 2025-02-14 --json
  go run ./cmd/quant indices
  go run ./cmd/quant scheduler start`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug 로그 출력")
}

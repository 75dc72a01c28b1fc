package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wonny/bandarscan/internal/indices"
)

// indicesCmd lists the static index universes
var indicesCmd = &cobra.Command{
	Use:   "indices",
	Short: "지수 목록 조회",
	RunE:  listIndices,
}

var indicesMembers bool

func init() {
	rootCmd.AddCommand(indicesCmd)

	indicesCmd.Flags().BoolVar(&indicesMembers, "members", false, "구성종목 출력")
}

func listIndices(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	registry, err := indices.Load(cfg.Indices.File)
	if err != nil {
		return fmt.Errorf("load indices: %w", err)
	}

	out := cmd.OutOrStdout()
	widths := []int{10, 12, 7}
	PrintTableHeader(out, []string{"MODE", "LABEL", "COUNT"}, widths)
	for _, idx := range registry.All() {
		PrintTableRow(out, []string{idx.Name, idx.Label, fmt.Sprintf("%d", len(idx.Symbols))}, widths)
		if indicesMembers {
			fmt.Fprintf(out, "   %s\n", strings.Join(idx.Symbols, " "))
		}
	}

	return nil
}

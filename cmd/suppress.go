package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/loctree/loctree-go/internal/suppress"
	"github.com/loctree/loctree-go/pkg/types"
)

var suppressCmd = &cobra.Command{
	Use:   "suppress",
	Short: "Manage the allow-list of reviewed findings (C13)",
}

var (
	suppressType   string
	suppressSymbol string
	suppressFile   string
	suppressReason string
)

var suppressAddCmd = &cobra.Command{
	Use:   "add [directory]",
	Short: "Add a suppression to .loctree/suppressions.toml",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := targetDir(args)
		if err != nil {
			return err
		}
		typ := types.SuppressionType(suppressType)
		switch typ {
		case types.SuppressTwins, types.SuppressDeadParrot, types.SuppressDeadExport, types.SuppressCircular:
		default:
			return fmt.Errorf("unknown --type %q (want twins, dead_parrot, dead_export, or circular)", suppressType)
		}
		if suppressSymbol == "" {
			return fmt.Errorf("--symbol is required")
		}

		existing, err := suppress.Load(dir)
		if err != nil {
			return err
		}
		existing = append(existing, types.Suppression{
			Type:   typ,
			Symbol: suppressSymbol,
			File:   suppressFile,
			Reason: suppressReason,
			Added:  time.Now().UTC().Format("2006-01-02"),
		})
		return suppress.Save(dir, existing)
	},
}

var suppressListCmd = &cobra.Command{
	Use:   "list [directory]",
	Short: "List every stored suppression",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := targetDir(args)
		if err != nil {
			return err
		}
		entries, err := suppress.Load(dir)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("no suppressions")
			return nil
		}
		for _, s := range entries {
			fmt.Printf("%-12s %-20s %s  %s\n", s.Type, s.Symbol, s.File, s.Reason)
		}
		return nil
	},
}

func init() {
	suppressAddCmd.Flags().StringVar(&suppressType, "type", "", "twins, dead_parrot, dead_export, or circular")
	suppressAddCmd.Flags().StringVar(&suppressSymbol, "symbol", "", "the finding's symbol name")
	suppressAddCmd.Flags().StringVar(&suppressFile, "file", "", "restrict the suppression to one file (optional)")
	suppressAddCmd.Flags().StringVar(&suppressReason, "reason", "", "why this finding is suppressed (optional)")

	suppressCmd.AddCommand(suppressAddCmd)
	suppressCmd.AddCommand(suppressListCmd)
	rootCmd.AddCommand(suppressCmd)
}

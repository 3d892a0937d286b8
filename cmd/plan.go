package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/loctree/loctree-go/pkg/types"
)

var planCmd = &cobra.Command{
	Use:   "plan [directory]",
	Short: "Suggest a prioritized cleanup order from the current findings",
	Long: `plan ranks the certain-confidence findings first, since those are the
safest to act on without further investigation, then high, then smell. It
is a triage aid over the same Report every other subcommand produces, not
a separate analyzer.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := targetDir(args)
		if err != nil {
			return err
		}
		rep, err := loadReport(dir)
		if err != nil {
			return err
		}

		type item struct {
			confidence types.Confidence
			desc       string
		}
		var items []item
		for _, d := range rep.DeadExports {
			items = append(items, item{d.Confidence, fmt.Sprintf("remove dead export %s (%s:%d)", d.Symbol, d.File, d.Line)})
		}
		for _, c := range rep.Commands {
			if c.Status != types.CommandOK {
				items = append(items, item{c.Confidence, fmt.Sprintf("fix command %q: %s", c.Name, c.Status)})
			}
		}
		for _, e := range rep.Events {
			items = append(items, item{e.Confidence, fmt.Sprintf("fix event %q: %s", e.Name, e.Kind)})
		}
		for _, c := range rep.Cycles {
			items = append(items, item{types.ConfidenceHigh, fmt.Sprintf("break cycle among %v", c.Nodes)})
		}

		rank := map[types.Confidence]int{types.ConfidenceCertain: 0, types.ConfidenceHigh: 1, types.ConfidenceSmell: 2}
		sort.SliceStable(items, func(i, j int) bool { return rank[items[i].confidence] < rank[items[j].confidence] })

		if len(items) == 0 {
			fmt.Println("nothing to plan: no findings")
			return nil
		}
		for i, it := range items {
			fmt.Printf("%2d. [%s] %s\n", i+1, it.confidence, it.desc)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(planCmd)
}

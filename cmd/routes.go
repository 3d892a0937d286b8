package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
)

type routeEntry struct {
	File   string `json:"file"`
	Method string `json:"method"`
	Path   string `json:"path"`
	Line   int    `json:"line"`
}

var routesCmd = &cobra.Command{
	Use:   "routes [directory]",
	Short: "List declared web-framework routes across the project",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := targetDir(args)
		if err != nil {
			return err
		}
		rep, err := loadReport(dir)
		if err != nil {
			return err
		}

		var routes []routeEntry
		for path, fa := range rep.Snapshot.FileAnalyses {
			for _, r := range fa.Routes {
				routes = append(routes, routeEntry{File: path, Method: r.Method, Path: r.Path, Line: r.Line})
			}
		}
		sort.Slice(routes, func(i, j int) bool {
			if routes[i].File != routes[j].File {
				return routes[i].File < routes[j].File
			}
			return routes[i].Line < routes[j].Line
		})

		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(routes)
		}
		if len(routes) == 0 {
			fmt.Println("no routes found")
			return nil
		}
		for _, r := range routes {
			fmt.Printf("%-7s %-30s %s:%d\n", r.Method, r.Path, r.File, r.Line)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(routesCmd)
}

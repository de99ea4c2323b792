/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/oceanmesh/omt/batch"
)

// SummaryCmd represents the summary command
var SummaryCmd = &cobra.Command{
	Use:   "summary FILE...",
	Short: "Read fort.14 meshes and print a boundary summary for each",
	Long: `
Reads every mesh concurrently and prints node, element and boundary counts, polyline counts
after gap splitting, boundary edge length statistics and suspicious edge counts.

omt summary fort.14 other/fort.14 --workers 4`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		workers, _ := cmd.Flags().GetInt("workers")
		keepGoing, _ := cmd.Flags().GetBool("keep-going")
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		return runSummary(ctx, cmd.OutOrStdout(), args, batch.Options{
			Workers:   workers,
			KeepGoing: keepGoing,
			Logger:    logger,
		})
	},
}

func runSummary(ctx context.Context, w io.Writer, paths []string, opts batch.Options) (err error) {
	e, _, err := newEngine()
	if err != nil {
		return
	}
	items, err := batch.Run(ctx, paths, e, opts)
	if err != nil {
		return
	}
	var failed int
	for _, item := range items {
		fmt.Fprintf(w, "== %s\n", item.Path)
		if item.Err != nil {
			failed++
			fmt.Fprintf(w, "  error: %v\n", item.Err)
			continue
		}
		item.Result.Summary.Print(w)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d meshes failed", failed, len(items))
	}
	return
}

func init() {
	rootCmd.AddCommand(SummaryCmd)
	SummaryCmd.Flags().IntP("workers", "w", 0, "number of meshes processed at once, 0 uses every CPU")
	SummaryCmd.Flags().BoolP("keep-going", "k", false, "report every mesh even when some fail")
}

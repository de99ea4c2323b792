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
	"go.uber.org/zap"

	"github.com/oceanmesh/omt/artifacts"
)

// BoundariesCmd represents the boundaries command
var BoundariesCmd = &cobra.Command{
	Use:   "boundaries FILE",
	Short: "Rebuild the boundary polylines of a mesh and write them out for inspection",
	Long: `
Writes boundaries.geojson (one LineString per polyline), anomalies.geojson, raw_edges.yaml
and summary.yaml into the output directory. With --fail-fast the raw edges and the anomaly
layer are still written before the command fails.

omt boundaries fort.14 --out debug/ --anomaly-threshold 0.5`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outDir, _ := cmd.Flags().GetString("out")
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		return runBoundaries(ctx, cmd.OutOrStdout(), args[0], outDir)
	},
}

func runBoundaries(ctx context.Context, w io.Writer, fileName, outDir string) (err error) {
	e, _, err := newEngine()
	if err != nil {
		return
	}
	writer, err := artifacts.NewWriter(outDir, logger)
	if err != nil {
		return
	}
	e.Sink = writer
	res, err := e.ProcessFile(ctx, fileName)
	if err != nil {
		return
	}
	if err = writer.WriteResult(ctx, res); err != nil {
		return
	}
	res.Summary.Print(w)
	fmt.Fprintf(w, "Artifacts written to %s (run %s)\n", outDir, writer.RunID)
	if logger != nil {
		logger.Info("boundaries written", zap.String("dir", outDir), zap.String("run_id", writer.RunID))
	}
	return
}

func init() {
	rootCmd.AddCommand(BoundariesCmd)
	BoundariesCmd.Flags().StringP("out", "o", "boundaries", "directory receiving the artifacts")
}

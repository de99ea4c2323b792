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
	"image/color"
	"math"
	"os"
	"os/signal"

	"github.com/notargets/avs/chart2d"
	utils2 "github.com/notargets/avs/utils"
	"github.com/paulmach/orb"
	"github.com/spf13/cobra"

	"github.com/oceanmesh/omt/boundary"
)

// PlotCmd represents the plot command
var PlotCmd = &cobra.Command{
	Use:   "plot FILE",
	Short: "Display the boundary polylines of a mesh",
	Long: `
Opens a window showing the open boundary, coastline and other land boundary polylines and
any suspicious edges. The command runs until the window is closed or it is interrupted.

omt plot fort.14 --gap-threshold 0.05 --anomaly-threshold 0.2`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		e, _, err := newEngine()
		if err != nil {
			return
		}
		res, err := e.ProcessFile(ctx, args[0])
		if err != nil {
			return
		}
		res.Summary.Print(cmd.OutOrStdout())
		PlotBoundaries(ctx, res)
		return
	},
}

func init() {
	rootCmd.AddCommand(PlotCmd)
}

var (
	OpenColor      = utils2.BLUE
	CoastlineColor = utils2.WHITE
	OtherColor     = utils2.GREEN
	AnomalyColor   = utils2.RED
)

// PlotBoundaries draws the result and blocks until ctx is done
func PlotBoundaries(ctx context.Context, res *boundary.Result) {
	lines := BoundaryLines(res)
	xMin, xMax, yMin, yMax := linesMinMax(lines)
	ch := chart2d.NewChart2D(xMin, xMax, yMin, yMax,
		1024, 1024, utils2.WHITE, utils2.BLACK)
	for col, line := range lines {
		ch.AddLine(line, col)
	}
	<-ctx.Done()
}

// BoundaryLines flattens polylines into x1,y1,x2,y2 segment lists keyed by colour
func BoundaryLines(res *boundary.Result) (lines map[color.RGBA][]float32) {
	lines = make(map[color.RGBA][]float32)
	addPolylines := func(polys []boundary.Polyline, col color.RGBA) {
		for _, p := range polys {
			for i := 1; i < len(p.Points); i++ {
				AddLine(p.Points[i-1], p.Points[i], col, lines)
			}
		}
	}
	addPolylines(res.Open, OpenColor)
	addPolylines(res.Coastline, CoastlineColor)
	addPolylines(res.Other, OtherColor)
	for _, a := range res.Report.Top {
		AddLine(a.A, a.B, AnomalyColor, lines)
	}
	return
}

func AddLine(a, b orb.Point, col color.RGBA, lines map[color.RGBA][]float32) {
	lines[col] = append(lines[col],
		float32(a.X()), float32(a.Y()),
		float32(b.X()), float32(b.Y()),
	)
}

func linesMinMax(lines map[color.RGBA][]float32) (xMin, xMax, yMin, yMax float32) {
	xMin, xMax = float32(math.MaxFloat32), -float32(math.MaxFloat32)
	yMin, yMax = float32(math.MaxFloat32), -float32(math.MaxFloat32)
	for _, line := range lines {
		for i := 0; i+1 < len(line); i += 2 {
			xMin, xMax = min(xMin, line[i]), max(xMax, line[i])
			yMin, yMax = min(yMin, line[i+1]), max(yMax, line[i+1])
		}
	}
	if xMin > xMax {
		return 0, 1, 0, 1
	}
	return
}

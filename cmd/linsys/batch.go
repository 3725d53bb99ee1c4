// Copyright ©2017 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	cli "github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"github.com/vladimir-ch/linsys"
)

var batchCmd = &cli.Command{
	Name:      "batch",
	Usage:     "solve every NAME.coo in DIR that has a matching NAME.vec",
	ArgsUsage: "DIR",
	Flags: append([]cli.Flag{
		&cli.IntFlag{
			Name:    "jobs",
			Aliases: []string{"j"},
			Value:   runtime.NumCPU(),
			Usage:   "number of systems solved at the same time",
		},
		&cli.BoolFlag{
			Name:  "no-progress",
			Usage: "do not draw a progress bar",
		},
	}, solverFlags...),
	Action: func(cctx *cli.Context) error {
		if cctx.NArg() != 1 {
			return cli.Exit("batch: expected exactly one directory", 2)
		}
		pairs, err := findSystems(cctx.Args().First())
		if err != nil {
			return err
		}
		if len(pairs) == 0 {
			log.Warnw("no systems found", "dir", cctx.Args().First())
			return nil
		}
		log.Infow("solving systems", "count", len(pairs), "jobs", cctx.Int("jobs"))

		bar := progressbar.NewOptions(len(pairs),
			progressbar.OptionSetWriter(cctx.App.ErrWriter),
			progressbar.OptionSetDescription("Solving systems"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
			progressbar.OptionSetVisibility(!cctx.Bool("no-progress")),
		)

		results := make([]batchResult, len(pairs))
		g, ctx := errgroup.WithContext(cctx.Context)
		g.SetLimit(max(1, cctx.Int("jobs")))
		for i, p := range pairs {
			i, p := i, p // per-iteration copies (module targets go 1.21)
			g.Go(func() error {
				defer bar.Add(1)
				if err := ctx.Err(); err != nil {
					return err
				}
				results[i] = solvePair(cctx, p)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
		bar.Finish()

		tw := tabwriter.NewWriter(cctx.App.Writer, 0, 8, 2, ' ', 0)
		fmt.Fprintln(tw, "SYSTEM\tDIM\tITER\tRESIDUAL\tSTATUS")
		var failed int
		for _, r := range results {
			status := "ok"
			if r.err != nil {
				status = r.err.Error()
				failed++
			}
			fmt.Fprintf(tw, "%s\t%d\t%d\t%.3e\t%s\n", r.name, r.dim, r.iterations, r.residual, status)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		if failed > 0 {
			return errors.Errorf("%d of %d systems failed", failed, len(results))
		}
		return nil
	},
}

// systemPair names the two files of one dumped system.
type systemPair struct {
	name   string
	matrix string
	rhs    string
}

type batchResult struct {
	name       string
	dim        int
	iterations int
	residual   float64
	err        error
}

// findSystems returns the NAME.coo files in dir that have a NAME.vec
// sibling, sorted by name.
func findSystems(dir string) ([]systemPair, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, &linsys.FileAccessError{Path: dir, Err: err}
	}
	matrices, err := filepath.Glob(filepath.Join(dir, "*.coo"))
	if err != nil {
		return nil, err
	}
	sort.Strings(matrices)
	var pairs []systemPair
	for _, m := range matrices {
		rhs := strings.TrimSuffix(m, ".coo") + ".vec"
		if _, err := os.Stat(rhs); err != nil {
			log.Warnw("skipping matrix without right-hand side", "matrix", m)
			continue
		}
		pairs = append(pairs, systemPair{
			name:   strings.TrimSuffix(filepath.Base(m), ".coo"),
			matrix: m,
			rhs:    rhs,
		})
	}
	return pairs, nil
}

func solvePair(cctx *cli.Context, p systemPair) batchResult {
	r := batchResult{name: p.name}
	sys, err := linsys.LoadSystem(cctx.Context, p.matrix, p.rhs)
	if err != nil {
		r.err = err
		log.Errorw("load failed", "system", p.name, "error", err)
		return r
	}
	r.dim = sys.Dim()
	res, err := solveSystem(cctx, sys)
	r.iterations = res.Stats.Iterations
	if res.X != nil {
		r.residual = floats.Norm(sys.Residual(res.X), 2)
	}
	if err != nil {
		r.err = err
		log.Errorw("solve failed", "system", p.name, "error", err)
		return r
	}
	log.Debugw("solved", "system", p.name, "dim", r.dim, "iterations", r.iterations)
	return r
}

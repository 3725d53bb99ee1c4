// Copyright ©2017 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"

	"github.com/pkg/errors"
	cli "github.com/urfave/cli/v2"
	"gonum.org/v1/gonum/floats"

	"github.com/vladimir-ch/linsys"
	"github.com/vladimir-ch/linsys/iterative"
)

// solverFlags are shared by solve and batch.
var solverFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "method",
		Aliases: []string{"m"},
		Value:   "bicgstab",
		Usage:   "cg, bicg, bicgstab or gmres",
		EnvVars: []string{"LINSYS_METHOD"},
	},
	&cli.Float64Flag{
		Name:  "tol",
		Usage: "relative tolerance, 0 for the default",
	},
	&cli.IntFlag{
		Name:  "max-iter",
		Usage: "iteration limit, 0 for twice the dimension",
	},
	&cli.IntFlag{
		Name:  "restart",
		Usage: "GMRES restart length, 0 for the dimension",
	},
	&cli.BoolFlag{
		Name:  "jacobi",
		Usage: "precondition with the diagonal of the matrix",
	},
}

var solveCmd = &cli.Command{
	Name:  "solve",
	Usage: "solve one system",
	Flags: append([]cli.Flag{
		&cli.StringFlag{
			Name:     "matrix",
			Aliases:  []string{"a"},
			Usage:    "matrix file",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "rhs",
			Aliases:  []string{"b"},
			Usage:    "right-hand side file",
			Required: true,
		},
		&cli.StringFlag{
			Name:    "out",
			Aliases: []string{"o"},
			Usage:   "write the solution to this file, one value per line",
		},
	}, solverFlags...),
	Action: func(cctx *cli.Context) error {
		sys, err := linsys.LoadSystem(cctx.Context, cctx.String("matrix"), cctx.String("rhs"))
		if err != nil {
			return err
		}
		log.Infow("loaded system", "dim", sys.Dim(), "nnz", sys.A.NNZ())

		res, err := solveSystem(cctx, sys)
		if err != nil {
			return err
		}
		fmt.Fprintf(cctx.App.Writer, "iterations %d, matvec %d, residual %.6e, time %v\n",
			res.Stats.Iterations, res.Stats.MatVec,
			floats.Norm(sys.Residual(res.X), 2), res.Stats.Runtime)

		if out := cctx.String("out"); out != "" {
			if err := writeVector(out, res.X); err != nil {
				return err
			}
			log.Infow("wrote solution", "path", out)
		}
		return nil
	},
}

func newMethod(name string, restart int) (iterative.Method, error) {
	switch name {
	case "cg":
		return &iterative.CG{}, nil
	case "bicg":
		return &iterative.BiCG{}, nil
	case "bicgstab":
		return &iterative.BiCGSTAB{}, nil
	case "gmres":
		return &iterative.GMRES{Restart: restart}, nil
	default:
		return nil, errors.Errorf("unknown method %q", name)
	}
}

func solveSystem(cctx *cli.Context, sys *linsys.System) (iterative.Result, error) {
	restart := cctx.Int("restart")
	if restart < 0 || sys.Dim() < restart {
		return iterative.Result{}, errors.Errorf("restart %d out of range [0, %d]", restart, sys.Dim())
	}
	if tol := cctx.Float64("tol"); tol != 0 && (tol < 1e-15 || 1 <= tol) {
		return iterative.Result{}, errors.Errorf("tolerance %g out of range [1e-15, 1)", tol)
	}
	method, err := newMethod(cctx.String("method"), restart)
	if err != nil {
		return iterative.Result{}, err
	}
	settings := iterative.Settings{
		Tolerance:     cctx.Float64("tol"),
		MaxIterations: cctx.Int("max-iter"),
	}
	if cctx.Bool("jacobi") {
		if err := sys.Jacobi(&settings); err != nil {
			return iterative.Result{}, err
		}
	}
	log.Debugw("solving", "method", cctx.String("method"), "jacobi", cctx.Bool("jacobi"))
	return sys.Solve(method, settings)
}

func writeVector(path string, x []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	for _, v := range x {
		w.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Copyright ©2017 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"path/filepath"

	cli "github.com/urfave/cli/v2"

	"github.com/vladimir-ch/linsys"
)

var infoCmd = &cli.Command{
	Name:      "info",
	Usage:     "print the shape of matrix (.coo) and vector files",
	ArgsUsage: "FILE...",
	Action: func(cctx *cli.Context) error {
		if cctx.NArg() == 0 {
			return cli.Exit("info: no files given", 2)
		}
		w := cctx.App.Writer
		for _, path := range cctx.Args().Slice() {
			log.Debugw("loading", "path", path)
			if isMatrixFile(path) {
				a, err := linsys.LoadCoo(path)
				if err != nil {
					return err
				}
				r, c := a.Dims()
				fmt.Fprintf(w, "%s: matrix %d×%d, %d triplets, %d entries\n",
					path, r, c, a.NNZ(), a.SumDuplicates().NNZ())
				continue
			}
			v, err := linsys.LoadVec(path)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%s: array %v\n", path, v.Shape())
		}
		return nil
	},
}

func isMatrixFile(path string) bool {
	return filepath.Ext(path) == ".coo"
}

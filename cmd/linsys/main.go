// Copyright ©2017 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command linsys inspects and solves linear systems stored as a matrix
// file of "row col value" triplets and a right-hand side vector file.
package main

import (
	"os"

	cli "github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

var log = zap.NewNop().Sugar()

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		log.Errorw("linsys failed", "error", err)
		_ = log.Sync()
		os.Exit(1)
	}
	_ = log.Sync()
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "linsys"
	app.Usage = "inspect and solve sparse linear systems dumped as text"
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "log-level",
			Value:   LogLevelInfo.String(),
			Usage:   "debug, info, warn or error",
			EnvVars: []string{"LINSYS_LOG_LEVEL"},
		},
		&cli.BoolFlag{
			Name:    "log-json",
			Usage:   "log as JSON",
			EnvVars: []string{"LINSYS_LOG_JSON"},
		},
	}
	app.Before = func(cctx *cli.Context) error {
		level := LogLevel(cctx.String("log-level"))
		log = newLogger(cctx.App.ErrWriter, level, cctx.Bool("log-json")).Sugar()
		return nil
	}
	app.Commands = []*cli.Command{
		infoCmd,
		solveCmd,
		batchCmd,
	}
	return app
}

// Copyright ©2017 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	cli "github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"

	"github.com/vladimir-ch/linsys"
)

const (
	laplaceCoo = "../../testdata/laplace.coo"
	laplaceVec = "../../testdata/laplace.vec"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = io.Discard
	app.ExitErrHandler = func(*cli.Context, error) {}
	err := app.Run(append([]string{"linsys", "--log-level", "error"}, args...))
	return out.String(), err
}

func copyFile(t *testing.T, dst, src string) {
	t.Helper()
	data, err := os.ReadFile(src)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(dst, data, 0o644))
}

func TestInfo(t *testing.T) {
	out, err := run(t, "info", laplaceCoo, laplaceVec)
	require.NoError(t, err)
	require.Contains(t, out, "matrix 16×16, 64 triplets, 64 entries")
	require.Contains(t, out, "array [16]")

	_, err = run(t, "info")
	require.Error(t, err)

	_, err = run(t, "info", filepath.Join(t.TempDir(), "missing.coo"))
	var ferr *linsys.FileAccessError
	require.ErrorAs(t, err, &ferr)
}

func TestSolve(t *testing.T) {
	for _, method := range []string{"cg", "bicg", "bicgstab", "gmres"} {
		for _, jacobi := range []string{"--jacobi=false", "--jacobi"} {
			path := filepath.Join(t.TempDir(), "x.vec")
			out, err := run(t, "solve", "-a", laplaceCoo, "-b", laplaceVec,
				"--method", method, "--tol", "1e-12", jacobi, "--out", path)
			require.NoError(t, err, method)
			require.Contains(t, out, "iterations")

			x, err := linsys.LoadVec(path)
			require.NoError(t, err)
			v, err := x.Vector()
			require.NoError(t, err)
			require.Len(t, v, 16)
			want := make([]float64, 16)
			floats.AddConst(1, want)
			require.Less(t, floats.Distance(v, want, math.Inf(1)), 1e-9, "%s %s", method, jacobi)
		}
	}
}

func TestSolveErrors(t *testing.T) {
	for _, args := range [][]string{
		{"--method", "lu"},
		{"--tol", "2"},
		{"--restart", "17"},
		{"--max-iter", "1", "--method", "cg"},
	} {
		_, err := run(t, append([]string{"solve", "-a", laplaceCoo, "-b", laplaceVec}, args...)...)
		require.Error(t, err, "%v", args)
	}

	_, err := run(t, "solve", "-a", laplaceCoo)
	require.Error(t, err)
}

func TestBatch(t *testing.T) {
	dir := t.TempDir()
	copyFile(t, filepath.Join(dir, "p.coo"), laplaceCoo)
	copyFile(t, filepath.Join(dir, "p.vec"), laplaceVec)
	copyFile(t, filepath.Join(dir, "u.coo"), laplaceCoo)
	copyFile(t, filepath.Join(dir, "u.vec"), laplaceVec)
	copyFile(t, filepath.Join(dir, "lonely.coo"), laplaceCoo)

	out, err := run(t, "batch", "--no-progress", "-j", "2", "--method", "gmres", dir)
	require.NoError(t, err)
	require.Contains(t, out, "SYSTEM")
	require.Regexp(t, `(?m)^p\s+16\s+\d+\s+\S+\s+ok$`, out)
	require.Regexp(t, `(?m)^u\s+16\s+\d+\s+\S+\s+ok$`, out)
	require.NotContains(t, out, "lonely")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.coo"), []byte("0 0 x\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.vec"), []byte("1\n"), 0o644))
	out, err = run(t, "batch", "--no-progress", dir)
	require.EqualError(t, err, "1 of 3 systems failed")
	require.Regexp(t, `(?m)^bad\s+0\s+0\s+.*linsys: .*bad\.coo:1`, out)

	_, err = run(t, "batch", filepath.Join(dir, "nope"))
	var ferr *linsys.FileAccessError
	require.ErrorAs(t, err, &ferr)
}

func TestLogLevel(t *testing.T) {
	for _, tc := range []struct {
		level LogLevel
		want  zap.AtomicLevel
	}{
		{LogLevelDebug, zap.NewAtomicLevelAt(zap.DebugLevel)},
		{"warning", zap.NewAtomicLevelAt(zap.WarnLevel)},
		{LogLevelError, zap.NewAtomicLevelAt(zap.ErrorLevel)},
		{"bogus", zap.NewAtomicLevelAt(zap.InfoLevel)},
	} {
		require.Equal(t, tc.want.Level(), tc.level.Zap().Level(), "%s", tc.level)
	}

	var buf bytes.Buffer
	logger := newLogger(&buf, LogLevelWarn, true)
	logger.Info("dropped")
	logger.Warn("kept", zap.Int("dim", 3))
	require.NotContains(t, buf.String(), "dropped")
	require.Contains(t, buf.String(), `"dim":3`)
}

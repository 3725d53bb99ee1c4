// Copyright ©2017 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linsys

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrDimensionMismatch is returned when a matrix does not fit the
	// length of a right-hand side.
	ErrDimensionMismatch = errors.New("linsys: dimension mismatch")

	// ErrNotVector is returned by Array.Vector for a two-dimensional
	// array.
	ErrNotVector = errors.New("linsys: array is not one-dimensional")
)

// FileAccessError reports a file that could not be opened or read.
type FileAccessError struct {
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("linsys: cannot read %s: %v", e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error { return e.Err }

// ParseError reports a line that does not match the expected numeric
// layout.
type ParseError struct {
	// Path is the file name, empty when reading from an io.Reader.
	Path string
	// Line is the 1-based line number.
	Line int
	// Text is the content of the line with comments removed.
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	name := e.Path
	if name == "" {
		name = "input"
	}
	return fmt.Sprintf("linsys: %s:%d: %q: %v", name, e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

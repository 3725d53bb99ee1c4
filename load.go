// Copyright ©2017 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linsys

import (
	"bufio"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/pkg/errors"

	"github.com/vladimir-ch/linsys/coo"
)

// LoadCoo reads the matrix file at path. Every data line must hold a
// non-negative integer row index, a non-negative integer column index and
// a floating-point value. The dimensions of the matrix are the largest row
// and column indices plus one; a file without data lines gives a 0×0
// matrix. Triplets with repeated coordinates are all kept, and coo.Matrix
// sums them.
func LoadCoo(path string) (*coo.Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &FileAccessError{Path: path, Err: err}
	}
	defer f.Close()
	return readCoo(f, path)
}

// ReadCoo reads a matrix in the format of LoadCoo from r.
func ReadCoo(r io.Reader) (*coo.Matrix, error) {
	return readCoo(r, "")
}

func readCoo(r io.Reader, path string) (*coo.Matrix, error) {
	var (
		rows, cols []int
		vals       []float64
	)
	fs := newFieldScanner(r)
	for fs.Scan() {
		i, j, v, err := parseTriplet(fs.fields)
		if err != nil {
			return nil, &ParseError{Path: path, Line: fs.line, Text: fs.text, Err: err}
		}
		rows = append(rows, i)
		cols = append(cols, j)
		vals = append(vals, v)
	}
	if err := scanError(fs, path); err != nil {
		return nil, err
	}
	m, err := coo.NewFromTriplets(rows, cols, vals)
	if err != nil {
		// parseTriplet rejects everything NewFromTriplets does.
		panic(err)
	}
	return m, nil
}

func parseTriplet(fields []string) (i, j int, v float64, err error) {
	if len(fields) != 3 {
		return 0, 0, 0, errors.Errorf("got %d fields, want 3", len(fields))
	}
	i, err = parseIndex(fields[0])
	if err != nil {
		return 0, 0, 0, errors.Wrap(err, "row index")
	}
	j, err = parseIndex(fields[1])
	if err != nil {
		return 0, 0, 0, errors.Wrap(err, "column index")
	}
	v, err = parseValue(fields[2])
	if err != nil {
		return 0, 0, 0, errors.Wrap(err, "value")
	}
	return i, j, v, nil
}

func parseIndex(s string) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if i < 0 {
		return 0, errors.Errorf("negative index %d", i)
	}
	if i == math.MaxInt {
		return 0, errors.Errorf("index %d leaves no room for the dimension", i)
	}
	return i, nil
}

// parseValue reads a float64, taking magnitudes beyond its range as ±Inf.
func parseValue(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil && errors.Is(err, strconv.ErrRange) && math.IsInf(v, 0) {
		return v, nil
	}
	return v, err
}

// scanError classifies the error that stopped fs. An overlong line is a
// fault of the content and is reported against the line that follows the
// last one read.
func scanError(fs *fieldScanner, path string) error {
	err := fs.Err()
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bufio.ErrTooLong):
		err = errors.Wrapf(err, "line longer than %d bytes", maxLineLength)
		return &ParseError{Path: path, Line: fs.line + 1, Err: err}
	default:
		return &FileAccessError{Path: path, Err: err}
	}
}

// LoadVec reads the vector file at path. Every data line must hold the
// same number of floating-point values. The shape of the result follows
// the layout of the file:
//  - a single column, or a single line, gives a one-dimensional array,
//  - several lines of several values give a two-dimensional array with
//    one row per line,
//  - a file without data lines gives an empty one-dimensional array.
func LoadVec(path string) (*Array, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &FileAccessError{Path: path, Err: err}
	}
	defer f.Close()
	return readVec(f, path)
}

// ReadVec reads an array in the format of LoadVec from r.
func ReadVec(r io.Reader) (*Array, error) {
	return readVec(r, "")
}

func readVec(r io.Reader, path string) (*Array, error) {
	var (
		data       []float64
		rows, cols int
	)
	fs := newFieldScanner(r)
	for fs.Scan() {
		if rows == 0 {
			cols = len(fs.fields)
		} else if len(fs.fields) != cols {
			err := errors.Errorf("got %d values, want %d", len(fs.fields), cols)
			return nil, &ParseError{Path: path, Line: fs.line, Text: fs.text, Err: err}
		}
		for k, f := range fs.fields {
			v, err := parseValue(f)
			if err != nil {
				err = errors.Wrapf(err, "value %d", k+1)
				return nil, &ParseError{Path: path, Line: fs.line, Text: fs.text, Err: err}
			}
			data = append(data, v)
		}
		rows++
	}
	if err := scanError(fs, path); err != nil {
		return nil, err
	}
	return newArray(data, rows, cols), nil
}

// Copyright ©2017 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linsys

import (
	"bufio"
	"io"
	"strings"
)

// maxLineLength bounds a single line. Wide vector files put a whole row
// of a dense matrix on one line.
var maxLineLength = 1 << 28

// fieldScanner splits its input into lines of whitespace separated fields,
// dropping comments and lines that have no fields.
type fieldScanner struct {
	s      *bufio.Scanner
	line   int
	text   string
	fields []string
}

func newFieldScanner(r io.Reader) *fieldScanner {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, min(64*1024, maxLineLength)), maxLineLength)
	return &fieldScanner{s: s}
}

// Scan advances to the next line that has at least one field.
func (fs *fieldScanner) Scan() bool {
	for fs.s.Scan() {
		fs.line++
		text := fs.s.Text()
		if k := strings.IndexByte(text, '#'); k >= 0 {
			text = text[:k]
		}
		fs.fields = strings.Fields(text)
		if len(fs.fields) > 0 {
			fs.text = strings.TrimSpace(text)
			return true
		}
	}
	return false
}

func (fs *fieldScanner) Err() error { return fs.s.Err() }

// Copyright ©2017 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package linsys loads linear systems A x = b that were dumped as plain text.
//
// A matrix file holds one "row col value" triplet per line and is read by
// LoadCoo into a coo.Matrix. A vector file holds whitespace separated
// numbers, one or more per line, and is read by LoadVec into an Array. In
// both formats '#' starts a comment that runs to the end of the line, and
// blank lines are ignored:
//
//  # row col val
//  0 0 4
//  1 1 4
//  0 1 -1
//  1 0 -1
//
// Loaders either return the complete result or an error. A missing or
// unreadable file gives a *FileAccessError, malformed content a
// *ParseError that names the offending line.
package linsys // import "github.com/vladimir-ch/linsys"

// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package source provides file interning, include-path resolution and
// source-location tracking shared by the preprocessor, lexer and parser.
package source

import "fmt"

// FileID is an interned handle for a source file, issued by a FileTable.
// The zero value is never issued by NewFileTable and may be used by callers
// as an "unknown file" sentinel.
type FileID uint32

// Location identifies a single point within a source file: a file and a
// 1-indexed line/column pair.  Locations are produced by the lexer and
// preprocessor (the latter adjusting line/file in response to `line
// markers emitted across `include boundaries) and carried by every
// Diagnostic and Token.
type Location struct {
	File   FileID
	Line   int
	Column int
}

// String renders a location as "path:line:column" using name to resolve
// File to a path.
func (l Location) String(name func(FileID) string) string {
	return fmt.Sprintf("%s:%d:%d", name(l.File), l.Line, l.Column)
}

// Span covers a contiguous run of text from Start up to and including End,
// both within the same file.
type Span struct {
	Start Location
	End   Location
}

// String renders a span as "path:line:column-line:column" using name to
// resolve File to a path.
func (s Span) String(name func(FileID) string) string {
	if s.Start.File != s.End.File {
		return fmt.Sprintf("%s-%s", s.Start.String(name), s.End.String(name))
	}
	//
	return fmt.Sprintf("%s:%d:%d-%d:%d", name(s.Start.File), s.Start.Line, s.Start.Column, s.End.Line, s.End.Column)
}

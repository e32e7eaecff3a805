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
package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// IncludeNotFound reports that a named file could not be located in any of
// the searched locations.
type IncludeNotFound struct {
	Name     string
	Searched []string
}

func (e *IncludeNotFound) Error() string {
	return fmt.Sprintf("cannot find %q (searched: %s)", e.Name, strings.Join(e.Searched, ", "))
}

// Reader opens source files by name, resolving relative names against an
// ordered list of include paths.  It owns no mutable state about the files
// it opens beyond their interning in the shared FileTable; callers retain
// the returned id for producing Locations.
type Reader struct {
	table        *FileTable
	includePaths []string
}

// NewReader constructs a Reader backed by table, searching includePaths (in
// order) after the directory of the including file.  The caller is
// responsible for merging VERILOG_INCLUDE into includePaths before
// constructing the Reader -- this package never consults the process
// environment directly.
func NewReader(table *FileTable, includePaths []string) *Reader {
	return &Reader{table, includePaths}
}

// Open resolves name relative to contextFile (the file containing the
// `include directive, or "" for a root source) and returns its contents
// with LF-normalized line endings, along with the FileID it was interned
// under.
//
// Resolution order: if name is absolute, it is used as-is.  Otherwise the
// directory of contextFile is tried first, then each configured include
// path, in order.
func (r *Reader) Open(name, contextFile string) (string, FileID, error) {
	if filepath.IsAbs(name) {
		text, err := readFile(name)
		if err != nil {
			return "", 0, &IncludeNotFound{name, []string{name}}
		}
		//
		return r.intern(name, text)
	}
	//
	var candidates []string
	//
	if contextFile != "" {
		candidates = append(candidates, filepath.Join(filepath.Dir(contextFile), name))
	} else {
		candidates = append(candidates, name)
	}
	//
	for _, dir := range r.includePaths {
		candidates = append(candidates, filepath.Join(dir, name))
	}
	//
	for _, candidate := range candidates {
		if text, err := readFile(candidate); err == nil {
			return r.intern(candidate, text)
		}
	}
	//
	return "", 0, &IncludeNotFound{name, candidates}
}

func (r *Reader) intern(path, text string) (string, FileID, error) {
	normalized := normalizeLineEndings(text)
	lineCount := strings.Count(normalized, "\n") + 1
	id := r.table.Intern(path, lineCount)
	//
	return normalized, id, nil
}

func readFile(path string) (string, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	//
	return string(bytes), nil
}

// normalizeLineEndings rewrites CRLF and lone CR line endings to LF.
func normalizeLineEndings(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	//
	return text
}

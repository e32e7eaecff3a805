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

import "sync"

// FileTable interns file paths as FileIDs and tracks, for each id, the
// number of lines it contains.  A single FileTable is shared by a Reader
// and every diagnostic produced downstream of it, so that a Diagnostic can
// carry a compact FileID rather than a full path.
type FileTable struct {
	mu    sync.Mutex
	paths []string
	lines []int
	index map[string]FileID
}

// NewFileTable constructs an empty file table.
func NewFileTable() *FileTable {
	return &FileTable{
		paths: []string{""},
		lines: []int{0},
		index: make(map[string]FileID),
	}
}

// Intern registers path (if not already known) and records its line count,
// returning the FileID assigned to it.  Calling Intern again with the same
// path returns the same id and refreshes its line count.
func (t *FileTable) Intern(path string, lineCount int) FileID {
	t.mu.Lock()
	defer t.mu.Unlock()
	//
	if id, ok := t.index[path]; ok {
		t.lines[id] = lineCount
		return id
	}
	//
	id := FileID(len(t.paths))
	t.paths = append(t.paths, path)
	t.lines = append(t.lines, lineCount)
	t.index[path] = id
	//
	return id
}

// Path returns the path registered against id, or "" if id is unknown.
func (t *FileTable) Path(id FileID) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	//
	if int(id) >= len(t.paths) {
		return ""
	}
	//
	return t.paths[id]
}

// LineCount returns the number of lines recorded for id, or 0 if id is
// unknown.
func (t *FileTable) LineCount(id FileID) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	//
	if int(id) >= len(t.lines) {
		return 0
	}
	//
	return t.lines[id]
}

// InBounds reports whether line is a valid 1-indexed line number for id.
func (t *FileTable) InBounds(id FileID, line int) bool {
	return line >= 1 && line <= t.LineCount(id)
}

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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReaderOpenBesideSource(t *testing.T) {
	dir := t.TempDir()
	mainPath := filepath.Join(dir, "main.v")
	hdrPath := filepath.Join(dir, "hdr.vh")
	//
	require.NoError(t, os.WriteFile(mainPath, []byte("`include \"hdr.vh\"\n"), 0o644))
	require.NoError(t, os.WriteFile(hdrPath, []byte("`define FOO 1\n"), 0o644))
	//
	table := NewFileTable()
	reader := NewReader(table, nil)
	//
	text, id, err := reader.Open("hdr.vh", mainPath)
	require.NoError(t, err)
	assert.Equal(t, "`define FOO 1\n", text)
	assert.NotZero(t, id)
}

func TestReaderOpenViaIncludePath(t *testing.T) {
	dir := t.TempDir()
	incDir := filepath.Join(dir, "inc")
	require.NoError(t, os.Mkdir(incDir, 0o755))
	//
	mainPath := filepath.Join(dir, "main.v")
	hdrPath := filepath.Join(incDir, "hdr.vh")
	require.NoError(t, os.WriteFile(mainPath, []byte(""), 0o644))
	require.NoError(t, os.WriteFile(hdrPath, []byte("`define BAR 2\n"), 0o644))
	//
	table := NewFileTable()
	reader := NewReader(table, []string{incDir})
	//
	text, _, err := reader.Open("hdr.vh", mainPath)
	require.NoError(t, err)
	assert.Equal(t, "`define BAR 2\n", text)
}

func TestReaderOpenNotFoundListsBothPaths(t *testing.T) {
	dir := t.TempDir()
	incDir := filepath.Join(dir, "inc")
	require.NoError(t, os.Mkdir(incDir, 0o755))
	//
	mainPath := filepath.Join(dir, "main.v")
	//
	table := NewFileTable()
	reader := NewReader(table, []string{incDir})
	//
	_, _, err := reader.Open("missing.vh", mainPath)
	require.Error(t, err)
	//
	var notFound *IncludeNotFound
	require.ErrorAs(t, err, &notFound)
	assert.Len(t, notFound.Searched, 2)
}

func TestReaderNormalizesLineEndings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crlf.v")
	require.NoError(t, os.WriteFile(path, []byte("a\r\nb\r\n"), 0o644))
	//
	table := NewFileTable()
	reader := NewReader(table, nil)
	//
	text, id, err := reader.Open(path, "")
	require.NoError(t, err)
	assert.Equal(t, "a\nb\n", text)
	assert.Equal(t, 3, table.LineCount(id))
}

func TestFileTableInternReturnsStableID(t *testing.T) {
	table := NewFileTable()
	id1 := table.Intern("/a.v", 10)
	id2 := table.Intern("/a.v", 10)
	assert.Equal(t, id1, id2)
	assert.Equal(t, "/a.v", table.Path(id1))
}

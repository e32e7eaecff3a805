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
package report

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veriglot/vlhier/pkg/diag"
	"github.com/veriglot/vlhier/pkg/source"
)

func TestResolveColorAlwaysNever(t *testing.T) {
	assert.True(t, ResolveColor("always", os.Stdout.Fd()))
	assert.False(t, ResolveColor("never", os.Stdout.Fd()))
}

func TestPrintRendersOneLinePerDiagnostic(t *testing.T) {
	table := source.NewFileTable()
	id := table.Intern("top.v", 3)
	//
	diags := []diag.Diagnostic{
		diag.Errorf(diag.UnresolvedSubmodule, source.Location{File: id, Line: 2, Column: 1}, "boom"),
	}
	//
	var buf bytes.Buffer
	Print(&buf, diags, table, false)
	//
	require.Contains(t, buf.String(), "top.v:2:1")
	assert.Contains(t, buf.String(), "boom")
}

func TestMergeIncludePathsAppendsEnv(t *testing.T) {
	t.Setenv("VERILOG_INCLUDE", "/a:/b")
	//
	merged := MergeIncludePaths([]string{"-I-first"})
	assert.Equal(t, []string{"-I-first", "/a", "/b"}, merged)
}

func TestMergeIncludePathsNoEnv(t *testing.T) {
	t.Setenv("VERILOG_INCLUDE", "")
	//
	merged := MergeIncludePaths([]string{"/only"})
	assert.Equal(t, []string{"/only"}, merged)
}

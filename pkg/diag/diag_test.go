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
package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/veriglot/vlhier/pkg/source"
)

func TestDefaultSeverity(t *testing.T) {
	assert.Equal(t, Error, DefaultSeverity(InvalidNumber))
	assert.Equal(t, Warning, DefaultSeverity(DuplicateModule))
	assert.Equal(t, Warning, DefaultSeverity(MixedBinding))
}

func TestSinkAccumulates(t *testing.T) {
	sink := NewSink()
	sink.Report(New(InvalidNumber, "bad literal"))
	sink.Report(New(DuplicateModule, "dup"))
	//
	assert.Len(t, sink.All(), 2)
	assert.True(t, sink.HasErrors())
	assert.True(t, sink.HasWarnings())
	assert.Equal(t, 1, sink.Count(Error))
	assert.Equal(t, 1, sink.Count(Warning))
}

func TestSinkMerge(t *testing.T) {
	a := NewSink()
	a.Report(New(InvalidNumber, "bad literal"))
	//
	b := NewSink()
	b.Report(New(IOError, "boom"))
	//
	a.Merge(b)
	assert.Len(t, a.All(), 2)
}

func TestDiagnosticString(t *testing.T) {
	loc := source.Location{File: 1, Line: 3, Column: 1}
	d := Errorf(UnresolvedSubmodule, loc, "unresolved submodule %q", "foo")
	//
	names := func(id source.FileID) string { return "a.v" }
	assert.Equal(t, `error: a.v:3:1: unresolved submodule "foo"`, d.String(names))
}

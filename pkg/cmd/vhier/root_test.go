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
package vhier

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veriglot/vlhier/pkg/diag"
	"github.com/veriglot/vlhier/pkg/language"
	"github.com/veriglot/vlhier/pkg/netlist"
	"github.com/veriglot/vlhier/pkg/parser"
	"github.com/veriglot/vlhier/pkg/source"
)

func TestSplitDefine(t *testing.T) {
	name, value := splitDefine("WIDTH=8")
	assert.Equal(t, "WIDTH", name)
	assert.Equal(t, "8", value)
	//
	name, value = splitDefine("DEBUG")
	assert.Equal(t, "DEBUG", name)
	assert.Equal(t, "1", value)
}

func TestDefaultNettypeNone(t *testing.T) {
	assert.False(t, defaultNettypeNone("module top;\nendmodule\n"))
	assert.True(t, defaultNettypeNone("`default_nettype none\nmodule top;\nendmodule\n"))
	assert.False(t, defaultNettypeNone("`default_nettype none\n`default_nettype wire\nmodule top;\nendmodule\n"))
}

func buildLinkedNetlist(t *testing.T, sources map[string]string) *netlist.Netlist {
	t.Helper()
	//
	sink := diag.NewSink()
	nl := netlist.NewNetlist(netlist.NettypeWire, sink)
	table := source.NewFileTable()
	//
	for name, text := range sources {
		id := table.Intern(name, 0)
		cb := netlist.NewBuilder(nl)
		parser.NewParser(text, table, id, language.SV2012, cb, sink).Parse()
	}
	//
	nl.Link()
	//
	return nl
}

func TestReachableWholeDesignWithoutTop(t *testing.T) {
	nl := buildLinkedNetlist(t, map[string]string{
		"top.v":   "module top;\nadder u1(a, b, c);\nendmodule\n",
		"adder.v": "module adder(input a, input b, output c);\nendmodule\n",
	})
	//
	mods := reachable(nl, "")
	assert.Len(t, mods, 2)
}

func TestReachableRestrictsToSubtree(t *testing.T) {
	nl := buildLinkedNetlist(t, map[string]string{
		"top.v":   "module top;\nadder u1(a, b, c);\nunrelated u2();\nendmodule\n",
		"adder.v": "module adder(input a, input b, output c);\nendmodule\n",
		"other.v": "module unrelated;\nendmodule\n",
	})
	//
	mods := reachable(nl, "adder")
	require.Len(t, mods, 1)
	assert.Equal(t, "adder", mods[0].Name)
}

func TestPrintModulesListsNames(t *testing.T) {
	nl := buildLinkedNetlist(t, map[string]string{
		"top.v": "module top;\nendmodule\n",
	})
	//
	var buf bytes.Buffer
	require.NoError(t, printModules(&buf, nl, ""))
	assert.Equal(t, "top\n", buf.String())
}

func TestPrintCellsShowsInstanceAndSubmodule(t *testing.T) {
	nl := buildLinkedNetlist(t, map[string]string{
		"top.v":   "module top;\nadder u1(a, b, c);\nendmodule\n",
		"adder.v": "module adder(input a, input b, output c);\nendmodule\n",
	})
	//
	var buf bytes.Buffer
	require.NoError(t, printCells(&buf, nl, ""))
	assert.Contains(t, buf.String(), "u1 (adder)")
}

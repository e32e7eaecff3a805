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
package netlist

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veriglot/vlhier/pkg/diag"
	"github.com/veriglot/vlhier/pkg/language"
	"github.com/veriglot/vlhier/pkg/parser"
	"github.com/veriglot/vlhier/pkg/source"
)

func buildNetlist(t *testing.T, sources map[string]string, defaultNet DefaultNettype) (*Netlist, *diag.Sink) {
	t.Helper()
	//
	sink := diag.NewSink()
	nl := NewNetlist(defaultNet, sink)
	table := source.NewFileTable()
	//
	for name, text := range sources {
		id := table.Intern(name, 0)
		cb := NewBuilder(nl)
		p := parser.NewParser(text, table, id, language.SV2012, cb, sink)
		p.Parse()
	}
	//
	return nl, sink
}

func TestNetlistLinkSimpleHierarchy(t *testing.T) {
	top := "module top;\nwire x, y, sum;\nadder u1(x, y, sum);\nendmodule\n"
	adder := "module adder(input a, input b, output sum);\nendmodule\n"
	//
	nl, sink := buildNetlist(t, map[string]string{"top.v": top, "adder.v": adder}, NettypeWire)
	nl.Link()
	//
	require.False(t, sink.HasErrors())
	require.Empty(t, sink.All())
	//
	topModule := nl.FindModule("top")
	require.NotNil(t, topModule)
	require.Len(t, topModule.Cells, 1)
	//
	cell := topModule.Cells[0]
	require.NotNil(t, cell.Submodule)
	assert.Equal(t, "adder", cell.Submodule.Name)
	//
	for _, pin := range cell.Pins {
		assert.NotNil(t, pin.ResolvedPort)
	}
	//
	tops := nl.TopModules()
	require.Len(t, tops, 1)
	assert.Equal(t, "top", tops[0].Name)
}

func TestNetlistUnresolvedSubmoduleWarning(t *testing.T) {
	top := "module top;\nwire x;\nunknown_sub u0(.a(x));\nendmodule\n"
	//
	nl, sink := buildNetlist(t, map[string]string{"top.v": top}, NettypeWire)
	nl.Link()
	//
	cell := nl.FindModule("top").Cells[0]
	assert.Nil(t, cell.Submodule)
	//
	require.Len(t, sink.All(), 1)
	assert.Equal(t, diag.UnresolvedSubmodule, sink.All()[0].Kind)
	assert.Equal(t, diag.Warning, sink.All()[0].Severity)
}

func TestNetlistDuplicateModuleWarnsFirstWins(t *testing.T) {
	a := "module dup;\nwire x;\nendmodule\n"
	b := "module dup;\nwire y;\nendmodule\n"
	//
	nl, sink := buildNetlist(t, map[string]string{"a.v": a, "b.v": b}, NettypeWire)
	nl.Link()
	//
	var dupCount int
	for _, d := range sink.All() {
		if d.Kind == diag.DuplicateModule {
			dupCount++
		}
	}
	//
	assert.Equal(t, 1, dupCount)
	assert.NotNil(t, nl.FindModule("dup"))
}

func TestNetlistUnknownPortWarning(t *testing.T) {
	top := "module top;\nwire x;\nadder u1(.nonexistent(x));\nendmodule\n"
	adder := "module adder(input a);\nendmodule\n"
	//
	nl, sink := buildNetlist(t, map[string]string{"top.v": top, "adder.v": adder}, NettypeWire)
	nl.Link()
	//
	require.Len(t, sink.All(), 1)
	assert.Equal(t, diag.UnknownPort, sink.All()[0].Kind)
}

func TestNetlistPortArityWarning(t *testing.T) {
	top := "module top;\nwire x, y;\nadder u1(x, y);\nendmodule\n"
	adder := "module adder(input a);\nendmodule\n"
	//
	nl, sink := buildNetlist(t, map[string]string{"top.v": top, "adder.v": adder}, NettypeWire)
	nl.Link()
	//
	require.Len(t, sink.All(), 1)
	assert.Equal(t, diag.PortArity, sink.All()[0].Kind)
}

func TestNetlistImplicitNetDeclaredFalse(t *testing.T) {
	top := "module top;\nadder u1(a, b, c);\nendmodule\n"
	adder := "module adder(input a, input b, output c);\nendmodule\n"
	//
	nl, sink := buildNetlist(t, map[string]string{"top.v": top, "adder.v": adder}, NettypeWire)
	nl.Link()
	//
	require.False(t, sink.HasErrors())
	//
	net := nl.FindModule("top").FindNet("a")
	require.NotNil(t, net)
	assert.False(t, net.Declared)
}

func TestNetlistNetDrivenByAndReadBy(t *testing.T) {
	top := "module top;\nwire x, y, sum;\nadder u1(x, y, sum);\nendmodule\n"
	adder := "module adder(input a, input b, output sum);\nendmodule\n"
	//
	nl, _ := buildNetlist(t, map[string]string{"top.v": top, "adder.v": adder}, NettypeWire)
	nl.Link()
	//
	topModule := nl.FindModule("top")
	sumNet := topModule.FindNet("sum")
	require.NotNil(t, sumNet)
	assert.Len(t, sumNet.DrivenBy, 1)
	//
	xNet := topModule.FindNet("x")
	require.NotNil(t, xNet)
	assert.Len(t, xNet.ReadBy, 1)
}

func TestNetlistGatePrimitiveResolvesToSentinel(t *testing.T) {
	top := "module top;\nwire a, b, y;\nnand g1(y, a, b);\nendmodule\n"
	//
	nl, sink := buildNetlist(t, map[string]string{"top.v": top}, NettypeWire)
	nl.Link()
	//
	require.False(t, sink.HasErrors())
	//
	cell := nl.FindModule("top").Cells[0]
	assert.Same(t, GatePrimitiveSentinel, cell.Submodule)
}

func TestNetlistHierarchyCycleDetected(t *testing.T) {
	a := "module a;\nb u1();\nendmodule\n"
	b := "module b;\na u1();\nendmodule\n"
	//
	nl, sink := buildNetlist(t, map[string]string{"a.v": a, "b.v": b}, NettypeWire)
	nl.Link()
	//
	var cycles int
	for _, d := range sink.All() {
		if d.Kind == diag.HierarchyCycle {
			cycles++
		}
	}
	//
	assert.GreaterOrEqual(t, cycles, 1)
}

func TestNetlistDumpText(t *testing.T) {
	top := "module top(input clk);\nendmodule\n"
	//
	nl, _ := buildNetlist(t, map[string]string{"top.v": top}, NettypeWire)
	nl.Link()
	//
	var buf bytes.Buffer
	require.NoError(t, nl.Dump(&buf, DumpText))
	assert.Contains(t, buf.String(), "Module: top")
}

func TestNetlistDumpJSON(t *testing.T) {
	top := "module top(input clk);\nendmodule\n"
	//
	nl, _ := buildNetlist(t, map[string]string{"top.v": top}, NettypeWire)
	nl.Link()
	//
	var buf bytes.Buffer
	require.NoError(t, nl.Dump(&buf, DumpJSON))
	assert.Contains(t, buf.String(), `"top"`)
}

func TestNetlistPathToInstance(t *testing.T) {
	top := "module top;\nadder u1(a, b, c);\nendmodule\n"
	adder := "module adder(input a, input b, output c);\nendmodule\n"
	//
	nl, _ := buildNetlist(t, map[string]string{"top.v": top, "adder.v": adder}, NettypeWire)
	nl.Link()
	//
	p := nl.Path("adder")
	assert.Equal(t, "top.u1", p.String())
}

func TestNetlistFrozenAfterLink(t *testing.T) {
	top := "module top;\nendmodule\n"
	//
	nl, sink := buildNetlist(t, map[string]string{"top.v": top}, NettypeWire)
	nl.Link()
	nl.Link()
	//
	var frozen int
	for _, d := range sink.All() {
		if d.Kind == diag.NetlistFrozen {
			frozen++
		}
	}
	//
	assert.Equal(t, 1, frozen)
}

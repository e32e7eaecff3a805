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
package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veriglot/vlhier/pkg/diag"
	"github.com/veriglot/vlhier/pkg/language"
	"github.com/veriglot/vlhier/pkg/source"
)

type portEvent struct {
	name, direction, netType, rangeText string
}

func parse(t *testing.T, text string, cb Callbacks) *diag.Sink {
	t.Helper()
	table := source.NewFileTable()
	id := table.Intern("t.v", 10)
	sink := diag.NewSink()
	p := NewParser(text, table, id, language.SV2012, cb, sink)
	p.Parse()
	return sink
}

func TestParserModuleAndPorts(t *testing.T) {
	var begins, ends []string
	var ports []portEvent
	//
	cb := Callbacks{
		ModuleBegin: func(name string, loc source.Location) { begins = append(begins, name) },
		ModuleEnd:   func(name string, loc source.Location) { ends = append(ends, name) },
		Port: func(name, direction, netType, rangeText string, loc source.Location) {
			ports = append(ports, portEvent{name, direction, netType, rangeText})
		},
	}
	//
	text := "module test_module(input clk, input rst, output [31:0] count);\nendmodule\n"
	sink := parse(t, text, cb)
	//
	require.False(t, sink.HasErrors())
	require.Equal(t, []string{"test_module"}, begins)
	require.Equal(t, []string{"test_module"}, ends)
	require.Len(t, ports, 3)
	assert.Equal(t, portEvent{"clk", "input", "", ""}, ports[0])
	assert.Equal(t, portEvent{"rst", "input", "", ""}, ports[1])
	assert.Equal(t, portEvent{"count", "output", "", "[31:0]"}, ports[2])
}

func TestParserBodyPortDeclaration(t *testing.T) {
	var ports []portEvent
	//
	cb := Callbacks{
		Port: func(name, direction, netType, rangeText string, loc source.Location) {
			ports = append(ports, portEvent{name, direction, netType, rangeText})
		},
	}
	//
	text := "module m(a, b);\ninput a;\noutput reg [7:0] b;\nendmodule\n"
	sink := parse(t, text, cb)
	//
	require.False(t, sink.HasErrors())
	require.Len(t, ports, 2)
	assert.Equal(t, portEvent{"a", "input", "", ""}, ports[0])
	assert.Equal(t, portEvent{"b", "output", "reg", "[7:0]"}, ports[1])
}

func TestParserSignalDeclaration(t *testing.T) {
	type sig struct{ kind, name, rangeText string }
	var sigs []sig
	//
	cb := Callbacks{
		SignalDeclaration: func(kind, name, rangeText string, loc source.Location) {
			sigs = append(sigs, sig{kind, name, rangeText})
		},
	}
	//
	text := "module m;\nwire [3:0] data;\nreg flag;\nendmodule\n"
	sink := parse(t, text, cb)
	//
	require.False(t, sink.HasErrors())
	require.Len(t, sigs, 2)
	assert.Equal(t, sig{"wire", "data", "[3:0]"}, sigs[0])
	assert.Equal(t, sig{"reg", "flag", ""}, sigs[1])
}

func TestParserPositionalCellInstance(t *testing.T) {
	type cell struct{ instance, submodule string }
	type pin struct {
		portName  string
		portIndex int
		netExpr   string
	}
	var cells []cell
	var pins []pin
	//
	cb := Callbacks{
		CellBegin: func(instance, submodule string, loc source.Location) { cells = append(cells, cell{instance, submodule}) },
		Pin: func(portName string, portIndex int, netExpr string, loc source.Location) {
			pins = append(pins, pin{portName, portIndex, netExpr})
		},
	}
	//
	text := "module top;\nadder u1(a, b, sum);\nendmodule\n"
	sink := parse(t, text, cb)
	//
	require.False(t, sink.HasErrors())
	require.Equal(t, []cell{{"u1", "adder"}}, cells)
	require.Len(t, pins, 3)
	assert.Equal(t, pin{"", 0, "a"}, pins[0])
	assert.Equal(t, pin{"", 1, "b"}, pins[1])
	assert.Equal(t, pin{"", 2, "sum"}, pins[2])
}

func TestParserNamedCellInstance(t *testing.T) {
	type pin struct {
		portName  string
		portIndex int
		netExpr   string
	}
	var pins []pin
	//
	cb := Callbacks{
		Pin: func(portName string, portIndex int, netExpr string, loc source.Location) {
			pins = append(pins, pin{portName, portIndex, netExpr})
		},
	}
	//
	text := "module top;\nadder u1(.a(x), .b(y), .sum(z));\nendmodule\n"
	sink := parse(t, text, cb)
	//
	require.False(t, sink.HasErrors())
	require.Equal(t, []pin{{"a", -1, "x"}, {"b", -1, "y"}, {"sum", -1, "z"}}, pins)
}

func TestParserMixedBindingIsWarning(t *testing.T) {
	text := "module top;\nadder u1(x, .b(y));\nendmodule\n"
	sink := parse(t, text, Callbacks{})
	//
	require.Len(t, sink.All(), 1)
	assert.Equal(t, diag.MixedBinding, sink.All()[0].Kind)
}

func TestParserEmptyPositionalSlot(t *testing.T) {
	type pin struct {
		portName  string
		portIndex int
		netExpr   string
	}
	var pins []pin
	//
	cb := Callbacks{
		Pin: func(portName string, portIndex int, netExpr string, loc source.Location) {
			pins = append(pins, pin{portName, portIndex, netExpr})
		},
	}
	//
	text := "module top;\nadder u1(a, , c);\nendmodule\n"
	sink := parse(t, text, cb)
	//
	require.False(t, sink.HasErrors())
	require.Equal(t, []pin{{"", 0, "a"}, {"", 1, ""}, {"", 2, "c"}}, pins)
}

func TestParserParameterDeclaration(t *testing.T) {
	type param struct{ name, defaultText string }
	var params []param
	//
	cb := Callbacks{
		Parameter: func(name, defaultText string, loc source.Location) {
			params = append(params, param{name, defaultText})
		},
	}
	//
	text := "module m;\nparameter WIDTH = 8;\nlocalparam DEPTH = WIDTH * 2;\nendmodule\n"
	sink := parse(t, text, cb)
	//
	require.False(t, sink.HasErrors())
	require.Len(t, params, 2)
	assert.Equal(t, "WIDTH", params[0].name)
	assert.Equal(t, "8", params[0].defaultText)
	assert.Equal(t, "DEPTH", params[1].name)
}

func TestParserSkipsUnrecognizedStatements(t *testing.T) {
	var begins []string
	//
	cb := Callbacks{ModuleBegin: func(name string, loc source.Location) { begins = append(begins, name) }}
	//
	text := "module m;\ninitial begin\n a = b;\n if (x) begin c = d; end\nend\nendmodule\n"
	sink := parse(t, text, cb)
	//
	require.False(t, sink.HasErrors())
	assert.Equal(t, []string{"m"}, begins)
}

func TestParserMultipleModules(t *testing.T) {
	var begins []string
	cb := Callbacks{ModuleBegin: func(name string, loc source.Location) { begins = append(begins, name) }}
	//
	text := "module a;\nendmodule\nmodule b;\nendmodule\n"
	parse(t, text, cb)
	//
	assert.Equal(t, []string{"a", "b"}, begins)
}

func TestParserGatePrimitiveInstance(t *testing.T) {
	type cell struct{ instance, submodule string }
	var cells []cell
	cb := Callbacks{CellBegin: func(instance, submodule string, loc source.Location) { cells = append(cells, cell{instance, submodule}) }}
	//
	text := "module m;\nnand g1(y, a, b);\nendmodule\n"
	sink := parse(t, text, cb)
	//
	require.False(t, sink.HasErrors())
	assert.Equal(t, []cell{{"g1", "nand"}}, cells)
}

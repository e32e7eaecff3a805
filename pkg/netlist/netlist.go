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

// Package netlist builds a design hierarchy from parser events and links
// cell instances, ports and nets across module boundaries.
package netlist

import (
	"fmt"

	"github.com/veriglot/vlhier/pkg/source"
	"github.com/veriglot/vlhier/pkg/util"
)

// Port is a single entry in a Module's port list.  Width carries the
// textual range (e.g. "[31:0]") rather than a parsed integer, since the
// range may reference a parameter this module never evaluates.
type Port struct {
	Name      string
	Direction string
	NetType   util.Option[string]
	Width     string
	Loc       source.Location
	// Net is the weak reference to the owning Module's Net of the same
	// name, populated when the declaration is ingested (ports always
	// implicitly declare a net unless a separate signal_declaration
	// widens it first).
	Net *Net
}

// Net represents a wire/reg/logic/... signal owned by exactly one Module.
type Net struct {
	Name     string
	Kind     string
	Width    string
	Declared bool
	Loc      source.Location
	DrivenBy []*Pin
	ReadBy   []*Pin
}

// Pin is a single port-to-net binding within a Cell.  Exactly one of
// PortName/PortIndex is meaningful, mirroring pkg/parser's Callbacks.Pin
// contract.
type Pin struct {
	PortName     util.Option[string]
	PortIndex    util.Option[int]
	NetExpr      string
	Loc          source.Location
	ResolvedPort *Port
	ResolvedNet  *Net
}

// GatePrimitiveSentinel is the Module every Cell instantiating a built-in
// gate primitive (and/or/nand/...) resolves to.  It owns no ports, so pin
// resolution always reports PortArity/UnknownPort for such cells -- which
// is why Link special-cases it rather than resolving pins against it.
var GatePrimitiveSentinel = &Module{Name: "$gate-primitive", gatePrimitive: true}

// Cell is a single module (or gate-primitive) instantiation.
type Cell struct {
	InstanceName       string
	SubmoduleName      string
	Submodule          *Module
	ParameterOverrides []ParameterOverride
	Pins               []*Pin
	Loc                source.Location
	IsGatePrimitive    bool
}

// ParameterOverride is one `#(.NAME(value))`-or-positional override.
type ParameterOverride struct {
	Name  string
	Value string
}

// Parameter is one `parameter`/`localparam` declaration.
type Parameter struct {
	Name        string
	DefaultText string
	Loc         source.Location
}

// Module owns its Ports, Nets, Cells and Parameters.
type Module struct {
	Name          string
	File          source.FileID
	Line          int
	Ports         []*Port
	Nets          map[string]*Net
	Cells         []*Cell
	Parameters    []Parameter
	Instantiated  bool
	gatePrimitive bool
}

func newModule(name string, loc source.Location) *Module {
	return &Module{
		Name:  name,
		File:  loc.File,
		Line:  loc.Line,
		Nets:  make(map[string]*Net),
	}
}

// FindPort looks up a port by name in declaration order.
func (m *Module) FindPort(name string) *Port {
	for _, p := range m.Ports {
		if p.Name == name {
			return p
		}
	}
	//
	return nil
}

// FindNet looks up a net by name.
func (m *Module) FindNet(name string) *Net {
	return m.Nets[name]
}

// FindCell looks up a cell instance by its instance name.
func (m *Module) FindCell(name string) *Cell {
	for _, c := range m.Cells {
		if c.InstanceName == name {
			return c
		}
	}
	//
	return nil
}

func (m *Module) String() string {
	return fmt.Sprintf("Module(%s, ports=%d, nets=%d, cells=%d)", m.Name, len(m.Ports), len(m.Nets), len(m.Cells))
}

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

// Package parser drives a callback-style structural recognizer over a
// token stream, detecting modules, ports, signal declarations, parameters
// and cell instances without building an expression AST.
package parser

import "github.com/veriglot/vlhier/pkg/source"

// Callbacks is the event table a caller supplies to Parse.  Every field is
// optional; a nil handler simply means that event is not observed.  This
// mirrors spec.md §9's "mapping from event name to handler" option for
// realizing a callback-driven parser.
type Callbacks struct {
	ModuleBegin func(name string, loc source.Location)
	ModuleEnd   func(name string, loc source.Location)

	// Port fires once per port, in declaration order, whether declared in
	// the ANSI header or in a separate body declaration.
	Port func(name, direction, netType, rangeText string, loc source.Location)

	// SignalDeclaration fires for wire/reg/logic/... declarations that are
	// not themselves ports.
	SignalDeclaration func(kind, name, rangeText string, loc source.Location)

	Parameter func(name, defaultText string, loc source.Location)

	CellBegin func(instanceName, submoduleName string, loc source.Location)
	// Pin fires once per binding within a cell.  Exactly one of portName or
	// portIndex is meaningful: portIndex is -1 for a named binding, and
	// portName is "" for a positional one.  netExpr is "" for an empty
	// positional slot (",,").
	Pin     func(portName string, portIndex int, netExpr string, loc source.Location)
	CellEnd func(instanceName string, loc source.Location)

	AlwaysBegin   func(loc source.Location)
	AlwaysEnd     func(loc source.Location)
	Assign        func(loc source.Location)
	GenerateBegin func(loc source.Location)
	GenerateEnd   func(loc source.Location)
}

func (c Callbacks) moduleBegin(name string, loc source.Location) {
	if c.ModuleBegin != nil {
		c.ModuleBegin(name, loc)
	}
}

func (c Callbacks) moduleEnd(name string, loc source.Location) {
	if c.ModuleEnd != nil {
		c.ModuleEnd(name, loc)
	}
}

func (c Callbacks) port(name, direction, netType, rangeText string, loc source.Location) {
	if c.Port != nil {
		c.Port(name, direction, netType, rangeText, loc)
	}
}

func (c Callbacks) signalDeclaration(kind, name, rangeText string, loc source.Location) {
	if c.SignalDeclaration != nil {
		c.SignalDeclaration(kind, name, rangeText, loc)
	}
}

func (c Callbacks) parameter(name, defaultText string, loc source.Location) {
	if c.Parameter != nil {
		c.Parameter(name, defaultText, loc)
	}
}

func (c Callbacks) cellBegin(instance, submodule string, loc source.Location) {
	if c.CellBegin != nil {
		c.CellBegin(instance, submodule, loc)
	}
}

func (c Callbacks) pin(portName string, portIndex int, netExpr string, loc source.Location) {
	if c.Pin != nil {
		c.Pin(portName, portIndex, netExpr, loc)
	}
}

func (c Callbacks) cellEnd(instance string, loc source.Location) {
	if c.CellEnd != nil {
		c.CellEnd(instance, loc)
	}
}

func (c Callbacks) alwaysBegin(loc source.Location) {
	if c.AlwaysBegin != nil {
		c.AlwaysBegin(loc)
	}
}

func (c Callbacks) alwaysEnd(loc source.Location) {
	if c.AlwaysEnd != nil {
		c.AlwaysEnd(loc)
	}
}

func (c Callbacks) assign(loc source.Location) {
	if c.Assign != nil {
		c.Assign(loc)
	}
}

func (c Callbacks) generateBegin(loc source.Location) {
	if c.GenerateBegin != nil {
		c.GenerateBegin(loc)
	}
}

func (c Callbacks) generateEnd(loc source.Location) {
	if c.GenerateEnd != nil {
		c.GenerateEnd(loc)
	}
}

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
	"github.com/veriglot/vlhier/pkg/language"
	"github.com/veriglot/vlhier/pkg/parser"
	"github.com/veriglot/vlhier/pkg/source"
	"github.com/veriglot/vlhier/pkg/util"
)

// builder accumulates parser events into a single in-progress Module and
// hands it to the owning Netlist on module_end, mirroring the original
// `_on_module_begin`/`_create_module_from_info` split but doing the work
// immediately rather than deferring to a snapshot struct.
type builder struct {
	nl      *Netlist
	current *Module
}

// NewBuilder returns the pkg/parser.Callbacks table that feeds this
// builder. Pass it to parser.NewParser for every file ingested into nl.
func NewBuilder(nl *Netlist) parser.Callbacks {
	b := &builder{nl: nl}
	//
	return parser.Callbacks{
		ModuleBegin: func(name string, loc source.Location) {
			b.current = newModule(name, loc)
		},
		ModuleEnd: func(name string, loc source.Location) {
			if b.current != nil {
				b.nl.addModule(b.current)
				b.current = nil
			}
		},
		Port: func(name, direction, netType, rangeText string, loc source.Location) {
			if b.current == nil {
				return
			}
			//
			port := &Port{Name: name, Direction: direction, Width: rangeText, Loc: loc}
			//
			if netType != "" {
				port.NetType = util.Some(netType)
			}
			//
			b.current.Ports = append(b.current.Ports, port)
			//
			kind := netType
			if kind == "" {
				kind = "wire"
			}
			//
			if net, ok := b.current.Nets[name]; ok {
				net.Kind = kind
				net.Width = rangeText
				net.Declared = true
				port.Net = net
			} else {
				port.Net = &Net{Name: name, Kind: kind, Width: rangeText, Declared: true, Loc: loc}
				b.current.Nets[name] = port.Net
			}
		},
		SignalDeclaration: func(kind, name, rangeText string, loc source.Location) {
			if b.current == nil {
				return
			}
			//
			if net, ok := b.current.Nets[name]; ok {
				net.Kind = kind
				net.Width = rangeText
				net.Declared = true
			} else {
				b.current.Nets[name] = &Net{Name: name, Kind: kind, Width: rangeText, Declared: true, Loc: loc}
			}
		},
		Parameter: func(name, defaultText string, loc source.Location) {
			if b.current == nil {
				return
			}
			//
			b.current.Parameters = append(b.current.Parameters, Parameter{Name: name, DefaultText: defaultText, Loc: loc})
		},
		CellBegin: func(instance, submodule string, loc source.Location) {
			if b.current == nil {
				return
			}
			//
			b.current.Cells = append(b.current.Cells, &Cell{
				InstanceName:    instance,
				SubmoduleName:   submodule,
				Loc:             loc,
				IsGatePrimitive: language.IsGatePrimitive(submodule),
			})
		},
		Pin: func(portName string, portIndex int, netExpr string, loc source.Location) {
			if b.current == nil || len(b.current.Cells) == 0 {
				return
			}
			//
			cell := b.current.Cells[len(b.current.Cells)-1]
			pin := &Pin{NetExpr: netExpr, Loc: loc}
			//
			if portIndex >= 0 {
				pin.PortIndex = util.Some(portIndex)
			} else {
				pin.PortName = util.Some(portName)
			}
			//
			cell.Pins = append(cell.Pins, pin)
		},
	}
}

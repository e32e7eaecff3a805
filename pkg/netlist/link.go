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
	"strings"

	"github.com/veriglot/vlhier/pkg/diag"
	"github.com/veriglot/vlhier/pkg/source"
)

// DefaultNettype controls how Net.Declared is set for an implicit net
// encountered during net resolution.  "none" suppresses implicit
// declaration entirely (an undeclared identifier becomes an unresolved
// net reference, left with no backing *Net -- modelled here simply by not
// auto-declaring it, which callers observe as FindNet returning nil for
// that name even after Link).
type DefaultNettype string

const (
	NettypeWire DefaultNettype = "wire"
	NettypeNone DefaultNettype = "none"
)

// Netlist is the top-level design-hierarchy container.  It exclusively
// owns every Module; all other entities are owned by their Module.
type Netlist struct {
	allModules []*Module
	modules    map[string]*Module
	filesRead  []source.FileID
	linked     bool
	sink       *diag.Sink
	defaultNet DefaultNettype
}

// NewNetlist constructs an empty, unlinked Netlist.  defaultNettype mirrors
// the `` `default_nettype `` directive's effect on implicit net
// auto-declaration, read by the CLI layer from the preprocessed text and
// passed in explicitly since pkg/netlist never re-parses directives itself.
func NewNetlist(defaultNettype DefaultNettype, sink *diag.Sink) *Netlist {
	return &Netlist{
		modules:    make(map[string]*Module),
		sink:       sink,
		defaultNet: defaultNettype,
	}
}

// Sink returns the diagnostic accumulator shared with the builder's
// upstream preprocessor/parser instances.
func (nl *Netlist) Sink() *diag.Sink { return nl.sink }

// MarkFileRead records that id's contents were ingested, used by callers
// wanting to report which files contributed to a design.
func (nl *Netlist) MarkFileRead(id source.FileID) {
	nl.filesRead = append(nl.filesRead, id)
}

// FilesRead returns the file ids ingested so far, in ingestion order.
func (nl *Netlist) FilesRead() []source.FileID { return nl.filesRead }

func (nl *Netlist) addModule(m *Module) {
	if nl.linked {
		nl.sink.Report(diag.Errorf(diag.NetlistFrozen, source.Location{}, "cannot add module %q: netlist already linked", m.Name))
		return
	}
	//
	nl.allModules = append(nl.allModules, m)
}

// Link runs the five-pass resolution algorithm: duplicate-module
// detection, cell resolution, pin resolution, net resolution, and cycle
// detection (the top set follows from the Instantiated flags that cell
// resolution sets; see TopModules).  Link may be called only once; a second call
// reports NetlistFrozen and returns immediately.
func (nl *Netlist) Link() {
	if nl.linked {
		nl.sink.Report(diag.Errorf(diag.NetlistFrozen, source.Location{}, "Link called on an already-linked netlist"))
		return
	}
	//
	nl.passDuplicateModules()
	nl.passResolveCells()
	nl.passResolvePins()
	nl.passResolveNets()
	nl.passDetectCycles()
	//
	nl.linked = true
}

// passDuplicateModules is pass 1: first definition of a given name wins; a
// later one reports DuplicateModule and is dropped from the link set
// entirely (its cells/nets are not otherwise reachable once dropped).
func (nl *Netlist) passDuplicateModules() {
	for _, m := range nl.allModules {
		if existing, ok := nl.modules[m.Name]; ok {
			loc := source.Location{File: m.File, Line: m.Line}
			nl.sink.Report(diag.Warningf(diag.DuplicateModule, loc,
				"module %q redefined (first definition at line %d kept)", m.Name, existing.Line))
			continue
		}
		//
		nl.modules[m.Name] = m
	}
}

// passResolveCells is pass 2: each Cell's SubmoduleName is looked up in
// the module table, or matched against the gate-primitive sentinel.
func (nl *Netlist) passResolveCells() {
	for _, m := range nl.modules {
		for _, c := range m.Cells {
			if c.IsGatePrimitive {
				c.Submodule = GatePrimitiveSentinel
				continue
			}
			//
			sub, ok := nl.modules[c.SubmoduleName]
			//
			if !ok {
				nl.sink.Report(diag.Warningf(diag.UnresolvedSubmodule, c.Loc,
					"cell %q instantiates unknown module %q", c.InstanceName, c.SubmoduleName))
				continue
			}
			//
			c.Submodule = sub
			sub.Instantiated = true
		}
	}
}

// passResolvePins is pass 3: named bindings resolve by port name, positional
// bindings by index; MixedBinding is already reported by pkg/parser, so
// this pass only reports UnknownPort/PortArity.
func (nl *Netlist) passResolvePins() {
	for _, m := range nl.modules {
		for _, c := range m.Cells {
			if c.Submodule == nil || c.Submodule.gatePrimitive {
				continue
			}
			//
			for _, p := range c.Pins {
				if p.PortName.HasValue() {
					name := p.PortName.Unwrap()
					port := c.Submodule.FindPort(name)
					//
					if port == nil {
						nl.sink.Report(diag.Warningf(diag.UnknownPort, p.Loc,
							"cell %q: submodule %q has no port %q", c.InstanceName, c.Submodule.Name, name))
						continue
					}
					//
					p.ResolvedPort = port
					continue
				}
				//
				if p.PortIndex.HasValue() {
					idx := p.PortIndex.Unwrap()
					//
					if idx < 0 || idx >= len(c.Submodule.Ports) {
						nl.sink.Report(diag.Warningf(diag.PortArity, p.Loc,
							"cell %q: positional pin %d out of range for submodule %q (%d ports)",
							c.InstanceName, idx, c.Submodule.Name, len(c.Submodule.Ports)))
						continue
					}
					//
					p.ResolvedPort = c.Submodule.Ports[idx]
				}
			}
		}
	}
}

// passResolveNets is pass 4: each Pin's NetExpr is parsed minimally as
// `identifier['['...']']` and the identifier resolved (or auto-declared)
// against the enclosing Module's net table.
func (nl *Netlist) passResolveNets() {
	for _, m := range nl.modules {
		for _, c := range m.Cells {
			for _, p := range c.Pins {
				if p.NetExpr == "" {
					continue // empty positional slot, left open
				}
				//
				name := netExprIdentifier(p.NetExpr)
				if name == "" {
					continue
				}
				//
				net, ok := m.Nets[name]
				//
				if !ok {
					if nl.defaultNet == NettypeNone {
						continue
					}
					//
					net = &Net{Name: name, Kind: "wire", Declared: false, Loc: p.Loc}
					m.Nets[name] = net
				}
				//
				p.ResolvedNet = net
				//
				if p.ResolvedPort == nil {
					continue
				}
				//
				switch p.ResolvedPort.Direction {
				case "output":
					net.DrivenBy = append(net.DrivenBy, p)
				case "inout":
					net.DrivenBy = append(net.DrivenBy, p)
					net.ReadBy = append(net.ReadBy, p)
				default: // input, ref
					net.ReadBy = append(net.ReadBy, p)
				}
			}
		}
	}
}

// netExprIdentifier extracts the leading identifier from a minimal net
// expression of the form `identifier['['...']']`, per spec.md §4.6's net
// resolution rule. Anything more elaborate (concatenation, literals) is
// left unresolved -- full expression evaluation is a Non-goal.
func netExprIdentifier(expr string) string {
	expr = strings.TrimSpace(expr)
	//
	for i, c := range expr {
		if c == '[' {
			return strings.TrimSpace(expr[:i])
		}
		//
		if !(c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')) {
			return ""
		}
	}
	//
	return expr
}

// passDetectCycles is pass 5: a DFS-based check for cyclic instantiation,
// an addition over spec.md's original silent top-module closure.  It does
// not compute the top set; TopModules derives that from Instantiated.
func (nl *Netlist) passDetectCycles() {
	visiting := make(map[string]bool)
	visited := make(map[string]bool)
	//
	var visit func(m *Module, path []string) bool
	visit = func(m *Module, path []string) bool {
		if visiting[m.Name] {
			nl.sink.Report(diag.Errorf(diag.HierarchyCycle, source.Location{File: m.File, Line: m.Line},
				"cyclic instantiation: %s -> %s", strings.Join(path, " -> "), m.Name))
			return true
		}
		//
		if visited[m.Name] {
			return false
		}
		//
		visiting[m.Name] = true
		//
		for _, c := range m.Cells {
			if c.Submodule == nil || c.Submodule.gatePrimitive {
				continue
			}
			//
			if visit(c.Submodule, append(path, m.Name)) {
				break
			}
		}
		//
		visiting[m.Name] = false
		visited[m.Name] = true
		//
		return false
	}
	//
	for _, m := range nl.modules {
		if !visited[m.Name] {
			visit(m, nil)
		}
	}
}

// FindModule looks up a linked module by name.
func (nl *Netlist) FindModule(name string) *Module {
	return nl.modules[name]
}

// Modules returns every module in the design, in no particular order.
func (nl *Netlist) Modules() []*Module {
	out := make([]*Module, 0, len(nl.modules))
	//
	for _, m := range nl.modules {
		out = append(out, m)
	}
	//
	return out
}

// TopModules returns every module that is never instantiated by another.
func (nl *Netlist) TopModules() []*Module {
	var tops []*Module
	//
	for _, m := range nl.modules {
		if !m.Instantiated {
			tops = append(tops, m)
		}
	}
	//
	return tops
}

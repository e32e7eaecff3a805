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

// Package preproc implements the `define/`ifdef/`include macro
// preprocessor.
package preproc

import (
	"github.com/veriglot/vlhier/pkg/diag"
	"github.com/veriglot/vlhier/pkg/source"
)

// Macro is a single `define entry.  Params is nil for an object-like macro
// and non-nil (possibly empty) for a function-like one.
type Macro struct {
	Name       string
	Params     []string
	Body       string
	DefinedAt  source.Location
	Predefined bool
	// ID is a small integer assigned once per macro name, used as the
	// hide-set bit during rescanning.  It survives redefinition of the same
	// name so that a hide-set computed before a redefinition still refers
	// to the right bit.
	ID uint
}

// IsFunctionLike reports whether m takes a parameter list.
func (m *Macro) IsFunctionLike() bool {
	return m.Params != nil
}

// MacroTable owns the set of currently-defined macros for one Preproc
// instance.
type MacroTable struct {
	macros map[string]*Macro
	ids    map[string]uint
	nextID uint
}

// NewMacroTable constructs an empty table.
func NewMacroTable() *MacroTable {
	return &MacroTable{
		macros: make(map[string]*Macro),
		ids:    make(map[string]uint),
	}
}

// idFor returns the stable hide-set bit for name, allocating one if this is
// the first time name has ever been defined.
func (t *MacroTable) idFor(name string) uint {
	if id, ok := t.ids[name]; ok {
		return id
	}
	//
	id := t.nextID
	t.nextID++
	t.ids[name] = id
	//
	return id
}

// Define installs a macro, reporting MacroRedefinition if name was already
// defined with a syntactically different body or parameter list.  An
// identical redefinition is silent, per invariant.
func (t *MacroTable) Define(name string, params []string, body string, loc source.Location, predefined bool, sink *diag.Sink) {
	id := t.idFor(name)
	//
	if existing, ok := t.macros[name]; ok {
		if !sameDefinition(existing, params, body) {
			sink.Report(diag.Warningf(diag.MacroRedefinition, loc, "redefinition of macro %q with different body", name))
		}
	}
	//
	t.macros[name] = &Macro{name, params, body, loc, predefined, id}
}

func sameDefinition(m *Macro, params []string, body string) bool {
	if m.Body != body {
		return false
	}
	//
	if (m.Params == nil) != (params == nil) {
		return false
	}
	//
	if len(m.Params) != len(params) {
		return false
	}
	//
	for i := range params {
		if m.Params[i] != params[i] {
			return false
		}
	}
	//
	return true
}

// Undef removes name.  Undefining an undefined name is a no-op.
func (t *MacroTable) Undef(name string) {
	delete(t.macros, name)
}

// UndefAll removes every non-predefined macro (`undefineall).
func (t *MacroTable) UndefAll() {
	for name, m := range t.macros {
		if !m.Predefined {
			delete(t.macros, name)
		}
	}
}

// Lookup returns the macro currently bound to name, if any.
func (t *MacroTable) Lookup(name string) (*Macro, bool) {
	m, ok := t.macros[name]
	return m, ok
}

// Snapshot returns a copy of the name-to-macro map (the *Macro values are
// shared, not copied), from which vppreproc's --defines-only table is built.
func (t *MacroTable) Snapshot() map[string]*Macro {
	out := make(map[string]*Macro, len(t.macros))
	for name, m := range t.macros {
		out[name] = m
	}
	//
	return out
}

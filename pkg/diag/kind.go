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

// Package diag provides the diagnostic vocabulary and accumulation sink
// shared by pkg/preproc, pkg/parser and pkg/netlist.
package diag

// Kind identifies the category of a Diagnostic.  It is string-backed
// (rather than an int) so that a JSON-dumped diagnostic is self-describing
// without a side-table.
type Kind string

// The closed set of diagnostic kinds produced by this module.
const (
	InvalidNumber        Kind = "InvalidNumber"
	IncludeNotFound      Kind = "IncludeNotFound"
	IncludeDepthExceeded Kind = "IncludeDepthExceeded"
	UnterminatedIfdef    Kind = "UnterminatedIfdef"
	UnterminatedModule   Kind = "UnterminatedModule"
	DanglingEndif        Kind = "DanglingEndif"
	DanglingElse         Kind = "DanglingElse"
	DanglingElsif        Kind = "DanglingElsif"
	MacroArity           Kind = "MacroArity"
	MacroRedefinition    Kind = "MacroRedefinition"
	UnknownDirective     Kind = "UnknownDirective"
	DuplicateModule      Kind = "DuplicateModule"
	UnresolvedSubmodule  Kind = "UnresolvedSubmodule"
	UnknownPort          Kind = "UnknownPort"
	PortArity            Kind = "PortArity"
	MixedBinding         Kind = "MixedBinding"
	NetlistFrozen        Kind = "NetlistFrozen"
	HierarchyCycle       Kind = "HierarchyCycle"
	IOError              Kind = "IOError"
)

// Severity classifies how strongly a Diagnostic should be treated.
type Severity string

// The two severities a Diagnostic may carry.  Escalating a Warning to a
// failing exit code is a CLI-layer (--strict) decision, never a library
// one.
const (
	Error   Severity = "error"
	Warning Severity = "warning"
)

// DefaultSeverity returns the severity this module assigns to kind absent
// any --strict escalation, per the error-kind table.
func DefaultSeverity(kind Kind) Severity {
	switch kind {
	case MacroRedefinition, UnknownDirective, DuplicateModule,
		UnresolvedSubmodule, UnknownPort, PortArity, MixedBinding:
		return Warning
	default:
		return Error
	}
}

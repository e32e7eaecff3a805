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

// Sink accumulates Diagnostics raised during one preprocess/parse/link
// pass.  It is intentionally not safe for concurrent use -- the teacher's
// pipeline is single-threaded (see the concurrency model), so a Sink is
// owned by exactly one Preproc/Parser/Netlist at a time.
type Sink struct {
	diagnostics []Diagnostic
}

// NewSink constructs an empty Sink.
func NewSink() *Sink {
	return &Sink{}
}

// Report appends d to the sink.
func (s *Sink) Report(d Diagnostic) {
	s.diagnostics = append(s.diagnostics, d)
}

// All returns every Diagnostic reported so far, in report order.
func (s *Sink) All() []Diagnostic {
	return s.diagnostics
}

// HasErrors reports whether any Error-severity Diagnostic was reported.
func (s *Sink) HasErrors() bool {
	for _, d := range s.diagnostics {
		if d.Severity == Error {
			return true
		}
	}
	//
	return false
}

// HasWarnings reports whether any Warning-severity Diagnostic was reported.
func (s *Sink) HasWarnings() bool {
	for _, d := range s.diagnostics {
		if d.Severity == Warning {
			return true
		}
	}
	//
	return false
}

// Count returns the number of Diagnostics with the given severity.
func (s *Sink) Count(severity Severity) int {
	n := 0
	for _, d := range s.diagnostics {
		if d.Severity == severity {
			n++
		}
	}
	//
	return n
}

// Merge appends every Diagnostic from other into s, preserving order.
func (s *Sink) Merge(other *Sink) {
	s.diagnostics = append(s.diagnostics, other.diagnostics...)
}

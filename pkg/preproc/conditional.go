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
package preproc

import "github.com/veriglot/vlhier/pkg/source"

// conditionalFrame tracks one level of `ifdef/`ifndef/`elsif/`else/`endif
// nesting.
type conditionalFrame struct {
	// Kind is one of "if", "elsif" or "else" -- the directive that most
	// recently updated this frame's Taken/Skip state.
	Kind string
	// Taken records whether this frame's current branch is the one being
	// emitted.
	Taken bool
	// AnyTaken records whether any sibling branch in this chain has ever
	// been taken, so that a later `elsif/`else only fires if none of its
	// predecessors did.
	AnyTaken bool
	// Skip is the inverse of Taken, kept as a separate field to mirror the
	// {kind, taken, any_taken_in_chain, skip} record.
	Skip bool
	// OpenLoc is the location of the opening `ifdef/`ifndef, reported by
	// UnterminatedIfdef if the file ends before a matching `endif.
	OpenLoc source.Location
}

// conditionalStack is an ordered sequence of conditionalFrame, outermost
// first.
type conditionalStack struct {
	frames []conditionalFrame
}

// active reports whether emission is currently enabled, i.e. every frame on
// the stack has Skip == false.
func (s *conditionalStack) active() bool {
	for _, f := range s.frames {
		if f.Skip {
			return false
		}
	}
	//
	return true
}

func (s *conditionalStack) empty() bool {
	return len(s.frames) == 0
}

func (s *conditionalStack) top() *conditionalFrame {
	return &s.frames[len(s.frames)-1]
}

func (s *conditionalStack) push(f conditionalFrame) {
	s.frames = append(s.frames, f)
}

func (s *conditionalStack) pop() {
	s.frames = s.frames[:len(s.frames)-1]
}

// pushIf handles `ifdef/`ifndef: taken is defined (possibly inverted by
// ifndef), independent of the enclosing frames' own skip state -- a nested
// frame inside an already-skipped region still needs to balance against a
// matching `endif.
func (s *conditionalStack) pushIf(taken bool, loc source.Location) {
	s.push(conditionalFrame{
		Kind:     "if",
		Taken:    taken,
		AnyTaken: taken,
		Skip:     !taken,
		OpenLoc:  loc,
	})
}

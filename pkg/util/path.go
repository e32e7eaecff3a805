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
package util

import (
	"slices"
	"strings"
)

// Path describes a dotted path through the instance hierarchy of a linked
// netlist, e.g. "top.u_cpu.u_alu".  A path can be either *absolute* (rooted at
// a top module) or *relative* (rooted at some arbitrary cell).
type Path struct {
	// Indicates whether or not this is an absolute path.
	absolute bool
	// Segments in the path, outermost first.
	segments []string
}

// NewAbsolutePath constructs a new absolute path from the given segments.
func NewAbsolutePath(segments ...string) Path {
	return Path{true, segments}
}

// NewRelativePath constructs a new relative path from the given segments.
func NewRelativePath(segments ...string) Path {
	return Path{false, segments}
}

// Depth returns the number of segments in this path (a.k.a its depth).
func (p *Path) Depth() uint {
	return uint(len(p.segments))
}

// IsAbsolute determines whether or not this is an absolute path.
func (p *Path) IsAbsolute() bool {
	return p.absolute
}

// Head returns the first (i.e. outermost) segment in this path.
func (p *Path) Head() string {
	return p.segments[0]
}

// Tail returns the last (i.e. innermost) segment in this path.
func (p *Path) Tail() string {
	return p.segments[len(p.segments)-1]
}

// Get returns the nth segment of this path.
func (p *Path) Get(nth uint) string {
	return p.segments[nth]
}

// Equals determines whether two paths are the same.
func (p *Path) Equals(other Path) bool {
	return p.absolute == other.absolute && slices.Equal(p.segments, other.segments)
}

// Parent returns the parent of this path (i.e. itself minus the innermost
// segment).
func (p *Path) Parent() Path {
	n := p.Depth() - 1
	return Path{p.absolute, p.segments[0:n]}
}

// Extend returns this path extended with a new innermost segment.
func (p *Path) Extend(tail string) Path {
	nsegments := make([]string, len(p.segments)+1)
	copy(nsegments, p.segments)
	nsegments[len(p.segments)] = tail
	//
	return Path{p.absolute, nsegments}
}

// String returns the dotted representation of this path, e.g. "top.u_cpu.u_alu".
func (p *Path) String() string {
	return strings.Join(p.segments, ".")
}

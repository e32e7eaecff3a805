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

import (
	"fmt"
	"strings"

	"github.com/veriglot/vlhier/pkg/source"
)

// Diagnostic records one error or warning raised while preprocessing,
// parsing or linking.
type Diagnostic struct {
	Kind      Kind
	Severity  Severity
	Locations []source.Location
	Message   string
}

// New constructs a Diagnostic at the default severity for kind.
func New(kind Kind, message string, locations ...source.Location) Diagnostic {
	return Diagnostic{kind, DefaultSeverity(kind), locations, message}
}

// Warningf constructs a formatted Warning-severity Diagnostic.
func Warningf(kind Kind, loc source.Location, format string, args ...any) Diagnostic {
	return Diagnostic{kind, Warning, []source.Location{loc}, fmt.Sprintf(format, args...)}
}

// Errorf constructs a formatted Error-severity Diagnostic.
func Errorf(kind Kind, loc source.Location, format string, args ...any) Diagnostic {
	return Diagnostic{kind, Error, []source.Location{loc}, fmt.Sprintf(format, args...)}
}

// Error implements the error interface so a Diagnostic may be returned or
// wrapped directly where a single-error API is more convenient than a Sink.
func (d Diagnostic) Error() string {
	return d.Message
}

// String renders a Diagnostic as a single line, resolving only its first
// location (if any) to a file path, e.g.
// "error: a.v:3:1: unresolved submodule \"foo\"".
func (d Diagnostic) String(name func(source.FileID) string) string {
	var b strings.Builder
	//
	b.WriteString(string(d.Severity))
	b.WriteString(": ")
	//
	if len(d.Locations) > 0 {
		b.WriteString(d.Locations[0].String(name))
		b.WriteString(": ")
	}
	//
	b.WriteString(d.Message)
	//
	return b.String()
}

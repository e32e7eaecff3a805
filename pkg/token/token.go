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

// Package token defines the tagged-variant token kinds produced by
// pkg/lexer and consumed by pkg/parser.
package token

import "github.com/veriglot/vlhier/pkg/source"

// Kind tags what a Token represents.
type Kind int

// The closed set of token kinds this module recognises.
const (
	Identifier Kind = iota
	SystemIdentifier
	Keyword
	Number
	String
	Operator
	Punctuation
	Newline
	Whitespace
	Comment
	EOF
)

// String names a Kind for diagnostics and tests.
func (k Kind) String() string {
	switch k {
	case Identifier:
		return "identifier"
	case SystemIdentifier:
		return "system-identifier"
	case Keyword:
		return "keyword"
	case Number:
		return "number"
	case String:
		return "string"
	case Operator:
		return "operator"
	case Punctuation:
		return "punctuation"
	case Newline:
		return "newline"
	case Whitespace:
		return "whitespace"
	case Comment:
		return "comment"
	case EOF:
		return "eof"
	default:
		return "unknown"
	}
}

// Token is a single lexical unit, carrying the source location of its
// first character.
type Token struct {
	Kind Kind
	Text string
	Loc  source.Location
}

// Is reports whether t has the given kind and exact text, a convenience for
// parser lookahead such as `tok.Is(token.Punctuation, ";")`.
func (t Token) Is(kind Kind, text string) bool {
	return t.Kind == kind && t.Text == text
}

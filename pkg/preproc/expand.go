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

import (
	"strings"

	"github.com/bits-and-blooms/bitset"
	"github.com/veriglot/vlhier/pkg/diag"
	"github.com/veriglot/vlhier/pkg/source"
)

func isIdentStart(r byte) bool {
	return r == '_' || r == '$' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentPart(r byte) bool {
	return isIdentStart(r) || (r >= '0' && r <= '9')
}

// expandText rescans text for macro invocations, substituting any that are
// not present in hideSet.  Expansion is recursive: substituted bodies are
// themselves rescanned with the invoking macro's id added to the hide-set,
// which terminates directly- and indirectly-recursive macros per the
// hide-set discipline.
func (p *Preproc) expandText(text string, hideSet *bitset.BitSet, loc source.Location) string {
	var out strings.Builder
	//
	i := 0
	n := len(text)
	//
	for i < n {
		c := text[i]
		//
		switch {
		case c == '"':
			j := i + 1
			for j < n {
				if text[j] == '\\' && j+1 < n {
					j += 2
					continue
				}
				if text[j] == '"' {
					j++
					break
				}
				j++
			}
			out.WriteString(text[i:j])
			i = j
		case isIdentStart(c):
			j := i + 1
			for j < n && isIdentPart(text[j]) {
				j++
			}
			//
			name := text[i:j]
			expanded, consumed := p.tryExpandMacro(name, text, j, hideSet, loc)
			//
			if consumed >= 0 {
				out.WriteString(expanded)
				i = consumed
			} else {
				out.WriteString(name)
				i = j
			}
		case c == '`' && i+1 < n && isIdentStart(text[i+1]):
			// A backtick-prefixed reference, e.g. `WIDTH, is an equally
			// valid way to invoke a macro (real-world Verilog requires the
			// backtick; this dialect additionally accepts a bare
			// identifier match, see the isIdentStart case above).
			j := i + 2
			for j < n && isIdentPart(text[j]) {
				j++
			}
			//
			name := text[i+1 : j]
			expanded, consumed := p.tryExpandMacro(name, text, j, hideSet, loc)
			//
			if consumed >= 0 {
				out.WriteString(expanded)
				i = consumed
			} else {
				out.WriteString(text[i:j])
				i = j
			}
		default:
			out.WriteByte(c)
			i++
		}
	}
	//
	return out.String()
}

// tryExpandMacro attempts to expand the macro named name, whose identifier
// occupies text[...:after].  It returns (expansion, newIndex) on success,
// or ("", -1) if name is not a macro invocation (undefined, hidden, or a
// function-like macro with no following '(').
func (p *Preproc) tryExpandMacro(name string, text string, after int, hideSet *bitset.BitSet, loc source.Location) (string, int) {
	macro, ok := p.defines.Lookup(name)
	if !ok {
		return "", -1
	}
	//
	if hideSet.Test(macro.ID) {
		return "", -1
	}
	//
	childHideSet := hideSet.Clone().Set(macro.ID)
	//
	if !macro.IsFunctionLike() {
		return p.expandText(macro.Body, childHideSet, loc), after
	}
	//
	argsStart := skipBlank(text, after)
	if argsStart >= len(text) || text[argsStart] != '(' {
		// A function-like macro name not followed by '(' is just an
		// identifier.
		return "", -1
	}
	//
	args, end, ok := splitArgs(text, argsStart)
	if !ok {
		p.sink.Report(diag.Errorf(diag.MacroArity, loc, "unterminated argument list for macro %q", name))
		return "", -1
	}
	//
	if len(args) != len(macro.Params) {
		p.sink.Report(diag.Errorf(diag.MacroArity, loc, "macro %q expects %d argument(s), got %d", name, len(macro.Params), len(args)))
		return "", end
	}
	//
	body := substituteParams(macro.Body, macro.Params, args)
	body = applyTokenPaste(body)
	body = applyStringify(body)
	//
	return p.expandText(body, childHideSet, loc), end
}

func skipBlank(text string, i int) int {
	for i < len(text) && (text[i] == ' ' || text[i] == '\t') {
		i++
	}
	//
	return i
}

// splitArgs parses a parenthesised, comma-separated argument list starting
// at open (which must index a '(').  Commas and parens inside nested
// parens/brackets or string literals do not separate arguments.
func splitArgs(text string, open int) ([]string, int, bool) {
	depth := 0
	var args []string
	var cur strings.Builder
	//
	i := open
	//
	for i < len(text) {
		c := text[i]
		//
		switch {
		case c == '"':
			cur.WriteByte(c)
			i++
			for i < len(text) {
				cur.WriteByte(text[i])
				if text[i] == '\\' && i+1 < len(text) {
					i++
					cur.WriteByte(text[i])
				} else if text[i] == '"' {
					i++
					break
				}
				i++
			}
			continue
		case c == '(' || c == '[':
			depth++
			if depth > 1 {
				cur.WriteByte(c)
			}
			i++
		case c == ')' || c == ']':
			depth--
			if depth == 0 {
				args = append(args, strings.TrimSpace(cur.String()))
				return args, i + 1, true
			}
			cur.WriteByte(c)
			i++
		case c == ',' && depth == 1:
			args = append(args, strings.TrimSpace(cur.String()))
			cur.Reset()
			i++
		default:
			cur.WriteByte(c)
			i++
		}
	}
	//
	return nil, 0, false
}

// substituteParams replaces whole-word occurrences of each parameter name
// in body with the corresponding raw argument text.
func substituteParams(body string, params []string, args []string) string {
	var out strings.Builder
	//
	i := 0
	n := len(body)
	//
	for i < n {
		c := body[i]
		//
		if isIdentStart(c) {
			j := i + 1
			for j < n && isIdentPart(body[j]) {
				j++
			}
			//
			word := body[i:j]
			replaced := false
			//
			for k, p := range params {
				if p == word {
					out.WriteString(args[k])
					replaced = true
					break
				}
			}
			//
			if !replaced {
				out.WriteString(word)
			}
			//
			i = j
		} else {
			out.WriteByte(c)
			i++
		}
	}
	//
	return out.String()
}

// applyTokenPaste implements the `` token-paste operator by deleting every
// occurrence of two adjacent backticks, joining the text either side of it.
func applyTokenPaste(body string) string {
	return strings.ReplaceAll(body, "``", "")
}

// applyStringify implements the `"..."` (backtick-quote ... backtick-quote)
// stringification operator, with the escape sequences `\" -> " and `\ -> \
// honoured inside the stringified span.
func applyStringify(body string) string {
	const marker = "`\""
	//
	for {
		start := strings.Index(body, marker)
		if start < 0 {
			return body
		}
		//
		rest := body[start+len(marker):]
		end := strings.Index(rest, marker)
		if end < 0 {
			return body
		}
		//
		inner := rest[:end]
		inner = strings.ReplaceAll(inner, "`\\\"", "\"")
		inner = strings.ReplaceAll(inner, "`\\", "\\")
		//
		quoted := "\"" + inner + "\""
		body = body[:start] + quoted + rest[end+len(marker):]
	}
}

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

// Package lexer tokenises preprocessed Verilog/SystemVerilog text.
package lexer

import (
	"strconv"
	"strings"

	"github.com/veriglot/vlhier/pkg/language"
	"github.com/veriglot/vlhier/pkg/source"
	"github.com/veriglot/vlhier/pkg/token"
)

// operators is tried longest-match-first; every standard shares this table
// per spec.md §4.4 ("operators (longest match among the standard operator
// set of the active language standard)") -- no standard in practice removes
// an operator once introduced, so one shared, length-sorted table suffices.
var operators = []string{
	"<<<=", ">>>=", "<<<", ">>>", "<<=", ">>=", "<->", "===", "!==",
	"==?", "!=?", "<=", ">=", "==", "!=", "&&", "||", "->", "=>",
	"<<", ">>", "**", "+:", "-:", "::", "~&", "~|", "~^", "^~",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=",
	"+", "-", "*", "/", "%", "=", "<", ">", "!", "~", "&", "|", "^",
}

// Lexer tokenises text, updating its notion of the current file/line in
// response to synthetic `line markers emitted by pkg/preproc.
type Lexer struct {
	text     string
	pos      int
	line     int
	col      int
	file     source.FileID
	standard language.Standard
	table    *source.FileTable
}

// NewLexer constructs a Lexer over already-preprocessed text.  table is the
// FileTable shared with the Preproc instance that produced text, so that
// `line markers referencing new files intern into the same id-space.
func NewLexer(text string, table *source.FileTable, startFile source.FileID, standard language.Standard) *Lexer {
	return &Lexer{text, 0, 1, 1, startFile, standard, table}
}

// Next returns the next token, or a token.EOF token once the input is
// exhausted.  Whitespace and comments are consumed but not returned.
func (l *Lexer) Next() token.Token {
	for {
		l.consumeLineMarkers()
		//
		if l.pos >= len(l.text) {
			return token.Token{Kind: token.EOF, Loc: l.loc()}
		}
		//
		c := l.text[l.pos]
		//
		switch {
		case c == ' ' || c == '\t' || c == '\r':
			l.advance(1)
			continue
		case c == '\n':
			l.advanceNewline()
			continue
		case c == '/' && l.peek(1) == '/':
			l.skipLineComment()
			continue
		case c == '/' && l.peek(1) == '*':
			l.skipBlockComment()
			continue
		default:
			return l.scanToken()
		}
	}
}

// Collect tokenises the remaining input in full, used by tests and by
// callers that want a materialised slice rather than streaming.
func (l *Lexer) Collect() []token.Token {
	var tokens []token.Token
	//
	for {
		tok := l.Next()
		tokens = append(tokens, tok)
		//
		if tok.Kind == token.EOF {
			return tokens
		}
	}
}

func (l *Lexer) loc() source.Location {
	return source.Location{File: l.file, Line: l.line, Column: l.col}
}

func (l *Lexer) peek(offset int) byte {
	if l.pos+offset >= len(l.text) {
		return 0
	}
	//
	return l.text[l.pos+offset]
}

func (l *Lexer) advance(n int) {
	l.pos += n
	l.col += n
}

func (l *Lexer) advanceNewline() {
	l.pos++
	l.line++
	l.col = 1
}

// consumeLineMarkers absorbs any run of synthetic `line n "file" level
// markers at the current position, updating file/line silently.
func (l *Lexer) consumeLineMarkers() {
	for strings.HasPrefix(l.text[l.pos:], "`line") {
		rest := l.text[l.pos+len("`line"):]
		end := strings.IndexByte(rest, '\n')
		//
		if end < 0 {
			end = len(rest)
		}
		//
		fields := strings.Fields(rest[:end])
		if len(fields) >= 2 {
			if n, err := strconv.Atoi(fields[0]); err == nil {
				path := strings.Trim(fields[1], "\"")
				l.line = n
				l.file = l.table.Intern(path, l.table.LineCount(l.file))
			}
		}
		//
		l.pos += len("`line") + end
		if l.pos < len(l.text) && l.text[l.pos] == '\n' {
			l.pos++
		}
		//
		l.col = 1
	}
}

func (l *Lexer) skipLineComment() {
	for l.pos < len(l.text) && l.text[l.pos] != '\n' {
		l.advance(1)
	}
}

func (l *Lexer) skipBlockComment() {
	l.advance(2)
	//
	for l.pos < len(l.text) {
		if l.text[l.pos] == '*' && l.peek(1) == '/' {
			l.advance(2)
			return
		}
		//
		if l.text[l.pos] == '\n' {
			l.advanceNewline()
		} else {
			l.advance(1)
		}
	}
}

func (l *Lexer) scanToken() token.Token {
	loc := l.loc()
	c := l.text[l.pos]
	//
	switch {
	case c == '"':
		return l.scanString(loc)
	case c == '\\':
		return l.scanEscapedIdentifier(loc)
	case c == '$':
		return l.scanSystemIdentifier(loc)
	case isDigit(c):
		return l.scanNumber(loc)
	case c == '\'':
		// A bare "'sh.." etc with no size prefix still starts a number.
		return l.scanNumber(loc)
	case isIdentStart(c):
		return l.scanIdentifier(loc)
	default:
		return l.scanOperatorOrPunctuation(loc)
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c) || c == '$'
}

func (l *Lexer) scanString(loc source.Location) token.Token {
	start := l.pos
	l.advance(1)
	//
	for l.pos < len(l.text) {
		c := l.text[l.pos]
		//
		if c == '\\' && l.pos+1 < len(l.text) {
			l.advance(2)
			continue
		}
		//
		if c == '"' {
			l.advance(1)
			break
		}
		//
		if c == '\n' {
			l.advanceNewline()
		} else {
			l.advance(1)
		}
	}
	//
	return token.Token{Kind: token.String, Text: l.text[start:l.pos], Loc: loc}
}

func (l *Lexer) scanEscapedIdentifier(loc source.Location) token.Token {
	start := l.pos
	l.advance(1)
	//
	for l.pos < len(l.text) && l.text[l.pos] != ' ' && l.text[l.pos] != '\t' && l.text[l.pos] != '\n' {
		l.advance(1)
	}
	//
	return token.Token{Kind: token.Identifier, Text: l.text[start:l.pos], Loc: loc}
}

func (l *Lexer) scanSystemIdentifier(loc source.Location) token.Token {
	start := l.pos
	l.advance(1)
	//
	for l.pos < len(l.text) && isIdentPart(l.text[l.pos]) {
		l.advance(1)
	}
	//
	return token.Token{Kind: token.SystemIdentifier, Text: l.text[start:l.pos], Loc: loc}
}

func (l *Lexer) scanIdentifier(loc source.Location) token.Token {
	start := l.pos
	//
	for l.pos < len(l.text) && isIdentPart(l.text[l.pos]) {
		l.advance(1)
	}
	//
	text := l.text[start:l.pos]
	kind := token.Identifier
	//
	if language.IsKeyword(text, l.standard) {
		kind = token.Keyword
	}
	//
	return token.Token{Kind: kind, Text: text, Loc: loc}
}

// isNumberChar reports whether c may appear in a Verilog numeric literal,
// spanning the size prefix, base indicator, digits and underscores;
// pkg/language.ParseNumber performs the real grammar check.
func isNumberChar(c byte) bool {
	switch {
	case isDigit(c):
		return true
	case c == '_' || c == '\'':
		return true
	case c == 's' || c == 'S':
		return true
	case c == 'b' || c == 'B' || c == 'o' || c == 'O' || c == 'd' || c == 'D' || c == 'h' || c == 'H':
		return true
	case c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		return true
	case c == 'x' || c == 'X' || c == 'z' || c == 'Z' || c == '?':
		return true
	default:
		return false
	}
}

func (l *Lexer) scanNumber(loc source.Location) token.Token {
	start := l.pos
	//
	for l.pos < len(l.text) && isNumberChar(l.text[l.pos]) {
		l.advance(1)
	}
	//
	if l.pos < len(l.text) && (l.text[l.pos] == '.' || l.text[l.pos] == 'e' || l.text[l.pos] == 'E') {
		// Real-number exponent/fraction tail; consumed as part of the same
		// literal span, left for a downstream consumer to interpret.
		for l.pos < len(l.text) && (isDigit(l.text[l.pos]) || l.text[l.pos] == '.' || l.text[l.pos] == 'e' || l.text[l.pos] == 'E' || l.text[l.pos] == '+' || l.text[l.pos] == '-') {
			l.advance(1)
		}
	}
	//
	return token.Token{Kind: token.Number, Text: l.text[start:l.pos], Loc: loc}
}

func (l *Lexer) scanOperatorOrPunctuation(loc source.Location) token.Token {
	for _, op := range operators {
		if strings.HasPrefix(l.text[l.pos:], op) {
			l.advance(len(op))
			return token.Token{Kind: token.Operator, Text: op, Loc: loc}
		}
	}
	//
	c := l.text[l.pos]
	l.advance(1)
	//
	return token.Token{Kind: token.Punctuation, Text: string(c), Loc: loc}
}

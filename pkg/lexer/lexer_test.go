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
package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/veriglot/vlhier/pkg/language"
	"github.com/veriglot/vlhier/pkg/source"
	"github.com/veriglot/vlhier/pkg/token"
)

func newTestLexer(text string) *Lexer {
	table := source.NewFileTable()
	id := table.Intern("t.v", 10)
	return NewLexer(text, table, id, language.SV2012)
}

func kinds(tokens []token.Token) []token.Kind {
	var out []token.Kind
	for _, t := range tokens {
		out = append(out, t.Kind)
	}
	return out
}

func TestLexerIdentifiersAndKeywords(t *testing.T) {
	l := newTestLexer("module foo;")
	tokens := l.Collect()
	//
	assert.Equal(t, token.Keyword, tokens[0].Kind)
	assert.Equal(t, "module", tokens[0].Text)
	assert.Equal(t, token.Identifier, tokens[1].Kind)
	assert.Equal(t, "foo", tokens[1].Text)
	assert.Equal(t, token.Punctuation, tokens[2].Kind)
	assert.Equal(t, token.EOF, tokens[3].Kind)
}

func TestLexerNumber(t *testing.T) {
	l := newTestLexer("8'hFF")
	tok := l.Next()
	assert.Equal(t, token.Number, tok.Kind)
	assert.Equal(t, "8'hFF", tok.Text)
}

func TestLexerString(t *testing.T) {
	l := newTestLexer(`"hello world"`)
	tok := l.Next()
	assert.Equal(t, token.String, tok.Kind)
	assert.Equal(t, `"hello world"`, tok.Text)
}

func TestLexerSystemIdentifier(t *testing.T) {
	l := newTestLexer("$display")
	tok := l.Next()
	assert.Equal(t, token.SystemIdentifier, tok.Kind)
	assert.Equal(t, "$display", tok.Text)
}

func TestLexerSkipsComments(t *testing.T) {
	l := newTestLexer("a // comment\nb /* block */ c")
	tokens := l.Collect()
	var texts []string
	for _, t := range tokens {
		if t.Kind != token.EOF {
			texts = append(texts, t.Text)
		}
	}
	assert.Equal(t, []string{"a", "b", "c"}, texts)
}

func TestLexerOperatorsLongestMatch(t *testing.T) {
	l := newTestLexer("a <<< b")
	tokens := l.Collect()
	assert.Equal(t, "<<<", tokens[1].Text)
}

func TestLexerLineMarkerUpdatesLocation(t *testing.T) {
	table := source.NewFileTable()
	id := table.Intern("main.v", 5)
	l := NewLexer("a\n`line 10 \"inc.vh\" 1\nb\n", table, id, language.SV2012)
	//
	first := l.Next()
	assert.Equal(t, 1, first.Loc.Line)
	//
	second := l.Next()
	assert.Equal(t, 10, second.Loc.Line)
	assert.Equal(t, "inc.vh", table.Path(second.Loc.File))
}

func TestLexerEscapedIdentifier(t *testing.T) {
	l := newTestLexer(`\my$weird+name value`)
	tok := l.Next()
	assert.Equal(t, token.Identifier, tok.Kind)
	assert.Equal(t, `\my$weird+name`, tok.Text)
}

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
package parser

import (
	"strings"

	"github.com/veriglot/vlhier/pkg/diag"
	"github.com/veriglot/vlhier/pkg/language"
	"github.com/veriglot/vlhier/pkg/lexer"
	"github.com/veriglot/vlhier/pkg/source"
	"github.com/veriglot/vlhier/pkg/token"
)

var directionKeywords = map[string]bool{"input": true, "output": true, "inout": true, "ref": true}

var netTypeKeywords = map[string]bool{
	"wire": true, "reg": true, "logic": true, "tri": true, "tri0": true,
	"tri1": true, "triand": true, "trior": true, "trireg": true,
	"wand": true, "wor": true, "uwire": true, "supply0": true, "supply1": true,
}

var blockOpenKeywords = map[string]bool{"begin": true, "fork": true}
var blockCloseKeywords = map[string]bool{"end": true, "join": true, "join_any": true, "join_none": true}

// Parser drives Callbacks over the token stream produced by pkg/lexer,
// recognising module/port/net/parameter/cell structure while skipping
// anything else at statement granularity.
type Parser struct {
	lex      *lexer.Lexer
	buf      []token.Token
	cb       Callbacks
	sink     *diag.Sink
	standard language.Standard
	// context mirrors the {top, module, port-list, cell, cell-pins} stack;
	// it is pushed and popped but never read, since the recursive-descent
	// structure of this parser already encodes nesting positionally.
	context []string
}

// NewParser constructs a Parser over already-preprocessed text.
func NewParser(text string, table *source.FileTable, startFile source.FileID, standard language.Standard, cb Callbacks, sink *diag.Sink) *Parser {
	return &Parser{
		lex:      lexer.NewLexer(text, table, startFile, standard),
		cb:       cb,
		sink:     sink,
		standard: standard,
		context:  []string{"top"},
	}
}

func (p *Parser) peek(n int) token.Token {
	for len(p.buf) <= n {
		p.buf = append(p.buf, p.lex.Next())
	}
	//
	return p.buf[n]
}

func (p *Parser) next() token.Token {
	tok := p.peek(0)
	//
	if len(p.buf) > 1 {
		p.buf = p.buf[1:]
	} else {
		p.buf = nil
	}
	//
	return tok
}

func (p *Parser) push(ctx string) { p.context = append(p.context, ctx) }
func (p *Parser) pop()            { p.context = p.context[:len(p.context)-1] }

// Parse runs the recognizer to EOF.
func (p *Parser) Parse() {
	for {
		tok := p.peek(0)
		//
		if tok.Kind == token.EOF {
			return
		}
		//
		if tok.Kind == token.Keyword {
			switch tok.Text {
			case "module", "macromodule":
				p.parseModule()
				continue
			}
		}
		//
		p.skipStatement()
	}
}

func (p *Parser) parseModule() {
	p.next() // 'module'/'macromodule'
	//
	nameTok := p.expectIdentifier()
	name := nameTok.Text
	loc := nameTok.Loc
	//
	p.cb.moduleBegin(name, loc)
	p.push("module")
	//
	if p.peek(0).Is(token.Punctuation, "#") {
		p.next()
		p.skipBalanced("(", ")")
	}
	//
	if p.peek(0).Is(token.Punctuation, "(") {
		p.parsePortList()
	}
	//
	p.expectPunct(";")
	p.parseModuleBody(name)
	p.pop()
}

// parsePortList consumes an ANSI-style port list: direction [net-type]
// [signed] [range] name [, ...].
func (p *Parser) parsePortList() {
	p.next() // '('
	p.push("port-list")
	//
	direction := ""
	netType := ""
	rangeText := ""
	//
	for {
		tok := p.peek(0)
		//
		if tok.Is(token.Punctuation, ")") {
			p.next()
			break
		}
		//
		if tok.Kind == token.EOF {
			break
		}
		//
		switch {
		case tok.Kind == token.Keyword && directionKeywords[tok.Text]:
			direction = tok.Text
			netType = ""
			rangeText = ""
			p.next()
		case tok.Kind == token.Keyword && netTypeKeywords[tok.Text]:
			netType = tok.Text
			p.next()
		case tok.Kind == token.Keyword && (tok.Text == "signed" || tok.Text == "unsigned"):
			p.next()
		case tok.Is(token.Punctuation, "["):
			rangeText = p.consumeBalancedText("[", "]")
		case tok.Kind == token.Identifier:
			name := tok.Text
			loc := tok.Loc
			p.next()
			//
			if direction != "" {
				p.cb.port(name, direction, netType, rangeText, loc)
			}
			//
			p.skipPortDefault()
		case tok.Is(token.Punctuation, ","):
			p.next()
		default:
			p.next()
		}
	}
	//
	p.pop()
}

// skipPortDefault consumes an ANSI port's optional "= expr" default value,
// stopping before the next ',' or ')' at paren depth zero.
func (p *Parser) skipPortDefault() {
	if !p.peek(0).Is(token.Operator, "=") {
		return
	}
	//
	p.next()
	depth := 0
	//
	for {
		tok := p.peek(0)
		//
		if tok.Kind == token.EOF {
			return
		}
		//
		if depth == 0 && (tok.Is(token.Punctuation, ",") || tok.Is(token.Punctuation, ")")) {
			return
		}
		//
		if tok.Is(token.Punctuation, "(") || tok.Is(token.Punctuation, "[") {
			depth++
		}
		//
		if tok.Is(token.Punctuation, ")") || tok.Is(token.Punctuation, "]") {
			depth--
		}
		//
		p.next()
	}
}

func (p *Parser) parseModuleBody(moduleName string) {
	for {
		tok := p.peek(0)
		//
		if tok.Kind == token.EOF {
			p.sink.Report(diag.Errorf(diag.UnterminatedModule, tok.Loc, "unexpected end of file inside module %q", moduleName))
			return
		}
		//
		if tok.Kind == token.Keyword && tok.Text == "endmodule" {
			p.next()
			p.cb.moduleEnd(moduleName, tok.Loc)
			return
		}
		//
		switch {
		case tok.Kind == token.Keyword && directionKeywords[tok.Text]:
			p.parseBodyPortDeclaration()
		case tok.Kind == token.Keyword && netTypeKeywords[tok.Text]:
			p.parseSignalDeclaration()
		case tok.Kind == token.Keyword && (tok.Text == "integer" || tok.Text == "real" || tok.Text == "time" || tok.Text == "genvar"):
			p.parseSignalDeclaration()
		case tok.Kind == token.Keyword && (tok.Text == "parameter" || tok.Text == "localparam"):
			p.parseParameterDeclaration()
		case tok.Kind == token.Keyword && strings.HasPrefix(tok.Text, "always"):
			p.parseAlways()
		case tok.Kind == token.Keyword && tok.Text == "assign":
			p.cb.assign(tok.Loc)
			p.skipStatement()
		case tok.Kind == token.Keyword && tok.Text == "generate":
			p.parseGenerate()
		case tok.Kind == token.Keyword && tok.Text == "initial":
			p.skipStatement()
		case tok.Kind == token.Keyword && language.IsGatePrimitive(tok.Text):
			p.parseCellInstantiations(tok.Text)
		case tok.Kind == token.Identifier:
			p.parseCellInstantiations(tok.Text)
		default:
			p.skipStatement()
		}
	}
}

func (p *Parser) parseBodyPortDeclaration() {
	direction := p.next().Text
	netType := ""
	rangeText := ""
	//
	for {
		tok := p.peek(0)
		//
		switch {
		case tok.Kind == token.Keyword && netTypeKeywords[tok.Text]:
			netType = tok.Text
			p.next()
		case tok.Kind == token.Keyword && (tok.Text == "signed" || tok.Text == "unsigned"):
			p.next()
		case tok.Is(token.Punctuation, "["):
			rangeText = p.consumeBalancedText("[", "]")
		case tok.Kind == token.Identifier:
			name := tok.Text
			loc := tok.Loc
			p.next()
			p.cb.port(name, direction, netType, rangeText, loc)
		case tok.Is(token.Punctuation, ","):
			p.next()
		case tok.Is(token.Punctuation, ";"):
			p.next()
			return
		case tok.Kind == token.EOF:
			return
		default:
			p.next()
		}
	}
}

func (p *Parser) parseSignalDeclaration() {
	kind := p.next().Text
	rangeText := ""
	//
	for {
		tok := p.peek(0)
		//
		switch {
		case tok.Kind == token.Keyword && (tok.Text == "signed" || tok.Text == "unsigned"):
			p.next()
		case tok.Is(token.Punctuation, "["):
			rangeText = p.consumeBalancedText("[", "]")
		case tok.Kind == token.Identifier:
			name := tok.Text
			loc := tok.Loc
			p.next()
			p.cb.signalDeclaration(kind, name, rangeText, loc)
			//
			if p.peek(0).Is(token.Punctuation, "[") {
				// Second bracket pair after the name is a packed dimension
				// or unpacked array size, not the bus range; re-split with
				// SplitBus left to the caller if it wants per-bit nets.
				p.consumeBalancedText("[", "]")
			}
		case tok.Is(token.Punctuation, ","):
			p.next()
		case tok.Is(token.Operator, "="):
			p.skipToDelimiterAtDepthZero()
		case tok.Is(token.Punctuation, ";"):
			p.next()
			return
		case tok.Kind == token.EOF:
			return
		default:
			p.next()
		}
	}
}

func (p *Parser) parseParameterDeclaration() {
	p.next() // 'parameter'/'localparam'
	//
	for {
		tok := p.peek(0)
		//
		switch {
		case tok.Kind == token.Keyword && (tok.Text == "signed" || tok.Text == "unsigned" || tok.Text == "integer" || tok.Text == "real"):
			p.next()
		case tok.Is(token.Punctuation, "["):
			p.consumeBalancedText("[", "]")
		case tok.Kind == token.Identifier:
			name := tok.Text
			loc := tok.Loc
			p.next()
			defaultText := ""
			//
			if p.peek(0).Is(token.Operator, "=") {
				p.next()
				defaultText = p.consumeExpressionText()
			}
			//
			p.cb.parameter(name, defaultText, loc)
		case tok.Is(token.Punctuation, ","):
			p.next()
		case tok.Is(token.Punctuation, ";"):
			p.next()
			return
		case tok.Kind == token.EOF:
			return
		default:
			p.next()
		}
	}
}

// consumeExpressionText collects raw text up to the next top-level ',' or
// ';', used for parameter default values and to skip a declaration's
// initializer.
func (p *Parser) consumeExpressionText() string {
	var b strings.Builder
	depth := 0
	//
	for {
		tok := p.peek(0)
		//
		if tok.Kind == token.EOF {
			break
		}
		//
		if depth == 0 && (tok.Is(token.Punctuation, ",") || tok.Is(token.Punctuation, ";")) {
			break
		}
		//
		if tok.Is(token.Punctuation, "(") || tok.Is(token.Punctuation, "[") || tok.Is(token.Punctuation, "{") {
			depth++
		}
		//
		if tok.Is(token.Punctuation, ")") || tok.Is(token.Punctuation, "]") || tok.Is(token.Punctuation, "}") {
			depth--
		}
		//
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		//
		b.WriteString(p.next().Text)
	}
	//
	return b.String()
}

func (p *Parser) skipToDelimiterAtDepthZero() {
	p.consumeExpressionText()
}

func (p *Parser) parseAlways() {
	loc := p.peek(0).Loc
	p.next()
	p.cb.alwaysBegin(loc)
	p.skipStatement()
	p.cb.alwaysEnd(p.peek(0).Loc)
}

func (p *Parser) parseGenerate() {
	loc := p.peek(0).Loc
	p.next()
	p.cb.generateBegin(loc)
	//
	depth := 0
	//
	for {
		tok := p.peek(0)
		//
		if tok.Kind == token.EOF {
			break
		}
		//
		if tok.Kind == token.Keyword && blockOpenKeywords[tok.Text] {
			depth++
		}
		//
		if tok.Kind == token.Keyword && blockCloseKeywords[tok.Text] {
			depth--
		}
		//
		if tok.Kind == token.Keyword && tok.Text == "endgenerate" && depth <= 0 {
			p.next()
			break
		}
		//
		p.next()
	}
	//
	p.cb.generateEnd(p.peek(0).Loc)
}

// parseCellInstantiations handles `Submod [#(params)] inst1(...), inst2(...);`
// and the same shape for gate primitives.
func (p *Parser) parseCellInstantiations(submodule string) {
	start := p.peek(0)
	p.next() // submodule/gate-primitive name
	//
	if p.peek(0).Is(token.Punctuation, "#") {
		p.next()
		p.skipBalanced("(", ")")
	}
	//
	// A bare identifier not actually followed by an instance name and '('
	// is not an instantiation -- treat it as an unrecognised statement.
	if !(p.peek(0).Kind == token.Identifier) {
		p.skipStatementFrom(start)
		return
	}
	//
	for {
		instTok := p.peek(0)
		//
		if instTok.Kind != token.Identifier {
			break
		}
		//
		p.next()
		//
		if p.peek(0).Is(token.Punctuation, "[") {
			p.consumeBalancedText("[", "]") // instance array range
		}
		//
		if !p.peek(0).Is(token.Punctuation, "(") {
			break
		}
		//
		p.parseCellInstance(instTok.Text, submodule, instTok.Loc)
		//
		if p.peek(0).Is(token.Punctuation, ",") {
			p.next()
			continue
		}
		//
		break
	}
	//
	if p.peek(0).Is(token.Punctuation, ";") {
		p.next()
	}
}

func (p *Parser) parseCellInstance(instance, submodule string, loc source.Location) {
	p.cb.cellBegin(instance, submodule, loc)
	p.push("cell")
	p.next() // '('
	p.push("cell-pins")
	//
	named := false
	positional := false
	index := 0
	//
	for {
		tok := p.peek(0)
		//
		if tok.Is(token.Punctuation, ")") {
			p.next()
			break
		}
		//
		if tok.Kind == token.EOF {
			break
		}
		//
		if tok.Is(token.Punctuation, ",") {
			// Empty positional slot.
			p.next()
			positional = true
			p.cb.pin("", index, "", tok.Loc)
			index++
			continue
		}
		//
		if tok.Is(token.Punctuation, ".") {
			p.next()
			nameTok := p.expectIdentifier()
			p.expectPunct("(")
			//
			netExpr := ""
			if !p.peek(0).Is(token.Punctuation, ")") {
				netExpr = p.consumeExpressionTextUntilComma()
			}
			//
			p.expectPunct(")")
			//
			if positional {
				p.sink.Report(diag.Warningf(diag.MixedBinding, loc, "cell %q mixes named and positional port bindings", instance))
			}
			//
			named = true
			p.cb.pin(nameTok.Text, -1, netExpr, nameTok.Loc)
		} else {
			netExpr := p.consumeExpressionTextUntilComma()
			//
			if named {
				p.sink.Report(diag.Warningf(diag.MixedBinding, loc, "cell %q mixes named and positional port bindings", instance))
			}
			//
			positional = true
			p.cb.pin("", index, netExpr, tok.Loc)
			index++
		}
		//
		if p.peek(0).Is(token.Punctuation, ",") {
			p.next()
		}
	}
	//
	p.pop() // cell-pins
	p.cb.cellEnd(instance, loc)
	p.pop() // cell
}

// consumeExpressionTextUntilComma collects raw text for one positional pin
// binding, stopping at the next top-level ',' or ')'.
func (p *Parser) consumeExpressionTextUntilComma() string {
	var b strings.Builder
	depth := 0
	//
	for {
		tok := p.peek(0)
		//
		if tok.Kind == token.EOF {
			break
		}
		//
		if depth == 0 && (tok.Is(token.Punctuation, ",") || tok.Is(token.Punctuation, ")")) {
			break
		}
		//
		if tok.Is(token.Punctuation, "(") || tok.Is(token.Punctuation, "[") {
			depth++
		}
		//
		if tok.Is(token.Punctuation, ")") || tok.Is(token.Punctuation, "]") {
			depth--
		}
		//
		b.WriteString(p.next().Text)
	}
	//
	return b.String()
}

// skipStatement consumes tokens up to and including the next top-level ';'
// (outside nested parens/brackets and begin-end/fork-join blocks), or a
// single balanced begin/end (resp. fork/join) block with no trailing
// semicolon.
func (p *Parser) skipStatement() {
	p.skipStatementFrom(p.peek(0))
}

func (p *Parser) skipStatementFrom(_ token.Token) {
	depth := 0
	blockDepth := 0
	//
	for {
		tok := p.peek(0)
		//
		if tok.Kind == token.EOF {
			return
		}
		//
		if tok.Kind == token.Keyword && blockOpenKeywords[tok.Text] {
			blockDepth++
			p.next()
			continue
		}
		//
		if tok.Kind == token.Keyword && blockCloseKeywords[tok.Text] {
			blockDepth--
			p.next()
			//
			if blockDepth <= 0 && depth == 0 {
				return
			}
			//
			continue
		}
		//
		if tok.Is(token.Punctuation, "(") || tok.Is(token.Punctuation, "[") {
			depth++
		}
		//
		if tok.Is(token.Punctuation, ")") || tok.Is(token.Punctuation, "]") {
			depth--
		}
		//
		if tok.Is(token.Punctuation, ";") && depth <= 0 && blockDepth <= 0 {
			p.next()
			return
		}
		//
		p.next()
	}
}

func (p *Parser) skipBalanced(open, close string) {
	p.consumeBalancedText(open, close)
}

// consumeBalancedText consumes a balanced open/close-delimited span,
// returning the raw text between the delimiters (exclusive).
func (p *Parser) consumeBalancedText(open, close string) string {
	p.next() // opening delimiter
	depth := 1
	var b strings.Builder
	//
	for depth > 0 {
		tok := p.peek(0)
		//
		if tok.Kind == token.EOF {
			break
		}
		//
		if tok.Text == open {
			depth++
		} else if tok.Text == close {
			depth--
			if depth == 0 {
				p.next()
				break
			}
		}
		//
		b.WriteString(p.next().Text)
	}
	//
	return open + b.String() + close
}

func (p *Parser) expectIdentifier() token.Token {
	tok := p.peek(0)
	//
	if tok.Kind == token.Identifier || tok.Kind == token.Keyword {
		return p.next()
	}
	//
	return p.next()
}

func (p *Parser) expectPunct(text string) {
	if p.peek(0).Is(token.Punctuation, text) {
		p.next()
	}
}

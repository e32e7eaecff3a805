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
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bits-and-blooms/bitset"
	log "github.com/sirupsen/logrus"
	"github.com/veriglot/vlhier/pkg/diag"
	"github.com/veriglot/vlhier/pkg/language"
	"github.com/veriglot/vlhier/pkg/source"
)

// DefaultMaxIncludeDepth is the recursion limit applied unless overridden,
// matching the configurable-but-defaulted-to-100 limit.
const DefaultMaxIncludeDepth = 100

// Preproc expands `define/`ifdef/`include directives over one or more
// source files, producing a single preprocessed text stream annotated with
// synthetic `line markers at file-transition boundaries.
type Preproc struct {
	defines         *MacroTable
	standard        language.Standard
	table           *source.FileTable
	reader          *source.Reader
	sink            *diag.Sink
	maxIncludeDepth int
	depth           int
	conditionals    conditionalStack
}

// NewPreproc constructs a Preproc seeded with defines (object-like macros,
// name -> body) and configured to search includePaths after the directory
// of each including file.  Callers merge VERILOG_INCLUDE into includePaths
// themselves; this package never consults the process environment.
func NewPreproc(defines map[string]string, includePaths []string, standard language.Standard) *Preproc {
	table := source.NewFileTable()
	p := &Preproc{
		defines:         NewMacroTable(),
		standard:        standard,
		table:           table,
		reader:          source.NewReader(table, includePaths),
		sink:            diag.NewSink(),
		maxIncludeDepth: DefaultMaxIncludeDepth,
	}
	//
	for name, body := range defines {
		p.defines.Define(name, nil, body, source.Location{}, false, p.sink)
	}
	//
	return p
}

// SetMaxIncludeDepth overrides the default include-recursion limit.
func (p *Preproc) SetMaxIncludeDepth(n int) {
	p.maxIncludeDepth = n
}

// Sink returns the diagnostic sink accumulated across every Preprocess*
// call made on this instance.
func (p *Preproc) Sink() *diag.Sink {
	return p.sink
}

// FileTable returns the file table shared with every Location this
// instance produces.
func (p *Preproc) FileTable() *source.FileTable {
	return p.table
}

// Defines returns the body text of every currently-defined macro, keyed by
// name, as consumed by --defines-only.
func (p *Preproc) Defines() map[string]string {
	out := make(map[string]string)
	for name, m := range p.defines.Snapshot() {
		out[name] = m.Body
	}
	//
	return out
}

// AddDefine installs or overrides a macro from the command line (-D
// NAME[=VALUE]).
func (p *Preproc) AddDefine(name, body string) {
	p.defines.Define(name, nil, body, source.Location{}, false, p.sink)
}

// RemoveDefine undefines a macro from the command line (-U NAME).
func (p *Preproc) RemoveDefine(name string) {
	p.defines.Undef(name)
}

// PreprocessFile preprocesses the file at path and everything it
// transitively includes, returning the combined text.
func (p *Preproc) PreprocessFile(path string) (string, error) {
	text, id, err := p.reader.Open(path, "")
	if err != nil {
		p.sink.Report(diag.New(diag.IncludeNotFound, err.Error()))
		return "", err
	}
	//
	return p.preprocessFileContents(text, id, path), nil
}

// PreprocessStream preprocesses text read in full from r, attributing it to
// originName for diagnostics and `line markers.
func (p *Preproc) PreprocessStream(r io.Reader, originName string) (string, error) {
	bytes, err := io.ReadAll(r)
	if err != nil {
		p.sink.Report(diag.New(diag.IOError, err.Error()))
		return "", err
	}
	//
	text := strings.ReplaceAll(strings.ReplaceAll(string(bytes), "\r\n", "\n"), "\r", "\n")
	id := p.table.Intern(originName, strings.Count(text, "\n")+1)
	//
	return p.preprocessFileContents(text, id, originName), nil
}

func (p *Preproc) preprocessFileContents(text string, id source.FileID, path string) string {
	lines := strings.Split(text, "\n")
	// strings.Split on a trailing-newline-terminated file yields a final
	// empty element; drop it so line numbers below stay 1-indexed against
	// the original file.
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	//
	var out strings.Builder
	//
	lineNo := 1
	for lineNo <= len(lines) {
		consumed, rendered := p.processOneLine(lines, lineNo-1, id, path)
		out.WriteString(rendered)
		lineNo += consumed
	}
	//
	return out.String()
}

// processOneLine handles the logical line starting at lines[idx] (which may
// absorb further physical lines via backslash continuation), returning how
// many physical lines it consumed and the text to emit in their place.
func (p *Preproc) processOneLine(lines []string, idx int, id source.FileID, path string) (int, string) {
	loc := source.Location{File: id, Line: idx + 1, Column: 1}
	//
	logical, consumed := joinContinuation(lines, idx)
	trimmed := strings.TrimLeft(logical, " \t")
	//
	if strings.HasPrefix(trimmed, "`") {
		rendered := p.handleDirective(trimmed, loc, path)
		return consumed, blankPad(consumed, rendered)
	}
	//
	if !p.conditionals.active() {
		return consumed, strings.Repeat("\n", consumed)
	}
	//
	expanded := p.expandText(logical, bitset.New(0), loc)
	expanded = expandPredefined(expanded, loc, p.table)
	//
	return consumed, expanded + "\n"
}

// joinContinuation merges lines[idx] with any following lines while the
// current one ends in a backslash, returning the merged logical line (sans
// trailing backslashes) and the number of physical lines it spans.
func joinContinuation(lines []string, idx int) (string, int) {
	var b strings.Builder
	//
	n := 1
	line := lines[idx]
	//
	for strings.HasSuffix(line, "\\") {
		b.WriteString(strings.TrimSuffix(line, "\\"))
		b.WriteString(" ")
		//
		if idx+n >= len(lines) {
			break
		}
		//
		line = lines[idx+n]
		n++
	}
	//
	b.WriteString(line)
	//
	return b.String(), n
}

// blankPad accounts for a directive's n source lines so that subsequent
// line numbers are preserved: blank lines for no output, a newline plus
// padding for a single rendered line, and padding only for multi-line output
// (an `include, whose trailing `line marker already ends in a newline).
func blankPad(n int, rendered string) string {
	if rendered == "" {
		return strings.Repeat("\n", n)
	}
	//
	if strings.HasSuffix(rendered, "\n") {
		return rendered + strings.Repeat("\n", n-1)
	}
	//
	return rendered + strings.Repeat("\n", n-1) + "\n"
}

func expandPredefined(text string, loc source.Location, table *source.FileTable) string {
	text = strings.ReplaceAll(text, "`__LINE__", strconv.Itoa(loc.Line))
	text = strings.ReplaceAll(text, "`__FILE__", strconv.Quote(table.Path(loc.File)))
	//
	return text
}

// handleDirective dispatches a line beginning with a backtick directive,
// returning the text (if any) to emit in place of the directive line
// itself.
func (p *Preproc) handleDirective(line string, loc source.Location, path string) string {
	name, rest := splitDirective(line)
	//
	switch name {
	case "define":
		if p.conditionals.active() {
			p.handleDefine(rest, loc)
		}
		return ""
	case "undef":
		if p.conditionals.active() {
			p.defines.Undef(strings.TrimSpace(rest))
		}
		return ""
	case "undefineall":
		if p.conditionals.active() {
			p.defines.UndefAll()
		}
		return ""
	case "resetall":
		if p.conditionals.active() {
			p.defines.UndefAll()
			p.conditionals = conditionalStack{}
		}
		return ""
	case "ifdef":
		_, defined := p.defines.Lookup(strings.TrimSpace(rest))
		p.conditionals.pushIf(defined, loc)
		return ""
	case "ifndef":
		_, defined := p.defines.Lookup(strings.TrimSpace(rest))
		p.conditionals.pushIf(!defined, loc)
		return ""
	case "elsif":
		p.handleElsif(rest, loc)
		return ""
	case "else":
		p.handleElse(loc)
		return ""
	case "endif":
		p.handleEndif(loc)
		return ""
	case "include":
		if !p.conditionals.active() {
			return ""
		}
		//
		return p.handleInclude(rest, loc, path)
	case "line":
		return "" // provenance adjustment consumed silently; we track lines ourselves
	case "timescale", "celldefine", "endcelldefine", "default_nettype",
		"pragma", "begin_keywords", "end_keywords":
		if !p.conditionals.active() {
			return ""
		}
		//
		return line
	default:
		if !p.conditionals.active() {
			return ""
		}
		//
		if language.IsCompilerDirective(name) {
			// __FILE__/__LINE__ handled as expressions, not line-leading
			// directives in practice, but tolerate either position.
			return expandPredefined(line, loc, p.table)
		}
		//
		p.sink.Report(diag.Warningf(diag.UnknownDirective, loc, "unknown directive `%s passed through", name))
		return line
	}
}

func splitDirective(line string) (string, string) {
	line = strings.TrimPrefix(line, "`")
	//
	i := 0
	for i < len(line) && isIdentPart(line[i]) {
		i++
	}
	//
	return line[:i], line[i:]
}

func (p *Preproc) handleDefine(rest string, loc source.Location) {
	rest = strings.TrimLeft(rest, " \t")
	//
	i := 0
	for i < len(rest) && isIdentPart(rest[i]) {
		i++
	}
	//
	name := rest[:i]
	if name == "" {
		p.sink.Report(diag.Errorf(diag.InvalidNumber, loc, "malformed `define directive"))
		return
	}
	//
	rest = rest[i:]
	//
	var params []string
	//
	if strings.HasPrefix(rest, "(") {
		args, end, ok := splitArgs(rest, 0)
		if !ok {
			p.sink.Report(diag.Errorf(diag.MacroArity, loc, "unterminated parameter list in `define %s", name))
			return
		}
		//
		params = args
		rest = rest[end:]
	}
	//
	body := strings.TrimLeft(rest, " \t")
	p.defines.Define(name, params, body, loc, false, p.sink)
}

func (p *Preproc) handleElsif(rest string, loc source.Location) {
	if p.conditionals.empty() {
		p.sink.Report(diag.Errorf(diag.DanglingElsif, loc, "`elsif without matching `ifdef/`ifndef"))
		return
	}
	//
	top := p.conditionals.top()
	if top.Kind == "else" {
		p.sink.Report(diag.Errorf(diag.DanglingElsif, loc, "`elsif after `else"))
		return
	}
	//
	_, defined := p.defines.Lookup(strings.TrimSpace(rest))
	taken := !top.AnyTaken && defined
	//
	top.Kind = "elsif"
	top.Taken = taken
	top.AnyTaken = top.AnyTaken || taken
	top.Skip = !taken
}

func (p *Preproc) handleElse(loc source.Location) {
	if p.conditionals.empty() {
		p.sink.Report(diag.Errorf(diag.DanglingElse, loc, "`else without matching `ifdef/`ifndef"))
		return
	}
	//
	top := p.conditionals.top()
	if top.Kind == "else" {
		p.sink.Report(diag.Errorf(diag.DanglingElse, loc, "multiple `else for the same `ifdef/`ifndef"))
		return
	}
	//
	taken := !top.AnyTaken
	top.Kind = "else"
	top.Taken = taken
	top.AnyTaken = top.AnyTaken || taken
	top.Skip = !taken
}

func (p *Preproc) handleEndif(loc source.Location) {
	if p.conditionals.empty() {
		p.sink.Report(diag.Errorf(diag.DanglingEndif, loc, "`endif without matching `ifdef/`ifndef"))
		return
	}
	//
	p.conditionals.pop()
}

func (p *Preproc) handleInclude(rest string, loc source.Location, contextPath string) string {
	name := parseIncludeTarget(rest)
	if name == "" {
		p.sink.Report(diag.Errorf(diag.InvalidNumber, loc, "malformed `include directive"))
		return ""
	}
	//
	if p.depth >= p.maxIncludeDepth {
		p.sink.Report(diag.Errorf(diag.IncludeDepthExceeded, loc, "include depth exceeds limit of %d while opening %q", p.maxIncludeDepth, name))
		return ""
	}
	//
	text, id, err := p.reader.Open(name, contextPath)
	if err != nil {
		p.sink.Report(diag.New(diag.IncludeNotFound, err.Error(), loc))
		return ""
	}
	//
	log.Debugf("entering include %q at %s", name, path(loc, p.table))
	//
	p.depth++
	body := p.preprocessFileContents(text, id, name)
	p.depth--
	//
	entryMarker := fmt.Sprintf("`line 1 %q 1\n", name)
	returnMarker := fmt.Sprintf("`line %d %q 2\n", loc.Line+1, contextPath)
	//
	return entryMarker + body + returnMarker
}

func path(loc source.Location, table *source.FileTable) string {
	return fmt.Sprintf("%s:%d", table.Path(loc.File), loc.Line)
}

// parseIncludeTarget extracts the filename from `include "x"` or
// `include <x>`.
func parseIncludeTarget(rest string) string {
	rest = strings.TrimLeft(rest, " \t")
	if rest == "" {
		return ""
	}
	//
	open, closeCh := rest[0], byte(0)
	//
	switch open {
	case '"':
		closeCh = '"'
	case '<':
		closeCh = '>'
	default:
		return ""
	}
	//
	end := strings.IndexByte(rest[1:], closeCh)
	if end < 0 {
		return ""
	}
	//
	return rest[1 : end+1]
}

// Finish reports any diagnostics for conditionals left open at end of
// input; callers invoke this once after all PreprocessFile/PreprocessStream
// calls for a translation unit have completed.
func (p *Preproc) Finish() {
	for !p.conditionals.empty() {
		top := p.conditionals.top()
		p.sink.Report(diag.Errorf(diag.UnterminatedIfdef, top.OpenLoc, "unterminated conditional opened here"))
		p.conditionals.pop()
	}
}

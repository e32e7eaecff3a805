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

// Package vhier implements the vhier command: preprocess, parse and link a
// set of Verilog/SystemVerilog sources into a Netlist, then report its
// module hierarchy in one of several formats.
package vhier

import (
	"fmt"
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/veriglot/vlhier/pkg/cmd/internal/report"
	"github.com/veriglot/vlhier/pkg/language"
	"github.com/veriglot/vlhier/pkg/netlist"
	"github.com/veriglot/vlhier/pkg/parser"
	"github.com/veriglot/vlhier/pkg/preproc"
	"github.com/veriglot/vlhier/pkg/source"
	"github.com/veriglot/vlhier/pkg/util"
)

var rootCmd = &cobra.Command{
	Use:   "vhier [flags] file...",
	Short: "Report the module hierarchy of a Verilog/SystemVerilog design.",
	Long:  "vhier preprocesses, parses and links a set of source files, then reports the resulting module hierarchy.",
	Run:   run,
}

// Execute runs the root command, mapping library/usage failures onto the
// documented exit codes (0 success, 1 preprocessing error, 2 I/O error, 3
// usage error, 4 link error under --strict).
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(3)
	}
}

func init() {
	rootCmd.Flags().StringArrayP("define", "D", nil, "define a macro NAME[=VALUE]")
	rootCmd.Flags().StringArrayP("undef", "U", nil, "undefine a macro NAME")
	rootCmd.Flags().StringArrayP("include", "I", nil, "add an include search path")
	rootCmd.Flags().String("standard", language.DefaultStandard().String(), "language standard, e.g. 1800-2017")
	rootCmd.Flags().String("top-module", "", "restrict --modules/--cells/--module-files to the subtree rooted at this module")
	rootCmd.Flags().Bool("modules", false, "list module names only")
	rootCmd.Flags().Bool("cells", false, "list the cell instance hierarchy, indented by depth")
	rootCmd.Flags().Bool("module-files", false, "list \"module<TAB>file\" lines")
	rootCmd.Flags().Bool("xml", false, "emit the netlist as an XML tree")
	rootCmd.Flags().Bool("json", false, "emit the netlist as JSON")
	rootCmd.Flags().Bool("strict", false, "escalate link warnings to errors (exit code 4)")
	rootCmd.Flags().BoolP("verbose", "v", false, "raise logging verbosity")
	rootCmd.Flags().Bool("perf", false, "print a performance summary to stderr on exit")
	rootCmd.Flags().String("color", "auto", "colorize diagnostics: auto, always, never")
}

func run(cmd *cobra.Command, args []string) {
	if getFlag(cmd, "verbose") {
		log.SetLevel(log.DebugLevel)
	}
	//
	var perf *util.PerfStats
	if getFlag(cmd, "perf") {
		perf = util.NewPerfStats()
	}
	//
	standard, err := language.ParseStandard(getString(cmd, "standard"))
	if err != nil {
		fmt.Println(err)
		os.Exit(3)
	}
	//
	if len(args) == 0 {
		fmt.Println(cmd.UsageString())
		os.Exit(3)
	}
	//
	defines := make(map[string]string)
	for _, d := range getStringArray(cmd, "define") {
		name, value := splitDefine(d)
		defines[name] = value
	}
	//
	includePaths := report.MergeIncludePaths(getStringArray(cmd, "include"))
	pp := preproc.NewPreproc(defines, includePaths, standard)
	//
	for _, name := range getStringArray(cmd, "undef") {
		pp.RemoveDefine(name)
	}
	//
	type unit struct {
		id   source.FileID
		text string
	}
	//
	var units []unit
	var combined strings.Builder
	//
	for _, file := range args {
		text, err := pp.PreprocessFile(file)
		if err != nil {
			finish(cmd, pp, nil, perf, 2)
			return
		}
		//
		id := pp.FileTable().Intern(file, strings.Count(text, "\n")+1)
		units = append(units, unit{id, text})
		combined.WriteString(text)
	}
	//
	pp.Finish()
	//
	defaultNet := netlist.NettypeWire
	if defaultNettypeNone(combined.String()) {
		defaultNet = netlist.NettypeNone
	}
	//
	nl := netlist.NewNetlist(defaultNet, pp.Sink())
	//
	for _, u := range units {
		cb := netlist.NewBuilder(nl)
		parser.NewParser(u.text, pp.FileTable(), u.id, standard, cb, pp.Sink()).Parse()
		nl.MarkFileRead(u.id)
	}
	//
	nl.Link()
	//
	sink := pp.Sink()
	exitCode := 0
	//
	switch {
	case sink.HasErrors():
		exitCode = 1
	case getFlag(cmd, "strict") && sink.HasWarnings():
		exitCode = 4
	}
	//
	finish(cmd, pp, nl, perf, exitCode)
}

// finish prints diagnostics and (if the run is otherwise succeeding) the
// requested report, then exits with code.
func finish(cmd *cobra.Command, pp *preproc.Preproc, nl *netlist.Netlist, perf *util.PerfStats, code int) {
	useColor := report.ResolveColor(getString(cmd, "color"), os.Stderr.Fd())
	report.Print(os.Stderr, pp.Sink().All(), pp.FileTable(), useColor)
	//
	if perf != nil {
		perf.Log("vhier")
	}
	//
	if code == 0 && nl != nil {
		if err := printReport(cmd, nl, pp); err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
	}
	//
	os.Exit(code)
}

func splitDefine(d string) (string, string) {
	if i := strings.IndexByte(d, '='); i >= 0 {
		return d[:i], d[i+1:]
	}
	//
	return d, "1"
}

// defaultNettypeNone reports whether the last `default_nettype directive
// (if any) across every preprocessed unit selects "none", per spec.md
// §4.6's implicit-net rule; pkg/netlist never re-parses directives itself,
// so the CLI layer scans the combined preprocessed text once to decide
// which DefaultNettype to link with.
func defaultNettypeNone(text string) bool {
	none := false
	//
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "`default_nettype") {
			continue
		}
		//
		arg := strings.TrimSpace(strings.TrimPrefix(line, "`default_nettype"))
		none = arg == "none"
	}
	//
	return none
}

func printReport(cmd *cobra.Command, nl *netlist.Netlist, pp *preproc.Preproc) error {
	w := os.Stdout
	top := getString(cmd, "top-module")
	//
	switch {
	case getFlag(cmd, "modules"):
		return printModules(w, nl, top)
	case getFlag(cmd, "cells"):
		return printCells(w, nl, top)
	case getFlag(cmd, "module-files"):
		return printModuleFiles(w, nl, top, pp.FileTable())
	case getFlag(cmd, "xml"):
		return nl.Dump(w, netlist.DumpXML)
	case getFlag(cmd, "json"):
		return nl.Dump(w, netlist.DumpJSON)
	default:
		return nl.Dump(w, netlist.DumpText)
	}
}

// reachable collects topName's module and every module transitively
// instantiated beneath it (or, with no top-module restriction, every
// linked module), skipping the gate-primitive sentinel.
func reachable(nl *netlist.Netlist, topName string) []*netlist.Module {
	if topName == "" {
		return nl.Modules()
	}
	//
	top := nl.FindModule(topName)
	if top == nil {
		return nil
	}
	//
	seen := map[string]bool{}
	var order []*netlist.Module
	//
	var visit func(m *netlist.Module)
	visit = func(m *netlist.Module) {
		if seen[m.Name] {
			return
		}
		//
		seen[m.Name] = true
		order = append(order, m)
		//
		for _, c := range m.Cells {
			if c.Submodule != nil && c.Submodule != netlist.GatePrimitiveSentinel {
				visit(c.Submodule)
			}
		}
	}
	//
	visit(top)
	//
	return order
}

func printModules(w io.Writer, nl *netlist.Netlist, top string) error {
	for _, m := range reachable(nl, top) {
		fmt.Fprintln(w, m.Name)
	}
	//
	return nil
}

func printModuleFiles(w io.Writer, nl *netlist.Netlist, top string, table *source.FileTable) error {
	for _, m := range reachable(nl, top) {
		fmt.Fprintf(w, "%s\t%s\n", m.Name, table.Path(m.File))
	}
	//
	return nil
}

func printCells(w io.Writer, nl *netlist.Netlist, top string) error {
	var roots []*netlist.Module
	//
	if top != "" {
		if m := nl.FindModule(top); m != nil {
			roots = []*netlist.Module{m}
		}
	} else {
		roots = nl.TopModules()
	}
	//
	for _, m := range roots {
		printCellTree(w, m, 0, map[string]bool{})
	}
	//
	return nil
}

func printCellTree(w io.Writer, m *netlist.Module, depth int, ancestors map[string]bool) {
	fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", depth), m.Name)
	//
	if ancestors[m.Name] {
		return // cyclic instantiation already reported by Link; stop descending
	}
	//
	ancestors[m.Name] = true
	//
	for _, c := range m.Cells {
		status := "unresolved"
		if c.Submodule != nil {
			status = c.Submodule.Name
		}
		//
		fmt.Fprintf(w, "%s%s (%s)\n", strings.Repeat("  ", depth+1), c.InstanceName, status)
		//
		if c.Submodule != nil && c.Submodule != netlist.GatePrimitiveSentinel {
			printCellTree(w, c.Submodule, depth+2, ancestors)
		}
	}
	//
	delete(ancestors, m.Name)
}

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

// Package vppreproc implements the vppreproc command: expand
// `define/`ifdef/`include directives over a list of source files and
// either print the combined text or, with --defines-only, the resulting
// macro table.
package vppreproc

import (
	"fmt"
	"os"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/veriglot/vlhier/pkg/cmd/internal/report"
	"github.com/veriglot/vlhier/pkg/language"
	"github.com/veriglot/vlhier/pkg/preproc"
	"github.com/veriglot/vlhier/pkg/util"
)

// rootCmd is the single command vppreproc exposes -- no subcommands,
// mirroring the teacher's simplest commands (a root command with flags).
var rootCmd = &cobra.Command{
	Use:   "vppreproc [flags] file...",
	Short: "Expand Verilog/SystemVerilog preprocessor directives.",
	Long:  "vppreproc expands `define/`ifdef/`include directives over one or more source files.",
	Run:   run,
}

// Execute runs the root command, mapping library/usage failures onto the
// documented exit codes (0 success, 1 preprocessing error, 2 I/O error, 3
// usage error).
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(3)
	}
}

func init() {
	rootCmd.Flags().StringArrayP("define", "D", nil, "define a macro NAME[=VALUE]")
	rootCmd.Flags().StringArrayP("undef", "U", nil, "undefine a macro NAME")
	rootCmd.Flags().StringArrayP("include", "I", nil, "add an include search path")
	rootCmd.Flags().StringP("output", "o", "", "write output to PATH instead of stdout")
	rootCmd.Flags().Bool("defines-only", false, "print the macro table instead of preprocessed text")
	rootCmd.Flags().String("standard", language.DefaultStandard().String(), "language standard, e.g. 1800-2017")
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
	p := preproc.NewPreproc(defines, includePaths, standard)
	//
	for _, name := range getStringArray(cmd, "undef") {
		p.RemoveDefine(name)
	}
	//
	var combined strings.Builder
	//
	for _, file := range args {
		text, err := p.PreprocessFile(file)
		if err != nil {
			reportAndExit(cmd, p, perf)
			return
		}
		//
		combined.WriteString(text)
	}
	//
	p.Finish()
	//
	useColor := report.ResolveColor(getString(cmd, "color"), os.Stderr.Fd())
	report.Print(os.Stderr, p.Sink().All(), p.FileTable(), useColor)
	//
	if perf != nil {
		perf.Log("preprocess")
	}
	//
	if p.Sink().HasErrors() {
		os.Exit(1)
	}
	//
	output := combined.String()
	if getFlag(cmd, "defines-only") {
		output = definesText(p.Defines())
	}
	//
	if err := writeOutput(getString(cmd, "output"), output); err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
}

// reportAndExit prints whatever diagnostics accumulated before an I/O
// failure aborted the run, then exits 2.
func reportAndExit(cmd *cobra.Command, p *preproc.Preproc, perf *util.PerfStats) {
	useColor := report.ResolveColor(getString(cmd, "color"), os.Stderr.Fd())
	report.Print(os.Stderr, p.Sink().All(), p.FileTable(), useColor)
	//
	if perf != nil {
		perf.Log("preprocess")
	}
	//
	os.Exit(2)
}

func splitDefine(d string) (string, string) {
	if i := strings.IndexByte(d, '='); i >= 0 {
		return d[:i], d[i+1:]
	}
	//
	return d, "1"
}

func definesText(defines map[string]string) string {
	names := make([]string, 0, len(defines))
	for name := range defines {
		names = append(names, name)
	}
	//
	sort.Strings(names)
	//
	var b strings.Builder
	for _, name := range names {
		fmt.Fprintf(&b, "`define %s %s\n", name, defines[name])
	}
	//
	return b.String()
}

func writeOutput(path, text string) error {
	if path == "" {
		_, err := fmt.Print(text)
		return err
	}
	//
	return os.WriteFile(path, []byte(text), 0644)
}

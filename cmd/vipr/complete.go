// Copyright SCIP Optimization Suite Contributors
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

package main

import (
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/scipopt/vipr-go/internal/cmdutil"
	"github.com/scipopt/vipr-go/internal/perf"
	"github.com/scipopt/vipr-go/pkg/complete"
)

var completeCmd = &cobra.Command{
	Use:   "complete <certificate>",
	Short: "Resolve incomplete and weak derivation steps into plain multiplier lists.",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		cmdutil.SetupLogging(cmdutil.GetFlag(cmd, "verbose"))
		applyVerbosity(cmd)
		stats := perf.New()

		inPath := args[0]
		p := cmdutil.OpenCertificate(inPath)

		opts := complete.Options{
			Threads: int(cmdutil.GetUint(cmd, "threads")),
			Soplex:  cmdutil.GetString(cmd, "soplex") != "off",
		}

		outPath := cmdutil.GetString(cmd, "outfile")
		if outPath == "" {
			outPath = defaultOutfile(inPath, "_complete")
		}

		f, err := os.Create(outPath)
		if err != nil {
			cmdutil.Fatalf("%s: %v", outPath, err)
		}
		defer f.Close()

		if err := complete.Complete(p, opts, f); err != nil {
			cmdutil.Fatalf("complete: %v", err)
		}

		stats.Log("complete")
		fmt.Printf("Wrote %s\nCompleted in %0.2f seconds (CPU)\n", outPath, stats.Elapsed())
	},
}

// defaultOutfile derives "<input><suffix>.vipr" from a "<input>.vipr" path;
// an input without a .vipr extension keeps its full name and gets
// "<suffix>.vipr" appended.
func defaultOutfile(inPath, suffix string) string {
	base := strings.TrimSuffix(inPath, ".vipr")
	return base + suffix + ".vipr"
}

// applyVerbosity folds --debugmode and --verbosity into the logrus level:
// debugmode=on or verbosity>=4 gets full debug output, verbosity=0 keeps
// only warnings and above, anything in between leaves the level that
// SetupLogging chose (info, or debug under --verbose).
func applyVerbosity(cmd *cobra.Command) {
	verbosity := cmdutil.GetUint(cmd, "verbosity")
	debugMode := cmdutil.GetString(cmd, "debugmode") == "on"
	switch {
	case debugMode || verbosity >= 4:
		log.SetLevel(log.DebugLevel)
	case verbosity == 0:
		log.SetLevel(log.WarnLevel)
	}
}

func init() {
	rootCmd.AddCommand(completeCmd)
	completeCmd.Flags().String("soplex", "on", "resolve incomplete steps via the LP solver (on) or leave them incomplete (off)")
	completeCmd.Flags().String("debugmode", "off", "emit debug-level logging")
	completeCmd.Flags().Uint("verbosity", 2, "logging verbosity, 0-5")
	completeCmd.Flags().Uint("threads", 1, "number of worker goroutines")
	completeCmd.Flags().String("outfile", "", "output path (default <input>_complete.vipr)")
}

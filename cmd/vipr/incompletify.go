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
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scipopt/vipr-go/internal/cmdutil"
	"github.com/scipopt/vipr-go/pkg/incompletify"
)

var incompletifyCmd = &cobra.Command{
	Use:   "incompletify <certificate> <percent> <incomplete|weak> <all|noobj>",
	Short: "Rewrite a fraction of lin steps into incomplete or weak form.",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 4 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		cmdutil.SetupLogging(cmdutil.GetFlag(cmd, "verbose"))

		inPath := args[0]
		percent, err := strconv.Atoi(args[1])
		if err != nil || percent < 0 || percent > 100 {
			cmdutil.Fatalf("percent must be an integer in 0..100, got %q", args[1])
		}

		var mode incompletify.Mode
		switch args[2] {
		case "incomplete":
			mode = incompletify.Incomplete
		case "weak":
			mode = incompletify.Weak
		default:
			cmdutil.Fatalf("mode must be 'incomplete' or 'weak', got %q", args[2])
		}

		var scope incompletify.Scope
		switch args[3] {
		case "all":
			scope = incompletify.All
		case "noobj":
			scope = incompletify.NoObj
		default:
			cmdutil.Fatalf("scope must be 'all' or 'noobj', got %q", args[3])
		}

		p := cmdutil.OpenCertificate(inPath)

		outPath := fmt.Sprintf("%s%d_%s_%s.vipr", strings.TrimSuffix(inPath, ".vipr"), percent, args[2], args[3])
		f, err := os.Create(outPath)
		if err != nil {
			cmdutil.Fatalf("%s: %v", outPath, err)
		}
		defer f.Close()

		opts := incompletify.Options{Percent: percent, Mode: mode, Scope: scope}
		if err := incompletify.Run(p, opts, f); err != nil {
			cmdutil.Fatalf("incompletify: %v", err)
		}

		fmt.Printf("Wrote %s\n", outPath)
	},
}

func init() {
	rootCmd.AddCommand(incompletifyCmd)
}

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

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/scipopt/vipr-go/internal/cmdutil"
	"github.com/scipopt/vipr-go/pkg/width"
)

var widthCmd = &cobra.Command{
	Use:   "width <certificate>",
	Short: "Report the derivation dependency cutwidth of a certificate.",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		cmdutil.SetupLogging(cmdutil.GetFlag(cmd, "verbose"))

		p := cmdutil.OpenCertificate(args[0])
		r := width.Compute(p)

		fmt.Printf("variables:          %d (%d integer)\n", r.NumVariables, r.NumIntegerVars)
		fmt.Printf("base constraints:   %d (%d nonzeros)\n", r.NumBaseConstraints, r.BaseNonzeros)
		fmt.Printf("derivations:        %d (%d nonzeros)\n", r.NumDerivations, r.DerNonzeros)
		fmt.Println()
		printHistogram(r.PerDerivationWidth)
		fmt.Printf("\ncutwidth: %d\n", r.Cutwidth)
	},
}

// printHistogram prints one line per derivation step, scaling the bars so
// the longest one spans the terminal width left after the "der NNNNNN: "
// prefix. The number of lines is not limited.
func printHistogram(perStep []int) {
	cols, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || cols <= 0 {
		cols = 80
	}
	barWidth := cols - len("der 000000: ")
	if barWidth < 1 {
		barWidth = 1
	}

	max := 1
	for _, w := range perStep {
		if w > max {
			max = w
		}
	}

	for i, w := range perStep {
		barLen := w * barWidth / max
		fmt.Printf("der %6d: %s (%d)\n", i, bar(barLen), w)
	}
}

func bar(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = '#'
	}
	return string(b)
}

func init() {
	rootCmd.AddCommand(widthCmd)
}

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

	"github.com/segmentio/encoding/json"
	"github.com/spf13/cobra"

	"github.com/scipopt/vipr-go/internal/cmdutil"
	"github.com/scipopt/vipr-go/internal/perf"
	"github.com/scipopt/vipr-go/pkg/certificate"
	"github.com/scipopt/vipr-go/pkg/engine"
	"github.com/scipopt/vipr-go/pkg/rational"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <certificate>",
	Short: "Check that a VIPR certificate proves its relation to prove.",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		cmdutil.SetupLogging(cmdutil.GetFlag(cmd, "verbose"))
		stats := perf.New()

		p := cmdutil.OpenCertificate(args[0])

		if dumpPath := cmdutil.GetString(cmd, "dump-json"); dumpPath != "" {
			if err := dumpJSON(p, dumpPath); err != nil {
				cmdutil.Fatalf("dump-json: %v", err)
			}
		}

		if err := engine.New(p).Verify(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		switch p.RTP.Kind {
		case certificate.RTPInfeasible:
			fmt.Println("Successfully verified infeasibility.")
		case certificate.RTPRange:
			fmt.Println("Successfully verified the claimed range.")
		}

		stats.Log("verify")
		fmt.Printf("\nCompleted in %0.2f seconds (CPU)\n", stats.Elapsed())
	},
}

// dumpRat is the JSON-safe rendering of a rational.Rat.
type dumpRat = rational.Rat

type dumpVariable struct {
	Name    string `json:"name"`
	Integer bool   `json:"integer"`
}

type dumpVec struct {
	Indices []int              `json:"indices"`
	Values  map[string]dumpRat `json:"values"`
}

type dumpConstraint struct {
	Label string  `json:"label"`
	Sense string  `json:"sense"`
	Rhs   dumpRat `json:"rhs"`
	Coef  dumpVec `json:"coef"`
}

type dumpProblem struct {
	Variables       []dumpVariable   `json:"variables"`
	ObjSense        string           `json:"objSense"`
	Objective       dumpVec          `json:"objective"`
	BaseConstraints []dumpConstraint `json:"baseConstraints"`
	NumDerivations  int              `json:"numDerivations"`
}

func dumpJSON(p *certificate.Problem, path string) error {
	out := dumpProblem{
		NumDerivations: len(p.Derivations),
	}
	for _, v := range p.Variables {
		out.Variables = append(out.Variables, dumpVariable{Name: v.Name, Integer: v.Integer})
	}
	if p.ObjSense == certificate.Maximize {
		out.ObjSense = "max"
	} else {
		out.ObjSense = "min"
	}
	out.Objective = dumpVecOf(p.Objective)
	for _, c := range p.BaseConstraints {
		out.BaseConstraints = append(out.BaseConstraints, dumpConstraint{
			Label: c.Label,
			Sense: c.Sense.String(),
			Rhs:   c.Rhs,
			Coef:  dumpVecOf(c.Coef),
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func dumpVecOf(v interface {
	Indices() []int
	Get(int) rational.Rat
}) dumpVec {
	idx := v.Indices()
	values := make(map[string]dumpRat, len(idx))
	for _, i := range idx {
		values[fmt.Sprintf("%d", i)] = v.Get(i)
	}
	return dumpVec{Indices: idx, Values: values}
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.Flags().String("dump-json", "", "write the parsed problem as JSON to this path before verifying")
}

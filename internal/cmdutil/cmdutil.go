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

// Package cmdutil holds the pieces shared by every vipr subcommand: flag
// lookups that exit on programmer error, certificate loading with
// section/token diagnostics on stderr, and logging setup.
package cmdutil

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/scipopt/vipr-go/pkg/certificate"
)

// GetFlag fetches a bool flag, exiting with a programmer-error diagnostic if
// the flag was never registered.
func GetFlag(cmd *cobra.Command, name string) bool {
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return v
}

// GetUint fetches a uint flag, exiting with a programmer-error diagnostic if
// the flag was never registered.
func GetUint(cmd *cobra.Command, name string) uint {
	v, err := cmd.Flags().GetUint(name)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return v
}

// GetString fetches a string flag, exiting with a programmer-error
// diagnostic if the flag was never registered.
func GetString(cmd *cobra.Command, name string) string {
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return v
}

// SetupLogging configures the package-level logrus logger per the --verbose
// flag, the way go-corset gates log.SetLevel off a persistent flag.
func SetupLogging(verbose bool) {
	if verbose {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
}

// OpenCertificate reads and parses a certificate file, printing a
// diagnostic and exiting on any I/O or format error. Exit code 1 covers
// both kinds, per the CLI's "nonzero on any failure" contract — the
// distinction between argument/file errors and format errors is preserved
// in the message, not the exit status.
func OpenCertificate(path string) *certificate.Problem {
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
		os.Exit(1)
	}
	defer f.Close()

	p, err := certificate.Read(f)
	if err != nil {
		reportCertificateError(path, err)
		os.Exit(1)
	}
	return p
}

// reportCertificateError prints a format/semantic error, including the
// section name and offending token for a *certificate.SyntaxError.
func reportCertificateError(path string, err error) {
	if se, ok := err.(*certificate.SyntaxError); ok {
		fmt.Fprintf(os.Stderr, "%s: %s\n", path, se.Error())
		return
	}
	fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
}

// Fatalf prints a formatted diagnostic to stderr and exits 1.
func Fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

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

package certificate

import "fmt"

// SyntaxError is a structured error reporting the section in which a problem
// arose, the offending token, and a message. Every reader failure is
// reported this way so the CLI can print "section name and offending token"
// as required.
type SyntaxError struct {
	Section string
	Token   string
	Msg     string
}

// NewSyntaxError constructs a SyntaxError.
func NewSyntaxError(section, token, msg string) *SyntaxError {
	return &SyntaxError{Section: section, Token: token, Msg: msg}
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("%s: %s", e.Section, e.Msg)
	}
	return fmt.Sprintf("%s: %s (read %q)", e.Section, e.Msg, e.Token)
}

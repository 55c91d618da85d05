// Copyright the go-lyn authors.
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
package source

import "fmt"

// SyntaxError is a structured error which retains the span of the original
// surface program where an error arose, along with an error message.
type SyntaxError struct {
	// Span of original text on which this error is reported.
	span Span
	// Error message being reported.
	msg string
}

// NewSyntaxError constructs a new syntax error for a given span and message.
func NewSyntaxError(span Span, msg string) *SyntaxError {
	return &SyntaxError{span, msg}
}

// ErrSyntaxf constructs a new syntax error with a formatted message.
func ErrSyntaxf(span Span, format string, args ...any) *SyntaxError {
	return &SyntaxError{span, fmt.Sprintf(format, args...)}
}

// Span returns the span of the original text on which this error is reported.
func (p *SyntaxError) Span() Span {
	return p.span
}

// Message returns the message to be reported.
func (p *SyntaxError) Message() string {
	return p.msg
}

// Error implements the error interface.
func (p *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d:%s", p.span.Start(), p.span.End(), p.msg)
}

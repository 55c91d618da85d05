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
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/lyn-lang/go-lyn/pkg/ast"
	"github.com/lyn-lang/go-lyn/pkg/binfile"
	"github.com/lyn-lang/go-lyn/pkg/util/source"
	"github.com/lyn-lang/go-lyn/pkg/vm"
	"github.com/lyn-lang/go-lyn/pkg/vm/io"
)

// GetFlag gets an expected flag, or panic if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	//
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return r
}

// GetString gets an expected string flag, or panic if an error arises.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	//
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return r
}

// GetUint gets an expected uint flag, or panic if an error arises.
func GetUint(cmd *cobra.Command, flag string) uint {
	r, err := cmd.Flags().GetUint(flag)
	//
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return r
}

// GetInt64Slice gets an expected int64 slice flag, or panic if an error
// arises.
func GetInt64Slice(cmd *cobra.Command, flag string) []int64 {
	r, err := cmd.Flags().GetInt64Slice(flag)
	//
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return r
}

// Read a source tree document, exiting on failure.
func readAstFile(filename string) ast.Node {
	data, err := os.ReadFile(filename)
	//
	if err == nil {
		var root ast.Node
		//
		if root, err = binfile.DecodeAst(data); err == nil {
			return root
		}
	}
	//
	fmt.Println(err)
	os.Exit(2)
	// unreachable
	return nil
}

// Read a compiled program artifact, exiting on failure.
func readProgramFile(filename string) *vm.Program {
	data, err := os.ReadFile(filename)
	//
	if err == nil {
		var program *vm.Program
		//
		if program, err = binfile.DecodeProgram(data); err == nil {
			return program
		}
	}
	//
	fmt.Println(err)
	os.Exit(2)
	// unreachable
	return nil
}

// Print accumulated linearity violations, one per line.
func printSyntaxErrors(filename string, errors []source.SyntaxError) {
	for _, err := range errors {
		span := err.Span()
		fmt.Printf("%s%s:%d-%d:%s %s\n",
			maybeColour("\033[31m"), filename, span.Start(), span.End(), maybeColour("\033[0m"),
			err.Message())
	}
}

// Print a runtime fault report, highlighted when attached to a terminal.
func printFault(fault *io.Fault) {
	fmt.Printf("%sfault:%s %s\n", maybeColour("\033[1;31m"), maybeColour("\033[0m"), fault.Error())
	fmt.Print(fault.Report())
}

// Returns the given ANSI code when stdout is a terminal, and nothing
// otherwise.
func maybeColour(code string) string {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return code
	}
	//
	return ""
}

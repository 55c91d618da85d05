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

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/lyn-lang/go-lyn/pkg/binfile"
	"github.com/lyn-lang/go-lyn/pkg/checker"
	"github.com/lyn-lang/go-lyn/pkg/compiler"
)

// compileCmd represents the compile command.
var compileCmd = &cobra.Command{
	Use:   "compile [flags] source_file",
	Short: "Lower a source tree onto the register machine.",
	Long: `Check a source tree for linearity and, when accepted, lower it onto
the register machine, writing the sealed program as a versioned artifact
stamped with its content digest.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		output := GetString(cmd, "output")
		root := readAstFile(args[0])
		//
		judgment, errors := checker.Check(root)
		//
		if len(errors) > 0 {
			printSyntaxErrors(args[0], errors)
			os.Exit(1)
		}
		//
		program, err := compiler.Compile(judgment)
		//
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		data, err := binfile.EncodeProgram(program)
		//
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		if err := os.WriteFile(output, data, 0644); err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		log.Infof("compiled %s (digest %.16s) into %s", args[0], program.Digest().Hex(), output)
	},
}

func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().StringP("output", "o", "a.lyn.json", "specify output file")
}

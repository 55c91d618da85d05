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

	"github.com/lyn-lang/go-lyn/pkg/ast"
	"github.com/lyn-lang/go-lyn/pkg/binfile"
)

// hashCmd represents the hash command.
var hashCmd = &cobra.Command{
	Use:   "hash [flags] file",
	Short: "Report the content digest of a source tree or program.",
	Long: `Report the content digest of an interchange document.  Source trees
hash structurally (spans do not contribute), so structurally identical trees
share a digest; programs hash over their canonical instruction encoding.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		data, err := os.ReadFile(args[0])
		//
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		format, err := binfile.PeekFormat(data)
		//
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		switch format {
		case binfile.FormatAst:
			root := readAstFile(args[0])
			fmt.Println(ast.Hash(root).Hex())
		case binfile.FormatProgram:
			program := readProgramFile(args[0])
			fmt.Println(program.Digest().Hex())
		default:
			fmt.Printf("unknown document format %q\n", format)
			os.Exit(2)
		}
	},
}

func init() {
	rootCmd.AddCommand(hashCmd)
}

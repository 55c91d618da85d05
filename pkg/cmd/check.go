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

	"github.com/lyn-lang/go-lyn/pkg/checker"
)

// checkCmd represents the check command.
var checkCmd = &cobra.Command{
	Use:   "check [flags] source_file",
	Short: "Check a source tree for linearity.",
	Long: `Check a source tree for linearity: every linear binding must be
consumed exactly once along every control-flow path.  Accepted trees can be
lowered with the compile command.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		root := readAstFile(args[0])
		//
		if _, errors := checker.Check(root); len(errors) > 0 {
			printSyntaxErrors(args[0], errors)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

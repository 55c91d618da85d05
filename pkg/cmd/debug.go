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
)

// debugCmd represents the debug command.
var debugCmd = &cobra.Command{
	Use:   "debug [flags] program_file",
	Short: "Print the disassembly of a compiled program.",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		program := readProgramFile(args[0])
		//
		if GetFlag(cmd, "stats") {
			fmt.Printf("%d instructions, %d labels, %d registers, digest %.16s\n",
				program.Len(), len(program.Labels()), len(program.Registers()),
				program.Digest().Hex())
		}
		//
		fmt.Print(program.Listing())
	},
}

func init() {
	rootCmd.AddCommand(debugCmd)
	debugCmd.Flags().Bool("stats", false, "print summary statistics")
}

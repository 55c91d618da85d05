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

	"github.com/lyn-lang/go-lyn/pkg/value"
	"github.com/lyn-lang/go-lyn/pkg/vm"
	"github.com/lyn-lang/go-lyn/pkg/vm/insn"
	"github.com/lyn-lang/go-lyn/pkg/vm/io"
)

// runCmd represents the run command.
var runCmd = &cobra.Command{
	Use:   "run [flags] program_file",
	Short: "Execute a compiled program.",
	Long: `Execute a compiled program artifact to completion, printing its
result.  Witness values can be preloaded with --witness; --effects attaches
an echo handler which answers every effect with its own payload.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		var (
			oracle  io.Oracle
			effects io.EffectHandler
		)
		//
		if witnesses := GetInt64Slice(cmd, "witness"); len(witnesses) > 0 {
			oracle = newQueueOracle(witnesses)
		}
		//
		if GetFlag(cmd, "effects") {
			effects = echoHandler{}
		}
		//
		program := readProgramFile(args[0])
		machine := vm.NewMachine(program, oracle, effects)
		//
		if GetFlag(cmd, "trace") {
			machine.SetTracer(&printTracer{program.Registers()})
		}
		//
		result, fault := machine.Run()
		//
		if fault != nil {
			printFault(fault)
			os.Exit(1)
		}
		//
		fmt.Println(result.String())
		// Every allocated resource must have been consumed by now.
		if leaked := machine.State().Store.Unconsumed(); leaked > 0 {
			fmt.Printf("warning: %d unconsumed resources remain\n", leaked)
			os.Exit(1)
		}
	},
}

// queueOracle answers witness requests from a fixed queue of integers.
type queueOracle struct {
	values []value.Value
}

func newQueueOracle(witnesses []int64) *queueOracle {
	values := make([]value.Value, len(witnesses))
	//
	for i, n := range witnesses {
		values[i] = value.Int(n)
	}
	//
	return &queueOracle{values}
}

// Witness implements the oracle collaborator interface.
func (p *queueOracle) Witness() (value.Value, error) {
	if len(p.values) == 0 {
		return nil, fmt.Errorf("witness queue exhausted")
	}
	//
	next := p.values[0]
	p.values = p.values[1:]
	//
	return next, nil
}

// echoHandler answers every effect with its own payload.
type echoHandler struct{}

// Perform implements the effect collaborator interface.
func (p echoHandler) Perform(tag string, payload value.Value) (value.Value, error) {
	return payload, nil
}

// printTracer prints each executed instruction as it is stepped.
type printTracer struct {
	names io.RegisterMap
}

// Step implements the execution tracer interface.
func (p *printTracer) Step(pc uint, instruction insn.Instruction, state *io.State) {
	fmt.Printf("%04d\t%s\n", pc, instruction.String(p.names))
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().Bool("trace", false, "print each executed instruction")
	runCmd.Flags().Int64Slice("witness", nil, "preload witness oracle responses")
	runCmd.Flags().Bool("effects", false, "attach the echo effect handler")
}

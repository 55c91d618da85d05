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
package insn

import (
	"bytes"
	"fmt"

	"github.com/lyn-lang/go-lyn/pkg/value"
	"github.com/lyn-lang/go-lyn/pkg/vm/io"
)

// Return pops the top call frame and resumes at its saved return point,
// delivering the value of Result (when given) into the frame's output
// register.  The final return of the top-level program pops the sentinel
// frame and halts the machine.  Returning with no frame to pop is a
// StackUnderflow fault.
type Return struct {
	// Register holding the result (when HasResult is set).
	Result io.RegisterId
	// Whether a result register was given.
	HasResult bool
}

// Execute this instruction against a given machine state.
func (p *Return) Execute(state *io.State) (uint, *io.Fault) {
	var result value.Value = value.Unit{}
	//
	if p.HasResult {
		val, err := state.Read(p.Result)
		//
		if err != nil {
			return 0, err
		}
		//
		result = val
	}
	//
	frame, err := state.Frames.Pop()
	//
	if err != nil {
		return 0, err
	}
	//
	state.Write(frame.Out, result)
	//
	return frame.ReturnPc, nil
}

// RegistersRead returns the set of registers read by this instruction.
func (p *Return) RegistersRead() []io.RegisterId {
	if !p.HasResult {
		return nil
	}
	//
	return []io.RegisterId{p.Result}
}

// RegistersWritten returns the set of registers written by this instruction.
func (p *Return) RegistersWritten() []io.RegisterId {
	// The true destination is the popped frame's output register.
	return nil
}

// Relocate resolves any symbolic label operands into absolute offsets.
func (p *Return) Relocate(labels []uint) {}

// Validate that this instruction is well-formed.
func (p *Return) Validate(nregs uint, ncode uint) error {
	if p.HasResult && p.Result >= nregs {
		return fmt.Errorf("return register out of range")
	}
	//
	return nil
}

// Encode appends the canonical encoding of this instruction.
func (p *Return) Encode(buf *bytes.Buffer) {
	if p.HasResult {
		encodeOperands(buf, opReturn, 1, p.Result)
	} else {
		encodeOperands(buf, opReturn, 0)
	}
}

func (p *Return) String(fn io.RegisterMap) string {
	if p.HasResult {
		return fmt.Sprintf("ret %s", fn.Name(p.Result))
	}
	//
	return "ret"
}

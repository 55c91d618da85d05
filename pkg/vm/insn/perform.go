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

// Perform synchronously delegates the effect value held in Effect to the
// external effect collaborator, placing its result in Out.  Effect values
// are plain data, so the source register is read without being consumed.
type Perform struct {
	Effect io.RegisterId
	Out    io.RegisterId
}

// Execute this instruction against a given machine state.
func (p *Perform) Execute(state *io.State) (uint, *io.Fault) {
	val, err := state.Peek(p.Effect)
	//
	if err != nil {
		return 0, err
	}
	//
	effect, ok := val.(value.Effect)
	//
	if !ok {
		return 0, io.Faultf(io.TypeMismatch, "perform applied to %s", value.TypeName(val))
	}
	//
	if state.Effects == nil {
		return 0, io.Faultf(io.Collaborator, "no effect handler attached")
	}
	//
	result, herr := state.Effects.Perform(effect.Tag, effect.Payload)
	//
	if herr != nil {
		return 0, io.Faultf(io.Collaborator, "effect %s failed: %v", effect.Tag, herr)
	}
	//
	state.Write(p.Out, result)
	//
	return state.Next(), nil
}

// RegistersRead returns the set of registers read by this instruction.
func (p *Perform) RegistersRead() []io.RegisterId {
	return []io.RegisterId{p.Effect}
}

// RegistersWritten returns the set of registers written by this instruction.
func (p *Perform) RegistersWritten() []io.RegisterId {
	return []io.RegisterId{p.Out}
}

// Relocate resolves any symbolic label operands into absolute offsets.
func (p *Perform) Relocate(labels []uint) {}

// Validate that this instruction is well-formed.
func (p *Perform) Validate(nregs uint, ncode uint) error {
	if p.Effect >= nregs || p.Out >= nregs {
		return fmt.Errorf("perform register out of range")
	}
	//
	return nil
}

// Encode appends the canonical encoding of this instruction.
func (p *Perform) Encode(buf *bytes.Buffer) {
	encodeOperands(buf, opPerform, p.Effect, p.Out)
}

func (p *Perform) String(fn io.RegisterMap) string {
	return fmt.Sprintf("perf %s, %s", fn.Name(p.Out), fn.Name(p.Effect))
}

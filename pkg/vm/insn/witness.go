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

	"github.com/lyn-lang/go-lyn/pkg/vm/io"
)

// Witness synchronously invokes the external oracle collaborator, placing
// its result in Out.  Determinism of a run is relative to the sequence of
// oracle responses.
type Witness struct {
	Out io.RegisterId
}

// Execute this instruction against a given machine state.
func (p *Witness) Execute(state *io.State) (uint, *io.Fault) {
	if state.Oracle == nil {
		return 0, io.Faultf(io.Collaborator, "no witness oracle attached")
	}
	//
	val, err := state.Oracle.Witness()
	//
	if err != nil {
		return 0, io.Faultf(io.Collaborator, "witness oracle failed: %v", err)
	}
	//
	state.Write(p.Out, val)
	//
	return state.Next(), nil
}

// RegistersRead returns the set of registers read by this instruction.
func (p *Witness) RegistersRead() []io.RegisterId {
	return nil
}

// RegistersWritten returns the set of registers written by this instruction.
func (p *Witness) RegistersWritten() []io.RegisterId {
	return []io.RegisterId{p.Out}
}

// Relocate resolves any symbolic label operands into absolute offsets.
func (p *Witness) Relocate(labels []uint) {}

// Validate that this instruction is well-formed.
func (p *Witness) Validate(nregs uint, ncode uint) error {
	if p.Out >= nregs {
		return fmt.Errorf("witness register out of range")
	}
	//
	return nil
}

// Encode appends the canonical encoding of this instruction.
func (p *Witness) Encode(buf *bytes.Buffer) {
	encodeOperands(buf, opWitness, p.Out)
}

func (p *Witness) String(fn io.RegisterMap) string {
	return fmt.Sprintf("wit %s", fn.Name(p.Out))
}

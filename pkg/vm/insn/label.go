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

// Label is a no-op marker delimiting a jump or call target.  Its offset
// within the instruction stream is recorded in the program's label table.
type Label struct {
	// Index of this label within the program's label table.
	Index uint
}

// Execute this instruction against a given machine state.
func (p *Label) Execute(state *io.State) (uint, *io.Fault) {
	return state.Next(), nil
}

// RegistersRead returns the set of registers read by this instruction.
func (p *Label) RegistersRead() []io.RegisterId {
	return nil
}

// RegistersWritten returns the set of registers written by this instruction.
func (p *Label) RegistersWritten() []io.RegisterId {
	return nil
}

// Relocate resolves any symbolic label operands into absolute offsets.
func (p *Label) Relocate(labels []uint) {}

// Validate that this instruction is well-formed.
func (p *Label) Validate(nregs uint, ncode uint) error {
	return nil
}

// Encode appends the canonical encoding of this instruction.
func (p *Label) Encode(buf *bytes.Buffer) {
	encodeOperands(buf, opLabel, p.Index)
}

func (p *Label) String(fn io.RegisterMap) string {
	return fmt.Sprintf("label L%d", p.Index)
}

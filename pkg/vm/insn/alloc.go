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

// Alloc moves the value held in Val into a fresh resource store entry,
// placing the newly minted handle in Out.  Allocation always succeeds.
type Alloc struct {
	Val io.RegisterId
	Out io.RegisterId
}

// Execute this instruction against a given machine state.
func (p *Alloc) Execute(state *io.State) (uint, *io.Fault) {
	val, err := state.Read(p.Val)
	//
	if err != nil {
		return 0, err
	}
	//
	id := state.Store.Allocate(val)
	state.Write(p.Out, value.Handle{Id: id})
	//
	return state.Next(), nil
}

// RegistersRead returns the set of registers read by this instruction.
func (p *Alloc) RegistersRead() []io.RegisterId {
	return []io.RegisterId{p.Val}
}

// RegistersWritten returns the set of registers written by this instruction.
func (p *Alloc) RegistersWritten() []io.RegisterId {
	return []io.RegisterId{p.Out}
}

// Relocate resolves any symbolic label operands into absolute offsets.
func (p *Alloc) Relocate(labels []uint) {}

// Validate that this instruction is well-formed.
func (p *Alloc) Validate(nregs uint, ncode uint) error {
	if p.Val >= nregs || p.Out >= nregs {
		return fmt.Errorf("alloc register out of range")
	}
	//
	return nil
}

// Encode appends the canonical encoding of this instruction.
func (p *Alloc) Encode(buf *bytes.Buffer) {
	encodeOperands(buf, opAlloc, p.Val, p.Out)
}

func (p *Alloc) String(fn io.RegisterMap) string {
	return fmt.Sprintf("alloc %s, %s", fn.Name(p.Out), fn.Name(p.Val))
}

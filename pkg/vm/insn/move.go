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

// Move transfers a value into the destination register.  In register form
// the source register is invalidated (values move, they never copy); in
// constant form the operand is an embedded constant and no register is
// consumed.
type Move struct {
	// Source register (ignored when Const is set).
	Src io.RegisterId
	// Constant operand, or nil for register form.
	Const value.Value
	// Destination register.
	Dst io.RegisterId
}

// Execute this instruction against a given machine state.
func (p *Move) Execute(state *io.State) (uint, *io.Fault) {
	if p.Const != nil {
		state.Write(p.Dst, p.Const)
		return state.Next(), nil
	}
	//
	val, err := state.Read(p.Src)
	//
	if err != nil {
		return 0, err
	}
	//
	state.Write(p.Dst, val)
	//
	return state.Next(), nil
}

// RegistersRead returns the set of registers read by this instruction.
func (p *Move) RegistersRead() []io.RegisterId {
	if p.Const != nil {
		return nil
	}
	//
	return []io.RegisterId{p.Src}
}

// RegistersWritten returns the set of registers written by this instruction.
func (p *Move) RegistersWritten() []io.RegisterId {
	return []io.RegisterId{p.Dst}
}

// Relocate resolves any symbolic label operands into absolute offsets.  A
// constant label here is a function address produced by the compiler.
func (p *Move) Relocate(labels []uint) {
	if lbl, ok := p.Const.(value.Label); ok {
		p.Const = value.Label(labels[lbl])
	}
}

// Validate that this instruction is well-formed.
func (p *Move) Validate(nregs uint, ncode uint) error {
	if p.Const == nil && p.Src >= nregs {
		return fmt.Errorf("move source r%d out of range", p.Src)
	} else if lbl, ok := p.Const.(value.Label); ok && uint(lbl) >= ncode {
		return fmt.Errorf("move constant label @%d out of range", uint(lbl))
	} else if p.Dst >= nregs {
		return fmt.Errorf("move destination r%d out of range", p.Dst)
	}
	//
	return nil
}

// Encode appends the canonical encoding of this instruction.
func (p *Move) Encode(buf *bytes.Buffer) {
	if p.Const != nil {
		encodeOperands(buf, opMove, 1, p.Dst)
		buf.Write(value.Encode(p.Const))
	} else {
		encodeOperands(buf, opMove, 0, p.Dst, p.Src)
	}
}

func (p *Move) String(fn io.RegisterMap) string {
	if p.Const != nil {
		return fmt.Sprintf("mov %s, #%s", fn.Name(p.Dst), p.Const.String())
	}
	//
	return fmt.Sprintf("mov %s, %s", fn.Name(p.Dst), fn.Name(p.Src))
}

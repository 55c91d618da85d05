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

// Consume consumes the resource referenced by the handle in Handle, placing
// the extracted value in Out.  Both the handle register and the underlying
// store entry are invalidated; consuming twice is a DoubleConsumption fault.
type Consume struct {
	Handle io.RegisterId
	Out    io.RegisterId
}

// Execute this instruction against a given machine state.
func (p *Consume) Execute(state *io.State) (uint, *io.Fault) {
	val, err := state.Read(p.Handle)
	//
	if err != nil {
		return 0, err
	}
	//
	handle, ok := val.(value.Handle)
	//
	if !ok {
		return 0, io.Faultf(io.TypeMismatch, "consume applied to %s", value.TypeName(val))
	}
	//
	contents, err := state.Store.Consume(handle.Id)
	//
	if err != nil {
		return 0, err
	}
	//
	state.Write(p.Out, contents)
	//
	return state.Next(), nil
}

// RegistersRead returns the set of registers read by this instruction.
func (p *Consume) RegistersRead() []io.RegisterId {
	return []io.RegisterId{p.Handle}
}

// RegistersWritten returns the set of registers written by this instruction.
func (p *Consume) RegistersWritten() []io.RegisterId {
	return []io.RegisterId{p.Out}
}

// Relocate resolves any symbolic label operands into absolute offsets.
func (p *Consume) Relocate(labels []uint) {}

// Validate that this instruction is well-formed.
func (p *Consume) Validate(nregs uint, ncode uint) error {
	if p.Handle >= nregs || p.Out >= nregs {
		return fmt.Errorf("consume register out of range")
	}
	//
	return nil
}

// Encode appends the canonical encoding of this instruction.
func (p *Consume) Encode(buf *bytes.Buffer) {
	encodeOperands(buf, opConsume, p.Handle, p.Out)
}

func (p *Consume) String(fn io.RegisterMap) string {
	return fmt.Sprintf("consume %s, %s", fn.Name(p.Out), fn.Name(p.Handle))
}

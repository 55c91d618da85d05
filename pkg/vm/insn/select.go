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

// Select moves the value of either True or False (per the boolean in Cond)
// into Out.  Only the chosen source register is consumed; the unchosen
// register retains its value and validity.  Both sources must carry the same
// runtime type.  The register file is untyped, so the guard compares only
// the top-level type tags: pair components and sum payloads are not
// inspected (the two alternatives of a sum carry differing payloads by
// construction).
//
// Conservation accounting still holds: if the unchosen register holds a
// resource handle, the underlying store entry is observably discarded (a
// no-op consumption), so no resource is silently orphaned.
type Select struct {
	Cond  io.RegisterId
	True  io.RegisterId
	False io.RegisterId
	Out   io.RegisterId
}

// Execute this instruction against a given machine state.
func (p *Select) Execute(state *io.State) (uint, *io.Fault) {
	cond, err := state.Peek(p.Cond)
	//
	if err != nil {
		return 0, err
	}
	//
	b, ok := cond.(value.Bool)
	//
	if !ok {
		return 0, io.Faultf(io.TypeMismatch, "select condition is %s", value.TypeName(cond))
	}
	//
	chosen, unchosen := p.True, p.False
	//
	if !b {
		chosen, unchosen = p.False, p.True
	}
	// Observe both branches before consuming either.
	discarded, err := state.Peek(unchosen)
	//
	if err != nil {
		return 0, err
	}
	//
	val, err := state.Read(chosen)
	//
	if err != nil {
		return 0, err
	}
	//
	if !value.SameType(val, discarded) {
		return 0, io.Faultf(io.TypeMismatch, "select branches disagree (%s vs %s)",
			value.TypeName(val), value.TypeName(discarded))
	}
	// Discard the resource behind the unchosen branch, if any.
	if handle, ok := discarded.(value.Handle); ok {
		if err := state.Store.Discard(handle.Id); err != nil {
			return 0, err
		}
	}
	//
	state.Write(p.Out, val)
	//
	return state.Next(), nil
}

// RegistersRead returns the set of registers read by this instruction.
func (p *Select) RegistersRead() []io.RegisterId {
	return []io.RegisterId{p.Cond, p.True, p.False}
}

// RegistersWritten returns the set of registers written by this instruction.
func (p *Select) RegistersWritten() []io.RegisterId {
	return []io.RegisterId{p.Out}
}

// Relocate resolves any symbolic label operands into absolute offsets.
func (p *Select) Relocate(labels []uint) {}

// Validate that this instruction is well-formed.
func (p *Select) Validate(nregs uint, ncode uint) error {
	for _, reg := range []io.RegisterId{p.Cond, p.True, p.False, p.Out} {
		if reg >= nregs {
			return fmt.Errorf("select register r%d out of range", reg)
		}
	}
	//
	return nil
}

// Encode appends the canonical encoding of this instruction.
func (p *Select) Encode(buf *bytes.Buffer) {
	encodeOperands(buf, opSelect, p.Cond, p.True, p.False, p.Out)
}

func (p *Select) String(fn io.RegisterMap) string {
	return fmt.Sprintf("sel %s, %s ? %s : %s", fn.Name(p.Out),
		fn.Name(p.Cond), fn.Name(p.True), fn.Name(p.False))
}

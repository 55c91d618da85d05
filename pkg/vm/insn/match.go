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

// Match branches on the tag of the sum value held in Sum, moving its payload
// into Left or Right accordingly and jumping to the corresponding target.
// The scrutinee register is invalidated in both cases.
type Match struct {
	Sum   io.RegisterId
	Left  io.RegisterId
	Right io.RegisterId
	// Branch targets.  Symbolic label indices until relocation.
	LeftTarget  uint
	RightTarget uint
}

// Execute this instruction against a given machine state.
func (p *Match) Execute(state *io.State) (uint, *io.Fault) {
	val, err := state.Read(p.Sum)
	//
	if err != nil {
		return 0, err
	}
	//
	sum, ok := val.(value.Sum)
	//
	if !ok {
		return 0, io.Faultf(io.TypeMismatch, "match applied to %s", value.TypeName(val))
	}
	//
	if sum.Side == value.LEFT {
		state.Write(p.Left, sum.Inner)
		return p.LeftTarget, nil
	}
	//
	state.Write(p.Right, sum.Inner)
	//
	return p.RightTarget, nil
}

// RegistersRead returns the set of registers read by this instruction.
func (p *Match) RegistersRead() []io.RegisterId {
	return []io.RegisterId{p.Sum}
}

// RegistersWritten returns the set of registers written by this instruction.
func (p *Match) RegistersWritten() []io.RegisterId {
	return []io.RegisterId{p.Left, p.Right}
}

// Relocate resolves any symbolic label operands into absolute offsets.
func (p *Match) Relocate(labels []uint) {
	p.LeftTarget = labels[p.LeftTarget]
	p.RightTarget = labels[p.RightTarget]
}

// Validate that this instruction is well-formed.
func (p *Match) Validate(nregs uint, ncode uint) error {
	if p.Sum >= nregs || p.Left >= nregs || p.Right >= nregs {
		return fmt.Errorf("match register out of range")
	} else if p.LeftTarget >= ncode || p.RightTarget >= ncode {
		return fmt.Errorf("match target out of range")
	}
	//
	return nil
}

// Encode appends the canonical encoding of this instruction.
func (p *Match) Encode(buf *bytes.Buffer) {
	encodeOperands(buf, opMatch, p.Sum, p.Left, p.Right, p.LeftTarget, p.RightTarget)
}

func (p *Match) String(fn io.RegisterMap) string {
	return fmt.Sprintf("match %s, %s@%d, %s@%d", fn.Name(p.Sum),
		fn.Name(p.Left), p.LeftTarget, fn.Name(p.Right), p.RightTarget)
}

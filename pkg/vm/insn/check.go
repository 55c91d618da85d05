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

	"github.com/lyn-lang/go-lyn/pkg/vm/insn/expr"
	"github.com/lyn-lang/go-lyn/pkg/vm/io"
)

// Check evaluates a boolean constraint over the current machine state.  A
// holding constraint changes nothing; a failing one halts the machine with a
// ConstraintViolation fault.
type Check struct {
	Constraint expr.Expr
}

// Execute this instruction against a given machine state.
func (p *Check) Execute(state *io.State) (uint, *io.Fault) {
	holds, err := expr.EvalBool(p.Constraint, state)
	//
	if err != nil {
		return 0, err
	} else if !holds {
		return 0, io.Faultf(io.ConstraintViolation, "constraint %s violated", p.Constraint.String(state.Map))
	}
	//
	return state.Next(), nil
}

// RegistersRead returns the set of registers read by this instruction.
func (p *Check) RegistersRead() []io.RegisterId {
	return p.Constraint.RegistersRead()
}

// RegistersWritten returns the set of registers written by this instruction.
func (p *Check) RegistersWritten() []io.RegisterId {
	return nil
}

// Relocate resolves any symbolic label operands into absolute offsets.
func (p *Check) Relocate(labels []uint) {}

// Validate that this instruction is well-formed.
func (p *Check) Validate(nregs uint, ncode uint) error {
	for _, reg := range p.Constraint.RegistersRead() {
		if reg >= nregs {
			return fmt.Errorf("check register r%d out of range", reg)
		}
	}
	//
	return nil
}

// Encode appends the canonical encoding of this instruction.  Constraints
// are encoded via their canonical rendering under positional register names,
// which is deterministic and platform independent.
func (p *Check) Encode(buf *bytes.Buffer) {
	encodeOperands(buf, opCheck)
	buf.WriteString(p.Constraint.String(nil))
}

func (p *Check) String(fn io.RegisterMap) string {
	return fmt.Sprintf("chk %s", p.Constraint.String(fn))
}

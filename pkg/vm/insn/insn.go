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

// Package insn defines the machine's fixed instruction set.  Each of the
// eleven operations is a separate variant implementing the Instruction
// interface, carrying only register, label and constant operands; there are
// no embedded sub-programs.
package insn

import (
	"bytes"
	"encoding/binary"

	"github.com/lyn-lang/go-lyn/pkg/vm/io"
)

// Opcodes for the canonical instruction encoding.  These are part of the
// external interface (the proof-circuit layer hashes over them) and, hence,
// must never be renumbered.
const (
	opMove uint8 = iota
	opApply
	opAlloc
	opConsume
	opMatch
	opSelect
	opWitness
	opCheck
	opPerform
	opLabel
	opReturn
)

// Instruction is a single machine operation.  Executing an instruction
// consults and updates a given machine state, returning the program counter
// of the next instruction to execute (which is io.RETURN when the machine
// halts), or a fault.  One instruction completes fully before the next
// begins; there is no internal parallelism.
type Instruction interface {
	// Execute this instruction against a given machine state.
	Execute(state *io.State) (uint, *io.Fault)
	// RegistersRead returns the set of registers read by this instruction.
	RegistersRead() []io.RegisterId
	// RegistersWritten returns the set of registers written by this
	// instruction.
	RegistersWritten() []io.RegisterId
	// Relocate resolves any symbolic label operands of this instruction into
	// absolute code offsets, given the offset of each label.  Called exactly
	// once by the compiler, before the enclosing program is sealed.
	Relocate(labels []uint)
	// Validate that this instruction is well-formed with respect to a given
	// register count and code length.  This catches dangling jump targets
	// and out-of-range registers at compile time.
	Validate(nregs uint, ncode uint) error
	// Encode appends the canonical encoding of this instruction to a given
	// buffer, for content hashing.
	Encode(buf *bytes.Buffer)
	// Produce a suitable string representation of this instruction.  This is
	// primarily used for disassembly and diagnostics.
	String(fn io.RegisterMap) string
}

func encodeOperands(buf *bytes.Buffer, opcode uint8, operands ...uint) {
	var bs [4]byte
	//
	buf.WriteByte(opcode)
	//
	for _, operand := range operands {
		binary.BigEndian.PutUint32(bs[:], uint32(operand))
		buf.Write(bs[:])
	}
}

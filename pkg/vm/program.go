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
package vm

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/lyn-lang/go-lyn/pkg/value"
	"github.com/lyn-lang/go-lyn/pkg/vm/insn"
	"github.com/lyn-lang/go-lyn/pkg/vm/io"
)

// LabelEntry records the resolved offset of one named label.
type LabelEntry struct {
	// Label name, as allocated by the compiler.
	Name string
	// Absolute offset of the label marker within the code.
	Offset uint
}

// Program is the executable artifact: an ordered instruction sequence plus a
// label table and register map.  A program is built exactly once by the
// lowering compiler and never mutated afterwards; it can safely be shared
// between forked machine instances.
type Program struct {
	code      []insn.Instruction
	labels    []LabelEntry
	registers io.RegisterMap
}

// NewProgram seals a fully relocated instruction sequence into a program,
// validating every instruction against the register count and code length.
// Validation failures here are the compile-time-only error class (dangling
// labels, invalid jumps); they can never arise at runtime from a program
// this constructor accepted.
func NewProgram(code []insn.Instruction, labels []LabelEntry, registers io.RegisterMap) (*Program, error) {
	var (
		nregs = uint(len(registers))
		ncode = uint(len(code))
	)
	//
	for pc, instruction := range code {
		if err := instruction.Validate(nregs, ncode); err != nil {
			return nil, fmt.Errorf("invalid instruction at offset %d: %w", pc, err)
		}
	}
	//
	for _, label := range labels {
		if label.Offset >= ncode {
			return nil, fmt.Errorf("label %s resolves outside the program", label.Name)
		}
	}
	//
	return &Program{code, labels, registers}, nil
}

// Len returns the number of instructions in this program.
func (p *Program) Len() uint {
	return uint(len(p.code))
}

// Instruction returns the instruction at a given offset.
func (p *Program) Instruction(pc uint) insn.Instruction {
	return p.code[pc]
}

// Labels returns this program's label table.
func (p *Program) Labels() []LabelEntry {
	return p.labels
}

// LabelOffset looks up the offset of a given label by name.
func (p *Program) LabelOffset(name string) (uint, bool) {
	for _, label := range p.labels {
		if label.Name == name {
			return label.Offset, true
		}
	}
	//
	return 0, false
}

// Registers returns this program's register map.
func (p *Program) Registers() io.RegisterMap {
	return p.registers
}

// Digest computes the stable content digest of this program, covering the
// register map, the label table and the canonical encoding of every
// instruction.  Digest is a pure function of the program's structure.
func (p *Program) Digest() value.Digest {
	var buf bytes.Buffer
	//
	for _, reg := range p.registers {
		buf.WriteString(reg.Name)
		buf.WriteByte(0)
	}
	//
	for _, label := range p.labels {
		buf.WriteString(label.Name)
		buf.WriteByte(0)
		fmt.Fprintf(&buf, "%d", label.Offset)
		buf.WriteByte(0)
	}
	//
	for _, instruction := range p.code {
		instruction.Encode(&buf)
	}
	//
	return value.HashBytes(buf.Bytes())
}

// Listing renders a label-annotated disassembly of this program.
func (p *Program) Listing() string {
	var builder strings.Builder
	//
	names := make(map[uint]string)
	//
	for _, label := range p.labels {
		names[label.Offset] = label.Name
	}
	//
	for pc, instruction := range p.code {
		if name, ok := names[uint(pc)]; ok {
			fmt.Fprintf(&builder, "%s:\n", name)
		}
		//
		fmt.Fprintf(&builder, "\t%04d\t%s\n", pc, instruction.String(p.registers))
	}
	//
	return builder.String()
}

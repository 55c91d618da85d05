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

// Package compiler lowers a checker-accepted source tree onto the machine's
// instruction set.  Lowering is a deterministic, structural translation:
// each node maps to a fixed instruction template, registers are allocated
// fresh in a single left-to-right pass, and labels are resolved into
// absolute offsets once the full instruction stream length is known.
//
// Function bodies are emitted as label-delimited blocks after the top-level
// program, reached only via apply and left only via return.  Compilation of
// an accepted tree never fails for linearity reasons; it can still fail with
// ErrUnknownLabel if the tree references an undefined function.
package compiler

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/lyn-lang/go-lyn/pkg/ast"
	"github.com/lyn-lang/go-lyn/pkg/checker"
	"github.com/lyn-lang/go-lyn/pkg/vm"
	"github.com/lyn-lang/go-lyn/pkg/vm/insn"
	"github.com/lyn-lang/go-lyn/pkg/vm/io"
)

// Compile lowers an accepted judgment into a sealed, immutable program.
func Compile(judgment *checker.Judgment) (*vm.Program, error) {
	c := newCompiler()
	//
	result, err := c.lower(judgment.Root, nil)
	//
	if err != nil {
		return nil, err
	}
	//
	c.emit(&insn.Return{Result: result, HasResult: true})
	// Emit pending function bodies; emission may enqueue nested lambdas.
	for len(c.pending) > 0 {
		fn := c.pending[0]
		c.pending = c.pending[1:]
		//
		if err := c.lowerFunction(fn); err != nil {
			return nil, err
		}
	}
	//
	program, err := c.seal()
	//
	if err != nil {
		return nil, err
	}
	//
	log.Debugf("lowered %d labels into %d instructions over %d registers",
		len(c.labelNames), program.Len(), len(c.registers))
	//
	return program, nil
}

// scope is the compile-time environment: an immutable linked list from the
// innermost binding outwards.  A binding either owns a register (linear, or
// evaluated non-linear) or carries a duplicable initializer which is
// re-lowered at every use site.
type scope struct {
	parent *scope
	name   string
	// Register holding the binding's value (register bindings).
	register io.RegisterId
	// Duplicable initializer (duplicable bindings), re-lowered per use.
	dup ast.Node
	// Scope the initializer was written in, so re-lowering resolves names
	// against the definition site rather than the use site.
	defScope *scope
}

func (p *scope) bindRegister(name string, register io.RegisterId) *scope {
	return &scope{parent: p, name: name, register: register}
}

func (p *scope) bindDup(name string, dup ast.Node, defScope *scope) *scope {
	return &scope{parent: p, name: name, dup: dup, defScope: defScope}
}

func (p *scope) lookup(name string) *scope {
	for s := p; s != nil; s = s.parent {
		if s.name == name {
			return s
		}
	}
	//
	return nil
}

// pendingFn is a lambda awaiting emission as a label-delimited block.
type pendingFn struct {
	// Label delimiting the function's block.
	label uint
	fn    *ast.Lambda
	// Captures travelling in the closure's environment record, in order.
	envCaptures []string
	// Duplicable bindings visible to the body, resolved at the definition
	// site rather than captured.
	dupScope *scope
}

type compiler struct {
	code       []insn.Instruction
	labelNames []string
	registers  []io.Register
	pending    []pendingFn
	// Lambdas already assigned a label, so duplicable function bindings emit
	// one block regardless of use count.
	memo  map[*ast.Lambda]uint
	temps uint
}

func newCompiler() *compiler {
	return &compiler{
		registers: []io.Register{{Name: "%arg"}, {Name: "%env"}},
		memo:      make(map[*ast.Lambda]uint),
	}
}

// Allocate a fresh register.  Registers are never reused; each holds one
// value along one path, which keeps lowering deterministic and trivially
// free of clobbering across calls.
func (c *compiler) alloc(name string) io.RegisterId {
	id := uint(len(c.registers))
	c.registers = append(c.registers, io.Register{Name: name})
	//
	return id
}

func (c *compiler) temp() io.RegisterId {
	c.temps++
	return c.alloc(fmt.Sprintf("t%d", c.temps))
}

func (c *compiler) emit(instruction insn.Instruction) {
	c.code = append(c.code, instruction)
}

// Allocate a fresh label, returning its symbolic index.  Labels are
// allocated left to right and resolved during sealing.
func (c *compiler) newLabel(name string) uint {
	id := uint(len(c.labelNames))
	c.labelNames = append(c.labelNames, name)
	//
	return id
}

func (c *compiler) markLabel(id uint) {
	c.emit(&insn.Label{Index: id})
}

// Seal the emitted stream: resolve every symbolic label to the offset of
// its marker, relocate all instructions, and validate the result.
func (c *compiler) seal() (*vm.Program, error) {
	offsets := make([]uint, len(c.labelNames))
	marked := make([]bool, len(c.labelNames))
	//
	for pc, instruction := range c.code {
		if marker, ok := instruction.(*insn.Label); ok {
			offsets[marker.Index] = uint(pc)
			marked[marker.Index] = true
		}
	}
	//
	for id, ok := range marked {
		if !ok {
			return nil, fmt.Errorf("%w: label %s never emitted", ErrInvalidJump, c.labelNames[id])
		}
	}
	//
	for _, instruction := range c.code {
		instruction.Relocate(offsets)
	}
	//
	labels := make([]vm.LabelEntry, len(c.labelNames))
	//
	for id, name := range c.labelNames {
		labels[id] = vm.LabelEntry{Name: name, Offset: offsets[id]}
	}
	//
	return vm.NewProgram(c.code, labels, c.registers)
}

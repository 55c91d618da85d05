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
package binfile

import (
	"encoding/json"
	"fmt"

	"github.com/lyn-lang/go-lyn/pkg/vm"
	"github.com/lyn-lang/go-lyn/pkg/vm/insn"
	"github.com/lyn-lang/go-lyn/pkg/vm/io"
)

// jsonProgram is a complete compiled program artifact.  The digest is the
// program's content digest at write time and is re-verified on read, so a
// tampered or corrupted artifact is rejected before it can execute.
type jsonProgram struct {
	Header
	Registers []string          `json:"registers"`
	Labels    []jsonLabel       `json:"labels"`
	Code      []jsonInstruction `json:"code"`
	Digest    string            `json:"digest"`
}

type jsonLabel struct {
	Name   string `json:"name"`
	Offset uint   `json:"offset"`
}

// jsonInstruction mirrors the canonical binary encoding: an opcode name plus
// positional integer operands, with out-of-band fields for the two operand
// kinds which are not plain integers.
type jsonInstruction struct {
	Op   string `json:"op"`
	Args []uint `json:"args,omitempty"`
	// Constant operand (constant-form move only).
	Const *jsonValue `json:"const,omitempty"`
	// Constraint operand (check only).
	Constraint *jsonExpr `json:"constraint,omitempty"`
}

// EncodeProgram writes a compiled program as an interchange artifact.
func EncodeProgram(p *vm.Program) ([]byte, error) {
	doc := jsonProgram{
		Header: NewHeader(FormatProgram),
		Digest: p.Digest().Hex(),
	}
	//
	for _, reg := range p.Registers() {
		doc.Registers = append(doc.Registers, reg.Name)
	}
	//
	for _, label := range p.Labels() {
		doc.Labels = append(doc.Labels, jsonLabel{label.Name, label.Offset})
	}
	//
	for pc := uint(0); pc < p.Len(); pc++ {
		encoded, err := encodeInstruction(p.Instruction(pc))
		//
		if err != nil {
			return nil, err
		}
		//
		doc.Code = append(doc.Code, encoded)
	}
	//
	return json.MarshalIndent(doc, "", "  ")
}

// DecodeProgram reads a compiled program from an interchange artifact,
// re-validating it and re-verifying its content digest.
func DecodeProgram(data []byte) (*vm.Program, error) {
	if err := checkHeader(data, FormatProgram); err != nil {
		return nil, err
	}
	//
	var doc jsonProgram
	//
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("malformed program artifact: %w", err)
	}
	//
	registers := make([]io.Register, len(doc.Registers))
	//
	for i, name := range doc.Registers {
		registers[i] = io.Register{Name: name}
	}
	//
	labels := make([]vm.LabelEntry, len(doc.Labels))
	//
	for i, label := range doc.Labels {
		labels[i] = vm.LabelEntry{Name: label.Name, Offset: label.Offset}
	}
	//
	code := make([]insn.Instruction, len(doc.Code))
	//
	for pc, encoded := range doc.Code {
		decoded, err := decodeInstruction(encoded)
		//
		if err != nil {
			return nil, fmt.Errorf("instruction %d: %w", pc, err)
		}
		//
		code[pc] = decoded
	}
	//
	program, err := vm.NewProgram(code, labels, registers)
	//
	if err != nil {
		return nil, err
	}
	//
	if digest := program.Digest().Hex(); digest != doc.Digest {
		return nil, fmt.Errorf("program digest mismatch (artifact %.8s, computed %.8s)", doc.Digest, digest)
	}
	//
	return program, nil
}

func encodeInstruction(instruction insn.Instruction) (jsonInstruction, error) {
	switch t := instruction.(type) {
	case *insn.Move:
		if t.Const != nil {
			return jsonInstruction{Op: "move", Args: []uint{t.Dst}, Const: encodeValue(t.Const)}, nil
		}
		//
		return jsonInstruction{Op: "move", Args: []uint{t.Dst, t.Src}}, nil
	case *insn.Apply:
		return jsonInstruction{Op: "apply", Args: []uint{t.Fn, t.Arg, t.Out}}, nil
	case *insn.Alloc:
		return jsonInstruction{Op: "alloc", Args: []uint{t.Val, t.Out}}, nil
	case *insn.Consume:
		return jsonInstruction{Op: "consume", Args: []uint{t.Handle, t.Out}}, nil
	case *insn.Match:
		return jsonInstruction{Op: "match",
			Args: []uint{t.Sum, t.Left, t.Right, t.LeftTarget, t.RightTarget}}, nil
	case *insn.Select:
		return jsonInstruction{Op: "select", Args: []uint{t.Cond, t.True, t.False, t.Out}}, nil
	case *insn.Witness:
		return jsonInstruction{Op: "witness", Args: []uint{t.Out}}, nil
	case *insn.Check:
		return jsonInstruction{Op: "check", Constraint: encodeExpr(t.Constraint)}, nil
	case *insn.Perform:
		return jsonInstruction{Op: "perform", Args: []uint{t.Effect, t.Out}}, nil
	case *insn.Label:
		return jsonInstruction{Op: "label", Args: []uint{t.Index}}, nil
	case *insn.Return:
		if t.HasResult {
			return jsonInstruction{Op: "return", Args: []uint{t.Result}}, nil
		}
		//
		return jsonInstruction{Op: "return"}, nil
	default:
		return jsonInstruction{}, fmt.Errorf("unknown instruction %v", instruction)
	}
}

func decodeInstruction(j jsonInstruction) (insn.Instruction, error) {
	switch j.Op {
	case "move":
		if j.Const != nil {
			if err := arity(j, 1); err != nil {
				return nil, err
			}
			//
			val, err := decodeValue(j.Const)
			//
			if err != nil {
				return nil, err
			}
			//
			return &insn.Move{Const: val, Dst: j.Args[0]}, nil
		}
		//
		if err := arity(j, 2); err != nil {
			return nil, err
		}
		//
		return &insn.Move{Dst: j.Args[0], Src: j.Args[1]}, nil
	case "apply":
		if err := arity(j, 3); err != nil {
			return nil, err
		}
		//
		return &insn.Apply{Fn: j.Args[0], Arg: j.Args[1], Out: j.Args[2]}, nil
	case "alloc":
		if err := arity(j, 2); err != nil {
			return nil, err
		}
		//
		return &insn.Alloc{Val: j.Args[0], Out: j.Args[1]}, nil
	case "consume":
		if err := arity(j, 2); err != nil {
			return nil, err
		}
		//
		return &insn.Consume{Handle: j.Args[0], Out: j.Args[1]}, nil
	case "match":
		if err := arity(j, 5); err != nil {
			return nil, err
		}
		//
		return &insn.Match{Sum: j.Args[0], Left: j.Args[1], Right: j.Args[2],
			LeftTarget: j.Args[3], RightTarget: j.Args[4]}, nil
	case "select":
		if err := arity(j, 4); err != nil {
			return nil, err
		}
		//
		return &insn.Select{Cond: j.Args[0], True: j.Args[1], False: j.Args[2], Out: j.Args[3]}, nil
	case "witness":
		if err := arity(j, 1); err != nil {
			return nil, err
		}
		//
		return &insn.Witness{Out: j.Args[0]}, nil
	case "check":
		constraint, err := decodeExpr(j.Constraint)
		//
		if err != nil {
			return nil, err
		}
		//
		return &insn.Check{Constraint: constraint}, nil
	case "perform":
		if err := arity(j, 2); err != nil {
			return nil, err
		}
		//
		return &insn.Perform{Effect: j.Args[0], Out: j.Args[1]}, nil
	case "label":
		if err := arity(j, 1); err != nil {
			return nil, err
		}
		//
		return &insn.Label{Index: j.Args[0]}, nil
	case "return":
		if len(j.Args) == 0 {
			return &insn.Return{}, nil
		}
		//
		if err := arity(j, 1); err != nil {
			return nil, err
		}
		//
		return &insn.Return{Result: j.Args[0], HasResult: true}, nil
	default:
		return nil, fmt.Errorf("unknown opcode %q", j.Op)
	}
}

func arity(j jsonInstruction, n int) error {
	if len(j.Args) != n {
		return fmt.Errorf("%s expects %d operands, found %d", j.Op, n, len(j.Args))
	}
	//
	return nil
}

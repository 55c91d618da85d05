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
package binfile_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lyn-lang/go-lyn/pkg/ast"
	"github.com/lyn-lang/go-lyn/pkg/binfile"
	"github.com/lyn-lang/go-lyn/pkg/checker"
	"github.com/lyn-lang/go-lyn/pkg/compiler"
	"github.com/lyn-lang/go-lyn/pkg/util/source"
	"github.com/lyn-lang/go-lyn/pkg/value"
	"github.com/lyn-lang/go-lyn/pkg/vm"
	"github.com/lyn-lang/go-lyn/pkg/vm/insn"
	"github.com/lyn-lang/go-lyn/pkg/vm/insn/expr"
	"github.com/lyn-lang/go-lyn/pkg/vm/io"
)

var span = source.NewSpan(0, 1)

// A small document as an external frontend would produce it.
const letDocument = `{
  "format": "lyn/ast",
  "version": "1.0.0",
  "root": {
    "kind": "let",
    "span": [0, 20],
    "name": "x",
    "linear": true,
    "rhs": {"kind": "lit", "span": [8, 9], "val": {"type": "int", "int": 1}},
    "body": {"kind": "var", "span": [13, 14], "name": "x"}
  }
}`

func TestDecodeAstDocument(t *testing.T) {
	root, err := binfile.DecodeAst([]byte(letDocument))
	//
	if err != nil {
		t.Fatal(err)
	}
	// Structurally identical to the directly constructed tree.
	want := ast.NewLet(span, "x", true,
		ast.NewLit(span, value.Int(1)), ast.NewVar(span, "x"))
	//
	if ast.Hash(root) != ast.Hash(want) {
		t.Error("decoded tree differs structurally from expectation")
	}
	// Spans survive the decode.
	if root.Span().Start() != 0 || root.Span().End() != 20 {
		t.Errorf("unexpected root span %v", root.Span())
	}
}

func TestAstRoundTrip(t *testing.T) {
	// One of everything.
	root := ast.NewLet(span, "h", true,
		ast.NewAlloc(span, ast.NewLit(span, value.Int(5))),
		ast.NewLetUnit(span, ast.NewLit(span, value.Unit{}),
			ast.NewLetPair(span, "a", "b",
				ast.NewMakePair(span,
					ast.NewConsume(span, ast.NewVar(span, "h")),
					ast.NewInject(span, value.RIGHT, ast.NewLit(span, value.Bool(true)))),
				ast.NewCase(span, ast.NewVar(span, "b"),
					"l", ast.NewMakePair(span, ast.NewVar(span, "a"), ast.NewVar(span, "l")),
					"r", ast.NewApply(span,
						ast.NewLambda(span, "x", true,
							ast.NewMakePair(span, ast.NewVar(span, "a"), ast.NewVar(span, "x"))),
						ast.NewVar(span, "r"))))))
	//
	data, err := binfile.EncodeAst(root)
	//
	if err != nil {
		t.Fatal(err)
	}
	//
	decoded, err := binfile.DecodeAst(data)
	//
	if err != nil {
		t.Fatal(err)
	}
	//
	if ast.Hash(decoded) != ast.Hash(root) {
		t.Error("round trip changed the tree's structural hash")
	}
}

func TestDecodeAstWrongFormat(t *testing.T) {
	doc := strings.Replace(letDocument, "lyn/ast", "lyn/program", 1)
	//
	if _, err := binfile.DecodeAst([]byte(doc)); err == nil {
		t.Error("wrong format accepted")
	}
}

func TestDecodeAstIncompatibleVersion(t *testing.T) {
	doc := strings.Replace(letDocument, "1.0.0", "2.0.0", 1)
	//
	if _, err := binfile.DecodeAst([]byte(doc)); err == nil {
		t.Error("incompatible version accepted")
	}
}

func TestPeekFormat(t *testing.T) {
	format, err := binfile.PeekFormat([]byte(letDocument))
	//
	if err != nil {
		t.Fatal(err)
	}
	//
	if format != binfile.FormatAst {
		t.Errorf("expected %q, got %q", binfile.FormatAst, format)
	}
}

func TestProgramRoundTrip(t *testing.T) {
	root, err := binfile.DecodeAst([]byte(letDocument))
	//
	if err != nil {
		t.Fatal(err)
	}
	//
	judgment, errs := checker.Check(root)
	//
	if len(errs) > 0 {
		t.Fatalf("tree rejected: %v", errs)
	}
	//
	program, cerr := compiler.Compile(judgment)
	//
	if cerr != nil {
		t.Fatal(cerr)
	}
	//
	data, err := binfile.EncodeProgram(program)
	//
	if err != nil {
		t.Fatal(err)
	}
	//
	decoded, err := binfile.DecodeProgram(data)
	//
	if err != nil {
		t.Fatal(err)
	}
	//
	if decoded.Digest() != program.Digest() {
		t.Fatal("round trip changed the program digest")
	}
	// The decoded artifact must execute identically.
	result, fault := vm.NewMachine(decoded, nil, nil).Run()
	//
	if fault != nil {
		t.Fatal(fault)
	}
	//
	if result != value.Int(1) {
		t.Errorf("expected 1, got %s", result.String())
	}
}

func TestProgramRoundTripAllInstructions(t *testing.T) {
	registers := []io.Register{{Name: "%arg"}, {Name: "%env"}, {Name: "t1"}, {Name: "t2"}}
	labels := []vm.LabelEntry{{Name: "entry", Offset: 0}}
	//
	code := []insn.Instruction{
		&insn.Label{Index: 0},
		&insn.Move{Const: value.Int(5), Dst: 2},
		&insn.Check{Constraint: &expr.And{
			Lhs: &expr.Leq{
				Lhs: &expr.Const{Val: value.Int(0)},
				Rhs: &expr.RegAccess{Register: 2},
			},
			Rhs: &expr.Not{Arg: &expr.Eq{
				Lhs: &expr.Mul{
					Lhs: &expr.RegAccess{Register: 2},
					Rhs: &expr.Const{Val: value.Int(2)},
				},
				Rhs: &expr.Sub{
					Lhs: &expr.Const{Val: value.Int(1)},
					Rhs: &expr.Const{Val: value.Int(1)},
				},
			}},
		}},
		&insn.Alloc{Val: 2, Out: 3},
		&insn.Consume{Handle: 3, Out: 2},
		&insn.Move{Const: value.Bool(true), Dst: 3},
		&insn.Select{Cond: 3, True: 2, False: 3, Out: 2},
		&insn.Witness{Out: 3},
		&insn.Perform{Effect: 3, Out: 3},
		&insn.Move{Const: value.Sum{Side: value.LEFT, Inner: value.Unit{}}, Dst: 3},
		&insn.Match{Sum: 3, Left: 3, Right: 3, LeftTarget: 11, RightTarget: 11},
		&insn.Apply{Fn: 2, Arg: 3, Out: 2},
		&insn.Return{Result: 2, HasResult: true},
	}
	//
	program, err := vm.NewProgram(code, labels, registers)
	//
	if err != nil {
		t.Fatal(err)
	}
	//
	data, merr := binfile.EncodeProgram(program)
	//
	if merr != nil {
		t.Fatal(merr)
	}
	//
	decoded, derr := binfile.DecodeProgram(data)
	//
	if derr != nil {
		t.Fatal(derr)
	}
	//
	if decoded.Digest() != program.Digest() {
		t.Error("round trip changed the program digest")
	}
}

func TestDecodeProgramRejectsTampering(t *testing.T) {
	judgment, errs := checker.Check(ast.NewLit(span, value.Int(1)))
	//
	if len(errs) > 0 {
		t.Fatalf("tree rejected: %v", errs)
	}
	//
	program, cerr := compiler.Compile(judgment)
	//
	if cerr != nil {
		t.Fatal(cerr)
	}
	//
	data, err := binfile.EncodeProgram(program)
	//
	if err != nil {
		t.Fatal(err)
	}
	// Swap the embedded digest for that of a different value.
	var (
		digest = []byte(program.Digest().Hex())
		forged = []byte(value.Hash(value.Int(2)).Hex())
	)
	//
	tampered := bytes.Replace(data, digest, forged, 1)
	//
	if _, err := binfile.DecodeProgram(tampered); err == nil {
		t.Error("tampered artifact accepted")
	}
}

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
package compiler_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lyn-lang/go-lyn/pkg/ast"
	"github.com/lyn-lang/go-lyn/pkg/checker"
	"github.com/lyn-lang/go-lyn/pkg/compiler"
	"github.com/lyn-lang/go-lyn/pkg/util/source"
	"github.com/lyn-lang/go-lyn/pkg/value"
	"github.com/lyn-lang/go-lyn/pkg/vm"
)

var span = source.NewSpan(0, 1)

func lit(n int64) ast.Node {
	return ast.NewLit(span, value.Int(n))
}

func v(name string) ast.Node {
	return ast.NewVar(span, name)
}

func compile(t *testing.T, root ast.Node) *vm.Program {
	t.Helper()
	//
	judgment, errs := checker.Check(root)
	//
	if len(errs) > 0 {
		t.Fatalf("tree rejected: %v", errs)
	}
	//
	program, err := compiler.Compile(judgment)
	//
	if err != nil {
		t.Fatal(err)
	}
	//
	return program
}

func run(t *testing.T, root ast.Node) (value.Value, *vm.Machine) {
	t.Helper()
	//
	machine := vm.NewMachine(compile(t, root), nil, nil)
	//
	result, fault := machine.Run()
	//
	if fault != nil {
		t.Fatalf("%s\n%s", fault.Error(), fault.Report())
	}
	//
	return result, machine
}

func TestCompileLiteral(t *testing.T) {
	result, _ := run(t, lit(42))
	//
	if result != value.Int(42) {
		t.Errorf("expected 42, got %s", result.String())
	}
}

func TestCompileLet(t *testing.T) {
	result, _ := run(t, ast.NewLet(span, "x", true, lit(1), v("x")))
	//
	if result != value.Int(1) {
		t.Errorf("expected 1, got %s", result.String())
	}
}

func TestCompilePairRoundTrip(t *testing.T) {
	// let (a, b) = (1, 2) in (b, a)
	root := ast.NewLetPair(span, "a", "b",
		ast.NewMakePair(span, lit(1), lit(2)),
		ast.NewMakePair(span, v("b"), v("a")))
	//
	result, _ := run(t, root)
	//
	want := value.Pair{Fst: value.Int(2), Snd: value.Int(1)}
	//
	if diff := cmp.Diff(want, result); diff != "" {
		t.Errorf("unexpected result (-want +got):\n%s", diff)
	}
}

func TestCompileUnitElimination(t *testing.T) {
	root := ast.NewLetUnit(span, ast.NewLit(span, value.Unit{}), lit(3))
	//
	result, _ := run(t, root)
	//
	if result != value.Int(3) {
		t.Errorf("expected 3, got %s", result.String())
	}
}

func TestCompileCase(t *testing.T) {
	tests := []struct {
		name string
		side value.Side
		want value.Value
	}{
		{"left", value.LEFT, value.Int(1)},
		{"right", value.RIGHT, value.Int(2)},
	}
	//
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			// case inject(side, n) of { l => l ; r => r }
			var payload int64 = 1
			//
			if test.side == value.RIGHT {
				payload = 2
			}
			//
			root := ast.NewCase(span, ast.NewInject(span, test.side, lit(payload)),
				"l", v("l"), "r", v("r"))
			//
			result, _ := run(t, root)
			//
			if result != test.want {
				t.Errorf("expected %s, got %s", test.want.String(), result.String())
			}
		})
	}
}

func TestCompileCaseJoin(t *testing.T) {
	// Both arms fall through to the same continuation.
	root := ast.NewMakePair(span,
		ast.NewCase(span, ast.NewInject(span, value.LEFT, lit(1)),
			"l", v("l"), "r", v("r")),
		lit(9))
	//
	result, _ := run(t, root)
	//
	want := value.Pair{Fst: value.Int(1), Snd: value.Int(9)}
	//
	if diff := cmp.Diff(want, result); diff != "" {
		t.Errorf("unexpected result (-want +got):\n%s", diff)
	}
}

func TestCompileAllocConsume(t *testing.T) {
	result, machine := run(t, ast.NewConsume(span, ast.NewAlloc(span, lit(5))))
	//
	if result != value.Int(5) {
		t.Errorf("expected 5, got %s", result.String())
	}
	// Conservation: one allocation, zero survivors.
	if machine.State().Store.Len() != 1 {
		t.Errorf("expected 1 allocation, got %d", machine.State().Store.Len())
	}
	//
	if machine.State().Store.Unconsumed() != 0 {
		t.Errorf("expected 0 unconsumed, got %d", machine.State().Store.Unconsumed())
	}
}

func TestCompileApply(t *testing.T) {
	// (fn x => x) 3
	root := ast.NewApply(span, ast.NewLambda(span, "x", true, v("x")), lit(3))
	//
	result, machine := run(t, root)
	//
	if result != value.Int(3) {
		t.Errorf("expected 3, got %s", result.String())
	}
	// Only the sentinel frame remains.
	if machine.State().Frames.Len() != 0 {
		t.Errorf("call stack unbalanced: %d frames", machine.State().Frames.Len())
	}
}

func TestCompileClosure(t *testing.T) {
	// let y = 1 in (fn x => (x, y)) 2
	root := ast.NewLet(span, "y", true, lit(1),
		ast.NewApply(span,
			ast.NewLambda(span, "x", true, ast.NewMakePair(span, v("x"), v("y"))),
			lit(2)))
	//
	result, _ := run(t, root)
	//
	want := value.Pair{Fst: value.Int(2), Snd: value.Int(1)}
	//
	if diff := cmp.Diff(want, result); diff != "" {
		t.Errorf("unexpected result (-want +got):\n%s", diff)
	}
}

func TestCompileMultiCaptureClosure(t *testing.T) {
	// let a = 10 in let b = 20 in (fn x => (a, (b, x))) 1
	root := ast.NewLet(span, "a", true, lit(10),
		ast.NewLet(span, "b", true, lit(20),
			ast.NewApply(span,
				ast.NewLambda(span, "x", true,
					ast.NewMakePair(span, v("a"), ast.NewMakePair(span, v("b"), v("x")))),
				lit(1))))
	//
	result, _ := run(t, root)
	//
	want := value.Pair{
		Fst: value.Int(10),
		Snd: value.Pair{Fst: value.Int(20), Snd: value.Int(1)},
	}
	//
	if diff := cmp.Diff(want, result); diff != "" {
		t.Errorf("unexpected result (-want +got):\n%s", diff)
	}
}

func TestCompileNonLinearReuse(t *testing.T) {
	// let n = 5 in (n, n)
	root := ast.NewLet(span, "n", false, lit(5),
		ast.NewMakePair(span, v("n"), v("n")))
	//
	result, _ := run(t, root)
	//
	want := value.Pair{Fst: value.Int(5), Snd: value.Int(5)}
	//
	if diff := cmp.Diff(want, result); diff != "" {
		t.Errorf("unexpected result (-want +got):\n%s", diff)
	}
}

func TestCompileNonLinearFunctionReuse(t *testing.T) {
	// let f = (fn x => x) in f (f 7)
	root := ast.NewLet(span, "f", false, ast.NewLambda(span, "x", true, v("x")),
		ast.NewApply(span, v("f"), ast.NewApply(span, v("f"), lit(7))))
	//
	result, _ := run(t, root)
	//
	if result != value.Int(7) {
		t.Errorf("expected 7, got %s", result.String())
	}
}

func TestCompileNonLinearParameter(t *testing.T) {
	// (fn x => x) 3, with a non-linear parameter.
	root := ast.NewApply(span, ast.NewLambda(span, "x", false, v("x")), lit(3))
	//
	result, _ := run(t, root)
	//
	if result != value.Int(3) {
		t.Errorf("expected 3, got %s", result.String())
	}
}

func TestCompileNonLinearParameterDropped(t *testing.T) {
	// (fn x => 9) 3
	root := ast.NewApply(span, ast.NewLambda(span, "x", false, lit(9)), lit(3))
	//
	result, _ := run(t, root)
	//
	if result != value.Int(9) {
		t.Errorf("expected 9, got %s", result.String())
	}
}

func TestCompileLinearHandleThroughCase(t *testing.T) {
	// let h = alloc 5 in case inject(left, ()) of { l => consume h ; r => consume h }
	root := ast.NewLet(span, "h", true, ast.NewAlloc(span, lit(5)),
		ast.NewCase(span, ast.NewInject(span, value.LEFT, ast.NewLit(span, value.Unit{})),
			"l", ast.NewLetUnit(span, v("l"), ast.NewConsume(span, v("h"))),
			"r", ast.NewLetUnit(span, v("r"), ast.NewConsume(span, v("h")))))
	//
	result, machine := run(t, root)
	//
	if result != value.Int(5) {
		t.Errorf("expected 5, got %s", result.String())
	}
	//
	if machine.State().Store.Unconsumed() != 0 {
		t.Errorf("expected 0 unconsumed, got %d", machine.State().Store.Unconsumed())
	}
}

func TestCompileUnknownLabel(t *testing.T) {
	judgment, errs := checker.Check(ast.NewLit(span, value.Label(3)))
	//
	if len(errs) > 0 {
		t.Fatalf("tree rejected: %v", errs)
	}
	//
	if _, err := compiler.Compile(judgment); !errors.Is(err, compiler.ErrUnknownLabel) {
		t.Errorf("expected ErrUnknownLabel, got %v", err)
	}
}

func TestCompileDigestStable(t *testing.T) {
	build := func() *vm.Program {
		return compile(t, ast.NewLet(span, "x", true, lit(1), v("x")))
	}
	//
	if build().Digest() != build().Digest() {
		t.Error("identical trees lowered to differing digests")
	}
}

func TestCompileListing(t *testing.T) {
	root := ast.NewApply(span, ast.NewLambda(span, "x", true, v("x")), lit(3))
	listing := compile(t, root).Listing()
	//
	if listing == "" {
		t.Fatal("empty listing")
	}
}

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
package expr_test

import (
	"math"
	"testing"

	"github.com/lyn-lang/go-lyn/pkg/value"
	"github.com/lyn-lang/go-lyn/pkg/vm/insn/expr"
	"github.com/lyn-lang/go-lyn/pkg/vm/io"
)

func newState(nregs uint) *io.State {
	return io.NewState(make(io.RegisterMap, nregs), nil, nil)
}

func constant(n int64) expr.Expr {
	return &expr.Const{Val: value.Int(n)}
}

func TestEvalArithmetic(t *testing.T) {
	tests := []struct {
		name string
		e    expr.Expr
		want int64
	}{
		{"add", &expr.Add{Lhs: constant(2), Rhs: constant(3)}, 5},
		{"sub", &expr.Sub{Lhs: constant(2), Rhs: constant(3)}, -1},
		{"mul", &expr.Mul{Lhs: constant(2), Rhs: constant(3)}, 6},
		// Arithmetic wraps in two's complement.
		{"wrap", &expr.Add{Lhs: constant(math.MaxInt64), Rhs: constant(1)}, math.MinInt64},
	}
	//
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, fault := expr.EvalInt(test.e, newState(2))
			//
			if fault != nil {
				t.Fatal(fault)
			}
			//
			if got != test.want {
				t.Errorf("expected %d, got %d", test.want, got)
			}
		})
	}
}

func TestEvalComparisons(t *testing.T) {
	tests := []struct {
		name string
		e    expr.Expr
		want bool
	}{
		{"eq_true", &expr.Eq{Lhs: constant(2), Rhs: constant(2)}, true},
		{"eq_false", &expr.Eq{Lhs: constant(2), Rhs: constant(3)}, false},
		{"lt", &expr.Lt{Lhs: constant(2), Rhs: constant(3)}, true},
		{"leq", &expr.Leq{Lhs: constant(3), Rhs: constant(3)}, true},
		{"and", &expr.And{
			Lhs: &expr.Const{Val: value.Bool(true)},
			Rhs: &expr.Const{Val: value.Bool(false)},
		}, false},
		{"or", &expr.Or{
			Lhs: &expr.Const{Val: value.Bool(true)},
			Rhs: &expr.Const{Val: value.Bool(false)},
		}, true},
		{"not", &expr.Not{Arg: &expr.Const{Val: value.Bool(false)}}, true},
	}
	//
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, fault := expr.EvalBool(test.e, newState(2))
			//
			if fault != nil {
				t.Fatal(fault)
			}
			//
			if got != test.want {
				t.Errorf("expected %t, got %t", test.want, got)
			}
		})
	}
}

func TestEvalStructuralEquality(t *testing.T) {
	e := &expr.Eq{
		Lhs: &expr.Const{Val: value.Pair{Fst: value.Int(1), Snd: value.Unit{}}},
		Rhs: &expr.Const{Val: value.Pair{Fst: value.Int(1), Snd: value.Unit{}}},
	}
	//
	got, fault := expr.EvalBool(e, newState(2))
	//
	if fault != nil {
		t.Fatal(fault)
	}
	//
	if !got {
		t.Error("structurally equal values compared unequal")
	}
}

func TestEvalRegAccessPeeks(t *testing.T) {
	state := newState(4)
	state.Write(2, value.Int(7))
	//
	e := &expr.Add{Lhs: &expr.RegAccess{Register: 2}, Rhs: &expr.RegAccess{Register: 2}}
	//
	got, fault := expr.EvalInt(e, state)
	//
	if fault != nil {
		t.Fatal(fault)
	}
	//
	if got != 14 {
		t.Errorf("expected 14, got %d", got)
	}
	// Evaluation observes without consuming.
	if !state.Registers.IsValid(2) {
		t.Error("evaluation consumed the register")
	}
}

func TestEvalTypeMismatch(t *testing.T) {
	e := &expr.Add{Lhs: constant(1), Rhs: &expr.Const{Val: value.Bool(true)}}
	//
	if _, fault := expr.EvalInt(e, newState(2)); fault == nil {
		t.Fatal("adding a bool accepted")
	} else if fault.Code != io.TypeMismatch {
		t.Errorf("expected TypeMismatch, got %s", fault.Code)
	}
}

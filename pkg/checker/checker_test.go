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
package checker_test

import (
	"strings"
	"testing"

	"github.com/lyn-lang/go-lyn/pkg/ast"
	"github.com/lyn-lang/go-lyn/pkg/checker"
	"github.com/lyn-lang/go-lyn/pkg/util/source"
	"github.com/lyn-lang/go-lyn/pkg/value"
)

var span = source.NewSpan(0, 1)

func lit(n int64) ast.Node {
	return ast.NewLit(span, value.Int(n))
}

func v(name string) ast.Node {
	return ast.NewVar(span, name)
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name string
		root ast.Node
		// Expected substrings of the reported violations, in order; empty
		// means the tree is accepted.
		errors []string
	}{
		{
			name: "linear_used_once",
			root: ast.NewLet(span, "x", true, lit(1), v("x")),
		},
		{
			name:   "linear_never_consumed",
			root:   ast.NewLet(span, "x", true, lit(1), lit(2)),
			errors: []string{"x is never consumed"},
		},
		{
			name:   "linear_consumed_twice",
			root:   ast.NewLet(span, "x", true, lit(1), ast.NewMakePair(span, v("x"), v("x"))),
			errors: []string{"x consumed more than once"},
		},
		{
			name:   "unknown_variable",
			root:   v("y"),
			errors: []string{"unknown variable y"},
		},
		{
			name: "pair_elimination",
			root: ast.NewLetPair(span, "a", "b", ast.NewMakePair(span, lit(1), lit(2)),
				ast.NewMakePair(span, v("b"), v("a"))),
		},
		{
			name: "pair_component_dropped",
			root: ast.NewLetPair(span, "a", "b", ast.NewMakePair(span, lit(1), lit(2)), v("a")),
			errors: []string{"b is never consumed"},
		},
		{
			name: "case_arms_agree",
			root: ast.NewLet(span, "x", true, lit(1),
				ast.NewCase(span, ast.NewInject(span, value.LEFT, lit(0)),
					"l", ast.NewMakePair(span, v("l"), v("x")),
					"r", ast.NewMakePair(span, v("r"), v("x")))),
		},
		{
			name: "case_arms_disagree",
			root: ast.NewLet(span, "x", true, lit(1),
				ast.NewCase(span, ast.NewInject(span, value.LEFT, lit(0)),
					"l", ast.NewMakePair(span, v("l"), v("x")),
					"r", v("r"))),
			errors: []string{"x is not consumed on every path"},
		},
		{
			name: "lambda_capture_is_consumption",
			root: ast.NewLet(span, "x", true, lit(1),
				ast.NewLambda(span, "y", true, ast.NewMakePair(span, v("y"), v("x")))),
		},
		{
			name: "lambda_param_unused",
			root: ast.NewLambda(span, "y", true, lit(1)),
			errors: []string{"y is never consumed"},
		},
		{
			name: "nonlinear_param_unused",
			root: ast.NewLambda(span, "y", false, lit(1)),
		},
		{
			name: "nonlinear_param_used_once",
			root: ast.NewLambda(span, "y", false, v("y")),
		},
		{
			name:   "nonlinear_param_used_twice",
			root:   ast.NewLambda(span, "y", false, ast.NewMakePair(span, v("y"), v("y"))),
			errors: []string{"y used more than once"},
		},
		{
			// The parameter holds a runtime value, so it cannot back a
			// re-evaluable binding.
			name: "nonlinear_param_not_duplicable",
			root: ast.NewLambda(span, "y", false,
				ast.NewLet(span, "n", false, v("y"), v("n"))),
			errors: []string{"n requires a duplicable initializer"},
		},
		{
			name: "nonlinear_param_once_per_arm",
			root: ast.NewLambda(span, "y", false,
				ast.NewCase(span, ast.NewInject(span, value.LEFT, lit(0)),
					"l", ast.NewMakePair(span, v("l"), v("y")),
					"r", ast.NewMakePair(span, v("r"), v("y")))),
		},
		{
			// Spent along one arm means spent for the continuation.
			name: "nonlinear_param_spent_by_arm",
			root: ast.NewLambda(span, "y", false,
				ast.NewMakePair(span,
					ast.NewCase(span, ast.NewInject(span, value.LEFT, lit(0)),
						"l", ast.NewMakePair(span, v("l"), v("y")),
						"r", v("r")),
					v("y"))),
			errors: []string{"y used more than once"},
		},
		{
			name: "nonlinear_reused",
			root: ast.NewLet(span, "n", false, lit(5), ast.NewMakePair(span, v("n"), v("n"))),
		},
		{
			name: "nonlinear_unused",
			root: ast.NewLet(span, "n", false, lit(5), lit(1)),
		},
		{
			name:   "nonlinear_allocating_initializer",
			root:   ast.NewLet(span, "n", false, ast.NewAlloc(span, lit(5)), v("n")),
			errors: []string{"n requires a duplicable initializer"},
		},
		{
			name: "nonlinear_capture_free_lambda",
			root: ast.NewLet(span, "f", false, ast.NewLambda(span, "y", true, v("y")),
				ast.NewApply(span, v("f"), ast.NewApply(span, v("f"), lit(1)))),
		},
		{
			name: "nonlinear_capturing_lambda_rejected",
			root: ast.NewLet(span, "x", true, lit(1),
				ast.NewLet(span, "f", false, ast.NewLambda(span, "y", true,
					ast.NewMakePair(span, v("y"), v("x"))), v("f"))),
			errors: []string{"f requires a duplicable initializer"},
		},
		{
			name: "alloc_consume_roundtrip",
			root: ast.NewConsume(span, ast.NewAlloc(span, lit(5))),
		},
		{
			name: "unit_elimination",
			root: ast.NewLetUnit(span, ast.NewLit(span, value.Unit{}), lit(1)),
		},
	}
	//
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			judgment, errors := checker.Check(test.root)
			//
			if len(test.errors) == 0 {
				for _, err := range errors {
					t.Errorf("unexpected violation: %s", err.Error())
				}
				//
				if judgment == nil && len(errors) == 0 {
					t.Error("accepted tree yielded no judgment")
				}
				//
				return
			}
			//
			if judgment != nil {
				t.Fatal("rejected tree yielded a judgment")
			}
			//
			if len(errors) != len(test.errors) {
				t.Fatalf("expected %d violations, got %d", len(test.errors), len(errors))
			}
			//
			for i, want := range test.errors {
				if !strings.Contains(errors[i].Message(), want) {
					t.Errorf("violation %q does not mention %q", errors[i].Message(), want)
				}
			}
		})
	}
}

func TestCheckRecordsCaptures(t *testing.T) {
	lambda := ast.NewLambda(span, "y", true, ast.NewMakePair(span, v("y"), v("x")))
	root := ast.NewLet(span, "x", true, lit(1), lambda)
	//
	if _, errors := checker.Check(root); len(errors) > 0 {
		t.Fatalf("unexpected violations: %v", errors)
	}
	//
	captures := lambda.Attributes().Captures
	//
	if len(captures) != 1 || captures[0] != "x" {
		t.Errorf("expected captures [x], got %v", captures)
	}
}

func TestCheckAnnotatesHashes(t *testing.T) {
	root := ast.NewLet(span, "x", true, lit(1), v("x"))
	//
	if _, errors := checker.Check(root); len(errors) > 0 {
		t.Fatalf("unexpected violations: %v", errors)
	}
	//
	if root.Attributes().Hash == nil {
		t.Fatal("accepted tree not annotated")
	}
	//
	if *root.Attributes().Hash != ast.Hash(root) {
		t.Error("annotation disagrees with structural hash")
	}
}

func TestHashIgnoresSpans(t *testing.T) {
	var (
		lhs = ast.NewLet(source.NewSpan(0, 5), "x", true, lit(1), v("x"))
		rhs = ast.NewLet(source.NewSpan(9, 12), "x", true, lit(1), v("x"))
	)
	//
	if ast.Hash(lhs) != ast.Hash(rhs) {
		t.Error("spans should not contribute to the structural hash")
	}
}

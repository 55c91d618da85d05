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
	"fmt"

	"github.com/lyn-lang/go-lyn/pkg/vm/insn/expr"
)

// jsonExpr is the interchange form of a constraint expression, discriminated
// by operator name.
type jsonExpr struct {
	Op string `json:"op"`
	// Leaf payloads.
	Const    *jsonValue `json:"const,omitempty"`
	Register *uint      `json:"register,omitempty"`
	// Operands.
	Lhs *jsonExpr `json:"lhs,omitempty"`
	Rhs *jsonExpr `json:"rhs,omitempty"`
	Arg *jsonExpr `json:"arg,omitempty"`
}

func encodeExpr(e expr.Expr) *jsonExpr {
	switch t := e.(type) {
	case *expr.Const:
		return &jsonExpr{Op: "const", Const: encodeValue(t.Val)}
	case *expr.RegAccess:
		register := t.Register
		return &jsonExpr{Op: "reg", Register: &register}
	case *expr.Add:
		return &jsonExpr{Op: "add", Lhs: encodeExpr(t.Lhs), Rhs: encodeExpr(t.Rhs)}
	case *expr.Sub:
		return &jsonExpr{Op: "sub", Lhs: encodeExpr(t.Lhs), Rhs: encodeExpr(t.Rhs)}
	case *expr.Mul:
		return &jsonExpr{Op: "mul", Lhs: encodeExpr(t.Lhs), Rhs: encodeExpr(t.Rhs)}
	case *expr.Eq:
		return &jsonExpr{Op: "eq", Lhs: encodeExpr(t.Lhs), Rhs: encodeExpr(t.Rhs)}
	case *expr.Lt:
		return &jsonExpr{Op: "lt", Lhs: encodeExpr(t.Lhs), Rhs: encodeExpr(t.Rhs)}
	case *expr.Leq:
		return &jsonExpr{Op: "leq", Lhs: encodeExpr(t.Lhs), Rhs: encodeExpr(t.Rhs)}
	case *expr.And:
		return &jsonExpr{Op: "and", Lhs: encodeExpr(t.Lhs), Rhs: encodeExpr(t.Rhs)}
	case *expr.Or:
		return &jsonExpr{Op: "or", Lhs: encodeExpr(t.Lhs), Rhs: encodeExpr(t.Rhs)}
	case *expr.Not:
		return &jsonExpr{Op: "not", Arg: encodeExpr(t.Arg)}
	default:
		panic(fmt.Sprintf("unknown expression %v", e))
	}
}

func decodeExpr(j *jsonExpr) (expr.Expr, error) {
	if j == nil {
		return nil, fmt.Errorf("missing expression")
	}
	//
	switch j.Op {
	case "const":
		val, err := decodeValue(j.Const)
		//
		if err != nil {
			return nil, err
		}
		//
		return &expr.Const{Val: val}, nil
	case "reg":
		if j.Register == nil {
			return nil, fmt.Errorf("register access missing register")
		}
		//
		return &expr.RegAccess{Register: *j.Register}, nil
	case "not":
		arg, err := decodeExpr(j.Arg)
		//
		if err != nil {
			return nil, err
		}
		//
		return &expr.Not{Arg: arg}, nil
	}
	// Remaining operators are all binary.
	lhs, err := decodeExpr(j.Lhs)
	//
	if err != nil {
		return nil, err
	}
	//
	rhs, err := decodeExpr(j.Rhs)
	//
	if err != nil {
		return nil, err
	}
	//
	switch j.Op {
	case "add":
		return &expr.Add{Lhs: lhs, Rhs: rhs}, nil
	case "sub":
		return &expr.Sub{Lhs: lhs, Rhs: rhs}, nil
	case "mul":
		return &expr.Mul{Lhs: lhs, Rhs: rhs}, nil
	case "eq":
		return &expr.Eq{Lhs: lhs, Rhs: rhs}, nil
	case "lt":
		return &expr.Lt{Lhs: lhs, Rhs: rhs}, nil
	case "leq":
		return &expr.Leq{Lhs: lhs, Rhs: rhs}, nil
	case "and":
		return &expr.And{Lhs: lhs, Rhs: rhs}, nil
	case "or":
		return &expr.Or{Lhs: lhs, Rhs: rhs}, nil
	default:
		return nil, fmt.Errorf("unknown expression operator %q", j.Op)
	}
}

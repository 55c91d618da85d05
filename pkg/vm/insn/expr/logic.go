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
package expr

import (
	"fmt"

	"github.com/lyn-lang/go-lyn/pkg/value"
	"github.com/lyn-lang/go-lyn/pkg/vm/io"
)

// And is boolean conjunction.  Both operands are always evaluated, since
// evaluation is effect free.
type And struct {
	Lhs Expr
	Rhs Expr
}

// Or is boolean disjunction.
type Or struct {
	Lhs Expr
	Rhs Expr
}

// Not is boolean negation.
type Not struct {
	Arg Expr
}

// Eval evaluates this expression against a given machine state.
func (p *And) Eval(state *io.State) (value.Value, *io.Fault) {
	return evalLogic(p.Lhs, p.Rhs, state, func(l, r bool) bool { return l && r })
}

// Eval evaluates this expression against a given machine state.
func (p *Or) Eval(state *io.State) (value.Value, *io.Fault) {
	return evalLogic(p.Lhs, p.Rhs, state, func(l, r bool) bool { return l || r })
}

// Eval evaluates this expression against a given machine state.
func (p *Not) Eval(state *io.State) (value.Value, *io.Fault) {
	b, err := EvalBool(p.Arg, state)
	//
	if err != nil {
		return nil, err
	}
	//
	return value.Bool(!b), nil
}

// RegistersRead returns the set of registers read by this expression.
func (p *And) RegistersRead() []io.RegisterId {
	return merge(p.Lhs.RegistersRead(), p.Rhs.RegistersRead())
}

// RegistersRead returns the set of registers read by this expression.
func (p *Or) RegistersRead() []io.RegisterId {
	return merge(p.Lhs.RegistersRead(), p.Rhs.RegistersRead())
}

// RegistersRead returns the set of registers read by this expression.
func (p *Not) RegistersRead() []io.RegisterId {
	return p.Arg.RegistersRead()
}

func (p *And) String(fn io.RegisterMap) string {
	return fmt.Sprintf("(%s && %s)", p.Lhs.String(fn), p.Rhs.String(fn))
}

func (p *Or) String(fn io.RegisterMap) string {
	return fmt.Sprintf("(%s || %s)", p.Lhs.String(fn), p.Rhs.String(fn))
}

func (p *Not) String(fn io.RegisterMap) string {
	return fmt.Sprintf("!%s", p.Arg.String(fn))
}

func evalLogic(lhs Expr, rhs Expr, state *io.State, op func(bool, bool) bool) (value.Value, *io.Fault) {
	l, err := EvalBool(lhs, state)
	//
	if err != nil {
		return nil, err
	}
	//
	r, err := EvalBool(rhs, state)
	//
	if err != nil {
		return nil, err
	}
	//
	return value.Bool(op(l, r)), nil
}

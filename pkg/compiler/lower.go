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
package compiler

import (
	"fmt"

	"github.com/lyn-lang/go-lyn/pkg/ast"
	"github.com/lyn-lang/go-lyn/pkg/value"
	"github.com/lyn-lang/go-lyn/pkg/vm/insn"
	"github.com/lyn-lang/go-lyn/pkg/vm/io"
)

// Lower a node, returning the register holding its value.  Values flow by
// move: the returned register is owned by the consumer, which may invalidate
// it.
func (c *compiler) lower(n ast.Node, env *scope) (io.RegisterId, error) {
	switch t := n.(type) {
	case *ast.Lit:
		return c.lowerLit(t)
	case *ast.Var:
		return c.lowerVar(t, env)
	case *ast.Let:
		return c.lowerLet(t, env)
	case *ast.LetUnit:
		return c.lowerLetUnit(t, env)
	case *ast.MakePair:
		return c.lowerMakePair(t, env)
	case *ast.LetPair:
		return c.lowerLetPair(t, env)
	case *ast.Inject:
		return c.lowerInject(t, env)
	case *ast.Case:
		return c.lowerCase(t, env)
	case *ast.Lambda:
		return c.lowerLambda(t, env)
	case *ast.Apply:
		return c.lowerApply(t, env)
	case *ast.Alloc:
		return c.lowerAlloc(t, env)
	case *ast.Consume:
		return c.lowerConsume(t, env)
	default:
		panic("unknown AST node")
	}
}

func (c *compiler) lowerLit(t *ast.Lit) (io.RegisterId, error) {
	// A literal label is a function reference the compiler never minted.
	if lbl, ok := t.Val.(value.Label); ok {
		return 0, fmt.Errorf("%w: @%d", ErrUnknownLabel, uint(lbl))
	}
	//
	out := c.temp()
	c.emit(&insn.Move{Const: t.Val, Dst: out})
	//
	return out, nil
}

func (c *compiler) lowerVar(t *ast.Var, env *scope) (io.RegisterId, error) {
	s := env.lookup(t.Name)
	// The checker rejects unknown variables before lowering begins.
	if s == nil {
		panic(fmt.Sprintf("unresolved variable %s", t.Name))
	}
	// Duplicable bindings re-materialise at every use site, resolved against
	// their definition scope.
	if s.dup != nil {
		return c.lower(s.dup, s.defScope)
	}
	//
	return s.register, nil
}

func (c *compiler) lowerLet(t *ast.Let, env *scope) (io.RegisterId, error) {
	if !t.Linear {
		// Non-linear bindings are never evaluated here: each use re-lowers
		// the (duplicable, hence pure) initializer.
		return c.lower(t.Body, env.bindDup(t.Name, t.Rhs, env))
	}
	//
	rhs, err := c.lower(t.Rhs, env)
	//
	if err != nil {
		return 0, err
	}
	//
	return c.lower(t.Body, env.bindRegister(t.Name, rhs))
}

func (c *compiler) lowerLetUnit(t *ast.LetUnit, env *scope) (io.RegisterId, error) {
	rhs, err := c.lower(t.Rhs, env)
	//
	if err != nil {
		return 0, err
	}
	// Unit elimination type-checks at runtime via the ununit intrinsic.
	c.apply(insn.IntrinsicUnunit, rhs)
	//
	return c.lower(t.Body, env)
}

func (c *compiler) lowerMakePair(t *ast.MakePair, env *scope) (io.RegisterId, error) {
	fst, err := c.lower(t.Fst, env)
	//
	if err != nil {
		return 0, err
	}
	//
	snd, err := c.lower(t.Snd, env)
	//
	if err != nil {
		return 0, err
	}
	//
	return c.pairOf(fst, snd), nil
}

func (c *compiler) lowerLetPair(t *ast.LetPair, env *scope) (io.RegisterId, error) {
	rhs, err := c.lower(t.Rhs, env)
	//
	if err != nil {
		return 0, err
	}
	// Split deposits the first component in its output register and the
	// second in ENV.
	fst := c.alloc(t.FstName)
	c.emit(c.constSymbol(insn.IntrinsicSplit, fst, rhs))
	//
	snd := c.alloc(t.SndName)
	c.emit(&insn.Move{Src: io.ENV, Dst: snd})
	//
	env = env.bindRegister(t.FstName, fst).bindRegister(t.SndName, snd)
	//
	return c.lower(t.Body, env)
}

func (c *compiler) lowerInject(t *ast.Inject, env *scope) (io.RegisterId, error) {
	inner, err := c.lower(t.Inner, env)
	//
	if err != nil {
		return 0, err
	}
	//
	intrinsic := insn.IntrinsicLeft
	//
	if t.Side == value.RIGHT {
		intrinsic = insn.IntrinsicRight
	}
	//
	return c.apply(intrinsic, inner), nil
}

func (c *compiler) lowerCase(t *ast.Case, env *scope) (io.RegisterId, error) {
	scrutinee, err := c.lower(t.Scrutinee, env)
	//
	if err != nil {
		return 0, err
	}
	//
	var (
		seq   = len(c.labelNames)
		left  = c.newLabel(fmt.Sprintf("case%d_left", seq))
		right = c.newLabel(fmt.Sprintf("case%d_right", seq))
		join  = c.newLabel(fmt.Sprintf("case%d_join", seq))
		lreg  = c.alloc(t.LeftName)
		rreg  = c.alloc(t.RightName)
		out   = c.temp()
	)
	//
	c.emit(&insn.Match{
		Sum: scrutinee, Left: lreg, Right: rreg,
		LeftTarget: left, RightTarget: right,
	})
	// Left arm.
	c.markLabel(left)
	//
	lres, err := c.lower(t.LeftBody, env.bindRegister(t.LeftName, lreg))
	//
	if err != nil {
		return 0, err
	}
	//
	c.emit(&insn.Move{Src: lres, Dst: out})
	c.emitJump(join)
	// Right arm.
	c.markLabel(right)
	//
	rres, err := c.lower(t.RightBody, env.bindRegister(t.RightName, rreg))
	//
	if err != nil {
		return 0, err
	}
	//
	c.emit(&insn.Move{Src: rres, Dst: out})
	c.markLabel(join)
	//
	return out, nil
}

func (c *compiler) lowerLambda(t *ast.Lambda, env *scope) (io.RegisterId, error) {
	var (
		envCaptures []string
		dupScope    *scope
	)
	// Captures with duplicable initializers are re-materialised inside the
	// body rather than moved into the environment record.
	for _, name := range t.Attributes().Captures {
		s := env.lookup(name)
		//
		if s == nil {
			panic(fmt.Sprintf("unresolved capture %s", name))
		} else if s.dup != nil {
			dupScope = dupScope.bindDup(name, s.dup, s.defScope)
		} else {
			envCaptures = append(envCaptures, name)
		}
	}
	//
	label, ok := c.memo[t]
	//
	if !ok {
		label = c.newLabel(fmt.Sprintf("fn%d", len(c.labelNames)))
		c.memo[t] = label
		c.pending = append(c.pending, pendingFn{label, t, envCaptures, dupScope})
	}
	// Plain function: just its address.
	if len(envCaptures) == 0 {
		out := c.temp()
		c.emit(&insn.Move{Const: value.Label(label), Dst: out})
		//
		return out, nil
	}
	// Closure: pair the address with the moved-in environment record, built
	// as a right-nested chain of pairs.
	record := env.lookup(envCaptures[len(envCaptures)-1]).register
	//
	for i := len(envCaptures) - 2; i >= 0; i-- {
		record = c.pairOf(env.lookup(envCaptures[i]).register, record)
	}
	//
	address := c.temp()
	c.emit(&insn.Move{Const: value.Label(label), Dst: address})
	//
	return c.pairOf(address, record), nil
}

func (c *compiler) lowerApply(t *ast.Apply, env *scope) (io.RegisterId, error) {
	fn, err := c.lower(t.Fn, env)
	//
	if err != nil {
		return 0, err
	}
	//
	arg, err := c.lower(t.Arg, env)
	//
	if err != nil {
		return 0, err
	}
	//
	out := c.temp()
	c.emit(&insn.Apply{Fn: fn, Arg: arg, Out: out})
	//
	return out, nil
}

func (c *compiler) lowerAlloc(t *ast.Alloc, env *scope) (io.RegisterId, error) {
	inner, err := c.lower(t.Inner, env)
	//
	if err != nil {
		return 0, err
	}
	//
	out := c.temp()
	c.emit(&insn.Alloc{Val: inner, Out: out})
	//
	return out, nil
}

func (c *compiler) lowerConsume(t *ast.Consume, env *scope) (io.RegisterId, error) {
	inner, err := c.lower(t.Inner, env)
	//
	if err != nil {
		return 0, err
	}
	//
	out := c.temp()
	c.emit(&insn.Consume{Handle: inner, Out: out})
	//
	return out, nil
}

// Emit a function body as a label-delimited block: marker, prologue moving
// the calling-convention registers into allocated registers, body, return.
func (c *compiler) lowerFunction(p pendingFn) error {
	c.markLabel(p.label)
	//
	env := p.dupScope
	// Unpack the environment record first (each split refills ENV).
	if n := len(p.envCaptures); n == 1 {
		reg := c.alloc(p.envCaptures[0])
		c.emit(&insn.Move{Src: io.ENV, Dst: reg})
		env = env.bindRegister(p.envCaptures[0], reg)
	} else if n > 1 {
		cursor := c.temp()
		c.emit(&insn.Move{Src: io.ENV, Dst: cursor})
		//
		for i := 0; i < n-1; i++ {
			reg := c.alloc(p.envCaptures[i])
			c.emit(c.constSymbol(insn.IntrinsicSplit, reg, cursor))
			env = env.bindRegister(p.envCaptures[i], reg)
			//
			if i < n-2 {
				cursor = c.temp()
				c.emit(&insn.Move{Src: io.ENV, Dst: cursor})
			}
		}
		//
		last := c.alloc(p.envCaptures[n-1])
		c.emit(&insn.Move{Src: io.ENV, Dst: last})
		env = env.bindRegister(p.envCaptures[n-1], last)
	}
	// Parameter binds last, shadowing captures of the same name.
	param := c.alloc(p.fn.Param)
	c.emit(&insn.Move{Src: io.ARG, Dst: param})
	//
	result, err := c.lower(p.fn.Body, env.bindRegister(p.fn.Param, param))
	//
	if err != nil {
		return err
	}
	//
	c.emit(&insn.Return{Result: result, HasResult: true})
	//
	return nil
}

// Apply an intrinsic to a register, returning the result register.
func (c *compiler) apply(intrinsic value.Symbol, arg io.RegisterId) io.RegisterId {
	out := c.temp()
	c.emit(c.constSymbol(intrinsic, out, arg))
	//
	return out
}

// Build the application of an intrinsic symbol: materialise the symbol and
// apply it.
func (c *compiler) constSymbol(intrinsic value.Symbol, out io.RegisterId, arg io.RegisterId) insn.Instruction {
	fn := c.temp()
	c.emit(&insn.Move{Const: intrinsic, Dst: fn})
	//
	return &insn.Apply{Fn: fn, Arg: arg, Out: out}
}

// Pair two registers via the (curried) pair intrinsic.
func (c *compiler) pairOf(fst io.RegisterId, snd io.RegisterId) io.RegisterId {
	fn := c.temp()
	c.emit(&insn.Move{Const: insn.IntrinsicPair, Dst: fn})
	//
	partial := c.temp()
	c.emit(&insn.Apply{Fn: fn, Arg: fst, Out: partial})
	//
	out := c.temp()
	c.emit(&insn.Apply{Fn: partial, Arg: snd, Out: out})
	//
	return out
}

// Synthesise an unconditional jump: match on a constant left injection with
// both targets equal.
func (c *compiler) emitJump(target uint) {
	var (
		cond    = c.temp()
		scratch = c.temp()
	)
	//
	c.emit(&insn.Move{Const: value.Sum{Side: value.LEFT, Inner: value.Unit{}}, Dst: cond})
	c.emit(&insn.Match{
		Sum: cond, Left: scratch, Right: scratch,
		LeftTarget: target, RightTarget: target,
	})
}

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

// Package checker implements the static linearity analysis.  A single pass
// over the source tree maintains, per lexical scope, a usage count for every
// binding; a linear binding must be referenced exactly once along every
// control-flow path from its introduction to the end of its scope.
// Non-linear let bindings must have duplicable initializers, and non-linear
// lambda parameters (which hold runtime values) admit at most one use per
// path.  Accepted trees are annotated with per-node content hashes and
// per-lambda capture sets, which the lowering compiler consumes.
package checker

import (
	log "github.com/sirupsen/logrus"

	"github.com/lyn-lang/go-lyn/pkg/ast"
	"github.com/lyn-lang/go-lyn/pkg/util/source"
)

// Judgment is the positive result of the analysis: the (annotated) tree was
// accepted and may be lowered.
type Judgment struct {
	// Root of the accepted tree.
	Root ast.Node
}

// Check runs the linearity analysis over a given source tree.  It returns
// either a positive judgment, or the accumulated violations naming each
// offending binding and its location.
func Check(root ast.Node) (*Judgment, []source.SyntaxError) {
	c := &checker{}
	//
	c.check(root)
	//
	if len(c.errors) > 0 {
		log.Debugf("linearity checker rejected program (%d violations)", len(c.errors))
		return nil, c.errors
	}
	//
	annotate(root)
	//
	return &Judgment{root}, nil
}

// binding records the in-scope state of one name.
type binding struct {
	name   string
	linear bool
	// Whether this binding is a lambda parameter.  Parameters hold runtime
	// values in a single move-once register, so even a non-linear parameter
	// admits at most one use along any path and is never duplicable.
	param bool
	// Span of the introducing form, for diagnostics.
	span source.Span
	// Number of references along the path currently being checked.
	uses uint
}

// lambdaFrame tracks one lambda whose body is currently being checked, so
// references reaching outside it can be recorded as captures.
type lambdaFrame struct {
	// Index into the environment below which references are captures.
	boundary int
	// Ordered capture set, in first-reference order.
	captures []string
	seen     map[string]bool
}

type checker struct {
	errors []source.SyntaxError
	// Lexical environment, innermost binding last.
	env []*binding
	// Active lambda frames, innermost last.
	lambdas []*lambdaFrame
}

func (c *checker) check(n ast.Node) {
	switch t := n.(type) {
	case *ast.Lit:
		// Literals reference nothing.
	case *ast.Var:
		c.checkVar(t)
	case *ast.Let:
		c.check(t.Rhs)
		//
		if !t.Linear && !duplicable(t.Rhs, c) {
			c.errorf(t.Span(), "non-linear binding %s requires a duplicable initializer", t.Name)
		}
		//
		c.scoped(t.Body, &binding{t.Name, t.Linear, false, t.Span(), 0})
	case *ast.LetUnit:
		c.check(t.Rhs)
		c.check(t.Body)
	case *ast.MakePair:
		c.check(t.Fst)
		c.check(t.Snd)
	case *ast.LetPair:
		c.check(t.Rhs)
		c.scoped(t.Body,
			&binding{t.FstName, true, false, t.Span(), 0},
			&binding{t.SndName, true, false, t.Span(), 0})
	case *ast.Inject:
		c.check(t.Inner)
	case *ast.Case:
		c.checkCase(t)
	case *ast.Lambda:
		c.checkLambda(t)
	case *ast.Apply:
		c.check(t.Fn)
		c.check(t.Arg)
	case *ast.Alloc:
		c.check(t.Inner)
	case *ast.Consume:
		c.check(t.Inner)
	default:
		panic("unknown AST node")
	}
}

func (c *checker) checkVar(t *ast.Var) {
	index := c.lookup(t.Name)
	//
	if index < 0 {
		c.errorf(t.Span(), "unknown variable %s", t.Name)
		return
	}
	//
	b := c.env[index]
	// Record captures for every lambda the reference escapes.
	for _, frame := range c.lambdas {
		if index < frame.boundary && !frame.seen[t.Name] {
			frame.seen[t.Name] = true
			frame.captures = append(frame.captures, t.Name)
		}
	}
	//
	if b.linear {
		b.uses++
		//
		if b.uses > 1 {
			c.errorf(t.Span(), "linear binding %s consumed more than once", t.Name)
		}
	} else if b.param {
		b.uses++
		//
		if b.uses > 1 {
			c.errorf(t.Span(), "non-linear parameter %s used more than once", t.Name)
		}
	}
}

// Both arms are checked against the same incoming usage counts, and every
// outer linear binding must end up consumed identically along each.
func (c *checker) checkCase(t *ast.Case) {
	c.check(t.Scrutinee)
	//
	before := c.snapshot()
	//
	c.scoped(t.LeftBody, &binding{t.LeftName, true, false, t.Span(), 0})
	afterLeft := c.snapshot()
	//
	c.restore(before)
	c.scoped(t.RightBody, &binding{t.RightName, true, false, t.Span(), 0})
	//
	for i, b := range c.env {
		if b.linear && afterLeft[i] != b.uses {
			c.errorf(t.Span(), "linear binding %s is not consumed on every path", b.name)
			// Settle on the larger count to avoid a cascade at scope end.
			b.uses = max(b.uses, afterLeft[i])
		} else if !b.linear && b.param {
			// A parameter spent along either arm stays spent for the
			// continuation.
			b.uses = max(b.uses, afterLeft[i])
		}
	}
}

// A lambda body is checked in the same counting environment: capturing an
// enclosing linear binding moves it into the closure and is that binding's
// single consumption.  The parameter arrives in a register either way, so a
// non-linear parameter is still use-counted (at most once per path).
func (c *checker) checkLambda(t *ast.Lambda) {
	frame := &lambdaFrame{boundary: len(c.env), seen: make(map[string]bool)}
	//
	c.lambdas = append(c.lambdas, frame)
	c.scoped(t.Body, &binding{t.Param, t.Linear, true, t.Span(), 0})
	c.lambdas = c.lambdas[:len(c.lambdas)-1]
	//
	t.Attributes().Captures = frame.captures
}

// Check a subtree with additional bindings in scope, enforcing that each
// linear one was consumed exactly once by the end of its scope.
func (c *checker) scoped(body ast.Node, bindings ...*binding) {
	c.env = append(c.env, bindings...)
	c.check(body)
	c.env = c.env[:len(c.env)-len(bindings)]
	//
	for _, b := range bindings {
		if b.linear && b.uses == 0 {
			c.errorf(b.span, "linear binding %s is never consumed", b.name)
		}
	}
}

func (c *checker) lookup(name string) int {
	for i := len(c.env) - 1; i >= 0; i-- {
		if c.env[i].name == name {
			return i
		}
	}
	//
	return -1
}

func (c *checker) snapshot() []uint {
	uses := make([]uint, len(c.env))
	//
	for i, b := range c.env {
		uses[i] = b.uses
	}
	//
	return uses
}

func (c *checker) restore(uses []uint) {
	for i := range uses {
		c.env[i].uses = uses[i]
	}
}

func (c *checker) errorf(span source.Span, format string, args ...any) {
	c.errors = append(c.errors, *source.ErrSyntaxf(span, format, args...))
}

// Every node of an accepted tree is annotated with its content hash, for
// consumption by external caching layers.
func annotate(n ast.Node) {
	hash := ast.Hash(n)
	n.Attributes().Hash = &hash
	//
	for _, child := range children(n) {
		annotate(child)
	}
}

func children(n ast.Node) []ast.Node {
	switch t := n.(type) {
	case *ast.Lit, *ast.Var:
		return nil
	case *ast.Let:
		return []ast.Node{t.Rhs, t.Body}
	case *ast.LetUnit:
		return []ast.Node{t.Rhs, t.Body}
	case *ast.MakePair:
		return []ast.Node{t.Fst, t.Snd}
	case *ast.LetPair:
		return []ast.Node{t.Rhs, t.Body}
	case *ast.Inject:
		return []ast.Node{t.Inner}
	case *ast.Case:
		return []ast.Node{t.Scrutinee, t.LeftBody, t.RightBody}
	case *ast.Lambda:
		return []ast.Node{t.Body}
	case *ast.Apply:
		return []ast.Node{t.Fn, t.Arg}
	case *ast.Alloc:
		return []ast.Node{t.Inner}
	case *ast.Consume:
		return []ast.Node{t.Inner}
	default:
		panic("unknown AST node")
	}
}

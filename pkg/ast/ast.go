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

// Package ast defines the source tree over the eleven source primitives:
// variable, let, unit elimination, tensor introduction/elimination, sum
// introduction/elimination, lambda, apply, alloc and consume (literals cover
// the value form, including unit introduction).  Trees are supplied by an
// external builder, pass once through the linearity checker (which annotates
// them) and once through the lowering compiler.
package ast

import (
	"github.com/lyn-lang/go-lyn/pkg/util/source"
	"github.com/lyn-lang/go-lyn/pkg/value"
)

// Node is a single node of the source tree.
type Node interface {
	// Span returns the span of surface text this node was built from.
	Span() source.Span
	// Attributes returns this node's (mutable) annotation slot, filled in by
	// the linearity checker.
	Attributes() *Attributes
}

// Attributes are the per-node facts recorded by the linearity checker and
// consumed by the lowering compiler.
type Attributes struct {
	// Content hash of the (checked) subtree rooted at this node.
	Hash *value.Digest
	// For lambdas: the ordered set of enclosing bindings the body captures.
	// Captures are moved into the closure's environment record.
	Captures []string
}

type node struct {
	span  source.Span
	attrs Attributes
}

// Span returns the span of surface text this node was built from.
func (p *node) Span() source.Span {
	return p.span
}

// Attributes returns this node's (mutable) annotation slot.
func (p *node) Attributes() *Attributes {
	return &p.attrs
}

// Lit is a literal value, including the unit introduction form.
type Lit struct {
	node
	Val value.Value
}

// Var references a binding in scope.  Referencing a linear binding is the
// single consumption the checker accounts for.
type Var struct {
	node
	Name string
}

// Let binds the value of Rhs to Name within Body.  Linear declares the
// binding's kind: linear bindings must be consumed exactly once along every
// path through Body.
type Let struct {
	node
	Name   string
	Linear bool
	Rhs    Node
	Body   Node
}

// LetUnit eliminates the unit value of Rhs, then evaluates Body.
type LetUnit struct {
	node
	Rhs  Node
	Body Node
}

// MakePair is the tensor introduction form.
type MakePair struct {
	node
	Fst Node
	Snd Node
}

// LetPair is the tensor elimination form, binding the two components of Rhs
// within Body.  Both component bindings are linear: a tensor is eliminated
// by consuming both halves.
type LetPair struct {
	node
	FstName string
	SndName string
	Rhs     Node
	Body    Node
}

// Inject is the sum introduction form, injecting Inner into the given side.
type Inject struct {
	node
	Side  value.Side
	Inner Node
}

// Case is the sum elimination form.  Exactly one arm runs; the checker
// requires each outer linear binding to be consumed identically along both.
// Both arm binders are linear.
type Case struct {
	node
	Scrutinee Node
	LeftName  string
	LeftBody  Node
	RightName string
	RightBody Node
}

// Lambda is a function literal with a single parameter.  Enclosing bindings
// referenced by the body are captured by move into the closure's environment
// record.
type Lambda struct {
	node
	Param  string
	Linear bool
	Body   Node
}

// Apply applies the function value of Fn to the argument value of Arg.
type Apply struct {
	node
	Fn  Node
	Arg Node
}

// Alloc moves the value of Inner into a fresh linear resource, yielding its
// handle.
type Alloc struct {
	node
	Inner Node
}

// Consume consumes the resource referenced by the handle value of Inner,
// yielding the stored value.
type Consume struct {
	node
	Inner Node
}

// NewLit constructs a literal node.
func NewLit(span source.Span, val value.Value) *Lit {
	return &Lit{node{span: span}, val}
}

// NewVar constructs a variable reference node.
func NewVar(span source.Span, name string) *Var {
	return &Var{node{span: span}, name}
}

// NewLet constructs a let binding node.
func NewLet(span source.Span, name string, linear bool, rhs Node, body Node) *Let {
	return &Let{node{span: span}, name, linear, rhs, body}
}

// NewLetUnit constructs a unit elimination node.
func NewLetUnit(span source.Span, rhs Node, body Node) *LetUnit {
	return &LetUnit{node{span: span}, rhs, body}
}

// NewMakePair constructs a tensor introduction node.
func NewMakePair(span source.Span, fst Node, snd Node) *MakePair {
	return &MakePair{node{span: span}, fst, snd}
}

// NewLetPair constructs a tensor elimination node.
func NewLetPair(span source.Span, fstName string, sndName string, rhs Node, body Node) *LetPair {
	return &LetPair{node{span: span}, fstName, sndName, rhs, body}
}

// NewInject constructs a sum introduction node.
func NewInject(span source.Span, side value.Side, inner Node) *Inject {
	return &Inject{node{span: span}, side, inner}
}

// NewCase constructs a sum elimination node.
func NewCase(span source.Span, scrutinee Node, leftName string, leftBody Node,
	rightName string, rightBody Node) *Case {
	return &Case{node{span: span}, scrutinee, leftName, leftBody, rightName, rightBody}
}

// NewLambda constructs a function literal node.
func NewLambda(span source.Span, param string, linear bool, body Node) *Lambda {
	return &Lambda{node{span: span}, param, linear, body}
}

// NewApply constructs an application node.
func NewApply(span source.Span, fn Node, arg Node) *Apply {
	return &Apply{node{span: span}, fn, arg}
}

// NewAlloc constructs a resource introduction node.
func NewAlloc(span source.Span, inner Node) *Alloc {
	return &Alloc{node{span: span}, inner}
}

// NewConsume constructs a resource elimination node.
func NewConsume(span source.Span, inner Node) *Consume {
	return &Consume{node{span: span}, inner}
}

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
package ast

import (
	"bytes"
	"fmt"

	"github.com/lyn-lang/go-lyn/pkg/value"
)

// Node tag bytes for the canonical tree encoding.  Must never be renumbered.
const (
	tagLit uint8 = iota
	tagVar
	tagLet
	tagLetUnit
	tagMakePair
	tagLetPair
	tagInject
	tagCase
	tagLambda
	tagApply
	tagAlloc
	tagConsume
)

// Hash computes the content digest of the subtree rooted at a given node.
// Hash is a pure, structural function: spans and annotations do not
// contribute, so structurally identical trees hash identically.
func Hash(n Node) value.Digest {
	var buf bytes.Buffer
	//
	encode(&buf, n)
	//
	return value.HashBytes(buf.Bytes())
}

func encode(buf *bytes.Buffer, n Node) {
	switch t := n.(type) {
	case *Lit:
		buf.WriteByte(tagLit)
		buf.Write(value.Encode(t.Val))
	case *Var:
		buf.WriteByte(tagVar)
		encodeName(buf, t.Name)
	case *Let:
		buf.WriteByte(tagLet)
		encodeBool(buf, t.Linear)
		encodeName(buf, t.Name)
		encode(buf, t.Rhs)
		encode(buf, t.Body)
	case *LetUnit:
		buf.WriteByte(tagLetUnit)
		encode(buf, t.Rhs)
		encode(buf, t.Body)
	case *MakePair:
		buf.WriteByte(tagMakePair)
		encode(buf, t.Fst)
		encode(buf, t.Snd)
	case *LetPair:
		buf.WriteByte(tagLetPair)
		encodeName(buf, t.FstName)
		encodeName(buf, t.SndName)
		encode(buf, t.Rhs)
		encode(buf, t.Body)
	case *Inject:
		buf.WriteByte(tagInject)
		buf.WriteByte(uint8(t.Side))
		encode(buf, t.Inner)
	case *Case:
		buf.WriteByte(tagCase)
		encode(buf, t.Scrutinee)
		encodeName(buf, t.LeftName)
		encode(buf, t.LeftBody)
		encodeName(buf, t.RightName)
		encode(buf, t.RightBody)
	case *Lambda:
		buf.WriteByte(tagLambda)
		encodeBool(buf, t.Linear)
		encodeName(buf, t.Param)
		encode(buf, t.Body)
	case *Apply:
		buf.WriteByte(tagApply)
		encode(buf, t.Fn)
		encode(buf, t.Arg)
	case *Alloc:
		buf.WriteByte(tagAlloc)
		encode(buf, t.Inner)
	case *Consume:
		buf.WriteByte(tagConsume)
		encode(buf, t.Inner)
	default:
		panic(fmt.Sprintf("unknown AST node %v", n))
	}
}

func encodeName(buf *bytes.Buffer, name string) {
	buf.WriteString(name)
	buf.WriteByte(0)
}

func encodeBool(buf *bytes.Buffer, b bool) {
	if b {
		buf.WriteByte(1)
	} else {
		buf.WriteByte(0)
	}
}

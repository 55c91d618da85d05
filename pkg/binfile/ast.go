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
	"encoding/json"
	"fmt"

	"github.com/lyn-lang/go-lyn/pkg/ast"
	"github.com/lyn-lang/go-lyn/pkg/util/source"
)

// jsonAst is a complete source tree document.
type jsonAst struct {
	Header
	Root *jsonNode `json:"root"`
}

// jsonNode is the interchange form of one source node, discriminated by
// kind.  Spans are [start, end) byte offsets into the original source text.
type jsonNode struct {
	Kind string `json:"kind"`
	Span [2]int `json:"span"`
	// Literal payload.
	Val *jsonValue `json:"val,omitempty"`
	// Binder names.
	Name      string `json:"name,omitempty"`
	FstName   string `json:"fst_name,omitempty"`
	SndName   string `json:"snd_name,omitempty"`
	LeftName  string `json:"left_name,omitempty"`
	RightName string `json:"right_name,omitempty"`
	Param     string `json:"param,omitempty"`
	Linear    bool   `json:"linear,omitempty"`
	Side      string `json:"side,omitempty"`
	// Children.
	Rhs       *jsonNode `json:"rhs,omitempty"`
	Body      *jsonNode `json:"body,omitempty"`
	Fst       *jsonNode `json:"fst,omitempty"`
	Snd       *jsonNode `json:"snd,omitempty"`
	Inner     *jsonNode `json:"inner,omitempty"`
	Scrutinee *jsonNode `json:"scrutinee,omitempty"`
	LeftBody  *jsonNode `json:"left_body,omitempty"`
	RightBody *jsonNode `json:"right_body,omitempty"`
	Fn        *jsonNode `json:"fn,omitempty"`
	Arg       *jsonNode `json:"arg,omitempty"`
}

// DecodeAst reads a source tree from its interchange document.
func DecodeAst(data []byte) (ast.Node, error) {
	if err := checkHeader(data, FormatAst); err != nil {
		return nil, err
	}
	//
	var doc jsonAst
	//
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("malformed source document: %w", err)
	}
	//
	return decodeNode(doc.Root)
}

// EncodeAst writes a source tree as an interchange document.
func EncodeAst(root ast.Node) ([]byte, error) {
	doc := jsonAst{Header: NewHeader(FormatAst), Root: encodeNode(root)}
	//
	return json.MarshalIndent(doc, "", "  ")
}

func decodeNode(j *jsonNode) (ast.Node, error) {
	if j == nil {
		return nil, fmt.Errorf("missing node")
	}
	//
	span := source.NewSpan(j.Span[0], j.Span[1])
	//
	switch j.Kind {
	case "lit":
		val, err := decodeValue(j.Val)
		//
		if err != nil {
			return nil, err
		}
		//
		return ast.NewLit(span, val), nil
	case "var":
		return ast.NewVar(span, j.Name), nil
	case "let":
		rhs, body, err := decodePair(j.Rhs, j.Body)
		//
		if err != nil {
			return nil, err
		}
		//
		return ast.NewLet(span, j.Name, j.Linear, rhs, body), nil
	case "let_unit":
		rhs, body, err := decodePair(j.Rhs, j.Body)
		//
		if err != nil {
			return nil, err
		}
		//
		return ast.NewLetUnit(span, rhs, body), nil
	case "pair":
		fst, snd, err := decodePair(j.Fst, j.Snd)
		//
		if err != nil {
			return nil, err
		}
		//
		return ast.NewMakePair(span, fst, snd), nil
	case "let_pair":
		rhs, body, err := decodePair(j.Rhs, j.Body)
		//
		if err != nil {
			return nil, err
		}
		//
		return ast.NewLetPair(span, j.FstName, j.SndName, rhs, body), nil
	case "inject":
		side, err := decodeSide(&j.Side)
		//
		if err != nil {
			return nil, err
		}
		//
		inner, err := decodeNode(j.Inner)
		//
		if err != nil {
			return nil, err
		}
		//
		return ast.NewInject(span, side, inner), nil
	case "case":
		scrutinee, err := decodeNode(j.Scrutinee)
		//
		if err != nil {
			return nil, err
		}
		//
		left, right, err := decodePair(j.LeftBody, j.RightBody)
		//
		if err != nil {
			return nil, err
		}
		//
		return ast.NewCase(span, scrutinee, j.LeftName, left, j.RightName, right), nil
	case "lambda":
		body, err := decodeNode(j.Body)
		//
		if err != nil {
			return nil, err
		}
		//
		return ast.NewLambda(span, j.Param, j.Linear, body), nil
	case "apply":
		fn, arg, err := decodePair(j.Fn, j.Arg)
		//
		if err != nil {
			return nil, err
		}
		//
		return ast.NewApply(span, fn, arg), nil
	case "alloc":
		inner, err := decodeNode(j.Inner)
		//
		if err != nil {
			return nil, err
		}
		//
		return ast.NewAlloc(span, inner), nil
	case "consume":
		inner, err := decodeNode(j.Inner)
		//
		if err != nil {
			return nil, err
		}
		//
		return ast.NewConsume(span, inner), nil
	default:
		return nil, fmt.Errorf("unknown node kind %q", j.Kind)
	}
}

func decodePair(fst *jsonNode, snd *jsonNode) (ast.Node, ast.Node, error) {
	lhs, err := decodeNode(fst)
	//
	if err != nil {
		return nil, nil, err
	}
	//
	rhs, err := decodeNode(snd)
	//
	if err != nil {
		return nil, nil, err
	}
	//
	return lhs, rhs, nil
}

func encodeNode(n ast.Node) *jsonNode {
	span := n.Span()
	j := &jsonNode{Span: [2]int{span.Start(), span.End()}}
	//
	switch t := n.(type) {
	case *ast.Lit:
		j.Kind = "lit"
		j.Val = encodeValue(t.Val)
	case *ast.Var:
		j.Kind = "var"
		j.Name = t.Name
	case *ast.Let:
		j.Kind = "let"
		j.Name = t.Name
		j.Linear = t.Linear
		j.Rhs = encodeNode(t.Rhs)
		j.Body = encodeNode(t.Body)
	case *ast.LetUnit:
		j.Kind = "let_unit"
		j.Rhs = encodeNode(t.Rhs)
		j.Body = encodeNode(t.Body)
	case *ast.MakePair:
		j.Kind = "pair"
		j.Fst = encodeNode(t.Fst)
		j.Snd = encodeNode(t.Snd)
	case *ast.LetPair:
		j.Kind = "let_pair"
		j.FstName = t.FstName
		j.SndName = t.SndName
		j.Rhs = encodeNode(t.Rhs)
		j.Body = encodeNode(t.Body)
	case *ast.Inject:
		j.Kind = "inject"
		j.Side = t.Side.String()
		j.Inner = encodeNode(t.Inner)
	case *ast.Case:
		j.Kind = "case"
		j.Scrutinee = encodeNode(t.Scrutinee)
		j.LeftName = t.LeftName
		j.LeftBody = encodeNode(t.LeftBody)
		j.RightName = t.RightName
		j.RightBody = encodeNode(t.RightBody)
	case *ast.Lambda:
		j.Kind = "lambda"
		j.Param = t.Param
		j.Linear = t.Linear
		j.Body = encodeNode(t.Body)
	case *ast.Apply:
		j.Kind = "apply"
		j.Fn = encodeNode(t.Fn)
		j.Arg = encodeNode(t.Arg)
	case *ast.Alloc:
		j.Kind = "alloc"
		j.Inner = encodeNode(t.Inner)
	case *ast.Consume:
		j.Kind = "consume"
		j.Inner = encodeNode(t.Inner)
	default:
		panic(fmt.Sprintf("unknown AST node %v", n))
	}
	//
	return j
}

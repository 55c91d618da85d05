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

	"github.com/lyn-lang/go-lyn/pkg/value"
)

// jsonValue is the interchange form of a machine value, discriminated by its
// type name.  Handles never appear in programs or source trees, but the
// codec is total over the value domain regardless.
type jsonValue struct {
	Type string `json:"type"`
	// Scalar payloads.
	Int    *int64  `json:"int,omitempty"`
	Bool   *bool   `json:"bool,omitempty"`
	Symbol *string `json:"symbol,omitempty"`
	Label  *uint   `json:"label,omitempty"`
	// Composite payloads.
	Fst   *jsonValue `json:"fst,omitempty"`
	Snd   *jsonValue `json:"snd,omitempty"`
	Side  *string    `json:"side,omitempty"`
	Inner *jsonValue `json:"inner,omitempty"`
	// Effect payload.
	Tag     *string    `json:"tag,omitempty"`
	Payload *jsonValue `json:"payload,omitempty"`
	// Handle payload.
	Index  *uint32 `json:"index,omitempty"`
	Digest *string `json:"digest,omitempty"`
}

func encodeValue(v value.Value) *jsonValue {
	j := &jsonValue{Type: value.TypeName(v)}
	//
	switch t := v.(type) {
	case value.Unit:
		// No payload.
	case value.Bool:
		b := bool(t)
		j.Bool = &b
	case value.Int:
		n := int64(t)
		j.Int = &n
	case value.Symbol:
		s := string(t)
		j.Symbol = &s
	case value.Pair:
		j.Fst = encodeValue(t.Fst)
		j.Snd = encodeValue(t.Snd)
	case value.Sum:
		side := t.Side.String()
		j.Side = &side
		j.Inner = encodeValue(t.Inner)
	case value.Label:
		n := uint(t)
		j.Label = &n
	case value.Handle:
		index, digest := t.Id.Index, t.Id.Digest.Hex()
		j.Index = &index
		j.Digest = &digest
	case value.Effect:
		tag := t.Tag
		j.Tag = &tag
		j.Payload = encodeValue(t.Payload)
	default:
		panic(fmt.Sprintf("unknown value %v", v))
	}
	//
	return j
}

func decodeValue(j *jsonValue) (value.Value, error) {
	if j == nil {
		return nil, fmt.Errorf("missing value")
	}
	//
	switch j.Type {
	case "unit":
		return value.Unit{}, nil
	case "bool":
		if j.Bool == nil {
			return nil, fmt.Errorf("bool value missing payload")
		}
		//
		return value.Bool(*j.Bool), nil
	case "int":
		if j.Int == nil {
			return nil, fmt.Errorf("int value missing payload")
		}
		//
		return value.Int(*j.Int), nil
	case "symbol":
		if j.Symbol == nil {
			return nil, fmt.Errorf("symbol value missing payload")
		}
		//
		return value.Symbol(*j.Symbol), nil
	case "pair":
		fst, err := decodeValue(j.Fst)
		//
		if err != nil {
			return nil, err
		}
		//
		snd, err := decodeValue(j.Snd)
		//
		if err != nil {
			return nil, err
		}
		//
		return value.Pair{Fst: fst, Snd: snd}, nil
	case "sum":
		side, err := decodeSide(j.Side)
		//
		if err != nil {
			return nil, err
		}
		//
		inner, err := decodeValue(j.Inner)
		//
		if err != nil {
			return nil, err
		}
		//
		return value.Sum{Side: side, Inner: inner}, nil
	case "label":
		if j.Label == nil {
			return nil, fmt.Errorf("label value missing payload")
		}
		//
		return value.Label(*j.Label), nil
	case "handle":
		if j.Index == nil || j.Digest == nil {
			return nil, fmt.Errorf("handle value missing payload")
		}
		//
		digest, err := value.ParseDigest(*j.Digest)
		//
		if err != nil {
			return nil, err
		}
		//
		return value.Handle{Id: value.ResourceId{Index: *j.Index, Digest: digest}}, nil
	case "effect":
		if j.Tag == nil {
			return nil, fmt.Errorf("effect value missing tag")
		}
		//
		payload, err := decodeValue(j.Payload)
		//
		if err != nil {
			return nil, err
		}
		//
		return value.Effect{Tag: *j.Tag, Payload: payload}, nil
	default:
		return nil, fmt.Errorf("unknown value type %q", j.Type)
	}
}

func decodeSide(s *string) (value.Side, error) {
	if s == nil {
		return 0, fmt.Errorf("sum value missing side")
	}
	//
	switch *s {
	case "left":
		return value.LEFT, nil
	case "right":
		return value.RIGHT, nil
	default:
		return 0, fmt.Errorf("unknown sum side %q", *s)
	}
}

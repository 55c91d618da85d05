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
package value

import (
	"bytes"
	"encoding/binary"
)

// Tag bytes for the canonical encoding.  These are part of the external
// interface (caching and proof-circuit layers hash over them) and, hence,
// must never be renumbered.
const (
	tagUnit uint8 = iota
	tagBool
	tagInt
	tagSymbol
	tagPair
	tagSumLeft
	tagSumRight
	tagLabel
	tagHandle
	tagEffect
)

// Encode returns the canonical byte encoding of a given value.  The encoding
// is deterministic and total: structurally identical values always encode to
// identical bytes, on every platform.  Every variant is written as a single
// tag byte followed by a fixed- or length-prefixed payload, which makes the
// encoding injective.
func Encode(v Value) []byte {
	var buf bytes.Buffer
	//
	v.encode(&buf)
	//
	return buf.Bytes()
}

func (v Unit) encode(buf *bytes.Buffer) {
	buf.WriteByte(tagUnit)
}

func (v Bool) encode(buf *bytes.Buffer) {
	buf.WriteByte(tagBool)
	//
	if v {
		buf.WriteByte(1)
	} else {
		buf.WriteByte(0)
	}
}

func (v Int) encode(buf *bytes.Buffer) {
	var bs [8]byte
	//
	binary.BigEndian.PutUint64(bs[:], uint64(v))
	buf.WriteByte(tagInt)
	buf.Write(bs[:])
}

func (v Symbol) encode(buf *bytes.Buffer) {
	buf.WriteByte(tagSymbol)
	encodeString(buf, string(v))
}

func (v Pair) encode(buf *bytes.Buffer) {
	buf.WriteByte(tagPair)
	v.Fst.encode(buf)
	v.Snd.encode(buf)
}

func (v Sum) encode(buf *bytes.Buffer) {
	if v.Side == LEFT {
		buf.WriteByte(tagSumLeft)
	} else {
		buf.WriteByte(tagSumRight)
	}
	//
	v.Inner.encode(buf)
}

func (v Label) encode(buf *bytes.Buffer) {
	var bs [8]byte
	//
	binary.BigEndian.PutUint64(bs[:], uint64(v))
	buf.WriteByte(tagLabel)
	buf.Write(bs[:])
}

func (v Handle) encode(buf *bytes.Buffer) {
	var bs [4]byte
	//
	binary.BigEndian.PutUint32(bs[:], v.Id.Index)
	buf.WriteByte(tagHandle)
	buf.Write(bs[:])
	buf.Write(v.Id.Digest[:])
}

func (v Effect) encode(buf *bytes.Buffer) {
	buf.WriteByte(tagEffect)
	encodeString(buf, v.Tag)
	v.Payload.encode(buf)
}

// Strings are encoded as a big-endian 32-bit byte length followed by the
// raw bytes.
func encodeString(buf *bytes.Buffer, s string) {
	var bs [4]byte
	//
	binary.BigEndian.PutUint32(bs[:], uint32(len(s)))
	buf.Write(bs[:])
	buf.WriteString(s)
}

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
package value_test

import (
	"bytes"
	"testing"

	"github.com/lyn-lang/go-lyn/pkg/value"
)

func TestEncodeDeterministic(t *testing.T) {
	values := []value.Value{
		value.Unit{},
		value.Bool(true),
		value.Bool(false),
		value.Int(0),
		value.Int(-1),
		value.Int(1),
		value.Symbol("pair"),
		value.Symbol(""),
		value.Pair{Fst: value.Int(1), Snd: value.Int(2)},
		value.Pair{Fst: value.Int(2), Snd: value.Int(1)},
		value.Sum{Side: value.LEFT, Inner: value.Int(1)},
		value.Sum{Side: value.RIGHT, Inner: value.Int(1)},
		value.Label(3),
		value.Effect{Tag: "read", Payload: value.Unit{}},
	}
	//
	for i, lhs := range values {
		if !bytes.Equal(value.Encode(lhs), value.Encode(lhs)) {
			t.Errorf("encoding of %s is unstable", lhs.String())
		}
		//
		for j, rhs := range values {
			if i != j && bytes.Equal(value.Encode(lhs), value.Encode(rhs)) {
				t.Errorf("%s and %s share an encoding", lhs.String(), rhs.String())
			}
		}
	}
}

func TestHashStructural(t *testing.T) {
	var (
		lhs = value.Pair{Fst: value.Int(1), Snd: value.Int(2)}
		rhs = value.Pair{Fst: value.Int(2), Snd: value.Int(1)}
	)
	//
	if value.Hash(lhs) != value.Hash(lhs) {
		t.Error("hash is unstable")
	}
	//
	if value.Hash(lhs) == value.Hash(rhs) {
		t.Error("distinct values share a hash")
	}
}

func TestHashLongEncoding(t *testing.T) {
	// Force the chunked hashing path with an encoding beyond one block.
	var long value.Value = value.Unit{}
	//
	for i := 0; i < 32; i++ {
		long = value.Pair{Fst: value.Int(int64(i)), Snd: long}
	}
	//
	if value.Hash(long) != value.Hash(long) {
		t.Error("hash of long encoding is unstable")
	}
}

func TestDigestHexRoundTrip(t *testing.T) {
	digest := value.Hash(value.Int(42))
	//
	parsed, err := value.ParseDigest(digest.Hex())
	//
	if err != nil {
		t.Fatal(err)
	}
	//
	if parsed != digest {
		t.Errorf("expected %s, got %s", digest.Hex(), parsed.Hex())
	}
}

func TestParseDigestRejectsGarbage(t *testing.T) {
	if _, err := value.ParseDigest("zz"); err == nil {
		t.Error("malformed digest accepted")
	}
}

func TestMintResourceId(t *testing.T) {
	var (
		fst = value.MintResourceId(0, value.Int(1))
		snd = value.MintResourceId(1, value.Int(1))
	)
	//
	if fst == snd {
		t.Error("identical identifiers minted for distinct allocations")
	}
	//
	if fst != value.MintResourceId(0, value.Int(1)) {
		t.Error("minting is not deterministic")
	}
}

func TestSameType(t *testing.T) {
	var (
		left  = value.Sum{Side: value.LEFT, Inner: value.Int(1)}
		right = value.Sum{Side: value.RIGHT, Inner: value.Unit{}}
	)
	// Sums agree regardless of side.
	if !value.SameType(left, right) {
		t.Error("sums of differing sides should share a type")
	}
	//
	if value.SameType(value.Int(1), value.Bool(true)) {
		t.Error("int and bool should not share a type")
	}
}

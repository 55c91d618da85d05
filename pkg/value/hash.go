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
	"encoding/binary"
	"encoding/hex"

	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr/mimc"
)

// DigestSize is the size of a content digest in bytes.  This matches the
// byte size of a BLS12-377 scalar field element, such that every digest is
// directly usable as a single field element by the proof-circuit layer.
const DigestSize = fr.Bytes

// Digest is a stable, platform-independent content digest.  Digests are
// computed with MiMC over BLS12-377, which keeps them cheap to re-verify
// inside an arithmetic circuit.
type Digest [DigestSize]byte

// Hex returns the digest as a lowercase hexadecimal string.
func (d Digest) Hex() string {
	return hex.EncodeToString(d[:])
}

// Element returns this digest as a BLS12-377 scalar field element, for
// consumption by the proof-circuit collaborator.
func (d Digest) Element() fr.Element {
	var e fr.Element
	//
	e.SetBytes(d[:])
	//
	return e
}

// ParseDigest parses a digest from its hexadecimal representation.
func ParseDigest(s string) (Digest, error) {
	var d Digest
	//
	bs, err := hex.DecodeString(s)
	//
	if err != nil {
		return d, err
	} else if len(bs) != DigestSize {
		return d, errDigestLength
	}
	//
	copy(d[:], bs)
	//
	return d, nil
}

// Hash computes the content digest of a given value over its canonical
// encoding.  Hash is a pure function: structurally identical values always
// produce identical digests.
func Hash(v Value) Digest {
	return HashBytes(Encode(v))
}

// HashBytes computes the content digest of an arbitrary byte string.  The
// bytes are length-prefixed and then absorbed in 31-byte chunks, with each
// chunk zero-extended into a 32-byte block.  A 31-byte chunk is always
// strictly below the BLS12-377 scalar modulus, as the hasher requires.
func HashBytes(bs []byte) Digest {
	var (
		digest Digest
		block  [mimc.BlockSize]byte
		hasher = mimc.NewMiMC()
	)
	// Absorb overall length, restoring injectivity lost to chunk padding.
	binary.BigEndian.PutUint64(block[mimc.BlockSize-8:], uint64(len(bs)))
	write(hasher, block[:])
	// Absorb contents in 31-byte chunks.
	for len(bs) > 0 {
		n := min(len(bs), mimc.BlockSize-1)
		clear(block[:])
		copy(block[1:], bs[:n])
		write(hasher, block[:])
		//
		bs = bs[n:]
	}
	//
	copy(digest[:], hasher.Sum(nil))
	//
	return digest
}

type errLength struct{}

func (e errLength) Error() string { return "digest has invalid length" }

var errDigestLength = errLength{}

// The MiMC hasher only rejects writes which are misaligned or exceed the
// field modulus, neither of which can arise for our padded blocks.
func write(hasher interface{ Write([]byte) (int, error) }, block []byte) {
	if _, err := hasher.Write(block); err != nil {
		panic(err)
	}
}

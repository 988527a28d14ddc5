// Copyright 2018 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

// Package bmt provides the intra-chunk Binary Merkle Tree hash used to
// address a fixed-size Swarm chunk.
package bmt

/*
Binary Merkle Tree Hash is a hash function over arbitrary datachunks of limited size.
It is defined as the root hash of the binary merkle tree built over fixed size segments
of the underlying chunk using any base hash function (e.g., keccak 256 SHA3).
Chunks with data shorter than the fixed size are hashed as if they had zero padding.

BMT hash is used as the chunk hash function for content addressing which in turn is the
basis for the 128-branching file-level tree built on top of it (see package file).

The size of the underlying segments is fixed to the size of the base hash (called the resolution
of the BMT hash); using Keccak256 that is 32 bytes, the EVM word size, to optimize for on-chain
BMT verification as well as the hash size optimal for inclusion proofs in the tree.

RefHasher (refhasher.go) is the array-backed implementation used by this
module: it builds the tree a level at a time, which is what makes
sister-segment extraction for inclusion proofs (and its inverse,
RootHashFromInclusionProof) straightforward index arithmetic.
*/

import "hash"

// BaseHasherFunc is a hash.Hash constructor function used for the base hash of the BMT.
// implemented by Keccak256 sha3.NewLegacyKeccak256
type BaseHasherFunc func() hash.Hash

// doSum calculates the hash of the data using hash.Hash
func doSum(h hash.Hash, b []byte, data ...[]byte) []byte {
	h.Reset()
	for _, v := range data {
		h.Write(v)
	}
	return h.Sum(b)
}

// calculateDepthFor calculates the depth (number of levels) in the BMT tree
func calculateDepthFor(n int) (d int) {
	c := 2
	for ; c < n; c *= 2 {
		d++
	}
	return d + 1
}

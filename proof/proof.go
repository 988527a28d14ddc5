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

// Package proof builds and verifies Swarm file inclusion proofs: given a
// file's chunk tree (package file) and a segment index into its payload,
// Collect walks the chunk from its leaf to the root, gathering one
// intra-chunk BMT proof per level actually hashed - carrier levels,
// which pass a chunk through unchanged, contribute no step.
// VerifyFileAddress runs the same walk in reverse, from a claimed
// segment value up to the file address it proves inclusion in.
package proof

import (
	"math/bits"

	"github.com/ethereum/go-ethereum/log"
	"github.com/holisticode/bmtfile/bmt"
	"github.com/holisticode/bmtfile/chunk"
	"github.com/holisticode/bmtfile/file"
)

// ChunkInclusionProof is one step of a file inclusion proof: the span and
// sister segments of the chunk a segment passed through at one tree
// level, plus the segment's position within that chunk's payload.
type ChunkInclusionProof struct {
	Span           []byte
	SisterSegments [][]byte
	Pos            int
}

// FileInclusionProof is the ordered, bottom-up sequence of
// ChunkInclusionProof steps from a file's leaf chunk to its root.
type FileInclusionProof []ChunkInclusionProof

// Collect builds the file inclusion proof for segmentIndex, the index of
// a 32-byte segment into cf's original payload.
func Collect(cf *file.ChunkedFile, segmentIndex uint64) (FileInclusionProof, error) {
	payloadLen := uint64(len(cf.Payload()))
	maxIndex := (payloadLen - 1) / uint64(chunk.SegmentSize)
	if payloadLen == 0 || segmentIndex > maxIndex {
		return nil, SegmentIndexOutOfRange(segmentIndex)
	}

	leaves := cf.LeafChunks()
	chunkIndex, posInChunk, within := file.BMTIndexOfSegment(segmentIndex, uint64(len(leaves)-1))
	if !within {
		return nil, SegmentIndexOutOfRange(segmentIndex)
	}

	current := leaves[chunkIndex]
	pos := int(posInChunk)

	var steps FileInclusionProof
	for {
		sisters, err := current.InclusionProof(pos)
		if err != nil {
			return nil, err
		}
		steps = append(steps, ChunkInclusionProof{
			Span:           current.Span(),
			SisterSegments: sisters,
			Pos:            pos,
		})

		parent, parentPos, ok := cf.ParentOf(current)
		if !ok {
			break
		}
		current = parent
		pos = parentPos
	}

	log.Debug("proof: collected file inclusion proof", "segmentIndex", segmentIndex, "steps", len(steps))
	return steps, nil
}

// VerifyFileAddress reconstructs the file address that segment proves
// inclusion in, given its FileInclusionProof. The caller compares the
// result against a known file address to decide whether the proof
// holds; VerifyFileAddress itself only ever fails on a malformed proof,
// never on a "wrong" one.
func VerifyFileAddress(steps FileInclusionProof, segment []byte, profile chunk.Profile) (chunk.Address, error) {
	if len(steps) == 0 {
		return nil, ErrInvalidProofLength
	}
	if len(segment) != profile.SegmentSize {
		return nil, ErrInvalidSegmentSize
	}

	wantSisters := bits.Len(uint(profile.SegmentsPerChunk)) - 1
	current := segment
	for _, step := range steps {
		if len(step.SisterSegments) != wantSisters {
			return nil, ErrInvalidProofLength
		}
		for _, sister := range step.SisterSegments {
			if len(sister) != profile.SegmentSize {
				return nil, ErrInvalidSegmentSize
			}
		}
		root, err := bmt.RootHashFromInclusionProof(profile.Hasher, step.SisterSegments, current, step.Pos)
		if err != nil {
			return nil, err
		}
		current = chunk.AddressFromSpanAndRoot(step.Span, root, profile)
	}
	return chunk.Address(current), nil
}

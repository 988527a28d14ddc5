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

// Package file builds the multi-level Swarm file BMT on top of package
// chunk: it splits a payload into fixed-size leaf chunks, then groups
// chunk addresses into parent chunks 128 at a time, applying the
// carrier-chunk rule (see tree.go) so that a lone right-edge chunk is
// never hashed alone.
package file

import "github.com/holisticode/bmtfile/chunk"

// split partitions payload into leaf chunks of up to chunk.DefaultSize
// bytes, right-padding (via chunk.NewChunk) the final slice. Each leaf's
// span is the unpadded length of the bytes it covers, so every leaf but
// the last has span == chunk.DefaultSize.
//
// Grounded on the teacher's storage/hasherstore.go chunk-creation
// pattern and the bzz TreeChunker's depth-first split (see
// other_examples bzz-chunker.go), generalized to the fixed 128-ary,
// carrier-aware tree this package builds on top.
func split(payload []byte, profile chunk.Profile) ([]*chunk.Chunk, error) {
	chunkSize := profile.SegmentSize * profile.SegmentsPerChunk
	var leaves []*chunk.Chunk
	for offset := 0; offset < len(payload); offset += chunkSize {
		end := offset + chunkSize
		if end > len(payload) {
			end = len(payload)
		}
		leaf, err := chunk.NewChunk(payload[offset:end], chunk.WithProfile(profile))
		if err != nil {
			return nil, err
		}
		leaves = append(leaves, leaf)
	}
	return leaves, nil
}

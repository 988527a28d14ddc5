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

package file

import "github.com/holisticode/bmtfile/chunk"

// BMTIndexOfSegment maps a payload segment index to the (leaf chunk
// index, position within that leaf) pair it lives at on level 0 of the
// tree. lastChunkIndex is the index of the file's final leaf chunk;
// within is false when the computed chunk index falls beyond it, which
// package proof turns into a SegmentIndexOutOfRange error together with
// its own, finer-grained segment-count check (the carrier-chunk rule
// means the tree cannot be walked back down by uniform arithmetic once
// built, so this helper only concerns level 0 - ascending further
// requires the tree's own parent links; see proof.Collect).
func BMTIndexOfSegment(segmentIndex, lastChunkIndex uint64) (chunkIndex, posInChunk uint64, within bool) {
	chunkIndex = segmentIndex / uint64(chunk.SegmentsPerChunk)
	posInChunk = segmentIndex % uint64(chunk.SegmentsPerChunk)
	return chunkIndex, posInChunk, chunkIndex <= lastChunkIndex
}

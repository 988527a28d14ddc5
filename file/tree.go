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

import (
	"github.com/ethereum/go-ethereum/log"
	"github.com/holisticode/bmtfile/chunk"
)

// parentLink records, for a chunk that has been grouped into a parent's
// payload, which parent it landed in and at what 32-byte-segment
// position within that parent's payload.
//
// A carrier chunk (see buildLevel) has no parentLink until the level
// where it is finally grouped with genuine siblings; in the meantime the
// very same *chunk.Chunk pointer is simply the rightmost entry of
// however many levels it is carried through, per spec.md's "value-equal
// appearances, not aliasing with mutation" invariant.
type parentLink struct {
	chunk *chunk.Chunk
	pos   int
}

// buildLevel groups level L (n chunks) into the next level up, applying
// the carrier-chunk rule: if n%128==1 and n>1, the rightmost chunk is
// deferred to the next level instead of being hashed alone with a
// 4064-byte zero tail. parent records, for every chunk placed into a
// run this call, which parent chunk and position it landed in.
func buildLevel(level []*chunk.Chunk, profile chunk.Profile, parent map[*chunk.Chunk]parentLink) ([]*chunk.Chunk, error) {
	n := len(level)
	grouped := level
	var carried *chunk.Chunk
	if n%profile.SegmentsPerChunk == 1 && n > 1 {
		carried = level[n-1]
		grouped = level[:n-1]
		log.Trace("file: carrying lone right-edge chunk up a level", "levelSize", n)
	}

	var next []*chunk.Chunk
	addrLen := profile.SegmentSize
	for i := 0; i < len(grouped); i += profile.SegmentsPerChunk {
		end := i + profile.SegmentsPerChunk
		if end > len(grouped) {
			end = len(grouped)
		}
		run := grouped[i:end]

		payload := make([]byte, 0, len(run)*addrLen)
		var spanSum uint64
		for _, c := range run {
			payload = append(payload, c.Address()...)
			spanSum += c.SpanValue()
		}
		parentChunk, err := chunk.NewChunk(payload, chunk.WithSpan(spanSum), chunk.WithProfile(profile))
		if err != nil {
			return nil, err
		}
		for pos, c := range run {
			parent[c] = parentLink{chunk: parentChunk, pos: pos}
		}
		next = append(next, parentChunk)
	}

	if carried != nil {
		next = append(next, carried)
	}
	return next, nil
}

// buildTree builds the full bottom-up level sequence from the leaves,
// returning the levels and the chunk->parent map used by the proof
// collector to follow a chunk to the root, honoring carrier shortcuts.
func buildTree(leaves []*chunk.Chunk, profile chunk.Profile) ([][]*chunk.Chunk, map[*chunk.Chunk]parentLink, error) {
	levels := [][]*chunk.Chunk{leaves}
	parent := make(map[*chunk.Chunk]parentLink)
	current := leaves
	for len(current) > 1 {
		next, err := buildLevel(current, profile, parent)
		if err != nil {
			return nil, nil, err
		}
		levels = append(levels, next)
		current = next
	}
	log.Debug("file: tree built", "leaves", len(leaves), "levels", len(levels))
	return levels, parent, nil
}

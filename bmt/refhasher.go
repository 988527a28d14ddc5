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

package bmt

import "fmt"

// RefHasher is the simple, sequential, array-backed reference BMT
// implementation described in bmt.go's package doc. It keeps the tree as
// a flat slice of levels, which makes sister-segment extraction for
// inclusion proofs pure index arithmetic: at level k, the sibling of
// position p is at p^1.
//
// Short input is zero-padded to the full leaf width before the tree is
// built, so all-zero subtrees are hashed explicitly rather than looked
// up from a precomputed table.
type RefHasher struct {
	hasher       BaseHasherFunc
	segmentSize  int
	segmentCount int
	maxDepth     int // number of levels above the leaves, log2(segmentCount)
}

// NewRefHasher creates a reference hasher for chunks with segmentCount
// leaf segments, each segmentSize = hasher().Size() bytes wide.
func NewRefHasher(hasher BaseHasherFunc, segmentCount int) *RefHasher {
	maxDepth := 0
	if segmentCount > 1 {
		maxDepth = calculateDepthFor(segmentCount)
	}
	return &RefHasher{
		hasher:       hasher,
		segmentSize:  hasher().Size(),
		segmentCount: segmentCount,
		maxDepth:     maxDepth,
	}
}

// leaves truncates data to segmentCount*segmentSize bytes, zero-pads it
// up to 2^maxDepth segments (segmentCount rounded up to a power of two)
// and slices it into segments of segmentSize bytes each.
func (r *RefHasher) leaves(data []byte) [][]byte {
	if full := r.segmentCount * r.segmentSize; len(data) > full {
		data = data[:full]
	}
	count := 1 << r.maxDepth
	padded := make([]byte, count*r.segmentSize)
	copy(padded, data)
	segs := make([][]byte, count)
	for i := 0; i < count; i++ {
		segs[i] = padded[i*r.segmentSize : (i+1)*r.segmentSize]
	}
	return segs
}

// Hash returns the BMT root of data, zero-padding it up to the full
// chunk width first.
func (r *RefHasher) Hash(data []byte) []byte {
	levels := r.Levels(data)
	return levels[len(levels)-1][0]
}

// Levels returns the full, bottom-up level array of the intra-chunk BMT:
// levels[0] is the zero-padded leaf segments (see leaves), levels[len-1]
// is a single-element slice holding the BMT root.
func (r *RefHasher) Levels(data []byte) [][][]byte {
	levels := make([][][]byte, r.maxDepth+1)
	levels[0] = r.leaves(data)
	h := r.hasher()
	for lvl := 0; lvl < r.maxDepth; lvl++ {
		prev := levels[lvl]
		next := make([][]byte, len(prev)/2)
		for i := range next {
			next[i] = doSum(h, nil, prev[2*i], prev[2*i+1])
		}
		levels[lvl+1] = next
	}
	return levels
}

// SisterSegments returns the ordered list of sibling hashes needed to
// reconstruct the BMT root from the segment at index (0 <= index <
// segmentCount), one entry per intra-BMT level (level 0 is the leaf
// segment's own sibling, the last is the sibling of the half-tree).
func (r *RefHasher) SisterSegments(data []byte, index int) ([][]byte, error) {
	if index < 0 || index >= r.segmentCount {
		return nil, fmt.Errorf("segment index %d out of range [0,%d)", index, r.segmentCount)
	}
	levels := r.Levels(data)
	sisters := make([][]byte, r.maxDepth)
	pos := index
	for lvl := 0; lvl < r.maxDepth; lvl++ {
		sisters[lvl] = levels[lvl][pos^1]
		pos >>= 1
	}
	return sisters, nil
}

// RootHashFromInclusionProof reconstructs the BMT root given the proven
// segment, its index within the chunk, and its sister segments, without
// access to the rest of the chunk payload. It is the intra-chunk inverse
// of SisterSegments: sisters[0] is the level-0 sibling SisterSegments
// recorded first, and folding the sisters in order climbs from level 0
// up to the root.
func RootHashFromInclusionProof(hasher BaseHasherFunc, sisterSegments [][]byte, segment []byte, pos int) ([]byte, error) {
	if len(segment) != hasher().Size() {
		return nil, fmt.Errorf("invalid segment size: expected %d, got %d", hasher().Size(), len(segment))
	}
	h := hasher()
	v := segment
	p := pos
	for _, sister := range sisterSegments {
		if p&1 == 0 {
			v = doSum(h, nil, v, sister)
		} else {
			v = doSum(h, nil, sister, v)
		}
		p >>= 1
	}
	return v, nil
}

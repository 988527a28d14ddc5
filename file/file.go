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

// ChunkedFile bundles an input payload with its span, its leaf chunks,
// the multi-level tree built over them, and the resulting file address
// (the root chunk's address).
type ChunkedFile struct {
	payload []byte
	profile chunk.Profile
	leaves  []*chunk.Chunk
	levels  [][]*chunk.Chunk
	parent  map[*chunk.Chunk]parentLink
}

// New builds a ChunkedFile from payload, which must be non-empty. An
// optional profile overrides the default Keccak-256/128-segment
// Swarm-compatible hashing scheme.
func New(payload []byte, profile ...chunk.Profile) (*ChunkedFile, error) {
	if len(payload) == 0 {
		return nil, ErrEmptyPayload
	}
	p := chunk.DefaultProfile()
	if len(profile) > 0 {
		p = profile[0]
	}

	leaves, err := split(payload, p)
	if err != nil {
		return nil, err
	}
	levels, parent, err := buildTree(leaves, p)
	if err != nil {
		return nil, err
	}
	return &ChunkedFile{
		payload: payload,
		profile: p,
		leaves:  leaves,
		levels:  levels,
		parent:  parent,
	}, nil
}

// LeafChunks returns the ordered sequence of leaf chunks.
func (cf *ChunkedFile) LeafChunks() []*chunk.Chunk {
	return cf.leaves
}

// RootChunk returns the single chunk at the top of the tree.
func (cf *ChunkedFile) RootChunk() *chunk.Chunk {
	top := cf.levels[len(cf.levels)-1]
	return top[0]
}

// Address returns the file address: the root chunk's address.
func (cf *ChunkedFile) Address() chunk.Address {
	return cf.RootChunk().Address()
}

// Span returns the file's span, equal to len(payload).
func (cf *ChunkedFile) Span() []byte {
	return cf.RootChunk().Span()
}

// BMT returns the ordered, bottom-up sequence of tree levels.
func (cf *ChunkedFile) BMT() [][]*chunk.Chunk {
	return cf.levels
}

// Payload returns the original, unpadded input bytes.
func (cf *ChunkedFile) Payload() []byte {
	return cf.payload
}

// Profile returns the hashing profile the file was built with.
func (cf *ChunkedFile) Profile() chunk.Profile {
	return cf.profile
}

// ParentOf returns the chunk that c was grouped into and the 32-byte
// segment position within that parent's payload, for use by package
// proof when walking a chunk up to the root. ok is false once c is the
// root chunk, which has no parent.
func (cf *ChunkedFile) ParentOf(c *chunk.Chunk) (parent *chunk.Chunk, pos int, ok bool) {
	link, found := cf.parent[c]
	if !found {
		return nil, 0, false
	}
	return link.chunk, link.pos, true
}

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

// Package chunk defines the fixed-shape Swarm chunk: an 8-byte span and a
// 4096-byte payload, content addressed by H(span || bmt_root(payload)).
package chunk

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/holisticode/bmtfile/bmt"
	"golang.org/x/crypto/sha3"
)

const (
	// SegmentSize is the leaf width of the intra-chunk BMT and the width
	// of every hash output.
	SegmentSize = 32
	// SegmentsPerChunk is the number of segments in a chunk payload.
	SegmentsPerChunk = 128
	// DefaultSize is the fixed size of a chunk payload in bytes.
	DefaultSize = SegmentSize * SegmentsPerChunk
	// SpanSize is the width, in bytes, of the little-endian span prefix.
	SpanSize = 8
	// MaxBMTLevels is the number of internal levels in the intra-chunk
	// BMT, log2(SegmentsPerChunk).
	MaxBMTLevels = 7

	// AddressLength is the width, in bytes, of a chunk address.
	AddressLength = SegmentSize
)

// ErrPayloadTooLarge is returned by NewChunk when the given payload
// exceeds DefaultSize bytes.
var ErrPayloadTooLarge = errors.New("chunk: payload larger than the maximum chunk size")

// Address is the 32-byte content address of a chunk.
type Address []byte

// Hasher is the base hash constructor used for both the intra-chunk BMT
// and the span-prefixed chunk address. Keccak-256 is the default.
type Hasher = bmt.BaseHasherFunc

// DefaultHasher is the Keccak-256 base hash used unless a Profile
// overrides it.
var DefaultHasher Hasher = sha3.NewLegacyKeccak256

// Profile bundles the parameters of a chunk hashing scheme into a single
// reusable value, so a non-default base hash function can be plugged in
// without threading extra arguments through every constructor.
type Profile struct {
	Hasher           Hasher
	SegmentSize      int
	SegmentsPerChunk int
}

// DefaultProfile is the Swarm-compatible default: Keccak-256, 32-byte
// segments, 128 segments per chunk.
func DefaultProfile() Profile {
	return Profile{
		Hasher:           DefaultHasher,
		SegmentSize:      SegmentSize,
		SegmentsPerChunk: SegmentsPerChunk,
	}
}

func (p Profile) chunkSize() int {
	return p.SegmentSize * p.SegmentsPerChunk
}

// MakeSpan encodes n as an 8-byte little-endian span.
func MakeSpan(n uint64) []byte {
	span := make([]byte, SpanSize)
	binary.LittleEndian.PutUint64(span, n)
	return span
}

// GetSpanValue decodes an 8-byte little-endian span into its value.
// It panics if span is shorter than SpanSize, mirroring the fixed-width
// contract of the span field (callers are expected to only pass spans
// produced by MakeSpan or read from a Chunk).
func GetSpanValue(span []byte) uint64 {
	return binary.LittleEndian.Uint64(span)
}

// Chunk is a span-and-payload record addressed by
// H(span || bmt_root(payload)). The payload is always exactly
// DefaultSize bytes (zero-padded); span records how many of those bytes
// are meaningful.
type Chunk struct {
	profile Profile
	span    []byte
	payload []byte // exactly profile.chunkSize() bytes, zero-padded
	address []byte // lazily computed
}

// Option customizes NewChunk / NewChunkWithProfile construction.
type Option func(*chunkOptions)

type chunkOptions struct {
	span    *uint64
	profile *Profile
}

// WithSpan overrides the chunk's span instead of defaulting it to
// len(payload). Used by intermediate chunks, whose span is the sum of
// their children's spans rather than the byte length of their own
// (address-concatenation) payload.
func WithSpan(span uint64) Option {
	return func(o *chunkOptions) {
		o.span = &span
	}
}

// WithProfile overrides the default Keccak-256/128-segment profile.
func WithProfile(p Profile) Option {
	return func(o *chunkOptions) {
		o.profile = &p
	}
}

// NewChunk builds a Chunk from payload, which must be at most DefaultSize
// bytes; it is zero-padded to DefaultSize for BMT hashing. By default the
// chunk's span equals len(payload); pass WithSpan to override it (used
// when building intermediate chunks over child addresses).
func NewChunk(payload []byte, opts ...Option) (*Chunk, error) {
	o := chunkOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	profile := DefaultProfile()
	if o.profile != nil {
		profile = *o.profile
	}
	if len(payload) > profile.chunkSize() {
		return nil, fmt.Errorf("%w: got %d bytes, max %d", ErrPayloadTooLarge, len(payload), profile.chunkSize())
	}
	span := uint64(len(payload))
	if o.span != nil {
		span = *o.span
	}
	padded := make([]byte, profile.chunkSize())
	copy(padded, payload)
	return &Chunk{
		profile: profile,
		span:    MakeSpan(span),
		payload: padded,
	}, nil
}

// Data returns the zero-padded, fixed-width chunk payload.
func (c *Chunk) Data() []byte {
	return c.payload
}

// Span returns the 8-byte little-endian span of the chunk.
func (c *Chunk) Span() []byte {
	return c.span
}

// SpanValue returns the decoded span value.
func (c *Chunk) SpanValue() uint64 {
	return GetSpanValue(c.span)
}

// Address returns H(span || bmt_root(payload)), computing and caching it
// on first access.
func (c *Chunk) Address() Address {
	if c.address == nil {
		root := bmt.NewRefHasher(c.profile.Hasher, c.profile.SegmentsPerChunk).Hash(c.payload)
		c.address = AddressFromSpanAndRoot(c.span, root, c.profile)
	}
	return Address(c.address)
}

// BMT returns the 8-level, bottom-up array of the intra-chunk BMT:
// level 0 is the 128 leaf segments, level 7 is the single root segment.
func (c *Chunk) BMT() [][][]byte {
	rh := bmt.NewRefHasher(c.profile.Hasher, c.profile.SegmentsPerChunk)
	return rh.Levels(c.payload)
}

// InclusionProof returns the 7 sister segments needed to verify that the
// segment at index (0 <= index < SegmentsPerChunk) is part of this
// chunk's BMT root. This is the intra-chunk proof only; file-level
// proofs additionally chain one InclusionProof per tree level (see
// package proof).
func (c *Chunk) InclusionProof(index int) ([][]byte, error) {
	rh := bmt.NewRefHasher(c.profile.Hasher, c.profile.SegmentsPerChunk)
	return rh.SisterSegments(c.payload, index)
}

// Profile returns the hashing profile this chunk was built with.
func (c *Chunk) Profile() Profile {
	return c.profile
}

// AddressFromSpanAndRoot computes H(span || root), the chunk address
// formula, from an already-known BMT root rather than a full payload.
// Package proof uses this to fold a verified intra-chunk root back into
// the address that the next level up was built from, without needing
// that level's zero-padded payload.
func AddressFromSpanAndRoot(span, root []byte, profile Profile) Address {
	h := profile.Hasher()
	h.Write(span)
	h.Write(root)
	return Address(h.Sum(nil))
}

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
	"bytes"
	"math/rand"
	"testing"

	"github.com/holisticode/bmtfile/chunk"
)

func randomPayload(t *testing.T, seed int64, size int) []byte {
	t.Helper()
	buf := make([]byte, size)
	rand.New(rand.NewSource(seed)).Read(buf)
	return buf
}

func TestNewRejectsEmptyPayload(t *testing.T) {
	if _, err := New(nil); err != ErrEmptyPayload {
		t.Fatalf("got %v, want ErrEmptyPayload", err)
	}
	if _, err := New([]byte{}); err != ErrEmptyPayload {
		t.Fatalf("got %v, want ErrEmptyPayload", err)
	}
}

func TestSingleChunkFileMatchesBareChunk(t *testing.T) {
	payload := randomPayload(t, 1, 3000)

	cf, err := New(payload)
	if err != nil {
		t.Fatal(err)
	}
	c, err := chunk.NewChunk(payload)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(cf.Address(), c.Address()) {
		t.Fatalf("single-chunk file address diverges from bare chunk address")
	}
	if len(cf.BMT()) != 1 {
		t.Fatalf("single-chunk file must have exactly one level, got %d", len(cf.BMT()))
	}
	if len(cf.LeafChunks()) != 1 {
		t.Fatalf("single-chunk file must have exactly one leaf, got %d", len(cf.LeafChunks()))
	}
}

func TestRootSpanEqualsPayloadLength(t *testing.T) {
	sizes := []int{1, 4096, 4097, 4096 * 128, 4096*128 + 1, 4096*128 + 4096}
	for _, size := range sizes {
		payload := randomPayload(t, int64(size), size)
		cf, err := New(payload)
		if err != nil {
			t.Fatalf("size %d: %v", size, err)
		}
		if got := chunk.GetSpanValue(cf.Span()); got != uint64(size) {
			t.Fatalf("size %d: root span = %d, want %d", size, got, size)
		}
	}
}

func TestTreeHeightMonotonicallyIncreases(t *testing.T) {
	sizes := []int{100, 4096, 4096 * 2, 4096 * 128, 4096*128 + 1, 4096 * 128 * 128}
	prevHeight := 0
	for _, size := range sizes {
		payload := randomPayload(t, int64(size)+7, size)
		cf, err := New(payload)
		if err != nil {
			t.Fatalf("size %d: %v", size, err)
		}
		height := len(cf.BMT())
		if height < prevHeight {
			t.Fatalf("size %d: tree height %d is lower than previous %d", size, height, prevHeight)
		}
		prevHeight = height
	}
}

func TestRootLevelIsSingleton(t *testing.T) {
	sizes := []int{1, 4096, 4096*128 + 1, 4096*128*2 + 5}
	for _, size := range sizes {
		payload := randomPayload(t, int64(size)+13, size)
		cf, err := New(payload)
		if err != nil {
			t.Fatalf("size %d: %v", size, err)
		}
		top := cf.BMT()[len(cf.BMT())-1]
		if len(top) != 1 {
			t.Fatalf("size %d: root level has %d chunks, want 1", size, len(top))
		}
	}
}

func TestIntermediatePayloadIsChildAddressConcatenation(t *testing.T) {
	// 130 leaf chunks: groups into one 128-run plus a 2-run parent level,
	// then a singleton root - no carrier shortcut triggers here since
	// 130%128 != 1.
	size := 4096*129 + 100
	payload := randomPayload(t, 99, size)
	cf, err := New(payload)
	if err != nil {
		t.Fatal(err)
	}
	levels := cf.BMT()
	if len(levels) < 2 {
		t.Fatalf("expected at least 2 levels, got %d", len(levels))
	}
	parentLevel := levels[1]
	childLevel := levels[0]

	checked := 0
	for _, parent := range parentLevel {
		want := make([]byte, 0)
		consumed := 0
		for _, c := range childLevel {
			p, pos, ok := cf.ParentOf(c)
			if !ok || p != parent {
				continue
			}
			_ = pos
			want = append(want, c.Address()...)
			consumed++
		}
		if consumed == 0 {
			continue // the carried chunk, if any, has no parent at this level
		}
		if !bytes.Equal(parent.Data()[:len(want)], want) {
			t.Fatalf("parent payload prefix does not match concatenated child addresses")
		}
		checked++
	}
	if checked == 0 {
		t.Fatal("no parent/child relationship was exercised")
	}
}

func TestCarrierChunkIsReusedNotCopied(t *testing.T) {
	// 129 leaf chunks triggers the carrier rule: 129%128==1 and 129>1.
	size := 4096*128 + 1
	payload := randomPayload(t, 17, size)
	cf, err := New(payload)
	if err != nil {
		t.Fatal(err)
	}
	levels := cf.BMT()
	if len(levels) != 3 {
		t.Fatalf("129-leaf file: expected 3 levels (leaves, carried, root), got %d", len(levels))
	}
	lastLeaf := levels[0][len(levels[0])-1]
	level1 := levels[1]
	if level1[len(level1)-1] != lastLeaf {
		t.Fatal("carried chunk must be the same pointer as the last leaf, not a copy")
	}
}

func TestParentOfRootChunkHasNoParent(t *testing.T) {
	payload := randomPayload(t, 5, 4096*200)
	cf, err := New(payload)
	if err != nil {
		t.Fatal(err)
	}
	if _, _, ok := cf.ParentOf(cf.RootChunk()); ok {
		t.Fatal("root chunk must not have a parent")
	}
}

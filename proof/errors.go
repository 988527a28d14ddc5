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

package proof

import (
	"errors"
	"strconv"
)

// ErrInvalidProofLength is returned when a proof submitted for
// verification has zero steps, or a step whose sister-segment list does
// not have one entry per intra-chunk BMT level.
var ErrInvalidProofLength = errors.New("proof: inclusion proof has an invalid number of steps")

// ErrInvalidSegmentSize is returned when a proved segment or a sister
// segment is not exactly chunk.SegmentSize bytes.
var ErrInvalidSegmentSize = errors.New("proof: segment has the wrong size")

// SegmentIndexOutOfRange is returned by Collect when segmentIndex does
// not address any 32-byte segment of the file's payload.
type SegmentIndexOutOfRange uint64

func (e SegmentIndexOutOfRange) Error() string {
	return "The given segment index is out of range: " + strconv.FormatUint(uint64(e), 10)
}

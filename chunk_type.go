// Copyright 2024 The pngme Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package pngme

import (
	"fmt"
)

// Property bits live in bit 5 (0x20) of each type byte; which byte you
// read determines which property you get.
const (
	propertyBit = 0x20

	ancillaryByte  = 0
	privateByte    = 1
	reservedByte   = 2
	safeToCopyByte = 3
)

// ChunkType is the 4-byte tag identifying a chunk's role.  It is a plain
// value type: compare with ==, case is significant, and construction never
// rejects bytes -- IsValid reports whether the tag conforms to the format.
type ChunkType struct {
	code [4]byte
}

// ChunkTypeFromBytes constructs a ChunkType from raw bytes.  Malformed
// tags are representable; check IsValid before trusting one.
func ChunkTypeFromBytes(code [4]byte) ChunkType {
	return ChunkType{code: code}
}

// ChunkTypeFromString constructs a ChunkType from its textual form.  The
// string must be exactly 4 bytes long.
func ChunkTypeFromString(s string) (ChunkType, error) {
	if len(s) != 4 {
		return ChunkType{}, fmt.Errorf("chunk type %q is %d bytes, want 4: %w", s, len(s), ErrInvalidLength)
	}
	return ChunkTypeFromBytes([4]byte{s[0], s[1], s[2], s[3]}), nil
}

// Bytes returns the raw 4-byte tag.
func (t ChunkType) Bytes() [4]byte {
	return t.code
}

// IsValid reports whether the tag conforms to the format: all four bytes
// are ASCII letters and the reserved bit is clear.
func (t ChunkType) IsValid() bool {
	return t.isASCIILetters() && t.IsReservedBitValid()
}

// IsCritical reports whether the chunk is required for decoding (bit 5 of
// the first byte clear).
func (t ChunkType) IsCritical() bool {
	return t.code[ancillaryByte]&propertyBit == 0
}

// IsPublic reports whether the chunk type is part of the public
// registry (bit 5 of the second byte clear).
func (t ChunkType) IsPublic() bool {
	return t.code[privateByte]&propertyBit == 0
}

// IsReservedBitValid reports whether the reserved bit (bit 5 of the third
// byte) is clear, as the current format version requires.
func (t ChunkType) IsReservedBitValid() bool {
	return t.code[reservedByte]&propertyBit == 0
}

// IsSafeToCopy reports whether an editor that doesn't recognize the chunk
// may carry it over unchanged (bit 5 of the fourth byte set).
func (t ChunkType) IsSafeToCopy() bool {
	return t.code[safeToCopyByte]&propertyBit != 0
}

func (t ChunkType) isASCIILetters() bool {
	for _, b := range t.code {
		if !isASCIILetter(b) {
			return false
		}
	}
	return true
}

func (t ChunkType) String() string {
	return string(t.code[:])
}

func isASCIILetter(b byte) bool {
	return ('A' <= b && b <= 'Z') || ('a' <= b && b <= 'z')
}

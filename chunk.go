// Copyright 2024 The pngme Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package pngme

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"unicode/utf8"
)

// chunkOverhead is the framing around the data: 4-byte length, 4-byte
// type, and the trailing 4-byte crc.
const chunkOverhead = 4 + 4 + 4

// Chunk is one framed record of a container:
//
//	length(u32 BE) , type(4 bytes) , data(length bytes) , crc(u32 BE)
//
// The crc is CRC-32/ISO-HDLC over type||data.  A Chunk is immutable once
// constructed; replacing one means removing it from its Png and appending
// a new one.
type Chunk struct {
	length    uint32
	chunkType ChunkType
	data      []byte
	crc       uint32
}

// NewChunk builds a chunk from a type and payload, computing the length
// and crc.  The payload is copied; the caller keeps ownership of data.
func NewChunk(chunkType ChunkType, data []byte) *Chunk {
	owned := make([]byte, len(data))
	copy(owned, data)
	return &Chunk{
		length:    uint32(len(owned)),
		chunkType: chunkType,
		data:      owned,
		crc:       checksum(chunkType, owned),
	}
}

// ParseChunk decodes one chunk from the front of buf, returning the chunk
// and the number of bytes consumed so the caller can advance its cursor.
// Every read is bounds-checked first: truncated input is a typed error,
// never a panic.  The chunk is not constructed unless the stored crc
// matches the recomputed one.
func ParseChunk(buf []byte) (*Chunk, int, error) {
	cursor := 0
	if len(buf) < cursor+4 {
		return nil, 0, fmt.Errorf("chunk length field needs 4 bytes, have %d: %w", len(buf)-cursor, ErrInvalidLength)
	}
	length := binary.BigEndian.Uint32(buf[cursor : cursor+4])
	cursor += 4

	if len(buf) < cursor+4 {
		return nil, 0, fmt.Errorf("chunk type field needs 4 bytes, have %d: %w", len(buf)-cursor, ErrInvalidLength)
	}
	chunkType := ChunkTypeFromBytes([4]byte{buf[cursor], buf[cursor+1], buf[cursor+2], buf[cursor+3]})
	cursor += 4
	if !chunkType.isASCIILetters() {
		return nil, 0, fmt.Errorf("chunk type bytes %v are not ASCII letters: %w", chunkType.Bytes(), ErrInvalidChunkType)
	}

	if uint64(len(buf)) < uint64(cursor)+uint64(length) {
		return nil, 0, fmt.Errorf("chunk data needs %d bytes, have %d: %w", length, len(buf)-cursor, ErrInvalidLength)
	}
	data := buf[cursor : cursor+int(length)]
	cursor += int(length)

	if len(buf) < cursor+4 {
		return nil, 0, fmt.Errorf("chunk crc field needs 4 bytes, have %d: %w", len(buf)-cursor, ErrInvalidCrc)
	}
	storedCrc := binary.BigEndian.Uint32(buf[cursor : cursor+4])
	cursor += 4

	chunk := NewChunk(chunkType, data)
	if chunk.crc != storedCrc {
		return nil, 0, fmt.Errorf("computed crc %d != stored crc %d: %w", chunk.crc, storedCrc, ErrMismatchCrc)
	}

	return chunk, cursor, nil
}

// Length returns the declared payload size in bytes.
func (c *Chunk) Length() uint32 {
	return c.length
}

// Type returns the chunk's 4-byte type tag.
func (c *Chunk) Type() ChunkType {
	return c.chunkType
}

// Data returns the chunk's payload.  The returned slice is the chunk's
// own storage; callers must not modify it.
func (c *Chunk) Data() []byte {
	return c.data
}

// Crc returns the stored CRC-32/ISO-HDLC checksum of type||data.
func (c *Chunk) Crc() uint32 {
	return c.crc
}

// Text decodes the payload as UTF-8 text.
func (c *Chunk) Text() (string, error) {
	if !utf8.Valid(c.data) {
		return "", fmt.Errorf("chunk %s: %w", c.chunkType, ErrTextConversion)
	}
	return string(c.data), nil
}

// Bytes serializes the chunk.  For any chunk produced by NewChunk or
// ParseChunk this is the exact inverse of ParseChunk.
func (c *Chunk) Bytes() []byte {
	buf := make([]byte, 0, chunkOverhead+len(c.data))
	buf = binary.BigEndian.AppendUint32(buf, c.length)
	code := c.chunkType.Bytes()
	buf = append(buf, code[:]...)
	buf = append(buf, c.data...)
	buf = binary.BigEndian.AppendUint32(buf, c.crc)
	return buf
}

// String renders a one-line summary for diagnostics; it is not part of
// the wire format.
func (c *Chunk) String() string {
	return fmt.Sprintf("[type: %s, length: %d, data: %d bytes, crc: %d]", c.chunkType, c.length, len(c.data), c.crc)
}

// checksum computes CRC-32/ISO-HDLC over type||data.  crc32.IEEE is that
// algorithm: reflected 0x04C11DB7, init and xorout 0xFFFFFFFF.
func checksum(chunkType ChunkType, data []byte) uint32 {
	code := chunkType.Bytes()
	crc := crc32.Update(0, crc32.IEEETable, code[:])
	return crc32.Update(crc, crc32.IEEETable, data)
}

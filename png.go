// Copyright 2024 The pngme Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package pngme

import (
	"bytes"
	"fmt"
)

// Signature is the fixed 8-byte magic prefix of the container format.
var Signature = [8]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// Png is an ordered sequence of chunks behind the fixed signature.  Order
// is meaningful: lookups return the first match and serialization emits
// chunks in sequence order.  Duplicate chunk types are allowed.
//
// A Png is not safe for concurrent mutation; callers reusing one across
// goroutines must serialize access themselves.
type Png struct {
	chunks []*Chunk
}

// NewPng returns a container with an empty chunk sequence.
func NewPng() *Png {
	return &Png{}
}

// PngFromChunks returns a container holding the given chunks in order.
func PngFromChunks(chunks []*Chunk) *Png {
	p := &Png{chunks: make([]*Chunk, len(chunks))}
	copy(p.chunks, chunks)
	return p
}

// ParsePng decodes a complete container from buf.  The parse is
// all-or-nothing: a bad signature or any chunk-level failure aborts with
// the cause wrapped, and no partial container is returned.
func ParsePng(buf []byte) (*Png, error) {
	if len(buf) < len(Signature) || !bytes.Equal(buf[:len(Signature)], Signature[:]) {
		return nil, fmt.Errorf("first %d bytes are not the png magic: %w", len(Signature), ErrInvalidSignature)
	}

	p := NewPng()
	cursor := len(Signature)
	for cursor < len(buf) {
		chunk, consumed, err := ParseChunk(buf[cursor:])
		if err != nil {
			return nil, fmt.Errorf("chunk %d at offset %d: %w", len(p.chunks), cursor, err)
		}
		p.chunks = append(p.chunks, chunk)
		cursor += consumed
	}
	return p, nil
}

// Header returns the container's 8-byte signature.
func (p *Png) Header() [8]byte {
	return Signature
}

// Bytes serializes the container: the signature followed by each chunk's
// bytes in sequence order.
func (p *Png) Bytes() []byte {
	size := len(Signature)
	for _, c := range p.chunks {
		size += chunkOverhead + len(c.data)
	}
	buf := make([]byte, 0, size)
	buf = append(buf, Signature[:]...)
	for _, c := range p.chunks {
		buf = append(buf, c.Bytes()...)
	}
	return buf
}

// AppendChunk adds chunk to the end of the sequence.
func (p *Png) AppendChunk(chunk *Chunk) {
	p.chunks = append(p.chunks, chunk)
}

// ChunkByType returns the first chunk whose type renders as chunkType, or
// nil when none matches.  Absence is not an error.
func (p *Png) ChunkByType(chunkType string) *Chunk {
	for _, c := range p.chunks {
		if c.chunkType.String() == chunkType {
			return c
		}
	}
	return nil
}

// RemoveChunk removes and returns the first chunk whose type renders as
// chunkType.  On ErrChunkNotFound the sequence is left unchanged.
func (p *Png) RemoveChunk(chunkType string) (*Chunk, error) {
	for i, c := range p.chunks {
		if c.chunkType.String() == chunkType {
			p.chunks = append(p.chunks[:i], p.chunks[i+1:]...)
			return c, nil
		}
	}
	return nil, fmt.Errorf("no chunk with type %q: %w", chunkType, ErrChunkNotFound)
}

// Chunks returns the sequence in order.  The slice is a fresh copy, so
// callers cannot reorder or remove the container's chunks through it.
func (p *Png) Chunks() []*Chunk {
	chunks := make([]*Chunk, len(p.chunks))
	copy(chunks, p.chunks)
	return chunks
}

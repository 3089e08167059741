// Copyright 2024 The pngme Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package pngme

import (
	"errors"
)

// Parse and lookup failures are tagged with one of these sentinels.
// Each layer wraps the layer below with fmt.Errorf("...: %w", err), so
// errors.Is sees the originating tag no matter how many boundaries the
// error crossed.
var (
	ErrInvalidSignature = errors.New("invalid png signature")
	ErrInvalidLength    = errors.New("invalid chunk length")
	ErrInvalidChunkType = errors.New("invalid chunk type")
	ErrInvalidCrc       = errors.New("invalid chunk crc")
	ErrMismatchCrc      = errors.New("chunk crc mismatch")
	ErrChunkNotFound    = errors.New("chunk not found")
	ErrTextConversion   = errors.New("chunk data is not valid utf-8")
)

// Copyright 2024 The pngme Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/lpaulic/pngme"
	"github.com/lpaulic/pngme/internal/fsio"
)

func run(logger zerolog.Logger, command string, args []string) error {
	switch command {
	case "encode":
		if len(args) < 3 || len(args) > 4 {
			return fmt.Errorf("encode wants <file> <type> <message> [output], got %d arguments", len(args))
		}
		output := args[0]
		if len(args) == 4 {
			output = args[3]
		}
		return encode(logger, args[0], args[1], args[2], output)
	case "decode":
		if len(args) != 2 {
			return fmt.Errorf("decode wants <file> <type>, got %d arguments", len(args))
		}
		return decode(logger, args[0], args[1])
	case "remove":
		if len(args) != 2 {
			return fmt.Errorf("remove wants <file> <type>, got %d arguments", len(args))
		}
		return remove(logger, args[0], args[1])
	case "print":
		if len(args) != 1 {
			return fmt.Errorf("print wants <file>, got %d arguments", len(args))
		}
		return printChunks(logger, args[0])
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func readPng(path string) (*pngme.Png, error) {
	buf, err := fsio.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	png, err := pngme.ParsePng(buf)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return png, nil
}

// encode appends a chunk carrying message under chunkType and writes the
// result to output.  The file at output is only replaced if the whole
// parse/mutate/serialize pipeline succeeds.
func encode(logger zerolog.Logger, path, chunkType, message, output string) error {
	png, err := readPng(path)
	if err != nil {
		return err
	}

	ct, err := pngme.ChunkTypeFromString(chunkType)
	if err != nil {
		return fmt.Errorf("chunk type %q: %w", chunkType, err)
	}
	if !ct.IsValid() {
		return fmt.Errorf("chunk type %q: %w", chunkType, pngme.ErrInvalidChunkType)
	}

	png.AppendChunk(pngme.NewChunk(ct, []byte(message)))
	logger.Debug().Str("type", chunkType).Int("bytes", len(message)).Str("output", output).Msg("appending chunk")

	if err := fsio.WriteFileAtomic(output, png.Bytes()); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	return nil
}

// decode prints the message stored under chunkType.  A missing chunk is
// reported on stdout, not treated as a failure.
func decode(logger zerolog.Logger, path, chunkType string) error {
	png, err := readPng(path)
	if err != nil {
		return err
	}

	chunk := png.ChunkByType(chunkType)
	if chunk == nil {
		fmt.Printf("no chunk with type %q in %s\n", chunkType, path)
		return nil
	}

	text, err := chunk.Text()
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	logger.Debug().Str("type", chunkType).Uint32("crc", chunk.Crc()).Msg("decoded chunk")
	fmt.Println(text)
	return nil
}

// remove rewrites the file without the first chunk matching chunkType.
func remove(logger zerolog.Logger, path, chunkType string) error {
	png, err := readPng(path)
	if err != nil {
		return err
	}

	removed, err := png.RemoveChunk(chunkType)
	if err != nil {
		return fmt.Errorf("remove from %s: %w", path, err)
	}
	logger.Debug().Stringer("chunk", removed).Msg("removed chunk")

	if err := fsio.WriteFileAtomic(path, png.Bytes()); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// printChunks lists every chunk in the file, one line each.
func printChunks(logger zerolog.Logger, path string) error {
	png, err := readPng(path)
	if err != nil {
		return err
	}

	chunks := png.Chunks()
	logger.Debug().Int("chunks", len(chunks)).Msg("parsed container")
	for _, c := range chunks {
		fmt.Println(c)
	}
	return nil
}

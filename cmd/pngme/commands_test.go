// Copyright 2024 The pngme Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/lpaulic/pngme"
	"github.com/lpaulic/pngme/internal/fsio"
)

func writeTestPng(t *testing.T) string {
	t.Helper()
	png := pngme.NewPng()
	ct, err := pngme.ChunkTypeFromString("teXt")
	require.NoError(t, err)
	png.AppendChunk(pngme.NewChunk(ct, []byte("hello")))

	path := filepath.Join(t.TempDir(), "test.png")
	require.NoError(t, os.WriteFile(path, png.Bytes(), 0644))
	return path
}

func TestRunEncodeDecode(t *testing.T) {
	logger := zerolog.Nop()
	path := writeTestPng(t)

	err := run(logger, "encode", []string{path, "RuSt", "a secret"})
	require.NoError(t, err)

	buf, err := fsio.ReadFile(path)
	require.NoError(t, err)
	png, err := pngme.ParsePng(buf)
	require.NoError(t, err)

	chunk := png.ChunkByType("RuSt")
	require.NotNil(t, chunk)
	text, err := chunk.Text()
	require.NoError(t, err)
	require.Equal(t, "a secret", text)

	require.NoError(t, run(logger, "decode", []string{path, "RuSt"}))
}

func TestRunEncodeToOutputFile(t *testing.T) {
	logger := zerolog.Nop()
	path := writeTestPng(t)
	output := filepath.Join(filepath.Dir(path), "out.png")

	err := run(logger, "encode", []string{path, "RuSt", "a secret", output})
	require.NoError(t, err)

	// source untouched
	buf, err := fsio.ReadFile(path)
	require.NoError(t, err)
	png, err := pngme.ParsePng(buf)
	require.NoError(t, err)
	require.Nil(t, png.ChunkByType("RuSt"))

	buf, err = fsio.ReadFile(output)
	require.NoError(t, err)
	png, err = pngme.ParsePng(buf)
	require.NoError(t, err)
	require.NotNil(t, png.ChunkByType("RuSt"))
}

func TestRunEncodeRejectsInvalidType(t *testing.T) {
	logger := zerolog.Nop()
	path := writeTestPng(t)
	original, err := os.ReadFile(path)
	require.NoError(t, err)

	for _, chunkType := range []string{"Ru1t", "Rust", "toolong", "ab"} {
		err := run(logger, "encode", []string{path, chunkType, "msg"})
		require.Error(t, err, "type %q", chunkType)
	}

	// a rejected encode never rewrites the file
	buf, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, original, buf)
}

func TestRunDecodeAbsentIsNotAFailure(t *testing.T) {
	logger := zerolog.Nop()
	path := writeTestPng(t)
	require.NoError(t, run(logger, "decode", []string{path, "noPe"}))
}

func TestRunRemove(t *testing.T) {
	logger := zerolog.Nop()
	path := writeTestPng(t)

	require.NoError(t, run(logger, "remove", []string{path, "teXt"}))

	buf, err := fsio.ReadFile(path)
	require.NoError(t, err)
	png, err := pngme.ParsePng(buf)
	require.NoError(t, err)
	require.Nil(t, png.ChunkByType("teXt"))

	err = run(logger, "remove", []string{path, "teXt"})
	require.ErrorIs(t, err, pngme.ErrChunkNotFound)
}

func TestRunPrint(t *testing.T) {
	logger := zerolog.Nop()
	require.NoError(t, run(logger, "print", []string{writeTestPng(t)}))
}

func TestRunRejectsGarbageFile(t *testing.T) {
	logger := zerolog.Nop()
	path := filepath.Join(t.TempDir(), "garbage.png")
	require.NoError(t, os.WriteFile(path, []byte("not a png"), 0644))

	err := run(logger, "print", []string{path})
	require.ErrorIs(t, err, pngme.ErrInvalidSignature)
}

func TestRunBadUsage(t *testing.T) {
	logger := zerolog.Nop()
	require.Error(t, run(logger, "frobnicate", nil))
	require.Error(t, run(logger, "encode", []string{"only.png"}))
	require.Error(t, run(logger, "decode", []string{"only.png"}))
	require.Error(t, run(logger, "remove", []string{"only.png"}))
	require.Error(t, run(logger, "print", nil))
}

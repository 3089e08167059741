// Copyright 2024 The pngme Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package fsio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blob.bin")
	expected := []byte("\x89PNG\r\n\x1a\nnot really a png, but bytes are bytes")
	require.NoError(t, os.WriteFile(path, expected, 0644))

	actual, err := ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, expected, actual)
}

func TestReadFileEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.bin")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	buf, err := ReadFile(path)
	require.NoError(t, err)
	require.Empty(t, buf)
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.bin"))
	require.Error(t, err)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.bin")

	require.NoError(t, WriteFileAtomic(path, []byte("first")))
	require.NoError(t, WriteFileAtomic(path, []byte("second")))

	buf, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, []byte("second"), buf)

	// no tempfiles left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "out.bin", entries[0].Name())
}

func TestWriteFileAtomicKeepsOriginalOnFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keep.bin")
	require.NoError(t, os.WriteFile(path, []byte("original"), 0644))

	// writing into a directory that doesn't exist fails before rename
	err := WriteFileAtomic(filepath.Join(dir, "missing", "keep.bin"), []byte("new"))
	require.Error(t, err)

	buf, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, []byte("original"), buf)
}

// Copyright 2024 The pngme Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package fsio reads and writes whole files for the codec.  Reads go
// through mmap; writes go to a tempfile that is fsynced and renamed over
// the target, so the target is never left half-written.
package fsio

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// ReadFile returns the complete contents of the file at path.  The file
// is mapped, copied into a heap buffer, and unmapped before returning, so
// the result does not pin the mapping.
func ReadFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("os.Open(%s): %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("f.Stat: %w", err)
	}
	size := info.Size()
	if size == 0 {
		// mmap rejects zero-length mappings
		return []byte{}, nil
	}

	m, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("unix.Mmap(%s): %w", path, err)
	}
	defer func() {
		_ = unix.Munmap(m)
	}()

	if err := unix.Madvise(m, unix.MADV_SEQUENTIAL); err != nil {
		return nil, fmt.Errorf("madvise: %w", err)
	}

	buf := make([]byte, size)
	copy(buf, m)
	return buf, nil
}

// WriteFileAtomic replaces the file at path with data.  The write lands
// in a tempfile in the same directory and only reaches path via rename,
// so a failure partway leaves the original untouched.
func WriteFileAtomic(path string, data []byte) error {
	path, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("filepath.Abs: %w", err)
	}
	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, "pngme.*.tmp")
	if err != nil {
		return fmt.Errorf("os.CreateTemp (may need permissions for %s): %w", dir, err)
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return fmt.Errorf("f.Write: %w", err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return fmt.Errorf("f.Sync: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return fmt.Errorf("f.Close: %w", err)
	}

	if err := os.Chmod(f.Name(), 0644); err != nil {
		_ = os.Remove(f.Name())
		return fmt.Errorf("os.Chmod(0644): %w", err)
	}
	if err := os.Rename(f.Name(), path); err != nil {
		_ = os.Remove(f.Name())
		return fmt.Errorf("os.Rename: %w", err)
	}
	return nil
}

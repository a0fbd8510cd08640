// Copyright 2020 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
)

// osFileIO is the workspace.FileIO implementation backing the real
// editor binary: plain os/path calls, the external collaborator §1
// names without constraining its shape.
type osFileIO struct{}

func (osFileIO) ReadBytes(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (osFileIO) WriteBytes(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}

func (osFileIO) Canonicalize(path string) (string, error) {
	return filepath.Abs(path)
}

func (osFileIO) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

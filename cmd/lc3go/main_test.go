// Copyright (C) 2026  arvhal

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunNoImages(t *testing.T) {
	assert.Equal(t, 2, run(&CLI{}))
}

func TestRunUnreadableImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.obj")

	assert.Equal(t, 1, run(&CLI{Images: []string{path}}))
}

func TestRunHaltingImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "halt.obj")

	image := make([]byte, 4)
	binary.BigEndian.PutUint16(image[0:], 0x3000) // origin
	binary.BigEndian.PutUint16(image[2:], 0xF025) // TRAP HALT

	require.NoError(t, os.WriteFile(path, image, 0644))

	assert.Equal(t, 0, run(&CLI{Images: []string{path}}))
}

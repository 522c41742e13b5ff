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

package machine

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// LoadImage reads a program image: big-endian words, the first giving the
// origin address, the rest stored from the origin upward. Loading stops at
// end of input or at the top of the address space, whichever comes first.
// Several images may be loaded before the machine runs.
func (mc *Machine) LoadImage(reader io.Reader) error {
	scratch := make([]byte, 2)

	if _, err := io.ReadFull(reader, scratch); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return ErrTruncatedImage
		}

		return err
	}

	origin := binary.BigEndian.Uint16(scratch)

	for addr := uint32(origin); addr < 1<<16; addr++ {
		_, err := io.ReadFull(reader, scratch)

		if errors.Is(err, io.EOF) {
			return nil
		} else if errors.Is(err, io.ErrUnexpectedEOF) {
			return ErrTruncatedImage
		} else if err != nil {
			return err
		}

		mc.State.Memory[addr] = binary.BigEndian.Uint16(scratch)
	}

	return nil
}

// LoadImageFile loads the image at path.
func (mc *Machine) LoadImageFile(path string) error {
	file, err := os.Open(path)

	if err != nil {
		return err
	}

	defer file.Close()

	if err := mc.LoadImage(file); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	return nil
}

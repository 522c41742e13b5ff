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

package encoding_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arvhal/lc3go/pkg/encoding"
)

func TestSignExtend(t *testing.T) {
	for _, test := range []struct {
		Name     string
		Value    uint16
		Bitcount uint16
		Want     uint16
	}{
		{"imm5 -1", 0x1F, 5, 0xFFFF},
		{"imm5 max positive", 0x0F, 5, 0x000F},
		{"imm5 min negative", 0x10, 5, 0xFFF0},
		{"imm5 zero", 0x00, 5, 0x0000},
		{"offset6 -1", 0x3F, 6, 0xFFFF},
		{"offset6 max positive", 0x1F, 6, 0x001F},
		{"offset6 min negative", 0x20, 6, 0xFFE0},
		{"offset9 -1", 0x1FF, 9, 0xFFFF},
		{"offset9 max positive", 0x0FF, 9, 0x00FF},
		{"offset9 min negative", 0x100, 9, 0xFF00},
		{"offset11 -1", 0x7FF, 11, 0xFFFF},
		{"offset11 max positive", 0x3FF, 11, 0x03FF},
		{"offset11 min negative", 0x400, 11, 0xFC00},
	} {
		t.Run(test.Name, func(t *testing.T) {
			assert.Equal(t, test.Want,
				encoding.SignExtend(test.Value, test.Bitcount))
		})
	}
}

// For every supported width a clear sign bit must leave the value
// untouched, and a set sign bit must fill all high bits.
func TestSignExtendExhaustive(t *testing.T) {
	for _, bitcount := range []uint16{5, 6, 9, 11} {
		for value := uint16(0); value < 1<<bitcount; value++ {
			have := encoding.SignExtend(value, bitcount)

			if ((value >> (bitcount - 1)) & 0x1) == 0 {
				assert.Equal(t, value, have)
			} else {
				assert.Equal(t,
					value|(0xFFFF<<bitcount), have)
			}
		}
	}
}

func TestZeroExtend(t *testing.T) {
	assert.Equal(t, uint16(0x25), encoding.ZeroExtend(0xF025, 8))
	assert.Equal(t, uint16(0xFF), encoding.ZeroExtend(0x00FF, 8))
	assert.Equal(t, uint16(0x00), encoding.ZeroExtend(0xFF00, 8))
}

func TestSwapEndian(t *testing.T) {
	assert.Equal(t, uint16(0x3412), encoding.SwapEndian(0x1234))
	assert.Equal(t, uint16(0x1234), encoding.SwapEndian(
		encoding.SwapEndian(0x1234)))
}

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

// Package encoding provides the bit-level helpers shared by the machine:
// two's-complement sign extension of instruction immediates and byte-order
// conversion for program image words.
package encoding

// SignExtend widens a bitcount-wide two's-complement value to 16 bits,
// replicating the sign bit into the added high bits. The sign-bit test must
// keep its explicit grouping; in C-family precedence `&0x1 == 1` binds as
// `&(0x1==1)` and the ungrouped form survives only by accident.
func SignExtend(value uint16, bitcount uint16) uint16 {
	if ((value >> (bitcount - 1)) & 0x1) == 1 {
		value |= (0xFFFF << bitcount)
	}

	return value
}

// ZeroExtend masks value down to its low bitcount bits.
func ZeroExtend(value uint16, bitcount uint16) uint16 {
	return value & ((1 << bitcount) - 1)
}

// SwapEndian exchanges the two bytes of a word.
func SwapEndian(value uint16) uint16 {
	return (value >> 8) | (value << 8)
}

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

// Package machine implements an LC-3 virtual machine: 65536 words of
// memory, eight general-purpose registers, a program counter and condition
// register, and the fetch/decode/execute loop over the 15-opcode
// instruction set. Traps are serviced in the host against a Console rather
// than through in-memory trap routines, and the reserved opcodes fault.
package machine

// Console is the character device the machine performs trap I/O and
// keyboard polling against. Poll must never block; ReadByte blocks until a
// character arrives.
type Console interface {
	Poll() bool
	ReadByte() (byte, error)
	WriteByte(byte) error
	Flush() error
}

// MachineState is the full architectural state. Addresses and register
// indices are uint16-narrow, so access wraps rather than faulting, matching
// the absence of memory protection in the target architecture.
type MachineState struct {
	Registers [8]uint16

	// Program is the program counter. It is incremented at fetch, before
	// the instruction body runs, so PC-relative addressing is relative to
	// the following instruction.
	Program uint16

	// Condition holds exactly one of FLAG_POS, FLAG_ZERO, FLAG_NEG.
	Condition uint16

	Memory [1 << 16]uint16
}

type Machine struct {
	Console Console
	State   MachineState
}

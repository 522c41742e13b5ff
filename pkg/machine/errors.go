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
	"errors"
	"fmt"
)

var (
	// ErrHalted is returned by Step when the program executes TRAP HALT.
	// It marks a graceful stop, not a failure.
	ErrHalted = errors.New("machine halted")

	// ErrIllegalOpcode is the fault for the reserved opcode and for RTI,
	// which this machine subset defines no handler for.
	ErrIllegalOpcode = errors.New("illegal opcode")

	// ErrUnknownTrap is the fault for a trap vector outside the implemented
	// service set.
	ErrUnknownTrap = errors.New("unknown trap vector")

	// ErrTruncatedImage is returned when a program image ends mid-word.
	ErrTruncatedImage = errors.New("truncated image")
)

// FaultError records where the machine faulted. PC is the address of the
// faulting instruction, Instruction the fetched word.
type FaultError struct {
	PC          uint16
	Instruction uint16
	Err         error
}

func (e *FaultError) Error() string {
	return fmt.Sprintf(
		"%v: %#04x at %#04x", e.Err, e.Instruction, e.PC,
	)
}

func (e *FaultError) Unwrap() error {
	return e.Err
}

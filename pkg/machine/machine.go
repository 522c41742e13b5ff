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

	"github.com/arvhal/lc3go/pkg/encoding"
)

func (mc *MachineState) Reset() {
	for i := range mc.Registers {
		mc.Registers[i] = 0x0000
	}

	for i := range mc.Memory {
		mc.Memory[i] = 0x0000
	}

	mc.Program = MEMSPACE_USER
	mc.Condition = FLAG_ZERO
}

// read returns the word at addr. Reading DEV_KBSR polls the console: a
// pending character sets the ready bit and latches the character into
// DEV_KBDR, otherwise the status register reads as zero. The side effect
// fires on every read of that address, instruction fetch included.
func (mc *Machine) read(addr uint16) uint16 {
	if addr == DEV_KBSR {
		if mc.Console != nil && mc.Console.Poll() {
			key, err := mc.Console.ReadByte()

			if err == nil {
				mc.State.Memory[DEV_KBSR] = 1 << 15
				mc.State.Memory[DEV_KBDR] = uint16(key)
			} else {
				mc.State.Memory[DEV_KBSR] = 0
			}
		} else {
			mc.State.Memory[DEV_KBSR] = 0
		}
	}

	return mc.State.Memory[addr]
}

func (mc *Machine) write(addr uint16, value uint16) {
	mc.State.Memory[addr] = value
}

// setFlags reads register r back and sets the single condition flag
// matching its stored value. Callers must write the register first.
func (mc *Machine) setFlags(r uint16) {
	value := mc.State.Registers[r]

	if value == 0 {
		mc.State.Condition = FLAG_ZERO
	} else if value>>15 == 1 {
		mc.State.Condition = FLAG_NEG
	} else {
		mc.State.Condition = FLAG_POS
	}
}

// Step fetches, decodes and executes one instruction. It returns nil while
// the program should keep running, ErrHalted after TRAP HALT, and a
// *FaultError for the reserved opcodes and unknown trap vectors.
func (mc *Machine) Step() error {
	pc := mc.State.Program
	instruction := mc.read(pc)

	mc.State.Program++

	switch instruction >> 12 {
	// ADD  |0001    |DR   |SR1  |0|00 |SR2   | Register  addition
	// ADD  |0001    |DR   |SR1  |1|imm5      | Immediate addition
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_ADD:
		dest := (instruction >> 9) & 0x7
		src1 := (instruction >> 6) & 0x7

		if (instruction>>5)&0x1 == 1 {
			imm5 := encoding.SignExtend(instruction&0x1F, 5)

			mc.State.Registers[dest] = mc.State.Registers[src1] + imm5
		} else {
			src2 := instruction & 0x7

			mc.State.Registers[dest] = mc.State.Registers[src1] +
				mc.State.Registers[src2]
		}

		mc.setFlags(dest)

	// AND  |0101    |DR   |SR1  |0|00 |SR2   | Register  bitwise
	// AND  |0101    |DR   |SR1  |1|imm5      | Immediate bitwise
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_AND:
		dest := (instruction >> 9) & 0x7
		src1 := (instruction >> 6) & 0x7

		if (instruction>>5)&0x1 == 1 {
			imm5 := encoding.SignExtend(instruction&0x1F, 5)

			mc.State.Registers[dest] = mc.State.Registers[src1] & imm5
		} else {
			src2 := instruction & 0x7

			mc.State.Registers[dest] = mc.State.Registers[src1] &
				mc.State.Registers[src2]
		}

		mc.setFlags(dest)

	// BR   |0000    |N|Z|P|PCoffset9         | Conditional branch
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_BR:
		flags := (instruction >> 9) & 0x7

		if flags&mc.State.Condition != 0 {
			mc.State.Program += encoding.SignExtend(instruction&0x1FF, 9)
		}

	// JMP  |1100    |000  |BaseR|000000      | Jump
	// RET  |1100    |000  |111  |000000      | Return (JMP R7)
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_JMP:
		src := (instruction >> 6) & 0x7

		mc.State.Program = mc.State.Registers[src]

	// JSR  |0100    |1|PCoffset11            | Jump to subroutine
	// JSRR |0100    |0|00 |BaseR|000000      | Jump to subroutine register
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_JSR:
		mc.State.Registers[7] = mc.State.Program

		if (instruction>>11)&0x1 == 1 {
			mc.State.Program += encoding.SignExtend(instruction&0x7FF, 11)
		} else {
			src := (instruction >> 6) & 0x7

			mc.State.Program = mc.State.Registers[src]
		}

	// LD   |0010    |DR   |PCoffset9         | Load
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_LD:
		dest := (instruction >> 9) & 0x7
		addr := mc.State.Program + encoding.SignExtend(instruction&0x1FF, 9)

		mc.State.Registers[dest] = mc.read(addr)

		mc.setFlags(dest)

	// LDI  |1010    |DR   |PCoffset9         | Load indirect
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_LDI:
		dest := (instruction >> 9) & 0x7
		addr := mc.State.Program + encoding.SignExtend(instruction&0x1FF, 9)

		mc.State.Registers[dest] = mc.read(mc.read(addr))

		mc.setFlags(dest)

	// LDR  |0110    |DR   |BaseR|offset6     | Load base+offset
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_LDR:
		dest := (instruction >> 9) & 0x7
		src := (instruction >> 6) & 0x7
		addr := mc.State.Registers[src] +
			encoding.SignExtend(instruction&0x3F, 6)

		mc.State.Registers[dest] = mc.read(addr)

		mc.setFlags(dest)

	// LEA  |1110    |DR   |PCoffset9         | Load effective address
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_LEA:
		dest := (instruction >> 9) & 0x7
		addr := mc.State.Program + encoding.SignExtend(instruction&0x1FF, 9)

		mc.State.Registers[dest] = addr

		mc.setFlags(dest)

	// NOT  |1001    |DR   |SR   |1|11111     | Bitwise complement
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_NOT:
		dest := (instruction >> 9) & 0x7
		src := (instruction >> 6) & 0x7

		mc.State.Registers[dest] = ^mc.State.Registers[src]

		mc.setFlags(dest)

	// ST   |0011    |SR   |PCoffset9         | Store
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_ST:
		src := (instruction >> 9) & 0x7
		addr := mc.State.Program + encoding.SignExtend(instruction&0x1FF, 9)

		mc.write(addr, mc.State.Registers[src])

	// STI  |1011    |SR   |PCoffset9         | Store indirect
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_STI:
		src := (instruction >> 9) & 0x7
		addr := mc.State.Program + encoding.SignExtend(instruction&0x1FF, 9)

		mc.write(mc.read(addr), mc.State.Registers[src])

	// STR  |0111    |SR   |BaseR|offset6     | Store base+offset
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_STR:
		src := (instruction >> 9) & 0x7
		dest := (instruction >> 6) & 0x7
		addr := mc.State.Registers[dest] +
			encoding.SignExtend(instruction&0x3F, 6)

		mc.write(addr, mc.State.Registers[src])

	// TRAP |1111    |0000   |trapvect8       | Host service call
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_TRAP:
		return mc.trap(pc, instruction)

	// RES  |1101    |                        | Reserved (illegal)
	// RTI  |1000    |000000000000            | No handler in this subset
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	default:
		return &FaultError{
			PC:          pc,
			Instruction: instruction,
			Err:         ErrIllegalOpcode,
		}
	}

	return nil
}

// trap services the vector in the low byte of instruction against the
// console. Output-producing traps flush before returning.
func (mc *Machine) trap(pc uint16, instruction uint16) error {
	if mc.Console == nil {
		return fmt.Errorf("trap %#02x: no console attached",
			instruction&0xFF)
	}

	mc.State.Registers[7] = mc.State.Program

	switch encoding.ZeroExtend(instruction, 8) {
	case TRAP_GETC:
		key, err := mc.Console.ReadByte()

		if err != nil {
			return fmt.Errorf("trap GETC: %w", err)
		}

		mc.State.Registers[0] = uint16(key)
		mc.setFlags(0)

	case TRAP_OUT:
		if err := mc.Console.WriteByte(
			byte(mc.State.Registers[0]),
		); err != nil {
			return fmt.Errorf("trap OUT: %w", err)
		}

		if err := mc.Console.Flush(); err != nil {
			return fmt.Errorf("trap OUT: %w", err)
		}

	case TRAP_PUTS:
		for addr := mc.State.Registers[0]; ; addr++ {
			word := mc.read(addr)

			if word == 0 {
				break
			}

			if err := mc.Console.WriteByte(byte(word)); err != nil {
				return fmt.Errorf("trap PUTS: %w", err)
			}
		}

		if err := mc.Console.Flush(); err != nil {
			return fmt.Errorf("trap PUTS: %w", err)
		}

	case TRAP_IN:
		if err := mc.writeString("Enter a character: "); err != nil {
			return fmt.Errorf("trap IN: %w", err)
		}

		key, err := mc.Console.ReadByte()

		if err != nil {
			return fmt.Errorf("trap IN: %w", err)
		}

		if err := mc.Console.WriteByte(key); err != nil {
			return fmt.Errorf("trap IN: %w", err)
		}

		if err := mc.Console.Flush(); err != nil {
			return fmt.Errorf("trap IN: %w", err)
		}

		mc.State.Registers[0] = uint16(key)
		mc.setFlags(0)

	case TRAP_PUTSP:
		// Two characters per word, low byte first. The final word may
		// carry a single character in its low byte.
		for addr := mc.State.Registers[0]; ; addr++ {
			word := mc.read(addr)

			if word == 0 {
				break
			}

			if err := mc.Console.WriteByte(byte(word)); err != nil {
				return fmt.Errorf("trap PUTSP: %w", err)
			}

			if word>>8 != 0 {
				if err := mc.Console.WriteByte(
					byte(word >> 8),
				); err != nil {
					return fmt.Errorf("trap PUTSP: %w", err)
				}
			}
		}

		if err := mc.Console.Flush(); err != nil {
			return fmt.Errorf("trap PUTSP: %w", err)
		}

	case TRAP_HALT:
		if err := mc.writeString("HALT\n"); err != nil {
			return fmt.Errorf("trap HALT: %w", err)
		}

		return ErrHalted

	default:
		return &FaultError{
			PC:          pc,
			Instruction: instruction,
			Err:         ErrUnknownTrap,
		}
	}

	return nil
}

func (mc *Machine) writeString(s string) error {
	for i := 0; i < len(s); i++ {
		if err := mc.Console.WriteByte(s[i]); err != nil {
			return err
		}
	}

	return mc.Console.Flush()
}

// Run steps the machine until it stops. A graceful HALT returns nil; any
// fault is returned as-is and no further instructions execute.
func (mc *Machine) Run() error {
	for {
		if err := mc.Step(); err != nil {
			if errors.Is(err, ErrHalted) {
				return nil
			}

			return err
		}
	}
}

package architecture

import (
	"fmt"
)

const (
	// The register machine has 32 bit words and byte addressing.
	WordSize = 4

	NumRegisters = 32
)

type Register int

func (register Register) String() string {
	return fmt.Sprintf("$%d", int(register))
}

// Register usage convention.  Every procedure, the entry procedure included,
// relies on these assignments.
const (
	// Always zero.
	Zero = Register(0)

	// The entry procedure's two arguments, and the runtime calls' argument.
	FirstArgument  = Register(1)
	SecondArgument = Register(2)

	// Every expression leaves its value here.
	Accumulator = Register(3)

	// Holds WordSize for the whole program.
	Word = Register(4)

	// Holds the second operand of binary operations and call targets.
	Scratch = Register(5)

	// Hold the two partial results of equality tests.
	CompareLow  = Register(6)
	CompareHigh = Register(7)

	// Holds the address of runtime call targets.
	RuntimeTarget = Register(10)

	// Holds 1 for the whole program.  1 is both the boolean true value and the
	// null pointer sentinel.
	True = Register(11)
	Null = True

	FramePointer  = Register(29)
	StackPointer  = Register(30)
	ReturnAddress = Register(31)

	// Registers at or below this number are saved by non-entry procedures.
	LastSavedRegister = Register(20)
)

// SavedRegisters returns the registers a non-entry procedure preserves, in
// save order.  The accumulator carries the return value and is never saved.
func SavedRegisters() []Register {
	registers := []Register{}
	for register := Zero; register <= LastSavedRegister; register++ {
		if register == Accumulator {
			continue
		}
		registers = append(registers, register)
	}
	return registers
}

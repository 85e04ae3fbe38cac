package hw

import "m6502/emu/log"

// CPU is the 6502 register file. Instruction decoding and execution are not
// implemented; the machine only needs a component exposing a reset-to-zero
// operation to hang the memory subsystem on.
type CPU struct {
	A  uint8  // accumulator
	X  uint8  // index register X
	Y  uint8  // index register Y
	SP uint8  // stack pointer
	P  uint8  // status flags
	PC uint16 // program counter
}

// Reset zeroes every register.
func (c *CPU) Reset() {
	log.ModCPU.DebugZ("cpu reset").End()

	c.A = 0
	c.X = 0
	c.Y = 0
	c.SP = 0
	c.P = 0
	c.PC = 0
}

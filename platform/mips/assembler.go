package mips

import (
	"fmt"
	"strings"

	arch "github.com/pattyshack/wlp4c/architecture"
)

const (
	// Memory mapped io addresses.
	inputAddress  = "0xffff0004"
	outputAddress = "0xffff000c"
)

// assembler accumulates assembly text, one instruction or directive per line.
type assembler struct {
	builder strings.Builder
}

func (asm *assembler) String() string {
	return asm.builder.String()
}

func (asm *assembler) emit(format string, args ...interface{}) {
	fmt.Fprintf(&asm.builder, format, args...)
	asm.builder.WriteByte('\n')
}

func (asm *assembler) importSymbol(symbol string) {
	asm.emit(".import %s", symbol)
}

func (asm *assembler) label(name string) {
	asm.emit("%s:", name)
}

// loadWord loads the value (a number, hex literal or label) into dest using
// lis followed by the .word directive.
func (asm *assembler) loadWord(dest arch.Register, value interface{}) {
	asm.emit("lis %s", dest)
	asm.emit(".word %v", value)
}

func (asm *assembler) add(dest arch.Register, s arch.Register, t arch.Register) {
	asm.emit("add %s, %s, %s", dest, s, t)
}

func (asm *assembler) sub(dest arch.Register, s arch.Register, t arch.Register) {
	asm.emit("sub %s, %s, %s", dest, s, t)
}

// move copies src into dest.
func (asm *assembler) move(dest arch.Register, src arch.Register) {
	asm.add(dest, src, arch.Zero)
}

func (asm *assembler) slt(dest arch.Register, s arch.Register, t arch.Register) {
	asm.emit("slt %s, %s, %s", dest, s, t)
}

func (asm *assembler) sltu(
	dest arch.Register,
	s arch.Register,
	t arch.Register,
) {
	asm.emit("sltu %s, %s, %s", dest, s, t)
}

func (asm *assembler) mult(s arch.Register, t arch.Register) {
	asm.emit("mult %s, %s", s, t)
}

func (asm *assembler) div(s arch.Register, t arch.Register) {
	asm.emit("div %s, %s", s, t)
}

func (asm *assembler) mflo(dest arch.Register) {
	asm.emit("mflo %s", dest)
}

func (asm *assembler) mfhi(dest arch.Register) {
	asm.emit("mfhi %s", dest)
}

func (asm *assembler) lw(t arch.Register, offset int, s arch.Register) {
	asm.emit("lw %s, %d(%s)", t, offset, s)
}

func (asm *assembler) sw(t arch.Register, offset int, s arch.Register) {
	asm.emit("sw %s, %d(%s)", t, offset, s)
}

func (asm *assembler) beq(s arch.Register, t arch.Register, label string) {
	asm.emit("beq %s, %s, %s", s, t, label)
}

func (asm *assembler) bne(s arch.Register, t arch.Register, label string) {
	asm.emit("bne %s, %s, %s", s, t, label)
}

func (asm *assembler) jr(s arch.Register) {
	asm.emit("jr %s", s)
}

func (asm *assembler) jalr(s arch.Register) {
	asm.emit("jalr %s", s)
}

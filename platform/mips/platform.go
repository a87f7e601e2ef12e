package mips

import (
	"io"

	"github.com/pattyshack/wlp4c/analyzer"
	"github.com/pattyshack/wlp4c/platform"
)

type Platform struct{}

func NewPlatform() platform.Platform {
	return Platform{}
}

func (Platform) ArchitectureName() platform.ArchitectureName {
	return platform.Mips
}

func (Platform) RuntimeCalls() []platform.RuntimeCall {
	return platform.RuntimeCalls()
}

func (Platform) Generate(program *analyzer.Program, output io.Writer) error {
	gen := newGenerator(program.Symbols)
	gen.generateProgram(program.Root)

	_, err := io.WriteString(output, gen.String())
	return err
}

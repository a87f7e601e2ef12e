package platform

import (
	"io"

	"github.com/pattyshack/wlp4c/analyzer"
)

type ArchitectureName string

const (
	Mips = ArchitectureName("mips")
)

type Platform interface {
	ArchitectureName() ArchitectureName

	// Runtime procedures the generated code imports.
	RuntimeCalls() []RuntimeCall

	// Generate writes the type checked program's assembly.  Nothing is written
	// if generation fails.
	Generate(program *analyzer.Program, output io.Writer) error
}

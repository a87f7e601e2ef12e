package compiler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/pattyshack/gt/parseutil"

	"github.com/pattyshack/wlp4c/analyzer"
	"github.com/pattyshack/wlp4c/analyzer/util"
	"github.com/pattyshack/wlp4c/ast"
	"github.com/pattyshack/wlp4c/parser"
	"github.com/pattyshack/wlp4c/parser/lr"
	"github.com/pattyshack/wlp4c/platform"
)

type Stage string

const (
	ParseStage     = Stage("parse")
	TypeCheckStage = Stage("typecheck")
	CodegenStage   = Stage("codegen")
)

// StageError identifies the pipeline stage that failed.
type StageError struct {
	Stage Stage
	Err   error
}

func (err *StageError) Error() string {
	return fmt.Sprintf("%s: %s", err.Stage, err.Err)
}

func (err *StageError) Unwrap() error {
	return err.Err
}

// FormatError returns the single line diagnostic reported to users.
func FormatError(err error) string {
	syntaxErr := &parser.SyntaxError{}
	if errors.As(err, &syntaxErr) {
		return fmt.Sprintf("ERROR at %d", syntaxErr.Position)
	}

	return "ERROR: " + err.Error()
}

type Compiler struct {
	table    *lr.Table
	platform platform.Platform

	// Optional.  Stage progress is logged when set.
	Logger *log.Logger
}

func New(table *lr.Table, target platform.Platform) *Compiler {
	return &Compiler{
		table:    table,
		platform: target,
	}
}

func (compiler *Compiler) Table() *lr.Table {
	return compiler.table
}

func (compiler *Compiler) logf(format string, args ...interface{}) {
	if compiler.Logger != nil {
		compiler.Logger.Printf(format, args...)
	}
}

// Parse parses a "KIND lexeme" token stream.
func (compiler *Compiler) Parse(
	reader parseutil.BufferedByteLocationReader,
) (
	*ast.Interior,
	error,
) {
	compiler.logf("parsing token stream")
	root, err := parser.ParseTokenStream(compiler.table, reader)
	if err != nil {
		return nil, &StageError{Stage: ParseStage, Err: err}
	}
	return root, nil
}

// ReadTree reads a previously printed parse tree.
func (compiler *Compiler) ReadTree(
	reader parseutil.BufferedByteLocationReader,
) (
	*ast.Interior,
	error,
) {
	compiler.logf("reading parse tree")
	root, err := parser.ReadTree(compiler.table, reader)
	if err != nil {
		return nil, &StageError{Stage: ParseStage, Err: err}
	}
	return root, nil
}

func (compiler *Compiler) Check(root *ast.Interior) (*analyzer.Program, error) {
	compiler.logf("type checking")
	program, err := analyzer.Analyze(root)
	if err != nil {
		return nil, &StageError{Stage: TypeCheckStage, Err: err}
	}
	return program, nil
}

func (compiler *Compiler) Generate(
	program *analyzer.Program,
	output io.Writer,
) error {
	compiler.logf("generating %s code", compiler.platform.ArchitectureName())
	err := compiler.platform.Generate(program, output)
	if err != nil {
		return &StageError{Stage: CodegenStage, Err: err}
	}
	return nil
}

// Compile translates a token stream into assembly.  The context is checked
// between stages.  Nothing is written to output on failure.
func (compiler *Compiler) Compile(
	ctx context.Context,
	reader parseutil.BufferedByteLocationReader,
	output io.Writer,
) error {
	root, err := compiler.Parse(reader)
	if err != nil {
		return err
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}

	program, err := compiler.Check(root)
	if err != nil {
		return err
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}

	return compiler.Generate(program, output)
}

type FileResult struct {
	Path     string
	Assembly []byte
	Err      error
}

// CompileFiles compiles independent token stream files concurrently.  The
// results are in input order.
func (compiler *Compiler) CompileFiles(
	ctx context.Context,
	paths []string,
) []*FileResult {
	results := make([]*FileResult, 0, len(paths))
	for _, path := range paths {
		results = append(results, &FileResult{Path: path})
	}

	util.ParallelProcess(
		results,
		func(result *FileResult) {
			content, err := os.ReadFile(result.Path)
			if err != nil {
				result.Err = err
				return
			}

			buffer := &bytes.Buffer{}
			result.Err = compiler.Compile(
				ctx,
				parseutil.NewBufferedByteLocationReaderFromSlice(
					result.Path,
					content),
				buffer)
			if result.Err == nil {
				result.Assembly = buffer.Bytes()
			}
		})

	return results
}

package main

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/pattyshack/gt/parseutil"
	"github.com/sanity-io/litter"
	cli "github.com/urfave/cli/v2"

	"github.com/pattyshack/wlp4c/analyzer"
	"github.com/pattyshack/wlp4c/ast"
	"github.com/pattyshack/wlp4c/compiler"
	"github.com/pattyshack/wlp4c/config"
	"github.com/pattyshack/wlp4c/platform/mips"
)

const (
	assemblyExtension = ".asm"
)

// session holds the resolved settings of a single invocation.
type session struct {
	*cli.Context

	config   *config.Config
	compiler *compiler.Compiler
}

// Flags may be given before or after the subcommand.  The innermost
// explicitly set value wins.
func lookupString(c *cli.Context, name string) string {
	for _, ctx := range c.Lineage() {
		if ctx.IsSet(name) {
			return ctx.String(name)
		}
	}
	return ""
}

func lookupBool(c *cli.Context, name string) bool {
	for _, ctx := range c.Lineage() {
		if ctx.IsSet(name) {
			return ctx.Bool(name)
		}
	}
	return false
}

func newSession(c *cli.Context) (*session, error) {
	cfg := config.Default()
	if path := lookupString(c, "config"); path != "" {
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return nil, err
		}
	}

	if grammar := lookupString(c, "grammar"); grammar != "" {
		cfg.Grammar = grammar
	}
	if output := lookupString(c, "output"); output != "" {
		cfg.Output = output
	}
	if lookupBool(c, "verbose") {
		cfg.Verbose = true
	}

	table, err := cfg.Table()
	if err != nil {
		return nil, err
	}

	comp := compiler.New(table, mips.NewPlatform())
	if cfg.Verbose {
		comp.Logger = log.New(os.Stderr, "wlp4c: ", 0)
	}

	return &session{
		Context:  c,
		config:   cfg,
		compiler: comp,
	}, nil
}

func (s *session) input() (parseutil.BufferedByteLocationReader, error) {
	fileName := lookupString(s.Context, "input")

	var content []byte
	var err error
	if fileName == "" {
		fileName = "<stdin>"
		content, err = io.ReadAll(os.Stdin)
	} else {
		content, err = os.ReadFile(fileName)
	}

	if err != nil {
		return parseutil.BufferedByteLocationReader{}, err
	}

	return parseutil.NewBufferedByteLocationReaderFromSlice(
		fileName,
		content), nil
}

// output writes the buffered result.  Nothing is written unless the whole
// stage succeeded.
func (s *session) output(buffer *bytes.Buffer) error {
	if s.config.Output == "" {
		_, err := buffer.WriteTo(os.Stdout)
		return err
	}
	return os.WriteFile(s.config.Output, buffer.Bytes(), 0644)
}

func (s *session) dump(root *ast.Interior) {
	if lookupBool(s.Context, "dump") {
		fmt.Fprintln(os.Stderr, litter.Sdump(root))
	}
}

func (s *session) parse() (*ast.Interior, error) {
	reader, err := s.input()
	if err != nil {
		return nil, err
	}

	root, err := s.compiler.Parse(reader)
	if err != nil {
		return nil, err
	}

	s.dump(root)
	return root, nil
}

func (s *session) readTree() (*analyzer.Program, error) {
	reader, err := s.input()
	if err != nil {
		return nil, err
	}

	root, err := s.compiler.ReadTree(reader)
	if err != nil {
		return nil, err
	}

	s.dump(root)
	return s.compiler.Check(root)
}

func compileFiles(s *session, paths []string) error {
	failed := 0
	for _, result := range s.compiler.CompileFiles(s.Context.Context, paths) {
		if result.Err != nil {
			failed++
			fmt.Fprintf(
				os.Stderr,
				"%s: %s\n",
				result.Path,
				compiler.FormatError(result.Err))
			continue
		}

		outputPath := strings.TrimSuffix(
			result.Path,
			filepath.Ext(result.Path)) + assemblyExtension
		err := os.WriteFile(outputPath, result.Assembly, 0644)
		if err != nil {
			return err
		}
	}

	if failed > 0 {
		return cli.Exit("", 1)
	}
	return nil
}

func compile(c *cli.Context) error {
	s, err := newSession(c)
	if err != nil {
		return err
	}

	if c.Args().Len() > 0 {
		return compileFiles(s, c.Args().Slice())
	}

	root, err := s.parse()
	if err != nil {
		return err
	}

	if c.Context.Err() != nil {
		return c.Context.Err()
	}

	program, err := s.compiler.Check(root)
	if err != nil {
		return err
	}

	buffer := &bytes.Buffer{}
	err = s.compiler.Generate(program, buffer)
	if err != nil {
		return err
	}
	return s.output(buffer)
}

func parse(c *cli.Context) error {
	s, err := newSession(c)
	if err != nil {
		return err
	}

	root, err := s.parse()
	if err != nil {
		return err
	}

	buffer := &bytes.Buffer{}
	err = ast.PrintTree(buffer, root, "")
	if err != nil {
		return err
	}
	return s.output(buffer)
}

func typecheck(c *cli.Context) error {
	s, err := newSession(c)
	if err != nil {
		return err
	}

	program, err := s.readTree()
	if err != nil {
		return err
	}

	buffer := &bytes.Buffer{}
	err = ast.PrintTree(buffer, program.Root, "")
	if err != nil {
		return err
	}
	return s.output(buffer)
}

func codegen(c *cli.Context) error {
	s, err := newSession(c)
	if err != nil {
		return err
	}

	// Re-checking an already typed tree is idempotent, and also rebuilds the
	// symbol tables.
	program, err := s.readTree()
	if err != nil {
		return err
	}

	buffer := &bytes.Buffer{}
	err = s.compiler.Generate(program, buffer)
	if err != nil {
		return err
	}
	return s.output(buffer)
}

func table(c *cli.Context) error {
	s, err := newSession(c)
	if err != nil {
		return err
	}

	buffer := &bytes.Buffer{}
	_, err = s.compiler.Table().WriteTo(buffer)
	if err != nil {
		return err
	}
	return s.output(buffer)
}

// flags returns a fresh flag set for the app and for each subcommand.
func flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "yaml config file",
		},
		&cli.StringFlag{
			Name:    "grammar",
			Aliases: []string{"g"},
			Usage:   "parse table file (defaults to the bundled grammar)",
		},
		&cli.StringFlag{
			Name:    "input",
			Aliases: []string{"i"},
			Usage:   "input file (defaults to stdin)",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output file (defaults to stdout)",
		},
		&cli.BoolFlag{
			Name:  "dump",
			Usage: "dump the parse tree to stderr",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "log stage progress to stderr",
		},
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:   "wlp4c",
		Usage:  "Compile WLP4 token streams into MIPS assembly",
		Flags:  flags(),
		Action: compile,
		Commands: []*cli.Command{
			{
				Name:      "compile",
				Usage:     "token stream -> assembly",
				ArgsUsage: "[token files...]",
				Flags:     flags(),
				Action:    compile,
			},
			{
				Name:   "parse",
				Usage:  "token stream -> parse tree",
				Flags:  flags(),
				Action: parse,
			},
			{
				Name:   "typecheck",
				Usage:  "parse tree -> typed parse tree",
				Flags:  flags(),
				Action: typecheck,
			},
			{
				Name:   "codegen",
				Usage:  "typed parse tree -> assembly",
				Flags:  flags(),
				Action: codegen,
			},
			{
				Name:   "table",
				Usage:  "write the parse table",
				Flags:  flags(),
				Action: table,
			},
		},
	}
}

func main() {
	err := newApp().Run(os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, compiler.FormatError(err))
		os.Exit(1)
	}
}

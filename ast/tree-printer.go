package ast

import (
	"bytes"
	"fmt"
	"io"
)

// TreeString returns the tree's textual form.  Each nesting level is
// prefixed by indent; an empty indent yields the canonical flat form.
func TreeString(node Node, indent string) string {
	buffer := &bytes.Buffer{}
	_ = PrintTree(buffer, node, indent)
	return buffer.String()
}

// PrintTree writes the tree in pre-order, one node per line:
//
//	lhs rhs...          (interior, "lhs .EMPTY" when nullable)
//	KIND lexeme         (leaf)
//
// followed by " : int" or " : int*" once the node is typed.
func PrintTree(output io.Writer, node Node, indent string) error {
	printer := &treePrinter{
		indentUnit: indent,
		writer:     output,
	}
	node.Walk(printer)
	return printer.err
}

type treePrinter struct {
	indentUnit string
	indent     string
	writer     io.Writer
	err        error
}

func (printer *treePrinter) write(format string, args ...interface{}) {
	if printer.err != nil {
		return
	}

	if len(args) == 0 {
		_, printer.err = printer.writer.Write([]byte(format))
	} else {
		_, printer.err = fmt.Fprintf(printer.writer, format, args...)
	}
}

func (printer *treePrinter) writeType(node Node) {
	if node.NodeType() != Unknown {
		printer.write(" : %s", node.NodeType())
	}
	printer.write("\n")
}

func (printer *treePrinter) Enter(n Node) {
	printer.write(printer.indent)

	switch node := n.(type) {
	case *Leaf:
		printer.write("%s %s", node.Kind, node.Lexeme)
	case *Interior:
		printer.write(node.Production.String())
	default:
		panic(fmt.Sprintf("unhandled node type: %T", n))
	}

	printer.writeType(n)
	printer.indent += printer.indentUnit
}

func (printer *treePrinter) Exit(n Node) {
	printer.indent = printer.indent[:len(printer.indent)-len(printer.indentUnit)]
}

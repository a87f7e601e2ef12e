package parser

import (
	"io"

	"github.com/pattyshack/gt/parseutil"

	"github.com/pattyshack/wlp4c/ast"
	"github.com/pattyshack/wlp4c/parser/lexer"
	"github.com/pattyshack/wlp4c/parser/lr"
)

const (
	typeSeparator = ":"
)

type treeReader struct {
	*lexer.LineReader
	table *lr.Table
}

// ReadTree reads the pre-order textual tree form produced by
// ast.PrintTree.  The grammar determines which lines are interior nodes and
// how many children each has.  Type suffixes are restored.
func ReadTree(
	table *lr.Table,
	reader parseutil.BufferedByteLocationReader,
) (
	*ast.Interior,
	error,
) {
	treeReader := &treeReader{
		LineReader: lexer.NewLineReader(reader),
		table:      table,
	}

	start := table.Start()
	node, err := treeReader.readNode(start.Lhs)
	if err != nil {
		return nil, err
	}

	root, ok := node.(*ast.Interior)
	if !ok || root.Production != start {
		return nil, parseutil.NewLocationError(
			node.Loc(),
			"tree root is not the start production (%s)",
			start)
	}

	fields, pos, err := treeReader.Next()
	if err == nil {
		return nil, parseutil.NewLocationError(
			pos.Loc(),
			"unexpected trailing line: %v",
			fields)
	}
	if err != io.EOF {
		return nil, err
	}

	return root, nil
}

// Splits off the optional ": type" suffix.
func splitType(
	fields []string,
	pos parseutil.StartEndPos,
) (
	[]string,
	ast.Type,
	error,
) {
	for idx, field := range fields {
		if field != typeSeparator {
			continue
		}

		if idx != len(fields)-2 {
			return nil, ast.Unknown, parseutil.NewLocationError(
				pos.Loc(),
				"malformed type suffix")
		}

		nodeType, ok := ast.ParseType(fields[idx+1])
		if !ok {
			return nil, ast.Unknown, parseutil.NewLocationError(
				pos.Loc(),
				"unknown type (%s)",
				fields[idx+1])
		}
		return fields[:idx], nodeType, nil
	}

	return fields, ast.Unknown, nil
}

func (reader *treeReader) readNode(expected string) (ast.Node, error) {
	fields, pos, err := reader.Next()
	if err == io.EOF {
		return nil, parseutil.NewLocationError(
			reader.CurrentLocation(),
			"unexpected end of tree, expected %s",
			expected)
	}
	if err != nil {
		return nil, err
	}

	fields, nodeType, err := splitType(fields, pos)
	if err != nil {
		return nil, err
	}

	if fields[0] != expected {
		return nil, parseutil.NewLocationError(
			pos.Loc(),
			"expected %s, found %s",
			expected,
			fields[0])
	}

	if !reader.table.IsNonterminal(fields[0]) {
		if len(fields) != 2 {
			return nil, parseutil.NewLocationError(
				pos.Loc(),
				"expected \"KIND lexeme\", found %d fields",
				len(fields))
		}

		leaf := ast.NewLeaf(pos, fields[0], fields[1])
		leaf.Type = nodeType
		return leaf, nil
	}

	production, ok := reader.table.LookupProduction(fields[0], fields[1:])
	if !ok {
		return nil, parseutil.NewLocationError(
			pos.Loc(),
			"unknown production: %v",
			fields)
	}

	children := make([]ast.Node, 0, len(production.Rhs))
	end := pos.End()
	for _, symbol := range production.Rhs {
		child, err := reader.readNode(symbol)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
		end = child.End()
	}

	if len(children) == 0 {
		children = nil
	}

	node := ast.NewInterior(
		parseutil.NewStartEndPos(pos.Loc(), end),
		production,
		children)
	node.Type = nodeType
	return node, nil
}

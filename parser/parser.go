package parser

import (
	"fmt"

	"github.com/pattyshack/gt/parseutil"

	"github.com/pattyshack/wlp4c/ast"
	"github.com/pattyshack/wlp4c/parser/lexer"
	"github.com/pattyshack/wlp4c/parser/lr"
)

// SyntaxError reports the first token with no automaton action.  Position is
// the token's 1-based index among real tokens (BOF/EOF are not counted).
type SyntaxError struct {
	Position int
	Token    *ast.Leaf
}

func (err *SyntaxError) Error() string {
	return fmt.Sprintf(
		"%s: unexpected %s (%s) at token %d",
		err.Token.Loc(),
		err.Token.Kind,
		err.Token.Lexeme,
		err.Position)
}

type parser struct {
	table *lr.Table

	states []int
	nodes  []ast.Node
}

func newParser(table *lr.Table) *parser {
	return &parser{
		table:  table,
		states: []int{lr.StartState},
	}
}

func (parser *parser) top() int {
	return parser.states[len(parser.states)-1]
}

// Pops the production's rhs off the stacks and pushes the new interior node.
// Nullable productions pop nothing and push a childless node located at
// emptyPos.
func (parser *parser) reduce(
	production *ast.Production,
	emptyPos parseutil.Location,
) (
	*ast.Interior,
	error,
) {
	size := len(production.Rhs)
	if size > len(parser.nodes) {
		return nil, fmt.Errorf(
			"malformed grammar table: cannot reduce %s with %d subtrees",
			production,
			len(parser.nodes))
	}

	var children []ast.Node
	pos := parseutil.NewStartEndPos(emptyPos, emptyPos)
	if size > 0 {
		children = make([]ast.Node, size)
		copy(children, parser.nodes[len(parser.nodes)-size:])
		pos = parseutil.NewStartEndPos(children[0].Loc(), children[size-1].End())

		parser.nodes = parser.nodes[:len(parser.nodes)-size]
		parser.states = parser.states[:len(parser.states)-size]
	}

	node := ast.NewInterior(pos, production, children)
	parser.nodes = append(parser.nodes, node)
	return node, nil
}

func (parser *parser) parse(tokens []*ast.Leaf) (*ast.Interior, error) {
	if len(tokens) == 0 {
		return nil, fmt.Errorf("empty token stream")
	}

	count := 0
	for _, token := range tokens {
		for {
			production, ok := parser.table.Reduction(parser.top(), token.Kind)
			if !ok {
				break
			}

			_, err := parser.reduce(production, token.Loc())
			if err != nil {
				return nil, err
			}

			next, ok := parser.table.Shift(parser.top(), production.Lhs)
			if !ok {
				return nil, fmt.Errorf(
					"malformed grammar table: no goto from state %d on %s",
					parser.top(),
					production.Lhs)
			}
			parser.states = append(parser.states, next)
		}

		next, ok := parser.table.Shift(parser.top(), token.Kind)
		if !ok {
			return nil, &SyntaxError{
				Position: count + 1,
				Token:    token,
			}
		}

		parser.nodes = append(parser.nodes, token)
		parser.states = append(parser.states, next)

		if !token.IsMarker() {
			count++
		}
	}

	last := tokens[len(tokens)-1]
	production, ok := parser.table.Reduction(parser.top(), lr.AcceptSymbol)
	if !ok {
		return nil, &SyntaxError{
			Position: count + 1,
			Token:    last,
		}
	}

	root, err := parser.reduce(production, last.End())
	if err != nil {
		return nil, err
	}

	if len(parser.nodes) != 1 {
		return nil, fmt.Errorf(
			"malformed grammar table: %d subtrees remain after accept",
			len(parser.nodes))
	}

	return root, nil
}

// Parse runs the shift-reduce automaton over the token stream, which must
// include the BOF/EOF markers.
func Parse(table *lr.Table, tokens []*ast.Leaf) (*ast.Interior, error) {
	return newParser(table).parse(tokens)
}

// ParseTokenStream reads "KIND lexeme" lines and parses them.  Missing
// BOF/EOF markers are added.
func ParseTokenStream(
	table *lr.Table,
	reader parseutil.BufferedByteLocationReader,
) (
	*ast.Interior,
	error,
) {
	tokens, err := lexer.NewLexer(reader).ReadAll()
	if err != nil {
		return nil, err
	}
	return Parse(table, tokens)
}

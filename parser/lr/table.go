package lr

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pattyshack/gt/parseutil"

	"github.com/pattyshack/wlp4c/ast"
	"github.com/pattyshack/wlp4c/parser/lexer"
)

const (
	// The reduce table symbol that marks the accept action.
	AcceptSymbol = ".ACCEPT"

	StartState = 0

	cfgSection         = ".CFG"
	transitionsSection = ".TRANSITIONS"
	reductionsSection  = ".REDUCTIONS"
	endSection         = ".END"
)

// Table is the parse automaton: the grammar's productions, the
// (state, symbol) -> state shift/goto table and the
// (state, symbol) -> production reduce table.  Production 0 is the start
// production.  Immutable once loaded.
type Table struct {
	Productions []*ast.Production
	Shifts      map[int]map[string]int
	Reductions  map[int]map[string]int

	nonterminals map[string]struct{}
	byString     map[string]*ast.Production
}

func newTable(productions []*ast.Production) *Table {
	table := &Table{
		Productions:  productions,
		Shifts:       map[int]map[string]int{},
		Reductions:   map[int]map[string]int{},
		nonterminals: map[string]struct{}{},
		byString:     map[string]*ast.Production{},
	}

	for _, production := range productions {
		table.nonterminals[production.Lhs] = struct{}{}
		table.byString[production.String()] = production
	}

	return table
}

func (table *Table) addShift(from int, symbol string, to int) {
	row, ok := table.Shifts[from]
	if !ok {
		row = map[string]int{}
		table.Shifts[from] = row
	}
	row[symbol] = to
}

func (table *Table) addReduction(state int, productionId int, symbol string) {
	row, ok := table.Reductions[state]
	if !ok {
		row = map[string]int{}
		table.Reductions[state] = row
	}
	row[symbol] = productionId
}

// Shift returns the state reached from state on symbol.
func (table *Table) Shift(state int, symbol string) (int, bool) {
	to, ok := table.Shifts[state][symbol]
	return to, ok
}

// Reduction returns the production to reduce by in state with the given
// lookahead.
func (table *Table) Reduction(state int, lookahead string) (*ast.Production, bool) {
	id, ok := table.Reductions[state][lookahead]
	if !ok {
		return nil, false
	}
	return table.Productions[id], true
}

func (table *Table) Start() *ast.Production {
	return table.Productions[0]
}

func (table *Table) IsNonterminal(symbol string) bool {
	_, ok := table.nonterminals[symbol]
	return ok
}

// LookupProduction finds the production whose textual form is "lhs rhs...".
func (table *Table) LookupProduction(lhs string, rhs []string) (*ast.Production, bool) {
	production, ok := table.byString[lhs+" "+strings.Join(rhs, " ")]
	return production, ok
}

func LoadFile(path string) (*Table, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Load(path, content)
}

// Load parses the textual table format: a header line, production lines,
// shift lines ("from symbol to") and reduce lines ("state production
// symbol"), each section terminated by a line beginning with '.'.
func Load(fileName string, content []byte) (*Table, error) {
	loader := &tableLoader{
		LineReader: lexer.NewLineReader(
			parseutil.NewBufferedByteLocationReaderFromSlice(fileName, content)),
	}
	return loader.load()
}

type tableLoader struct {
	*lexer.LineReader
}

// Returns nil fields at the end of a section.  A missing terminator at the
// end of the stream also ends the section.
func (loader *tableLoader) sectionLine() ([]string, parseutil.StartEndPos, error) {
	fields, pos, err := loader.Next()
	if err == io.EOF {
		return nil, pos, nil
	}
	if err != nil {
		return nil, pos, err
	}

	if strings.HasPrefix(fields[0], ".") {
		return nil, pos, nil
	}
	return fields, pos, nil
}

func (loader *tableLoader) load() (*Table, error) {
	_, _, err := loader.Next() // header
	if err == io.EOF {
		return nil, fmt.Errorf("empty grammar table")
	}
	if err != nil {
		return nil, err
	}

	productions := []*ast.Production{}
	for {
		fields, pos, err := loader.sectionLine()
		if err != nil {
			return nil, err
		}
		if fields == nil {
			break
		}

		production, ok := ast.ParseProduction(
			len(productions),
			strings.Join(fields, " "))
		if !ok {
			return nil, parseutil.NewLocationError(
				pos.Loc(),
				"invalid production: %s",
				strings.Join(fields, " "))
		}
		productions = append(productions, production)
	}

	if len(productions) == 0 {
		return nil, fmt.Errorf("grammar table has no productions")
	}

	table := newTable(productions)

	for {
		fields, pos, err := loader.sectionLine()
		if err != nil {
			return nil, err
		}
		if fields == nil {
			break
		}

		err = checkFieldCount(fields, pos)
		if err != nil {
			return nil, err
		}

		from, err := parseInt(fields[0], pos)
		if err != nil {
			return nil, err
		}

		to, err := parseInt(fields[2], pos)
		if err != nil {
			return nil, err
		}

		table.addShift(from, fields[1], to)
	}

	for {
		fields, pos, err := loader.sectionLine()
		if err != nil {
			return nil, err
		}
		if fields == nil {
			break
		}

		err = checkFieldCount(fields, pos)
		if err != nil {
			return nil, err
		}

		state, err := parseInt(fields[0], pos)
		if err != nil {
			return nil, err
		}

		productionId, err := parseInt(fields[1], pos)
		if err != nil {
			return nil, err
		}

		if productionId >= len(productions) {
			return nil, parseutil.NewLocationError(
				pos.Loc(),
				"production id (%d) out of range",
				productionId)
		}
		table.addReduction(state, productionId, fields[2])
	}

	return table, nil
}

func parseInt(field string, pos parseutil.StartEndPos) (int, error) {
	value, err := strconv.Atoi(field)
	if err != nil || value < 0 {
		return 0, parseutil.NewLocationError(
			pos.Loc(),
			"invalid number (%s)",
			field)
	}
	return value, nil
}

func checkFieldCount(fields []string, pos parseutil.StartEndPos) error {
	if len(fields) != 3 {
		return parseutil.NewLocationError(
			pos.Loc(),
			"expected 3 fields, found %d",
			len(fields))
	}
	return nil
}

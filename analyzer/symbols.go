package analyzer

import (
	"github.com/pattyshack/wlp4c/ast"
)

const (
	// Scope and signature name reserved for the program's entry procedure.
	EntryScope = "wain"
)

type Symbol struct {
	Name string
	Type ast.Type

	// Frame pointer relative offset.  Assigned by the code generator.
	Offset int
}

// Scope holds one procedure's parameters and locals in declaration order.
type Scope struct {
	Name string

	symbols map[string]*Symbol
	ordered []*Symbol
}

func newScope(name string) *Scope {
	return &Scope{
		Name:    name,
		symbols: map[string]*Symbol{},
	}
}

// Declare adds a symbol.  Returns false if the name is already declared in
// this scope.
func (scope *Scope) Declare(name string, symbolType ast.Type) (*Symbol, bool) {
	_, ok := scope.symbols[name]
	if ok {
		return nil, false
	}

	symbol := &Symbol{
		Name: name,
		Type: symbolType,
	}
	scope.symbols[name] = symbol
	scope.ordered = append(scope.ordered, symbol)
	return symbol, true
}

func (scope *Scope) Lookup(name string) (*Symbol, bool) {
	symbol, ok := scope.symbols[name]
	return symbol, ok
}

func (scope *Scope) Symbols() []*Symbol {
	return scope.ordered
}

type Signature struct {
	Name       string
	Parameters []ast.Type
}

// SymbolTable holds every procedure signature and every procedure scope of a
// single compilation.
type SymbolTable struct {
	scopes     map[string]*Scope
	signatures map[string]*Signature
}

// NewSymbolTable returns a table with the entry procedure pre-declared.
func NewSymbolTable() *SymbolTable {
	table := &SymbolTable{
		scopes:     map[string]*Scope{},
		signatures: map[string]*Signature{},
	}
	table.DeclareProcedure(EntryScope)
	return table
}

// DeclareProcedure registers a signature and creates the procedure's scope.
// Returns false if the name is taken.
func (table *SymbolTable) DeclareProcedure(name string) (*Signature, bool) {
	_, ok := table.signatures[name]
	if ok {
		return nil, false
	}

	signature := &Signature{
		Name:       name,
		Parameters: []ast.Type{},
	}
	table.signatures[name] = signature
	table.scopes[name] = newScope(name)
	return signature, true
}

func (table *SymbolTable) Signature(name string) (*Signature, bool) {
	signature, ok := table.signatures[name]
	return signature, ok
}

// Scope returns the named procedure's scope.  Panics on unknown procedures.
func (table *SymbolTable) Scope(name string) *Scope {
	scope, ok := table.scopes[name]
	if !ok {
		panic("unknown scope: " + name)
	}
	return scope
}

package analyzer

import (
	"github.com/pattyshack/gt/parseutil"

	"github.com/pattyshack/wlp4c/analyzer/util"
	"github.com/pattyshack/wlp4c/ast"
)

// declarationCollector registers every procedure signature and every
// parameter / local declaration before any expression is typed.  This allows
// procedures to be called before their definition.
type declarationCollector struct {
	*parseutil.Emitter

	symbols *SymbolTable
}

func CollectDeclarations(
	emitter *parseutil.Emitter,
	symbols *SymbolTable,
) util.Pass[*ast.Interior] {
	return &declarationCollector{
		Emitter: emitter,
		symbols: symbols,
	}
}

func (collector *declarationCollector) Process(root *ast.Interior) {
	for _, procedure := range ast.Procedures(root) {
		var err error
		if procedure.Rule() == ast.MainRule {
			err = collector.collectMain(procedure)
		} else {
			err = collector.collectProcedure(procedure)
		}

		if err != nil {
			collector.EmitErrors(err)
			return
		}
	}
}

func (collector *declarationCollector) collectProcedure(
	procedure *ast.Interior,
) error {
	id := procedure.Leaf(1)
	signature, ok := collector.symbols.DeclareProcedure(id.Lexeme)
	if !ok {
		return newError(
			DuplicateProcedure,
			id.Loc(),
			"procedure (%s) previously defined",
			id.Lexeme)
	}

	scope := collector.symbols.Scope(id.Lexeme)
	for _, dcl := range ast.Parameters(procedure.Child(3)) {
		symbol, err := collector.declare(scope, dcl)
		if err != nil {
			return err
		}
		signature.Parameters = append(signature.Parameters, symbol.Type)
	}

	return collector.collectLocals(scope, procedure.Child(6))
}

func (collector *declarationCollector) collectMain(main *ast.Interior) error {
	scope := collector.symbols.Scope(EntryScope)
	for _, idx := range []int{3, 5} {
		_, err := collector.declare(scope, main.Child(idx))
		if err != nil {
			return err
		}
	}

	return collector.collectLocals(scope, main.Child(8))
}

func (collector *declarationCollector) collectLocals(
	scope *Scope,
	dcls *ast.Interior,
) error {
	for _, local := range ast.Declarations(dcls) {
		_, err := collector.declare(scope, local.Child(1))
		if err != nil {
			return err
		}
	}
	return nil
}

func (collector *declarationCollector) declare(
	scope *Scope,
	dcl *ast.Interior,
) (
	*Symbol,
	error,
) {
	id := ast.DeclaredName(dcl)
	symbolType := ast.DeclaredType(dcl)

	symbol, ok := scope.Declare(id.Lexeme, symbolType)
	if !ok {
		return nil, newError(
			DuplicateDeclaration,
			id.Loc(),
			"(%s) previously declared in procedure (%s)",
			id.Lexeme,
			scope.Name)
	}

	id.Type = symbolType
	return symbol, nil
}

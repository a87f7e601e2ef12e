package analyzer

import (
	"github.com/pattyshack/gt/parseutil"

	"github.com/pattyshack/wlp4c/analyzer/util"
	"github.com/pattyshack/wlp4c/ast"
)

// Program is a type checked parse tree together with the symbols collected
// for it.
type Program struct {
	Root    *ast.Interior
	Symbols *SymbolTable
}

// Analyze type checks the tree in place.  The returned error is the first
// semantic error encountered, always an *Error.
func Analyze(root *ast.Interior) (*Program, error) {
	err := checkProductions(root)
	if err != nil {
		return nil, err
	}

	emitter := &parseutil.Emitter{}
	symbols := NewSymbolTable()

	passes := [][]util.Pass[*ast.Interior]{
		{CollectDeclarations(emitter, symbols)},
		{CheckTypes(emitter, symbols)},
	}

	util.Process(root, passes, emitter.HasErrors)
	if emitter.HasErrors() {
		return nil, emitter.Errors()[0]
	}

	return &Program{
		Root:    root,
		Symbols: symbols,
	}, nil
}

// checkProductions rejects trees built from a grammar whose productions are
// not the language's.  The passes assume every interior node has a known
// rule.
func checkProductions(root *ast.Interior) error {
	checker := &productionChecker{}
	root.Walk(checker)
	if checker.err != nil {
		return checker.err
	}
	return nil
}

type productionChecker struct {
	err *Error
}

func (checker *productionChecker) Enter(node ast.Node) {
	if checker.err != nil {
		return
	}

	interior, ok := node.(*ast.Interior)
	if !ok || interior.Rule() != ast.UnknownRule {
		return
	}

	checker.err = newError(
		UnsupportedProduction,
		interior.Loc(),
		"unsupported production (%s)",
		interior.Production)
}

func (checker *productionChecker) Exit(ast.Node) {}

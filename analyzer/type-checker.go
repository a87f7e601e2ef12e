package analyzer

import (
	"github.com/pattyshack/gt/parseutil"

	"github.com/pattyshack/wlp4c/analyzer/util"
	"github.com/pattyshack/wlp4c/ast"
)

// typeChecker infers expression types bottom-up and verifies every typing
// rule.  Inferred types are recorded on the tree.  Checking stops at the
// first violation.
type typeChecker struct {
	*parseutil.Emitter

	symbols *SymbolTable
}

func CheckTypes(
	emitter *parseutil.Emitter,
	symbols *SymbolTable,
) util.Pass[*ast.Interior] {
	return &typeChecker{
		Emitter: emitter,
		symbols: symbols,
	}
}

func (checker *typeChecker) Process(root *ast.Interior) {
	for _, procedure := range ast.Procedures(root) {
		err := checker.checkProcedure(procedure)
		if err != nil {
			checker.EmitErrors(err)
			return
		}
	}
}

func (checker *typeChecker) checkProcedure(procedure *ast.Interior) error {
	var scope *Scope
	var dcls *ast.Interior
	var statements *ast.Interior
	var ret *ast.Interior

	switch procedure.Rule() {
	case ast.ProcedureRule:
		scope = checker.symbols.Scope(procedure.Leaf(1).Lexeme)
		dcls = procedure.Child(6)
		statements = procedure.Child(7)
		ret = procedure.Child(9)
	case ast.MainRule:
		scope = checker.symbols.Scope(EntryScope)
		dcls = procedure.Child(8)
		statements = procedure.Child(9)
		ret = procedure.Child(11)

		err := checker.checkEntryParameters(procedure)
		if err != nil {
			return err
		}
	default:
		panic("should never happen: " + procedure.Production.String())
	}

	for _, local := range ast.Declarations(dcls) {
		err := checker.checkInitializer(local)
		if err != nil {
			return err
		}
	}

	for _, statement := range ast.Statements(statements) {
		err := checker.checkStatement(scope, statement)
		if err != nil {
			return err
		}
	}

	retType, err := checker.checkExpr(scope, ret)
	if err != nil {
		return err
	}

	if retType != ast.Int {
		return newError(
			TypeMismatch,
			ret.Loc(),
			"procedure (%s) must return int, found %s",
			scope.Name,
			retType)
	}

	return nil
}

func (checker *typeChecker) checkEntryParameters(main *ast.Interior) error {
	// Duplicate parameter names are reported by the declaration collector.
	second := ast.DeclaredName(main.Child(5))

	secondType := ast.DeclaredType(main.Child(5))
	if secondType != ast.Int {
		return newError(
			TypeMismatch,
			second.Loc(),
			"%s's second parameter (%s) must be int, found %s",
			EntryScope,
			second.Lexeme,
			secondType)
	}

	return nil
}

func (checker *typeChecker) checkInitializer(local *ast.Interior) error {
	dcl := local.Child(1)
	declared := ast.DeclaredType(dcl)
	value := local.Leaf(3)

	var expected ast.Type
	switch local.Rule() {
	case ast.DclsNumRule:
		expected = ast.Int
	case ast.DclsNullRule:
		expected = ast.Pointer
	default:
		panic("should never happen: " + local.Production.String())
	}

	value.Type = expected
	if declared != expected {
		return newError(
			TypeMismatch,
			value.Loc(),
			"cannot initialize %s (%s) with %s",
			declared,
			ast.DeclaredName(dcl).Lexeme,
			value.Lexeme)
	}

	return nil
}

func (checker *typeChecker) checkStatement(
	scope *Scope,
	statement *ast.Interior,
) error {
	switch statement.Rule() {
	case ast.AssignRule:
		lvalueType, err := checker.checkLvalue(scope, statement.Child(0))
		if err != nil {
			return err
		}

		exprType, err := checker.checkExpr(scope, statement.Child(2))
		if err != nil {
			return err
		}

		if lvalueType != exprType {
			return newError(
				TypeMismatch,
				statement.Loc(),
				"cannot assign %s to %s",
				exprType,
				lvalueType)
		}
		return nil

	case ast.IfRule:
		err := checker.checkTest(scope, statement.Child(2))
		if err != nil {
			return err
		}

		for _, idx := range []int{5, 9} {
			for _, inner := range ast.Statements(statement.Child(idx)) {
				err := checker.checkStatement(scope, inner)
				if err != nil {
					return err
				}
			}
		}
		return nil

	case ast.WhileRule:
		err := checker.checkTest(scope, statement.Child(2))
		if err != nil {
			return err
		}

		for _, inner := range ast.Statements(statement.Child(5)) {
			err := checker.checkStatement(scope, inner)
			if err != nil {
				return err
			}
		}
		return nil

	case ast.PrintlnRule, ast.PutcharRule:
		return checker.expectExpr(scope, statement.Child(2), ast.Int)

	case ast.DeleteRule:
		return checker.expectExpr(scope, statement.Child(3), ast.Pointer)

	default:
		panic("should never happen: " + statement.Production.String())
	}
}

func (checker *typeChecker) expectExpr(
	scope *Scope,
	expr *ast.Interior,
	expected ast.Type,
) error {
	exprType, err := checker.checkExpr(scope, expr)
	if err != nil {
		return err
	}

	if exprType != expected {
		return newError(
			TypeMismatch,
			expr.Loc(),
			"expected %s, found %s",
			expected,
			exprType)
	}
	return nil
}

func (checker *typeChecker) checkTest(scope *Scope, test *ast.Interior) error {
	left, err := checker.checkExpr(scope, test.Child(0))
	if err != nil {
		return err
	}

	right, err := checker.checkExpr(scope, test.Child(2))
	if err != nil {
		return err
	}

	if left != right {
		return newError(
			TypeMismatch,
			test.Loc(),
			"cannot compare %s with %s",
			left,
			right)
	}
	return nil
}

func (checker *typeChecker) checkExpr(
	scope *Scope,
	expr *ast.Interior,
) (
	ast.Type,
	error,
) {
	var result ast.Type
	switch expr.Rule() {
	case ast.ExprTermRule:
		termType, err := checker.checkTerm(scope, expr.Child(0))
		if err != nil {
			return ast.Unknown, err
		}
		result = termType

	case ast.ExprPlusRule, ast.ExprMinusRule:
		left, err := checker.checkExpr(scope, expr.Child(0))
		if err != nil {
			return ast.Unknown, err
		}

		right, err := checker.checkTerm(scope, expr.Child(2))
		if err != nil {
			return ast.Unknown, err
		}

		var ok bool
		result, ok = additiveType(expr.Rule(), left, right)
		if !ok {
			return ast.Unknown, newError(
				TypeMismatch,
				expr.Loc(),
				"invalid operands (%s %s %s)",
				left,
				expr.Leaf(1).Lexeme,
				right)
		}

	default:
		panic("should never happen: " + expr.Production.String())
	}

	expr.Type = result
	return result, nil
}

func additiveType(rule ast.RuleKind, left ast.Type, right ast.Type) (
	ast.Type,
	bool,
) {
	switch {
	case left == ast.Int && right == ast.Int:
		return ast.Int, true
	case left == ast.Pointer && right == ast.Int:
		return ast.Pointer, true
	case rule == ast.ExprPlusRule && left == ast.Int && right == ast.Pointer:
		return ast.Pointer, true
	case rule == ast.ExprMinusRule && left == ast.Pointer && right == ast.Pointer:
		return ast.Int, true
	}
	return ast.Unknown, false
}

func (checker *typeChecker) checkTerm(
	scope *Scope,
	term *ast.Interior,
) (
	ast.Type,
	error,
) {
	switch term.Rule() {
	case ast.TermFactorRule:
		factorType, err := checker.checkFactor(scope, term.Child(0))
		if err != nil {
			return ast.Unknown, err
		}
		term.Type = factorType
		return factorType, nil

	case ast.TermStarRule, ast.TermSlashRule, ast.TermPctRule:
		left, err := checker.checkTerm(scope, term.Child(0))
		if err != nil {
			return ast.Unknown, err
		}

		right, err := checker.checkFactor(scope, term.Child(2))
		if err != nil {
			return ast.Unknown, err
		}

		if left != ast.Int || right != ast.Int {
			return ast.Unknown, newError(
				TypeMismatch,
				term.Loc(),
				"invalid operands (%s %s %s)",
				left,
				term.Leaf(1).Lexeme,
				right)
		}

		term.Type = ast.Int
		return ast.Int, nil

	default:
		panic("should never happen: " + term.Production.String())
	}
}

func (checker *typeChecker) checkFactor(
	scope *Scope,
	factor *ast.Interior,
) (
	ast.Type,
	error,
) {
	var result ast.Type
	switch factor.Rule() {
	case ast.FactorIdRule:
		idType, err := checker.checkIdentifier(scope, factor.Leaf(0))
		if err != nil {
			return ast.Unknown, err
		}
		result = idType

	case ast.FactorNumRule:
		factor.Leaf(0).Type = ast.Int
		result = ast.Int

	case ast.FactorNullRule:
		factor.Leaf(0).Type = ast.Pointer
		result = ast.Pointer

	case ast.FactorParenRule:
		exprType, err := checker.checkExpr(scope, factor.Child(1))
		if err != nil {
			return ast.Unknown, err
		}
		result = exprType

	case ast.FactorAddressRule:
		lvalueType, err := checker.checkLvalue(scope, factor.Child(1))
		if err != nil {
			return ast.Unknown, err
		}

		if lvalueType != ast.Int {
			return ast.Unknown, newError(
				TypeMismatch,
				factor.Loc(),
				"cannot take the address of %s",
				lvalueType)
		}
		result = ast.Pointer

	case ast.FactorDerefRule:
		operandType, err := checker.checkFactor(scope, factor.Child(1))
		if err != nil {
			return ast.Unknown, err
		}

		if operandType != ast.Pointer {
			return ast.Unknown, newError(
				TypeMismatch,
				factor.Loc(),
				"cannot dereference %s",
				operandType)
		}
		result = ast.Int

	case ast.FactorNewRule:
		err := checker.expectExpr(scope, factor.Child(3), ast.Int)
		if err != nil {
			return ast.Unknown, err
		}
		result = ast.Pointer

	case ast.FactorCallRule, ast.FactorCallArgsRule:
		err := checker.checkCall(scope, factor)
		if err != nil {
			return ast.Unknown, err
		}
		result = ast.Int

	case ast.FactorGetcharRule:
		result = ast.Int

	default:
		panic("should never happen: " + factor.Production.String())
	}

	factor.Type = result
	return result, nil
}

func (checker *typeChecker) checkIdentifier(
	scope *Scope,
	id *ast.Leaf,
) (
	ast.Type,
	error,
) {
	symbol, ok := scope.Lookup(id.Lexeme)
	if !ok {
		return ast.Unknown, newError(
			UndeclaredIdentifier,
			id.Loc(),
			"(%s) not declared in procedure (%s)",
			id.Lexeme,
			scope.Name)
	}

	id.Type = symbol.Type
	return symbol.Type, nil
}

func (checker *typeChecker) checkCall(scope *Scope, call *ast.Interior) error {
	callee := call.Leaf(0)

	_, ok := scope.Lookup(callee.Lexeme)
	if ok {
		return newError(
			ShadowedCallee,
			callee.Loc(),
			"(%s) is shadowed by a variable in procedure (%s)",
			callee.Lexeme,
			scope.Name)
	}

	signature, ok := checker.symbols.Signature(callee.Lexeme)
	if !ok {
		return newError(
			UnknownCallee,
			callee.Loc(),
			"procedure (%s) not defined",
			callee.Lexeme)
	}

	argTypes := []ast.Type{}
	if call.Rule() == ast.FactorCallArgsRule {
		for _, arg := range ast.Arguments(call.Child(2)) {
			argType, err := checker.checkExpr(scope, arg)
			if err != nil {
				return err
			}
			argTypes = append(argTypes, argType)
		}
	}

	if !sameTypes(signature.Parameters, argTypes) {
		return newError(
			ArityOrTypeMismatch,
			call.Loc(),
			"procedure (%s) expects %s, called with %s",
			callee.Lexeme,
			typeList(signature.Parameters),
			typeList(argTypes))
	}

	return nil
}

func sameTypes(expected []ast.Type, actual []ast.Type) bool {
	if len(expected) != len(actual) {
		return false
	}

	for idx, expectedType := range expected {
		if actual[idx] != expectedType {
			return false
		}
	}
	return true
}

func typeList(types []ast.Type) string {
	result := "("
	for idx, t := range types {
		if idx > 0 {
			result += ", "
		}
		result += t.String()
	}
	return result + ")"
}

func (checker *typeChecker) checkLvalue(
	scope *Scope,
	lvalue *ast.Interior,
) (
	ast.Type,
	error,
) {
	var result ast.Type
	switch lvalue.Rule() {
	case ast.LvalueIdRule:
		idType, err := checker.checkIdentifier(scope, lvalue.Leaf(0))
		if err != nil {
			return ast.Unknown, err
		}
		result = idType

	case ast.LvalueDerefRule:
		operandType, err := checker.checkFactor(scope, lvalue.Child(1))
		if err != nil {
			return ast.Unknown, err
		}

		if operandType != ast.Pointer {
			return ast.Unknown, newError(
				TypeMismatch,
				lvalue.Loc(),
				"cannot dereference %s",
				operandType)
		}
		result = ast.Int

	case ast.LvalueParenRule:
		innerType, err := checker.checkLvalue(scope, lvalue.Child(1))
		if err != nil {
			return ast.Unknown, err
		}
		result = innerType

	default:
		panic("should never happen: " + lvalue.Production.String())
	}

	lvalue.Type = result
	return result, nil
}

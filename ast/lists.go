package ast

// Helpers for flattening the grammar's recursive list productions.

// Procedures returns the procedure definitions in textual order.  The entry
// procedure (MainRule) is always last.
func Procedures(root *Interior) []*Interior {
	result := []*Interior{}
	node := root.Child(1)
	for {
		switch node.Rule() {
		case ProceduresRule:
			result = append(result, node.Child(0))
			node = node.Child(1)
		case ProceduresMainRule:
			return append(result, node.Child(0))
		default:
			panic("should never happen: " + node.Production.String())
		}
	}
}

// Parameters returns a procedure's dcl nodes in declaration order.
func Parameters(params *Interior) []*Interior {
	if params.Rule() == ParamsEmptyRule {
		return nil
	}

	result := []*Interior{}
	node := params.Child(0)
	for {
		result = append(result, node.Child(0))
		if node.Rule() == ParamListLastRule {
			return result
		}
		node = node.Child(2)
	}
}

// Declarations returns the initialized local declaration nodes
// (DclsNumRule / DclsNullRule) in declaration order.
func Declarations(dcls *Interior) []*Interior {
	if dcls.Rule() == DclsEmptyRule {
		return nil
	}
	return append(Declarations(dcls.Child(0)), dcls)
}

// Statements returns the statement nodes in order.
func Statements(statements *Interior) []*Interior {
	if statements.Rule() == StatementsEmptyRule {
		return nil
	}
	return append(Statements(statements.Child(0)), statements.Child(1))
}

// Arguments returns a call's argument expressions in order.
func Arguments(arglist *Interior) []*Interior {
	result := []*Interior{}
	node := arglist
	for {
		result = append(result, node.Child(0))
		if node.Rule() == ArgListLastRule {
			return result
		}
		node = node.Child(2)
	}
}

// DeclaredType returns the type named by a dcl node.
func DeclaredType(dcl *Interior) Type {
	if dcl.Child(0).Rule() == TypePointerRule {
		return Pointer
	}
	return Int
}

// DeclaredName returns a dcl node's identifier leaf.
func DeclaredName(dcl *Interior) *Leaf {
	return dcl.Leaf(1)
}

// UnwrapLvalue strips parentheses from an lvalue.
func UnwrapLvalue(lvalue *Interior) *Interior {
	for lvalue.Rule() == LvalueParenRule {
		lvalue = lvalue.Child(1)
	}
	return lvalue
}

package ast

import (
	"strings"
)

const (
	EmptySymbol = ".EMPTY"
)

type RuleKind int

// The language's productions.  Tree consumers dispatch on these instead of
// comparing production strings.
const (
	UnknownRule = RuleKind(iota)

	StartRule
	ProceduresRule
	ProceduresMainRule
	ProcedureRule
	MainRule
	ParamsEmptyRule
	ParamsRule
	ParamListLastRule
	ParamListRule
	TypeIntRule
	TypePointerRule
	DclsEmptyRule
	DclsNumRule
	DclsNullRule
	DclRule
	StatementsEmptyRule
	StatementsRule
	AssignRule
	IfRule
	WhileRule
	PrintlnRule
	PutcharRule
	DeleteRule
	TestEqRule
	TestNeRule
	TestLtRule
	TestLeRule
	TestGeRule
	TestGtRule
	ExprTermRule
	ExprPlusRule
	ExprMinusRule
	TermFactorRule
	TermStarRule
	TermSlashRule
	TermPctRule
	FactorIdRule
	FactorNumRule
	FactorNullRule
	FactorParenRule
	FactorAddressRule
	FactorDerefRule
	FactorNewRule
	FactorCallRule
	FactorCallArgsRule
	FactorGetcharRule
	ArgListLastRule
	ArgListRule
	LvalueIdRule
	LvalueDerefRule
	LvalueParenRule

	numRuleKinds
)

var (
	ruleProductions = map[RuleKind]string{
		StartRule:          "start BOF procedures EOF",
		ProceduresRule:     "procedures procedure procedures",
		ProceduresMainRule: "procedures main",
		ProcedureRule: "procedure INT ID LPAREN params RPAREN " +
			"LBRACE dcls statements RETURN expr SEMI RBRACE",
		MainRule: "main INT WAIN LPAREN dcl COMMA dcl RPAREN " +
			"LBRACE dcls statements RETURN expr SEMI RBRACE",
		ParamsEmptyRule:     "params .EMPTY",
		ParamsRule:          "params paramlist",
		ParamListLastRule:   "paramlist dcl",
		ParamListRule:       "paramlist dcl COMMA paramlist",
		TypeIntRule:         "type INT",
		TypePointerRule:     "type INT STAR",
		DclsEmptyRule:       "dcls .EMPTY",
		DclsNumRule:         "dcls dcls dcl BECOMES NUM SEMI",
		DclsNullRule:        "dcls dcls dcl BECOMES NULL SEMI",
		DclRule:             "dcl type ID",
		StatementsEmptyRule: "statements .EMPTY",
		StatementsRule:      "statements statements statement",
		AssignRule:          "statement lvalue BECOMES expr SEMI",
		IfRule: "statement IF LPAREN test RPAREN LBRACE statements RBRACE " +
			"ELSE LBRACE statements RBRACE",
		WhileRule:          "statement WHILE LPAREN test RPAREN LBRACE statements RBRACE",
		PrintlnRule:        "statement PRINTLN LPAREN expr RPAREN SEMI",
		PutcharRule:        "statement PUTCHAR LPAREN expr RPAREN SEMI",
		DeleteRule:         "statement DELETE LBRACK RBRACK expr SEMI",
		TestEqRule:         "test expr EQ expr",
		TestNeRule:         "test expr NE expr",
		TestLtRule:         "test expr LT expr",
		TestLeRule:         "test expr LE expr",
		TestGeRule:         "test expr GE expr",
		TestGtRule:         "test expr GT expr",
		ExprTermRule:       "expr term",
		ExprPlusRule:       "expr expr PLUS term",
		ExprMinusRule:      "expr expr MINUS term",
		TermFactorRule:     "term factor",
		TermStarRule:       "term term STAR factor",
		TermSlashRule:      "term term SLASH factor",
		TermPctRule:        "term term PCT factor",
		FactorIdRule:       "factor ID",
		FactorNumRule:      "factor NUM",
		FactorNullRule:     "factor NULL",
		FactorParenRule:    "factor LPAREN expr RPAREN",
		FactorAddressRule:  "factor AMP lvalue",
		FactorDerefRule:    "factor STAR factor",
		FactorNewRule:      "factor NEW INT LBRACK expr RBRACK",
		FactorCallRule:     "factor ID LPAREN RPAREN",
		FactorCallArgsRule: "factor ID LPAREN arglist RPAREN",
		FactorGetcharRule:  "factor GETCHAR LPAREN RPAREN",
		ArgListLastRule:    "arglist expr",
		ArgListRule:        "arglist expr COMMA arglist",
		LvalueIdRule:       "lvalue ID",
		LvalueDerefRule:    "lvalue STAR factor",
		LvalueParenRule:    "lvalue LPAREN lvalue RPAREN",
	}

	productionRules = func() map[string]RuleKind {
		result := make(map[string]RuleKind, len(ruleProductions))
		for kind, production := range ruleProductions {
			result[production] = kind
		}
		return result
	}()
)

func (kind RuleKind) String() string {
	production, ok := ruleProductions[kind]
	if !ok {
		return "unknown rule"
	}
	return production
}

// RuleKinds returns every known rule kind in declaration order.
func RuleKinds() []RuleKind {
	result := make([]RuleKind, 0, numRuleKinds-1)
	for kind := StartRule; kind < numRuleKinds; kind++ {
		result = append(result, kind)
	}
	return result
}

// A grammar production.  The rhs of a nullable production is empty; its
// textual form uses the .EMPTY marker.
type Production struct {
	Id   int
	Lhs  string
	Rhs  []string
	Rule RuleKind
}

func NewProduction(id int, lhs string, rhs []string) *Production {
	if len(rhs) == 1 && rhs[0] == EmptySymbol {
		rhs = nil
	}

	production := &Production{
		Id:  id,
		Lhs: lhs,
		Rhs: rhs,
	}
	production.Rule = productionRules[production.String()]
	return production
}

// ParseProduction parses "lhs rhs..." (or "lhs .EMPTY").
func ParseProduction(id int, line string) (*Production, bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return nil, false
	}

	rhs := fields[1:]
	if len(rhs) > 1 {
		for _, symbol := range rhs {
			if symbol == EmptySymbol {
				return nil, false
			}
		}
	}

	return NewProduction(id, fields[0], rhs), true
}

func (production *Production) IsNullable() bool {
	return len(production.Rhs) == 0
}

func (production *Production) String() string {
	if production.IsNullable() {
		return production.Lhs + " " + EmptySymbol
	}
	return production.Lhs + " " + strings.Join(production.Rhs, " ")
}

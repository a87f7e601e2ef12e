package analyzer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pattyshack/wlp4c/ast"
	"github.com/pattyshack/wlp4c/internal/testutil"
	"github.com/pattyshack/wlp4c/parser"
	"github.com/pattyshack/wlp4c/parser/lr"
)

const (
	sumProgram = "int wain ( int a , int b ) { return a + b ; }"

	pointerProgram = `
int sum ( int * p , int n ) {
	int total = 0 ;
	int i = 0 ;
	i = later ( ) ;
	while ( i < n ) {
		total = total + * ( p + i ) ;
		i = i + 1 ;
	}
	return total ;
}
int later ( ) { return 0 ; }
int wain ( int * arr , int len ) {
	int * q = NULL ;
	int * end = NULL ;
	q = new int [ len ] ;
	end = q + len ;
	if ( q != NULL ) {
		* q = sum ( arr , len ) ;
		println ( * q ) ;
	} else {
		putchar ( getchar ( ) ) ;
	}
	delete [ ] q ;
	( * arr ) = later ( ) % 3 / 2 - ( end - q ) ;
	return & len - & len ;
}
`
)

func parse(t *testing.T, program string) *ast.Interior {
	table, err := lr.Default()
	require.NoError(t, err)

	root, err := parser.Parse(table, testutil.Tokens(program))
	require.NoError(t, err)
	return root
}

func analyzeError(t *testing.T, program string) *Error {
	_, err := Analyze(parse(t, program))
	require.Error(t, err, program)

	analyzerErr := &Error{}
	require.True(t, errors.As(err, &analyzerErr), program)
	return analyzerErr
}

func TestAnalyzeSum(t *testing.T) {
	root := parse(t, sumProgram)

	program, err := Analyze(root)
	require.NoError(t, err)
	assert.Same(t, root, program.Root)

	main := root.Child(1).Child(0)
	assert.Equal(t, ast.Int, main.Child(11).Type)
	assert.Equal(t, ast.Int, main.Child(3).Leaf(1).Type)

	scope := program.Symbols.Scope(EntryScope)
	names := []string{}
	for _, symbol := range scope.Symbols() {
		names = append(names, symbol.Name)
		assert.Equal(t, ast.Int, symbol.Type)
	}
	assert.Equal(t, []string{"a", "b"}, names)

	signature, ok := program.Symbols.Signature(EntryScope)
	require.True(t, ok)
	assert.Empty(t, signature.Parameters)
}

func TestAnalyzePointerProgram(t *testing.T) {
	root := parse(t, pointerProgram)

	program, err := Analyze(root)
	require.NoError(t, err)

	signature, ok := program.Symbols.Signature("sum")
	require.True(t, ok)
	assert.Equal(t, []ast.Type{ast.Pointer, ast.Int}, signature.Parameters)

	signature, ok = program.Symbols.Signature("later")
	require.True(t, ok)
	assert.Empty(t, signature.Parameters)

	locals := program.Symbols.Scope("sum").Symbols()
	require.Len(t, locals, 4)
	assert.Equal(t, "p", locals[0].Name)
	assert.Equal(t, ast.Pointer, locals[0].Type)
	assert.Equal(t, "total", locals[2].Name)

	text := ast.TreeString(root, "")
	assert.Contains(t, text, "ID q : int*\n")
	assert.Contains(t, text, "NULL NULL : int*\n")
	assert.Contains(t, text, "factor NEW INT LBRACK expr RBRACK : int*\n")
	assert.Contains(t, text, "expr expr MINUS term : int\n")
	assert.Contains(t, text, "lvalue STAR factor : int\n")
	assert.Contains(t, text, "lvalue LPAREN lvalue RPAREN : int\n")
	assert.Contains(t, text, "factor AMP lvalue : int*\n")
	assert.Contains(t, text, "factor GETCHAR LPAREN RPAREN : int\n")

	// callee identifiers and tests are not typed.
	assert.Contains(t, text, "ID sum\n")
	assert.Contains(t, text, "test expr NE expr\n")
}

func TestAnalyzeIdempotent(t *testing.T) {
	root := parse(t, pointerProgram)

	_, err := Analyze(root)
	require.NoError(t, err)
	first := ast.TreeString(root, "")

	_, err = Analyze(root)
	require.NoError(t, err)
	assert.Equal(t, first, ast.TreeString(root, ""))
}

func TestAnalyzeErrors(t *testing.T) {
	testData := []struct {
		Name    string
		Program string
		Kind    ErrorKind
	}{
		{
			Name:    "undeclared callee",
			Program: "int wain ( int a , int b ) { return f ( ) ; }",
			Kind:    UnknownCallee,
		},
		{
			Name: "duplicate local",
			Program: `int wain ( int a , int b ) {
				int c = 0 ; int c = 1 ; return c ; }`,
			Kind: DuplicateDeclaration,
		},
		{
			Name:    "duplicate parameter",
			Program: "int f ( int x , int * x ) { return 0 ; } int wain ( int a , int b ) { return a ; }",
			Kind:    DuplicateDeclaration,
		},
		{
			Name:    "duplicate entry parameter",
			Program: "int wain ( int a , int a ) { return a ; }",
			Kind:    DuplicateDeclaration,
		},
		{
			Name:    "duplicate procedure",
			Program: "int f ( ) { return 0 ; } int f ( ) { return 1 ; } int wain ( int a , int b ) { return a ; }",
			Kind:    DuplicateProcedure,
		},
		{
			Name:    "undeclared identifier",
			Program: "int wain ( int a , int b ) { return c ; }",
			Kind:    UndeclaredIdentifier,
		},
		{
			Name:    "parameters are not visible across procedures",
			Program: "int f ( ) { return a ; } int wain ( int a , int b ) { return a ; }",
			Kind:    UndeclaredIdentifier,
		},
		{
			Name: "shadowed callee",
			Program: `int f ( ) { return 0 ; }
				int wain ( int a , int f ) { return f ( ) ; }`,
			Kind: ShadowedCallee,
		},
		{
			Name: "too few arguments",
			Program: `int f ( int x , int y ) { return x ; }
				int wain ( int a , int b ) { return f ( a ) ; }`,
			Kind: ArityOrTypeMismatch,
		},
		{
			Name: "arguments to nullary procedure",
			Program: `int f ( ) { return 0 ; }
				int wain ( int a , int b ) { return f ( a ) ; }`,
			Kind: ArityOrTypeMismatch,
		},
		{
			Name: "argument type",
			Program: `int f ( int * x ) { return 0 ; }
				int wain ( int a , int b ) { return f ( a ) ; }`,
			Kind: ArityOrTypeMismatch,
		},
		{
			Name:    "int minus pointer",
			Program: "int wain ( int * a , int b ) { return b - a ; }",
			Kind:    TypeMismatch,
		},
		{
			Name:    "pointer plus pointer",
			Program: "int wain ( int * a , int b ) { return a + a - a ; }",
			Kind:    TypeMismatch,
		},
		{
			Name:    "pointer product",
			Program: "int wain ( int * a , int b ) { return b * a ; }",
			Kind:    TypeMismatch,
		},
		{
			Name:    "address of pointer",
			Program: "int wain ( int * a , int b ) { return * & a ; }",
			Kind:    TypeMismatch,
		},
		{
			Name:    "dereference int",
			Program: "int wain ( int a , int b ) { return * a ; }",
			Kind:    TypeMismatch,
		},
		{
			Name:    "pointer allocation size",
			Program: "int wain ( int * a , int b ) { a = new int [ a ] ; return b ; }",
			Kind:    TypeMismatch,
		},
		{
			Name:    "assignment",
			Program: "int wain ( int * a , int b ) { a = b ; return b ; }",
			Kind:    TypeMismatch,
		},
		{
			Name:    "println pointer",
			Program: "int wain ( int * a , int b ) { println ( a ) ; return b ; }",
			Kind:    TypeMismatch,
		},
		{
			Name:    "putchar pointer",
			Program: "int wain ( int * a , int b ) { putchar ( a ) ; return b ; }",
			Kind:    TypeMismatch,
		},
		{
			Name:    "delete int",
			Program: "int wain ( int a , int b ) { delete [ ] a ; return b ; }",
			Kind:    TypeMismatch,
		},
		{
			Name:    "mixed comparison",
			Program: "int wain ( int * a , int b ) { while ( a < b ) { } return b ; }",
			Kind:    TypeMismatch,
		},
		{
			Name:    "mixed comparison in nested statement",
			Program: "int wain ( int * a , int b ) { if ( b == b ) { } else { if ( a == b ) { } else { } } return b ; }",
			Kind:    TypeMismatch,
		},
		{
			Name:    "int initialized with NULL",
			Program: "int wain ( int a , int b ) { int c = NULL ; return b ; }",
			Kind:    TypeMismatch,
		},
		{
			Name:    "pointer initialized with number",
			Program: "int wain ( int a , int b ) { int * c = 0 ; return b ; }",
			Kind:    TypeMismatch,
		},
		{
			Name:    "pointer second entry parameter",
			Program: "int wain ( int a , int * b ) { return a ; }",
			Kind:    TypeMismatch,
		},
		{
			Name:    "pointer entry return",
			Program: "int wain ( int * a , int b ) { return a ; }",
			Kind:    TypeMismatch,
		},
		{
			Name: "pointer procedure return",
			Program: `int f ( int * p ) { return p ; }
				int wain ( int a , int b ) { return a ; }`,
			Kind: TypeMismatch,
		},
	}

	for _, data := range testData {
		t.Run(data.Name, func(t *testing.T) {
			err := analyzeError(t, data.Program)
			assert.Equal(t, data.Kind, err.Kind, err.Error())
		})
	}
}

func TestAnalyzeAcceptedRules(t *testing.T) {
	testData := []string{
		// forward and recursive calls
		`int f ( int n ) { int r = 0 ; if ( n > 0 ) { r = g ( n - 1 ) ; } else { } return r ; }
		 int g ( int n ) { return f ( n ) ; }
		 int wain ( int a , int b ) { return f ( a ) ; }`,
		// int + pointer is commutative, pointer - pointer is int
		"int wain ( int * a , int b ) { int * c = NULL ; c = b + a ; return c - a ; }",
		// pointer comparison
		"int wain ( int * a , int b ) { if ( a >= NULL ) { } else { } return b ; }",
		// parenthesized lvalues
		"int wain ( int a , int b ) { ( ( a ) ) = ( b ) ; return a ; }",
		"int wain ( int * a , int b ) { return getchar ( ) + * a ; }",
	}

	for _, program := range testData {
		_, err := Analyze(parse(t, program))
		assert.NoError(t, err, program)
	}
}

func TestErrorString(t *testing.T) {
	err := analyzeError(t, "int wain ( int a , int b ) { return f ( ) ; }")
	assert.Contains(t, err.Error(), "unknown callee: procedure (f) not defined")
}

func TestAnalyzeRejectsForeignGrammar(t *testing.T) {
	productions, err := lr.ParseGrammar("grammar", []byte(`
start BOF procedures EOF
procedures ID
`))
	require.NoError(t, err)

	table, err := lr.Build(productions)
	require.NoError(t, err)

	root, err := parser.Parse(table, testutil.Tokens("x"))
	require.NoError(t, err)

	_, err = Analyze(root)
	require.Error(t, err)

	analyzerErr := &Error{}
	require.True(t, errors.As(err, &analyzerErr))
	assert.Equal(t, UnsupportedProduction, analyzerErr.Kind)
	assert.Contains(t, analyzerErr.Message, "procedures ID")
}

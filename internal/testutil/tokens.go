// Package testutil turns whitespace-separated program text into token
// streams for tests.  Every lexeme must be separated by whitespace.
package testutil

import (
	"strings"
	"unicode"

	"github.com/pattyshack/gt/parseutil"

	"github.com/pattyshack/wlp4c/ast"
)

var (
	kinds = map[string]string{
		"int":     "INT",
		"wain":    "WAIN",
		"if":      "IF",
		"else":    "ELSE",
		"while":   "WHILE",
		"println": "PRINTLN",
		"putchar": "PUTCHAR",
		"getchar": "GETCHAR",
		"return":  "RETURN",
		"new":     "NEW",
		"delete":  "DELETE",
		"NULL":    "NULL",
		"(":       "LPAREN",
		")":       "RPAREN",
		"{":       "LBRACE",
		"}":       "RBRACE",
		"[":       "LBRACK",
		"]":       "RBRACK",
		";":       "SEMI",
		",":       "COMMA",
		"=":       "BECOMES",
		"==":      "EQ",
		"!=":      "NE",
		"<":       "LT",
		"<=":      "LE",
		">=":      "GE",
		">":       "GT",
		"+":       "PLUS",
		"-":       "MINUS",
		"*":       "STAR",
		"/":       "SLASH",
		"%":       "PCT",
		"&":       "AMP",
	}
)

func kindOf(lexeme string) string {
	kind, ok := kinds[lexeme]
	if ok {
		return kind
	}

	if unicode.IsDigit(rune(lexeme[0])) {
		return "NUM"
	}
	return "ID"
}

// Tokens scans the program, wrapped in BOF/EOF markers.
func Tokens(program string) []*ast.Leaf {
	tokens := []*ast.Leaf{
		ast.NewLeaf(parseutil.StartEndPos{}, ast.BOF, ast.BOF),
	}
	for _, lexeme := range strings.Fields(program) {
		tokens = append(
			tokens,
			ast.NewLeaf(parseutil.StartEndPos{}, kindOf(lexeme), lexeme))
	}
	return append(
		tokens,
		ast.NewLeaf(parseutil.StartEndPos{}, ast.EOF, ast.EOF))
}

// TokenStream returns the program in the "KIND lexeme" line format, without
// BOF/EOF markers.
func TokenStream(program string) string {
	builder := strings.Builder{}
	for _, lexeme := range strings.Fields(program) {
		builder.WriteString(kindOf(lexeme))
		builder.WriteString(" ")
		builder.WriteString(lexeme)
		builder.WriteString("\n")
	}
	return builder.String()
}

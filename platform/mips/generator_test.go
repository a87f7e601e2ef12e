package mips

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pattyshack/wlp4c/analyzer"
	"github.com/pattyshack/wlp4c/internal/testutil"
	"github.com/pattyshack/wlp4c/parser"
	"github.com/pattyshack/wlp4c/parser/lr"
	"github.com/pattyshack/wlp4c/platform"
)

const (
	prologue = `.import init
.import new
.import delete
.import print
lis $4
.word 4
lis $11
.word 1
`

	initCall = `lis $10
.word init
sw $31, -4($30)
sub $30, $30, $4
jalr $10
add $30, $30, $4
lw $31, -4($30)
`

	pushParameters = `sw $1, -4($30)
sub $30, $30, $4
sw $2, -4($30)
sub $30, $30, $4
sub $29, $30, $4
`

	entryEpilogue = `add $30, $30, $4
add $30, $30, $4
jr $31
`
)

func analyze(t *testing.T, program string) *analyzer.Program {
	table, err := lr.Default()
	require.NoError(t, err)

	root, err := parser.Parse(table, testutil.Tokens(program))
	require.NoError(t, err)

	result, err := analyzer.Analyze(root)
	require.NoError(t, err)
	return result
}

func generate(t *testing.T, program string) string {
	builder := &strings.Builder{}
	err := NewPlatform().Generate(analyze(t, program), builder)
	require.NoError(t, err)
	return builder.String()
}

func TestPlatform(t *testing.T) {
	target := NewPlatform()
	assert.Equal(t, platform.Mips, target.ArchitectureName())
	assert.Equal(t, platform.RuntimeCalls(), target.RuntimeCalls())
}

func TestGenerateSum(t *testing.T) {
	output := generate(t, "int wain ( int a , int b ) { return a + b ; }")

	expected := prologue + `sw $2, -4($30)
sub $30, $30, $4
add $2, $0, $0
` + initCall + `add $30, $30, $4
lw $2, -4($30)
` + pushParameters + `lw $3, 8($29)
sw $3, -4($30)
sub $30, $30, $4
lw $3, 4($29)
add $30, $30, $4
lw $5, -4($30)
add $3, $5, $3
` + entryEpilogue

	assert.Equal(t, expected, output)
	assert.NotContains(t, output, "mult")
}

func TestGeneratePointerArithmetic(t *testing.T) {
	output := generate(
		t,
		`int wain ( int * a , int b ) {
			int * c = NULL ;
			c = a + b ;
			c = b + c ;
			c = c - 1 ;
			b = c - a ;
			return * ( a ) ;
		}`)

	// array argument: $2 holds the length for init.
	assert.True(t, strings.HasPrefix(output, prologue+initCall+pushParameters))

	expectedSequences := []string{
		// int * c = NULL
		"add $3, $11, $0\nsw $3, -4($30)\nsub $30, $30, $4\n",
		// c = a + b
		`lw $3, 8($29)
sw $3, -4($30)
sub $30, $30, $4
lw $3, 4($29)
mult $3, $4
mflo $3
add $30, $30, $4
lw $5, -4($30)
add $3, $5, $3
sw $3, 0($29)
`,
		// c = b + c
		`lw $3, 0($29)
sw $3, -4($30)
sub $30, $30, $4
lw $3, 4($29)
mult $3, $4
mflo $3
add $30, $30, $4
lw $5, -4($30)
add $3, $5, $3
`,
		// c = c - 1
		`lw $3, 0($29)
sw $3, -4($30)
sub $30, $30, $4
lis $3
.word 1
mult $3, $4
mflo $3
add $30, $30, $4
lw $5, -4($30)
sub $3, $5, $3
`,
		// b = c - a
		`add $30, $30, $4
lw $5, -4($30)
sub $3, $5, $3
div $3, $4
mflo $3
sw $3, 4($29)
`,
		// return *(a)
		"lw $3, 8($29)\nlw $3, 0($3)\n" + entryEpilogue,
	}

	for _, sequence := range expectedSequences {
		assert.Contains(t, output, sequence)
	}
}

func TestGenerateNullSafeDelete(t *testing.T) {
	output := generate(
		t,
		`int wain ( int * a , int b ) {
			int * p = NULL ;
			p = new int [ b ] ;
			delete [ ] p ;
			delete [ ] NULL ;
			return b ;
		}`)

	assert.Contains(
		t,
		output,
		`lw $3, 4($29)
add $1, $3, $0
lis $10
.word new
sw $31, -4($30)
sub $30, $30, $4
jalr $10
add $30, $30, $4
lw $31, -4($30)
bne $3, $0, ENDNEW0
add $3, $11, $0
ENDNEW0:
`)

	assert.Contains(
		t,
		output,
		`lw $3, 0($29)
beq $3, $11, ENDDELETE0
add $1, $3, $0
lis $10
.word delete
sw $31, -4($30)
sub $30, $30, $4
jalr $10
add $30, $30, $4
lw $31, -4($30)
ENDDELETE0:
`)

	assert.Contains(
		t,
		output,
		`add $3, $11, $0
beq $3, $11, ENDDELETE1
`)

	assert.Equal(t, 2, strings.Count(output, ".word delete\n"))
}

func TestGenerateIO(t *testing.T) {
	output := generate(
		t,
		`int wain ( int a , int b ) {
			putchar ( getchar ( ) ) ;
			println ( a ) ;
			return 0 ;
		}`)

	assert.Contains(
		t,
		output,
		`lis $5
.word 0xffff0004
lw $3, 0($5)
lis $5
.word 0xffff000c
sw $3, 0($5)
lw $3, 8($29)
add $1, $3, $0
lis $10
.word print
`)
}

func TestGenerateComparisons(t *testing.T) {
	testData := []struct {
		Operator string
		Operands string
		Expected string
	}{
		{"==", "a", "slt $6, $3, $5\nslt $7, $5, $3\nadd $3, $6, $7\nsub $3, $11, $3\n"},
		{"!=", "a", "slt $6, $3, $5\nslt $7, $5, $3\nadd $3, $6, $7\nbeq"},
		{"<", "a", "slt $3, $5, $3\nbeq"},
		{"<=", "a", "slt $3, $3, $5\nsub $3, $11, $3\nbeq"},
		{">=", "a", "slt $3, $5, $3\nsub $3, $11, $3\nbeq"},
		{">", "a", "slt $3, $3, $5\nbeq"},
		{"<", "p", "sltu $3, $5, $3\nbeq"},
		{"==", "p", "sltu $6, $3, $5\nsltu $7, $5, $3\n"},
	}

	for _, data := range testData {
		output := generate(
			t,
			`int wain ( int a , int b ) {
				int * p = NULL ;
				while ( `+data.Operands+" "+data.Operator+" "+data.Operands+` ) { }
				return a ;
			}`)

		assert.Contains(
			t,
			output,
			"add $30, $30, $4\nlw $5, -4($30)\n"+data.Expected,
			data.Operator+" "+data.Operands)
	}
}

func TestGenerateMultiplicative(t *testing.T) {
	output := generate(
		t,
		"int wain ( int a , int b ) { return a * b / a % b ; }")

	pop := "add $30, $30, $4\nlw $5, -4($30)\n"
	assert.Contains(t, output, pop+"mult $3, $5\nmflo $3\n")
	assert.Contains(t, output, pop+"div $5, $3\nmflo $3\n")
	assert.Contains(t, output, pop+"div $5, $3\nmfhi $3\n")
}

func TestGenerateProcedures(t *testing.T) {
	program := analyze(
		t,
		`int f ( int x , int * y ) {
			int z = 7 ;
			return x + * y + z ;
		}
		int g ( ) { return 1 ; }
		int wain ( int a , int b ) {
			int c = 3 ;
			* ( & c ) = f ( a , & b ) ;
			return c + g ( ) ;
		}`)

	builder := &strings.Builder{}
	require.NoError(t, NewPlatform().Generate(program, builder))
	output := builder.String()

	// entry first, then the remaining procedures in reverse order.
	entryEnd := strings.Index(output, entryEpilogue)
	gStart := strings.Index(output, "Pg:\n")
	fStart := strings.Index(output, "Pf:\n")
	require.True(t, entryEnd > 0)
	assert.True(t, entryEnd < gStart)
	assert.True(t, gStart < fStart)

	offsets := map[string]int{}
	for _, name := range []string{"f", analyzer.EntryScope} {
		for _, symbol := range program.Symbols.Scope(name).Symbols() {
			offsets[name+"."+symbol.Name] = symbol.Offset
		}
	}
	assert.Equal(
		t,
		map[string]int{
			"f.x":    8,
			"f.y":    4,
			"f.z":    0,
			"wain.a": 8,
			"wain.b": 4,
			"wain.c": 0,
		},
		offsets)

	saves := ""
	restores := ""
	for _, register := range []string{
		"0", "1", "2", "4", "5", "6", "7", "8", "9", "10",
		"11", "12", "13", "14", "15", "16", "17", "18", "19", "20",
	} {
		saves += "sw $" + register + ", -4($30)\nsub $30, $30, $4\n"
		restores = "add $30, $30, $4\nlw $" + register + ", -4($30)\n" + restores
	}

	assert.Contains(
		t,
		output,
		"Pf:\nsub $29, $30, $4\nlis $3\n.word 7\nsw $3, -4($30)\nsub $30, $30, $4\n"+
			saves+
			"lw $3, 8($29)\n")
	assert.Contains(
		t,
		output,
		restores+"add $30, $29, $4\njr $31\n")

	// call f ( a , & b )
	assert.Contains(
		t,
		output,
		`sw $29, -4($30)
sub $30, $30, $4
sw $31, -4($30)
sub $30, $30, $4
lw $3, 8($29)
sw $3, -4($30)
sub $30, $30, $4
lis $3
.word 4
add $3, $29, $3
sw $3, -4($30)
sub $30, $30, $4
lis $5
.word Pf
jalr $5
add $30, $30, $4
lw $5, -4($30)
add $30, $30, $4
lw $5, -4($30)
add $30, $30, $4
lw $31, -4($30)
add $30, $30, $4
lw $29, -4($30)
`)

	// store through * ( & c )
	assert.Contains(
		t,
		output,
		`lw $29, -4($30)
sw $3, -4($30)
sub $30, $30, $4
lis $3
.word 0
add $3, $29, $3
add $30, $30, $4
lw $5, -4($30)
sw $5, 0($3)
`)

	// call g ( )
	assert.Contains(
		t,
		output,
		`sw $31, -4($30)
sub $30, $30, $4
lis $5
.word Pg
jalr $5
add $30, $30, $4
lw $31, -4($30)
`)
}

func TestGenerateUniqueLabels(t *testing.T) {
	output := generate(
		t,
		`int f ( int n ) {
			while ( n > 0 ) {
				if ( n == 1 ) { n = 0 ; } else { n = n - 1 ; }
			}
			return n ;
		}
		int wain ( int a , int b ) {
			while ( a < b ) {
				if ( a == b ) { } else { }
				while ( b > 0 ) {
					if ( b == 1 ) { } else { }
					b = b - 1 ;
				}
				a = a + 1 ;
			}
			return f ( a ) ;
		}`)

	definitions := regexp.MustCompile(`(?m)^([A-Z]+\d*):$`).FindAllStringSubmatch(
		output,
		-1)

	seen := map[string]int{}
	for _, match := range definitions {
		seen[match[1]]++
	}

	for label, count := range seen {
		assert.Equal(t, 1, count, label)
	}

	for _, label := range []string{
		"ELSE0", "ENDIF0", "ELSE1", "ENDIF1", "ELSE2", "ENDIF2",
		"WHILE0", "ENDWHILE0", "WHILE1", "ENDWHILE1", "WHILE2", "ENDWHILE2",
	} {
		assert.Contains(t, seen, label)
	}
	assert.NotContains(t, seen, "ELSE3")
	assert.NotContains(t, seen, "WHILE3")
}

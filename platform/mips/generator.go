package mips

import (
	"github.com/pattyshack/wlp4c/analyzer"
	arch "github.com/pattyshack/wlp4c/architecture"
	"github.com/pattyshack/wlp4c/ast"
	"github.com/pattyshack/wlp4c/platform"
)

const (
	procedureLabelPrefix = "P"
)

func procedureLabel(name string) string {
	return procedureLabelPrefix + name
}

// generator emits code for a single program.  The current scope and frame
// are replaced whenever a new procedure's code is generated.
type generator struct {
	assembler

	symbols *analyzer.SymbolTable
	labels  *LabelAllocator

	scope *analyzer.Scope
	frame *arch.StackFrame
}

func newGenerator(symbols *analyzer.SymbolTable) *generator {
	return &generator{
		symbols: symbols,
		labels:  NewLabelAllocator(),
	}
}

func (gen *generator) push(register arch.Register) int {
	gen.sw(register, -arch.WordSize, arch.StackPointer)
	gen.sub(arch.StackPointer, arch.StackPointer, arch.Word)
	return gen.frame.Push()
}

func (gen *generator) pop(register arch.Register) {
	gen.add(arch.StackPointer, arch.StackPointer, arch.Word)
	gen.lw(register, -arch.WordSize, arch.StackPointer)
	gen.frame.Pop()
}

// callRuntime calls a runtime procedure.  The argument, if any, must already
// be in $1.
func (gen *generator) callRuntime(call platform.RuntimeCall) {
	gen.loadWord(arch.RuntimeTarget, call)
	gen.push(arch.ReturnAddress)
	gen.jalr(arch.RuntimeTarget)
	gen.pop(arch.ReturnAddress)
}

func (gen *generator) symbol(id *ast.Leaf) *analyzer.Symbol {
	symbol, ok := gen.scope.Lookup(id.Lexeme)
	if !ok {
		panic("should never happen: undeclared " + id.Lexeme)
	}
	return symbol
}

// declare pushes the register's value as the declared variable's storage.
func (gen *generator) declare(dcl *ast.Interior, value arch.Register) {
	gen.symbol(ast.DeclaredName(dcl)).Offset = gen.push(value)
}

func (gen *generator) generateProgram(root *ast.Interior) {
	for _, call := range platform.RuntimeCalls() {
		gen.importSymbol(string(call))
	}
	gen.loadWord(arch.Word, arch.WordSize)
	gen.loadWord(arch.True, 1)

	// The entry procedure is last in the list.  It is generated first, followed
	// by the other procedures in reverse definition order.
	procedures := ast.Procedures(root)
	for idx := len(procedures) - 1; idx >= 0; idx-- {
		procedure := procedures[idx]
		if procedure.Rule() == ast.MainRule {
			gen.generateEntry(procedure)
		} else {
			gen.generateProcedure(procedure)
		}
	}
}

func (gen *generator) generateEntry(main *ast.Interior) {
	gen.scope = gen.symbols.Scope(analyzer.EntryScope)
	gen.frame = arch.NewEntryFrame()

	first := main.Child(3)
	second := main.Child(5)

	// init takes the array length in $2 when wain receives an array, and 0
	// otherwise.
	if ast.DeclaredType(first) == ast.Int {
		gen.push(arch.SecondArgument)
		gen.move(arch.SecondArgument, arch.Zero)
		gen.callRuntime(platform.InitHeap)
		gen.pop(arch.SecondArgument)
	} else {
		gen.callRuntime(platform.InitHeap)
	}

	gen.declare(first, arch.FirstArgument)
	gen.declare(second, arch.SecondArgument)
	gen.sub(arch.FramePointer, arch.StackPointer, arch.Word)

	gen.generateLocals(main.Child(8))
	gen.generateStatements(main.Child(9))
	gen.generateExpr(main.Child(11))

	gen.add(arch.StackPointer, arch.StackPointer, arch.Word)
	gen.add(arch.StackPointer, arch.StackPointer, arch.Word)
	gen.jr(arch.ReturnAddress)
}

func (gen *generator) generateProcedure(procedure *ast.Interior) {
	name := procedure.Leaf(1).Lexeme
	gen.scope = gen.symbols.Scope(name)

	params := ast.Parameters(procedure.Child(3))
	frame, offsets := arch.NewProcedureFrame(len(params))
	gen.frame = frame
	for idx, dcl := range params {
		gen.symbol(ast.DeclaredName(dcl)).Offset = offsets[idx]
	}

	gen.label(procedureLabel(name))
	gen.sub(arch.FramePointer, arch.StackPointer, arch.Word)

	gen.generateLocals(procedure.Child(6))

	saved := arch.SavedRegisters()
	for _, register := range saved {
		gen.push(register)
	}

	gen.generateStatements(procedure.Child(7))
	gen.generateExpr(procedure.Child(9))

	for idx := len(saved) - 1; idx >= 0; idx-- {
		gen.pop(saved[idx])
	}

	gen.add(arch.StackPointer, arch.FramePointer, arch.Word)
	gen.jr(arch.ReturnAddress)
}

func (gen *generator) generateLocals(dcls *ast.Interior) {
	for _, local := range ast.Declarations(dcls) {
		switch local.Rule() {
		case ast.DclsNumRule:
			gen.loadWord(arch.Accumulator, local.Leaf(3).Lexeme)
		case ast.DclsNullRule:
			gen.move(arch.Accumulator, arch.Null)
		default:
			panic("should never happen: " + local.Production.String())
		}

		gen.declare(local.Child(1), arch.Accumulator)
	}
}

func (gen *generator) generateStatements(statements *ast.Interior) {
	for _, statement := range ast.Statements(statements) {
		gen.generateStatement(statement)
	}
}

func (gen *generator) generateStatement(statement *ast.Interior) {
	switch statement.Rule() {
	case ast.AssignRule:
		gen.generateAssign(statement)

	case ast.IfRule:
		elseLabel, endLabel := gen.labels.If()

		gen.generateTest(statement.Child(2))
		gen.beq(arch.Accumulator, arch.Zero, elseLabel)
		gen.generateStatements(statement.Child(5))
		gen.beq(arch.Zero, arch.Zero, endLabel)
		gen.label(elseLabel)
		gen.generateStatements(statement.Child(9))
		gen.label(endLabel)

	case ast.WhileRule:
		loopLabel, endLabel := gen.labels.While()

		gen.label(loopLabel)
		gen.generateTest(statement.Child(2))
		gen.beq(arch.Accumulator, arch.Zero, endLabel)
		gen.generateStatements(statement.Child(5))
		gen.beq(arch.Zero, arch.Zero, loopLabel)
		gen.label(endLabel)

	case ast.PrintlnRule:
		gen.generateExpr(statement.Child(2))
		gen.move(arch.FirstArgument, arch.Accumulator)
		gen.callRuntime(platform.Print)

	case ast.PutcharRule:
		gen.generateExpr(statement.Child(2))
		gen.loadWord(arch.Scratch, outputAddress)
		gen.sw(arch.Accumulator, 0, arch.Scratch)

	case ast.DeleteRule:
		endLabel := gen.labels.Delete()

		gen.generateExpr(statement.Child(3))
		gen.beq(arch.Accumulator, arch.Null, endLabel)
		gen.move(arch.FirstArgument, arch.Accumulator)
		gen.callRuntime(platform.Deallocate)
		gen.label(endLabel)

	default:
		panic("should never happen: " + statement.Production.String())
	}
}

func (gen *generator) generateAssign(statement *ast.Interior) {
	lvalue := ast.UnwrapLvalue(statement.Child(0))
	switch lvalue.Rule() {
	case ast.LvalueIdRule:
		gen.generateExpr(statement.Child(2))
		offset := gen.symbol(lvalue.Leaf(0)).Offset
		gen.sw(arch.Accumulator, offset, arch.FramePointer)

	case ast.LvalueDerefRule:
		gen.generateExpr(statement.Child(2))
		gen.push(arch.Accumulator)
		gen.generateFactor(lvalue.Child(1))
		gen.pop(arch.Scratch)
		gen.sw(arch.Scratch, 0, arch.Accumulator)

	default:
		panic("should never happen: " + lvalue.Production.String())
	}
}

// generateTest leaves 1 in $3 if the test holds, 0 otherwise.
func (gen *generator) generateTest(test *ast.Interior) {
	gen.generateExpr(test.Child(0))
	gen.push(arch.Accumulator)
	gen.generateExpr(test.Child(2))
	gen.pop(arch.Scratch)

	// pointers are compared as unsigned addresses.
	lessThan := gen.slt
	if test.Child(0).Type == ast.Pointer && test.Child(2).Type == ast.Pointer {
		lessThan = gen.sltu
	}

	left := arch.Scratch
	right := arch.Accumulator
	result := arch.Accumulator

	switch test.Rule() {
	case ast.TestEqRule, ast.TestNeRule:
		lessThan(arch.CompareLow, right, left)
		lessThan(arch.CompareHigh, left, right)
		gen.add(result, arch.CompareLow, arch.CompareHigh)
		if test.Rule() == ast.TestEqRule {
			gen.sub(result, arch.True, result)
		}
	case ast.TestLtRule:
		lessThan(result, left, right)
	case ast.TestLeRule:
		lessThan(result, right, left)
		gen.sub(result, arch.True, result)
	case ast.TestGeRule:
		lessThan(result, left, right)
		gen.sub(result, arch.True, result)
	case ast.TestGtRule:
		lessThan(result, right, left)
	default:
		panic("should never happen: " + test.Production.String())
	}
}

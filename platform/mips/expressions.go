package mips

import (
	arch "github.com/pattyshack/wlp4c/architecture"
	"github.com/pattyshack/wlp4c/ast"
	"github.com/pattyshack/wlp4c/platform"
)

// All expression code leaves the expression's value in $3.

func (gen *generator) generateExpr(expr *ast.Interior) {
	switch expr.Rule() {
	case ast.ExprTermRule:
		gen.generateTerm(expr.Child(0))
	case ast.ExprPlusRule:
		gen.generatePlus(expr)
	case ast.ExprMinusRule:
		gen.generateMinus(expr)
	default:
		panic("should never happen: " + expr.Production.String())
	}
}

// scale converts the int in $3 into a byte offset.
func (gen *generator) scale() {
	gen.mult(arch.Accumulator, arch.Word)
	gen.mflo(arch.Accumulator)
}

func (gen *generator) generatePlus(expr *ast.Interior) {
	left := expr.Child(0)
	right := expr.Child(2)

	switch {
	case left.Type == ast.Int && right.Type == ast.Int:
		gen.generateExpr(left)
		gen.push(arch.Accumulator)
		gen.generateTerm(right)
	case left.Type == ast.Pointer && right.Type == ast.Int:
		gen.generateExpr(left)
		gen.push(arch.Accumulator)
		gen.generateTerm(right)
		gen.scale()
	case left.Type == ast.Int && right.Type == ast.Pointer:
		gen.generateTerm(right)
		gen.push(arch.Accumulator)
		gen.generateExpr(left)
		gen.scale()
	default:
		panic("should never happen: invalid operand types")
	}

	gen.pop(arch.Scratch)
	gen.add(arch.Accumulator, arch.Scratch, arch.Accumulator)
}

func (gen *generator) generateMinus(expr *ast.Interior) {
	left := expr.Child(0)
	right := expr.Child(2)

	gen.generateExpr(left)
	gen.push(arch.Accumulator)
	gen.generateTerm(right)

	switch {
	case left.Type == ast.Int && right.Type == ast.Int:
		gen.pop(arch.Scratch)
		gen.sub(arch.Accumulator, arch.Scratch, arch.Accumulator)
	case left.Type == ast.Pointer && right.Type == ast.Int:
		gen.scale()
		gen.pop(arch.Scratch)
		gen.sub(arch.Accumulator, arch.Scratch, arch.Accumulator)
	case left.Type == ast.Pointer && right.Type == ast.Pointer:
		gen.pop(arch.Scratch)
		gen.sub(arch.Accumulator, arch.Scratch, arch.Accumulator)
		gen.div(arch.Accumulator, arch.Word)
		gen.mflo(arch.Accumulator)
	default:
		panic("should never happen: invalid operand types")
	}
}

func (gen *generator) generateTerm(term *ast.Interior) {
	if term.Rule() == ast.TermFactorRule {
		gen.generateFactor(term.Child(0))
		return
	}

	gen.generateTerm(term.Child(0))
	gen.push(arch.Accumulator)
	gen.generateFactor(term.Child(2))
	gen.pop(arch.Scratch)

	switch term.Rule() {
	case ast.TermStarRule:
		gen.mult(arch.Accumulator, arch.Scratch)
		gen.mflo(arch.Accumulator)
	case ast.TermSlashRule:
		gen.div(arch.Scratch, arch.Accumulator)
		gen.mflo(arch.Accumulator)
	case ast.TermPctRule:
		gen.div(arch.Scratch, arch.Accumulator)
		gen.mfhi(arch.Accumulator)
	default:
		panic("should never happen: " + term.Production.String())
	}
}

func (gen *generator) generateFactor(factor *ast.Interior) {
	switch factor.Rule() {
	case ast.FactorIdRule:
		offset := gen.symbol(factor.Leaf(0)).Offset
		gen.lw(arch.Accumulator, offset, arch.FramePointer)

	case ast.FactorNumRule:
		gen.loadWord(arch.Accumulator, factor.Leaf(0).Lexeme)

	case ast.FactorNullRule:
		gen.move(arch.Accumulator, arch.Null)

	case ast.FactorParenRule:
		gen.generateExpr(factor.Child(1))

	case ast.FactorAddressRule:
		gen.generateAddress(factor.Child(1))

	case ast.FactorDerefRule:
		gen.generateFactor(factor.Child(1))
		gen.lw(arch.Accumulator, 0, arch.Accumulator)

	case ast.FactorNewRule:
		endLabel := gen.labels.New()

		gen.generateExpr(factor.Child(3))
		gen.move(arch.FirstArgument, arch.Accumulator)
		gen.callRuntime(platform.Allocate)

		// an exhausted heap yields the null sentinel rather than address 0.
		gen.bne(arch.Accumulator, arch.Zero, endLabel)
		gen.move(arch.Accumulator, arch.Null)
		gen.label(endLabel)

	case ast.FactorCallRule, ast.FactorCallArgsRule:
		gen.generateCall(factor)

	case ast.FactorGetcharRule:
		gen.loadWord(arch.Scratch, inputAddress)
		gen.lw(arch.Accumulator, 0, arch.Scratch)

	default:
		panic("should never happen: " + factor.Production.String())
	}
}

func (gen *generator) generateAddress(lvalue *ast.Interior) {
	lvalue = ast.UnwrapLvalue(lvalue)
	switch lvalue.Rule() {
	case ast.LvalueIdRule:
		gen.loadWord(arch.Accumulator, gen.symbol(lvalue.Leaf(0)).Offset)
		gen.add(arch.Accumulator, arch.FramePointer, arch.Accumulator)

	case ast.LvalueDerefRule:
		// &*p is p
		gen.generateFactor(lvalue.Child(1))

	default:
		panic("should never happen: " + lvalue.Production.String())
	}
}

func (gen *generator) generateCall(call *ast.Interior) {
	gen.push(arch.FramePointer)
	gen.push(arch.ReturnAddress)

	var args []*ast.Interior
	if call.Rule() == ast.FactorCallArgsRule {
		args = ast.Arguments(call.Child(2))
	}

	for _, arg := range args {
		gen.generateExpr(arg)
		gen.push(arch.Accumulator)
	}

	gen.loadWord(arch.Scratch, procedureLabel(call.Leaf(0).Lexeme))
	gen.jalr(arch.Scratch)

	for range args {
		gen.pop(arch.Scratch)
	}

	gen.pop(arch.ReturnAddress)
	gen.pop(arch.FramePointer)
}

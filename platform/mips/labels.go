package mips

import (
	"fmt"
)

type labelKind string

const (
	elseLabel      = labelKind("ELSE")
	endIfLabel     = labelKind("ENDIF")
	whileLabel     = labelKind("WHILE")
	endWhileLabel  = labelKind("ENDWHILE")
	endNewLabel    = labelKind("ENDNEW")
	endDeleteLabel = labelKind("ENDDELETE")
)

// LabelAllocator hands out unique branch labels.  Each construct kind has its
// own counter, starting at zero.  Counters are never reset, so labels stay
// unique across all procedures of a program.
type LabelAllocator struct {
	ifCount     int
	whileCount  int
	newCount    int
	deleteCount int
}

func NewLabelAllocator() *LabelAllocator {
	return &LabelAllocator{}
}

func label(kind labelKind, id int) string {
	return fmt.Sprintf("%s%d", kind, id)
}

// If returns the else and end labels of a new if statement.
func (allocator *LabelAllocator) If() (string, string) {
	id := allocator.ifCount
	allocator.ifCount++
	return label(elseLabel, id), label(endIfLabel, id)
}

// While returns the loop head and end labels of a new while statement.
func (allocator *LabelAllocator) While() (string, string) {
	id := allocator.whileCount
	allocator.whileCount++
	return label(whileLabel, id), label(endWhileLabel, id)
}

func (allocator *LabelAllocator) New() string {
	id := allocator.newCount
	allocator.newCount++
	return label(endNewLabel, id)
}

func (allocator *LabelAllocator) Delete() string {
	id := allocator.deleteCount
	allocator.deleteCount++
	return label(endDeleteLabel, id)
}

package architecture

// StackFrame tracks the frame pointer relative offset of the next stack slot
// while a procedure's code is generated.  Every push moves the stack pointer
// down by one word.
type StackFrame struct {
	offset int
}

// NewStackFrame returns a frame whose next slot is at the given offset.
func NewStackFrame(offset int) *StackFrame {
	return &StackFrame{
		offset: offset,
	}
}

// NewEntryFrame returns the entry procedure's frame.  The entry procedure
// pushes its own two arguments before setting the frame pointer, so they live
// at 2*WordSize and WordSize.
func NewEntryFrame() *StackFrame {
	return NewStackFrame(2 * WordSize)
}

// NewProcedureFrame returns a frame for a procedure with numParameters
// parameters along with the parameters' offsets.  The caller pushes the
// arguments left to right, so the first parameter is the furthest from the
// frame pointer.  Locals start at offset zero.
func NewProcedureFrame(numParameters int) (*StackFrame, []int) {
	offsets := make([]int, 0, numParameters)
	for idx := 0; idx < numParameters; idx++ {
		offsets = append(offsets, (numParameters-idx)*WordSize)
	}
	return NewStackFrame(0), offsets
}

func (frame *StackFrame) Offset() int {
	return frame.offset
}

// Push claims the next slot and returns its offset.
func (frame *StackFrame) Push() int {
	offset := frame.offset
	frame.offset -= WordSize
	return offset
}

// Pop releases the most recently claimed slot.
func (frame *StackFrame) Pop() {
	frame.offset += WordSize
}

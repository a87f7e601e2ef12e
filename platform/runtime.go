package platform

// A procedure provided by the runtime library that is linked with the
// generated code.
type RuntimeCall string

const (
	// Initializes the heap.  Must be called once before any new / delete.
	InitHeap = RuntimeCall("init")

	// Allocates the number of words in $1.  Returns the address in $3, or 0 if
	// the heap is exhausted.
	Allocate = RuntimeCall("new")

	// Frees the address in $1.
	Deallocate = RuntimeCall("delete")

	// Prints the int in $1 followed by a newline.
	Print = RuntimeCall("print")
)

func RuntimeCalls() []RuntimeCall {
	return []RuntimeCall{InitHeap, Allocate, Deallocate, Print}
}

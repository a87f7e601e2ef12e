package ast

// Type is the inferred type of an expression-bearing node.  Unknown is only a
// transient marker; a fully checked tree never has an Unknown expression.
type Type int

const (
	Unknown = Type(iota)
	Int
	Pointer
)

func (t Type) String() string {
	switch t {
	case Int:
		return "int"
	case Pointer:
		return "int*"
	default:
		return "unknown"
	}
}

// ParseType is the inverse of String for the two concrete types.
func ParseType(value string) (Type, bool) {
	switch value {
	case "int":
		return Int, true
	case "int*":
		return Pointer, true
	}
	return Unknown, false
}

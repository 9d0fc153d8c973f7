package circuit

import "fmt"

// Kind classifies a circuit-construction error.
type Kind int

const (
	// LengthMismatch: operand widths do not match the operation's contract.
	LengthMismatch Kind = iota
	// InputTooShort: an operand is narrower than the operation requires.
	InputTooShort
	// DuplicateName: create_variable called twice with the same label.
	DuplicateName
	// UnknownName: lookup of an undeclared variable label.
	UnknownName
	// ValueTooLarge: a constant does not fit in its required width.
	ValueTooLarge
)

func (k Kind) String() string {
	switch k {
	case LengthMismatch:
		return "LENGTH_MISMATCH"
	case InputTooShort:
		return "INPUT_TOO_SHORT"
	case DuplicateName:
		return "DUPLICATE_NAME"
	case UnknownName:
		return "UNKNOWN_NAME"
	case ValueTooLarge:
		return "VALUE_TOO_LARGE"
	default:
		return "UNKNOWN_ERROR"
	}
}

// Error is the error type returned by every contract violation in the
// compiler. All violations are hard failures: the compiler makes no
// attempt to recover a partially built model.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func errf(k Kind, format string, args ...any) error {
	return &Error{Kind: k, Msg: fmt.Sprintf(format, args...)}
}

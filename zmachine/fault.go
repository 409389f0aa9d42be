package zmachine

import "fmt"

// ---------------------------------------------------------------------------
// Fault: fatal machine faults
// ---------------------------------------------------------------------------

// A Fault is a fatal machine condition: stack under/overflow, an address
// outside the segment an operation is allowed to touch, an unknown opcode,
// and so on. Faults abort execution; they never unwind into the story.
type Fault struct {
	Msg string
}

func (f *Fault) Error() string {
	return "z-machine halted: " + f.Msg
}

// halt raises a machine fault. Opcode bodies call it freely; Machine.Run
// recovers the panic at the API boundary and returns it as an error.
func halt(format string, args ...any) {
	panic(&Fault{Msg: fmt.Sprintf(format, args...)})
}

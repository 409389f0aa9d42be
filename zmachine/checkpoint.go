package zmachine

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
)

// ---------------------------------------------------------------------------
// Checkpoint codec: binary state snapshot for resume-on-launch
// ---------------------------------------------------------------------------

// A checkpoint carries the same state as the textual snapshot, but in
// canonical CBOR for the interpreter's own resume feature. The in-game save
// and restore opcodes keep using the textual format.

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("zmachine: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

type checkpointState struct {
	Session string   `cbor:"session"`
	Release int      `cbor:"release"`
	Serial  string   `cbor:"serial"`
	PC      int      `cbor:"pc"`
	Top     int      `cbor:"top"`
	Frame   int      `cbor:"frame"`
	Stack   []uint16 `cbor:"stack"`
	Dynamic []byte   `cbor:"dynamic"`
}

// Checkpoint serializes the current machine state to CBOR bytes. Each
// checkpoint is stamped with a fresh session identifier.
func (m *Machine) Checkpoint() ([]byte, error) {
	state := checkpointState{
		Session: uuid.NewString(),
		Release: m.header.Release,
		Serial:  m.header.Serial,
		PC:      m.pc,
		Top:     m.stack.top,
		Frame:   m.stack.frame,
		Stack:   make([]uint16, m.stack.top+1),
		Dynamic: make([]byte, m.header.StaticBase),
	}
	for i := 0; i <= m.stack.top; i++ {
		state.Stack[i] = uint16(m.stack.cells[i])
	}
	copy(state.Dynamic, m.story[:m.header.StaticBase])

	data, err := cborEncMode.Marshal(&state)
	if err != nil {
		return nil, fmt.Errorf("checkpoint: %w", err)
	}
	return data, nil
}

// RestoreCheckpoint validates checkpoint bytes against the running story
// and replaces the machine state. On error the state is untouched.
func (m *Machine) RestoreCheckpoint(data []byte) error {
	var state checkpointState
	if err := cbor.Unmarshal(data, &state); err != nil {
		return fmt.Errorf("checkpoint: unmarshal: %w", err)
	}

	if state.Release != m.header.Release || state.Serial != m.header.Serial {
		return fmt.Errorf("checkpoint is for a different story (release %d serial %s)",
			state.Release, state.Serial)
	}
	if state.PC < 0 || state.PC > len(m.story) {
		return fmt.Errorf("checkpoint pc 0x%x outside story file", state.PC)
	}
	if len(state.Stack) > stackSize || state.Top >= stackSize || state.Frame >= stackSize {
		return fmt.Errorf("checkpoint stack larger than %d cells", stackSize)
	}
	if len(state.Dynamic) > len(m.story) {
		return fmt.Errorf("checkpoint dynamic memory larger than story file")
	}

	m.pc = state.PC
	m.stack.top = state.Top
	m.stack.frame = state.Frame
	for i, v := range state.Stack {
		m.stack.cells[i] = int(v)
	}
	copy(m.story, state.Dynamic)
	m.separators = ""

	log.Infof("resumed checkpoint %s, pc 0x%04x", state.Session, m.pc)
	if m.obs != nil {
		m.obs.Reprime(m)
	}
	return nil
}

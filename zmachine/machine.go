// Package zmachine implements a version-3 Z-machine: the memory model,
// instruction decoder, opcode bodies, text codec, object tree, dictionary,
// and the save/restore state protocol. I/O goes through the narrow Host
// interface; everything else is owned by the Machine.
package zmachine

import (
	"fmt"
	"strings"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("zi.machine")

const wordSize = 2

// EOL is the machine-internal line terminator. The console host translates
// it to the platform terminator on output.
const EOL = "\n"

// Host is the teletype surface the machine drives. ReadLine blocks for one
// line of input without its terminator; WriteChunk receives finished output;
// ReadFile and WriteFile carry the story reload and the save files.
type Host interface {
	ReadLine() (string, error)
	WriteChunk(s string) error
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte) error
}

// InputObserver is notified before each line of input is read, when the
// pending output is final but not yet flushed, and after state is replaced
// wholesale by restore, restart, or a checkpoint. The score watcher hangs
// off this.
type InputObserver interface {
	BeforeInput(m *Machine)
	Reprime(m *Machine)
}

// Machine is a running Z-machine instance. It owns the memory image, the
// stack, the RNG, and the output buffer exclusively; it is single-threaded
// and synchronous, blocking only inside Host calls.
type Machine struct {
	story     []byte
	storyPath string
	header    Header
	stack     *Stack
	pc        int
	running   bool

	host Host
	obs  InputObserver
	out  strings.Builder

	rng        randomSource
	separators string // word separator set, built on first use

	// Trace enables per-instruction debug logging.
	Trace bool
}

// NewMachine loads a story image. storyPath is kept for restart, which
// rereads the file through the host.
func NewMachine(story []byte, storyPath string, host Host) (*Machine, error) {
	if len(story) < 0x40 {
		return nil, fmt.Errorf("story file too short (%d bytes)", len(story))
	}

	m := &Machine{
		story:     story,
		storyPath: storyPath,
		host:      host,
	}
	m.header = readHeader(story)
	if m.header.Version != 3 {
		return nil, fmt.Errorf("unsupported story version %d (version 3 only)", m.header.Version)
	}

	m.stack = NewStack()
	m.pc = m.header.InitialPC
	m.running = true

	log.Infof("loaded story: release %d serial %s, %d bytes, pc 0x%04x",
		m.header.Release, m.header.Serial, len(story), m.pc)
	return m, nil
}

// SetObserver installs the input observer. Pass nil to remove it.
func (m *Machine) SetObserver(obs InputObserver) {
	m.obs = obs
}

// Run executes instructions until the story quits or a machine fault
// occurs. Faults are returned as *Fault errors; the output buffer is
// flushed either way.
func (m *Machine) Run() (err error) {
	defer func() {
		if r := recover(); r != nil {
			f, ok := r.(*Fault)
			if !ok {
				panic(r)
			}
			log.Errorf("%s (pc 0x%04x)", f.Msg, m.pc)
			m.flushOutput()
			err = &Fault{Msg: fmt.Sprintf("%s (pc 0x%04x)", f.Msg, m.pc)}
		}
	}()

	for m.running {
		m.step()
	}
	return m.flushOutput()
}

// Header returns the header projection read at load time.
func (m *Machine) Header() Header {
	return m.header
}

// Flags1 returns the live flags1 byte from dynamic memory.
func (m *Machine) Flags1() int {
	return m.getByte(0x01)
}

// GlobalWord reads global variable n (16..255) without going through the
// variable namespace. Observers use this to watch the score global.
func (m *Machine) GlobalWord(n int) int {
	return m.getWord(m.globalAddr(n))
}

// ---------------------------------------------------------------------------
// Variable namespace
// ---------------------------------------------------------------------------

// Variable 0 is the evaluation stack (push on write, pop on read), 1..15
// are current-frame locals, 16..255 are globals.

func (m *Machine) variable(n int) int {
	switch {
	case n == 0:
		return m.stack.Pop()
	case n <= 15:
		return m.stack.Peek(m.localIndex(n))
	default:
		return m.getWord(m.globalAddr(n))
	}
}

func (m *Machine) setVariable(n, value int) {
	switch {
	case n == 0:
		m.stack.Push(value)
	case n <= 15:
		m.stack.Poke(m.localIndex(n), value)
	default:
		m.setWord(m.globalAddr(n), value)
	}
}

// variableInPlace and setVariableInPlace are the in-place variants used by
// load, store, inc, and dec: variable 0 means the top of stack itself, read
// without popping and written without pushing.

func (m *Machine) variableInPlace(n int) int {
	if n == 0 {
		return m.stack.PeekTop()
	}
	return m.variable(n)
}

func (m *Machine) setVariableInPlace(n, value int) {
	if n == 0 {
		m.stack.ReplaceTop(value)
		return
	}
	m.setVariable(n, value)
}

func (m *Machine) localIndex(n int) int {
	numLocals := m.stack.Peek(m.stack.frame + 1)
	if n < 1 || n > numLocals {
		halt("local variable %d out of bounds [1..%d]", n, numLocals)
	}
	return m.stack.frame + 1 + n
}

func (m *Machine) globalAddr(n int) int {
	if n < 16 || n > 255 {
		halt("global variable %d out of bounds [16..255]", n)
	}
	return m.header.GlobalsAddr + (n-16)*wordSize
}

// ---------------------------------------------------------------------------
// Call / return protocol
// ---------------------------------------------------------------------------

// call pushes a new frame and jumps to the routine. args[0] is the packed
// routine address, args[1..3] are word arguments. The caller's store byte
// is not consumed here: every call resolves its store lazily in doReturn.
func (m *Machine) call(args []int) {
	routineAddr := unpack(args[0])
	if routineAddr == 0 {
		m.storeResult(0)
		return
	}
	if routineAddr >= m.header.FileLength {
		halt("call: routine 0x%x outside story file", routineAddr)
	}

	numLocals := m.getByte(routineAddr)
	if numLocals > 15 {
		halt("call: target 0x%x not a routine (%d locals)", routineAddr, numLocals)
	}

	m.stack.PushAddr(m.pc)
	m.stack.Push(m.stack.frame)
	m.stack.frame = m.stack.top
	m.stack.Push(numLocals)
	for k := 1; k <= numLocals; k++ {
		value := m.getWord(routineAddr + 1 + (k-1)*wordSize)
		if k < len(args) {
			value = args[k]
		}
		m.stack.Push(value)
	}

	m.pc = routineAddr + 1 + numLocals*wordSize
}

// doReturn unwinds the current frame and performs the deferred store of the
// call that created it: the store byte sits at the restored PC.
func (m *Machine) doReturn(value int) {
	if m.stack.frame < 0 || m.stack.frame > m.stack.top {
		halt("return: call stack underflow")
	}

	m.stack.top = m.stack.frame
	m.stack.frame = m.stack.Pop()
	m.pc = m.stack.PopAddr()

	m.storeResult(value)
}

// ---------------------------------------------------------------------------
// Output buffer and input
// ---------------------------------------------------------------------------

func (m *Machine) print(text string) {
	m.out.WriteString(text)
}

func (m *Machine) flushOutput() error {
	if m.out.Len() == 0 {
		return nil
	}
	text := m.out.String()
	m.out.Reset()
	return m.host.WriteChunk(text)
}

// inputLine notifies the observer, flushes pending output, and reads one
// line from the host. sread treats an error as fatal; save and restore
// degrade it to branch-on-failure.
func (m *Machine) inputLine() (string, error) {
	if m.obs != nil {
		m.obs.BeforeInput(m)
	}
	if err := m.flushOutput(); err != nil {
		return "", err
	}
	return m.host.ReadLine()
}

// SpliceBeforePrompt inserts text immediately before a trailing ">" in the
// pending output. If the buffer does not end with ">", nothing is inserted
// and false is returned.
func (m *Machine) SpliceBeforePrompt(text string) bool {
	buffered := m.out.String()
	if !strings.HasSuffix(buffered, ">") {
		return false
	}
	m.out.Reset()
	m.out.WriteString(buffered[:len(buffered)-1])
	m.out.WriteString(text)
	m.out.WriteString(">")
	return true
}

// ---------------------------------------------------------------------------
// Restart
// ---------------------------------------------------------------------------

// restart reloads the story image, resets the stack, and rewinds the PC to
// the header's initial value. Reload failures leave memory as it is.
func (m *Machine) restart() {
	story, err := m.host.ReadFile(m.storyPath)
	if err != nil {
		log.Warningf("restart: cannot reread story: %s", err.Error())
	} else {
		copy(m.story, story)
	}
	m.stack.Reset()
	m.pc = m.header.InitialPC
	m.separators = ""

	log.Infof("restarted, pc 0x%04x", m.pc)
	if m.obs != nil {
		m.obs.Reprime(m)
	}
}

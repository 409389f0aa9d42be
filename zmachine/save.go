package zmachine

import (
	"fmt"
	"strconv"
	"strings"
)

// ---------------------------------------------------------------------------
// Save / restore codec: textual snapshot of dynamic memory, stack, and PC
// ---------------------------------------------------------------------------

// The snapshot is plain ASCII, one section header per line:
//
//	releasenumber.serialcode
//	NN.SSSSSS
//	pc
//	HHHH
//	stack
//	LLLL
//	HHHH HHHH ... (40 per line)
//	stack.topindex
//	HHHH
//	stack.stackframeindex
//	HHHH
//	dynamicmemory
//	LLLL
//	HH HH ... (40 per line)
//
// The format predates this implementation; its shape is preserved so that
// existing save files keep loading.

const snapshotValuesPerRow = 40

type snapshot struct {
	pc    int
	top   int
	frame int
	stack []int
	dyn   []byte
}

func (m *Machine) releaseSerial() string {
	return fmt.Sprintf("%02d.%6s", m.header.Release, m.header.Serial)
}

// saveContent renders the current machine state in the snapshot format.
func (m *Machine) saveContent() string {
	var sb strings.Builder

	sb.WriteString("releasenumber.serialcode" + EOL)
	sb.WriteString(m.releaseSerial() + EOL)

	sb.WriteString("pc" + EOL)
	fmt.Fprintf(&sb, "%04x"+EOL, m.pc)

	sb.WriteString("stack" + EOL)
	fmt.Fprintf(&sb, "%04x"+EOL, m.stack.top+1)
	for i := 0; i <= m.stack.top; i++ {
		if i > 0 && i%snapshotValuesPerRow == 0 {
			sb.WriteString(EOL)
		}
		fmt.Fprintf(&sb, "%04x ", m.stack.Peek(i)&0xFFFF)
	}
	sb.WriteString(EOL)

	sb.WriteString("stack.topindex" + EOL)
	fmt.Fprintf(&sb, "%04x"+EOL, m.stack.top)

	sb.WriteString("stack.stackframeindex" + EOL)
	fmt.Fprintf(&sb, "%04x"+EOL, m.stack.frame)

	sb.WriteString("dynamicmemory" + EOL)
	fmt.Fprintf(&sb, "%04x"+EOL, m.header.StaticBase)
	for i := 0; i < m.header.StaticBase; i++ {
		if i > 0 && i%snapshotValuesPerRow == 0 {
			sb.WriteString(EOL)
		}
		fmt.Fprintf(&sb, "%02x ", m.getByte(i))
	}

	return sb.String()
}

// parseSnapshot parses and validates snapshot data against the running
// story. The machine state is untouched; apply the returned snapshot with
// applySnapshot.
func (m *Machine) parseSnapshot(data []byte) (*snapshot, error) {
	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")

	snap := &snapshot{pc: -1, top: -2, frame: -2}

	i := 0
	for i < len(lines) {
		var err error
		switch lines[i] {
		case "releasenumber.serialcode":
			i++
			if i >= len(lines) || lines[i] != m.releaseSerial() {
				return nil, fmt.Errorf("snapshot is for a different story (want %s)", m.releaseSerial())
			}
		case "pc":
			i++
			if snap.pc, err = hexValueAt(lines, i); err != nil {
				return nil, fmt.Errorf("pc: %w", err)
			}
		case "stack.topindex":
			i++
			if snap.top, err = hexValueAt(lines, i); err != nil {
				return nil, fmt.Errorf("stack.topindex: %w", err)
			}
		case "stack.stackframeindex":
			i++
			if snap.frame, err = hexValueAt(lines, i); err != nil {
				return nil, fmt.Errorf("stack.stackframeindex: %w", err)
			}
		case "stack":
			i++
			length, err := hexValueAt(lines, i)
			if err != nil {
				return nil, fmt.Errorf("stack length: %w", err)
			}
			values, next, err := hexBlockAt(lines, i+1, length)
			if err != nil {
				return nil, fmt.Errorf("stack cells: %w", err)
			}
			snap.stack = values
			i = next
		case "dynamicmemory":
			i++
			length, err := hexValueAt(lines, i)
			if err != nil {
				return nil, fmt.Errorf("dynamicmemory length: %w", err)
			}
			values, next, err := hexBlockAt(lines, i+1, length)
			if err != nil {
				return nil, fmt.Errorf("dynamicmemory bytes: %w", err)
			}
			snap.dyn = make([]byte, length)
			for j, v := range values {
				snap.dyn[j] = byte(v)
			}
			i = next
		}
		i++
	}

	if snap.pc < 0 || snap.top < -1 || snap.frame < -1 || snap.stack == nil || snap.dyn == nil {
		return nil, fmt.Errorf("snapshot incomplete")
	}
	if snap.pc > len(m.story) {
		return nil, fmt.Errorf("snapshot pc 0x%x outside story file", snap.pc)
	}
	if len(snap.stack) > stackSize || snap.top >= stackSize || snap.frame >= stackSize {
		return nil, fmt.Errorf("snapshot stack larger than %d cells", stackSize)
	}
	if len(snap.dyn) > len(m.story) {
		return nil, fmt.Errorf("snapshot dynamic memory larger than story file")
	}
	return snap, nil
}

// applySnapshot atomically replaces PC, stack, and dynamic memory.
func (m *Machine) applySnapshot(snap *snapshot) {
	m.pc = snap.pc
	m.stack.top = snap.top
	m.stack.frame = snap.frame
	copy(m.stack.cells[:], snap.stack)
	copy(m.story, snap.dyn)
	m.separators = ""
}

// hexValueAt parses a single hex value on the given line.
func hexValueAt(lines []string, i int) (int, error) {
	if i >= len(lines) {
		return 0, fmt.Errorf("unexpected end of snapshot")
	}
	v, err := strconv.ParseInt(strings.TrimSpace(lines[i]), 16, 64)
	if err != nil {
		return 0, fmt.Errorf("bad hex value %q", lines[i])
	}
	return int(v), nil
}

// hexBlockAt reads whitespace-separated hex values from consecutive lines
// starting at i until count values are collected or a non-hex line ends the
// block. It returns the index of the last consumed line.
func hexBlockAt(lines []string, i, count int) ([]int, int, error) {
	values := make([]int, 0, count)
	last := i - 1
	for i < len(lines) && len(values) < count {
		fields := strings.Fields(lines[i])
		if len(fields) == 0 {
			break
		}
		lineValues := make([]int, 0, len(fields))
		ok := true
		for _, f := range fields {
			v, err := strconv.ParseInt(f, 16, 64)
			if err != nil {
				ok = false
				break
			}
			lineValues = append(lineValues, int(v))
		}
		if !ok {
			break
		}
		values = append(values, lineValues...)
		last = i
		i++
	}
	if len(values) < count {
		return nil, last, fmt.Errorf("want %d values, got %d", count, len(values))
	}
	return values[:count], last, nil
}

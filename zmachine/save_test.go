package zmachine

import (
	"strings"
	"testing"
)

func TestSaveContentFormat(t *testing.T) {
	b := newStory()
	m, _ := b.machine(t)
	m.stack.Push(0x1234)

	lines := strings.Split(m.saveContent(), "\n")
	if lines[0] != "releasenumber.serialcode" {
		t.Errorf("line 0 = %q, want %q", lines[0], "releasenumber.serialcode")
	}
	if lines[1] != "88.840726" {
		t.Errorf("line 1 = %q, want %q", lines[1], "88.840726")
	}
	if lines[2] != "pc" || lines[3] != "0500" {
		t.Errorf("pc section = %q %q, want %q %q", lines[2], lines[3], "pc", "0500")
	}
	if lines[4] != "stack" || lines[5] != "0001" {
		t.Errorf("stack section = %q %q, want %q %q", lines[4], lines[5], "stack", "0001")
	}
	if strings.TrimSpace(lines[6]) != "1234" {
		t.Errorf("stack cells = %q, want %q", lines[6], "1234 ")
	}
}

func TestSaveRestoreRoundtrip(t *testing.T) {
	b := newStory()
	m, _ := b.machine(t)

	// Set up a distinctive state: a frame on the stack, mutated globals.
	m.stack.PushAddr(0x12345)
	m.stack.Push(m.stack.frame)
	m.stack.frame = m.stack.top
	m.stack.Push(1)
	m.stack.Push(0xBEEF) // local 1
	m.stack.Push(0x77)   // evaluation value
	m.setVariable(17, 0x4242)
	m.pc = 0x523

	content := m.saveContent()

	wantTop, wantFrame, wantPC := m.stack.top, m.stack.frame, m.pc
	var wantCells [stackSize]int
	copy(wantCells[:], m.stack.cells[:])
	wantDyn := append([]byte(nil), m.story[:m.header.StaticBase]...)

	// Wreck the state, then restore.
	m.setVariable(17, 0)
	m.stack.Push(0x9999)
	m.pc = 0x700
	m.setByte(0x200, 0xEE)

	snap, err := m.parseSnapshot([]byte(content))
	if err != nil {
		t.Fatalf("parseSnapshot: %v", err)
	}
	m.applySnapshot(snap)

	if m.pc != wantPC || m.stack.top != wantTop || m.stack.frame != wantFrame {
		t.Errorf("pc/top/frame = 0x%x/%d/%d, want 0x%x/%d/%d",
			m.pc, m.stack.top, m.stack.frame, wantPC, wantTop, wantFrame)
	}
	for i := 0; i <= wantTop; i++ {
		if m.stack.cells[i] != wantCells[i]&0xFFFF {
			t.Errorf("stack cell %d = 0x%04x, want 0x%04x", i, m.stack.cells[i], wantCells[i]&0xFFFF)
		}
	}
	for i, want := range wantDyn {
		if m.story[i] != want {
			t.Fatalf("dynamic byte 0x%x = 0x%02x, want 0x%02x", i, m.story[i], want)
		}
	}
}

func TestParseSnapshotRejectsWrongStory(t *testing.T) {
	b := newStory()
	m, _ := b.machine(t)
	m.stack.Push(0)

	content := strings.Replace(m.saveContent(), "88.840726", "89.840726", 1)
	if _, err := m.parseSnapshot([]byte(content)); err == nil {
		t.Fatal("parseSnapshot accepted a snapshot for a different story")
	}
}

func TestParseSnapshotRejectsIncomplete(t *testing.T) {
	b := newStory()
	m, _ := b.machine(t)

	content := "releasenumber.serialcode\n88.840726\npc\n0500\n"
	if _, err := m.parseSnapshot([]byte(content)); err == nil {
		t.Fatal("parseSnapshot accepted an incomplete snapshot")
	}
}

func TestParseSnapshotAcceptsCRLF(t *testing.T) {
	b := newStory()
	m, _ := b.machine(t)
	m.stack.Push(0xABCD)

	content := strings.ReplaceAll(m.saveContent(), "\n", "\r\n")
	snap, err := m.parseSnapshot([]byte(content))
	if err != nil {
		t.Fatalf("parseSnapshot: %v", err)
	}
	if snap.stack[0] != 0xABCD {
		t.Errorf("stack cell 0 = 0x%04x, want 0xABCD", snap.stack[0])
	}
}

func TestProgramSaveThenRestore(t *testing.T) {
	b := newStory()
	// save ?+2 (continue); restore ?+2; quit
	b.code(0xB5, 0xC2, 0xB6, 0xC2, 0xBA)
	m, host := b.machine(t)
	host.inputs = []string{"game1.sav", "game1.sav"}
	run(t, m)

	data, ok := host.files["game1.sav"]
	if !ok {
		t.Fatal("save wrote no file")
	}
	lines := strings.Split(string(data), "\n")
	if lines[0] != "releasenumber.serialcode" || lines[1] != "88.840726" {
		t.Errorf("save file header = %q %q", lines[0], lines[1])
	}
	if got := host.output.String(); !strings.Contains(got, "File to save? >") ||
		!strings.Contains(got, "File to restore? >") {
		t.Errorf("prompts missing from output: %q", got)
	}
}

func TestProgramRestoreFailureBranchesFalse(t *testing.T) {
	b := newStory()
	b.putWord(testGlobalsAddr+(17-16)*wordSize, 5)
	// restore ?taken; store g17 0; quit; taken: store g17 1; quit
	b.code(0xB6, 0xC6,
		0x0D, 0x11, 0x00,
		0xBA,
		0x0D, 0x11, 0x01,
		0xBA)
	m, host := b.machine(t)
	host.inputs = []string{"missing.sav"}
	run(t, m)

	if got := m.GlobalWord(17); got != 0 {
		t.Errorf("global 17 = %d, want 0 (restore must branch on failure)", got)
	}
}

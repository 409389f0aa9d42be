package zmachine

import "testing"

func TestCheckpointRoundtrip(t *testing.T) {
	b := newStory()
	m, _ := b.machine(t)

	m.stack.Push(0x1234)
	m.stack.Push(0x5678)
	m.setVariable(17, 0x4242)
	m.pc = 0x567

	data, err := m.Checkpoint()
	if err != nil {
		t.Fatalf("Checkpoint: %v", err)
	}

	// A fresh machine from the same story resumes the checkpoint.
	m2, _ := b.machine(t)
	if err := m2.RestoreCheckpoint(data); err != nil {
		t.Fatalf("RestoreCheckpoint: %v", err)
	}

	if m2.pc != 0x567 {
		t.Errorf("pc = 0x%x, want 0x567", m2.pc)
	}
	if m2.stack.top != 1 || m2.stack.Peek(0) != 0x1234 || m2.stack.Peek(1) != 0x5678 {
		t.Errorf("stack = top %d [%x %x], want top 1 [1234 5678]",
			m2.stack.top, m2.stack.Peek(0), m2.stack.Peek(1))
	}
	if got := m2.GlobalWord(17); got != 0x4242 {
		t.Errorf("global 17 = 0x%04x, want 0x4242", got)
	}
}

func TestRestoreCheckpointRejectsWrongStory(t *testing.T) {
	b := newStory()
	m, _ := b.machine(t)
	data, err := m.Checkpoint()
	if err != nil {
		t.Fatalf("Checkpoint: %v", err)
	}

	b2 := newStory()
	b2.putWord(0x02, 89) // different release
	m2, _ := b2.machine(t)
	if err := m2.RestoreCheckpoint(data); err == nil {
		t.Fatal("RestoreCheckpoint accepted a checkpoint for a different story")
	}
	if m2.pc != testCodeAddr {
		t.Errorf("pc = 0x%x, want 0x%x (state must be untouched)", m2.pc, testCodeAddr)
	}
}

func TestRestoreCheckpointRejectsGarbage(t *testing.T) {
	b := newStory()
	m, _ := b.machine(t)
	if err := m.RestoreCheckpoint([]byte("not cbor")); err == nil {
		t.Fatal("RestoreCheckpoint accepted garbage")
	}
}

func TestRestoreCheckpointReprimesObserver(t *testing.T) {
	b := newStory()
	m, _ := b.machine(t)
	data, err := m.Checkpoint()
	if err != nil {
		t.Fatalf("Checkpoint: %v", err)
	}

	obs := &countingObserver{}
	m.SetObserver(obs)
	if err := m.RestoreCheckpoint(data); err != nil {
		t.Fatalf("RestoreCheckpoint: %v", err)
	}
	if obs.reprimed != 1 {
		t.Errorf("reprimed = %d, want 1", obs.reprimed)
	}
}

type countingObserver struct {
	before   int
	reprimed int
}

func (o *countingObserver) BeforeInput(m *Machine) { o.before++ }
func (o *countingObserver) Reprime(m *Machine)     { o.reprimed++ }

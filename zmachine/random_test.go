package zmachine

import "testing"

func TestRandomPredictableSequence(t *testing.T) {
	b := newStory()
	m, _ := b.machine(t)

	if got := m.random(-3); got != 0 {
		t.Errorf("random(-3) = %d, want 0", got)
	}
	want := []int{1, 2, 3, 1, 2, 3}
	for i, w := range want {
		if got := m.random(10); got != w {
			t.Errorf("call %d: random(10) = %d, want %d", i, got, w)
		}
	}
}

func TestRandomReseedResetsCounter(t *testing.T) {
	b := newStory()
	m, _ := b.machine(t)

	m.random(-5)
	m.random(10)
	m.random(10)
	m.random(-2)
	want := []int{1, 2, 1, 2}
	for i, w := range want {
		if got := m.random(10); got != w {
			t.Errorf("call %d: random(10) = %d, want %d", i, got, w)
		}
	}
}

func TestRandomNondeterministicRange(t *testing.T) {
	b := newStory()
	m, _ := b.machine(t)

	if got := m.random(0); got != 0 {
		t.Errorf("random(0) = %d, want 0", got)
	}
	for i := 0; i < 100; i++ {
		got := m.random(6)
		if got < 1 || got > 6 {
			t.Fatalf("random(6) = %d, want 1..6", got)
		}
	}
}

func TestRandomZeroLeavesPredictableMode(t *testing.T) {
	b := newStory()
	m, _ := b.machine(t)

	m.random(-4)
	m.random(0) // back to nondeterministic
	for i := 0; i < 50; i++ {
		got := m.random(2)
		if got < 1 || got > 2 {
			t.Fatalf("random(2) = %d, want 1..2", got)
		}
	}
}

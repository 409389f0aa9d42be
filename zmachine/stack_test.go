package zmachine

import "testing"

func TestStackPushPop(t *testing.T) {
	s := NewStack()

	s.Push(1)
	s.Push(2)
	s.Push(3)
	if got := s.Pop(); got != 3 {
		t.Errorf("Pop = %d, want 3", got)
	}
	if got := s.PeekTop(); got != 2 {
		t.Errorf("PeekTop = %d, want 2", got)
	}
	s.ReplaceTop(9)
	if got := s.Pop(); got != 9 {
		t.Errorf("Pop after ReplaceTop = %d, want 9", got)
	}
	if got := s.Pop(); got != 1 {
		t.Errorf("Pop = %d, want 1", got)
	}
	if s.top != -1 {
		t.Errorf("top = %d, want -1", s.top)
	}
}

func TestStackPeekPoke(t *testing.T) {
	s := NewStack()
	s.Push(10)
	s.Push(20)

	if got := s.Peek(0); got != 10 {
		t.Errorf("Peek(0) = %d, want 10", got)
	}
	s.Poke(1, 25)
	if got := s.Peek(1); got != 25 {
		t.Errorf("Peek(1) = %d, want 25", got)
	}
}

func TestStackAddrRoundtrip(t *testing.T) {
	s := NewStack()
	for _, addr := range []int{0, 0x1234, 0xFFFF, 0x10000, 0x1ABCD} {
		s.PushAddr(addr)
		if got := s.PopAddr(); got != addr {
			t.Errorf("PopAddr = 0x%x, want 0x%x", got, addr)
		}
	}
}

func TestStackUnderflow(t *testing.T) {
	s := NewStack()
	expectFault(t, "stack underflow", func() { s.Pop() })
}

func TestStackOverflow(t *testing.T) {
	s := NewStack()
	expectFault(t, "stack overflow", func() {
		for {
			s.Push(0)
		}
	})
}

func TestStackPeekOutOfBounds(t *testing.T) {
	s := NewStack()
	s.Push(1)
	expectFault(t, "out of bounds", func() { s.Peek(1) })
	expectFault(t, "out of bounds", func() { s.Poke(-1, 0) })
}

func TestStackReset(t *testing.T) {
	s := NewStack()
	s.Push(1)
	s.frame = 0
	s.Reset()
	if s.top != -1 || s.frame != -1 {
		t.Errorf("after Reset: top = %d frame = %d, want -1 -1", s.top, s.frame)
	}
}

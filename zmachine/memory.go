package zmachine

// ---------------------------------------------------------------------------
// Memory image: big-endian byte/word accessors and segment predicates
// ---------------------------------------------------------------------------

func (m *Machine) getByte(addr int) int {
	if addr < 0 || addr >= len(m.story) {
		halt("read: address 0x%x outside story file", addr)
	}
	return int(m.story[addr])
}

func (m *Machine) setByte(addr, value int) {
	if addr < 0 || addr >= len(m.story) {
		halt("write: address 0x%x outside story file", addr)
	}
	m.story[addr] = byte(value)
}

func (m *Machine) getWord(addr int) int {
	hi := m.getByte(addr)
	lo := m.getByte(addr + 1)
	return hi<<8 | lo
}

func (m *Machine) setWord(addr, value int) {
	m.setByte(addr, (value>>8)&0xFF)
	m.setByte(addr+1, value&0xFF)
}

// Segment predicates. Dynamic memory is writable; static may only be read;
// high memory is reachable through packed addresses and the PC.

func (m *Machine) isDynamicMemory(addr int) bool {
	return addr >= 0 && addr < m.header.StaticBase
}

func (m *Machine) isDynamicOrStaticMemory(addr int) bool {
	bound := min(0xFFFF, len(m.story))
	return addr >= 0 && addr <= bound
}

func (m *Machine) isHighMemory(addr int) bool {
	return addr >= m.header.HighBase
}

// unpack converts a packed address to a byte address.
func unpack(packed int) int {
	return packed * 2
}

// toUint16 truncates a value to its low 16 bits.
func toUint16(value int) int {
	return value & 0xFFFF
}

// toInt16 sign-extends a 16-bit cell to a Go int.
func toInt16(value int) int {
	return int(int16(value))
}

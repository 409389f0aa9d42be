package zmachine

// ---------------------------------------------------------------------------
// 1OP opcode bodies
// ---------------------------------------------------------------------------

func (m *Machine) opJz(arg int) {
	m.branch(arg == 0)
}

func (m *Machine) opGetSibling(arg int) {
	sibling := m.siblingOf(arg)
	m.storeResult(sibling)
	m.branch(sibling != 0)
}

func (m *Machine) opGetChild(arg int) {
	child := m.childOf(arg)
	m.storeResult(child)
	m.branch(child != 0)
}

func (m *Machine) opGetParent(arg int) {
	m.storeResult(m.parentOf(arg))
}

func (m *Machine) opGetPropLen(arg int) {
	value := 0
	if arg != 0 {
		value = m.getByte(arg-1)>>5 + 1
	}
	m.storeResult(value)
}

func (m *Machine) opInc(arg int) {
	value := toInt16(m.variableInPlace(arg))
	m.setVariableInPlace(arg, toUint16(value+1))
}

func (m *Machine) opDec(arg int) {
	value := toInt16(m.variableInPlace(arg))
	m.setVariableInPlace(arg, toUint16(value-1))
}

func (m *Machine) opPrintAddr(arg int) {
	if !m.isDynamicOrStaticMemory(arg) {
		halt("print_addr: address 0x%x not in dynamic or static memory", arg)
	}
	m.print(m.decodeZString(arg))
}

// opRemoveObj detaches an object from its parent's child chain and clears
// its parent and sibling links. Removing an already-orphaned object is a
// no-op.
func (m *Machine) opRemoveObj(arg int) {
	if arg == 0 {
		halt("remove_obj: object number 0")
	}

	parent := m.parentOf(arg)
	if parent == 0 {
		return
	}

	sibling := m.siblingOf(arg)
	if m.childOf(parent) == arg {
		m.setChildOf(parent, sibling)
	} else {
		prev := m.childOf(parent)
		for m.siblingOf(prev) != arg {
			prev = m.siblingOf(prev)
		}
		m.setSiblingOf(prev, sibling)
	}
	m.setSiblingOf(arg, 0)
	m.setParentOf(arg, 0)
}

func (m *Machine) opPrintObj(arg int) {
	propTableAddr := m.getWord(m.objectAddr(arg) + objOffsetPropTable)
	m.print(m.decodeZString(propTableAddr + 1))
}

func (m *Machine) opRet(arg int) {
	m.doReturn(arg)
}

// opJump is an unconditional jump with a signed 16-bit offset. It has no
// branch byte.
func (m *Machine) opJump(arg int) {
	m.pc += toInt16(arg) - 2
}

func (m *Machine) opPrintPaddr(arg int) {
	addr := unpack(arg)
	if !m.isHighMemory(addr) {
		halt("print_paddr: address 0x%x not in high memory", addr)
	}
	m.print(m.decodeZString(addr))
}

// opLoad reads a variable in place: with operand 0 it peeks the top of
// stack instead of popping it.
func (m *Machine) opLoad(arg int) {
	m.storeResult(m.variableInPlace(arg))
}

func (m *Machine) opNot(arg int) {
	m.storeResult(toUint16(arg) ^ 0xFFFF)
}

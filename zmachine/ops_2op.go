package zmachine

// ---------------------------------------------------------------------------
// 2OP opcode bodies
// ---------------------------------------------------------------------------

// opJe branches if the first operand equals any of the others. Despite its
// 2OP number it can carry up to four operands in variable form.
func (m *Machine) opJe(args []int) {
	cond := false
	for i := 1; i < len(args); i++ {
		if args[0] == args[i] {
			cond = true
			break
		}
	}
	m.branch(cond)
}

func (m *Machine) opJl(args []int) {
	m.branch(toInt16(args[0]) < toInt16(args[1]))
}

func (m *Machine) opJg(args []int) {
	m.branch(toInt16(args[0]) > toInt16(args[1]))
}

func (m *Machine) opDecChk(args []int) {
	m.opDec(args[0])
	m.branch(toInt16(m.variableInPlace(args[0])) < toInt16(args[1]))
}

func (m *Machine) opIncChk(args []int) {
	m.opInc(args[0])
	m.branch(toInt16(m.variableInPlace(args[0])) > toInt16(args[1]))
}

func (m *Machine) opJin(args []int) {
	m.branch(m.parentOf(args[0]) == args[1])
}

func (m *Machine) opTest(args []int) {
	bitmap := toUint16(args[0])
	flags := toUint16(args[1])
	m.branch(bitmap&flags == flags)
}

func (m *Machine) opOr(args []int) {
	m.storeResult(toUint16(args[0]) | toUint16(args[1]))
}

func (m *Machine) opAnd(args []int) {
	m.storeResult(toUint16(args[0]) & toUint16(args[1]))
}

func (m *Machine) opTestAttr(args []int) {
	m.branch(m.testAttr(args[0], args[1]))
}

func (m *Machine) opSetAttr(args []int) {
	m.setAttr(args[0], args[1], true)
}

func (m *Machine) opClearAttr(args []int) {
	m.setAttr(args[0], args[1], false)
}

// opStore writes a variable in place: with variable number 0 it replaces
// the top of stack instead of pushing.
func (m *Machine) opStore(args []int) {
	m.setVariableInPlace(args[0], args[1])
}

// opInsertObj makes args[0] the first child of args[1]; the former first
// child becomes its sibling. Inserting into the current parent is a no-op.
func (m *Machine) opInsertObj(args []int) {
	obj, dest := args[0], args[1]
	if obj == dest {
		halt("insert_obj: insert object %d into itself", obj)
	}
	if m.parentOf(obj) == dest {
		return
	}

	m.opRemoveObj(obj)
	m.setSiblingOf(obj, m.childOf(dest))
	m.setChildOf(dest, obj)
	m.setParentOf(obj, dest)
}

func (m *Machine) opLoadW(args []int) {
	addr := args[0] + args[1]*wordSize
	if !m.isDynamicOrStaticMemory(addr) {
		halt("loadw: address 0x%x not in dynamic or static memory", addr)
	}
	m.storeResult(m.getWord(addr))
}

func (m *Machine) opLoadB(args []int) {
	addr := args[0] + args[1]
	if !m.isDynamicOrStaticMemory(addr) {
		halt("loadb: address 0x%x not in dynamic or static memory", addr)
	}
	m.storeResult(m.getByte(addr))
}

// opGetProp reads a 1- or 2-byte property, falling back to the default
// value from the object-table header when the object lacks the property.
func (m *Machine) opGetProp(args []int) {
	obj, prop := args[0], args[1]

	propAddr := m.propAddress(obj, prop, false)
	if propAddr == 0 {
		m.storeResult(m.getWord(m.header.ObjectTableAddr + (prop-1)*wordSize))
		return
	}

	propLen := m.getByte(propAddr)>>5 + 1
	switch propLen {
	case 1:
		m.storeResult(m.getByte(propAddr + 1))
	case 2:
		m.storeResult(m.getWord(propAddr + 1))
	default:
		halt("get_prop: length %d of property %d of object %d out of bounds [1..2]", propLen, prop, obj)
	}
}

func (m *Machine) opGetPropAddr(args []int) {
	propAddr := m.propAddress(args[0], args[1], false)
	if propAddr != 0 {
		propAddr++
	}
	m.storeResult(propAddr)
}

// opGetNextProp walks the descending-ordered property list: property 0
// yields the first (largest) property number, a terminator yields 0.
func (m *Machine) opGetNextProp(args []int) {
	obj, prop := args[0], args[1]

	propAddr := m.propAddress(obj, prop, true)
	if propAddr == 0 {
		halt("get_next_prop: property %d of object %d not found", prop, obj)
	}

	if prop == 0 {
		m.storeResult(m.getByte(propAddr) & 0b1_1111)
		return
	}
	propLen := m.getByte(propAddr)>>5 + 1
	m.storeResult(m.getByte(propAddr+1+propLen) & 0b1_1111)
}

func (m *Machine) opAdd(args []int) {
	m.storeResult(toUint16(toInt16(args[0]) + toInt16(args[1])))
}

func (m *Machine) opSub(args []int) {
	m.storeResult(toUint16(toInt16(args[0]) - toInt16(args[1])))
}

func (m *Machine) opMul(args []int) {
	m.storeResult(toUint16(toInt16(args[0]) * toInt16(args[1])))
}

func (m *Machine) opDiv(args []int) {
	if toInt16(args[1]) == 0 {
		halt("div: division by zero")
	}
	m.storeResult(toUint16(toInt16(args[0]) / toInt16(args[1])))
}

func (m *Machine) opMod(args []int) {
	if toInt16(args[1]) == 0 {
		halt("mod: modulo by zero")
	}
	m.storeResult(toUint16(toInt16(args[0]) % toInt16(args[1])))
}

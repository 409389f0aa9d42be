package zmachine

// ---------------------------------------------------------------------------
// Instruction decoder: form classification, operands, store and branch bytes
// ---------------------------------------------------------------------------

// Operand type fields, two bits each.
const (
	operandLarge    = 0b00 // next word
	operandSmall    = 0b01 // next byte, zero-extended
	operandVariable = 0b10 // next byte names a variable to read
	operandOmitted  = 0b11
)

func (m *Machine) peekByte() int {
	return m.getByte(m.pc)
}

func (m *Machine) consumeByte() int {
	value := m.getByte(m.pc)
	m.pc++
	return value
}

func (m *Machine) consumeWord() int {
	hi := m.consumeByte()
	lo := m.consumeByte()
	return hi<<8 | lo
}

// consumeString decodes the inline Z-string at the PC and advances the PC
// past its terminator word.
func (m *Machine) consumeString() string {
	text := m.decodeZString(m.pc)
	for {
		word := m.consumeWord()
		if word&0x8000 != 0 {
			break
		}
	}
	return text
}

func (m *Machine) consumeOperand(opType int) int {
	switch opType {
	case operandSmall:
		return m.consumeByte()
	case operandLarge:
		return m.consumeWord()
	case operandVariable:
		return m.variable(m.consumeByte())
	}
	halt("decode: invalid operand type 0x%x", opType)
	return 0
}

// consumeOperands harvests up to four operands described by a packed
// type byte, left-to-right, stopping at the first omitted field.
func (m *Machine) consumeOperands(opTypes int) []int {
	args := make([]int, 0, 4)
	for shift := 6; shift >= 0; shift -= 2 {
		opType := (opTypes >> shift) & 0b11
		if opType == operandOmitted {
			break
		}
		args = append(args, m.consumeOperand(opType))
	}
	return args
}

// storeResult consumes the trailing store byte and writes the value to the
// variable it names.
func (m *Machine) storeResult(value int) {
	m.setVariable(m.consumeByte(), value)
}

// branch consumes the trailing branch byte(s) and applies them. Offsets 0
// and 1 mean "return false" and "return true"; anything else moves the PC
// by offset-2.
func (m *Machine) branch(cond bool) {
	b1 := m.consumeByte()
	branchOnTrue := b1&0x80 != 0
	offset := b1 & 0b11_1111
	if b1&0x40 == 0 {
		offset = offset<<8 | m.consumeByte()
		if offset&0x2000 != 0 {
			offset |= ^0x3FFF // sign-extend the 14-bit offset
		}
	}

	if cond != branchOnTrue {
		return
	}
	switch offset {
	case 0:
		m.doReturn(0)
	case 1:
		m.doReturn(1)
	default:
		m.pc += offset - 2
	}
}

// ---------------------------------------------------------------------------
// Dispatch
// ---------------------------------------------------------------------------

// step decodes and executes one instruction at the PC.
func (m *Machine) step() {
	op := m.peekByte()
	if m.Trace {
		log.Debugf("pc 0x%04x opcode 0x%02x", m.pc, op)
	}

	switch (op >> 6) & 0b11 {
	case 0b10:
		m.stepShortForm()
	case 0b11:
		m.stepVarForm()
	default:
		m.stepLongForm()
	}
}

func (m *Machine) stepShortForm() {
	op := m.consumeByte()
	opType := (op >> 4) & 0b11
	opNum := op & 0b1111

	if opType == operandOmitted {
		m.dispatch0OP(opNum)
		return
	}
	m.dispatch1OP(opNum, m.consumeOperand(opType))
}

func (m *Machine) stepVarForm() {
	op := m.consumeByte()
	opNum := op & 0b1_1111
	args := m.consumeOperands(m.consumeByte())

	if op&0b10_0000 == 0 {
		m.dispatch2OP(opNum, args)
	} else {
		m.dispatchVAR(opNum, args)
	}
}

func (m *Machine) stepLongForm() {
	op := m.consumeByte()
	opType1 := operandSmall
	if op&0b100_0000 != 0 {
		opType1 = operandVariable
	}
	opType2 := operandSmall
	if op&0b10_0000 != 0 {
		opType2 = operandVariable
	}
	opNum := op & 0b1_1111

	arg1 := m.consumeOperand(opType1)
	arg2 := m.consumeOperand(opType2)
	m.dispatch2OP(opNum, []int{arg1, arg2})
}

func (m *Machine) dispatch0OP(opNum int) {
	switch opNum {
	case 0x00:
		m.opRTrue()
	case 0x01:
		m.opRFalse()
	case 0x02:
		m.opPrint()
	case 0x03:
		m.opPrintRet()
	case 0x04:
		// nop
	case 0x05:
		m.opSave()
	case 0x06:
		m.opRestore()
	case 0x07:
		m.opRestart()
	case 0x08:
		m.opRetPopped()
	case 0x09:
		m.opPop()
	case 0x0A:
		m.opQuit()
	case 0x0B:
		m.opNewLine()
	case 0x0C:
		m.opShowStatus()
	case 0x0D:
		m.opVerify()
	default:
		halt("illegal opcode 0OP:0x%x", opNum)
	}
}

func (m *Machine) dispatch1OP(opNum, arg int) {
	switch opNum {
	case 0x00:
		m.opJz(arg)
	case 0x01:
		m.opGetSibling(arg)
	case 0x02:
		m.opGetChild(arg)
	case 0x03:
		m.opGetParent(arg)
	case 0x04:
		m.opGetPropLen(arg)
	case 0x05:
		m.opInc(arg)
	case 0x06:
		m.opDec(arg)
	case 0x07:
		m.opPrintAddr(arg)
	case 0x09:
		m.opRemoveObj(arg)
	case 0x0A:
		m.opPrintObj(arg)
	case 0x0B:
		m.opRet(arg)
	case 0x0C:
		m.opJump(arg)
	case 0x0D:
		m.opPrintPaddr(arg)
	case 0x0E:
		m.opLoad(arg)
	case 0x0F:
		m.opNot(arg)
	default:
		halt("illegal opcode 1OP:0x%x", opNum)
	}
}

func (m *Machine) dispatch2OP(opNum int, args []int) {
	switch opNum {
	case 0x01:
		m.opJe(args)
	case 0x02:
		m.opJl(args)
	case 0x03:
		m.opJg(args)
	case 0x04:
		m.opDecChk(args)
	case 0x05:
		m.opIncChk(args)
	case 0x06:
		m.opJin(args)
	case 0x07:
		m.opTest(args)
	case 0x08:
		m.opOr(args)
	case 0x09:
		m.opAnd(args)
	case 0x0A:
		m.opTestAttr(args)
	case 0x0B:
		m.opSetAttr(args)
	case 0x0C:
		m.opClearAttr(args)
	case 0x0D:
		m.opStore(args)
	case 0x0E:
		m.opInsertObj(args)
	case 0x0F:
		m.opLoadW(args)
	case 0x10:
		m.opLoadB(args)
	case 0x11:
		m.opGetProp(args)
	case 0x12:
		m.opGetPropAddr(args)
	case 0x13:
		m.opGetNextProp(args)
	case 0x14:
		m.opAdd(args)
	case 0x15:
		m.opSub(args)
	case 0x16:
		m.opMul(args)
	case 0x17:
		m.opDiv(args)
	case 0x18:
		m.opMod(args)
	default:
		halt("illegal opcode 2OP:0x%x", opNum)
	}
}

func (m *Machine) dispatchVAR(opNum int, args []int) {
	switch opNum {
	case 0x00:
		m.call(args)
	case 0x01:
		m.opStoreW(args)
	case 0x02:
		m.opStoreB(args)
	case 0x03:
		m.opPutProp(args)
	case 0x04:
		m.opSRead(args)
	case 0x05:
		m.opPrintChar(args)
	case 0x06:
		m.opPrintNum(args)
	case 0x07:
		m.opRandom(args)
	case 0x08:
		m.opPush(args)
	case 0x09:
		m.opPull(args)
	case 0x0A, 0x0B, 0x13, 0x14, 0x15:
		// split_window, set_window, output_stream, input_stream,
		// sound_effect: legal but unsupported on a teletype; the operand
		// bytes are already consumed.
	default:
		halt("illegal opcode VAR:0x%x", opNum)
	}
}

package zmachine

import "fmt"

// ---------------------------------------------------------------------------
// VAR opcode bodies
// ---------------------------------------------------------------------------

func (m *Machine) opStoreW(args []int) {
	addr := args[0] + args[1]*wordSize
	if !m.isDynamicMemory(addr) {
		halt("storew: address 0x%x not in dynamic memory", addr)
	}
	m.setWord(addr, args[2])
}

func (m *Machine) opStoreB(args []int) {
	addr := args[0] + args[1]
	if !m.isDynamicMemory(addr) {
		halt("storeb: address 0x%x not in dynamic memory", addr)
	}
	m.setByte(addr, args[2])
}

// opPutProp overwrites an existing 1- or 2-byte property. A missing
// property or a longer one is a machine fault.
func (m *Machine) opPutProp(args []int) {
	obj, prop, value := args[0], args[1], args[2]

	propAddr := m.propAddress(obj, prop, false)
	if propAddr == 0 {
		halt("put_prop: property %d of object %d not found", prop, obj)
	}

	propLen := m.getByte(propAddr)>>5 + 1
	switch propLen {
	case 1:
		m.setByte(propAddr+1, value)
	case 2:
		m.setWord(propAddr+1, value)
	default:
		halt("put_prop: length %d of property %d of object %d out of bounds [1..2]", propLen, prop, obj)
	}
}

// opSRead reads a line of input into the text buffer and tokenizes it into
// the parse buffer. Buffer layout per the version-3 convention: byte 0 of
// the text buffer holds max length minus one, byte 0 of the parse buffer
// holds the maximum token count.
func (m *Machine) opSRead(args []int) {
	textAddr, parseAddr := args[0], args[1]

	if m.getByte(textAddr) < 3 {
		halt("sread: text buffer less than 3 bytes long")
	}

	line, err := m.inputLine()
	if err != nil {
		halt("sread: %v", err)
	}
	input := normalizeInput(line)

	maxLen := min(m.getByte(textAddr)-1, len(input))
	for i := 0; i < maxLen; i++ {
		m.setByte(textAddr+1+i, int(input[i]))
	}
	m.setByte(textAddr+1+maxLen, 0)

	maxWords := m.getByte(parseAddr)
	if maxWords < 1 {
		halt("sread: parse buffer less than 1 word long")
	}

	tokens := tokenize(input, m.wordSeparators())
	numWords := min(maxWords, len(tokens))
	m.setByte(parseAddr+1, numWords)

	for i := 0; i < numWords; i++ {
		tok := tokens[i]
		entryAddr := parseAddr + 2 + i*4
		m.setWord(entryAddr, m.lookupWord(tok.text))
		m.setByte(entryAddr+2, len(tok.text))
		m.setByte(entryAddr+3, tok.pos+1) // offset into the text buffer
	}
}

// opPrintChar emits printable ASCII and carriage return; everything else
// is dropped.
func (m *Machine) opPrintChar(args []int) {
	value := args[0]
	if value == 0x0D {
		m.print(EOL)
	} else if value >= 0x20 && value <= 0x7E {
		m.print(string(rune(value)))
	}
}

func (m *Machine) opPrintNum(args []int) {
	m.print(fmt.Sprintf("%d", toInt16(args[0])))
}

func (m *Machine) opRandom(args []int) {
	m.storeResult(m.random(toInt16(args[0])))
}

func (m *Machine) opPush(args []int) {
	m.stack.Push(args[0])
}

func (m *Machine) opPull(args []int) {
	m.setVariable(args[0], m.stack.Pop())
}

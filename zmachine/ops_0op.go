package zmachine

// ---------------------------------------------------------------------------
// 0OP opcode bodies
// ---------------------------------------------------------------------------

func (m *Machine) opRTrue() {
	m.doReturn(1)
}

func (m *Machine) opRFalse() {
	m.doReturn(0)
}

func (m *Machine) opPrint() {
	m.print(m.consumeString())
}

func (m *Machine) opPrintRet() {
	m.opPrint()
	m.opNewLine()
	m.doReturn(1)
}

// opSave writes a textual snapshot of the machine state to a file named by
// the player. Branches on success; any I/O error is taken as failure.
func (m *Machine) opSave() {
	ok := true

	m.print("File to save? >")
	name, err := m.inputLine()
	if err != nil {
		ok = false
	} else if err := m.host.WriteFile(name, []byte(m.saveContent())); err != nil {
		log.Warningf("save: %s", err.Error())
		ok = false
	}
	m.branch(ok)
}

// opRestore replaces the machine state from a snapshot file named by the
// player. On any parse or validation failure the state is left untouched
// and the opcode branches on failure.
func (m *Machine) opRestore() {
	var snap *snapshot

	m.print("File to restore? >")
	name, err := m.inputLine()
	if err == nil {
		var data []byte
		if data, err = m.host.ReadFile(name); err == nil {
			if snap, err = m.parseSnapshot(data); err != nil {
				log.Warningf("restore: %s", err.Error())
			}
		}
	}

	ok := snap != nil
	if ok {
		m.applySnapshot(snap)
		log.Infof("restored, pc 0x%04x", m.pc)
	}
	m.branch(ok)

	if m.obs != nil {
		m.obs.Reprime(m)
	}
}

func (m *Machine) opRestart() {
	m.restart()
}

func (m *Machine) opRetPopped() {
	m.doReturn(m.stack.Pop())
}

func (m *Machine) opPop() {
	m.stack.Pop()
}

func (m *Machine) opQuit() {
	m.running = false
	if err := m.flushOutput(); err != nil {
		halt("quit: %v", err)
	}
}

func (m *Machine) opNewLine() {
	m.print(EOL)
}

func (m *Machine) opShowStatus() {
	// No status line on a teletype.
}

func (m *Machine) opVerify() {
	// Checksum verification is not performed; report success.
	m.branch(true)
}

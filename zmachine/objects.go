package zmachine

// ---------------------------------------------------------------------------
// Object tree: 255 fixed-size records with attributes, links, properties
// ---------------------------------------------------------------------------

// Object table (objects are numbered 1..255, number 0 is the null object)
//
//     +---------+ A = 32 attribute bits numbered 0..31, left to right
//   1 |AAAABCDEE| B = parent object number
// ... |         | C = sibling object number
// 255 |         | D = (first) child object number
//     +---------+ E = property table address
//
// The 31 words before the object array hold default property values.
//
// Property table: one byte of short-name length in words, the Z-encoded
// name, then property entries in descending property-number order, each a
// descriptor byte (size-1)<<5 | number followed by size data bytes, ending
// at a zero byte.

const (
	numPropertyDefaults = 31
	objectRecordSize    = 4 + 3 + 2

	objOffsetParent    = 4
	objOffsetSibling   = 5
	objOffsetChild     = 6
	objOffsetPropTable = 7
)

func (m *Machine) objectAddr(obj int) int {
	if obj < 1 || obj > 255 {
		halt("object number %d out of bounds [1..255]", obj)
	}
	return m.header.ObjectTableAddr + numPropertyDefaults*wordSize + (obj-1)*objectRecordSize
}

func (m *Machine) parentOf(obj int) int {
	return m.getByte(m.objectAddr(obj) + objOffsetParent)
}

func (m *Machine) setParentOf(obj, parent int) {
	m.setByte(m.objectAddr(obj)+objOffsetParent, parent)
}

func (m *Machine) siblingOf(obj int) int {
	return m.getByte(m.objectAddr(obj) + objOffsetSibling)
}

func (m *Machine) setSiblingOf(obj, sibling int) {
	m.setByte(m.objectAddr(obj)+objOffsetSibling, sibling)
}

func (m *Machine) childOf(obj int) int {
	return m.getByte(m.objectAddr(obj) + objOffsetChild)
}

func (m *Machine) setChildOf(obj, child int) {
	m.setByte(m.objectAddr(obj)+objOffsetChild, child)
}

// Attribute bits number left to right: attribute 0 is the most significant
// bit of the first attribute byte.

func (m *Machine) attrLocation(obj, bit int) (addr, mask int) {
	if bit < 0 || bit > 31 {
		halt("attribute number %d out of bounds [0..31]", bit)
	}
	addr = m.objectAddr(obj) + bit>>3
	mask = 1 << (7 - bit&0b111)
	return addr, mask
}

func (m *Machine) testAttr(obj, bit int) bool {
	addr, mask := m.attrLocation(obj, bit)
	return m.getByte(addr)&mask != 0
}

func (m *Machine) setAttr(obj, bit int, on bool) {
	addr, mask := m.attrLocation(obj, bit)
	if on {
		m.setByte(addr, m.getByte(addr)|mask)
	} else {
		m.setByte(addr, m.getByte(addr)&^mask)
	}
}

// propAddress returns the address of a property's descriptor byte, or 0 if
// the object has no such property. With acceptZero, property number 0
// returns the address of the first entry (used by get_next_prop).
func (m *Machine) propAddress(obj, prop int, acceptZero bool) int {
	objAddr := m.objectAddr(obj)

	minProp := 1
	if acceptZero {
		minProp = 0
	}
	if prop < minProp || prop > 31 {
		halt("property number %d of object %d out of bounds [%d..31]", prop, obj, minProp)
	}

	propAddr := m.getWord(objAddr + objOffsetPropTable)
	nameLen := m.getByte(propAddr)
	propAddr += 1 + nameLen*wordSize

	if acceptZero && prop == 0 {
		return propAddr
	}

	for {
		desc := m.getByte(propAddr)
		if desc == 0 {
			return 0
		}
		if desc&0b1_1111 == prop {
			return propAddr
		}
		propLen := desc>>5 + 1
		propAddr += 1 + propLen
	}
}

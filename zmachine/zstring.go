package zmachine

import "strings"

// ---------------------------------------------------------------------------
// Text codec: Z-string decoder and 6-character dictionary encoder
// ---------------------------------------------------------------------------

// The three version-3 alphabets, concatenated. Position 52 (the '*') stands
// in for the 10-bit escape introduced by code 6 under A2.
const alphabet = "abcdefghijklmnopqrstuvwxyz" +
	"ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
	"*" + EOL + "0123456789.,!?_#'\"/\\-:()"

// decodeZString decodes the Z-string at a byte address. Each word carries
// three 5-bit codes; the top bit of a word terminates the string.
func (m *Machine) decodeZString(addr int) string {
	return m.decodeZChars(addr, false)
}

func (m *Machine) decodeZChars(addr int, nested bool) string {
	var zchars []int
	for {
		word := m.getWord(addr)
		zchars = append(zchars, (word>>10)&0b1_1111, (word>>5)&0b1_1111, word&0b1_1111)
		addr += wordSize
		if word&0x8000 != 0 {
			break
		}
	}

	var result strings.Builder
	currAlphabet := 0
	for i := 0; i < len(zchars); i++ {
		zchar := zchars[i]
		switch {
		case zchar == 0:
			result.WriteByte(' ')
		case zchar <= 3:
			// Abbreviation prefix. Abbreviations do not nest: inside one,
			// codes 1..3 expand to nothing.
			if !nested && i+1 < len(zchars) {
				i++
				abbrIndex := 32*(zchar-1) + zchars[i]
				result.WriteString(m.decodeZChars(m.abbreviationAddr(abbrIndex), true))
			}
		case zchar == 4:
			currAlphabet = 1
			continue
		case zchar == 5:
			currAlphabet = 2
			continue
		case zchar == 6 && currAlphabet == 2:
			// 10-bit literal: the next two codes form a raw byte.
			if i+2 < len(zchars) {
				result.WriteByte(byte(zchars[i+1]<<5 | zchars[i+2]))
			}
			i += 2
		default:
			result.WriteByte(alphabet[currAlphabet*26+zchar-6])
		}
		currAlphabet = 0
	}
	return result.String()
}

func (m *Machine) abbreviationAddr(abbrIndex int) int {
	if abbrIndex < 0 || abbrIndex > 95 {
		halt("abbreviation index %d out of bounds [0..95]", abbrIndex)
	}
	return unpack(m.getWord(m.header.AbbreviationsAddr + abbrIndex*wordSize))
}

// encodeZString encodes the first six characters of a lowercased word into
// the 4-byte dictionary key form: two packed words with the end bit set on
// the second. Characters outside A0 and A2 are dropped; short words are
// padded with shift-5 codes.
func encodeZString(text string) [4]byte {
	zchars := make([]int, 0, 8)

	text = strings.ToLower(text)
	textLen := min(len(text), 6)
	for i := 0; i < textLen; i++ {
		chr := text[i]
		pos := strings.IndexByte(alphabet, chr)
		switch {
		case pos >= 0 && pos <= 25:
			zchars = append(zchars, 6+pos)
		case pos >= 52 && pos <= 77:
			zchars = append(zchars, 0b0101, 6+pos-52)
		}
	}

	for len(zchars) < 6 {
		zchars = append(zchars, 0b0101)
	}

	var result [4]byte
	zcharIndex := 0
	for index := 0; index < 4; index += 2 {
		word := zchars[zcharIndex]<<10 | zchars[zcharIndex+1]<<5 | zchars[zcharIndex+2]
		zcharIndex += 3
		result[index] = byte(word >> 8)
		result[index+1] = byte(word)
	}
	result[2] |= 0b1000_0000
	return result
}

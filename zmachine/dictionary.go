package zmachine

import "strings"

// ---------------------------------------------------------------------------
// Dictionary: sorted fixed-width entries behind the separator set
// ---------------------------------------------------------------------------

// Dictionary layout: one byte of separator count, the separator bytes, one
// byte of entry length, a word of entry count, then the entries. Each entry
// starts with the 4-byte encoded key.

// lookupWord returns the dictionary address of a word, or 0 when absent.
func (m *Machine) lookupWord(word string) int {
	key := encodeZString(word)

	dictAddr := m.header.DictionaryAddr
	numSeparators := m.getByte(dictAddr)
	entryLen := m.getByte(dictAddr + 1 + numSeparators)
	numEntries := m.getWord(dictAddr + 1 + numSeparators + 1)

	entryAddr := dictAddr + 1 + numSeparators + 1 + 2
	for i := 0; i < numEntries; i++ {
		found := true
		for j := 0; j < 4; j++ {
			if byte(m.getByte(entryAddr+j)) != key[j] {
				found = false
				break
			}
		}
		if found {
			return entryAddr
		}
		entryAddr += entryLen
	}
	return 0
}

// wordSeparators returns the dictionary's separator set, built on first use
// and reset whenever memory is replaced wholesale.
func (m *Machine) wordSeparators() string {
	if m.separators == "" {
		dictAddr := m.header.DictionaryAddr
		numSeparators := m.getByte(dictAddr)

		var sb strings.Builder
		for i := 0; i < numSeparators; i++ {
			sb.WriteByte(byte(m.getByte(dictAddr + 1 + i)))
		}
		m.separators = sb.String()
	}
	return m.separators
}

// ---------------------------------------------------------------------------
// Tokenization
// ---------------------------------------------------------------------------

type token struct {
	text string
	pos  int // start offset in the input line
}

// tokenize splits an input line into tokens. Separator bytes each form a
// one-byte token of their own; spaces delimit without producing a token.
func tokenize(input, separators string) []token {
	var tokens []token
	start := -1

	for pos := 0; pos < len(input); pos++ {
		ch := input[pos]
		isSeparator := strings.IndexByte(separators, ch) >= 0
		isWhitespace := ch == ' '

		if isSeparator || isWhitespace {
			if start >= 0 {
				tokens = append(tokens, token{text: input[start:pos], pos: start})
				start = -1
			}
			if isSeparator {
				tokens = append(tokens, token{text: string(ch), pos: pos})
			}
		} else if start < 0 {
			start = pos
		}
	}
	if start >= 0 {
		tokens = append(tokens, token{text: input[start:], pos: start})
	}
	return tokens
}

// normalizeInput lowercases a line and trims surrounding whitespace.
func normalizeInput(line string) string {
	return strings.ToLower(strings.TrimSpace(line))
}

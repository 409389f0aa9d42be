package zmachine

// ---------------------------------------------------------------------------
// Header: read-once projection of the story file header
// ---------------------------------------------------------------------------

// Header holds the fixed header fields of a version-3 story file. It is
// populated once at load time; the underlying bytes stay in dynamic memory
// and the running program may rewrite flags1 there, but this projection is
// never refreshed.
type Header struct {
	Version           int
	Flags1            int
	Release           int
	HighBase          int // base of high memory
	InitialPC         int
	DictionaryAddr    int
	ObjectTableAddr   int
	GlobalsAddr       int
	StaticBase        int // base of static memory
	Serial            string
	AbbreviationsAddr int
	FileLength        int // packed length word at 0x1A, times 2
}

func readHeader(story []byte) Header {
	byteAt := func(a int) int { return int(story[a]) }
	wordAt := func(a int) int { return int(story[a])<<8 | int(story[a+1]) }

	return Header{
		Version:           byteAt(0x00),
		Flags1:            byteAt(0x01),
		Release:           wordAt(0x02),
		HighBase:          wordAt(0x04),
		InitialPC:         wordAt(0x06),
		DictionaryAddr:    wordAt(0x08),
		ObjectTableAddr:   wordAt(0x0A),
		GlobalsAddr:       wordAt(0x0C),
		StaticBase:        wordAt(0x0E),
		Serial:            string(story[0x12:0x18]),
		AbbreviationsAddr: wordAt(0x18),
		FileLength:        wordAt(0x1A) * 2,
	}
}

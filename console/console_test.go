package console

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestConsole(input string) (*Console, *bytes.Buffer) {
	var out bytes.Buffer
	c := New(strings.NewReader(input), &out)
	return c, &out
}

func TestReadLine(t *testing.T) {
	c, _ := newTestConsole("open mailbox\nnorth\n")

	line, err := c.ReadLine()
	if err != nil || line != "open mailbox" {
		t.Errorf("ReadLine = %q, %v, want %q, nil", line, err, "open mailbox")
	}
	line, err = c.ReadLine()
	if err != nil || line != "north" {
		t.Errorf("ReadLine = %q, %v, want %q, nil", line, err, "north")
	}
	if _, err = c.ReadLine(); err != io.EOF {
		t.Errorf("ReadLine at end = %v, want io.EOF", err)
	}
}

func TestWriteChunkTranslatesNewlines(t *testing.T) {
	c, out := newTestConsole("")

	if err := c.WriteChunk("hello\nworld\n"); err != nil {
		t.Fatalf("WriteChunk: %v", err)
	}
	want := "hello" + c.eol + "world" + c.eol
	if got := out.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestWriteChunkWrapsAtWordBoundary(t *testing.T) {
	c, out := newTestConsole("")

	long := strings.Repeat("a", 50) + " " + strings.Repeat("b", 40)
	if err := c.WriteChunk(long); err != nil {
		t.Fatalf("WriteChunk: %v", err)
	}
	want := strings.Repeat("a", 50) + c.eol + strings.Repeat("b", 40)
	if got := out.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestWriteChunkSplitsOverlongWord(t *testing.T) {
	c, out := newTestConsole("")

	if err := c.WriteChunk(strings.Repeat("x", 100)); err != nil {
		t.Fatalf("WriteChunk: %v", err)
	}
	want := strings.Repeat("x", 80) + c.eol + strings.Repeat("x", 20)
	if got := out.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestWriteChunkKeepsFullWidthLine(t *testing.T) {
	c, out := newTestConsole("")

	line := strings.Repeat("y", 80)
	if err := c.WriteChunk(line); err != nil {
		t.Fatalf("WriteChunk: %v", err)
	}
	if got := out.String(); got != line {
		t.Errorf("output = %q, want unwrapped %q", got, line)
	}
}

func TestSaveDirResolution(t *testing.T) {
	dir := t.TempDir()
	c, _ := newTestConsole("")
	c.SetSaveDir(dir)

	if err := c.WriteFile("game.sav", []byte("data")); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "game.sav")); err != nil {
		t.Errorf("save file not under save dir: %v", err)
	}

	data, err := c.ReadFile("game.sav")
	if err != nil || string(data) != "data" {
		t.Errorf("ReadFile = %q, %v, want %q, nil", data, err, "data")
	}

	// Absolute names bypass the save dir.
	abs := filepath.Join(t.TempDir(), "other.sav")
	if err := c.WriteFile(abs, []byte("x")); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := os.Stat(abs); err != nil {
		t.Errorf("absolute path not honored: %v", err)
	}
}

type memRecorder struct {
	rows []string
}

func (r *memRecorder) Record(direction, text string) error {
	r.rows = append(r.rows, direction+":"+text)
	return nil
}

func TestRecorderSeesInputAndOutput(t *testing.T) {
	c, _ := newTestConsole("look\n")
	rec := &memRecorder{}
	c.SetRecorder(rec)

	c.WriteChunk("West of House\n")
	c.ReadLine()

	want := []string{"out:West of House\n", "in:look"}
	if len(rec.rows) != len(want) || rec.rows[0] != want[0] || rec.rows[1] != want[1] {
		t.Errorf("recorded rows = %v, want %v", rec.rows, want)
	}
}

// Package console is the teletype host for the Z-machine: line-buffered
// input, word-wrapped output at 80 columns, and the files the machine asks
// for by name. It also houses the score-delta watcher.
package console

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("zi.console")

// MaxLineWidth is the teletype column limit.
const MaxLineWidth = 80

// Recorder receives the session's input and output for journaling. The
// transcript store implements it; recording failures must not disturb the
// session.
type Recorder interface {
	Record(direction, text string) error
}

// Console implements the machine's host interface on a reader/writer pair,
// normally standard input and output.
type Console struct {
	in      *bufio.Scanner
	out     *bufio.Writer
	width   int
	eol     string
	saveDir string
	rec     Recorder
}

// New creates a console over the given streams.
func New(in io.Reader, out io.Writer) *Console {
	return &Console{
		in:    bufio.NewScanner(in),
		out:   bufio.NewWriter(out),
		width: MaxLineWidth,
		eol:   platformEOL(),
	}
}

// SetSaveDir makes relative save-file names resolve under dir.
func (c *Console) SetSaveDir(dir string) {
	c.saveDir = dir
}

// SetRecorder installs a transcript recorder. Pass nil to remove it.
func (c *Console) SetRecorder(rec Recorder) {
	c.rec = rec
}

// ReadLine blocks for one line of input, without its terminator.
func (c *Console) ReadLine() (string, error) {
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	line := c.in.Text()
	c.record("in", line)
	return line, nil
}

// WriteChunk word-wraps a chunk of output and writes it out. The machine's
// internal newline is translated to the platform terminator.
func (c *Console) WriteChunk(s string) error {
	c.record("out", s)

	pos := 0
	for pos <= len(s) {
		end := len(s)
		hasEOL := false
		for j := pos; j < len(s); j++ {
			if s[j] == '\n' {
				end = j
				hasEOL = true
				break
			}
		}
		c.wrap(s[pos:end])
		if hasEOL {
			c.out.WriteString(c.eol)
			pos = end + 1
		} else {
			break
		}
	}
	return c.out.Flush()
}

// wrap emits one newline-free segment with greedy word wrapping: a word and
// the run up to the next space stay on the line while they fit; a single
// word wider than the limit is split at exactly the limit.
func (c *Console) wrap(str string) {
	lineStart := 0
	i := 0
	for i < len(str) {
		nextWord := len(str)
		for j := i; j < len(str); j++ {
			if str[j] != ' ' {
				nextWord = j
				break
			}
		}

		nextSpace := len(str)
		for j := nextWord; j < len(str); j++ {
			if str[j] == ' ' {
				nextSpace = j
				break
			}
		}

		if nextSpace-lineStart <= c.width {
			c.out.WriteString(str[i:nextSpace])
			i = nextSpace
		} else if nextWord == lineStart {
			c.out.WriteString(str[i : i+c.width])
			i += c.width
			if i < len(str) {
				c.out.WriteString(c.eol)
				lineStart = i
			}
		} else {
			i = nextWord
			lineStart = nextWord
			c.out.WriteString(c.eol)
		}
	}
}

// ReadFile reads a file named by the player or the interpreter. Relative
// names resolve under the configured save directory.
func (c *Console) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(c.resolvePath(name))
}

// WriteFile writes a file named by the player.
func (c *Console) WriteFile(name string, data []byte) error {
	return os.WriteFile(c.resolvePath(name), data, 0o644)
}

func (c *Console) resolvePath(name string) string {
	if c.saveDir != "" && !filepath.IsAbs(name) {
		return filepath.Join(c.saveDir, name)
	}
	return name
}

func (c *Console) record(direction, text string) {
	if c.rec == nil {
		return
	}
	if err := c.rec.Record(direction, text); err != nil {
		log.Warningf("transcript: %s", err.Error())
	}
}

func platformEOL() string {
	if runtime.GOOS == "windows" {
		return "\r\n"
	}
	return "\n"
}

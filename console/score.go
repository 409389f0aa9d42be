package console

import (
	"fmt"

	"github.com/lwiest/ZInterpreter/zmachine"
)

// ---------------------------------------------------------------------------
// ScoreWatcher: reports score changes between turns
// ---------------------------------------------------------------------------

// scoreGlobal is the global variable the score convention assigns (global
// variable number 17 in score games).
const scoreGlobal = 17

// ScoreWatcher observes the score global between the game's output and the
// next prompt. When the score changes, the message is spliced in front of
// the trailing ">" of the pending output; if the output does not end with a
// bare prompt, the message is dropped.
type ScoreWatcher struct {
	enabled bool
	old     int
}

// NewScoreWatcher returns a watcher. A disabled watcher stays silent and
// does not track the score between inputs.
func NewScoreWatcher(enabled bool) *ScoreWatcher {
	return &ScoreWatcher{enabled: enabled}
}

// BeforeInput implements zmachine.InputObserver.
func (w *ScoreWatcher) BeforeInput(m *zmachine.Machine) {
	if !w.enabled {
		return
	}
	if m.Flags1()&0b10 != 0 {
		// flags1 bit 1 set means a time game; there is no score to watch.
		return
	}

	score := int(int16(m.GlobalWord(scoreGlobal)))
	delta := score - w.old
	w.old = score

	var text string
	if delta > 0 {
		text = fmt.Sprintf("[Your score increased by %d points. Your current score is %d points.]", delta, score)
	} else if delta < 0 {
		text = fmt.Sprintf("[Your score decreased by %d points. Your current score is %d points.]", -delta, score)
	}
	if text != "" {
		m.SpliceBeforePrompt(text + zmachine.EOL + zmachine.EOL)
	}
}

// Reprime implements zmachine.InputObserver: after restore, restart, or a
// checkpoint resume the previous score is meaningless, so the watcher
// resets its baseline to the current value.
func (w *ScoreWatcher) Reprime(m *zmachine.Machine) {
	w.old = int(int16(m.GlobalWord(scoreGlobal)))
}

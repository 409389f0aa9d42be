// zi - a Z-machine version 3 interpreter for the terminal
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/lwiest/ZInterpreter/config"
	"github.com/lwiest/ZInterpreter/console"
	"github.com/lwiest/ZInterpreter/transcript"
	"github.com/lwiest/ZInterpreter/zmachine"
)

const banner = ` ____      ___     _                        _
|_  / ___ |_ _|_ _| |_ ___ _ _ _ __ _ _ ___| |_ ___ _ _
 / / |___| | || ' \  _/ -_) '_| '_ \ '_/ -_)  _/ -_) '_|
/___|     |___|_||_\__\___|_| | .__/_| \___|\__\___|_|
                              |_|
Version 1.0
`

func main() {
	fmt.Print(banner)

	fs := flag.NewFlagSet("zi", flag.ContinueOnError)
	fs.SetOutput(os.Stdout)

	showScore := fs.Bool("showScoreUpdates", false, "Print the score whenever it changes")
	verbose := fs.Bool("v", false, "Verbose logging")
	debug := fs.Bool("vv", false, "Debug logging with per-instruction trace")
	configPath := fs.String("config", "", "Path to a zi.toml configuration file")
	checkpointPath := fs.String("checkpoint", "", "Write a state checkpoint to this file on quit")
	resumePath := fs.String("resume", "", "Resume from a state checkpoint before running")
	transcriptOn := fs.Bool("transcript", false, "Record the session to a SQLite transcript database")

	fs.Usage = func() {
		fmt.Fprintf(os.Stdout, "Usage: zi [options] <story-file>\n\nOptions:\n")
		fs.PrintDefaults()
	}

	// Argument errors print usage and exit cleanly.
	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(0)
	}
	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(0)
	}

	storyPath, err := filepath.Abs(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}

	cfg := loadConfig(*configPath, storyPath)

	verbosity := cfg.Verbosity
	if *verbose && verbosity < 1 {
		verbosity = 1
	}
	if *debug && verbosity < 2 {
		verbosity = 2
	}
	commonlog.Configure(verbosity, nil)

	story, err := os.ReadFile(storyPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: cannot read story file %q: %v\n", fs.Arg(0), err)
		os.Exit(1)
	}

	cons := console.New(os.Stdin, os.Stdout)
	if cfg.SaveDir != "" {
		cons.SetSaveDir(cfg.SaveDir)
	}

	var store *transcript.Store
	if *transcriptOn || cfg.Transcript {
		dbPath := cfg.TranscriptDB
		if dbPath == "" {
			dbPath = storyPath + ".transcript.db"
		}
		store, err = transcript.Open(dbPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "WARNING: transcript disabled: %v\n", err)
		} else {
			defer store.Close()
			cons.SetRecorder(store)
		}
	}

	machine, err := zmachine.NewMachine(story, storyPath, cons)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
	machine.Trace = verbosity >= 2

	watcher := console.NewScoreWatcher(*showScore || cfg.ShowScoreUpdates)
	machine.SetObserver(watcher)

	if *resumePath != "" {
		if data, err := os.ReadFile(*resumePath); err != nil {
			fmt.Fprintf(os.Stderr, "WARNING: cannot read checkpoint: %v\n", err)
		} else if err := machine.RestoreCheckpoint(data); err != nil {
			fmt.Fprintf(os.Stderr, "WARNING: %v\n", err)
		}
	}

	runErr := machine.Run()
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", runErr)
	}

	checkpoint := *checkpointPath
	if checkpoint == "" {
		checkpoint = cfg.Checkpoint
	}
	if checkpoint != "" && runErr == nil {
		if data, err := machine.Checkpoint(); err != nil {
			fmt.Fprintf(os.Stderr, "WARNING: %v\n", err)
		} else if err := os.WriteFile(checkpoint, data, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "WARNING: cannot write checkpoint: %v\n", err)
		}
	}

	if runErr != nil {
		os.Exit(1)
	}
}

// loadConfig loads an explicit config file, or searches next to the story
// and in the working directory. A missing config is not an error.
func loadConfig(explicit, storyPath string) *config.Config {
	if explicit != "" {
		cfg, err := config.LoadFile(explicit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "WARNING: %v\n", err)
			return &config.Config{}
		}
		return cfg
	}

	cfg, err := config.FindAndLoad(storyPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "WARNING: %v\n", err)
	}
	if cfg == nil {
		cfg = &config.Config{}
	}
	return cfg
}

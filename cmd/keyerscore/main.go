// keyerscore - typing-cost scoring for chord layouts
//
// keyerscore evaluates character-to-chords mappings by simulating the
// hand motions needed to type a reference text:
//
//	keyerscore score -m layout.txt -t corpus.txt   Score once
//	keyerscore watch -m layout.txt -t corpus.txt   Re-score on edits
//	keyerscore check layout.json                   Validate a JSON key map
//
// Key maps are read from the layout text format, YAML, or JSON (the
// JSON form is schema-checked). The result is the total typing effort
// in milliseconds; layout search drives this number down.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	flag "github.com/spf13/pflag"

	"keyer/internal/config"
	"keyer/internal/layout"
	"keyer/internal/logging"
	"keyer/internal/sim"
	"keyer/internal/watcher"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "score":
		cmdScore(os.Args[2:], false)
	case "watch":
		cmdScore(os.Args[2:], true)
	case "check":
		cmdCheck(os.Args[2:])
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println(`keyerscore - chord layout scoring

USAGE:
    keyerscore <command> [options]

COMMANDS:
    score -m <keymap> -t <text>    Score a key map against a corpus
    watch -m <keymap> -t <text>    Score and re-score when the key map changes
    check <keymap.json>            Validate a JSON key map against the schema
    help                           Show this help message

The cost is the simulated typing effort in milliseconds. Chords are
digit strings, one digit per finger with the thumb first: "2100" holds
the thumb on its second button and the index on its first.`)
}

func scoreFlags(args []string) (keyMapPath, textPath string, model *sim.Model) {
	flags := flag.NewFlagSet("score", flag.ExitOnError)
	mapFlag := flags.StringP("keymap", "m", "", "key map file (.txt, .yaml, .json)")
	textFlag := flags.StringP("text", "t", "", "reference text file")
	configPath := flags.StringP("config", "c", config.ConfigPath(), "config file location")
	verbose := flags.BoolP("verbose", "v", false, "debug logging")
	flags.Parse(args)

	if *mapFlag == "" || *textFlag == "" {
		fmt.Fprintln(os.Stderr, "Both --keymap and --text are required")
		flags.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatal(err)
	}
	level := cfg.Logging.Level
	if *verbose {
		level = "debug"
	}
	if _, _, err := logging.Setup(logging.Options{
		Level:     level,
		Format:    cfg.Logging.Format,
		Component: "keyerscore",
	}); err != nil {
		fatal(err)
	}

	model, err = sim.ModelFromTables(cfg.Scorer.TravelMs, cfg.Scorer.PressMs)
	if err != nil {
		fatal(err)
	}
	return *mapFlag, *textFlag, model
}

func cmdScore(args []string, watch bool) {
	keyMapPath, textPath, model := scoreFlags(args)

	text, err := os.ReadFile(textPath)
	if err != nil {
		fatal(err)
	}

	score := func() error {
		keyMap, err := layout.LoadKeyMap(keyMapPath)
		if err != nil {
			return err
		}
		cost, err := model.ScoreLayout(keyMap.Strings(), string(text))
		if err != nil {
			return err
		}
		fmt.Printf("%d ms total, %.2f ms/char (%d chars, %d mapped keys)\n",
			cost, float64(cost)/float64(max(len(text), 1)), len(text), len(keyMap))
		return nil
	}

	if err := score(); err != nil {
		fatal(err)
	}
	if !watch {
		return
	}

	w, err := watcher.New(keyMapPath, 200*time.Millisecond)
	if err != nil {
		fatal(err)
	}
	defer w.Close()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	for {
		select {
		case <-sig:
			return
		case <-w.Changes():
			if err := score(); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
		case err := <-w.Errors():
			fmt.Fprintf(os.Stderr, "Watch error: %v\n", err)
		}
	}
}

func cmdCheck(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: keyerscore check <keymap.json>")
		os.Exit(1)
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		fatal(err)
	}
	keyMap, err := layout.ParseJSONKeyMap(data)
	if err != nil {
		fatal(err)
	}
	// Make sure every chord also fits the cost model.
	if _, err := sim.DefaultModel().Compile(keyMap.Strings()); err != nil {
		fatal(err)
	}
	fmt.Printf("OK: %d keys\n", len(keyMap))
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

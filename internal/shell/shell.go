// Package shell provides the interactive SQL prompt opened after a run.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nsqlite/schooldb/internal/log"
	"github.com/nsqlite/schooldb/internal/store"
	"github.com/peterh/liner"
)

// errQuit is returned by handle when the user asks to leave the shell.
var errQuit = errors.New("quit")

type Shell struct {
	ctx         context.Context
	stop        context.CancelFunc
	store       *store.Store
	logger      log.Logger
	out         io.Writer
	historyPath string
}

func NewShell(
	ctx context.Context,
	stop context.CancelFunc,
	st *store.Store,
	logger log.Logger,
	out io.Writer,
) *Shell {
	return &Shell{
		ctx:         ctx,
		stop:        stop,
		store:       st,
		logger:      logger,
		out:         out,
		historyPath: filepath.Join(os.TempDir(), ".schooldb_history"),
	}
}

// Start reads commands until the user quits or the context is cancelled.
func (s *Shell) Start() error {
	fmt.Fprintln(s.out)
	fmt.Fprintf(s.out, "Connected to %s\n", s.store.Path)
	fmt.Fprintln(s.out, `Enter ".help" for usage hints and ".quit" or "CTRL+C" to quit`)
	fmt.Fprintln(s.out)

	for {
		select {
		case <-s.ctx.Done():
			return nil
		default:
			if err := s.handle(s.prompt()); errors.Is(err, errQuit) {
				s.Shutdown()
				return nil
			}
		}
	}
}

// Shutdown stops the shell.
func (s *Shell) Shutdown() {
	s.stop()
}

// handle dispatches a single line of input.
func (s *Shell) handle(input string) error {
	switch {
	case input == "":
		return nil
	case input == "exit" || input == ".exit" || input == ".quit":
		return errQuit
	case input == ".clear":
		clearTerminal()
	case input == "help" || input == ".help":
		cmdHelp(s.out)
	case input == ".tables":
		cmdQuery(s, `SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	case input == ".schema":
		cmdQuery(s, `SELECT sql FROM sqlite_master WHERE sql IS NOT NULL ORDER BY name`)
	case strings.HasPrefix(input, ".count"):
		cmdCount(s, strings.TrimSpace(strings.TrimPrefix(input, ".count")))
	case strings.HasPrefix(input, "."):
		fmt.Fprintln(s.out, "Unknown command, type .help for usage hints")
	default:
		cmdQuery(s, input)
	}
	return nil
}

// prompt shows the prompt and reads the input from the user.
func (s *Shell) prompt() string {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(cmdHelpCompleter)

	if file, err := os.Open(s.historyPath); err == nil {
		_, _ = line.ReadHistory(file)
		file.Close()
	}

	input, err := line.Prompt("SchoolDB> ")
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			fmt.Fprintln(s.out, "Exiting...")
			return ".quit"
		}
		s.logger.WarnNs("shell", "failed to read input", log.KV{"error": err.Error()})
		return ""
	}

	line.AppendHistory(input)
	if file, err := os.Create(s.historyPath); err == nil {
		_, _ = line.WriteHistory(file)
		file.Close()
	}

	return strings.TrimSpace(input)
}

package cmd

import (
	"bufio"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/teamtask/teamtask/internal/config"
	"github.com/teamtask/teamtask/internal/logging"
	"github.com/teamtask/teamtask/internal/session"
	"github.com/teamtask/teamtask/internal/store"
)

// app bundles the pieces every command needs: loaded config, logger,
// remote store client and the local session slot.
type app struct {
	cfg      *config.Config
	log      *logging.Logger
	client   *store.Client
	sessions *session.Store
}

// newApp wires an app from the loaded configuration. Callers must Close it.
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log := logging.NopLogger()
	if cfg.Logging.Enabled {
		log, err = logging.New(logging.Options{
			Dir:        config.DataDir(),
			Level:      cfg.Logging.Level,
			MaxSizeMB:  cfg.Logging.MaxSizeMB,
			MaxBackups: cfg.Logging.MaxBackups,
		})
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
	}

	client := store.New(cfg.Endpoint.URL,
		store.WithHTTPClient(&http.Client{Timeout: cfg.Endpoint.Timeout()}),
		store.WithLogger(log),
	)

	return &app{
		cfg:      cfg,
		log:      log,
		client:   client,
		sessions: session.NewStore(config.DataDir()),
	}, nil
}

// Close flushes and closes the log file.
func (a *app) Close() {
	a.log.Close()
}

// stdin is shared across prompts so buffered read-ahead from one prompt
// is not lost before the next.
var stdin = bufio.NewReader(os.Stdin)

// promptLine reads one trimmed line from stdin after printing the prompt.
func promptLine(out io.Writer, prompt string) (string, error) {
	fmt.Fprint(out, prompt)
	line, err := stdin.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptSecret reads a secret without echoing when stdin is a terminal,
// falling back to a plain line read otherwise (pipes, tests).
func promptSecret(out io.Writer, prompt string) (string, error) {
	fmt.Fprint(out, prompt)
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(out)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(b)), nil
	}
	return promptLine(out, "")
}

package main

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/spektr-org/wordgroup/config"
	"github.com/spektr-org/wordgroup/saved"
	"github.com/spektr-org/wordgroup/shell"
)

const artwork = `
                      _
__      _____  _ __ __| | __ _ _ __ ___  _   _ _ __
\ \ /\ / / _ \| '__/ _` + "`" + ` |/ _` + "`" + ` | '__/ _ \| | | | '_ \
 \ V  V / (_) | | | (_| | (_| | | | (_) | |_| | |_) |
  \_/\_/ \___/|_|  \__,_|\__, |_|  \___/ \__,_| .__/
                         |___/                |_|
`

func (a *app) shellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive shell (the default when no command is given)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runShell(cmd)
		},
	}
}

func (a *app) runShell(cmd *cobra.Command) error {
	list, err := saved.Load(a.cfg.SavedPath)
	if err != nil {
		return err
	}

	// Without the directory readline silently skips history.
	_ = os.MkdirAll(config.Dir(), 0755)

	l, err := readline.NewEx(&readline.Config{
		Prompt:          shell.Prompt,
		HistoryFile:     filepath.Join(config.Dir(), "history"),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		Stdout:          cmd.OutOrStdout(),
	})
	if err != nil {
		return err
	}
	defer l.Close()
	l.CaptureExitSignal()

	sh := shell.New(a.service, list, a.cfg.SavedPath, a.renderer, l.Stdout(), a.logger)
	io.WriteString(l.Stdout(), artwork)
	sh.Banner()

	for {
		line, err := l.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if sh.Handle(cmd.Context(), line) {
			return nil
		}
	}
}

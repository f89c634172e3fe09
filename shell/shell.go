// Package shell dispatches interactive command lines. The readline loop
// itself lives in cmd/wordgroup; Handle is the part worth testing.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/spektr-org/wordgroup/lookup"
	"github.com/spektr-org/wordgroup/render"
	"github.com/spektr-org/wordgroup/saved"
)

// Prompt is the shell prompt.
const Prompt = "wordgroup # "

var errNoWord = errors.New("not enough arguments")

var help = map[string]string{
	"": `Type a word and press enter to find rhymes for it.

Commands:
  \r word      words that rhyme with word, grouped by syllable count
  \s word      words with a meaning similar to word
  \save word   add word to the saved list
  \saved       show the saved list
  \h [topic]   help, optionally on one command (r, s, save)
  \q           quit (also: exit)`,

	"r": `The \r command finds rhymes:
  \r word

Results are grouped by syllable count. Words the API did not report a
syllable count for are listed last under "? syllables:".`,

	"s": `The \s command finds words with a similar meaning:
  \s word

Results are listed in the order the API ranked them.`,

	"save": `The \save command adds words to the saved list:
  \save word [word...]

Words are kept once each, ignoring case, in the order they were first
saved. The list is written to the saved-words file after every change.`,
}

// Shell holds the state of one interactive session.
type Shell struct {
	service   *lookup.Service
	saved     *saved.List
	savedPath string
	renderer  *render.Renderer
	out       io.Writer
	logger    *zap.Logger
}

// New creates a Shell. savedPath may be empty, in which case saved words
// are kept in memory only.
func New(service *lookup.Service, list *saved.List, savedPath string, renderer *render.Renderer, out io.Writer, logger *zap.Logger) *Shell {
	if list == nil {
		list = saved.NewList()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Shell{
		service:   service,
		saved:     list,
		savedPath: savedPath,
		renderer:  renderer,
		out:       out,
		logger:    logger,
	}
}

// Banner is printed once when the shell starts.
func (s *Shell) Banner() {
	fmt.Fprintln(s.out, `Type "help" for help.`)
	fmt.Fprintln(s.out)
}

// Saved returns the session's saved list.
func (s *Shell) Saved() *saved.List { return s.saved }

// Handle runs one input line and reports whether the shell should exit.
// Errors are printed, never returned.
func (s *Shell) Handle(ctx context.Context, line string) (quit bool) {
	line = strings.TrimSpace(line)
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch {
	case line == "":
	case line == "exit", cmd == `\q`:
		return true
	case line == "help", cmd == `\h`:
		text, ok := help[strings.TrimPrefix(arg, `\`)]
		if !ok {
			s.printError("no help for " + arg)
			break
		}
		fmt.Fprintln(s.out, text)
	case cmd == `\r`:
		s.lookup(ctx, s.service.Rhymes, arg)
	case cmd == `\s`:
		s.lookup(ctx, s.service.Synonyms, arg)
	case cmd == `\save`:
		if err := s.save(strings.Fields(arg)); err != nil {
			s.printError(err.Error())
		}
	case cmd == `\saved`:
		if err := s.renderer.Saved(s.out, s.saved); err != nil {
			s.printError(err.Error())
		}
	case strings.HasPrefix(line, `\`):
		s.printError("unrecognized command: " + line)
	default:
		s.lookup(ctx, s.service.Rhymes, line)
	}
	return false
}

func (s *Shell) lookup(ctx context.Context, fn func(context.Context, string) (*lookup.Result, error), word string) {
	if word == "" {
		s.printError(errNoWord.Error())
		return
	}
	res, err := fn(ctx, word)
	if err != nil {
		if rerr := s.renderer.Failure(s.out, err); rerr != nil {
			s.printError(rerr.Error())
		}
		return
	}
	if err := s.renderer.Lookup(s.out, res); err != nil {
		s.printError(err.Error())
	}
}

func (s *Shell) save(words []string) error {
	if len(words) == 0 {
		return errNoWord
	}
	changed := false
	for _, w := range words {
		if s.saved.Add(w) {
			changed = true
		}
	}
	if changed && s.savedPath != "" {
		if err := s.saved.Save(s.savedPath); err != nil {
			return err
		}
		s.logger.Debug("saved words persisted",
			zap.String("path", s.savedPath),
			zap.Int("count", s.saved.Len()))
	}
	return s.renderer.Saved(s.out, s.saved)
}

func (s *Shell) printError(msg string) {
	fmt.Fprintln(s.out, "ERROR: "+msg)
}

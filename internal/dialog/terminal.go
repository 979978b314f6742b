// Copyright (c) 2026 Licmaster Team
// Licmaster - software license administration
// This source code is licensed under the MIT license found in the LICENSE file.

package dialog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/toeirei/licmaster/internal/i18n"
)

// ErrNoTerminal is returned when an interactive prompt is requested but
// stdin is not a terminal (pipes, cron, CI).
var ErrNoTerminal = errors.New("no interactive terminal available")

// Terminal presents dialogs as line-oriented prompts on a terminal. It is
// the gateway the plain CLI uses when no destination was given via flags.
//
// In and Out exist for tests; left nil they bind to os.Stdin/os.Stderr, and
// the stdin binding additionally requires a real terminal.
type Terminal struct {
	In  io.Reader
	Out io.Writer

	// br wraps In exactly once so consecutive prompts share buffered input.
	br *bufio.Reader
}

func (t *Terminal) reader() (*bufio.Reader, error) {
	if t.br == nil {
		in := t.In
		if in == nil {
			if !term.IsTerminal(int(os.Stdin.Fd())) {
				return nil, ErrNoTerminal
			}
			in = os.Stdin
		}
		t.br = bufio.NewReader(in)
	}
	return t.br, nil
}

func (t *Terminal) writer() io.Writer {
	if t.Out != nil {
		return t.Out
	}
	return os.Stderr
}

func (t *Terminal) ShowSaveDialog(m *SaveModel) error {
	in, err := t.reader()
	if err != nil {
		return err
	}
	out := t.writer()

	fmt.Fprintf(out, "%s (%s)\n", m.Title, m.Filter)
	prompt := i18n.T("dialog.prompt.path")
	if m.FileName != "" {
		prompt = fmt.Sprintf("%s [%s]", prompt, m.FileName)
	}
	line, err := promptLine(in, out, prompt+": ")
	if err != nil {
		return err
	}
	if line == "" {
		line = m.FileName
	}
	if line == "" {
		// Cancelled; the model stays unconfirmed.
		return nil
	}
	path := EnsureExtension(line, FileExtension)

	if m.OverwritePrompt {
		if _, statErr := os.Stat(path); statErr == nil {
			answer, err := promptLine(in, out, i18n.T("dialog.prompt.overwrite", path)+" ")
			if err != nil {
				return err
			}
			if !isYes(answer) {
				return nil
			}
		}
	}

	m.FileName = path
	m.Confirmed = true
	return nil
}

func (t *Terminal) ShowOpenDialog(m *OpenModel) error {
	in, err := t.reader()
	if err != nil {
		return err
	}
	out := t.writer()

	fmt.Fprintf(out, "%s (%s)\n", m.Title, m.Filter)
	line, err := promptLine(in, out, i18n.T("dialog.prompt.path")+": ")
	if err != nil {
		return err
	}
	if line == "" {
		return nil
	}
	if _, statErr := os.Stat(line); statErr != nil {
		// An open picker only ever yields existing files.
		return fmt.Errorf("cannot open %s: %w", line, statErr)
	}

	m.FileName = line
	m.Confirmed = true
	return nil
}

func promptLine(in *bufio.Reader, out io.Writer, prompt string) (string, error) {
	fmt.Fprint(out, prompt)
	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		if errors.Is(err, io.EOF) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func isYes(answer string) bool {
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true
	}
	return false
}

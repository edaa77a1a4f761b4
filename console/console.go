// Package console provides the line input behind the input built-in.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"
)

const (
	ModeAuto   = "auto"
	ModePlain  = "plain"
	ModeEditor = "editor"
)

// ErrInterrupted is returned when the user aborts a prompt with Ctrl-C.
var ErrInterrupted = errors.New("input interrupted")

type Console interface {
	// ReadLine shows prompt and blocks until one line is read. The line
	// terminator is not included.
	ReadLine(prompt string) (string, error)
	Close() error
}

// Open picks a console for mode. Auto uses the line editor only when both
// stdin and stdout are terminals.
func Open(mode string, r io.Reader, w io.Writer) (Console, error) {
	switch mode {
	case "", ModeAuto:
		if IsTerminal() {
			return NewLineEditor(), nil
		}
		return NewPlain(r, w), nil
	case ModePlain:
		return NewPlain(r, w), nil
	case ModeEditor:
		return NewLineEditor(), nil
	}

	return nil, fmt.Errorf("unknown input mode %q (want %s, %s or %s)", mode, ModeAuto, ModePlain, ModeEditor)
}

func IsTerminal() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())
}

type Plain struct {
	reader *bufio.Reader
	writer io.Writer
}

func NewPlain(r io.Reader, w io.Writer) *Plain {
	return &Plain{
		reader: bufio.NewReader(r),
		writer: w,
	}
}

func (p *Plain) ReadLine(prompt string) (string, error) {
	if prompt != "" {
		if _, err := io.WriteString(p.writer, prompt); err != nil {
			return "", err
		}
	}

	line, err := p.reader.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return trimNewline(line), nil
		}
		return "", err
	}

	return trimNewline(line), nil
}

func (p *Plain) Close() error {
	return nil
}

func trimNewline(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}

// LineEditor reads lines through liner. One State lives as long as the
// editor: it owns the buffered reader on stdin, so lines typed or piped
// ahead of a prompt are kept for the next one.
type LineEditor struct {
	state *liner.State
}

func NewLineEditor() *LineEditor {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)

	return &LineEditor{state: state}
}

func (l *LineEditor) ReadLine(prompt string) (string, error) {
	line, err := l.state.Prompt(prompt)
	if err == liner.ErrPromptAborted {
		return "", ErrInterrupted
	}
	if err != nil {
		return "", err
	}

	if line != "" {
		l.state.AppendHistory(line)
	}
	return line, nil
}

// Close restores the terminal.
func (l *LineEditor) Close() error {
	return l.state.Close()
}

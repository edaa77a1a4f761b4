package console

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/mattn/go-isatty"
	"github.com/stretchr/testify/require"
)

func TestPlainReadsLinesAndWritesPrompt(t *testing.T) {
	var out bytes.Buffer
	c := NewPlain(strings.NewReader("alice\r\nbob\nlast"), &out)

	line, err := c.ReadLine("name? ")
	require.NoError(t, err)
	require.Equal(t, "alice", line)

	line, err = c.ReadLine("")
	require.NoError(t, err)
	require.Equal(t, "bob", line)

	line, err = c.ReadLine("> ")
	require.NoError(t, err)
	require.Equal(t, "last", line)

	_, err = c.ReadLine("> ")
	require.Equal(t, io.EOF, err)

	require.Equal(t, "name? > > ", out.String())
	require.NoError(t, c.Close())
}

func TestPlainEmptyLine(t *testing.T) {
	c := NewPlain(strings.NewReader("\n"), io.Discard)

	line, err := c.ReadLine("")
	require.NoError(t, err)
	require.Equal(t, "", line)
}

func TestOpenModes(t *testing.T) {
	c, err := Open(ModePlain, strings.NewReader(""), io.Discard)
	require.NoError(t, err)
	require.IsType(t, &Plain{}, c)

	c, err = Open(ModeEditor, strings.NewReader(""), io.Discard)
	require.NoError(t, err)
	require.IsType(t, &LineEditor{}, c)
	require.NoError(t, c.Close())

	_, err = Open("telepathy", strings.NewReader(""), io.Discard)
	require.Error(t, err)
}

// withStdin points os.Stdin at a pipe holding input for the duration of fn.
func withStdin(t *testing.T, input string, fn func()) {
	t.Helper()

	r, w, err := os.Pipe()
	require.NoError(t, err)
	_, err = io.WriteString(w, input)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	orig := os.Stdin
	os.Stdin = r
	defer func() {
		os.Stdin = orig
		r.Close()
	}()

	fn()
}

func TestEditorKeepsBufferedLines(t *testing.T) {
	// liner checks file descriptor 0 itself to pick raw mode.
	if isatty.IsTerminal(os.Stdin.Fd()) {
		t.Skip("stdin is a terminal")
	}

	withStdin(t, "first\nsecond\nthird\n", func() {
		c, err := Open(ModeEditor, strings.NewReader(""), io.Discard)
		require.NoError(t, err)
		defer c.Close()

		for _, want := range []string{"first", "second", "third"} {
			line, err := c.ReadLine("")
			require.NoError(t, err)
			require.Equal(t, want, line)
		}

		_, err = c.ReadLine("")
		require.Equal(t, io.EOF, err)
	})
}

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pontaoski/nodewalk/ast"
	"github.com/pontaoski/nodewalk/config"
	"github.com/pontaoski/nodewalk/reader"
)

const countingProgram = `[{"type":"variable_assignment","value_1":"x","value_2":0},
{"type":"while_loop","condition":{"type":"comparison","left":"x","op":"<","right":3},
"body":[{"type":"function_call","name":"print","args":["x"]},
{"type":"variable_assignment","value_1":"x","value_2":{"type":"binary_operation","left":"x","op":"+","right":1}}]}]`

type result struct {
	err    error
	stdout string
	stderr string
}

func runApp(t *testing.T, stdin string, args ...string) result {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cfg := filepath.Join(t.TempDir(), config.DefaultPath)
	full := append([]string{"nodewalk", "--config", cfg, "--input", "plain"}, args...)

	err := newApp(strings.NewReader(stdin), &stdout, &stderr).Run(full)
	return result{err: err, stdout: stdout.String(), stderr: stderr.String()}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunEndToEnd(t *testing.T) {
	path := writeFile(t, "count.json", countingProgram)

	for _, args := range [][]string{{path}, {"run", path}} {
		res := runApp(t, "", args...)
		require.NoError(t, res.err)
		require.Equal(t, "0\n1\n2\n", res.stdout)
	}
}

func TestRunDumpsEnvironment(t *testing.T) {
	path := writeFile(t, "count.json", countingProgram)

	res := runApp(t, "", "--dump-env", "run", path)
	require.NoError(t, res.err)
	require.Contains(t, res.stderr, "x = runtime.IntegerValue{")
	require.Contains(t, res.stderr, "3}")
}

func TestRunStopsAtUnknownStatement(t *testing.T) {
	path := writeFile(t, "bad.json", `[
		{"type": "function_call", "name": "print", "args": ["before"]},
		{"type": "foo"},
		{"type": "function_call", "name": "print", "args": ["after"]}
	]`)

	res := runApp(t, "", "run", path)
	require.Error(t, res.err)
	require.Equal(t, "before\n", res.stdout)
	require.Contains(t, res.stderr, "error: ")
	require.Contains(t, res.stderr, `statements of type "foo"`)
}

func TestRunMalformedProgram(t *testing.T) {
	path := writeFile(t, "bad.json", `[{"type": "function_call", "name": "print"}]`)

	res := runApp(t, "", "run", path)
	require.Error(t, res.err)
	require.Empty(t, res.stdout)
	require.Contains(t, res.stderr, `malformed node at /0: missing field "args"`)
}

func TestRunNeedsOneFile(t *testing.T) {
	res := runApp(t, "", "run")
	require.Error(t, res.err)
	require.Contains(t, res.stderr, "expected exactly one file argument")
}

func TestExecWithInput(t *testing.T) {
	path := writeFile(t, "greet.nw", "name = input('who? ')\nprint(Format('hi $1', name))\n")

	res := runApp(t, "ada\n", "exec", path)
	require.NoError(t, res.err)
	require.Equal(t, "who? hi ada\n", res.stdout)
}

func TestExecSyntaxError(t *testing.T) {
	path := writeFile(t, "broken.nw", "x = (1\n")

	res := runApp(t, "", "exec", path)
	require.Error(t, res.err)
	require.Empty(t, res.stdout)
	require.Contains(t, res.stderr, "broken.nw:")
}

func TestParseRoundTrip(t *testing.T) {
	src := "x = 0\nwhile x < 3:\n    print(x, 1.5, None)\n    x = x + 1\n"
	path := writeFile(t, "count.nw", src)
	want, err := reader.ReadSource(path)
	require.NoError(t, err)

	res := runApp(t, "", "parse", path)
	require.NoError(t, res.err)
	got, err := ast.UnmarshalJSON([]byte(res.stdout))
	require.NoError(t, err)
	require.Equal(t, want, got)

	res = runApp(t, "", "parse", "--yaml", path)
	require.NoError(t, res.err)
	got, err = ast.UnmarshalYAML([]byte(res.stdout))
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestDump(t *testing.T) {
	path := writeFile(t, "count.json", countingProgram)

	res := runApp(t, "", "dump", path)
	require.NoError(t, res.err)
	require.Contains(t, res.stdout, "ast.WhileLoop")
	require.Contains(t, res.stdout, "ast.Assignment")
}

func TestInitWritesConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yml")
	var stdout, stderr bytes.Buffer

	err := newApp(strings.NewReader(""), &stdout, &stderr).Run([]string{"nodewalk", "--config", path, "init"})
	require.NoError(t, err)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, config.Default(), cfg)

	err = newApp(strings.NewReader(""), &stdout, &stderr).Run([]string{"nodewalk", "--config", path, "init"})
	require.Error(t, err)
	require.Contains(t, stderr.String(), "already exists")

	err = newApp(strings.NewReader(""), &stdout, &stderr).Run([]string{"nodewalk", "--config", path, "init", "--force"})
	require.NoError(t, err)
}

func TestConfigFileApplies(t *testing.T) {
	cfgPath := writeFile(t, "nodewalk.yml", "dump_env: true\ninput: plain\n")
	path := writeFile(t, "count.json", countingProgram)
	var stdout, stderr bytes.Buffer

	err := newApp(strings.NewReader(""), &stdout, &stderr).Run([]string{"nodewalk", "--config", cfgPath, path})
	require.NoError(t, err)
	require.Equal(t, "0\n1\n2\n", stdout.String())
	require.Contains(t, stderr.String(), "runtime.IntegerValue")
}

func TestInvalidConfigFails(t *testing.T) {
	cfgPath := writeFile(t, "nodewalk.yml", "input: telepathy\n")
	path := writeFile(t, "count.json", countingProgram)
	var stdout, stderr bytes.Buffer

	err := newApp(strings.NewReader(""), &stdout, &stderr).Run([]string{"nodewalk", "--config", cfgPath, path})
	require.Error(t, err)
	require.Contains(t, stderr.String(), "telepathy")
}

func TestInitReplacesBrokenConfig(t *testing.T) {
	for _, broken := range []string{"input: telepathy\n", "log_level: [\n", "colour: true\n"} {
		cfgPath := writeFile(t, "nodewalk.yml", broken)
		var stdout, stderr bytes.Buffer

		err := newApp(strings.NewReader(""), &stdout, &stderr).Run([]string{"nodewalk", "--config", cfgPath, "init"})
		require.Error(t, err, broken)
		require.Contains(t, stderr.String(), "already exists", broken)

		stderr.Reset()
		err = newApp(strings.NewReader(""), &stdout, &stderr).Run([]string{"nodewalk", "--config", cfgPath, "init", "--force"})
		require.NoError(t, err, broken)
		require.Empty(t, stderr.String())

		cfg, err := config.Load(cfgPath)
		require.NoError(t, err)
		require.Equal(t, config.Default(), cfg)
	}
}

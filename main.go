package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/repr"
	"github.com/coreos/pkg/capnslog"
	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
	"github.com/ztrue/tracerr"

	"github.com/pontaoski/nodewalk/ast"
	"github.com/pontaoski/nodewalk/config"
	"github.com/pontaoski/nodewalk/console"
	"github.com/pontaoski/nodewalk/interpreter"
	"github.com/pontaoski/nodewalk/reader"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/nodewalk", "main")

// app carries the streams and the effective configuration shared by every
// command.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	cfg    config.Config
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *cli.App {
	a := &app{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		cfg:    config.Default(),
	}

	return &cli.App{
		Name:      "nodewalk",
		Usage:     "run programs encoded as node trees",
		ArgsUsage: "<program>",
		Version:   "0.1.0",
		Reader:    stdin,
		Writer:    stdout,
		ErrWriter: stderr,
		// errors are reported by the commands themselves; main sets the
		// exit status.
		ExitErrHandler: func(context *cli.Context, err error) {},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   config.DefaultPath,
				Usage:   "configuration file; defaults apply when it is missing",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "CRITICAL, ERROR, WARNING, NOTICE, INFO, DEBUG or TRACE",
			},
			&cli.BoolFlag{
				Name:  "trace",
				Usage: "print a stack trace with failing errors",
			},
			&cli.BoolFlag{
				Name:  "dump-env",
				Usage: "print the final environment to stderr",
			},
			&cli.StringFlag{
				Name:  "input",
				Usage: "console used by input: auto, plain or editor",
			},
		},
		Action: a.configured(func(c *cli.Context) error {
			if c.NArg() == 0 {
				return cli.ShowAppHelp(c)
			}
			return a.run(c)
		}),
		Commands: []*cli.Command{
			{
				Name:      "run",
				Usage:     "run an encoded program (YAML for .yaml/.yml files, JSON otherwise)",
				ArgsUsage: "<program>",
				Action:    a.configured(a.run),
			},
			{
				Name:      "exec",
				Usage:     "parse a source file and run it",
				ArgsUsage: "<source>",
				Action:    a.configured(a.exec),
			},
			{
				Name:      "parse",
				Usage:     "print the encoded program for a source file",
				ArgsUsage: "<source>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "yaml",
						Usage: "encode as YAML instead of JSON",
					},
				},
				Action: a.configured(a.parse),
			},
			{
				Name:      "dump",
				Usage:     "pretty-print the decoded nodes of an encoded program",
				ArgsUsage: "<program>",
				Action:    a.configured(a.dump),
			},
			{
				Name:  "init",
				Usage: "write a default configuration file",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "force",
						Usage: "overwrite an existing file",
					},
				},
				// The file being replaced may be the one that's broken.
				Action: a.reporting(func(c *cli.Context) error {
					if err := a.configure(c, false); err != nil {
						return err
					}
					return a.writeConfig(c)
				}),
			},
		},
	}
}

func (a *app) reporting(fn func(c *cli.Context) error) func(c *cli.Context) error {
	return func(c *cli.Context) error {
		err := fn(c)
		if err != nil {
			a.report(err)
		}
		return err
	}
}

func (a *app) configured(fn func(c *cli.Context) error) func(c *cli.Context) error {
	return a.reporting(func(c *cli.Context) error {
		if err := a.configure(c, true); err != nil {
			return err
		}
		return fn(c)
	})
}

func (a *app) report(err error) {
	if a.cfg.Trace {
		fmt.Fprintln(a.stderr, tracerr.SprintSourceColor(err))
		return
	}

	color.New(color.FgRed, color.Bold).Fprint(a.stderr, "error: ")
	fmt.Fprintln(a.stderr, err)
}

// configure loads the configuration file, lets flags override it and sets
// up logging. Without load it starts from the defaults instead.
func (a *app) configure(c *cli.Context, load bool) error {
	a.cfg = config.Default()
	if load {
		var err error
		a.cfg, err = config.LoadOptional(c.String("config"))
		if err != nil {
			return err
		}
	}

	if c.IsSet("log-level") {
		a.cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("trace") {
		a.cfg.Trace = c.Bool("trace")
	}
	if c.IsSet("dump-env") {
		a.cfg.DumpEnv = c.Bool("dump-env")
	}
	if c.IsSet("input") {
		a.cfg.Input = c.String("input")
	}
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	lvl, _ := a.cfg.Level()
	capnslog.SetFormatter(capnslog.NewPrettyFormatter(a.stderr, false))
	capnslog.SetGlobalLogLevel(lvl)
	plog.Debugf("effective configuration: %s", repr.String(a.cfg))

	return nil
}

func fileArg(c *cli.Context) (string, error) {
	if c.NArg() != 1 {
		return "", fmt.Errorf("expected exactly one file argument, got %d", c.NArg())
	}
	return c.Args().First(), nil
}

func (a *app) run(c *cli.Context) error {
	path, err := fileArg(c)
	if err != nil {
		return err
	}

	nodes, err := reader.ReadProgram(path)
	if err != nil {
		return err
	}

	return a.execute(nodes)
}

func (a *app) exec(c *cli.Context) error {
	path, err := fileArg(c)
	if err != nil {
		return err
	}

	nodes, err := reader.ReadSource(path)
	if err != nil {
		return err
	}

	return a.execute(nodes)
}

func (a *app) execute(nodes []ast.Node) error {
	con, err := console.Open(a.cfg.Input, a.stdin, a.stdout)
	if err != nil {
		return err
	}
	defer con.Close()

	interp := interpreter.New(
		interpreter.WithOutput(a.stdout),
		interpreter.WithConsole(con),
	)
	err = interp.Run(nodes)

	if a.cfg.DumpEnv {
		env := interp.Environment()
		for _, name := range env.Keys() {
			v, _ := env.Lookup(name)
			fmt.Fprintf(a.stderr, "%s = %s\n", name, repr.String(v))
		}
	}

	return err
}

func (a *app) parse(c *cli.Context) error {
	path, err := fileArg(c)
	if err != nil {
		return err
	}

	nodes, err := reader.ReadSource(path)
	if err != nil {
		return err
	}

	var out []byte
	if c.Bool("yaml") {
		out, err = ast.MarshalYAML(nodes)
	} else {
		out, err = ast.MarshalJSON(nodes)
	}
	if err != nil {
		return tracerr.Wrap(err)
	}

	_, err = a.stdout.Write(out)
	return err
}

func (a *app) dump(c *cli.Context) error {
	path, err := fileArg(c)
	if err != nil {
		return err
	}

	nodes, err := reader.ReadProgram(path)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.stdout, repr.String(nodes, repr.Indent("  ")))
	return nil
}

func (a *app) writeConfig(c *cli.Context) error {
	path := c.String("config")
	if _, err := os.Stat(path); err == nil && !c.Bool("force") {
		return fmt.Errorf("%s already exists, use --force to overwrite it", path)
	}

	if err := config.Default().Write(path); err != nil {
		return err
	}

	fmt.Fprintf(a.stdout, "wrote %s\n", path)
	return nil
}

func main() {
	if err := newApp(os.Stdin, os.Stdout, os.Stderr).Run(os.Args); err != nil {
		os.Exit(1)
	}
}

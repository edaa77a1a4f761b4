package interpreter

import (
	"fmt"
	"io"
	"strings"

	"github.com/ztrue/tracerr"

	"github.com/pontaoski/nodewalk/errors"
	"github.com/pontaoski/nodewalk/runtime"
)

type builtin func(i *Interpreter, args []runtime.Value) (runtime.Value, error)

func addBuiltins() (ret map[string]builtin) {
	ret = make(map[string]builtin)

	funcs := []func() (string, builtin){
		addPrint,
		addInput,
		addFormat,
	}
	for _, fn := range funcs {
		k, v := fn()
		ret[k] = v
	}

	return
}

func addPrint() (string, builtin) {
	return "print", func(i *Interpreter, args []runtime.Value) (runtime.Value, error) {
		parts := make([]string, 0, len(args))
		for _, arg := range args {
			parts = append(parts, runtime.Stringify(arg))
		}

		if _, err := fmt.Fprintln(i.out, strings.Join(parts, " ")); err != nil {
			return nil, tracerr.Wrap(err)
		}

		return runtime.Void, nil
	}
}

func addInput() (string, builtin) {
	return "input", func(i *Interpreter, args []runtime.Value) (runtime.Value, error) {
		if len(args) > 1 {
			return nil, tracerr.Wrap(errors.InvalidArgument{
				Function: "input",
				Reason:   fmt.Sprintf("expected at most 1 argument, got %d", len(args)),
			})
		}

		var prompt string
		if len(args) == 1 {
			prompt = runtime.Stringify(args[0])
		}

		line, err := i.console.ReadLine(prompt)
		if err == io.EOF {
			return nil, tracerr.Wrap(errors.InvalidArgument{
				Function: "input",
				Reason:   "EOF when reading a line",
			})
		}
		if err != nil {
			return nil, tracerr.Wrap(err)
		}

		return runtime.String(line), nil
	}
}

func addFormat() (string, builtin) {
	return "Format", func(_ *Interpreter, args []runtime.Value) (runtime.Value, error) {
		return format(args)
	}
}

package interpreter

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/ztrue/tracerr"

	"github.com/pontaoski/nodewalk/errors"
	"github.com/pontaoski/nodewalk/runtime"
)

var placeholder = regexp.MustCompile(`\$(\d+)`)

// format substitutes $1, $2, ... in args[0] with args[1], args[2], ...
func format(args []runtime.Value) (runtime.Value, error) {
	if len(args) == 0 {
		return nil, tracerr.Wrap(errors.InvalidArgument{
			Function: "Format",
			Reason:   "missing template argument",
		})
	}

	tmpl, ok := args[0].(runtime.StringValue)
	if !ok {
		return nil, tracerr.Wrap(errors.InvalidArgument{
			Function: "Format",
			Reason:   fmt.Sprintf("template must be a str, not %s", runtime.KindName(args[0])),
		})
	}

	values := args[1:]
	var failed error
	out := placeholder.ReplaceAllStringFunc(tmpl.Val, func(match string) string {
		if failed != nil {
			return match
		}

		// Atoi saturates on overflow, which is out of range either way.
		idx, _ := strconv.Atoi(match[1:])
		if idx < 1 || idx > len(values) {
			failed = tracerr.Wrap(errors.FormatIndexOutOfRange{Index: idx, Count: len(values)})
			return match
		}

		return runtime.Stringify(values[idx-1])
	})
	if failed != nil {
		return nil, failed
	}

	return runtime.String(out), nil
}

// Package reader loads programs from disk, either as encoded node sequences
// or as surface syntax.
package reader

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/coreos/pkg/capnslog"
	"github.com/ztrue/tracerr"

	"github.com/pontaoski/nodewalk/ast"
	"github.com/pontaoski/nodewalk/parser"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/nodewalk", "reader")

// IsYAML reports whether path is decoded as YAML rather than JSON.
func IsYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// ReadProgram decodes the node sequence stored at path.
func ReadProgram(path string) ([]ast.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}

	var nodes []ast.Node
	if IsYAML(path) {
		plog.Debugf("decoding %s as YAML", path)
		nodes, err = ast.UnmarshalYAML(data)
	} else {
		plog.Debugf("decoding %s as JSON", path)
		nodes, err = ast.UnmarshalJSON(data)
	}
	if err != nil {
		return nil, tracerr.Wrap(err)
	}

	plog.Infof("loaded %d statement(s) from %s", len(nodes), path)
	return nodes, nil
}

// ReadSource parses the surface syntax stored at path.
func ReadSource(path string) ([]ast.Node, error) {
	handle, err := os.Open(path)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	defer handle.Close()

	nodes, err := parser.Parse(handle, path)
	if err != nil {
		return nil, err
	}

	plog.Infof("parsed %d statement(s) from %s", len(nodes), path)
	return nodes, nil
}

// Package example loads examples: an ontology, a Bayesian network and a query sharing a base name.
package example

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/born-reasoner/born/syntax"
)

// Extensions of the files of an example.
const (
	OntologyExtension = ".owl"
	NetworkExtension  = ".pl"
	QueryExtension    = ".query"
)

//go:embed examples
var bundled embed.FS

// Bundled is the examples shipped with the tool.
var Bundled = func() fs.FS {
	sub, err := fs.Sub(bundled, "examples")
	if err != nil {
		panic(err)
	}
	return sub
}()

// ErrMissingFile is wrapped by errors about an example without its network or query file.
var ErrMissingFile = errors.New("missing example file")

// MissingFileError is an error about an example without its network or query file.
type MissingFileError struct {
	Name string
	Err  error
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("missing example file %s: %v", e.Name, e.Err)
}

func (e *MissingFileError) Unwrap() []error {
	return []error{ErrMissingFile, e.Err}
}

// Example is an ontology, a Bayesian network and a query.
type Example struct {
	Name         string
	OntologyFile string
	NetworkFile  string
	QueryFile    string

	// Ontology, Network and Query are the contents of the files with every line terminated by a newline.
	Ontology string
	Network  string
	Query    string
}

// Load reads every example in the directory dir of fsys, sorted by name.
// Every ontology file makes an example.
func Load(fsys fs.FS, dir string) ([]Example, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}

	var ret []Example
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != OntologyExtension {
			continue
		}
		ex, err := Lookup(fsys, dir, strings.TrimSuffix(e.Name(), OntologyExtension))
		if err != nil {
			return nil, err
		}
		ret = append(ret, ex)
	}
	sort.Slice(ret, func(i, j int) bool {
		return ret[i].Name < ret[j].Name
	})
	return ret, nil
}

// Lookup reads the example name in the directory dir of fsys.
func Lookup(fsys fs.FS, dir, name string) (Example, error) {
	base := path.Join(dir, name)
	ex := Example{
		Name:         name,
		OntologyFile: base + OntologyExtension,
		NetworkFile:  base + NetworkExtension,
		QueryFile:    base + QueryExtension,
	}

	for _, f := range []struct {
		name string
		text *string
	}{
		{name: ex.OntologyFile, text: &ex.Ontology},
		{name: ex.NetworkFile, text: &ex.Network},
		{name: ex.QueryFile, text: &ex.Query},
	} {
		text, err := readText(fsys, f.name)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return Example{}, &MissingFileError{Name: f.name, Err: err}
			}
			return Example{}, err
		}
		*f.text = text
	}

	return ex, nil
}

func readText(fsys fs.FS, name string) (string, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var sb strings.Builder
	if err := syntax.ReadLines(f, func(line string, _ int) {
		_, _ = sb.WriteString(line)
		_ = sb.WriteByte('\n')
	}); err != nil {
		return "", fmt.Errorf("read %s: %w", name, err)
	}
	return sb.String(), nil
}

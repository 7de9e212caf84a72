package example

import (
	"errors"
	"io/fs"
	"os"
	"sort"
)

// OverlayFS is a sequence of fs.FS.
// If the requested file doesn't exist in the first fs.FS, it falls back to the next and so on.
type OverlayFS []fs.FS

func (o OverlayFS) Open(name string) (fs.File, error) {
	for _, e := range o {
		switch f, err := e.Open(name); {
		case err == nil:
			return f, nil
		case errors.Is(err, fs.ErrNotExist):
			continue
		default:
			return nil, err
		}
	}
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}

// ReadDir merges the entries of the directory name in every fs.FS.
// An entry of an earlier fs.FS hides the entry of the same name in a later one.
func (o OverlayFS) ReadDir(name string) ([]fs.DirEntry, error) {
	var (
		found   bool
		seen    = map[string]struct{}{}
		entries []fs.DirEntry
	)
	for _, e := range o {
		es, err := fs.ReadDir(e, name)
		switch {
		case err == nil:
			found = true
		case errors.Is(err, fs.ErrNotExist):
			continue
		default:
			return nil, err
		}
		for _, de := range es {
			if _, ok := seen[de.Name()]; ok {
				continue
			}
			seen[de.Name()] = struct{}{}
			entries = append(entries, de)
		}
	}
	if !found {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrNotExist}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})
	return entries, nil
}

// DirFS returns the files in the directory root on top of the bundled examples.
func DirFS(root string) fs.FS {
	return OverlayFS{os.DirFS(root), Bundled}
}

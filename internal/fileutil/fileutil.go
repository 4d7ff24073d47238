// Package fileutil holds file modes and the all-or-nothing writer used for
// generated artifacts.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/erraggy/oasbind/internal/pathutil"
)

// ReadableByAll is the file permission mode for generated source code
// files intended to be read by build tools and other users.
const ReadableByAll os.FileMode = 0o644

// DirMode is the permission mode for directories created for output.
const DirMode os.FileMode = 0o755

// File is one pending output.
type File struct {
	Path    string
	Content []byte
}

// rename is swapped in tests to simulate a failing filesystem.
var rename = os.Rename

// CommitFiles writes every file or none of them.
//
// Each file is first written to a temporary sibling in its target
// directory. Only when all temporaries are complete are they moved over
// their targets, each existing target being set aside first. If any move
// fails, the targets already replaced get their previous content back (or
// are removed when they did not exist) and every temporary is removed.
func CommitFiles(files []File) error {
	seen := make(map[string]bool, len(files))
	for _, f := range files {
		abs, err := pathutil.SanitizeOutputPath(f.Path)
		if err != nil {
			return fmt.Errorf("fileutil: %w", err)
		}
		if seen[abs] {
			return fmt.Errorf("fileutil: %s is targeted more than once", f.Path)
		}
		seen[abs] = true
	}

	temps := make([]string, 0, len(files))
	cleanup := func() {
		for _, tmp := range temps {
			_ = os.Remove(tmp)
		}
	}

	for _, f := range files {
		dir := filepath.Dir(f.Path)
		if err := os.MkdirAll(dir, DirMode); err != nil {
			cleanup()
			return fmt.Errorf("fileutil: creating %s: %w", dir, err)
		}
		tmp, err := writeTemp(dir, filepath.Base(f.Path), f.Content)
		if tmp != "" {
			temps = append(temps, tmp)
		}
		if err != nil {
			cleanup()
			return fmt.Errorf("fileutil: writing %s: %w", f.Path, err)
		}
	}

	replaced := make([]replacement, 0, len(files))
	for i, f := range files {
		r, err := replace(temps[i], f.Path)
		if err != nil {
			for j := len(replaced) - 1; j >= 0; j-- {
				replaced[j].undo()
			}
			cleanup()
			return fmt.Errorf("fileutil: replacing %s: %w", f.Path, err)
		}
		replaced = append(replaced, r)
	}
	for _, r := range replaced {
		r.discard()
	}
	return nil
}

// replacement records a target that was moved into place. saved is the
// previous content set aside, or "" when the target did not exist.
type replacement struct {
	target string
	saved  string
}

func (r replacement) undo() {
	if r.saved == "" {
		_ = os.Remove(r.target)
		return
	}
	_ = rename(r.saved, r.target)
}

func (r replacement) discard() {
	if r.saved != "" {
		_ = os.Remove(r.saved)
	}
}

// replace moves tmp over target, keeping any existing target aside. On
// failure target is left as it was.
func replace(tmp, target string) (replacement, error) {
	r := replacement{target: target}
	if _, err := os.Lstat(target); err == nil {
		saved, err := reserve(filepath.Dir(target), "."+filepath.Base(target)+".*.bak")
		if err != nil {
			return r, err
		}
		if err := rename(target, saved); err != nil {
			_ = os.Remove(saved)
			return r, err
		}
		r.saved = saved
	}
	if err := rename(tmp, target); err != nil {
		r.undo()
		return r, err
	}
	return r, nil
}

// reserve creates an empty file matching pattern in dir and returns its name.
func reserve(dir, pattern string) (string, error) {
	f, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return "", err
	}
	name := f.Name()
	return name, f.Close()
}

func writeTemp(dir, base string, content []byte) (string, error) {
	tmp, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return "", err
	}
	name := tmp.Name()
	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		return name, err
	}
	if err := tmp.Chmod(ReadableByAll); err != nil {
		_ = tmp.Close()
		return name, err
	}
	return name, tmp.Close()
}

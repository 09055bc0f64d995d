package discover

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Listener receives the outcome of a collection pass. CollectionFinished is
// called exactly once per Run, synchronously, after every candidate file has
// been visited. items holds the discovered test functions in discovery
// order; containers are reachable through each item's parent chain. The
// listener is notified even when items is empty or some files failed.
type Listener interface {
	CollectionFinished(items []*Item)
}

// Run collects pytest-convention tests under path, which may be a single
// file or a directory, and reports the outcome as a pytest exit code.
// Directories are walked in lexical order, skipping hidden entries and
// __pycache__; candidate files match test_*.py or *_test.py. A file that
// cannot be read or parsed interrupts the run but does not stop it: the
// remaining files are still collected and the listener still notified.
func Run(ctx context.Context, path string, listener Listener) ExitCode {
	info, err := os.Stat(path)
	if err != nil {
		listener.CollectionFinished(nil)
		return ExitUsageError
	}

	var files []string
	root := path
	if info.IsDir() {
		files, err = listTestFiles(path)
		if err != nil {
			listener.CollectionFinished(nil)
			return ExitInterrupted
		}
	} else {
		files = []string{path}
		root = filepath.Dir(path)
	}

	session := NewSession()
	var items []*Item
	interrupted := false
	for _, file := range files {
		src, err := os.ReadFile(file)
		if err != nil {
			interrupted = true
			continue
		}
		leaves, err := parseModule(ctx, src, moduleName(root, file), session)
		if err != nil {
			interrupted = true
			continue
		}
		items = append(items, leaves...)
	}

	listener.CollectionFinished(items)

	switch {
	case interrupted:
		return ExitInterrupted
	case len(items) == 0:
		return ExitNoTestsCollected
	default:
		return ExitOK
	}
}

// listTestFiles walks root and returns the candidate test files in lexical
// order.
func listTestFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if path != root && (strings.HasPrefix(name, ".") || name == "__pycache__") {
				return filepath.SkipDir
			}
			return nil
		}
		if isTestFile(name) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// isTestFile reports whether name matches pytest's default file conventions.
func isTestFile(name string) bool {
	if !strings.HasSuffix(name, ".py") {
		return false
	}
	return strings.HasPrefix(name, "test_") || strings.HasSuffix(name, "_test.py")
}

// moduleName is the module item's display name: the file's slash-separated
// path relative to the collection root. Keeping the path, rather than the
// basename, keeps same-named files in different directories distinct.
func moduleName(root, file string) string {
	rel, err := filepath.Rel(root, file)
	if err != nil {
		return filepath.Base(file)
	}
	return filepath.ToSlash(rel)
}

package lint

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"github.com/Sumatoshi-tech/casefang/pkg/sourcelang"
)

// ErrInvalidExclude is returned for an exclude pattern that does not compile.
var ErrInvalidExclude = errors.New("invalid exclude pattern")

// candidate is a file selected for checking.
type candidate struct {
	path string
	size int64
}

// excludeSet matches slash-separated relative paths against gobwas globs.
type excludeSet []glob.Glob

func compileExcludes(patterns []string) (excludeSet, error) {
	set := make(excludeSet, 0, len(patterns))

	for _, pattern := range patterns {
		compiled, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrInvalidExclude, pattern, err)
		}

		set = append(set, compiled)
	}

	return set, nil
}

func (s excludeSet) match(rel string) bool {
	base := path.Base(rel)

	for _, g := range s {
		if g.Match(rel) || g.Match(base) {
			return true
		}
	}

	return false
}

// walker collects candidate files under the given roots.
type walker struct {
	excludes    excludeSet
	maxFileSize int64
	oversized   []string
}

// collect expands paths into candidate files. Explicit file arguments bypass
// the vendor and exclude filters but not the size limit.
func (w *walker) collect(paths []string) ([]candidate, error) {
	var files []candidate

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", root, err)
		}

		if !info.IsDir() {
			if w.accept(root, info.Size()) {
				files = append(files, candidate{path: root, size: info.Size()})
			}

			continue
		}

		err = filepath.WalkDir(root, func(walkPath string, entry fs.DirEntry, walkErr error) error {
			found, skipErr := w.visit(root, walkPath, entry, walkErr)
			if found != nil {
				files = append(files, *found)
			}

			return skipErr
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
	}

	return files, nil
}

func (w *walker) visit(root, walkPath string, entry fs.DirEntry, walkErr error) (*candidate, error) {
	if walkErr != nil {
		if errors.Is(walkErr, fs.ErrPermission) || errors.Is(walkErr, fs.ErrNotExist) {
			if entry != nil && entry.IsDir() {
				return nil, filepath.SkipDir
			}

			return nil, nil
		}

		return nil, walkErr
	}

	rel, err := filepath.Rel(root, walkPath)
	if err != nil {
		return nil, fmt.Errorf("relative path of %s: %w", walkPath, err)
	}

	rel = filepath.ToSlash(rel)

	if entry.IsDir() {
		if rel == "." {
			return nil, nil
		}

		if skipDir(entry.Name()) || sourcelang.IsVendor(rel+"/") || w.excludes.match(rel) {
			return nil, filepath.SkipDir
		}

		return nil, nil
	}

	if !entry.Type().IsRegular() || sourcelang.IsVendor(rel) || w.excludes.match(rel) {
		return nil, nil
	}

	if !maybeSupported(walkPath) {
		return nil, nil
	}

	info, err := entry.Info()
	if err != nil {
		return nil, nil //nolint:nilerr // vanished between readdir and stat
	}

	if !w.accept(walkPath, info.Size()) {
		return nil, nil
	}

	return &candidate{path: walkPath, size: info.Size()}, nil
}

func (w *walker) accept(name string, size int64) bool {
	if w.maxFileSize > 0 && size > w.maxFileSize {
		w.oversized = append(w.oversized, name)

		return false
	}

	return true
}

func skipDir(name string) bool {
	return name == ".git" || name == ".hg" || name == ".svn"
}

// maybeSupported admits files with a supported extension and extensionless
// files, which may be shebang scripts resolved from their content later.
func maybeSupported(name string) bool {
	if filepath.Ext(name) == "" {
		return !strings.HasPrefix(filepath.Base(name), ".")
	}

	return sourcelang.Detect(name, nil).Supported()
}

package crudjen

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"sync"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"
)

// FS is an in-memory set of generated files that supports batch-writing its
// contents to the real filesystem.
//
// Files may not be removed once added. If a path conflict occurs when adding a
// file, an error is returned.
//
// Writing is a destructive overwrite: existing files at the target paths are
// replaced, never merged. Writers targeting the same directory within one
// process are serialized, and a failed write restores the files of that
// directory it already replaced.
type FS struct {
	mu    sync.Mutex
	files map[string]File
}

// NewFS creates a new FS, ready for use.
func NewFS() *FS {
	return &FS{
		files: make(map[string]File),
	}
}

// Add adds one or more files to the FS. An error is returned if any of the
// provided files is invalid or would conflict with a file already in the FS,
// in which case none of them are added.
func (fs *FS) Add(flist ...File) error {
	if err := Files(flist).Validate(); err != nil {
		return err
	}
	return fs.addValidated(flist...)
}

func (fs *FS) addValidated(flist ...File) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	var result *multierror.Error
	for _, f := range flist {
		if prior, has := fs.files[f.RelativePath]; has {
			result = multierror.Append(result, fmt.Errorf("cannot create %s for %s, already created by %s", f.RelativePath, jennystack(f.From), jennystack(prior.From)))
		}
	}
	if result.ErrorOrNil() != nil {
		return result
	}

	for _, f := range flist {
		fs.files[f.RelativePath] = f
	}
	return nil
}

// Len returns the number of files in the FS.
func (fs *FS) Len() int {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return len(fs.files)
}

// AsFiles returns the contents of the FS as a Files, sorted by path.
func (fs *FS) AsFiles() Files {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fl := make(Files, 0, len(fs.files))
	for _, f := range fs.files {
		fl = append(fl, f)
	}
	sort.Slice(fl, func(i, j int) bool {
		return fl[i].RelativePath < fl[j].RelativePath
	})
	return fl
}

// Existing returns the paths, joined with prefix, of files in the FS that
// already exist on disk.
func (fs *FS) Existing(prefix string) ([]string, error) {
	var found []string
	for _, f := range fs.AsFiles() {
		p := filepath.Join(prefix, filepath.FromSlash(f.RelativePath))
		_, err := os.Stat(p)
		switch {
		case err == nil:
			found = append(found, p)
		case !errors.Is(err, os.ErrNotExist):
			return nil, fmt.Errorf("%s: could not stat target: %w", p, err)
		}
	}
	return found, nil
}

// Write writes all of the files to their indicated paths.
//
// If the provided prefix path is non-empty, it will be prepended to all file
// entries for writing. prefix may be an absolute path.
//
// Files are grouped by directory. Every file of a directory is first staged to
// a temporary sibling and only renamed into place once the whole directory
// has been staged; a staging failure removes the temporaries and leaves the
// directory untouched. If a rename fails, the files already renamed in that
// directory are restored to their prior contents, or removed if they did not
// exist before.
func (fs *FS) Write(ctx context.Context, prefix string) error {
	byDir := make(map[string]Files)
	for _, f := range fs.AsFiles() {
		dir := path.Dir(f.RelativePath)
		byDir[dir] = append(byDir[dir], f)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(12)
	for dir, fl := range byDir {
		target := filepath.Join(prefix, filepath.FromSlash(dir))
		files := fl
		g.Go(func() error {
			return writeDir(gctx, target, prefix, files)
		})
	}
	return g.Wait()
}

// rename is swapped in tests to fail part way through a directory.
var rename = os.Rename

type stagedFile struct {
	tmp, final string
	prior      []byte
	existed    bool
}

// restore puts back what was at s.final before it was replaced.
func (s stagedFile) restore() error {
	if !s.existed {
		return os.Remove(s.final)
	}
	return os.WriteFile(s.final, s.prior, 0o644)
}

func writeDir(ctx context.Context, dir, prefix string, fl Files) error {
	unlock := lockDir(dir)
	defer unlock()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%s: failed to ensure directory exists: %w", dir, err)
	}

	staged := make([]stagedFile, 0, len(fl))
	discard := func() {
		for _, s := range staged {
			_ = os.Remove(s.tmp)
		}
	}

	for _, f := range fl {
		final := filepath.Join(prefix, filepath.FromSlash(f.RelativePath))
		tmp, err := stage(dir, filepath.Base(final), f.Data)
		if err != nil {
			discard()
			return fmt.Errorf("%s: error while staging file: %w", final, err)
		}
		sf := stagedFile{tmp: tmp, final: final}
		prior, err := os.ReadFile(final)
		switch {
		case err == nil:
			sf.prior, sf.existed = prior, true
		case !errors.Is(err, os.ErrNotExist):
			_ = os.Remove(tmp)
			discard()
			return fmt.Errorf("%s: could not read target: %w", final, err)
		}
		staged = append(staged, sf)
	}

	if err := ctx.Err(); err != nil {
		discard()
		return err
	}

	for i, s := range staged {
		if err := rename(s.tmp, s.final); err != nil {
			result := multierror.Append(nil, fmt.Errorf("%s: error while writing file: %w", s.final, err))
			for _, rest := range staged[i:] {
				_ = os.Remove(rest.tmp)
			}
			for _, done := range staged[:i] {
				if rerr := done.restore(); rerr != nil {
					result = multierror.Append(result, fmt.Errorf("%s: could not restore prior contents: %w", done.final, rerr))
				}
			}
			return result.ErrorOrNil()
		}
	}
	return nil
}

func stage(dir, base string, data []byte) (string, error) {
	tf, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return "", err
	}
	name := tf.Name()
	if _, err := tf.Write(data); err != nil {
		tf.Close()
		os.Remove(name)
		return "", err
	}
	if err := tf.Close(); err != nil {
		os.Remove(name)
		return "", err
	}
	if err := os.Chmod(name, 0o644); err != nil {
		os.Remove(name)
		return "", err
	}
	return name, nil
}

// dirLocks serializes writers per target directory within the process.
var dirLocks sync.Map

func lockDir(dir string) func() {
	key := dir
	if abs, err := filepath.Abs(dir); err == nil {
		key = abs
	}
	v, _ := dirLocks.LoadOrStore(key, new(sync.Mutex))
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

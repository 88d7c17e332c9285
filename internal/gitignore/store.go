// Package gitignore fetches and serves .gitignore templates from a local
// cache of the github/gitignore repository.
package gitignore

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/huanghao/mybin/internal/lib/fsext"
)

// DefaultRemote is the upstream template repository.
const DefaultRemote = "https://github.com/github/gitignore.git"

const templateSuffix = ".gitignore"

// Store is a local clone of the template repository, refreshed on demand.
type Store struct {
	FS     afero.Fs
	Git    Runner
	Remote string
	Dir    string
}

// Ensure clones the template repository if the cache directory is missing.
func (s *Store) Ensure(ctx context.Context) error {
	if fsext.IsDir(s.FS, s.Dir) {
		return nil
	}
	_, err := s.Git.Run(ctx, "", "clone", s.Remote, s.Dir)
	return err
}

// Update pulls the latest templates, cloning first when needed.
func (s *Store) Update(ctx context.Context) error {
	if !fsext.IsDir(s.FS, s.Dir) {
		return s.Ensure(ctx)
	}
	_, err := s.Git.Run(ctx, s.Dir, "pull")
	return err
}

// List returns every available template name, the `Global/` ones included,
// sorted lexicographically.
func (s *Store) List() ([]string, error) {
	names, err := s.listDir("")
	if err != nil {
		return nil, err
	}
	global, err := s.listDir("Global")
	if err == nil {
		names = append(names, global...)
	}
	sort.Strings(names)
	return names, nil
}

func (s *Store) listDir(subdir string) ([]string, error) {
	entries, err := afero.ReadDir(s.FS, path.Join(s.Dir, subdir))
	if err != nil {
		return nil, err
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), templateSuffix) {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), templateSuffix)
		names = append(names, path.Join(subdir, name))
	}
	return names, nil
}

// Template returns the contents of one template, e.g. "Python" or
// "Global/macOS".
func (s *Store) Template(name string) (string, error) {
	p := path.Join(s.Dir, name+templateSuffix)
	if !fsext.Exists(s.FS, p) {
		return "", fmt.Errorf("unknown language %s", name)
	}
	data, err := afero.ReadFile(s.FS, p)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// LastUpdate returns the commit time of the newest commit in the template
// cache.
func (s *Store) LastUpdate(ctx context.Context) (time.Time, error) {
	out, err := s.Git.Run(ctx, s.Dir, "log", "-1", "--format=%cI")
	if err != nil {
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339, strings.TrimSpace(out))
}

// IsWorkTree reports whether dir is inside a git work tree.
func IsWorkTree(ctx context.Context, git Runner, dir string) bool {
	_, err := git.Run(ctx, dir, "rev-parse", "--is-inside-work-tree")
	return err == nil
}

// InitRepo runs `git init` in dir.
func InitRepo(ctx context.Context, git Runner, dir string) error {
	_, err := git.Run(ctx, dir, "init")
	return err
}

package pyimports

import (
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/huanghao/mybin/internal/lib/fsext"
)

// sitePackagesGlobs are the virtualenv layouts probed for installed
// third-party packages, relative to the project root. Asking a host
// interpreter would need Python on PATH; scanning the project's own
// environments is the filesystem-only equivalent.
var sitePackagesGlobs = []string{ //nolint:gochecknoglobals
	"venv*/lib/python*/site-packages",
	".venv/lib/python*/site-packages",
	"env/lib/python*/site-packages",
	"venv*/Lib/site-packages",
	".venv/Lib/site-packages",
}

type classifier struct {
	fsys         afero.Fs
	projectRoot  string
	sitePackages []string
}

func newClassifier(fsys afero.Fs, projectRoot string) *classifier {
	c := &classifier{fsys: fsys, projectRoot: projectRoot}
	for _, glob := range sitePackagesGlobs {
		matches, err := afero.Glob(fsys, filepath.Join(projectRoot, glob))
		if err != nil {
			continue
		}
		c.sitePackages = append(c.sitePackages, matches...)
	}
	return c
}

func (c *classifier) classify(module string) Category {
	top, _, _ := strings.Cut(module, ".")
	switch {
	case pythonStdlib[top]:
		return CategoryStdlib
	case c.isInstalled(top):
		return CategoryThirdParty
	case c.isProjectModule(module):
		return CategoryLocal
	default:
		return CategoryUnknown
	}
}

func (c *classifier) isInstalled(top string) bool {
	for _, dir := range c.sitePackages {
		if fsext.Exists(c.fsys, filepath.Join(dir, top)) ||
			fsext.Exists(c.fsys, filepath.Join(dir, top+".py")) {
			return true
		}
	}
	return false
}

func (c *classifier) isProjectModule(module string) bool {
	parts := strings.Split(module, ".")
	path := filepath.Join(append([]string{c.projectRoot}, parts...)...)
	return fsext.Exists(c.fsys, path+".py") || fsext.IsDir(c.fsys, path)
}

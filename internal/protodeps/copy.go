package protodeps

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/huanghao/mybin/internal/lib/fsext"
)

// CopyAll materializes each relative path from baseDir at the same relative
// path under targetDir, creating intermediate directories as needed and
// preserving file mode and modification time. Files are processed in the
// given order and the first failure aborts the remaining copies: a dangling
// reference that survived the closure means the descriptor set is
// inconsistent with the filesystem, which is a hard error. Already copied
// files are not rolled back.
func CopyAll(fs afero.Fs, relPaths []string, baseDir, targetDir string) error {
	for _, rel := range relPaths {
		src := filepath.Join(baseDir, filepath.FromSlash(rel))
		dst := filepath.Join(targetDir, filepath.FromSlash(rel))
		if err := fsext.CopyFile(fs, src, dst); err != nil {
			return fmt.Errorf("could not copy %s: %w", rel, err)
		}
	}
	return nil
}

package clash

import (
	"github.com/spf13/afero"

	"github.com/huanghao/mybin/internal/lib/fsext"
)

// Backup copies path to path+".bak", preserving mode and mtime, and returns
// the backup path. An existing backup is overwritten.
func Backup(fs afero.Fs, path string) (string, error) {
	bak := path + ".bak"
	if err := fsext.CopyFile(fs, path, bak); err != nil {
		return "", err
	}
	return bak, nil
}

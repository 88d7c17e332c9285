package fsext

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyFile(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/src/a.txt", []byte("hello"), 0o600))
	mtime := time.Date(2023, 4, 5, 6, 7, 8, 0, time.UTC)
	require.NoError(t, fs.Chtimes("/src/a.txt", mtime, mtime))

	require.NoError(t, CopyFile(fs, "/src/a.txt", "/dst/deep/nested/a.txt"))

	data, err := afero.ReadFile(fs, "/dst/deep/nested/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	info, err := fs.Stat("/dst/deep/nested/a.txt")
	require.NoError(t, err)
	assert.Equal(t, mtime, info.ModTime())
}

func TestCopyFileMissingSource(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	assert.Error(t, CopyFile(fs, "/nope.txt", "/dst/nope.txt"))
}

func TestCopyFileOverwrite(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/src.txt", []byte("new"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/dst.txt", []byte("old old old"), 0o644))

	require.NoError(t, CopyFile(fs, "/src.txt", "/dst.txt"))

	data, err := afero.ReadFile(fs, "/dst.txt")
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

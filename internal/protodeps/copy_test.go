package protodeps

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyAll(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/base/a.proto", []byte("syntax = \"proto3\";"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/base/common/b.proto", []byte("// b"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/base/unrelated.proto", []byte("// nope"), 0o644))

	err := CopyAll(fs, []string{"a.proto", "common/b.proto"}, "/base", "/out")
	require.NoError(t, err)

	data, err := afero.ReadFile(fs, "/out/a.proto")
	require.NoError(t, err)
	assert.Equal(t, "syntax = \"proto3\";", string(data))

	data, err = afero.ReadFile(fs, "/out/common/b.proto")
	require.NoError(t, err)
	assert.Equal(t, "// b", string(data))

	exists, err := afero.Exists(fs, "/out/unrelated.proto")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCopyAllIdempotent(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/base/a.proto", []byte("// a"), 0o644))

	require.NoError(t, CopyAll(fs, []string{"a.proto"}, "/base", "/out"))
	first, err := afero.ReadFile(fs, "/out/a.proto")
	require.NoError(t, err)

	require.NoError(t, CopyAll(fs, []string{"a.proto"}, "/base", "/out"))
	second, err := afero.ReadFile(fs, "/out/a.proto")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCopyAllMissingSourceAborts(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/base/a.proto", []byte("// a"), 0o644))

	err := CopyAll(fs, []string{"a.proto", "missing.proto", "z.proto"}, "/base", "/out")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.proto")

	// a.proto sorts before the missing file, so it was already copied and
	// stays in place, while nothing after the failure was attempted.
	exists, err := afero.Exists(fs, "/out/a.proto")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = afero.Exists(fs, "/out/z.proto")
	require.NoError(t, err)
	assert.False(t, exists)
}

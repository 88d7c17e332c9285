package gitignore

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	calls  []string
	output map[string]string
	err    error
}

func (r *fakeRunner) Run(_ context.Context, dir string, args ...string) (string, error) {
	call := strings.Join(args, " ")
	r.calls = append(r.calls, call)
	if r.err != nil {
		return "", r.err
	}
	return r.output[call], nil
}

func newTestStore(t *testing.T, git Runner) *Store {
	t.Helper()
	fs := afero.NewMemMapFs()
	return &Store{FS: fs, Git: git, Remote: DefaultRemote, Dir: "/cache/gitignore"}
}

func TestStoreEnsureClonesOnce(t *testing.T) {
	t.Parallel()

	git := &fakeRunner{}
	store := newTestStore(t, git)

	require.NoError(t, store.Ensure(context.Background()))
	assert.Equal(t, []string{"clone " + DefaultRemote + " /cache/gitignore"}, git.calls)

	// a present cache dir means no further git calls
	require.NoError(t, store.FS.MkdirAll(store.Dir, 0o755))
	require.NoError(t, store.Ensure(context.Background()))
	assert.Len(t, git.calls, 1)
}

func TestStoreUpdatePulls(t *testing.T) {
	t.Parallel()

	git := &fakeRunner{}
	store := newTestStore(t, git)
	require.NoError(t, store.FS.MkdirAll(store.Dir, 0o755))

	require.NoError(t, store.Update(context.Background()))
	assert.Equal(t, []string{"pull"}, git.calls)
}

func TestStoreList(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, &fakeRunner{})
	require.NoError(t, afero.WriteFile(store.FS, store.Dir+"/Python.gitignore", []byte("*.pyc\n"), 0o644))
	require.NoError(t, afero.WriteFile(store.FS, store.Dir+"/Go.gitignore", []byte("*.test\n"), 0o644))
	require.NoError(t, afero.WriteFile(store.FS, store.Dir+"/README.md", []byte("docs"), 0o644))
	require.NoError(t, afero.WriteFile(store.FS, store.Dir+"/Global/macOS.gitignore", []byte(".DS_Store\n"), 0o644))

	names, err := store.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"Global/macOS", "Go", "Python"}, names)
}

func TestStoreTemplate(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, &fakeRunner{})
	require.NoError(t, afero.WriteFile(store.FS, store.Dir+"/Python.gitignore", []byte("*.pyc\n"), 0o644))

	contents, err := store.Template("Python")
	require.NoError(t, err)
	assert.Equal(t, "*.pyc\n", contents)

	_, err = store.Template("Klingon")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown language Klingon")
}

func TestStoreLastUpdate(t *testing.T) {
	t.Parallel()

	git := &fakeRunner{output: map[string]string{
		"log -1 --format=%cI": "2024-03-01T12:30:00+02:00\n",
	}}
	store := newTestStore(t, git)

	ts, err := store.LastUpdate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 12, 30, 0, 0, time.FixedZone("", 2*3600)).Unix(), ts.Unix())
}

func TestIsWorkTree(t *testing.T) {
	t.Parallel()

	assert.True(t, IsWorkTree(context.Background(), &fakeRunner{}, "/repo"))
	assert.False(t, IsWorkTree(context.Background(), &fakeRunner{err: errors.New("exit status 128")}, "/repo"))
}

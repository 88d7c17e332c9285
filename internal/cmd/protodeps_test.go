package cmd

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/huanghao/mybin/cmd/state"
	"github.com/huanghao/mybin/internal/cmd/tests"
	"github.com/huanghao/mybin/internal/lib/fsext"
	"github.com/huanghao/mybin/internal/protodeps"
)

type stubExtractor struct {
	fds *descriptorpb.FileDescriptorSet
	err error
}

func (s stubExtractor) Extract(_ context.Context, _, _ string) (*descriptorpb.FileDescriptorSet, error) {
	return s.fds, s.err
}

func swapProtoExtractor(t *testing.T, extractor protodeps.Extractor) {
	t.Helper()
	old := newProtoExtractor
	newProtoExtractor = func(_ *state.GlobalState) protodeps.Extractor { return extractor }
	t.Cleanup(func() { newProtoExtractor = old })
}

func TestProtodepsEndToEnd(t *testing.T) {
	ts := tests.NewGlobalTestState(t)

	base := filepath.Join(ts.Cwd, "protos")
	for _, name := range []string{"a.proto", "b.proto", "c.proto"} {
		require.NoError(t, afero.WriteFile(ts.FS, filepath.Join(base, name),
			[]byte("// "+name), 0o644))
	}

	// what protoc would emit for a.proto with --include_imports, plus an
	// unrelated file that must not end up in the target
	swapProtoExtractor(t, stubExtractor{fds: &descriptorpb.FileDescriptorSet{
		File: []*descriptorpb.FileDescriptorProto{
			{Name: proto.String("a.proto"), Dependency: []string{"b.proto"}},
			{Name: proto.String("b.proto")},
			{Name: proto.String("c.proto")},
		},
	}})

	target := filepath.Join(ts.Cwd, "out")
	ts.CmdArgs = []string{"mybin", "protodeps", filepath.Join(base, "a.proto"), base, target}
	ExecuteWithGlobalState(ts.GlobalState)

	assert.Equal(t, "a.proto\nb.proto\n", ts.Stdout.String())
	assert.True(t, fsext.Exists(ts.FS, filepath.Join(target, "a.proto")))
	assert.True(t, fsext.Exists(ts.FS, filepath.Join(target, "b.proto")))
	assert.False(t, fsext.Exists(ts.FS, filepath.Join(target, "c.proto")))

	logs := ts.LoggerHook.Drain()
	require.Len(t, logs, 1)
	assert.Contains(t, logs[0].Message, "Copied 2 proto files")
}

func TestProtodepsQuiet(t *testing.T) {
	ts := tests.NewGlobalTestState(t)

	base := filepath.Join(ts.Cwd, "protos")
	require.NoError(t, afero.WriteFile(ts.FS, filepath.Join(base, "a.proto"), []byte("// a"), 0o644))

	swapProtoExtractor(t, stubExtractor{fds: &descriptorpb.FileDescriptorSet{
		File: []*descriptorpb.FileDescriptorProto{
			{Name: proto.String("a.proto")},
		},
	}})

	ts.CmdArgs = []string{
		"mybin", "--quiet", "protodeps",
		filepath.Join(base, "a.proto"), base, filepath.Join(ts.Cwd, "out"),
	}
	ExecuteWithGlobalState(ts.GlobalState)

	assert.Equal(t, "a.proto\n", ts.Stdout.String())
	assert.Empty(t, ts.LoggerHook.Drain())
}

func TestProtodepsCompilerNotFound(t *testing.T) {
	ts := tests.NewGlobalTestState(t)

	base := filepath.Join(ts.Cwd, "protos")
	require.NoError(t, afero.WriteFile(ts.FS, filepath.Join(base, "a.proto"), []byte("// a"), 0o644))

	swapProtoExtractor(t, stubExtractor{err: protodeps.ErrCompilerNotFound})

	ts.CmdArgs = []string{"mybin", "protodeps", filepath.Join(base, "a.proto"), base, filepath.Join(ts.Cwd, "out")}
	ts.ExpectedExitCode = 2
	ExecuteWithGlobalState(ts.GlobalState)

	logs := ts.LoggerHook.Drain()
	require.Len(t, logs, 1)
	assert.Contains(t, logs[0].Message, "protoc executable not found")
	assert.Contains(t, logs[0].Data["hint"], "install the protocol buffer compiler")
}

func TestProtodepsCompilerFailure(t *testing.T) {
	ts := tests.NewGlobalTestState(t)

	base := filepath.Join(ts.Cwd, "protos")
	require.NoError(t, afero.WriteFile(ts.FS, filepath.Join(base, "a.proto"), []byte("broken"), 0o644))

	swapProtoExtractor(t, stubExtractor{err: &protodeps.CompilerError{
		Stderr: "a.proto:1:1: Expected top-level statement.\n",
	}})

	ts.CmdArgs = []string{"mybin", "protodeps", filepath.Join(base, "a.proto"), base, filepath.Join(ts.Cwd, "out")}
	ts.ExpectedExitCode = 2
	ExecuteWithGlobalState(ts.GlobalState)

	logs := ts.LoggerHook.Drain()
	require.Len(t, logs, 1)
	assert.Contains(t, logs[0].Message, "Expected top-level statement")
}

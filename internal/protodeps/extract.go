package protodeps

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"
)

// DefaultCompiler is the protoc executable looked up on PATH when no
// explicit compiler path is configured.
const DefaultCompiler = "protoc"

// ErrCompilerNotFound is returned when the protoc executable cannot be
// located.
var ErrCompilerNotFound = errors.New("protoc executable not found")

// CompilerError is returned when protoc itself exits with an error; Stderr
// carries the compiler's diagnostic output verbatim.
type CompilerError struct {
	Err    error
	Stderr string
}

func (e *CompilerError) Error() string {
	return "protoc failed:\n" + strings.TrimRight(e.Stderr, "\n")
}

func (e *CompilerError) Unwrap() error { return e.Err }

// An Extractor produces the descriptor set for one entry file, including
// all of its transitive imports, rooted at a base directory. Extraction is
// the only environment-dependent stage of the pipeline, so it is kept
// behind an interface and everything downstream can be exercised with
// synthetic descriptor sets.
type Extractor interface {
	Extract(ctx context.Context, baseDir, entryRelPath string) (*descriptorpb.FileDescriptorSet, error)
}

// CompilerExtractor runs the protocol buffer compiler as a subprocess.
type CompilerExtractor struct {
	// Compiler is the protoc executable name or path, DefaultCompiler when
	// empty.
	Compiler string
	// LookPath is exec.LookPath unless overridden in tests.
	LookPath func(file string) (string, error)
}

// Extract invokes protoc with the proto search path set to baseDir,
// requesting imported files in the output, and parses the resulting
// descriptor set. The temporary output file is removed regardless of the
// outcome; removal failures are ignored.
func (e *CompilerExtractor) Extract(
	ctx context.Context, baseDir, entryRelPath string,
) (*descriptorpb.FileDescriptorSet, error) {
	compiler := e.Compiler
	if compiler == "" {
		compiler = DefaultCompiler
	}
	lookPath := e.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	compilerPath, err := lookPath(compiler)
	if err != nil {
		return nil, fmt.Errorf("%w (looked for %q)", ErrCompilerNotFound, compiler)
	}

	tmp, err := os.CreateTemp("", "protodeps-*.pb")
	if err != nil {
		return nil, err
	}
	descPath := tmp.Name()
	if err := tmp.Close(); err != nil {
		return nil, err
	}
	defer func() { _ = os.Remove(descPath) }() // best-effort cleanup

	var stderr strings.Builder
	cmd := exec.CommandContext(ctx, compilerPath,
		"--proto_path="+baseDir,
		"--descriptor_set_out="+descPath,
		"--include_imports",
		entryRelPath,
	)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, &CompilerError{Err: err, Stderr: stderr.String()}
	}

	raw, err := os.ReadFile(descPath)
	if err != nil {
		return nil, err
	}
	fds := &descriptorpb.FileDescriptorSet{}
	if err := proto.Unmarshal(raw, fds); err != nil {
		return nil, fmt.Errorf("could not parse the descriptor set emitted by protoc: %w", err)
	}
	return fds, nil
}

var _ Extractor = &CompilerExtractor{}

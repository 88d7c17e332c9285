// Package protodeps extracts the minimal transitive dependency set of a
// protobuf entry file and materializes it under a target directory.
//
// The pipeline has three strictly sequential stages: an external protoc
// invocation that emits a serialized FileDescriptorSet for the entry and
// everything it imports, a closure computation over the descriptor
// dependency graph, and a selective copy of exactly the files in the
// closure. The closure is re-derived from the dependency edges instead of
// trusting --include_imports to emit exactly the closure, so extra files
// from a batched compilation are silently excluded.
package protodeps

import (
	"context"

	"github.com/spf13/afero"
)

// Collect runs the full pipeline: extract the descriptor set for the entry
// file, compute its import closure and copy every needed file from baseDir
// to the same relative path under targetDir. It returns the sorted relative
// paths that were copied.
func Collect(
	ctx context.Context, fs afero.Fs, extractor Extractor, baseDir, entryRelPath, targetDir string,
) ([]string, error) {
	fds, err := extractor.Extract(ctx, baseDir, entryRelPath)
	if err != nil {
		return nil, err
	}

	needed := Closure(fds, entryRelPath)
	if err := CopyAll(fs, needed, baseDir, targetDir); err != nil {
		return nil, err
	}
	return needed, nil
}

package protodeps

import (
	"sort"

	"google.golang.org/protobuf/types/descriptorpb"
)

// Closure computes the set of file names transitively required by the entry
// over the descriptor dependency edges, entry included, sorted
// lexicographically.
//
// Names are deduplicated when they are popped, not when they are pushed,
// which makes the traversal terminate on dependency cycles and diamond
// imports. A name referenced but absent from the set (a dangling reference)
// is kept in the result so it surfaces downstream, but contributes no
// further edges. Files present in the set but unreachable from the entry,
// e.g. from a batched compilation, are excluded.
func Closure(fds *descriptorpb.FileDescriptorSet, entry string) []string {
	byName := make(map[string]*descriptorpb.FileDescriptorProto, len(fds.GetFile()))
	for _, fd := range fds.GetFile() {
		byName[fd.GetName()] = fd
	}

	needed := make(map[string]struct{})
	stack := []string{entry}
	for len(stack) > 0 {
		name := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, ok := needed[name]; ok {
			continue
		}
		needed[name] = struct{}{}

		fd, ok := byName[name]
		if !ok {
			continue // dangling reference, treat as a leaf
		}
		stack = append(stack, fd.GetDependency()...)
	}

	names := make([]string, 0, len(needed))
	for name := range needed {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Package pyimports analyzes the import statements of a Python project and
// classifies the imported modules into stdlib, third-party, local and
// unknown buckets.
package pyimports

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/afero"
)

// Category is the bucket a module name is classified into.
type Category string

// The known categories, in the order the report prints them.
const (
	CategoryThirdParty Category = "third_party"
	CategoryUnknown    Category = "unknown"
	CategoryStdlib     Category = "stdlib"
	CategoryLocal      Category = "local"
)

// ModuleCount is one imported module name with its occurrence count across
// the project.
type ModuleCount struct {
	Module string
	Count  int
}

// Options configures Analyze.
type Options struct {
	// TopLevelOnly truncates module names to their top-level package,
	// e.g. "os.path" becomes "os".
	TopLevelOnly bool
	// IncludeGitignore also scans files that the project's .gitignore
	// would exclude.
	IncludeGitignore bool
}

// Report is the outcome of analyzing one project tree.
type Report struct {
	// Categories maps each category to its modules, sorted by descending
	// count, ties broken by name.
	Categories map[Category][]ModuleCount
	FileCount  int
	Elapsed    time.Duration
}

// Analyze walks every .py file under projectRoot, collects the imported
// module names and classifies them.
func Analyze(fsys afero.Fs, projectRoot string, opts Options) (Report, error) {
	start := time.Now()

	var patterns []ignorePattern
	if !opts.IncludeGitignore {
		patterns = loadGitignorePatterns(fsys, projectRoot)
	}

	counts := make(map[string]int)
	fileCount := 0
	err := afero.Walk(fsys, projectRoot, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(path, ".py") {
			return nil
		}
		rel, err := filepath.Rel(projectRoot, path)
		if err != nil {
			return err
		}
		if isIgnored(filepath.ToSlash(rel), patterns) {
			return nil
		}

		src, err := afero.ReadFile(fsys, path)
		if err != nil {
			return err
		}
		for _, name := range moduleNames(src) {
			if opts.TopLevelOnly {
				name, _, _ = strings.Cut(name, ".")
			}
			counts[name]++
		}
		fileCount++
		return nil
	})
	if err != nil {
		return Report{}, err
	}

	cls := newClassifier(fsys, projectRoot)
	categories := make(map[Category][]ModuleCount)
	for module, count := range counts {
		cat := cls.classify(module)
		categories[cat] = append(categories[cat], ModuleCount{Module: module, Count: count})
	}
	for _, modules := range categories {
		sort.Slice(modules, func(i, j int) bool {
			if modules[i].Count != modules[j].Count {
				return modules[i].Count > modules[j].Count
			}
			return modules[i].Module < modules[j].Module
		})
	}

	return Report{
		Categories: categories,
		FileCount:  fileCount,
		Elapsed:    time.Since(start),
	}, nil
}

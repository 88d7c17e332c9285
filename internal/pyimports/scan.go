package pyimports

import (
	"bufio"
	"bytes"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/afero"
)

var (
	fromImportRe = regexp.MustCompile(`^\s*from\s+([A-Za-z_][A-Za-z0-9_.]*)\s+import\b`)
	importRe     = regexp.MustCompile(`^\s*import\s+(.+)$`)
	moduleRe     = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)
)

// moduleNames extracts the imported module names from one Python source
// file. A line scan over import statements is enough for import counting
// and also tolerates files that would not parse.
func moduleNames(src []byte) []string {
	var names []string

	scanner := bufio.NewScanner(bytes.NewReader(src))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if m := fromImportRe.FindStringSubmatch(line); m != nil {
			names = append(names, m[1])
			continue
		}
		m := importRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		rest := m[1]
		// `import a.b, c as d  # comment`
		if idx := strings.Index(rest, "#"); idx >= 0 {
			rest = rest[:idx]
		}
		for _, part := range strings.Split(rest, ",") {
			name, _, _ := strings.Cut(strings.TrimSpace(part), " ")
			if moduleRe.MatchString(name) {
				names = append(names, name)
			}
		}
	}

	return names
}

type ignorePattern struct {
	re *regexp.Regexp
}

// loadGitignorePatterns reads the project's .gitignore and converts each
// entry into a substring-matching regexp. The translation is deliberately
// naive, escaping dots and widening stars is enough for the usual build/,
// *.generated.py style of entry. Entries that don't survive it are skipped.
func loadGitignorePatterns(fsys afero.Fs, projectRoot string) []ignorePattern {
	data, err := afero.ReadFile(fsys, filepath.Join(projectRoot, ".gitignore"))
	if err != nil {
		return nil
	}

	var patterns []ignorePattern
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		converted := strings.ReplaceAll(line, ".", `\.`)
		converted = strings.ReplaceAll(converted, "*", ".*")
		re, err := regexp.Compile(converted)
		if err != nil {
			continue
		}
		patterns = append(patterns, ignorePattern{re: re})
	}
	return patterns
}

func isIgnored(relPath string, patterns []ignorePattern) bool {
	for _, p := range patterns {
		if p.re.MatchString(relPath) {
			return true
		}
	}
	return false
}

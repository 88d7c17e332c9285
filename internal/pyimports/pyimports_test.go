package pyimports

import (
	"bytes"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModuleNames(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		src      string
		expected []string
	}{
		{
			name:     "plain import",
			src:      "import os\n",
			expected: []string{"os"},
		},
		{
			name:     "dotted import",
			src:      "import os.path\n",
			expected: []string{"os.path"},
		},
		{
			name:     "multiple modules with aliases",
			src:      "import numpy as np, pandas as pd\n",
			expected: []string{"numpy", "pandas"},
		},
		{
			name:     "from import",
			src:      "from collections import Counter, defaultdict\n",
			expected: []string{"collections"},
		},
		{
			name:     "from dotted import",
			src:      "from importlib.util import find_spec\n",
			expected: []string{"importlib.util"},
		},
		{
			name:     "indented imports inside functions",
			src:      "def f():\n    import json\n    return json\n",
			expected: []string{"json"},
		},
		{
			name:     "trailing comment",
			src:      "import yaml  # config parsing\n",
			expected: []string{"yaml"},
		},
		{
			name:     "no imports",
			src:      "x = 1\nprint(x)\n",
			expected: nil,
		},
		{
			name:     "relative imports are skipped",
			src:      "from . import sibling\n",
			expected: nil,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, moduleNames([]byte(tc.src)))
		})
	}
}

func TestAnalyze(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/proj/app.py",
		[]byte("import os\nimport requests\nfrom mypkg import helper\nimport wat\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/proj/other.py",
		[]byte("import os\nimport requests\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/proj/mypkg/__init__.py", []byte(""), 0o644))
	require.NoError(t, fs.MkdirAll("/proj/venv/lib/python3.11/site-packages/requests", 0o755))

	report, err := Analyze(fs, "/proj", Options{})
	require.NoError(t, err)
	// __init__.py counts as a parsed file too
	assert.Equal(t, 3, report.FileCount)

	assert.Equal(t,
		[]ModuleCount{{Module: "os", Count: 2}},
		report.Categories[CategoryStdlib])
	assert.Equal(t,
		[]ModuleCount{{Module: "requests", Count: 2}},
		report.Categories[CategoryThirdParty])
	assert.Equal(t,
		[]ModuleCount{{Module: "mypkg", Count: 1}},
		report.Categories[CategoryLocal])
	assert.Equal(t,
		[]ModuleCount{{Module: "wat", Count: 1}},
		report.Categories[CategoryUnknown])
}

func TestAnalyzeGitignore(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/proj/.gitignore", []byte("# junk\nbuild\n*.generated.py\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/proj/app.py", []byte("import os\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/proj/build/skip.py", []byte("import json\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/proj/x.generated.py", []byte("import sys\n"), 0o644))

	report, err := Analyze(fs, "/proj", Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, report.FileCount)
	assert.Equal(t,
		[]ModuleCount{{Module: "os", Count: 1}},
		report.Categories[CategoryStdlib])

	report, err = Analyze(fs, "/proj", Options{IncludeGitignore: true})
	require.NoError(t, err)
	assert.Equal(t, 3, report.FileCount)
}

func TestAnalyzeTopLevelOnly(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/proj/app.py",
		[]byte("import os.path\nfrom os import sep\n"), 0o644))

	report, err := Analyze(fs, "/proj", Options{TopLevelOnly: true})
	require.NoError(t, err)
	assert.Equal(t,
		[]ModuleCount{{Module: "os", Count: 2}},
		report.Categories[CategoryStdlib])
}

func TestReportWrite(t *testing.T) {
	t.Parallel()

	report := Report{
		Categories: map[Category][]ModuleCount{
			CategoryThirdParty: {{Module: "requests", Count: 5}, {Module: "yaml", Count: 2}},
			CategoryStdlib:     {{Module: "os", Count: 7}},
			CategoryLocal:      {{Module: "mypkg", Count: 1}},
		},
		FileCount: 4,
	}

	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, false))
	out := buf.String()
	assert.Contains(t, out, "# 2 unique THIRD_PARTY modules:")
	assert.Contains(t, out, "# 1 unique STDLIB modules:")
	assert.NotContains(t, out, "LOCAL")
	assert.Contains(t, out, "Parsed 4 Python files")

	buf.Reset()
	require.NoError(t, report.Write(&buf, true))
	assert.Contains(t, buf.String(), "# 1 unique LOCAL modules:")
}

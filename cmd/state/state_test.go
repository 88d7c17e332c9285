package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildEnvMap(t *testing.T) {
	t.Parallel()

	env := BuildEnvMap([]string{"PATH=/usr/bin", "EMPTY=", "EQ=a=b=c"})
	assert.Equal(t, map[string]string{
		"PATH":  "/usr/bin",
		"EMPTY": "",
		"EQ":    "a=b=c",
	}, env)
}

func TestGetFlags(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		env      map[string]string
		expected GlobalFlags
	}{
		{
			name:     "defaults",
			env:      nil,
			expected: GlobalFlags{LogOutput: "stderr"},
		},
		{
			name:     "log output override",
			env:      map[string]string{"MYBIN_LOG_OUTPUT": "stdout"},
			expected: GlobalFlags{LogOutput: "stdout"},
		},
		{
			name:     "log format override",
			env:      map[string]string{"MYBIN_LOG_FORMAT": "json"},
			expected: GlobalFlags{LogOutput: "stderr", LogFormat: "json"},
		},
		{
			name:     "empty NO_COLOR still disables colors",
			env:      map[string]string{"NO_COLOR": ""},
			expected: GlobalFlags{LogOutput: "stderr", NoColor: true},
		},
		{
			name:     "MYBIN_NO_COLOR true",
			env:      map[string]string{"MYBIN_NO_COLOR": "true"},
			expected: GlobalFlags{LogOutput: "stderr", NoColor: true},
		},
		{
			name:     "MYBIN_NO_COLOR false wins over nothing",
			env:      map[string]string{"MYBIN_NO_COLOR": "false"},
			expected: GlobalFlags{LogOutput: "stderr"},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, getFlags(GetDefaultFlags(), tc.env))
		})
	}
}

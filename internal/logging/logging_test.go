package logging

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedTime = time.Date(2026, 2, 12, 21, 38, 36, 0, time.UTC)

func TestLogFilePath(t *testing.T) {
	tests := []struct {
		name    string
		logsDir string
		want    string
	}{
		{"basic path", "yaprlogs", filepath.Join("yaprlogs", "yapr.20260212_213836.log")},
		{"relative path with dot", "./yaprlogs", filepath.Join(".", "yaprlogs", "yapr.20260212_213836.log")},
		{"absolute path", filepath.Join("/var", "log", "yapr"), filepath.Join("/var", "log", "yapr", "yapr.20260212_213836.log")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LogFilePath(tt.logsDir, "yapr", fixedTime))
		})
	}
}

func TestOpenLogFile_CreatesDirectory(t *testing.T) {
	path := LogFilePath(filepath.Join(t.TempDir(), "nested", "logs"), "yapr", fixedTime)

	f, err := OpenLogFile(path)
	require.NoError(t, err)
	_, err = f.WriteString("line\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	f, err = OpenLogFile(path)
	require.NoError(t, err)
	_, err = f.WriteString("again\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "line\nagain\n", string(data))
}

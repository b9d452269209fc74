package contract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/shiftfit/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestGetColorLabel(t *testing.T) {
	labels := []schema.EfficiencyLabel{
		schema.IdleLabel,
		schema.OverstaffedLabel,
		schema.BalancedLabel,
		schema.UnderstaffedLabel,
		schema.UnstaffedLabel,
	}
	for _, label := range labels {
		t.Run(string(label), func(t *testing.T) {
			assert.Contains(t, GetColorLabel(label), string(label))
		})
	}
}

func TestGetLabelInitial(t *testing.T) {
	assert.Equal(t, "U", GetLabelInitial(schema.UnderstaffedLabel))
	assert.Equal(t, "X", GetLabelInitial(schema.UnstaffedLabel))
	assert.Equal(t, "O", GetLabelInitial(schema.OverstaffedLabel))
	assert.Equal(t, "B", GetLabelInitial(schema.BalancedLabel))
	assert.Equal(t, ".", GetLabelInitial(schema.IdleLabel))
}

func TestSelectOutputFile(t *testing.T) {
	t.Run("empty path returns stdout", func(t *testing.T) {
		file, err := SelectOutputFile("")
		require.NoError(t, err)
		assert.Equal(t, os.Stdout, file)
	})

	t.Run("valid path creates file", func(t *testing.T) {
		tempFile := filepath.Join(t.TempDir(), "test_output.txt")

		file, err := SelectOutputFile(tempFile)
		require.NoError(t, err)
		assert.NotNil(t, file)
		_ = file.Close()

		_, err = os.Stat(tempFile)
		assert.NoError(t, err)
	})
}

func TestDBFilePaths(t *testing.T) {
	homeDir, err := os.UserHomeDir()
	require.NoError(t, err)

	cache := GetCacheDBFilePath()
	assert.Contains(t, cache, ".shiftfit_cache.db")
	assert.True(t, strings.HasPrefix(cache, homeDir), "path %s should start with home dir %s", cache, homeDir)

	history := GetHistoryDBFilePath()
	assert.Contains(t, history, ".shiftfit_history.db")
	assert.NotEqual(t, cache, history)
}

func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"yes", "TRUE", "1"} {
		v, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.True(t, v, s)
	}
	for _, s := range []string{"no", "False", "0"} {
		v, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.False(t, v, s)
	}
	_, err := ParseBoolString("perhaps")
	assert.Error(t, err)
}

func TestParseMonth(t *testing.T) {
	tests := []struct {
		input    string
		expected time.Month
		wantErr  bool
	}{
		{"", 0, false},
		{"0", 0, false},
		{"9", time.September, false},
		{"September", time.September, false},
		{"sep", time.September, false},
		{" DEC ", time.December, false},
		{"13", 0, true},
		{"sept", 0, true},
		{"autumn", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMonth(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, SplitList(" a, b,,c ,"))
	assert.Nil(t, SplitList(""))
}

func TestLogWarnUsesInstalledLogger(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	prev := Logger()
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(prev) })

	LogWarn("profile cache miss", os.ErrNotExist)
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "profile cache miss", entry.Message)
	assert.Equal(t, os.ErrNotExist.Error(), entry.ContextMap()["error"])
}

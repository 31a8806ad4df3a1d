package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/five82/tally/internal/config"
)

func TestParseLevel(t *testing.T) {
	for _, tc := range []struct {
		name    string
		want    zapcore.Level
		wantErr bool
	}{
		{name: "debug", want: zap.DebugLevel},
		{name: "INFO", want: zap.InfoLevel},
		{name: "", want: zap.InfoLevel},
		{name: "warn", want: zap.WarnLevel},
		{name: "error", want: zap.ErrorLevel},
		{name: "none", want: zap.FatalLevel},
		{name: "loud", want: zap.InfoLevel, wantErr: true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseLevel(tc.name)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestNew_NoFileIsNop(t *testing.T) {
	log, err := New(config.Log{Level: "debug", Format: "json"})
	require.NoError(t, err)
	require.False(t, log.Core().Enabled(zap.ErrorLevel))
}

func TestNew_RejectsUnknownValues(t *testing.T) {
	file := filepath.Join(t.TempDir(), "tally.log")

	_, err := New(config.Log{File: file, Level: "chatty"})
	require.ErrorContains(t, err, "unknown log level")

	_, err = New(config.Log{File: file, Level: "info", Format: "xml"})
	require.ErrorContains(t, err, "unknown log format")
}

func TestNew_WritesJSONToFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "nested", "tally.log")

	log, err := New(config.Log{File: file, Level: "info", Format: "json"})
	require.NoError(t, err)

	log.Debug("hidden")
	log.Info("records loaded", zap.Int("count", 3))
	_ = log.Sync()

	data, err := os.ReadFile(file)
	require.NoError(t, err)

	lines := gjson.ParseBytes(data)
	require.Equal(t, "info", lines.Get("level").String())
	require.Equal(t, "records loaded", lines.Get("msg").String())
	require.Equal(t, int64(3), lines.Get("count").Int())
	require.Equal(t, Version, lines.Get("version").String())
	require.True(t, lines.Get("timestamp").Exists())
	require.NotContains(t, string(data), "hidden")
}

func TestNew_TextFormat(t *testing.T) {
	file := filepath.Join(t.TempDir(), "tally.log")

	log, err := New(config.Log{File: file, Level: "warn", Format: "text"})
	require.NoError(t, err)

	log.Info("skipped")
	log.Warn("source offline")
	_ = log.Sync()

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	require.Contains(t, string(data), "WARN")
	require.Contains(t, string(data), "source offline")
	require.NotContains(t, string(data), "skipped")
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("scheme", "", "")
	fs.String("encoding", "auto", "")
	fs.Int("concurrency", 0, "")
	fs.String("log-level", "warn", "")
	fs.String("log-format", "text", "")
	fs.String("tracing", "none", "")
	fs.String("metrics-file", "", "")
	return fs
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

// isolate keeps the developer's own config and environment out of a test.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	for _, k := range []string{"SCHEME", "ENCODING", "CONCURRENCY", "LOG_LEVEL", "LOG_FORMAT", "TRACING"} {
		t.Setenv("KEYCHECK_"+k, "")
		os.Unsetenv("KEYCHECK_" + k)
	}
}

func TestDefaults(t *testing.T) {
	isolate(t)
	v := New()
	require.NoError(t, ReadFile(v, ""))

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, &Config{
		Scheme:      "",
		Encoding:    "auto",
		Concurrency: 0,
		Log:         LogConfig{Level: "warn", Format: "text"},
		Tracing:     TracingNone,
	}, cfg)
}

func TestPrecedence(t *testing.T) {
	isolate(t)
	path := writeConfig(t, `
scheme: ML-KEM-768
encoding: hex
concurrency: 4
log:
  level: info
  format: json
`)
	v := New()
	require.NoError(t, ReadFile(v, path))

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "ML-KEM-768", cfg.Scheme)
	assert.Equal(t, "hex", cfg.Encoding)
	assert.Equal(t, 4, cfg.Concurrency)
	assert.Equal(t, "json", cfg.Log.Format)

	t.Setenv("KEYCHECK_CONCURRENCY", "8")
	t.Setenv("KEYCHECK_LOG_LEVEL", "debug")
	cfg, err = Load(v)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Concurrency)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "hex", cfg.Encoding)

	fs := newFlags()
	require.NoError(t, BindFlags(v, fs))
	require.NoError(t, fs.Parse([]string{"--concurrency=16", "--encoding=PEM"}))
	cfg, err = Load(v)
	require.NoError(t, err)
	assert.Equal(t, 16, cfg.Concurrency)
	assert.Equal(t, "pem", cfg.Encoding)
	assert.Equal(t, "debug", cfg.Log.Level, "unset flag must not override env")
	assert.Equal(t, "ML-KEM-768", cfg.Scheme, "unset flag must not override file")
}

func TestFlagDefaultsDoNotOverrideDefaults(t *testing.T) {
	isolate(t)
	v := New()
	fs := newFlags()
	require.NoError(t, fs.Set("log-level", "error"))
	fs.Lookup("log-level").Changed = false
	require.NoError(t, BindFlags(v, fs))

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestDefaultPath(t *testing.T) {
	isolate(t)
	dir := os.Getenv("XDG_CONFIG_HOME")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "keycheck"), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "keycheck", "config.yaml"), []byte("tracing: stdout\n"), 0o600))

	assert.Equal(t, filepath.Join(dir, "keycheck", "config.yaml"), DefaultPath())

	v := New()
	require.NoError(t, ReadFile(v, ""))
	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, TracingStdout, cfg.Tracing)
}

func TestReadFileMissingExplicit(t *testing.T) {
	isolate(t)
	err := ReadFile(New(), filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestReadFileMalformed(t *testing.T) {
	isolate(t)
	err := ReadFile(New(), writeConfig(t, "log: [\n"))
	assert.Error(t, err)
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"encoding", "encoding: der\n", "encoding"},
		{"concurrency", "concurrency: 5000\n", "concurrency"},
		{"negative concurrency", "concurrency: -1\n", "concurrency"},
		{"log level", "log:\n  level: chatty\n", "log.level"},
		{"log format", "log:\n  format: xml\n", "log.format"},
		{"tracing", "tracing: jaeger\n", "tracing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			v := New()
			require.NoError(t, ReadFile(v, writeConfig(t, tt.body)))
			_, err := Load(v)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid configuration")
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestBindFlagsIgnoresUnrelated(t *testing.T) {
	isolate(t)
	v := New()
	fs := newFlags()
	require.NoError(t, BindFlags(v, fs))
	require.NoError(t, fs.Parse([]string{"--metrics-file=/tmp/x"}))
	assert.False(t, v.IsSet("metrics-file"))
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "parsec.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	config, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), config)
	require.Equal(t, ":9999", config.Addr())

	config, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	require.Equal(t, Default(), config)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  host: localhost
  port: 8080
parse:
  max_input_bytes: 100
  diagnostics: true
logging:
  level: debug
`)
	config, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "localhost:8080", config.Addr())
	require.Equal(t, 100, config.Parse.MaxInputBytes)
	require.True(t, config.Parse.Diagnostics)
	require.Equal(t, "debug", config.Logging.Level)
	// untouched sections keep their defaults
	require.Equal(t, Default().Corpus, config.Corpus)
	require.Equal(t, Default().Shell, config.Shell)
}

func TestLoadErrors(t *testing.T) {
	cases := []struct {
		contents string
		error    string
	}{
		{"server:\n  port: 70000\n", "server.port out of range: 70000"},
		{"parse:\n  max_input_bytes: -1\n", "parse.max_input_bytes must be non-negative; got -1"},
		{"logging:\n  level: loud\n", `logging.level: not a valid logrus Level: "loud"`},
	}
	for idx, testCase := range cases {
		_, err := Load(writeConfig(t, testCase.contents))
		require.EqualErrorf(t, err, testCase.error, "case %d", idx)
	}

	_, err := Load(writeConfig(t, "server: [\n"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to parse config file")
}

func TestMarshalRoundTrip(t *testing.T) {
	data, err := Default().Marshal()
	require.NoError(t, err)

	path := writeConfig(t, string(data))
	config, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, Default(), config)
}

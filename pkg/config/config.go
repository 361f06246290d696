package config

import (
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config is shared by the test harness server and the shell.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Corpus  CorpusConfig  `yaml:"corpus"`
	Shell   ShellConfig   `yaml:"shell"`
	Parse   ParseConfig   `yaml:"parse"`
	Logging LoggingConfig `yaml:"logging"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type CorpusConfig struct {
	// bolt database holding saved sample inputs
	DataFile string `yaml:"data_file"`
}

type ShellConfig struct {
	HistoryFile string `yaml:"history_file"`
}

type ParseConfig struct {
	// inputs longer than this are rejected before parsing; 0 means no limit
	MaxInputBytes int `yaml:"max_input_bytes"`
	// record a callstack unless the request says otherwise
	Diagnostics bool `yaml:"diagnostics"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "",
			Port: 9999,
		},
		Corpus: CorpusConfig{
			DataFile: "parsec.data",
		},
		Shell: ShellConfig{
			HistoryFile: "/tmp/parsec_shell_history",
		},
		Parse: ParseConfig{
			MaxInputBytes: 1 << 20,
			Diagnostics:   false,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads the YAML file at path over the defaults. An empty path, or
// one that doesn't exist, yields the defaults.
func Load(path string) (*Config, error) {
	config := Default()
	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(expandHome(path))
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, errors.Wrap(err, "failed to read config file")
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, errors.Wrap(err, "failed to parse config file")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.Parse.MaxInputBytes < 0 {
		return errors.Errorf("parse.max_input_bytes must be non-negative; got %d", c.Parse.MaxInputBytes)
	}
	if _, err := logrus.ParseLevel(c.Logging.Level); err != nil {
		return errors.Wrap(err, "logging.level")
	}
	return nil
}

// Addr is the listen address for the harness server.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

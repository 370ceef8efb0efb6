package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPort is the remote console port of a dedicated server.
const DefaultPort = 2092

// Config holds all settings for the console client.
type Config struct {
	Server  Server  `yaml:"server"`
	Journal Journal `yaml:"journal"`
	Metrics Metrics `yaml:"metrics"`
	Log     Log     `yaml:"log"`
	UI      UI      `yaml:"ui"`
}

// Server identifies the remote console to connect to.
type Server struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`

	DialTimeout time.Duration `yaml:"dial_timeout"`
	IdleTimeout time.Duration `yaml:"idle_timeout"` // 0 disables the timeout event
}

// Journal selects where classified events are recorded.
type Journal struct {
	Driver string `yaml:"driver"` // "sqlite", "postgres" or empty for none
	DSN    string `yaml:"dsn"`
}

// Metrics configures the Prometheus endpoint.
type Metrics struct {
	Listen string `yaml:"listen"` // e.g. "127.0.0.1:9120"; empty disables
}

// Log configures the process logger.
type Log struct {
	File       string `yaml:"file"`
	Level      string `yaml:"level"`
	RawCapture string `yaml:"raw_capture"` // file receiving raw chunks; empty disables
}

// UI configures the terminal frontend.
type UI struct {
	Theme     string            `yaml:"theme"`     // "classic" or "mono"
	Shortcuts map[string]string `yaml:"shortcuts"` // key such as "f2" to an input line
}

// Error reports an invalid configuration field.
type Error struct {
	Field  string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid option %s: %s", e.Field, e.Reason)
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		Server: Server{
			Port:        DefaultPort,
			DialTimeout: 5 * time.Second,
		},
		Log: Log{
			File:  "d3console.log",
			Level: "info",
		},
		UI: UI{
			Theme: "classic",
		},
	}
}

// Load loads config from a YAML file.
// If the file doesn't exist, returns defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// Address returns host:port.
func (s Server) Address() string {
	return s.Host + ":" + strconv.Itoa(s.Port)
}

// Validate checks the fields required before a connection attempt.
func (s Server) Validate() error {
	if s.Host == "" {
		return &Error{Field: "host", Reason: "set this to the hostname or IP of the server"}
	}
	if s.Port < 1 || s.Port > 65535 {
		return &Error{Field: "port", Reason: fmt.Sprintf("%d is not a port number between 1 and 65535", s.Port)}
	}
	if s.Password == "" {
		return &Error{Field: "password", Reason: "set this to the remote console password"}
	}
	if s.DialTimeout < 0 || s.IdleTimeout < 0 {
		return &Error{Field: "timeout", Reason: "timeouts must not be negative"}
	}
	return nil
}

// Validate checks the journal driver name.
func (j Journal) Validate() error {
	switch j.Driver {
	case "":
		return nil
	case "sqlite", "postgres":
		if j.DSN == "" {
			return &Error{Field: "journal.dsn", Reason: "required when a journal driver is set"}
		}
		return nil
	default:
		return &Error{Field: "journal.driver", Reason: fmt.Sprintf("unknown driver %q", j.Driver)}
	}
}

// Validate checks the whole configuration.
func (c Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	return c.Journal.Validate()
}

package cli

import (
	"fmt"
	"os"
)

// Output formats
const (
	OutputText = "text"
	OutputJSON = "json"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string
	Output    string
	Verbose   bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL: getEnvOrDefault("TICTACTOE_SERVER", "http://localhost:8080"),
		Output:    OutputText,
		Verbose:   false,
	}
}

// Validate checks flag values
func (c *Config) Validate() error {
	if c.Output != OutputText && c.Output != OutputJSON {
		return fmt.Errorf("unknown output format %q: use text or json", c.Output)
	}
	return nil
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pattyshack/wlp4c/parser/lr"
)

// Config holds the compiler's settings.  Every field is optional; command
// line flags override file values.
type Config struct {
	// Parse table file.  The bundled grammar's table is used when empty.
	Grammar string `yaml:"grammar"`

	// Output file.  Standard output is used when empty.
	Output string `yaml:"output"`

	// Per level indentation used by print-tree.  The compiler stages always
	// print the flat form.
	TreeIndent string `yaml:"tree_indent"`

	Verbose bool `yaml:"verbose"`
}

func Default() *Config {
	return &Config{
		TreeIndent: "  ",
	}
}

// Load reads a yaml config file.  Unset fields keep their default values.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	config, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return config, nil
}

func Parse(reader io.Reader) (*Config, error) {
	config := Default()

	decoder := yaml.NewDecoder(reader)
	decoder.KnownFields(true)

	err := decoder.Decode(config)
	if errors.Is(err, io.EOF) { // empty document
		return config, nil
	}
	if err != nil {
		return nil, err
	}

	return config, nil
}

// Table returns the configured parse table.
func (config *Config) Table() (*lr.Table, error) {
	if config.Grammar == "" {
		return lr.Default()
	}
	return lr.LoadFile(config.Grammar)
}

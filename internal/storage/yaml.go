// Package storage persists small YAML documents such as the tool
// configuration.
package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type YAMLFile struct {
	path string
}

func NewYAMLFile(path string) *YAMLFile {
	return &YAMLFile{path: path}
}

func (y *YAMLFile) Path() string {
	return y.path
}

func (y *YAMLFile) Exists() bool {
	_, err := os.Stat(y.path)
	return err == nil
}

// Load reads and decodes the file. Missing files are an error.
func (y *YAMLFile) Load(dest interface{}) error {
	data, err := os.ReadFile(y.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file not found: %s", y.path)
		}
		return fmt.Errorf("read file: %w", err)
	}
	if err := yaml.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}
	return nil
}

// LoadOrCreate reads the file when present and leaves dest untouched
// when it is missing.
func (y *YAMLFile) LoadOrCreate(dest interface{}) error {
	data, err := os.ReadFile(y.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read file: %w", err)
	}
	if err := yaml.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}
	return nil
}

// Save encodes data and writes it, creating parent directories as
// needed.
func (y *YAMLFile) Save(data interface{}) error {
	if err := os.MkdirAll(filepath.Dir(y.path), 0755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	out, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(y.path, out, 0644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

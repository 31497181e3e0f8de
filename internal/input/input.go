// Package input reads batch files of donors and projects.
package input

import (
	"crypto/sha256"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dshills/qfscore/internal/project"
	"github.com/dshills/qfscore/internal/trust"
)

// Donor is one scored account in a batch file. Activity keys sit next to
// the ID, the same shape the HTTP API accepts.
type Donor struct {
	ID             string `json:"id" yaml:"id"`
	Wallet         string `json:"wallet,omitempty" yaml:"wallet"`
	trust.Activity `yaml:",inline"`
}

// Batch holds a loaded batch file with its content hash.
type Batch struct {
	FilePath string            `yaml:"-"`
	Hash     string            `yaml:"-"`
	Pool     float64           `yaml:"matchingPool"`
	Donors   []Donor           `yaml:"donors"`
	Projects []project.Project `yaml:"projects"`
}

// Load reads a YAML or JSON batch file and computes its SHA-256 hash.
func Load(path string) (*Batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("input.Load: %w", err)
	}
	b, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("input.Load: %s: %w", path, err)
	}
	b.FilePath = path
	return b, nil
}

// Parse decodes a batch from memory. JSON is accepted as a subset of YAML.
func Parse(data []byte) (*Batch, error) {
	var b Batch
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	h := sha256.Sum256(data)
	b.Hash = fmt.Sprintf("sha256:%x", h)
	return &b, nil
}

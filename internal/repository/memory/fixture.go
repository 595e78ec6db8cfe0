package memory

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	models "docshelf/internal/domain/models/docsystem"

	"gopkg.in/yaml.v3"
)

// Fixture is the YAML seed format of the memory store:
//
//	folders:
//	  - id: 1
//	    name: Papers
//	  - id: 2
//	    name: Archive
//	    parentId: 1
//	files:
//	  - id: 10
//	    name: attention.pdf
//	    folderId: 2
type Fixture struct {
	Folders []models.Folder `yaml:"folders"`
	Files   []models.File   `yaml:"files"`
}

// LoadFixture reads a fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	fixture, err := ParseFixture(data)
	if err != nil {
		return nil, fmt.Errorf("fixture %s: %w", path, err)
	}
	return fixture, nil
}

// ParseFixture decodes fixture YAML. Unknown keys are rejected so typos in
// hand-written seeds surface early.
func ParseFixture(data []byte) (*Fixture, error) {
	var fixture Fixture
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fixture); err != nil {
		if errors.Is(err, io.EOF) {
			return &fixture, nil
		}
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	return &fixture, nil
}

// Encode writes the fixture as YAML.
func (f *Fixture) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("encode fixture: %w", err)
	}
	return enc.Close()
}

package schema

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileSchema is the on-disk YAML layout:
//
//	tables:
//	  - name: documents
//	    columns:
//	      - name: id
//	        type: UUID
//	        primary_key: true
//	        default: gen_random_uuid()
//	      - name: name
//	        type: TEXT
//	    indexes:
//	      - columns: [name]
//	        unique: true
type fileSchema struct {
	Tables []Table `yaml:"tables"`
}

// LoadFile reads table declarations from a YAML file. Every declaration
// is validated; the first invalid one fails the load.
func LoadFile(path string) ([]Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema file: %w", err)
	}

	var fs fileSchema
	if err := yaml.Unmarshal(data, &fs); err != nil {
		return nil, fmt.Errorf("parse schema file %s: %w", path, err)
	}

	for _, t := range fs.Tables {
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("schema file %s: %w", path, err)
		}
	}

	return fs.Tables, nil
}

package phrasebook

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed tables.yaml
var defaultTables []byte

// Default loads the phrase tables compiled into the binary.
func Default() (*Store, error) {
	return Load(bytes.NewReader(defaultTables))
}

// LoadFile loads phrase tables from a YAML file.
func LoadFile(path string) (*Store, error) {
	f, err := os.Open(path) // #nosec G304 - path comes from configuration
	if err != nil {
		return nil, fmt.Errorf("opening phrasebook: %w", err)
	}
	defer f.Close()

	store, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return store, nil
}

// Load reads a YAML document of the form
//
//	tables:
//	  english_to_swahili:
//	    hello: hujambo
//	    how are you: habari yako
//
// The mappings are walked as nodes rather than decoded into Go maps so the
// authored order of every table survives; reverse lookups depend on it.
func Load(r io.Reader) (*Store, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return NewStore()
		}
		return nil, fmt.Errorf("decoding YAML: %w", err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: top level must be a mapping", root.Line)
	}

	tablesNode := mappingValue(root, "tables")
	if tablesNode == nil {
		return NewStore()
	}
	if tablesNode.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: tables must be a mapping", tablesNode.Line)
	}

	tables := make([]*Table, 0, len(tablesNode.Content)/2)
	for i := 0; i+1 < len(tablesNode.Content); i += 2 {
		nameNode, body := tablesNode.Content[i], tablesNode.Content[i+1]

		pair, err := ParsePair(nameNode.Value)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", nameNode.Line, err)
		}
		if body.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("line %d: table %s must be a mapping", body.Line, pair)
		}

		entries := make([]Entry, 0, len(body.Content)/2)
		for j := 0; j+1 < len(body.Content); j += 2 {
			k, v := body.Content[j], body.Content[j+1]
			if k.Kind != yaml.ScalarNode || v.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: table %s entries must be scalar pairs", k.Line, pair)
			}
			entries = append(entries, Entry{Phrase: k.Value, Translation: v.Value})
		}

		table, err := NewTable(pair, entries)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", nameNode.Line, err)
		}
		tables = append(tables, table)
	}

	return NewStore(tables...)
}

func mappingValue(node *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrEmptyKeyPath is returned when an empty key path is provided.
var ErrEmptyKeyPath = errors.New("empty key path")

// SetConfigValue writes key=value into the YAML file at filePath, creating
// the file when missing. The value is checked against KnownKeys first.
// Comments and key order of the existing file are kept.
func SetConfigValue(filePath, key, value string) error {
	if strings.EqualFold(filepath.Ext(filePath), ".json") {
		return fmt.Errorf("%s: only YAML config files can be edited", filePath)
	}
	if key == "" {
		return ErrEmptyKeyPath
	}

	parsed, err := ValidateValue(key, value)
	if err != nil {
		return fmt.Errorf("validating value: %w", err)
	}

	doc, err := readDocument(filePath)
	if err != nil {
		return err
	}

	setPath(doc.Content[0], strings.Split(key, "."), scalarNode(parsed))

	content, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	if err := writeAtomically(filePath, content); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// readDocument returns the YAML document in path, or an empty mapping
// document when the file does not exist or is empty.
func readDocument(path string) (*yaml.Node, error) {
	empty := &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{{Kind: yaml.MappingNode}}}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return empty, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := ValidateYAMLSyntaxFromBytes(data, path); err != nil {
		return nil, err
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	if doc.Kind == 0 {
		return empty, nil
	}
	if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%s: top level must be a mapping", path)
	}
	return &doc, nil
}

// setPath walks mapping nodes along keys, creating or replacing intermediate
// nodes as needed, and stores value at the last key.
func setPath(mapping *yaml.Node, keys []string, value *yaml.Node) {
	for i, key := range keys {
		last := i == len(keys)-1

		var child *yaml.Node
		for j := 0; j+1 < len(mapping.Content); j += 2 {
			if mapping.Content[j].Value == key {
				child = mapping.Content[j+1]
				break
			}
		}

		if child == nil {
			child = &yaml.Node{Kind: yaml.MappingNode}
			mapping.Content = append(mapping.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}, child)
		}

		if last {
			*child = *value
			return
		}
		if child.Kind != yaml.MappingNode {
			*child = yaml.Node{Kind: yaml.MappingNode}
		}
		mapping = child
	}
}

func scalarNode(v ParsedValue) *yaml.Node {
	n := &yaml.Node{Kind: yaml.ScalarNode}
	switch p := v.Parsed.(type) {
	case bool:
		n.Tag, n.Value = "!!bool", strconv.FormatBool(p)
	case int:
		n.Tag, n.Value = "!!int", strconv.Itoa(p)
	default:
		n.Tag, n.Value = "!!str", fmt.Sprint(p)
	}
	return n
}

// writeAtomically replaces path through a temp file in the same directory.
func writeAtomically(path string, content []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".config-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return fmt.Errorf("writing to temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	return os.Rename(tmp.Name(), path)
}

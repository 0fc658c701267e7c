package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

// loadTree reads a YAML or JSON file whose top level is a mapping. An empty
// file yields an empty mapping.
func loadTree(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	switch t := toTree(v).(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		return t, nil
	default:
		return nil, fmt.Errorf("%s: top level must be a mapping, got %T", path, t)
	}
}

// toTree converts decoded YAML into the shapes the store understands.
// Mappings with non-string keys get their keys formatted as strings.
func toTree(v any) any {
	switch val := v.(type) {
	case map[string]any:
		result := make(map[string]any, len(val))
		for k, item := range val {
			result[k] = toTree(item)
		}
		return result
	case map[any]any:
		result := make(map[string]any, len(val))
		for k, item := range val {
			result[fmt.Sprint(k)] = toTree(item)
		}
		return result
	case []any:
		result := make([]any, len(val))
		for i, item := range val {
			result[i] = toTree(item)
		}
		return result
	default:
		return v
	}
}

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	SortKeys:                true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

func writeOutput(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case "dump":
		dumpConfig.Fdump(w, v)
		return nil
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// writeFlat prints a flattened tree keeping its path order.
func writeFlat(w io.Writer, format string, flat *orderedmap.OrderedMap[string, any]) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(flat, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	case "yaml":
		node := &yaml.Node{Kind: yaml.MappingNode}
		for pair := flat.Oldest(); pair != nil; pair = pair.Next() {
			var value yaml.Node
			if err := value.Encode(pair.Value); err != nil {
				return fmt.Errorf("failed to encode %s: %w", pair.Key, err)
			}
			node.Content = append(node.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: pair.Key},
				&value,
			)
		}
		return writeOutput(w, format, node)
	case "dump":
		for pair := flat.Oldest(); pair != nil; pair = pair.Next() {
			fmt.Fprintf(w, "%s = %s", pair.Key, dumpConfig.Sdump(pair.Value))
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

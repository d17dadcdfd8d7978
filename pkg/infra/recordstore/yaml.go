// Package recordstore persists the package record list as YAML and exports
// it as CSV.
package recordstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"gopkg.in/yaml.v3"

	"github.com/buildprobe/buildprobe/pkg/domain/interfaces"
	"github.com/buildprobe/buildprobe/pkg/domain/model"
)

const indent = 2

// YAMLStore reads and writes a YAML list of package records
type YAMLStore struct{}

var _ interfaces.RecordStore = (*YAMLStore)(nil)

// NewYAMLStore creates a new YAMLStore
func NewYAMLStore() *YAMLStore {
	return &YAMLStore{}
}

// Load reads the record list from path. An empty document is an empty list.
func (s *YAMLStore) Load(ctx context.Context, path string) ([]*model.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, goerr.Wrap(model.ErrInputNotFound, "record file does not exist", goerr.V("path", path))
		}
		return nil, goerr.Wrap(err, "failed to read record file", goerr.V("path", path))
	}

	return Decode(data)
}

// Decode parses a YAML document holding a list of mappings
func Decode(data []byte) ([]*model.Record, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, goerr.Wrap(fmt.Errorf("%w: %w", model.ErrInputMalformed, err), "failed to parse YAML")
	}

	if doc.Kind == 0 || len(doc.Content) == 0 {
		return []*model.Record{}, nil
	}

	root := doc.Content[0]
	if root.Kind == yaml.ScalarNode && root.Tag == "!!null" {
		return []*model.Record{}, nil
	}
	if root.Kind != yaml.SequenceNode {
		return nil, goerr.Wrap(model.ErrInputMalformed, "expected a YAML list of package objects",
			goerr.V("line", root.Line))
	}

	records := make([]*model.Record, 0, len(root.Content))
	for i, item := range root.Content {
		item = resolveAlias(item)
		if item.Kind != yaml.MappingNode {
			return nil, goerr.Wrap(model.ErrInputMalformed, "package entry is not a mapping",
				goerr.V("index", i),
				goerr.V("line", item.Line))
		}

		v, err := decodeNode(item)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to decode package entry", goerr.V("index", i))
		}
		records = append(records, v.(*model.Record))
	}

	return records, nil
}

// Save writes records to path with 2-space indentation. The file is replaced
// atomically so a failed write never truncates the input.
func (s *YAMLStore) Save(ctx context.Context, path string, records []*model.Record) error {
	data, err := Encode(records)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return goerr.Wrap(err, "failed to create temporary file", goerr.V("path", path))
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return goerr.Wrap(err, "failed to write temporary file", goerr.V("path", tmp.Name()))
	}
	if err := tmp.Close(); err != nil {
		return goerr.Wrap(err, "failed to close temporary file", goerr.V("path", tmp.Name()))
	}

	mode := fs.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.Chmod(tmp.Name(), mode); err != nil {
		return goerr.Wrap(err, "failed to set file permissions", goerr.V("path", tmp.Name()))
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return goerr.Wrap(err, "failed to replace record file", goerr.V("path", path))
	}
	return nil
}

// Encode renders records as a YAML list preserving key order
func Encode(records []*model.Record) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.SequenceNode}
	for i, rec := range records {
		n, err := encodeValue(rec)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to encode package entry", goerr.V("index", i))
		}
		root.Content = append(root.Content, n)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(indent)
	if err := enc.Encode(&yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}); err != nil {
		return nil, goerr.Wrap(err, "failed to encode YAML")
	}
	if err := enc.Close(); err != nil {
		return nil, goerr.Wrap(err, "failed to flush YAML encoder")
	}

	return buf.Bytes(), nil
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

// decodeNode converts a YAML node into record values: mappings become
// *model.Record, sequences []any and scalars their native Go value.
func decodeNode(n *yaml.Node) (any, error) {
	n = resolveAlias(n)

	switch n.Kind {
	case yaml.MappingNode:
		rec := model.NewRecord()
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := resolveAlias(n.Content[i])
			if key.Kind != yaml.ScalarNode {
				return nil, goerr.Wrap(model.ErrInputMalformed, "mapping key is not a scalar", goerr.V("line", key.Line))
			}
			v, err := decodeNode(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			rec.Set(key.Value, v)
		}
		return rec, nil

	case yaml.SequenceNode:
		items := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := decodeNode(c)
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		return items, nil

	default:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, goerr.Wrap(fmt.Errorf("%w: %w", model.ErrInputMalformed, err), "failed to decode scalar",
				goerr.V("line", n.Line))
		}
		return v, nil
	}
}

func encodeValue(v any) (*yaml.Node, error) {
	switch t := v.(type) {
	case *model.Record:
		n := &yaml.Node{Kind: yaml.MappingNode}
		for _, k := range t.Keys() {
			value, _ := t.Get(k)
			vn, err := encodeValue(value)
			if err != nil {
				return nil, goerr.Wrap(err, "failed to encode field", goerr.V("key", k))
			}
			n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}, vn)
		}
		return n, nil

	case []any:
		n := &yaml.Node{Kind: yaml.SequenceNode}
		for _, item := range t {
			vn, err := encodeValue(item)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, vn)
		}
		return n, nil

	default:
		n := &yaml.Node{}
		if err := n.Encode(v); err != nil {
			return nil, goerr.Wrap(err, "failed to encode value")
		}
		return n, nil
	}
}

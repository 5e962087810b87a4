package document

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultIndent matches the two-space indentation of hand-written configs.
const DefaultIndent = 2

// Decode parses YAML into a document. The top level must be a mapping.
func Decode(data []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return nil, errors.New("document is empty")
	}
	if root.Kind != yaml.DocumentNode || root.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: top level must be a mapping", root.Content[0].Line)
	}

	rec, err := decodeRecord(root.Content[0])
	if err != nil {
		return nil, err
	}
	return &Document{Record: rec, node: &root, source: data}, nil
}

// Encode renders the document. indent <= 0 uses DefaultIndent.
func Encode(doc *Document, indent int) ([]byte, error) {
	if indent <= 0 {
		indent = DefaultIndent
	}

	root := &yaml.Node{Kind: yaml.DocumentNode}
	if doc.node != nil {
		cp := *doc.node
		root = &cp
	}
	m, err := encodeRecord(doc.Record)
	if err != nil {
		return nil, err
	}
	root.Content = []*yaml.Node{m}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(indent)
	if err := enc.Encode(root); err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return buf.Bytes(), nil
}

func decodeRecord(n *yaml.Node) (*Record, error) {
	r := &Record{
		entries: make([]*Entry, 0, len(n.Content)/2),
		index:   make(map[string]int, len(n.Content)/2),
		node:    n,
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if r.Has(k.Value) {
			return nil, fmt.Errorf("line %d: duplicate key %q", k.Line, k.Value)
		}
		val, err := decodeValue(v)
		if err != nil {
			return nil, err
		}
		// The parser puts "key: # note" on the key and "key: value # note" on
		// the value.
		raw := k.LineComment
		if commentText(raw) == "" {
			raw = v.LineComment
		}
		r.entries = append(r.entries, &Entry{
			Key:        k.Value,
			Value:      val,
			Comment:    commentText(raw),
			keyNode:    k,
			rawComment: raw,
		})
		r.index[k.Value] = len(r.entries) - 1
	}
	return r, nil
}

func decodeValue(n *yaml.Node) (Value, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		var x any
		if err := n.Decode(&x); err != nil {
			return Value{kind: OpaqueKind, node: n}, nil
		}
		if x == nil {
			return Value{kind: NullKind, node: n}, nil
		}
		return Value{kind: ScalarKind, scalar: x, node: n}, nil
	case yaml.SequenceNode:
		items := make([]Value, 0, len(n.Content))
		for _, c := range n.Content {
			item, err := decodeValue(c)
			if err != nil {
				return Value{}, err
			}
			items = append(items, item)
		}
		return Value{kind: SequenceKind, items: items, flow: n.Style&yaml.FlowStyle != 0, node: n}, nil
	case yaml.MappingNode:
		rec, err := decodeRecord(n)
		if err != nil {
			return Value{}, err
		}
		return Value{kind: RecordKind, record: rec, flow: n.Style&yaml.FlowStyle != 0, node: n}, nil
	default:
		return Value{kind: OpaqueKind, node: n}, nil
	}
}

func encodeRecord(r *Record) (*yaml.Node, error) {
	n := &yaml.Node{Kind: yaml.MappingNode}
	if r.node != nil {
		cp := *r.node
		n = &cp
	}
	n.Content = make([]*yaml.Node, 0, 2*len(r.entries))
	for _, e := range r.entries {
		k := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Key}
		if e.keyNode != nil {
			cp := *e.keyNode
			k = &cp
		}
		v, err := encodeValue(e.Value)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", e.Key, err)
		}
		attachComment(k, v, e.Comment, e.rawComment)
		n.Content = append(n.Content, k, v)
	}
	return n, nil
}

func encodeValue(v Value) (*yaml.Node, error) {
	switch v.kind {
	case NullKind:
		if v.node != nil {
			cp := *v.node
			return &cp, nil
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case ScalarKind:
		if v.node != nil {
			cp := *v.node
			return &cp, nil
		}
		n := &yaml.Node{}
		if err := n.Encode(v.scalar); err != nil {
			return nil, err
		}
		return n, nil
	case SequenceKind:
		n := &yaml.Node{Kind: yaml.SequenceNode}
		if v.node != nil {
			cp := *v.node
			n = &cp
		} else if v.flow {
			n.Style = yaml.FlowStyle
		}
		n.Content = make([]*yaml.Node, 0, len(v.items))
		for _, item := range v.items {
			c, err := encodeValue(item)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, c)
		}
		return n, nil
	case RecordKind:
		n, err := encodeRecord(v.record)
		if err != nil {
			return nil, err
		}
		if v.record.node == nil && v.flow {
			n.Style = yaml.FlowStyle
		}
		return n, nil
	default:
		if v.node == nil {
			return nil, errors.New("opaque value without source node")
		}
		cp := *v.node
		return &cp, nil
	}
}

// attachComment puts the annotation where the emitter renders it at the end of
// the key's line: after the key for block collections, after the value
// otherwise. An annotation that still reads as raw is written back as raw;
// new text is written as "# text".
func attachComment(k, v *yaml.Node, text, raw string) {
	line := ""
	switch {
	case text == "":
	case commentText(raw) == text:
		line = raw
	default:
		line = "# " + text
	}
	block := (v.Kind == yaml.MappingNode || v.Kind == yaml.SequenceNode) &&
		v.Style&yaml.FlowStyle == 0 && len(v.Content) > 0
	if block {
		k.LineComment = line
		v.LineComment = ""
		return
	}
	v.LineComment = line
	k.LineComment = ""
}

func commentText(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "#")
	return strings.TrimSpace(s)
}

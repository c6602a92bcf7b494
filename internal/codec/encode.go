package codec

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/fsr-protokoll/editor/internal/domain"
)

// Encode renders s as the canonical YAML document.
//
// Topics are emitted in model order keyed by their trimmed title. Topics
// with a blank title are left out, and when two titles collide the later
// topic's points are kept at the earlier position. Date, Start and Ende are
// written as bare scalars whenever the bare token reads back as the same
// value; an empty one is left blank.
func Encode(s domain.Session) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}

	protocolant := ""
	if len(s.Protocolant) > 0 {
		protocolant = s.Protocolant[0]
	}

	appendPair(root, fieldFSR, seqNode(s.FSRMembers))
	appendPair(root, fieldProtocolant, strNode(protocolant))
	appendPair(root, fieldGuests, seqNode(s.Guests))
	appendPair(root, fieldDate, metaNode(s.Meta.Date, readDate))
	appendPair(root, fieldStart, metaNode(s.Meta.Start, readTime))
	appendPair(root, fieldEnd, metaNode(s.Meta.End, readTime))
	appendPair(root, fieldSession, sessionNode(s.Topics))

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return nil, fmt.Errorf("codec.Encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("codec.Encode: %w", err)
	}

	return buf.Bytes(), nil
}

// metaNode returns v as a plain scalar carrying the tag YAML resolves it to,
// so the encoder does not quote it, provided Decode reads the bare token
// exactly like the quoted string. Anything else stays a quoted string.
func metaNode(v string, read func(rawNode) string) *yaml.Node {
	if v == "" {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null"}
	}
	quoted := strNode(v)

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(v), &doc); err != nil || len(doc.Content) != 1 {
		return quoted
	}
	n := doc.Content[0]
	if n.Kind != yaml.ScalarNode || n.Style != 0 || n.Value != v {
		return quoted
	}
	var b rawBuilder
	bare, err := b.build(n, 0)
	if err != nil || read(bare) != read(rawNode{kind: rawScalar, tag: "!!str", value: v}) {
		return quoted
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: n.ShortTag(), Value: v}
}

func readDate(r rawNode) string { return parseDate(r, time.Time{}) }

func readTime(r rawNode) string {
	if !truthy(r) {
		return ""
	}
	return stringify(r)
}

func sessionNode(topics []domain.Topic) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode}
	index := make(map[string]int)
	for _, t := range topics {
		title := strings.TrimSpace(t.Title)
		if title == "" {
			continue
		}
		points := seqNode(t.Points)
		if at, ok := index[title]; ok {
			n.Content[at+1] = points
			continue
		}
		index[title] = len(n.Content)
		n.Content = append(n.Content, strNode(title), points)
	}
	return n
}

func appendPair(m *yaml.Node, key string, value *yaml.Node) {
	m.Content = append(m.Content, strNode(key), value)
}

func strNode(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}

func seqNode(values []string) *yaml.Node {
	n := &yaml.Node{Kind: yaml.SequenceNode}
	for _, v := range values {
		n.Content = append(n.Content, strNode(v))
	}
	return n
}

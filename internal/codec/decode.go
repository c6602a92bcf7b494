package codec

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/fsr-protokoll/editor/internal/domain"
)

// dateLayouts are tried in order when re-parsing the Date field.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-1-2T15:4:5.999999999Z07:00",
	"2006-1-2t15:4:5.999999999Z07:00",
	"2006-1-2T15:4:5.999999999",
	"2006-1-2 15:4:5.999999999",
	"2006-1-2 15:4",
	"2006-1-2",
}

// Decode parses a YAML document into a fresh session. now supplies the date
// used when the document has none, ids supplies one id per topic.
//
// It fails with domain.ErrFormat when text is not well-formed YAML, holds
// more than one document, is empty or falsy, or its root is not a mapping.
// Every other irregularity is coerced or defaulted field by field.
func Decode(text string, now time.Time, ids func() string) (domain.Session, error) {
	root, err := parseRoot(text)
	if err != nil {
		return domain.Session{}, fmt.Errorf("codec.Decode: %w", err)
	}

	s := domain.NewSession(now)
	s.FSRMembers = parseList(root.get(fieldFSR))
	s.Guests = parseList(root.get(fieldGuests))
	if p := root.get(fieldProtocolant); truthy(p) {
		s.Protocolant = []string{stringify(p)}
	}

	s.Meta.Date = parseDate(root.get(fieldDate), now)
	if v := root.get(fieldStart); truthy(v) {
		s.Meta.Start = stringify(v)
	}
	if v := root.get(fieldEnd); truthy(v) {
		s.Meta.End = stringify(v)
	}

	s.Topics = parseTopics(root.get(fieldSession), ids)
	return s, nil
}

func parseRoot(text string) (rawNode, error) {
	dec := yaml.NewDecoder(strings.NewReader(text))

	var doc yaml.Node
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return rawNode{}, fmt.Errorf("%w: empty document", domain.ErrFormat)
		}
		return rawNode{}, fmt.Errorf("%w: %v", domain.ErrFormat, err)
	}

	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		if err != nil {
			return rawNode{}, fmt.Errorf("%w: %v", domain.ErrFormat, err)
		}
		return rawNode{}, fmt.Errorf("%w: more than one document", domain.ErrFormat)
	}

	var b rawBuilder
	root, err := b.build(&doc, 0)
	if err != nil {
		return rawNode{}, fmt.Errorf("%w: %v", domain.ErrFormat, err)
	}
	if !truthy(root) {
		return rawNode{}, fmt.Errorf("%w: empty document", domain.ErrFormat)
	}
	if root.kind != rawMapping {
		return rawNode{}, fmt.Errorf("%w: document root is not a mapping", domain.ErrFormat)
	}
	return root, nil
}

// parseList accepts a sequence or a comma separated string. Elements are
// stringified and trimmed, and empty ones are dropped.
func parseList(r rawNode) []string {
	var parts []string
	switch {
	case r.kind == rawSequence:
		for _, item := range r.items {
			parts = append(parts, stringify(item))
		}
	case r.kind == rawScalar && r.tag == "!!str":
		parts = strings.Split(r.value, ",")
	}

	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseDate normalizes the Date field to UTC YYYY-MM-DD. Integers are
// taken as Unix milliseconds; anything unparsable falls back to now.
func parseDate(r rawNode, now time.Time) string {
	if !truthy(r) || r.kind != rawScalar {
		return domain.Today(now)
	}
	if r.tag == "!!int" {
		if ms, ok := number(r); ok {
			return domain.Today(time.UnixMilli(int64(ms)))
		}
	}
	v := strings.TrimSpace(r.value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return domain.Today(t)
		}
	}
	return domain.Today(now)
}

// parseTopics converts the Sitzung mapping into topics in document order.
// Points are coerced to a sequence and any point reading "null" is dropped.
func parseTopics(r rawNode, ids func() string) []domain.Topic {
	topics := []domain.Topic{}
	if !truthy(r) || r.kind != rawMapping {
		return topics
	}
	for _, p := range r.pairs {
		values := []rawNode{p.value}
		if p.value.kind == rawSequence {
			values = p.value.items
		}
		points := make([]string, 0, len(values))
		for _, v := range values {
			if s := stringify(v); s != "null" {
				points = append(points, s)
			}
		}
		topics = append(topics, domain.Topic{ID: ids(), Title: p.key, Points: points})
	}
	return topics
}

package codec

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// maxNodes bounds alias expansion while building the raw tree.
const maxNodes = 100_000

var errTooLarge = errors.New("document expands to too many nodes")

type rawKind int

const (
	rawNull rawKind = iota
	rawScalar
	rawSequence
	rawMapping
)

// rawNode is a loosely typed YAML value. Fields are coerced from it one by
// one instead of trusting a static unmarshal into a struct.
type rawNode struct {
	kind  rawKind
	tag   string
	value string
	items []rawNode
	pairs []rawPair
	src   *yaml.Node
}

type rawPair struct {
	key   string
	value rawNode
}

// get returns the value stored under key, or a null node.
func (r rawNode) get(key string) rawNode {
	for _, p := range r.pairs {
		if p.key == key {
			return p.value
		}
	}
	return rawNode{kind: rawNull}
}

type rawBuilder struct {
	nodes int
}

func (b *rawBuilder) build(n *yaml.Node, depth int) (rawNode, error) {
	b.nodes++
	if b.nodes > maxNodes || depth > 256 {
		return rawNode{}, errTooLarge
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return rawNode{kind: rawNull, src: n}, nil
		}
		return b.build(n.Content[0], depth+1)
	case yaml.AliasNode:
		if n.Alias == nil {
			return rawNode{kind: rawNull, src: n}, nil
		}
		return b.build(n.Alias, depth+1)
	case yaml.SequenceNode:
		out := rawNode{kind: rawSequence, src: n, items: make([]rawNode, 0, len(n.Content))}
		for _, c := range n.Content {
			item, err := b.build(c, depth+1)
			if err != nil {
				return rawNode{}, err
			}
			out.items = append(out.items, item)
		}
		return out, nil
	case yaml.MappingNode:
		out := rawNode{kind: rawMapping, src: n}
		index := make(map[string]int)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, err := b.build(n.Content[i], depth+1)
			if err != nil {
				return rawNode{}, err
			}
			v, err := b.build(n.Content[i+1], depth+1)
			if err != nil {
				return rawNode{}, err
			}
			key := stringify(k)
			// A repeated key keeps its first position and takes the later value.
			if at, ok := index[key]; ok {
				out.pairs[at].value = v
				continue
			}
			index[key] = len(out.pairs)
			out.pairs = append(out.pairs, rawPair{key: key, value: v})
		}
		return out, nil
	case yaml.ScalarNode:
		tag := n.ShortTag()
		if tag == "!!null" {
			return rawNode{kind: rawNull, src: n}, nil
		}
		return rawNode{kind: rawScalar, tag: tag, value: n.Value, src: n}, nil
	}
	return rawNode{kind: rawNull, src: n}, nil
}

// truthy follows the loose truthiness of the original document consumer:
// null, false, zero, NaN and the empty string are false; every sequence and
// mapping, even an empty one, is true.
func truthy(r rawNode) bool {
	switch r.kind {
	case rawNull:
		return false
	case rawSequence, rawMapping:
		return true
	}
	switch r.tag {
	case "!!bool":
		b, _ := strconv.ParseBool(strings.ToLower(r.value))
		return b
	case "!!int", "!!float":
		f, ok := number(r)
		if !ok {
			return r.value != ""
		}
		return f != 0 && !math.IsNaN(f)
	}
	return r.value != ""
}

// stringify renders a raw value the way a loosely typed consumer would turn
// it into text: null is "null", numbers use their shortest decimal form,
// sequences are joined with commas and mappings are written as flow YAML.
func stringify(r rawNode) string {
	switch r.kind {
	case rawNull:
		return "null"
	case rawSequence:
		parts := make([]string, len(r.items))
		for i, item := range r.items {
			if item.kind != rawNull {
				parts[i] = stringify(item)
			}
		}
		return strings.Join(parts, ",")
	case rawMapping:
		return flow(r.src)
	}
	switch r.tag {
	case "!!bool":
		b, _ := strconv.ParseBool(strings.ToLower(r.value))
		return strconv.FormatBool(b)
	case "!!int", "!!float":
		if f, ok := number(r); ok {
			return formatNumber(f)
		}
	}
	return r.value
}

func number(r rawNode) (float64, bool) {
	if r.src == nil {
		return 0, false
	}
	var f float64
	if err := r.src.Decode(&f); err != nil {
		return 0, false
	}
	return f, true
}

// formatNumber prints f in the shortest form that reads back to the same
// value, switching to exponent notation outside [1e-6, 1e21).
func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		// Go pads the exponent to two digits; drop the padding.
		mant, exp, _ := strings.Cut(s, "e")
		sign := exp[:1]
		exp = strings.TrimLeft(exp[1:], "0")
		return mant + "e" + sign + exp
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func flow(n *yaml.Node) string {
	if n == nil {
		return ""
	}
	c := *n
	c.Style = yaml.FlowStyle
	out, err := yaml.Marshal(&c)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

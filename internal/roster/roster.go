// Package roster parses the configured member lists used for attendee
// autocomplete and implements the tag selection rules applied to them.
package roster

import (
	"regexp"
	"slices"
	"strings"

	"github.com/fsr-protokoll/editor/internal/domain"
)

// Unlimited disables the selection cap in AddSelection.
const Unlimited = -1

// entryPattern matches "Name [alias1, alias2]".
var entryPattern = regexp.MustCompile(`^([^\[\]]*)\[([^\[\]]*)\]\s*$`)

// Parse reads a roster string such as "Alice [Ali, A.], Bob". Commas inside
// brackets separate aliases, not members. Entries with an empty name are
// dropped; the function never fails.
func Parse(raw string) []domain.Member {
	members := []domain.Member{}
	for _, entry := range splitTopLevel(raw) {
		entry = strings.TrimSpace(entry)
		m := domain.Member{Name: entry, Aliases: []string{}}
		if groups := entryPattern.FindStringSubmatch(entry); groups != nil {
			m.Name = strings.TrimSpace(groups[1])
			for _, a := range strings.Split(groups[2], ",") {
				if a = strings.TrimSpace(a); a != "" {
					m.Aliases = append(m.Aliases, a)
				}
			}
		}
		if m.Name != "" {
			members = append(members, m)
		}
	}
	return members
}

// splitTopLevel splits s on commas that are not inside [...].
func splitTopLevel(s string) []string {
	var parts []string
	depth, start := 0, 0
	for i, r := range s {
		switch r {
		case '[':
			depth++
		case ']':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}

// Normalize cleans records that arrive already structured, for example from
// the YAML config file: names are trimmed, nil aliases become empty and
// records without a name are dropped.
func Normalize(records []domain.Member) []domain.Member {
	members := make([]domain.Member, 0, len(records))
	for _, r := range records {
		name := strings.TrimSpace(r.Name)
		if name == "" {
			continue
		}
		aliases := []string{}
		for _, a := range r.Aliases {
			if a = strings.TrimSpace(a); a != "" {
				aliases = append(aliases, a)
			}
		}
		members = append(members, domain.Member{Name: name, Aliases: aliases})
	}
	return members
}

// Names returns the display names in roster order.
func Names(members []domain.Member) []string {
	names := make([]string, len(members))
	for i, m := range members {
		names[i] = m.Name
	}
	return names
}

// Suggest returns the names that are not selected yet and whose name or one
// of whose aliases contains query, ignoring case.
func Suggest(members []domain.Member, query string, selected []string) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	out := []string{}
	for _, m := range members {
		if slices.Contains(selected, m.Name) {
			continue
		}
		if matches(m, q) {
			out = append(out, m.Name)
		}
	}
	return out
}

func matches(m domain.Member, q string) bool {
	if strings.Contains(strings.ToLower(m.Name), q) {
		return true
	}
	for _, a := range m.Aliases {
		if strings.Contains(strings.ToLower(a), q) {
			return true
		}
	}
	return false
}

// AddSelection appends tag to selected unless it is blank, already chosen,
// or the list already holds max entries. max of Unlimited disables the cap.
// The input slice is never modified.
func AddSelection(selected []string, tag string, max int) []string {
	out := slices.Clone(selected)
	if out == nil {
		out = []string{}
	}
	if max != Unlimited && len(out) >= max {
		return out
	}
	tag = strings.TrimSpace(tag)
	if tag == "" || slices.Contains(out, tag) {
		return out
	}
	return append(out, tag)
}

// RemoveSelection returns selected without tag.
func RemoveSelection(selected []string, tag string) []string {
	out := make([]string, 0, len(selected))
	for _, s := range selected {
		if s != tag {
			out = append(out, s)
		}
	}
	return out
}

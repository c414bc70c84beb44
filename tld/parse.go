package tld

import "strings"

// Lists carries the raw lines of the five rule files, as read from disk or
// fetched from upstream. Build owns all line-level parsing, so callers hand
// over the files verbatim, comments included.
type Lists struct {
	PublicSuffix []string
	TopLevel     []string
	TwoLevel     []string
	ThreeLevel   []string
	Extra        []string
}

// Warning reports a rule that could not be registered. Parse anomalies are
// never fatal: the rule is dropped and the rest of the list still loads.
type Warning struct {
	List   string
	Rule   string
	Reason string
}

// List names used in Warnings, matching the upstream rule file names.
const (
	ListPublicSuffix = "public-suffix-list"
	ListTopLevel     = "top-level-tlds"
	ListTwoLevel     = "two-level-tlds"
	ListThreeLevel   = "three-level-tlds"
	ListExtra        = "extra-tlds"
)

// Build parses all rule lists into a fresh Snapshot. It always returns a
// usable Snapshot; dropped rules are reported in the warnings slice.
//
// Two comment conventions apply: every list discards blank lines and lines
// whose first non-space character is ';' or '#', and the public suffix list
// additionally discards tokens starting with '/' (the official list's "//"
// comments). Only the first whitespace-separated token of a line is the rule.
func Build(lists Lists) (*Snapshot, []Warning) {
	s := NewSnapshot()
	var warnings []Warning

	for _, line := range lists.PublicSuffix {
		token := firstToken(line)
		if token == "" || token[0] == '/' {
			continue
		}
		token = strings.ToLower(token)

		if token[0] == '!' {
			if w, ok := s.addException(token[1:]); !ok {
				warnings = append(warnings, w)
			}
			continue
		}

		s.suffixes[token] = struct{}{}
	}

	for _, line := range lists.TopLevel {
		if token := firstToken(line); token != "" {
			s.levels[0][strings.ToLower(token)] = struct{}{}
		}
	}
	for _, line := range lists.TwoLevel {
		if token := firstToken(line); token != "" {
			s.levels[1][strings.ToLower(token)] = struct{}{}
		}
	}
	for _, line := range lists.ThreeLevel {
		if token := firstToken(line); token != "" {
			s.levels[2][strings.ToLower(token)] = struct{}{}
		}
	}

	// Entries in extra-tlds pick their level table by label count alone;
	// anything that is not 2 or 3 labels long is ignored.
	for _, line := range lists.Extra {
		token := firstToken(line)
		if token == "" {
			continue
		}
		token = strings.ToLower(token)
		switch strings.Count(token, ".") {
		case 1:
			s.levels[1][token] = struct{}{}
		case 2:
			s.levels[2][token] = struct{}{}
		}
	}

	return s, warnings
}

// addException registers name as carved out of its parent rule. The parent
// must already be present, as a plain rule first, then as a wildcard; an
// exception with no resolvable parent is dropped.
func (s *Snapshot) addException(name string) (Warning, bool) {
	parent := ""
	if dot := strings.IndexByte(name, '.'); dot >= 0 {
		parent = name[dot+1:]
	}
	if name == "" || parent == "" {
		return Warning{
			List:   ListPublicSuffix,
			Rule:   "!" + name,
			Reason: "exception rule is too short to have a parent",
		}, false
	}

	_, plain := s.suffixes[parent]
	_, wildcard := s.suffixes["*."+parent]
	if !plain && !wildcard {
		return Warning{
			List:   ListPublicSuffix,
			Rule:   "!" + name,
			Reason: "no parent rule (" + parent + " or *." + parent + ") registered",
		}, false
	}

	s.exceptions[name] = struct{}{}
	return Warning{}, true
}

// firstToken strips the generic comment conventions and returns the first
// whitespace-separated token of line, or "" when the line holds no rule.
func firstToken(line string) string {
	line = strings.TrimSpace(line)
	if line == "" || line[0] == ';' || line[0] == '#' {
		return ""
	}

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}

	return fields[0]
}

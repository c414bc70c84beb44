// Package tld answers three questions about a DNS hostname: is it itself a
// public suffix, which organizational (registrable) domain does it belong
// to, and how does it split into subdomain and domain against explicit
// per-level TLD tables. The answers drive domain-alignment decisions, where
// confusing `evil.co.uk` with a sibling of `example.co.uk` is a security bug.
package tld

// Snapshot is one immutable generation of the lookup tables: the public
// suffix rules, the exception hostnames carved out of wildcard rules, and
// the three explicit TLD level tables. A Snapshot is built once by Build
// and never mutated afterwards; a refresh builds a new Snapshot and swaps
// it into the Registry as a whole.
type Snapshot struct {
	// suffixes holds plain rules ("com", "co.uk") and wildcard rules in
	// their literal "*.ck" form. An exact rule and its wildcard
	// counterpart are independent keys and may both be present.
	suffixes map[string]struct{}

	// exceptions holds the full exact hostnames excluded from an
	// enclosing wildcard rule ("www.ck" under "*.ck").
	exceptions map[string]struct{}

	// levels holds the explicit TLD tables consulted by SplitHostname:
	// levels[0] one-label entries, levels[1] two-label, levels[2] three.
	levels [3]map[string]struct{}
}

// NewSnapshot returns an empty Snapshot. Lookups against it degrade to
// their negative sentinels, so a Registry is usable before the first load.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		suffixes:   make(map[string]struct{}),
		exceptions: make(map[string]struct{}),
		levels: [3]map[string]struct{}{
			make(map[string]struct{}),
			make(map[string]struct{}),
			make(map[string]struct{}),
		},
	}
}

// Stats describes the size of each table in a Snapshot.
type Stats struct {
	Suffixes   int    `json:"suffixes"`
	Exceptions int    `json:"exceptions"`
	Levels     [3]int `json:"levels"`
}

func (s *Snapshot) Stats() Stats {
	st := Stats{
		Suffixes:   len(s.suffixes),
		Exceptions: len(s.exceptions),
	}
	for i := range s.levels {
		st.Levels[i] = len(s.levels[i])
	}
	return st
}

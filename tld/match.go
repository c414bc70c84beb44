package tld

import "strings"

// IsPublicSuffix reports whether host is itself a public suffix: a name
// under which unrelated parties may register domains, such as "com" or
// "co.uk". An empty host is not a suffix.
func (s *Snapshot) IsPublicSuffix(host string) bool {
	if host == "" {
		return false
	}
	host = NormalizeHost(host)

	if _, ok := s.suffixes[host]; ok {
		return true
	}

	// Wildcard rules ("*.ck") claim every immediate child of their parent
	// as a suffix, minus the hosts carved out by exception rules.
	dot := strings.IndexByte(host, '.')
	if dot < 0 {
		return false
	}
	parent := host[dot+1:]
	if parent == "" {
		return false
	}
	if _, ok := s.suffixes["*."+parent]; !ok {
		return false
	}

	_, carvedOut := s.exceptions[host]
	return !carvedOut
}

// OrganizationalDomain resolves the registrable domain controlling host:
// the longest matching public suffix plus exactly one more label. ok is
// false when host is empty, contains an empty label, or matches no rule at
// all. Notably ok is also false when host is a bare public suffix with
// nothing registered under it ("co.uk").
func (s *Snapshot) OrganizationalDomain(host string) (domain string, ok bool) {
	if host == "" {
		return "", false
	}
	host = NormalizeHost(host)

	labels := strings.Split(host, ".")

	// Walk the candidates TLD-first: candidate i is the trailing i labels
	// of host. Every candidate is checked and later matches overwrite
	// earlier ones, so the most specific rule decides.
	greatest := 0
	for i := 1; i <= len(labels); i++ {
		if labels[len(labels)-i] == "" {
			return "", false
		}
		candidate := strings.Join(labels[len(labels)-i:], ".")

		if s.IsPublicSuffix(candidate) {
			greatest = i + 1
		} else if _, excepted := s.exceptions[candidate]; excepted {
			// An exception rule hands one label of privilege back:
			// the excepted name is itself registrable.
			greatest = i
		}
	}

	switch {
	case greatest == 0:
		// No TLD matched at all.
		return "", false
	case greatest > len(labels):
		// Host is a bare public suffix, nothing registrable.
		return "", false
	case greatest == len(labels):
		// Host is already minimal.
		return host, true
	}

	return strings.Join(labels[len(labels)-greatest:], "."), true
}

// SplitHostname splits host into (subdomain, domain) against the explicit
// per-level TLD tables. level selects how many TLD labels may be consumed
// (1 to 3); out-of-range values fall back to 2.
//
// Unlike OrganizationalDomain this is a permissive split: the host is
// lowercased but ACE labels are not decoded, and there is no failure mode.
// An unknown TLD simply leaves the trailing label as the whole domain, and
// a host with too few labels yields empty parts.
func (s *Snapshot) SplitHostname(host string, level int) (subdomain, domain string) {
	if level < 1 || level > 3 {
		level = 2
	}

	rest := reverse(strings.Split(strings.ToLower(host), "."))

	if level >= 1 && len(rest) > 0 {
		if _, ok := s.levels[0][rest[0]]; ok {
			domain = rest[0]
			rest = rest[1:]
		}
	}
	if level >= 2 && len(rest) > 0 {
		if _, ok := s.levels[1][rest[0]+"."+domain]; ok {
			domain = rest[0] + "." + domain
			rest = rest[1:]
		}
	}
	if level >= 3 && len(rest) > 0 {
		if _, ok := s.levels[2][rest[0]+"."+domain]; ok {
			domain = rest[0] + "." + domain
			rest = rest[1:]
		}
	}

	// Whatever the tables said, one more label is the registrable name.
	if len(rest) > 0 {
		if domain == "" {
			domain = rest[0]
		} else {
			domain = rest[0] + "." + domain
		}
		rest = rest[1:]
	}

	return strings.Join(reverse(rest), "."), domain
}

func reverse(labels []string) []string {
	for i, j := 0, len(labels)-1; i < j; i, j = i+1, j-1 {
		labels[i], labels[j] = labels[j], labels[i]
	}

	return labels
}

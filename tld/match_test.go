package tld

import (
	"strings"
	"testing"
)

func testSnapshot(t *testing.T) *Snapshot {
	t.Helper()

	snap, warnings := Build(Lists{
		PublicSuffix: []string{
			"// ===BEGIN ICANN DOMAINS===",
			"com",
			"uk",
			"co.uk",
			"*.ck",
			"!www.ck",
		},
		TopLevel: []string{"com", "net", "uk", "au", "us", "de", "ch"},
		TwoLevel: []string{"co.uk", "org.uk", "edu.au", "com.au", "ma.us"},
		ThreeLevel: []string{
			"act.edu.au",
		},
		Extra: []string{
			"k12.ma.us",
		},
	})
	if len(warnings) != 0 {
		t.Fatalf("unexpected parse warnings: %v", warnings)
	}

	return snap
}

func TestIsPublicSuffix(t *testing.T) {
	snap := testSnapshot(t)

	tests := []struct {
		name string
		host string
		want bool
	}{
		{name: "empty host", host: "", want: false},
		{name: "exact match", host: "com", want: true},
		{name: "exact two-label match", host: "co.uk", want: true},
		{name: "uppercase is normalized", host: "CO.UK", want: true},
		{name: "registrable domain is not a suffix", host: "example.com", want: false},
		{name: "subdomain is not a suffix", host: "www.example.co.uk", want: false},
		{name: "wildcard claims immediate child", host: "foo.ck", want: true},
		{name: "exception carves host out of wildcard", host: "www.ck", want: false},
		{name: "wildcard parent itself has no rule", host: "ck", want: false},
		{name: "wildcard does not reach grandchildren", host: "foo.bar.ck", want: false},
		{name: "single unknown label", host: "localhost", want: false},
		{name: "lone dot", host: ".", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := snap.IsPublicSuffix(tt.host); got != tt.want {
				t.Errorf("IsPublicSuffix(%q) = %v, want %v", tt.host, got, tt.want)
			}
		})
	}
}

func TestOrganizationalDomain(t *testing.T) {
	snap := testSnapshot(t)

	tests := []struct {
		name   string
		host   string
		want   string
		wantOK bool
	}{
		{name: "empty host", host: "", want: "", wantOK: false},
		{name: "plain TLD", host: "www.example.com", want: "example.com", wantOK: true},
		{name: "deep subdomain", host: "a.b.c.example.com", want: "example.com", wantOK: true},
		{name: "two-level suffix", host: "example.co.uk", want: "example.co.uk", wantOK: true},
		{name: "subdomain under two-level suffix", host: "www.example.co.uk", want: "example.co.uk", wantOK: true},
		{name: "bare public suffix", host: "co.uk", want: "", wantOK: false},
		{name: "bare single-label suffix", host: "com", want: "", wantOK: false},
		{name: "stray leading dot", host: ".com", want: "", wantOK: false},
		{name: "stray trailing dot", host: "example.com.", want: "", wantOK: false},
		{name: "no matching TLD", host: "foo.localdomain", want: "", wantOK: false},
		{name: "excepted name is itself registrable", host: "www.ck", want: "www.ck", wantOK: true},
		{name: "subdomain of excepted name", host: "foo.www.ck", want: "www.ck", wantOK: true},
		{name: "child of wildcard suffix", host: "foo.bar.ck", want: "foo.bar.ck", wantOK: true},
		{name: "mixed case is normalized", host: "WWW.Example.COM", want: "example.com", wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := snap.OrganizationalDomain(tt.host)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("OrganizationalDomain(%q) = (%q, %v), want (%q, %v)",
					tt.host, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

// The organizational domain must never itself be a public suffix, and
// stripping its first label must land back on the matching suffix.
func TestOrganizationalDomainRoundTrip(t *testing.T) {
	snap := testSnapshot(t)

	for _, host := range []string{"www.example.com", "mail.example.co.uk", "example.co.uk"} {
		domain, ok := snap.OrganizationalDomain(host)
		if !ok {
			t.Fatalf("OrganizationalDomain(%q) unexpectedly failed", host)
		}
		if snap.IsPublicSuffix(domain) {
			t.Errorf("organizational domain %q of %q is itself a public suffix", domain, host)
		}

		suffix := domain[strings.IndexByte(domain, '.')+1:]
		if !snap.IsPublicSuffix(suffix) {
			t.Errorf("parent %q of organizational domain %q is not a public suffix", suffix, domain)
		}
	}
}

func TestSplitHostname(t *testing.T) {
	snap := testSnapshot(t)

	tests := []struct {
		name       string
		host       string
		level      int
		wantSub    string
		wantDomain string
	}{
		{name: "two-level split", host: "www.example.co.uk", level: 2, wantSub: "www", wantDomain: "example.co.uk"},
		{name: "level one stops at the TLD", host: "www.example.co.uk", level: 1, wantSub: "www.example", wantDomain: "co.uk"},
		{name: "three-level split", host: "www.school.act.edu.au", level: 3, wantSub: "www", wantDomain: "school.act.edu.au"},
		{name: "three-level table ignored at level two", host: "www.school.act.edu.au", level: 2, wantSub: "www.school", wantDomain: "act.edu.au"},
		{name: "extra-tlds entry lands in level three", host: "www.x.k12.ma.us", level: 3, wantSub: "www", wantDomain: "x.k12.ma.us"},
		{name: "invalid level falls back to two", host: "www.example.co.uk", level: 0, wantSub: "www", wantDomain: "example.co.uk"},
		{name: "level above three falls back to two", host: "www.example.co.uk", level: 7, wantSub: "www", wantDomain: "example.co.uk"},
		{name: "unknown TLD keeps trailing label only", host: "foo.example.unknown", level: 2, wantSub: "foo.example", wantDomain: "unknown"},
		{name: "no subdomain", host: "example.com", level: 2, wantSub: "", wantDomain: "example.com"},
		{name: "bare TLD", host: "com", level: 2, wantSub: "", wantDomain: "com"},
		{name: "ACE labels stay encoded", host: "WWW.XN--BCHER-KVA.ch", level: 1, wantSub: "www", wantDomain: "xn--bcher-kva.ch"},
		{name: "empty host", host: "", level: 2, wantSub: "", wantDomain: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub, domain := snap.SplitHostname(tt.host, tt.level)
			if sub != tt.wantSub || domain != tt.wantDomain {
				t.Errorf("SplitHostname(%q, %d) = (%q, %q), want (%q, %q)",
					tt.host, tt.level, sub, domain, tt.wantSub, tt.wantDomain)
			}
		})
	}
}

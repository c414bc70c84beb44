package tld

import "testing"

func TestBuildCommentConventions(t *testing.T) {
	snap, warnings := Build(Lists{
		PublicSuffix: []string{
			"; generic comment",
			"# another generic comment",
			"   ",
			"",
			"// official list comment",
			"/ also discarded",
			"com",
			"  net   trailing tokens are ignored",
			"ORG",
		},
		TopLevel: []string{
			"# comment",
			"de",
			"  at  ",
		},
	})
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}

	for _, suffix := range []string{"com", "net", "org"} {
		if !snap.IsPublicSuffix(suffix) {
			t.Errorf("expected %q to be registered as a suffix", suffix)
		}
	}

	st := snap.Stats()
	if st.Suffixes != 3 {
		t.Errorf("Suffixes = %d, want 3", st.Suffixes)
	}
	if st.Levels[0] != 2 {
		t.Errorf("Levels[0] = %d, want 2", st.Levels[0])
	}
}

func TestBuildExceptions(t *testing.T) {
	tests := []struct {
		name         string
		lines        []string
		wantSuffix   map[string]bool
		wantWarnings int
		wantExcepted int
	}{
		{
			name:  "exception under wildcard parent",
			lines: []string{"*.ck", "!www.ck"},
			wantSuffix: map[string]bool{
				"www.ck": false,
				"foo.ck": true,
			},
			wantExcepted: 1,
		},
		{
			name:  "exception under plain parent",
			lines: []string{"co.zz", "!special.co.zz"},
			wantSuffix: map[string]bool{
				"co.zz": true,
			},
			wantExcepted: 1,
		},
		{
			name:         "orphaned exception is dropped",
			lines:        []string{"com", "!www.orphan.zz"},
			wantWarnings: 1,
		},
		{
			name:         "exception without a parent label is dropped",
			lines:        []string{"com", "!com"},
			wantWarnings: 1,
		},
		{
			name:         "exception preceding its wildcard is dropped",
			lines:        []string{"!www.ck", "*.ck"},
			wantWarnings: 1,
			wantSuffix: map[string]bool{
				// Without the carve-out, the wildcard claims www.ck.
				"www.ck": true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap, warnings := Build(Lists{PublicSuffix: tt.lines})

			if len(warnings) != tt.wantWarnings {
				t.Fatalf("got %d warnings (%v), want %d", len(warnings), warnings, tt.wantWarnings)
			}
			for _, w := range warnings {
				if w.List != ListPublicSuffix || w.Rule == "" || w.Reason == "" {
					t.Errorf("incomplete warning: %+v", w)
				}
			}

			for host, want := range tt.wantSuffix {
				if got := snap.IsPublicSuffix(host); got != want {
					t.Errorf("IsPublicSuffix(%q) = %v, want %v", host, got, want)
				}
			}
			if got := snap.Stats().Exceptions; got != tt.wantExcepted {
				t.Errorf("Exceptions = %d, want %d", got, tt.wantExcepted)
			}
		})
	}
}

func TestBuildWildcardAndExactCoexist(t *testing.T) {
	snap, _ := Build(Lists{PublicSuffix: []string{"kobe.jp", "*.kobe.jp"}})

	if !snap.IsPublicSuffix("kobe.jp") {
		t.Error("exact rule kobe.jp not matched")
	}
	if !snap.IsPublicSuffix("city.kobe.jp") {
		t.Error("wildcard rule *.kobe.jp not matched")
	}
}

func TestBuildExtraTLDArity(t *testing.T) {
	snap, warnings := Build(Lists{
		Extra: []string{
			"single",        // 1 label: ignored
			"co.example",    // 2 labels: level-2 table
			"a.b.example",   // 3 labels: level-3 table
			"a.b.c.example", // 4 labels: ignored
			"UP.Example",    // lowercased into level-2
		},
	})
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}

	st := snap.Stats()
	if st.Levels[0] != 0 {
		t.Errorf("Levels[0] = %d, want 0", st.Levels[0])
	}
	if st.Levels[1] != 2 {
		t.Errorf("Levels[1] = %d, want 2", st.Levels[1])
	}
	if st.Levels[2] != 1 {
		t.Errorf("Levels[2] = %d, want 1", st.Levels[2])
	}
}

func TestBuildEmptyLists(t *testing.T) {
	snap, warnings := Build(Lists{})
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}

	if snap.IsPublicSuffix("com") {
		t.Error("empty snapshot matched a suffix")
	}
	if _, ok := snap.OrganizationalDomain("www.example.com"); ok {
		t.Error("empty snapshot resolved an organizational domain")
	}
	if sub, domain := snap.SplitHostname("www.example.com", 2); sub != "www.example" || domain != "com" {
		t.Errorf("SplitHostname on empty snapshot = (%q, %q), want (%q, %q)", sub, domain, "www.example", "com")
	}
}

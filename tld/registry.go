package tld

import "sync/atomic"

// Registry owns the live Snapshot shared by all concurrent readers.
// Lookups are lock-free reads of the current generation; Reload publishes a
// fully built replacement in a single atomic pointer swap, so a reader never
// observes a half-rebuilt table. The only writer is the refresh path, on a
// schedule measured in days.
type Registry struct {
	snapshot atomic.Pointer[Snapshot]
}

// NewRegistry returns a Registry holding an empty Snapshot, so lookups are
// valid (and negative) before the first Reload.
func NewRegistry() *Registry {
	r := &Registry{}
	r.snapshot.Store(NewSnapshot())

	return r
}

// Snapshot returns the current table generation. Callers that need several
// consistent lookups should hold on to the returned value instead of going
// through the Registry for each one.
func (r *Registry) Snapshot() *Snapshot {
	return r.snapshot.Load()
}

// Reload swaps in a freshly built Snapshot. A nil snapshot is ignored; a
// failed rebuild must never dislodge the live tables.
func (r *Registry) Reload(s *Snapshot) {
	if s == nil {
		return
	}

	r.snapshot.Store(s)
}

func (r *Registry) IsPublicSuffix(host string) bool {
	return r.Snapshot().IsPublicSuffix(host)
}

func (r *Registry) OrganizationalDomain(host string) (string, bool) {
	return r.Snapshot().OrganizationalDomain(host)
}

func (r *Registry) SplitHostname(host string, level int) (string, string) {
	return r.Snapshot().SplitHostname(host, level)
}

package repository

import (
	"fmt"
	"time"

	uuid "github.com/satori/go.uuid"
)

// Lookup operations, matching the public API surface.
const (
	OpIsPublicSuffix       OpType = "is_public_suffix"
	OpOrganizationalDomain OpType = "get_organizational_domain"
	OpSplitHostname        OpType = "split_hostname"

	lookupsTableName = "lookups"
)

type OpType string

// Lookup is one audit entry: which operation was asked about which host,
// and what came back. Persisting these is best-effort; a failed insert is
// logged by the caller and never surfaced to the requester.
type Lookup struct {
	UUID      string    `json:"uuid" db:"uuid"`
	Op        OpType    `json:"op" db:"op"`
	Host      string    `json:"host" db:"host"`
	Level     int       `json:"level" db:"level"`
	Subdomain string    `json:"subdomain,omitempty" db:"subdomain"`
	Domain    string    `json:"domain,omitempty" db:"domain"`
	IsSuffix  bool      `json:"isSuffix" db:"is_suffix"`
	Matched   bool      `json:"matched" db:"matched"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

func NewLookup(op OpType, host string) *Lookup {
	return &Lookup{
		UUID:      uuid.NewV4().String(),
		Op:        op,
		Host:      host,
		CreatedAt: time.Now(),
	}
}

func (r *Repo) Create(l *Lookup) error {
	res, err := r.db.NamedExec(`
		INSERT INTO `+lookupsTableName+`
	(
		uuid,
		op,
		host,
		level,
		subdomain,
		domain,
		is_suffix,
		matched,
		created_at
	)
		VALUES
	(
		:uuid,
		:op,
		:host,
		:level,
		:subdomain,
		:domain,
		:is_suffix,
		:matched,
		:created_at
	)
	`,
		l,
	)

	if err != nil {
		return fmt.Errorf("repo: create: %v", err)
	}

	rw, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("repo: create: rows affected: %v", err)
	}

	if rw != 1 {
		r.logger.Errorf("repo: create: expecting 1 row affected, got (%v)", rw)
	}

	return nil
}

func (r *Repo) FindRecent(limit int) ([]*Lookup, error) {
	if limit <= 0 || limit > 1000 {
		limit = 100
	}

	ls := make([]*Lookup, 0, limit)
	if err := r.db.Select(&ls, "SELECT * FROM lookups ORDER BY created_at DESC LIMIT ?", limit); err != nil {
		return nil, fmt.Errorf("repo: could not read recent lookups: %v", err)
	}

	return ls, nil
}

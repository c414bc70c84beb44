package repository

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

var schema = `
CREATE TABLE IF NOT EXISTS lookups
(
	uuid char(36) NOT NULL,
	op varchar(32) NOT NULL,
	host text NOT NULL,
	level tinyint NOT NULL,
	subdomain text NOT NULL,
	domain text NOT NULL,
	is_suffix tinyint NOT NULL,
	matched tinyint NOT NULL,
	created_at datetime NOT NULL
);

CREATE INDEX IF NOT EXISTS lookups_uuid_idx ON lookups (uuid);
CREATE INDEX IF NOT EXISTS lookups_created_at_idx ON lookups (created_at);
`

type Interactor interface {
	Close() error
	Queryable
}

type Queryable interface {
	Create(l *Lookup) error
	FindRecent(limit int) ([]*Lookup, error)
}

type Config struct {
	DBFile string
	Logger *zap.SugaredLogger
}

type Repo struct {
	db     *sqlx.DB
	logger *zap.SugaredLogger
}

func NewRepo(cfg Config) (*Repo, error) {
	db, err := sqlx.Open("sqlite3", cfg.DBFile)
	if err != nil {
		return nil, fmt.Errorf("could not open Repository file (%v): %v", cfg.DBFile, err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("could not ping Repository (%v): %v", cfg.DBFile, err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("could not create schema in Repository (%v): %v", cfg.DBFile, err)
	}

	return &Repo{db: db, logger: cfg.Logger}, nil
}

func (r *Repo) Close() error {
	return r.db.Close()
}

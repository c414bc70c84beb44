// Package refresh keeps the tld lookup tables up to date: it reads the rule
// files from a data directory, fetches the public suffix list from upstream,
// and rebuilds the table snapshot on a background schedule. A failure
// anywhere in that path is logged and leaves the previous snapshot intact.
package refresh

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ekzyis/haraka-tld/internal"
	"github.com/ekzyis/haraka-tld/tld"
)

// Rule file names expected inside the data directory.
const (
	FilePublicSuffix = "public-suffix-list"
	FileTopLevel     = "top-level-tlds"
	FileTwoLevel     = "two-level-tlds"
	FileThreeLevel   = "three-level-tlds"
	FileExtra        = "extra-tlds"
)

// Loader builds table snapshots from the rule files in a data directory.
type Loader struct {
	dir string
	log internal.Logger
}

func NewLoader(dir string, logger internal.Logger) *Loader {
	return &Loader{
		dir: dir,
		log: logger,
	}
}

// Load reads the five rule files and builds a fresh snapshot. The extra-tlds
// file may be absent; the other four are required. Parse warnings are logged
// and do not fail the load.
func (l *Loader) Load() (*tld.Snapshot, error) {
	lists := tld.Lists{}

	var err error
	if lists.PublicSuffix, err = readLines(filepath.Join(l.dir, FilePublicSuffix)); err != nil {
		return nil, err
	}
	if lists.TopLevel, err = readLines(filepath.Join(l.dir, FileTopLevel)); err != nil {
		return nil, err
	}
	if lists.TwoLevel, err = readLines(filepath.Join(l.dir, FileTwoLevel)); err != nil {
		return nil, err
	}
	if lists.ThreeLevel, err = readLines(filepath.Join(l.dir, FileThreeLevel)); err != nil {
		return nil, err
	}
	lists.Extra, err = readLines(filepath.Join(l.dir, FileExtra))
	switch {
	case err == nil:
		// OK.
	case errors.Is(err, os.ErrNotExist):
		l.log.Debugf("No (%v) file in (%v), skipping.", FileExtra, l.dir)
	default:
		return nil, err
	}

	snap, warnings := tld.Build(lists)
	for _, w := range warnings {
		l.log.Errorf("dropped rule (%v) from (%v): %v", w.Rule, w.List, w.Reason)
	}

	st := snap.Stats()
	l.log.Infof("Loaded %v suffix rules (%v exceptions) and %v/%v/%v level TLDs from (%v).",
		st.Suffixes, st.Exceptions, st.Levels[0], st.Levels[1], st.Levels[2], l.dir)

	return snap, nil
}

func readLines(fullFilePath string) ([]string, error) {
	fh, err := os.Open(fullFilePath)
	if err != nil {
		return nil, fmt.Errorf("refresh: could not open rule file: %w", err)
	}
	defer fh.Close()

	lines := make([]string, 0, 1024)
	sc := bufio.NewScanner(fh)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("refresh: could not read rule file (%v): %v", fullFilePath, err)
	}

	return lines, nil
}

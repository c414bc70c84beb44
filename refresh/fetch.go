package refresh

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/ekzyis/haraka-tld/internal"
	cache "github.com/patrickmn/go-cache"
)

// DefaultPublicSuffixURL is the canonical upstream of the public suffix
// list. The TLD level files have no upstream; they are maintained in the
// data directory itself.
const DefaultPublicSuffixURL = "https://publicsuffix.org/list/public_suffix_list.dat"

const (
	fetchTimeout = 30 * time.Second

	// How long a remembered ETag stays valid. Once it expires, the next
	// refresh does a full fetch even if upstream never changed.
	etagExpiry = 7 * 24 * time.Hour
)

// Downloader fetches rule files over HTTP into the data directory, where
// the Loader picks them up. It remembers upstream ETags so an unchanged
// list costs a 304 instead of a multi-megabyte download.
type Downloader struct {
	dir     string
	sources map[string]string // file name -> upstream URL
	client  *http.Client
	etags   *cache.Cache
	log     internal.Logger
}

func NewDownloader(dir string, sources map[string]string, logger internal.Logger) *Downloader {
	return &Downloader{
		dir:     dir,
		sources: sources,
		client: &http.Client{
			Timeout: fetchTimeout,
		},
		etags: cache.New(etagExpiry, time.Hour),
		log:   logger,
	}
}

// Refresh downloads every configured source, returning how many files
// actually changed on disk. A failing source aborts the whole refresh so
// the caller never rebuilds from a half-updated directory.
func (d *Downloader) Refresh(ctx context.Context) (int, error) {
	var changed int
	for name, rawURL := range d.sources {
		fetched, err := d.fetchOne(ctx, name, rawURL)
		if err != nil {
			return changed, err
		}
		if fetched {
			changed++
		}
	}

	return changed, nil
}

func (d *Downloader) fetchOne(ctx context.Context, name, rawURL string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return false, fmt.Errorf("refresh: could not create request for (%v): %v", rawURL, err)
	}
	if tag, found := d.etags.Get(rawURL); found {
		req.Header.Set("If-None-Match", tag.(string))
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("refresh: could not fetch (%v): %v", rawURL, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotModified:
		d.log.Debugf("Source (%v) unchanged, skipping.", rawURL)
		return false, nil
	case resp.StatusCode != http.StatusOK:
		return false, fmt.Errorf("refresh: unexpected status from (%v): %v", rawURL, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, fmt.Errorf("refresh: could not read body from (%v): %v", rawURL, err)
	}

	// Write-then-rename so the Loader never reads a torn file.
	tmp := filepath.Join(d.dir, name+".tmp")
	if err := os.WriteFile(tmp, body, 0644); err != nil {
		return false, fmt.Errorf("refresh: could not write (%v): %v", tmp, err)
	}
	if err := os.Rename(tmp, filepath.Join(d.dir, name)); err != nil {
		return false, fmt.Errorf("refresh: could not move (%v) into place: %v", tmp, err)
	}

	if tag := resp.Header.Get("ETag"); tag != "" {
		d.etags.SetDefault(rawURL, tag)
	}

	d.log.Debugf("Fetched (%v) bytes from (%v) into (%v).", len(body), rawURL, name)
	return true, nil
}

package http

import (
	"net/http"
	"strconv"

	"github.com/ekzyis/haraka-tld/internal"
	"github.com/ekzyis/haraka-tld/repository"
	"github.com/gin-gonic/gin"
)

// IsPublicSuffix answers whether the queried host is itself a public suffix.
func (h *Handler) IsPublicSuffix(g *gin.Context) {
	host := internal.TrimFQDN(g.Query("host"))

	l := repository.NewLookup(repository.OpIsPublicSuffix, host)
	l.IsSuffix = h.registry.IsPublicSuffix(host)
	h.record(l)

	output := struct {
		Host           string `json:"host"`
		IsPublicSuffix bool   `json:"isPublicSuffix"`
	}{
		Host:           host,
		IsPublicSuffix: l.IsSuffix,
	}

	g.JSON(http.StatusOK, output)
}

// OrganizationalDomain resolves the registrable domain of the queried host.
// The organizationalDomain field is null when no rule matched, mirroring
// the lookup's no-result sentinel.
func (h *Handler) OrganizationalDomain(g *gin.Context) {
	host := internal.TrimFQDN(g.Query("host"))

	domain, ok := h.registry.OrganizationalDomain(host)

	l := repository.NewLookup(repository.OpOrganizationalDomain, host)
	l.Domain = domain
	l.Matched = ok
	h.record(l)

	output := struct {
		Host                 string  `json:"host"`
		OrganizationalDomain *string `json:"organizationalDomain"`
	}{
		Host: host,
	}
	if ok {
		output.OrganizationalDomain = &domain
	}

	g.JSON(http.StatusOK, output)
}

// SplitHostname splits the queried host into subdomain and domain against
// the explicit TLD tables. Absent or out-of-range levels fall back to 2.
func (h *Handler) SplitHostname(g *gin.Context) {
	host := internal.TrimFQDN(g.Query("host"))

	level, err := strconv.Atoi(g.Query("level"))
	if err != nil || level < 1 || level > 3 {
		level = 2
	}

	subdomain, domain := h.registry.SplitHostname(host, level)

	l := repository.NewLookup(repository.OpSplitHostname, host)
	l.Level = level
	l.Subdomain = subdomain
	l.Domain = domain
	h.record(l)

	output := struct {
		Host      string `json:"host"`
		Level     int    `json:"level"`
		Subdomain string `json:"subdomain"`
		Domain    string `json:"domain"`
	}{
		Host:      host,
		Level:     level,
		Subdomain: subdomain,
		Domain:    domain,
	}

	g.JSON(http.StatusOK, output)
}

// RecentLookups returns the latest audit entries.
func (h *Handler) RecentLookups(g *gin.Context) {
	if h.repository == nil {
		g.JSON(http.StatusOK, make([]*repository.Lookup, 0))
		return
	}

	limit, _ := strconv.Atoi(g.Query("limit"))
	ls, err := h.repository.FindRecent(limit)
	if err != nil {
		h.logger.Errorf("could not read recent lookups: %v", err)
		g.Status(http.StatusInternalServerError)
		return
	}

	g.JSON(http.StatusOK, ls)
}
